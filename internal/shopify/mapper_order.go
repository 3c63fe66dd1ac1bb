package shopify

// MapOrder flattens one vendor order node into an order record plus its
// sibling transaction/refund/fulfillment record sets. Pure; identical
// input always yields identical output, which is what makes incremental
// re-runs idempotent at the persistence layer's upsert.
func MapOrder(node OrderNode, orgID, storeID string) OrderBundle {
	orderID := StripGID(node.ID, "Order")

	order := OrderRecord{
		OrganizationID: orgID,
		StoreID:        storeID,
		OrderID:        orderID,
		Name:           node.Name,

		CreatedAt:   ParseTimeMillis(node.CreatedAt),
		ProcessedAt: ParseTimeMillis(node.ProcessedAt),
		UpdatedAt:   ParseTimeMillis(node.UpdatedAt),
		ClosedAt:    ParseTimeMillis(node.ClosedAt),
		CancelledAt: ParseTimeMillis(node.CancelledAt),

		TotalPrice:     RoundMoney(ParseMoney(node.CurrentTotalPriceSet.ShopMoney.Amount)),
		SubtotalPrice:  RoundMoney(ParseMoney(node.SubtotalPriceSet.ShopMoney.Amount)),
		TotalTax:       RoundMoney(ParseMoney(node.TotalTaxSet.ShopMoney.Amount)),
		TotalDiscounts: RoundMoney(ParseMoney(node.TotalDiscountsSet.ShopMoney.Amount)),
		TotalShipping:  RoundMoney(ParseMoney(node.TotalShippingPriceSet.ShopMoney.Amount)),
		TotalTip:       RoundMoney(ParseMoney(node.TotalTipReceivedSet.ShopMoney.Amount)),
		Currency:       node.CurrentTotalPriceSet.ShopMoney.CurrencyCode,

		FinancialStatus:   node.DisplayFinancialStatus,
		FulfillmentStatus: node.DisplayFulfillmentStatus,
	}

	if node.Customer != nil {
		order.CustomerID = StripGID(node.Customer.ID, "Customer")
	}

	if addr := node.ShippingAddress; addr != nil {
		order.ShippingCity = addr.City
		order.ShippingProvince = addr.Province
		order.ShippingCountry = addr.Country
		order.ShippingZip = addr.Zip
	}

	applyAttribution(&order, node.CustomerJourneySummary)

	for _, e := range node.LineItems.Edges {
		li := mapLineItem(e.Node)
		order.LineItems = append(order.LineItems, li)
		order.TotalQuantity += li.Quantity
	}
	order.ItemCount = len(order.LineItems)

	bundle := OrderBundle{Order: order}

	for _, t := range node.Transactions {
		bundle.Transactions = append(bundle.Transactions, TransactionRecord{
			OrganizationID: orgID,
			StoreID:        storeID,
			OrderID:        orderID,
			TransactionID:  StripGID(t.ID, "OrderTransaction"),
			Kind:           t.Kind,
			Status:         t.Status,
			Gateway:        t.Gateway,
			Amount:         RoundMoney(ParseMoney(t.AmountSet.ShopMoney.Amount)),
			ProcessedAt:    ParseTimeMillis(t.ProcessedAt),
		})
	}

	for _, r := range node.Refunds {
		bundle.Refunds = append(bundle.Refunds, RefundRecord{
			OrganizationID: orgID,
			StoreID:        storeID,
			OrderID:        orderID,
			RefundID:       StripGID(r.ID, "Refund"),
			Note:           r.Note,
			Amount:         RoundMoney(ParseMoney(r.TotalRefundedSet.ShopMoney.Amount)),
			CreatedAt:      ParseTimeMillis(r.CreatedAt),
		})
	}

	for _, f := range node.Fulfillments {
		rec := FulfillmentRecord{
			OrganizationID: orgID,
			StoreID:        storeID,
			OrderID:        orderID,
			FulfillmentID:  StripGID(f.ID, "Fulfillment"),
			Status:         f.Status,
			CreatedAt:      ParseTimeMillis(f.CreatedAt),
		}
		if len(f.TrackingInfo) > 0 {
			rec.TrackingCompany = f.TrackingInfo[0].Company
			rec.TrackingNumber = f.TrackingInfo[0].Number
		}
		bundle.Fulfillments = append(bundle.Fulfillments, rec)
	}

	return bundle
}

func mapLineItem(node LineItemNode) LineItemRecord {
	li := LineItemRecord{
		LineItemID:          StripGID(node.ID, "LineItem"),
		Title:               node.Title,
		SKU:                 node.SKU,
		Quantity:            node.Quantity,
		FulfillableQuantity: node.FulfillableQuantity,
		Price:               RoundMoney(ParseMoney(node.OriginalUnitPriceSet.ShopMoney.Amount)),
	}

	if node.DiscountedUnitPriceSet != nil {
		dp := RoundMoney(ParseMoney(node.DiscountedUnitPriceSet.ShopMoney.Amount))
		li.DiscountedPrice = &dp

		// Discounts never go negative even when the vendor reports a
		// discounted price above the base price.
		if d := RoundMoney(li.Price - dp); d > 0 {
			li.TotalDiscount = d
		}
	}

	return li
}

// applyAttribution reads the optional customer-journey first-visit block.
// When the block is missing every attribution field stays nil.
func applyAttribution(order *OrderRecord, journey *CustomerJourneySummary) {
	if journey == nil || journey.FirstVisit == nil {
		return
	}
	fv := journey.FirstVisit

	order.SourceURL = optional(fv.Source)
	order.LandingSite = optional(fv.LandingPage)
	order.ReferringSite = optional(fv.ReferrerURL)

	if utm := fv.UTMParameters; utm != nil {
		order.UTMSource = optional(utm.Source)
		order.UTMMedium = optional(utm.Medium)
		order.UTMCampaign = optional(utm.Campaign)
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
