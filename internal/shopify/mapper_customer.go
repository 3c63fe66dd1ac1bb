package shopify

// MapCustomer flattens the nested numberOfOrders.count / amountSpent.amount
// vendor shapes into top-level scalars.
func MapCustomer(node CustomerNode, orgID, storeID string) CustomerRecord {
	rec := CustomerRecord{
		OrganizationID: orgID,
		StoreID:        storeID,
		CustomerID:     StripGID(node.ID, "Customer"),
		Email:          node.Email,
		FirstName:      node.FirstName,
		LastName:       node.LastName,
		Phone:          node.Phone,
		OrdersCount:    node.NumberOfOrders.Count,
		TotalSpent:     RoundMoney(ParseMoney(node.AmountSpent.Amount)),
		Tags:           node.Tags,
		CreatedAt:      ParseTimeMillis(node.CreatedAt),
		UpdatedAt:      ParseTimeMillis(node.UpdatedAt),
	}

	if c := node.EmailMarketingConsent; c != nil {
		rec.AcceptsMarketing = c.MarketingState == "SUBSCRIBED"
	}

	if addr := node.DefaultAddress; addr != nil {
		rec.City = addr.City
		rec.Country = addr.Country
	}

	return rec
}
