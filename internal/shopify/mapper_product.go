package shopify

// MapProduct flattens one product node with its variants nested inside.
// Variant inventory levels stay empty here; the orchestrator fills them
// in a second pass once every product page has been fetched.
func MapProduct(node ProductNode, orgID, storeID string) ProductRecord {
	rec := ProductRecord{
		OrganizationID: orgID,
		StoreID:        storeID,
		ProductID:      StripGID(node.ID, "Product"),
		Handle:         node.Handle,
		Title:          node.Title,
		ProductType:    node.ProductType,
		Vendor:         node.Vendor,
		Status:         node.Status,
		TotalInventory: node.TotalInventory,
		Tags:           node.Tags,
		CreatedAt:      ParseTimeMillis(node.CreatedAt),
		UpdatedAt:      ParseTimeMillis(node.UpdatedAt),
		PublishedAt:    ParseTimeMillis(node.PublishedAt),
	}

	for _, e := range node.Variants.Edges {
		rec.Variants = append(rec.Variants, mapVariant(e.Node))
	}

	return rec
}

func mapVariant(node VariantNode) VariantRecord {
	v := VariantRecord{
		VariantID:         StripGID(node.ID, "ProductVariant"),
		SKU:               node.SKU,
		Barcode:           node.Barcode,
		Price:             RoundMoney(ParseMoney(node.Price)),
		CompareAtPrice:    RoundMoney(ParseMoney(node.CompareAtPrice)),
		InventoryQuantity: node.InventoryQuantity,
		InventoryItemID:   StripGID(node.InventoryItem.ID, "InventoryItem"),
		Weight:            node.InventoryItem.Measurement.Weight.Value,
		WeightUnit:        node.InventoryItem.Measurement.Weight.Unit,
	}

	if uc := node.InventoryItem.UnitCost; uc != nil {
		v.UnitCost = RoundMoney(ParseMoney(uc.Amount))
	}

	// Shopify caps products at three options.
	for i, so := range node.SelectedOptions {
		val := so.Value
		switch i {
		case 0:
			v.Option1 = &val
		case 1:
			v.Option2 = &val
		case 2:
			v.Option3 = &val
		}
	}

	return v
}
