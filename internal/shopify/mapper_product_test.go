package shopify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProductNode() ProductNode {
	node := ProductNode{
		ID:             "gid://shopify/Product/77",
		Handle:         "widget",
		Title:          "Widget",
		ProductType:    "Gadgets",
		Vendor:         "Acme",
		Status:         "ACTIVE",
		TotalInventory: 40,
		Tags:           []string{"new"},
		CreatedAt:      "2025-01-10T00:00:00Z",
		UpdatedAt:      "2025-05-01T00:00:00Z",
	}

	variant := VariantNode{
		ID:                "gid://shopify/ProductVariant/501",
		SKU:               "W-1",
		Price:             "19.99",
		CompareAtPrice:    "24.99",
		InventoryQuantity: 40,
		SelectedOptions: []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		}{
			{Name: "Size", Value: "M"},
			{Name: "Color", Value: "Blue"},
		},
	}
	variant.InventoryItem.ID = "gid://shopify/InventoryItem/9001"
	variant.InventoryItem.UnitCost = &MoneyV2{Amount: "7.25", CurrencyCode: "USD"}
	variant.InventoryItem.Measurement.Weight.Value = 0.4
	variant.InventoryItem.Measurement.Weight.Unit = "KILOGRAMS"

	node.Variants.Edges = []struct {
		Node VariantNode `json:"node"`
	}{{Node: variant}}

	return node
}

func TestMapProduct(t *testing.T) {
	rec := MapProduct(sampleProductNode(), "org-1", "store-1")

	assert.Equal(t, "77", rec.ProductID)
	assert.Equal(t, "Widget", rec.Title)
	assert.Equal(t, 40, rec.TotalInventory)
	assert.Nil(t, rec.PublishedAt)
	require.NotNil(t, rec.CreatedAt)

	require.Len(t, rec.Variants, 1)
	v := rec.Variants[0]
	assert.Equal(t, "501", v.VariantID)
	assert.Equal(t, "9001", v.InventoryItemID)
	assert.Equal(t, 19.99, v.Price)
	assert.Equal(t, 24.99, v.CompareAtPrice)
	assert.Equal(t, 7.25, v.UnitCost)
	assert.Equal(t, 0.4, v.Weight)
	assert.Equal(t, "KILOGRAMS", v.WeightUnit)

	require.NotNil(t, v.Option1)
	assert.Equal(t, "M", *v.Option1)
	require.NotNil(t, v.Option2)
	assert.Equal(t, "Blue", *v.Option2)
	assert.Nil(t, v.Option3)

	// The second pass owns inventory levels.
	assert.Empty(t, v.InventoryLevels)
}

func TestMapProductVariantWithoutCost(t *testing.T) {
	node := sampleProductNode()
	node.Variants.Edges[0].Node.InventoryItem.UnitCost = nil

	rec := MapProduct(node, "org-1", "store-1")
	require.Len(t, rec.Variants, 1)
	assert.Equal(t, 0.0, rec.Variants[0].UnitCost)
}
