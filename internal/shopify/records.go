package shopify

// Flat persistence records produced by the mappers. Every record carries
// its owning organization and store id even though the vendor payload does
// not, so a batch job payload is self-contained. Fields are tagged for
// both DynamoDB storage and JSON job payloads.

type LineItemRecord struct {
	LineItemID          string   `dynamodbav:"LineItemId" json:"lineItemId"`
	Title               string   `dynamodbav:"Title" json:"title"`
	SKU                 string   `dynamodbav:"Sku,omitempty" json:"sku,omitempty"`
	Quantity            int      `dynamodbav:"Quantity" json:"quantity"`
	FulfillableQuantity int      `dynamodbav:"FulfillableQuantity" json:"fulfillableQuantity"`
	Price               float64  `dynamodbav:"Price" json:"price"`
	DiscountedPrice     *float64 `dynamodbav:"DiscountedPrice,omitempty" json:"discountedPrice,omitempty"`
	TotalDiscount       float64  `dynamodbav:"TotalDiscount" json:"totalDiscount"`
}

type OrderRecord struct {
	OrganizationID string `dynamodbav:"OrganizationId" json:"organizationId"`
	StoreID        string `dynamodbav:"StoreId" json:"storeId"`
	OrderID        string `dynamodbav:"OrderId" json:"orderId"`
	Name           string `dynamodbav:"Name" json:"name"`
	CustomerID     string `dynamodbav:"CustomerId,omitempty" json:"customerId,omitempty"`

	CreatedAt   *int64 `dynamodbav:"CreatedAt,omitempty" json:"createdAt,omitempty"`
	ProcessedAt *int64 `dynamodbav:"ProcessedAt,omitempty" json:"processedAt,omitempty"`
	UpdatedAt   *int64 `dynamodbav:"UpdatedAt,omitempty" json:"updatedAt,omitempty"`
	ClosedAt    *int64 `dynamodbav:"ClosedAt,omitempty" json:"closedAt,omitempty"`
	CancelledAt *int64 `dynamodbav:"CancelledAt,omitempty" json:"cancelledAt,omitempty"`

	TotalPrice     float64 `dynamodbav:"TotalPrice" json:"totalPrice"`
	SubtotalPrice  float64 `dynamodbav:"SubtotalPrice" json:"subtotalPrice"`
	TotalTax       float64 `dynamodbav:"TotalTax" json:"totalTax"`
	TotalDiscounts float64 `dynamodbav:"TotalDiscounts" json:"totalDiscounts"`
	TotalShipping  float64 `dynamodbav:"TotalShipping" json:"totalShipping"`
	TotalTip       float64 `dynamodbav:"TotalTip" json:"totalTip"`
	Currency       string  `dynamodbav:"Currency,omitempty" json:"currency,omitempty"`

	FinancialStatus   string `dynamodbav:"FinancialStatus,omitempty" json:"financialStatus,omitempty"`
	FulfillmentStatus string `dynamodbav:"FulfillmentStatus,omitempty" json:"fulfillmentStatus,omitempty"`

	ItemCount     int `dynamodbav:"ItemCount" json:"itemCount"`
	TotalQuantity int `dynamodbav:"TotalQuantity" json:"totalQuantity"`

	ShippingCity     string `dynamodbav:"ShippingCity,omitempty" json:"shippingCity,omitempty"`
	ShippingProvince string `dynamodbav:"ShippingProvince,omitempty" json:"shippingProvince,omitempty"`
	ShippingCountry  string `dynamodbav:"ShippingCountry,omitempty" json:"shippingCountry,omitempty"`
	ShippingZip      string `dynamodbav:"ShippingZip,omitempty" json:"shippingZip,omitempty"`

	// Attribution fields stay nil when the order has no journey data.
	SourceURL     *string `dynamodbav:"SourceUrl,omitempty" json:"sourceUrl,omitempty"`
	LandingSite   *string `dynamodbav:"LandingSite,omitempty" json:"landingSite,omitempty"`
	ReferringSite *string `dynamodbav:"ReferringSite,omitempty" json:"referringSite,omitempty"`
	UTMSource     *string `dynamodbav:"UtmSource,omitempty" json:"utmSource,omitempty"`
	UTMMedium     *string `dynamodbav:"UtmMedium,omitempty" json:"utmMedium,omitempty"`
	UTMCampaign   *string `dynamodbav:"UtmCampaign,omitempty" json:"utmCampaign,omitempty"`

	// Line items persist with their parent order, unlike the sibling
	// transaction/refund/fulfillment streams.
	LineItems []LineItemRecord `dynamodbav:"LineItems,omitempty" json:"lineItems,omitempty"`
}

type TransactionRecord struct {
	OrganizationID string  `dynamodbav:"OrganizationId" json:"organizationId"`
	StoreID        string  `dynamodbav:"StoreId" json:"storeId"`
	OrderID        string  `dynamodbav:"OrderId" json:"orderId"`
	TransactionID  string  `dynamodbav:"TransactionId" json:"transactionId"`
	Kind           string  `dynamodbav:"Kind,omitempty" json:"kind,omitempty"`
	Status         string  `dynamodbav:"Status,omitempty" json:"status,omitempty"`
	Gateway        string  `dynamodbav:"Gateway,omitempty" json:"gateway,omitempty"`
	Amount         float64 `dynamodbav:"Amount" json:"amount"`
	ProcessedAt    *int64  `dynamodbav:"ProcessedAt,omitempty" json:"processedAt,omitempty"`
}

type RefundRecord struct {
	OrganizationID string  `dynamodbav:"OrganizationId" json:"organizationId"`
	StoreID        string  `dynamodbav:"StoreId" json:"storeId"`
	OrderID        string  `dynamodbav:"OrderId" json:"orderId"`
	RefundID       string  `dynamodbav:"RefundId" json:"refundId"`
	Note           string  `dynamodbav:"Note,omitempty" json:"note,omitempty"`
	Amount         float64 `dynamodbav:"Amount" json:"amount"`
	CreatedAt      *int64  `dynamodbav:"CreatedAt,omitempty" json:"createdAt,omitempty"`
}

type FulfillmentRecord struct {
	OrganizationID  string `dynamodbav:"OrganizationId" json:"organizationId"`
	StoreID         string `dynamodbav:"StoreId" json:"storeId"`
	OrderID         string `dynamodbav:"OrderId" json:"orderId"`
	FulfillmentID   string `dynamodbav:"FulfillmentId" json:"fulfillmentId"`
	Status          string `dynamodbav:"Status,omitempty" json:"status,omitempty"`
	TrackingCompany string `dynamodbav:"TrackingCompany,omitempty" json:"trackingCompany,omitempty"`
	TrackingNumber  string `dynamodbav:"TrackingNumber,omitempty" json:"trackingNumber,omitempty"`
	CreatedAt       *int64 `dynamodbav:"CreatedAt,omitempty" json:"createdAt,omitempty"`
}

// OrderBundle is the fan-out of one order node: the order row plus its
// sibling record sets, all keyed by the stripped order id.
type OrderBundle struct {
	Order        OrderRecord
	Transactions []TransactionRecord
	Refunds      []RefundRecord
	Fulfillments []FulfillmentRecord
}

type InventoryLevelRecord struct {
	LocationID   string `dynamodbav:"LocationId" json:"locationId"`
	LocationName string `dynamodbav:"LocationName,omitempty" json:"locationName,omitempty"`
	Available    int    `dynamodbav:"Available" json:"available"`
}

type VariantRecord struct {
	VariantID         string  `dynamodbav:"VariantId" json:"variantId"`
	SKU               string  `dynamodbav:"Sku,omitempty" json:"sku,omitempty"`
	Barcode           string  `dynamodbav:"Barcode,omitempty" json:"barcode,omitempty"`
	Price             float64 `dynamodbav:"Price" json:"price"`
	CompareAtPrice    float64 `dynamodbav:"CompareAtPrice" json:"compareAtPrice"`
	InventoryQuantity int     `dynamodbav:"InventoryQuantity" json:"inventoryQuantity"`
	InventoryItemID   string  `dynamodbav:"InventoryItemId,omitempty" json:"inventoryItemId,omitempty"`
	UnitCost          float64 `dynamodbav:"UnitCost" json:"unitCost"`
	Weight            float64 `dynamodbav:"Weight" json:"weight"`
	WeightUnit        string  `dynamodbav:"WeightUnit,omitempty" json:"weightUnit,omitempty"`
	Option1           *string `dynamodbav:"Option1,omitempty" json:"option1,omitempty"`
	Option2           *string `dynamodbav:"Option2,omitempty" json:"option2,omitempty"`
	Option3           *string `dynamodbav:"Option3,omitempty" json:"option3,omitempty"`

	// Populated in the second pass, after all product pages are fetched.
	InventoryLevels []InventoryLevelRecord `dynamodbav:"InventoryLevels,omitempty" json:"inventoryLevels,omitempty"`
}

type ProductRecord struct {
	OrganizationID string   `dynamodbav:"OrganizationId" json:"organizationId"`
	StoreID        string   `dynamodbav:"StoreId" json:"storeId"`
	ProductID      string   `dynamodbav:"ProductId" json:"productId"`
	Handle         string   `dynamodbav:"Handle,omitempty" json:"handle,omitempty"`
	Title          string   `dynamodbav:"Title" json:"title"`
	ProductType    string   `dynamodbav:"ProductType,omitempty" json:"productType,omitempty"`
	Vendor         string   `dynamodbav:"Vendor,omitempty" json:"vendor,omitempty"`
	Status         string   `dynamodbav:"Status,omitempty" json:"status,omitempty"`
	TotalInventory int      `dynamodbav:"TotalInventory" json:"totalInventory"`
	Tags           []string `dynamodbav:"Tags,omitempty" json:"tags,omitempty"`
	CreatedAt      *int64   `dynamodbav:"CreatedAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt      *int64   `dynamodbav:"UpdatedAt,omitempty" json:"updatedAt,omitempty"`
	PublishedAt    *int64   `dynamodbav:"PublishedAt,omitempty" json:"publishedAt,omitempty"`

	Variants []VariantRecord `dynamodbav:"Variants,omitempty" json:"variants,omitempty"`
}

type CustomerRecord struct {
	OrganizationID   string   `dynamodbav:"OrganizationId" json:"organizationId"`
	StoreID          string   `dynamodbav:"StoreId" json:"storeId"`
	CustomerID       string   `dynamodbav:"CustomerId" json:"customerId"`
	Email            string   `dynamodbav:"Email,omitempty" json:"email,omitempty"`
	FirstName        string   `dynamodbav:"FirstName,omitempty" json:"firstName,omitempty"`
	LastName         string   `dynamodbav:"LastName,omitempty" json:"lastName,omitempty"`
	Phone            string   `dynamodbav:"Phone,omitempty" json:"phone,omitempty"`
	OrdersCount      int      `dynamodbav:"OrdersCount" json:"ordersCount"`
	TotalSpent       float64  `dynamodbav:"TotalSpent" json:"totalSpent"`
	AcceptsMarketing bool     `dynamodbav:"AcceptsMarketing" json:"acceptsMarketing"`
	City             string   `dynamodbav:"City,omitempty" json:"city,omitempty"`
	Country          string   `dynamodbav:"Country,omitempty" json:"country,omitempty"`
	Tags             []string `dynamodbav:"Tags,omitempty" json:"tags,omitempty"`
	CreatedAt        *int64   `dynamodbav:"CreatedAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt        *int64   `dynamodbav:"UpdatedAt,omitempty" json:"updatedAt,omitempty"`
}

// SessionRecord is synthesized either from the analytics API (aggregated
// by date + traffic source) or inferred one-per-order from attribution.
type SessionRecord struct {
	OrganizationID string  `dynamodbav:"OrganizationId" json:"organizationId"`
	StoreID        string  `dynamodbav:"StoreId" json:"storeId"`
	SessionID      string  `dynamodbav:"SessionId" json:"sessionId"`
	OrderID        string  `dynamodbav:"OrderId,omitempty" json:"orderId,omitempty"`
	Date           string  `dynamodbav:"Date" json:"date"`
	TrafficSource  string  `dynamodbav:"TrafficSource,omitempty" json:"trafficSource,omitempty"`
	UTMSource      *string `dynamodbav:"UtmSource,omitempty" json:"utmSource,omitempty"`
	UTMMedium      *string `dynamodbav:"UtmMedium,omitempty" json:"utmMedium,omitempty"`
	UTMCampaign    *string `dynamodbav:"UtmCampaign,omitempty" json:"utmCampaign,omitempty"`
	LandingPage    *string `dynamodbav:"LandingPage,omitempty" json:"landingPage,omitempty"`
	ReferrerURL    *string `dynamodbav:"ReferrerUrl,omitempty" json:"referrerUrl,omitempty"`
	Sessions       int     `dynamodbav:"Sessions" json:"sessions"`
	Visitors       int     `dynamodbav:"Visitors" json:"visitors"`
	Orders         int     `dynamodbav:"Orders" json:"orders"`
	ConversionRate float64 `dynamodbav:"ConversionRate" json:"conversionRate"`
	Inferred       bool    `dynamodbav:"Inferred" json:"inferred"`
}

// CostComponentRecord is created for every variant with a known positive
// per-unit cost; profitability rollups consume these outside this core.
type CostComponentRecord struct {
	OrganizationID string  `dynamodbav:"OrganizationId" json:"organizationId"`
	StoreID        string  `dynamodbav:"StoreId" json:"storeId"`
	ProductID      string  `dynamodbav:"ProductId" json:"productId"`
	VariantID      string  `dynamodbav:"VariantId" json:"variantId"`
	UnitCost       float64 `dynamodbav:"UnitCost" json:"unitCost"`
	Currency       string  `dynamodbav:"Currency,omitempty" json:"currency,omitempty"`
	Source         string  `dynamodbav:"Source" json:"source"`
}
