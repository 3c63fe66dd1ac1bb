package shopify

// Typed shapes for the Admin GraphQL responses the sync consumes. The
// decode happens once at the client boundary; mappers never see raw JSON.

type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type MoneyV2 struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type MoneyBag struct {
	ShopMoney MoneyV2 `json:"shopMoney"`
}

type CountField struct {
	Count int `json:"count"`
}

type MailingAddress struct {
	City         string `json:"city"`
	Province     string `json:"province"`
	ProvinceCode string `json:"provinceCode"`
	Country      string `json:"country"`
	CountryCode  string `json:"countryCodeV2"`
	Zip          string `json:"zip"`
}

// UTMParameters and MomentFirstVisit describe the optional customer-journey
// attribution block on an order. The whole block is frequently absent.
type UTMParameters struct {
	Source   string `json:"source"`
	Medium   string `json:"medium"`
	Campaign string `json:"campaign"`
}

type MomentFirstVisit struct {
	LandingPage   string         `json:"landingPage"`
	ReferrerURL   string         `json:"referrerUrl"`
	Source        string         `json:"source"`
	SourceType    string         `json:"sourceType"`
	UTMParameters *UTMParameters `json:"utmParameters"`
}

type CustomerJourneySummary struct {
	FirstVisit *MomentFirstVisit `json:"firstVisit"`
}

type LineItemNode struct {
	ID                     string    `json:"id"`
	Title                  string    `json:"title"`
	SKU                    string    `json:"sku"`
	Quantity               int       `json:"quantity"`
	FulfillableQuantity    int       `json:"fulfillableQuantity"`
	OriginalUnitPriceSet   MoneyBag  `json:"originalUnitPriceSet"`
	DiscountedUnitPriceSet *MoneyBag `json:"discountedUnitPriceSet"`
}

type LineItemConnection struct {
	Edges []struct {
		Node LineItemNode `json:"node"`
	} `json:"edges"`
}

type TransactionNode struct {
	ID          string   `json:"id"`
	Kind        string   `json:"kind"`
	Status      string   `json:"status"`
	Gateway     string   `json:"gateway"`
	ProcessedAt string   `json:"processedAt"`
	AmountSet   MoneyBag `json:"amountSet"`
}

type RefundNode struct {
	ID               string   `json:"id"`
	Note             string   `json:"note"`
	CreatedAt        string   `json:"createdAt"`
	TotalRefundedSet MoneyBag `json:"totalRefundedSet"`
}

type FulfillmentNode struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt"`
	TrackingInfo []struct {
		Company string `json:"company"`
		Number  string `json:"number"`
	} `json:"trackingInfo"`
}

type OrderNode struct {
	ID                       string   `json:"id"`
	Name                     string   `json:"name"`
	CreatedAt                string   `json:"createdAt"`
	ProcessedAt              string   `json:"processedAt"`
	UpdatedAt                string   `json:"updatedAt"`
	ClosedAt                 string   `json:"closedAt"`
	CancelledAt              string   `json:"cancelledAt"`
	DisplayFinancialStatus   string   `json:"displayFinancialStatus"`
	DisplayFulfillmentStatus string   `json:"displayFulfillmentStatus"`
	CurrentTotalPriceSet     MoneyBag `json:"currentTotalPriceSet"`
	SubtotalPriceSet         MoneyBag `json:"subtotalPriceSet"`
	TotalTaxSet              MoneyBag `json:"totalTaxSet"`
	TotalDiscountsSet        MoneyBag `json:"totalDiscountsSet"`
	TotalShippingPriceSet    MoneyBag `json:"totalShippingPriceSet"`
	TotalTipReceivedSet      MoneyBag `json:"totalTipReceivedSet"`
	Customer                 *struct {
		ID string `json:"id"`
	} `json:"customer"`
	ShippingAddress        *MailingAddress         `json:"shippingAddress"`
	CustomerJourneySummary *CustomerJourneySummary `json:"customerJourneySummary"`
	LineItems              LineItemConnection      `json:"lineItems"`
	Transactions           []TransactionNode       `json:"transactions"`
	Refunds                []RefundNode            `json:"refunds"`
	Fulfillments           []FulfillmentNode       `json:"fulfillments"`
}

type VariantNode struct {
	ID                string `json:"id"`
	SKU               string `json:"sku"`
	Barcode           string `json:"barcode"`
	Price             string `json:"price"`
	CompareAtPrice    string `json:"compareAtPrice"`
	InventoryQuantity int    `json:"inventoryQuantity"`
	SelectedOptions   []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"selectedOptions"`
	InventoryItem struct {
		ID          string   `json:"id"`
		UnitCost    *MoneyV2 `json:"unitCost"`
		Measurement struct {
			Weight struct {
				Value float64 `json:"value"`
				Unit  string  `json:"unit"`
			} `json:"weight"`
		} `json:"measurement"`
	} `json:"inventoryItem"`
}

type ProductNode struct {
	ID             string   `json:"id"`
	Handle         string   `json:"handle"`
	Title          string   `json:"title"`
	ProductType    string   `json:"productType"`
	Vendor         string   `json:"vendor"`
	Status         string   `json:"status"`
	TotalInventory int      `json:"totalInventory"`
	Tags           []string `json:"tags"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
	PublishedAt    string   `json:"publishedAt"`
	Variants       struct {
		Edges []struct {
			Node VariantNode `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

type CustomerNode struct {
	ID                    string     `json:"id"`
	Email                 string     `json:"email"`
	FirstName             string     `json:"firstName"`
	LastName              string     `json:"lastName"`
	Phone                 string     `json:"phone"`
	NumberOfOrders        CountField `json:"numberOfOrders"`
	AmountSpent           MoneyV2    `json:"amountSpent"`
	EmailMarketingConsent *struct {
		MarketingState string `json:"marketingState"`
	} `json:"emailMarketingConsent"`
	DefaultAddress *MailingAddress `json:"defaultAddress"`
	Tags           []string        `json:"tags"`
	CreatedAt      string          `json:"createdAt"`
	UpdatedAt      string          `json:"updatedAt"`
}

// InventoryLevelNode is returned by the second-pass inventory query,
// keyed by inventory-item id across all fetched variants.
type InventoryLevelNode struct {
	ID       string `json:"id"`
	Location struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"location"`
	Quantities []struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	} `json:"quantities"`
}

type InventoryItemNode struct {
	ID              string `json:"id"`
	InventoryLevels struct {
		Edges []struct {
			Node InventoryLevelNode `json:"node"`
		} `json:"edges"`
	} `json:"inventoryLevels"`
}

type ShopInfo struct {
	Name         string `json:"name"`
	IANATimezone string `json:"ianaTimezone"`
	CurrencyCode string `json:"currencyCode"`
}

// AnalyticsRow is one ShopifyQL sessions row (date + traffic source).
type AnalyticsRow struct {
	Date           string
	TrafficSource  string
	Sessions       int
	Visitors       int
	Orders         int
	ConversionRate float64
}

type OrdersPage struct {
	Nodes    []OrderNode
	PageInfo PageInfo
	Errors   []GraphQLError
}

type ProductsPage struct {
	Nodes    []ProductNode
	PageInfo PageInfo
	Errors   []GraphQLError
}

type CustomersPage struct {
	Nodes    []CustomerNode
	PageInfo PageInfo
	Errors   []GraphQLError
}
