package shopify

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Client is a credential-bound request/response wrapper over the Admin
// GraphQL API. It decodes pages into typed nodes and passes vendor-side
// GraphQL errors through untouched; retry, pagination policy, and error
// handling live in the sync orchestrator.
type Client struct {
	shopDomain  string
	accessToken string
	apiVersion  string
}

func NewClient(shopDomain, accessToken, apiVersion string) *Client {
	return &Client{
		shopDomain:  shopDomain,
		accessToken: accessToken,
		apiVersion:  apiVersion,
	}
}

type connEnvelope[N any] struct {
	PageInfo PageInfo `json:"pageInfo"`
	Edges    []struct {
		Node N `json:"node"`
	} `json:"edges"`
}

func nodesOf[N any](c connEnvelope[N]) []N {
	out := make([]N, 0, len(c.Edges))
	for _, e := range c.Edges {
		out = append(out, e.Node)
	}
	return out
}

func (c *Client) GetOrders(ctx context.Context, first int, cursor string, query string) (*OrdersPage, error) {
	type payload struct {
		Orders connEnvelope[OrderNode] `json:"orders"`
	}

	vars := map[string]any{"first": first}
	if cursor != "" {
		vars["cursor"] = cursor
	}
	if query != "" {
		vars["query"] = query
	}

	res, _, err := PostGraphQL[payload](ctx, c.shopDomain, c.apiVersion, c.accessToken, ordersQuery, vars)
	if err != nil {
		return nil, fmt.Errorf("fetch orders page: %w", err)
	}

	return &OrdersPage{
		Nodes:    nodesOf(res.Data.Orders),
		PageInfo: res.Data.Orders.PageInfo,
		Errors:   res.Errors,
	}, nil
}

func (c *Client) GetProducts(ctx context.Context, first int, cursor string) (*ProductsPage, error) {
	type payload struct {
		Products connEnvelope[ProductNode] `json:"products"`
	}

	vars := map[string]any{"first": first}
	if cursor != "" {
		vars["cursor"] = cursor
	}

	res, _, err := PostGraphQL[payload](ctx, c.shopDomain, c.apiVersion, c.accessToken, productsQuery, vars)
	if err != nil {
		return nil, fmt.Errorf("fetch products page: %w", err)
	}

	return &ProductsPage{
		Nodes:    nodesOf(res.Data.Products),
		PageInfo: res.Data.Products.PageInfo,
		Errors:   res.Errors,
	}, nil
}

func (c *Client) GetCustomers(ctx context.Context, first int, cursor string) (*CustomersPage, error) {
	type payload struct {
		Customers connEnvelope[CustomerNode] `json:"customers"`
	}

	vars := map[string]any{"first": first}
	if cursor != "" {
		vars["cursor"] = cursor
	}

	res, _, err := PostGraphQL[payload](ctx, c.shopDomain, c.apiVersion, c.accessToken, customersQuery, vars)
	if err != nil {
		return nil, fmt.Errorf("fetch customers page: %w", err)
	}

	return &CustomersPage{
		Nodes:    nodesOf(res.Data.Customers),
		PageInfo: res.Data.Customers.PageInfo,
		Errors:   res.Errors,
	}, nil
}

// GetInventoryLevels resolves inventory levels for one batch of
// inventory-item GIDs. Returned map is keyed by the stripped item id.
func (c *Client) GetInventoryLevels(ctx context.Context, itemIDs []string) (map[string][]InventoryLevelRecord, error) {
	type payload struct {
		Nodes []InventoryItemNode `json:"nodes"`
	}

	gids := make([]string, 0, len(itemIDs))
	for _, id := range itemIDs {
		if !strings.HasPrefix(id, "gid://") {
			id = "gid://shopify/InventoryItem/" + id
		}
		gids = append(gids, id)
	}

	res, _, err := PostGraphQL[payload](ctx, c.shopDomain, c.apiVersion, c.accessToken, inventoryLevelsQuery, map[string]any{"ids": gids})
	if err != nil {
		return nil, fmt.Errorf("fetch inventory levels: %w", err)
	}
	if len(res.Errors) > 0 {
		return nil, fmt.Errorf("inventory levels query: %s", joinGraphQLErrors(res.Errors))
	}

	out := make(map[string][]InventoryLevelRecord, len(res.Data.Nodes))
	for _, item := range res.Data.Nodes {
		if item.ID == "" {
			continue
		}
		levels := make([]InventoryLevelRecord, 0, len(item.InventoryLevels.Edges))
		for _, e := range item.InventoryLevels.Edges {
			available := 0
			for _, q := range e.Node.Quantities {
				if q.Name == "available" {
					available = q.Quantity
				}
			}
			levels = append(levels, InventoryLevelRecord{
				LocationID:   StripGID(e.Node.Location.ID, "Location"),
				LocationName: e.Node.Location.Name,
				Available:    available,
			})
		}
		out[StripGID(item.ID, "InventoryItem")] = levels
	}
	return out, nil
}

func (c *Client) GetShopInfo(ctx context.Context) (*ShopInfo, error) {
	type payload struct {
		Shop ShopInfo `json:"shop"`
	}

	res, _, err := PostGraphQL[payload](ctx, c.shopDomain, c.apiVersion, c.accessToken, shopInfoQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch shop info: %w", err)
	}
	if len(res.Errors) > 0 {
		return nil, fmt.Errorf("shop info query: %s", joinGraphQLErrors(res.Errors))
	}

	return &res.Data.Shop, nil
}

// GetAnalyticsSessions runs a ShopifyQL sessions query aggregated by day
// and traffic source. Not every plan exposes this API; callers must treat
// an error here as a signal to fall back to order-derived sessions.
func (c *Client) GetAnalyticsSessions(ctx context.Context, startDate, endDate string) ([]AnalyticsRow, error) {
	type tableData struct {
		Columns []struct {
			Name string `json:"name"`
		} `json:"columns"`
		RowData [][]string `json:"rowData"`
	}
	type payload struct {
		ShopifyqlQuery struct {
			TableData   *tableData `json:"tableData"`
			ParseErrors []struct {
				Message string `json:"message"`
			} `json:"parseErrors"`
		} `json:"shopifyqlQuery"`
	}

	ql := fmt.Sprintf(
		"FROM sessions SHOW sessions, online_store_visitors, orders, conversion_rate GROUP BY day, session_source SINCE %s UNTIL %s",
		startDate, endDate,
	)

	res, _, err := PostGraphQL[payload](ctx, c.shopDomain, c.apiVersion, c.accessToken, sessionsAnalyticsQuery, map[string]any{"query": ql})
	if err != nil {
		return nil, fmt.Errorf("fetch analytics sessions: %w", err)
	}
	if len(res.Errors) > 0 {
		return nil, fmt.Errorf("analytics query: %s", joinGraphQLErrors(res.Errors))
	}
	if pe := res.Data.ShopifyqlQuery.ParseErrors; len(pe) > 0 {
		return nil, fmt.Errorf("analytics query parse error: %s", pe[0].Message)
	}

	td := res.Data.ShopifyqlQuery.TableData
	if td == nil {
		return nil, nil
	}

	col := map[string]int{}
	for i, cdef := range td.Columns {
		col[cdef.Name] = i
	}

	rows := make([]AnalyticsRow, 0, len(td.RowData))
	for _, raw := range td.RowData {
		row := AnalyticsRow{
			Date:           cell(raw, col, "day"),
			TrafficSource:  cell(raw, col, "session_source"),
			Sessions:       atoiSafe(cell(raw, col, "sessions")),
			Visitors:       atoiSafe(cell(raw, col, "online_store_visitors")),
			Orders:         atoiSafe(cell(raw, col, "orders")),
			ConversionRate: ParseMoney(cell(raw, col, "conversion_rate")),
		}
		if row.Date == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func cell(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func atoiSafe(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
