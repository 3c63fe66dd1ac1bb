package shopify

// Query shapes for each entity stream. Orders carry full detail
// (transactions, refunds, fulfillments, customer journey); inventory
// levels are deliberately a separate batched query because combining them
// with the product query blows past the cost budget for one request.

const ordersQuery = `
	query GetOrders($first: Int!, $cursor: String, $query: String) {
		orders(first: $first, after: $cursor, query: $query, sortKey: CREATED_AT) {
			pageInfo { hasNextPage endCursor }
			edges {
				node {
					id
					name
					createdAt
					processedAt
					updatedAt
					closedAt
					cancelledAt
					displayFinancialStatus
					displayFulfillmentStatus
					currentTotalPriceSet { shopMoney { amount currencyCode } }
					subtotalPriceSet { shopMoney { amount } }
					totalTaxSet { shopMoney { amount } }
					totalDiscountsSet { shopMoney { amount } }
					totalShippingPriceSet { shopMoney { amount } }
					totalTipReceivedSet { shopMoney { amount } }
					customer { id }
					shippingAddress { city province provinceCode country countryCodeV2 zip }
					customerJourneySummary {
						firstVisit {
							landingPage
							referrerUrl
							source
							sourceType
							utmParameters { source medium campaign }
						}
					}
					lineItems(first: 100) {
						edges {
							node {
								id
								title
								sku
								quantity
								fulfillableQuantity
								originalUnitPriceSet { shopMoney { amount } }
								discountedUnitPriceSet { shopMoney { amount } }
							}
						}
					}
					transactions(first: 20) {
						id
						kind
						status
						gateway
						processedAt
						amountSet { shopMoney { amount } }
					}
					refunds(first: 20) {
						id
						note
						createdAt
						totalRefundedSet { shopMoney { amount } }
					}
					fulfillments(first: 20) {
						id
						status
						createdAt
						trackingInfo { company number }
					}
				}
			}
		}
	}`

const productsQuery = `
	query GetProducts($first: Int!, $cursor: String) {
		products(first: $first, after: $cursor) {
			pageInfo { hasNextPage endCursor }
			edges {
				node {
					id
					handle
					title
					productType
					vendor
					status
					totalInventory
					tags
					createdAt
					updatedAt
					publishedAt
					variants(first: 100) {
						edges {
							node {
								id
								sku
								barcode
								price
								compareAtPrice
								inventoryQuantity
								selectedOptions { name value }
								inventoryItem {
									id
									unitCost { amount currencyCode }
									measurement { weight { value unit } }
								}
							}
						}
					}
				}
			}
		}
	}`

const customersQuery = `
	query GetCustomers($first: Int!, $cursor: String) {
		customers(first: $first, after: $cursor) {
			pageInfo { hasNextPage endCursor }
			edges {
				node {
					id
					email
					firstName
					lastName
					phone
					numberOfOrders { count }
					amountSpent { amount currencyCode }
					emailMarketingConsent { marketingState }
					defaultAddress { city province country zip }
					tags
					createdAt
					updatedAt
				}
			}
		}
	}`

const inventoryLevelsQuery = `
	query GetInventoryLevels($ids: [ID!]!) {
		nodes(ids: $ids) {
			... on InventoryItem {
				id
				inventoryLevels(first: 20) {
					edges {
						node {
							id
							location { id name }
							quantities(names: ["available"]) { name quantity }
						}
					}
				}
			}
		}
	}`

const shopInfoQuery = `
	query GetShopInfo {
		shop {
			name
			ianaTimezone
			currencyCode
		}
	}`

const sessionsAnalyticsQuery = `
	query GetSessions($query: String!) {
		shopifyqlQuery(query: $query) {
			... on TableResponse {
				tableData {
					columns { name }
					rowData
				}
			}
			parseErrors { message }
		}
	}`
