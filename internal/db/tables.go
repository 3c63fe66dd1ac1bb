package db

import "os"

func StoresTableName() string {
	return os.Getenv("STORES_TABLE")
}

func OrdersTableName() string {
	return os.Getenv("ORDERS_TABLE")
}

func TransactionsTableName() string {
	return os.Getenv("TRANSACTIONS_TABLE")
}

func RefundsTableName() string {
	return os.Getenv("REFUNDS_TABLE")
}

func FulfillmentsTableName() string {
	return os.Getenv("FULFILLMENTS_TABLE")
}

func ProductsTableName() string {
	return os.Getenv("PRODUCTS_TABLE")
}

func CustomersTableName() string {
	return os.Getenv("CUSTOMERS_TABLE")
}

func SessionsTableName() string {
	return os.Getenv("SESSIONS_TABLE")
}

func CostComponentsTableName() string {
	return os.Getenv("COST_COMPONENTS_TABLE")
}
