package repositories

const (
	appointmentsCollection = "appointments"
	transactionsCollection = "transactions"
	stockCollection        = "stock"
)
