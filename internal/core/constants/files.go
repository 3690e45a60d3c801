package constants

// Flat files kept in the data directory.
const (
	OrdersFile                = "orders.csv"
	OrderItemsFile            = "order_items.csv"
	MenuFile                  = "menu.txt"
	CustomersFile             = "customers.txt"
	ProfilesFile              = "profiles.txt"
	SalesFile                 = "sales.txt"
	TransactionsFile          = "transactions.txt"
	AdminNotificationsFile    = "admin_notifications.txt"
	CustomerNotificationsFile = "customer_notifications.txt"
)

// Analytics defaults.
const (
	DefaultTopItems     = 10
	DefaultTopCustomers = 6
	DefaultCurrency     = "₱"
	TotalSeriesName     = "TOTAL"

	// MinChartSize is the smallest accepted chart width and height in pixels.
	MinChartSize = 200
)

// Account defaults.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

// MenuCategories lists the accepted menu categories in display order.
var MenuCategories = []string{"Food", "Drinks", "Desserts", "Combo Meal", "Snacks"}
