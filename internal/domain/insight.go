package domain

// ProductAlert is a product prediction positioned against the current week.
// Weeks is the number of weeks overdue or until the order, depending on
// the list it appears in.
type ProductAlert struct {
	ProductName         string   `json:"product_name"`
	ProductCategory     string   `json:"product_category"`
	NextOrderPrediction WeekYear `json:"next_order_prediction"`
	Weeks               int      `json:"weeks"`
	Priority            Priority `json:"priority"`
}

// ClientProducts groups the alerted products of one client
type ClientProducts struct {
	Client   Client         `json:"client"`
	Products []ProductAlert `json:"products"`
}

// InactiveClient is a client that has not ordered for a while
type InactiveClient struct {
	Client              Client    `json:"client"`
	LastOrder           *WeekYear `json:"last_order"`
	WeeksSinceLastOrder int       `json:"weeks_since_last_order"`
	Priority            Priority  `json:"priority"`
}

// ClientOutlook is the aggregate prediction of a client with its status
type ClientOutlook struct {
	Client              Client     `json:"client"`
	NextOrderPrediction WeekYear   `json:"next_order_prediction"`
	Status              WeekStatus `json:"status"`
	LastOrder           *WeekYear  `json:"last_order"`
	WeeklyConsumption   float64    `json:"weekly_consumption"`
}

// Dashboard is the landing page payload
type Dashboard struct {
	CurrentWeek      WeekYear         `json:"current_week"`
	TotalClients     int              `json:"total_clients"`
	TotalOrders      int              `json:"total_orders"`
	OverdueClients   []ClientOutlook  `json:"overdue_clients"`
	UpcomingClients  []ClientOutlook  `json:"upcoming_clients"`
	OverdueProducts  []ClientProducts `json:"overdue_products"`
	UpcomingProducts []ClientProducts `json:"upcoming_products"`
	RecentOrders     []Order          `json:"recent_orders"`
	UnreadAlerts     int              `json:"unread_alerts"`
}
