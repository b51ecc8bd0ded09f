package models

// ProductSales aggregates sold quantities of one product name.
type ProductSales struct {
	Name      string  `json:"name"`
	TotalSold int64   `json:"totalSold"`
	Revenue   float64 `json:"revenue"`
}

// DashboardStats is the admin overview.
type DashboardStats struct {
	TotalOrders   int64          `json:"totalOrders"`
	TotalProducts int64          `json:"totalProducts"`
	PendingOrders int64          `json:"pendingOrders"`
	TotalRevenue  float64        `json:"totalRevenue"`
	RecentOrders  []Order        `json:"recentOrders"`
	TopProducts   []ProductSales `json:"topProducts"`
}
