package client

import "time"

// Shop is the backend's record of a registered storefront. ID is the
// backend-issued identifier used to scope every dashboard and insight call.
type Shop struct {
	ID        string    `json:"id"`
	Domain    string    `json:"domain"`
	Scopes    string    `json:"scopes"`
	CreatedAt time.Time `json:"created_at"`
}

// DashboardStats is the summary block at the top of the dashboard.
type DashboardStats struct {
	TotalRevenue      float64 `json:"total_revenue"`
	TotalOrders       int     `json:"total_orders"`
	TotalCustomers    int     `json:"total_customers"`
	AverageOrderValue float64 `json:"average_order_value"`
	RevenueChangePct  float64 `json:"revenue_change_pct"`
	OrdersChangePct   float64 `json:"orders_change_pct"`
}

// RevenuePoint is one bucket of the time-bucketed revenue series.
type RevenuePoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// RevenueSeries is the revenue chart payload.
type RevenueSeries struct {
	Points       []RevenuePoint `json:"points"`
	TotalRevenue float64        `json:"total_revenue"`
	Days         int            `json:"days"`
}

// TopProduct is one row of the top-products table.
type TopProduct struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Revenue   float64 `json:"revenue"`
	UnitsSold int     `json:"units_sold"`
}

// TopProducts is the top-products payload.
type TopProducts struct {
	Products []TopProduct `json:"products"`
}

// Insight is a single generated recommendation or anomaly report.
type Insight struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Severity    string    `json:"severity"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Dismissed   bool      `json:"dismissed"`
	ActionTaken bool      `json:"action_taken"`
	CreatedAt   time.Time `json:"created_at"`
}

// InsightsPage is one page of the insights listing.
type InsightsPage struct {
	Insights []Insight `json:"insights"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

// InsightsFilter narrows the insights listing. Zero-valued fields are
// omitted from the query string and the backend applies its defaults.
type InsightsFilter struct {
	Page             int
	PageSize         int
	Type             string
	Severity         string
	IncludeDismissed bool
}

// HealthStatus is the cached view of backend availability returned by
// [Client.CheckHealth]. Error is set only when Healthy is false.
type HealthStatus struct {
	Healthy        bool
	BackendVersion string
	CheckedAt      time.Time
	Error          string
}

// BackendHealth is the raw body of the backend's /health endpoint.
type BackendHealth struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
