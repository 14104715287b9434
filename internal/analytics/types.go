package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// Summary bundles the merchant dashboard KPIs.
type Summary struct {
	Window              TimeWindow      `json:"window"`
	TotalOrders         int64           `json:"total_orders"`
	DeliveredOrders     int64           `json:"delivered_orders"`
	RevenueTotal        decimal.Decimal `json:"revenue_total"`
	AverageOrderValue   decimal.Decimal `json:"average_order_value"`
	CompletionRate      float64         `json:"completion_rate"`
	DriverAverageRating float64         `json:"driver_average_rating"`
	RatedOrders         int64           `json:"rated_orders"`
}

// CustomerStat is one row of the customer rollup.
type CustomerStat struct {
	CustomerID    *int64          `json:"customer_id,omitempty"`
	Key           string          `json:"key"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone,omitempty"`
	Address       string          `json:"address,omitempty"`
	TotalOrders   int64           `json:"total_orders"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	LastOrderDate time.Time       `json:"last_order_date"`
}

// DriverRating summarises ratings collected for one driver.
type DriverRating struct {
	DriverID      int64   `json:"driver_id"`
	AverageRating float64 `json:"average_rating"`
	RatedOrders   int64   `json:"rated_orders"`
}
