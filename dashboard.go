package client

import (
	"context"
	"strconv"
)

// GetDashboardStats fetches the dashboard summary block for a shop.
func (c *Client) GetDashboardStats(ctx context.Context, shopID string) (*DashboardStats, error) {
	return doRequest[DashboardStats](ctx, c, c.rest, epDashboardStats, requestParams{
		queryParams: map[string]string{"shop_id": shopID},
	})
}

// GetRevenueChart fetches the day-bucketed revenue series covering the
// last days days.
func (c *Client) GetRevenueChart(ctx context.Context, shopID string, days int) (*RevenueSeries, error) {
	return doRequest[RevenueSeries](ctx, c, c.rest, epRevenueChart, requestParams{
		queryParams: map[string]string{
			"shop_id": shopID,
			"days":    strconv.Itoa(days),
		},
	})
}

// GetTopProducts fetches the top-selling products for a shop, at most
// limit rows.
func (c *Client) GetTopProducts(ctx context.Context, shopID string, limit int) (*TopProducts, error) {
	return doRequest[TopProducts](ctx, c, c.rest, epTopProducts, requestParams{
		queryParams: map[string]string{
			"shop_id": shopID,
			"limit":   strconv.Itoa(limit),
		},
	})
}
