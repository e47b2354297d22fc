// Command basic renders a one-shot dashboard summary for a single shop,
// the same call pattern a page render would use.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	client "github.com/storesight/storesight-go-client"
)

func main() {
	shopDomain := os.Getenv("STORESIGHT_SHOP_DOMAIN")
	accessToken := os.Getenv("STORESIGHT_ACCESS_TOKEN")
	if shopDomain == "" {
		fmt.Fprintln(os.Stderr, "STORESIGHT_SHOP_DOMAIN is required")
		os.Exit(1)
	}

	log := logrus.New()
	log.SetLevel(logrus.DebugLevel)

	opts := []client.Option{
		client.WithRequestLogger(client.NewLogrusLogger(log)),
		client.WithMetrics(client.NewMetricsCollectorWithRegistry(prometheus.NewRegistry())),
	}
	if baseURL := os.Getenv("STORESIGHT_BASE_URL"); baseURL != "" {
		opts = append(opts, client.WithBaseURL(baseURL))
	}

	c := client.New(shopDomain, accessToken, opts...)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if health := c.CheckHealth(ctx); !health.Healthy {
		log.Warnf("backend unhealthy: %s", health.Error)
	} else {
		log.Infof("backend healthy, version %s", health.BackendVersion)
	}

	shopID, ok := c.ResolveShopID(ctx)
	if !ok {
		log.Warn("shop is not resolvable yet, nothing to render")
		return
	}

	stats, err := c.GetDashboardStats(ctx, shopID)
	if err != nil {
		log.Fatalf("dashboard stats: %v", err)
	}
	fmt.Printf("revenue: %.2f over %d orders (avg %.2f)\n",
		stats.TotalRevenue, stats.TotalOrders, stats.AverageOrderValue)

	// Absorb failures on the secondary blocks the way a page render would
	if series := client.SafeResult(c.GetRevenueChart(ctx, shopID, 30)); series != nil {
		fmt.Printf("chart: %d points over %d days\n", len(series.Points), series.Days)
	}

	if insights := client.SafeResult(c.ListInsights(ctx, shopID, client.InsightsFilter{
		PageSize: 5,
		Severity: "high",
	})); insights != nil {
		for _, insight := range insights.Insights {
			fmt.Printf("insight [%s] %s\n", insight.Severity, insight.Title)
		}
	}
}
