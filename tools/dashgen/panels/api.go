package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RequestRate shows the WiziShop API call rate.
func RequestRate() *timeseries.PanelBuilder {
	return series("API Request Rate", "WiziShop API calls per second", "mean", "max").
		WithTarget(PromQuery(`wizishop:api_requests:rate5m`, "req/s", "A")).
		Unit("reqps")
}

// LatencyPercentiles shows p50, p95 and p99 call latency. Throttle
// cooldowns are not part of the measured duration.
func LatencyPercentiles() *timeseries.PanelBuilder {
	return series("API Latency Percentiles", "WiziShop API call duration, cooldowns excluded", "mean", "max").
		WithTarget(quantile(0.50, "A")).
		WithTarget(quantile(0.95, "B")).
		WithTarget(quantile(0.99, "C")).
		Unit("s")
}

// RequestsByStatus splits the call rate by response status. Transport
// failures appear as status "error".
func RequestsByStatus() *timeseries.PanelBuilder {
	return series("Requests by Status", "WiziShop API calls per second by HTTP status", "mean", "max").
		WithTarget(PromQuery(`sum by (status) (rate(wizishop_api_requests_total[5m]))`, "{{status}}", "A")).
		Unit("reqps")
}

// ErrorRate shows failed calls as a percentage of all calls.
func ErrorRate() *timeseries.PanelBuilder {
	return series("Error Rate %", "5xx, 429 and transport failures as percentage of API calls").
		WithTarget(PromQuery(
			`wizishop:api_errors:rate5m / wizishop:api_requests:rate5m * 100`,
			"error %", "A",
		)).
		Unit("percent").
		Thresholds(warnCrit(1, 5)).
		ColorScheme(dashboard.NewFieldColorBuilder().Mode(dashboard.FieldColorModeIdThresholds))
}
