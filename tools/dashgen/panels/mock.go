package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// MockRequestRate plots requests served by tools/mock-server, by route.
func MockRequestRate() *timeseries.PanelBuilder {
	return series("Mock API Requests", "Requests per second served by tools/mock-server, by route", "mean", "max").
		WithTarget(PromQuery(
			mockExpr(`sum by (path) (rate(wizishop_mock_http_requests_total{%s}[5m]))`),
			"{{path}}", "A",
		)).
		Unit("reqps")
}

// MockRejections plots 429 answers from the mock API's call budget.
func MockRejections() *timeseries.PanelBuilder {
	return series("Mock API 429s", "Requests rejected once the mock call budget ran out").
		WithTarget(PromQuery(
			mockExpr(`increase(wizishop_mock_ratelimit_rejections_total{%s}[5m])`),
			"429s", "A",
		)).
		DrawStyle(common.GraphDrawStyleBars).
		Thresholds(warnCrit(1, 10)).
		ColorScheme(dashboard.NewFieldColorBuilder().Mode(dashboard.FieldColorModeIdThresholds))
}
