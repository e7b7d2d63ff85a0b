package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return newPrometheusRule("wizishop-recording-rules", RuleGroup{
		Name: "wizishop-recording",
		Rules: []Rule{
			{
				Record: "wizishop:api_requests:rate5m",
				Expr:   `sum(rate(wizishop_api_requests_total[5m]))`,
			},
			{
				Record: "wizishop:api_errors:rate5m",
				Expr:   `sum(rate(wizishop_api_requests_total{status=~"5..|429|error"}[5m]))`,
			},
			{
				Record: "wizishop:throttle_cooldowns:rate5m",
				Expr:   `sum(rate(wizishop_throttle_cooldowns_total[5m]))`,
			},
			{
				Record: "wizishop:failures_recorded:rate5m",
				Expr:   `sum by (operation) (rate(wizishop_failures_recorded_total[5m]))`,
			},
		},
	})
}
