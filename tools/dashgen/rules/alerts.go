package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// processes using the WiziShop SDK.
func AlertRules() PrometheusRule {
	return newPrometheusRule("wizishop-alerts", RuleGroup{
		Name: "wizishop-alerts",
		Rules: []Rule{
			{
				Alert: "WizishopHighErrorRate",
				Expr:  `wizishop:api_errors:rate5m / wizishop:api_requests:rate5m > 0.05`,
				For:   "5m",
				Labels: map[string]string{
					"severity": "warning",
				},
				Annotations: map[string]string{
					"summary":     "High WiziShop API error rate",
					"description": "More than 5% of WiziShop API calls failed (5xx, 429 or transport) over the last 5 minutes.",
				},
			},
			{
				Alert: "WizishopRateLimitLow",
				Expr:  `min(wizishop_ratelimit_remaining) < 50`,
				For:   "5m",
				Labels: map[string]string{
					"severity": "warning",
				},
				Annotations: map[string]string{
					"summary":     "WiziShop API call budget is below the throttle floor",
					"description": "The API has reported fewer than 50 remaining calls for 5 minutes; every call is followed by a cooldown.",
				},
			},
			{
				Alert: "WizishopSustainedThrottling",
				Expr:  `wizishop:throttle_cooldowns:rate5m > 0`,
				For:   "15m",
				Labels: map[string]string{
					"severity": "warning",
				},
				Annotations: map[string]string{
					"summary":     "WiziShop client has been throttling for 15 minutes",
					"description": "Cooldowns have been taken continuously; batch jobs are running at the API's pace.",
				},
			},
			{
				Alert: "WizishopLoginFailures",
				Expr:  `increase(wizishop_logins_total{outcome="failure"}[15m]) > 3`,
				For:   "0m",
				Labels: map[string]string{
					"severity": "critical",
				},
				Annotations: map[string]string{
					"summary":     "Repeated WiziShop login failures",
					"description": "More than 3 credential logins failed in 15 minutes. Check the configured username and password.",
				},
			},
			{
				Alert: "WizishopRejectedWrites",
				Expr:  `sum(increase(wizishop_failures_recorded_total[1h])) > 0`,
				For:   "0m",
				Labels: map[string]string{
					"severity": "warning",
				},
				Annotations: map[string]string{
					"summary":     "WiziShop rejected write payloads",
					"description": "The API refused one or more create payloads in the last hour; they were saved by the failure sink.",
				},
			},
		},
	})
}
