package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// LoginFailuresStat counts failed logins over the last 24 hours.
func LoginFailuresStat() *stat.PanelBuilder {
	return countStat(
		"Login Failures (24h)",
		"Credential logins rejected or failed in the last 24 hours",
		`sum(increase(wizishop_logins_total{outcome="failure"}[24h]))`,
		1, 5,
	)
}

// FailuresStat counts write payloads handed to the failure sink over the
// last 24 hours.
func FailuresStat() *stat.PanelBuilder {
	return countStat(
		"Rejected Writes (24h)",
		"Write payloads handed to the failure sink in the last 24 hours",
		`sum(increase(wizishop_failures_recorded_total[24h]))`,
		1, 10,
	)
}

// LoginsByOutcome plots hourly logins by outcome (success, failure, cached).
func LoginsByOutcome() *timeseries.PanelBuilder {
	return series("Logins by Outcome", "Session establishments per hour by outcome", "sum").
		WithTarget(PromQuery(`sum by (outcome) (increase(wizishop_logins_total[1h]))`, "{{outcome}}", "A")).
		DrawStyle(common.GraphDrawStyleBars)
}

// FailuresByOperation plots rejected writes by operation.
func FailuresByOperation() *timeseries.PanelBuilder {
	return series("Rejected Writes by Operation", "Failure sink records per second by operation", "mean", "max").
		WithTarget(PromQuery(`wizishop:failures_recorded:rate5m`, "{{operation}}", "A"))
}
