package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RemainingStat shows the last reported remaining-call count, red below
// the throttle floor.
func RemainingStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Calls Remaining").
		Description("Last X-RateLimit-Remaining value reported by the API").
		Datasource(DSRef()).
		Height(statHeight).
		Span(statWidth).
		WithTarget(PromQuery(`min(wizishop_ratelimit_remaining)`, "", "A")).
		Thresholds(steps("red", threshold{RateLimitFloor, "green"})).
		ColorScheme(dashboard.NewFieldColorBuilder().Mode(dashboard.FieldColorModeIdThresholds)).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea).
		TextMode(common.BigValueTextModeValue)
}

// CooldownsStat counts throttle cooldowns over the last hour.
func CooldownsStat() *stat.PanelBuilder {
	return countStat(
		"Cooldowns (1h)",
		"Pauses taken because the remaining calls fell below the floor",
		`sum(increase(wizishop_throttle_cooldowns_total[1h]))`,
		1, 10,
	)
}

// RemainingOverTime plots the remaining-call budget with the floor drawn
// as a second series.
func RemainingOverTime() *timeseries.PanelBuilder {
	return series("Rate Limit Budget", "Remaining API calls against the throttle floor", "min", "last").
		WithTarget(PromQuery(`min(wizishop_ratelimit_remaining)`, "remaining", "A")).
		WithTarget(PromQuery(fmt.Sprintf(`vector(%d)`, RateLimitFloor), "floor", "B"))
}

// CooldownRate plots throttle cooldowns per second.
func CooldownRate() *timeseries.PanelBuilder {
	return series("Cooldown Rate", "Throttle cooldowns per second").
		WithTarget(PromQuery(`wizishop:throttle_cooldowns:rate5m`, "cooldowns/s", "A")).
		DrawStyle(common.GraphDrawStyleBars)
}
