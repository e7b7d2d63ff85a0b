// Package panels provides Grafana dashboard panel builders for the
// WiziShop SDK and mock API metrics.
package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/cog"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RateLimitFloor mirrors the SDK's default throttle floor: below it every
// call is followed by a cooldown.
const RateLimitFloor = 50

// MockJob is the scrape job of tools/mock-server.
const MockJob = "wizishop-mock"

// Grid sizes on Grafana's 24-column layout.
const (
	statWidth  = 6
	statHeight = 4
	tsWidth    = 12
	tsHeight   = 8
)

// DSRef points at the ${datasource} template variable.
func DSRef() dashboard.DataSourceRef {
	return dashboard.DataSourceRef{
		Type: cog.ToPtr("prometheus"),
		Uid:  cog.ToPtr("${datasource}"),
	}
}

// PromQuery builds a Prometheus target.
func PromQuery(expr, legendFormat, refID string) *prometheus.DataqueryBuilder {
	return prometheus.NewDataqueryBuilder().
		Expr(expr).
		LegendFormat(legendFormat).
		RefId(refID)
}

// mockExpr scopes a mock-server metric selector to its scrape job.
func mockExpr(format string) string {
	return fmt.Sprintf(format, fmt.Sprintf("job=%q", MockJob))
}

// quantile is a latency percentile target over the SDK's call histogram.
func quantile(q float64, refID string) *prometheus.DataqueryBuilder {
	expr := fmt.Sprintf(
		`histogram_quantile(%.2f, sum(rate(wizishop_api_request_duration_seconds_bucket[5m])) by (le))`,
		q,
	)
	return PromQuery(expr, fmt.Sprintf("p%.0f", q*100), refID)
}

// steps builds absolute thresholds starting at base, with a step at each
// value in order.
func steps(base string, at ...threshold) cog.Builder[dashboard.ThresholdsConfig] {
	list := []dashboard.Threshold{{Color: base}}
	for _, s := range at {
		list = append(list, dashboard.Threshold{Value: cog.ToPtr(s.value), Color: s.color})
	}
	return dashboard.NewThresholdsConfigBuilder().
		Mode(dashboard.ThresholdsModeAbsolute).
		Steps(list)
}

type threshold struct {
	value float64
	color string
}

// warnCrit is green, then yellow from warn, then red from crit.
func warnCrit(warn, crit float64) cog.Builder[dashboard.ThresholdsConfig] {
	return steps("green", threshold{warn, "yellow"}, threshold{crit, "red"})
}

// countStat is a background-colored stat panel for a count that should be
// zero in a healthy process.
func countStat(title, description, expr string, warn, crit float64) *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(statHeight).
		Span(statWidth).
		WithTarget(PromQuery(expr, "", "A")).
		Thresholds(warnCrit(warn, crit)).
		ColorScheme(dashboard.NewFieldColorBuilder().Mode(dashboard.FieldColorModeIdThresholds)).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

// series is a half-width line panel with a table legend of calcs. Callers
// add targets and override what differs.
func series(title, description string, calcs ...string) *timeseries.PanelBuilder {
	b := timeseries.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(tsHeight).
		Span(tsWidth).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(steps("green")).
		ColorScheme(dashboard.NewFieldColorBuilder().Mode(dashboard.FieldColorModeIdPaletteClassic)).
		DrawStyle(common.GraphDrawStyleLine).
		Tooltip(common.NewVizTooltipOptionsBuilder().
			Mode(common.TooltipDisplayModeMulti).
			Sort(common.SortOrderDescending))

	if len(calcs) > 0 {
		b.Legend(common.NewVizLegendOptionsBuilder().
			DisplayMode(common.LegendDisplayModeTable).
			Placement(common.LegendPlacementBottom).
			Calcs(calcs))
	}
	return b
}
