// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/JWebCreation/wizishop-sdk/tools/dashgen/panels"
)

// BuildOverview constructs the WiziShop SDK overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("WiziShop SDK Overview").
		Uid("wizishop-overview").
		Tags([]string{"wizishop", "wizishop-sdk"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.RemainingStat()).
		WithPanel(panels.CooldownsStat()).
		WithPanel(panels.LoginFailuresStat()).
		WithPanel(panels.FailuresStat()))

	// Row 2: API calls.
	b.WithRow(dashboard.NewRowBuilder("API Calls").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.RequestsByStatus()).
		WithPanel(panels.ErrorRate()))

	// Row 3: Throttle.
	b.WithRow(dashboard.NewRowBuilder("Throttle").
		WithPanel(panels.RemainingOverTime()).
		WithPanel(panels.CooldownRate()))

	// Row 4: Sessions and rejected writes.
	b.WithRow(dashboard.NewRowBuilder("Sessions").
		WithPanel(panels.LoginsByOutcome()).
		WithPanel(panels.FailuresByOperation()))

	// Row 5: Mock API.
	b.WithRow(dashboard.NewRowBuilder("Mock API").
		WithPanel(panels.MockRequestRate()).
		WithPanel(panels.MockRejections()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
