// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/junseo/marketctl/tools/dashgen/panels"
)

// BuildOverview constructs the Marketweb Overview dashboard with all
// metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Marketweb Overview").
		Uid("marketweb-overview").
		Tags([]string{"marketweb", "marketctl"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.UpStat()).
		WithPanel(panels.UptimeStat()))

	// Row 2: Frontend HTTP.
	b.WithRow(dashboard.NewRowBuilder("Frontend HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	// Row 3: Marketplace API.
	b.WithRow(dashboard.NewRowBuilder("Marketplace API").
		WithPanel(panels.UpstreamRequestRate()).
		WithPanel(panels.UpstreamLatencyPercentiles()).
		WithPanel(panels.UpstreamErrorRate()))

	// Row 4: Session & Cart.
	b.WithRow(dashboard.NewRowBuilder("Session & Cart").
		WithPanel(panels.TokenRefreshOutcomes()).
		WithPanel(panels.CartRollbacks()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
