// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/amazon-mws/tools/dashgen/panels"
)

// BuildOverview constructs the MWS client overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("MWS Client").
		Uid("mws-overview").
		Tags([]string{"mws", "amazon-mws"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.TotalRequestRate()).
		WithPanel(panels.LowestQuota()).
		WithPanel(panels.HourlyUsage()).
		WithPanel(panels.LimitHits()))

	b.WithRow(dashboard.NewRowBuilder("Requests").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	b.WithRow(dashboard.NewRowBuilder("Throttling").
		WithPanel(panels.ThrottledRate()).
		WithPanel(panels.QuotaRemaining()))

	b.WithRow(dashboard.NewRowBuilder("Service Status").
		WithPanel(panels.ServiceStatus()).
		WithPanel(panels.StatusCheckErrors()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
