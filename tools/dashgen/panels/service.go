package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ServiceStatus returns a stat panel with the last GetServiceStatus level
// of every section: 0 GREEN, 1 GREEN_I, 2 YELLOW, 3 RED.
func ServiceStatus() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Service Status").
		Description("Last GetServiceStatus result by section (0 GREEN, 1 GREEN_I, 2 YELLOW, 3 RED)").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`mws_service_status`, "{{section}}", "A")).
		Thresholds(ThresholdsGreenYellowRed(2, 3)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

// StatusCheckErrors returns a timeseries panel with failed status checks
// per section.
func StatusCheckErrors() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Status Check Errors").
		Description("GetServiceStatus checks that failed or returned an unknown status").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`sum by (section) (increase(mws_service_status_errors_total[1h]))`, "{{section}}", "A")).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
