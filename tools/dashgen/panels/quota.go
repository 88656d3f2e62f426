package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ThrottledRate returns a timeseries panel with RequestThrottled answers
// per second by section and action.
func ThrottledRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Throttled Requests").
		Description("Requests rejected by MWS with RequestThrottled").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`mws:throttled:rate5m`, "{{section}} {{action}}", "A")).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// QuotaRemaining returns a timeseries panel with the quota MWS reports as
// remaining for each throttled operation.
func QuotaRemaining() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Quota Remaining").
		Description("x-mws-quota-remaining by section and action").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`mws_quota_remaining`, "{{section}} {{action}}", "A")).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsRedGreen(QuotaLowWatermark)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// LowestQuota returns a stat panel with the smallest remaining quota of any
// operation.
func LowestQuota() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Lowest Quota").
		Description("Smallest remaining quota reported by MWS").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`min(mws_quota_remaining)`, "", "A")).
		Thresholds(ThresholdsRedGreen(QuotaLowWatermark)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

// HourlyUsage returns a stat panel with the calls counted by the client-side
// rate limiter in its current hourly window.
func HourlyUsage() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Hourly Usage").
		Description("Calls made within the client rate limiter's hourly window").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`max(mws_rate_limiter_hourly_usage)`, "", "A")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeArea)
}

// LimitHits returns a stat panel with the number of times the client-side
// hourly quota was exhausted in the last 24 hours.
func LimitHits() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Quota Exhausted (24h)").
		Description("Times the client-side hourly quota was reached in the last 24 hours").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`sum(increase(mws_quota_limit_hits_total[24h]))`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 3)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
