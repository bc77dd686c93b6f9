package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// TokenRefreshOutcomes returns a timeseries panel showing token refresh
// attempts per second, split by outcome.
func TokenRefreshOutcomes() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Token Refresh Outcomes").
		Description("Access-token refresh attempts per second by outcome").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(HalfWidth).
		WithTarget(PromQuery(
			`sum(rate(market_token_refresh_total[5m])) by (outcome)`,
			"{{outcome}}", "A",
		)).
		Unit("ops").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// CartRollbacks returns a stat panel showing cart mutations rolled back
// over the last hour.
func CartRollbacks() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Cart Rollbacks (1h)").
		Description("Optimistic cart mutations rejected by the API in the last hour").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(HalfWidth).
		WithTarget(PromQuery(`increase(market_cart_rollbacks_total[1h])`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(5, 20)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea).
		TextMode(common.BigValueTextModeValue)
}
