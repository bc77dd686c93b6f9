package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "marketweb-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "marketweb-recording",
					Rules: []Rule{
						{
							Record: "market:web_requests:rate5m",
							Expr:   `sum(rate(market_web_requests_total[5m]))`,
						},
						{
							Record: "market:web_errors:rate5m",
							Expr:   `sum(rate(market_web_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "market:api_requests:rate5m",
							Expr:   `sum(rate(market_api_requests_total[5m]))`,
						},
						{
							Record: "market:api_errors:rate5m",
							Expr:   `sum(rate(market_api_requests_total{status=~"5..|error"}[5m]))`,
						},
						{
							Record: "market:token_refresh_failures:rate5m",
							Expr:   `rate(market_token_refresh_total{outcome="failure"}[5m])`,
						},
						{
							Record: "market:cart_rollbacks:rate5m",
							Expr:   `rate(market_cart_rollbacks_total[5m])`,
						},
					},
				},
			},
		},
	}
}
