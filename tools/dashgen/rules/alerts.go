package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// marketweb operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "marketweb-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "marketweb-alerts",
					Rules: []Rule{
						{
							Alert: "MarketwebDown",
							Expr:  `absent(up{job="marketweb"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Marketweb frontend is down",
								"description": "The marketweb job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "MarketwebHighErrorRate",
							Expr:  `market:web_errors:rate5m / market:web_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on marketweb",
								"description": "More than 5% of frontend requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "MarketUpstreamErrors",
							Expr:  `market:api_errors:rate5m / market:api_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Marketplace API calls are failing",
								"description": "More than 5% of upstream API requests are failing over the last 5 minutes.",
							},
						},
						{
							Alert: "MarketTokenRefreshFailures",
							Expr:  `market:token_refresh_failures:rate5m > 0`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Access token refresh is failing",
								"description": "Token refresh attempts have been failing for more than 5 minutes. Users are likely being logged out.",
							},
						},
						{
							Alert: "MarketCartRollbacksElevated",
							Expr:  `increase(market_cart_rollbacks_total[15m]) > 10`,
							For:   "0m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Optimistic cart updates are rolling back often",
								"description": "More than 10 cart mutations were rejected by the API in the last 15 minutes.",
							},
						},
					},
				},
			},
		},
	}
}
