// Package validate checks generated dashboards and Prometheus rule files
// for malformed PromQL and references to metrics nothing exports.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/junseo/marketctl/tools/dashgen/rules"
)

// Result collects validation findings. Errors fail validation, warnings
// do not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation passed.
func (r Result) Ok() bool { return len(r.Errors) == 0 }

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Dashboard validates every PromQL expression in a built dashboard against
// the set of known metric and recording rule names.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result

	raw, err := json.Marshal(dash)
	if err != nil {
		res.errorf("marshaling dashboard: %v", err)
		return res
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		res.errorf("decoding dashboard JSON: %v", err)
		return res
	}

	exprs := collectExprs(decoded)
	if len(exprs) == 0 {
		res.warnf("dashboard contains no query expressions")
	}
	for _, expr := range exprs {
		checkExpr(expr, "dashboard", known, &res)
	}
	return res
}

// Rules validates every expression in a PrometheusRule CR against the set
// of known metric and recording rule names.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var res Result
	for _, group := range cr.Spec.Groups {
		for _, rule := range group.Rules {
			origin := rule.Record + rule.Alert
			if rule.Expr == "" {
				res.errorf("rule %s has an empty expression", origin)
				continue
			}
			checkExpr(rule.Expr, origin, known, &res)
		}
	}
	return res
}

// collectExprs walks arbitrarily nested JSON and gathers the value of
// every "expr" key. Panel targets are the only place the dashboard schema
// uses that key.
func collectExprs(node any) []string {
	var exprs []string
	switch v := node.(type) {
	case map[string]any:
		for key, child := range v {
			if key == "expr" {
				if s, ok := child.(string); ok && s != "" {
					exprs = append(exprs, s)
				}
				continue
			}
			exprs = append(exprs, collectExprs(child)...)
		}
	case []any:
		for _, child := range v {
			exprs = append(exprs, collectExprs(child)...)
		}
	}
	return exprs
}

func checkExpr(expr, origin string, known map[string]bool, res *Result) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		res.errorf("%s: invalid PromQL %q: %v", origin, expr, err)
		return
	}

	selected := false
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		selected = true
		if !known[baseName(vs.Name)] {
			res.errorf("%s: unknown metric %q", origin, vs.Name)
		}
		return nil
	})

	if !selected {
		res.warnf("%s: expression %q selects no metrics", origin, expr)
	}
}

// baseName strips histogram sample suffixes so bucket selectors resolve to
// the histogram's registered name.
func baseName(name string) string {
	for _, suffix := range []string{"_bucket", "_sum", "_count"} {
		if base, ok := strings.CutSuffix(name, suffix); ok {
			return base
		}
	}
	return name
}
