// Package validate checks generated dashboards and rules against the set of
// metric names the SDK actually exports.
package validate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/prometheus/promql/parser"

	"github.com/JWebCreation/wizishop-sdk/tools/dashgen/rules"
)

// Grafana template variables are replaced before parsing.
var templateVars = strings.NewReplacer(
	"$__rate_interval", "5m",
	"$__interval", "1m",
	"$__range", "1h",
)

// histogramSuffixes are stripped before looking a series up in the known set.
var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// Result collects problems found while validating.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found. Warnings do not fail validation.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Expr parses a single PromQL expression and reports any metric it selects
// that is not in known. where prefixes every message.
func Expr(where, expr string, known map[string]bool) Result {
	var res Result

	if strings.TrimSpace(expr) == "" {
		res.Errors = append(res.Errors, where+": empty expression")
		return res
	}

	node, err := parser.ParseExpr(templateVars.Replace(expr))
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", where, err))
		return res
	}

	for _, name := range metricNames(node) {
		if !known[name] && !known[trimHistogram(name)] {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: unknown metric %q", where, name))
		}
	}
	return res
}

// Dashboard walks every panel target of a built dashboard. The dashboard is
// inspected through its JSON form so that nested row panels are reached
// without depending on the SDK's panel union types.
func Dashboard(dash any, known map[string]bool) Result {
	var res Result

	data, err := json.Marshal(dash)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("marshaling dashboard: %v", err))
		return res
	}

	var doc dashboardDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("decoding dashboard: %v", err))
		return res
	}

	for _, p := range doc.Panels {
		res.merge(panel(p, known))
		for _, inner := range p.Panels {
			res.merge(panel(inner, known))
		}
	}
	return res
}

// Rules validates every expression in a PrometheusRule CR. Recording rules
// without a name and alerts without a severity are reported too.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var res Result

	for _, g := range cr.Spec.Groups {
		for i, r := range g.Rules {
			where := fmt.Sprintf("%s/%d", g.Name, i)
			switch {
			case r.Record != "":
				where = g.Name + "/" + r.Record
			case r.Alert != "":
				where = g.Name + "/" + r.Alert
				if r.Labels["severity"] == "" {
					res.Warnings = append(res.Warnings, where+": no severity label")
				}
			default:
				res.Errors = append(res.Errors, where+": rule has neither record nor alert")
			}
			res.merge(Expr(where, r.Expr, known))
		}
	}
	return res
}

type dashboardDoc struct {
	Panels []panelDoc `json:"panels"`
}

type panelDoc struct {
	Title   string      `json:"title"`
	Type    string      `json:"type"`
	Panels  []panelDoc  `json:"panels"`
	Targets []targetDoc `json:"targets"`
}

type targetDoc struct {
	RefID string `json:"refId"`
	Expr  string `json:"expr"`
}

func panel(p panelDoc, known map[string]bool) Result {
	var res Result
	if p.Type == "row" {
		return res
	}
	if len(p.Targets) == 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("panel %q: no targets", p.Title))
		return res
	}
	for _, t := range p.Targets {
		res.merge(Expr(fmt.Sprintf("panel %q target %s", p.Title, t.RefID), t.Expr, known))
	}
	return res
}

func metricNames(node parser.Node) []string {
	seen := make(map[string]bool)
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if ok && vs.Name != "" {
			seen[vs.Name] = true
		}
		return nil
	})

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func trimHistogram(name string) string {
	for _, s := range histogramSuffixes {
		if trimmed, ok := strings.CutSuffix(name, s); ok {
			return trimmed
		}
	}
	return name
}
