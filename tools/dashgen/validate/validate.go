// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and reference only known metrics.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/amazon-mws/tools/dashgen/rules"
)

// Histogram series suffixes resolved to their base metric.
var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// Result collects the problems found. Warnings do not fail generation.
type Result struct {
	Errors   []error
	Warnings []string
}

// Ok reports whether no errors were found.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) check(where, expr string, known map[string]bool) {
	if strings.TrimSpace(expr) == "" {
		r.Errors = append(r.Errors, fmt.Errorf("%s: empty expression", where))
		return
	}
	parsed, err := parser.ParseExpr(expr)
	if err != nil {
		r.Errors = append(r.Errors, fmt.Errorf("%s: %w", where, err))
		return
	}
	for _, name := range metricNames(parsed) {
		if !known[name] {
			r.Errors = append(r.Errors, fmt.Errorf("%s: unknown metric %q", where, name))
		}
	}
}

func metricNames(expr parser.Expr) []string {
	var names []string
	parser.Inspect(expr, func(node parser.Node, _ []parser.Node) error {
		if vs, ok := node.(*parser.VectorSelector); ok && vs.Name != "" {
			names = append(names, baseName(vs.Name))
		}
		return nil
	})
	return names
}

func baseName(name string) string {
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok {
			return base
		}
	}
	return name
}

// Dashboard validates the "expr" of every target in a dashboard JSON
// document.
func Dashboard(data []byte, known map[string]bool) Result {
	var result Result
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("decoding dashboard: %w", err))
		return result
	}

	exprs := 0
	walk(doc, "", func(path, expr string) {
		exprs++
		result.check(path, expr, known)
	})
	if exprs == 0 {
		result.Warnings = append(result.Warnings, "dashboard has no queries")
	}
	return result
}

// walk calls fn for every "expr" string, with the title of the panel that
// holds it as path.
func walk(v any, path string, fn func(path, expr string)) {
	switch node := v.(type) {
	case map[string]any:
		if title, ok := node["title"].(string); ok {
			path = title
		}
		for k, child := range node {
			if expr, ok := child.(string); ok && k == "expr" {
				fn(path, expr)
				continue
			}
			walk(child, path, fn)
		}
	case []any:
		for _, child := range node {
			walk(child, path, fn)
		}
	}
}

// Rules validates every rule expression and checks that rule names are
// unique.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var result Result
	seen := make(map[string]bool)
	for _, g := range cr.Spec.Groups {
		for _, r := range g.Rules {
			name := r.Name()
			if name == "" {
				result.Errors = append(result.Errors, fmt.Errorf("%s: rule without record or alert name", g.Name))
				continue
			}
			if seen[name] {
				result.Errors = append(result.Errors, fmt.Errorf("%s: duplicate rule %s", g.Name, name))
			}
			seen[name] = true
			result.check(g.Name+"/"+name, r.Expr, known)
		}
	}
	return result
}
