// Package rules generates the Prometheus recording and alert rules for the
// MWS client as Prometheus Operator PrometheusRule resources.
package rules

// PrometheusRule is a Kubernetes custom resource for Prometheus Operator.
type PrometheusRule struct {
	APIVersion string   `yaml:"apiVersion"`
	Kind       string   `yaml:"kind"`
	Metadata   Metadata `yaml:"metadata"`
	Spec       Spec     `yaml:"spec"`
}

// Metadata holds the resource name and labels.
type Metadata struct {
	Name   string            `yaml:"name"`
	Labels map[string]string `yaml:"labels,omitempty"`
}

// Spec holds the rule groups.
type Spec struct {
	Groups []Group `yaml:"groups"`
}

// Group is a named collection of recording or alerting rules.
type Group struct {
	Name     string `yaml:"name"`
	Interval string `yaml:"interval,omitempty"`
	Rules    []Rule `yaml:"rules"`
}

// Rule is a single recording (Record set) or alerting (Alert set) rule.
type Rule struct {
	Record      string            `yaml:"record,omitempty"`
	Alert       string            `yaml:"alert,omitempty"`
	Expr        string            `yaml:"expr"`
	For         string            `yaml:"for,omitempty"`
	Labels      map[string]string `yaml:"labels,omitempty"`
	Annotations map[string]string `yaml:"annotations,omitempty"`
}

// Name returns the record or alert name.
func (r Rule) Name() string {
	if r.Record != "" {
		return r.Record
	}
	return r.Alert
}

func newPrometheusRule(name string, rules ...Rule) PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: Metadata{
			Name: name,
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: Spec{
			Groups: []Group{{Name: name, Rules: rules}},
		},
	}
}

// RecordingRules returns the pre-computed rates used by the dashboard and
// the alert rules.
func RecordingRules() PrometheusRule {
	return newPrometheusRule("mws-recording-rules",
		Rule{
			Record: "mws:requests:rate5m",
			Expr:   `sum by (section) (rate(mws_requests_total[5m]))`,
		},
		Rule{
			Record: "mws:errors:rate5m",
			Expr:   `sum by (section) (rate(mws_requests_total{status=~"error|5.."}[5m]))`,
		},
		Rule{
			Record: "mws:throttled:rate5m",
			Expr:   `sum by (section, action) (rate(mws_throttled_total[5m]))`,
		},
	)
}

// AlertRules returns the operational alerts for MWS usage.
func AlertRules() PrometheusRule {
	return newPrometheusRule("mws-alerts",
		Rule{
			Alert:  "MWSHighErrorRate",
			Expr:   `sum(mws:errors:rate5m) / sum(mws:requests:rate5m) > 0.05`,
			For:    "5m",
			Labels: map[string]string{"severity": "warning"},
			Annotations: map[string]string{
				"summary":     "High MWS error rate",
				"description": "More than 5% of MWS requests failed over the last 5 minutes.",
			},
		},
		Rule{
			Alert:  "MWSThrottled",
			Expr:   `sum by (section, action) (mws:throttled:rate5m) > 0`,
			For:    "10m",
			Labels: map[string]string{"severity": "warning"},
			Annotations: map[string]string{
				"summary":     "MWS is throttling {{ $labels.section }} {{ $labels.action }}",
				"description": "Requests have been rejected with RequestThrottled for 10 minutes; lower the request rate.",
			},
		},
		Rule{
			Alert:  "MWSQuotaLow",
			Expr:   `min by (section, action) (mws_quota_remaining) < 5`,
			For:    "5m",
			Labels: map[string]string{"severity": "warning"},
			Annotations: map[string]string{
				"summary":     "MWS quota nearly exhausted for {{ $labels.section }} {{ $labels.action }}",
				"description": "Fewer than 5 requests remain in the current quota window.",
			},
		},
		Rule{
			Alert:  "MWSClientQuotaExhausted",
			Expr:   `increase(mws_quota_limit_hits_total[5m]) > 0`,
			For:    "0m",
			Labels: map[string]string{"severity": "critical"},
			Annotations: map[string]string{
				"summary":     "Client-side hourly MWS quota reached",
				"description": "The client rate limiter refused requests until its hourly window resets.",
			},
		},
		Rule{
			Alert:  "MWSSectionDegraded",
			Expr:   `max by (section) (mws_service_status) >= 2`,
			For:    "15m",
			Labels: map[string]string{"severity": "warning"},
			Annotations: map[string]string{
				"summary":     "MWS {{ $labels.section }} reports YELLOW or RED",
				"description": "GetServiceStatus has reported the section as degraded for 15 minutes.",
			},
		},
	)
}
