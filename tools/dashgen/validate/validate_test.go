package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/amazon-mws/tools/dashgen/rules"
	"github.com/donaldgifford/amazon-mws/tools/dashgen/validate"
)

var known = map[string]bool{
	"mws_requests_total":           true,
	"mws_request_duration_seconds": true,
	"mws:requests:rate5m":          true,
}

func TestDashboard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		doc      string
		wantErrs int
		wantWarn bool
	}{
		{
			name: "known metrics",
			doc:  `{"panels":[{"title":"Rate","targets":[{"expr":"sum(mws:requests:rate5m)"}]},
				{"title":"Latency","targets":[{"expr":"histogram_quantile(0.5, sum by (le) (rate(mws_request_duration_seconds_bucket[5m])))"}]}]}`,
		},
		{
			name:     "unknown metric",
			doc:      `{"panels":[{"title":"Rate","targets":[{"expr":"rate(http_requests_total[5m])"}]}]}`,
			wantErrs: 1,
		},
		{
			name:     "parse error",
			doc:      `{"panels":[{"title":"Rate","targets":[{"expr":"sum(rate(mws_requests_total[5m])"}]}]}`,
			wantErrs: 1,
		},
		{
			name:     "no queries",
			doc:      `{"panels":[]}`,
			wantWarn: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := validate.Dashboard([]byte(tt.doc), known)
			assert.Len(t, result.Errors, tt.wantErrs)
			assert.Equal(t, tt.wantErrs == 0, result.Ok())
			assert.Equal(t, tt.wantWarn, len(result.Warnings) > 0)
		})
	}
}

func TestDashboard_ReportsPanelTitle(t *testing.T) {
	t.Parallel()

	result := validate.Dashboard(
		[]byte(`{"panels":[{"title":"Throttled","targets":[{"expr":"mws_unknown"}]}]}`),
		known,
	)
	require.Len(t, result.Errors, 1)
	assert.EqualError(t, result.Errors[0], `Throttled: unknown metric "mws_unknown"`)
}

func TestRules(t *testing.T) {
	t.Parallel()

	cr := rules.PrometheusRule{
		Spec: rules.Spec{Groups: []rules.Group{{
			Name: "mws",
			Rules: []rules.Rule{
				{Record: "mws:requests:rate5m", Expr: `sum(rate(mws_requests_total[5m]))`},
				{Record: "mws:requests:rate5m", Expr: `sum(rate(mws_requests_total[5m]))`},
				{Alert: "Broken", Expr: ``},
				{Expr: `up`},
			},
		}}},
	}

	result := validate.Rules(cr, known)
	require.Len(t, result.Errors, 3)
	assert.EqualError(t, result.Errors[0], "mws: duplicate rule mws:requests:rate5m")
	assert.EqualError(t, result.Errors[1], "mws/Broken: empty expression")
	assert.EqualError(t, result.Errors[2], "mws: rule without record or alert name")
}
