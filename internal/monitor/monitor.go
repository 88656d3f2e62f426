// Package monitor polls GetServiceStatus across MWS sections and exports
// the results as Prometheus metrics.
package monitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/donaldgifford/amazon-mws/internal/metrics"
	"github.com/donaldgifford/amazon-mws/pkg/mws"
)

// Service status values returned by GetServiceStatus.
const (
	StatusGreen  = "GREEN"
	StatusGreenI = "GREEN_I"
	StatusYellow = "YELLOW"
	StatusRed    = "RED"

	// StatusError marks a section whose check failed.
	StatusError = "ERROR"
)

var statusLevels = map[string]float64{
	StatusGreen:  0,
	StatusGreenI: 1,
	StatusYellow: 2,
	StatusRed:    3,
}

// Result is the outcome of one section's status check.
type Result struct {
	Section   string `json:"section"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp,omitempty"`
	Error     string `json:"error,omitempty"`
}

// OK reports whether the section answered GREEN or GREEN_I.
func (r Result) OK() bool {
	return r.Status == StatusGreen || r.Status == StatusGreenI
}

// Monitor checks the service status of a fixed set of sections.
type Monitor struct {
	doer     mws.Doer
	sections []mws.Section
	log      *slog.Logger
	nowFunc  func() time.Time
}

// New creates a Monitor for sections.
func New(d mws.Doer, sections []mws.Section, log *slog.Logger) *Monitor {
	return &Monitor{
		doer:     d,
		sections: sections,
		log:      log,
		nowFunc:  time.Now,
	}
}

// Check calls GetServiceStatus on every section in order. A failing
// section is reported in its Result rather than aborting the round.
func (m *Monitor) Check(ctx context.Context) []Result {
	results := make([]Result, 0, len(m.sections))
	for _, section := range m.sections {
		results = append(results, m.check(ctx, section))
	}
	metrics.ServiceStatusLastCheck.Set(float64(m.nowFunc().Unix()))
	return results
}

func (m *Monitor) check(ctx context.Context, section mws.Section) Result {
	r := Result{Section: section.Name}

	resp, err := mws.ServiceStatus(ctx, m.doer, section)
	if err != nil {
		m.log.Warn("service status failed", "section", section.Name, "error", err)
		metrics.ServiceStatusErrorsTotal.WithLabelValues(section.Name).Inc()
		r.Status = StatusError
		r.Error = err.Error()
		return r
	}

	root := resp.Parsed()
	r.Status = root.Value("Status")
	r.Timestamp = root.Value("Timestamp")

	level, ok := statusLevels[r.Status]
	if !ok {
		m.log.Warn("unknown service status", "section", section.Name, "status", r.Status)
		metrics.ServiceStatusErrorsTotal.WithLabelValues(section.Name).Inc()
		return r
	}
	metrics.ServiceStatus.WithLabelValues(section.Name).Set(level)
	if !r.OK() {
		m.log.Warn("section degraded", "section", section.Name, "status", r.Status)
	}
	return r
}
