package monitor

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	ptestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/amazon-mws/internal/metrics"
	"github.com/donaldgifford/amazon-mws/pkg/mws"
	"github.com/donaldgifford/amazon-mws/pkg/mws/mwstest"
	"github.com/donaldgifford/amazon-mws/pkg/params"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func statusResponse(status string) *mws.Response {
	return mwstest.XMLResponse(mws.ActionGetServiceStatus, `<GetServiceStatusResponse>
  <GetServiceStatusResult>
    <Status>`+status+`</Status>
    <Timestamp>2024-01-02T03:04:05.000Z</Timestamp>
  </GetServiceStatusResult>
</GetServiceStatusResponse>`)
}

// sectionDoer answers per section name and fails for sections it has no
// response for.
type sectionDoer map[string]*mws.Response

func (d sectionDoer) Do(
	_ context.Context,
	section mws.Section,
	_ params.Values,
	_ ...mws.RequestOption,
) (*mws.Response, error) {
	if resp, ok := d[section.Name]; ok {
		return resp, nil
	}
	return nil, errors.New("connection refused")
}

func TestMonitor_Check(t *testing.T) {
	t.Parallel()

	sections := []mws.Section{
		{Name: "MonitorTestOrders", Path: "/Orders/2013-09-01", Version: "2013-09-01"},
		{Name: "MonitorTestReports", Path: "/", Version: "2009-01-01"},
		{Name: "MonitorTestFeeds", Path: "/", Version: "2009-01-01"},
	}
	d := sectionDoer{
		"MonitorTestOrders":  statusResponse(StatusGreen),
		"MonitorTestReports": statusResponse(StatusYellow),
	}

	results := New(d, sections, quietLogger()).Check(context.Background())
	require.Len(t, results, 3)

	assert.Equal(t, Result{
		Section:   "MonitorTestOrders",
		Status:    StatusGreen,
		Timestamp: "2024-01-02T03:04:05.000Z",
	}, results[0])
	assert.True(t, results[0].OK())

	assert.Equal(t, StatusYellow, results[1].Status)
	assert.False(t, results[1].OK())

	assert.Equal(t, StatusError, results[2].Status)
	assert.Equal(t, "connection refused", results[2].Error)

	assert.InDelta(t, 0, ptestutil.ToFloat64(metrics.ServiceStatus.WithLabelValues("MonitorTestOrders")), 0)
	assert.InDelta(t, 2, ptestutil.ToFloat64(metrics.ServiceStatus.WithLabelValues("MonitorTestReports")), 0)
	assert.InDelta(t, 1, ptestutil.ToFloat64(metrics.ServiceStatusErrorsTotal.WithLabelValues("MonitorTestFeeds")), 0)
}

func TestMonitor_UnknownStatus(t *testing.T) {
	t.Parallel()

	sections := []mws.Section{{Name: "MonitorTestUnknown", Path: "/", Version: "2009-01-01"}}
	d := sectionDoer{"MonitorTestUnknown": statusResponse("PURPLE")}

	results := New(d, sections, quietLogger()).Check(context.Background())
	require.Len(t, results, 1)
	assert.Equal(t, "PURPLE", results[0].Status)
	assert.False(t, results[0].OK())
	assert.InDelta(t, 1, ptestutil.ToFloat64(metrics.ServiceStatusErrorsTotal.WithLabelValues("MonitorTestUnknown")), 0)
}

func TestMonitor_CheckSendsServiceStatus(t *testing.T) {
	t.Parallel()

	section := mws.Section{Name: "MonitorTestSellers", Path: "/Sellers/2011-07-01", Version: "2011-07-01"}
	rec := &mwstest.Recorder{Responses: []*mws.Response{statusResponse(StatusGreenI)}}

	results := New(rec, []mws.Section{section}, quietLogger()).Check(context.Background())
	require.Len(t, results, 1)
	assert.True(t, results[0].OK())

	call := rec.Last()
	assert.Equal(t, section, call.Section)
	assert.Equal(t, params.Values{"Action": mws.ActionGetServiceStatus}, call.Params)
}

func TestNewScheduler(t *testing.T) {
	t.Parallel()

	m := New(&mwstest.Recorder{}, nil, quietLogger())

	sched, err := NewScheduler(m, time.Minute, nil, quietLogger())
	require.NoError(t, err)
	assert.Len(t, sched.Entries(), 1)

	_, err = NewScheduler(m, 500*time.Millisecond, nil, quietLogger())
	require.EqualError(t, err, "monitor interval must be at least 1s (got 500ms)")
}

func TestScheduler_RunOnce(t *testing.T) {
	t.Parallel()

	section := mws.Section{Name: "MonitorTestRunOnce", Path: "/", Version: "2009-01-01"}
	rec := &mwstest.Recorder{Responses: []*mws.Response{statusResponse(StatusGreen)}}

	var got []Result
	sched, err := NewScheduler(
		New(rec, []mws.Section{section}, quietLogger()),
		time.Hour,
		func(results []Result) { got = results },
		quietLogger(),
	)
	require.NoError(t, err)

	results := sched.RunOnce(context.Background())
	assert.Equal(t, results, got)
	require.Len(t, got, 1)
	assert.Equal(t, StatusGreen, got[0].Status)
}

func TestScheduler_StartStop(t *testing.T) {
	t.Parallel()

	sched, err := NewScheduler(New(&mwstest.Recorder{}, nil, quietLogger()), time.Hour, nil, quietLogger())
	require.NoError(t, err)

	sched.Start()
	ctx := sched.Stop()
	<-ctx.Done()
}

// blockingDoer waits for its context to end, as a hung MWS call would.
type blockingDoer struct {
	started chan struct{}
}

func (d blockingDoer) Do(
	ctx context.Context,
	_ mws.Section,
	_ params.Values,
	_ ...mws.RequestOption,
) (*mws.Response, error) {
	close(d.started)
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestScheduler_StopCancelsRunningRound(t *testing.T) {
	t.Parallel()

	section := mws.Section{Name: "MonitorTestStopCancels", Path: "/", Version: "2009-01-01"}
	doer := blockingDoer{started: make(chan struct{})}

	var got []Result
	sched, err := NewScheduler(
		New(doer, []mws.Section{section}, quietLogger()),
		time.Hour,
		func(results []Result) { got = results },
		quietLogger(),
	)
	require.NoError(t, err)
	sched.Start()

	done := make(chan struct{})
	go func() {
		defer close(done)
		sched.run()
	}()

	<-doer.started
	<-sched.Stop().Done()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduled round did not return after Stop")
	}

	require.Len(t, got, 1)
	assert.Equal(t, StatusError, got[0].Status)
	assert.Equal(t, context.Canceled.Error(), got[0].Error)
}
