// Package reports implements the MWS Reports API section: requesting
// reports, listing report requests and finished reports, downloading them
// and managing report schedules.
package reports

import (
	"context"
	"time"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
	"github.com/donaldgifford/amazon-mws/pkg/params"
)

// Section is the Reports API section. Reports predate SellerId and
// identify the account with Merchant.
var Section = mws.Section{
	Name:        "Reports",
	Path:        "/",
	Version:     "2009-01-01",
	AccountType: mws.AccountMerchant,
}

// Operation names.
const (
	ActionRequestReport                = "RequestReport"
	ActionGetReportRequestList         = "GetReportRequestList"
	ActionGetReportRequestCount        = "GetReportRequestCount"
	ActionCancelReportRequests         = "CancelReportRequests"
	ActionGetReportList                = "GetReportList"
	ActionGetReportCount               = "GetReportCount"
	ActionGetReport                    = "GetReport"
	ActionManageReportSchedule         = "ManageReportSchedule"
	ActionGetReportScheduleList        = "GetReportScheduleList"
	ActionGetReportScheduleCount       = "GetReportScheduleCount"
	ActionUpdateReportAcknowledgements = "UpdateReportAcknowledgements"
)

// ProcessingStatus is the state of a report request.
type ProcessingStatus string

// Report processing statuses.
const (
	StatusSubmitted  ProcessingStatus = "_SUBMITTED_"
	StatusInProgress ProcessingStatus = "_IN_PROGRESS_"
	StatusCancelled  ProcessingStatus = "_CANCELLED_"
	StatusDone       ProcessingStatus = "_DONE_"
	StatusDoneNoData ProcessingStatus = "_DONE_NO_DATA_"
)

// Schedule is how often a scheduled report is generated.
type Schedule string

// A subset of the schedules MWS accepts. Any other documented value can be
// passed as Schedule("...").
const (
	Schedule15Minutes Schedule = "_15_MINUTES_"
	Schedule30Minutes Schedule = "_30_MINUTES_"
	Schedule1Hour     Schedule = "_1_HOUR_"
	Schedule4Hours    Schedule = "_4_HOURS_"
	Schedule12Hours   Schedule = "_12_HOURS_"
	Schedule1Day      Schedule = "_1_DAY_"
	Schedule7Days     Schedule = "_7_DAYS_"
	Schedule30Days    Schedule = "_30_DAYS_"
	ScheduleNever     Schedule = "_NEVER_"
)

// List templates shared by several operations.
const (
	keyMarketplaceIDs     = "MarketplaceIdList.Id"
	keyReportRequestIDs   = "ReportRequestIdList.Id"
	keyReportTypes        = "ReportTypeList.Type"
	keyProcessingStatuses = "ReportProcessingStatusList.Status"
	keyReportIDs          = "ReportIdList.Id"
)

// API sends Reports operations through a Doer.
type API struct {
	doer mws.Doer
}

// New creates a Reports API over d, usually an *mws.Client.
func New(d mws.Doer) *API {
	return &API{doer: d}
}

// GetServiceStatus returns the operational status of the section.
func (a *API) GetServiceStatus(ctx context.Context) (*mws.Response, error) {
	return mws.ServiceStatus(ctx, a.doer, Section)
}

// RequestReportInput creates a report request. ReportOptions is passed
// through verbatim, e.g. "ShowSalesChannel=true".
type RequestReportInput struct {
	ReportType     string
	StartDate      time.Time
	EndDate        time.Time
	MarketplaceIDs []string
	ReportOptions  string
}

// Params builds the RequestReport parameters.
func (in RequestReportInput) Params() (params.Values, error) {
	if err := params.Required("ReportType", in.ReportType); err != nil {
		return nil, err
	}
	if err := params.TimeRange("EndDate", in.StartDate, in.EndDate); err != nil {
		return nil, err
	}
	p := params.New(ActionRequestReport)
	p.Set("ReportType", in.ReportType)
	p.SetTime("StartDate", in.StartDate)
	p.SetTime("EndDate", in.EndDate)
	p.Set("ReportOptions", in.ReportOptions)
	return p.Merge(params.Enumerate(keyMarketplaceIDs, in.MarketplaceIDs)), nil
}

// RequestReport asks MWS to generate a report. The response carries the
// ReportRequestId to poll with GetReportRequestList.
func (a *API) RequestReport(ctx context.Context, in RequestReportInput) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

// GetReportRequestListInput filters report requests. A non-empty NextToken
// selects GetReportRequestListByNextToken and every other field is ignored.
type GetReportRequestListInput struct {
	RequestIDs         []string
	ReportTypes        []string
	ProcessingStatuses []ProcessingStatus
	MaxCount           int
	FromDate           time.Time
	ToDate             time.Time
	NextToken          string
}

// Params builds the GetReportRequestList parameters.
func (in GetReportRequestListInput) Params() (params.Values, error) {
	return params.Paginated(ActionGetReportRequestList, in.NextToken, func() (params.Values, error) {
		if err := params.TimeRange("RequestedToDate", in.FromDate, in.ToDate); err != nil {
			return nil, err
		}
		p := params.New(ActionGetReportRequestList)
		p.SetInt("MaxCount", in.MaxCount)
		p.SetTime("RequestedFromDate", in.FromDate)
		p.SetTime("RequestedToDate", in.ToDate)
		return p.Merge(
			params.Enumerate(keyReportRequestIDs, in.RequestIDs),
			params.Enumerate(keyReportTypes, in.ReportTypes),
			params.Enumerate(keyProcessingStatuses, in.ProcessingStatuses),
		), nil
	})
}

// GetReportRequestList lists report requests.
func (a *API) GetReportRequestList(
	ctx context.Context,
	in GetReportRequestListInput,
) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

// GetReportRequestListByNextToken continues a GetReportRequestList listing.
func (a *API) GetReportRequestListByNextToken(ctx context.Context, token string) (*mws.Response, error) {
	return mws.CallByNextToken(ctx, a.doer, Section, ActionGetReportRequestList, token)
}

// GetReportRequestListPages pages through every report request matching in.
func (a *API) GetReportRequestListPages(in GetReportRequestListInput) mws.Pager {
	return mws.Pages(a.doer, Section, ActionGetReportRequestList, in)
}

// GetReportRequestCountInput filters the report requests to count.
type GetReportRequestCountInput struct {
	ReportTypes        []string
	ProcessingStatuses []ProcessingStatus
	FromDate           time.Time
	ToDate             time.Time
}

// Params builds the GetReportRequestCount parameters.
func (in GetReportRequestCountInput) Params() (params.Values, error) {
	if err := params.TimeRange("RequestedToDate", in.FromDate, in.ToDate); err != nil {
		return nil, err
	}
	p := params.New(ActionGetReportRequestCount)
	p.SetTime("RequestedFromDate", in.FromDate)
	p.SetTime("RequestedToDate", in.ToDate)
	return p.Merge(
		params.Enumerate(keyReportTypes, in.ReportTypes),
		params.Enumerate(keyProcessingStatuses, in.ProcessingStatuses),
	), nil
}

// GetReportRequestCount counts report requests.
func (a *API) GetReportRequestCount(
	ctx context.Context,
	in GetReportRequestCountInput,
) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

// CancelReportRequestsInput selects the report requests to cancel. With
// no filters MWS cancels every pending request.
type CancelReportRequestsInput struct {
	RequestIDs         []string
	ReportTypes        []string
	ProcessingStatuses []ProcessingStatus
	FromDate           time.Time
	ToDate             time.Time
}

// Params builds the CancelReportRequests parameters.
func (in CancelReportRequestsInput) Params() (params.Values, error) {
	if err := params.TimeRange("RequestedToDate", in.FromDate, in.ToDate); err != nil {
		return nil, err
	}
	p := params.New(ActionCancelReportRequests)
	p.SetTime("RequestedFromDate", in.FromDate)
	p.SetTime("RequestedToDate", in.ToDate)
	return p.Merge(
		params.Enumerate(keyReportRequestIDs, in.RequestIDs),
		params.Enumerate(keyReportTypes, in.ReportTypes),
		params.Enumerate(keyProcessingStatuses, in.ProcessingStatuses),
	), nil
}

// CancelReportRequests cancels report requests.
func (a *API) CancelReportRequests(
	ctx context.Context,
	in CancelReportRequestsInput,
) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

// GetReportListInput filters generated reports. Acknowledged is tri-state:
// nil leaves the filter off.
type GetReportListInput struct {
	RequestIDs   []string
	ReportTypes  []string
	MaxCount     int
	Acknowledged *bool
	FromDate     time.Time
	ToDate       time.Time
	NextToken    string
}

// Params builds the GetReportList parameters.
func (in GetReportListInput) Params() (params.Values, error) {
	return params.Paginated(ActionGetReportList, in.NextToken, func() (params.Values, error) {
		if err := params.TimeRange("AvailableToDate", in.FromDate, in.ToDate); err != nil {
			return nil, err
		}
		p := params.New(ActionGetReportList)
		p.SetInt("MaxCount", in.MaxCount)
		p.SetBool("Acknowledged", in.Acknowledged)
		p.SetTime("AvailableFromDate", in.FromDate)
		p.SetTime("AvailableToDate", in.ToDate)
		return p.Merge(
			params.Enumerate(keyReportRequestIDs, in.RequestIDs),
			params.Enumerate(keyReportTypes, in.ReportTypes),
		), nil
	})
}

// GetReportList lists reports generated in the last 90 days.
func (a *API) GetReportList(ctx context.Context, in GetReportListInput) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

// GetReportListByNextToken continues a GetReportList listing.
func (a *API) GetReportListByNextToken(ctx context.Context, token string) (*mws.Response, error) {
	return mws.CallByNextToken(ctx, a.doer, Section, ActionGetReportList, token)
}

// GetReportListPages pages through every report matching in.
func (a *API) GetReportListPages(in GetReportListInput) mws.Pager {
	return mws.Pages(a.doer, Section, ActionGetReportList, in)
}

// GetReportCountInput filters the reports to count.
type GetReportCountInput struct {
	ReportTypes  []string
	Acknowledged *bool
	FromDate     time.Time
	ToDate       time.Time
}

// Params builds the GetReportCount parameters.
func (in GetReportCountInput) Params() (params.Values, error) {
	if err := params.TimeRange("AvailableToDate", in.FromDate, in.ToDate); err != nil {
		return nil, err
	}
	p := params.New(ActionGetReportCount)
	p.SetBool("Acknowledged", in.Acknowledged)
	p.SetTime("AvailableFromDate", in.FromDate)
	p.SetTime("AvailableToDate", in.ToDate)
	return p.Merge(params.Enumerate(keyReportTypes, in.ReportTypes)), nil
}

// GetReportCount counts generated reports.
func (a *API) GetReportCount(ctx context.Context, in GetReportCountInput) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

// GetReportInput identifies a generated report.
type GetReportInput struct {
	ReportID string
}

// Params builds the GetReport parameters.
func (in GetReportInput) Params() (params.Values, error) {
	if err := params.Required("ReportId", in.ReportID); err != nil {
		return nil, err
	}
	p := params.New(ActionGetReport)
	p.Set("ReportId", in.ReportID)
	return p, nil
}

// GetReport downloads a report. Most reports are flat files, so the result
// is usually read with Response.Data rather than Parsed.
func (a *API) GetReport(ctx context.Context, reportID string) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, GetReportInput{ReportID: reportID})
}

// ManageReportScheduleInput creates, updates or (with ScheduleNever)
// deletes a report schedule.
type ManageReportScheduleInput struct {
	ReportType   string
	Schedule     Schedule
	ScheduleDate time.Time
}

// Params builds the ManageReportSchedule parameters.
func (in ManageReportScheduleInput) Params() (params.Values, error) {
	if err := params.First(
		params.Required("ReportType", in.ReportType),
		params.Required("Schedule", string(in.Schedule)),
	); err != nil {
		return nil, err
	}
	p := params.New(ActionManageReportSchedule)
	p.Set("ReportType", in.ReportType)
	p.Set("Schedule", string(in.Schedule))
	p.SetTime("ScheduleDate", in.ScheduleDate)
	return p, nil
}

// ManageReportSchedule manages a report schedule.
func (a *API) ManageReportSchedule(
	ctx context.Context,
	in ManageReportScheduleInput,
) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

// GetReportScheduleListInput filters report schedules.
type GetReportScheduleListInput struct {
	ReportTypes []string
	NextToken   string
}

// Params builds the GetReportScheduleList parameters.
func (in GetReportScheduleListInput) Params() (params.Values, error) {
	return params.Paginated(ActionGetReportScheduleList, in.NextToken, func() (params.Values, error) {
		p := params.New(ActionGetReportScheduleList)
		return p.Merge(params.Enumerate(keyReportTypes, in.ReportTypes)), nil
	})
}

// GetReportScheduleList lists report schedules.
func (a *API) GetReportScheduleList(
	ctx context.Context,
	in GetReportScheduleListInput,
) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

// GetReportScheduleListByNextToken continues a GetReportScheduleList
// listing.
func (a *API) GetReportScheduleListByNextToken(ctx context.Context, token string) (*mws.Response, error) {
	return mws.CallByNextToken(ctx, a.doer, Section, ActionGetReportScheduleList, token)
}

// GetReportScheduleCountInput filters the report schedules to count.
type GetReportScheduleCountInput struct {
	ReportTypes []string
}

// Params builds the GetReportScheduleCount parameters.
func (in GetReportScheduleCountInput) Params() (params.Values, error) {
	p := params.New(ActionGetReportScheduleCount)
	return p.Merge(params.Enumerate(keyReportTypes, in.ReportTypes)), nil
}

// GetReportScheduleCount counts report schedules.
func (a *API) GetReportScheduleCount(
	ctx context.Context,
	in GetReportScheduleCountInput,
) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

// UpdateReportAcknowledgementsInput marks reports as acknowledged (or not).
type UpdateReportAcknowledgementsInput struct {
	ReportIDs    []string
	Acknowledged *bool
}

// Params builds the UpdateReportAcknowledgements parameters.
func (in UpdateReportAcknowledgementsInput) Params() (params.Values, error) {
	if err := params.RequiredList("ReportIdList", in.ReportIDs); err != nil {
		return nil, err
	}
	p := params.New(ActionUpdateReportAcknowledgements)
	p.SetBool("Acknowledged", in.Acknowledged)
	return p.Merge(params.Enumerate(keyReportIDs, in.ReportIDs)), nil
}

// UpdateReportAcknowledgements updates the acknowledged status of reports.
func (a *API) UpdateReportAcknowledgements(
	ctx context.Context,
	in UpdateReportAcknowledgementsInput,
) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}
