// Package feeds implements the MWS Feeds API section.
package feeds

import (
	"context"
	"time"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
	"github.com/donaldgifford/amazon-mws/pkg/params"
)

// Section is the Feeds API section.
var Section = mws.Section{
	Name:        "Feeds",
	Path:        "/",
	Version:     "2009-01-01",
	AccountType: mws.AccountMerchant,
}

// Operation names.
const (
	ActionSubmitFeed              = "SubmitFeed"
	ActionGetFeedSubmissionList   = "GetFeedSubmissionList"
	ActionGetFeedSubmissionCount  = "GetFeedSubmissionCount"
	ActionCancelFeedSubmissions   = "CancelFeedSubmissions"
	ActionGetFeedSubmissionResult = "GetFeedSubmissionResult"
)

// DefaultContentType is sent with feeds that do not set one.
const DefaultContentType = "text/xml"

// ProcessingStatus is the state of a feed submission.
type ProcessingStatus string

// Feed processing statuses.
const (
	StatusAwaitingAsynchronousReply ProcessingStatus = "_AWAITING_ASYNCHRONOUS_REPLY_"
	StatusCancelled                 ProcessingStatus = "_CANCELLED_"
	StatusDone                      ProcessingStatus = "_DONE_"
	StatusInProgress                ProcessingStatus = "_IN_PROGRESS_"
	StatusInSafetyNet               ProcessingStatus = "_IN_SAFETY_NET_"
	StatusSubmitted                 ProcessingStatus = "_SUBMITTED_"
	StatusUnconfirmed               ProcessingStatus = "_UNCONFIRMED_"
)

const (
	keyMarketplaceIDs     = "MarketplaceIdList.Id"
	keySubmissionIDs      = "FeedSubmissionIdList.Id"
	keyFeedTypes          = "FeedTypeList.Type"
	keyProcessingStatuses = "FeedProcessingStatusList.Status"
)

// API sends Feeds operations through a Doer.
type API struct {
	doer mws.Doer
}

// New creates a Feeds API over d.
func New(d mws.Doer) *API {
	return &API{doer: d}
}

// GetServiceStatus returns the operational status of the section.
func (a *API) GetServiceStatus(ctx context.Context) (*mws.Response, error) {
	return mws.ServiceStatus(ctx, a.doer, Section)
}

// SubmitFeedInput uploads a feed. AmazonOrderID and DocumentType fill the
// Easy Ship invoice metadata in FeedOptions; FeedOptions is used verbatim
// when they are empty.
type SubmitFeedInput struct {
	Feed            []byte
	FeedType        string
	ContentType     string
	MarketplaceIDs  []string
	PurgeAndReplace *bool
	FeedOptions     string
	AmazonOrderID   string
	DocumentType    string
}

// Params builds the SubmitFeed query parameters. The feed itself travels
// in the request body.
func (in SubmitFeedInput) Params() (params.Values, error) {
	if err := params.Required("FeedType", in.FeedType); err != nil {
		return nil, err
	}
	if len(in.Feed) == 0 {
		return nil, params.Missing("FeedContent")
	}
	p := params.New(ActionSubmitFeed)
	p.Set("FeedType", in.FeedType)
	p.SetBool("PurgeAndReplace", in.PurgeAndReplace)
	p.Set("FeedOptions", in.feedOptions())
	return p.Merge(params.Enumerate(keyMarketplaceIDs, in.MarketplaceIDs)), nil
}

func (in SubmitFeedInput) feedOptions() string {
	if in.AmazonOrderID == "" && in.DocumentType == "" {
		return in.FeedOptions
	}
	return "metadata:AmazonOrderId=" + in.AmazonOrderID + ";metadata:DocumentType=" + in.DocumentType
}

func (in SubmitFeedInput) contentType() string {
	if in.ContentType == "" {
		return DefaultContentType
	}
	return in.ContentType
}

// SubmitFeed uploads a feed for processing.
func (a *API) SubmitFeed(ctx context.Context, in SubmitFeedInput) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in, mws.WithBody(in.Feed, in.contentType()))
}

// GetFeedSubmissionListInput filters feed submissions.
type GetFeedSubmissionListInput struct {
	SubmissionIDs      []string
	FeedTypes          []string
	ProcessingStatuses []ProcessingStatus
	MaxCount           int
	FromDate           time.Time
	ToDate             time.Time
	NextToken          string
}

// Params builds the GetFeedSubmissionList parameters.
func (in GetFeedSubmissionListInput) Params() (params.Values, error) {
	return params.Paginated(ActionGetFeedSubmissionList, in.NextToken, func() (params.Values, error) {
		if err := params.TimeRange("SubmittedToDate", in.FromDate, in.ToDate); err != nil {
			return nil, err
		}
		p := params.New(ActionGetFeedSubmissionList)
		p.SetInt("MaxCount", in.MaxCount)
		p.SetTime("SubmittedFromDate", in.FromDate)
		p.SetTime("SubmittedToDate", in.ToDate)
		return p.Merge(
			params.Enumerate(keySubmissionIDs, in.SubmissionIDs),
			params.Enumerate(keyFeedTypes, in.FeedTypes),
			params.Enumerate(keyProcessingStatuses, in.ProcessingStatuses),
		), nil
	})
}

// GetFeedSubmissionList lists feed submissions from the last 90 days.
func (a *API) GetFeedSubmissionList(
	ctx context.Context,
	in GetFeedSubmissionListInput,
) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

// GetFeedSubmissionListByNextToken continues a GetFeedSubmissionList
// listing.
func (a *API) GetFeedSubmissionListByNextToken(ctx context.Context, token string) (*mws.Response, error) {
	return mws.CallByNextToken(ctx, a.doer, Section, ActionGetFeedSubmissionList, token)
}

// GetFeedSubmissionListPages pages through every submission matching in.
func (a *API) GetFeedSubmissionListPages(in GetFeedSubmissionListInput) mws.Pager {
	return mws.Pages(a.doer, Section, ActionGetFeedSubmissionList, in)
}

// GetFeedSubmissionCountInput filters the submissions to count.
type GetFeedSubmissionCountInput struct {
	FeedTypes          []string
	ProcessingStatuses []ProcessingStatus
	FromDate           time.Time
	ToDate             time.Time
}

// Params builds the GetFeedSubmissionCount parameters.
func (in GetFeedSubmissionCountInput) Params() (params.Values, error) {
	if err := params.TimeRange("SubmittedToDate", in.FromDate, in.ToDate); err != nil {
		return nil, err
	}
	p := params.New(ActionGetFeedSubmissionCount)
	p.SetTime("SubmittedFromDate", in.FromDate)
	p.SetTime("SubmittedToDate", in.ToDate)
	return p.Merge(
		params.Enumerate(keyFeedTypes, in.FeedTypes),
		params.Enumerate(keyProcessingStatuses, in.ProcessingStatuses),
	), nil
}

// GetFeedSubmissionCount counts feed submissions.
func (a *API) GetFeedSubmissionCount(
	ctx context.Context,
	in GetFeedSubmissionCountInput,
) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

// CancelFeedSubmissionsInput selects the submissions to cancel.
type CancelFeedSubmissionsInput struct {
	SubmissionIDs []string
	FeedTypes     []string
	FromDate      time.Time
	ToDate        time.Time
}

// Params builds the CancelFeedSubmissions parameters.
func (in CancelFeedSubmissionsInput) Params() (params.Values, error) {
	if err := params.TimeRange("SubmittedToDate", in.FromDate, in.ToDate); err != nil {
		return nil, err
	}
	p := params.New(ActionCancelFeedSubmissions)
	p.SetTime("SubmittedFromDate", in.FromDate)
	p.SetTime("SubmittedToDate", in.ToDate)
	return p.Merge(
		params.Enumerate(keySubmissionIDs, in.SubmissionIDs),
		params.Enumerate(keyFeedTypes, in.FeedTypes),
	), nil
}

// CancelFeedSubmissions cancels submissions that have not started
// processing.
func (a *API) CancelFeedSubmissions(
	ctx context.Context,
	in CancelFeedSubmissionsInput,
) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

// GetFeedSubmissionResultInput identifies a processed submission.
type GetFeedSubmissionResultInput struct {
	SubmissionID string
}

// Params builds the GetFeedSubmissionResult parameters.
func (in GetFeedSubmissionResultInput) Params() (params.Values, error) {
	if err := params.Required("FeedSubmissionId", in.SubmissionID); err != nil {
		return nil, err
	}
	p := params.New(ActionGetFeedSubmissionResult)
	p.Set("FeedSubmissionId", in.SubmissionID)
	return p, nil
}

// GetFeedSubmissionResult downloads the processing report of a
// submission.
func (a *API) GetFeedSubmissionResult(ctx context.Context, submissionID string) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, GetFeedSubmissionResultInput{SubmissionID: submissionID})
}
