// Package finances implements the MWS Finances API section.
package finances

import (
	"context"
	"time"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
	"github.com/donaldgifford/amazon-mws/pkg/params"
)

// Section is the Finances API section.
var Section = mws.Section{
	Name:        "Finances",
	Path:        "/Finances/2015-05-01",
	Version:     "2015-05-01",
	AccountType: mws.AccountSeller,
}

// Operation names.
const (
	ActionListFinancialEventGroups = "ListFinancialEventGroups"
	ActionListFinancialEvents      = "ListFinancialEvents"
)

// API sends Finances operations through a Doer.
type API struct {
	doer mws.Doer
}

// New creates a Finances API over d.
func New(d mws.Doer) *API {
	return &API{doer: d}
}

// GetServiceStatus returns the operational status of the section.
func (a *API) GetServiceStatus(ctx context.Context) (*mws.Response, error) {
	return mws.ServiceStatus(ctx, a.doer, Section)
}

// ListFinancialEventGroupsInput selects event groups by the time they
// were opened. StartedAfter is required.
type ListFinancialEventGroupsInput struct {
	StartedAfter  time.Time
	StartedBefore time.Time
	MaxResults    int
	NextToken     string
}

// Params builds the ListFinancialEventGroups parameters.
func (in ListFinancialEventGroupsInput) Params() (params.Values, error) {
	return params.Paginated(ActionListFinancialEventGroups, in.NextToken, func() (params.Values, error) {
		if in.StartedAfter.IsZero() {
			return nil, params.Missing("FinancialEventGroupStartedAfter")
		}
		if err := params.TimeRange(
			"FinancialEventGroupStartedBefore", in.StartedAfter, in.StartedBefore,
		); err != nil {
			return nil, err
		}
		p := params.New(ActionListFinancialEventGroups)
		p.SetTime("FinancialEventGroupStartedAfter", in.StartedAfter)
		p.SetTime("FinancialEventGroupStartedBefore", in.StartedBefore)
		p.SetInt("MaxResultsPerPage", in.MaxResults)
		return p, nil
	})
}

// ListFinancialEventGroups lists financial event groups.
func (a *API) ListFinancialEventGroups(
	ctx context.Context,
	in ListFinancialEventGroupsInput,
) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

// ListFinancialEventGroupsByNextToken continues a ListFinancialEventGroups
// listing.
func (a *API) ListFinancialEventGroupsByNextToken(ctx context.Context, token string) (*mws.Response, error) {
	return mws.CallByNextToken(ctx, a.doer, Section, ActionListFinancialEventGroups, token)
}

// ListFinancialEventGroupsPages pages through every group matching in.
func (a *API) ListFinancialEventGroupsPages(in ListFinancialEventGroupsInput) mws.Pager {
	return mws.Pages(a.doer, Section, ActionListFinancialEventGroups, in)
}

// ListFinancialEventsInput selects financial events by group, by order or
// by posting date. At least one of the three must be set.
type ListFinancialEventsInput struct {
	GroupID       string
	AmazonOrderID string
	PostedAfter   time.Time
	PostedBefore  time.Time
	MaxResults    int
	NextToken     string
}

// Params builds the ListFinancialEvents parameters.
func (in ListFinancialEventsInput) Params() (params.Values, error) {
	return params.Paginated(ActionListFinancialEvents, in.NextToken, func() (params.Values, error) {
		if in.GroupID == "" && in.AmazonOrderID == "" && in.PostedAfter.IsZero() {
			return nil, params.Invalid(
				"FinancialEventGroupId",
				"one of FinancialEventGroupId, AmazonOrderId or PostedAfter is required",
			)
		}
		if err := params.TimeRange("PostedBefore", in.PostedAfter, in.PostedBefore); err != nil {
			return nil, err
		}
		p := params.New(ActionListFinancialEvents)
		p.Set("FinancialEventGroupId", in.GroupID)
		p.Set("AmazonOrderId", in.AmazonOrderID)
		p.SetTime("PostedAfter", in.PostedAfter)
		p.SetTime("PostedBefore", in.PostedBefore)
		p.SetInt("MaxResultsPerPage", in.MaxResults)
		return p, nil
	})
}

// ListFinancialEvents lists financial events.
func (a *API) ListFinancialEvents(ctx context.Context, in ListFinancialEventsInput) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

// ListFinancialEventsByNextToken continues a ListFinancialEvents listing.
func (a *API) ListFinancialEventsByNextToken(ctx context.Context, token string) (*mws.Response, error) {
	return mws.CallByNextToken(ctx, a.doer, Section, ActionListFinancialEvents, token)
}

// ListFinancialEventsPages pages through every event matching in.
func (a *API) ListFinancialEventsPages(in ListFinancialEventsInput) mws.Pager {
	return mws.Pages(a.doer, Section, ActionListFinancialEvents, in)
}
