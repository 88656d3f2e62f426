// Package sellers implements the MWS Sellers API section.
package sellers

import (
	"context"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
	"github.com/donaldgifford/amazon-mws/pkg/params"
)

// Section is the Sellers API section.
var Section = mws.Section{
	Name:        "Sellers",
	Path:        "/Sellers/2011-07-01",
	Version:     "2011-07-01",
	AccountType: mws.AccountSeller,
}

// ActionListMarketplaceParticipations lists the marketplaces the seller
// can sell in.
const ActionListMarketplaceParticipations = "ListMarketplaceParticipations"

// API sends Sellers operations through a Doer.
type API struct {
	doer mws.Doer
}

// New creates a Sellers API over d.
func New(d mws.Doer) *API {
	return &API{doer: d}
}

// GetServiceStatus returns the operational status of the section.
func (a *API) GetServiceStatus(ctx context.Context) (*mws.Response, error) {
	return mws.ServiceStatus(ctx, a.doer, Section)
}

// ListMarketplaceParticipationsInput takes no arguments beyond the
// continuation token.
type ListMarketplaceParticipationsInput struct {
	NextToken string
}

// Params builds the ListMarketplaceParticipations parameters.
func (in ListMarketplaceParticipationsInput) Params() (params.Values, error) {
	return params.Paginated(ActionListMarketplaceParticipations, in.NextToken, func() (params.Values, error) {
		return params.New(ActionListMarketplaceParticipations), nil
	})
}

// ListMarketplaceParticipations lists marketplace participations.
func (a *API) ListMarketplaceParticipations(ctx context.Context) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, ListMarketplaceParticipationsInput{})
}

// ListMarketplaceParticipationsByNextToken continues the listing.
func (a *API) ListMarketplaceParticipationsByNextToken(
	ctx context.Context,
	token string,
) (*mws.Response, error) {
	return mws.CallByNextToken(ctx, a.doer, Section, ActionListMarketplaceParticipations, token)
}

// ListMarketplaceParticipationsPages pages through every participation.
func (a *API) ListMarketplaceParticipationsPages() mws.Pager {
	return mws.Pages(a.doer, Section, ActionListMarketplaceParticipations, ListMarketplaceParticipationsInput{})
}
