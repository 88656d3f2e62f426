// Package recommendations implements the MWS Recommendations API section.
package recommendations

import (
	"context"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
	"github.com/donaldgifford/amazon-mws/pkg/params"
)

// Section is the Recommendations API section.
var Section = mws.Section{
	Name:        "Recommendations",
	Path:        "/Recommendations/2013-04-01",
	Version:     "2013-04-01",
	AccountType: mws.AccountSeller,
}

// Operation names.
const (
	ActionGetLastUpdatedTimeForRecommendations = "GetLastUpdatedTimeForRecommendations"
	ActionListRecommendations                  = "ListRecommendations"
)

// Category narrows ListRecommendations to one kind of recommendation.
type Category string

// Recommendation categories.
const (
	CategoryInventory      Category = "Inventory"
	CategorySelection      Category = "Selection"
	CategoryPricing        Category = "Pricing"
	CategoryFulfillment    Category = "Fulfillment"
	CategoryListingQuality Category = "ListingQuality"
	CategoryGlobalSelling  Category = "GlobalSelling"
	CategoryAdvertising    Category = "Advertising"
)

// API sends Recommendations operations through a Doer.
type API struct {
	doer mws.Doer
}

// New creates a Recommendations API over d.
func New(d mws.Doer) *API {
	return &API{doer: d}
}

// GetServiceStatus returns the operational status of the section.
func (a *API) GetServiceStatus(ctx context.Context) (*mws.Response, error) {
	return mws.ServiceStatus(ctx, a.doer, Section)
}

// GetLastUpdatedTimeForRecommendationsInput names the marketplace.
type GetLastUpdatedTimeForRecommendationsInput struct {
	MarketplaceID string
}

// Params builds the GetLastUpdatedTimeForRecommendations parameters.
func (in GetLastUpdatedTimeForRecommendationsInput) Params() (params.Values, error) {
	if err := params.Required("MarketplaceId", in.MarketplaceID); err != nil {
		return nil, err
	}
	p := params.New(ActionGetLastUpdatedTimeForRecommendations)
	p.Set("MarketplaceId", in.MarketplaceID)
	return p, nil
}

// GetLastUpdatedTimeForRecommendations reports when each category was last
// refreshed.
func (a *API) GetLastUpdatedTimeForRecommendations(
	ctx context.Context,
	marketplaceID string,
) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, GetLastUpdatedTimeForRecommendationsInput{
		MarketplaceID: marketplaceID,
	})
}

// ListRecommendationsInput selects recommendations. An empty Category
// returns every category.
type ListRecommendationsInput struct {
	MarketplaceID string
	Category      Category
	NextToken     string
}

// Params builds the ListRecommendations parameters.
func (in ListRecommendationsInput) Params() (params.Values, error) {
	return params.Paginated(ActionListRecommendations, in.NextToken, func() (params.Values, error) {
		if err := params.Required("MarketplaceId", in.MarketplaceID); err != nil {
			return nil, err
		}
		p := params.New(ActionListRecommendations)
		p.Set("MarketplaceId", in.MarketplaceID)
		p.Set("RecommendationCategory", string(in.Category))
		return p, nil
	})
}

// ListRecommendations lists recommendations.
func (a *API) ListRecommendations(ctx context.Context, in ListRecommendationsInput) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

// ListRecommendationsByNextToken continues a ListRecommendations listing.
func (a *API) ListRecommendationsByNextToken(ctx context.Context, token string) (*mws.Response, error) {
	return mws.CallByNextToken(ctx, a.doer, Section, ActionListRecommendations, token)
}

// ListRecommendationsPages pages through every recommendation matching in.
func (a *API) ListRecommendationsPages(in ListRecommendationsInput) mws.Pager {
	return mws.Pages(a.doer, Section, ActionListRecommendations, in)
}
