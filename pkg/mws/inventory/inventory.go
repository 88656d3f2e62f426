// Package inventory implements the MWS Fulfillment Inventory API section.
package inventory

import (
	"context"
	"time"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
	"github.com/donaldgifford/amazon-mws/pkg/params"
)

// Section is the Fulfillment Inventory API section.
var Section = mws.Section{
	Name:        "Inventory",
	Path:        "/FulfillmentInventory/2010-10-01",
	Version:     "2010-10-01",
	AccountType: mws.AccountSeller,
}

// ActionListInventorySupply lists FBA inventory availability.
const ActionListInventorySupply = "ListInventorySupply"

// ResponseGroup controls how much supply detail is returned.
type ResponseGroup string

// Response groups.
const (
	ResponseGroupBasic    ResponseGroup = "Basic"
	ResponseGroupDetailed ResponseGroup = "Detailed"
)

// API sends Inventory operations through a Doer.
type API struct {
	doer mws.Doer
}

// New creates an Inventory API over d.
func New(d mws.Doer) *API {
	return &API{doer: d}
}

// GetServiceStatus returns the operational status of the section.
func (a *API) GetServiceStatus(ctx context.Context) (*mws.Response, error) {
	return mws.ServiceStatus(ctx, a.doer, Section)
}

// ListInventorySupplyInput selects supply either by SKU or by change time;
// one of SellerSKUs or QueryStartDateTime must be set. ResponseGroup
// defaults to Basic.
type ListInventorySupplyInput struct {
	SellerSKUs         []string
	QueryStartDateTime time.Time
	ResponseGroup      ResponseGroup
	MarketplaceID      string
	NextToken          string
}

// Params builds the ListInventorySupply parameters.
func (in ListInventorySupplyInput) Params() (params.Values, error) {
	return params.Paginated(ActionListInventorySupply, in.NextToken, func() (params.Values, error) {
		if len(in.SellerSKUs) == 0 && in.QueryStartDateTime.IsZero() {
			return nil, params.Invalid("SellerSkus", "either SellerSkus or QueryStartDateTime is required")
		}
		group := in.ResponseGroup
		if group == "" {
			group = ResponseGroupBasic
		}
		p := params.New(ActionListInventorySupply)
		p.SetTime("QueryStartDateTime", in.QueryStartDateTime)
		p.Set("ResponseGroup", string(group))
		p.Set("MarketplaceId", in.MarketplaceID)
		return p.Merge(params.Enumerate("SellerSkus.member", in.SellerSKUs)), nil
	})
}

// ListInventorySupply returns supply for the selected SKUs.
func (a *API) ListInventorySupply(ctx context.Context, in ListInventorySupplyInput) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

// ListInventorySupplyByNextToken continues a ListInventorySupply listing.
func (a *API) ListInventorySupplyByNextToken(ctx context.Context, token string) (*mws.Response, error) {
	return mws.CallByNextToken(ctx, a.doer, Section, ActionListInventorySupply, token)
}

// ListInventorySupplyPages pages through every supply record matching in.
func (a *API) ListInventorySupplyPages(in ListInventorySupplyInput) mws.Pager {
	return mws.Pages(a.doer, Section, ActionListInventorySupply, in)
}
