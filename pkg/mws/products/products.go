// Package products implements the MWS Products API section: catalog
// lookups, competitive pricing, offers and fee estimates.
package products

import (
	"context"
	"strconv"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
	"github.com/donaldgifford/amazon-mws/pkg/params"
)

// Section is the Products API section.
var Section = mws.Section{
	Name:        "Products",
	Path:        "/Products/2011-10-01",
	Version:     "2011-10-01",
	AccountType: mws.AccountSeller,
}

// Operation names.
const (
	ActionListMatchingProducts          = "ListMatchingProducts"
	ActionGetMatchingProduct            = "GetMatchingProduct"
	ActionGetMatchingProductForID       = "GetMatchingProductForId"
	ActionGetCompetitivePricingForSKU   = "GetCompetitivePricingForSKU"
	ActionGetCompetitivePricingForASIN  = "GetCompetitivePricingForASIN"
	ActionGetLowestOfferListingsForSKU  = "GetLowestOfferListingsForSKU"
	ActionGetLowestOfferListingsForASIN = "GetLowestOfferListingsForASIN"
	ActionGetLowestPricedOffersForSKU   = "GetLowestPricedOffersForSKU"
	ActionGetLowestPricedOffersForASIN  = "GetLowestPricedOffersForASIN"
	ActionGetMyFeesEstimate             = "GetMyFeesEstimate"
	ActionGetMyPriceForSKU              = "GetMyPriceForSKU"
	ActionGetMyPriceForASIN             = "GetMyPriceForASIN"
	ActionGetProductCategoriesForSKU    = "GetProductCategoriesForSKU"
	ActionGetProductCategoriesForASIN   = "GetProductCategoriesForASIN"
)

// Per-request list limits.
const (
	maxMatchingASINs = 10
	maxMatchingIDs   = 5
	maxListIDs       = 20
)

const keyMarketplaceID = "MarketplaceId"

// ItemCondition filters offers by condition.
type ItemCondition string

// Item conditions.
const (
	ConditionAny         ItemCondition = "Any"
	ConditionNew         ItemCondition = "New"
	ConditionUsed        ItemCondition = "Used"
	ConditionCollectible ItemCondition = "Collectible"
	ConditionRefurbished ItemCondition = "Refurbished"
	ConditionClub        ItemCondition = "Club"
)

// IDType is the kind of product identifier in GetMatchingProductForId and
// fee estimates.
type IDType string

// Identifier types.
const (
	IDTypeASIN      IDType = "ASIN"
	IDTypeGCID      IDType = "GCID"
	IDTypeSellerSKU IDType = "SellerSKU"
	IDTypeUPC       IDType = "UPC"
	IDTypeEAN       IDType = "EAN"
	IDTypeISBN      IDType = "ISBN"
	IDTypeJAN       IDType = "JAN"
)

// API sends Products operations through a Doer.
type API struct {
	doer mws.Doer
}

// New creates a Products API over d.
func New(d mws.Doer) *API {
	return &API{doer: d}
}

// GetServiceStatus returns the operational status of the section.
func (a *API) GetServiceStatus(ctx context.Context) (*mws.Response, error) {
	return mws.ServiceStatus(ctx, a.doer, Section)
}

// idList validates a list of product ids against limit and enumerates it
// under template.
func idList(field, template string, ids []string, limit int) (params.Values, error) {
	if err := params.RequiredList(field, ids); err != nil {
		return nil, err
	}
	if len(ids) > limit {
		return nil, params.Invalid(field, "at most %d ids per request (got %d)", limit, len(ids))
	}
	return params.Enumerate(template, ids), nil
}

func marketplace(action, marketplaceID string) (params.Values, error) {
	if err := params.Required(keyMarketplaceID, marketplaceID); err != nil {
		return nil, err
	}
	p := params.New(action)
	p.Set(keyMarketplaceID, marketplaceID)
	return p, nil
}

// ListMatchingProductsInput is a free-text catalog search.
type ListMatchingProductsInput struct {
	MarketplaceID  string
	Query          string
	QueryContextID string
}

// Params builds the ListMatchingProducts parameters.
func (in ListMatchingProductsInput) Params() (params.Values, error) {
	p, err := marketplace(ActionListMatchingProducts, in.MarketplaceID)
	if err != nil {
		return nil, err
	}
	if err := params.Required("Query", in.Query); err != nil {
		return nil, err
	}
	p.Set("Query", in.Query)
	p.Set("QueryContextId", in.QueryContextID)
	return p, nil
}

// ListMatchingProducts searches the catalog.
func (a *API) ListMatchingProducts(ctx context.Context, in ListMatchingProductsInput) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

// GetMatchingProductInput looks up to 10 ASINs.
type GetMatchingProductInput struct {
	MarketplaceID string
	ASINs         []string
}

// Params builds the GetMatchingProduct parameters.
func (in GetMatchingProductInput) Params() (params.Values, error) {
	p, err := marketplace(ActionGetMatchingProduct, in.MarketplaceID)
	if err != nil {
		return nil, err
	}
	ids, err := idList("ASINList", "ASINList.ASIN", in.ASINs, maxMatchingASINs)
	if err != nil {
		return nil, err
	}
	return p.Merge(ids), nil
}

// GetMatchingProduct returns catalog attributes for ASINs.
func (a *API) GetMatchingProduct(
	ctx context.Context,
	marketplaceID string,
	asins ...string,
) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, GetMatchingProductInput{MarketplaceID: marketplaceID, ASINs: asins})
}

// GetMatchingProductForIDInput looks up to 5 products by UPC, EAN, ISBN
// and the other IDType values.
type GetMatchingProductForIDInput struct {
	MarketplaceID string
	IDType        IDType
	IDs           []string
}

// Params builds the GetMatchingProductForId parameters.
func (in GetMatchingProductForIDInput) Params() (params.Values, error) {
	p, err := marketplace(ActionGetMatchingProductForID, in.MarketplaceID)
	if err != nil {
		return nil, err
	}
	if err := params.Required("IdType", string(in.IDType)); err != nil {
		return nil, err
	}
	ids, err := idList("IdList", "IdList.Id", in.IDs, maxMatchingIDs)
	if err != nil {
		return nil, err
	}
	p.Set("IdType", string(in.IDType))
	return p.Merge(ids), nil
}

// GetMatchingProductForID returns catalog attributes for product ids.
func (a *API) GetMatchingProductForID(
	ctx context.Context,
	in GetMatchingProductForIDInput,
) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

// ListInput names up to 20 SKUs or ASINs in one marketplace. It backs the
// pricing and offer-listing operations, which differ only in action and
// in the optional ItemCondition and ExcludeMe filters.
type ListInput struct {
	Action        string
	MarketplaceID string
	SellerSKUs    []string
	ASINs         []string
	ItemCondition ItemCondition
	ExcludeMe     *bool
}

// Params builds the parameters of in.Action. SKU actions enumerate
// SellerSKUList.SellerSKU, ASIN actions ASINList.ASIN.
func (in ListInput) Params() (params.Values, error) {
	p, err := marketplace(in.Action, in.MarketplaceID)
	if err != nil {
		return nil, err
	}
	var ids params.Values
	if in.bySKU() {
		ids, err = idList("SellerSKUList", "SellerSKUList.SellerSKU", in.SellerSKUs, maxListIDs)
	} else {
		ids, err = idList("ASINList", "ASINList.ASIN", in.ASINs, maxListIDs)
	}
	if err != nil {
		return nil, err
	}
	p.Set("ItemCondition", string(in.ItemCondition))
	p.SetBool("ExcludeMe", in.ExcludeMe)
	return p.Merge(ids), nil
}

func (in ListInput) bySKU() bool {
	switch in.Action {
	case ActionGetCompetitivePricingForSKU, ActionGetLowestOfferListingsForSKU, ActionGetMyPriceForSKU:
		return true
	}
	return false
}

// GetCompetitivePricingForSKU returns competitive prices for SKUs.
func (a *API) GetCompetitivePricingForSKU(
	ctx context.Context,
	marketplaceID string,
	skus ...string,
) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, ListInput{
		Action:        ActionGetCompetitivePricingForSKU,
		MarketplaceID: marketplaceID,
		SellerSKUs:    skus,
	})
}

// GetCompetitivePricingForASIN returns competitive prices for ASINs.
func (a *API) GetCompetitivePricingForASIN(
	ctx context.Context,
	marketplaceID string,
	asins ...string,
) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, ListInput{
		Action:        ActionGetCompetitivePricingForASIN,
		MarketplaceID: marketplaceID,
		ASINs:         asins,
	})
}

// GetLowestOfferListingsForSKU returns the lowest active offers for SKUs.
// in.Action is set by the method.
func (a *API) GetLowestOfferListingsForSKU(ctx context.Context, in ListInput) (*mws.Response, error) {
	in.Action = ActionGetLowestOfferListingsForSKU
	return mws.Call(ctx, a.doer, Section, in)
}

// GetLowestOfferListingsForASIN returns the lowest active offers for ASINs.
// in.Action is set by the method.
func (a *API) GetLowestOfferListingsForASIN(ctx context.Context, in ListInput) (*mws.Response, error) {
	in.Action = ActionGetLowestOfferListingsForASIN
	return mws.Call(ctx, a.doer, Section, in)
}

// GetMyPriceForSKU returns the seller's own prices for SKUs. in.Action is
// set by the method.
func (a *API) GetMyPriceForSKU(ctx context.Context, in ListInput) (*mws.Response, error) {
	in.Action = ActionGetMyPriceForSKU
	return mws.Call(ctx, a.doer, Section, in)
}

// GetMyPriceForASIN returns the seller's own prices for ASINs. in.Action
// is set by the method.
func (a *API) GetMyPriceForASIN(ctx context.Context, in ListInput) (*mws.Response, error) {
	in.Action = ActionGetMyPriceForASIN
	return mws.Call(ctx, a.doer, Section, in)
}

// LowestPricedOffersInput names one SKU or ASIN. ItemCondition is required
// by the service.
type LowestPricedOffersInput struct {
	MarketplaceID string
	SellerSKU     string
	ASIN          string
	ItemCondition ItemCondition
}

func (in LowestPricedOffersInput) build(action, key, id string) (params.Values, error) {
	p, err := marketplace(action, in.MarketplaceID)
	if err != nil {
		return nil, err
	}
	if err := params.First(
		params.Required(key, id),
		params.Required("ItemCondition", string(in.ItemCondition)),
	); err != nil {
		return nil, err
	}
	p.Set(key, id)
	p.Set("ItemCondition", string(in.ItemCondition))
	return p, nil
}

// SKUParams builds the GetLowestPricedOffersForSKU parameters.
func (in LowestPricedOffersInput) SKUParams() (params.Values, error) {
	return in.build(ActionGetLowestPricedOffersForSKU, "SellerSKU", in.SellerSKU)
}

// ASINParams builds the GetLowestPricedOffersForASIN parameters.
func (in LowestPricedOffersInput) ASINParams() (params.Values, error) {
	return in.build(ActionGetLowestPricedOffersForASIN, "ASIN", in.ASIN)
}

// GetLowestPricedOffersForSKU returns the 20 lowest priced offers for a SKU.
func (a *API) GetLowestPricedOffersForSKU(
	ctx context.Context,
	in LowestPricedOffersInput,
) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, builder(in.SKUParams))
}

// GetLowestPricedOffersForASIN returns the 20 lowest priced offers for an
// ASIN.
func (a *API) GetLowestPricedOffersForASIN(
	ctx context.Context,
	in LowestPricedOffersInput,
) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, builder(in.ASINParams))
}

// ProductCategoriesInput names one SKU or ASIN.
type ProductCategoriesInput struct {
	MarketplaceID string
	SellerSKU     string
	ASIN          string
}

// SKUParams builds the GetProductCategoriesForSKU parameters.
func (in ProductCategoriesInput) SKUParams() (params.Values, error) {
	return single(ActionGetProductCategoriesForSKU, in.MarketplaceID, "SellerSKU", in.SellerSKU)
}

// ASINParams builds the GetProductCategoriesForASIN parameters.
func (in ProductCategoriesInput) ASINParams() (params.Values, error) {
	return single(ActionGetProductCategoriesForASIN, in.MarketplaceID, "ASIN", in.ASIN)
}

func single(action, marketplaceID, key, id string) (params.Values, error) {
	p, err := marketplace(action, marketplaceID)
	if err != nil {
		return nil, err
	}
	if err := params.Required(key, id); err != nil {
		return nil, err
	}
	p.Set(key, id)
	return p, nil
}

// GetProductCategoriesForSKU returns the browse-node ancestry of a SKU.
func (a *API) GetProductCategoriesForSKU(
	ctx context.Context,
	marketplaceID, sku string,
) (*mws.Response, error) {
	in := ProductCategoriesInput{MarketplaceID: marketplaceID, SellerSKU: sku}
	return mws.Call(ctx, a.doer, Section, builder(in.SKUParams))
}

// GetProductCategoriesForASIN returns the browse-node ancestry of an ASIN.
func (a *API) GetProductCategoriesForASIN(
	ctx context.Context,
	marketplaceID, asin string,
) (*mws.Response, error) {
	in := ProductCategoriesInput{MarketplaceID: marketplaceID, ASIN: asin}
	return mws.Call(ctx, a.doer, Section, builder(in.ASINParams))
}

// FeesEstimateRequest is one product price to estimate fees for.
// Identifier is echoed back in the response to match results to requests.
type FeesEstimateRequest struct {
	MarketplaceID     string
	IDType            IDType
	IDValue           string
	IsAmazonFulfilled bool
	Identifier        string
	ListingPrice      params.Money
	Shipping          params.Money
	Points            int
}

func (r FeesEstimateRequest) validate(field string) error {
	if err := params.First(
		params.Required(field+".MarketplaceId", r.MarketplaceID),
		params.Required(field+".IdType", string(r.IDType)),
		params.Required(field+".IdValue", r.IDValue),
		params.Required(field+".Identifier", r.Identifier),
		r.ListingPrice.Validate(field+".PriceToEstimateFees.ListingPrice"),
	); err != nil {
		return err
	}
	if !r.Shipping.IsZero() {
		return r.Shipping.Validate(field + ".PriceToEstimateFees.Shipping")
	}
	return nil
}

func (r FeesEstimateRequest) values() params.Values {
	v := params.Values{
		"MarketplaceId":     r.MarketplaceID,
		"IdType":            string(r.IDType),
		"IdValue":           r.IDValue,
		"IsAmazonFulfilled": params.FormatBool(r.IsAmazonFulfilled),
		"Identifier":        r.Identifier,
	}
	v.SetMoney("PriceToEstimateFees.ListingPrice", "Amount", r.ListingPrice)
	v.SetMoney("PriceToEstimateFees.Shipping", "Amount", r.Shipping)
	v.SetInt("PriceToEstimateFees.Points.PointsNumber", r.Points)
	return v
}

// GetMyFeesEstimateInput holds up to 20 estimate requests.
type GetMyFeesEstimateInput struct {
	Requests []FeesEstimateRequest
}

// Params builds the GetMyFeesEstimate parameters.
func (in GetMyFeesEstimateInput) Params() (params.Values, error) {
	const template = "FeesEstimateRequestList.FeesEstimateRequest"
	if len(in.Requests) == 0 {
		return nil, params.Missing("FeesEstimateRequestList")
	}
	if len(in.Requests) > maxListIDs {
		return nil, params.Invalid(
			"FeesEstimateRequestList", "at most %d requests per call (got %d)", maxListIDs, len(in.Requests),
		)
	}
	items := make([]params.Values, len(in.Requests))
	for i, r := range in.Requests {
		if err := r.validate(template + "." + strconv.Itoa(i+1)); err != nil {
			return nil, err
		}
		items[i] = r.values()
	}
	return params.New(ActionGetMyFeesEstimate).Merge(params.EnumerateKeyed(template, items)), nil
}

// GetMyFeesEstimate estimates the fees for selling products at the given
// prices.
func (a *API) GetMyFeesEstimate(ctx context.Context, requests ...FeesEstimateRequest) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, GetMyFeesEstimateInput{Requests: requests})
}

// builder adapts a Params-style method value to mws.Builder.
type builder func() (params.Values, error)

func (b builder) Params() (params.Values, error) {
	return b()
}
