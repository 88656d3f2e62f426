package inbound

import (
	"context"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
	"github.com/donaldgifford/amazon-mws/pkg/params"
)

// PrepInstructionsInput lists SKUs or ASINs to look up. Duplicates are
// dropped before sending because MWS rejects repeated ids.
type PrepInstructionsInput struct {
	SellerSKUs        []string
	ASINs             []string
	ShipToCountryCode string
}

func (in PrepInstructionsInput) build(action, key string, ids []string) (params.Values, error) {
	if err := params.RequiredList(key, ids); err != nil {
		return nil, err
	}
	country := in.ShipToCountryCode
	if country == "" {
		country = DefaultCountryCode
	}
	p := params.New(action)
	p.Set("ShipToCountryCode", country)
	return p.Merge(params.Enumerate(key+".ID", params.Unique(ids))), nil
}

// SKUParams builds the GetPrepInstructionsForSKU parameters.
func (in PrepInstructionsInput) SKUParams() (params.Values, error) {
	return in.build(ActionGetPrepInstructionsForSKU, "SellerSKUList", in.SellerSKUs)
}

// ASINParams builds the GetPrepInstructionsForASIN parameters.
func (in PrepInstructionsInput) ASINParams() (params.Values, error) {
	return in.build(ActionGetPrepInstructionsForASIN, "ASINList", in.ASINs)
}

// GetPrepInstructionsForSKU returns labeling and prep requirements per SKU.
func (a *API) GetPrepInstructionsForSKU(
	ctx context.Context,
	countryCode string,
	skus ...string,
) (*mws.Response, error) {
	in := PrepInstructionsInput{SellerSKUs: skus, ShipToCountryCode: countryCode}
	return mws.Call(ctx, a.doer, Section, builder(in.SKUParams))
}

// GetPrepInstructionsForASIN returns prep requirements per ASIN.
func (a *API) GetPrepInstructionsForASIN(
	ctx context.Context,
	countryCode string,
	asins ...string,
) (*mws.Response, error) {
	in := PrepInstructionsInput{ASINs: asins, ShipToCountryCode: countryCode}
	return mws.Call(ctx, a.doer, Section, builder(in.ASINParams))
}

// InboundGuidanceInput lists SKUs or ASINs to check for inbound guidance in
// one marketplace.
type InboundGuidanceInput struct {
	SellerSKUs    []string
	ASINs         []string
	MarketplaceID string
}

func (in InboundGuidanceInput) build(action, key string, ids []string) (params.Values, error) {
	if err := params.First(
		params.Required("MarketplaceId", in.MarketplaceID),
		params.RequiredList(key, ids),
	); err != nil {
		return nil, err
	}
	p := params.New(action)
	p.Set("MarketplaceId", in.MarketplaceID)
	return p.Merge(params.Enumerate(key+".Id", params.Unique(ids))), nil
}

// SKUParams builds the GetInboundGuidanceForSKU parameters.
func (in InboundGuidanceInput) SKUParams() (params.Values, error) {
	return in.build(ActionGetInboundGuidanceForSKU, "SellerSKUList", in.SellerSKUs)
}

// ASINParams builds the GetInboundGuidanceForASIN parameters.
func (in InboundGuidanceInput) ASINParams() (params.Values, error) {
	return in.build(ActionGetInboundGuidanceForASIN, "ASINList", in.ASINs)
}

// GetInboundGuidanceForSKU says whether each SKU should be sent to Amazon.
func (a *API) GetInboundGuidanceForSKU(
	ctx context.Context,
	marketplaceID string,
	skus ...string,
) (*mws.Response, error) {
	in := InboundGuidanceInput{SellerSKUs: skus, MarketplaceID: marketplaceID}
	return mws.Call(ctx, a.doer, Section, builder(in.SKUParams))
}

// GetInboundGuidanceForASIN says whether each ASIN should be sent to Amazon.
func (a *API) GetInboundGuidanceForASIN(
	ctx context.Context,
	marketplaceID string,
	asins ...string,
) (*mws.Response, error) {
	in := InboundGuidanceInput{ASINs: asins, MarketplaceID: marketplaceID}
	return mws.Call(ctx, a.doer, Section, builder(in.ASINParams))
}

// builder adapts a Params-style method value to mws.Builder.
type builder func() (params.Values, error)

func (b builder) Params() (params.Values, error) {
	return b()
}
