package mws

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

const (
	endpointNA = "https://mws.amazonservices.com"
	endpointEU = "https://mws-eu.amazonservices.com"
)

// Region describes one MWS marketplace: the endpoint that serves it, its
// marketplace id and its default currency.
type Region struct {
	Code          string
	Endpoint      string
	MarketplaceID string
	Currency      string
}

var regions = map[string]Region{
	"AE": {Code: "AE", Endpoint: "https://mws.amazonservices.ae", MarketplaceID: "A2VIGQ35RCS4UG", Currency: "AED"},
	"AU": {Code: "AU", Endpoint: "https://mws.amazonservices.com.au", MarketplaceID: "A39IBJ37TRP1C6", Currency: "AUD"},
	"BR": {Code: "BR", Endpoint: endpointNA, MarketplaceID: "A2Q3Y263D00KWC", Currency: "BRL"},
	"CA": {Code: "CA", Endpoint: "https://mws.amazonservices.ca", MarketplaceID: "A2EUQ1WTGCTBG2", Currency: "CAD"},
	"CN": {Code: "CN", Endpoint: "https://mws.amazonservices.com.cn", MarketplaceID: "AAHKV2X7AFYLW", Currency: "CNY"},
	"DE": {Code: "DE", Endpoint: endpointEU, MarketplaceID: "A1PA6795UKMFR9", Currency: "EUR"},
	"ES": {Code: "ES", Endpoint: endpointEU, MarketplaceID: "A1RKKUPIHCS9HS", Currency: "EUR"},
	"FR": {Code: "FR", Endpoint: endpointEU, MarketplaceID: "A13V1IB3VIYZZH", Currency: "EUR"},
	"IN": {Code: "IN", Endpoint: "https://mws.amazonservices.in", MarketplaceID: "A21TJRUUN4KGV", Currency: "INR"},
	"IT": {Code: "IT", Endpoint: endpointEU, MarketplaceID: "APJ6JRA9NG5V4", Currency: "EUR"},
	"JP": {Code: "JP", Endpoint: "https://mws.amazonservices.jp", MarketplaceID: "A1VC38T7YXB528", Currency: "JPY"},
	"MX": {Code: "MX", Endpoint: "https://mws.amazonservices.com.mx", MarketplaceID: "A1AM78C64UM0Y8", Currency: "MXN"},
	"TR": {Code: "TR", Endpoint: endpointEU, MarketplaceID: "A33AVAJ2PDY3EV", Currency: "TRY"},
	"UK": {Code: "UK", Endpoint: endpointEU, MarketplaceID: "A1F83G8C2ARO7P", Currency: "GBP"},
	"US": {Code: "US", Endpoint: endpointNA, MarketplaceID: "ATVPDKIKX0DER", Currency: "USD"},
}

// LookupRegion returns the region for a two-letter code (case-insensitive).
func LookupRegion(code string) (Region, error) {
	r, ok := regions[strings.ToUpper(code)]
	if !ok {
		return Region{}, fmt.Errorf(
			"unknown region %q: must be one of %s",
			code,
			strings.Join(RegionCodes(), ", "),
		)
	}
	return r, nil
}

// RegionCodes returns every supported region code in sorted order.
func RegionCodes() []string {
	return slices.Sorted(maps.Keys(regions))
}

// Regions returns every supported region sorted by code.
func Regions() []Region {
	out := make([]Region, 0, len(regions))
	for _, code := range RegionCodes() {
		out = append(out, regions[code])
	}
	return out
}
