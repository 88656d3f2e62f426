// Package params builds the flat, string-keyed request parameter
// dictionaries that Amazon MWS operations expect.
//
// Every helper here is a pure function: list values are enumerated into
// 1-based indexed keys (MarketplaceIdList.Id.1, MarketplaceIdList.Id.2, ...),
// times are rendered as ISO-8601, booleans as "true"/"false", and paginated
// operations switch to their ByNextToken continuation when a token is set.
package params
