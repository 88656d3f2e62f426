package params

import (
	"strconv"
	"strings"
)

// Enumerate expands values into 1-based indexed keys under template:
//
//	Enumerate("MarketplaceIdList.Id", []string{"A", "B"})
//	// {"MarketplaceIdList.Id.1": "A", "MarketplaceIdList.Id.2": "B"}
//
// A trailing dot on template is optional. Empty input yields no entries.
// Order is preserved and duplicates are kept. Empty elements keep their
// index; Values.Validate rejects them before a request is sent.
func Enumerate[T ~string](template string, values []T) Values {
	out := make(Values, len(values))
	prefix := withDot(template)
	for i, val := range values {
		out[prefix+strconv.Itoa(i+1)] = string(val)
	}
	return out
}

// EnumerateParams runs Enumerate for every template in lists and merges the
// results into one dictionary.
func EnumerateParams(lists map[string][]string) Values {
	out := Values{}
	for template, values := range lists {
		out.Merge(Enumerate(template, values))
	}
	return out
}

// EnumerateKeyed expands a list of per-item dictionaries under template,
// keying each field by item index:
//
//	EnumerateKeyed("InboundShipmentItems.member", []Values{
//		{"SellerSKU": "sku-1", "QuantityShipped": "3"},
//	})
//	// {"InboundShipmentItems.member.1.SellerSKU": "sku-1",
//	//  "InboundShipmentItems.member.1.QuantityShipped": "3"}
//
// An empty item still consumes its index.
func EnumerateKeyed(template string, items []Values) Values {
	out := Values{}
	prefix := withDot(template)
	for i, item := range items {
		idx := prefix + strconv.Itoa(i+1) + "."
		for k, val := range item {
			if val == "" {
				continue
			}
			out[idx+k] = val
		}
	}
	return out
}

// DictKeyed prefixes every key of fields with prefix, without enumeration:
//
//	DictKeyed("ShipmentRequestDetails.Weight", Values{"Value": "10", "Unit": "ounces"})
//	// {"ShipmentRequestDetails.Weight.Value": "10",
//	//  "ShipmentRequestDetails.Weight.Unit": "ounces"}
func DictKeyed(prefix string, fields Values) Values {
	out := make(Values, len(fields))
	p := withDot(prefix)
	for k, val := range fields {
		if val == "" {
			continue
		}
		out[p+k] = val
	}
	return out
}

// Unique drops repeated values, keeping the first occurrence of each.
func Unique[T comparable](values []T) []T {
	seen := make(map[T]struct{}, len(values))
	out := make([]T, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func withDot(template string) string {
	if strings.HasSuffix(template, ".") {
		return template
	}
	return template + "."
}
