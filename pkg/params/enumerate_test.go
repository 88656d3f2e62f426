package params_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/donaldgifford/amazon-mws/pkg/params"
)

func TestEnumerate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		values   []string
		want     params.Values
	}{
		{
			name:     "two values",
			template: "MarketplaceIdList.Id",
			values:   []string{"A", "B"},
			want: params.Values{
				"MarketplaceIdList.Id.1": "A",
				"MarketplaceIdList.Id.2": "B",
			},
		},
		{
			name:     "trailing dot on template",
			template: "ReportTypeList.Type.",
			values:   []string{"_GET_FLAT_FILE_ORDERS_DATA_"},
			want:     params.Values{"ReportTypeList.Type.1": "_GET_FLAT_FILE_ORDERS_DATA_"},
		},
		{
			name:     "duplicates kept in order",
			template: "AmazonOrderId.Id",
			values:   []string{"x", "y", "x"},
			want: params.Values{
				"AmazonOrderId.Id.1": "x",
				"AmazonOrderId.Id.2": "y",
				"AmazonOrderId.Id.3": "x",
			},
		},
		{
			name:     "empty input",
			template: "MarketplaceIdList.Id",
			values:   []string{},
			want:     params.Values{},
		},
		{
			name:     "nil input",
			template: "MarketplaceIdList.Id",
			want:     params.Values{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, params.Enumerate(tt.template, tt.values))
		})
	}
}

func TestEnumerate_CountAndOrder(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 25; n++ {
		values := make([]string, n)
		for i := range values {
			values[i] = fmt.Sprintf("v%02d", i)
		}

		got := params.Enumerate("SellerSkus.member", values)

		assert.Len(t, got, n)
		for i, v := range values {
			assert.Equal(t, v, got[fmt.Sprintf("SellerSkus.member.%d", i+1)])
		}
	}
}

func TestEnumerate_TypedStrings(t *testing.T) {
	t.Parallel()

	type status string
	got := params.Enumerate("OrderStatus.Status", []status{"Shipped", "Pending"})

	assert.Equal(t, params.Values{
		"OrderStatus.Status.1": "Shipped",
		"OrderStatus.Status.2": "Pending",
	}, got)
}

func TestEnumerateParams(t *testing.T) {
	t.Parallel()

	got := params.EnumerateParams(map[string][]string{
		"ReportRequestIdList.Id":             {"r1", "r2"},
		"ReportProcessingStatusList.Status.": {"_DONE_"},
		"ReportTypeList.Type":                nil,
	})

	assert.Equal(t, params.Values{
		"ReportRequestIdList.Id.1":            "r1",
		"ReportRequestIdList.Id.2":            "r2",
		"ReportProcessingStatusList.Status.1": "_DONE_",
	}, got)
}

func TestEnumerateKeyed(t *testing.T) {
	t.Parallel()

	got := params.EnumerateKeyed("InboundShipmentPlanRequestItems.member", []params.Values{
		{"SellerSKU": "Football2415", "Quantity": "3"},
		{"SellerSKU": "TeeballBall3251", "Quantity": "5", "ASIN": ""},
	})

	assert.Equal(t, params.Values{
		"InboundShipmentPlanRequestItems.member.1.SellerSKU": "Football2415",
		"InboundShipmentPlanRequestItems.member.1.Quantity":  "3",
		"InboundShipmentPlanRequestItems.member.2.SellerSKU": "TeeballBall3251",
		"InboundShipmentPlanRequestItems.member.2.Quantity":  "5",
	}, got)
}

func TestEnumerateKeyed_EmptyItemKeepsIndex(t *testing.T) {
	t.Parallel()

	got := params.EnumerateKeyed("Items.member", []params.Values{{}, {"SellerSKU": "b"}})

	assert.Equal(t, params.Values{"Items.member.2.SellerSKU": "b"}, got)
}

func TestDictKeyed(t *testing.T) {
	t.Parallel()

	got := params.DictKeyed("ShipmentRequestDetails.PackageDimensions", params.Values{
		"Length": "5",
		"Width":  "5",
		"Height": "5",
		"Unit":   "inches",
	})

	assert.Equal(t, params.Values{
		"ShipmentRequestDetails.PackageDimensions.Length": "5",
		"ShipmentRequestDetails.PackageDimensions.Width":  "5",
		"ShipmentRequestDetails.PackageDimensions.Height": "5",
		"ShipmentRequestDetails.PackageDimensions.Unit":   "inches",
	}, got)
}

func TestUnique(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"b", "a", "c"}, params.Unique([]string{"b", "a", "b", "c", "a"}))
	assert.Empty(t, params.Unique([]string(nil)))
}
