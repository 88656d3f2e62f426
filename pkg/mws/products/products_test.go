package products_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
	"github.com/donaldgifford/amazon-mws/pkg/mws/mwstest"
	"github.com/donaldgifford/amazon-mws/pkg/mws/products"
	"github.com/donaldgifford/amazon-mws/pkg/params"
)

const marketplaceUS = "ATVPDKIKX0DER"

func ids(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "B0" + strconv.Itoa(i)
	}
	return out
}

func TestCatalogLookups(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      mws.Builder
		want    params.Values
		wantErr string
	}{
		{
			name: "ListMatchingProducts",
			in:   products.ListMatchingProductsInput{MarketplaceID: marketplaceUS, Query: "usb cable"},
			want: params.Values{
				"Action":        "ListMatchingProducts",
				"MarketplaceId": marketplaceUS,
				"Query":         "usb cable",
			},
		},
		{
			name:    "ListMatchingProducts without query",
			in:      products.ListMatchingProductsInput{MarketplaceID: marketplaceUS},
			wantErr: "invalid parameter Query: is required",
		},
		{
			name: "GetMatchingProduct",
			in:   products.GetMatchingProductInput{MarketplaceID: marketplaceUS, ASINs: []string{"B001", "B002"}},
			want: params.Values{
				"Action":          "GetMatchingProduct",
				"MarketplaceId":   marketplaceUS,
				"ASINList.ASIN.1": "B001",
				"ASINList.ASIN.2": "B002",
			},
		},
		{
			name:    "GetMatchingProduct over limit",
			in:      products.GetMatchingProductInput{MarketplaceID: marketplaceUS, ASINs: ids(11)},
			wantErr: "invalid parameter ASINList: at most 10 ids per request (got 11)",
		},
		{
			name:    "GetMatchingProduct without marketplace",
			in:      products.GetMatchingProductInput{ASINs: []string{"B001"}},
			wantErr: "invalid parameter MarketplaceId: is required",
		},
		{
			name: "GetMatchingProductForId",
			in: products.GetMatchingProductForIDInput{
				MarketplaceID: marketplaceUS,
				IDType:        products.IDTypeUPC,
				IDs:           []string{"885909950805"},
			},
			want: params.Values{
				"Action":        "GetMatchingProductForId",
				"MarketplaceId": marketplaceUS,
				"IdType":        "UPC",
				"IdList.Id.1":   "885909950805",
			},
		},
		{
			name: "GetMatchingProductForId over limit",
			in: products.GetMatchingProductForIDInput{
				MarketplaceID: marketplaceUS,
				IDType:        products.IDTypeEAN,
				IDs:           ids(6),
			},
			wantErr: "invalid parameter IdList: at most 5 ids per request (got 6)",
		},
		{
			name: "GetLowestOfferListingsForASIN",
			in: products.ListInput{
				Action:        products.ActionGetLowestOfferListingsForASIN,
				MarketplaceID: marketplaceUS,
				ASINs:         []string{"B001"},
				ItemCondition: products.ConditionUsed,
				ExcludeMe:     params.Bool(true),
			},
			want: params.Values{
				"Action":          "GetLowestOfferListingsForASIN",
				"MarketplaceId":   marketplaceUS,
				"ASINList.ASIN.1": "B001",
				"ItemCondition":   "Used",
				"ExcludeMe":       "true",
			},
		},
		{
			name: "GetMyPriceForSKU",
			in: products.ListInput{
				Action:        products.ActionGetMyPriceForSKU,
				MarketplaceID: marketplaceUS,
				SellerSKUs:    []string{"SKU-1", "SKU-2"},
			},
			want: params.Values{
				"Action":                    "GetMyPriceForSKU",
				"MarketplaceId":             marketplaceUS,
				"SellerSKUList.SellerSKU.1": "SKU-1",
				"SellerSKUList.SellerSKU.2": "SKU-2",
			},
		},
		{
			name: "SKU action ignores ASINs",
			in: products.ListInput{
				Action:        products.ActionGetCompetitivePricingForSKU,
				MarketplaceID: marketplaceUS,
				ASINs:         []string{"B001"},
			},
			wantErr: "invalid parameter SellerSKUList: at least one value is required",
		},
		{
			name: "pricing over limit",
			in: products.ListInput{
				Action:        products.ActionGetCompetitivePricingForASIN,
				MarketplaceID: marketplaceUS,
				ASINs:         ids(21),
			},
			wantErr: "invalid parameter ASINList: at most 20 ids per request (got 21)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.in.Params()
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPricingMethods(t *testing.T) {
	t.Parallel()

	rec := &mwstest.Recorder{}
	api := products.New(rec)
	ctx := context.Background()

	_, err := api.GetCompetitivePricingForSKU(ctx, marketplaceUS, "SKU-1")
	require.NoError(t, err)
	assert.Equal(t, params.Values{
		"Action":                    "GetCompetitivePricingForSKU",
		"MarketplaceId":             marketplaceUS,
		"SellerSKUList.SellerSKU.1": "SKU-1",
	}, rec.Last().Params)

	_, err = api.GetCompetitivePricingForASIN(ctx, marketplaceUS, "B001")
	require.NoError(t, err)
	assert.Equal(t, "B001", rec.Last().Params["ASINList.ASIN.1"])

	in := products.ListInput{MarketplaceID: marketplaceUS, SellerSKUs: []string{"SKU-1"}, ASINs: []string{"B001"}}
	for _, tc := range []struct {
		call   func(context.Context, products.ListInput) (*mws.Response, error)
		action string
		key    string
	}{
		{call: api.GetLowestOfferListingsForSKU, action: "GetLowestOfferListingsForSKU", key: "SellerSKUList.SellerSKU.1"},
		{call: api.GetLowestOfferListingsForASIN, action: "GetLowestOfferListingsForASIN", key: "ASINList.ASIN.1"},
		{call: api.GetMyPriceForSKU, action: "GetMyPriceForSKU", key: "SellerSKUList.SellerSKU.1"},
		{call: api.GetMyPriceForASIN, action: "GetMyPriceForASIN", key: "ASINList.ASIN.1"},
	} {
		_, err := tc.call(ctx, in)
		require.NoError(t, err, tc.action)
		got := rec.Last().Params
		assert.Equal(t, tc.action, got.Action())
		assert.Contains(t, got, tc.key)
		assert.Len(t, got, 3, tc.action)
	}
	assert.Empty(t, in.Action)
}

func TestLowestPricedOffers(t *testing.T) {
	t.Parallel()

	rec := &mwstest.Recorder{}
	api := products.New(rec)
	ctx := context.Background()

	_, err := api.GetLowestPricedOffersForSKU(ctx, products.LowestPricedOffersInput{
		MarketplaceID: marketplaceUS,
		SellerSKU:     "SKU-1",
		ItemCondition: products.ConditionNew,
	})
	require.NoError(t, err)
	assert.Equal(t, params.Values{
		"Action":        "GetLowestPricedOffersForSKU",
		"MarketplaceId": marketplaceUS,
		"SellerSKU":     "SKU-1",
		"ItemCondition": "New",
	}, rec.Last().Params)

	_, err = api.GetLowestPricedOffersForASIN(ctx, products.LowestPricedOffersInput{
		MarketplaceID: marketplaceUS,
		ASIN:          "B001",
	})
	require.EqualError(t, err, "invalid parameter ItemCondition: is required")
	assert.Len(t, rec.Calls, 1)
}

func TestProductCategories(t *testing.T) {
	t.Parallel()

	rec := &mwstest.Recorder{}
	api := products.New(rec)
	ctx := context.Background()

	_, err := api.GetProductCategoriesForASIN(ctx, marketplaceUS, "B001")
	require.NoError(t, err)
	assert.Equal(t, params.Values{
		"Action":        "GetProductCategoriesForASIN",
		"MarketplaceId": marketplaceUS,
		"ASIN":          "B001",
	}, rec.Last().Params)

	_, err = api.GetProductCategoriesForSKU(ctx, marketplaceUS, "")
	require.EqualError(t, err, "invalid parameter SellerSKU: is required")
	assert.Len(t, rec.Calls, 1)
}

func TestGetMyFeesEstimate(t *testing.T) {
	t.Parallel()

	rec := &mwstest.Recorder{}
	api := products.New(rec)

	_, err := api.GetMyFeesEstimate(context.Background(),
		products.FeesEstimateRequest{
			MarketplaceID:     marketplaceUS,
			IDType:            products.IDTypeASIN,
			IDValue:           "B001",
			IsAmazonFulfilled: true,
			Identifier:        "req-1",
			ListingPrice:      params.NewMoney("29.99", "USD"),
			Shipping:          params.NewMoney("4.50", "USD"),
		},
		products.FeesEstimateRequest{
			MarketplaceID: "A1VC38T7YXB528",
			IDType:        products.IDTypeSellerSKU,
			IDValue:       "SKU-1",
			Identifier:    "req-2",
			ListingPrice:  params.NewMoney("3000", "JPY"),
			Points:        30,
		},
	)
	require.NoError(t, err)

	want := params.New("GetMyFeesEstimate").Merge(
		params.DictKeyed("FeesEstimateRequestList.FeesEstimateRequest.1", params.Values{
			"MarketplaceId":     marketplaceUS,
			"IdType":            "ASIN",
			"IdValue":           "B001",
			"IsAmazonFulfilled": "true",
			"Identifier":        "req-1",
			"PriceToEstimateFees.ListingPrice.Amount":       "29.99",
			"PriceToEstimateFees.ListingPrice.CurrencyCode": "USD",
			"PriceToEstimateFees.Shipping.Amount":           "4.5",
			"PriceToEstimateFees.Shipping.CurrencyCode":     "USD",
		}),
		params.DictKeyed("FeesEstimateRequestList.FeesEstimateRequest.2", params.Values{
			"MarketplaceId":     "A1VC38T7YXB528",
			"IdType":            "SellerSKU",
			"IdValue":           "SKU-1",
			"IsAmazonFulfilled": "false",
			"Identifier":        "req-2",
			"PriceToEstimateFees.ListingPrice.Amount":       "3000",
			"PriceToEstimateFees.ListingPrice.CurrencyCode": "JPY",
			"PriceToEstimateFees.Points.PointsNumber":       "30",
		}),
	)
	assert.Equal(t, want, rec.Last().Params)
}

func TestGetMyFeesEstimate_Validation(t *testing.T) {
	t.Parallel()

	valid := products.FeesEstimateRequest{
		MarketplaceID: marketplaceUS,
		IDType:        products.IDTypeASIN,
		IDValue:       "B001",
		Identifier:    "req-1",
		ListingPrice:  params.NewMoney("10", "USD"),
	}

	noPrice := valid
	noPrice.ListingPrice = params.Money{}

	badShipping := valid
	badShipping.Shipping = params.NewMoney("-1", "USD")

	tests := []struct {
		name     string
		requests []products.FeesEstimateRequest
		wantErr  string
	}{
		{
			name:    "empty",
			wantErr: "invalid parameter FeesEstimateRequestList: is required",
		},
		{
			name:     "too many",
			requests: make([]products.FeesEstimateRequest, 21),
			wantErr:  "invalid parameter FeesEstimateRequestList: at most 20 requests per call (got 21)",
		},
		{
			name:     "missing listing price",
			requests: []products.FeesEstimateRequest{valid, noPrice},
			wantErr:  "invalid parameter FeesEstimateRequestList.FeesEstimateRequest.2." +
				"PriceToEstimateFees.ListingPrice.CurrencyCode: is required",
		},
		{
			name:     "negative shipping",
			requests: []products.FeesEstimateRequest{badShipping},
			wantErr:  "invalid parameter FeesEstimateRequestList.FeesEstimateRequest.1." +
				"PriceToEstimateFees.Shipping.Amount: must not be negative (got -1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := products.GetMyFeesEstimateInput{Requests: tt.requests}.Params()
			require.EqualError(t, err, tt.wantErr)
		})
	}
}
