package payments_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
	"github.com/donaldgifford/amazon-mws/pkg/mws/mwstest"
	"github.com/donaldgifford/amazon-mws/pkg/mws/payments"
	"github.com/donaldgifford/amazon-mws/pkg/params"
)

func TestSetOrderReferenceDetails(t *testing.T) {
	t.Parallel()

	got, err := payments.SetOrderReferenceDetailsInput{
		OrderReferenceID: "S01-5806490-2147504",
		OrderTotal:       params.NewMoney("106.00", "USD"),
		SellerNote:       "Thanks",
		SellerOrderID:    "5678-23",
		StoreName:        "Example Store",
	}.Params()
	require.NoError(t, err)
	assert.Equal(t, params.Values{
		"Action":                 "SetOrderReferenceDetails",
		"AmazonOrderReferenceId": "S01-5806490-2147504",
		"OrderReferenceAttributes.OrderTotal.Amount":                   "106",
		"OrderReferenceAttributes.OrderTotal.CurrencyCode":             "USD",
		"OrderReferenceAttributes.SellerNote":                          "Thanks",
		"OrderReferenceAttributes.SellerOrderAttributes.SellerOrderId": "5678-23",
		"OrderReferenceAttributes.SellerOrderAttributes.StoreName":     "Example Store",
	}, got)
}

func TestAuthorize(t *testing.T) {
	t.Parallel()

	base := payments.AuthorizeInput{
		OrderReferenceID:         "S01-5806490-2147504",
		AuthorizationReferenceID: "auth-1",
		Amount:                   params.NewMoney("94.50", "USD"),
	}

	tests := []struct {
		name    string
		modify  func(*payments.AuthorizeInput)
		want    params.Values
		wantErr string
	}{
		{
			name:   "defaults",
			modify: func(*payments.AuthorizeInput) {},
			want: params.Values{
				"Action":                           "Authorize",
				"AmazonOrderReferenceId":           "S01-5806490-2147504",
				"AuthorizationReferenceId":         "auth-1",
				"AuthorizationAmount.Amount":       "94.5",
				"AuthorizationAmount.CurrencyCode": "USD",
			},
		},
		{
			name: "synchronous capture",
			modify: func(in *payments.AuthorizeInput) {
				in.SynchronousOnly = true
				in.CaptureNow = params.Bool(true)
				in.SoftDescriptor = "AMZ*Store"
			},
			want: params.Values{
				"Action":                           "Authorize",
				"AmazonOrderReferenceId":           "S01-5806490-2147504",
				"AuthorizationReferenceId":         "auth-1",
				"AuthorizationAmount.Amount":       "94.5",
				"AuthorizationAmount.CurrencyCode": "USD",
				"TransactionTimeout":               "0",
				"CaptureNow":                       "true",
				"SoftDescriptor":                   "AMZ*Store",
			},
		},
		{
			name:   "timeout",
			modify: func(in *payments.AuthorizeInput) { in.TransactionTimeout = 60 },
			want: params.Values{
				"Action":                           "Authorize",
				"AmazonOrderReferenceId":           "S01-5806490-2147504",
				"AuthorizationReferenceId":         "auth-1",
				"AuthorizationAmount.Amount":       "94.5",
				"AuthorizationAmount.CurrencyCode": "USD",
				"TransactionTimeout":               "60",
			},
		},
		{
			name:    "timeout not a multiple of five",
			modify:  func(in *payments.AuthorizeInput) { in.TransactionTimeout = 7 },
			wantErr: "invalid parameter TransactionTimeout: must be a multiple of 5 between 0 and 1440 (got 7)",
		},
		{
			name:    "reference id too long",
			modify:  func(in *payments.AuthorizeInput) { in.AuthorizationReferenceID = strings.Repeat("x", 33) },
			wantErr: "invalid parameter AuthorizationReferenceId: must be at most 32 characters (got 33)",
		},
		{
			name:    "missing currency",
			modify:  func(in *payments.AuthorizeInput) { in.Amount.CurrencyCode = "" },
			wantErr: "invalid parameter AuthorizationAmount.CurrencyCode: is required",
		},
		{
			name:    "soft descriptor too long",
			modify:  func(in *payments.AuthorizeInput) { in.SoftDescriptor = strings.Repeat("d", 17) },
			wantErr: "invalid parameter SoftDescriptor: must be at most 16 characters (got 17)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := base
			tt.modify(&in)
			got, err := in.Params()
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCaptureAndRefund(t *testing.T) {
	t.Parallel()

	rec := &mwstest.Recorder{}
	api := payments.New(rec)
	ctx := context.Background()

	_, err := api.Capture(ctx, payments.CaptureInput{
		AuthorizationID:    "S01-5806490-2147504-A069684",
		CaptureReferenceID: "cap-1",
		Amount:             params.NewMoney("94.50", "USD"),
	})
	require.NoError(t, err)
	assert.Equal(t, params.Values{
		"Action":                     "Capture",
		"AmazonAuthorizationId":      "S01-5806490-2147504-A069684",
		"CaptureReferenceId":         "cap-1",
		"CaptureAmount.Amount":       "94.5",
		"CaptureAmount.CurrencyCode": "USD",
	}, rec.Last().Params)

	_, err = api.Refund(ctx, payments.RefundInput{
		CaptureID:         "S01-5806490-2147504-C069684",
		RefundReferenceID: "ref-1",
		Amount:            params.NewMoney("10", "USD"),
		SellerRefundNote:  "damaged",
	})
	require.NoError(t, err)
	assert.Equal(t, params.Values{
		"Action":                    "Refund",
		"AmazonCaptureId":           "S01-5806490-2147504-C069684",
		"RefundReferenceId":         "ref-1",
		"RefundAmount.Amount":       "10",
		"RefundAmount.CurrencyCode": "USD",
		"SellerRefundNote":          "damaged",
	}, rec.Last().Params)

	_, err = api.Refund(ctx, payments.RefundInput{CaptureID: "C1", RefundReferenceID: "ref-2"})
	require.EqualError(t, err, "invalid parameter RefundAmount.CurrencyCode: is required")
	assert.Len(t, rec.Calls, 2)
}

func TestIDOperations(t *testing.T) {
	t.Parallel()

	type operation func(*payments.API, context.Context) (*mws.Response, error)

	tests := []struct {
		name string
		call operation
		want params.Values
	}{
		{
			name: "GetOrderReferenceDetails",
			call: func(a *payments.API, ctx context.Context) (*mws.Response, error) {
				return a.GetOrderReferenceDetails(ctx, payments.GetOrderReferenceDetailsInput{
					OrderReferenceID: "R1",
					AccessToken:      "Atza|token",
				})
			},
			want: params.Values{
				"Action":                 "GetOrderReferenceDetails",
				"AmazonOrderReferenceId": "R1",
				"AddressConsentToken":    "Atza|token",
			},
		},
		{
			name: "ConfirmOrderReference",
			call: func(a *payments.API, ctx context.Context) (*mws.Response, error) {
				return a.ConfirmOrderReference(ctx, "R1")
			},
			want: params.Values{"Action": "ConfirmOrderReference", "AmazonOrderReferenceId": "R1"},
		},
		{
			name: "CancelOrderReference",
			call: func(a *payments.API, ctx context.Context) (*mws.Response, error) {
				return a.CancelOrderReference(ctx, "R1", "out of stock")
			},
			want: params.Values{
				"Action":                 "CancelOrderReference",
				"AmazonOrderReferenceId": "R1",
				"CancelationReason":      "out of stock",
			},
		},
		{
			name: "CloseOrderReference without reason",
			call: func(a *payments.API, ctx context.Context) (*mws.Response, error) {
				return a.CloseOrderReference(ctx, "R1", "")
			},
			want: params.Values{"Action": "CloseOrderReference", "AmazonOrderReferenceId": "R1"},
		},
		{
			name: "GetAuthorizationDetails",
			call: func(a *payments.API, ctx context.Context) (*mws.Response, error) {
				return a.GetAuthorizationDetails(ctx, "A1")
			},
			want: params.Values{"Action": "GetAuthorizationDetails", "AmazonAuthorizationId": "A1"},
		},
		{
			name: "CloseAuthorization",
			call: func(a *payments.API, ctx context.Context) (*mws.Response, error) {
				return a.CloseAuthorization(ctx, "A1", "done")
			},
			want: params.Values{
				"Action":                "CloseAuthorization",
				"AmazonAuthorizationId": "A1",
				"ClosureReason":         "done",
			},
		},
		{
			name: "GetCaptureDetails",
			call: func(a *payments.API, ctx context.Context) (*mws.Response, error) {
				return a.GetCaptureDetails(ctx, "C1")
			},
			want: params.Values{"Action": "GetCaptureDetails", "AmazonCaptureId": "C1"},
		},
		{
			name: "GetRefundDetails",
			call: func(a *payments.API, ctx context.Context) (*mws.Response, error) {
				return a.GetRefundDetails(ctx, "F1")
			},
			want: params.Values{"Action": "GetRefundDetails", "AmazonRefundId": "F1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &mwstest.Recorder{}
			_, err := tt.call(payments.New(rec), context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.Last().Params)
			assert.Equal(t, "/OffAmazonPayments/2013-01-01", rec.Last().Section.Path)
		})
	}
}

func TestIDOperations_Validation(t *testing.T) {
	t.Parallel()

	rec := &mwstest.Recorder{}
	api := payments.New(rec)
	ctx := context.Background()

	_, err := api.GetCaptureDetails(ctx, "")
	var vErr *params.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "AmazonCaptureId", vErr.Field)

	_, err = api.CloseAuthorization(ctx, "A1", strings.Repeat("r", 256))
	require.EqualError(t, err, "invalid parameter ClosureReason: must be at most 255 characters (got 256)")
	assert.Empty(t, rec.Calls)
}
