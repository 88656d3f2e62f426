package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
	"github.com/donaldgifford/amazon-mws/pkg/mws/feeds"
	"github.com/donaldgifford/amazon-mws/pkg/mws/mwstest"
	"github.com/donaldgifford/amazon-mws/pkg/params"
)

func TestSections_Registry(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{
		"feeds",
		"finances",
		"inbound",
		"inventory",
		"merchantfulfillment",
		"orders",
		"outbound",
		"payments",
		"products",
		"recommendations",
		"reports",
		"sellers",
	}, sectionNames())

	for _, name := range sectionNames() {
		g := sections[name]
		assert.NotEmpty(t, g.section.Path, name)
		assert.NotEmpty(t, g.section.Version, name)
		assert.NotEmpty(t, g.operations, name)
		for action, op := range g.operations {
			assert.NotNil(t, op.run, "%s %s", name, action)
		}
	}
}

func TestSections_Paginated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		section   string
		action    string
		paginated bool
	}{
		{"reports", "GetReportList", true},
		{"reports", "GetReportScheduleList", true},
		{"reports", "RequestReport", false},
		{"orders", "ListOrderItems", true},
		{"orders", "GetOrder", false},
		{"feeds", "SubmitFeed", false},
		{"sellers", "ListMarketplaceParticipations", true},
		{"payments", "Authorize", false},
	}

	for _, tt := range tests {
		t.Run(tt.section+"/"+tt.action, func(t *testing.T) {
			t.Parallel()

			_, op, err := lookup(tt.section, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.paginated, op.paginated())
		})
	}
}

func TestLookup_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		section string
		action  string
		wantErr string
	}{
		{
			name:    "unknown section",
			section: "subscriptions",
			action:  "ListSubscriptions",
			wantErr: `unknown section "subscriptions"`,
		},
		{
			name:    "unknown operation",
			section: "reports",
			action:  "GetReports",
			wantErr: `unknown reports operation "GetReports"`,
		},
		{
			name:    "action names are case sensitive",
			section: "orders",
			action:  "listorders",
			wantErr: `unknown orders operation "listorders"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := lookup(tt.section, tt.action)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLookup_SectionNameIgnoresCase(t *testing.T) {
	t.Parallel()

	g, _, err := lookup("Reports", "RequestReport")
	require.NoError(t, err)
	assert.Equal(t, "Reports", g.section.Name)
}

func TestDryRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		section     string
		action      string
		flags       inputFlags
		wantSection string
		want        params.Values
		wantErr     string
	}{
		{
			name:        "request report",
			section:     "reports",
			action:      "RequestReport",
			flags:       inputFlags{input: `{"ReportType":"_GET_MERCHANT_LISTINGS_DATA_","StartDate":"2024-01-02T03:04:05Z","MarketplaceIDs":["ATVPDKIKX0DER","A2EUQ1WTGCTBG2"]}`},
			wantSection: "Reports",
			want: params.Values{
				"Action":                 "RequestReport",
				"ReportType":             "_GET_MERCHANT_LISTINGS_DATA_",
				"StartDate":              "2024-01-02T03:04:05Z",
				"MarketplaceIdList.Id.1": "ATVPDKIKX0DER",
				"MarketplaceIdList.Id.2": "A2EUQ1WTGCTBG2",
			},
		},
		{
			name:        "by next token",
			section:     "reports",
			action:      "GetReportList",
			flags:       inputFlags{nextToken: "abc123"},
			wantSection: "Reports",
			want: params.Values{
				"Action":    "GetReportListByNextToken",
				"NextToken": "abc123",
			},
		},
		{
			name:        "shipment operation sets the action",
			section:     "inbound",
			action:      "GetTransportContent",
			flags:       inputFlags{input: `{"ShipmentID":"FBA1234"}`},
			wantSection: "InboundShipments",
			want: params.Values{
				"Action":     "GetTransportContent",
				"ShipmentId": "FBA1234",
			},
		},
		{
			name:        "payments id operation",
			section:     "payments",
			action:      "ConfirmOrderReference",
			flags:       inputFlags{input: `{"ID":"S01-1234567-1234567"}`},
			wantSection: "OffAmazonPayments",
			want: params.Values{
				"Action":                 "ConfirmOrderReference",
				"AmazonOrderReferenceId": "S01-1234567-1234567",
			},
		},
		{
			name:    "missing required field",
			section: "reports",
			action:  "RequestReport",
			flags:   inputFlags{input: `{}`},
			wantErr: "invalid parameter ReportType: is required",
		},
		{
			name:    "next token on a single page operation",
			section: "reports",
			action:  "RequestReport",
			flags:   inputFlags{nextToken: "abc123"},
			wantErr: "RequestReport has no ByNextToken continuation",
		},
		{
			name:    "malformed input",
			section: "orders",
			action:  "GetOrder",
			flags:   inputFlags{input: `{"AmazonOrderIDs":`},
			wantErr: "decoding input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			inv, err := newInvocation(tt.section, tt.action, &tt.flags, strings.NewReader(""))
			if err == nil {
				var capture *captureDoer
				capture, err = dryRun(context.Background(), inv)
				if err == nil {
					require.Empty(t, tt.wantErr)
					assert.Equal(t, tt.wantSection, capture.section.Name)
					assert.Equal(t, tt.want, capture.params)
					return
				}
			}
			require.NotEmpty(t, tt.wantErr, "unexpected error: %v", err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDryRun_SubmitFeedBody(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	feed := filepath.Join(dir, "feed.xml")
	require.NoError(t, os.WriteFile(feed, []byte("<AmazonEnvelope/>"), 0o600))

	flags := inputFlags{
		input:    `{"FeedType":"_POST_PRODUCT_DATA_","MarketplaceIDs":["ATVPDKIKX0DER"]}`,
		bodyFile: feed,
	}
	inv, err := newInvocation("feeds", "SubmitFeed", &flags, strings.NewReader(""))
	require.NoError(t, err)

	capture, err := dryRun(context.Background(), inv)
	require.NoError(t, err)
	assert.Equal(t, []byte("<AmazonEnvelope/>"), capture.body)
	assert.Equal(t, feeds.DefaultContentType, capture.contentType)
	assert.Equal(t, "_POST_PRODUCT_DATA_", capture.params["FeedType"])
	assert.Equal(t, "ATVPDKIKX0DER", capture.params["MarketplaceIdList.Id.1"])
}

func TestInputFlags_Stdin(t *testing.T) {
	t.Parallel()

	flags := inputFlags{inputFile: "-"}
	req, err := flags.request(strings.NewReader(`{"ReportID":"42"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"ReportID":"42"}`, string(req.input))
	assert.Nil(t, req.body)
}

func TestInvocation_All(t *testing.T) {
	t.Parallel()

	rec := &mwstest.Recorder{
		Responses: []*mws.Response{
			mwstest.XMLResponse("ListMarketplaceParticipations", `<ListMarketplaceParticipationsResponse>
  <ListMarketplaceParticipationsResult><NextToken>page2</NextToken></ListMarketplaceParticipationsResult>
</ListMarketplaceParticipationsResponse>`),
			mwstest.XMLResponse("ListMarketplaceParticipationsByNextToken", `<ListMarketplaceParticipationsByNextTokenResponse>
  <ListMarketplaceParticipationsByNextTokenResult></ListMarketplaceParticipationsByNextTokenResult>
</ListMarketplaceParticipationsByNextTokenResponse>`),
		},
	}

	inv, err := newInvocation("sellers", "ListMarketplaceParticipations", &inputFlags{}, strings.NewReader(""))
	require.NoError(t, err)

	result, err := inv.all(context.Background(), rec, mws.NewPaginator())
	require.NoError(t, err)
	assert.Len(t, result.Pages, 2)
	assert.Equal(t, mws.StoppedNoNextToken, result.StoppedAt)

	require.Len(t, rec.Calls, 2)
	assert.Equal(t, "ListMarketplaceParticipations", rec.Calls[0].Params.Action())
	assert.Equal(t, params.Values{
		"Action":    "ListMarketplaceParticipationsByNextToken",
		"NextToken": "page2",
	}, rec.Calls[1].Params)
}

func TestInvocation_AllFromToken(t *testing.T) {
	t.Parallel()

	rec := &mwstest.Recorder{}
	flags := inputFlags{nextToken: "resume"}
	inv, err := newInvocation("sellers", "ListMarketplaceParticipations", &flags, strings.NewReader(""))
	require.NoError(t, err)

	result, err := inv.all(context.Background(), rec, mws.NewPaginator())
	require.NoError(t, err)
	assert.Len(t, result.Pages, 1)

	require.Len(t, rec.Calls, 1)
	assert.Equal(t, "resume", rec.Last().Params[params.NextTokenKey])
}

func TestInvocation_AllRejectsSinglePage(t *testing.T) {
	t.Parallel()

	inv, err := newInvocation("orders", "GetOrder", &inputFlags{}, strings.NewReader(""))
	require.NoError(t, err)

	_, err = inv.all(context.Background(), &mwstest.Recorder{}, mws.NewPaginator())
	require.EqualError(t, err, "GetOrder has no ByNextToken continuation")
}

func TestNewResponseDocument(t *testing.T) {
	t.Parallel()

	resp := mwstest.XMLResponse("GetServiceStatus", `<GetServiceStatusResponse>
  <GetServiceStatusResult>
    <Status>GREEN</Status>
    <Timestamp>2024-01-02T03:04:05.000Z</Timestamp>
  </GetServiceStatusResult>
  <ResponseMetadata><RequestId>req-1</RequestId></ResponseMetadata>
</GetServiceStatusResponse>`)

	doc := newResponseDocument(resp)
	assert.Equal(t, "GetServiceStatus", doc.Action)
	assert.Equal(t, 200, doc.Status)
	assert.Equal(t, "req-1", doc.RequestID)
	assert.Empty(t, doc.NextToken)
	assert.Equal(t, map[string]any{
		"Status":    "GREEN",
		"Timestamp": "2024-01-02T03:04:05.000Z",
	}, doc.Result)
}

func TestNewResponseDocument_FlatFile(t *testing.T) {
	t.Parallel()

	resp := &mws.Response{Action: "GetReport", StatusCode: 200, Body: []byte("sku\tprice\n")}
	doc := newResponseDocument(resp)
	assert.Equal(t, "sku\tprice\n", doc.Result)
}

func TestStatusSections(t *testing.T) {
	t.Parallel()

	all, err := statusSections(nil)
	require.NoError(t, err)
	assert.Len(t, all, len(sectionNames()))

	some, err := statusSections([]string{"Orders", "reports"})
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, "Orders", some[0].Name)
	assert.Equal(t, "Reports", some[1].Name)

	_, err = statusSections([]string{"bogus"})
	assert.ErrorContains(t, err, `unknown section "bogus"`)
}
