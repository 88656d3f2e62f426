package finances_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
	"github.com/donaldgifford/amazon-mws/pkg/mws/finances"
	"github.com/donaldgifford/amazon-mws/pkg/mws/mwstest"
	"github.com/donaldgifford/amazon-mws/pkg/params"
)

var after = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestListFinancialEventGroups(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      finances.ListFinancialEventGroupsInput
		want    params.Values
		wantErr string
	}{
		{
			name: "all fields",
			in: finances.ListFinancialEventGroupsInput{
				StartedAfter:  after,
				StartedBefore: after.Add(48 * time.Hour),
				MaxResults:    100,
			},
			want: params.Values{
				"Action":                           "ListFinancialEventGroups",
				"FinancialEventGroupStartedAfter":  "2026-01-01T00:00:00Z",
				"FinancialEventGroupStartedBefore": "2026-01-03T00:00:00Z",
				"MaxResultsPerPage":                "100",
			},
		},
		{
			name: "next token skips validation",
			in:   finances.ListFinancialEventGroupsInput{NextToken: "abc"},
			want: params.Values{
				"Action":    "ListFinancialEventGroupsByNextToken",
				"NextToken": "abc",
			},
		},
		{
			name:    "missing start",
			in:      finances.ListFinancialEventGroupsInput{MaxResults: 10},
			wantErr: "invalid parameter FinancialEventGroupStartedAfter: is required",
		},
		{
			name: "inverted range",
			in: finances.ListFinancialEventGroupsInput{
				StartedAfter:  after,
				StartedBefore: after.Add(-time.Hour),
			},
			wantErr: "invalid parameter FinancialEventGroupStartedBefore: must not be before 2026-01-01T00:00:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &mwstest.Recorder{}
			_, err := finances.New(rec).ListFinancialEventGroups(context.Background(), tt.in)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				assert.Empty(t, rec.Calls)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.Last().Params)
			assert.Equal(t, "/Finances/2015-05-01", rec.Last().Section.Path)
		})
	}
}

func TestListFinancialEvents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      finances.ListFinancialEventsInput
		want    params.Values
		wantErr bool
	}{
		{
			name: "by order",
			in:   finances.ListFinancialEventsInput{AmazonOrderID: "333-7777777-7777777"},
			want: params.Values{
				"Action":        "ListFinancialEvents",
				"AmazonOrderId": "333-7777777-7777777",
			},
		},
		{
			name: "by group and posting date",
			in: finances.ListFinancialEventsInput{
				GroupID:      "22YgYW55IGNhcm5hbCBwbGVhc3VyZS4",
				PostedAfter:  after,
				PostedBefore: after.Add(time.Hour),
				MaxResults:   50,
			},
			want: params.Values{
				"Action":                "ListFinancialEvents",
				"FinancialEventGroupId": "22YgYW55IGNhcm5hbCBwbGVhc3VyZS4",
				"PostedAfter":           "2026-01-01T00:00:00Z",
				"PostedBefore":          "2026-01-01T01:00:00Z",
				"MaxResultsPerPage":     "50",
			},
		},
		{
			name:    "no selector",
			in:      finances.ListFinancialEventsInput{MaxResults: 10},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.in.Params()
			if tt.wantErr {
				var vErr *params.ValidationError
				require.ErrorAs(t, err, &vErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListFinancialEventsPages(t *testing.T) {
	t.Parallel()

	rec := &mwstest.Recorder{
		Responses: []*mws.Response{
			mwstest.XMLResponse("ListFinancialEvents", `<ListFinancialEventsResponse>
				<ListFinancialEventsResult><NextToken>n1</NextToken></ListFinancialEventsResult>
			</ListFinancialEventsResponse>`),
		},
	}
	api := finances.New(rec)

	result, err := mws.NewPaginator().Paginate(
		context.Background(),
		api.ListFinancialEventsPages(finances.ListFinancialEventsInput{AmazonOrderID: "1"}),
	)
	require.NoError(t, err)
	require.Len(t, result.Pages, 2)

	_, err = api.ListFinancialEventGroupsByNextToken(context.Background(), "g1")
	require.NoError(t, err)

	require.Len(t, rec.Calls, 3)
	assert.Equal(t, "ListFinancialEventsByNextToken", rec.Calls[1].Params.Action())
	assert.Equal(t, "n1", rec.Calls[1].Params["NextToken"])
	assert.Equal(t, "ListFinancialEventGroupsByNextToken", rec.Calls[2].Params.Action())
}
