package mws_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
)

const listOrdersXML = `<?xml version="1.0"?>
<ListOrdersResponse xmlns="https://mws.amazonservices.com/Orders/2013-09-01">
  <ListOrdersResult>
    <NextToken>2YgYW55IGNhcm5hbCBwbGVhc3VyZS4=</NextToken>
    <Orders>
      <Order>
        <AmazonOrderId>058-1233752-8214740</AmazonOrderId>
        <OrderStatus>Unshipped</OrderStatus>
      </Order>
      <Order>
        <AmazonOrderId>902-3159896-1390916</AmazonOrderId>
        <OrderTotal currency="USD">
          <Amount>25.00</Amount>
        </OrderTotal>
      </Order>
    </Orders>
  </ListOrdersResult>
  <ResponseMetadata>
    <RequestId>88faca76-b600-46d2-b53c-0c8c4533e43a</RequestId>
  </ResponseMetadata>
</ListOrdersResponse>`

func TestParseXML(t *testing.T) {
	t.Parallel()

	root, err := mws.ParseXML([]byte(listOrdersXML))
	require.NoError(t, err)

	assert.Equal(t, "ListOrdersResponse", root.Name)
	assert.Empty(t, root.Attrs, "xmlns is dropped")

	orders := root.Get("ListOrdersResult", "Orders").All("Order")
	require.Len(t, orders, 2)
	assert.Equal(t, "058-1233752-8214740", orders[0].Value("AmazonOrderId"))
	assert.Equal(t, "USD", orders[1].Get("OrderTotal").Attrs["currency"])
	assert.Equal(t, "25.00", orders[1].Value("OrderTotal", "Amount"))

	assert.Nil(t, root.Get("Missing", "Path"))
	assert.Empty(t, root.Value("Missing"))
	assert.Equal(t, "Unshipped", root.Find("OrderStatus").Text)
}

func TestParseXML_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "empty document", body: ""},
		{name: "malformed", body: "<a><b></a>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := mws.ParseXML([]byte(tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "decoding XML")
		})
	}
}

func TestNode_Map(t *testing.T) {
	t.Parallel()

	root, err := mws.ParseXML([]byte(`<R><A>1</A><B x="y">2</B><A>3</A></R>`))
	require.NoError(t, err)

	got, ok := root.Map().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"1", "3"}, got["A"])
	assert.Equal(t, map[string]any{"@x": "y", "#text": "2"}, got["B"])

	var nilNode *mws.Node
	assert.Nil(t, nilNode.Map())
}

func TestResponse_Accessors(t *testing.T) {
	t.Parallel()

	resp := mwstestXML(t, "ListOrders", listOrdersXML)

	assert.True(t, resp.IsXML())
	assert.Equal(t, "ListOrdersResult", resp.Parsed().Name)
	assert.Equal(t, "2YgYW55IGNhcm5hbCBwbGVhc3VyZS4=", resp.NextToken())
	assert.Equal(t, "88faca76-b600-46d2-b53c-0c8c4533e43a", resp.RequestID())

	// A continuation response wraps its result under the ByNextToken name.
	next := mwstestXML(t, "ListOrdersByNextToken", `<ListOrdersByNextTokenResponse>
		<ListOrdersByNextTokenResult><Orders/></ListOrdersByNextTokenResult>
	</ListOrdersByNextTokenResponse>`)
	assert.Equal(t, "ListOrdersByNextTokenResult", next.Parsed().Name)
	assert.Empty(t, next.NextToken())

	flat := &mws.Response{Action: "GetReport", Body: []byte("a\tb\n")}
	assert.False(t, flat.IsXML())
	assert.Nil(t, flat.Parsed())
	assert.Empty(t, flat.NextToken())
	assert.Equal(t, []byte("a\tb\n"), flat.Data())
}

func TestResponse_HasNext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result string
		want   bool
	}{
		{name: "next token only", result: "<NextToken>tok</NextToken>", want: true},
		{name: "no next token", result: "<Orders/>", want: false},
		{name: "has next true", result: "<NextToken>tok</NextToken><HasNext>true</HasNext>", want: true},
		{name: "has next false wins over token", result: "<NextToken>tok</NextToken><HasNext>false</HasNext>", want: false},
		{name: "has next false mixed case", result: "<NextToken>tok</NextToken><HasNext> False </HasNext>", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			resp := mwstestXML(t, "GetReportList",
				"<GetReportListResponse><GetReportListResult>"+tt.result+
					"</GetReportListResult></GetReportListResponse>")
			assert.Equal(t, tt.want, resp.HasNext())
		})
	}

	flat := &mws.Response{Action: "GetReport", Body: []byte("a\tb\n")}
	assert.False(t, flat.HasNext())
}

func mwstestXML(t *testing.T, action, body string) *mws.Response {
	t.Helper()
	root, err := mws.ParseXML([]byte(body))
	require.NoError(t, err)
	return &mws.Response{Action: action, StatusCode: 200, Body: []byte(body), Root: root}
}
