// Package orders implements the MWS Orders API section.
package orders

import (
	"context"
	"time"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
	"github.com/donaldgifford/amazon-mws/pkg/params"
)

// Section is the Orders API section.
var Section = mws.Section{
	Name:        "Orders",
	Path:        "/Orders/2013-09-01",
	Version:     "2013-09-01",
	AccountType: mws.AccountSeller,
}

// Operation names.
const (
	ActionListOrders     = "ListOrders"
	ActionGetOrder       = "GetOrder"
	ActionListOrderItems = "ListOrderItems"
)

// DefaultMaxResults is the page size ListOrders asks for when none is set.
const DefaultMaxResults = 100

// maxOrderIDs is the most order ids GetOrder accepts per call.
const maxOrderIDs = 50

// Status is an order status filter.
type Status string

// Order statuses.
const (
	StatusPendingAvailability Status = "PendingAvailability"
	StatusPending             Status = "Pending"
	StatusUnshipped           Status = "Unshipped"
	StatusPartiallyShipped    Status = "PartiallyShipped"
	StatusShipped             Status = "Shipped"
	StatusInvoiceUnconfirmed  Status = "InvoiceUnconfirmed"
	StatusCanceled            Status = "Canceled"
	StatusUnfulfillable       Status = "Unfulfillable"
)

// FulfillmentChannel is AFN (fulfilled by Amazon) or MFN (by the seller).
type FulfillmentChannel string

// Fulfillment channels.
const (
	ChannelAFN FulfillmentChannel = "AFN"
	ChannelMFN FulfillmentChannel = "MFN"
)

// API sends Orders operations through a Doer.
type API struct {
	doer mws.Doer
}

// New creates an Orders API over d.
func New(d mws.Doer) *API {
	return &API{doer: d}
}

// GetServiceStatus returns the operational status of the section.
func (a *API) GetServiceStatus(ctx context.Context) (*mws.Response, error) {
	return mws.ServiceStatus(ctx, a.doer, Section)
}

// ListOrdersInput filters orders. MarketplaceIDs is required, as is
// exactly one of CreatedAfter and LastUpdatedAfter.
type ListOrdersInput struct {
	MarketplaceIDs      []string
	CreatedAfter        time.Time
	CreatedBefore       time.Time
	LastUpdatedAfter    time.Time
	LastUpdatedBefore   time.Time
	Statuses            []Status
	FulfillmentChannels []FulfillmentChannel
	PaymentMethods      []string
	TFMShipmentStatuses []string
	BuyerEmail          string
	SellerOrderID       string
	MaxResults          int
	NextToken           string
}

// Params builds the ListOrders parameters.
func (in ListOrdersInput) Params() (params.Values, error) {
	return params.Paginated(ActionListOrders, in.NextToken, func() (params.Values, error) {
		if err := in.validate(); err != nil {
			return nil, err
		}
		maxResults := in.MaxResults
		if maxResults == 0 {
			maxResults = DefaultMaxResults
		}
		p := params.New(ActionListOrders)
		p.SetTime("CreatedAfter", in.CreatedAfter)
		p.SetTime("CreatedBefore", in.CreatedBefore)
		p.SetTime("LastUpdatedAfter", in.LastUpdatedAfter)
		p.SetTime("LastUpdatedBefore", in.LastUpdatedBefore)
		p.Set("BuyerEmail", in.BuyerEmail)
		p.Set("SellerOrderId", in.SellerOrderID)
		p.SetInt("MaxResultsPerPage", maxResults)
		return p.Merge(
			params.Enumerate("MarketplaceId.Id", in.MarketplaceIDs),
			params.Enumerate("OrderStatus.Status", in.Statuses),
			params.Enumerate("FulfillmentChannel.Channel", in.FulfillmentChannels),
			params.Enumerate("PaymentMethod.Method", in.PaymentMethods),
			params.Enumerate("TFMShipmentStatus.Status", in.TFMShipmentStatuses),
		), nil
	})
}

func (in ListOrdersInput) validate() error {
	if err := params.RequiredList("MarketplaceId", in.MarketplaceIDs); err != nil {
		return err
	}
	created, updated := !in.CreatedAfter.IsZero(), !in.LastUpdatedAfter.IsZero()
	switch {
	case !created && !updated:
		return params.Invalid("CreatedAfter", "either CreatedAfter or LastUpdatedAfter is required")
	case created && updated:
		return params.Invalid("LastUpdatedAfter", "cannot be combined with CreatedAfter")
	}
	return params.First(
		params.TimeRange("CreatedBefore", in.CreatedAfter, in.CreatedBefore),
		params.TimeRange("LastUpdatedBefore", in.LastUpdatedAfter, in.LastUpdatedBefore),
	)
}

// ListOrders lists orders.
func (a *API) ListOrders(ctx context.Context, in ListOrdersInput) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

// ListOrdersByNextToken continues a ListOrders listing.
func (a *API) ListOrdersByNextToken(ctx context.Context, token string) (*mws.Response, error) {
	return mws.CallByNextToken(ctx, a.doer, Section, ActionListOrders, token)
}

// ListOrdersPages pages through every order matching in.
func (a *API) ListOrdersPages(in ListOrdersInput) mws.Pager {
	return mws.Pages(a.doer, Section, ActionListOrders, in)
}

// GetOrderInput names up to 50 orders.
type GetOrderInput struct {
	AmazonOrderIDs []string
}

// Params builds the GetOrder parameters.
func (in GetOrderInput) Params() (params.Values, error) {
	if err := params.RequiredList("AmazonOrderId", in.AmazonOrderIDs); err != nil {
		return nil, err
	}
	if len(in.AmazonOrderIDs) > maxOrderIDs {
		return nil, params.Invalid(
			"AmazonOrderId", "at most %d ids per request (got %d)", maxOrderIDs, len(in.AmazonOrderIDs),
		)
	}
	p := params.New(ActionGetOrder)
	return p.Merge(params.Enumerate("AmazonOrderId.Id", in.AmazonOrderIDs)), nil
}

// GetOrder fetches orders by id.
func (a *API) GetOrder(ctx context.Context, amazonOrderIDs ...string) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, GetOrderInput{AmazonOrderIDs: amazonOrderIDs})
}

// ListOrderItemsInput names the order whose items are listed.
type ListOrderItemsInput struct {
	AmazonOrderID string
	NextToken     string
}

// Params builds the ListOrderItems parameters.
func (in ListOrderItemsInput) Params() (params.Values, error) {
	return params.Paginated(ActionListOrderItems, in.NextToken, func() (params.Values, error) {
		if err := params.Required("AmazonOrderId", in.AmazonOrderID); err != nil {
			return nil, err
		}
		p := params.New(ActionListOrderItems)
		p.Set("AmazonOrderId", in.AmazonOrderID)
		return p, nil
	})
}

// ListOrderItems lists the items of an order.
func (a *API) ListOrderItems(ctx context.Context, amazonOrderID string) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, ListOrderItemsInput{AmazonOrderID: amazonOrderID})
}

// ListOrderItemsByNextToken continues a ListOrderItems listing.
func (a *API) ListOrderItemsByNextToken(ctx context.Context, token string) (*mws.Response, error) {
	return mws.CallByNextToken(ctx, a.doer, Section, ActionListOrderItems, token)
}

// ListOrderItemsPages pages through every item of an order.
func (a *API) ListOrderItemsPages(amazonOrderID string) mws.Pager {
	return mws.Pages(a.doer, Section, ActionListOrderItems, ListOrderItemsInput{AmazonOrderID: amazonOrderID})
}
