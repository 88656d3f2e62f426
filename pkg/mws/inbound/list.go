package inbound

import (
	"context"
	"time"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
	"github.com/donaldgifford/amazon-mws/pkg/params"
)

// ListInboundShipmentsInput selects shipments by id or status; at least
// one of the two lists must be set.
type ListInboundShipmentsInput struct {
	ShipmentIDs       []string
	Statuses          []ShipmentStatus
	LastUpdatedAfter  time.Time
	LastUpdatedBefore time.Time
	NextToken         string
}

// Params builds the ListInboundShipments parameters.
func (in ListInboundShipmentsInput) Params() (params.Values, error) {
	return params.Paginated(ActionListInboundShipments, in.NextToken, func() (params.Values, error) {
		if len(in.ShipmentIDs) == 0 && len(in.Statuses) == 0 {
			return nil, params.Invalid("ShipmentStatusList", "either ShipmentStatusList or ShipmentIdList is required")
		}
		if err := params.TimeRange("LastUpdatedBefore", in.LastUpdatedAfter, in.LastUpdatedBefore); err != nil {
			return nil, err
		}
		p := params.New(ActionListInboundShipments)
		p.SetTime("LastUpdatedAfter", in.LastUpdatedAfter)
		p.SetTime("LastUpdatedBefore", in.LastUpdatedBefore)
		return p.Merge(
			params.Enumerate("ShipmentIdList.member", in.ShipmentIDs),
			params.Enumerate("ShipmentStatusList.member", in.Statuses),
		), nil
	})
}

// ListInboundShipments lists inbound shipments.
func (a *API) ListInboundShipments(
	ctx context.Context,
	in ListInboundShipmentsInput,
) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

// ListInboundShipmentsByNextToken continues a ListInboundShipments listing.
func (a *API) ListInboundShipmentsByNextToken(ctx context.Context, token string) (*mws.Response, error) {
	return mws.CallByNextToken(ctx, a.doer, Section, ActionListInboundShipments, token)
}

// ListInboundShipmentsPages pages through every shipment matching in.
func (a *API) ListInboundShipmentsPages(in ListInboundShipmentsInput) mws.Pager {
	return mws.Pages(a.doer, Section, ActionListInboundShipments, in)
}

// ListInboundShipmentItemsInput selects items by shipment or by update
// time. Either ShipmentID or LastUpdatedAfter must be set.
type ListInboundShipmentItemsInput struct {
	ShipmentID        string
	LastUpdatedAfter  time.Time
	LastUpdatedBefore time.Time
	NextToken         string
}

// Params builds the ListInboundShipmentItems parameters.
func (in ListInboundShipmentItemsInput) Params() (params.Values, error) {
	return params.Paginated(ActionListInboundShipmentItems, in.NextToken, func() (params.Values, error) {
		if in.ShipmentID == "" && in.LastUpdatedAfter.IsZero() {
			return nil, params.Invalid("ShipmentId", "either ShipmentId or LastUpdatedAfter is required")
		}
		if err := params.TimeRange("LastUpdatedBefore", in.LastUpdatedAfter, in.LastUpdatedBefore); err != nil {
			return nil, err
		}
		p := params.New(ActionListInboundShipmentItems)
		p.Set("ShipmentId", in.ShipmentID)
		p.SetTime("LastUpdatedAfter", in.LastUpdatedAfter)
		p.SetTime("LastUpdatedBefore", in.LastUpdatedBefore)
		return p, nil
	})
}

// ListInboundShipmentItems lists the items of inbound shipments.
func (a *API) ListInboundShipmentItems(
	ctx context.Context,
	in ListInboundShipmentItemsInput,
) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

// ListInboundShipmentItemsByNextToken continues a ListInboundShipmentItems
// listing.
func (a *API) ListInboundShipmentItemsByNextToken(ctx context.Context, token string) (*mws.Response, error) {
	return mws.CallByNextToken(ctx, a.doer, Section, ActionListInboundShipmentItems, token)
}

// ListInboundShipmentItemsPages pages through every item matching in.
func (a *API) ListInboundShipmentItemsPages(in ListInboundShipmentItemsInput) mws.Pager {
	return mws.Pages(a.doer, Section, ActionListInboundShipmentItems, in)
}
