package inbound

import (
	"context"
	"fmt"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
	"github.com/donaldgifford/amazon-mws/pkg/params"
)

const (
	keyPlanItems     = "InboundShipmentPlanRequestItems.member"
	keyShipmentItems = "InboundShipmentItems.member"
	keyHeader        = "InboundShipmentHeader"
)

// PlanItem is one SKU to be planned into shipments.
type PlanItem struct {
	SellerSKU      string
	ASIN           string
	Condition      string
	Quantity       int
	QuantityInCase int
}

// ShipmentItem is one SKU in a created or updated shipment.
type ShipmentItem struct {
	SellerSKU       string
	QuantityShipped int
	QuantityInCase  int
}

func planItemParams(items []PlanItem) (params.Values, error) {
	if len(items) == 0 {
		return nil, params.Invalid(keyPlanItems, "at least one item is required")
	}
	rows := make([]params.Values, 0, len(items))
	for i, it := range items {
		field := fmt.Sprintf("%s.%d", keyPlanItems, i+1)
		if err := params.First(
			params.Required(field+".SellerSKU", it.SellerSKU),
			params.RequiredPositive(field+".Quantity", it.Quantity),
		); err != nil {
			return nil, err
		}
		rows = append(rows, params.Values{
			"SellerSKU":      it.SellerSKU,
			"ASIN":           it.ASIN,
			"Condition":      it.Condition,
			"Quantity":       itoa(it.Quantity),
			"QuantityInCase": itoa(it.QuantityInCase),
		})
	}
	return params.EnumerateKeyed(keyPlanItems, rows), nil
}

func shipmentItemParams(items []ShipmentItem) (params.Values, error) {
	rows := make([]params.Values, 0, len(items))
	for i, it := range items {
		field := fmt.Sprintf("%s.%d", keyShipmentItems, i+1)
		if err := params.First(
			params.Required(field+".SellerSKU", it.SellerSKU),
			params.RequiredPositive(field+".QuantityShipped", it.QuantityShipped),
		); err != nil {
			return nil, err
		}
		rows = append(rows, params.Values{
			"SellerSKU":       it.SellerSKU,
			"QuantityShipped": itoa(it.QuantityShipped),
			"QuantityInCase":  itoa(it.QuantityInCase),
		})
	}
	return params.EnumerateKeyed(keyShipmentItems, rows), nil
}

// CreateInboundShipmentPlanInput asks Amazon how to split items into
// shipments. ShipToCountryCode defaults to US.
type CreateInboundShipmentPlanInput struct {
	Items                        []PlanItem
	ShipToCountryCode            string
	ShipToCountrySubdivisionCode string
	LabelPrepPreference          LabelPrepPreference
	ShipFromAddress              *Address
}

// Params builds the CreateInboundShipmentPlan parameters.
func (in CreateInboundShipmentPlanInput) Params() (params.Values, error) {
	addr, err := addressParams("ShipFromAddress", in.ShipFromAddress)
	if err != nil {
		return nil, err
	}
	items, err := planItemParams(in.Items)
	if err != nil {
		return nil, err
	}
	country := in.ShipToCountryCode
	if country == "" {
		country = DefaultCountryCode
	}
	p := params.New(ActionCreateInboundShipmentPlan)
	p.Set("ShipToCountryCode", country)
	p.Set("ShipToCountrySubdivisionCode", in.ShipToCountrySubdivisionCode)
	p.Set("LabelPrepPreference", string(in.LabelPrepPreference))
	return p.Merge(addr, items), nil
}

// CreateInboundShipmentPlan returns the shipment plan for items.
func (a *API) CreateInboundShipmentPlan(
	ctx context.Context,
	in CreateInboundShipmentPlanInput,
) (*mws.Response, error) {
	in.ShipFromAddress = a.address(in.ShipFromAddress)
	return mws.Call(ctx, a.doer, Section, in)
}

// ShipmentHeader describes a shipment. CreateInboundShipment defaults
// ShipmentStatus to WORKING.
type ShipmentHeader struct {
	ShipmentName                   string
	DestinationFulfillmentCenterID string
	LabelPrepPreference            LabelPrepPreference
	AreCasesRequired               *bool
	ShipmentStatus                 ShipmentStatus
	IntendedBoxContentsSource      string
}

func (h ShipmentHeader) values() params.Values {
	v := params.Values{}
	v.Set("ShipmentName", h.ShipmentName)
	v.Set("DestinationFulfillmentCenterId", h.DestinationFulfillmentCenterID)
	v.Set("LabelPrepPreference", string(h.LabelPrepPreference))
	v.SetBool("AreCasesRequired", h.AreCasesRequired)
	v.Set("ShipmentStatus", string(h.ShipmentStatus))
	v.Set("IntendedBoxContentsSource", h.IntendedBoxContentsSource)
	return params.DictKeyed(keyHeader, v)
}

// CreateInboundShipmentInput creates one shipment of a plan.
type CreateInboundShipmentInput struct {
	ShipmentID      string
	Header          ShipmentHeader
	Items           []ShipmentItem
	ShipFromAddress *Address
}

// Params builds the CreateInboundShipment parameters.
func (in CreateInboundShipmentInput) Params() (params.Values, error) {
	if err := params.First(
		params.Required("ShipmentId", in.ShipmentID),
		params.Required(keyHeader+".ShipmentName", in.Header.ShipmentName),
		params.Required(keyHeader+".DestinationFulfillmentCenterId", in.Header.DestinationFulfillmentCenterID),
	); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, params.Invalid(keyShipmentItems, "at least one item is required")
	}
	addr, err := addressParams(keyHeader+".ShipFromAddress", in.ShipFromAddress)
	if err != nil {
		return nil, err
	}
	items, err := shipmentItemParams(in.Items)
	if err != nil {
		return nil, err
	}
	header := in.Header
	if header.ShipmentStatus == "" {
		header.ShipmentStatus = StatusWorking
	}
	p := params.New(ActionCreateInboundShipment)
	p.Set("ShipmentId", in.ShipmentID)
	return p.Merge(header.values(), addr, items), nil
}

// CreateInboundShipment creates a shipment.
func (a *API) CreateInboundShipment(
	ctx context.Context,
	in CreateInboundShipmentInput,
) (*mws.Response, error) {
	in.ShipFromAddress = a.address(in.ShipFromAddress)
	return mws.Call(ctx, a.doer, Section, in)
}

// UpdateInboundShipmentInput changes a shipment. Only ShipmentID is
// required; unset header fields and a nil item list are left unchanged.
type UpdateInboundShipmentInput struct {
	ShipmentID      string
	Header          ShipmentHeader
	Items           []ShipmentItem
	ShipFromAddress *Address
}

// Params builds the UpdateInboundShipment parameters.
func (in UpdateInboundShipmentInput) Params() (params.Values, error) {
	if err := params.Required("ShipmentId", in.ShipmentID); err != nil {
		return nil, err
	}
	items, err := shipmentItemParams(in.Items)
	if err != nil {
		return nil, err
	}
	p := params.New(ActionUpdateInboundShipment)
	p.Set("ShipmentId", in.ShipmentID)
	p.Merge(in.Header.values(), items)
	if in.ShipFromAddress != nil {
		addr, err := addressParams(keyHeader+".ShipFromAddress", in.ShipFromAddress)
		if err != nil {
			return nil, err
		}
		p.Merge(addr)
	}
	return p, nil
}

// UpdateInboundShipment updates a shipment.
func (a *API) UpdateInboundShipment(
	ctx context.Context,
	in UpdateInboundShipmentInput,
) (*mws.Response, error) {
	in.ShipFromAddress = a.address(in.ShipFromAddress)
	return mws.Call(ctx, a.doer, Section, in)
}
