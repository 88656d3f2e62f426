// Package outbound implements the MWS Fulfillment Outbound Shipment API
// section (Multi-Channel Fulfillment): previewing, creating and tracking
// orders shipped from Amazon's fulfillment network.
package outbound

import (
	"context"
	"strconv"
	"time"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
	"github.com/donaldgifford/amazon-mws/pkg/params"
)

// Section is the Fulfillment Outbound Shipment API section.
var Section = mws.Section{
	Name:        "FulfillmentOutboundShipment",
	Path:        "/FulfillmentOutboundShipment/2010-10-01",
	Version:     "2010-10-01",
	AccountType: mws.AccountSeller,
}

// Operation names.
const (
	ActionGetFulfillmentPreview     = "GetFulfillmentPreview"
	ActionCreateFulfillmentOrder    = "CreateFulfillmentOrder"
	ActionGetFulfillmentOrder       = "GetFulfillmentOrder"
	ActionListAllFulfillmentOrders  = "ListAllFulfillmentOrders"
	ActionGetPackageTrackingDetails = "GetPackageTrackingDetails"
	ActionCancelFulfillmentOrder    = "CancelFulfillmentOrder"
	ActionListReturnReasonCodes     = "ListReturnReasonCodes"
)

const (
	keySellerFulfillmentOrderID = "SellerFulfillmentOrderId"
	keyMarketplaceID            = "MarketplaceId"
)

// ShippingSpeed is a shipping speed category.
type ShippingSpeed string

// Shipping speed categories.
const (
	SpeedStandard          ShippingSpeed = "Standard"
	SpeedExpedited         ShippingSpeed = "Expedited"
	SpeedPriority          ShippingSpeed = "Priority"
	SpeedScheduledDelivery ShippingSpeed = "ScheduledDelivery"
)

// FulfillmentAction says whether an order ships immediately or is held.
type FulfillmentAction string

// Fulfillment actions.
const (
	FulfillmentShip FulfillmentAction = "Ship"
	FulfillmentHold FulfillmentAction = "Hold"
)

// FulfillmentPolicy decides what happens when some items are
// unfulfillable.
type FulfillmentPolicy string

// Fulfillment policies.
const (
	PolicyFillOrKill       FulfillmentPolicy = "FillOrKill"
	PolicyFillAll          FulfillmentPolicy = "FillAll"
	PolicyFillAllAvailable FulfillmentPolicy = "FillAllAvailable"
)

// API sends Fulfillment Outbound Shipment operations through a Doer.
type API struct {
	doer mws.Doer
}

// New creates a Fulfillment Outbound Shipment API over d.
func New(d mws.Doer) *API {
	return &API{doer: d}
}

// GetServiceStatus returns the operational status of the section.
func (a *API) GetServiceStatus(ctx context.Context) (*mws.Response, error) {
	return mws.ServiceStatus(ctx, a.doer, Section)
}

// Address is a destination address.
type Address struct {
	Name                string
	Line1               string
	Line2               string
	Line3               string
	DistrictOrCounty    string
	City                string
	StateOrProvinceCode string
	CountryCode         string
	PostalCode          string
	PhoneNumber         string
}

func (a Address) validate(field string) error {
	return params.First(
		params.Required(field+".Name", a.Name),
		params.Required(field+".Line1", a.Line1),
		params.Required(field+".StateOrProvinceCode", a.StateOrProvinceCode),
		params.Required(field+".CountryCode", a.CountryCode),
	)
}

func (a Address) values() params.Values {
	return params.Values{
		"Name":                a.Name,
		"Line1":               a.Line1,
		"Line2":               a.Line2,
		"Line3":               a.Line3,
		"DistrictOrCounty":    a.DistrictOrCounty,
		"City":                a.City,
		"StateOrProvinceCode": a.StateOrProvinceCode,
		"CountryCode":         a.CountryCode,
		"PostalCode":          a.PostalCode,
		"PhoneNumber":         a.PhoneNumber,
	}
}

// Item is one line of a fulfillment order or preview.
// SellerFulfillmentOrderItemID identifies the line within the order.
type Item struct {
	SellerSKU                    string
	SellerFulfillmentOrderItemID string
	Quantity                     int
	GiftMessage                  string
	DisplayableComment           string
	PerUnitDeclaredValue         params.Money
}

func itemParams(items []Item) (params.Values, error) {
	if len(items) == 0 {
		return nil, params.Missing("Items")
	}
	list := make([]params.Values, len(items))
	for i, it := range items {
		field := "Items.member." + strconv.Itoa(i+1)
		if err := params.First(
			params.Required(field+".SellerSKU", it.SellerSKU),
			params.Required(field+".SellerFulfillmentOrderItemId", it.SellerFulfillmentOrderItemID),
			params.RequiredPositive(field+".Quantity", it.Quantity),
		); err != nil {
			return nil, err
		}
		v := params.Values{
			"SellerSKU":                    it.SellerSKU,
			"SellerFulfillmentOrderItemId": it.SellerFulfillmentOrderItemID,
			"Quantity":                     strconv.Itoa(it.Quantity),
			"GiftMessage":                  it.GiftMessage,
			"DisplayableComment":           it.DisplayableComment,
		}
		v.SetMoney("PerUnitDeclaredValue", "Value", it.PerUnitDeclaredValue)
		list[i] = v
	}
	return params.EnumerateKeyed("Items.member", list), nil
}

// CODSettings request cash-on-delivery collection. Only available in
// Japan.
type CODSettings struct {
	IsCODRequired     bool
	CODCharge         params.Money
	CODChargeTax      params.Money
	ShippingCharge    params.Money
	ShippingChargeTax params.Money
}

func (c *CODSettings) values() params.Values {
	if c == nil {
		return nil
	}
	v := params.Values{"IsCODRequired": params.FormatBool(c.IsCODRequired)}
	v.SetMoney("CODCharge", "Value", c.CODCharge)
	v.SetMoney("CODChargeTax", "Value", c.CODChargeTax)
	v.SetMoney("ShippingCharge", "Value", c.ShippingCharge)
	v.SetMoney("ShippingChargeTax", "Value", c.ShippingChargeTax)
	return params.DictKeyed("CODSettings", v)
}

// GetFulfillmentPreviewInput asks for shipping options and fees for a
// hypothetical order.
type GetFulfillmentPreviewInput struct {
	MarketplaceID                string
	Address                      Address
	Items                        []Item
	ShippingSpeedCategories      []ShippingSpeed
	IncludeCODFulfillmentPreview *bool
	IncludeDeliveryWindows       *bool
}

// Params builds the GetFulfillmentPreview parameters.
func (in GetFulfillmentPreviewInput) Params() (params.Values, error) {
	if err := in.Address.validate("Address"); err != nil {
		return nil, err
	}
	items, err := itemParams(in.Items)
	if err != nil {
		return nil, err
	}
	p := params.New(ActionGetFulfillmentPreview)
	p.Set(keyMarketplaceID, in.MarketplaceID)
	p.SetBool("IncludeCODFulfillmentPreview", in.IncludeCODFulfillmentPreview)
	p.SetBool("IncludeDeliveryWindows", in.IncludeDeliveryWindows)
	return p.Merge(
		params.DictKeyed("Address", in.Address.values()),
		items,
		params.Enumerate("ShippingSpeedCategories.member", in.ShippingSpeedCategories),
	), nil
}

// GetFulfillmentPreview returns fulfillment options for a prospective
// order.
func (a *API) GetFulfillmentPreview(
	ctx context.Context,
	in GetFulfillmentPreviewInput,
) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

// CreateFulfillmentOrderInput is a new multi-channel order.
// DisplayableOrderID, DisplayableOrderDate and DisplayableOrderComment are
// printed on the packing slip.
type CreateFulfillmentOrderInput struct {
	MarketplaceID            string
	SellerFulfillmentOrderID string
	FulfillmentAction        FulfillmentAction
	DisplayableOrderID       string
	DisplayableOrderDate     time.Time
	DisplayableOrderComment  string
	ShippingSpeedCategory    ShippingSpeed
	DestinationAddress       Address
	FulfillmentPolicy        FulfillmentPolicy
	NotificationEmails       []string
	CODSettings              *CODSettings
	Items                    []Item
}

// Params builds the CreateFulfillmentOrder parameters.
func (in CreateFulfillmentOrderInput) Params() (params.Values, error) {
	if err := params.First(
		params.Required(keySellerFulfillmentOrderID, in.SellerFulfillmentOrderID),
		params.Required("DisplayableOrderId", in.DisplayableOrderID),
		params.Required("DisplayableOrderComment", in.DisplayableOrderComment),
		params.Required("ShippingSpeedCategory", string(in.ShippingSpeedCategory)),
		in.DestinationAddress.validate("DestinationAddress"),
	); err != nil {
		return nil, err
	}
	if in.DisplayableOrderDate.IsZero() {
		return nil, params.Missing("DisplayableOrderDateTime")
	}
	if in.CODSettings != nil && !in.CODSettings.CODCharge.IsZero() {
		if err := in.CODSettings.CODCharge.Validate("CODSettings.CODCharge"); err != nil {
			return nil, err
		}
	}
	items, err := itemParams(in.Items)
	if err != nil {
		return nil, err
	}

	p := params.New(ActionCreateFulfillmentOrder)
	p.Set(keyMarketplaceID, in.MarketplaceID)
	p.Set(keySellerFulfillmentOrderID, in.SellerFulfillmentOrderID)
	p.Set("FulfillmentAction", string(in.FulfillmentAction))
	p.Set("DisplayableOrderId", in.DisplayableOrderID)
	p.SetTime("DisplayableOrderDateTime", in.DisplayableOrderDate)
	p.Set("DisplayableOrderComment", in.DisplayableOrderComment)
	p.Set("ShippingSpeedCategory", string(in.ShippingSpeedCategory))
	p.Set("FulfillmentPolicy", string(in.FulfillmentPolicy))
	return p.Merge(
		params.DictKeyed("DestinationAddress", in.DestinationAddress.values()),
		params.Enumerate("NotificationEmailList.member", in.NotificationEmails),
		in.CODSettings.values(),
		items,
	), nil
}

// CreateFulfillmentOrder submits a multi-channel fulfillment order.
func (a *API) CreateFulfillmentOrder(
	ctx context.Context,
	in CreateFulfillmentOrderInput,
) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

// OrderInput names a fulfillment order.
type OrderInput struct {
	Action                   string
	SellerFulfillmentOrderID string
}

// Params builds the parameters of in.Action.
func (in OrderInput) Params() (params.Values, error) {
	if err := params.Required(keySellerFulfillmentOrderID, in.SellerFulfillmentOrderID); err != nil {
		return nil, err
	}
	p := params.New(in.Action)
	p.Set(keySellerFulfillmentOrderID, in.SellerFulfillmentOrderID)
	return p, nil
}

// GetFulfillmentOrder returns an order and its shipments.
func (a *API) GetFulfillmentOrder(ctx context.Context, sellerFulfillmentOrderID string) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, OrderInput{
		Action:                   ActionGetFulfillmentOrder,
		SellerFulfillmentOrderID: sellerFulfillmentOrderID,
	})
}

// CancelFulfillmentOrder asks Amazon to stop fulfilling an order.
func (a *API) CancelFulfillmentOrder(ctx context.Context, sellerFulfillmentOrderID string) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, OrderInput{
		Action:                   ActionCancelFulfillmentOrder,
		SellerFulfillmentOrderID: sellerFulfillmentOrderID,
	})
}

// ListAllFulfillmentOrdersInput lists orders updated after
// QueryStartDateTime. Without it the service returns the last 36 hours.
type ListAllFulfillmentOrdersInput struct {
	QueryStartDateTime time.Time
	NextToken          string
}

// Params builds the ListAllFulfillmentOrders parameters.
func (in ListAllFulfillmentOrdersInput) Params() (params.Values, error) {
	return params.Paginated(ActionListAllFulfillmentOrders, in.NextToken, func() (params.Values, error) {
		p := params.New(ActionListAllFulfillmentOrders)
		p.SetTime("QueryStartDateTime", in.QueryStartDateTime)
		return p, nil
	})
}

// ListAllFulfillmentOrders lists fulfillment orders.
func (a *API) ListAllFulfillmentOrders(
	ctx context.Context,
	in ListAllFulfillmentOrdersInput,
) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

// ListAllFulfillmentOrdersByNextToken continues a ListAllFulfillmentOrders
// listing.
func (a *API) ListAllFulfillmentOrdersByNextToken(ctx context.Context, token string) (*mws.Response, error) {
	return mws.CallByNextToken(ctx, a.doer, Section, ActionListAllFulfillmentOrders, token)
}

// ListAllFulfillmentOrdersPages pages through every order matching in.
func (a *API) ListAllFulfillmentOrdersPages(in ListAllFulfillmentOrdersInput) mws.Pager {
	return mws.Pages(a.doer, Section, ActionListAllFulfillmentOrders, in)
}

// PackageTrackingInput names a package by the number GetFulfillmentOrder
// returned for it.
type PackageTrackingInput struct {
	PackageNumber int
}

// Params builds the GetPackageTrackingDetails parameters.
func (in PackageTrackingInput) Params() (params.Values, error) {
	if err := params.RequiredPositive("PackageNumber", in.PackageNumber); err != nil {
		return nil, err
	}
	p := params.New(ActionGetPackageTrackingDetails)
	p.SetInt("PackageNumber", in.PackageNumber)
	return p, nil
}

// GetPackageTrackingDetails returns carrier tracking for a package.
func (a *API) GetPackageTrackingDetails(ctx context.Context, packageNumber int) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, PackageTrackingInput{PackageNumber: packageNumber})
}

// ListReturnReasonCodesInput asks which return reasons apply to a SKU.
// Either SellerFulfillmentOrderID or MarketplaceID narrows the result.
type ListReturnReasonCodesInput struct {
	SellerSKU                string
	MarketplaceID            string
	SellerFulfillmentOrderID string
	Language                 string
}

// Params builds the ListReturnReasonCodes parameters.
func (in ListReturnReasonCodesInput) Params() (params.Values, error) {
	if err := params.Required("SellerSKU", in.SellerSKU); err != nil {
		return nil, err
	}
	p := params.New(ActionListReturnReasonCodes)
	p.Set("SellerSKU", in.SellerSKU)
	p.Set(keyMarketplaceID, in.MarketplaceID)
	p.Set(keySellerFulfillmentOrderID, in.SellerFulfillmentOrderID)
	p.Set("Language", in.Language)
	return p, nil
}

// ListReturnReasonCodes lists the return reasons for a SKU.
func (a *API) ListReturnReasonCodes(
	ctx context.Context,
	in ListReturnReasonCodesInput,
) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}
