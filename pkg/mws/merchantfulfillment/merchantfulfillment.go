// Package merchantfulfillment implements the MWS Merchant Fulfillment API
// section: buying shipping labels for seller-fulfilled orders.
package merchantfulfillment

import (
	"context"
	"strconv"
	"time"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
	"github.com/donaldgifford/amazon-mws/pkg/params"
)

// Section is the Merchant Fulfillment API section.
var Section = mws.Section{
	Name:        "MerchantFulfillment",
	Path:        "/MerchantFulfillment/2015-06-01",
	Version:     "2015-06-01",
	AccountType: mws.AccountSeller,
}

// Operation names.
const (
	ActionGetEligibleShippingServices = "GetEligibleShippingServices"
	ActionCreateShipment              = "CreateShipment"
	ActionGetShipment                 = "GetShipment"
	ActionCancelShipment              = "CancelShipment"
)

const detailsPrefix = "ShipmentRequestDetails"

// DeliveryExperience is the delivery confirmation level.
type DeliveryExperience string

// Delivery experiences.
const (
	DeliveryConfirmationWithAdultSignature DeliveryExperience = "DeliveryConfirmationWithAdultSignature"
	DeliveryConfirmationWithSignature      DeliveryExperience = "DeliveryConfirmationWithSignature"
	DeliveryConfirmationWithoutSignature   DeliveryExperience = "DeliveryConfirmationWithoutSignature"
	NoTracking                             DeliveryExperience = "NoTracking"
)

// HazmatType marks a shipment as carrying hazardous materials.
type HazmatType string

// Hazmat types.
const (
	HazmatNone     HazmatType = "None"
	HazmatLQHazmat HazmatType = "LQHazmat"
)

// API sends Merchant Fulfillment operations through a Doer.
type API struct {
	doer mws.Doer
}

// New creates a Merchant Fulfillment API over d.
func New(d mws.Doer) *API {
	return &API{doer: d}
}

// GetServiceStatus returns the operational status of the section.
func (a *API) GetServiceStatus(ctx context.Context) (*mws.Response, error) {
	return mws.ServiceStatus(ctx, a.doer, Section)
}

// Item is one order item in the shipment.
type Item struct {
	OrderItemID string
	Quantity    int
}

// Address is the ship-from address of a label request.
type Address struct {
	Name                string
	AddressLine1        string
	AddressLine2        string
	AddressLine3        string
	Email               string
	City                string
	StateOrProvinceCode string
	PostalCode          string
	CountryCode         string
	Phone               string
}

func (a Address) values() params.Values {
	return params.Values{
		"Name":                a.Name,
		"AddressLine1":        a.AddressLine1,
		"AddressLine2":        a.AddressLine2,
		"AddressLine3":        a.AddressLine3,
		"Email":               a.Email,
		"City":                a.City,
		"StateOrProvinceCode": a.StateOrProvinceCode,
		"PostalCode":          a.PostalCode,
		"CountryCode":         a.CountryCode,
		"Phone":               a.Phone,
	}
}

func (a Address) validate(field string) error {
	return params.First(
		params.Required(field+".Name", a.Name),
		params.Required(field+".AddressLine1", a.AddressLine1),
		params.Required(field+".Email", a.Email),
		params.Required(field+".City", a.City),
		params.Required(field+".PostalCode", a.PostalCode),
		params.Required(field+".CountryCode", a.CountryCode),
		params.Required(field+".Phone", a.Phone),
	)
}

// PackageDimensions are either explicit measurements or the name of a
// predefined carrier package.
type PackageDimensions struct {
	Length     float64
	Width      float64
	Height     float64
	Unit       string
	Predefined string
}

func (d PackageDimensions) values() params.Values {
	if d.Predefined != "" {
		return params.Values{"PredefinedPackageDimensions": d.Predefined}
	}
	return params.Values{
		"Length": formatFloat(d.Length),
		"Width":  formatFloat(d.Width),
		"Height": formatFloat(d.Height),
		"Unit":   d.Unit,
	}
}

// Weight is the package weight.
type Weight struct {
	Value float64
	Unit  string
}

// ShippingServiceOptions are the carrier options a label must satisfy.
type ShippingServiceOptions struct {
	DeliveryExperience DeliveryExperience
	CarrierWillPickUp  bool
	DeclaredValue      params.Money
}

// LabelCustomization adds text to the label.
type LabelCustomization struct {
	CustomTextForLabel string
	StandardIDForLabel string
}

// ShipmentRequestDetails describe the package a label is bought for. It is
// shared by GetEligibleShippingServices and CreateShipment.
type ShipmentRequestDetails struct {
	AmazonOrderID          string
	SellerOrderID          string
	Items                  []Item
	ShipFromAddress        Address
	PackageDimensions      PackageDimensions
	Weight                 Weight
	MustArriveByDate       time.Time
	ShipDate               time.Time
	ShippingServiceOptions ShippingServiceOptions
	LabelCustomization     LabelCustomization
}

func (d ShipmentRequestDetails) validate() error {
	if err := params.First(
		params.Required(detailsPrefix+".AmazonOrderId", d.AmazonOrderID),
		d.ShipFromAddress.validate(detailsPrefix+".ShipFromAddress"),
		params.Required(
			detailsPrefix+".ShippingServiceOptions.DeliveryExperience",
			string(d.ShippingServiceOptions.DeliveryExperience),
		),
	); err != nil {
		return err
	}
	if len(d.Items) == 0 {
		return params.Missing(detailsPrefix + ".ItemList")
	}
	for i, it := range d.Items {
		field := detailsPrefix + ".ItemList.Item." + strconv.Itoa(i+1)
		if err := params.First(
			params.Required(field+".OrderItemId", it.OrderItemID),
			params.RequiredPositive(field+".Quantity", it.Quantity),
		); err != nil {
			return err
		}
	}
	if d.Weight.Value <= 0 {
		return params.Invalid(detailsPrefix+".Weight.Value", "must be positive")
	}
	if d.PackageDimensions.Predefined == "" && d.PackageDimensions.Unit == "" {
		return params.Invalid(
			detailsPrefix+".PackageDimensions",
			"either Predefined or Length, Width, Height and Unit are required",
		)
	}
	if dv := d.ShippingServiceOptions.DeclaredValue; !dv.IsZero() {
		return dv.Validate(detailsPrefix + ".ShippingServiceOptions.DeclaredValue")
	}
	return nil
}

func (d ShipmentRequestDetails) values() params.Values {
	items := make([]params.Values, len(d.Items))
	for i, it := range d.Items {
		items[i] = params.Values{
			"OrderItemId": it.OrderItemID,
			"Quantity":    strconv.Itoa(it.Quantity),
		}
	}

	opts := d.ShippingServiceOptions
	options := params.Values{
		"DeliveryExperience": string(opts.DeliveryExperience),
		"CarrierWillPickUp":  params.FormatBool(opts.CarrierWillPickUp),
	}
	options.SetMoney("DeclaredValue", "Amount", opts.DeclaredValue)

	p := params.Values{}
	p.Set(detailsPrefix+".AmazonOrderId", d.AmazonOrderID)
	p.Set(detailsPrefix+".SellerOrderId", d.SellerOrderID)
	p.SetTime(detailsPrefix+".MustArriveByDate", d.MustArriveByDate)
	p.SetTime(detailsPrefix+".ShipDate", d.ShipDate)
	return p.Merge(
		params.EnumerateKeyed(detailsPrefix+".ItemList.Item", items),
		params.DictKeyed(detailsPrefix+".ShipFromAddress", d.ShipFromAddress.values()),
		params.DictKeyed(detailsPrefix+".PackageDimensions", d.PackageDimensions.values()),
		params.DictKeyed(detailsPrefix+".Weight", params.Values{
			"Value": formatFloat(d.Weight.Value),
			"Unit":  d.Weight.Unit,
		}),
		params.DictKeyed(detailsPrefix+".ShippingServiceOptions", options),
		params.DictKeyed(detailsPrefix+".LabelCustomization", params.Values{
			"CustomTextForLabel": d.LabelCustomization.CustomTextForLabel,
			"StandardIdForLabel": d.LabelCustomization.StandardIDForLabel,
		}),
	)
}

// GetEligibleShippingServicesInput asks which carrier services can ship a
// package.
type GetEligibleShippingServicesInput struct {
	Details ShipmentRequestDetails
}

// Params builds the GetEligibleShippingServices parameters.
func (in GetEligibleShippingServicesInput) Params() (params.Values, error) {
	if err := in.Details.validate(); err != nil {
		return nil, err
	}
	return params.New(ActionGetEligibleShippingServices).Merge(in.Details.values()), nil
}

// GetEligibleShippingServices lists the shipping services offered for a
// package.
func (a *API) GetEligibleShippingServices(
	ctx context.Context,
	in GetEligibleShippingServicesInput,
) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

// CreateShipmentInput buys a label for the service ShippingServiceID.
type CreateShipmentInput struct {
	Details                ShipmentRequestDetails
	ShippingServiceID      string
	ShippingServiceOfferID string
	HazmatType             HazmatType
}

// Params builds the CreateShipment parameters.
func (in CreateShipmentInput) Params() (params.Values, error) {
	if err := params.First(
		in.Details.validate(),
		params.Required("ShippingServiceId", in.ShippingServiceID),
	); err != nil {
		return nil, err
	}
	p := params.New(ActionCreateShipment)
	p.Set("ShippingServiceId", in.ShippingServiceID)
	p.Set("ShippingServiceOfferId", in.ShippingServiceOfferID)
	p.Set("HazmatType", string(in.HazmatType))
	return p.Merge(in.Details.values()), nil
}

// CreateShipment buys a shipping label.
func (a *API) CreateShipment(ctx context.Context, in CreateShipmentInput) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

// ShipmentInput names a shipment created by CreateShipment.
type ShipmentInput struct {
	Action     string
	ShipmentID string
}

// Params builds the parameters of in.Action.
func (in ShipmentInput) Params() (params.Values, error) {
	if err := params.Required("ShipmentId", in.ShipmentID); err != nil {
		return nil, err
	}
	p := params.New(in.Action)
	p.Set("ShipmentId", in.ShipmentID)
	return p, nil
}

// GetShipment returns an existing shipment and its label.
func (a *API) GetShipment(ctx context.Context, shipmentID string) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, ShipmentInput{Action: ActionGetShipment, ShipmentID: shipmentID})
}

// CancelShipment cancels a shipment and refunds its label.
func (a *API) CancelShipment(ctx context.Context, shipmentID string) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, ShipmentInput{Action: ActionCancelShipment, ShipmentID: shipmentID})
}

func formatFloat(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
