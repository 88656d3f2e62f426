// Package inbound implements the MWS Fulfillment Inbound Shipment API
// section: planning and creating shipments to Amazon fulfillment centers,
// prep instructions, partnered-carrier transport and labels.
//
// Most operations need the address the shipment leaves from. It can be set
// once with WithShipFromAddress or per call on the input.
package inbound

import (
	"context"
	"strconv"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
	"github.com/donaldgifford/amazon-mws/pkg/params"
)

// Section is the Fulfillment Inbound Shipment API section.
var Section = mws.Section{
	Name:        "InboundShipments",
	Path:        "/FulfillmentInboundShipment/2010-10-01",
	Version:     "2010-10-01",
	AccountType: mws.AccountSeller,
}

// Operation names.
const (
	ActionCreateInboundShipmentPlan  = "CreateInboundShipmentPlan"
	ActionCreateInboundShipment      = "CreateInboundShipment"
	ActionUpdateInboundShipment      = "UpdateInboundShipment"
	ActionGetPrepInstructionsForSKU  = "GetPrepInstructionsForSKU"
	ActionGetPrepInstructionsForASIN = "GetPrepInstructionsForASIN"
	ActionGetInboundGuidanceForSKU   = "GetInboundGuidanceForSKU"
	ActionGetInboundGuidanceForASIN  = "GetInboundGuidanceForASIN"
	ActionGetTransportContent        = "GetTransportContent"
	ActionEstimateTransportRequest   = "EstimateTransportRequest"
	ActionConfirmTransportRequest    = "ConfirmTransportRequest"
	ActionVoidTransportRequest       = "VoidTransportRequest"
	ActionGetPackageLabels           = "GetPackageLabels"
	ActionGetUniquePackageLabels     = "GetUniquePackageLabels"
	ActionGetPalletLabels            = "GetPalletLabels"
	ActionGetBillOfLading            = "GetBillOfLading"
	ActionListInboundShipments       = "ListInboundShipments"
	ActionListInboundShipmentItems   = "ListInboundShipmentItems"
)

// DefaultCountryCode is used for addresses and destinations that do not
// name a country.
const DefaultCountryCode = "US"

// Address is a ship-from address.
type Address struct {
	Name                string
	AddressLine1        string
	AddressLine2        string
	City                string
	DistrictOrCounty    string
	StateOrProvinceCode string
	CountryCode         string
	PostalCode          string
}

// Validate reports the first missing required field.
func (a Address) Validate() error {
	return params.First(
		params.Required("ShipFromAddress.Name", a.Name),
		params.Required("ShipFromAddress.AddressLine1", a.AddressLine1),
		params.Required("ShipFromAddress.City", a.City),
	)
}

func (a Address) values() params.Values {
	country := a.CountryCode
	if country == "" {
		country = DefaultCountryCode
	}
	return params.Values{
		"Name":                a.Name,
		"AddressLine1":        a.AddressLine1,
		"AddressLine2":        a.AddressLine2,
		"City":                a.City,
		"DistrictOrCounty":    a.DistrictOrCounty,
		"StateOrProvinceCode": a.StateOrProvinceCode,
		"CountryCode":         country,
		"PostalCode":          a.PostalCode,
	}
}

// LabelPrepPreference says who labels the items.
type LabelPrepPreference string

// Label prep preferences.
const (
	LabelSeller          LabelPrepPreference = "SELLER_LABEL"
	LabelAmazonOnly      LabelPrepPreference = "AMAZON_LABEL_ONLY"
	LabelAmazonPreferred LabelPrepPreference = "AMAZON_LABEL_PREFERRED"
)

// ShipmentStatus is the state of an inbound shipment.
type ShipmentStatus string

// Shipment statuses.
const (
	StatusWorking   ShipmentStatus = "WORKING"
	StatusShipped   ShipmentStatus = "SHIPPED"
	StatusInTransit ShipmentStatus = "IN_TRANSIT"
	StatusDelivered ShipmentStatus = "DELIVERED"
	StatusCheckedIn ShipmentStatus = "CHECKED_IN"
	StatusReceiving ShipmentStatus = "RECEIVING"
	StatusClosed    ShipmentStatus = "CLOSED"
	StatusCancelled ShipmentStatus = "CANCELLED"
	StatusDeleted   ShipmentStatus = "DELETED"
	StatusError     ShipmentStatus = "ERROR"
)

// API sends Inbound Shipment operations through a Doer.
type API struct {
	doer        mws.Doer
	fromAddress *Address
}

// Option configures the API.
type Option func(*API)

// WithShipFromAddress sets the address used by operations whose input does
// not carry one.
func WithShipFromAddress(addr Address) Option {
	return func(a *API) {
		a.fromAddress = &addr
	}
}

// New creates an Inbound Shipment API over d.
func New(d mws.Doer, opts ...Option) *API {
	a := &API{doer: d}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GetServiceStatus returns the operational status of the section.
func (a *API) GetServiceStatus(ctx context.Context) (*mws.Response, error) {
	return mws.ServiceStatus(ctx, a.doer, Section)
}

func (a *API) address(override *Address) *Address {
	if override != nil {
		return override
	}
	return a.fromAddress
}

// addressParams validates addr and keys it under prefix.
func addressParams(prefix string, addr *Address) (params.Values, error) {
	if addr == nil {
		return nil, params.Missing("ShipFromAddress")
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return params.DictKeyed(prefix, addr.values()), nil
}

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
