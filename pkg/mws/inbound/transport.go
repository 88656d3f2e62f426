package inbound

import (
	"context"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
	"github.com/donaldgifford/amazon-mws/pkg/params"
)

// PageType is the paper format of package and pallet labels.
type PageType string

// Label page types.
const (
	PageLetter2                  PageType = "PackageLabel_Letter_2"
	PageLetter4                  PageType = "PackageLabel_Letter_4"
	PageLetter6                  PageType = "PackageLabel_Letter_6"
	PageLetter6CarrierLeft       PageType = "PackageLabel_Letter_6_CarrierLeft"
	PageA4x2                     PageType = "PackageLabel_A4_2"
	PageA4x4                     PageType = "PackageLabel_A4_4"
	PagePlainPaper               PageType = "PackageLabel_Plain_Paper"
	PagePlainPaperCarrierBottom  PageType = "PackageLabel_Plain_Paper_CarrierBottom"
	PageThermal                  PageType = "PackageLabel_Thermal"
	PageThermalUnified           PageType = "PackageLabel_Thermal_Unified"
	PageThermalNonPCP            PageType = "PackageLabel_Thermal_NonPCP"
	PageThermalNoCarrierRotation PageType = "PackageLabel_Thermal_No_Carrier_Rotation"
)

// ShipmentInput identifies a shipment for operations that take nothing
// else: the transport calls and GetBillOfLading.
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

func (a *API) shipmentCall(ctx context.Context, action, shipmentID string) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, ShipmentInput{Action: action, ShipmentID: shipmentID})
}

// GetTransportContent returns the transport details of a shipment.
func (a *API) GetTransportContent(ctx context.Context, shipmentID string) (*mws.Response, error) {
	return a.shipmentCall(ctx, ActionGetTransportContent, shipmentID)
}

// EstimateTransportRequest asks for a partnered-carrier estimate.
func (a *API) EstimateTransportRequest(ctx context.Context, shipmentID string) (*mws.Response, error) {
	return a.shipmentCall(ctx, ActionEstimateTransportRequest, shipmentID)
}

// ConfirmTransportRequest accepts the partnered-carrier estimate.
func (a *API) ConfirmTransportRequest(ctx context.Context, shipmentID string) (*mws.Response, error) {
	return a.shipmentCall(ctx, ActionConfirmTransportRequest, shipmentID)
}

// VoidTransportRequest cancels a confirmed partnered-carrier request.
func (a *API) VoidTransportRequest(ctx context.Context, shipmentID string) (*mws.Response, error) {
	return a.shipmentCall(ctx, ActionVoidTransportRequest, shipmentID)
}

// GetBillOfLading returns the bill of lading for a less-than-truckload
// shipment.
func (a *API) GetBillOfLading(ctx context.Context, shipmentID string) (*mws.Response, error) {
	return a.shipmentCall(ctx, ActionGetBillOfLading, shipmentID)
}

// PackageLabelsInput requests labels for NumberOfPackages packages.
type PackageLabelsInput struct {
	ShipmentID       string
	PageType         PageType
	NumberOfPackages int
}

// Params builds the GetPackageLabels parameters.
func (in PackageLabelsInput) Params() (params.Values, error) {
	if err := params.First(
		params.Required("ShipmentId", in.ShipmentID),
		params.Required("PageType", string(in.PageType)),
		params.RequiredPositive("NumberOfPackages", in.NumberOfPackages),
	); err != nil {
		return nil, err
	}
	p := params.New(ActionGetPackageLabels)
	p.Set("ShipmentId", in.ShipmentID)
	p.Set("PageType", string(in.PageType))
	p.SetInt("NumberOfPackages", in.NumberOfPackages)
	return p, nil
}

// GetPackageLabels returns package labels as a base64 PDF in the response.
func (a *API) GetPackageLabels(ctx context.Context, in PackageLabelsInput) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

// UniquePackageLabelsInput requests labels for specific cartons.
type UniquePackageLabelsInput struct {
	ShipmentID string
	PageType   PageType
	PackageIDs []string
}

// Params builds the GetUniquePackageLabels parameters.
func (in UniquePackageLabelsInput) Params() (params.Values, error) {
	if err := params.First(
		params.Required("ShipmentId", in.ShipmentID),
		params.Required("PageType", string(in.PageType)),
		params.RequiredList("PackageLabelsToPrint", in.PackageIDs),
	); err != nil {
		return nil, err
	}
	p := params.New(ActionGetUniquePackageLabels)
	p.Set("ShipmentId", in.ShipmentID)
	p.Set("PageType", string(in.PageType))
	return p.Merge(params.Enumerate("PackageLabelsToPrint.member", in.PackageIDs)), nil
}

// GetUniquePackageLabels returns labels for the given carton ids.
func (a *API) GetUniquePackageLabels(
	ctx context.Context,
	in UniquePackageLabelsInput,
) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

// PalletLabelsInput requests labels for NumberOfPallets pallets.
type PalletLabelsInput struct {
	ShipmentID      string
	PageType        PageType
	NumberOfPallets int
}

// Params builds the GetPalletLabels parameters.
func (in PalletLabelsInput) Params() (params.Values, error) {
	if err := params.First(
		params.Required("ShipmentId", in.ShipmentID),
		params.Required("PageType", string(in.PageType)),
		params.RequiredPositive("NumberOfPallets", in.NumberOfPallets),
	); err != nil {
		return nil, err
	}
	p := params.New(ActionGetPalletLabels)
	p.Set("ShipmentId", in.ShipmentID)
	p.Set("PageType", string(in.PageType))
	p.SetInt("NumberOfPallets", in.NumberOfPallets)
	return p, nil
}

// GetPalletLabels returns pallet labels.
func (a *API) GetPalletLabels(ctx context.Context, in PalletLabelsInput) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}
