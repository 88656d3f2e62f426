// Package payments implements the MWS Off-Amazon Payments API section
// (Amazon Pay): order references, authorizations, captures and refunds.
package payments

import (
	"context"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
	"github.com/donaldgifford/amazon-mws/pkg/params"
)

// Section is the Off-Amazon Payments API section.
var Section = mws.Section{
	Name:        "OffAmazonPayments",
	Path:        "/OffAmazonPayments/2013-01-01",
	Version:     "2013-01-01",
	AccountType: mws.AccountSeller,
}

// Operation names.
const (
	ActionGetOrderReferenceDetails = "GetOrderReferenceDetails"
	ActionSetOrderReferenceDetails = "SetOrderReferenceDetails"
	ActionConfirmOrderReference    = "ConfirmOrderReference"
	ActionCancelOrderReference     = "CancelOrderReference"
	ActionCloseOrderReference      = "CloseOrderReference"
	ActionAuthorize                = "Authorize"
	ActionGetAuthorizationDetails  = "GetAuthorizationDetails"
	ActionCloseAuthorization       = "CloseAuthorization"
	ActionCapture                  = "Capture"
	ActionGetCaptureDetails        = "GetCaptureDetails"
	ActionRefund                   = "Refund"
	ActionGetRefundDetails         = "GetRefundDetails"
)

// Field limits enforced by the service.
const (
	maxReferenceIDLength    = 32
	maxSoftDescriptorLength = 16
	maxNoteLength           = 255
	maxSellerNoteLength     = 1024
	maxTransactionTimeout   = 1440
)

// Identifier parameter names.
const (
	keyOrderReferenceID = "AmazonOrderReferenceId"
	keyAuthorizationID  = "AmazonAuthorizationId"
	keyCaptureID        = "AmazonCaptureId"
	keyRefundID         = "AmazonRefundId"
)

// API sends Off-Amazon Payments operations through a Doer.
type API struct {
	doer mws.Doer
}

// New creates an Off-Amazon Payments API over d.
func New(d mws.Doer) *API {
	return &API{doer: d}
}

// GetServiceStatus returns the operational status of the section.
func (a *API) GetServiceStatus(ctx context.Context) (*mws.Response, error) {
	return mws.ServiceStatus(ctx, a.doer, Section)
}

// idInput is an operation that takes one object id and an optional reason.
type idInput struct {
	action    string
	idKey     string
	id        string
	reasonKey string
	reason    string
}

func (in idInput) Params() (params.Values, error) {
	if err := params.Required(in.idKey, in.id); err != nil {
		return nil, err
	}
	if len(in.reason) > maxNoteLength {
		return nil, tooLong(in.reasonKey, maxNoteLength, in.reason)
	}
	p := params.New(in.action)
	p.Set(in.idKey, in.id)
	if in.reasonKey != "" {
		p.Set(in.reasonKey, in.reason)
	}
	return p, nil
}

func (a *API) call(ctx context.Context, in mws.Builder) (*mws.Response, error) {
	return mws.Call(ctx, a.doer, Section, in)
}

func tooLong(field string, limit int, s string) error {
	return params.Invalid(field, "must be at most %d characters (got %d)", limit, len(s))
}

func checkLength(field string, limit int, s string) error {
	if len(s) > limit {
		return tooLong(field, limit, s)
	}
	return nil
}

// GetOrderReferenceDetailsInput fetches an order reference. AccessToken
// releases the full buyer address when the buyer consented to share it.
type GetOrderReferenceDetailsInput struct {
	OrderReferenceID string
	AccessToken      string
}

// Params builds the GetOrderReferenceDetails parameters.
func (in GetOrderReferenceDetailsInput) Params() (params.Values, error) {
	if err := params.Required(keyOrderReferenceID, in.OrderReferenceID); err != nil {
		return nil, err
	}
	p := params.New(ActionGetOrderReferenceDetails)
	p.Set(keyOrderReferenceID, in.OrderReferenceID)
	p.Set("AddressConsentToken", in.AccessToken)
	return p, nil
}

// GetOrderReferenceDetails returns the details of an order reference.
func (a *API) GetOrderReferenceDetails(
	ctx context.Context,
	in GetOrderReferenceDetailsInput,
) (*mws.Response, error) {
	return a.call(ctx, in)
}

// SetOrderReferenceDetailsInput sets the order total and seller metadata
// on a draft order reference.
type SetOrderReferenceDetailsInput struct {
	OrderReferenceID  string
	OrderTotal        params.Money
	SellerNote        string
	SellerOrderID     string
	StoreName         string
	CustomInformation string
}

// Params builds the SetOrderReferenceDetails parameters.
func (in SetOrderReferenceDetailsInput) Params() (params.Values, error) {
	const attrs = "OrderReferenceAttributes"
	if err := params.First(
		params.Required(keyOrderReferenceID, in.OrderReferenceID),
		in.OrderTotal.Validate(attrs+".OrderTotal"),
		checkLength(attrs+".SellerNote", maxSellerNoteLength, in.SellerNote),
	); err != nil {
		return nil, err
	}
	p := params.New(ActionSetOrderReferenceDetails)
	p.Set(keyOrderReferenceID, in.OrderReferenceID)
	p.SetMoney(attrs+".OrderTotal", "Amount", in.OrderTotal)
	p.Set(attrs+".SellerNote", in.SellerNote)
	return p.Merge(params.DictKeyed(attrs+".SellerOrderAttributes", params.Values{
		"SellerOrderId":     in.SellerOrderID,
		"StoreName":         in.StoreName,
		"CustomInformation": in.CustomInformation,
	})), nil
}

// SetOrderReferenceDetails updates a draft order reference.
func (a *API) SetOrderReferenceDetails(
	ctx context.Context,
	in SetOrderReferenceDetailsInput,
) (*mws.Response, error) {
	return a.call(ctx, in)
}

// ConfirmOrderReference moves an order reference from Draft to Open.
func (a *API) ConfirmOrderReference(ctx context.Context, orderReferenceID string) (*mws.Response, error) {
	return a.call(ctx, idInput{
		action: ActionConfirmOrderReference,
		idKey:  keyOrderReferenceID,
		id:     orderReferenceID,
	})
}

// CancelOrderReference cancels an order reference that has no completed
// captures.
func (a *API) CancelOrderReference(
	ctx context.Context,
	orderReferenceID, reason string,
) (*mws.Response, error) {
	return a.call(ctx, idInput{
		action:    ActionCancelOrderReference,
		idKey:     keyOrderReferenceID,
		id:        orderReferenceID,
		reasonKey: "CancelationReason",
		reason:    reason,
	})
}

// CloseOrderReference closes an order reference to new authorizations.
func (a *API) CloseOrderReference(
	ctx context.Context,
	orderReferenceID, reason string,
) (*mws.Response, error) {
	return a.call(ctx, idInput{
		action:    ActionCloseOrderReference,
		idKey:     keyOrderReferenceID,
		id:        orderReferenceID,
		reasonKey: "ClosureReason",
		reason:    reason,
	})
}

// AuthorizeInput reserves Amount against an order reference.
// AuthorizationReferenceID is the seller's unique id for the request.
// A zero TransactionTimeout leaves the service default of 1440 minutes.
// SynchronousOnly sends a timeout of 0, which makes the decision synchronous.
type AuthorizeInput struct {
	OrderReferenceID         string
	AuthorizationReferenceID string
	Amount                   params.Money
	SellerAuthorizationNote  string
	TransactionTimeout       int
	SynchronousOnly          bool
	CaptureNow               *bool
	SoftDescriptor           string
}

// Params builds the Authorize parameters.
func (in AuthorizeInput) Params() (params.Values, error) {
	if err := params.First(
		params.Required(keyOrderReferenceID, in.OrderReferenceID),
		params.Required("AuthorizationReferenceId", in.AuthorizationReferenceID),
		checkLength("AuthorizationReferenceId", maxReferenceIDLength, in.AuthorizationReferenceID),
		in.Amount.Validate("AuthorizationAmount"),
		checkLength("SellerAuthorizationNote", maxNoteLength, in.SellerAuthorizationNote),
		checkLength("SoftDescriptor", maxSoftDescriptorLength, in.SoftDescriptor),
	); err != nil {
		return nil, err
	}
	if in.TransactionTimeout < 0 || in.TransactionTimeout > maxTransactionTimeout || in.TransactionTimeout%5 != 0 {
		return nil, params.Invalid(
			"TransactionTimeout",
			"must be a multiple of 5 between 0 and %d (got %d)",
			maxTransactionTimeout,
			in.TransactionTimeout,
		)
	}
	p := params.New(ActionAuthorize)
	p.Set(keyOrderReferenceID, in.OrderReferenceID)
	p.Set("AuthorizationReferenceId", in.AuthorizationReferenceID)
	p.SetMoney("AuthorizationAmount", "Amount", in.Amount)
	p.Set("SellerAuthorizationNote", in.SellerAuthorizationNote)
	if in.SynchronousOnly {
		p["TransactionTimeout"] = "0"
	} else {
		p.SetInt("TransactionTimeout", in.TransactionTimeout)
	}
	p.SetBool("CaptureNow", in.CaptureNow)
	p.Set("SoftDescriptor", in.SoftDescriptor)
	return p, nil
}

// Authorize reserves funds on the buyer's payment method.
func (a *API) Authorize(ctx context.Context, in AuthorizeInput) (*mws.Response, error) {
	return a.call(ctx, in)
}

// GetAuthorizationDetails returns the status of an authorization.
func (a *API) GetAuthorizationDetails(ctx context.Context, authorizationID string) (*mws.Response, error) {
	return a.call(ctx, idInput{
		action: ActionGetAuthorizationDetails,
		idKey:  keyAuthorizationID,
		id:     authorizationID,
	})
}

// CloseAuthorization closes an open authorization.
func (a *API) CloseAuthorization(
	ctx context.Context,
	authorizationID, reason string,
) (*mws.Response, error) {
	return a.call(ctx, idInput{
		action:    ActionCloseAuthorization,
		idKey:     keyAuthorizationID,
		id:        authorizationID,
		reasonKey: "ClosureReason",
		reason:    reason,
	})
}

// CaptureInput captures Amount from an authorization.
type CaptureInput struct {
	AuthorizationID    string
	CaptureReferenceID string
	Amount             params.Money
	SellerCaptureNote  string
	SoftDescriptor     string
}

// Params builds the Capture parameters.
func (in CaptureInput) Params() (params.Values, error) {
	if err := params.First(
		params.Required(keyAuthorizationID, in.AuthorizationID),
		params.Required("CaptureReferenceId", in.CaptureReferenceID),
		checkLength("CaptureReferenceId", maxReferenceIDLength, in.CaptureReferenceID),
		in.Amount.Validate("CaptureAmount"),
		checkLength("SellerCaptureNote", maxNoteLength, in.SellerCaptureNote),
		checkLength("SoftDescriptor", maxSoftDescriptorLength, in.SoftDescriptor),
	); err != nil {
		return nil, err
	}
	p := params.New(ActionCapture)
	p.Set(keyAuthorizationID, in.AuthorizationID)
	p.Set("CaptureReferenceId", in.CaptureReferenceID)
	p.SetMoney("CaptureAmount", "Amount", in.Amount)
	p.Set("SellerCaptureNote", in.SellerCaptureNote)
	p.Set("SoftDescriptor", in.SoftDescriptor)
	return p, nil
}

// Capture moves authorized funds to the seller.
func (a *API) Capture(ctx context.Context, in CaptureInput) (*mws.Response, error) {
	return a.call(ctx, in)
}

// GetCaptureDetails returns the status of a capture.
func (a *API) GetCaptureDetails(ctx context.Context, captureID string) (*mws.Response, error) {
	return a.call(ctx, idInput{action: ActionGetCaptureDetails, idKey: keyCaptureID, id: captureID})
}

// RefundInput refunds Amount of a capture.
type RefundInput struct {
	CaptureID         string
	RefundReferenceID string
	Amount            params.Money
	SellerRefundNote  string
	SoftDescriptor    string
}

// Params builds the Refund parameters.
func (in RefundInput) Params() (params.Values, error) {
	if err := params.First(
		params.Required(keyCaptureID, in.CaptureID),
		params.Required("RefundReferenceId", in.RefundReferenceID),
		checkLength("RefundReferenceId", maxReferenceIDLength, in.RefundReferenceID),
		in.Amount.Validate("RefundAmount"),
		checkLength("SellerRefundNote", maxNoteLength, in.SellerRefundNote),
		checkLength("SoftDescriptor", maxSoftDescriptorLength, in.SoftDescriptor),
	); err != nil {
		return nil, err
	}
	p := params.New(ActionRefund)
	p.Set(keyCaptureID, in.CaptureID)
	p.Set("RefundReferenceId", in.RefundReferenceID)
	p.SetMoney("RefundAmount", "Amount", in.Amount)
	p.Set("SellerRefundNote", in.SellerRefundNote)
	p.Set("SoftDescriptor", in.SoftDescriptor)
	return p, nil
}

// Refund returns captured funds to the buyer.
func (a *API) Refund(ctx context.Context, in RefundInput) (*mws.Response, error) {
	return a.call(ctx, in)
}

// GetRefundDetails returns the status of a refund.
func (a *API) GetRefundDetails(ctx context.Context, refundID string) (*mws.Response, error) {
	return a.call(ctx, idInput{action: ActionGetRefundDetails, idKey: keyRefundID, id: refundID})
}
