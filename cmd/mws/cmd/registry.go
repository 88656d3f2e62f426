package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-json"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
	"github.com/donaldgifford/amazon-mws/pkg/mws/feeds"
	"github.com/donaldgifford/amazon-mws/pkg/mws/finances"
	"github.com/donaldgifford/amazon-mws/pkg/mws/inbound"
	"github.com/donaldgifford/amazon-mws/pkg/mws/inventory"
	"github.com/donaldgifford/amazon-mws/pkg/mws/merchantfulfillment"
	"github.com/donaldgifford/amazon-mws/pkg/mws/orders"
	"github.com/donaldgifford/amazon-mws/pkg/mws/outbound"
	"github.com/donaldgifford/amazon-mws/pkg/mws/payments"
	"github.com/donaldgifford/amazon-mws/pkg/mws/products"
	"github.com/donaldgifford/amazon-mws/pkg/mws/recommendations"
	"github.com/donaldgifford/amazon-mws/pkg/mws/reports"
	"github.com/donaldgifford/amazon-mws/pkg/mws/sellers"
	"github.com/donaldgifford/amazon-mws/pkg/params"
)

// request is what the command line supplies to an operation: the JSON
// encoded input and, for SubmitFeed, the feed document.
type request struct {
	input []byte
	body  []byte
}

// operation runs one MWS action from a request. pages is nil for actions
// without a ByNextToken continuation.
type operation struct {
	run   func(ctx context.Context, d mws.Doer, req request) (*mws.Response, error)
	pages func(d mws.Doer, req request) (mws.Pager, error)
}

func (op operation) paginated() bool {
	return op.pages != nil
}

type group struct {
	section    mws.Section
	operations map[string]operation
}

// paramsFunc adapts a SKUParams/ASINParams style method value to
// mws.Builder.
type paramsFunc func() (params.Values, error)

func (f paramsFunc) Params() (params.Values, error) {
	return f()
}

func decode[T any](req request) (T, error) {
	var in T
	if len(req.input) == 0 {
		return in, nil
	}
	if err := json.Unmarshal(req.input, &in); err != nil {
		return in, fmt.Errorf("decoding input: %w", err)
	}
	return in, nil
}

// method runs fn with the decoded input.
func method[T any](fn func(ctx context.Context, d mws.Doer, in T) (*mws.Response, error)) operation {
	return operation{
		run: func(ctx context.Context, d mws.Doer, req request) (*mws.Response, error) {
			in, err := decode[T](req)
			if err != nil {
				return nil, err
			}
			return fn(ctx, d, in)
		},
	}
}

// build sends the Builder pick derives from the decoded input.
func build[T any](section mws.Section, pick func(T) mws.Builder) operation {
	return method(func(ctx context.Context, d mws.Doer, in T) (*mws.Response, error) {
		return mws.Call(ctx, d, section, pick(in))
	})
}

func call[T mws.Builder](section mws.Section) operation {
	return build(section, func(in T) mws.Builder { return in })
}

// paged is call plus a Pager following the ByNextToken chain of action.
func paged[T mws.Builder](section mws.Section, action string) operation {
	op := call[T](section)
	op.pages = func(d mws.Doer, req request) (mws.Pager, error) {
		in, err := decode[T](req)
		if err != nil {
			return nil, err
		}
		return mws.Pages(d, section, action, in), nil
	}
	return op
}

type idArgs struct {
	ID     string
	Reason string
}

func paymentsID(fn func(*payments.API, context.Context, string) (*mws.Response, error)) operation {
	return method(func(ctx context.Context, d mws.Doer, in idArgs) (*mws.Response, error) {
		return fn(payments.New(d), ctx, in.ID)
	})
}

func paymentsReason(
	fn func(*payments.API, context.Context, string, string) (*mws.Response, error),
) operation {
	return method(func(ctx context.Context, d mws.Doer, in idArgs) (*mws.Response, error) {
		return fn(payments.New(d), ctx, in.ID, in.Reason)
	})
}

func inboundShipment(action string) operation {
	return build(inbound.Section, func(in inbound.ShipmentInput) mws.Builder {
		in.Action = action
		return in
	})
}

func mfnShipment(action string) operation {
	return build(merchantfulfillment.Section, func(in merchantfulfillment.ShipmentInput) mws.Builder {
		in.Action = action
		return in
	})
}

func fulfillmentOrder(action string) operation {
	return build(outbound.Section, func(in outbound.OrderInput) mws.Builder {
		in.Action = action
		return in
	})
}

func productList(action string) operation {
	return build(products.Section, func(in products.ListInput) mws.Builder {
		in.Action = action
		return in
	})
}

// submitFeed reads the feed document from the request body when one is
// given, falling back to the Feed field of the input.
func submitFeed() operation {
	return operation{
		run: func(ctx context.Context, d mws.Doer, req request) (*mws.Response, error) {
			in, err := decode[feeds.SubmitFeedInput](req)
			if err != nil {
				return nil, err
			}
			if len(req.body) > 0 {
				in.Feed = req.body
			}
			return feeds.New(d).SubmitFeed(ctx, in)
		},
	}
}

var sections = map[string]group{
	"feeds": {
		section: feeds.Section,
		operations: map[string]operation{
			feeds.ActionSubmitFeed:              submitFeed(),
			feeds.ActionGetFeedSubmissionList:   paged[feeds.GetFeedSubmissionListInput](feeds.Section, feeds.ActionGetFeedSubmissionList),
			feeds.ActionGetFeedSubmissionCount:  call[feeds.GetFeedSubmissionCountInput](feeds.Section),
			feeds.ActionCancelFeedSubmissions:   call[feeds.CancelFeedSubmissionsInput](feeds.Section),
			feeds.ActionGetFeedSubmissionResult: call[feeds.GetFeedSubmissionResultInput](feeds.Section),
		},
	},
	"finances": {
		section: finances.Section,
		operations: map[string]operation{
			finances.ActionListFinancialEventGroups: paged[finances.ListFinancialEventGroupsInput](
				finances.Section, finances.ActionListFinancialEventGroups,
			),
			finances.ActionListFinancialEvents: paged[finances.ListFinancialEventsInput](
				finances.Section, finances.ActionListFinancialEvents,
			),
		},
	},
	"inbound": {
		section: inbound.Section,
		operations: map[string]operation{
			inbound.ActionListInboundShipments: paged[inbound.ListInboundShipmentsInput](
				inbound.Section, inbound.ActionListInboundShipments,
			),
			inbound.ActionListInboundShipmentItems: paged[inbound.ListInboundShipmentItemsInput](
				inbound.Section, inbound.ActionListInboundShipmentItems,
			),
			inbound.ActionGetPrepInstructionsForSKU: build(inbound.Section, func(in inbound.PrepInstructionsInput) mws.Builder {
				return paramsFunc(in.SKUParams)
			}),
			inbound.ActionGetPrepInstructionsForASIN: build(inbound.Section, func(in inbound.PrepInstructionsInput) mws.Builder {
				return paramsFunc(in.ASINParams)
			}),
			inbound.ActionGetInboundGuidanceForSKU: build(inbound.Section, func(in inbound.InboundGuidanceInput) mws.Builder {
				return paramsFunc(in.SKUParams)
			}),
			inbound.ActionGetInboundGuidanceForASIN: build(inbound.Section, func(in inbound.InboundGuidanceInput) mws.Builder {
				return paramsFunc(in.ASINParams)
			}),
			inbound.ActionCreateInboundShipmentPlan: call[inbound.CreateInboundShipmentPlanInput](inbound.Section),
			inbound.ActionCreateInboundShipment:     call[inbound.CreateInboundShipmentInput](inbound.Section),
			inbound.ActionUpdateInboundShipment:     call[inbound.UpdateInboundShipmentInput](inbound.Section),
			inbound.ActionGetTransportContent:       inboundShipment(inbound.ActionGetTransportContent),
			inbound.ActionEstimateTransportRequest:  inboundShipment(inbound.ActionEstimateTransportRequest),
			inbound.ActionConfirmTransportRequest:   inboundShipment(inbound.ActionConfirmTransportRequest),
			inbound.ActionVoidTransportRequest:      inboundShipment(inbound.ActionVoidTransportRequest),
			inbound.ActionGetBillOfLading:           inboundShipment(inbound.ActionGetBillOfLading),
			inbound.ActionGetPackageLabels:          call[inbound.PackageLabelsInput](inbound.Section),
			inbound.ActionGetUniquePackageLabels:    call[inbound.UniquePackageLabelsInput](inbound.Section),
			inbound.ActionGetPalletLabels:           call[inbound.PalletLabelsInput](inbound.Section),
		},
	},
	"inventory": {
		section: inventory.Section,
		operations: map[string]operation{
			inventory.ActionListInventorySupply: paged[inventory.ListInventorySupplyInput](
				inventory.Section, inventory.ActionListInventorySupply,
			),
		},
	},
	"merchantfulfillment": {
		section: merchantfulfillment.Section,
		operations: map[string]operation{
			merchantfulfillment.ActionGetEligibleShippingServices: call[merchantfulfillment.GetEligibleShippingServicesInput](
				merchantfulfillment.Section,
			),
			merchantfulfillment.ActionCreateShipment: call[merchantfulfillment.CreateShipmentInput](merchantfulfillment.Section),
			merchantfulfillment.ActionGetShipment:    mfnShipment(merchantfulfillment.ActionGetShipment),
			merchantfulfillment.ActionCancelShipment: mfnShipment(merchantfulfillment.ActionCancelShipment),
		},
	},
	"orders": {
		section: orders.Section,
		operations: map[string]operation{
			orders.ActionListOrders:     paged[orders.ListOrdersInput](orders.Section, orders.ActionListOrders),
			orders.ActionGetOrder:       call[orders.GetOrderInput](orders.Section),
			orders.ActionListOrderItems: paged[orders.ListOrderItemsInput](orders.Section, orders.ActionListOrderItems),
		},
	},
	"outbound": {
		section: outbound.Section,
		operations: map[string]operation{
			outbound.ActionGetFulfillmentPreview:  call[outbound.GetFulfillmentPreviewInput](outbound.Section),
			outbound.ActionCreateFulfillmentOrder: call[outbound.CreateFulfillmentOrderInput](outbound.Section),
			outbound.ActionGetFulfillmentOrder:    fulfillmentOrder(outbound.ActionGetFulfillmentOrder),
			outbound.ActionCancelFulfillmentOrder: fulfillmentOrder(outbound.ActionCancelFulfillmentOrder),
			outbound.ActionListAllFulfillmentOrders: paged[outbound.ListAllFulfillmentOrdersInput](
				outbound.Section, outbound.ActionListAllFulfillmentOrders,
			),
			outbound.ActionGetPackageTrackingDetails: call[outbound.PackageTrackingInput](outbound.Section),
			outbound.ActionListReturnReasonCodes:     call[outbound.ListReturnReasonCodesInput](outbound.Section),
		},
	},
	"payments": {
		section: payments.Section,
		operations: map[string]operation{
			payments.ActionGetOrderReferenceDetails: call[payments.GetOrderReferenceDetailsInput](payments.Section),
			payments.ActionSetOrderReferenceDetails: call[payments.SetOrderReferenceDetailsInput](payments.Section),
			payments.ActionConfirmOrderReference:    paymentsID((*payments.API).ConfirmOrderReference),
			payments.ActionCancelOrderReference:     paymentsReason((*payments.API).CancelOrderReference),
			payments.ActionCloseOrderReference:      paymentsReason((*payments.API).CloseOrderReference),
			payments.ActionAuthorize:                call[payments.AuthorizeInput](payments.Section),
			payments.ActionGetAuthorizationDetails:  paymentsID((*payments.API).GetAuthorizationDetails),
			payments.ActionCloseAuthorization:       paymentsReason((*payments.API).CloseAuthorization),
			payments.ActionCapture:                  call[payments.CaptureInput](payments.Section),
			payments.ActionGetCaptureDetails:        paymentsID((*payments.API).GetCaptureDetails),
			payments.ActionRefund:                   call[payments.RefundInput](payments.Section),
			payments.ActionGetRefundDetails:         paymentsID((*payments.API).GetRefundDetails),
		},
	},
	"products": {
		section: products.Section,
		operations: map[string]operation{
			products.ActionListMatchingProducts:          call[products.ListMatchingProductsInput](products.Section),
			products.ActionGetMatchingProduct:            call[products.GetMatchingProductInput](products.Section),
			products.ActionGetMatchingProductForID:       call[products.GetMatchingProductForIDInput](products.Section),
			products.ActionGetCompetitivePricingForSKU:   productList(products.ActionGetCompetitivePricingForSKU),
			products.ActionGetCompetitivePricingForASIN:  productList(products.ActionGetCompetitivePricingForASIN),
			products.ActionGetLowestOfferListingsForSKU:  productList(products.ActionGetLowestOfferListingsForSKU),
			products.ActionGetLowestOfferListingsForASIN: productList(products.ActionGetLowestOfferListingsForASIN),
			products.ActionGetMyPriceForSKU:              productList(products.ActionGetMyPriceForSKU),
			products.ActionGetMyPriceForASIN:             productList(products.ActionGetMyPriceForASIN),
			products.ActionGetLowestPricedOffersForSKU: build(products.Section, func(in products.LowestPricedOffersInput) mws.Builder {
				return paramsFunc(in.SKUParams)
			}),
			products.ActionGetLowestPricedOffersForASIN: build(products.Section, func(in products.LowestPricedOffersInput) mws.Builder {
				return paramsFunc(in.ASINParams)
			}),
			products.ActionGetProductCategoriesForSKU: build(products.Section, func(in products.ProductCategoriesInput) mws.Builder {
				return paramsFunc(in.SKUParams)
			}),
			products.ActionGetProductCategoriesForASIN: build(products.Section, func(in products.ProductCategoriesInput) mws.Builder {
				return paramsFunc(in.ASINParams)
			}),
			products.ActionGetMyFeesEstimate: call[products.GetMyFeesEstimateInput](products.Section),
		},
	},
	"recommendations": {
		section: recommendations.Section,
		operations: map[string]operation{
			recommendations.ActionGetLastUpdatedTimeForRecommendations: call[recommendations.GetLastUpdatedTimeForRecommendationsInput](
				recommendations.Section,
			),
			recommendations.ActionListRecommendations: paged[recommendations.ListRecommendationsInput](
				recommendations.Section, recommendations.ActionListRecommendations,
			),
		},
	},
	"reports": {
		section: reports.Section,
		operations: map[string]operation{
			reports.ActionRequestReport: call[reports.RequestReportInput](reports.Section),
			reports.ActionGetReportRequestList: paged[reports.GetReportRequestListInput](
				reports.Section, reports.ActionGetReportRequestList,
			),
			reports.ActionGetReportRequestCount: call[reports.GetReportRequestCountInput](reports.Section),
			reports.ActionCancelReportRequests:  call[reports.CancelReportRequestsInput](reports.Section),
			reports.ActionGetReportList: paged[reports.GetReportListInput](
				reports.Section, reports.ActionGetReportList,
			),
			reports.ActionGetReportCount:         call[reports.GetReportCountInput](reports.Section),
			reports.ActionGetReport:              call[reports.GetReportInput](reports.Section),
			reports.ActionManageReportSchedule:   call[reports.ManageReportScheduleInput](reports.Section),
			reports.ActionGetReportScheduleList: paged[reports.GetReportScheduleListInput](
				reports.Section, reports.ActionGetReportScheduleList,
			),
			reports.ActionGetReportScheduleCount:       call[reports.GetReportScheduleCountInput](reports.Section),
			reports.ActionUpdateReportAcknowledgements: call[reports.UpdateReportAcknowledgementsInput](reports.Section),
		},
	},
	"sellers": {
		section: sellers.Section,
		operations: map[string]operation{
			sellers.ActionListMarketplaceParticipations: paged[sellers.ListMarketplaceParticipationsInput](
				sellers.Section, sellers.ActionListMarketplaceParticipations,
			),
		},
	},
}

// sectionNames returns the registry keys in sorted order.
func sectionNames() []string {
	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// operationNames returns the actions of g in sorted order.
func (g group) operationNames() []string {
	names := make([]string, 0, len(g.operations))
	for name := range g.operations {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func lookupSection(name string) (group, error) {
	g, ok := sections[strings.ToLower(name)]
	if !ok {
		return group{}, fmt.Errorf(
			"unknown section %q: must be one of %s",
			name,
			strings.Join(sectionNames(), ", "),
		)
	}
	return g, nil
}

// lookup resolves a section and action. Action names match exactly as MWS
// spells them.
func lookup(sectionName, action string) (group, operation, error) {
	g, err := lookupSection(sectionName)
	if err != nil {
		return group{}, operation{}, err
	}
	op, ok := g.operations[action]
	if !ok {
		return group{}, operation{}, fmt.Errorf(
			"unknown %s operation %q: run 'mws sections %s' to list operations",
			sectionName,
			action,
			strings.ToLower(sectionName),
		)
	}
	return g, op, nil
}
