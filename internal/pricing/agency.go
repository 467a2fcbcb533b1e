package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vuminhhai/seaquote-backend/pkg/enums"
	"github.com/vuminhhai/seaquote-backend/pkg/money"
)

// Agency prices a shipping agency call with the quick estimate variant: three
// base components (port dues by GRT band, agency fee by DWT band, pilotage by
// LOA band), no surcharges, discounts or tax. The itemized disbursement
// account is a separate calculator; the two serve different audiences and are
// deliberately not merged.
func (c *Calculator) Agency(ctx context.Context, req AgencyRequest) (*Result, error) {
	grtFactor, err := GRTFactor(req.GRT)
	if err != nil {
		return nil, err
	}
	dwtFactor, err := DWTFactor(req.DWT)
	if err != nil {
		return nil, err
	}
	loaFactor, err := LOAFactor(req.LOA)
	if err != nil {
		return nil, err
	}

	result := newResult()
	basePrice := decimal.Zero

	portDuesRate, err := c.resolveRate(ctx, result, RateKey{
		Service:  enums.ServiceTypeShippingAgency,
		Category: enums.RateCategoryPortDues,
	})
	if err != nil {
		return nil, err
	}
	portDues := money.MulRound(portDuesRate, grtFactor)
	result.addItem(enums.ItemCategoryBasePrice, "Port Dues",
		fmt.Sprintf("GRT %d × Factor %s", req.GRT, grtFactor), one, ptr(portDues), portDues)
	result.addStep("PORT_DUES", "Port Dues", "BASE_RATE × GRT_FACTOR",
		map[string]any{"base_rate": portDuesRate, "grt": req.GRT, "factor": grtFactor},
		ptr(portDuesRate), nil, ptr(grtFactor), portDues, nil)
	basePrice = basePrice.Add(portDues)

	agencyFeeRate, err := c.resolveRate(ctx, result, RateKey{
		Service:  enums.ServiceTypeShippingAgency,
		Category: enums.RateCategoryAgencyFee,
	})
	if err != nil {
		return nil, err
	}
	agencyFee := money.MulRound(agencyFeeRate, dwtFactor)
	result.addItem(enums.ItemCategoryBasePrice, "Agency Fee",
		fmt.Sprintf("DWT %d × Factor %s", req.DWT, dwtFactor), one, ptr(agencyFee), agencyFee)
	result.addStep("AGENCY_FEE", "Agency Fee", "BASE_RATE × DWT_FACTOR",
		map[string]any{"base_rate": agencyFeeRate, "dwt": req.DWT, "factor": dwtFactor},
		ptr(agencyFeeRate), nil, ptr(dwtFactor), agencyFee, nil)
	basePrice = basePrice.Add(agencyFee)

	pilotageRate, err := c.resolveRate(ctx, result, RateKey{
		Service:  enums.ServiceTypeShippingAgency,
		Category: enums.RateCategoryPilotage,
	})
	if err != nil {
		return nil, err
	}
	pilotage := money.MulRound(pilotageRate, loaFactor)
	result.addItem(enums.ItemCategoryBasePrice, "Pilotage Service",
		fmt.Sprintf("LOA %.1fm × Factor %s", req.LOA, loaFactor), one, ptr(pilotage), pilotage)
	result.addStep("PILOTAGE", "Pilotage", "BASE_RATE × LOA_FACTOR",
		map[string]any{"base_rate": pilotageRate, "loa": req.LOA, "factor": loaFactor},
		ptr(pilotageRate), nil, ptr(loaFactor), pilotage, nil)
	basePrice = basePrice.Add(pilotage)

	if err := result.finalize(basePrice, decimal.Zero, decimal.Zero, decimal.Zero); err != nil {
		return nil, err
	}
	return result, nil
}
