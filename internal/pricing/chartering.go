package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vuminhhai/seaquote-backend/pkg/enums"
	"github.com/vuminhhai/seaquote-backend/pkg/money"
)

var brokerageRate = money.MustParse("0.025")

// Chartering prices a voyage charter: route-keyed base rate plus a 2.5%
// brokerage fee, both base price components. No surcharges, discounts or tax.
func (c *Calculator) Chartering(ctx context.Context, req CharteringRequest) (*Result, error) {
	result := newResult()
	basePrice := decimal.Zero

	voyageRate, err := c.resolveRate(ctx, result, RateKey{
		Service:  enums.ServiceTypeChartering,
		Category: enums.RateCategoryVoyageCharter,
		From:     req.LoadingPort,
		To:       req.DischargingPort,
	})
	if err != nil {
		return nil, err
	}
	voyageRate = money.Round2(voyageRate)
	result.addItem(enums.ItemCategoryBasePrice, "Voyage Charter",
		fmt.Sprintf("%s to %s", req.LoadingPort, req.DischargingPort),
		one, ptr(voyageRate), voyageRate)
	result.addStep("VOYAGE_CHARTER", "Voyage Charter Rate", "ROUTE_BASE_RATE",
		map[string]any{"from": req.LoadingPort, "to": req.DischargingPort, "rate": voyageRate},
		ptr(voyageRate), nil, ptr(one), voyageRate, nil)
	basePrice = basePrice.Add(voyageRate)

	brokerage := money.MulRound(voyageRate, brokerageRate)
	result.addItem(enums.ItemCategoryBasePrice, "Brokerage Fee",
		"2.5% of voyage charter", one, ptr(brokerage), brokerage)
	result.addStep("BROKERAGE", "Brokerage Fee", "VOYAGE_RATE × 0.025",
		map[string]any{"voyage_rate": voyageRate, "rate": brokerageRate},
		ptr(voyageRate), ptr(brokerageRate), nil, brokerage, nil)
	basePrice = basePrice.Add(brokerage)

	if err := result.finalize(basePrice, decimal.Zero, decimal.Zero, decimal.Zero); err != nil {
		return nil, err
	}
	return result, nil
}
