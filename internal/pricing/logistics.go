package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vuminhhai/seaquote-backend/pkg/enums"
	"github.com/vuminhhai/seaquote-backend/pkg/money"
)

var (
	bafRate            = money.MustParse("0.10")
	volumeDiscountRate = money.MustParse("0.05")
	logisticsTaxRate   = decimal.Zero
)

// Logistics prices a freight forwarding request. Component order is canonical:
// ocean freight per size class, THC at both ends, documentation, inland
// transport at both ends, then the BAF surcharge, the volume discount and the
// (currently zero) tax. The discount base is base price plus surcharges,
// computed before the discount is subtracted.
func (c *Calculator) Logistics(ctx context.Context, req LogisticsRequest) (*Result, error) {
	if req.Container20 < 0 {
		return nil, formulaInput("container_20", req.Container20)
	}
	if req.Container40 < 0 {
		return nil, formulaInput("container_40", req.Container40)
	}

	result := newResult()
	basePrice := decimal.Zero

	oceanFreight20, err := c.oceanFreight(ctx, result, req, enums.ContainerSize20, req.Container20)
	if err != nil {
		return nil, err
	}
	basePrice = basePrice.Add(oceanFreight20)

	oceanFreight40, err := c.oceanFreight(ctx, result, req, enums.ContainerSize40, req.Container40)
	if err != nil {
		return nil, err
	}
	basePrice = basePrice.Add(oceanFreight40)

	thcOrigin, err := c.perContainerPair(ctx, result, enums.RateCategoryTHC, "THC",
		req.LoadingPort, "ORIGIN", req.Container20, req.Container40)
	if err != nil {
		return nil, err
	}
	basePrice = basePrice.Add(thcOrigin)

	thcDest, err := c.perContainerPair(ctx, result, enums.RateCategoryTHC, "THC",
		req.DischargingPort, "DESTINATION", req.Container20, req.Container40)
	if err != nil {
		return nil, err
	}
	basePrice = basePrice.Add(thcDest)

	docKey := RateKey{Service: enums.ServiceTypeFreightForwarding, Category: enums.RateCategoryDocumentation}
	docFee, err := c.resolveRate(ctx, result, docKey)
	if err != nil {
		return nil, err
	}
	docFee = money.Round2(docFee)
	result.addItem(enums.ItemCategoryBasePrice, "Documentation Fee", "Per shipment",
		one, ptr(docFee), docFee)
	result.addStep("DOCUMENTATION", "Documentation Fee", "FIXED_RATE",
		map[string]any{"rate": docFee}, nil, ptr(docFee), nil, docFee, nil)
	basePrice = basePrice.Add(docFee)

	inlandOrigin, err := c.perContainerPair(ctx, result, enums.RateCategoryInlandTransport, "Inland Transport",
		req.LoadingPort, "ORIGIN", req.Container20, req.Container40)
	if err != nil {
		return nil, err
	}
	basePrice = basePrice.Add(inlandOrigin)

	inlandDest, err := c.perContainerPair(ctx, result, enums.RateCategoryInlandTransport, "Inland Transport",
		req.DischargingPort, "DESTINATION", req.Container20, req.Container40)
	if err != nil {
		return nil, err
	}
	basePrice = basePrice.Add(inlandDest)

	// Bunker Adjustment Factor: 10% of total ocean freight, rounded on its own.
	totalSurcharges := decimal.Zero
	oceanFreightTotal := oceanFreight20.Add(oceanFreight40)
	baf := money.MulRound(oceanFreightTotal, bafRate)
	result.addItem(enums.ItemCategorySurcharge, "BAF (10%)", "Bunker Adjustment Factor",
		one, ptr(baf), baf)
	result.addStep("SURCHARGE_BAF", "BAF", "OCEAN_FREIGHT × 0.10",
		map[string]any{"ocean_freight": oceanFreightTotal, "rate": bafRate},
		ptr(oceanFreightTotal), ptr(bafRate), nil, baf, nil)
	totalSurcharges = totalSurcharges.Add(baf)

	// Volume discount: 5% of base + surcharges. The discount base never
	// includes the discount itself.
	totalDiscounts := decimal.Zero
	if VolumeDiscountEligible(req.TotalContainers()) {
		discountBase := basePrice.Add(totalSurcharges)
		volumeDiscount := money.MulRound(discountBase, volumeDiscountRate)
		result.addItem(enums.ItemCategoryDiscount, "Volume Discount (5%)",
			fmt.Sprintf("%d containers", req.TotalContainers()),
			one, ptr(volumeDiscount.Neg()), volumeDiscount.Neg())
		result.addStep("DISCOUNT_VOLUME", "Volume Discount", "SUBTOTAL × 0.05",
			map[string]any{
				"subtotal":   discountBase,
				"containers": req.TotalContainers(),
				"rate":       volumeDiscountRate,
			},
			ptr(discountBase), ptr(volumeDiscountRate.Neg()), nil, volumeDiscount.Neg(), nil)
		totalDiscounts = totalDiscounts.Add(volumeDiscount)
	}

	// Tax is currently rated zero but the step is still emitted so the result
	// shape matches the other calculators.
	subtotal := basePrice.Add(totalSurcharges).Sub(totalDiscounts)
	taxAmount := money.MulRound(subtotal, logisticsTaxRate)
	result.addStep("TAX", "Tax", "SUBTOTAL × TAX_RATE",
		map[string]any{"subtotal": subtotal, "rate": logisticsTaxRate},
		ptr(subtotal), ptr(logisticsTaxRate), nil, taxAmount, nil)

	if err := result.finalize(basePrice, totalSurcharges, totalDiscounts, taxAmount); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Calculator) oceanFreight(ctx context.Context, result *Result, req LogisticsRequest,
	size enums.ContainerSize, quantity int) (decimal.Decimal, error) {
	if quantity == 0 {
		return decimal.Zero, nil
	}

	key := RateKey{
		Service:  enums.ServiceTypeFreightForwarding,
		Category: enums.RateCategoryOceanFreight,
		From:     req.LoadingPort,
		To:       req.DischargingPort,
		Size:     size.String(),
	}
	rate, err := c.resolveRate(ctx, result, key)
	if err != nil {
		return decimal.Zero, err
	}

	qty := money.FromInt(int64(quantity))
	total := money.MulRound(rate, qty)

	result.addItem(enums.ItemCategoryBasePrice, "Ocean Freight "+size.String()+"ft",
		fmt.Sprintf("%s to %s", req.LoadingPort, req.DischargingPort), qty, ptr(rate), total)
	result.addStep("OCEAN_FREIGHT_"+size.String(), "Container "+size.String()+"ft Rate",
		"RATE_"+size.String()+" × QTY_"+size.String(),
		map[string]any{
			"route": req.LoadingPort + "-" + req.DischargingPort,
			"rate":  rate,
			"qty":   quantity,
		},
		ptr(rate), nil, ptr(qty), total, nil)

	return total, nil
}

// perContainerPair prices a category charged per container at both size
// classes (THC, inland transport) for one end of the route.
func (c *Calculator) perContainerPair(ctx context.Context, result *Result,
	category enums.RateCategory, label, location, direction string, qty20, qty40 int) (decimal.Decimal, error) {
	key20 := RateKey{
		Service:  enums.ServiceTypeFreightForwarding,
		Category: category,
		From:     location,
		To:       direction,
		Size:     enums.ContainerSize20.String(),
	}
	rate20, err := c.resolveRate(ctx, result, key20)
	if err != nil {
		return decimal.Zero, err
	}
	key40 := key20
	key40.Size = enums.ContainerSize40.String()
	rate40, err := c.resolveRate(ctx, result, key40)
	if err != nil {
		return decimal.Zero, err
	}

	total20 := money.MulRound(rate20, money.FromInt(int64(qty20)))
	total40 := money.MulRound(rate40, money.FromInt(int64(qty40)))
	total := total20.Add(total40)

	if total.IsPositive() {
		result.addItem(enums.ItemCategoryBasePrice, fmt.Sprintf("%s %s", label, direction),
			fmt.Sprintf("%s (%d×20' + %d×40')", location, qty20, qty40),
			money.FromInt(int64(qty20+qty40)), nil, total)
		result.addStep(stepTag(category)+"_"+direction, fmt.Sprintf("%s %s", label, location),
			"RATE_20 × QTY_20 + RATE_40 × QTY_40",
			map[string]any{
				"location": location,
				"rate_20":  rate20,
				"qty_20":   qty20,
				"rate_40":  rate40,
				"qty_40":   qty40,
			},
			nil, nil, nil, total, nil)
	}

	return total, nil
}

func stepTag(category enums.RateCategory) string {
	if category == enums.RateCategoryInlandTransport {
		return "INLAND"
	}
	return category.String()
}

func (c *Calculator) resolveRate(ctx context.Context, result *Result, key RateKey) (decimal.Decimal, error) {
	rate, origin, err := c.rates.Resolve(ctx, key)
	if err != nil {
		return decimal.Zero, err
	}
	if origin == RateOriginFallback {
		result.noteFallbackRate(key, rate)
	}
	return rate, nil
}
