package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vuminhhai/seaquote-backend/pkg/enums"
	pkgerrors "github.com/vuminhhai/seaquote-backend/pkg/errors"
	"github.com/vuminhhai/seaquote-backend/pkg/money"
)

// portTariff holds the port-specific constants of the disbursement account.
// Every rate in this variant is port-specific by construction, which is why
// unknown ports fail validation instead of defaulting.
type portTariff struct {
	tonnageDaily        decimal.Decimal
	navigationRate      decimal.Decimal
	pilotageBase        decimal.Decimal
	pilotDistanceNM     decimal.Decimal
	tugHourly           decimal.Decimal
	moorBase            decimal.Decimal
	moorPerMeter        decimal.Decimal
	berthHourly         decimal.Decimal
	quarantineBase      decimal.Decimal
	quarantinePerCrew   decimal.Decimal
	quarantineTransport decimal.Decimal
	overDWTLimit        int
	overDWTFixed        decimal.Decimal
	overDWTExcessRate   decimal.Decimal
	clearance           decimal.Decimal
	garbageBase         decimal.Decimal
	garbageDaily        decimal.Decimal
}

var portTariffs = map[enums.Port]portTariff{
	enums.PortHaiphong: {
		tonnageDaily:        money.MustParse("0.025"),
		navigationRate:      money.MustParse("0.12"),
		pilotageBase:        money.MustParse("400"),
		pilotDistanceNM:     money.MustParse("20"),
		tugHourly:           money.MustParse("350"),
		moorBase:            money.MustParse("200"),
		moorPerMeter:        money.MustParse("3.0"),
		berthHourly:         money.MustParse("0.018"),
		quarantineBase:      money.MustParse("300"),
		quarantinePerCrew:   money.MustParse("25"),
		quarantineTransport: money.MustParse("150"),
		overDWTLimit:        30000,
		overDWTFixed:        money.MustParse("500"),
		overDWTExcessRate:   money.MustParse("0.05"),
		clearance:           money.MustParse("530"),
		garbageBase:         money.MustParse("150"),
		garbageDaily:        money.MustParse("30"),
	},
	enums.PortHoChiMinh: {
		tonnageDaily:        money.MustParse("0.028"),
		navigationRate:      money.MustParse("0.15"),
		pilotageBase:        money.MustParse("500"),
		pilotDistanceNM:     money.MustParse("30"),
		tugHourly:           money.MustParse("450"),
		moorBase:            money.MustParse("250"),
		moorPerMeter:        money.MustParse("3.5"),
		berthHourly:         money.MustParse("0.022"),
		quarantineBase:      money.MustParse("350"),
		quarantinePerCrew:   money.MustParse("30"),
		quarantineTransport: money.MustParse("200"),
		overDWTLimit:        40000,
		overDWTFixed:        money.MustParse("600"),
		overDWTExcessRate:   money.MustParse("0.06"),
		clearance:           money.MustParse("650"),
		garbageBase:         money.MustParse("180"),
		garbageDaily:        money.MustParse("35"),
	},
}

var (
	pilotDistanceFeePerNM = money.MustParse("50")
	tugHoursPerOperation  = money.MustParse("2.5")
	twoOperations         = money.MustParse("2")
	oceanFreightTaxRate   = money.MustParse("0.05")
)

// AgencyDisbursement prices a vessel call as the full itemized disbursement
// account: thirteen ordered components, each independently rounded to
// currency scale. Used for the agency's detailed account, not the customer
// quick estimate.
func (c *Calculator) AgencyDisbursement(_ context.Context, req AgencyRequest) (*Result, error) {
	port, err := enums.ParsePort(req.PortOfCall)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "disbursement request")
	}
	tariff := portTariffs[port]

	grt := money.FromInt(int64(req.GRT))
	dwt := money.FromInt(int64(req.DWT))
	loa := decimal.NewFromFloat(req.LOA)
	stayDays := req.StayDays()
	days := money.FromInt(stayDays)
	hours := money.FromInt(stayDays * 24)

	result := newResult()
	total := decimal.Zero

	addComponent := func(step, name, description, formula string,
		inputs map[string]any, amount decimal.Decimal) {
		result.addItem(enums.ItemCategoryBasePrice, name, description, one, ptr(amount), amount)
		result.addStep(step, name, formula, inputs, nil, nil, nil, amount, nil)
		total = total.Add(amount)
	}

	// 1. Tonnage fee
	tonnageFee := money.Round2(grt.Mul(tariff.tonnageDaily).Mul(days))
	addComponent("TONNAGE_FEE", "Tonnage Fee",
		fmt.Sprintf("GRT %d × Rate × %d days", req.GRT, stayDays),
		"GRT × DAILY_RATE × STAY_DAYS",
		map[string]any{"grt": req.GRT, "rate": tariff.tonnageDaily, "days": stayDays},
		tonnageFee)

	// 2. Navigation due
	navigationDue := money.MulRound(grt, tariff.navigationRate)
	addComponent("NAVIGATION_DUE", "Navigation Due",
		fmt.Sprintf("GRT %d × Rate", req.GRT),
		"GRT × RATE",
		map[string]any{"grt": req.GRT, "rate": tariff.navigationRate},
		navigationDue)

	// 3. Pilotage: base fee + per-GRT band + fixed distance fee
	pilotRate, err := PilotageRate(req.GRT)
	if err != nil {
		return nil, err
	}
	pilotage := money.Round2(tariff.pilotageBase.
		Add(grt.Mul(pilotRate)).
		Add(tariff.pilotDistanceNM.Mul(pilotDistanceFeePerNM)))
	addComponent("PILOTAGE", "Pilotage",
		fmt.Sprintf("Base + (GRT %d × Rate) + Distance", req.GRT),
		"BASE + GRT × RATE + DISTANCE_NM × 50",
		map[string]any{"base": tariff.pilotageBase, "grt": req.GRT, "rate": pilotRate, "distance_nm": tariff.pilotDistanceNM},
		pilotage)

	// 4. Tug assistance: tug count × hourly × hours × 2 operations
	tugs, err := TugCount(req.LOA, req.DWT)
	if err != nil {
		return nil, err
	}
	tugAssistance := money.Round2(money.FromInt(int64(tugs)).
		Mul(tariff.tugHourly).
		Mul(tugHoursPerOperation).
		Mul(twoOperations))
	addComponent("TUG_ASSISTANCE", "Tug Assistance Charge",
		fmt.Sprintf("%.0fm LOA → %d tugs × 2 operations", req.LOA, tugs),
		"TUGS × HOURLY × HOURS × 2",
		map[string]any{"tugs": tugs, "hourly": tariff.tugHourly, "hours": tugHoursPerOperation},
		tugAssistance)

	// 5. Moor/unmoor, doubled for the two operations
	moorUnmoor := money.Round2(tariff.moorBase.Add(loa.Mul(tariff.moorPerMeter)).Mul(twoOperations))
	addComponent("MOOR_UNMOOR", "Moor/Unmooring Charge",
		fmt.Sprintf("%.0fm LOA × 2 operations", req.LOA),
		"(BASE + LOA × RATE) × 2",
		map[string]any{"base": tariff.moorBase, "loa": req.LOA, "rate": tariff.moorPerMeter},
		moorUnmoor)

	// 6. Berth due
	berthDue := money.Round2(dwt.Mul(tariff.berthHourly).Mul(hours))
	addComponent("BERTH_DUE", "Berth Due",
		fmt.Sprintf("DWT %d × Rate × %d hours", req.DWT, stayDays*24),
		"DWT × RATE × STAY_HOURS",
		map[string]any{"dwt": req.DWT, "rate": tariff.berthHourly, "hours": stayDays * 24},
		berthDue)

	// 7. Anchorage, zero unless waiting time is modeled
	addComponent("ANCHORAGE", "Anchorage Fees", "No waiting time", "NONE",
		map[string]any{}, decimal.Zero)

	// 8. Quarantine fee
	crew, err := EstimatedCrew(req.DWT)
	if err != nil {
		return nil, err
	}
	quarantineFee := money.Round2(tariff.quarantineBase.
		Add(money.FromInt(int64(crew)).Mul(tariff.quarantinePerCrew)))
	addComponent("QUARANTINE_FEE", "Quarantine Fee",
		fmt.Sprintf("Base + %d crew", crew),
		"BASE + CREW × PER_CREW",
		map[string]any{"base": tariff.quarantineBase, "crew": crew, "per_crew": tariff.quarantinePerCrew},
		quarantineFee)

	// 9. Ocean freight tax: 5% of the tonnage + navigation + berth subtotal
	taxBase := tonnageFee.Add(navigationDue).Add(berthDue)
	oceanFreightTax := money.MulRound(taxBase, oceanFreightTaxRate)
	addComponent("OCEAN_FREIGHT_TAX", "Ocean Freight Tax",
		"5% of base fees",
		"(TONNAGE + NAVIGATION + BERTH) × 0.05",
		map[string]any{"base_fees": taxBase, "rate": oceanFreightTaxRate},
		oceanFreightTax)

	// 10. Transport for quarantine formalities
	addComponent("QUARANTINE_TRANSPORT", "Transport for Entry Quarantine Formality",
		"Fixed fee", "FIXED",
		map[string]any{"port": port.String()},
		tariff.quarantineTransport)

	// 11. Over-deadweight berthing surcharge
	if req.DWT > tariff.overDWTLimit {
		excess := money.FromInt(int64(req.DWT - tariff.overDWTLimit))
		overDWT := money.Round2(tariff.overDWTFixed.Add(excess.Mul(tariff.overDWTExcessRate)))
		addComponent("BERTHING_OVER_DWT", "Berthing Application to B.4 (Over DWT)",
			fmt.Sprintf("DWT exceeds %d limit", tariff.overDWTLimit),
			"FIXED + EXCESS × RATE",
			map[string]any{"limit": tariff.overDWTLimit, "excess": req.DWT - tariff.overDWTLimit, "rate": tariff.overDWTExcessRate},
			overDWT)
	} else {
		addComponent("BERTHING_OVER_DWT", "Berthing Application to B.4 (Over DWT)",
			"Within limit", "NONE",
			map[string]any{"limit": tariff.overDWTLimit},
			decimal.Zero)
	}

	// 12. Clearance fees
	addComponent("CLEARANCE", "Clearance Fees",
		"Customs + Immigration + Port Authority + Certificates", "FIXED",
		map[string]any{"port": port.String()},
		tariff.clearance)

	// 13. Garbage removal
	garbageFee := money.Round2(tariff.garbageBase.Add(days.Mul(tariff.garbageDaily)))
	addComponent("GARBAGE_REMOVAL", "Garbage Removal Fee",
		fmt.Sprintf("Base + %d days", stayDays),
		"BASE + DAYS × DAILY",
		map[string]any{"base": tariff.garbageBase, "days": stayDays, "daily": tariff.garbageDaily},
		garbageFee)

	if err := result.finalize(total, decimal.Zero, decimal.Zero, decimal.Zero); err != nil {
		return nil, err
	}
	return result, nil
}
