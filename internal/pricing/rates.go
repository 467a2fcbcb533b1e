package pricing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/vuminhhai/seaquote-backend/pkg/errors"
	"github.com/vuminhhai/seaquote-backend/pkg/enums"
	"github.com/vuminhhai/seaquote-backend/pkg/money"
)

// RateKey identifies a rate by service family, fee category, optional route
// endpoints and optional size class.
type RateKey struct {
	Service  enums.ServiceType
	Category enums.RateCategory
	From     string
	To       string
	Size     string
}

// OverrideSource resolves rates from the administrable rate table. A miss is
// reported via the boolean, not an error.
type OverrideSource interface {
	ActiveRate(ctx context.Context, key RateKey, on time.Time) (decimal.Decimal, bool, error)
}

// RateOrigin records where a resolved rate came from, so fallback use can be
// written into the audit trail.
type RateOrigin string

const (
	RateOriginOverride RateOrigin = "override"
	RateOriginDefault  RateOrigin = "default"
	RateOriginFallback RateOrigin = "fallback"
)

type defaultRateKey struct {
	service  enums.ServiceType
	category enums.RateCategory
	size     string
}

// Default rates keyed by (service, category, size class) only. Route-specific
// categories have no generic default: route economics require an explicit
// override row.
var defaultRates = map[defaultRateKey]decimal.Decimal{
	{enums.ServiceTypeFreightForwarding, enums.RateCategoryOceanFreight, "20"}:    money.MustParse("300"),
	{enums.ServiceTypeFreightForwarding, enums.RateCategoryOceanFreight, "40"}:    money.MustParse("500"),
	{enums.ServiceTypeFreightForwarding, enums.RateCategoryTHC, "20"}:             money.MustParse("80"),
	{enums.ServiceTypeFreightForwarding, enums.RateCategoryTHC, "40"}:             money.MustParse("120"),
	{enums.ServiceTypeFreightForwarding, enums.RateCategoryInlandTransport, "20"}: money.MustParse("80"),
	{enums.ServiceTypeFreightForwarding, enums.RateCategoryInlandTransport, "40"}: money.MustParse("100"),
	{enums.ServiceTypeFreightForwarding, enums.RateCategoryDocumentation, ""}:     money.MustParse("230"),
	{enums.ServiceTypeShippingAgency, enums.RateCategoryPortDues, ""}:             money.MustParse("500"),
	{enums.ServiceTypeShippingAgency, enums.RateCategoryAgencyFee, ""}:            money.MustParse("800"),
	{enums.ServiceTypeShippingAgency, enums.RateCategoryPilotage, ""}:             money.MustParse("300"),
	{enums.ServiceTypeChartering, enums.RateCategoryVoyageCharter, ""}:            money.MustParse("15000"),
	{enums.ServiceTypeChartering, enums.RateCategoryBrokerage, ""}:                money.MustParse("2.5"),
}

// lastResortRate keeps a quotation computable for unmodeled inputs. Every use
// is recorded as a calculation step so it stays auditable.
var lastResortRate = money.MustParse("100")

// Rates resolves a base rate: override table first, then the compiled default
// table, then the last-resort constant.
type Rates struct {
	overrides OverrideSource
	now       func() time.Time
}

// NewRates builds a resolver. overrides may be nil, in which case only the
// default table and the last-resort constant are consulted.
func NewRates(overrides OverrideSource) *Rates {
	return &Rates{overrides: overrides, now: time.Now}
}

// Resolve returns the rate for key and its origin.
func (r *Rates) Resolve(ctx context.Context, key RateKey) (decimal.Decimal, RateOrigin, error) {
	if r.overrides != nil {
		rate, ok, err := r.overrides.ActiveRate(ctx, key, r.now())
		if err != nil {
			return decimal.Zero, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate table lookup")
		}
		if ok {
			return rate, RateOriginOverride, nil
		}
	}

	if rate, ok := defaultRates[defaultRateKey{key.Service, key.Category, key.Size}]; ok {
		return rate, RateOriginDefault, nil
	}

	if !lastResortRate.IsPositive() {
		return decimal.Zero, "", pkgerrors.New(pkgerrors.CodeUnresolvedRate,
			"no rate for "+key.Service.String()+"/"+key.Category.String())
	}
	return lastResortRate, RateOriginFallback, nil
}
