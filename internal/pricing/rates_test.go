package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vuminhhai/seaquote-backend/pkg/enums"
	pkgerrors "github.com/vuminhhai/seaquote-backend/pkg/errors"
	"github.com/vuminhhai/seaquote-backend/pkg/money"
)

type stubOverrides struct {
	activeFn func(ctx context.Context, key RateKey, on time.Time) (decimal.Decimal, bool, error)
}

func (s *stubOverrides) ActiveRate(ctx context.Context, key RateKey, on time.Time) (decimal.Decimal, bool, error) {
	if s.activeFn != nil {
		return s.activeFn(ctx, key, on)
	}
	return decimal.Zero, false, nil
}

func TestResolvePrefersOverride(t *testing.T) {
	rates := NewRates(&stubOverrides{
		activeFn: func(ctx context.Context, key RateKey, on time.Time) (decimal.Decimal, bool, error) {
			return money.MustParse("425"), true, nil
		},
	})
	rate, origin, err := rates.Resolve(context.Background(), RateKey{
		Service:  enums.ServiceTypeFreightForwarding,
		Category: enums.RateCategoryOceanFreight,
		Size:     "20",
	})
	if err != nil {
		t.Fatal(err)
	}
	if origin != RateOriginOverride {
		t.Fatalf("origin = %s, want override", origin)
	}
	if rate.String() != "425" {
		t.Fatalf("rate = %s, want 425", rate)
	}
}

func TestResolveFallsBackToDefaultTable(t *testing.T) {
	rates := NewRates(nil)
	rate, origin, err := rates.Resolve(context.Background(), RateKey{
		Service:  enums.ServiceTypeFreightForwarding,
		Category: enums.RateCategoryOceanFreight,
		From:     "HAIPHONG",
		To:       "SINGAPORE",
		Size:     "40",
	})
	if err != nil {
		t.Fatal(err)
	}
	if origin != RateOriginDefault {
		t.Fatalf("origin = %s, want default", origin)
	}
	if rate.String() != "500" {
		t.Fatalf("rate = %s, want 500", rate)
	}
}

func TestResolveLastResort(t *testing.T) {
	rates := NewRates(nil)
	rate, origin, err := rates.Resolve(context.Background(), RateKey{
		Service:  enums.ServiceTypeFreightForwarding,
		Category: enums.RateCategoryOceanFreight,
		Size:     "45",
	})
	if err != nil {
		t.Fatal(err)
	}
	if origin != RateOriginFallback {
		t.Fatalf("origin = %s, want fallback", origin)
	}
	if rate.String() != "100" {
		t.Fatalf("rate = %s, want 100", rate)
	}
}

func TestResolveOverrideLookupError(t *testing.T) {
	rates := NewRates(&stubOverrides{
		activeFn: func(ctx context.Context, key RateKey, on time.Time) (decimal.Decimal, bool, error) {
			return decimal.Zero, false, errors.New("connection refused")
		},
	})
	_, _, err := rates.Resolve(context.Background(), RateKey{
		Service:  enums.ServiceTypeChartering,
		Category: enums.RateCategoryVoyageCharter,
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("want dependency error, got %v", err)
	}
}
