package rates

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vuminhhai/seaquote-backend/internal/pricing"
	"github.com/vuminhhai/seaquote-backend/pkg/db/models"
	"github.com/vuminhhai/seaquote-backend/pkg/enums"
)

func setupRatesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	rateTables := `
CREATE TABLE IF NOT EXISTS rate_tables (
  id TEXT PRIMARY KEY,
  service_type TEXT NOT NULL,
  category TEXT NOT NULL,
  from_loc TEXT,
  to_loc TEXT,
  size_class TEXT,
  rate TEXT NOT NULL,
  currency TEXT NOT NULL DEFAULT 'USD',
  is_active INTEGER NOT NULL DEFAULT 1,
  valid_from DATETIME NOT NULL,
  valid_to DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(rateTables).Error)
	return db
}

func strPtr(s string) *string { return &s }

func seedRate(t *testing.T, repo Repository, rate *models.RateTable) *models.RateTable {
	t.Helper()
	if rate.ID == uuid.Nil {
		rate.ID = uuid.New()
	}
	if rate.Currency == "" {
		rate.Currency = enums.CurrencyUSD
	}
	require.NoError(t, repo.Create(context.Background(), rate))
	return rate
}

func TestActiveRatePrefersNewestWindowAndSkipsInactive(t *testing.T) {
	repo := NewRepository(setupRatesTestDB(t))
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	seedRate(t, repo, &models.RateTable{
		ServiceType: enums.ServiceTypeShippingAgency,
		Category:    enums.RateCategoryAgencyFee,
		Rate:        decimal.RequireFromString("500"),
		IsActive:    true,
		ValidFrom:   now.AddDate(0, -6, 0),
	})
	seedRate(t, repo, &models.RateTable{
		ServiceType: enums.ServiceTypeShippingAgency,
		Category:    enums.RateCategoryAgencyFee,
		Rate:        decimal.RequireFromString("650"),
		IsActive:    true,
		ValidFrom:   now.AddDate(0, -1, 0),
	})
	seedRate(t, repo, &models.RateTable{
		ServiceType: enums.ServiceTypeShippingAgency,
		Category:    enums.RateCategoryAgencyFee,
		Rate:        decimal.RequireFromString("999"),
		IsActive:    false,
		ValidFrom:   now.AddDate(0, 0, -1),
	})

	rate, found, err := repo.ActiveRate(context.Background(), pricing.RateKey{
		Service:  enums.ServiceTypeShippingAgency,
		Category: enums.RateCategoryAgencyFee,
	}, now)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, rate.Equal(decimal.RequireFromString("650")))
}

func TestActiveRateHonorsValidityWindow(t *testing.T) {
	repo := NewRepository(setupRatesTestDB(t))
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	expiry := now.AddDate(0, -1, 0)

	seedRate(t, repo, &models.RateTable{
		ServiceType: enums.ServiceTypeShippingAgency,
		Category:    enums.RateCategoryPortDues,
		Rate:        decimal.RequireFromString("0.45"),
		IsActive:    true,
		ValidFrom:   now.AddDate(-1, 0, 0),
		ValidTo:     &expiry,
	})

	_, found, err := repo.ActiveRate(context.Background(), pricing.RateKey{
		Service:  enums.ServiceTypeShippingAgency,
		Category: enums.RateCategoryPortDues,
	}, now)
	require.NoError(t, err)
	assert.False(t, found)

	// The same row still answers a lookup inside its window.
	rate, found, err := repo.ActiveRate(context.Background(), pricing.RateKey{
		Service:  enums.ServiceTypeShippingAgency,
		Category: enums.RateCategoryPortDues,
	}, expiry.AddDate(0, 0, -7))
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.45")))
}

func TestActiveRateRouteSpecificRowsDoNotAnswerGenericLookups(t *testing.T) {
	repo := NewRepository(setupRatesTestDB(t))
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	seedRate(t, repo, &models.RateTable{
		ServiceType: enums.ServiceTypeFreightForwarding,
		Category:    enums.RateCategoryOceanFreight,
		FromLoc:     strPtr("SGN"),
		ToLoc:       strPtr("RTM"),
		SizeClass:   strPtr("40HC"),
		Rate:        decimal.RequireFromString("2100"),
		IsActive:    true,
		ValidFrom:   now.AddDate(0, -3, 0),
	})

	_, found, err := repo.ActiveRate(context.Background(), pricing.RateKey{
		Service:  enums.ServiceTypeFreightForwarding,
		Category: enums.RateCategoryOceanFreight,
	}, now)
	require.NoError(t, err)
	assert.False(t, found, "route-specific row must not match a generic key")

	rate, found, err := repo.ActiveRate(context.Background(), pricing.RateKey{
		Service:  enums.ServiceTypeFreightForwarding,
		Category: enums.RateCategoryOceanFreight,
		From:     "SGN",
		To:       "RTM",
		Size:     "40HC",
	}, now)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, rate.Equal(decimal.RequireFromString("2100")))
}

func TestListFiltersByServiceCategoryAndActive(t *testing.T) {
	repo := NewRepository(setupRatesTestDB(t))
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	seedRate(t, repo, &models.RateTable{
		ServiceType: enums.ServiceTypeShippingAgency,
		Category:    enums.RateCategoryAgencyFee,
		Rate:        decimal.RequireFromString("500"),
		IsActive:    true,
		ValidFrom:   now,
	})
	seedRate(t, repo, &models.RateTable{
		ServiceType: enums.ServiceTypeShippingAgency,
		Category:    enums.RateCategoryPilotage,
		Rate:        decimal.RequireFromString("0.08"),
		IsActive:    false,
		ValidFrom:   now,
	})
	seedRate(t, repo, &models.RateTable{
		ServiceType: enums.ServiceTypeChartering,
		Category:    enums.RateCategoryBrokerage,
		Rate:        decimal.RequireFromString("0.0125"),
		IsActive:    true,
		ValidFrom:   now,
	})

	agency := enums.ServiceTypeShippingAgency
	rows, err := repo.List(context.Background(), ListRatesQuery{ServiceType: &agency})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = repo.List(context.Background(), ListRatesQuery{ServiceType: &agency, ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, enums.RateCategoryAgencyFee, rows[0].Category)

	brokerage := enums.RateCategoryBrokerage
	rows, err = repo.List(context.Background(), ListRatesQuery{Category: &brokerage})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, enums.ServiceTypeChartering, rows[0].ServiceType)
}

func TestFindByIDReturnsNilOnMiss(t *testing.T) {
	repo := NewRepository(setupRatesTestDB(t))

	rate, err := repo.FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, rate)
}
