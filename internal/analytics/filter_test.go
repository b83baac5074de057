package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-dashboard/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFilterSalesInclusiveBounds(t *testing.T) {
	records := []models.SalesRecord{
		{Date: day(2024, 1, 1), Amount: 100},
		{Date: day(2024, 1, 2), Amount: 200},
		{Date: day(2024, 1, 3), Amount: 300},
	}

	sel := models.FilterSelection{From: day(2024, 1, 1), To: day(2024, 1, 2)}
	got := FilterSales(records, sel, nil, nil)

	require.Len(t, got, 2)
	assert.Equal(t, 100.0, got[0].Amount)
	assert.Equal(t, 200.0, got[1].Amount)
}

func TestFilterSalesInvertedRangeYieldsEmpty(t *testing.T) {
	records := []models.SalesRecord{{Date: day(2024, 1, 2), Amount: 200}}

	sel := models.FilterSelection{From: day(2024, 1, 3), To: day(2024, 1, 1)}
	got := FilterSales(records, sel, nil, nil)

	assert.Empty(t, got)
}

func TestFilterSalesCategoryMembership(t *testing.T) {
	products := []models.Product{
		{ID: "P1", Name: "Laptop", Category: "Electronics"},
		{ID: "P2", Name: "Chair", Category: "Furniture"},
	}
	records := []models.SalesRecord{
		{Date: day(2024, 1, 1), Amount: 100, ProductID: "P1"},
		{Date: day(2024, 1, 1), Amount: 200, ProductID: "P2"},
		{Date: day(2024, 1, 1), Amount: 300, ProductID: "P9"}, // no dimension row
	}

	sel := models.FilterSelection{
		From:       day(2024, 1, 1),
		To:         day(2024, 1, 1),
		Categories: []string{"Electronics"},
	}
	got := FilterSales(records, sel, products, nil)

	require.Len(t, got, 1)
	assert.Equal(t, "P1", got[0].ProductID)
}

func TestFilterSalesEmptySelectionSetsMeanNoRestriction(t *testing.T) {
	records := []models.SalesRecord{
		{Date: day(2024, 1, 1), Amount: 100, ProductID: "P1", RegionID: "R1"},
	}

	sel := models.FilterSelection{From: day(2024, 1, 1), To: day(2024, 1, 1)}
	got := FilterSales(records, sel, nil, nil)

	assert.Len(t, got, 1)
}

func TestFilterWeeklyAppliesOnlyDatePredicate(t *testing.T) {
	records := []models.WeeklySales{
		{Store: 1, Dept: 1, Date: day(2012, 2, 3), WeeklySales: 1000},
		{Store: 2, Dept: 2, Date: day(2012, 2, 10), WeeklySales: 2000},
	}

	// Type and department selections are carried but must not narrow
	// the headline table.
	sel := models.FilterSelection{
		From:       day(2012, 2, 1),
		To:         day(2012, 2, 29),
		Categories: []string{"A"},
		Regions:    []string{"99"},
	}
	got := FilterWeekly(records, sel)

	assert.Len(t, got, 2)
}

func TestFilterStores(t *testing.T) {
	stores := []models.Store{
		{Store: 1, Type: "A"},
		{Store: 2, Type: "B"},
		{Store: 3, Type: "A"},
	}

	assert.Len(t, FilterStores(stores, nil), 3)
	assert.Len(t, FilterStores(stores, []string{"A"}), 2)
	assert.Empty(t, FilterStores(stores, []string{"C"}))
}

func TestJoinFeaturesMatchesOnStoreAndDate(t *testing.T) {
	sales := []models.WeeklySales{
		{Store: 1, Date: day(2012, 2, 3), WeeklySales: 1000},
		{Store: 1, Date: day(2012, 2, 10), WeeklySales: 2000},
		{Store: 2, Date: day(2012, 2, 3), WeeklySales: 3000},
	}
	features := []models.FeatureRow{
		{Store: 1, Date: day(2012, 2, 3), Temperature: 40},
		{Store: 2, Date: day(2012, 2, 3), Temperature: 60},
	}

	measure, matched := JoinFeatures(sales, features)

	require.Len(t, measure, 2)
	require.Len(t, matched, 2)
	assert.Equal(t, 1000.0, measure[0])
	assert.Equal(t, 40.0, matched[0].Temperature)
	assert.Equal(t, 3000.0, measure[1])
}
