package services

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-dashboard/internal/config"
	"sales-dashboard/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func salesTables() *models.SalesTables {
	return &models.SalesTables{
		Sales: []models.SalesRecord{
			{Date: day(2024, 1, 1), Amount: 100, Quantity: 1, CustomerID: "C1", ProductID: "P1", RegionID: "R1"},
			{Date: day(2024, 1, 2), Amount: 200, Quantity: 3, CustomerID: "C2", ProductID: "P2", RegionID: "R2"},
			{Date: day(2024, 1, 3), Amount: 300, Quantity: 2, CustomerID: "C1", ProductID: "P1", RegionID: "R1"},
		},
		Customers: []models.Customer{
			{ID: "C1", Name: "Acme", Type: "VIP"},
			{ID: "C2", Name: "Beta", Type: "Regular"},
		},
		Products: []models.Product{
			{ID: "P1", Name: "Laptop", Category: "Electronics"},
			{ID: "P2", Name: "Chair", Category: "Furniture"},
		},
		Regions: []models.Region{
			{ID: "R1", Name: "North"},
			{ID: "R2", Name: "South"},
		},
	}
}

func retailTables() *models.RetailTables {
	return &models.RetailTables{
		Sales: []models.WeeklySales{
			{Store: 1, Dept: 7, Date: day(2012, 2, 3), WeeklySales: 1000},
			{Store: 2, Dept: 1, Date: day(2012, 2, 10), WeeklySales: 2000, IsHoliday: true},
		},
		Stores: []models.Store{
			{Store: 1, Type: "B", Size: 90000},
			{Store: 2, Type: "A", Size: 150000},
		},
		Features: []models.FeatureRow{
			{Store: 1, Date: day(2012, 2, 3), Temperature: 40},
		},
	}
}

func TestNormalizeFillsOpenBounds(t *testing.T) {
	d := NewDashboard(config.VariantSales, nil)
	d.SetSalesTables(salesTables())

	sel := d.Normalize(models.FilterSelection{})
	assert.Equal(t, day(2024, 1, 1), sel.From)
	assert.Equal(t, day(2024, 1, 3), sel.To)

	// An explicit range, inverted or not, stays untouched.
	explicit := models.FilterSelection{From: day(2024, 1, 3), To: day(2024, 1, 1)}
	assert.Equal(t, explicit, d.Normalize(explicit))
}

func TestFilterOptionsSales(t *testing.T) {
	d := NewDashboard(config.VariantSales, nil)
	d.SetSalesTables(salesTables())

	opts := d.FilterOptions()

	assert.Equal(t, config.VariantSales, opts.Variant)
	assert.Equal(t, "2024-01-01", opts.MinDate)
	assert.Equal(t, "2024-01-03", opts.MaxDate)
	assert.Equal(t, []string{"Electronics", "Furniture"}, opts.Categories)
	assert.Equal(t, []string{"North", "South"}, opts.Regions)
}

func TestFilterOptionsRetail(t *testing.T) {
	d := NewDashboard(config.VariantRetail, nil)
	d.SetRetailTables(retailTables())

	opts := d.FilterOptions()

	assert.Equal(t, []string{"A", "B"}, opts.Categories)
	assert.Equal(t, []string{"1", "7"}, opts.Regions)
}

func TestViewsRequireLoadedTables(t *testing.T) {
	d := NewDashboard(config.VariantSales, nil)

	_, err := d.SalesViews(models.FilterSelection{})
	assert.Error(t, err)

	_, err = d.RetailViews(models.FilterSelection{})
	assert.Error(t, err)
}

func TestLoadIsMemoized(t *testing.T) {
	d := NewDashboard(config.VariantSales, nil)
	d.SetSalesTables(salesTables())

	// Tables are in memory, so the directory is never touched.
	err := d.Load(context.Background(), "/does/not/exist")
	assert.NoError(t, err)
}

func TestExportJSONMatchesViews(t *testing.T) {
	d := NewDashboard(config.VariantSales, nil)
	d.SetSalesTables(salesTables())
	dir := t.TempDir()

	sel := d.Normalize(models.FilterSelection{})
	path, err := d.ExportJSON(dir, sel)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var exported struct {
		Overview   models.SalesOverview `json:"overview"`
		SalesTrend struct {
			Dates  []string  `json:"dates"`
			Values []float64 `json:"values"`
		} `json:"sales_trend"`
	}
	require.NoError(t, json.Unmarshal(data, &exported))

	views, err := d.SalesViews(sel)
	require.NoError(t, err)

	assert.Equal(t, views.Overview, exported.Overview)
	require.Len(t, exported.SalesTrend.Dates, len(views.Trend.Points))
	for i, p := range views.Trend.Points {
		assert.Equal(t, p.Date, exported.SalesTrend.Dates[i])
		assert.Equal(t, p.Value, exported.SalesTrend.Values[i])
	}
}

func TestWorkbookReturnsTimestampedFilename(t *testing.T) {
	d := NewDashboard(config.VariantRetail, nil)
	d.SetRetailTables(retailTables())

	now := time.Date(2024, 3, 15, 9, 30, 45, 0, time.UTC)
	data, name, err := d.Workbook(d.Normalize(models.FilterSelection{}), now)

	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "retail_report_20240315_093045.xlsx", name)
}

func TestStats(t *testing.T) {
	d := NewDashboard(config.VariantRetail, nil)
	d.SetRetailTables(retailTables())

	stats := d.Stats()

	assert.Equal(t, config.VariantRetail, stats["variant"])
	assert.Equal(t, true, stats["loaded"])
	assert.Equal(t, 2, stats["sales_records"])
	assert.Equal(t, 2, stats["stores"])
}
