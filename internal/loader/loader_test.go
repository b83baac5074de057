package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "sales-dashboard/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func writeRetailFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeFile(t, dir, StoresFile,
		"Store,Type,Size\n"+
			"1,A,151315\n"+
			"2,B,93638\n")
	writeFile(t, dir, WeeklySalesFile,
		"Store,Dept,Date,Weekly_Sales,IsHoliday\n"+
			"1,1,05/02/2012,24924.50,FALSE\n"+
			"1,2,12/02/2012,50605.27,TRUE\n"+
			"2,1,05/02/2012,46039.49,FALSE\n")
	writeFile(t, dir, FeaturesFile,
		"Store,Date,Temperature,Fuel_Price,CPI,Unemployment,IsHoliday\n"+
			"1,05/02/2012,42.31,2.572,211.096,8.106,FALSE\n"+
			"2,05/02/2012,38.51,2.548,211.242,8.106,FALSE\n")

	return dir
}

func TestLoadRetailTables(t *testing.T) {
	dir := writeRetailFixture(t)

	tables, err := LoadRetailTables(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, tables.Stores, 2)
	assert.Equal(t, 1, tables.Stores[0].Store)
	assert.Equal(t, "A", tables.Stores[0].Type)
	assert.Equal(t, 151315, tables.Stores[0].Size)

	require.Len(t, tables.Sales, 3)
	assert.Equal(t, time.Date(2012, 2, 5, 0, 0, 0, 0, time.UTC), tables.Sales[0].Date)
	assert.Equal(t, 24924.50, tables.Sales[0].WeeklySales)
	assert.False(t, tables.Sales[0].IsHoliday)
	assert.True(t, tables.Sales[1].IsHoliday)

	require.Len(t, tables.Features, 2)
	assert.Equal(t, 42.31, tables.Features[0].Temperature)
	assert.Equal(t, 8.106, tables.Features[0].Unemployment)
}

func TestLoadRetailTablesMissingFilesListsAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, StoresFile, "Store,Type,Size\n1,A,100\n")

	_, err := LoadRetailTables(context.Background(), dir)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeMissingInputFile, appErr.Code)
	assert.Contains(t, appErr.Message, WeeklySalesFile)
	assert.Contains(t, appErr.Message, FeaturesFile)
	assert.NotContains(t, appErr.Message, "missing input files: "+StoresFile)
}

func TestLoadRetailTablesMalformedDate(t *testing.T) {
	dir := writeRetailFixture(t)
	writeFile(t, dir, WeeklySalesFile,
		"Store,Dept,Date,Weekly_Sales,IsHoliday\n"+
			"1,1,not-a-date,24924.50,FALSE\n")

	_, err := LoadRetailTables(context.Background(), dir)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeMalformedInput, appErr.Code)
	assert.Contains(t, appErr.Message, WeeklySalesFile)
	assert.Contains(t, appErr.Message, "row 2")
}

func TestLoadRetailTablesMissingColumn(t *testing.T) {
	dir := writeRetailFixture(t)
	writeFile(t, dir, StoresFile, "Store,Size\n1,100\n")

	_, err := LoadRetailTables(context.Background(), dir)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeMalformedInput, appErr.Code)
	assert.Contains(t, appErr.Message, `missing column "Type"`)
}

func writeWorkbook(t *testing.T, dir, name string, rows [][]any) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheetName := f.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheetName, cellRef, &row))
	}
	require.NoError(t, f.SaveAs(filepath.Join(dir, name)))
}

func writeSalesFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeWorkbook(t, dir, SalesFactFile, [][]any{
		{"日期", "销售额", "数量", "客户ID", "产品ID", "地区ID"},
		{"2024-01-01", "1,200.50", 2, "C1", "P1", "R1"},
		{"2024-01-02", 800, 1, "C2", "P2", "R2"},
	})
	writeWorkbook(t, dir, CustomerDimFile, [][]any{
		{"客户ID", "客户名称", "客户类型"},
		{"C1", "Acme", "VIP"},
		{"C2", "Beta", "Regular"},
	})
	writeWorkbook(t, dir, ProductDimFile, [][]any{
		{"产品ID", "产品名称", "产品类别"},
		{"P1", "Laptop", "Electronics"},
		{"P2", "Chair", "Furniture"},
	})
	writeWorkbook(t, dir, RegionDimFile, [][]any{
		{"地区ID", "地区名称"},
		{"R1", "North"},
		{"R2", "South"},
	})

	return dir
}

func TestLoadSalesTables(t *testing.T) {
	dir := writeSalesFixture(t)

	tables, err := LoadSalesTables(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, tables.Sales, 2)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), tables.Sales[0].Date)
	assert.Equal(t, 1200.50, tables.Sales[0].Amount)
	assert.Equal(t, 2, tables.Sales[0].Quantity)
	assert.Equal(t, "C1", tables.Sales[0].CustomerID)
	assert.Equal(t, 800.0, tables.Sales[1].Amount)

	require.Len(t, tables.Customers, 2)
	assert.Equal(t, "VIP", tables.Customers[0].Type)

	require.Len(t, tables.Products, 2)
	assert.Equal(t, "Electronics", tables.Products[0].Category)

	require.Len(t, tables.Regions, 2)
	assert.Equal(t, "North", tables.Regions[0].Name)
}

func TestLoadSalesTablesMissingFile(t *testing.T) {
	dir := writeSalesFixture(t)
	require.NoError(t, os.Remove(filepath.Join(dir, RegionDimFile)))

	_, err := LoadSalesTables(context.Background(), dir)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeMissingInputFile, appErr.Code)
	assert.Contains(t, appErr.Message, RegionDimFile)
}

func TestLoadSalesTablesMalformedAmount(t *testing.T) {
	dir := writeSalesFixture(t)
	writeWorkbook(t, dir, SalesFactFile, [][]any{
		{"日期", "销售额", "数量", "客户ID", "产品ID", "地区ID"},
		{"2024-01-01", "abc", 2, "C1", "P1", "R1"},
	})

	_, err := LoadSalesTables(context.Background(), dir)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeMalformedInput, appErr.Code)
}

func TestParseDateLayouts(t *testing.T) {
	want := time.Date(2012, 2, 5, 0, 0, 0, 0, time.UTC)

	for _, value := range []string{"2012-02-05", "2012/02/05", "05/02/2012", "2012-02-05 13:45:00"} {
		got, err := parseDate(value)
		require.NoError(t, err, value)
		assert.Equal(t, want, got, value)
	}

	_, err := parseDate("05.02.2012")
	assert.Error(t, err)
}

func TestLoadRespectsContextCancellation(t *testing.T) {
	dir := writeRetailFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadRetailTables(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}
