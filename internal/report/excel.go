package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
)

const columnWidth = 18

type sheetDef struct {
	name    string
	headers []string
	rows    [][]any
}

// SalesWorkbook renders the sales report as a multi-sheet workbook, one
// sheet per section, ready to stream as a download.
func SalesWorkbook(r models.SalesReport) ([]byte, error) {
	overview := [][]any{
		{"Total Sales", r.Overview.TotalSales},
		{"Total Orders", r.Overview.TotalOrders},
		{"Avg Order Value", r.Overview.AvgOrderValue},
		{"Total Customers", r.Overview.TotalCustomers},
		{"Total Products", r.Overview.TotalProducts},
	}

	trend := make([][]any, 0, len(r.SalesTrend.Dates))
	for i, date := range r.SalesTrend.Dates {
		trend = append(trend, []any{date, r.SalesTrend.Values[i]})
	}

	distribution := make([][]any, 0, len(r.CustomerDistribution.Types))
	for i, t := range r.CustomerDistribution.Types {
		distribution = append(distribution, []any{t, r.CustomerDistribution.Counts[i]})
	}

	products := make([][]any, 0, len(r.TopProducts.Names))
	for i, name := range r.TopProducts.Names {
		products = append(products, []any{name, r.TopProducts.Quantities[i]})
	}

	regions := make([][]any, 0, len(r.RegionSales.Regions))
	for i, region := range r.RegionSales.Regions {
		regions = append(regions, []any{region, r.RegionSales.Sales[i]})
	}

	return buildWorkbook([]sheetDef{
		{name: "Overview", headers: []string{"Metric", "Value"}, rows: overview},
		{name: "Sales Trend", headers: []string{"Date", "Sales"}, rows: trend},
		{name: "Customer Distribution", headers: []string{"Customer Type", "Count"}, rows: distribution},
		{name: "Top Products", headers: []string{"Product", "Quantity"}, rows: products},
		{name: "Region Sales", headers: []string{"Region", "Sales"}, rows: regions},
	})
}

// RetailWorkbook renders the retail report, one sheet per section.
// Undefined correlations become blank cells.
func RetailWorkbook(r models.RetailReport) ([]byte, error) {
	overview := [][]any{
		{"Total Sales", r.Overview.TotalSales},
		{"Total Records", r.Overview.TotalRecords},
		{"Avg Weekly Sales", r.Overview.AvgWeeklySales},
		{"Total Stores", r.Overview.TotalStores},
		{"Total Departments", r.Overview.TotalDepartments},
	}

	trend := make([][]any, 0, len(r.SalesTrend.Dates))
	for i, date := range r.SalesTrend.Dates {
		trend = append(trend, []any{date, r.SalesTrend.Values[i]})
	}

	stores := make([][]any, 0, len(r.StoreAnalysis.Types))
	for i, t := range r.StoreAnalysis.Types {
		stores = append(stores, []any{t, r.StoreAnalysis.Stores[i], r.StoreAnalysis.Sales[i]})
	}

	departments := make([][]any, 0, len(r.DepartmentAnalysis.Departments))
	for i, dept := range r.DepartmentAnalysis.Departments {
		departments = append(departments, []any{dept, r.DepartmentAnalysis.Sales[i]})
	}

	environment := make([][]any, 0, len(r.Environment.Covariates))
	for i, cov := range r.Environment.Covariates {
		row := []any{cov, nil}
		if r.Environment.Correlations[i] != nil {
			row[1] = *r.Environment.Correlations[i]
		}
		environment = append(environment, row)
	}

	holiday := [][]any{
		{"Holiday Avg", r.Holiday.HolidayAvg},
		{"Non-Holiday Avg", r.Holiday.NonHolidayAvg},
		{"Lift %", r.Holiday.LiftPct},
	}

	return buildWorkbook([]sheetDef{
		{name: "Overview", headers: []string{"Metric", "Value"}, rows: overview},
		{name: "Sales Trend", headers: []string{"Date", "Weekly Sales"}, rows: trend},
		{name: "Store Analysis", headers: []string{"Store Type", "Stores", "Total Sales"}, rows: stores},
		{name: "Department Analysis", headers: []string{"Department", "Total Sales"}, rows: departments},
		{name: "Environment Analysis", headers: []string{"Covariate", "Correlation"}, rows: environment},
		{name: "Holiday Analysis", headers: []string{"Metric", "Value"}, rows: holiday},
	})
}

func buildWorkbook(sheets []sheetDef) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, errors.ExportFailed(err, "create header style")
	}

	for _, sheet := range sheets {
		if _, err := f.NewSheet(sheet.name); err != nil {
			return nil, errors.ExportFailed(err, fmt.Sprintf("create sheet %s", sheet.name))
		}

		for col, header := range sheet.headers {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				return nil, errors.ExportFailed(err, "resolve header cell")
			}
			if err := f.SetCellValue(sheet.name, cell, header); err != nil {
				return nil, errors.ExportFailed(err, fmt.Sprintf("write header cell %s", cell))
			}
			if err := f.SetCellStyle(sheet.name, cell, cell, headerStyle); err != nil {
				return nil, errors.ExportFailed(err, fmt.Sprintf("style header cell %s", cell))
			}

			name, err := excelize.ColumnNumberToName(col + 1)
			if err != nil {
				return nil, errors.ExportFailed(err, "resolve column name")
			}
			if err := f.SetColWidth(sheet.name, name, name, columnWidth); err != nil {
				return nil, errors.ExportFailed(err, fmt.Sprintf("set width of column %s", name))
			}
		}

		for rowIdx, row := range sheet.rows {
			for col, value := range row {
				if value == nil {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
				if err != nil {
					return nil, errors.ExportFailed(err, "resolve data cell")
				}
				if err := f.SetCellValue(sheet.name, cell, value); err != nil {
					return nil, errors.ExportFailed(err, fmt.Sprintf("write cell %s", cell))
				}
			}
		}
	}

	// Drop the default sheet so section order starts at Overview.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, errors.ExportFailed(err, "drop default sheet")
	}
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.ExportFailed(err, "serialize workbook")
	}
	return buf.Bytes(), nil
}
