// Package report materializes aggregation results into the two export
// shapes: the mockup JSON document and the downloadable workbook. It
// only reshapes values the analytics package computed — no aggregation
// of its own, so export and screen always agree.
package report

import (
	"fmt"
	"time"

	"sales-dashboard/internal/models"
)

const JSONFileName = "mockplus_data.json"

// Filename returns the timestamp-suffixed workbook name offered for
// download.
func Filename(variant string, now time.Time) string {
	return fmt.Sprintf("%s_report_%s.xlsx", variant, now.Format("20060102_150405"))
}

func BuildSalesReport(views models.SalesViews) models.SalesReport {
	r := models.SalesReport{
		Overview: views.Overview,
		SalesTrend: models.TrendExport{
			Dates:  make([]string, 0, len(views.Trend.Points)),
			Values: make([]float64, 0, len(views.Trend.Points)),
		},
		CustomerDistribution: models.DistributionExport{
			Types:  make([]string, 0, len(views.CustomerDistribution)),
			Counts: make([]int, 0, len(views.CustomerDistribution)),
		},
		TopProducts: models.TopProductsExport{
			Names:      make([]string, 0, len(views.TopProducts)),
			Quantities: make([]float64, 0, len(views.TopProducts)),
		},
		RegionSales: models.RegionSalesExport{
			Regions: make([]string, 0, len(views.RegionSales)),
			Sales:   make([]float64, 0, len(views.RegionSales)),
		},
	}

	for _, p := range views.Trend.Points {
		r.SalesTrend.Dates = append(r.SalesTrend.Dates, p.Date)
		r.SalesTrend.Values = append(r.SalesTrend.Values, p.Value)
	}
	for _, d := range views.CustomerDistribution {
		r.CustomerDistribution.Types = append(r.CustomerDistribution.Types, d.Label)
		r.CustomerDistribution.Counts = append(r.CustomerDistribution.Counts, d.Count)
	}
	for _, p := range views.TopProducts {
		r.TopProducts.Names = append(r.TopProducts.Names, p.Name)
		r.TopProducts.Quantities = append(r.TopProducts.Quantities, p.Value)
	}
	for _, s := range views.RegionSales {
		r.RegionSales.Regions = append(r.RegionSales.Regions, s.Label)
		r.RegionSales.Sales = append(r.RegionSales.Sales, s.Value)
	}
	return r
}

func BuildRetailReport(views models.RetailViews) models.RetailReport {
	r := models.RetailReport{
		Overview: views.Overview,
		SalesTrend: models.TrendExport{
			Dates:  make([]string, 0, len(views.Trend.Points)),
			Values: make([]float64, 0, len(views.Trend.Points)),
		},
		StoreAnalysis: models.StoreAnalysisExport{
			Types:  make([]string, 0, len(views.StoreAnalysis)),
			Stores: make([]int, 0, len(views.StoreAnalysis)),
			Sales:  make([]float64, 0, len(views.StoreAnalysis)),
		},
		DepartmentAnalysis: models.DepartmentExport{
			Departments: make([]string, 0, len(views.DepartmentAnalysis)),
			Sales:       make([]float64, 0, len(views.DepartmentAnalysis)),
		},
		Environment: models.EnvironmentExport{
			Covariates:   make([]string, 0, len(views.Environment)),
			Correlations: make([]*float64, 0, len(views.Environment)),
		},
		Holiday: views.Holiday,
	}

	for _, p := range views.Trend.Points {
		r.SalesTrend.Dates = append(r.SalesTrend.Dates, p.Date)
		r.SalesTrend.Values = append(r.SalesTrend.Values, p.Value)
	}
	for _, s := range views.StoreAnalysis {
		r.StoreAnalysis.Types = append(r.StoreAnalysis.Types, s.Type)
		r.StoreAnalysis.Stores = append(r.StoreAnalysis.Stores, s.Stores)
		r.StoreAnalysis.Sales = append(r.StoreAnalysis.Sales, s.TotalSales)
	}
	for _, d := range views.DepartmentAnalysis {
		r.DepartmentAnalysis.Departments = append(r.DepartmentAnalysis.Departments, d.Name)
		r.DepartmentAnalysis.Sales = append(r.DepartmentAnalysis.Sales, d.Value)
	}
	for _, c := range views.Environment {
		r.Environment.Covariates = append(r.Environment.Covariates, c.Covariate)
		r.Environment.Correlations = append(r.Environment.Correlations, c.R)
	}
	return r
}
