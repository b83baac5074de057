package models

// Report payload shapes. The JSON schema mirrors the mockup export the
// dashboards were built against: each section is a set of parallel arrays
// keyed by fixed names.

type TrendExport struct {
	Dates  []string  `json:"dates"`
	Values []float64 `json:"values"`
}

type DistributionExport struct {
	Types  []string `json:"types"`
	Counts []int    `json:"counts"`
}

type TopProductsExport struct {
	Names      []string  `json:"names"`
	Quantities []float64 `json:"quantities"`
}

type RegionSalesExport struct {
	Regions []string  `json:"regions"`
	Sales   []float64 `json:"sales"`
}

type SalesReport struct {
	Overview             SalesOverview      `json:"overview"`
	SalesTrend           TrendExport        `json:"sales_trend"`
	CustomerDistribution DistributionExport `json:"customer_distribution"`
	TopProducts          TopProductsExport  `json:"top_products"`
	RegionSales          RegionSalesExport  `json:"region_sales"`
}

type StoreAnalysisExport struct {
	Types  []string  `json:"types"`
	Stores []int     `json:"stores"`
	Sales  []float64 `json:"sales"`
}

type DepartmentExport struct {
	Departments []string  `json:"departments"`
	Sales       []float64 `json:"sales"`
}

// Correlations hold nil for undefined coefficients so the JSON carries
// null, never NaN.
type EnvironmentExport struct {
	Covariates   []string   `json:"covariates"`
	Correlations []*float64 `json:"correlations"`
}

type RetailReport struct {
	Overview           RetailOverview      `json:"overview"`
	SalesTrend         TrendExport         `json:"sales_trend"`
	StoreAnalysis      StoreAnalysisExport `json:"store_analysis"`
	DepartmentAnalysis DepartmentExport    `json:"department_analysis"`
	Environment        EnvironmentExport   `json:"environment_analysis"`
	Holiday            HolidayAnalysis     `json:"holiday_analysis"`
}
