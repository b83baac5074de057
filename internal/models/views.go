package models

// View types produced by the aggregation pipeline. The same values drive
// the on-screen charts and the exported report.

type SalesOverview struct {
	TotalSales     float64 `json:"total_sales"`
	TotalOrders    int     `json:"total_orders"`
	AvgOrderValue  float64 `json:"avg_order_value"`
	TotalCustomers int     `json:"total_customers"`
	TotalProducts  int     `json:"total_products"`
}

type RetailOverview struct {
	TotalSales       float64 `json:"total_sales"`
	TotalRecords     int     `json:"total_records"`
	AvgWeeklySales   float64 `json:"avg_weekly_sales"`
	TotalStores      int     `json:"total_stores"`
	TotalDepartments int     `json:"total_departments"`
}

type TrendPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type TrendSeries struct {
	Points []TrendPoint `json:"points"`
	Mean   float64      `json:"mean"`
}

type DistributionEntry struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

type RankingEntry struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type LabeledValue struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type StoreTypeStats struct {
	Type       string  `json:"type"`
	Stores     int     `json:"stores"`
	Share      float64 `json:"share"`
	TotalSales float64 `json:"total_sales"`
}

// Correlation is nil-valued when the coefficient is undefined (zero
// variance or fewer than two paired points).
type Correlation struct {
	Covariate string   `json:"covariate"`
	R         *float64 `json:"r"`
}

type HolidayAnalysis struct {
	HolidayAvg    float64 `json:"holiday_avg"`
	NonHolidayAvg float64 `json:"non_holiday_avg"`
	LiftPct       float64 `json:"lift_pct"`
}

type SalesViews struct {
	Overview             SalesOverview       `json:"overview"`
	Trend                TrendSeries         `json:"sales_trend"`
	CustomerDistribution []DistributionEntry `json:"customer_distribution"`
	TopProducts          []RankingEntry      `json:"top_products"`
	RegionSales          []LabeledValue      `json:"region_sales"`
}

type RetailViews struct {
	Overview           RetailOverview   `json:"overview"`
	Trend              TrendSeries      `json:"sales_trend"`
	StoreAnalysis      []StoreTypeStats `json:"store_analysis"`
	DepartmentAnalysis []RankingEntry   `json:"department_analysis"`
	Environment        []Correlation    `json:"environment_analysis"`
	Holiday            HolidayAnalysis  `json:"holiday_analysis"`
}
