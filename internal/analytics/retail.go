package analytics

import (
	"strconv"

	"sales-dashboard/internal/models"
)

// Covariates correlated against weekly sales, in report order.
var Covariates = []string{"Temperature", "Fuel_Price", "CPI", "Unemployment"}

// ComputeRetailViews derives every retail-variant section from one
// filter selection. The headline table is date-filtered only; the
// store-type selection narrows just the store-distribution view.
func ComputeRetailViews(t *models.RetailTables, sel models.FilterSelection) models.RetailViews {
	filtered := FilterWeekly(t.Sales, sel)

	return models.RetailViews{
		Overview:           retailOverview(filtered),
		Trend:              retailTrend(filtered),
		StoreAnalysis:      StoreAnalysis(filtered, t.Stores, sel.Categories),
		DepartmentAnalysis: DepartmentAnalysis(filtered),
		Environment:        EnvironmentAnalysis(filtered, t.Features),
		Holiday:            Holiday(filtered),
	}
}

func retailOverview(filtered []models.WeeklySales) models.RetailOverview {
	var total float64
	stores := make(map[int]bool)
	depts := make(map[int]bool)
	for _, rec := range filtered {
		total += rec.WeeklySales
		stores[rec.Store] = true
		depts[rec.Dept] = true
	}

	return models.RetailOverview{
		TotalSales:       total,
		TotalRecords:     len(filtered),
		AvgWeeklySales:   meanOrZero(total, len(filtered)),
		TotalStores:      len(stores),
		TotalDepartments: len(depts),
	}
}

func retailTrend(filtered []models.WeeklySales) models.TrendSeries {
	weekly := newOrderedSums()
	for _, rec := range filtered {
		weekly.Add(rec.Date.Format(dateKeyLayout), rec.WeeklySales)
	}
	return weekly.Series()
}

// StoreAnalysis breaks the store register down by type (count and share)
// and attributes filtered sales to each type through the store lookup.
// Sales rows whose store is missing from the register count toward no
// type but stay in every other metric.
func StoreAnalysis(filtered []models.WeeklySales, stores []models.Store, selectedTypes []string) []models.StoreTypeStats {
	kept := FilterStores(stores, selectedTypes)

	typeOf := make(map[int]string, len(kept))
	var order []string
	count := make(map[string]int)
	for _, s := range kept {
		typeOf[s.Store] = s.Type
		if _, ok := count[s.Type]; !ok {
			order = append(order, s.Type)
		}
		count[s.Type]++
	}

	sales := make(map[string]float64, len(count))
	for _, rec := range filtered {
		if t, ok := typeOf[rec.Store]; ok {
			sales[t] += rec.WeeklySales
		}
	}

	stats := make([]models.StoreTypeStats, 0, len(order))
	for _, t := range order {
		stats = append(stats, models.StoreTypeStats{
			Type:       t,
			Stores:     count[t],
			Share:      meanOrZero(float64(count[t]), len(kept)),
			TotalSales: sales[t],
		})
	}
	return stats
}

// DepartmentAnalysis ranks departments by summed weekly sales, top 10.
func DepartmentAnalysis(filtered []models.WeeklySales) []models.RankingEntry {
	byDept := newOrderedSums()
	for _, rec := range filtered {
		byDept.Add(strconv.Itoa(rec.Dept), rec.WeeklySales)
	}

	return byDept.Ranked(func(dept string) (string, bool) {
		return "Dept " + dept, true
	})
}

// EnvironmentAnalysis correlates weekly sales against each environmental
// covariate over the (Store, Date)-matched rows. Undefined coefficients
// stay nil and serialize as null.
func EnvironmentAnalysis(filtered []models.WeeklySales, features []models.FeatureRow) []models.Correlation {
	measure, matched := JoinFeatures(filtered, features)

	series := map[string][]float64{}
	for _, f := range matched {
		series["Temperature"] = append(series["Temperature"], f.Temperature)
		series["Fuel_Price"] = append(series["Fuel_Price"], f.FuelPrice)
		series["CPI"] = append(series["CPI"], f.CPI)
		series["Unemployment"] = append(series["Unemployment"], f.Unemployment)
	}

	correlations := make([]models.Correlation, 0, len(Covariates))
	for _, name := range Covariates {
		correlations = append(correlations, models.Correlation{
			Covariate: name,
			R:         Pearson(series[name], measure),
		})
	}
	return correlations
}

// Holiday compares mean weekly sales on holiday vs non-holiday weeks.
func Holiday(filtered []models.WeeklySales) models.HolidayAnalysis {
	var holidaySum, normalSum float64
	var holidayCount, normalCount int
	for _, rec := range filtered {
		if rec.IsHoliday {
			holidaySum += rec.WeeklySales
			holidayCount++
		} else {
			normalSum += rec.WeeklySales
			normalCount++
		}
	}

	h := meanOrZero(holidaySum, holidayCount)
	n := meanOrZero(normalSum, normalCount)
	return models.HolidayAnalysis{
		HolidayAvg:    h,
		NonHolidayAvg: n,
		LiftPct:       HolidayLift(h, n),
	}
}
