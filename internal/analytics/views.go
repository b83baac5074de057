package analytics

import (
	"sales-dashboard/internal/models"
)

const dateKeyLayout = "2006-01-02"

// ComputeSalesViews derives every sales-variant section from one filter
// selection. Recomputed from scratch on each call; no hidden state.
func ComputeSalesViews(t *models.SalesTables, sel models.FilterSelection) models.SalesViews {
	filtered := FilterSales(t.Sales, sel, t.Products, t.Regions)

	return models.SalesViews{
		Overview:             salesOverview(filtered, t),
		Trend:                salesTrend(filtered),
		CustomerDistribution: customerDistribution(t.Customers),
		TopProducts:          TopProducts(filtered, t.Products),
		RegionSales:          RegionSales(filtered, t.Regions),
	}
}

func salesOverview(filtered []models.SalesRecord, t *models.SalesTables) models.SalesOverview {
	var total float64
	customers := make(map[string]bool)
	for _, rec := range filtered {
		total += rec.Amount
		customers[rec.CustomerID] = true
	}

	return models.SalesOverview{
		TotalSales:     total,
		TotalOrders:    len(filtered),
		AvgOrderValue:  meanOrZero(total, len(filtered)),
		TotalCustomers: len(customers),
		TotalProducts:  len(t.Products),
	}
}

func salesTrend(filtered []models.SalesRecord) models.TrendSeries {
	daily := newOrderedSums()
	for _, rec := range filtered {
		daily.Add(rec.Date.Format(dateKeyLayout), rec.Amount)
	}
	return daily.Series()
}

// customerDistribution works off the dimension table, not the filtered
// fact table: the customer-type pie shows the whole register regardless
// of the active filter.
func customerDistribution(customers []models.Customer) []models.DistributionEntry {
	types := make([]string, 0, len(customers))
	for _, c := range customers {
		types = append(types, c.Type)
	}
	return Distribution(types)
}

// TopProducts ranks products by summed quantity over the filtered rows,
// joining display names from the product dimension (inner: unknown
// product ids drop).
func TopProducts(filtered []models.SalesRecord, products []models.Product) []models.RankingEntry {
	nameOf := make(map[string]string, len(products))
	for _, p := range products {
		nameOf[p.ID] = p.Name
	}

	byProduct := newOrderedSums()
	for _, rec := range filtered {
		byProduct.Add(rec.ProductID, float64(rec.Quantity))
	}

	return byProduct.Ranked(func(id string) (string, bool) {
		name, ok := nameOf[id]
		return name, ok
	})
}

// RegionSales sums amount per region in grouping order, joining region
// names (inner).
func RegionSales(filtered []models.SalesRecord, regions []models.Region) []models.LabeledValue {
	nameOf := make(map[string]string, len(regions))
	for _, r := range regions {
		nameOf[r.ID] = r.Name
	}

	byRegion := newOrderedSums()
	for _, rec := range filtered {
		byRegion.Add(rec.RegionID, rec.Amount)
	}

	return byRegion.Labeled(func(id string) (string, bool) {
		name, ok := nameOf[id]
		return name, ok
	})
}
