// Package analytics is the shared aggregation core: pure functions of
// (tables, filter selection) with no UI or transport dependencies. The
// on-screen chart handlers and the report materializer both consume the
// views computed here, so the two paths cannot diverge.
package analytics

import (
	"time"

	"sales-dashboard/internal/models"
)

// inRange is inclusive on both ends: a record dated exactly at either
// bound survives the filter.
func inRange(d, from, to time.Time) bool {
	return !d.Before(from) && !d.After(to)
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// FilterSales applies the date-range predicate plus, when the selection
// carries them, category and region membership. Category membership needs
// the product dimension; rows whose product id has no dimension row fail
// the category predicate and drop.
func FilterSales(records []models.SalesRecord, sel models.FilterSelection, products []models.Product, regions []models.Region) []models.SalesRecord {
	categories := toSet(sel.Categories)
	regionNames := toSet(sel.Regions)

	var categoryOf map[string]string
	if categories != nil {
		categoryOf = make(map[string]string, len(products))
		for _, p := range products {
			categoryOf[p.ID] = p.Category
		}
	}
	var regionNameOf map[string]string
	if regionNames != nil {
		regionNameOf = make(map[string]string, len(regions))
		for _, r := range regions {
			regionNameOf[r.ID] = r.Name
		}
	}

	filtered := make([]models.SalesRecord, 0, len(records))
	for _, rec := range records {
		if !inRange(rec.Date, sel.From, sel.To) {
			continue
		}
		if categories != nil && !categories[categoryOf[rec.ProductID]] {
			continue
		}
		if regionNames != nil && !regionNames[regionNameOf[rec.RegionID]] {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered
}

// FilterWeekly applies only the date-range predicate. The store-type and
// department selections never narrow the headline table; they only feed
// the store-distribution view (see StoreAnalysis).
func FilterWeekly(records []models.WeeklySales, sel models.FilterSelection) []models.WeeklySales {
	filtered := make([]models.WeeklySales, 0, len(records))
	for _, rec := range records {
		if inRange(rec.Date, sel.From, sel.To) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// FilterStores keeps stores whose type is in the selected set; an empty
// selection keeps everything.
func FilterStores(stores []models.Store, types []string) []models.Store {
	set := toSet(types)
	if set == nil {
		return stores
	}
	filtered := make([]models.Store, 0, len(stores))
	for _, s := range stores {
		if set[s.Type] {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

type storeDate struct {
	store int
	date  time.Time
}

// JoinFeatures pairs each weekly-sales row with its (Store, Date) feature
// row. Rows without a matching feature row are excluded from the pairs —
// a correlation needs both sides — but are never dropped from the fact
// table itself.
func JoinFeatures(sales []models.WeeklySales, features []models.FeatureRow) (measure []float64, matched []models.FeatureRow) {
	byKey := make(map[storeDate]models.FeatureRow, len(features))
	for _, f := range features {
		byKey[storeDate{f.Store, f.Date}] = f
	}

	for _, s := range sales {
		if f, ok := byKey[storeDate{s.Store, s.Date}]; ok {
			measure = append(measure, s.WeeklySales)
			matched = append(matched, f)
		}
	}
	return measure, matched
}
