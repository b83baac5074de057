package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"time"

	"sales-dashboard/internal/analytics"
	"sales-dashboard/internal/config"
	"sales-dashboard/internal/loader"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/report"
)

// Dashboard is the session context: it owns the raw tables, loaded once
// per process and immutable afterwards, and derives every view and
// report from them. Handlers receive it by reference; there is no
// module-level state.
type Dashboard struct {
	mu      sync.RWMutex
	variant string
	sales   *models.SalesTables
	retail  *models.RetailTables
	loaded  bool
	logger  *slog.Logger
}

func NewDashboard(variant string, logger *slog.Logger) *Dashboard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dashboard{
		variant: variant,
		logger:  logger,
	}
}

func (d *Dashboard) Variant() string { return d.variant }

// Load reads the variant's input files. Memoized: once the tables are
// in memory, later calls return without touching the filesystem.
func (d *Dashboard) Load(ctx context.Context, dir string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.loaded {
		return nil
	}

	start := time.Now()
	switch d.variant {
	case config.VariantSales:
		tables, err := loader.LoadSalesTables(ctx, dir)
		if err != nil {
			return fmt.Errorf("load sales tables: %w", err)
		}
		d.sales = tables
		d.logger.Info("sales tables loaded",
			"records", len(tables.Sales),
			"customers", len(tables.Customers),
			"products", len(tables.Products),
			"regions", len(tables.Regions),
			"duration", time.Since(start),
		)
	case config.VariantRetail:
		tables, err := loader.LoadRetailTables(ctx, dir)
		if err != nil {
			return fmt.Errorf("load retail tables: %w", err)
		}
		d.retail = tables
		d.logger.Info("retail tables loaded",
			"records", len(tables.Sales),
			"stores", len(tables.Stores),
			"features", len(tables.Features),
			"duration", time.Since(start),
		)
	default:
		return fmt.Errorf("unknown dashboard variant %q", d.variant)
	}

	d.loaded = true
	return nil
}

// SetSalesTables injects tables directly, for tests.
func (d *Dashboard) SetSalesTables(tables *models.SalesTables) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.variant = config.VariantSales
	d.sales = tables
	d.loaded = true
}

// SetRetailTables injects tables directly, for tests.
func (d *Dashboard) SetRetailTables(tables *models.RetailTables) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.variant = config.VariantRetail
	d.retail = tables
	d.loaded = true
}

// Normalize fills a selection's open date bounds with the fact table's
// min/max so an absent range means "everything". An explicit inverted
// range is left alone — it legitimately selects nothing.
func (d *Dashboard) Normalize(sel models.FilterSelection) models.FilterSelection {
	min, max := d.bounds()
	if sel.From.IsZero() {
		sel.From = min
	}
	if sel.To.IsZero() {
		sel.To = max
	}
	return sel
}

func (d *Dashboard) bounds() (time.Time, time.Time) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var min, max time.Time
	visit := func(t time.Time) {
		if min.IsZero() || t.Before(min) {
			min = t
		}
		if max.IsZero() || t.After(max) {
			max = t
		}
	}

	switch d.variant {
	case config.VariantSales:
		if d.sales != nil {
			for _, rec := range d.sales.Sales {
				visit(rec.Date)
			}
		}
	case config.VariantRetail:
		if d.retail != nil {
			for _, rec := range d.retail.Sales {
				visit(rec.Date)
			}
		}
	}
	return min, max
}

// FilterOptions describes the selectable controls for the UI: the date
// bounds of the fact table plus the category/region option lists.
type FilterOptions struct {
	Variant    string   `json:"variant"`
	MinDate    string   `json:"min_date"`
	MaxDate    string   `json:"max_date"`
	Categories []string `json:"categories"`
	Regions    []string `json:"regions"`
}

func (d *Dashboard) FilterOptions() FilterOptions {
	min, max := d.bounds()

	opts := FilterOptions{Variant: d.variant}
	if !min.IsZero() {
		opts.MinDate = min.Format("2006-01-02")
		opts.MaxDate = max.Format("2006-01-02")
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	switch d.variant {
	case config.VariantSales:
		if d.sales != nil {
			opts.Categories = uniqueStrings(func(yield func(string)) {
				for _, p := range d.sales.Products {
					yield(p.Category)
				}
			})
			opts.Regions = uniqueStrings(func(yield func(string)) {
				for _, r := range d.sales.Regions {
					yield(r.Name)
				}
			})
		}
	case config.VariantRetail:
		if d.retail != nil {
			opts.Categories = uniqueStrings(func(yield func(string)) {
				for _, s := range d.retail.Stores {
					yield(s.Type)
				}
			})
			depts := make(map[int]bool)
			for _, rec := range d.retail.Sales {
				depts[rec.Dept] = true
			}
			ids := make([]int, 0, len(depts))
			for id := range depts {
				ids = append(ids, id)
			}
			sort.Ints(ids)
			for _, id := range ids {
				opts.Regions = append(opts.Regions, strconv.Itoa(id))
			}
		}
	}
	return opts
}

func uniqueStrings(each func(yield func(string))) []string {
	seen := make(map[string]bool)
	var out []string
	each(func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	})
	sort.Strings(out)
	return out
}

// SalesViews recomputes every sales-variant section for a selection.
func (d *Dashboard) SalesViews(sel models.FilterSelection) (models.SalesViews, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.sales == nil {
		return models.SalesViews{}, fmt.Errorf("sales tables not loaded")
	}
	return analytics.ComputeSalesViews(d.sales, sel), nil
}

// RetailViews recomputes every retail-variant section for a selection.
func (d *Dashboard) RetailViews(sel models.FilterSelection) (models.RetailViews, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.retail == nil {
		return models.RetailViews{}, fmt.Errorf("retail tables not loaded")
	}
	return analytics.ComputeRetailViews(d.retail, sel), nil
}

// ExportJSON materializes the report for a selection and replaces
// mockplus_data.json in dir. The payload goes through the same view
// computation as the charts.
func (d *Dashboard) ExportJSON(dir string, sel models.FilterSelection) (string, error) {
	switch d.variant {
	case config.VariantSales:
		views, err := d.SalesViews(sel)
		if err != nil {
			return "", err
		}
		return report.WriteJSON(dir, report.BuildSalesReport(views))
	case config.VariantRetail:
		views, err := d.RetailViews(sel)
		if err != nil {
			return "", err
		}
		return report.WriteJSON(dir, report.BuildRetailReport(views))
	}
	return "", fmt.Errorf("unknown dashboard variant %q", d.variant)
}

// Workbook materializes the report as a downloadable workbook and
// returns its timestamped filename.
func (d *Dashboard) Workbook(sel models.FilterSelection, now time.Time) ([]byte, string, error) {
	switch d.variant {
	case config.VariantSales:
		views, err := d.SalesViews(sel)
		if err != nil {
			return nil, "", err
		}
		data, err := report.SalesWorkbook(report.BuildSalesReport(views))
		if err != nil {
			return nil, "", err
		}
		return data, report.Filename(d.variant, now), nil
	case config.VariantRetail:
		views, err := d.RetailViews(sel)
		if err != nil {
			return nil, "", err
		}
		data, err := report.RetailWorkbook(report.BuildRetailReport(views))
		if err != nil {
			return nil, "", err
		}
		return data, report.Filename(d.variant, now), nil
	}
	return nil, "", fmt.Errorf("unknown dashboard variant %q", d.variant)
}

// Stats reports load state for the admin endpoint.
func (d *Dashboard) Stats() map[string]any {
	d.mu.RLock()
	defer d.mu.RUnlock()

	stats := map[string]any{
		"variant": d.variant,
		"loaded":  d.loaded,
	}
	switch {
	case d.sales != nil:
		stats["sales_records"] = len(d.sales.Sales)
		stats["customers"] = len(d.sales.Customers)
		stats["products"] = len(d.sales.Products)
		stats["regions"] = len(d.sales.Regions)
	case d.retail != nil:
		stats["sales_records"] = len(d.retail.Sales)
		stats["stores"] = len(d.retail.Stores)
		stats["features"] = len(d.retail.Features)
	}
	return stats
}
