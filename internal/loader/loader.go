package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
)

// Fixed input file names. The dashboards were built against these exact
// names; anything missing aborts the whole load.
const (
	SalesFactFile   = "销售数据.xlsx"
	CustomerDimFile = "客户数据.xlsx"
	ProductDimFile  = "产品数据.xlsx"
	RegionDimFile   = "地区数据.xlsx"
	StoresFile      = "stores data-set.csv"
	WeeklySalesFile = "sales data-set.csv"
	FeaturesFile    = "Features data set.csv"
)

var (
	SalesFiles  = []string{SalesFactFile, CustomerDimFile, ProductDimFile, RegionDimFile}
	RetailFiles = []string{StoresFile, WeeklySalesFile, FeaturesFile}
)

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"01-02-06",
}

// checkRequired verifies every required file up front so the error names
// the full set, not just the first miss.
func checkRequired(dir string, files []string) error {
	var missing []string
	for _, name := range files {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return errors.MissingInputFile(fmt.Sprintf(
			"missing input files: %s (required: %s)",
			strings.Join(missing, ", "), strings.Join(files, ", ")))
	}
	return nil
}

// LoadSalesTables reads the four Excel workbooks of the sales variant.
// All-or-nothing: any parse failure drops the whole result.
func LoadSalesTables(ctx context.Context, dir string) (*models.SalesTables, error) {
	if err := checkRequired(dir, SalesFiles); err != nil {
		return nil, err
	}

	tables := &models.SalesTables{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		tables.Sales, err = readSalesFact(ctx, filepath.Join(dir, SalesFactFile))
		return err
	})
	g.Go(func() error {
		var err error
		tables.Customers, err = readCustomers(ctx, filepath.Join(dir, CustomerDimFile))
		return err
	})
	g.Go(func() error {
		var err error
		tables.Products, err = readProducts(ctx, filepath.Join(dir, ProductDimFile))
		return err
	})
	g.Go(func() error {
		var err error
		tables.Regions, err = readRegions(ctx, filepath.Join(dir, RegionDimFile))
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

// LoadRetailTables reads the three CSV files of the retail variant.
func LoadRetailTables(ctx context.Context, dir string) (*models.RetailTables, error) {
	if err := checkRequired(dir, RetailFiles); err != nil {
		return nil, err
	}

	tables := &models.RetailTables{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		tables.Stores, err = readStores(ctx, filepath.Join(dir, StoresFile))
		return err
	})
	g.Go(func() error {
		var err error
		tables.Sales, err = readWeeklySales(ctx, filepath.Join(dir, WeeklySalesFile))
		return err
	})
	g.Go(func() error {
		var err error
		tables.Features, err = readFeatures(ctx, filepath.Join(dir, FeaturesFile))
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

// parseDate accepts the date layouts seen across the input files and
// normalizes to a midnight-UTC calendar date.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}
