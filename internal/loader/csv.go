package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
)

// Column headers of the retail-variant CSV files.
const (
	colStore        = "Store"
	colType         = "Type"
	colSize         = "Size"
	colDept         = "Dept"
	colCSVDate      = "Date"
	colWeeklySales  = "Weekly_Sales"
	colIsHoliday    = "IsHoliday"
	colTemperature  = "Temperature"
	colFuelPrice    = "Fuel_Price"
	colCPI          = "CPI"
	colUnemployment = "Unemployment"
)

type csvTable struct {
	file string
	cols map[string]int
	rows [][]string
}

func openCSV(path string) (*csvTable, error) {
	file := filepath.Base(path)

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.MalformedInput(err, fmt.Sprintf("cannot open %s", file))
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.MalformedInput(err, fmt.Sprintf("cannot parse %s", file))
	}
	if len(records) == 0 {
		return nil, errors.MalformedInput(nil, fmt.Sprintf("%s is empty", file))
	}

	cols := make(map[string]int, len(records[0]))
	for i, header := range records[0] {
		cols[strings.TrimSpace(header)] = i
	}

	return &csvTable{file: file, cols: cols, rows: records[1:]}, nil
}

func (t *csvTable) col(name string) (int, error) {
	idx, ok := t.cols[name]
	if !ok {
		return 0, errors.MalformedInput(nil, fmt.Sprintf("%s: missing column %q", t.file, name))
	}
	return idx, nil
}

func (t *csvTable) rowErr(row int, err error) error {
	return errors.MalformedInput(err, fmt.Sprintf("%s row %d", t.file, row+2))
}

func parseBoolCell(value string) (bool, error) {
	return strconv.ParseBool(strings.ToLower(strings.TrimSpace(value)))
}

func readStores(ctx context.Context, path string) ([]models.Store, error) {
	t, err := openCSV(path)
	if err != nil {
		return nil, err
	}

	storeIdx, err := t.col(colStore)
	if err != nil {
		return nil, err
	}
	typeIdx, err := t.col(colType)
	if err != nil {
		return nil, err
	}
	sizeIdx, err := t.col(colSize)
	if err != nil {
		return nil, err
	}

	stores := make([]models.Store, 0, len(t.rows))
	for i, row := range t.rows {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if emptyRow(row) {
			continue
		}

		store, err := parseIntCell(cell(row, storeIdx))
		if err != nil {
			return nil, t.rowErr(i, err)
		}
		size, err := parseIntCell(cell(row, sizeIdx))
		if err != nil {
			return nil, t.rowErr(i, err)
		}

		stores = append(stores, models.Store{
			Store: store,
			Type:  cell(row, typeIdx),
			Size:  size,
		})
	}
	return stores, nil
}

func readWeeklySales(ctx context.Context, path string) ([]models.WeeklySales, error) {
	t, err := openCSV(path)
	if err != nil {
		return nil, err
	}

	storeIdx, err := t.col(colStore)
	if err != nil {
		return nil, err
	}
	deptIdx, err := t.col(colDept)
	if err != nil {
		return nil, err
	}
	dateIdx, err := t.col(colCSVDate)
	if err != nil {
		return nil, err
	}
	salesIdx, err := t.col(colWeeklySales)
	if err != nil {
		return nil, err
	}
	holidayIdx, err := t.col(colIsHoliday)
	if err != nil {
		return nil, err
	}

	sales := make([]models.WeeklySales, 0, len(t.rows))
	for i, row := range t.rows {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if emptyRow(row) {
			continue
		}

		store, err := parseIntCell(cell(row, storeIdx))
		if err != nil {
			return nil, t.rowErr(i, err)
		}
		dept, err := parseIntCell(cell(row, deptIdx))
		if err != nil {
			return nil, t.rowErr(i, err)
		}
		date, err := parseDate(cell(row, dateIdx))
		if err != nil {
			return nil, t.rowErr(i, err)
		}
		weekly, err := parseFloatCell(cell(row, salesIdx))
		if err != nil {
			return nil, t.rowErr(i, err)
		}
		holiday, err := parseBoolCell(cell(row, holidayIdx))
		if err != nil {
			return nil, t.rowErr(i, err)
		}

		sales = append(sales, models.WeeklySales{
			Store:       store,
			Dept:        dept,
			Date:        date,
			WeeklySales: weekly,
			IsHoliday:   holiday,
		})
	}
	return sales, nil
}

func readFeatures(ctx context.Context, path string) ([]models.FeatureRow, error) {
	t, err := openCSV(path)
	if err != nil {
		return nil, err
	}

	storeIdx, err := t.col(colStore)
	if err != nil {
		return nil, err
	}
	dateIdx, err := t.col(colCSVDate)
	if err != nil {
		return nil, err
	}
	tempIdx, err := t.col(colTemperature)
	if err != nil {
		return nil, err
	}
	fuelIdx, err := t.col(colFuelPrice)
	if err != nil {
		return nil, err
	}
	cpiIdx, err := t.col(colCPI)
	if err != nil {
		return nil, err
	}
	unempIdx, err := t.col(colUnemployment)
	if err != nil {
		return nil, err
	}
	holidayIdx, err := t.col(colIsHoliday)
	if err != nil {
		return nil, err
	}

	features := make([]models.FeatureRow, 0, len(t.rows))
	for i, row := range t.rows {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if emptyRow(row) {
			continue
		}

		store, err := parseIntCell(cell(row, storeIdx))
		if err != nil {
			return nil, t.rowErr(i, err)
		}
		date, err := parseDate(cell(row, dateIdx))
		if err != nil {
			return nil, t.rowErr(i, err)
		}
		temp, err := parseFloatCell(cell(row, tempIdx))
		if err != nil {
			return nil, t.rowErr(i, err)
		}
		fuel, err := parseFloatCell(cell(row, fuelIdx))
		if err != nil {
			return nil, t.rowErr(i, err)
		}
		cpi, err := parseFloatCell(cell(row, cpiIdx))
		if err != nil {
			return nil, t.rowErr(i, err)
		}
		unemp, err := parseFloatCell(cell(row, unempIdx))
		if err != nil {
			return nil, t.rowErr(i, err)
		}
		holiday, err := parseBoolCell(cell(row, holidayIdx))
		if err != nil {
			return nil, t.rowErr(i, err)
		}

		features = append(features, models.FeatureRow{
			Store:        store,
			Date:         date,
			Temperature:  temp,
			FuelPrice:    fuel,
			CPI:          cpi,
			Unemployment: unemp,
			IsHoliday:    holiday,
		})
	}
	return features, nil
}
