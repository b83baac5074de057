package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
)

// Column headers of the sales-variant workbooks.
const (
	colDate         = "日期"
	colAmount       = "销售额"
	colQuantity     = "数量"
	colCustomerID   = "客户ID"
	colProductID    = "产品ID"
	colRegionID     = "地区ID"
	colCustomerName = "客户名称"
	colCustomerType = "客户类型"
	colProductName  = "产品名称"
	colCategory     = "产品类别"
	colRegionName   = "地区名称"
)

type sheet struct {
	file string
	cols map[string]int
	rows [][]string
}

// openSheet reads the first worksheet of an Excel workbook into memory,
// mapping header names to column positions.
func openSheet(path string) (*sheet, error) {
	file := filepath.Base(path)

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.MalformedInput(err, fmt.Sprintf("cannot open workbook %s", file))
	}
	defer f.Close()

	name := f.GetSheetName(0)
	if name == "" {
		return nil, errors.MalformedInput(nil, fmt.Sprintf("workbook %s has no sheets", file))
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, errors.MalformedInput(err, fmt.Sprintf("cannot read rows of %s", file))
	}
	if len(rows) == 0 {
		return nil, errors.MalformedInput(nil, fmt.Sprintf("workbook %s is empty", file))
	}

	cols := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		cols[strings.TrimSpace(header)] = i
	}

	return &sheet{file: file, cols: cols, rows: rows[1:]}, nil
}

func (s *sheet) col(name string) (int, error) {
	idx, ok := s.cols[name]
	if !ok {
		return 0, errors.MalformedInput(nil, fmt.Sprintf("%s: missing column %q", s.file, name))
	}
	return idx, nil
}

// cell guards against short rows: excelize drops trailing empty cells.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func emptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseFloatCell(value string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
}

func parseIntCell(value string) (int, error) {
	if n, err := strconv.Atoi(value); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func (s *sheet) rowErr(row int, err error) error {
	return errors.MalformedInput(err, fmt.Sprintf("%s row %d", s.file, row+2))
}

func readSalesFact(ctx context.Context, path string) ([]models.SalesRecord, error) {
	s, err := openSheet(path)
	if err != nil {
		return nil, err
	}

	var dateIdx, amountIdx, qtyIdx, custIdx, prodIdx, regionIdx int
	for name, dst := range map[string]*int{
		colDate:       &dateIdx,
		colAmount:     &amountIdx,
		colQuantity:   &qtyIdx,
		colCustomerID: &custIdx,
		colProductID:  &prodIdx,
		colRegionID:   &regionIdx,
	} {
		if *dst, err = s.col(name); err != nil {
			return nil, err
		}
	}

	records := make([]models.SalesRecord, 0, len(s.rows))
	for i, row := range s.rows {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if emptyRow(row) {
			continue
		}

		date, err := parseDate(cell(row, dateIdx))
		if err != nil {
			return nil, s.rowErr(i, err)
		}
		amount, err := parseFloatCell(cell(row, amountIdx))
		if err != nil {
			return nil, s.rowErr(i, err)
		}
		qty, err := parseIntCell(cell(row, qtyIdx))
		if err != nil {
			return nil, s.rowErr(i, err)
		}

		records = append(records, models.SalesRecord{
			Date:       date,
			Amount:     amount,
			Quantity:   qty,
			CustomerID: cell(row, custIdx),
			ProductID:  cell(row, prodIdx),
			RegionID:   cell(row, regionIdx),
		})
	}
	return records, nil
}

func readCustomers(ctx context.Context, path string) ([]models.Customer, error) {
	s, err := openSheet(path)
	if err != nil {
		return nil, err
	}

	idIdx, err := s.col(colCustomerID)
	if err != nil {
		return nil, err
	}
	nameIdx, err := s.col(colCustomerName)
	if err != nil {
		return nil, err
	}
	typeIdx, err := s.col(colCustomerType)
	if err != nil {
		return nil, err
	}

	customers := make([]models.Customer, 0, len(s.rows))
	for _, row := range s.rows {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if emptyRow(row) {
			continue
		}
		customers = append(customers, models.Customer{
			ID:   cell(row, idIdx),
			Name: cell(row, nameIdx),
			Type: cell(row, typeIdx),
		})
	}
	return customers, nil
}

func readProducts(ctx context.Context, path string) ([]models.Product, error) {
	s, err := openSheet(path)
	if err != nil {
		return nil, err
	}

	idIdx, err := s.col(colProductID)
	if err != nil {
		return nil, err
	}
	nameIdx, err := s.col(colProductName)
	if err != nil {
		return nil, err
	}
	catIdx, err := s.col(colCategory)
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(s.rows))
	for _, row := range s.rows {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if emptyRow(row) {
			continue
		}
		products = append(products, models.Product{
			ID:       cell(row, idIdx),
			Name:     cell(row, nameIdx),
			Category: cell(row, catIdx),
		})
	}
	return products, nil
}

func readRegions(ctx context.Context, path string) ([]models.Region, error) {
	s, err := openSheet(path)
	if err != nil {
		return nil, err
	}

	idIdx, err := s.col(colRegionID)
	if err != nil {
		return nil, err
	}
	nameIdx, err := s.col(colRegionName)
	if err != nil {
		return nil, err
	}

	regions := make([]models.Region, 0, len(s.rows))
	for _, row := range s.rows {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if emptyRow(row) {
			continue
		}
		regions = append(regions, models.Region{
			ID:   cell(row, idIdx),
			Name: cell(row, nameIdx),
		})
	}
	return regions, nil
}
