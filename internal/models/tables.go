package models

import "time"

// Sales variant fact table. One row per order line, date normalized to
// midnight UTC at load time.
type SalesRecord struct {
	Date       time.Time
	Amount     float64
	Quantity   int
	CustomerID string
	ProductID  string
	RegionID   string
}

type Customer struct {
	ID   string
	Name string
	Type string
}

type Product struct {
	ID       string
	Name     string
	Category string
}

type Region struct {
	ID   string
	Name string
}

type SalesTables struct {
	Sales     []SalesRecord
	Customers []Customer
	Products  []Product
	Regions   []Region
}

// Retail variant fact table. One row per store-department-week.
type WeeklySales struct {
	Store       int
	Dept        int
	Date        time.Time
	WeeklySales float64
	IsHoliday   bool
}

type Store struct {
	Store int
	Type  string
	Size  int
}

// FeatureRow carries the environmental covariates joined to weekly sales
// by (Store, Date).
type FeatureRow struct {
	Store        int
	Date         time.Time
	Temperature  float64
	FuelPrice    float64
	CPI          float64
	Unemployment float64
	IsHoliday    bool
}

type RetailTables struct {
	Stores   []Store
	Sales    []WeeklySales
	Features []FeatureRow
}

// FilterSelection is rebuilt on every request and never persisted.
// Categories holds product categories (sales) or store types (retail);
// Regions holds region names (sales) or department ids (retail). Empty
// slices mean no restriction.
type FilterSelection struct {
	From       time.Time
	To         time.Time
	Categories []string
	Regions    []string
}
