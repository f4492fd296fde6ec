package client

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jcarver/rentroll/internal/property"
)

// importHeader is the exact column set a property CSV must declare.
var importHeader = []string{
	"name", "address", "city", "state", "zipCode", "totalUnits",
	"purchasePrice", "purchaseDate", "propertyType", "status",
}

// ImportResult summarizes a bulk import run.
type ImportResult struct {
	Total     int      `json:"total"`
	Succeeded int      `json:"succeeded"`
	Errors    []string `json:"errors,omitempty"`
}

// RowDelay is the pause between row submissions so a large file does
// not hammer the server.
var RowDelay = 100 * time.Millisecond

// ImportProperties reads a property CSV and creates one property per
// row. A bad or missing header rejects the whole file with zero
// creates; a failing row is recorded and skipped.
func (c *Client) ImportProperties(r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Total++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", result.Total, err))
			continue
		}

		result.Total++
		p, err := rowToProperty(row)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", result.Total, err))
			continue
		}

		if _, err := c.CreateProperty(p); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d (%s): %v", result.Total, p.Name, err))
			continue
		}
		result.Succeeded++

		time.Sleep(RowDelay)
	}

	return result, nil
}

// checkHeader requires the header to match importHeader exactly,
// ignoring case and surrounding whitespace.
func checkHeader(header []string) error {
	if len(header) != len(importHeader) {
		return fmt.Errorf("bad header: want columns %s", strings.Join(importHeader, ","))
	}
	for i, col := range header {
		if !strings.EqualFold(strings.TrimSpace(col), importHeader[i]) {
			return fmt.Errorf("bad header: column %d is %q, want %q", i+1, col, importHeader[i])
		}
	}
	return nil
}

// rowToProperty coerces one CSV row into a property payload.
func rowToProperty(row []string) (*property.Property, error) {
	if len(row) != len(importHeader) {
		return nil, fmt.Errorf("got %d columns, want %d", len(row), len(importHeader))
	}
	for i := range row {
		row[i] = strings.TrimSpace(row[i])
	}

	totalUnits := 0
	if row[5] != "" {
		n, err := strconv.Atoi(row[5])
		if err != nil {
			return nil, fmt.Errorf("invalid totalUnits %q", row[5])
		}
		totalUnits = n
	}

	if row[7] != "" {
		if _, err := time.Parse("2006-01-02", row[7]); err != nil {
			return nil, fmt.Errorf("invalid purchaseDate %q (use YYYY-MM-DD)", row[7])
		}
	}

	return &property.Property{
		Name:          row[0],
		Street:        row[1],
		City:          row[2],
		State:         row[3],
		ZipCode:       row[4],
		TotalUnits:    totalUnits,
		PurchasePrice: row[6],
		PurchaseDate:  row[7],
		PropertyType:  property.Type(row[8]),
		Status:        property.Status(row[9]),
	}, nil
}
