package fetcher

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/bps-nganjuk/tagmap/internal/rowset"
)

// TableOptions configures tabular loading.
type TableOptions struct {
	SheetIndex int    // xlsx only, default 0
	SheetName  string // xlsx only, overrides SheetIndex when set
	Delimiter  rune   // csv only, default ','
}

// LoadTable reads a spreadsheet or CSV file into rows keyed by the header
// row. The format is chosen by file extension; anything that is not .xlsx
// or .xls is treated as delimited text.
func LoadTable(path string, opts TableOptions) ([]rowset.Row, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx", ".xls":
		return loadXLSX(path, opts)
	default:
		return loadCSV(path, opts)
	}
}

func loadXLSX(path string, opts TableOptions) ([]rowset.Row, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: open xlsx %s", path)
	}

	sheet, err := pickSheet(f, opts)
	if err != nil {
		return nil, err
	}

	var header []string
	var rows []rowset.Row
	for i, row := range sheet.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, cell.String())
		}
		if i == 0 {
			header = cells
			continue
		}
		if isBlank(cells) {
			continue
		}
		rows = append(rows, rowset.NewRow(header, cells))
	}

	zap.L().Debug("loaded xlsx table",
		zap.String("path", path),
		zap.String("sheet", sheet.Name),
		zap.Int("rows", len(rows)),
	)
	return rows, nil
}

func pickSheet(f *xlsx.File, opts TableOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("fetcher: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}
	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("fetcher: sheet index %d out of range (%d sheets)", opts.SheetIndex, len(f.Sheets))
	}
	return f.Sheets[opts.SheetIndex], nil
}

func loadCSV(path string, opts TableOptions) ([]rowset.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: open csv %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: read csv %s", path)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	var rows []rowset.Row
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		rows = append(rows, rowset.NewRow(header, rec))
	}

	zap.L().Debug("loaded csv table",
		zap.String("path", path),
		zap.Int("rows", len(rows)),
	)
	return rows, nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
