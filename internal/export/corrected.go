package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/bps-nganjuk/tagmap/internal/registry"
	"github.com/bps-nganjuk/tagmap/internal/resolve"
	"github.com/bps-nganjuk/tagmap/internal/rowset"
)

// CorrectRows returns a copy of rows where every row carrying a full
// administrative code has its village and sub-district columns overwritten
// with the registry's canonical names. Rows without a code, or with a code
// the registry does not know, pass through unchanged.
func CorrectRows(rows []rowset.Row, reg *registry.Registry) ([]rowset.Row, int) {
	out := make([]rowset.Row, 0, len(rows))
	corrected := 0
	for _, row := range rows {
		code, ok := resolve.ExtractCode(row)
		if !ok {
			out = append(out, row)
			continue
		}
		village, subDistrict, ok := reg.Canonical(code)
		if !ok {
			out = append(out, row)
			continue
		}

		clone := row.Clone()
		changed := false
		if col, found := clone.LookupColumn(rowset.VillageColumns); found && clone.Get(col) != village {
			clone.Set(col, village)
			changed = true
		}
		if col, found := clone.LookupColumn(rowset.SubDistrictColumns); found && subDistrict != "" && clone.Get(col) != subDistrict {
			clone.Set(col, subDistrict)
			changed = true
		}
		if changed {
			corrected++
		}
		out = append(out, clone)
	}
	return out, corrected
}

// WriteRows writes rows back out as a single-sheet workbook preserving the
// original column order.
func WriteRows(path string, rows []rowset.Row) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Data")
	if err != nil {
		return eris.Wrap(err, "export: add data sheet")
	}

	if len(rows) > 0 {
		header := sheet.AddRow()
		for _, col := range rows[0].Columns() {
			header.AddCell().SetString(col)
		}
		for _, row := range rows {
			r := sheet.AddRow()
			for _, v := range row.Values() {
				r.AddCell().SetString(v)
			}
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	zap.L().Info("wrote corrected rows", zap.String("path", path), zap.Int("rows", len(rows)))
	return nil
}
