// Package export writes aggregation results and corrected row sets out as
// XLSX workbooks.
package export

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/bps-nganjuk/tagmap/internal/aggregate"
)

// WriteRanked writes the ranked village table to an XLSX workbook. The
// main sheet carries the ranked rows; a second sheet lists registry
// villages with zero tagged rows so field coordinators can chase gaps.
func WriteRanked(path string, ranked []aggregate.RankedRow, zero []aggregate.Record) error {
	f := xlsx.NewFile()

	sheet, err := f.AddSheet("Ranked")
	if err != nil {
		return eris.Wrap(err, "export: add ranked sheet")
	}
	header := sheet.AddRow()
	for _, h := range []string{"Rank", "Kecamatan", "Desa", "Jumlah Tagging", "Persentase"} {
		header.AddCell().SetString(h)
	}
	for _, row := range ranked {
		r := sheet.AddRow()
		r.AddCell().SetInt(row.Rank)
		r.AddCell().SetString(row.SubDistrict)
		r.AddCell().SetString(row.Village)
		r.AddCell().SetInt(row.Count)
		if row.Percentage != nil {
			r.AddCell().SetString(fmt.Sprintf("%.2f", *row.Percentage))
		} else {
			r.AddCell().SetString("-")
		}
	}

	if len(zero) > 0 {
		zeroSheet, err := f.AddSheet("Belum Ditag")
		if err != nil {
			return eris.Wrap(err, "export: add zero-count sheet")
		}
		zh := zeroSheet.AddRow()
		for _, h := range []string{"Kecamatan", "Desa"} {
			zh.AddCell().SetString(h)
		}
		for _, rec := range zero {
			r := zeroSheet.AddRow()
			r.AddCell().SetString(rec.SubDistrict)
			r.AddCell().SetString(rec.Village)
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	zap.L().Info("wrote ranked export",
		zap.String("path", path),
		zap.Int("ranked", len(ranked)),
		zap.Int("zero_count", len(zero)),
	)
	return nil
}
