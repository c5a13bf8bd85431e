package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ChicagoDave/aerostat/pkg/analysis"
)

// WriteProfileCSV writes a height profile with the same columns as the
// Profile sheet.
func WriteProfileCSV(w io.Writer, points []analysis.Point) error {
	return writeCSV(w, profileRows(points))
}

// WriteMaterialsCSV writes a material comparison with the same columns as
// the Materials sheet.
func WriteMaterialsCSV(w io.Writer, rows []analysis.MaterialRow) error {
	return writeCSV(w, materialRows(rows))
}

func writeCSV(w io.Writer, rows [][]any) error {
	cw := csv.NewWriter(w)
	for _, row := range rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = csvField(v)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvField(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return x
	}
	return fmt.Sprint(v)
}
