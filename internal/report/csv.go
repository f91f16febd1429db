package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/quantsift/quantsift/internal/core"
)

// csvHeader is the full-fidelity export header: every computed field
// plus the value score. Values are written unrounded.
var csvHeader = []string{
	"Symbol", "Company", "Sector",
	"Trailing P/E", "Forward P/E", "PEG Ratio",
	"ROE %", "Debt/Equity",
	"Earnings Growth %", "Revenue Growth %",
	"Rec Score", "Upside %",
	"Value Score",
}

// Filename returns the export filename for a universe.
func Filename(index core.Index) string {
	return fmt.Sprintf("undervalued_growth_%s_stocks.csv", index)
}

// WriteCSV serializes the ranked records as UTF-8 comma-separated
// text, one row per record in rank order. An empty shortlist still
// produces a valid header-only file.
func WriteCSV(w io.Writer, records []core.ScreenedRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.Symbol,
			r.Company,
			r.Sector,
			exportFloat(r.TrailingPE),
			exportFloat(r.ForwardPE),
			exportFloat(r.PEGRatio),
			exportFloat(r.ROE),
			exportFloat(r.DebtToEquity),
			exportFloat(r.EarningsGrowth),
			exportFloat(r.RevenueGrowth),
			exportFloat(r.RecScore),
			exportFloat(r.Upside),
			strconv.FormatFloat(r.ValueScore, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row for %s: %w", r.Symbol, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses an export produced by WriteCSV back into records.
// Only the columns the screener computes are restored.
func ReadCSV(r io.Reader) ([]core.ScreenedRecord, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) != len(csvHeader) {
		return nil, fmt.Errorf("unexpected header width: %d", len(header))
	}

	var records []core.ScreenedRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

		score, err := strconv.ParseFloat(row[12], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing value score for %s: %w", row[0], err)
		}

		records = append(records, core.ScreenedRecord{
			Snapshot: core.Snapshot{
				Symbol:         row[0],
				Company:        row[1],
				Sector:         row[2],
				TrailingPE:     parseFloat(row[3]),
				ForwardPE:      parseFloat(row[4]),
				PEGRatio:       parseFloat(row[5]),
				ROE:            parseFloat(row[6]),
				DebtToEquity:   parseFloat(row[7]),
				EarningsGrowth: parseFloat(row[8]),
				RevenueGrowth:  parseFloat(row[9]),
				RecScore:       parseFloat(row[10]),
				Upside:         parseFloat(row[11]),
			},
			ValueScore: score,
			Rank:       len(records) + 1,
		})
	}

	return records, nil
}

// exportFloat renders a possibly-absent value at full precision.
// Absent becomes an empty cell.
func exportFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
