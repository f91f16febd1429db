package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/quantsift/quantsift/internal/core"
)

// tableColumns are the display columns, a readable subset of the full
// export. Numerics render rounded to 2 decimal places; absent values
// render as "-".
var tableColumns = []string{
	"Symbol", "Company", "Sector", "Trailing P/E", "PEG Ratio",
	"Earnings Growth %", "Upside %", "ROE %",
}

// RenderTable writes the ranked shortlist as an aligned text table.
func RenderTable(w io.Writer, records []core.ScreenedRecord) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for i, col := range tableColumns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, col)
	}
	fmt.Fprintln(tw)

	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Symbol,
			r.Company,
			r.Sector,
			displayFloat(r.TrailingPE),
			displayFloat(r.PEGRatio),
			displayFloat(r.EarningsGrowth),
			displayFloat(r.Upside),
			displayFloat(r.ROE),
		)
	}

	return tw.Flush()
}

// displayFloat renders a possibly-absent value for the display table.
func displayFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}
