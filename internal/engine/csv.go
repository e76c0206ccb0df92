package engine

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

func WriteLedgerCSV(path string, ledger []LedgerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return EncodeLedgerCSV(f, ledger)
}

// EncodeLedgerCSV writes a header row followed by one row per ledger entry.
func EncodeLedgerCSV(out io.Writer, ledger []LedgerRow) error {
	w := csv.NewWriter(out)

	header := []string{
		"simulation",
		"period",
		"setup",
		"scenario",
		"raw_return",
		"kelly_fraction",
		"growth_factor",
		"value_start",
		"value_end",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Simulation),
			strconv.Itoa(r.Period),
			r.Setup,
			r.Scenario,
			fmtFloat(r.RawReturn),
			fmtFloat(r.Kelly),
			fmtFloat(r.GrowthFactor),
			fmtFloat(r.ValueStart),
			fmtFloat(r.ValueEnd),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
