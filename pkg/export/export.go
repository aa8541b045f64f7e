// Package export renders a run result for downstream reporting tools.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"ridepricer/core/model"
)

// WriteJSON writes the run result to w in JSON format.
func WriteJSON(w io.Writer, res model.RunResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteCSV writes the run result to w as variable/value rows.
func WriteCSV(w io.Writer, res model.RunResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"variable", "value"}); err != nil {
		return err
	}
	rows := [][]string{
		{"run_id", res.RunID},
		{"trials", strconv.Itoa(res.Trials)},
		{"expected_profit", formatFloat(res.Breakdown.Profit)},
		{"revenue", formatFloat(res.Breakdown.Revenue)},
		{"operating_cost", formatFloat(res.Breakdown.OperatingCost)},
		{"depreciation_cost", formatFloat(res.Breakdown.DepreciationCost)},
	}
	for _, t := range model.VehicleTypes {
		for _, s := range model.Segments {
			rows = append(rows, []string{
				fmt.Sprintf("price_%s_%s", t, s),
				formatFloat(res.Best.Price(t, s)),
			})
		}
		rows = append(rows, []string{
			fmt.Sprintf("fleet_%s", t),
			strconv.Itoa(res.Best.Fleet(t)),
		})
	}
	for _, rec := range rows {
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
