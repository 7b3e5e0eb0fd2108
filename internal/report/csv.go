package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"romdex/internal/identify"
)

// WriteCSV renders identification results as CSV with a header row.
func WriteCSV(w io.Writer, results []identify.Result) error {
	cw := csv.NewWriter(w)
	header := []string{"File Name", "Identified", "Match Type", "Confidence", "Correct Name", "Name Matches"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, result := range results {
		row := []string{
			result.FileName,
			fmt.Sprintf("%t", result.Identified),
			string(result.MatchType),
			percent(result.MatchConfidence),
			result.CorrectName,
			fmt.Sprintf("%t", result.NameMatches),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
