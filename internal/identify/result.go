package identify

import (
	"romdex/internal/catalog"
	"romdex/internal/checksum"
)

// Result statuses. A miss against the catalogs is still a success; only
// unreadable or unrecognized files produce StatusError.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is the outcome of identifying one file. It is produced fresh per
// call and never mutated after return.
type Result struct {
	FilePath        string               `json:"file_path"`
	FileName        string               `json:"file_name"`
	Fingerprint     checksum.Fingerprint `json:"fingerprint"`
	Identified      bool                 `json:"identified"`
	Entry           *catalog.Entry       `json:"entry,omitempty"`
	MatchType       catalog.MatchType    `json:"match_type,omitempty"`
	MatchConfidence float64              `json:"match_confidence,omitempty"`
	CorrectName     string               `json:"correct_name,omitempty"`
	NameMatches     bool                 `json:"name_matches"`
	Status          string               `json:"status"`
	Message         string               `json:"message,omitempty"`
}

// Report aggregates a batch of identification results.
type Report struct {
	Total              int      `json:"total"`
	Identified         int      `json:"identified"`
	IdentificationRate float64  `json:"identification_rate"`
	CorrectNames       int      `json:"correct_names"`
	CorrectNameRate    float64  `json:"correct_name_rate"`
	Results            []Result `json:"results"`
}

// BuildReport computes aggregate rates over a result set. Rates degrade to 0
// rather than dividing by zero.
func BuildReport(results []Result) Report {
	report := Report{Total: len(results), Results: results}
	for _, result := range results {
		if result.Identified {
			report.Identified++
		}
		if result.NameMatches {
			report.CorrectNames++
		}
	}
	if report.Total > 0 {
		report.IdentificationRate = float64(report.Identified) / float64(report.Total)
	}
	if report.Identified > 0 {
		report.CorrectNameRate = float64(report.CorrectNames) / float64(report.Identified)
	}
	return report
}
