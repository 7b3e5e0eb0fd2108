package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Format names a supported report serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatHTML Format = "html"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatHTML:
		return FormatHTML, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported report format %q", value)
	}
}

// WriteJSON serializes any report shape as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}

// SaveJSON writes the report to a file.
func SaveJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}
	defer file.Close()
	if err := WriteJSON(file, v); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return file.Close()
}
