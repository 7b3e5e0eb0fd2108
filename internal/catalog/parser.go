package catalog

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// datDocument mirrors the DAT wire format: an optional header naming the
// collection, then game elements wrapping rom records. The root element name
// varies between tools (datafile, dat), so it is left unconstrained.
type datDocument struct {
	Header *datHeader `xml:"header"`
	Games  []datGame  `xml:"game"`
}

type datHeader struct {
	Name string `xml:"name"`
}

type datGame struct {
	Name        string   `xml:"name,attr"`
	Description string   `xml:"description"`
	Roms        []datRom `xml:"rom"`
}

type datRom struct {
	Name string `xml:"name,attr"`
	Size string `xml:"size,attr"`
	CRC  string `xml:"crc,attr"`
	MD5  string `xml:"md5,attr"`
	SHA1 string `xml:"sha1,attr"`
}

// parseSource reads and parses one DAT document into a staging catalog that
// the store commits separately. Nothing shared is touched here, so a parse
// failure cannot leave a half-populated catalog behind.
func parseSource(path string) (string, []*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("read source: %w", err)
	}

	var doc datDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return "", nil, fmt.Errorf("parse source: %w", err)
	}

	name := ""
	if doc.Header != nil {
		name = strings.TrimSpace(doc.Header.Name)
	}
	if name == "" {
		name = filepath.Base(path)
	}

	var entries []*Entry
	for _, game := range doc.Games {
		description := strings.TrimSpace(game.Description)
		if description == "" {
			description = game.Name
		}
		for _, rom := range game.Roms {
			size := rom.Size
			if size == "" {
				size = "0"
			}
			entries = append(entries, &Entry{
				Name:        rom.Name,
				Description: description,
				Size:        size,
				MD5:         strings.ToLower(rom.MD5),
				CRC32:       strings.ToLower(rom.CRC),
				SHA1:        strings.ToLower(rom.SHA1),
			})
		}
	}
	return name, entries, nil
}

// recognizedSource reports whether the file looks like a loadable DAT source.
func recognizedSource(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".dat", ".xml":
		return true
	default:
		return false
	}
}
