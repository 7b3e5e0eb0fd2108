package testsupport

import (
	"encoding/xml"
	"testing"
)

// DATRom is one rom record for a generated DAT fixture.
type DATRom struct {
	XMLName xml.Name `xml:"rom"`
	Name    string   `xml:"name,attr"`
	Size    string   `xml:"size,attr,omitempty"`
	CRC     string   `xml:"crc,attr,omitempty"`
	MD5     string   `xml:"md5,attr,omitempty"`
	SHA1    string   `xml:"sha1,attr,omitempty"`
}

// DATGame is one game record for a generated DAT fixture.
type DATGame struct {
	XMLName     xml.Name `xml:"game"`
	Name        string   `xml:"name,attr"`
	Description string   `xml:"description,omitempty"`
	Roms        []DATRom `xml:"rom"`
}

type datFixture struct {
	XMLName xml.Name   `xml:"datafile"`
	Header  *datHeader `xml:"header,omitempty"`
	Games   []DATGame  `xml:"game"`
}

type datHeader struct {
	Name string `xml:"name"`
}

// WriteDAT renders a DAT document to path. An empty header name omits the
// header element so the loader falls back to the base filename.
func WriteDAT(t testing.TB, path, headerName string, games ...DATGame) {
	t.Helper()

	doc := datFixture{Games: games}
	if headerName != "" {
		doc.Header = &datHeader{Name: headerName}
	}
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("marshal DAT fixture: %v", err)
	}
	WriteFile(t, path, append([]byte(xml.Header), data...))
}
