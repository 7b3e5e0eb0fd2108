package identify

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	regionPattern    = regexp.MustCompile(`\(([^)]+)\)`)
	versionPattern   = regexp.MustCompile(`\(v([^)]+)\)`)
	attributePattern = regexp.MustCompile(`\[([^\]]+)\]`)
)

// NameComponents are the conventional pieces of a ROM filename: a title
// followed by parenthesized region/version tags and bracketed attributes.
type NameComponents struct {
	Title      string   `json:"title"`
	Region     string   `json:"region,omitempty"`
	Version    string   `json:"version,omitempty"`
	Attributes []string `json:"attributes,omitempty"`
}

// ParseName splits a ROM filename into its components. The extension is
// dropped; tags not matching the convention stay part of the title.
func ParseName(filename string) NameComponents {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	components := NameComponents{Title: base}

	if m := regionPattern.FindStringSubmatch(base); m != nil {
		components.Region = m[1]
	}
	if m := versionPattern.FindStringSubmatch(base); m != nil {
		components.Version = m[1]
		if components.Region == "v"+components.Version {
			components.Region = ""
		}
	}
	for _, m := range attributePattern.FindAllStringSubmatch(base, -1) {
		components.Attributes = append(components.Attributes, m[1])
	}

	title := base
	if components.Region != "" {
		title = strings.Replace(title, "("+components.Region+")", "", 1)
	}
	if components.Version != "" {
		title = strings.Replace(title, "(v"+components.Version+")", "", 1)
	}
	for _, attr := range components.Attributes {
		title = strings.Replace(title, "["+attr+"]", "", 1)
	}
	components.Title = strings.Join(strings.Fields(title), " ")
	return components
}

// StandardizedName rebuilds a canonical filename from parsed components.
func StandardizedName(components NameComponents, extension string) string {
	var b strings.Builder
	b.WriteString(components.Title)
	if components.Region != "" {
		b.WriteString(" (" + components.Region + ")")
	}
	if components.Version != "" {
		b.WriteString(" (v" + components.Version + ")")
	}
	for _, attr := range components.Attributes {
		b.WriteString(" [" + attr + "]")
	}
	b.WriteString(extension)
	return b.String()
}
