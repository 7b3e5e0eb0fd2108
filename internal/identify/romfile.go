package identify

import (
	"path/filepath"
	"strings"
)

// romExtensions is the fixed allow-list of recognized ROM file extensions.
// Archive formats are treated as opaque content; romdex never inspects what
// is inside them.
var romExtensions = map[string]struct{}{
	".nes": {}, ".smc": {}, ".sfc": {}, ".gb": {}, ".gbc": {}, ".gba": {},
	".n64": {}, ".z64": {}, ".v64": {}, ".nds": {}, ".iso": {}, ".cue": {},
	".bin": {}, ".smd": {}, ".md": {}, ".32x": {}, ".gg": {}, ".sms": {},
	".zip": {}, ".7z": {}, ".rom": {}, ".ccd": {}, ".chd": {},
}

// IsROMFile reports whether the path carries a recognized ROM extension.
// The check is case-insensitive and looks at the extension only.
func IsROMFile(path string) bool {
	_, ok := romExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}
