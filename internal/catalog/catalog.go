package catalog

// MatchType names the index a lookup resolved through.
type MatchType string

const (
	MatchMD5   MatchType = "md5"
	MatchSHA1  MatchType = "sha1"
	MatchCRC32 MatchType = "crc32"
)

// Confidence values for hash lookups. Name-match confidence is computed per
// candidate and capped below the hash range.
const (
	ConfidenceMD5     = 1.0
	ConfidenceSHA1    = 0.99
	ConfidenceCRC32   = 0.95
	MaxNameConfidence = 0.8
)

// Entry is one ROM record from a DAT source. Entries are immutable after
// load; lookups hand out copies.
type Entry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Size        string `json:"size"`
	MD5         string `json:"md5,omitempty"`
	CRC32       string `json:"crc32,omitempty"`
	SHA1        string `json:"sha1,omitempty"`
	Catalog     string `json:"catalog"`
}

// Catalog is one loaded DAT source indexed by hash and by name.
type Catalog struct {
	name  string
	md5   map[string]*Entry
	sha1  map[string]*Entry
	crc32 map[string]*Entry
	names map[string]int

	// order preserves entry insertion order so name searches iterate
	// deterministically. names maps a rom name to its slot in order.
	order []*Entry
}

func newCatalog(name string) *Catalog {
	return &Catalog{
		name:  name,
		md5:   make(map[string]*Entry),
		sha1:  make(map[string]*Entry),
		crc32: make(map[string]*Entry),
		names: make(map[string]int),
	}
}

// Name returns the catalog's declared name.
func (c *Catalog) Name() string { return c.name }

// Len returns the number of entries in the name index, which covers every
// entry the source declared.
func (c *Catalog) Len() int { return len(c.names) }

func (c *Catalog) insert(entry *Entry) {
	entry.Catalog = c.name
	if entry.MD5 != "" {
		c.md5[entry.MD5] = entry
	}
	if entry.SHA1 != "" {
		c.sha1[entry.SHA1] = entry
	}
	if entry.CRC32 != "" {
		c.crc32[entry.CRC32] = entry
	}
	// The name index takes every entry, hashes or not. A repeated rom name
	// within one source replaces the earlier record in place.
	if idx, seen := c.names[entry.Name]; seen {
		c.order[idx] = entry
	} else {
		c.names[entry.Name] = len(c.order)
		c.order = append(c.order, entry)
	}
}

// CatalogStats summarizes one catalog for reporting.
type CatalogStats struct {
	Entries     int `json:"entries"`
	UniqueMD5   int `json:"unique_md5"`
	UniqueCRC32 int `json:"unique_crc32"`
	UniqueSHA1  int `json:"unique_sha1"`
}

// Stats aggregates the loaded catalogs.
type Stats struct {
	Catalogs     int                     `json:"catalogs"`
	TotalEntries int                     `json:"total_entries"`
	PerCatalog   map[string]CatalogStats `json:"per_catalog"`
}
