package checksum

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"romdex/internal/services"
)

// Fingerprint identifies a file's content regardless of its name. The zero
// value means the file could not be read.
type Fingerprint struct {
	MD5   string `json:"md5"`
	SHA1  string `json:"sha1"`
	CRC32 string `json:"crc32"`
	Size  int64  `json:"size"`
}

// IsZero reports whether the fingerprint carries no content identity, which
// callers must treat as "unreadable file" rather than a lookup miss.
func (f Fingerprint) IsZero() bool {
	return f.MD5 == "" && f.SHA1 == "" && f.CRC32 == "" && f.Size == 0
}

// Compute reads the file once and returns its content fingerprint. On any
// read failure the zero Fingerprint is returned alongside the error.
func Compute(path string) (Fingerprint, error) {
	file, err := os.Open(path)
	if err != nil {
		return Fingerprint{}, services.Wrap(services.ErrIO, "checksum", "compute", path, err)
	}
	defer file.Close()

	md5Hash := md5.New()
	sha1Hash := sha1.New()
	crcHash := crc32.NewIEEE()

	size, err := io.Copy(io.MultiWriter(md5Hash, sha1Hash, crcHash), file)
	if err != nil {
		return Fingerprint{}, services.Wrap(services.ErrIO, "checksum", "compute", path, err)
	}

	return Fingerprint{
		MD5:   hex.EncodeToString(md5Hash.Sum(nil)),
		SHA1:  hex.EncodeToString(sha1Hash.Sum(nil)),
		CRC32: fmt.Sprintf("%08x", crcHash.Sum32()),
		Size:  size,
	}, nil
}
