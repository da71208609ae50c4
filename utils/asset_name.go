package utils

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const maxExtLen = 10

var generatedAssetName = regexp.MustCompile(`^\d+-[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}(\.[a-z0-9]{1,9})?$`)

// NewAssetName builds a stored filename of the form <unix-millis>-<uuid><.ext>.
// The extension comes from the uploaded name when it is a plain alphanumeric
// suffix, otherwise from the detected content type.
func NewAssetName(originalName, contentType string, now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + uuid.NewString() + AssetExt(originalName, contentType)
}

func AssetExt(originalName, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if validExt(ext) {
		return ext
	}
	if m := mimetype.Lookup(contentType); m != nil {
		return m.Extension()
	}
	return ""
}

func validExt(ext string) bool {
	if len(ext) < 2 || len(ext) > maxExtLen || ext[0] != '.' {
		return false
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// ValidAssetName reports whether name is a bare filename safe to join under
// an asset directory or bucket.
func ValidAssetName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.Contains(name, "\x00")
}

// IsGeneratedAssetName reports whether name has the shape NewAssetName produces.
func IsGeneratedAssetName(name string) bool {
	return generatedAssetName.MatchString(name)
}
