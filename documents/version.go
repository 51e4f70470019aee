package documents

import (
	"github.com/hashicorp/go-version"
)

// VersionHeader carries the server version on API responses.
const VersionHeader = "X-Version"

// LegacyVersion is the newest server version that does not return a task id on upload.
const LegacyVersion = "1.9.2"

var legacyVersion = version.Must(version.NewVersion(LegacyVersion))

// IsLegacy reports whether a server announcing v returns no task id on upload.
// A missing or unparsable version is treated as legacy.
func IsLegacy(v string) bool {
	if v == "" {
		return true
	}
	parsed, err := version.NewVersion(v)
	if err != nil {
		return true
	}
	return parsed.LessThanOrEqual(legacyVersion)
}
