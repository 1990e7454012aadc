package engine

import "regexp"

// Pre-compiled regexes for classifying engine stderr output into failure
// causes. Checked in order by [Classify]; the first matching pattern wins.
// The patterns track DuckDB's wording, which has been stable across the
// releases we target.
var (
	reMissingInput = regexp.MustCompile(
		`(?i)No files found that match the pattern|` +
			`Could not open file|` +
			`No such file or directory`)

	reCorruptInput = regexp.MustCompile(
		`(?i)no magic bytes found|` +
			`too small to be a Parquet file|` +
			`not a valid Parquet file|` +
			`Invalid Input Error.*parquet`)

	rePermission = regexp.MustCompile(
		`(?i)Permission denied`)

	reDiskFull = regexp.MustCompile(
		`(?i)No space left on device|Disk is full`)
)

// MatchMissingInput reports whether stderr indicates an unreadable or absent source.
func MatchMissingInput(stderr string) bool {
	return reMissingInput.MatchString(stderr)
}

// MatchCorruptInput reports whether stderr indicates a malformed parquet source.
func MatchCorruptInput(stderr string) bool {
	return reCorruptInput.MatchString(stderr)
}

// MatchPermission reports whether stderr indicates a filesystem permission error.
func MatchPermission(stderr string) bool {
	return rePermission.MatchString(stderr)
}

// MatchDiskFull reports whether stderr indicates the destination device is full.
func MatchDiskFull(stderr string) bool {
	return reDiskFull.MatchString(stderr)
}

// Classify returns a short cause label for a failed invocation, or "" when
// the stderr matches no known pattern.
func Classify(stderr string) string {
	switch {
	case reMissingInput.MatchString(stderr):
		return "source not readable"
	case reCorruptInput.MatchString(stderr):
		return "corrupt parquet input"
	case rePermission.MatchString(stderr):
		return "permission denied"
	case reDiskFull.MatchString(stderr):
		return "disk full"
	default:
		return ""
	}
}
