package sectorfs

import "strings"

// ToAbsolutePath canonicalizes a caller-supplied virtual path into the
// absolute form used as the key for all index lookups: a missing
// leading slash is prepended, nothing else is rewritten. Repeated
// slashes and dot segments pass through untouched; callers are
// expected to supply already-sane paths.
func ToAbsolutePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}

	return path
}
