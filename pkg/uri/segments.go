package uri

import (
	"strings"
	"unicode/utf8"

	"hikyaku/pkg/herrors"
)

// SplitSegments breaks a normalized path into its slash-delimited
// components, rejecting "." and ".." (ambiguous relative segments) and
// any segment that isn't valid UTF-8. An empty path yields no segments.
func SplitSegments(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}

	segments := strings.Split(path, "/")
	for _, seg := range segments {
		if seg == "." || seg == ".." {
			return nil, herrors.InvalidArgument(
				"path %q cannot contain '.' or '..' segments", path)
		}
		if !utf8.ValidString(seg) {
			return nil, herrors.InvalidArgument(
				"path %q contains a non-UTF-8 segment", path)
		}
	}

	return segments, nil
}
