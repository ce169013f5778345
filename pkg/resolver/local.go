// Package resolver translates a parsed locator (URI or direct id/path
// input) into the concrete facts a FileSystemObject needs: whether the
// target already exists, its size, and — for Google Drive — the anchor
// id and residual path segments a depth-walking query produces.
package resolver

import (
	"os"
	"strings"

	"hikyaku/pkg/herrors"
)

// LocalResult is what stat-ing a local path tells the builder.
type LocalResult struct {
	IsDir    bool
	FileSize *int64
}

// Local stats path and classifies it per spec §4.2.1: permission denied
// is a hard failure, "not found" infers is_dir from a trailing slash
// (the URI's own convention, since the path no longer exists to stat),
// and anything else reports the real size/directory-ness.
func Local(path string) (LocalResult, error) {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return LocalResult{IsDir: true}, nil
		}
		size := info.Size()
		return LocalResult{IsDir: false, FileSize: &size}, nil
	}

	if os.IsPermission(err) {
		return LocalResult{}, herrors.Wrap(herrors.KindInvalidArgument, "permission denied statting "+path, err)
	}
	if os.IsNotExist(err) {
		return LocalResult{IsDir: strings.HasSuffix(path, "/")}, nil
	}
	return LocalResult{}, herrors.Wrap(herrors.KindFileOperation, "statting "+path, err)
}
