package builder

import (
	"context"
	"net/http"

	"hikyaku/pkg/chunk"
	"hikyaku/pkg/credential"
	"hikyaku/pkg/fsobject"
	"hikyaku/pkg/herrors"
	"hikyaku/pkg/resolver"
	"hikyaku/pkg/uri"
)

// unknownMime is the placeholder mime type recorded for an object whose
// target doesn't exist yet (e.g. an upload to a not-yet-created path) —
// it carries no meaning beyond "not yet known".
const unknownMime = "application/octet-stream"

type driveInputKind int

const (
	driveInputNone driveInputKind = iota
	driveInputURI
	driveInputParentIDs
	driveInputFileID
)

// Drive builds a FileSystemObject backed by Google Drive (My Drive or a
// Shared Drive). Exactly one input method — SetFilePath, SetFileID, or
// SetParentsIDsAndKey — should be called before Build; the last one
// called wins.
type Drive struct {
	cred        credential.Drive
	concurrency int
	chunkSize   int64

	kind       driveInputKind
	uriPath    uri.Parsed
	parentIDs  []string
	parentPath string
	fileID     string
}

// NewDrive starts a Drive builder bound to one bearer-token credential.
func NewDrive(cred credential.Drive) Drive {
	return Drive{cred: cred, concurrency: defaultConcurrency(), chunkSize: chunk.DefaultChunkSize}
}

// SetFilePath parses a gd:// or gds:// URI.
func (b Drive) SetFilePath(path string) (Drive, error) {
	parsed, err := uri.Parse(path)
	if err != nil {
		return Drive{}, err
	}
	if parsed.Scheme != uri.SchemeGoogleDrive && parsed.Scheme != uri.SchemeSharedDrive {
		return Drive{}, herrors.Newf(herrors.KindInvalidArgument, "file system prefix is not gd:// or gds://")
	}
	b.kind = driveInputURI
	b.uriPath = parsed
	return b, nil
}

// SetParentsIDsAndKey resolves path directly under the given candidate
// parent ids, skipping Shared Drive name lookup — for callers that
// already hold ids from a previous listing.
func (b Drive) SetParentsIDsAndKey(parentIDs []string, path string) Drive {
	b.kind = driveInputParentIDs
	b.parentIDs = parentIDs
	b.parentPath = path
	return b
}

// SetFileID targets a file or Shared Drive directly by id, skipping the
// path walk entirely. An empty id means My Drive's root.
func (b Drive) SetFileID(id string) Drive {
	b.kind = driveInputFileID
	b.fileID = id
	return b
}

func (b Drive) Concurrency(n int) Drive {
	if n > 0 {
		b.concurrency = n
	}
	return b
}

func (b Drive) ChunkSize(bytes int64) Drive {
	b.chunkSize = orDefaultChunkSize(bytes, chunk.DefaultChunkSize)
	return b
}

// Build resolves the configured input to an anchor (+ residual path,
// for inputs that may name a not-yet-created target) and materializes
// the FileSystemObject.
func (b Drive) Build(ctx context.Context) (fsobject.Object, error) {
	clients := credential.NewDriveClients(ctx, b.cred, b.concurrency)
	probe := clients[0]

	anchor, residual, uploadFilename, err := b.resolve(ctx, probe)
	if err != nil {
		return fsobject.Object{}, err
	}

	queryableID := ""
	mime := unknownMime
	var fileSize *int64
	if anchor != nil {
		if anchor.Unsupported() {
			if kind := resolver.WorkspaceKindName(anchor.Mime); kind != "" {
				return fsobject.Object{}, herrors.Newf(herrors.KindUnsupported, "%s files cannot be transferred (no byte stream to export)", kind)
			}
			return fsobject.Object{}, herrors.Newf(herrors.KindUnsupported, "the %s file is currently unsupported", anchor.Mime)
		}
		queryableID, mime, fileSize = anchor.ID, anchor.Mime, anchor.Size
	}

	return fsobject.Object{
		Kind:        fsobject.KindDrive,
		FileSize:    fileSize,
		ChunkSize:   b.chunkSize,
		Concurrency: len(clients),
		Drive: fsobject.NewDriveData(clients, b.cred, queryableID, residual, uploadFilename, mime),
	}, nil
}

func (b Drive) resolve(ctx context.Context, client *http.Client) (*resolver.DriveFile, []string, *string, error) {
	switch b.kind {
	case driveInputURI:
		var parentIDs []string
		if b.uriPath.Scheme == uri.SchemeSharedDrive {
			ids, err := resolver.ResolveSharedDriveByName(ctx, client, b.uriPath.Namespace)
			if err != nil {
				return nil, nil, nil, err
			}
			parentIDs = ids
		}
		result, err := resolver.WalkPath(ctx, client, parentIDs, b.uriPath.Path)
		if err != nil {
			return nil, nil, nil, err
		}
		return result.Anchor, result.Residual, uploadFilenamePtr(b.uriPath.Path), nil

	case driveInputParentIDs:
		result, err := resolver.WalkPath(ctx, client, b.parentIDs, b.parentPath)
		if err != nil {
			return nil, nil, nil, err
		}
		return result.Anchor, result.Residual, uploadFilenamePtr(b.parentPath), nil

	case driveInputFileID:
		if b.fileID == "" {
			root := &resolver.DriveFile{ID: "", Mime: "application/vnd.google-apps.folder"}
			return root, nil, nil, nil
		}
		if drv, err := resolver.GetDriveByID(ctx, client, b.fileID); err == nil {
			return &drv, nil, nil, nil
		}
		file, name, err := resolver.GetFileByID(ctx, client, b.fileID)
		if err != nil {
			return nil, nil, nil, err
		}
		return &file, nil, &name, nil

	default:
		return nil, nil, nil, herrors.Newf(herrors.KindBuilder, "path is not set")
	}
}

func uploadFilenamePtr(path string) *string {
	name := resolver.UploadFilename(path)
	if name == "" {
		return nil
	}
	return &name
}
