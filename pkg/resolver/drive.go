package resolver

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"hikyaku/pkg/herrors"
)

const folderMime = "application/vnd.google-apps.folder"

// DriveFile is the subset of a Drive files.list/files.get/drives.get
// response the resolver needs: enough to continue walking, to decide
// whether a target is supported, and to report its size.
type DriveFile struct {
	ID   string
	Mime string
	Size *int64
}

// workspaceKindNames gives a human label for the Workspace document mime
// types Drive reports — used only in diagnostics (Unsupported errors);
// the core never exports or downloads these, per the explicit decision
// to leave Workspace export out of scope.
var workspaceKindNames = map[string]string{
	"application/vnd.google-apps.document":     "Google Doc",
	"application/vnd.google-apps.spreadsheet":  "Google Sheet",
	"application/vnd.google-apps.presentation": "Google Slides",
	"application/vnd.google-apps.drawing":      "Google Drawing",
	"application/vnd.google-apps.script":       "Google Apps Script",
}

// WorkspaceKindName returns a human-readable label for a Workspace
// document mime type, or "" if mime isn't a recognized Workspace kind.
func WorkspaceKindName(mime string) string {
	return workspaceKindNames[mime]
}

func (f DriveFile) isWorkspaceDoc() bool {
	return strings.HasPrefix(f.Mime, "application/vnd.google-apps.") &&
		f.Mime != folderMime &&
		f.Mime != "application/vnd.google-apps.shortcut"
}

func (f DriveFile) isShortcut() bool {
	return f.Mime == "application/vnd.google-apps.shortcut"
}

// Unsupported reports whether f cannot be used as a transfer endpoint:
// Workspace documents (no exportable byte stream the core will follow,
// see spec's explicit Unsupported design note) and shortcuts.
func (f DriveFile) Unsupported() bool { return f.isWorkspaceDoc() || f.isShortcut() }

// WalkResult is the outcome of depth-walking a slash-delimited path.
type WalkResult struct {
	Anchor   *DriveFile // deepest existing file/folder along the path; if the first segment already missed, the single starting parent, or nil when there was none
	Residual []string   // segments beyond Anchor, not yet created
}

func driveService(ctx context.Context, client *http.Client) (*drive.Service, error) {
	svc, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, herrors.Wrap(herrors.KindConnection, "constructing Drive service", err)
	}
	return svc, nil
}

// ResolveSharedDriveByName looks up the Shared Drive id(s) whose name
// matches name, for gds:// input. Google Drive does not enforce unique
// Shared Drive names, so this can return more than one candidate; the
// caller's path walk treats each as an independent root and applies the
// same ambiguity rule as any other depth.
func ResolveSharedDriveByName(ctx context.Context, client *http.Client, name string) ([]string, error) {
	svc, err := driveService(ctx, client)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Drives.List().Q(fmt.Sprintf("name = '%s'", name)).Do()
	if err != nil {
		return nil, herrors.Wrap(herrors.KindConnection, "listing Shared Drives", err)
	}
	if len(resp.Drives) == 0 {
		return nil, herrors.Newf(herrors.KindInvalidArgument, "Shared Drive named %q not found", name)
	}

	ids := make([]string, len(resp.Drives))
	for i, d := range resp.Drives {
		ids[i] = d.Id
	}
	return ids, nil
}

// WalkPath depth-walks path segment by segment, starting from the
// synthetic folder records represented by parentIDs (empty means My
// Drive root), per spec §4.2.3. Each segment queries for files named
// that segment under any of the current parents; the walk stops at the
// first segment with no match, and everything from there on is
// residual. Two or more survivors at the deepest matched depth is an
// unresolvable ambiguity.
func WalkPath(ctx context.Context, client *http.Client, parentIDs []string, path string) (WalkResult, error) {
	segments, err := splitPathSegments(path)
	if err != nil {
		return WalkResult{}, err
	}
	if len(segments) == 0 {
		return WalkResult{}, nil
	}

	svc, err := driveService(ctx, client)
	if err != nil {
		return WalkResult{}, err
	}

	parents := initialParents(parentIDs)
	explored := 0

	for _, name := range segments {
		found, err := queryDriveFiles(svc, name, parents)
		if err != nil {
			return WalkResult{}, err
		}
		if len(found) == 0 {
			break
		}
		explored++
		parents = found
	}

	if len(parents) >= 2 {
		return WalkResult{}, herrors.Newf(herrors.KindInvalidArgument,
			"path %q is ambiguous: multiple candidates at the same depth in Google Drive", path)
	}

	var anchor *DriveFile
	if len(parents) == 1 {
		anchor = &parents[0]
	}

	return WalkResult{Anchor: anchor, Residual: segments[explored:]}, nil
}

func initialParents(ids []string) []DriveFile {
	parents := make([]DriveFile, len(ids))
	for i, id := range ids {
		parents[i] = DriveFile{ID: id}
	}
	return parents
}

func queryDriveFiles(svc *drive.Service, name string, parents []DriveFile) ([]DriveFile, error) {
	query := buildQuery(name, parents)

	resp, err := svc.Files.List().
		Q(query).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Fields("files(id, mimeType, size)").
		Do()
	if err != nil {
		return nil, herrors.Wrap(herrors.KindConnection, "querying Drive files", err)
	}

	result := make([]DriveFile, 0, len(resp.Files))
	for _, f := range resp.Files {
		df := DriveFile{ID: f.Id, Mime: f.MimeType}
		if f.MimeType != folderMime {
			if f.Size < 0 {
				return nil, herrors.Newf(herrors.KindGoogleDrive, "Drive returned an invalid size for file %s", f.Id)
			}
			size := f.Size
			df.Size = &size
		}
		result = append(result, df)
	}
	return result, nil
}

func buildQuery(name string, parents []DriveFile) string {
	query := fmt.Sprintf("name = '%s'", name)
	if len(parents) == 0 {
		return query + " and 'root' in parents"
	}
	clauses := make([]string, len(parents))
	for i, p := range parents {
		clauses[i] = fmt.Sprintf("'%s' in parents", p.ID)
	}
	return fmt.Sprintf("%s and (%s)", query, strings.Join(clauses, " or "))
}

// GetDriveByID treats id as a Shared Drive id and fetches its metadata.
// Builder callers try this before GetFileByID, since a bare id given by
// the caller could name either a Shared Drive or a regular file/folder.
func GetDriveByID(ctx context.Context, client *http.Client, id string) (DriveFile, error) {
	svc, err := driveService(ctx, client)
	if err != nil {
		return DriveFile{}, err
	}

	d, err := svc.Drives.Get(id).Do()
	if err != nil {
		return DriveFile{}, herrors.Wrap(herrors.KindConnection, "getting Shared Drive "+id, err)
	}
	return DriveFile{ID: d.Id, Mime: folderMime}, nil
}

// GetFileByID fetches a regular file or folder's metadata by id,
// returning its current name alongside (used as the upload filename
// when the caller addresses an existing file directly by id).
func GetFileByID(ctx context.Context, client *http.Client, id string) (DriveFile, string, error) {
	svc, err := driveService(ctx, client)
	if err != nil {
		return DriveFile{}, "", err
	}

	f, err := svc.Files.Get(id).SupportsAllDrives(true).Fields("id, name, mimeType, size").Do()
	if err != nil {
		return DriveFile{}, "", herrors.Wrap(herrors.KindConnection, "getting Drive file "+id, err)
	}
	if f.Size < 0 {
		return DriveFile{}, "", herrors.Newf(herrors.KindGoogleDrive, "Drive returned an invalid size for file %s", id)
	}

	df := DriveFile{ID: f.Id, Mime: f.MimeType}
	if f.MimeType != folderMime {
		size := f.Size
		df.Size = &size
	}
	return df, f.Name, nil
}

func splitPathSegments(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	segments := strings.Split(path, "/")
	for _, s := range segments {
		if s == "." || s == ".." {
			return nil, herrors.Newf(herrors.KindInvalidArgument, "path %q cannot contain '.' or '..' segments", path)
		}
	}
	return segments, nil
}

// UploadFilename derives the name an upload would create: the last path
// segment, or the whole path if it has no "/", or "" when path is empty
// (meaning the target names a folder to upload into, not a file).
func UploadFilename(path string) string {
	if path == "" {
		return ""
	}
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
