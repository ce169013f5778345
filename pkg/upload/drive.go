package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"hikyaku/pkg/fsobject"
	"hikyaku/pkg/herrors"
)

const driveFolderMime = "application/vnd.google-apps.folder"

// writeDrive applies one chunk to a Drive upload. The first chunk to
// reach the lock creates any not-yet-existing residual folders and
// initiates the resumable session; every chunk, including that first
// one, then PUTs its bytes to the resumable URL. The whole per-chunk
// body runs under WithUploadLock: Drive's resumable protocol accepts
// PUTs strictly in byte order, so concurrent download fan-out must
// still serialise on the way out.
func writeDrive(ctx context.Context, object fsobject.Object, cd fsobject.ChunkData) error {
	return object.Drive.WithUploadLock(func(state *fsobject.DriveUploadState) error {
		if !state.FoldersCreated {
			parentID, err := ensureResidualFolders(ctx, object)
			if err != nil {
				return err
			}
			state.UploadParentID = parentID
			state.FoldersCreated = true
		}

		if state.ResumableURL == "" {
			url, err := initResumableSession(ctx, object, state.UploadParentID)
			if err != nil {
				return err
			}
			state.ResumableURL = url
		}

		return putDriveChunk(ctx, object, state.ResumableURL, cd)
	})
}

// ensureResidualFolders creates every residual segment but the last
// (the last segment names the upload itself, not a folder to create)
// as a nested folder chain rooted at the anchor, returning the id of
// the deepest folder the upload should be created inside.
func ensureResidualFolders(ctx context.Context, object fsobject.Object) (string, error) {
	segments := object.Drive.ResidualSegments
	parentID := object.Drive.AnchorID
	if len(segments) == 0 {
		return parentID, nil
	}

	svc, err := drive.NewService(ctx, option.WithHTTPClient(object.DriveClientFor(0)))
	if err != nil {
		return "", herrors.Wrap(herrors.KindConnection, "constructing Drive service", err)
	}

	for _, name := range segments[:len(segments)-1] {
		file := &drive.File{Name: name, MimeType: driveFolderMime}
		if parentID != "" {
			file.Parents = []string{parentID}
		}
		created, err := svc.Files.Create(file).SupportsAllDrives(true).Fields("id").Do()
		if err != nil {
			return "", herrors.Wrap(herrors.KindGoogleDrive, "creating folder "+name, err)
		}
		parentID = created.Id
	}
	return parentID, nil
}

type resumableInitRequest struct {
	Name     string   `json:"name"`
	MimeType string   `json:"mimeType"`
	Parents  []string `json:"parents,omitempty"`
}

// initResumableSession starts a resumable upload session, returning the
// per-upload URL from the response's Location header.
func initResumableSession(ctx context.Context, object fsobject.Object, parentID string) (string, error) {
	mime := object.Drive.Mime
	if mime == "" {
		mime = "application/octet-stream"
	}
	body := resumableInitRequest{Name: *object.Drive.UploadFilename, MimeType: mime}
	if parentID != "" {
		body.Parents = []string{parentID}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", herrors.Wrap(herrors.KindUnknown, "encoding resumable upload request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://www.googleapis.com/upload/drive/v3/files?uploadType=resumable",
		bytes.NewReader(payload))
	if err != nil {
		return "", herrors.Wrap(herrors.KindUnknown, "building resumable upload request", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := object.DriveClientFor(0).Do(req)
	if err != nil {
		return "", herrors.Wrap(herrors.KindConnection, "initiating Drive resumable upload", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", herrors.Newf(herrors.KindConnection, "Drive resumable upload init returned status %d", resp.StatusCode)
	}
	location := resp.Header.Get("Location")
	if location == "" {
		return "", herrors.Newf(herrors.KindGoogleDrive, "Drive resumable upload init response carried no Location header")
	}
	return location, nil
}

// putDriveChunk PUTs one chunk's bytes at their byte offset. total is
// "*" for every chunk but the last, per the resumable upload protocol's
// allowance for an unknown total size while the transfer is in flight.
func putDriveChunk(ctx context.Context, object fsobject.Object, resumableURL string, cd fsobject.ChunkData) error {
	start := int64(cd.OffsetIndex) * object.ChunkSize
	end := start + int64(len(cd.Bytes)) - 1

	total := "*"
	if cd.IsLast {
		total = fmt.Sprintf("%d", start+int64(len(cd.Bytes)))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, resumableURL, bytes.NewReader(cd.Bytes))
	if err != nil {
		return herrors.Wrap(herrors.KindUnknown, "building Drive chunk request", err)
	}
	if len(cd.Bytes) > 0 {
		req.Header.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%s", start, end, total))
	} else {
		req.Header.Set("Content-Range", fmt.Sprintf("bytes */%s", total))
	}

	resp, err := object.DriveClientFor(cd.OffsetIndex).Do(req)
	if err != nil {
		return herrors.Wrap(herrors.KindConnection, "uploading Drive chunk", err)
	}
	defer resp.Body.Close()

	// 308 Resume Incomplete is the expected response for every
	// non-final chunk; only the last PUT should return 200/201.
	if resp.StatusCode != 308 && resp.StatusCode >= 300 {
		return herrors.Newf(herrors.KindConnection, "Drive chunk upload returned status %d", resp.StatusCode)
	}
	return nil
}

// abortDrive best-effort deletes the resumable session if one was ever
// created, so Drive does not keep an orphaned partial upload around.
func abortDrive(ctx context.Context, object fsobject.Object) {
	_ = object.Drive.WithUploadLock(func(state *fsobject.DriveUploadState) error {
		if state.ResumableURL == "" {
			return nil
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodDelete, state.ResumableURL, nil)
		if err != nil {
			return nil
		}
		resp, err := object.DriveClientFor(0).Do(req)
		if err != nil {
			return nil
		}
		resp.Body.Close()
		return nil
	})
}
