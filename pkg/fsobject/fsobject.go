// Package fsobject defines FileSystemObject: the tagged variant that
// describes one concrete transfer endpoint — local path, S3 bucket/key,
// or Drive id + residual path — independent of transfer direction.
//
// An Object is cheap to copy: every field is either a value type or a
// pointer into shared, reference-counted state (HTTP/SDK clients, the
// mutable upload/download bundle behind its own mutex), matching the
// "cloneable so worker tasks can each hold a handle" requirement.
package fsobject

import (
	"net/http"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"hikyaku/pkg/credential"
)

// Kind tags which backend an Object targets. New backends (the spec
// mentions Box as an unfinished fourth) are added by extending this
// enum and adding the new case to download's readRange and upload's
// writeChunk.
type Kind int

const (
	KindLocal Kind = iota
	KindS3
	KindDrive
)

func (k Kind) String() string {
	switch k {
	case KindLocal:
		return "Local"
	case KindS3:
		return "AmazonS3"
	case KindDrive:
		return "GoogleDrive"
	default:
		return "Unknown"
	}
}

// Object is the tagged FileSystemObject. Exactly one of Local/S3/Drive
// is non-nil, selected by Kind.
type Object struct {
	Kind Kind

	// FileSize is set iff the object currently names an existing byte
	// stream (download-eligible).
	FileSize *int64

	// ChunkSize is the per-object chunk size; defaults to 8 MiB.
	ChunkSize int64

	// Concurrency is the degree of fan-out for this object; it equals
	// len(clients) for remote backends.
	Concurrency int

	Local *LocalData
	S3    *S3Data
	Drive *DriveData
}

// IsDownloadable reports whether the object names an existing stream.
func (o Object) IsDownloadable() bool {
	return o.FileSize != nil
}

// LocalData is the local-filesystem variant's state.
type LocalData struct {
	Path  string
	IsDir bool

	state *localState
}

type localState struct {
	mu   sync.Mutex
	file FileHandle // lazily opened, shared across chunk tasks
}

// FileHandle is the minimal seek/read/write-at surface the local
// backend needs; satisfied by *os.File.
type FileHandle interface {
	ReadAt(p []byte, off int64) (int, error)
	WriteAt(p []byte, off int64) (int, error)
	Close() error
}

// NewLocalData constructs the local variant's state bundle.
func NewLocalData(path string, isDir bool) *LocalData {
	return &LocalData{Path: path, IsDir: isDir, state: &localState{}}
}

// Handle returns the shared file handle, lazily opening it with open on
// first use. open is only ever invoked once per object even when many
// chunk tasks call Handle concurrently; after that, every caller reads
// the same cached handle. ReadAt/WriteAt on the returned handle are
// safe to call concurrently without further synchronisation (unlike a
// seek-then-read API, positional I/O has no shared cursor to race on).
func (d *LocalData) Handle(open func() (FileHandle, error)) (FileHandle, error) {
	d.state.mu.Lock()
	defer d.state.mu.Unlock()
	if d.state.file == nil {
		f, err := open()
		if err != nil {
			return nil, err
		}
		d.state.file = f
	}
	return d.state.file, nil
}

// Close releases the shared handle, if one was ever opened.
func (d *LocalData) Close() error {
	d.state.mu.Lock()
	defer d.state.mu.Unlock()
	if d.state.file == nil {
		return nil
	}
	err := d.state.file.Close()
	d.state.file = nil
	return err
}

// S3Data is the S3 variant's state.
type S3Data struct {
	Clients []*s3.Client
	Bucket  string
	Key     string

	mu    sync.Mutex
	state s3UploadState
}

type s3UploadState struct {
	uploadID string
	parts    map[int32]string // part number -> ETag
}

// NewS3Data constructs the S3 variant's state bundle.
func NewS3Data(clients []*s3.Client, bucket, key string) *S3Data {
	return &S3Data{Clients: clients, Bucket: bucket, Key: key, state: s3UploadState{parts: map[int32]string{}}}
}

// EnsureUploadID runs create once, the first time any chunk task
// reaches it, and caches the multipart upload id for every later
// caller. Unlike RecordPart, this holds the lock across create's
// network round trip: it is a one-time event, not a per-chunk one, so
// the brief contention while the first chunk's CreateMultipartUpload
// is in flight is the point, not a cost worth avoiding.
func (d *S3Data) EnsureUploadID(create func() (string, error)) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state.uploadID == "" {
		id, err := create()
		if err != nil {
			return "", err
		}
		d.state.uploadID = id
	}
	return d.state.uploadID, nil
}

// RecordPart remembers a completed part's ETag.
func (d *S3Data) RecordPart(partNumber int32, etag string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.parts[partNumber] = etag
}

// PartsSnapshot returns a copy of the part-number -> ETag map collected
// so far.
func (d *S3Data) PartsSnapshot() map[int32]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[int32]string, len(d.state.parts))
	for k, v := range d.state.parts {
		out[k] = v
	}
	return out
}

// UploadIDIfSet reports the cached multipart upload id, if one was
// ever created — used by completion/abort, which are no-ops when no
// chunk ever reached EnsureUploadID.
func (d *S3Data) UploadIDIfSet() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.uploadID, d.state.uploadID != ""
}

// DriveData is the Google Drive variant's state.
type DriveData struct {
	Clients          []*http.Client
	Token            credential.Drive
	AnchorID         string   // deepest existing ancestor id; "" means My Drive root
	ResidualSegments []string // folder names yet to be created during upload
	UploadFilename   *string  // set iff upload-eligible as a named file
	Mime             string

	mu    sync.Mutex
	state DriveUploadState
}

// DriveUploadState is the mutable bundle a Drive upload threads through
// its once-only folder-create and resumable-init steps, and then reuses
// for every subsequent chunk PUT.
type DriveUploadState struct {
	ResumableURL   string
	UploadParentID string
	FoldersCreated bool
}

// NewDriveData constructs the Drive variant's state bundle.
func NewDriveData(clients []*http.Client, token credential.Drive, anchorID string, residual []string, uploadFilename *string, mime string) *DriveData {
	return &DriveData{
		Clients:          clients,
		Token:            token,
		AnchorID:         anchorID,
		ResidualSegments: residual,
		UploadFilename:   uploadFilename,
		Mime:             mime,
	}
}

// WithUploadLock runs fn with exclusive access to the upload state.
// Every Drive chunk PUT goes through this, not just the one-time
// folder-create and resumable-init steps: the resumable protocol is
// internally sequential, so PUTs to one resumable URL must never
// overlap even while the source side keeps downloading chunks
// out of order.
func (d *DriveData) WithUploadLock(fn func(*DriveUploadState) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return fn(&d.state)
}

// S3ClientFor and DriveClientFor select the pool client for a given
// chunk's offset index using offset_index mod concurrency — a
// stateless pick, not a queue. The source Rust implementation instead
// computed `concurrency % offset`, which divides by offset (including
// zero); this is fixed here.
func (o Object) S3ClientFor(offsetIndex uint64) *s3.Client {
	return o.S3.Clients[int(offsetIndex)%len(o.S3.Clients)]
}

func (o Object) DriveClientFor(offsetIndex uint64) *http.Client {
	return o.Drive.Clients[int(offsetIndex)%len(o.Drive.Clients)]
}
