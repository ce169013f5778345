package api

// EndpointSpec names one side of a transfer — which backend, which
// locator, and (for remote backends) which credential to use. Exactly
// the fields relevant to Scheme need be set; the others are ignored.
type EndpointSpec struct {
	Scheme string `json:"scheme" binding:"required,oneof=file s3 gd gds"`
	Path   string `json:"path"`

	S3    *S3Credential    `json:"s3,omitempty"`
	Drive *DriveCredential `json:"drive,omitempty"`

	ChunkSize   int64 `json:"chunk_size,omitempty"`
	Concurrency int   `json:"concurrency,omitempty"`
}

// S3Credential carries the fields needed to build a credential.S3 value.
// Leaving AccessKeyID empty tells the builder to fall back to the
// AWS_* environment variables (credential.FromEnvironment).
type S3Credential struct {
	AccessKeyID     string `json:"access_key_id,omitempty"`
	SecretAccessKey string `json:"secret_access_key,omitempty"`
	SessionToken    string `json:"session_token,omitempty"`
	Region          string `json:"region,omitempty"`
	Provider        string `json:"provider,omitempty"` // aws, minio, digitalocean, wasabi, backblaze, cloudflare, linode, scaleway
	EndpointURL     string `json:"endpoint_url,omitempty"`
	ForcePathStyle  bool   `json:"force_path_style,omitempty"`
}

// DriveCredential carries a bearer token for Google Drive. Token refresh
// is out of scope for the transfer core; the caller supplies a live
// access token per request.
type DriveCredential struct {
	AccessToken  string `json:"access_token" binding:"required"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresInSec int64  `json:"expires_in_seconds,omitempty"`
}

// TransferRequest is the body of POST /api/transfers.
type TransferRequest struct {
	Source      EndpointSpec `json:"source" binding:"required"`
	Destination EndpointSpec `json:"destination" binding:"required"`
}

// TransferResponse is the body of GET /api/transfers/:id and one element
// of GET /api/transfers. POST /api/transfers answers with the task id only.
type TransferResponse struct {
	ID              string  `json:"id"`
	Status          string  `json:"status"`
	SourceURI       string  `json:"source_uri"`
	DestURI         string  `json:"dest_uri"`
	ProgressPercent float64 `json:"progress_percent"`
	CopiedChunks    int64   `json:"copied_chunks"`
	TotalChunks     int64   `json:"total_chunks"`
	CopiedSizeMB    float64 `json:"copied_size_mb"`
	TotalSizeMB     float64 `json:"total_size_mb"`
	TransferSpeedMB float64 `json:"transfer_speed_mb_per_sec"`
	ETA             string  `json:"eta"`
	Error           string  `json:"error,omitempty"`
}
