// Package credential holds the opaque credential handles the transfer
// core accepts from its caller: an S3 access key/secret/region bundle,
// a Google Drive bearer token bundle, and a null credential for the
// local filesystem backend. Interactive OAuth2 flows, token persistence,
// and token refresh are external collaborators (spec §1) — callers
// build one of these from whatever token source they already have and
// rebuild it when a token rotates.
package credential

import "time"

// Credential is the common surface every backend credential satisfies.
// Region is empty for backends that don't have one (Drive, Local).
type Credential interface {
	Region() string
	credentialValue() any
}

// None is the credential for the local filesystem backend.
type None struct{}

func (None) Region() string { return "" }
func (None) credentialValue() any { return nil }

// S3 carries static or session credentials plus the region/endpoint an
// S3-compatible provider needs.
type S3 struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string // optional, STS
	Expiry          *time.Time
	region          string
	EndpointURL     string // optional, for S3-compatible providers
	ForcePathStyle  bool
}

// NewS3 builds a static S3 credential for the given region.
func NewS3(accessKeyID, secretAccessKey, region string) S3 {
	return S3{AccessKeyID: accessKeyID, SecretAccessKey: secretAccessKey, region: region}
}

// WithSessionToken attaches an STS session token (moved-builder style:
// returns a modified copy rather than mutating self in place).
func (c S3) WithSessionToken(token string) S3 {
	c.SessionToken = token
	return c
}

// WithExpiry attaches a credential expiry instant.
func (c S3) WithExpiry(t time.Time) S3 {
	c.Expiry = &t
	return c
}

// WithEndpoint sets a custom endpoint for an S3-compatible provider.
func (c S3) WithEndpoint(url string, forcePathStyle bool) S3 {
	c.EndpointURL = url
	c.ForcePathStyle = forcePathStyle
	return c
}

func (c S3) Region() string { return c.region }
func (c S3) credentialValue() any { return c }

// IsExpired reports whether the credential's expiry instant has passed.
// A credential with no expiry set is never considered expired here —
// refresh is the caller's responsibility.
func (c S3) IsExpired() bool {
	return c.Expiry != nil && c.Expiry.Before(time.Now())
}

// Drive carries a bearer access token plus the bookkeeping needed to
// tell the caller it's time to rebuild with a fresh one.
type Drive struct {
	AccessToken  string
	RefreshToken string // optional; refresh itself is out of scope
	Expiry       time.Time
}

// NewDrive builds a Drive bearer-token credential.
func NewDrive(accessToken, refreshToken string, expiry time.Time) Drive {
	return Drive{AccessToken: accessToken, RefreshToken: refreshToken, Expiry: expiry}
}

func (c Drive) Region() string { return "" }
func (c Drive) credentialValue() any { return c }

// IsExpired reports whether the access token's expiry instant has
// passed. A zero Expiry is treated as "unknown, assume valid" — callers
// that don't track expiry can still build a Drive credential.
func (c Drive) IsExpired() bool {
	return !c.Expiry.IsZero() && c.Expiry.Before(time.Now())
}
