package credential

import (
	"os"

	"hikyaku/pkg/herrors"
)

// FromEnvironment builds an S3 credential from the conventional AWS_*
// environment variables. This is the core's one environment-derived
// credential source (spec calls discovery beyond this, e.g. the shared
// credentials file or IMDS, an external collaborator); anything else
// should be assembled by the caller and passed in directly.
func FromEnvironment() (S3, error) {
	accessKeyID := os.Getenv("AWS_ACCESS_KEY_ID")
	secretAccessKey := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if accessKeyID == "" || secretAccessKey == "" {
		return S3{}, herrors.Newf(herrors.KindEnvCredential, "AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY not set in environment")
	}

	cred := NewS3(accessKeyID, secretAccessKey, os.Getenv("AWS_REGION"))
	cred.SessionToken = os.Getenv("AWS_SESSION_TOKEN")
	if endpoint := os.Getenv("S3_ENDPOINT_URL"); endpoint != "" {
		cred.EndpointURL = endpoint
	}

	return cred, nil
}
