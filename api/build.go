package api

import (
	"context"
	"time"

	"hikyaku/pkg/builder"
	"hikyaku/pkg/credential"
	"hikyaku/pkg/fsobject"
	"hikyaku/pkg/herrors"
)

// buildObject turns a wire-level EndpointSpec into a FileSystemObject by
// driving the matching Builder. It is the one place the HTTP layer
// touches the transfer core's construction surface.
func buildObject(ctx context.Context, spec EndpointSpec) (fsobject.Object, error) {
	uri := spec.Scheme + "://" + spec.Path

	switch spec.Scheme {
	case "file":
		b, err := builder.NewLocal().SetFilePath(uri)
		if err != nil {
			return fsobject.Object{}, err
		}
		return b.Concurrency(spec.Concurrency).ChunkSize(spec.ChunkSize).Build(ctx)

	case "s3":
		cred, err := s3Credential(spec.S3)
		if err != nil {
			return fsobject.Object{}, err
		}
		b, err := builder.NewS3(cred).SetFilePath(uri)
		if err != nil {
			return fsobject.Object{}, err
		}
		return b.Concurrency(spec.Concurrency).ChunkSize(spec.ChunkSize).Build(ctx)

	case "gd", "gds":
		if spec.Drive == nil {
			return fsobject.Object{}, herrors.Newf(herrors.KindInvalidArgument, "drive credential is required for %s://", spec.Scheme)
		}
		cred := driveCredential(spec.Drive)
		b, err := builder.NewDrive(cred).SetFilePath(uri)
		if err != nil {
			return fsobject.Object{}, err
		}
		return b.Concurrency(spec.Concurrency).ChunkSize(spec.ChunkSize).Build(ctx)

	default:
		return fsobject.Object{}, herrors.Newf(herrors.KindInvalidArgument, "unrecognized scheme %q", spec.Scheme)
	}
}

// s3Credential builds a credential.S3 from the request body, falling
// back to the AWS_* environment variables (credential.FromEnvironment)
// when the caller supplies no explicit access key.
func s3Credential(spec *S3Credential) (credential.S3, error) {
	if spec == nil || spec.AccessKeyID == "" {
		return credential.FromEnvironment()
	}

	if spec.Provider != "" {
		cred := credential.NewS3ForProvider(credential.S3Provider(spec.Provider), spec.AccessKeyID, spec.SecretAccessKey, spec.Region)
		if spec.SessionToken != "" {
			cred = cred.WithSessionToken(spec.SessionToken)
		}
		if spec.EndpointURL != "" {
			cred = cred.WithEndpoint(spec.EndpointURL, cred.ForcePathStyle || spec.ForcePathStyle)
		}
		return cred, nil
	}

	cred := credential.NewS3(spec.AccessKeyID, spec.SecretAccessKey, spec.Region)
	if spec.SessionToken != "" {
		cred = cred.WithSessionToken(spec.SessionToken)
	}
	if spec.EndpointURL != "" {
		cred = cred.WithEndpoint(spec.EndpointURL, spec.ForcePathStyle)
	}
	return cred, nil
}

func driveCredential(spec *DriveCredential) credential.Drive {
	var expiry time.Time
	if spec.ExpiresInSec > 0 {
		expiry = time.Now().Add(time.Duration(spec.ExpiresInSec) * time.Second)
	}
	return credential.NewDrive(spec.AccessToken, spec.RefreshToken, expiry)
}
