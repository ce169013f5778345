package credential

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"hikyaku/pkg/herrors"
)

// NewS3Clients builds count independent *s3.Client values from one S3
// credential. A FileSystemObject keeps one client per concurrency slot
// rather than sharing a single client so that in-flight ranged GETs and
// multipart parts never contend on the SDK's internal connection reuse
// in a way that would serialize them.
func NewS3Clients(ctx context.Context, cred S3, count int) ([]*s3.Client, error) {
	if count <= 0 {
		count = 1
	}

	region := cred.region
	if region == "" && cred.EndpointURL != "" {
		region = "us-east-1" // S3-compatible stores ignore the signing region.
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if cred.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cred.AccessKeyID, cred.SecretAccessKey, cred.SessionToken),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, herrors.Wrap(herrors.KindConnection, "loading AWS config", err)
	}

	clientOpts := []func(*s3.Options){}
	if cred.EndpointURL != "" {
		endpoint := cred.EndpointURL
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = cred.ForcePathStyle
		})
	}

	clients := make([]*s3.Client, count)
	for i := range clients {
		clients[i] = s3.NewFromConfig(awsCfg, clientOpts...)
	}
	return clients, nil
}
