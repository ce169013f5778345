package credential

import "fmt"

// S3Provider names an S3-compatible storage provider whose default region
// and endpoint conventions we know. ProviderCustom requires the caller to
// supply an endpoint explicitly.
type S3Provider string

const (
	ProviderAWS          S3Provider = "aws"
	ProviderMinIO        S3Provider = "minio"
	ProviderDigitalOcean S3Provider = "digitalocean"
	ProviderWasabi       S3Provider = "wasabi"
	ProviderBackblaze    S3Provider = "backblaze"
	ProviderCloudflare   S3Provider = "cloudflare"
	ProviderLinode       S3Provider = "linode"
	ProviderScaleway     S3Provider = "scaleway"
	ProviderCustom       S3Provider = "custom"
)

// NewS3ForProvider builds an S3 credential pre-filled with the provider's
// default region and endpoint; the caller can still override the
// endpoint with WithEndpoint before handing it to a Builder.
func NewS3ForProvider(provider S3Provider, accessKeyID, secretAccessKey, region string) S3 {
	cred := NewS3(accessKeyID, secretAccessKey, region)

	switch provider {
	case ProviderAWS:
		if cred.region == "" {
			cred.region = "us-east-1"
		}
	case ProviderMinIO:
		if cred.region == "" {
			cred.region = "us-east-1"
		}
		cred.EndpointURL = "http://localhost:9000"
		cred.ForcePathStyle = true
	case ProviderDigitalOcean:
		if cred.region == "" {
			cred.region = "nyc3"
		}
		cred.EndpointURL = fmt.Sprintf("https://%s.digitaloceanspaces.com", cred.region)
	case ProviderWasabi:
		if cred.region == "" {
			cred.region = "us-east-1"
		}
		cred.EndpointURL = fmt.Sprintf("https://s3.%s.wasabisys.com", cred.region)
	case ProviderBackblaze:
		if cred.region == "" {
			cred.region = "us-west-004"
		}
		cred.EndpointURL = fmt.Sprintf("https://s3.%s.backblazeb2.com", cred.region)
	case ProviderCloudflare:
		if cred.region == "" {
			cred.region = "auto"
		}
		// Account-specific; caller must still set EndpointURL.
	case ProviderLinode:
		if cred.region == "" {
			cred.region = "us-east-1"
		}
		cred.EndpointURL = fmt.Sprintf("https://%s.linodeobjects.com", cred.region)
	case ProviderScaleway:
		if cred.region == "" {
			cred.region = "nl-ams"
		}
		cred.EndpointURL = fmt.Sprintf("https://s3.%s.scw.cloud", cred.region)
	case ProviderCustom:
		cred.ForcePathStyle = true
		if cred.region == "" {
			cred.region = "us-east-1"
		}
	}

	return cred
}

// ProviderPresets names the providers NewS3ForProvider knows defaults for.
func ProviderPresets() map[S3Provider]string {
	return map[S3Provider]string{
		ProviderAWS:          "Amazon Web Services S3",
		ProviderMinIO:        "MinIO (self-hosted, S3-compatible)",
		ProviderDigitalOcean: "DigitalOcean Spaces",
		ProviderWasabi:       "Wasabi Hot Cloud Storage",
		ProviderBackblaze:    "Backblaze B2",
		ProviderCloudflare:   "Cloudflare R2",
		ProviderLinode:       "Linode Object Storage",
		ProviderScaleway:     "Scaleway Object Storage",
		ProviderCustom:       "Custom S3-compatible endpoint",
	}
}
