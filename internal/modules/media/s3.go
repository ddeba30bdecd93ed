// README: S3-backed object store for image buckets.
package media

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Objects implements ObjectStore against AWS S3 or any S3-compatible
// endpoint (MinIO, LocalStack).
type S3Objects struct {
	client *s3.Client
	// publicBaseURL, when set, overrides the derived object URL. Endpoint is
	// used for path-style URLs against custom endpoints; region for the
	// virtual-hosted AWS form.
	publicBaseURL string
	endpoint      string
	region        string
}

func NewS3Objects(client *s3.Client, publicBaseURL, endpoint, region string) *S3Objects {
	return &S3Objects{client: client, publicBaseURL: publicBaseURL, endpoint: endpoint, region: region}
}

func (o *S3Objects) Put(ctx context.Context, bucket, key, contentType string, data []byte) error {
	_, err := o.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s/%s: %w", bucket, key, err)
	}
	return nil
}

func (o *S3Objects) PublicURL(bucket, key string) string {
	if o.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", o.publicBaseURL, bucket, key)
	}
	if o.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", o.endpoint, bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, o.region, key)
}
