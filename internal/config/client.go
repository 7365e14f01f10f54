package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrNoRegion = errors.New("region not configured. Pass --region or set MAGICLINK_REGION")

// ClientOptions selects how the S3 client connects.
type ClientOptions struct {
	Region    string
	Endpoint  string
	Profile   string
	PathStyle bool
}

// CurrentClientOptions returns client options from the current configuration.
func CurrentClientOptions() ClientOptions {
	return ClientOptions{
		Region:    GetRegion(),
		Endpoint:  GetEndpoint(),
		Profile:   GetProfile(),
		PathStyle: GetPathStyle(),
	}
}

// NewS3Client creates an S3 client using the default AWS credential chain.
func NewS3Client(ctx context.Context, opts ClientOptions) (*s3.Client, error) {
	if opts.Region == "" {
		return nil, ErrNoRegion
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(opts.Profile))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.PathStyle
	}), nil
}
