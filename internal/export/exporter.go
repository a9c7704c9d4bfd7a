package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"facility-registry-api-server/config"
)

// Exporter writes generated reports to S3 as JSON documents.
type Exporter struct {
	Client *s3.Client
	Bucket string
	Region string
}

// NewExporter builds the S3 client from static credentials. Returns nil
// when no bucket is configured; export is then disabled.
func NewExporter(cfg config.S3Config) (*Exporter, error) {
	if cfg.Bucket == "" {
		return nil, nil
	}

	sdkConfig, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Exporter{
		Client: s3.NewFromConfig(sdkConfig),
		Bucket: cfg.Bucket,
		Region: cfg.Region,
	}, nil
}

// UploadReport serializes the report and puts it under
// reports/<type>/<timestamp>.json, returning the object URL.
func (e *Exporter) UploadReport(ctx context.Context, reportType string, report interface{}) (string, error) {
	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize report: %w", err)
	}

	objectKey := fmt.Sprintf("reports/%s/%s.json", reportType, time.Now().UTC().Format("20060102T150405Z"))
	_, err = e.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.Bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report to S3: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", e.Bucket, e.Region, objectKey)
	return url, nil
}
