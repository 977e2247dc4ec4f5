// Package reports publishes generated attendance spreadsheets to
// S3-compatible object storage and hands out time-limited download links.
package reports

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// Config selects the bucket and credentials used for publishing.
type Config struct {
	Region       string
	User         string
	Password     string
	Bucket       string
	BaseEndpoint string
	// URLExpiry bounds the lifetime of download links. Zero means 24 hours.
	URLExpiry time.Duration
}

// S3Publisher uploads report files and presigns GET links for them.
type S3Publisher struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	expiry  time.Duration
}

func NewS3Publisher(ctx context.Context, c Config) (*S3Publisher, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(c.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.User,
			c.Password,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if c.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(c.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	expiry := c.URLExpiry
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}

	return &S3Publisher{client: client, presign: s3.NewPresignClient(client), bucket: c.Bucket, expiry: expiry}, nil
}

// ObjectKey returns a fresh storage key for a report of date.
func ObjectKey(date string) string {
	return fmt.Sprintf("reports/%s/%s.xlsx", date, uuid.New())
}

// Publish uploads the file at path and returns a presigned download URL.
func (p *S3Publisher) Publish(ctx context.Context, date, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	key := ObjectKey(date)

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(p.bucket),
		Key:                aws.String(key),
		Body:               f,
		ContentType:        aws.String(contentType),
		ContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", filepath.Base(path))),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	req, err := p.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}

	return req.URL, nil
}
