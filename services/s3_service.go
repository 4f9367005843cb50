package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/larissa-mendes/sales-dashboard-api/config"
)

// S3Interface defines the interface for S3 operations
type S3Interface interface {
	DownloadFile(key string) ([]byte, error)
}

// S3Service handles all S3-related operations
type S3Service struct {
	client *s3.Client
	bucket string
}

var s3ServiceInstance S3Interface

// InitS3Service initializes the S3 service with AWS credentials
func InitS3Service() (S3Interface, error) {
	cfg := appConfig.GetConfig()

	// Load AWS configuration with explicit options
	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.AWSRegion),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig)

	s3ServiceInstance = &S3Service{
		client: client,
		bucket: cfg.DatasetS3Bucket,
	}

	return s3ServiceInstance, nil
}

// GetS3Service returns the initialized S3 service instance
func GetS3Service() S3Interface {
	return s3ServiceInstance
}

// SetS3Service sets the S3 service instance (primarily for testing)
func SetS3Service(service S3Interface) {
	s3ServiceInstance = service
}

// DownloadFile fetches a single object from the dataset bucket
func (s *S3Service) DownloadFile(key string) ([]byte, error) {
	out, err := s.client.GetObject(context.TODO(), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s from S3: %w", key, err)
	}
	defer func() {
		if closeErr := out.Body.Close(); closeErr != nil {
			log.Printf("warning: failed to close S3 body for %s: %v", key, closeErr)
		}
	}()

	content, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from S3: %w", key, err)
	}
	return content, nil
}

// FetchDatasetFiles downloads the six CSV sources from the configured
// bucket into dir, where the loader then picks them up. Any missing
// object is fatal to startup, same as a missing local file.
func FetchDatasetFiles(svc S3Interface, prefix, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create dataset directory: %w", err)
	}

	for _, filename := range DatasetFiles {
		key := filename
		if prefix != "" {
			key = path.Join(prefix, filename)
		}

		content, err := svc.DownloadFile(key)
		if err != nil {
			return err
		}

		target := filepath.Join(dir, filename)
		if err := os.WriteFile(target, content, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}
		log.Printf("Fetched dataset file %s (%d bytes)", filename, len(content))
	}

	return nil
}
