package fsys

import (
	"bytes"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// S3Storage stores files as objects in an S3 compatible bucket.
type S3Storage struct {
	BucketName string
	S3Client   s3iface.S3API
}

func NewS3Storage(bucket, region, accessKey, secretKey string, baseEndpoint string) (*S3Storage, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 storage: bucket is not configured")
	}

	cfg := &aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	}
	if baseEndpoint != "" {
		cfg.Endpoint = aws.String(baseEndpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, err
	}

	return &S3Storage{
		BucketName: bucket,
		S3Client:   s3.New(sess),
	}, nil
}

func (s3s *S3Storage) Read(path string) (io.ReadCloser, error) {
	result, err := s3s.S3Client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(s3s.BucketName),
		Key:    aws.String(path),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	return result.Body, nil
}

func (s3s *S3Storage) Write(path string, contents []byte) error {
	_, err := s3s.S3Client.PutObject(&s3.PutObjectInput{
		Bucket: aws.String(s3s.BucketName),
		Key:    aws.String(path),
		Body:   bytes.NewReader(contents),
	})
	return err
}

func (s3s *S3Storage) Delete(path string) error {
	_, err := s3s.S3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s3s.BucketName),
		Key:    aws.String(path),
	})
	return err
}

// Exists uses HeadObject so the object body is never fetched
func (s3s *S3Storage) Exists(path string) (bool, error) {
	_, err := s3s.S3Client.HeadObject(&s3.HeadObjectInput{
		Bucket: aws.String(s3s.BucketName),
		Key:    aws.String(path),
	})
	if err != nil {
		if isS3NotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func isS3NotFound(err error) bool {
	if aerr, ok := err.(awserr.Error); ok {
		switch aerr.Code() {
		case "NotFound", s3.ErrCodeNoSuchKey:
			return true
		}
	}
	return false
}
