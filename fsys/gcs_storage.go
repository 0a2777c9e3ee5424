package fsys

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// GCSStorage stores files as objects in a Google Cloud Storage bucket.
type GCSStorage struct {
	BucketName string
	Client     *storage.Client
}

func NewGCSStorage(bucket string) (*GCSStorage, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs storage: bucket is not configured")
	}

	client, err := storage.NewClient(context.Background())
	if err != nil {
		return nil, err
	}

	return &GCSStorage{
		BucketName: bucket,
		Client:     client,
	}, nil
}

func (gcs *GCSStorage) Read(path string) (io.ReadCloser, error) {
	reader, err := gcs.Client.Bucket(gcs.BucketName).Object(path).NewReader(context.Background())
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	return reader, nil
}

func (gcs *GCSStorage) Write(path string, contents []byte) error {
	writer := gcs.Client.Bucket(gcs.BucketName).Object(path).NewWriter(context.Background())
	if _, err := writer.Write(contents); err != nil {
		_ = writer.Close()
		return err
	}
	return writer.Close()
}

func (gcs *GCSStorage) Delete(path string) error {
	return gcs.Client.Bucket(gcs.BucketName).Object(path).Delete(context.Background())
}

func (gcs *GCSStorage) Exists(path string) (bool, error) {
	_, err := gcs.Client.Bucket(gcs.BucketName).Object(path).Attrs(context.Background())
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
