package config

import (
	"errors"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore points at a single centroid object in S3-compatible storage.
type ObjectStore struct {
	Endpoint  string `json:"endpoint"`
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
	Secure    bool   `json:"secure"`
	Region    string `json:"region"`
	Bucket    string `json:"bucket"`
	Key       string `json:"key"`
}

func (c ObjectStore) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != "" && c.Key != ""
}

// Client creates a minio client for the configured endpoint.
func (c ObjectStore) Client() (*minio.Client, error) {
	if !c.Enabled() {
		return nil, errors.New("object store requires endpoint, bucket and key")
	}
	client, err := minio.New(c.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(c.AccessKey, c.SecretKey, ""),
		Secure: c.Secure,
		Region: c.Region,
	})
	if err != nil {
		return nil, errors.Join(errors.New("could not create object store client"), err)
	}
	return client, nil
}
