package store

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/expki/go-colorquant/compute"
	"github.com/minio/minio-go/v7"
)

// Object keeps the centroid set in a single object of an S3-compatible bucket.
// Keys ending in ".zst" are zstd compressed.
type Object struct {
	client *minio.Client
	bucket string
	key    string
}

func NewObject(client *minio.Client, bucket, key string) *Object {
	return &Object{
		client: client,
		bucket: bucket,
		key:    key,
	}
}

// Load reads the centroid set. A missing object yields an empty set.
func (o *Object) Load(ctx context.Context) (compute.CentroidSet, error) {
	_, err := o.client.StatObject(ctx, o.bucket, o.key, minio.StatObjectOptions{})
	if notFound(err) {
		return nil, nil
	} else if err != nil {
		return nil, errors.Join(errors.New("failed to stat centroid object"), err)
	}

	object, err := o.client.GetObject(ctx, o.bucket, o.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Join(errors.New("failed to get centroid object"), err)
	}
	defer object.Close()

	centroids, err := decodeFrom(object, compressed(o.key), Decode)
	if notFound(err) {
		return nil, nil
	} else if err != nil {
		return nil, errors.Join(errors.New("failed to decode centroid object"), err)
	}
	return centroids, nil
}

// Save uploads the centroid set, replacing the previous object.
func (o *Object) Save(ctx context.Context, centroids compute.CentroidSet) error {
	var body bytes.Buffer
	err := encodeTo(&body, compressed(o.key), func(w io.Writer) error {
		return Encode(w, centroids)
	})
	if err != nil {
		return errors.Join(errors.New("failed to encode centroid object"), err)
	}

	contentType := "text/plain; charset=utf-8"
	if compressed(o.key) {
		contentType = "application/zstd"
	}
	_, err = o.client.PutObject(ctx, o.bucket, o.key, bytes.NewReader(body.Bytes()), int64(body.Len()), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return errors.Join(errors.New("failed to put centroid object"), err)
	}
	return nil
}

func notFound(err error) bool {
	if err == nil {
		return false
	}
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NotFound"
}
