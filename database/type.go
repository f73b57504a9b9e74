package database

import (
	"bytes"
	"database/sql/driver"
	"fmt"

	"github.com/expki/go-colorquant/compute"
	"github.com/expki/go-colorquant/store"
)

// VectorField stores a centroid set in the text centroid format, zstd compressed.
type VectorField compute.CentroidSet

func (VectorField) GormDataType() string {
	return "bytes"
}

// Scan scan value into VectorField, implements sql.Scanner interface
func (v *VectorField) Scan(value any) error {
	raw, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to unmarshal VectorField value: %+v", value)
	}
	original, err := decompress(raw)
	if err != nil {
		return fmt.Errorf("failed to decompress VectorField value: %+v", subSlice(raw, 10))
	}
	centroids, err := store.Decode(bytes.NewReader(original))
	if err != nil {
		return fmt.Errorf("failed to decode VectorField value: %w", err)
	}
	*v = VectorField(centroids)
	return nil
}

// Value return VectorField value, implement driver.Valuer interface
func (v VectorField) Value() (driver.Value, error) {
	var buf bytes.Buffer
	if err := store.Encode(&buf, compute.CentroidSet(v)); err != nil {
		return nil, err
	}
	return compress(buf.Bytes()), nil
}

func (v VectorField) Underlying() compute.CentroidSet {
	return compute.CentroidSet(v).Clone()
}

func subSlice[T any](list []T, max int) []T {
	if len(list) > max {
		return list[:max]
	}
	return list
}
