package config

import (
	"encoding/json"
	"fmt"
)

// ParseConfig parses the raw JSON configuration.
func ParseConfig(raw []byte) (config Config, err error) {
	err = json.Unmarshal(raw, &config)
	if err != nil {
		return config, fmt.Errorf("unmarshal config: %v", err)
	}
	return config, nil
}

type Config struct {
	Input     string    `json:"input"`
	Output    string    `json:"output"`
	LogLevel  LogLevel  `json:"log_level"`
	Progress  bool      `json:"progress"`
	KMeans    KMeans    `json:"kmeans"`
	Centroids Centroids `json:"centroids"`
}

// Centroids selects where the centroid set is persisted after every iteration.
// The first configured backend wins: database, object store, then file. The
// file backend falls back to DEFAULT_CENTROIDS_PATH; Disabled turns
// persistence off entirely.
type Centroids struct {
	Disabled    bool         `json:"disabled,omitempty"`
	Path        string       `json:"path"`
	Database    *Database    `json:"database,omitempty"`
	ObjectStore *ObjectStore `json:"object_store,omitempty"`
}

type CentroidBackend string

const (
	CentroidBackendNone     CentroidBackend = "none"
	CentroidBackendFile     CentroidBackend = "file"
	CentroidBackendObject   CentroidBackend = "object"
	CentroidBackendDatabase CentroidBackend = "database"
)

func (c Centroids) Backend() CentroidBackend {
	switch {
	case c.Disabled:
		return CentroidBackendNone
	case c.Database != nil && c.Database.Enabled():
		return CentroidBackendDatabase
	case c.ObjectStore != nil && c.ObjectStore.Enabled():
		return CentroidBackendObject
	default:
		return CentroidBackendFile
	}
}

func (c Centroids) GetPath() string {
	if c.Path == "" {
		return DEFAULT_CENTROIDS_PATH
	}
	return c.Path
}
