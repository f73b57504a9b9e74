package config

import (
	"encoding/json"
	"errors"
	"os"
)

// CreateSample creates a sample configuration file.
func CreateSample(path string) error {
	threshold := DEFAULT_CONVERGENCE_THRESHOLD
	sample := Config{
		Input:    "./dataset/source_image.jpg",
		Output:   "./dataset/output_images/result.png",
		LogLevel: LogLevelInfo,
		Progress: true,
		KMeans: KMeans{
			K:                    DEFAULT_K,
			MaxIterations:        DEFAULT_MAX_ITERATIONS,
			ConvergenceThreshold: &threshold,
		},
		Centroids: Centroids{
			Path: "./dataset/initial_centroids.txt",
		},
	}
	raw, err := json.MarshalIndent(sample, "", "    ")
	if err != nil {
		return errors.Join(errors.New("could not marshal sample config"), err)
	}
	err = os.WriteFile(path, raw, 0600)
	if err != nil {
		return errors.Join(errors.New("could not write sample config file"), err)
	}
	return nil
}
