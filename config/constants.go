package config

const (
	DEFAULT_K                     = 5
	DEFAULT_MAX_ITERATIONS        = 10
	DEFAULT_CONVERGENCE_THRESHOLD = 1.0
	DEFAULT_RUN                   = "default"
	DEFAULT_CENTROIDS_PATH        = "./dataset/initial_centroids.txt"

	JPEG_QUALITY = 90

	PROGRESS_STEP = 16_384
)
