package cmd

import (
	"errors"

	"github.com/expki/go-colorquant/config"
	"github.com/expki/go-colorquant/database"
	"github.com/expki/go-colorquant/kmeans"
	"github.com/expki/go-colorquant/logger"
	"github.com/expki/go-colorquant/noop"
	"github.com/expki/go-colorquant/store"
)

// openStore selects the centroid backend. The returned close function
// releases any connection held by the store.
func openStore(cfg config.Centroids) (kmeans.CentroidStore, func(), error) {
	switch cfg.Backend() {
	case config.CentroidBackendDatabase:
		db, err := database.Open(*cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		centroids, err := database.NewStore(db, cfg.Database.GetRun())
		if err != nil {
			closeDB()
			return nil, nil, err
		}
		logger.Sugar().Infof("Persisting centroids to database run %q", centroids.Run())
		return centroids, closeDB, nil
	case config.CentroidBackendObject:
		client, err := cfg.ObjectStore.Client()
		if err != nil {
			return nil, nil, err
		}
		logger.Sugar().Infof("Persisting centroids to object %s/%s", cfg.ObjectStore.Bucket, cfg.ObjectStore.Key)
		return store.NewObject(client, cfg.ObjectStore.Bucket, cfg.ObjectStore.Key), func() {}, nil
	case config.CentroidBackendFile:
		logger.Sugar().Infof("Persisting centroids to %s", cfg.GetPath())
		return store.NewFile(cfg.GetPath()), func() {}, nil
	case config.CentroidBackendNone:
		logger.Sugar().Warn("Centroid persistence disabled, centroids will not be saved")
		return noop.Store{}, func() {}, nil
	default:
		return nil, nil, errors.New("unknown centroid backend")
	}
}
