package database

import (
	"context"
	"errors"

	"github.com/expki/go-colorquant/compute"
	"github.com/expki/go-colorquant/logger"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// Store records every saved centroid set of a run as its own row. Load
// returns the most recent one.
type Store struct {
	db  *gorm.DB
	run string
}

func NewStore(db *gorm.DB, run string) (*Store, error) {
	if run == "" {
		return nil, errors.New("run name is required")
	}
	err := db.Clauses(dbresolver.Write).AutoMigrate(&CentroidSet{})
	if err != nil {
		return nil, errors.Join(errors.New("failed to migrate centroid table"), err)
	}
	return &Store{db: db, run: run}, nil
}

func (s *Store) Run() string {
	return s.run
}

// Load returns the latest centroid set of the run, or an empty set when the
// run has none.
func (s *Store) Load(ctx context.Context) (compute.CentroidSet, error) {
	var row CentroidSet
	err := s.db.WithContext(ctx).Clauses(dbresolver.Read).
		Where("run = ?", s.run).
		Order("iteration DESC").
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Sugar().Debugf("No centroids recorded for run %q", s.run)
		return nil, nil
	} else if err != nil {
		return nil, errors.Join(errors.New("failed to load centroids"), err)
	}
	return row.Vectors.Underlying(), nil
}

// Save appends the set as the next iteration of the run.
func (s *Store) Save(ctx context.Context, centroids compute.CentroidSet) error {
	err := s.db.WithContext(ctx).Clauses(dbresolver.Write).Transaction(func(tx *gorm.DB) error {
		var last int
		err := tx.Model(&CentroidSet{}).
			Where("run = ?", s.run).
			Select("COALESCE(MAX(iteration), -1)").
			Scan(&last).Error
		if err != nil {
			return err
		}
		return tx.Create(&CentroidSet{
			Run:       s.run,
			Iteration: last + 1,
			K:         len(centroids),
			Vectors:   VectorField(centroids.Clone()),
		}).Error
	})
	if err != nil {
		return errors.Join(errors.New("failed to save centroids"), err)
	}
	return nil
}

// History lists every recorded set of the run in the order they were saved.
func (s *Store) History(ctx context.Context) ([]CentroidSet, error) {
	var rows []CentroidSet
	err := s.db.WithContext(ctx).Clauses(dbresolver.Read).
		Where("run = ?", s.run).
		Order("iteration ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Join(errors.New("failed to list centroids"), err)
	}
	return rows, nil
}
