package database

import (
	"time"

	"gorm.io/gorm"
)

// CentroidSet is one persisted iteration of a clustering run.
type CentroidSet struct {
	ID        uint64      `gorm:"primarykey"`
	Run       string      `gorm:"uniqueIndex:idx_run_iteration;not null"`
	Iteration int         `gorm:"uniqueIndex:idx_run_iteration;not null"`
	K         int         `gorm:"not null"`
	Vectors   VectorField `gorm:"not null"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime;index;not null"`
}

func (m *CentroidSet) BeforeCreate(tx *gorm.DB) error {
	m.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *CentroidSet) BeforeUpdate(tx *gorm.DB) error {
	m.UpdatedAt = time.Now().UTC()
	return nil
}
