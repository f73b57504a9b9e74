package database

import (
	"errors"
	"time"

	"github.com/expki/go-colorquant/config"
	"github.com/expki/go-colorquant/logger"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// Open connects to the configured database. Additional writable or read-only
// connections are registered through dbresolver.
func Open(cfg config.Database) (db *gorm.DB, err error) {
	// get dialectors from config
	readwrite, readonly := cfg.GetDialectors()
	if len(readwrite) == 0 {
		return nil, errors.New("no writable database configured")
	}

	// open primary database connection
	db, err = gorm.Open(readwrite[0], &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		Logger: gormlogger.New(zapWriter{}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  cfg.LogLevel.Gorm(),
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to connect database"), err)
	}

	// add resolver connections
	if len(readonly)+len(readwrite) > 1 {
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Sources:           readwrite,
			Replicas:          readonly,
			Policy:            dbresolver.StrictRoundRobinPolicy(),
			TraceResolverMode: true,
		}))
		if err != nil {
			logger.Sugar().Errorf("failed to register database resolver: %v", err)
			return nil, err
		}
	}
	return db, nil
}

// zapWriter routes gorm query logs into the application logger.
type zapWriter struct{}

func (zapWriter) Printf(format string, args ...any) {
	logger.Sugar().Debugf(format, args...)
}
