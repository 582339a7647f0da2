package funfacts

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethanbaker/states/pkg/states"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store handles fun fact persistence using GORM
type Store struct {
	db *gorm.DB
}

// NewStore creates a new fun fact store with a MySQL connection
func NewStore(databaseURL string) (*Store, error) {
	return Open(mysql.Open(databaseURL))
}

// Open creates a fun fact store on any GORM dialector
func Open(dialector gorm.Dialector) (*Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}

	// Auto-migrate tables
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	return store, nil
}

// migrate creates or updates the required database tables
func (s *Store) migrate() error {
	return s.db.AutoMigrate(&FunFactModel{})
}

// GetFacts returns the facts stored for a state, or false if the state has no row
func (s *Store) GetFacts(ctx context.Context, code string) ([]string, bool, error) {
	var model FunFactModel
	result := s.db.WithContext(ctx).Where("state_code = ?", code).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get fun facts: %w", result.Error)
	}

	return model.toOverlay().Facts, true, nil
}

// GetOrCreate returns the row for a state, creating an empty one if it does not exist
func (s *Store) GetOrCreate(ctx context.Context, code string) (*states.FunFactOverlay, error) {
	var model FunFactModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return getOrCreate(tx, code, &model)
	})
	if err != nil {
		return nil, err
	}

	return model.toOverlay(), nil
}

// AppendFacts appends facts to a state's row, creating the row first if needed
func (s *Store) AppendFacts(ctx context.Context, code string, facts []string) (*states.FunFactOverlay, error) {
	if len(facts) == 0 {
		return nil, states.ErrEmptyFacts
	}

	var model FunFactModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := getOrCreate(tx, code, &model); err != nil {
			return err
		}

		updated, err := states.AppendFacts(model.Facts, facts)
		if err != nil {
			return err
		}
		return saveFacts(tx, &model, updated)
	})
	if err != nil {
		return nil, err
	}

	return model.toOverlay(), nil
}

// ReplaceFactAt sets the fact at a zero-based index
func (s *Store) ReplaceFactAt(ctx context.Context, code string, index int, value string) (*states.FunFactOverlay, error) {
	return s.mutate(ctx, code, func(facts []string) ([]string, error) {
		return states.ReplaceAt(facts, index, value)
	})
}

// RemoveFactAt removes the fact at a zero-based index. The tombstone and compaction happen in one transaction
func (s *Store) RemoveFactAt(ctx context.Context, code string, index int) (*states.FunFactOverlay, error) {
	return s.mutate(ctx, code, func(facts []string) ([]string, error) {
		return states.RemoveAt(facts, index)
	})
}

// Ping checks the database connection
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	return sqlDB.Close()
}

// mutate locks an existing row, applies fn to its facts and saves the result
func (s *Store) mutate(ctx context.Context, code string, fn func([]string) ([]string, error)) (*states.FunFactOverlay, error) {
	var model FunFactModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("state_code = ?", code).First(&model)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return states.ErrNoFacts
			}
			return fmt.Errorf("failed to get fun facts: %w", result.Error)
		}

		updated, err := fn(model.Facts)
		if err != nil {
			return err
		}
		return saveFacts(tx, &model, updated)
	})
	if err != nil {
		return nil, err
	}

	return model.toOverlay(), nil
}

// getOrCreate inserts an empty row for code unless one exists, then loads and locks it.
// Inserting first keeps concurrent first writes from racing on a missing row's gap lock.
func getOrCreate(tx *gorm.DB, code string, model *FunFactModel) error {
	empty := FunFactModel{StateCode: code, Facts: FactList{}}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&empty).Error; err != nil {
		return fmt.Errorf("failed to create fun facts: %w", err)
	}

	var found FunFactModel
	result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("state_code = ?", code).First(&found)
	if result.Error != nil {
		return fmt.Errorf("failed to get fun facts: %w", result.Error)
	}

	*model = found
	return nil
}

// saveFacts writes a new fact list to the row
func saveFacts(tx *gorm.DB, model *FunFactModel, facts []string) error {
	if err := tx.Model(model).Update("facts", FactList(facts)).Error; err != nil {
		return fmt.Errorf("failed to update fun facts: %w", err)
	}
	model.Facts = facts
	return nil
}
