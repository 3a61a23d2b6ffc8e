// Package cart persists cart line items in an embedded SQLite database.
//
// A Store starts Uninitialized. Initialize opens the database file, applies
// the WAL and foreign-key pragmas and creates the cart table if needed; only
// after it succeeds is the store Ready and able to serve AddItem and
// ListItems. Rows are append-only.
package cart

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Skotchmaster/storefront/internal/models"
)

type State int32

const (
	Uninitialized State = iota
	Initializing
	Ready
	Closed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

type Store struct {
	path string

	// initMu serializes Initialize and Close; mu guards state and db.
	initMu sync.Mutex
	mu     sync.RWMutex
	state  State
	db     *gorm.DB
}

// NewStore returns an uninitialized store backed by the database file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Initialize brings the store to Ready. Calling it on a Ready store is a
// no-op; existing rows are never touched. On failure the store returns to
// Uninitialized and Initialize may be retried.
func (s *Store) Initialize(ctx context.Context) error {
	s.initMu.Lock()
	defer s.initMu.Unlock()

	switch s.State() {
	case Ready:
		return nil
	case Closed:
		return fmt.Errorf("%w: store is closed", ErrStorageInit)
	}

	s.setState(Initializing, nil)

	db, err := open(ctx, s.path)
	if err != nil {
		s.setState(Uninitialized, nil)
		return fmt.Errorf("%w: %w", ErrStorageInit, err)
	}

	s.setState(Ready, db)
	return nil
}

func (s *Store) setState(state State, db *gorm.DB) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.db = db
}

func (s *Store) handle() (*gorm.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != Ready {
		return nil, fmt.Errorf("%w (state %s)", ErrNotReady, s.state)
	}
	return s.db, nil
}

// AddItem appends one row built from p and returns it with its new id.
// Repeated calls with the same product produce distinct rows.
func (s *Store) AddItem(ctx context.Context, p models.Product) (models.CartItem, error) {
	db, err := s.handle()
	if err != nil {
		return models.CartItem{}, err
	}

	item := models.NewCartItem(p)
	if err := db.WithContext(ctx).Create(&item).Error; err != nil {
		return models.CartItem{}, fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	return item, nil
}

// ListItems returns every row in the cart, oldest first. An empty cart is an
// empty slice with a nil error.
func (s *Store) ListItems(ctx context.Context) ([]models.CartItem, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	items := make([]models.CartItem, 0)
	if err := db.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageRead, err)
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return items, nil
}

func (s *Store) Close() error {
	s.initMu.Lock()
	defer s.initMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Closed {
		return nil
	}
	db := s.db
	s.state = Closed
	s.db = nil

	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	return sqlDB.Close()
}

func isFileBacked(path string) bool {
	return path != ":memory:" && !strings.HasPrefix(path, "file:")
}

func open(ctx context.Context, path string) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is empty")
	}
	if isFileBacked(path) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	// SQLite has a single writer; one connection also keeps per-connection
	// pragmas in force.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	for _, pragma := range pragmas {
		if err := db.WithContext(ctx).Exec(pragma).Error; err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("execute %q: %w", pragma, err)
		}
	}

	if err := db.WithContext(ctx).Exec(schema).Error; err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}
