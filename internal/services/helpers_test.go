package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"fintrack/internal/aggregator"
	"fintrack/internal/cache"
)

// recordingPublisher remembers every invalidation it is asked to broadcast.
type recordingPublisher struct {
	mu      sync.Mutex
	userIDs []string
	err     error
}

func (p *recordingPublisher) PublishInvalidation(_ context.Context, userID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.userIDs = append(p.userIDs, userID)
	return p.err
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.userIDs...)
}

var errPublish = errors.New("broker unavailable")

// testServices bundles the services of one test database.
type testServices struct {
	snapshots  SnapshotServicer
	publisher  *recordingPublisher
	categories CategoryServicer
	expenses   ExpenseServicer
	budgets    BudgetServicer
	income     IncomeServicer
}

func newTestSnapshots(db *gorm.DB) (SnapshotServicer, *recordingPublisher) {
	publisher := &recordingPublisher{}
	c := cache.NewLRUCache[*Snapshot](100, time.Minute)
	return NewSnapshotService(db, c, publisher), publisher
}

func newTestServices(db *gorm.DB) *testServices {
	snapshots, publisher := newTestSnapshots(db)
	categories := NewCategoryService(db, snapshots)
	return &testServices{
		snapshots:  snapshots,
		publisher:  publisher,
		categories: categories,
		expenses:   NewExpenseService(db, categories, snapshots),
		budgets:    NewBudgetService(db, categories, snapshots, aggregator.EvaluateOptions{}),
		income:     NewIncomeService(db, snapshots),
	}
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
