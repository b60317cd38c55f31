package services

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"fintrack/internal/aggregator"
	"fintrack/internal/cache"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
)

// Snapshot is a read-only copy of one user's records. Callers must not
// modify the slices or map it holds, since the same value is served to every
// reader until it expires or is invalidated.
type Snapshot struct {
	Expenses      []aggregator.Expense
	Budgets       []aggregator.Budget
	IncomeSources []aggregator.IncomeSource
	Categories    aggregator.CategoryNames
	LoadedAt      time.Time
}

// InvalidationPublisher broadcasts snapshot invalidations to other replicas.
type InvalidationPublisher interface {
	PublishInvalidation(ctx context.Context, userID string) error
}

// snapshotService loads snapshots from the database through a cache.
//
// Each user has a generation that every invalidation bumps. A snapshot read
// while the generation moved is returned to its caller but never cached.
type snapshotService struct {
	db        *gorm.DB
	cache     cache.Cache[*Snapshot]
	publisher InvalidationPublisher
	now       func() time.Time

	mu          sync.Mutex
	generations map[string]uint64
}

// NewSnapshotService creates a SnapshotServicer backed by c. publisher may be
// nil, in which case invalidation stays local to this process.
func NewSnapshotService(db *gorm.DB, c cache.Cache[*Snapshot], publisher InvalidationPublisher) SnapshotServicer {
	return &snapshotService{
		db:          db,
		cache:       c,
		publisher:   publisher,
		now:         time.Now,
		generations: make(map[string]uint64),
	}
}

// Load returns the cached snapshot for userID or reads a fresh one.
func (s *snapshotService) Load(userID string) (*Snapshot, error) {
	if snap, ok := s.cache.Get(userID); ok {
		return snap, nil
	}

	gen := s.generation(userID)
	snap, err := s.read(userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.generations[userID] == gen {
		s.cache.Set(userID, snap)
	}
	s.mu.Unlock()
	return snap, nil
}

func (s *snapshotService) generation(userID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[userID]
}

// drop bumps the user's generation and removes the cached entry.
func (s *snapshotService) drop(userID string) {
	s.mu.Lock()
	s.generations[userID]++
	s.cache.Delete(userID)
	s.mu.Unlock()
}

func (s *snapshotService) read(userID string) (*Snapshot, error) {
	var expenses []models.Expense
	if err := s.db.Where("user_id = ?", userID).Order("date DESC, id DESC").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var sources []models.IncomeSource
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&sources).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := s.db.Where("user_id = ? OR user_id IS NULL", userID).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	snap := &Snapshot{
		Expenses:      make([]aggregator.Expense, 0, len(expenses)),
		Budgets:       make([]aggregator.Budget, 0, len(budgets)),
		IncomeSources: make([]aggregator.IncomeSource, 0, len(sources)),
		Categories:    make(aggregator.CategoryNames, len(categories)),
		LoadedAt:      s.now(),
	}
	for _, e := range expenses {
		snap.Expenses = append(snap.Expenses, toAggregatorExpense(e))
	}
	for _, b := range budgets {
		snap.Budgets = append(snap.Budgets, toAggregatorBudget(b))
	}
	for _, src := range sources {
		snap.IncomeSources = append(snap.IncomeSources, aggregator.IncomeSource{
			ID:        src.ID,
			Name:      src.Name,
			Amount:    src.Amount,
			Frequency: string(src.Frequency),
		})
	}
	for _, c := range categories {
		snap.Categories[c.ID] = c.Name
	}
	return snap, nil
}

// Invalidate drops the local entry and broadcasts the invalidation.
func (s *snapshotService) Invalidate(userID string) {
	s.drop(userID)
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishInvalidation(context.Background(), userID); err != nil {
		logger.Get().Warnw("failed to broadcast snapshot invalidation", "error", err, "user_id", userID)
	}
}

// Evict drops the local entry only.
func (s *snapshotService) Evict(userID string) {
	s.drop(userID)
}

func toAggregatorExpense(e models.Expense) aggregator.Expense {
	return aggregator.Expense{
		ID:          e.ID,
		CategoryID:  e.CategoryID,
		Amount:      e.Amount,
		Date:        e.Date,
		Description: e.Description,
	}
}

func toAggregatorBudget(b models.Budget) aggregator.Budget {
	return aggregator.Budget{
		ID:             b.ID,
		CategoryID:     b.CategoryID,
		LimitAmount:    b.LimitAmount,
		StartDate:      b.StartDate,
		EndDate:        b.EndDate,
		AlertThreshold: b.AlertThreshold,
	}
}

// calendarDate returns midnight UTC of t's calendar date.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
