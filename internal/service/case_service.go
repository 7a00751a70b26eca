package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vakildesk/vakildesk-api/internal/dto"
	"github.com/vakildesk/vakildesk-api/internal/models"
	appErrors "github.com/vakildesk/vakildesk-api/pkg/errors"
)

type caseStore interface {
	Load(ctx context.Context) ([]models.Case, error)
	Save(ctx context.Context, cases []models.Case) error
}

// CaseService owns the authoritative in-memory case collection. Every
// mutation writes through to the store and recomputes the calendar index and
// counters. A single mutex serializes mutations, standing in for the one
// logical writer of the original single-tab design; reads hand out copies.
type CaseService struct {
	store   caseStore
	logger  *zap.Logger
	metrics *MetricsService
	now     func() time.Time

	mu       sync.RWMutex
	cases    []models.Case
	index    models.CalendarIndex
	counters models.CaseCounters
}

// NewCaseService constructs the service.
func NewCaseService(store caseStore, logger *zap.Logger) *CaseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CaseService{store: store, logger: logger, now: time.Now, cases: []models.Case{}}
}

// AttachMetrics mirrors derived counters into Prometheus gauges.
func (s *CaseService) AttachMetrics(m *MetricsService) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = m
	s.metrics.SetCaseCounters(s.counters)
}

// Init loads the persisted collection and derives the initial views.
func (s *CaseService) Init(ctx context.Context) error {
	cases, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cases = cases
	s.rederive()
	return nil
}

// Upsert replaces the case with a matching id at its original position, or
// appends when no match exists. A blank id gets a fresh UUID. An edit that
// changes the stage or diary note prepends a snapshot of the prior record to
// the history, newest first. The returned bool reports whether write-through
// persistence succeeded; on failure the in-memory mutation still stands and
// the session continues (the store is retried on the next mutation, never
// automatically).
func (s *CaseService) Upsert(ctx context.Context, c models.Case) (models.Case, bool, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.History == nil {
		c.History = []models.HistoryEntry{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	next := make([]models.Case, len(s.cases))
	copy(next, s.cases)
	for i := range next {
		if next[i].ID == c.ID {
			if prior := next[i]; prior.Stage != c.Stage || prior.DiaryNote != c.DiaryNote {
				entry := models.HistoryEntry{
					Date:        s.now().UTC().Format("2006-01-02"),
					Proceedings: prior.DiaryNote,
					Stage:       prior.Stage,
					NextDate:    prior.NextDate,
				}
				c.History = append([]models.HistoryEntry{entry}, c.History...)
			}
			next[i] = c
			replaced = true
			break
		}
	}
	if !replaced {
		next = append(next, c)
	}

	persisted := s.commit(ctx, next)
	return c, persisted, nil
}

// ReplaceAll swaps the entire collection, the bulk-import path. Validation is
// structural only: the value must be a sequence and every element must carry
// an identifier. Nothing is replaced when validation fails.
func (s *CaseService) ReplaceAll(ctx context.Context, cases []models.Case) (int, bool, error) {
	if cases == nil {
		return 0, false, appErrors.Clone(appErrors.ErrMalformedImport, "import payload must be a sequence of cases")
	}
	for i, c := range cases {
		if c.ID == "" {
			return 0, false, appErrors.Clone(appErrors.ErrMalformedImport, "imported case at position "+strconv.Itoa(i)+" has no identifier")
		}
	}

	next := make([]models.Case, len(cases))
	copy(next, cases)

	s.mu.Lock()
	defer s.mu.Unlock()
	persisted := s.commit(ctx, next)
	return len(next), persisted, nil
}

// Get returns the case with the given id.
func (s *CaseService) Get(id string) (*models.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cases {
		if c.ID == id {
			out := c
			return &out, nil
		}
	}
	return nil, appErrors.ErrNotFound
}

// List returns a copy of the full collection in insertion order.
func (s *CaseService) List() []models.Case {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Case, len(s.cases))
	copy(out, s.cases)
	return out
}

// Search filters the collection by free-text query and status, sorted by
// next hearing date, most distant first. The query matches title, case
// number, court, case type, or represented side, case-insensitively.
func (s *CaseService) Search(filter dto.SearchFilter) []models.Case {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	status := strings.TrimSpace(filter.Status)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Case, 0, len(s.cases))
	for _, c := range s.cases {
		if status != "" && status != "All" && string(c.Status) != status {
			continue
		}
		if query != "" && !matchesQuery(c, query) {
			continue
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NextDate > out[j].NextDate
	})
	return out
}

// Calendar returns a copy of the derived date index.
func (s *CaseService) Calendar() models.CalendarIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(models.CalendarIndex, len(s.index))
	for date, cases := range s.index {
		entry := make([]models.Case, len(cases))
		copy(entry, cases)
		out[date] = entry
	}
	return out
}

// CalendarOn returns the pending cases listed under one ISO date.
func (s *CaseService) CalendarOn(date string) []models.Case {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cases := s.index[date]
	out := make([]models.Case, len(cases))
	copy(out, cases)
	return out
}

// Counters returns the current aggregate totals.
func (s *CaseService) Counters() models.CaseCounters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters
}

// commit installs the new collection, persists write-through, and recomputes
// derived views. Callers hold the write lock. The return value reports
// persistence success; in-memory state is authoritative either way.
func (s *CaseService) commit(ctx context.Context, next []models.Case) bool {
	s.cases = next
	s.rederive()

	if err := s.store.Save(ctx, next); err != nil {
		s.logger.Warn("case collection persistence failed, session continues in memory", zap.Error(err))
		return false
	}
	return true
}

func (s *CaseService) rederive() {
	s.index = DeriveIndex(s.cases)
	s.counters = DeriveCounters(s.cases)
	s.metrics.SetCaseCounters(s.counters)
}

func matchesQuery(c models.Case, query string) bool {
	for _, field := range []string{c.Title, c.CaseNumber, c.Court, c.CaseType, c.Side} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
