package journal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zhouzirui/moodmate/backend/internal/analysis/emotion"
	"github.com/zhouzirui/moodmate/backend/internal/model/mood"
	"github.com/zhouzirui/moodmate/backend/internal/storage"
)

// DefaultCapacity is how many entries the history keeps.
const DefaultCapacity = 10

var ErrRecordNotFound = errors.New("history record not found")

// LabelCount is one row of the history summary.
type LabelCount struct {
	Emotion emotion.Label `json:"emotion"`
	Count   int           `json:"count"`
}

// Service keeps the newest-first, bounded emotion history and mirrors it to the store.
type Service struct {
	mu       sync.RWMutex
	store    storage.Store
	capacity int
	records  []mood.EmotionRecord
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source used to stamp new records.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides record id generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewService creates a history bound to store. A capacity below 1 uses DefaultCapacity.
func NewService(store storage.Store, capacity int, logger *zap.Logger, opts ...Option) *Service {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		store:    store,
		capacity: capacity,
		records:  make([]mood.EmotionRecord, 0, capacity),
		logger:   logger.Named("journal"),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Capacity returns the maximum number of kept records.
func (s *Service) Capacity() int {
	return s.capacity
}

// Load 从存储中恢复历史记录。损坏的数据会被清除并以空历史继续。
func (s *Service) Load(ctx context.Context) error {
	var stored []mood.EmotionRecord
	_, err := storage.LoadJSON(ctx, s.store, mood.HistoryKey, &stored)
	switch {
	case errors.Is(err, storage.ErrCorrupt):
		s.logger.Warn("stored history is corrupt, starting empty", zap.Error(err))
		stored = nil
	case err != nil:
		return fmt.Errorf("load history: %w", err)
	}

	if len(stored) > s.capacity {
		stored = stored[:s.capacity]
	}

	s.mu.Lock()
	s.records = append(make([]mood.EmotionRecord, 0, s.capacity), stored...)
	s.mu.Unlock()

	s.logger.Debug("history loaded", zap.Int("records", len(stored)))
	return nil
}

// Append records a completed submission at the head of the history and persists it.
// The in-memory history keeps the record even when persisting fails.
func (s *Service) Append(ctx context.Context, tokens []string, result mood.Suggestion) (mood.EmotionRecord, error) {
	record := mood.NewRecord(s.newID(), tokens, &result, s.now())

	s.mu.Lock()
	next := make([]mood.EmotionRecord, 0, s.capacity)
	next = append(next, record)
	next = append(next, s.records...)
	if len(next) > s.capacity {
		next = next[:s.capacity]
	}
	s.records = next
	snapshot := cloneRecords(next)
	s.mu.Unlock()

	if err := storage.SaveJSON(ctx, s.store, mood.HistoryKey, snapshot); err != nil {
		s.logger.Warn("persist history failed", zap.Error(err))
		return record, fmt.Errorf("persist history: %w", err)
	}
	return record, nil
}

// List returns the history newest first.
func (s *Service) List() []mood.EmotionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRecords(s.records)
}

// Get looks a record up by id.
func (s *Service) Get(id string) (mood.EmotionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, record := range s.records {
		if record.ID != "" && record.ID == id {
			return cloneRecord(record), nil
		}
	}
	return mood.EmotionRecord{}, ErrRecordNotFound
}

// Summary counts history entries per detected emotion.
func (s *Service) Summary() []LabelCount {
	counts := make(map[emotion.Label]int, len(emotion.Labels))
	for _, record := range s.List() {
		counts[emotion.ClassifyString(record.Emoji).Emotion]++
	}

	summary := make([]LabelCount, 0, len(emotion.Labels))
	for _, label := range emotion.Labels {
		summary = append(summary, LabelCount{Emotion: label, Count: counts[label]})
	}
	return summary
}

func cloneRecords(records []mood.EmotionRecord) []mood.EmotionRecord {
	out := make([]mood.EmotionRecord, len(records))
	for i, record := range records {
		out[i] = cloneRecord(record)
	}
	return out
}

func cloneRecord(record mood.EmotionRecord) mood.EmotionRecord {
	if record.AIResponse != nil {
		copied := *record.AIResponse
		record.AIResponse = &copied
	}
	return record
}
