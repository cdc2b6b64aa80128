package flow

import (
	"context"
	"sync"
)

// MemoryStorage keeps drafts in process memory. Good enough for tests
// and single-instance deployments without Mongo.
type MemoryStorage struct {
	mu     sync.RWMutex
	drafts map[int64]*Draft
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{drafts: make(map[int64]*Draft)}
}

func (s *MemoryStorage) Save(_ context.Context, d *Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[d.UserID] = d
	return nil
}

func (s *MemoryStorage) Load(_ context.Context, userID int64) (*Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drafts[userID], nil
}

func (s *MemoryStorage) Delete(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, userID)
	return nil
}

// DraftRepository defines the database operations for drafts.
type DraftRepository interface {
	SaveDraft(ctx context.Context, d *Draft) error
	LoadDraft(ctx context.Context, userID int64) (*Draft, error)
	DeleteDraft(ctx context.Context, userID int64) error
}

// MongoStorage adapts the database repository to the StateStorage
// interface.
type MongoStorage struct {
	repo DraftRepository
}

func NewMongoStorage(repo DraftRepository) *MongoStorage {
	return &MongoStorage{repo: repo}
}

func (s *MongoStorage) Save(ctx context.Context, d *Draft) error {
	return s.repo.SaveDraft(ctx, d)
}

func (s *MongoStorage) Load(ctx context.Context, userID int64) (*Draft, error) {
	return s.repo.LoadDraft(ctx, userID)
}

func (s *MongoStorage) Delete(ctx context.Context, userID int64) error {
	return s.repo.DeleteDraft(ctx, userID)
}
