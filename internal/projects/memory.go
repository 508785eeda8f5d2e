package projects

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jatinbuilds/trio/backend/go-services/internal/models"
)

// MemoryRepository backs unit tests and handler tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*models.Project
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]*models.Project)}
}

func (m *MemoryRepository) Create(ctx context.Context, p *models.Project) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	m.store[p.ID] = &cp
	return p.ID, nil
}

func (m *MemoryRepository) Get(ctx context.Context, id string) (*models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.store[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepository) ListByAuthor(ctx context.Context, authorID string) ([]*models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*models.Project{}
	for _, p := range m.store {
		if p.AuthorID == authorID {
			cp := *p
			out = append(out, &cp)
		}
	}
	// newest first, matching the Mongo sort
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "title":
			p.Title, _ = v.(string)
		case "description":
			p.Description, _ = v.(string)
		case "coverImageUrl":
			p.CoverImageURL, _ = v.(string)
		case "liveUrl":
			p.LiveURL, _ = v.(string)
		case "sourceCodeUrl":
			p.SourceCodeURL, _ = v.(string)
		case "technologies":
			if s, ok := v.([]string); ok {
				p.Technologies = s
			}
		}
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}
