package users

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jatinbuilds/trio/backend/go-services/internal/models"
)

// MemoryRepository is an in-memory Repository used by unit tests and by the
// handler tests that exercise tenant resolution without a Mongo instance.
// Domain lookups iterate users sorted by ID to mirror the Mongo _id ordering.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]*models.User)}
}

func (m *MemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.store[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *MemoryRepository) sortedUsers() []*models.User {
	out := make([]*models.User, 0, len(m.store))
	for _, u := range m.store {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *MemoryRepository) FirstByPortfolioDomain(ctx context.Context, domain string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.sortedUsers() {
		if u.PortfolioDomain == domain {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemoryRepository) FirstByAdminDomain(ctx context.Context, domain string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.sortedUsers() {
		if u.AdminDomain == domain {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemoryRepository) DomainInUse(ctx context.Context, domain, excludeUserID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.store {
		if u.ID == excludeUserID {
			continue
		}
		if u.PortfolioDomain == domain || u.AdminDomain == domain {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryRepository) Create(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	cp := *u
	m.store[u.ID] = &cp
	return nil
}

func (m *MemoryRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.store[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields {
		applyField(u, k, v)
	}
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// applyField mirrors the Mongo $set semantics for the field names the
// services actually write.
func applyField(u *models.User, key string, value interface{}) {
	switch key {
	case "username":
		u.Username, _ = value.(string)
	case "fullName":
		u.FullName, _ = value.(string)
	case "email":
		u.Email, _ = value.(string)
	case "headline":
		u.Headline, _ = value.(string)
	case "bio":
		u.Bio, _ = value.(string)
	case "profilePictureUrl":
		u.ProfilePictureURL, _ = value.(string)
	case "portfolioDomain":
		u.PortfolioDomain, _ = value.(string)
	case "adminDomain":
		u.AdminDomain, _ = value.(string)
	case "skills":
		if s, ok := value.([]string); ok {
			u.Skills = s
		}
	case "socialLinks":
		if s, ok := value.(map[string]string); ok {
			u.SocialLinks = s
		}
	case "experience":
		if s, ok := value.([]models.Experience); ok {
			u.Experience = s
		}
	case "education":
		if s, ok := value.([]models.Education); ok {
			u.Education = s
		}
	case "projectIds":
		if s, ok := value.([]string); ok {
			u.ProjectIDs = s
		}
	}
}
