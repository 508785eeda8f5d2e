package domains

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jatinbuilds/trio/backend/go-services/internal/models"
	"github.com/jatinbuilds/trio/backend/go-services/internal/users"
	"github.com/jatinbuilds/trio/backend/go-services/pkg/metrics"
)

// AppType selects which surface a resolved host serves.
type AppType string

const (
	AppTypePortfolio AppType = "portfolio"
	AppTypeAdmin     AppType = "admin"
)

var (
	// ErrNotFound means no user claims the host. Distinct from
	// ErrUnavailable so callers can answer 404 vs 503 instead of
	// collapsing both into "not found".
	ErrNotFound = errors.New("no user claims this domain")
	// ErrUnavailable wraps store failures during resolution.
	ErrUnavailable = errors.New("domain resolution unavailable")
	// ErrDomainTaken is returned when an update would bind a domain
	// already claimed by another user.
	ErrDomainTaken = errors.New("domain already bound to another user")
	// ErrEmptyDomain rejects blank host strings early.
	ErrEmptyDomain = errors.New("domain must not be empty")
)

// Resolution is ephemeral: computed per request, never persisted.
type Resolution struct {
	Domain  string       `json:"domain"`
	AppType AppType      `json:"appType"`
	User    *models.User `json:"user"`
}

// DomainPair is the pair of hosts bound to one user.
type DomainPair struct {
	Portfolio string `json:"portfolio"`
	Admin     string `json:"admin"`
}

// DomainUpdate is a partial update; nil pointers leave a binding untouched.
type DomainUpdate struct {
	Portfolio *string `json:"portfolio,omitempty"`
	Admin     *string `json:"admin,omitempty"`
}

// Service resolves hosts to tenants and manages domain bindings.
type Service struct {
	repo users.Repository
}

func NewService(r users.Repository) *Service {
	return &Service{repo: r}
}

// Resolve maps a host to exactly one tenant surface. Portfolio bindings are
// checked first, so a contrived host claimed as both a portfolio and an
// admin domain resolves to the portfolio.
func (s *Service) Resolve(ctx context.Context, host string) (*Resolution, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		metrics.DomainResolutions.WithLabelValues("miss").Inc()
		return nil, ErrNotFound
	}

	u, err := s.repo.FirstByPortfolioDomain(ctx, host)
	if err != nil {
		metrics.DomainResolutions.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if u != nil {
		metrics.DomainResolutions.WithLabelValues("portfolio").Inc()
		return &Resolution{Domain: host, AppType: AppTypePortfolio, User: u}, nil
	}

	u, err = s.repo.FirstByAdminDomain(ctx, host)
	if err != nil {
		metrics.DomainResolutions.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if u != nil {
		metrics.DomainResolutions.WithLabelValues("admin").Inc()
		return &Resolution{Domain: host, AppType: AppTypeAdmin, User: u}, nil
	}

	metrics.DomainResolutions.WithLabelValues("miss").Inc()
	return nil, ErrNotFound
}

// UserByDomain is a convenience wrapper used by routing glue that only needs
// the tenant, not the surface.
func (s *Service) UserByDomain(ctx context.Context, host string) (*models.User, error) {
	res, err := s.Resolve(ctx, host)
	if err != nil {
		return nil, err
	}
	return res.User, nil
}

// IsDomainValid reports whether the domain belongs to the given user.
func (s *Service) IsDomainValid(ctx context.Context, domain, userID string) (bool, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if u == nil {
		return false, nil
	}
	return u.PortfolioDomain == domain || u.AdminDomain == domain, nil
}

// UserDomains returns both bindings for a user, or ErrNotFound.
func (s *Service) UserDomains(ctx context.Context, userID string) (*DomainPair, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return &DomainPair{Portfolio: u.PortfolioDomain, Admin: u.AdminDomain}, nil
}

// UpdateDomains rebinds one or both domains. Uniqueness is enforced here at
// write time: a domain claimed by any other user (either field) is rejected
// with ErrDomainTaken before anything is written.
func (s *Service) UpdateDomains(ctx context.Context, userID string, upd DomainUpdate) error {
	fields := map[string]interface{}{}
	for _, cand := range []struct {
		value *string
		field string
	}{
		{upd.Portfolio, "portfolioDomain"},
		{upd.Admin, "adminDomain"},
	} {
		if cand.value == nil {
			continue
		}
		d := strings.TrimSpace(*cand.value)
		if d == "" {
			return ErrEmptyDomain
		}
		taken, err := s.repo.DomainInUse(ctx, d, userID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if taken {
			return fmt.Errorf("%w: %s", ErrDomainTaken, d)
		}
		fields[cand.field] = d
	}
	if len(fields) == 0 {
		return nil
	}
	if err := s.repo.UpdateFields(ctx, userID, fields); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
