package users

import (
	"context"
	"errors"
	"strings"

	"github.com/jatinbuilds/trio/backend/go-services/internal/models"
)

// ErrNoFields is returned when a profile update carries nothing to change.
var ErrNoFields = errors.New("no valid fields to update")

// Service encapsulates user-related business logic
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// EnsureFromClaims returns the user bound to the verified identity, creating
// a minimal record on first login. The OIDC subject doubles as the user ID,
// so onboarding state and identity never drift apart.
func (s *Service) EnsureFromClaims(ctx context.Context, claims map[string]interface{}) (*models.User, error) {
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, errors.New("claims missing sub")
	}
	u, err := s.repo.GetByID(ctx, sub)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}

	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	username, _ := claims["preferred_username"].(string)
	if username == "" && email != "" {
		username = strings.SplitN(email, "@", 2)[0]
	}
	nu := &models.User{
		ID:                sub,
		Username:          username,
		FullName:          name,
		Email:             email,
		ProfilePictureURL: "https://avatar.vercel.sh/" + username,
		SocialLinks:       map[string]string{},
	}
	if err := s.repo.Create(ctx, nu); err != nil {
		return nil, err
	}
	return nu, nil
}

// ProfileUpdate is a partial update of the editable profile fields. Nil
// pointers leave the stored value untouched.
type ProfileUpdate struct {
	FullName          *string              `json:"fullName,omitempty"`
	Headline          *string              `json:"headline,omitempty"`
	Bio               *string              `json:"bio,omitempty"`
	ProfilePictureURL *string              `json:"profilePictureUrl,omitempty"`
	Skills            *[]string            `json:"skills,omitempty"`
	SocialLinks       *map[string]string   `json:"socialLinks,omitempty"`
	Experience        *[]models.Experience `json:"experience,omitempty"`
	Education         *[]models.Education  `json:"education,omitempty"`
}

func (p ProfileUpdate) fields() map[string]interface{} {
	f := map[string]interface{}{}
	if p.FullName != nil {
		f["fullName"] = *p.FullName
	}
	if p.Headline != nil {
		f["headline"] = *p.Headline
	}
	if p.Bio != nil {
		f["bio"] = *p.Bio
	}
	if p.ProfilePictureURL != nil {
		f["profilePictureUrl"] = *p.ProfilePictureURL
	}
	if p.Skills != nil {
		f["skills"] = *p.Skills
	}
	if p.SocialLinks != nil {
		f["socialLinks"] = *p.SocialLinks
	}
	if p.Experience != nil {
		f["experience"] = *p.Experience
	}
	if p.Education != nil {
		f["education"] = *p.Education
	}
	return f
}

// UpdateProfile applies a partial update and returns the fresh user.
func (s *Service) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*models.User, error) {
	fields := upd.fields()
	if len(fields) == 0 {
		return nil, ErrNoFields
	}
	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
