package projects

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jatinbuilds/trio/backend/go-services/internal/models"
)

var (
	// ErrForbidden is returned when a caller touches a project they do
	// not own.
	ErrForbidden = errors.New("project belongs to another user")
	// ErrInvalid wraps request validation failures.
	ErrInvalid = errors.New("invalid project payload")
)

// CreateRequest mirrors the admin form. Bounds follow the platform's
// project validators (short title, 10 to 1000 char description, at least one
// technology).
type CreateRequest struct {
	Title         string   `json:"title" validate:"required,min=3,max=100"`
	Description   string   `json:"description" validate:"required,min=10,max=1000"`
	CoverImageURL string   `json:"coverImageUrl" validate:"omitempty,url"`
	LiveURL       string   `json:"liveUrl" validate:"omitempty,url"`
	SourceCodeURL string   `json:"sourceCodeUrl" validate:"omitempty,url"`
	Technologies  []string `json:"technologies" validate:"required,min=1,dive,required"`
}

// UpdateRequest is a partial CreateRequest; nil fields stay untouched.
type UpdateRequest struct {
	Title         *string   `json:"title" validate:"omitempty,min=3,max=100"`
	Description   *string   `json:"description" validate:"omitempty,min=10,max=1000"`
	CoverImageURL *string   `json:"coverImageUrl" validate:"omitempty,url"`
	LiveURL       *string   `json:"liveUrl" validate:"omitempty,url"`
	SourceCodeURL *string   `json:"sourceCodeUrl" validate:"omitempty,url"`
	Technologies  *[]string `json:"technologies" validate:"omitempty,min=1,dive,required"`
}

// Service owns project business rules: validation, author denormalization
// and ownership checks.
type Service struct {
	repo     Repository
	validate *validator.Validate
}

func NewService(r Repository) *Service {
	return &Service{repo: r, validate: validator.New()}
}

// Create validates the payload and stores the project with the author's
// username/avatar denormalized for read efficiency. Timestamps come from
// the repository, never the client.
func (s *Service) Create(ctx context.Context, author *models.User, req CreateRequest) (*models.Project, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	p := &models.Project{
		Title:          req.Title,
		Description:    req.Description,
		CoverImageURL:  req.CoverImageURL,
		LiveURL:        req.LiveURL,
		SourceCodeURL:  req.SourceCodeURL,
		Technologies:   req.Technologies,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		AuthorAvatar:   author.ProfilePictureURL,
	}
	if _, err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Project, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListByAuthor(ctx context.Context, authorID string) ([]*models.Project, error) {
	return s.repo.ListByAuthor(ctx, authorID)
}

// Update applies a partial update after checking ownership.
func (s *Service) Update(ctx context.Context, callerID, id string, req UpdateRequest) (*models.Project, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != callerID {
		return nil, ErrForbidden
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.CoverImageURL != nil {
		fields["coverImageUrl"] = *req.CoverImageURL
	}
	if req.LiveURL != nil {
		fields["liveUrl"] = *req.LiveURL
	}
	if req.SourceCodeURL != nil {
		fields["sourceCodeUrl"] = *req.SourceCodeURL
	}
	if req.Technologies != nil {
		fields["technologies"] = *req.Technologies
	}
	if len(fields) == 0 {
		return p, nil
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, callerID, id string) error {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.AuthorID != callerID {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
