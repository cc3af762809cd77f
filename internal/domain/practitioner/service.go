package practitioner

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// defaultColor is applied when a practitioner is created without one.
const defaultColor = "#4287f5"

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePractitioner(ctx context.Context, p *Practitioner) error {
	if p.Color == "" {
		p.Color = defaultColor
	}
	if err := validate(p); err != nil {
		return err
	}
	p.Active = true
	return s.repo.Create(ctx, p)
}

func (s *Service) GetPractitioner(ctx context.Context, id uuid.UUID) (*Practitioner, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdatePractitioner(ctx context.Context, p *Practitioner) error {
	if p.ID == uuid.Nil {
		return fmt.Errorf("practitioner id is required")
	}
	if err := validate(p); err != nil {
		return err
	}
	return s.repo.Update(ctx, p)
}

// Deactivate retires a practitioner without touching historical activities.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) (*Practitioner, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Active = false
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeletePractitioner(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListPractitioners(ctx context.Context, activeOnly bool, limit, offset int) ([]*Practitioner, int, error) {
	return s.repo.List(ctx, activeOnly, limit, offset)
}

func validate(p *Practitioner) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(p.Surname) == "" {
		return fmt.Errorf("surname is required")
	}
	if !hexColor.MatchString(p.Color) {
		return fmt.Errorf("invalid color: %s", p.Color)
	}
	return nil
}
