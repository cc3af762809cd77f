package budget

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateBudget(ctx context.Context, b *Budget) error {
	if b.Status == "" {
		b.Status = StatusDraft
	}
	if b.Status != StatusDraft {
		return fmt.Errorf("new budgets start as draft")
	}
	if err := validate(b); err != nil {
		return err
	}
	return s.repo.Create(ctx, b)
}

func (s *Service) GetBudget(ctx context.Context, id uuid.UUID) (*Budget, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateBudget edits title, notes and items. Decided budgets are frozen.
func (s *Service) UpdateBudget(ctx context.Context, b *Budget) error {
	if b.ID == uuid.Nil {
		return fmt.Errorf("budget id is required")
	}
	existing, err := s.repo.GetByID(ctx, b.ID)
	if err != nil {
		return err
	}
	if existing.Decided() {
		return fmt.Errorf("budget is %s and can no longer be edited", existing.Status)
	}
	b.PatientID = existing.PatientID
	b.Status = existing.Status
	if err := validate(b); err != nil {
		return err
	}
	return s.repo.Update(ctx, b)
}

// Decide moves a draft budget to accepted or rejected.
func (s *Service) Decide(ctx context.Context, id uuid.UUID, status string) (*Budget, error) {
	if status != StatusAccepted && status != StatusRejected {
		return nil, fmt.Errorf("invalid decision: %s", status)
	}
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Decided() {
		return nil, fmt.Errorf("budget already %s", b.Status)
	}
	b.Status = status
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Budget, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

func validate(b *Budget) error {
	if b.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("title is required")
	}
	for _, it := range b.Items {
		if strings.TrimSpace(it.Description) == "" {
			return fmt.Errorf("item description is required")
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("item quantity must be positive")
		}
		if it.UnitPriceCents < 0 {
			return fmt.Errorf("item price must not be negative")
		}
	}
	return nil
}
