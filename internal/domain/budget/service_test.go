package budget

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repository --

type mockRepo struct {
	budgets map[uuid.UUID]*Budget
}

func newMockRepo() *mockRepo {
	return &mockRepo{budgets: make(map[uuid.UUID]*Budget)}
}

func (m *mockRepo) Create(_ context.Context, b *Budget) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.CreatedAt = time.Now()
	b.UpdatedAt = time.Now()
	m.budgets[b.ID] = b
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Budget, error) {
	b, ok := m.budgets[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return b, nil
}

func (m *mockRepo) Update(_ context.Context, b *Budget) error {
	if _, ok := m.budgets[b.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.budgets[b.ID] = b
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.budgets, id)
	return nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Budget, int, error) {
	var result []*Budget
	for _, b := range m.budgets {
		if b.PatientID == patientID {
			result = append(result, b)
		}
	}
	return result, len(result), nil
}

// -- Helpers --

func newTestBudget(patientID uuid.UUID) *Budget {
	return &Budget{
		PatientID: patientID,
		Title:     "implant plan",
		Items: []*Item{
			{Description: "implant", Quantity: 2, UnitPriceCents: 90000},
			{Description: "crown", Quantity: 2, UnitPriceCents: 45000},
		},
	}
}

// -- Tests --

func TestCreateBudgetDefaultsToDraft(t *testing.T) {
	svc := NewService(newMockRepo())

	b := newTestBudget(uuid.New())
	if err := svc.CreateBudget(context.Background(), b); err != nil {
		t.Fatalf("CreateBudget: %v", err)
	}
	if b.Status != StatusDraft {
		t.Fatalf("expected draft, got %s", b.Status)
	}
}

func TestCreateBudgetRejectsDecidedStatus(t *testing.T) {
	svc := NewService(newMockRepo())

	b := newTestBudget(uuid.New())
	b.Status = StatusAccepted
	if err := svc.CreateBudget(context.Background(), b); err == nil {
		t.Fatal("budgets must start as draft")
	}
}

func TestCreateBudgetValidatesItems(t *testing.T) {
	svc := NewService(newMockRepo())

	b := newTestBudget(uuid.New())
	b.Items[0].Quantity = 0
	if err := svc.CreateBudget(context.Background(), b); err == nil {
		t.Fatal("expected error for zero quantity")
	}

	b = newTestBudget(uuid.New())
	b.Items[1].UnitPriceCents = -1
	if err := svc.CreateBudget(context.Background(), b); err == nil {
		t.Fatal("expected error for negative price")
	}
}

func TestTotalCents(t *testing.T) {
	b := newTestBudget(uuid.New())
	if got := b.TotalCents(); got != 270000 {
		t.Fatalf("TotalCents() = %d, want 270000", got)
	}
}

func TestDecide(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	b := newTestBudget(uuid.New())
	if err := svc.CreateBudget(context.Background(), b); err != nil {
		t.Fatalf("seed: %v", err)
	}

	out, err := svc.Decide(context.Background(), b.ID, StatusAccepted)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if out.Status != StatusAccepted {
		t.Fatalf("expected accepted, got %s", out.Status)
	}

	if _, err := svc.Decide(context.Background(), b.ID, StatusRejected); err == nil {
		t.Fatal("decided budgets must not be re-decided")
	}
}

func TestDecideRejectsUnknownStatus(t *testing.T) {
	svc := NewService(newMockRepo())
	if _, err := svc.Decide(context.Background(), uuid.New(), "maybe"); err == nil {
		t.Fatal("expected error for unknown decision")
	}
}

func TestUpdateBudgetFrozenWhenDecided(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	b := newTestBudget(uuid.New())
	if err := svc.CreateBudget(context.Background(), b); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.Decide(context.Background(), b.ID, StatusRejected); err != nil {
		t.Fatalf("Decide: %v", err)
	}

	b.Title = "revised plan"
	if err := svc.UpdateBudget(context.Background(), b); err == nil {
		t.Fatal("decided budgets must be frozen")
	}
}

func TestUpdateBudgetKeepsPatientAndStatus(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	patientID := uuid.New()
	b := newTestBudget(patientID)
	if err := svc.CreateBudget(context.Background(), b); err != nil {
		t.Fatalf("seed: %v", err)
	}

	edit := &Budget{ID: b.ID, PatientID: uuid.New(), Title: "revised plan", Status: StatusAccepted}
	if err := svc.UpdateBudget(context.Background(), edit); err != nil {
		t.Fatalf("UpdateBudget: %v", err)
	}
	if edit.PatientID != patientID {
		t.Fatal("update must not move a budget between patients")
	}
	if edit.Status != StatusDraft {
		t.Fatal("update must not change the status")
	}
}
