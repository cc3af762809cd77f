package patient

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repository --

type mockRepo struct {
	patients map[uuid.UUID]*Patient
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return p, nil
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	if _, ok := m.patients[p.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.patients, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.patients {
		result = append(result, p)
	}
	return result, len(result), nil
}

func (m *mockRepo) Search(_ context.Context, query string, limit, offset int) ([]*Patient, int, error) {
	q := strings.ToLower(query)
	var result []*Patient
	for _, p := range m.patients {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Surname), q) {
			result = append(result, p)
		}
	}
	return result, len(result), nil
}

// -- Tests --

func TestCreatePatient(t *testing.T) {
	svc := NewService(newMockRepo())

	p := &Patient{Name: "Maria", Surname: "Rossi"}
	if err := svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("CreatePatient: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Fatal("expected an assigned id")
	}
}

func TestCreatePatientRequiresName(t *testing.T) {
	svc := NewService(newMockRepo())

	if err := svc.CreatePatient(context.Background(), &Patient{Surname: "Rossi"}); err == nil {
		t.Fatal("expected error for missing name")
	}
	if err := svc.CreatePatient(context.Background(), &Patient{Name: "Maria", Surname: "  "}); err == nil {
		t.Fatal("expected error for blank surname")
	}
}

func TestUpdatePatientRequiresID(t *testing.T) {
	svc := NewService(newMockRepo())

	p := &Patient{Name: "Maria", Surname: "Rossi"}
	if err := svc.UpdatePatient(context.Background(), p); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestSearchPatientsFallsBackToList(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	for _, p := range []*Patient{
		{Name: "Maria", Surname: "Rossi"},
		{Name: "Luca", Surname: "Bianchi"},
	} {
		if err := svc.CreatePatient(context.Background(), p); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	all, total, err := svc.SearchPatients(context.Background(), "  ", 20, 0)
	if err != nil {
		t.Fatalf("SearchPatients: %v", err)
	}
	if total != 2 || len(all) != 2 {
		t.Fatalf("expected both patients, got %d", total)
	}

	matched, total, err := svc.SearchPatients(context.Background(), "ross", 20, 0)
	if err != nil {
		t.Fatalf("SearchPatients: %v", err)
	}
	if total != 1 || matched[0].Surname != "Rossi" {
		t.Fatalf("expected the Rossi match, got %d results", total)
	}
}

func TestPatientFullName(t *testing.T) {
	p := &Patient{Name: "Maria", Surname: "Rossi"}
	if got := p.FullName(); got != "Maria Rossi" {
		t.Fatalf("FullName() = %q", got)
	}
}
