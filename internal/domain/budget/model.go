package budget

import (
	"time"

	"github.com/google/uuid"
)

// Budget statuses.
const (
	StatusDraft    = "draft"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Budget maps to the budget table. A budget is a priced treatment proposal
// for one patient; acceptance is a one-way decision.
type Budget struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	Title     string    `db:"title" json:"title"`
	Status    string    `db:"status" json:"status"`
	Notes     *string   `db:"notes" json:"notes,omitempty"`
	Items     []*Item   `db:"-" json:"items"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Item maps to the budget_item table.
type Item struct {
	ID          uuid.UUID `db:"id" json:"id"`
	BudgetID    uuid.UUID `db:"budget_id" json:"budget_id"`
	Description string    `db:"description" json:"description"`
	Quantity    int       `db:"quantity" json:"quantity"`
	// UnitPriceCents avoids floating point money.
	UnitPriceCents int `db:"unit_price_cents" json:"unit_price_cents"`
}

// TotalCents sums the line items.
func (b *Budget) TotalCents() int {
	total := 0
	for _, it := range b.Items {
		total += it.Quantity * it.UnitPriceCents
	}
	return total
}

// Decided reports whether the budget has left draft.
func (b *Budget) Decided() bool {
	return b.Status == StatusAccepted || b.Status == StatusRejected
}
