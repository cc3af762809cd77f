package practitioner

import (
	"time"

	"github.com/google/uuid"
)

// Practitioner maps to the practitioner table. Color is the hex color used
// for the practitioner's activities in the calendar legend.
type Practitioner struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Surname   string    `db:"surname" json:"surname"`
	Specialty *string   `db:"specialty" json:"specialty,omitempty"`
	Color     string    `db:"color" json:"color"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
