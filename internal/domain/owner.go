package domain

import (
	"time"

	"github.com/google/uuid"
)

// Owner is a person or team accountable for one or more assets.
type Owner struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Role      *string
	Phone     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnerUpdate holds a partial update of an Owner.
// nil = don't change; ptr("") on Role or Phone = clear.
type OwnerUpdate struct {
	Name  *string
	Email *string
	Role  *string
	Phone *string
}

// IsEmpty reports whether the update carries no fields.
func (u OwnerUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Role == nil && u.Phone == nil
}
