package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a consumer of the catalog. Users request access to assets; they
// never own them.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Role      *string
	Phone     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserUpdate holds a partial update of a User.
// nil = don't change; ptr("") on Role or Phone = clear.
type UserUpdate struct {
	Name  *string
	Email *string
	Role  *string
	Phone *string
}

// IsEmpty reports whether the update carries no fields.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Role == nil && u.Phone == nil
}
