package ownership

import (
	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
)

// LinkInput identifies a single owner-asset relationship.
type LinkInput struct {
	Kind    string
	OwnerID uuid.UUID
	AssetID uuid.UUID
}

// Validate checks all fields and returns the parsed asset kind.
func (i LinkInput) Validate() (domain.AssetKind, error) {
	var errs []domain.FieldError

	kind, err := domain.ParseAssetKind(i.Kind)
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "kind", Message: "unknown asset kind"})
	}
	if i.OwnerID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "owner_id", Message: "required"})
	}
	if i.AssetID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "asset_id", Message: "required"})
	}

	if len(errs) > 0 {
		return "", domain.NewValidationErrors(errs)
	}
	return kind, nil
}
