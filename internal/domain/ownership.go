package domain

import (
	"time"

	"github.com/google/uuid"
)

// OwnershipLink is the join record between an Owner and an asset.
// A link is unique per (OwnerID, AssetID, Kind); both directions of the
// relationship are read from the same records.
type OwnershipLink struct {
	OwnerID   uuid.UUID
	AssetID   uuid.UUID
	Kind      AssetKind
	CreatedAt time.Time
}

// OwnershipView is a link enriched with the names of both sides.
type OwnershipView struct {
	OwnerID   uuid.UUID
	OwnerName string
	AssetID   uuid.UUID
	AssetName string
	Kind      AssetKind
	CreatedAt time.Time
}
