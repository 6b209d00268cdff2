// Package ownership implements the Owner <-> Asset relationship repository
// using PostgreSQL. Each asset kind has its own join table with foreign keys
// on both sides; both listing directions read the same join rows.
package ownership

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/infogrid/catalog-backend/internal/adapter/postgres"
	"github.com/infogrid/catalog-backend/internal/domain"
)

type kindTables struct {
	join  string
	asset string
}

var tables = map[domain.AssetKind]kindTables{
	domain.AssetKindDataStore:   {join: "datastore_owners", asset: "datastores"},
	domain.AssetKindTable:       {join: "table_owners", asset: "data_tables"},
	domain.AssetKindStreamTopic: {join: "stream_topic_owners", asset: "stream_topics"},
}

func tablesFor(kind domain.AssetKind) (kindTables, error) {
	t, ok := tables[kind]
	if !ok {
		return kindTables{}, domain.NewValidationError("kind", fmt.Sprintf("unknown asset kind %q", kind))
	}
	return t, nil
}

type linkRow struct {
	OwnerID   uuid.UUID `db:"owner_id"`
	AssetID   uuid.UUID `db:"asset_id"`
	CreatedAt time.Time `db:"created_at"`
}

type assetRow struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
}

type ownerRow struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Role      *string   `db:"role"`
	Phone     *string   `db:"phone"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type viewRow struct {
	OwnerID   uuid.UUID `db:"owner_id"`
	OwnerName string    `db:"owner_name"`
	AssetID   uuid.UUID `db:"asset_id"`
	AssetName string    `db:"asset_name"`
	CreatedAt time.Time `db:"created_at"`
}

// Repo provides ownership link persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new ownership repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

// Link inserts a join row. An existing link returns domain.ErrAlreadyExists,
// a missing owner or asset domain.ErrNotFound.
func (r *Repo) Link(ctx context.Context, ownerID, assetID uuid.UUID, kind domain.AssetKind) (*domain.OwnershipLink, error) {
	t, err := tablesFor(kind)
	if err != nil {
		return nil, err
	}

	stmt := postgres.Builder().Insert(t.join).
		Columns("owner_id", "asset_id").
		Values(ownerID, assetID).
		Suffix("RETURNING owner_id, asset_id, created_at")

	row, err := postgres.Get[linkRow](ctx, postgres.QuerierFromCtx(ctx, r.db), stmt)
	if err != nil {
		return nil, postgres.MapError(err, string(kind)+" ownership", assetID)
	}

	return &domain.OwnershipLink{
		OwnerID:   row.OwnerID,
		AssetID:   row.AssetID,
		Kind:      kind,
		CreatedAt: row.CreatedAt,
	}, nil
}

// Unlink deletes a join row. A missing link returns domain.ErrNotFound.
func (r *Repo) Unlink(ctx context.Context, ownerID, assetID uuid.UUID, kind domain.AssetKind) error {
	t, err := tablesFor(kind)
	if err != nil {
		return err
	}

	stmt := postgres.Builder().Delete(t.join).Where(sq.Eq{"owner_id": ownerID, "asset_id": assetID})
	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), stmt)
	if err != nil {
		return postgres.MapError(err, string(kind)+" ownership", assetID)
	}
	if n == 0 {
		return fmt.Errorf("%s ownership %s/%s: %w", kind, ownerID, assetID, domain.ErrNotFound)
	}
	return nil
}

// ListAssets returns the assets of kind linked to ownerID in link order.
func (r *Repo) ListAssets(ctx context.Context, ownerID uuid.UUID, kind domain.AssetKind) ([]domain.AssetSummary, error) {
	t, err := tablesFor(kind)
	if err != nil {
		return nil, err
	}

	stmt := postgres.Builder().Select("a.id", "a.name").
		From(t.join + " j").
		Join(t.asset + " a ON a.id = j.asset_id").
		Where(sq.Eq{"j.owner_id": ownerID}).
		OrderBy("j.position")

	rows, err := postgres.Select[assetRow](ctx, postgres.QuerierFromCtx(ctx, r.db), stmt)
	if err != nil {
		return nil, fmt.Errorf("list %s assets of owner %s: %w", kind, ownerID, err)
	}

	out := make([]domain.AssetSummary, len(rows))
	for i, row := range rows {
		out[i] = domain.AssetSummary{ID: row.ID, Name: row.Name, Kind: kind}
	}
	return out, nil
}

// ListOwners returns the owners linked to an asset in link order.
func (r *Repo) ListOwners(ctx context.Context, assetID uuid.UUID, kind domain.AssetKind) ([]domain.Owner, error) {
	t, err := tablesFor(kind)
	if err != nil {
		return nil, err
	}

	stmt := postgres.Builder().
		Select("o.id", "o.name", "o.email", "o.role", "o.phone", "o.created_at", "o.updated_at").
		From(t.join + " j").
		Join("owners o ON o.id = j.owner_id").
		Where(sq.Eq{"j.asset_id": assetID}).
		OrderBy("j.position")

	rows, err := postgres.Select[ownerRow](ctx, postgres.QuerierFromCtx(ctx, r.db), stmt)
	if err != nil {
		return nil, fmt.Errorf("list owners of %s %s: %w", kind, assetID, err)
	}

	out := make([]domain.Owner, len(rows))
	for i, row := range rows {
		out[i] = domain.Owner{
			ID:        row.ID,
			Name:      row.Name,
			Email:     row.Email,
			Role:      row.Role,
			Phone:     row.Phone,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		}
	}
	return out, nil
}

// ListLinks returns every link of kind with owner and asset names.
func (r *Repo) ListLinks(ctx context.Context, kind domain.AssetKind) ([]domain.OwnershipView, error) {
	t, err := tablesFor(kind)
	if err != nil {
		return nil, err
	}

	stmt := postgres.Builder().
		Select("j.owner_id", "o.name AS owner_name", "j.asset_id", "a.name AS asset_name", "j.created_at").
		From(t.join + " j").
		Join("owners o ON o.id = j.owner_id").
		Join(t.asset + " a ON a.id = j.asset_id").
		OrderBy("j.position")

	rows, err := postgres.Select[viewRow](ctx, postgres.QuerierFromCtx(ctx, r.db), stmt)
	if err != nil {
		return nil, fmt.Errorf("list %s links: %w", kind, err)
	}

	out := make([]domain.OwnershipView, len(rows))
	for i, row := range rows {
		out[i] = domain.OwnershipView{
			OwnerID:   row.OwnerID,
			OwnerName: row.OwnerName,
			AssetID:   row.AssetID,
			AssetName: row.AssetName,
			Kind:      kind,
			CreatedAt: row.CreatedAt,
		}
	}
	return out, nil
}

// DeleteByOwner removes every link of an owner across all asset kinds.
func (r *Repo) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)
	for _, kind := range domain.AssetKinds {
		stmt := postgres.Builder().Delete(tables[kind].join).Where(sq.Eq{"owner_id": ownerID})
		if _, err := postgres.Exec(ctx, q, stmt); err != nil {
			return fmt.Errorf("delete %s links of owner %s: %w", kind, ownerID, err)
		}
	}
	return nil
}

// DeleteByAsset removes every link of an asset.
func (r *Repo) DeleteByAsset(ctx context.Context, assetID uuid.UUID, kind domain.AssetKind) error {
	t, err := tablesFor(kind)
	if err != nil {
		return err
	}

	stmt := postgres.Builder().Delete(t.join).Where(sq.Eq{"asset_id": assetID})
	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), stmt); err != nil {
		return fmt.Errorf("delete links of %s %s: %w", kind, assetID, err)
	}
	return nil
}
