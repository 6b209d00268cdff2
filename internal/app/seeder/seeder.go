// Package seeder loads a catalog fixture through the service layer, so the
// same validation and relationship rules apply as for API writes.
package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
	"github.com/infogrid/catalog-backend/internal/service/access"
	"github.com/infogrid/catalog-backend/internal/service/catalog"
)

// Phases in execution order. Later phases resolve keys created by earlier ones.
const (
	PhaseOwners     = "owners"
	PhaseUsers      = "users"
	PhaseDataStores = "datastores"
	PhaseTopics     = "stream_topics"
	PhaseAccess     = "access_records"
)

var allPhases = []string{PhaseOwners, PhaseUsers, PhaseDataStores, PhaseTopics, PhaseAccess}

type catalogWriter interface {
	CreateOwner(ctx context.Context, in catalog.ContactInput) (*domain.Owner, error)
	CreateUser(ctx context.Context, in catalog.ContactInput) (*domain.User, error)
	CreateDataStore(ctx context.Context, in catalog.CreateDataStoreInput) (*domain.DataStore, error)
	CreateTable(ctx context.Context, in catalog.CreateTableInput) (*domain.Table, error)
	CreateColumn(ctx context.Context, in catalog.CreateColumnInput) (*domain.Column, error)
	CreateStreamTopic(ctx context.Context, in catalog.CreateStreamTopicInput) (*domain.StreamTopic, error)
	CreateStreamColumn(ctx context.Context, in catalog.CreateStreamColumnInput) (*domain.StreamColumn, error)
}

type accessWriter interface {
	Create(ctx context.Context, in access.CreateInput) (*domain.AccessRecord, error)
}

// PhaseResult holds the outcome of a single phase.
type PhaseResult struct {
	Inserted int
	Errors   int
	Duration time.Duration
	Err      error
}

// Pipeline runs the seeding phases.
type Pipeline struct {
	log     *slog.Logger
	catalog catalogWriter
	access  accessWriter
	dryRun  bool

	owners  map[string]uuid.UUID
	users   map[string]uuid.UUID
	results map[string]PhaseResult
}

// NewPipeline creates a new Pipeline. With dryRun set, the fixture is only
// validated and cross-referenced.
func NewPipeline(log *slog.Logger, cw catalogWriter, aw accessWriter, dryRun bool) *Pipeline {
	return &Pipeline{
		log:     log.With("component", "seeder"),
		catalog: cw,
		access:  aw,
		dryRun:  dryRun,
		owners:  make(map[string]uuid.UUID),
		users:   make(map[string]uuid.UUID),
		results: make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// HasErrors reports whether any phase recorded errors.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil || r.Errors > 0 {
			return true
		}
	}
	return false
}

// Run executes the requested phases (all when empty) in canonical order.
// A failed phase stops the pipeline since later phases depend on its keys.
func (p *Pipeline) Run(ctx context.Context, fx *Fixture, phases []string) error {
	for _, ph := range phases {
		if !slices.Contains(allPhases, ph) {
			return fmt.Errorf("unknown phase %q", ph)
		}
	}

	for _, ph := range allPhases {
		if len(phases) > 0 && !slices.Contains(phases, ph) {
			continue
		}

		start := time.Now()
		res := p.runPhase(ctx, ph, fx)
		res.Duration = time.Since(start)
		p.results[ph] = res

		attrs := []any{
			slog.String("phase", ph),
			slog.Int("inserted", res.Inserted),
			slog.Int("errors", res.Errors),
			slog.Duration("duration", res.Duration),
		}
		if res.Err != nil {
			p.log.Error("phase failed", append(attrs, slog.String("error", res.Err.Error()))...)
			return fmt.Errorf("phase %s: %w", ph, res.Err)
		}
		p.log.Info("phase completed", attrs...)
	}
	return nil
}

func (p *Pipeline) runPhase(ctx context.Context, phase string, fx *Fixture) PhaseResult {
	switch phase {
	case PhaseOwners:
		return p.seedContacts(ctx, fx.Owners, p.owners, func(ctx context.Context, in catalog.ContactInput) (uuid.UUID, error) {
			o, err := p.catalog.CreateOwner(ctx, in)
			if err != nil {
				return uuid.Nil, err
			}
			return o.ID, nil
		})
	case PhaseUsers:
		return p.seedContacts(ctx, fx.Users, p.users, func(ctx context.Context, in catalog.ContactInput) (uuid.UUID, error) {
			u, err := p.catalog.CreateUser(ctx, in)
			if err != nil {
				return uuid.Nil, err
			}
			return u.ID, nil
		})
	case PhaseDataStores:
		return p.seedDataStores(ctx, fx.DataStores)
	case PhaseTopics:
		return p.seedTopics(ctx, fx.Topics)
	default:
		return p.seedAccess(ctx, fx.Access)
	}
}

func (p *Pipeline) seedContacts(
	ctx context.Context,
	items []ContactFixture,
	keys map[string]uuid.UUID,
	create func(context.Context, catalog.ContactInput) (uuid.UUID, error),
) PhaseResult {
	var res PhaseResult
	for _, c := range items {
		if c.Key == "" {
			return PhaseResult{Err: fmt.Errorf("contact %q: key is required", c.Name)}
		}
		if _, dup := keys[c.Key]; dup {
			return PhaseResult{Err: fmt.Errorf("duplicate key %q", c.Key)}
		}

		in := catalog.ContactInput{Name: c.Name, Email: c.Email, Role: c.Role, Phone: c.Phone}
		if p.dryRun {
			if err := in.Validate(); err != nil {
				p.log.Warn("invalid contact", slog.String("key", c.Key), slog.String("error", err.Error()))
				res.Errors++
			}
			keys[c.Key] = uuid.New()
			continue
		}

		id, err := create(ctx, in)
		if err != nil {
			p.log.Warn("create contact", slog.String("key", c.Key), slog.String("error", err.Error()))
			res.Errors++
			continue
		}
		keys[c.Key] = id
		res.Inserted++
	}
	return res
}

func (p *Pipeline) seedDataStores(ctx context.Context, items []DataStoreFixture) PhaseResult {
	var res PhaseResult
	for _, ds := range items {
		ownerIDs, err := p.ownerIDs(ds.Owners)
		if err != nil {
			return PhaseResult{Err: fmt.Errorf("datastore %q: %w", ds.Name, err)}
		}
		if p.dryRun {
			for _, t := range ds.Tables {
				if _, err := p.ownerIDs(t.Owners); err != nil {
					return PhaseResult{Err: fmt.Errorf("table %q: %w", t.Name, err)}
				}
			}
			continue
		}

		store, err := p.catalog.CreateDataStore(ctx, catalog.CreateDataStoreInput{
			Name:        ds.Name,
			Technology:  ds.Technology,
			Description: ds.Description,
			OwnerIDs:    ownerIDs,
		})
		if err != nil {
			p.log.Warn("create datastore", slog.String("name", ds.Name), slog.String("error", err.Error()))
			res.Errors++
			continue
		}
		res.Inserted++

		for _, t := range ds.Tables {
			tableOwners, err := p.ownerIDs(t.Owners)
			if err != nil {
				return PhaseResult{Inserted: res.Inserted, Err: fmt.Errorf("table %q: %w", t.Name, err)}
			}
			table, err := p.catalog.CreateTable(ctx, catalog.CreateTableInput{
				DataStoreID:    store.ID,
				Name:           t.Name,
				Description:    t.Description,
				LifecycleState: t.LifecycleState,
				QualityGrade:   t.QualityGrade,
				Compliant:      t.Compliant,
				OwnerIDs:       tableOwners,
			})
			if err != nil {
				p.log.Warn("create table", slog.String("name", t.Name), slog.String("error", err.Error()))
				res.Errors++
				continue
			}
			res.Inserted++

			for _, c := range t.Columns {
				if _, err := p.catalog.CreateColumn(ctx, catalog.CreateColumnInput{
					TableID:     table.ID,
					Name:        c.Name,
					DataType:    c.DataType,
					Description: c.Description,
				}); err != nil {
					p.log.Warn("create column", slog.String("table", t.Name), slog.String("name", c.Name), slog.String("error", err.Error()))
					res.Errors++
					continue
				}
				res.Inserted++
			}
		}
	}
	return res
}

func (p *Pipeline) seedTopics(ctx context.Context, items []TopicFixture) PhaseResult {
	var res PhaseResult
	for _, tp := range items {
		ownerIDs, err := p.ownerIDs(tp.Owners)
		if err != nil {
			return PhaseResult{Err: fmt.Errorf("stream topic %q: %w", tp.Name, err)}
		}
		if p.dryRun {
			continue
		}

		topic, err := p.catalog.CreateStreamTopic(ctx, catalog.CreateStreamTopicInput{
			Name:           tp.Name,
			Description:    tp.Description,
			LifecycleState: tp.LifecycleState,
			Compliant:      tp.Compliant,
			OwnerIDs:       ownerIDs,
		})
		if err != nil {
			p.log.Warn("create stream topic", slog.String("name", tp.Name), slog.String("error", err.Error()))
			res.Errors++
			continue
		}
		res.Inserted++

		for _, c := range tp.Columns {
			if _, err := p.catalog.CreateStreamColumn(ctx, catalog.CreateStreamColumnInput{
				TopicID:     topic.ID,
				Name:        c.Name,
				DataType:    c.DataType,
				Description: c.Description,
			}); err != nil {
				p.log.Warn("create stream column", slog.String("topic", tp.Name), slog.String("name", c.Name), slog.String("error", err.Error()))
				res.Errors++
				continue
			}
			res.Inserted++
		}
	}
	return res
}

func (p *Pipeline) seedAccess(ctx context.Context, items []AccessFixture) PhaseResult {
	var res PhaseResult
	for _, a := range items {
		userID, ok := p.users[a.User]
		if !ok {
			return PhaseResult{Inserted: res.Inserted, Err: fmt.Errorf("access record %q: unknown user %q", a.AssetName, a.User)}
		}

		in := access.CreateInput{
			UserID:      userID,
			AssetName:   a.AssetName,
			RequestedAt: a.RequestedAt,
			Purpose:     a.Purpose,
			Permissions: a.Permissions,
			Status:      a.Status,
		}
		if p.dryRun {
			if err := in.Validate(); err != nil {
				p.log.Warn("invalid access record", slog.String("asset_name", a.AssetName), slog.String("error", err.Error()))
				res.Errors++
			}
			continue
		}

		if _, err := p.access.Create(ctx, in); err != nil {
			p.log.Warn("create access record", slog.String("asset_name", a.AssetName), slog.String("error", err.Error()))
			res.Errors++
			continue
		}
		res.Inserted++
	}
	return res
}

func (p *Pipeline) ownerIDs(keys []string) ([]uuid.UUID, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(keys))
	for _, k := range keys {
		id, ok := p.owners[k]
		if !ok {
			return nil, fmt.Errorf("unknown owner %q", k)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
