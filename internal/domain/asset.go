package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AssetKind identifies the ownable entity kinds.
type AssetKind string

const (
	AssetKindDataStore   AssetKind = "datastore"
	AssetKindTable       AssetKind = "table"
	AssetKindStreamTopic AssetKind = "stream_topic"
)

// AssetKinds lists every ownable kind in a stable order.
var AssetKinds = []AssetKind{AssetKindDataStore, AssetKindTable, AssetKindStreamTopic}

func (k AssetKind) String() string { return string(k) }

// IsValid reports whether k is one of AssetKinds.
func (k AssetKind) IsValid() bool {
	switch k {
	case AssetKindDataStore, AssetKindTable, AssetKindStreamTopic:
		return true
	}
	return false
}

// ParseAssetKind accepts the canonical kind names and their plural, dashed
// route spellings ("datastores", "stream-topics").
func ParseAssetKind(s string) (AssetKind, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if k := AssetKind(strings.TrimSuffix(name, "s")); k.IsValid() {
		return k, nil
	}
	return "", NewValidationError("kind", fmt.Sprintf("unknown asset kind %q", s))
}

// AssetSummary is the minimal view of an asset returned by relationship queries.
type AssetSummary struct {
	ID   uuid.UUID
	Name string
	Kind AssetKind
}

// DataStore is a cataloged database or storage system.
type DataStore struct {
	ID          uuid.UUID
	Name        string
	Technology  string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DataStoreUpdate holds a partial update of a DataStore.
// nil = don't change; ptr("") on Description = clear.
type DataStoreUpdate struct {
	Name        *string
	Technology  *string
	Description *string
}

// IsEmpty reports whether the update carries no fields.
func (u DataStoreUpdate) IsEmpty() bool {
	return u.Name == nil && u.Technology == nil && u.Description == nil
}

// Table is a table inside a DataStore.
type Table struct {
	ID             uuid.UUID
	DataStoreID    uuid.UUID
	Name           string
	Description    *string
	LifecycleState *string
	QualityGrade   *string
	Compliant      *bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableUpdate holds a partial update of a Table. A non-nil DataStoreID
// moves the table to another DataStore.
type TableUpdate struct {
	DataStoreID    *uuid.UUID
	Name           *string
	Description    *string
	LifecycleState *string
	QualityGrade   *string
	Compliant      *bool
}

// IsEmpty reports whether the update carries no fields.
func (u TableUpdate) IsEmpty() bool {
	return u.DataStoreID == nil && u.Name == nil && u.Description == nil &&
		u.LifecycleState == nil && u.QualityGrade == nil && u.Compliant == nil
}

// StreamTopic is a cataloged message stream topic.
type StreamTopic struct {
	ID             uuid.UUID
	Name           string
	Description    *string
	LifecycleState *string
	Compliant      *bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// StreamTopicUpdate holds a partial update of a StreamTopic.
type StreamTopicUpdate struct {
	Name           *string
	Description    *string
	LifecycleState *string
	Compliant      *bool
}

// IsEmpty reports whether the update carries no fields.
func (u StreamTopicUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.LifecycleState == nil && u.Compliant == nil
}
