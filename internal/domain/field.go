package domain

import (
	"time"

	"github.com/google/uuid"
)

// Column is a column of a Table.
type Column struct {
	ID          uuid.UUID
	TableID     uuid.UUID
	Name        string
	DataType    string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ColumnUpdate holds a partial update of a Column. A non-nil TableID moves
// the column to another Table.
type ColumnUpdate struct {
	TableID     *uuid.UUID
	Name        *string
	DataType    *string
	Description *string
}

// IsEmpty reports whether the update carries no fields.
func (u ColumnUpdate) IsEmpty() bool {
	return u.TableID == nil && u.Name == nil && u.DataType == nil && u.Description == nil
}

// StreamColumn is a field definition scoped to a StreamTopic.
type StreamColumn struct {
	ID          uuid.UUID
	TopicID     uuid.UUID
	Name        string
	DataType    string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StreamColumnUpdate holds a partial update of a StreamColumn.
type StreamColumnUpdate struct {
	TopicID     *uuid.UUID
	Name        *string
	DataType    *string
	Description *string
}

// IsEmpty reports whether the update carries no fields.
func (u StreamColumnUpdate) IsEmpty() bool {
	return u.TopicID == nil && u.Name == nil && u.DataType == nil && u.Description == nil
}

// TableWithColumns is a Table together with its columns.
type TableWithColumns struct {
	Table
	Columns []Column
}

// DataStoreTree is a DataStore with its tables and their columns.
type DataStoreTree struct {
	DataStore
	Tables []TableWithColumns
}
