package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
	"github.com/infogrid/catalog-backend/internal/service/access"
	"github.com/infogrid/catalog-backend/internal/service/catalog"
)

// ---------------------------------------------------------------------------
// Requests
// ---------------------------------------------------------------------------

type contactRequest struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Role  *string `json:"role"`
	Phone *string `json:"phone"`
}

func (r contactRequest) input() catalog.ContactInput {
	return catalog.ContactInput{Name: r.Name, Email: r.Email, Role: r.Role, Phone: r.Phone}
}

type contactPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
	Phone *string `json:"phone"`
}

func (r contactPatch) input(id uuid.UUID) catalog.UpdateContactInput {
	return catalog.UpdateContactInput{ID: id, Name: r.Name, Email: r.Email, Role: r.Role, Phone: r.Phone}
}

type dataStoreRequest struct {
	Name        string      `json:"name"`
	Technology  string      `json:"technology"`
	Description *string     `json:"description"`
	OwnerIDs    []uuid.UUID `json:"owner_ids"`
}

type dataStorePatch struct {
	Name        *string `json:"name"`
	Technology  *string `json:"technology"`
	Description *string `json:"description"`
}

type tableRequest struct {
	DataStoreID    uuid.UUID   `json:"datastore_id"`
	Name           string      `json:"name"`
	Description    *string     `json:"description"`
	LifecycleState *string     `json:"lifecycle_state"`
	QualityGrade   *string     `json:"quality_grade"`
	Compliant      *bool       `json:"compliant"`
	OwnerIDs       []uuid.UUID `json:"owner_ids"`
}

type tablePatch struct {
	DataStoreID    *uuid.UUID `json:"datastore_id"`
	Name           *string    `json:"name"`
	Description    *string    `json:"description"`
	LifecycleState *string    `json:"lifecycle_state"`
	QualityGrade   *string    `json:"quality_grade"`
	Compliant      *bool      `json:"compliant"`
}

type columnRequest struct {
	TableID     uuid.UUID `json:"table_id"`
	Name        string    `json:"name"`
	DataType    string    `json:"data_type"`
	Description *string   `json:"description"`
}

type columnPatch struct {
	TableID     *uuid.UUID `json:"table_id"`
	Name        *string    `json:"name"`
	DataType    *string    `json:"data_type"`
	Description *string    `json:"description"`
}

type streamTopicRequest struct {
	Name           string      `json:"name"`
	Description    *string     `json:"description"`
	LifecycleState *string     `json:"lifecycle_state"`
	Compliant      *bool       `json:"compliant"`
	OwnerIDs       []uuid.UUID `json:"owner_ids"`
}

type streamTopicPatch struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	LifecycleState *string `json:"lifecycle_state"`
	Compliant      *bool   `json:"compliant"`
}

type streamColumnRequest struct {
	TopicID     uuid.UUID `json:"topic_id"`
	Name        string    `json:"name"`
	DataType    string    `json:"data_type"`
	Description *string   `json:"description"`
}

type streamColumnPatch struct {
	TopicID     *uuid.UUID `json:"topic_id"`
	Name        *string    `json:"name"`
	DataType    *string    `json:"data_type"`
	Description *string    `json:"description"`
}

type reassignRequest struct {
	ParentID uuid.UUID `json:"parent_id"`
}

type linkRequest struct {
	OwnerID uuid.UUID `json:"owner_id"`
	AssetID uuid.UUID `json:"asset_id"`
}

type accessRecordRequest struct {
	UserID      uuid.UUID `json:"user_id"`
	AssetName   string    `json:"asset_name"`
	RequestedAt time.Time `json:"requested_at"`
	Purpose     string    `json:"purpose"`
	Permissions []string  `json:"permissions"`
	Status      *string   `json:"status"`
}

func (r accessRecordRequest) input() access.CreateInput {
	return access.CreateInput{
		UserID:      r.UserID,
		AssetName:   r.AssetName,
		RequestedAt: r.RequestedAt,
		Purpose:     r.Purpose,
		Permissions: r.Permissions,
		Status:      r.Status,
	}
}

type accessRecordPatch struct {
	UserID      *uuid.UUID `json:"user_id"`
	AssetName   *string    `json:"asset_name"`
	RequestedAt *time.Time `json:"requested_at"`
	Purpose     *string    `json:"purpose"`
	Permissions []string   `json:"permissions"`
	Status      *string    `json:"status"`
}

func (r accessRecordPatch) input(id uuid.UUID) access.UpdateInput {
	return access.UpdateInput{
		ID:          id,
		UserID:      r.UserID,
		AssetName:   r.AssetName,
		RequestedAt: r.RequestedAt,
		Purpose:     r.Purpose,
		Permissions: r.Permissions,
		Status:      r.Status,
	}
}

// ---------------------------------------------------------------------------
// Responses
// ---------------------------------------------------------------------------

type contactResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      *string   `json:"role"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toOwnerResponse(o *domain.Owner) contactResponse {
	return contactResponse{
		ID: o.ID, Name: o.Name, Email: o.Email, Role: o.Role, Phone: o.Phone,
		CreatedAt: o.CreatedAt, UpdatedAt: o.UpdatedAt,
	}
}

func toUserResponse(u *domain.User) contactResponse {
	return contactResponse{
		ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Phone: u.Phone,
		CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
	}
}

type dataStoreResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Technology  string    `json:"technology"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toDataStoreResponse(d *domain.DataStore) dataStoreResponse {
	return dataStoreResponse{
		ID: d.ID, Name: d.Name, Technology: d.Technology, Description: d.Description,
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

type tableResponse struct {
	ID             uuid.UUID `json:"id"`
	DataStoreID    uuid.UUID `json:"datastore_id"`
	Name           string    `json:"name"`
	Description    *string   `json:"description"`
	LifecycleState *string   `json:"lifecycle_state"`
	QualityGrade   *string   `json:"quality_grade"`
	Compliant      *bool     `json:"compliant"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toTableResponse(t *domain.Table) tableResponse {
	return tableResponse{
		ID:             t.ID,
		DataStoreID:    t.DataStoreID,
		Name:           t.Name,
		Description:    t.Description,
		LifecycleState: t.LifecycleState,
		QualityGrade:   t.QualityGrade,
		Compliant:      t.Compliant,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

type columnResponse struct {
	ID          uuid.UUID `json:"id"`
	TableID     uuid.UUID `json:"table_id"`
	Name        string    `json:"name"`
	DataType    string    `json:"data_type"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toColumnResponse(c *domain.Column) columnResponse {
	return columnResponse{
		ID: c.ID, TableID: c.TableID, Name: c.Name, DataType: c.DataType,
		Description: c.Description, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

type streamTopicResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    *string   `json:"description"`
	LifecycleState *string   `json:"lifecycle_state"`
	Compliant      *bool     `json:"compliant"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toStreamTopicResponse(t *domain.StreamTopic) streamTopicResponse {
	return streamTopicResponse{
		ID: t.ID, Name: t.Name, Description: t.Description,
		LifecycleState: t.LifecycleState, Compliant: t.Compliant,
		CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt,
	}
}

type streamColumnResponse struct {
	ID          uuid.UUID `json:"id"`
	TopicID     uuid.UUID `json:"topic_id"`
	Name        string    `json:"name"`
	DataType    string    `json:"data_type"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toStreamColumnResponse(c *domain.StreamColumn) streamColumnResponse {
	return streamColumnResponse{
		ID: c.ID, TopicID: c.TopicID, Name: c.Name, DataType: c.DataType,
		Description: c.Description, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

type tableTreeResponse struct {
	tableResponse
	Columns []columnResponse `json:"columns"`
}

type dataStoreTreeResponse struct {
	dataStoreResponse
	Tables []tableTreeResponse `json:"tables"`
}

func toDataStoreTreeResponse(d *domain.DataStoreTree) dataStoreTreeResponse {
	return dataStoreTreeResponse{
		dataStoreResponse: toDataStoreResponse(&d.DataStore),
		Tables: mapSlice(d.Tables, func(t *domain.TableWithColumns) tableTreeResponse {
			return tableTreeResponse{
				tableResponse: toTableResponse(&t.Table),
				Columns:       mapSlice(t.Columns, toColumnResponse),
			}
		}),
	}
}

type linkResponse struct {
	OwnerID   uuid.UUID `json:"owner_id"`
	AssetID   uuid.UUID `json:"asset_id"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

func toLinkResponse(l *domain.OwnershipLink) linkResponse {
	return linkResponse{OwnerID: l.OwnerID, AssetID: l.AssetID, Kind: l.Kind.String(), CreatedAt: l.CreatedAt}
}

type linkViewResponse struct {
	OwnerID   uuid.UUID `json:"owner_id"`
	OwnerName string    `json:"owner_name"`
	AssetID   uuid.UUID `json:"asset_id"`
	AssetName string    `json:"asset_name"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

func toLinkViewResponse(v *domain.OwnershipView) linkViewResponse {
	return linkViewResponse{
		OwnerID: v.OwnerID, OwnerName: v.OwnerName,
		AssetID: v.AssetID, AssetName: v.AssetName,
		Kind: v.Kind.String(), CreatedAt: v.CreatedAt,
	}
}

type assetSummaryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Kind string    `json:"kind"`
}

func toAssetSummaryResponse(a *domain.AssetSummary) assetSummaryResponse {
	return assetSummaryResponse{ID: a.ID, Name: a.Name, Kind: a.Kind.String()}
}

type accessRecordResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	AssetName   string    `json:"asset_name"`
	RequestedAt time.Time `json:"requested_at"`
	Purpose     string    `json:"purpose"`
	Permissions []string  `json:"permissions"`
	Status      *string   `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toAccessRecordResponse(a *domain.AccessRecord) accessRecordResponse {
	perms := a.Permissions
	if perms == nil {
		perms = []string{}
	}
	return accessRecordResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		AssetName:   a.AssetName,
		RequestedAt: a.RequestedAt,
		Purpose:     a.Purpose,
		Permissions: perms,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
