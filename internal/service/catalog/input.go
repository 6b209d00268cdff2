package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
)

const (
	maxNameLen  = 255
	maxEmailLen = 320
	maxTextLen  = 2000
)

type fieldErrors []domain.FieldError

func (e *fieldErrors) add(field, msg string) {
	*e = append(*e, domain.FieldError{Field: field, Message: msg})
}

// required checks a mandatory text field.
func (e *fieldErrors) required(field, value string, limit int) {
	v := strings.TrimSpace(value)
	if v == "" {
		e.add(field, "required")
		return
	}
	if len(v) > limit {
		e.add(field, fmt.Sprintf("max %d characters", limit))
	}
}

// requiredPatch checks a mandatory text field in a partial update: absent is
// fine, present must not be blank.
func (e *fieldErrors) requiredPatch(field string, value *string, limit int) {
	if value != nil {
		e.required(field, *value, limit)
	}
}

// optional checks an optional text field. Blank values mean "unset".
func (e *fieldErrors) optional(field string, value *string) {
	if value != nil && len(strings.TrimSpace(*value)) > maxTextLen {
		e.add(field, fmt.Sprintf("max %d characters", maxTextLen))
	}
}

func (e *fieldErrors) email(field, value string) {
	v := strings.TrimSpace(value)
	if v == "" {
		e.add(field, "required")
		return
	}
	if len(v) > maxEmailLen {
		e.add(field, fmt.Sprintf("max %d characters", maxEmailLen))
		return
	}
	at := strings.Index(v, "@")
	if at <= 0 || at != strings.LastIndex(v, "@") || at == len(v)-1 || strings.ContainsAny(v, " \t") {
		e.add(field, "invalid format")
	}
}

func (e *fieldErrors) id(field string, id uuid.UUID) {
	if id == uuid.Nil {
		e.add(field, "required")
	}
}

func (e fieldErrors) err() error {
	if len(e) > 0 {
		return domain.NewValidationErrors(e)
	}
	return nil
}

// ContactInput holds the fields shared by Owner and User creation.
type ContactInput struct {
	Name  string
	Email string
	Role  *string
	Phone *string
}

// Validate checks all fields and collects all errors.
func (i ContactInput) Validate() error {
	var errs fieldErrors
	errs.required("name", i.Name, maxNameLen)
	errs.email("email", i.Email)
	errs.optional("role", i.Role)
	errs.optional("phone", i.Phone)
	return errs.err()
}

// UpdateContactInput holds a partial update of an Owner or User.
type UpdateContactInput struct {
	ID    uuid.UUID
	Name  *string
	Email *string
	Role  *string // nil = don't change; ptr("") = clear
	Phone *string
}

// Validate checks all fields and collects all errors.
func (i UpdateContactInput) Validate() error {
	var errs fieldErrors
	errs.id("id", i.ID)
	if i.Name == nil && i.Email == nil && i.Role == nil && i.Phone == nil {
		errs.add("input", "at least one field must be provided")
	}
	errs.requiredPatch("name", i.Name, maxNameLen)
	if i.Email != nil {
		errs.email("email", *i.Email)
	}
	errs.optional("role", i.Role)
	errs.optional("phone", i.Phone)
	return errs.err()
}

// CreateDataStoreInput holds the parameters for creating a DataStore.
type CreateDataStoreInput struct {
	Name        string
	Technology  string
	Description *string
	OwnerIDs    []uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i CreateDataStoreInput) Validate() error {
	var errs fieldErrors
	errs.required("name", i.Name, maxNameLen)
	errs.required("technology", i.Technology, maxNameLen)
	errs.optional("description", i.Description)
	validateOwnerIDs(&errs, i.OwnerIDs)
	return errs.err()
}

// UpdateDataStoreInput holds a partial update of a DataStore.
type UpdateDataStoreInput struct {
	ID          uuid.UUID
	Name        *string
	Technology  *string
	Description *string
}

// Validate checks all fields and collects all errors.
func (i UpdateDataStoreInput) Validate() error {
	var errs fieldErrors
	errs.id("id", i.ID)
	if i.Name == nil && i.Technology == nil && i.Description == nil {
		errs.add("input", "at least one field must be provided")
	}
	errs.requiredPatch("name", i.Name, maxNameLen)
	errs.requiredPatch("technology", i.Technology, maxNameLen)
	errs.optional("description", i.Description)
	return errs.err()
}

// CreateTableInput holds the parameters for creating a Table.
type CreateTableInput struct {
	DataStoreID    uuid.UUID
	Name           string
	Description    *string
	LifecycleState *string
	QualityGrade   *string
	Compliant      *bool
	OwnerIDs       []uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i CreateTableInput) Validate() error {
	var errs fieldErrors
	errs.id("datastore_id", i.DataStoreID)
	errs.required("name", i.Name, maxNameLen)
	errs.optional("description", i.Description)
	errs.optional("lifecycle_state", i.LifecycleState)
	errs.optional("quality_grade", i.QualityGrade)
	validateOwnerIDs(&errs, i.OwnerIDs)
	return errs.err()
}

// UpdateTableInput holds a partial update of a Table. A non-nil DataStoreID
// moves the table.
type UpdateTableInput struct {
	ID             uuid.UUID
	DataStoreID    *uuid.UUID
	Name           *string
	Description    *string
	LifecycleState *string
	QualityGrade   *string
	Compliant      *bool
}

// Validate checks all fields and collects all errors.
func (i UpdateTableInput) Validate() error {
	var errs fieldErrors
	errs.id("id", i.ID)
	if i.DataStoreID == nil && i.Name == nil && i.Description == nil &&
		i.LifecycleState == nil && i.QualityGrade == nil && i.Compliant == nil {
		errs.add("input", "at least one field must be provided")
	}
	if i.DataStoreID != nil {
		errs.id("datastore_id", *i.DataStoreID)
	}
	errs.requiredPatch("name", i.Name, maxNameLen)
	errs.optional("description", i.Description)
	errs.optional("lifecycle_state", i.LifecycleState)
	errs.optional("quality_grade", i.QualityGrade)
	return errs.err()
}

// CreateColumnInput holds the parameters for creating a Column.
type CreateColumnInput struct {
	TableID     uuid.UUID
	Name        string
	DataType    string
	Description *string
}

// Validate checks all fields and collects all errors.
func (i CreateColumnInput) Validate() error {
	var errs fieldErrors
	errs.id("table_id", i.TableID)
	errs.required("name", i.Name, maxNameLen)
	errs.required("data_type", i.DataType, maxNameLen)
	errs.optional("description", i.Description)
	return errs.err()
}

// UpdateColumnInput holds a partial update of a Column.
type UpdateColumnInput struct {
	ID          uuid.UUID
	TableID     *uuid.UUID
	Name        *string
	DataType    *string
	Description *string
}

// Validate checks all fields and collects all errors.
func (i UpdateColumnInput) Validate() error {
	var errs fieldErrors
	errs.id("id", i.ID)
	if i.TableID == nil && i.Name == nil && i.DataType == nil && i.Description == nil {
		errs.add("input", "at least one field must be provided")
	}
	if i.TableID != nil {
		errs.id("table_id", *i.TableID)
	}
	errs.requiredPatch("name", i.Name, maxNameLen)
	errs.requiredPatch("data_type", i.DataType, maxNameLen)
	errs.optional("description", i.Description)
	return errs.err()
}

// CreateStreamTopicInput holds the parameters for creating a StreamTopic.
type CreateStreamTopicInput struct {
	Name           string
	Description    *string
	LifecycleState *string
	Compliant      *bool
	OwnerIDs       []uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i CreateStreamTopicInput) Validate() error {
	var errs fieldErrors
	errs.required("name", i.Name, maxNameLen)
	errs.optional("description", i.Description)
	errs.optional("lifecycle_state", i.LifecycleState)
	validateOwnerIDs(&errs, i.OwnerIDs)
	return errs.err()
}

// UpdateStreamTopicInput holds a partial update of a StreamTopic.
type UpdateStreamTopicInput struct {
	ID             uuid.UUID
	Name           *string
	Description    *string
	LifecycleState *string
	Compliant      *bool
}

// Validate checks all fields and collects all errors.
func (i UpdateStreamTopicInput) Validate() error {
	var errs fieldErrors
	errs.id("id", i.ID)
	if i.Name == nil && i.Description == nil && i.LifecycleState == nil && i.Compliant == nil {
		errs.add("input", "at least one field must be provided")
	}
	errs.requiredPatch("name", i.Name, maxNameLen)
	errs.optional("description", i.Description)
	errs.optional("lifecycle_state", i.LifecycleState)
	return errs.err()
}

// CreateStreamColumnInput holds the parameters for creating a StreamColumn.
type CreateStreamColumnInput struct {
	TopicID     uuid.UUID
	Name        string
	DataType    string
	Description *string
}

// Validate checks all fields and collects all errors.
func (i CreateStreamColumnInput) Validate() error {
	var errs fieldErrors
	errs.id("topic_id", i.TopicID)
	errs.required("name", i.Name, maxNameLen)
	errs.required("data_type", i.DataType, maxNameLen)
	errs.optional("description", i.Description)
	return errs.err()
}

// UpdateStreamColumnInput holds a partial update of a StreamColumn.
type UpdateStreamColumnInput struct {
	ID          uuid.UUID
	TopicID     *uuid.UUID
	Name        *string
	DataType    *string
	Description *string
}

// Validate checks all fields and collects all errors.
func (i UpdateStreamColumnInput) Validate() error {
	var errs fieldErrors
	errs.id("id", i.ID)
	if i.TopicID == nil && i.Name == nil && i.DataType == nil && i.Description == nil {
		errs.add("input", "at least one field must be provided")
	}
	if i.TopicID != nil {
		errs.id("topic_id", *i.TopicID)
	}
	errs.requiredPatch("name", i.Name, maxNameLen)
	errs.requiredPatch("data_type", i.DataType, maxNameLen)
	errs.optional("description", i.Description)
	return errs.err()
}

func validateOwnerIDs(errs *fieldErrors, ids []uuid.UUID) {
	for _, id := range ids {
		if id == uuid.Nil {
			errs.add("owner_ids", "must not contain empty ids")
			return
		}
	}
}

// trimOrNil trims s; blank values become nil.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// trimPatch trims s for a partial update; blank values become ptr("") which
// clears the field.
func trimPatch(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func namePatch(s *string) *string {
	if s == nil {
		return nil
	}
	v := domain.NormalizeName(*s)
	return &v
}

func emailPatch(s *string) *string {
	if s == nil {
		return nil
	}
	v := domain.NormalizeEmail(*s)
	return &v
}
