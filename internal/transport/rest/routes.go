package rest

import (
	"net/http"

	"github.com/infogrid/catalog-backend/internal/domain"
)

// APIPrefix is the mount point of the catalog API.
const APIPrefix = "/api/v1"

// Handlers groups every handler mounted by Register.
type Handlers struct {
	Health        *HealthHandler
	Owners        *OwnerHandler
	Users         *UserHandler
	DataStores    *DataStoreHandler
	Tables        *TableHandler
	Columns       *ColumnHandler
	StreamTopics  *StreamTopicHandler
	StreamColumns *StreamColumnHandler
	Relationships *RelationshipHandler
	Entities      *EntityHandler
	Access        *AccessHandler
}

// crud is the method set shared by every entity handler.
type crud interface {
	Create(http.ResponseWriter, *http.Request)
	Get(http.ResponseWriter, *http.Request)
	ListAll(http.ResponseWriter, *http.Request)
	ListPage(http.ResponseWriter, *http.Request)
	Count(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}

// Register mounts all routes on mux.
func Register(mux *http.ServeMux, h Handlers) {
	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	registerCRUD(mux, "owners", h.Owners)
	registerCRUD(mux, "users", h.Users)
	registerCRUD(mux, "datastores", h.DataStores)
	registerCRUD(mux, "tables", h.Tables)
	registerCRUD(mux, "columns", h.Columns)
	registerCRUD(mux, "stream-topics", h.StreamTopics)
	registerCRUD(mux, "stream-columns", h.StreamColumns)
	registerCRUD(mux, "access-records", h.Access)

	// Hierarchy.
	mux.HandleFunc("GET "+APIPrefix+"/datastores/with-tables-columns", h.DataStores.Tree)
	mux.HandleFunc("GET "+APIPrefix+"/datastores/{id}/tables", h.DataStores.Tables)
	mux.HandleFunc("GET "+APIPrefix+"/tables/{id}/columns", h.Tables.Columns)
	mux.HandleFunc("GET "+APIPrefix+"/stream-topics/{id}/columns", h.StreamTopics.Columns)
	mux.HandleFunc("PUT "+APIPrefix+"/tables/{id}/datastore", h.Tables.Reassign)
	mux.HandleFunc("PUT "+APIPrefix+"/columns/{id}/table", h.Columns.Reassign)
	mux.HandleFunc("PUT "+APIPrefix+"/stream-columns/{id}/topic", h.StreamColumns.Reassign)

	// Ownership, both directions.
	mux.HandleFunc("POST "+APIPrefix+"/relationships/{kind}", h.Relationships.Link)
	mux.HandleFunc("DELETE "+APIPrefix+"/relationships/{kind}", h.Relationships.Unlink)
	mux.HandleFunc("GET "+APIPrefix+"/relationships/{kind}", h.Relationships.List)
	mux.HandleFunc("GET "+APIPrefix+"/owners/{id}/assets", h.Relationships.OwnerAssets)
	mux.HandleFunc("GET "+APIPrefix+"/datastores/{id}/owners", h.Relationships.AssetOwners(domain.AssetKindDataStore))
	mux.HandleFunc("GET "+APIPrefix+"/tables/{id}/owners", h.Relationships.AssetOwners(domain.AssetKindTable))
	mux.HandleFunc("GET "+APIPrefix+"/stream-topics/{id}/owners", h.Relationships.AssetOwners(domain.AssetKindStreamTopic))

	mux.HandleFunc("GET "+APIPrefix+"/entities/{kind}", h.Entities.Find)
	mux.HandleFunc("GET "+APIPrefix+"/access-records/filter-by-date", h.Access.FilterByDate)
}

// registerCRUD mounts the standard routes of one entity group. Collection
// routes answer with and without the trailing slash.
func registerCRUD(mux *http.ServeMux, group string, h crud) {
	base := APIPrefix + "/" + group
	for _, coll := range []string{base, base + "/{$}"} {
		mux.HandleFunc("GET "+coll, h.ListAll)
		mux.HandleFunc("POST "+coll, h.Create)
	}
	mux.HandleFunc("GET "+base+"/pagined", h.ListPage)
	mux.HandleFunc("GET "+base+"/count", h.Count)
	mux.HandleFunc("GET "+base+"/{id}", h.Get)
	mux.HandleFunc("PUT "+base+"/{id}", h.Update)
	mux.HandleFunc("DELETE "+base+"/{id}", h.Delete)
}
