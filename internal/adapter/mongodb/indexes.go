package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	collOwners        = "owners"
	collUsers         = "users"
	collDataStores    = "datastores"
	collTables        = "tables"
	collColumns       = "columns"
	collStreamTopics  = "stream_topics"
	collStreamColumns = "stream_columns"
	collAccessRecords = "access_records"
	collOwnerships    = "ownerships"
)

func unique(name string, keys ...string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    keysOf(keys...),
		Options: options.Index().SetName(name).SetUnique(true),
	}
}

func index(name string, keys ...string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    keysOf(keys...),
		Options: options.Index().SetName(name),
	}
}

func keysOf(keys ...string) bson.D {
	d := make(bson.D, len(keys))
	for i, k := range keys {
		d[i] = bson.E{Key: k, Value: 1}
	}
	return d
}

var indexModels = map[string][]mongo.IndexModel{
	collOwners:        {unique("owners_email_key", "email"), index("owners_order_idx", "order")},
	collUsers:         {unique("users_email_key", "email"), index("users_order_idx", "order")},
	collDataStores:    {unique("datastores_name_key", "name"), index("datastores_order_idx", "order")},
	collTables:        {unique("tables_datastore_name_key", "datastore_id", "name"), index("tables_order_idx", "order")},
	collColumns:       {unique("columns_table_name_key", "table_id", "name"), index("columns_order_idx", "order")},
	collStreamTopics:  {unique("stream_topics_name_key", "name"), index("stream_topics_order_idx", "order")},
	collStreamColumns: {unique("stream_columns_topic_name_key", "topic_id", "name"), index("stream_columns_order_idx", "order")},
	collAccessRecords: {
		unique("access_records_user_asset_time_key", "user_id", "asset_name", "requested_at"),
		index("access_records_requested_at_idx", "requested_at", "order"),
	},
	collOwnerships: {
		unique("ownerships_key", "owner_id", "asset_id", "asset_kind"),
		index("ownerships_asset_idx", "asset_id", "asset_kind"),
	},
}

// EnsureIndexes creates the unique natural-key indexes and lookup indexes.
// Creating an index that already exists is a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for coll, models := range indexModels {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
