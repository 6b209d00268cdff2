package mongodb

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/infogrid/catalog-backend/internal/domain"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "no documents", err: mongo.ErrNoDocuments, want: domain.ErrNotFound},
		{name: "duplicate key", err: dup, want: domain.ErrAlreadyExists},
		{name: "deadline", err: context.DeadlineExceeded, want: context.DeadlineExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := mapError(tt.err, "owner", "x"); !errors.Is(got, tt.want) {
				t.Errorf("mapError() = %v, want wrapping %v", got, tt.want)
			}
		})
	}

	if mapError(nil, "owner", "") != nil {
		t.Error("mapError(nil) should be nil")
	}
}

func TestPatch_Document(t *testing.T) {
	t.Parallel()

	p := &patch{}
	setValue(p, "name", ptr("orders"))
	setValue[string](p, "technology", nil)
	p.text("description", ptr(""))
	p.text("lifecycle_state", ptr("active"))

	want := bson.D{
		{Key: "$set", Value: bson.D{{Key: "name", Value: "orders"}, {Key: "lifecycle_state", Value: "active"}}},
		{Key: "$unset", Value: bson.D{{Key: "description", Value: ""}}},
	}
	got := p.document()

	if len(got) != 2 || got[0].Key != "$set" || got[1].Key != "$unset" {
		t.Fatalf("document() = %v", got)
	}
	if len(got[0].Value.(bson.D)) != len(want[0].Value.(bson.D)) {
		t.Errorf("$set = %v, want %v", got[0].Value, want[0].Value)
	}
	if got[1].Value.(bson.D)[0].Key != "description" {
		t.Errorf("$unset = %v, want description", got[1].Value)
	}
}
