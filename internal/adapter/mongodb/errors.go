package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/infogrid/catalog-backend/internal/domain"
)

// mapError converts driver errors to domain errors.
// Context errors pass through.
func mapError(err error, entity, id string) error {
	if err == nil {
		return nil
	}

	subject := entity
	if id != "" {
		subject = entity + " " + id
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%s: %w", subject, err)
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w", subject, domain.ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", subject, domain.ErrAlreadyExists)
	}
	return fmt.Errorf("%s: %w", subject, err)
}
