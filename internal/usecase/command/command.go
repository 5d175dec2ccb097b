// Package command holds the write handlers exposed to the transport layer.
//
// Unlike the read services, handlers report failures as *domain.APIError:
// a missing Update/Delete target is a 404, a rejected input a 400 and a
// failed insert or store fault a 500.
package command

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/domain"
)

// Entity names used in not-found messages
const (
	entityAsset            = "Asset"
	entityAssetType        = "Asset type"
	entityAssetHistory     = "Asset history"
	entityPortfolio        = "Investment Portfolio"
	entityInvestmentAssets = "Investment asset"
)

var errNoEntity = errors.New("repository returned no entity")

func badRequest(err error) error {
	return domain.NewAPIError(err.Error(), http.StatusBadRequest)
}

// storeFailure logs err and returns a 500 carrying message
func storeFailure(logger *zap.Logger, message string, err error) error {
	logger.Error(message, zap.Error(err))
	return domain.NewAPIError(message, http.StatusInternalServerError)
}

// mustExist loads the row identified by id, turning a miss into a 404
func mustExist[E any](ctx context.Context, repo domain.Repository[E], logger *zap.Logger, entity string, id int) (*E, error) {
	existing, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeFailure(logger, "Error loading "+entity, err)
	}
	if existing == nil {
		logger.Debug("command target not found", zap.String("entity", entity), zap.Int("id", id))
		return nil, domain.NotFoundError(entity)
	}
	return existing, nil
}

// create inserts entity and returns its id
func create[E any](ctx context.Context, repo domain.Repository[E], logger *zap.Logger, entity *E, idOf func(*E) int, message string) (int, error) {
	added, err := repo.Add(ctx, entity)
	if err != nil || added == nil {
		if err == nil {
			err = errNoEntity
		}
		return 0, storeFailure(logger, message, err)
	}
	id := idOf(added)
	logger.Info("entity created", zap.Int("id", id))
	return id, nil
}

// update overwrites the row identified by id, 404 when it vanished meanwhile
func update[E any](ctx context.Context, repo domain.Repository[E], logger *zap.Logger, entityName string, id int, entity *E) error {
	updated, err := repo.Update(ctx, id, entity)
	if err != nil {
		return storeFailure(logger, "Error updating "+entityName, err)
	}
	if updated == nil {
		return domain.NotFoundError(entityName)
	}
	logger.Info("entity updated", zap.Int("id", id))
	return nil
}

// remove deletes the row identified by id after checking it exists
func remove[E any](ctx context.Context, repo domain.Repository[E], logger *zap.Logger, entityName string, id int) error {
	if _, err := mustExist(ctx, repo, logger, entityName, id); err != nil {
		return err
	}
	if err := repo.Delete(ctx, id); err != nil {
		return storeFailure(logger, "Error deleting "+entityName, err)
	}
	logger.Info("entity deleted", zap.Int("id", id))
	return nil
}

func valueOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
