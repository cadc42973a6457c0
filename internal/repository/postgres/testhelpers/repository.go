package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/coffee-finder/internal/domain/repository"
	"github.com/coffee-finder/internal/repository/postgres"
)

// NewShopRepositoryForTest creates a shop repository with test database and logger
func NewShopRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.ShopStoreRepository {
	return postgres.NewShopRepository(postgres.NewDBForTest(db, logger))
}
