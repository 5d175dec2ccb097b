// Package app wires repositories, services, commands and transport handlers.
package app

import (
	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/adapter/handler"
	"github.com/simaogato/investfolio-backend/internal/adapter/identity"
	"github.com/simaogato/investfolio-backend/internal/adapter/repository/gormrepo"
	"github.com/simaogato/investfolio-backend/internal/adapter/session"
	"github.com/simaogato/investfolio-backend/internal/config"
	"github.com/simaogato/investfolio-backend/internal/usecase/account"
	"github.com/simaogato/investfolio-backend/internal/usecase/command"
	"github.com/simaogato/investfolio-backend/internal/usecase/seeder"
	"github.com/simaogato/investfolio-backend/internal/usecase/service"
	"github.com/simaogato/investfolio-backend/internal/usecase/valuation"
)

// App holds the wired components needed by the servers
type App struct {
	Router *handler.Router
	Seeder *seeder.SystemSeeder
	Users  *identity.UserManager
}

// New wires the application over db and sessions
func New(db *gormrepo.DB, sessions *session.Manager, cfg config.Config, logger *zap.Logger) *App {
	// Repositories
	assetTypeRepo := gormrepo.NewAssetTypeRepository(db, logger)
	assetRepo := gormrepo.NewAssetRepository(db, logger)
	historyRepo := gormrepo.NewAssetHistoryRepository(db, logger)
	portfolioRepo := gormrepo.NewInvestmentPortfolioRepository(db, logger)
	investmentAssetsRepo := gormrepo.NewInvestmentAssetsRepository(db, logger)

	// Identity
	users := identity.NewUserManager(db, cfg.Auth, logger)
	signIn := identity.NewSignInManager(users, sessions, logger)

	// Services
	assetTypeService := service.NewAssetTypeService(assetTypeRepo, logger)
	assetService := service.NewAssetService(assetRepo, investmentAssetsRepo, logger)
	historyService := service.NewAssetHistoryService(historyRepo, logger)
	portfolioService := service.NewInvestmentPortfolioService(portfolioRepo, logger)
	investmentAssetsService := service.NewInvestmentAssetsService(investmentAssetsRepo, portfolioRepo, logger)
	valuationService := valuation.NewValuationService(portfolioRepo, investmentAssetsRepo, assetRepo, logger)
	accountService := account.NewService(signIn, cfg.Auth.LockoutDuration, logger)

	httpLogger := logger.Named("http")
	router := &handler.Router{
		Health:  &handler.HealthHandler{DB: db},
		Account: &handler.AccountHandler{Service: accountService},
		AssetTypes: &handler.AssetTypeHandler{
			Service:  assetTypeService,
			Commands: command.NewAssetTypeHandler(assetTypeRepo, logger),
			Logger:   httpLogger,
		},
		Assets: &handler.AssetHandler{
			Service:  assetService,
			Commands: command.NewAssetHandler(assetRepo, logger),
			Logger:   httpLogger,
		},
		AssetHistories: &handler.AssetHistoryHandler{
			Service:  historyService,
			Commands: command.NewAssetHistoryHandler(historyRepo, assetRepo, logger),
			Logger:   httpLogger,
		},
		Portfolios: &handler.PortfolioHandler{
			Service:   portfolioService,
			Assets:    assetService,
			Valuation: valuationService,
			Commands:  command.NewPortfolioHandler(portfolioRepo, logger),
			Logger:    httpLogger,
		},
		InvestmentAssets: &handler.InvestmentAssetsHandler{
			Service:  investmentAssetsService,
			Commands: command.NewInvestmentAssetsHandler(investmentAssetsRepo, assetRepo, portfolioRepo, logger),
			Logger:   httpLogger,
		},
		Sessions: sessions,
		Logger:   httpLogger,
	}

	var admin *seeder.AdminAccount
	if cfg.Seed.AdminUserName != "" {
		admin = &seeder.AdminAccount{
			UserName: cfg.Seed.AdminUserName,
			Email:    cfg.Seed.AdminEmail,
			Password: cfg.Seed.AdminPassword,
		}
	}

	systemSeeder := seeder.NewSystemSeeder(assetTypeRepo, users, admin, logger)
	systemSeeder.AssetTypes = cfg.Seed.AssetTypes

	return &App{
		Router: router,
		Seeder: systemSeeder,
		Users:  users,
	}
}
