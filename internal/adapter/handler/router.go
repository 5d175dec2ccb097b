package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Router groups the handlers mounted on the engine
type Router struct {
	Health           *HealthHandler
	Account          *AccountHandler
	AssetTypes       *AssetTypeHandler
	Assets           *AssetHandler
	AssetHistories   *AssetHistoryHandler
	Portfolios       *PortfolioHandler
	InvestmentAssets *InvestmentAssetsHandler
	Sessions         SessionValidator
	Logger           *zap.Logger
}

// Engine builds the gin engine. Everything under /api/v1 except login
// requires a session.
func (rt *Router) Engine() *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(rt.Logger), Recovery(rt.Logger))

	rt.Health.Register(r)

	api := r.Group("/api/v1")
	rt.Account.RegisterPublic(api)

	secured := api.Group("")
	secured.Use(RequireSession(rt.Sessions, rt.Logger))
	rt.Account.Register(secured)
	rt.AssetTypes.Register(secured)
	rt.Assets.Register(secured)
	rt.AssetHistories.Register(secured)
	rt.Portfolios.Register(secured)
	rt.InvestmentAssets.Register(secured)

	return r
}
