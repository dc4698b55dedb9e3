package rest

import (
	"errors"
	"net/http"

	"reservoir/core"
	"reservoir/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	system *core.System,
	poolStore core.PoolStore,
	positionStore core.PositionStore,
	ledgerStore core.LedgerStore,
	liquidationStore core.LiquidationStore,
	transactionStore core.TransactionStore,
	priceStore core.PriceStore,
	poolService core.PoolService,
	positionService core.PositionService,
	liquidationService core.LiquidationService,
	priceService core.PriceOracleService,
	healthService core.HealthService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/pools", allPoolsHandler(poolStore))
	router.Get("/pools/{asset}", poolHandler(poolStore))
	router.Get("/positions/{user}", positionHandler(poolStore, positionStore))
	router.Get("/positions/{user}/health", positionHealthHandler(positionStore, healthService))
	router.Get("/transactions", transactionsHandler(transactionStore))
	router.Get("/liquidations", liquidationsHandler(liquidationStore))
	router.Get("/liquidatable", liquidatableHandler(positionStore))
	router.Get("/prices", pricesHandler(priceStore))

	router.Post("/deposits", depositHandler(poolService))
	router.Post("/withdrawals", withdrawHandler(poolService))
	router.Post("/borrows", borrowHandler(positionService))
	router.Post("/repayments", repayHandler(positionService))
	router.Post("/collateral-releases", releaseHandler(positionService))
	router.Post("/quick-borrows", quickBorrowHandler(positionService))
	router.Post("/liquidations", liquidateHandler(liquidationService))

	router.Post("/pools", addPoolHandler(system, poolService))
	router.Post("/pools/{asset}", updatePoolHandler(system, poolService))
	router.Post("/pools/{asset}/status", setPoolStatusHandler(system, poolService))
	router.Post("/prices", providePriceHandler(system, priceService))

	return router
}

func renderErr(w http.ResponseWriter, err error) {
	if code, ok := err.(core.ErrorCode); ok {
		render.Error(w, http.StatusBadRequest, int(code), errors.New(code.Msg()))
		return
	}

	render.BadRequest(w, err)
}

func requireAdmin(system *core.System, w http.ResponseWriter, userID string) bool {
	if system.IsAdmin(userID) {
		return true
	}

	render.ForbiddenRequest(w, errors.New(core.ErrOperationForbidden.Msg()))
	return false
}
