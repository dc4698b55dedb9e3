package rest

import (
	"net/http"
	"time"

	"reservoir/core"
	"reservoir/handler/param"
	"reservoir/handler/render"
	"reservoir/handler/views"
	"reservoir/pkg/reservoir"

	"github.com/go-chi/chi"
)

func allPoolsHandler(poolStore core.PoolStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		pools, err := poolStore.All(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		poolViews := make([]*views.Pool, 0, len(pools))
		for _, pool := range pools {
			poolViews = append(poolViews, getPoolView(pool))
		}

		render.JSON(w, poolViews)
	}
}

func poolHandler(poolStore core.PoolStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		pool, err := poolStore.Find(ctx, chi.URLParam(r, "asset"))
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if pool.ID == 0 {
			renderErr(w, core.ErrPoolNotFound)
			return
		}

		render.JSON(w, getPoolView(pool))
	}
}

// getPoolView accrues a copy so the view is current even when the pool
// saw no operation for a while
func getPoolView(pool *core.Pool) *views.Pool {
	accrued := *pool
	reservoir.AccrueInterest(&accrued, time.Now())

	return &views.Pool{
		Pool:               accrued,
		AvailableLiquidity: accrued.AvailableLiquidity(),
	}
}

func depositHandler(poolService core.PoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req core.DepositReq
		if err := param.Binding(r, &req); err != nil {
			render.BadRequest(w, err)
			return
		}

		transaction, err := poolService.Deposit(ctx, &req)
		if err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, transaction)
	}
}

func withdrawHandler(poolService core.PoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req core.WithdrawReq
		if err := param.Binding(r, &req); err != nil {
			render.BadRequest(w, err)
			return
		}

		transaction, err := poolService.Withdraw(ctx, &req)
		if err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, transaction)
	}
}

func addPoolHandler(system *core.System, poolService core.PoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req core.AddPoolReq
		if err := param.Binding(r, &req); err != nil {
			render.BadRequest(w, err)
			return
		}

		if !requireAdmin(system, w, req.UserID) {
			return
		}

		transaction, err := poolService.AddPool(ctx, &req)
		if err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, transaction)
	}
}

func updatePoolHandler(system *core.System, poolService core.PoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req core.UpdatePoolReq
		req.AssetID = chi.URLParam(r, "asset")
		if err := param.Binding(r, &req); err != nil {
			render.BadRequest(w, err)
			return
		}

		if !requireAdmin(system, w, req.UserID) {
			return
		}

		transaction, err := poolService.UpdatePool(ctx, &req)
		if err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, transaction)
	}
}

func setPoolStatusHandler(system *core.System, poolService core.PoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req core.SetPoolStatusReq
		req.AssetID = chi.URLParam(r, "asset")
		if err := param.Binding(r, &req); err != nil {
			render.BadRequest(w, err)
			return
		}

		if !requireAdmin(system, w, req.UserID) {
			return
		}

		transaction, err := poolService.SetPoolStatus(ctx, &req)
		if err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, transaction)
	}
}
