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

func positionHandler(poolStore core.PoolStore, positionStore core.PositionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		position, err := positionStore.FindByUser(ctx, chi.URLParam(r, "user"))
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if position.ID == 0 {
			renderErr(w, core.ErrPositionNotFound)
			return
		}

		collaterals, err := positionStore.ListCollaterals(ctx, position.PositionID)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		debts, err := positionStore.ListDebts(ctx, position.PositionID)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		pools, err := poolStore.AllAsMap(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		now := time.Now()
		debtViews := make([]*views.Debt, 0, len(debts))
		for _, debt := range debts {
			balance := debt.Principal
			if pool, ok := pools[debt.AssetID]; ok {
				accrued := *pool
				reservoir.AccrueInterest(&accrued, now)
				balance = reservoir.DebtBalance(debt, &accrued)
			}

			debtViews = append(debtViews, &views.Debt{
				Debt:    *debt,
				Balance: balance,
			})
		}

		render.JSON(w, &views.Position{
			Position:    *position,
			Collaterals: collaterals,
			Debts:       debtViews,
		})
	}
}

func positionHealthHandler(positionStore core.PositionStore, healthService core.HealthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		position, err := positionStore.FindByUser(ctx, chi.URLParam(r, "user"))
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if position.ID == 0 {
			renderErr(w, core.ErrPositionNotFound)
			return
		}

		collaterals, err := positionStore.ListCollaterals(ctx, position.PositionID)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		debts, err := positionStore.ListDebts(ctx, position.PositionID)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		snapshot, err := healthService.Evaluate(ctx, collaterals, debts, nil)
		if err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, snapshot)
	}
}

func liquidatableHandler(positionStore core.PositionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		positions, err := positionStore.ListByStatus(ctx, core.PositionStatusLiquidatable)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, positions)
	}
}

func borrowHandler(positionService core.PositionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req core.BorrowReq
		if err := param.Binding(r, &req); err != nil {
			render.BadRequest(w, err)
			return
		}

		transaction, err := positionService.Borrow(ctx, &req)
		if err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, transaction)
	}
}

func repayHandler(positionService core.PositionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req core.RepayReq
		if err := param.Binding(r, &req); err != nil {
			render.BadRequest(w, err)
			return
		}

		transaction, err := positionService.Repay(ctx, &req)
		if err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, transaction)
	}
}

func releaseHandler(positionService core.PositionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req core.ReleaseReq
		if err := param.Binding(r, &req); err != nil {
			render.BadRequest(w, err)
			return
		}

		transaction, err := positionService.Release(ctx, &req)
		if err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, transaction)
	}
}

func quickBorrowHandler(positionService core.PositionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req core.QuickBorrowReq
		if err := param.Binding(r, &req); err != nil {
			render.BadRequest(w, err)
			return
		}

		transaction, err := positionService.QuickBorrow(ctx, &req)
		if err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, transaction)
	}
}
