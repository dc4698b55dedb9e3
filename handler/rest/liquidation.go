package rest

import (
	"net/http"
	"time"

	"reservoir/core"
	"reservoir/handler/param"
	"reservoir/handler/render"
)

func liquidationsHandler(liquidationStore core.LiquidationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			PositionID string `json:"position"`
			Offset     string `json:"offset"`
			Limit      int    `json:"limit"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if params.PositionID != "" {
			liquidations, err := liquidationStore.ListByPosition(ctx, params.PositionID)
			if err != nil {
				render.BadRequest(w, err)
				return
			}

			render.JSON(w, liquidations)
			return
		}

		limit := params.Limit
		if limit <= 0 {
			limit = 500
		}

		offsetTime, err := time.Parse(time.RFC3339Nano, params.Offset)
		if err != nil {
			offsetTime = time.Time{}
		}

		liquidations, err := liquidationStore.List(ctx, offsetTime, limit)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, liquidations)
	}
}

func liquidateHandler(liquidationService core.LiquidationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req core.LiquidateReq
		if err := param.Binding(r, &req); err != nil {
			render.BadRequest(w, err)
			return
		}

		transaction, err := liquidationService.Liquidate(ctx, &req)
		if err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, transaction)
	}
}
