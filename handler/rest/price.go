package rest

import (
	"net/http"

	"reservoir/core"
	"reservoir/handler/param"
	"reservoir/handler/render"
)

func pricesHandler(priceStore core.PriceStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		prices, err := priceStore.All(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, prices)
	}
}

// providePriceHandler manual price provision, deviation guarded like the
// price feed
func providePriceHandler(system *core.System, priceService core.PriceOracleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req struct {
			core.ProvidePriceReq
			UserID string `json:"user_id,omitempty" valid:"required"`
		}
		if err := param.Binding(r, &req); err != nil {
			render.BadRequest(w, err)
			return
		}

		if !requireAdmin(system, w, req.UserID) {
			return
		}

		transaction, err := priceService.ProvidePrice(ctx, &req.ProvidePriceReq)
		if err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, transaction)
	}
}
