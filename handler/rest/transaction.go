package rest

import (
	"net/http"
	"time"

	"reservoir/core"
	"reservoir/handler/param"
	"reservoir/handler/render"
)

// response the operation journal
func transactionsHandler(transactionStore core.TransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			UserID string `json:"user"`
			Offset string `json:"offset"`
			Limit  int    `json:"limit"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
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

		if params.UserID != "" {
			transactions, err := transactionStore.ListByUser(ctx, params.UserID, offsetTime, limit)
			if err != nil {
				render.BadRequest(w, err)
				return
			}

			render.JSON(w, transactions)
			return
		}

		transactions, err := transactionStore.List(ctx, offsetTime, limit)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, transactions)
	}
}
