package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/elyvra/commerce-api/internal/domain/admin"
	"github.com/elyvra/commerce-api/internal/domain/cart"
	"github.com/elyvra/commerce-api/internal/domain/content"
	"github.com/elyvra/commerce-api/internal/domain/coupon"
	"github.com/elyvra/commerce-api/internal/domain/customer"
	"github.com/elyvra/commerce-api/internal/domain/order"
	"github.com/elyvra/commerce-api/internal/domain/product"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError emits the fixed error shape {"code": N, "message": "..."}.
func writeError(w http.ResponseWriter, status int, message string) {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("code", func(e *jx.Encoder) { e.Int(status) })
		e.Field("message", func(e *jx.Encoder) { e.Str(message) })
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// respondError maps a domain error to its HTTP status. Unmapped errors are
// logged and reported as 500 without leaking detail.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, product.ErrNotFound),
		errors.Is(err, cart.ErrNotFound),
		errors.Is(err, order.ErrNotFound),
		errors.Is(err, customer.ErrNotFound),
		errors.Is(err, coupon.ErrNotFound),
		errors.Is(err, content.ErrPostNotFound),
		errors.Is(err, content.ErrPageNotFound):
		writeError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, coupon.ErrCodeExists),
		errors.Is(err, content.ErrSlugTaken),
		errors.Is(err, admin.ErrUsernameTaken),
		errors.Is(err, admin.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())

	case errors.Is(err, admin.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, admin.ErrAccountDisabled):
		writeError(w, http.StatusForbidden, err.Error())

	case errors.Is(err, order.ErrEmptyItems),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, cart.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, err.Error())

	default:
		zctx.From(r.Context()).Error("internal error",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeBody parses the request body into v, rejecting unknown payloads with
// a 400. Returns false when a response was already written.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
