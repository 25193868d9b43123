package handler

import (
	"net/http"
	"time"

	"github.com/elyvra/commerce-api/internal/domain/cart"
	"github.com/elyvra/commerce-api/internal/domain/stats"
)

func (h *Handler) createCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.Create(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req cart.AddItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	c, err := h.carts.AddItem(r.Context(), r.PathValue("id"), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) adminListCarts(w http.ResponseWriter, r *http.Request) {
	var f cart.Filter
	f.Limit, f.Skip = pagination(r)
	if v := queryBool(r, "abandoned_only"); v != nil && *v {
		cutoff := time.Now().UTC().Add(-stats.AbandonedAfter)
		f.AbandonedBefore = &cutoff
	}

	carts, err := h.carts.List(r.Context(), f)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, carts)
}

func (h *Handler) adminDeleteCart(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "cart deleted"})
}
