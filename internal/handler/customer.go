package handler

import (
	"net/http"

	"github.com/elyvra/commerce-api/internal/domain/customer"
)

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	var f customer.Filter
	f.Limit, f.Skip = pagination(r)
	if s := r.URL.Query().Get("segment"); s != "" {
		seg := customer.Segment(s)
		f.Segment = &seg
	}

	customers, err := h.customers.List(r.Context(), f)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (h *Handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := h.customers.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
