package handler

import (
	"net/http"

	"github.com/elyvra/commerce-api/internal/domain/coupon"
)

func (h *Handler) createCoupon(w http.ResponseWriter, r *http.Request) {
	var in coupon.CreateInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.coupons.Create(r.Context(), in)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) listCoupons(w http.ResponseWriter, r *http.Request) {
	f := coupon.Filter{IsActive: queryBool(r, "is_active")}
	f.Limit, f.Skip = pagination(r)

	coupons, err := h.coupons.List(r.Context(), f)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, coupons)
}
