package handler

import (
	"net/http"

	"github.com/elyvra/commerce-api/internal/domain/admin"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	a, err := h.admins.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "login successful",
		"admin":   a.Profile(),
	})
}

func (h *Handler) adminCreate(w http.ResponseWriter, r *http.Request) {
	var in admin.CreateInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	a, err := h.admins.Create(r.Context(), in)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a.Profile())
}

func (h *Handler) adminInitDefault(w http.ResponseWriter, r *http.Request) {
	created, err := h.admins.EnsureDefaultAdmin(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if !created {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "default admin already exists",
		})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"message":  "default admin created",
		"username": admin.DefaultUsername,
		"note":     "change the default password after first login",
	})
}

func (h *Handler) adminStats(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.stats.Collect(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}
