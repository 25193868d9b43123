package handler

import (
	"net/http"

	"github.com/elyvra/commerce-api/internal/domain/content"
)

func (h *Handler) listPublicBlog(w http.ResponseWriter, r *http.Request) {
	f := content.PostFilter{
		Published: queryBool(r, "published"),
		Featured:  queryBool(r, "featured"),
	}
	f.Limit, f.Skip = pagination(r)

	posts, err := h.contents.ListPosts(r.Context(), f)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *Handler) createBlogPost(w http.ResponseWriter, r *http.Request) {
	var in content.PostInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.contents.CreatePost(r.Context(), in)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) listBlogPosts(w http.ResponseWriter, r *http.Request) {
	f := content.PostFilter{
		Published: queryBool(r, "published"),
		Featured:  queryBool(r, "featured"),
	}
	f.Limit, f.Skip = pagination(r)

	posts, err := h.contents.ListPosts(r.Context(), f)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *Handler) getBlogPost(w http.ResponseWriter, r *http.Request) {
	p, err := h.contents.GetPost(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) updateBlogPost(w http.ResponseWriter, r *http.Request) {
	var in content.PostInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.contents.UpdatePost(r.Context(), r.PathValue("id"), in)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) deleteBlogPost(w http.ResponseWriter, r *http.Request) {
	if err := h.contents.DeletePost(r.Context(), r.PathValue("id")); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "blog post deleted"})
}

func (h *Handler) createPage(w http.ResponseWriter, r *http.Request) {
	var in content.PageInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.contents.CreatePage(r.Context(), in)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) listPages(w http.ResponseWriter, r *http.Request) {
	limit, skip := pagination(r)
	pages, err := h.contents.ListPages(r.Context(), limit, skip)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pages)
}

func (h *Handler) getPage(w http.ResponseWriter, r *http.Request) {
	p, err := h.contents.GetPage(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) updatePage(w http.ResponseWriter, r *http.Request) {
	var in content.PageInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.contents.UpdatePage(r.Context(), r.PathValue("id"), in)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
