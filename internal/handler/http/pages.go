package http

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/blueleafbooks/storefront/internal/api"
	"github.com/blueleafbooks/storefront/internal/domain"
)

const catalogPageSize = 24

// Home renders the landing page with the bestseller, new-release and
// staff-pick strips. Any strip failing degrades to an empty section rather
// than a dead page.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	var bestsellers, newReleases, curated []domain.Book
	if books, err := h.backend.Bestsellers(r.Context()); err == nil {
		bestsellers = books
	}
	if books, err := h.backend.NewReleases(r.Context()); err == nil {
		newReleases = books
	}
	if books, err := h.backend.Curated(r.Context()); err == nil {
		curated = books
	}

	pd := h.page(sess, "")
	pd.Data = map[string]any{
		"Bestsellers": bestsellers,
		"NewReleases": newReleases,
		"Curated":     curated,
	}
	h.render.Render(w, http.StatusOK, "home", pd)
}

// Catalog renders the filtered, paginated browse page.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	q := r.URL.Query()
	params := api.ListBooksParams{
		Genre:  q.Get("genre"),
		Search: q.Get("search"),
		Sort:   q.Get("sort"),
		Limit:  catalogPageSize,
	}
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		params.Page = p
	}

	page, err := h.backend.ListBooks(r.Context(), params)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	genres, err := h.backend.Genres(r.Context())
	if err != nil {
		genres = nil
	}

	pd := h.page(sess, "Browse books")
	pd.Data = map[string]any{
		"Page":    page,
		"Genres":  genres,
		"Genre":   params.Genre,
		"Search":  params.Search,
		"Sort":    params.Sort,
		"PrevURL": catalogURL(params, page.Page-1),
		"NextURL": catalogURL(params, page.Page+1),
	}
	h.render.Render(w, http.StatusOK, "catalog", pd)
}

func catalogURL(params api.ListBooksParams, page int) string {
	q := url.Values{}
	if params.Genre != "" {
		q.Set("genre", params.Genre)
	}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.Sort != "" {
		q.Set("sort", params.Sort)
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if len(q) == 0 {
		return "/books"
	}
	return "/books?" + q.Encode()
}

// BookDetail renders a single book page.
func (h *Handler) BookDetail(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	book, err := h.backend.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	pd := h.page(sess, book.Title)
	pd.Data = map[string]any{
		"Book":   book,
		"InCart": sess.Cart.Contains(book.ID),
	}
	h.render.Render(w, http.StatusOK, "book", pd)
}
