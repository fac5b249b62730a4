package http

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/blueleafbooks/storefront/internal/api"
	"github.com/blueleafbooks/storefront/internal/domain"
	apperrors "github.com/blueleafbooks/storefront/pkg/errors"
	"github.com/blueleafbooks/storefront/pkg/validator"
)

// maxUploadBytes bounds a book submission: cover plus PDF.
const maxUploadBytes = 64 << 20

// AuthorBookNew renders the empty book submission form.
func (h *Handler) AuthorBookNew(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, domain.RoleAuthor) {
		return
	}
	sess := SessionFrom(r.Context())

	genres, err := h.backend.Genres(r.Context())
	if err != nil {
		genres = nil
	}

	pd := h.page(sess, "Add a book")
	pd.Data = map[string]any{
		"Genres": genres,
		"Action": "/dashboard/author/books",
	}
	h.render.Render(w, http.StatusOK, "author_book_form", pd)
}

// AuthorBookCreate submits a new book for moderation.
func (h *Handler) AuthorBookCreate(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, domain.RoleAuthor) {
		return
	}
	sess := SessionFrom(r.Context())

	upload, err := h.parseBookUpload(r)
	if err != nil {
		h.renderBookForm(w, r, nil, "/dashboard/author/books", apperrors.Message(err, "Please check the form."))
		return
	}

	if _, err := h.backend.CreateBook(r.Context(), sess.Token, *upload); err != nil {
		h.renderBookForm(w, r, nil, "/dashboard/author/books", apperrors.Message(err, "The book could not be submitted."))
		return
	}
	http.Redirect(w, r, "/dashboard/author", http.StatusSeeOther)
}

// AuthorBookEdit renders the edit form pre-filled with the book's data. The
// book is resolved through the author's own list so that titles still in
// moderation, which the public catalog hides, remain editable.
func (h *Handler) AuthorBookEdit(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, domain.RoleAuthor) {
		return
	}
	sess := SessionFrom(r.Context())

	id := chi.URLParam(r, "id")
	books, err := h.backend.MyBooks(r.Context(), sess.Token)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	var book *domain.Book
	for i := range books {
		if books[i].ID == id {
			book = &books[i]
			break
		}
	}
	if book == nil {
		h.renderError(w, r, apperrors.NotFound("book", id))
		return
	}

	genres, err := h.backend.Genres(r.Context())
	if err != nil {
		genres = nil
	}

	pd := h.page(sess, "Edit book")
	pd.Data = map[string]any{
		"Book":   book,
		"Genres": genres,
		"Action": "/dashboard/author/books/" + id,
	}
	h.render.Render(w, http.StatusOK, "author_book_form", pd)
}

// AuthorBookUpdate saves edits to one of the author's books. The backend
// sends the edited book back through moderation.
func (h *Handler) AuthorBookUpdate(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, domain.RoleAuthor) {
		return
	}
	sess := SessionFrom(r.Context())
	id := chi.URLParam(r, "id")

	upload, err := h.parseBookUpload(r)
	if err != nil {
		h.renderBookForm(w, r, nil, "/dashboard/author/books/"+id, apperrors.Message(err, "Please check the form."))
		return
	}

	if _, err := h.backend.UpdateBook(r.Context(), sess.Token, id, *upload); err != nil {
		h.renderBookForm(w, r, nil, "/dashboard/author/books/"+id, apperrors.Message(err, "The changes could not be saved."))
		return
	}
	http.Redirect(w, r, "/dashboard/author", http.StatusSeeOther)
}

// AuthorBookDelete soft-deletes one of the author's books.
func (h *Handler) AuthorBookDelete(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, domain.RoleAuthor) {
		return
	}
	sess := SessionFrom(r.Context())

	if err := h.backend.DeleteBook(r.Context(), sess.Token, chi.URLParam(r, "id")); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/dashboard/author", http.StatusSeeOther)
}

// AuthorPayoutUpdate saves the author's payout destination.
func (h *Handler) AuthorPayoutUpdate(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, domain.RoleAuthor) {
		return
	}
	sess := SessionFrom(r.Context())

	settings := domain.PayoutSettings{PayPalEmail: r.PostFormValue("paypal_email")}
	input := struct {
		Email string `validate:"required,email"`
	}{settings.PayPalEmail}
	if err := validator.Validate(input); err != nil {
		h.renderError(w, r, apperrors.InvalidInput("Please enter a valid PayPal email address."))
		return
	}

	if err := h.backend.UpdatePayoutSettings(r.Context(), sess.Token, settings); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/dashboard/author", http.StatusSeeOther)
}

// AuthorReport streams the monthly earnings statement as a PDF download.
func (h *Handler) AuthorReport(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, domain.RoleAuthor) {
		return
	}
	sess := SessionFrom(r.Context())

	month, err := time.Parse("2006-01", r.URL.Query().Get("month"))
	if err != nil {
		h.renderError(w, r, apperrors.InvalidInput("Please pick a month."))
		return
	}

	data, filename, err := h.backend.MonthlyReport(r.Context(), sess.Token, month.Year(), month.Month())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

// parseBookUpload reads the multipart submission into an upload payload.
func (h *Handler) parseBookUpload(r *http.Request) (*api.BookUpload, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, apperrors.InvalidInput("The upload is too large or malformed.")
	}

	price, err := strconv.ParseFloat(r.PostFormValue("price"), 64)
	if err != nil || price < 0 {
		return nil, apperrors.InvalidInput("Please enter a valid price.")
	}

	upload := &api.BookUpload{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Genre:       r.PostFormValue("genre"),
		PriceCents:  int64(price*100 + 0.5),
	}

	if data, name, err := formFile(r, "cover"); err == nil {
		upload.Cover, upload.CoverName = data, name
	}
	if data, name, err := formFile(r, "pdf"); err == nil {
		upload.PDF, upload.PDFName = data, name
	}

	if err := validator.Validate(upload); err != nil {
		return nil, apperrors.InvalidInput("Please fill in the title, description, and genre.")
	}
	return upload, nil
}

func formFile(r *http.Request, field string) ([]byte, string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, "", err
	}
	return data, header.Filename, nil
}

// renderBookForm re-renders the submission form with an error banner.
func (h *Handler) renderBookForm(w http.ResponseWriter, r *http.Request, book *domain.Book, action, msg string) {
	sess := SessionFrom(r.Context())

	genres, err := h.backend.Genres(r.Context())
	if err != nil {
		genres = nil
	}

	pd := h.page(sess, "Add a book")
	pd.Error = msg
	pd.Data = map[string]any{
		"Book":   book,
		"Genres": genres,
		"Action": action,
	}
	h.render.Render(w, http.StatusUnprocessableEntity, "author_book_form", pd)
}
