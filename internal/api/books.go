package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/blueleafbooks/storefront/internal/domain"
	apperrors "github.com/blueleafbooks/storefront/pkg/errors"
)

// bookDTO mirrors the backend's wire shape for a book. Prices are float
// dollars on the wire and converted to cents at this boundary.
type bookDTO struct {
	ID          string  `json:"_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Genre       string  `json:"genre"`
	Price       float64 `json:"price"`
	CoverImage  string  `json:"coverImage"`
	PDFFile     string  `json:"pdfFile"`
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"ratingCount"`
	SalesCount  int     `json:"salesCount"`
	Status      string  `json:"status"`
	IsDeleted   bool    `json:"isDeleted"`
	Author      struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	} `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

func (d bookDTO) toDomain() domain.Book {
	return domain.Book{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Genre:       d.Genre,
		PriceCents:  dollarsToCents(d.Price),
		CoverURL:    d.CoverImage,
		PDFURL:      d.PDFFile,
		Rating:      d.Rating,
		RatingCount: d.RatingCount,
		SalesCount:  d.SalesCount,
		Status:      d.Status,
		IsDeleted:   d.IsDeleted,
		AuthorID:    d.Author.ID,
		AuthorName:  d.Author.Name,
		CreatedAt:   d.CreatedAt,
	}
}

func booksToDomain(dtos []bookDTO) []domain.Book {
	books := make([]domain.Book, 0, len(dtos))
	for _, d := range dtos {
		books = append(books, d.toDomain())
	}
	return books
}

// ListBooksParams narrows the catalog listing. Zero values mean "no filter".
type ListBooksParams struct {
	Genre  string
	Search string
	Sort   string
	Page   int
	Limit  int
}

// BookPage is one page of catalog results.
type BookPage struct {
	Books      []domain.Book
	Total      int
	Page       int
	TotalPages int
}

// ListBooks fetches a filtered, paginated slice of the public catalog.
func (c *Client) ListBooks(ctx context.Context, params ListBooksParams) (*BookPage, error) {
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
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}

	path := "/books"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp struct {
		Books      []bookDTO `json:"books"`
		Total      int       `json:"total"`
		Page       int       `json:"page"`
		TotalPages int       `json:"totalPages"`
	}
	if err := c.do(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		return nil, err
	}

	return &BookPage{
		Books:      booksToDomain(resp.Books),
		Total:      resp.Total,
		Page:       resp.Page,
		TotalPages: resp.TotalPages,
	}, nil
}

// GetBook fetches a single book by ID.
func (c *Client) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	var dto bookDTO
	if err := c.do(ctx, http.MethodGet, "/books/"+url.PathEscape(id), "", nil, &dto); err != nil {
		return nil, err
	}
	book := dto.toDomain()
	return &book, nil
}

// Genres lists the catalog's distinct genres for the browse filter.
func (c *Client) Genres(ctx context.Context) ([]string, error) {
	var genres []string
	if err := c.do(ctx, http.MethodGet, "/books/genres/list", "", nil, &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

// Bestsellers returns the storefront's top sellers strip.
func (c *Client) Bestsellers(ctx context.Context) ([]domain.Book, error) {
	return c.featured(ctx, "bestsellers")
}

// NewReleases returns the most recently approved books.
func (c *Client) NewReleases(ctx context.Context) ([]domain.Book, error) {
	return c.featured(ctx, "new")
}

// Curated returns the editorial picks strip.
func (c *Client) Curated(ctx context.Context) ([]domain.Book, error) {
	return c.featured(ctx, "curated")
}

func (c *Client) featured(ctx context.Context, shelf string) ([]domain.Book, error) {
	var dtos []bookDTO
	if err := c.do(ctx, http.MethodGet, "/books/featured/"+shelf, "", nil, &dtos); err != nil {
		return nil, err
	}
	return booksToDomain(dtos), nil
}

// ValidateCart submits the whole cart in one batched call and returns the
// books the backend still sells. Items it no longer sells are simply absent
// from the result. The response must be an actual JSON array: `null`, an
// empty body, or an error object would all decode to an empty list and read
// as "nothing survives", which the caller turns into a cart rewrite.
func (c *Client) ValidateCart(ctx context.Context, ids []string) ([]domain.Book, error) {
	var raw json.RawMessage
	err := c.do(ctx, http.MethodPost, "/cart/validate", "", map[string]any{"bookIds": ids}, &raw)
	if err != nil {
		return nil, err
	}

	body := bytes.TrimSpace(raw)
	if len(body) == 0 || body[0] != '[' {
		return nil, apperrors.BadResponse("unexpected response from /cart/validate")
	}

	var dtos []bookDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, apperrors.BadResponse("unexpected response from /cart/validate")
	}
	return booksToDomain(dtos), nil
}
