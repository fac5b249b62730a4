package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/blueleafbooks/storefront/internal/domain"
	apperrors "github.com/blueleafbooks/storefront/pkg/errors"
)

type feePeriodDTO struct {
	Period  string    `json:"period"`
	Fee     float64   `json:"fee"`
	DueDate time.Time `json:"dueDate"`
	Overdue bool      `json:"overdue"`
	Paid    bool      `json:"paid"`
}

func (d feePeriodDTO) toDomain() domain.FeePeriod {
	return domain.FeePeriod{
		Period:   d.Period,
		FeeCents: dollarsToCents(d.Fee),
		DueDate:  d.DueDate,
		Overdue:  d.Overdue,
		Paid:     d.Paid,
	}
}

// AuthorDashboard fetches the author overview: KPIs, trial window, platform
// fee periods, and the author's own books in every moderation state.
func (c *Client) AuthorDashboard(ctx context.Context, token string) (*domain.AuthorDashboard, error) {
	var resp struct {
		BookCount         int          `json:"bookCount"`
		TotalSales        int          `json:"totalSales"`
		TotalEarnings     float64      `json:"totalEarnings"`
		UnpaidEarnings    float64      `json:"unpaidEarnings"`
		AdminPaymentEmail string       `json:"adminPaymentEmail"`
		InTrial           bool         `json:"inTrial"`
		TrialEndsAt       time.Time    `json:"trialEndsAt"`
		DaysUntilFee      int          `json:"daysUntilFee"`
		LastMonth         feePeriodDTO `json:"lastMonth"`
		CurrentMonth      feePeriodDTO `json:"currentMonth"`
		Books             []bookDTO    `json:"books"`
	}
	if err := c.do(ctx, http.MethodGet, "/authors/dashboard", token, nil, &resp); err != nil {
		return nil, err
	}

	return &domain.AuthorDashboard{
		BookCount:           resp.BookCount,
		TotalSales:          resp.TotalSales,
		TotalEarningsCents:  dollarsToCents(resp.TotalEarnings),
		UnpaidEarningsCents: dollarsToCents(resp.UnpaidEarnings),
		AdminPaymentEmail:   resp.AdminPaymentEmail,
		InTrial:             resp.InTrial,
		TrialEndsAt:         resp.TrialEndsAt,
		DaysUntilFee:        resp.DaysUntilFee,
		LastMonth:           resp.LastMonth.toDomain(),
		CurrentMonth:        resp.CurrentMonth.toDomain(),
		Books:               booksToDomain(resp.Books),
	}, nil
}

// PayoutSettings fetches the author's payout destination.
func (c *Client) PayoutSettings(ctx context.Context, token string) (*domain.PayoutSettings, error) {
	var resp struct {
		PayPalEmail string `json:"paypalEmail"`
	}
	if err := c.do(ctx, http.MethodGet, "/authors/payout-settings", token, nil, &resp); err != nil {
		return nil, err
	}
	return &domain.PayoutSettings{PayPalEmail: resp.PayPalEmail}, nil
}

// UpdatePayoutSettings stores a new payout destination.
func (c *Client) UpdatePayoutSettings(ctx context.Context, token string, settings domain.PayoutSettings) error {
	body := map[string]string{"paypalEmail": settings.PayPalEmail}
	return c.do(ctx, http.MethodPost, "/authors/payout-settings", token, body, nil)
}

// MyBooks lists the author's own books in every moderation state, including
// ones the public catalog would hide.
func (c *Client) MyBooks(ctx context.Context, token string) ([]domain.Book, error) {
	var dtos []bookDTO
	if err := c.do(ctx, http.MethodGet, "/authors/my-books", token, nil, &dtos); err != nil {
		return nil, err
	}
	return booksToDomain(dtos), nil
}

// MonthlyReport downloads the author's earnings statement for one month as a
// PDF. Filename follows the backend convention blueleafbooks-earnings-YYYY-MM.pdf.
func (c *Client) MonthlyReport(ctx context.Context, token string, year int, month time.Month) ([]byte, string, error) {
	path := fmt.Sprintf("/authors/reports/monthly/%d/%d", year, int(month))
	data, contentType, err := c.doRaw(ctx, http.MethodGet, path, token)
	if err != nil {
		return nil, "", err
	}
	if contentType != "" && contentType != "application/pdf" {
		return nil, "", apperrors.BadResponse("report is not a PDF")
	}
	filename := fmt.Sprintf("blueleafbooks-earnings-%04d-%02d.pdf", year, int(month))
	return data, filename, nil
}

// BookUpload is the author's book submission. Cover and PDF are optional on
// update; the backend keeps the existing file when one is absent.
type BookUpload struct {
	Title       string `validate:"required,min=1,max=200"`
	Description string `validate:"required,min=10"`
	Genre       string `validate:"required"`
	PriceCents  int64  `validate:"gte=0"`
	Cover       []byte
	CoverName   string
	PDF         []byte
	PDFName     string
}

// multipartBody assembles the upload as multipart/form-data the way the
// backend's file middleware expects it.
func (u BookUpload) multipartBody() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":       u.Title,
		"description": u.Description,
		"genre":       u.Genre,
		"price":       strconv.FormatFloat(centsToDollars(u.PriceCents), 'f', 2, 64),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	files := []struct {
		field, name string
		data        []byte
	}{
		{"coverImage", u.CoverName, u.Cover},
		{"pdfFile", u.PDFName, u.PDF},
	}
	for _, f := range files {
		if len(f.data) == 0 {
			continue
		}
		part, err := w.CreateFormFile(f.field, f.name)
		if err != nil {
			return nil, "", fmt.Errorf("create form file %s: %w", f.field, err)
		}
		if _, err := part.Write(f.data); err != nil {
			return nil, "", fmt.Errorf("write form file %s: %w", f.field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// doMultipart posts a multipart form and decodes the JSON response.
func (c *Client) doMultipart(ctx context.Context, method, path, token string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.Upstream(resp.StatusCode, extractMessage(data, resp.StatusCode))
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.BadResponse(fmt.Sprintf("unexpected response from %s", path))
	}
	return nil
}

// CreateBook submits a new book; it enters the moderation queue as pending.
func (c *Client) CreateBook(ctx context.Context, token string, upload BookUpload) (*domain.Book, error) {
	body, contentType, err := upload.multipartBody()
	if err != nil {
		return nil, err
	}
	var dto bookDTO
	if err := c.doMultipart(ctx, http.MethodPost, "/books", token, body, contentType, &dto); err != nil {
		return nil, err
	}
	book := dto.toDomain()
	return &book, nil
}

// UpdateBook edits one of the author's books. Edits send the book back to
// moderation.
func (c *Client) UpdateBook(ctx context.Context, token, id string, upload BookUpload) (*domain.Book, error) {
	body, contentType, err := upload.multipartBody()
	if err != nil {
		return nil, err
	}
	var dto bookDTO
	if err := c.doMultipart(ctx, http.MethodPut, "/books/"+url.PathEscape(id), token, body, contentType, &dto); err != nil {
		return nil, err
	}
	book := dto.toDomain()
	return &book, nil
}

// DeleteBook soft-deletes one of the author's books.
func (c *Client) DeleteBook(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/books/"+url.PathEscape(id), token, nil, nil)
}
