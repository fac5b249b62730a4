package api

import (
	"context"
	"net/http"

	"github.com/blueleafbooks/storefront/internal/domain"
)

type userDTO struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (d userDTO) toDomain() domain.User {
	return domain.User{
		ID:    d.ID,
		Name:  d.Name,
		Email: d.Email,
		Role:  d.Role,
	}
}

type authResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

// RegisterInput is the signup payload. Role selects between a customer and
// an author account; the backend rejects anything else.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=customer author"`
}

// LoginInput is the credentials payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates an account and returns the issued token and user profile.
func (c *Client) Register(ctx context.Context, in RegisterInput) (string, *domain.User, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", in, &resp); err != nil {
		return "", nil, err
	}
	user := resp.User.toDomain()
	return resp.Token, &user, nil
}

// Login exchanges credentials for a token and user profile.
func (c *Client) Login(ctx context.Context, in LoginInput) (string, *domain.User, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", in, &resp); err != nil {
		return "", nil, err
	}
	user := resp.User.toDomain()
	return resp.Token, &user, nil
}

// Me returns the profile behind a token, used to revalidate a session whose
// user snapshot may be stale.
func (c *Client) Me(ctx context.Context, token string) (*domain.User, error) {
	var dto userDTO
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &dto); err != nil {
		return nil, err
	}
	user := dto.toDomain()
	return &user, nil
}
