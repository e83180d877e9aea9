package auth

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/KushalZanzari/neuroq-backend/internal/domain"
	apperrors "github.com/KushalZanzari/neuroq-backend/pkg/util"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (s *stubUserRepo) Create(_ context.Context, _ *domain.User) error { return nil }
func (s *stubUserRepo) Update(_ context.Context, _ *domain.User) error { return nil }

func (s *stubUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := s.users[email]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func newGuardedApp(tokens *TokenManager, repo *stubUserRepo) *fiber.App {
	app := fiber.New()
	// Minimal error mapping so DomainError status codes reach the response.
	app.Use(func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": domainErr.Code})
		}
		return nil
	})

	middleware := NewMiddleware(tokens, repo)
	app.Get("/protected", middleware.Handle, func(c *fiber.Ctx) error {
		user, _ := CurrentUser(c)
		return c.JSON(fiber.Map{"email": user.Email})
	})
	return app
}

func TestMiddleware_ResolvesCurrentUser(t *testing.T) {
	t.Parallel()

	tokens := NewTokenManager("unit-test-secret", 30)
	repo := &stubUserRepo{users: map[string]*domain.User{
		"alice@example.com": {ID: 1, Email: "alice@example.com", CreatedAt: time.Now()},
	}}
	app := newGuardedApp(tokens, repo)

	token, _, err := tokens.GenerateToken("alice@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
}

func TestMiddleware_MissingHeader(t *testing.T) {
	t.Parallel()

	app := newGuardedApp(NewTokenManager("unit-test-secret", 30), &stubUserRepo{})

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)
}

func TestMiddleware_MalformedHeader(t *testing.T) {
	t.Parallel()

	app := newGuardedApp(NewTokenManager("unit-test-secret", 30), &stubUserRepo{})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)
}

func TestMiddleware_WrongSecretToken(t *testing.T) {
	t.Parallel()

	repo := &stubUserRepo{users: map[string]*domain.User{
		"alice@example.com": {ID: 1, Email: "alice@example.com"},
	}}
	app := newGuardedApp(NewTokenManager("right-secret", 30), repo)

	// Syntactically valid token signed with a different secret.
	token, _, err := NewTokenManager("wrong-secret", 30).GenerateToken("alice@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)
}

func TestMiddleware_VanishedAccountIs404(t *testing.T) {
	t.Parallel()

	tokens := NewTokenManager("unit-test-secret", 30)
	app := newGuardedApp(tokens, &stubUserRepo{users: map[string]*domain.User{}})

	// Valid token, but the account it names no longer exists.
	token, _, err := tokens.GenerateToken("deleted@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 404, resp.StatusCode)
}
