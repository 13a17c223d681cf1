package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"saborreal/config"
	servicemocks "saborreal/internal/mocks/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAccessSecret = "test-access-secret"

type authMiddlewareFixtures struct {
	tokenSvc   *servicemocks.MockTokenService
	middleware *AuthMiddleware
	echo       *echo.Echo
}

func createTestAuthMiddleware(t *testing.T) authMiddlewareFixtures {
	t.Helper()

	tokenSvc := servicemocks.NewMockTokenService(t)

	cfg := &config.Config{}
	cfg.SecretKey.Access = testAccessSecret

	return authMiddlewareFixtures{
		tokenSvc:   tokenSvc,
		middleware: NewAuthMiddleware(tokenSvc, cfg),
		echo:       echo.New(),
	}
}

func newAuthTestContext(fx authMiddlewareFixtures, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()

	return fx.echo.NewContext(req, rec), rec
}

func validTokenFor(userID uuid.UUID, roles []any) *jwt.Token {
	token := jwt.New(jwt.SigningMethodHS256)
	token.Claims = jwt.MapClaims{
		"sub":   userID.String(),
		"roles": roles,
	}
	token.Valid = true

	return token
}

func TestAuthMiddleware_Authenticate_Success(t *testing.T) {
	fx := createTestAuthMiddleware(t)
	userID := uuid.New()

	fx.tokenSvc.EXPECT().
		ValidateToken("good-token", testAccessSecret).
		Return(validTokenFor(userID, []any{"customer"}), nil)

	c, _ := newAuthTestContext(fx, "Bearer good-token")

	var gotUserID uuid.UUID
	var gotRoles []string
	next := func(c echo.Context) error {
		gotUserID, _ = c.Get("userID").(uuid.UUID)
		gotRoles, _ = c.Get("roles").([]string)

		return nil
	}

	err := fx.middleware.Authenticate(next)(c)

	require.NoError(t, err)
	assert.Equal(t, userID, gotUserID)
	assert.Equal(t, []string{"customer"}, gotRoles)
}

func TestAuthMiddleware_Authenticate_MissingHeader(t *testing.T) {
	fx := createTestAuthMiddleware(t)
	c, rec := newAuthTestContext(fx, "")

	err := fx.middleware.Authenticate(func(c echo.Context) error { return nil })(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_Authenticate_NotBearer(t *testing.T) {
	fx := createTestAuthMiddleware(t)
	c, rec := newAuthTestContext(fx, "Basic abc123")

	err := fx.middleware.Authenticate(func(c echo.Context) error { return nil })(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_Authenticate_InvalidToken(t *testing.T) {
	fx := createTestAuthMiddleware(t)

	fx.tokenSvc.EXPECT().
		ValidateToken("bad-token", testAccessSecret).
		Return(nil, errors.New("token is expired"))

	c, rec := newAuthTestContext(fx, "Bearer bad-token")

	err := fx.middleware.Authenticate(func(c echo.Context) error { return nil })(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	fx := createTestAuthMiddleware(t)

	tests := []struct {
		name       string
		roles      any
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "has role",
			roles:      []string{"customer", "admin"},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "missing role",
			roles:      []string{"customer"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "no role info",
			roles:      nil,
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newAuthTestContext(fx, "")
			if tt.roles != nil {
				c.Set("roles", tt.roles)
			}

			nextCalled := false
			next := func(c echo.Context) error {
				nextCalled = true

				return c.NoContent(http.StatusOK)
			}

			err := fx.middleware.RequireRole("admin")(next)(c)

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
		})
	}
}
