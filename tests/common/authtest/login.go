//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"hotel-checkout/internal/domain/user"
	"hotel-checkout/internal/handler/dto/request"
	"hotel-checkout/internal/pkg/cookie"
	"hotel-checkout/tests/common/dbtest"
	"hotel-checkout/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const loginURL = "/api/auth/login"

// LoginUser returns the access token the login cookie carries.
func LoginUser(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, loginURL,
		request.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	access := httptest.ExtractCookie(w, cookie.AccessTokenCookieName)
	require.NotNil(t, access, "no %s cookie", cookie.AccessTokenCookieName)
	require.NotEmpty(t, access.Value)
	return access.Value
}

// CreateAndLogin seeds an active account with the fixture password and
// logs it in. Staff roles reach the admin routes with the token.
func CreateAndLogin(t *testing.T, db dbtest.Conn, router *gin.Engine, email string, role user.Role) string {
	t.Helper()
	dbtest.CreateTestUser(t, db, email, role.String())
	return LoginUser(t, router, email, "password123")
}
