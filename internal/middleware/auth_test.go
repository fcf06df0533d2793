package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agrihub_backend/internal/auth"
	"agrihub_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardedRouter(tm *auth.TokenManager, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	chain := append([]gin.HandlerFunc{AuthMiddleware(tm)}, extra...)
	group := router.Group("/protected", chain...)
	group.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": GetUserID(c),
		})
	})

	return router
}

func doRequest(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	t.Parallel()

	tm := auth.NewTokenManager("test-secret", time.Hour)
	router := newGuardedRouter(tm)

	token, err := tm.Generate("user-123", models.UserRoleOwner)
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-123")
}

// All verification failures must be answered with the same body, so
// the response does not reveal which check rejected the token.
func TestAuthMiddleware_UniformRejection(t *testing.T) {
	t.Parallel()

	tm := auth.NewTokenManager("test-secret", time.Hour)
	router := newGuardedRouter(tm)

	expired := auth.NewTokenManager("test-secret", -time.Minute)
	expiredToken, err := expired.Generate("user-123", models.UserRoleOwner)
	require.NoError(t, err)

	forged := auth.NewTokenManager("other-secret", time.Hour)
	forgedToken, err := forged.Generate("user-123", models.UserRoleOwner)
	require.NoError(t, err)

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic abc123",
		"empty bearer":   "Bearer ",
		"garbage token":  "Bearer not-a-token",
		"expired token":  "Bearer " + expiredToken,
		"forged token":   "Bearer " + forgedToken,
	}

	var bodies []string
	for name, header := range cases {
		w := doRequest(router, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
		bodies = append(bodies, w.Body.String())
	}

	for _, body := range bodies {
		assert.Equal(t, bodies[0], body)
	}
}

func TestRequireRoles(t *testing.T) {
	t.Parallel()

	tm := auth.NewTokenManager("test-secret", time.Hour)
	router := newGuardedRouter(tm, RequireRoles(models.UserRoleAdmin))

	ownerToken, err := tm.Generate("user-123", models.UserRoleOwner)
	require.NoError(t, err)
	adminToken, err := tm.Generate("admin-1", models.UserRoleAdmin)
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+ownerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(router, "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

// A role failure is a 403 and must be distinguishable from the 401
// that identity failures produce.
func TestRequireRoles_DistinctFromAuthFailure(t *testing.T) {
	t.Parallel()

	tm := auth.NewTokenManager("test-secret", time.Hour)
	router := newGuardedRouter(tm, AdminMiddleware())

	ownerToken, err := tm.Generate("user-123", models.UserRoleOwner)
	require.NoError(t, err)

	authFailure := doRequest(router, "Bearer garbage")
	roleFailure := doRequest(router, "Bearer "+ownerToken)

	assert.Equal(t, http.StatusUnauthorized, authFailure.Code)
	assert.Equal(t, http.StatusForbidden, roleFailure.Code)
	assert.NotEqual(t, authFailure.Body.String(), roleFailure.Body.String())
}
