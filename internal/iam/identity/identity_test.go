package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestDecode(t *testing.T) {
	id, err := Decode([]byte(`{"uuid":"u-1","username":"alice","email":"a@x.com","permissions":["p1"]}`))
	require.NoError(t, err)
	assert.True(t, id.Authenticated)
	assert.Equal(t, "alice", id.Username)
	assert.True(t, id.HasPermission("p1"))
	assert.False(t, id.HasPermission("p2"))

	id, err = Decode([]byte(`{"anonymous":true}`))
	require.NoError(t, err)
	assert.True(t, id.IsAnonymous())

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestAuthenticated_NilPermissionsBecomeEmpty(t *testing.T) {
	id := Authenticated("u-1", "alice", "", nil)
	assert.NotNil(t, id.Permissions)
	assert.Empty(t, id.Permissions)
}

func TestContextRoundTrip(t *testing.T) {
	assert.True(t, FromContext(context.Background()).IsAnonymous())

	ctx := WithContext(context.Background(), Authenticated("u-1", "alice", "", nil))
	assert.Equal(t, "u-1", FromContext(ctx).UUID)
}

func serve(id *Identity, mw ...gin.HandlerFunc) *httptest.ResponseRecorder {
	r := gin.New()
	handlers := []gin.HandlerFunc{func(c *gin.Context) {
		if id != nil {
			Set(c, *id)
		}
		c.Next()
	}}
	handlers = append(handlers, mw...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uuid": FromContext(c.Request.Context()).UUID})
	})
	r.GET("/", handlers...)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestRequireIdentity(t *testing.T) {
	w := serve(nil, RequireIdentity())
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	alice := Authenticated("u-1", "alice", "", nil)
	w = serve(&alice, RequireIdentity())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"uuid":"u-1"}`, w.Body.String())
}

func TestRequirePermission(t *testing.T) {
	alice := Authenticated("u-1", "alice", "", []string{"view_picture"})

	w := serve(&alice, RequirePermission("view_picture"))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(&alice, RequirePermission("view_picture", "delete_picture"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(nil, RequirePermission("view_picture"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExtractBearerToken(t *testing.T) {
	token, ok := ExtractBearerToken("Bearer abc.def.ghi")
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)

	for _, header := range []string{"", "Bearer ", "Bearer    ", "bearer abc", "Basic abc", "Token abc"} {
		_, ok := ExtractBearerToken(header)
		assert.False(t, ok, header)
	}
}
