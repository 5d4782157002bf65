package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	srv, mockDB, err := NewMockTestServer()
	require.NoError(t, err)
	defer mockDB.Close()

	t.Run("valid credentials", func(t *testing.T) {
		body := strings.NewReader(`{"username":"admin","password":"swordfish"}`)
		req := httptest.NewRequest("POST", "/api/login", body)
		w := httptest.NewRecorder()
		srv.Router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp LoginResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.NotEmpty(t, resp.Token)

		subject, err := srv.Sessions.VerifyToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "admin", subject)
	})

	t.Run("wrong password", func(t *testing.T) {
		body := strings.NewReader(`{"username":"admin","password":"nope"}`)
		req := httptest.NewRequest("POST", "/api/login", body)
		w := httptest.NewRecorder()
		srv.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/login", strings.NewReader("{"))
		w := httptest.NewRecorder()
		srv.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAPIRequiresToken(t *testing.T) {
	srv, mockDB, err := NewMockTestServer()
	require.NoError(t, err)
	defer mockDB.Close()

	for _, path := range []string{"/api/users", "/api/deposits", "/api/withdrawals", "/api/transactions/42"} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		srv.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}
