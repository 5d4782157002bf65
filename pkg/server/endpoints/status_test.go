package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusPage(t *testing.T) {
	srv, mockDB, err := NewMockTestServer()
	require.NoError(t, err)
	defer mockDB.Close()

	t.Run("html", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		w := httptest.NewRecorder()
		srv.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "running")
	})

	t.Run("json", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/?format=json", nil)
		w := httptest.NewRecorder()
		srv.Router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp StatusResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "ok", resp.Database)
	})
}

func TestHelpPage(t *testing.T) {
	srv, mockDB, err := NewMockTestServer()
	require.NoError(t, err)
	defer mockDB.Close()

	req := httptest.NewRequest("GET", "/admin/help", nil)
	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>Operator guide</h1>")
	assert.Contains(t, w.Body.String(), "/api/login")
}

func TestListUsers(t *testing.T) {
	srv, mockDB, err := NewMockTestServer()
	require.NoError(t, err)
	defer mockDB.Close()

	rows := sqlmock.NewRows([]string{"id", "tg_id", "username", "balance", "wallet_address", "created_at"}).
		AddRow(2, int64(42), "alice", int64(10_500_000), "", time.Now()).
		AddRow(1, int64(7), "bob", int64(500_000), "TEhcSVUBxrXmAwQKKhruae1PLE8S8Ja7dG", time.Now())
	mockDB.Mock.ExpectQuery(`SELECT .* FROM "users"`).WillReturnRows(rows)

	w := authedRequest(t, srv, "GET", "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []UserResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "alice", resp[0].Username)
	assert.Equal(t, "10.50", resp[0].Balance)
	assert.Equal(t, "0.50", resp[1].Balance)

	assert.NoError(t, mockDB.VerifyExpectations())
}

func TestUserTransactions(t *testing.T) {
	srv, mockDB, err := NewMockTestServer()
	require.NoError(t, err)
	defer mockDB.Close()

	rows := sqlmock.NewRows([]string{"id", "user_id", "amount", "type", "note", "created_at"}).
		AddRow(5, int64(42), int64(-2_000_000), "send_packet", "packet abc12345", time.Now()).
		AddRow(4, int64(42), int64(500_000), "system_bonus", "sign-up bonus", time.Now())
	mockDB.Mock.ExpectQuery(`SELECT .* FROM "transactions" WHERE user_id = `).
		WillReturnRows(rows)

	w := authedRequest(t, srv, "GET", "/api/transactions/42", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []TransactionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "-2.00", resp[0].Amount)
	assert.Equal(t, "send_packet", resp[0].Type)

	assert.NoError(t, mockDB.VerifyExpectations())
}
