package endpoints

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/server"
)

func depositColumns() []string {
	return []string{"id", "user_id", "amount", "random_amount", "status", "tx_hash", "created_at"}
}

func authedRequest(t *testing.T, srv *server.Server, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()

	token, err := srv.Sessions.IssueToken("admin")
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, req)
	return w
}

func TestListDeposits(t *testing.T) {
	srv, mockDB, err := NewMockTestServer()
	require.NoError(t, err)
	defer mockDB.Close()

	rows := sqlmock.NewRows(depositColumns()).
		AddRow(2, int64(42), int64(10_000_000), int64(10_003_177), "pending", nil, time.Now()).
		AddRow(1, int64(7), int64(5_000_000), int64(5_001_250), "completed", "deadbeef", time.Now())
	mockDB.Mock.ExpectQuery(`SELECT .* FROM "deposits"`).WillReturnRows(rows)

	w := authedRequest(t, srv, "GET", "/api/deposits", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []DepositResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "10.00", resp[0].Amount)
	assert.Equal(t, "10.003177", resp[0].PayableAmount)
	assert.Equal(t, "pending", resp[0].Status)
	require.NotNil(t, resp[1].TxHash)
	assert.Equal(t, "deadbeef", *resp[1].TxHash)

	assert.NoError(t, mockDB.VerifyExpectations())
}

func TestApproveDepositCreditsUser(t *testing.T) {
	srv, mockDB, err := NewMockTestServer()
	require.NoError(t, err)
	defer mockDB.Close()

	mock := mockDB.Mock
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "deposits" WHERE .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(depositColumns()).
			AddRow(2, int64(42), int64(10_000_000), int64(10_003_177), "pending", nil, time.Now()))
	mock.ExpectQuery(`SELECT .* FROM "users" WHERE tg_id = .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tg_id", "username", "balance", "wallet_address", "created_at"}).
			AddRow(1, int64(42), "alice", int64(0), "", time.Now()))
	mock.ExpectExec(`UPDATE "users" SET "balance"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE "deposits"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	body := strings.NewReader(`{"action":"approve"}`)
	w := authedRequest(t, srv, "POST", "/api/deposits/2", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp DepositResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "completed", resp.Status)

	assert.NoError(t, mockDB.VerifyExpectations())
}

func TestRejectDepositDoesNotCredit(t *testing.T) {
	srv, mockDB, err := NewMockTestServer()
	require.NoError(t, err)
	defer mockDB.Close()

	mock := mockDB.Mock
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "deposits" WHERE .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(depositColumns()).
			AddRow(2, int64(42), int64(10_000_000), int64(10_003_177), "pending", nil, time.Now()))
	mock.ExpectExec(`UPDATE "deposits"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	body := strings.NewReader(`{"action":"reject"}`)
	w := authedRequest(t, srv, "POST", "/api/deposits/2", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp DepositResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "rejected", resp.Status)

	assert.NoError(t, mockDB.VerifyExpectations())
}

func TestDepositActionNotPending(t *testing.T) {
	srv, mockDB, err := NewMockTestServer()
	require.NoError(t, err)
	defer mockDB.Close()

	mock := mockDB.Mock
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "deposits" WHERE .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(depositColumns()).
			AddRow(2, int64(42), int64(10_000_000), int64(10_003_177), "completed", "deadbeef", time.Now()))
	mock.ExpectRollback()

	body := strings.NewReader(`{"action":"approve"}`)
	w := authedRequest(t, srv, "POST", "/api/deposits/2", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDepositActionValidation(t *testing.T) {
	srv, mockDB, err := NewMockTestServer()
	require.NoError(t, err)
	defer mockDB.Close()

	t.Run("unknown action", func(t *testing.T) {
		body := strings.NewReader(`{"action":"maybe"}`)
		w := authedRequest(t, srv, "POST", "/api/deposits/2", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := authedRequest(t, srv, "POST", "/api/deposits/2", strings.NewReader("{"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
