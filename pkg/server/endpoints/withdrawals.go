package endpoints

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/model"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/money"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/server"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/store"
)

// WithdrawalResponse is one row of GET /api/withdrawals
type WithdrawalResponse struct {
	ID            uint      `json:"id"`
	UserID        int64     `json:"user_id"`
	Amount        string    `json:"amount"`
	WalletAddress string    `json:"wallet_address"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// RegisterWithdrawalsEndpoints registers withdrawal listing and review
func RegisterWithdrawalsEndpoints(srv *server.Server, api *mux.Router) {
	api.HandleFunc("/withdrawals", handleListWithdrawals(srv)).Methods("GET")
	api.HandleFunc("/withdrawals/{id:[0-9]+}", handleWithdrawalAction(srv)).Methods("POST")
}

func handleListWithdrawals(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requests, err := srv.Withdrawals.List()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to list withdrawals")
			return
		}

		out := make([]WithdrawalResponse, 0, len(requests))
		for _, req := range requests {
			out = append(out, withdrawalToResponse(&req))
		}
		respondWithJSON(w, http.StatusOK, out)
	}
}

func handleWithdrawalAction(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request id")
			return
		}

		var req ActionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		var request *model.Withdrawal
		switch req.Action {
		case "approve":
			request, err = srv.Withdrawals.Approve(uint(id))
		case "reject":
			request, err = srv.Withdrawals.Reject(uint(id))
		default:
			respondWithError(w, http.StatusBadRequest, "action must be approve or reject")
			return
		}

		switch {
		case errors.Is(err, store.ErrWithdrawalNotFound):
			respondWithError(w, http.StatusNotFound, "withdrawal request not found")
		case errors.Is(err, store.ErrNotPending):
			respondWithError(w, http.StatusConflict, "withdrawal request is not pending")
		case err != nil:
			respondWithError(w, http.StatusInternalServerError, "failed to update withdrawal request")
		default:
			respondWithJSON(w, http.StatusOK, withdrawalToResponse(request))
		}
	}
}

func withdrawalToResponse(req *model.Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		ID:            req.ID,
		UserID:        req.UserID,
		Amount:        money.Format(req.Amount),
		WalletAddress: req.WalletAddress,
		Status:        req.Status,
		CreatedAt:     req.CreatedAt,
	}
}
