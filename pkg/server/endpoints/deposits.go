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

// ActionRequest is the body of the deposit and withdrawal review
// endpoints: {"action": "approve"} or {"action": "reject"}.
type ActionRequest struct {
	Action string `json:"action"`
}

// DepositResponse is one row of GET /api/deposits
type DepositResponse struct {
	ID            uint      `json:"id"`
	UserID        int64     `json:"user_id"`
	Amount        string    `json:"amount"`
	PayableAmount string    `json:"payable_amount"`
	Status        string    `json:"status"`
	TxHash        *string   `json:"tx_hash"`
	CreatedAt     time.Time `json:"created_at"`
}

// RegisterDepositsEndpoints registers deposit listing and review
func RegisterDepositsEndpoints(srv *server.Server, api *mux.Router) {
	api.HandleFunc("/deposits", handleListDeposits(srv)).Methods("GET")
	api.HandleFunc("/deposits/{id:[0-9]+}", handleDepositAction(srv)).Methods("POST")
}

func handleListDeposits(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := srv.Deposits.List()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to list deposits")
			return
		}

		out := make([]DepositResponse, 0, len(orders))
		for _, o := range orders {
			out = append(out, depositToResponse(&o))
		}
		respondWithJSON(w, http.StatusOK, out)
	}
}

func handleDepositAction(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid order id")
			return
		}

		var req ActionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		var order *model.Deposit
		switch req.Action {
		case "approve":
			order, err = srv.Deposits.Approve(uint(id))
		case "reject":
			order, err = srv.Deposits.Reject(uint(id))
		default:
			respondWithError(w, http.StatusBadRequest, "action must be approve or reject")
			return
		}

		switch {
		case errors.Is(err, store.ErrDepositNotFound):
			respondWithError(w, http.StatusNotFound, "deposit order not found")
		case errors.Is(err, store.ErrNotPending):
			respondWithError(w, http.StatusConflict, "deposit order is not pending")
		case err != nil:
			respondWithError(w, http.StatusInternalServerError, "failed to update deposit order")
		default:
			respondWithJSON(w, http.StatusOK, depositToResponse(order))
		}
	}
}

func depositToResponse(o *model.Deposit) DepositResponse {
	return DepositResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		Amount:        money.Format(o.Amount),
		PayableAmount: money.FormatExact(o.RandomAmount),
		Status:        o.Status,
		TxHash:        o.TxHash,
		CreatedAt:     o.CreatedAt,
	}
}
