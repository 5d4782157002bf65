package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/money"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/server"
)

// transactionPageSize caps how many ledger entries one request returns.
const transactionPageSize = 50

// TransactionResponse is one ledger entry of GET /api/transactions/{user_id}
type TransactionResponse struct {
	ID        uint      `json:"id"`
	UserID    int64     `json:"user_id"`
	Amount    string    `json:"amount"`
	Type      string    `json:"type"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterTransactionsEndpoints registers the per-user ledger endpoint
func RegisterTransactionsEndpoints(srv *server.Server, api *mux.Router) {
	api.HandleFunc("/transactions/{user_id:[0-9]+}", handleUserTransactions(srv)).Methods("GET")
}

func handleUserTransactions(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tgID, err := strconv.ParseInt(mux.Vars(r)["user_id"], 10, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		entries, err := srv.Ledger.UserTransactions(tgID, transactionPageSize)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to list transactions")
			return
		}

		out := make([]TransactionResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, TransactionResponse{
				ID:        e.ID,
				UserID:    e.UserID,
				Amount:    money.Format(e.Amount),
				Type:      e.Type,
				Note:      e.Note,
				CreatedAt: e.CreatedAt,
			})
		}
		respondWithJSON(w, http.StatusOK, out)
	}
}
