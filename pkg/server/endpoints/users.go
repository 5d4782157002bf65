package endpoints

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/model"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/money"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/server"
)

// UserResponse is one row of GET /api/users
type UserResponse struct {
	ID            uint      `json:"id"`
	TgID          int64     `json:"tg_id"`
	Username      string    `json:"username"`
	Balance       string    `json:"balance"`
	WalletAddress string    `json:"wallet_address"`
	CreatedAt     time.Time `json:"created_at"`
}

// RegisterUsersEndpoints registers the user listing endpoint
func RegisterUsersEndpoints(srv *server.Server, api *mux.Router) {
	api.HandleFunc("/users", handleListUsers(srv)).Methods("GET")
}

func handleListUsers(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := srv.Ledger.ListUsers()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to list users")
			return
		}
		respondWithJSON(w, http.StatusOK, usersToResponse(users))
	}
}

func usersToResponse(users []model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, UserResponse{
			ID:            u.ID,
			TgID:          u.TgID,
			Username:      u.Username,
			Balance:       money.Format(u.Balance),
			WalletAddress: u.WalletAddress,
			CreatedAt:     u.CreatedAt,
		})
	}
	return out
}
