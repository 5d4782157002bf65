package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/server"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/server/middleware"
)

// LoginRequest is the body of POST /api/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the session token for subsequent requests
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterLoginEndpoint registers the unauthenticated login endpoint
func RegisterLoginEndpoint(srv *server.Server) {
	srv.Router.HandleFunc("/api/login", handleLogin(srv)).Methods("POST")
}

func handleLogin(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		cfg := srv.Config
		if !middleware.CheckCredentials(req.Username, req.Password, cfg.AdminUser, cfg.AdminPassword) {
			respondWithError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		token, err := srv.Sessions.IssueToken(req.Username)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to issue token")
			return
		}

		respondWithJSON(w, http.StatusOK, LoginResponse{Token: token})
	}
}
