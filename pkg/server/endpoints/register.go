package endpoints

import (
	"github.com/avagarcia28867-droid/baobaolebot/pkg/server"
)

// RegisterAll registers all admin endpoints on the server. Everything
// under /api except login requires a session token.
func RegisterAll(srv *server.Server) {
	RegisterStatusEndpoints(srv)
	RegisterHelpEndpoint(srv)
	RegisterLoginEndpoint(srv)

	api := srv.Router.PathPrefix("/api").Subrouter()
	api.Use(srv.Sessions.Middleware)

	RegisterUsersEndpoints(srv, api)
	RegisterDepositsEndpoints(srv, api)
	RegisterWithdrawalsEndpoints(srv, api)
	RegisterTransactionsEndpoints(srv, api)
}
