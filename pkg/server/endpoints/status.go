package endpoints

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/server"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/store"
)

// StatusResponse is the JSON form of GET /
type StatusResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
}

// RegisterStatusEndpoints registers the unauthenticated status page
func RegisterStatusEndpoints(srv *server.Server) {
	srv.Router.HandleFunc("/", handleStatus(srv.Health)).Methods("GET")
}

func handleStatus(health store.HealthStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := os.Getenv("APP_VERSION")
		if version == "" {
			version = "0.1.0"
		}

		dbStatus := "ok"
		status := "ok"
		if err := health.Ping(); err != nil {
			dbStatus = "unreachable"
			status = "degraded"
		}

		// Check if JSON is requested via Accept header or format query param
		accept := r.Header.Get("Accept")
		format := r.URL.Query().Get("format")
		if format == "json" || strings.Contains(accept, "application/json") {
			w.Header().Set("Content-Type", "application/json")
			if status != "ok" {
				w.WriteHeader(http.StatusServiceUnavailable)
			}
			_ = json.NewEncoder(w).Encode(StatusResponse{
				Status:   status,
				Version:  version,
				Database: dbStatus,
			})
			return
		}

		html := `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width">
    <title>Admin Status</title>
  </head>
  <body>
    <main>
      <h1>Status</h1>
      <p>The admin server is running.</p>
      <dl>
        <dt>Version:</dt>
        <dd>` + version + `</dd>
        <dt>Database:</dt>
        <dd>` + dbStatus + `</dd>
      </dl>
      <p>See <a href="/admin/help">the operator guide</a> for the API.</p>
    </main>
  </body>
</html>
`

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
	}
}
