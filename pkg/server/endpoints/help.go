package endpoints

import (
	"bytes"
	_ "embed"
	"net/http"
	"sync"

	"github.com/yuin/goldmark"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/server"
)

//go:embed help.md
var helpMarkdown []byte

var (
	helpOnce sync.Once
	helpHTML []byte
)

// RegisterHelpEndpoint serves the operator guide, rendered from the
// embedded markdown on first request.
func RegisterHelpEndpoint(srv *server.Server) {
	srv.Router.HandleFunc("/admin/help", handleHelp).Methods("GET")
}

func handleHelp(w http.ResponseWriter, r *http.Request) {
	helpOnce.Do(func() {
		var buf bytes.Buffer
		if err := goldmark.Convert(helpMarkdown, &buf); err != nil {
			helpHTML = []byte("<p>help unavailable</p>")
			return
		}
		helpHTML = buf.Bytes()
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(helpHTML)
}
