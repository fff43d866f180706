package web

import (
	"net/http"

	"github.com/gorilla/mux"
	logging "github.com/op/go-logging"

	"github.com/rg-atte/rs-cache/cache"
	"github.com/rg-atte/rs-cache/common"
	"github.com/rg-atte/rs-cache/config"
)

var (
	log = logging.MustGetLogger("cacheserver")
)

// Server serves cache contents over HTTP: archive payloads for the
// definition tooling and the encoded checksum table for clients
// validating their cached revisions.
type Server struct {
	bind  string
	cache *cache.Cache
}

// NewServer creates and configures a new Server instance
// on top of an opened cache.
func NewServer(c *cache.Cache, cfg *config.ServerCfg) *Server {
	return &Server{
		bind:  cfg.Bind,
		cache: c,
	}
}

// Start creates an http server with all necessary handlers, then
// launches ListenAndServe in background and returns the server.
func (s *Server) Start() (*http.Server, error) {
	log.Info("creating HTTP router")
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/info", common.JSONResponse(s.cacheInfo)).Methods("GET")
	r.HandleFunc("/api/v1/checksum", common.BinaryResponse(s.checksumTable)).Methods("GET")
	r.HandleFunc("/api/v1/archive/{index}/{archive}", common.BinaryResponse(s.archiveData)).Methods("GET")

	srv := &http.Server{
		Addr:    s.bind,
		Handler: r,
	}

	go func() {
		log.Infof("server is starting at %s", s.bind)
		err := srv.ListenAndServe()
		if err != nil {
			return
		}
	}()

	return srv, nil
}
