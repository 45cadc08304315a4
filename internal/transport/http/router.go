package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter configures HTTP routes, blob serving and the metrics endpoint.
func NewRouter(handler *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/files/resolve", handler.ResolveFile).Methods("POST")
	r.HandleFunc("/api/files/resolve-batch", handler.ResolveBatch).Methods("POST")
	r.HandleFunc("/api/files/placeholder", handler.StampPlaceholder).Methods("POST")
	r.HandleFunc("/api/probe", handler.Probe).Methods("GET")
	r.HandleFunc("/blobs/{id}", handler.ServeBlob).Methods("GET", "HEAD")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")
	return r
}
