package rest

import "net/http"

// NewRouter registers every REST endpoint on a new ServeMux.
func NewRouter(wordsH *WordsHandler, healthH *HealthHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /words", wordsH.List)
	mux.HandleFunc("GET /words/random", wordsH.Random)
	mux.HandleFunc("GET /words/{id}", wordsH.Get)
	mux.HandleFunc("GET /catalog/info", wordsH.Info)

	mux.HandleFunc("GET /live", healthH.Live)
	mux.HandleFunc("GET /ready", healthH.Ready)
	mux.HandleFunc("GET /health", healthH.Health)

	return mux
}
