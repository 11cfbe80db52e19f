package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"cryptoalerts/internal/checker"
)

// newServer builds the HTTP server exposing the on-demand check trigger.
func newServer(port string, chk *checker.Checker) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/check", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		summary, err := chk.RunCycle(r.Context())
		if err != nil {
			slog.Error("Check cycle failed", "error", err)
			http.Error(w, "Check cycle failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(summary)
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		// Cycles can block on upstream retries; give writes headroom.
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}
}
