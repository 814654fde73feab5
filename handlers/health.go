package handlers

import "net/http"

// Root returns the liveness banner for the API server.
func Root(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "YM Library API server is running.",
			"version": version,
		})
	}
}

// Health is a minimal liveness probe.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
