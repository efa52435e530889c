package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"hivewatch/guidance"
)

// handleGuidance returns the safety dos and don'ts for a sighting context.
func (a *App) handleGuidance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, _ := strconv.ParseFloat(q.Get("lat"), 64)
	long, _ := strconv.ParseFloat(q.Get("long"), 64)

	g := guidance.For(q.Get("locationType"), q.Get("userRole"), lat, long)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(g)
}
