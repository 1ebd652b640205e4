package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"shoprelay/internal/relay"
)

func Orders(t *relay.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]any{"orders": t.Snapshot()})
	}
}

func Order(t *relay.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number := chi.URLParam(r, "number")
		rec, ok := t.Get(number)
		if !ok {
			WriteError(w, http.StatusNotFound, "unknown_order", "order not tracked")
			return
		}
		WriteJSON(w, http.StatusOK, rec)
	}
}
