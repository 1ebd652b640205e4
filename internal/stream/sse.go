package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shoprelay/internal/models"
)

func parseSince(r *http.Request) time.Time {
	if id := r.Header.Get("Last-Event-ID"); id != "" {
		if ns, err := strconv.ParseInt(id, 10, 64); err == nil {
			return time.Unix(0, ns)
		}
	}
	if s := r.URL.Query().Get("since"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			return time.Now().Add(-d)
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// SSE streams dispatched reactions. Optional kinds/emojis query params filter
// the stream; Last-Event-ID replays missed events from hub history.
func SSE(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		kinds := map[string]struct{}{}
		emojis := map[string]struct{}{}
		for _, k := range strings.Split(r.URL.Query().Get("kinds"), ",") {
			if k = strings.TrimSpace(k); k != "" {
				kinds[k] = struct{}{}
			}
		}
		for _, e := range strings.Split(r.URL.Query().Get("emojis"), ",") {
			if e = strings.TrimSpace(e); e != "" {
				emojis[e] = struct{}{}
			}
		}
		filter := func(ev models.ReactionEvent) bool {
			if len(kinds) > 0 {
				if _, ok := kinds[ev.Kind]; !ok {
					return false
				}
			}
			if len(emojis) > 0 {
				if _, ok := emojis[ev.Emoji]; !ok {
					return false
				}
			}
			return true
		}

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		sub := hub.Subscribe(ctx, 512)

		if since := parseSince(r); !since.IsZero() {
			hub.ReplaySince(since, sub)
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "stream unsupported", http.StatusInternalServerError)
			return
		}

		ping := time.NewTicker(15 * time.Second)
		defer ping.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ping.C:
				_, _ = fmt.Fprintf(w, ": ping\n\n")
				flusher.Flush()
			case ev := <-sub:
				if !filter(ev) {
					break
				}
				b, _ := json.Marshal(ev)
				_, _ = fmt.Fprintf(w, "id: %d\n", ev.TS.UnixNano())
				_, _ = fmt.Fprintf(w, "event: reaction\n")
				_, _ = fmt.Fprintf(w, "data: %s\n\n", b)
				flusher.Flush()
			}
		}
	}
}
