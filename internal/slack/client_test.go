package slack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsOrderMessage(t *testing.T) {
	assert.True(t, isOrderMessage("ST.order #1042 from Jane", "1042"))
	assert.True(t, isOrderMessage("st.order 1042", "1042"))
	assert.False(t, isOrderMessage("ST.order #1043", "1042"))
	assert.False(t, isOrderMessage("order #1042", "1042"))
	assert.False(t, isOrderMessage("", "1042"))
}

func TestFindOrderMessageSearchesChannels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/conversations.history", r.URL.Path)
		require.Equal(t, "Bearer xoxb-test", r.Header.Get("Authorization"))

		switch r.URL.Query().Get("channel") {
		case "C1":
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "messages": []Message{}})
		case "C2":
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "messages": []Message{
				{TS: "2.0", Text: "noise"},
				{TS: "1.0", Text: "ST.order #1042"},
			}})
		default:
			t.Fatalf("unexpected channel %q", r.URL.Query().Get("channel"))
		}
	}))
	defer srv.Close()

	c := New("xoxb-test", []string{"C1", "C2"}, time.Second).WithBaseURL(srv.URL)
	ref, err := c.FindOrderMessage(context.Background(), "1042")
	require.NoError(t, err)
	assert.Equal(t, MessageRef{Channel: "C2", TS: "1.0"}, ref)
}

func TestFindOrderMessageNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "messages": []Message{}})
	}))
	defer srv.Close()

	c := New("tok", []string{"C1"}, time.Second).WithBaseURL(srv.URL)
	_, err := c.FindOrderMessage(context.Background(), "1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindOrderMessageSkipsFailedChannel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("channel") == "C1" {
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "channel_not_found"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "messages": []Message{{TS: "3.0", Text: "st.order #7"}}})
	}))
	defer srv.Close()

	c := New("tok", []string{"C1", "C2"}, time.Second).WithBaseURL(srv.URL)
	ref, err := c.FindOrderMessage(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "C2", ref.Channel)
}

func TestAddReaction(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/reactions.add", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	defer srv.Close()

	c := New("tok", nil, time.Second).WithBaseURL(srv.URL)
	require.NoError(t, c.AddReaction(context.Background(), MessageRef{Channel: "C1", TS: "1.0"}, "rocket"))
	assert.Equal(t, map[string]string{"channel": "C1", "timestamp": "1.0", "name": "rocket"}, got)
}

func TestAddReactionAlreadyReacted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "already_reacted"})
	}))
	defer srv.Close()

	c := New("tok", nil, time.Second).WithBaseURL(srv.URL)
	assert.NoError(t, c.AddReaction(context.Background(), MessageRef{Channel: "C1", TS: "1.0"}, "x"))
}

func TestAddReactionAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "invalid_auth"})
	}))
	defer srv.Close()

	c := New("tok", nil, time.Second).WithBaseURL(srv.URL)
	err := c.AddReaction(context.Background(), MessageRef{Channel: "C1", TS: "1.0"}, "x")
	assert.ErrorContains(t, err, "invalid_auth")
}
