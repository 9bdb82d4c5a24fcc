package sender

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/slack-go/slack"
)

func TestSlackPost(t *testing.T) {
	for _, tt := range []struct {
		name     string
		code     int
		response string
		wantErr  bool
		wantBug  bool
	}{
		{
			name:     "Posted",
			response: `{"ok": true, "channel": "C0123", "ts": "1737460800.000100"}`,
		},
		{
			name:     "Channel not found",
			response: `{"ok": false, "error": "channel_not_found"}`,
			wantErr:  true,
		},
		{
			name:     "Service unavailable",
			code:     http.StatusServiceUnavailable,
			response: `<html>down</html>`,
			wantErr:  true,
		},
		{
			name:     "Rate limited",
			code:     http.StatusTooManyRequests,
			response: `{"ok": false, "error": "ratelimited"}`,
			wantErr:  true,
		},
		{
			name:     "Garbage body",
			response: `not json`,
			wantBug:  true,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			var gotText string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/chat.postMessage" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if err := r.ParseForm(); err != nil {
					t.Errorf("error parsing form: %s", err)
					return
				}
				if r.PostForm.Get("channel") != "C0123" {
					t.Errorf("unexpected channel %q", r.PostForm.Get("channel"))
				}
				gotText = r.PostForm.Get("text")
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "30")
				if tt.code != 0 {
					w.WriteHeader(tt.code)
				}
				w.Write([]byte(tt.response))
			}))
			defer server.Close()

			s := NewSlack("C0123", "xoxb-test", slack.OptionAPIURL(server.URL+"/"))
			err := s.Post(context.Background(), msgText)

			if tt.wantErr {
				if !errors.Is(err, ErrDelivery) {
					t.Errorf("expected ErrDelivery, got %v", err)
				}
				return
			}
			if tt.wantBug {
				if err == nil || errors.Is(err, ErrDelivery) {
					t.Errorf("expected a non-delivery error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if gotText != msgText {
				t.Errorf("want %q, got %q", msgText, gotText)
			}
		})
	}
}
