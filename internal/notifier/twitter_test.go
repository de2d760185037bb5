package notifier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/daas/portwatch/internal/maneuver"
)

// rewriteTransport sends every request to the test server instead of api.twitter.com
type rewriteTransport struct {
	target *url.URL
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = rt.target.Scheme
	req.URL.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func TestFormatTweet(t *testing.T) {
	tests := []struct {
		name     string
		m        maneuver.Maneuver
		contains []string
		absent   []string
	}{
		{
			name: "complete maneuver",
			m: maneuver.Maneuver{
				Name: "MSC AURORA", Flag: "Panamá", Type: "Atracação", Berth: "TECON 1",
				Date: "18/10/2026", Time: "14:30", Agency: "Wilson Sons",
			},
			contains: []string{"MSC AURORA (Panamá)", "Atracação | Berço TECON 1", "18/10/2026 14:30", "Wilson Sons", "#PortWatch"},
		},
		{
			name:     "maneuver without agency",
			m:        maneuver.Maneuver{Name: "BRAVO", Type: "Saída", Berth: "102"},
			contains: []string{"BRAVO", "#PortWatch"},
			absent:   []string{"🏢"},
		},
		{
			name: "very long name gets truncated",
			m: maneuver.Maneuver{
				Name:   strings.Repeat("NAVIO MUITO LONGO ", 20),
				Agency: strings.Repeat("Agência ", 10),
			},
			contains: []string{"..."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatTweet(tt.m)

			if n := len([]rune(got)); n > tweetLimit {
				t.Errorf("formatTweet() length = %d, want <= %d", n, tweetLimit)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("formatTweet() missing %q in tweet:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.absent {
				if strings.Contains(got, unwanted) {
					t.Errorf("formatTweet() should not contain %q:\n%s", unwanted, got)
				}
			}
		})
	}
}

func TestTwitterCredentials_Validate(t *testing.T) {
	err := TwitterCredentials{APIKey: "k", AccessToken: "t"}.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for partial credentials")
	}
	for _, want := range []string{"TWITTER_API_SECRET", "TWITTER_ACCESS_SECRET"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error %q should mention %s", err, want)
		}
	}

	full := TwitterCredentials{APIKey: "k", APISecret: "s", AccessToken: "t", AccessSecret: "a"}
	if err := full.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}

	if _, err := NewTwitterNotifier(TwitterCredentials{}, 0); err == nil {
		t.Error("NewTwitterNotifier() expected error without credentials")
	}
}

func TestTwitterNotifier_Notify(t *testing.T) {
	var (
		mu       sync.Mutex
		statuses []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/statuses/update.json") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		status := r.URL.Query().Get("status")
		if status == "" {
			r.ParseForm()
			status = r.PostForm.Get("status")
		}

		mu.Lock()
		statuses = append(statuses, status)
		failing := strings.Contains(status, "BRAVO")
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if failing {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"errors":[{"code":187,"message":"Status is a duplicate."}]}`))
			return
		}
		w.Write([]byte(`{"id":1,"text":"ok"}`))
	}))
	defer server.Close()

	target, _ := url.Parse(server.URL)
	n := newTwitterNotifier(&http.Client{Transport: rewriteTransport{target: target}}, 0)

	err := n.Notify(context.Background(), testManeuvers())
	if err == nil || !strings.Contains(err.Error(), "BRAVO") {
		t.Errorf("Notify() error = %v, want failure for BRAVO", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(statuses) != 3 {
		t.Fatalf("posted %d statuses, want 3", len(statuses))
	}
	if !strings.Contains(statuses[2], "CHARLIE") {
		t.Errorf("last status should be CHARLIE, got %q", statuses[2])
	}
}
