package notifier

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"

	"github.com/daas/portwatch/internal/maneuver"
)

// tweetLimit is Twitter's maximum status length
const tweetLimit = 280

// TwitterCredentials holds the OAuth1 keys of the posting account
type TwitterCredentials struct {
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
}

// Validate reports which credentials are missing.
func (c TwitterCredentials) Validate() error {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, "TWITTER_API_KEY")
	}
	if c.APISecret == "" {
		missing = append(missing, "TWITTER_API_SECRET")
	}
	if c.AccessToken == "" {
		missing = append(missing, "TWITTER_ACCESS_TOKEN")
	}
	if c.AccessSecret == "" {
		missing = append(missing, "TWITTER_ACCESS_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required Twitter credentials: %s", strings.Join(missing, ", "))
	}
	return nil
}

// TwitterNotifier posts alerts as status updates
type TwitterNotifier struct {
	client *twitter.Client
	delay  time.Duration
}

// NewTwitterNotifier creates a Twitter notifier authenticated with creds
func NewTwitterNotifier(creds TwitterCredentials, delay time.Duration) (*TwitterNotifier, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	config := oauth1.NewConfig(creds.APIKey, creds.APISecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessSecret)
	httpClient := config.Client(oauth1.NoContext, token)

	return newTwitterNotifier(httpClient, delay), nil
}

func newTwitterNotifier(httpClient *http.Client, delay time.Duration) *TwitterNotifier {
	return &TwitterNotifier{client: twitter.NewClient(httpClient), delay: delay}
}

// Name implements Notifier
func (n *TwitterNotifier) Name() string {
	return "twitter"
}

// Notify posts one tweet per maneuver
func (n *TwitterNotifier) Notify(ctx context.Context, maneuvers []maneuver.Maneuver) error {
	return deliver(ctx, n.Name(), maneuvers, n.delay, func(_ context.Context, m maneuver.Maneuver) error {
		_, _, err := n.client.Statuses.Update(formatTweet(m), nil)
		return err
	})
}

// formatTweet formats a maneuver as a plain text tweet
func formatTweet(m maneuver.Maneuver) string {
	tweet := "🚢 Nova manobra detectada!\n\n"
	tweet += fmt.Sprintf("🛳️ %s (%s)\n", m.Name, m.Flag)
	tweet += fmt.Sprintf("⚓ %s | Berço %s\n", m.Type, m.Berth)
	tweet += fmt.Sprintf("📅 %s %s\n", m.Date, m.Time)

	if m.Agency != "" {
		tweet += fmt.Sprintf("🏢 %s\n", m.Agency)
	}

	tweet += "\n#PortWatch"

	// Twitter counts characters, not bytes
	if runes := []rune(tweet); len(runes) > tweetLimit {
		tweet = string(runes[:tweetLimit-3]) + "..."
	}

	return tweet
}
