package nflverse

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fortuna/qbvalue/internal/tabular"
)

// Default snapshot locations. The stats file is the pre-aggregated weekly
// player file, which saves re-deriving the lines from play-by-play.
const (
	PlayerStatsURL = "https://github.com/nflverse/nflverse-data/releases/download/player_stats/player_stats.csv.gz"
	PlayersURL     = "https://github.com/nflverse/nflverse-data/releases/download/players/players.csv"
	GamesURL       = "https://github.com/nflverse/nfldata/raw/master/data/games.csv"

	userAgent = "qbvalue/1.0"
)

// Client fetches the three nflverse CSV snapshots.
type Client struct {
	httpClient *http.Client

	statsURL   string
	playersURL string
	gamesURL   string
}

// NewClient creates a client against the public nflverse release URLs.
func NewClient() *Client {
	return NewWithURLs(PlayerStatsURL, PlayersURL, GamesURL)
}

// NewWithURLs creates a client with custom resource locations (used by tests).
func NewWithURLs(statsURL, playersURL, gamesURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		statsURL:   statsURL,
		playersURL: playersURL,
		gamesURL:   gamesURL,
	}
}

// fetchTable downloads url and decodes it as CSV. Resources ending in .gz
// are transparently decompressed.
func (c *Client) fetchTable(ctx context.Context, url string) (*tabular.Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("download %s: %s (%s)", url, resp.Status, strings.TrimSpace(string(b)))
	}

	var body io.Reader = resp.Body
	if strings.HasSuffix(strings.ToLower(strings.SplitN(url, "?", 2)[0]), ".gz") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gunzip %s: %w", url, err)
		}
		defer gz.Close()
		body = gz
	}

	t, err := tabular.Read(body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	return t, nil
}
