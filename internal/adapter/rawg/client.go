package rawg

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"TwitchWarehouse/internal/config"
	"TwitchWarehouse/internal/interfaces"
	"TwitchWarehouse/internal/model"
	"TwitchWarehouse/internal/utils/httpclient"
)

// Client talks to the RAWG games API. One blocking GET per title, no caching,
// no batching.
type Client struct {
	baseURL    string
	key        string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(cfg *config.RAWGConfig, logger *logrus.Logger) interfaces.GameSearcher {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		key:        cfg.Key,
		httpClient: httpclient.New(cfg, logger),
		logger:     logger,
	}
}

// searchResponse keeps result elements raw so the best match can be stored
// verbatim alongside its decoded fields.
type searchResponse struct {
	Count   int               `json:"count"`
	Results []json.RawMessage `json:"results"`
}

// Search queries the games endpoint with the normalized title and returns the
// first result, or nil when nothing matched.
func (c *Client) Search(ctx context.Context, title string) (*model.GameLookup, error) {
	endpoint := fmt.Sprintf("%s/games?search=%s", c.baseURL, NormalizeTitle(title))
	if c.key != "" {
		endpoint += "&key=" + url.QueryEscape(c.key)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request for %q: %w", title, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", title, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search %q: unexpected status %s", title, resp.Status)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode search response for %q: %w", title, err)
	}
	if sr.Count == 0 || len(sr.Results) == 0 {
		return nil, nil
	}

	var game model.GameLookup
	if err := json.Unmarshal(sr.Results[0], &game); err != nil {
		return nil, fmt.Errorf("decode best match for %q: %w", title, err)
	}
	game.Raw = sr.Results[0]
	return &game, nil
}
