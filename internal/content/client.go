package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jasonroy7dct/site/internal/logging"
)

const maxBodySize = 8 << 20

// Client reads content from the proxy's function endpoints.
type Client struct {
	base   string
	client *http.Client
}

// NewClient returns a client for base, e.g.
// http://localhost:8888/.netlify/functions.
func NewClient(base string, timeout time.Duration) *Client {
	return &Client{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

// FetchPosts returns the Medium posts, or nil on any failure.
func (c *Client) FetchPosts(ctx context.Context) []Post {
	var body struct {
		Posts []Post `json:"posts"`
	}
	if err := c.get(ctx, "/medium", &body); err != nil {
		logging.Warn("medium posts unavailable", "error", err)
		return nil
	}
	for i := range body.Posts {
		if body.Posts[i].Source == "" {
			body.Posts[i].Source = SourceMedium
		}
	}
	return body.Posts
}

// FetchEpisodes returns the podcast episodes, or nil on any failure.
func (c *Client) FetchEpisodes(ctx context.Context) []Episode {
	var body struct {
		Episodes []Episode `json:"episodes"`
	}
	if err := c.get(ctx, "/episodes", &body); err != nil {
		logging.Warn("episodes unavailable", "error", err)
		return nil
	}
	return body.Episodes
}

func (c *Client) get(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: HTTP %d", path, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	return nil
}

// Load fetches posts and episodes concurrently and merges the posts with
// local ones. It never fails; missing sources are just empty.
func Load(ctx context.Context, c *Client, local []Post) *Catalog {
	var (
		medium   []Post
		episodes []Episode
		g        errgroup.Group
	)
	g.Go(func() error {
		medium = c.FetchPosts(ctx)
		return nil
	})
	g.Go(func() error {
		episodes = c.FetchEpisodes(ctx)
		return nil
	})
	_ = g.Wait()

	logging.Info("content loaded", "medium", len(medium), "local", len(local), "episodes", len(episodes))
	return NewCatalog(Merge(local, medium), episodes)
}
