package proxy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/jasonroy7dct/site/internal/content"
	"github.com/jasonroy7dct/site/internal/logging"
)

const (
	defaultEpisodeImage = "https://i.scdn.co/image/ab67656300005f1fdd889d98f1e5429940d4da14"
	episodePageSize     = 20
)

type spotifyEpisode struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	ReleaseDate   string `json:"release_date"`
	DurationMS    int64  `json:"duration_ms"`
	EpisodeNumber int    `json:"episode_number"`
	Images        []struct {
		URL string `json:"url"`
	} `json:"images"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

func (s *Server) handleEpisodes(w http.ResponseWriter, r *http.Request) {
	if s.cfg.SpotifyClientID == "" || s.cfg.SpotifyClientSecret == "" || s.cfg.SpotifyShowID == "" {
		respondError(w, http.StatusInternalServerError, "Server misconfigured: missing SPOTIFY_* env vars")
		return
	}

	token, err := s.spotifyToken(r.Context())
	if err != nil {
		logging.Error("spotify token failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to get Spotify token")
		return
	}

	items, err := s.spotifyEpisodes(r.Context(), token)
	if err != nil {
		logging.Error("spotify episodes failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch episodes from Spotify")
		return
	}

	episodes := make([]content.Episode, 0, len(items))
	for _, it := range items {
		episodes = append(episodes, mapEpisode(it))
	}
	respondJSON(w, http.StatusOK, map[string]any{"episodes": episodes})
}

// spotifyToken runs the client credentials flow.
func (s *Server) spotifyToken(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.SpotifyTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(s.cfg.SpotifyClientID, s.cfg.SpotifyClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := s.doJSON(req, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("token response has no access_token")
	}
	return out.AccessToken, nil
}

func (s *Server) spotifyEpisodes(ctx context.Context, token string) ([]spotifyEpisode, error) {
	u := fmt.Sprintf("%s/shows/%s/episodes?market=US&limit=%d",
		strings.TrimRight(s.cfg.SpotifyAPIBase, "/"), url.PathEscape(s.cfg.SpotifyShowID), episodePageSize)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var out struct {
		Items []spotifyEpisode `json:"items"`
	}
	if err := s.doJSON(req, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (s *Server) doJSON(req *http.Request, v any) error {
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s: status %d: %s", req.URL.Host, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func mapEpisode(it spotifyEpisode) content.Episode {
	ep := content.Episode{
		ID:           it.ID,
		Title:        it.Name,
		Date:         it.ReleaseDate,
		Duration:     fmt.Sprintf("%d min", int64(math.Round(float64(it.DurationMS)/60000))),
		Description:  it.Description,
		ImageURL:     defaultEpisodeImage,
		SpotifyLink:  it.ExternalURLs.Spotify,
		SpotifyEmbed: "https://open.spotify.com/embed/episode/" + it.ID + "?utm_source=generator",
	}
	if it.EpisodeNumber != 0 {
		n := it.EpisodeNumber
		ep.Number = &n
	}
	if len(it.Images) > 0 && it.Images[0].URL != "" {
		ep.ImageURL = it.Images[0].URL
	}
	if ep.SpotifyLink == "" {
		ep.SpotifyLink = "https://open.spotify.com/episode/" + it.ID
	}
	return ep
}
