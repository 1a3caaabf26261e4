package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ProxyConfig configures siteproxy. It is read from the environment, with
// a .env file in the working directory loaded first when present.
type ProxyConfig struct {
	Port               string
	CorsAllowedOrigins []string

	SpotifyClientID     string
	SpotifyClientSecret string
	SpotifyShowID       string
	SpotifyTokenURL     string
	SpotifyAPIBase      string

	MediumFeedURL string

	LLMAPIKey  string
	LLMBaseURL string
	LLMModel   string
	LLMTimeout time.Duration

	RateLimit  int
	RateWindow time.Duration
	AllowMock  bool
}

// LoadProxy loads .env (if any) and reads ProxyConfig from the environment.
func LoadProxy() ProxyConfig {
	_ = godotenv.Load()
	return ProxyFromEnv()
}

// ProxyFromEnv reads ProxyConfig without touching .env.
func ProxyFromEnv() ProxyConfig {
	apiKey := getEnv("LLM_API_KEY", "")
	if apiKey == "" {
		apiKey = getEnv("GROQ_API_KEY", "")
	}

	return ProxyConfig{
		Port:               getEnv("PORT", "8888"),
		CorsAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		SpotifyClientID:     getEnv("SPOTIFY_CLIENT_ID", ""),
		SpotifyClientSecret: getEnv("SPOTIFY_CLIENT_SECRET", ""),
		SpotifyShowID:       getEnv("SPOTIFY_SHOW_ID", ""),
		SpotifyTokenURL:     getEnv("SPOTIFY_TOKEN_URL", "https://accounts.spotify.com/api/token"),
		SpotifyAPIBase:      getEnv("SPOTIFY_API_BASE", "https://api.spotify.com/v1"),

		MediumFeedURL: getEnv("MEDIUM_FEED_URL", "https://jasonroy7dct.medium.com/feed"),

		LLMAPIKey:  apiKey,
		LLMBaseURL: strings.TrimRight(getEnv("LLM_BASE_URL", "https://api.openai.com/v1"), "/"),
		LLMModel:   getEnv("LLM_MODEL", "llama-3.1-8b-instant"),
		LLMTimeout: time.Duration(getEnvInt("LLM_TIMEOUT_MS", 20000)) * time.Millisecond,

		RateLimit:  getEnvInt("RB_RATE_LIMIT", 12),
		RateWindow: 10 * time.Minute,
		AllowMock:  getEnvBool("RB_ALLOW_MOCK"),
	}
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnvBool(key string) bool {
	switch strings.ToLower(getEnv(key, "")) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
