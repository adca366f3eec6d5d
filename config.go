package logomotion

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings a Client is built from.
type Config struct {
	// APIKey for the Gemini API. May be empty; the credential gate then asks for one.
	APIKey string

	// ImageModel and VideoModel override the provider defaults when set
	ImageModel Model
	VideoModel Model

	Poll PollConfig

	// SettleDelay is waited after the credential picker returns
	SettleDelay time.Duration

	// BlobTTL is how long materialized videos stay resolvable
	BlobTTL time.Duration

	// WaitOnRateLimit, if true, makes the client wait for a free request slot
	// instead of failing with a RateLimitError.
	WaitOnRateLimit bool

	// MaxRateLimitWait bounds that wait. Zero means no limit.
	MaxRateLimitWait time.Duration
}

// DefaultConfig returns a Config with sensible defaults and no API key.
func DefaultConfig() Config {
	return Config{
		Poll:        DefaultPollConfig(),
		SettleDelay: DefaultSettleDelay,
		BlobTTL:     DefaultBlobTTL,
	}
}

// LoadConfig reads .env and .env.local when present, then the environment.
// Variables that are set but malformed are an error.
func LoadConfig() (Config, error) {
	for _, f := range []string{".env", ".env.local"} {
		_ = godotenv.Load(f)
	}

	c := DefaultConfig()
	c.APIKey = getenv("GEMINI_API_KEY", os.Getenv("API_KEY"))
	c.ImageModel = Model(os.Getenv("LOGOMOTION_IMAGE_MODEL"))
	c.VideoModel = Model(os.Getenv("LOGOMOTION_VIDEO_MODEL"))

	var err error
	if c.Poll.InitialDelay, err = durationEnv("LOGOMOTION_POLL_INITIAL_DELAY", c.Poll.InitialDelay); err != nil {
		return c, err
	}
	if c.Poll.Interval, err = durationEnv("LOGOMOTION_POLL_INTERVAL", c.Poll.Interval); err != nil {
		return c, err
	}
	if c.Poll.Timeout, err = durationEnv("LOGOMOTION_POLL_TIMEOUT", c.Poll.Timeout); err != nil {
		return c, err
	}
	if c.Poll.MaxAttempts, err = intEnv("LOGOMOTION_POLL_MAX_ATTEMPTS", c.Poll.MaxAttempts); err != nil {
		return c, err
	}
	if c.BlobTTL, err = durationEnv("LOGOMOTION_BLOB_TTL", c.BlobTTL); err != nil {
		return c, err
	}
	if c.WaitOnRateLimit, err = boolEnv("LOGOMOTION_WAIT_ON_RATE_LIMIT", c.WaitOnRateLimit); err != nil {
		return c, err
	}
	return c, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func durationEnv(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return def, fmt.Errorf("invalid %s %q: want a non-negative duration such as 5s", k, v)
	}
	return d, nil
}

func intEnv(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def, fmt.Errorf("invalid %s %q: want a non-negative integer", k, v)
	}
	return n, nil
}

func boolEnv(k string, def bool) (bool, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s %q: want true or false", k, v)
	}
	return b, nil
}
