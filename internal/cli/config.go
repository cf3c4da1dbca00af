package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds the resolved CLI settings for one invocation
type Config struct {
	ServerURL string
	Token     string
	TokenFile string
	Output    string
	Verbose   bool
}

// DefaultConfig resolves defaults from the environment. Flags override
// these after parsing.
func DefaultConfig() *Config {
	return &Config{
		ServerURL: envOr("MZGAME_SERVER", "http://localhost:8080"),
		Token:     os.Getenv("MZGAME_TOKEN"),
		TokenFile: envOr("MZGAME_TOKEN_FILE", defaultTokenFile()),
		Output:    "text",
	}
}

// LoadToken reads the saved session token unless one was already given
// via flag or environment. A missing token file is not an error.
func (c *Config) LoadToken() error {
	if c.Token != "" {
		return nil
	}

	data, err := os.ReadFile(c.TokenFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	c.Token = strings.TrimSpace(string(data))
	return nil
}

// SaveToken persists the session token for later invocations
func (c *Config) SaveToken(token string) error {
	c.Token = token

	if err := os.MkdirAll(filepath.Dir(c.TokenFile), 0700); err != nil {
		return err
	}
	return os.WriteFile(c.TokenFile, []byte(token), 0600)
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mzgame/token"
	}
	return filepath.Join(home, ".mzgame", "token")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
