// Package config holds runtime configuration and the static prompt text.
//
// Configuration is read once at startup from ADMIT_* environment variables
// and an optional config.yaml in the state directory; code defaults cover
// everything else.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the resolved runtime configuration.
type Config struct {
	// StoragePath is the durable conversation slot; empty disables persistence.
	StoragePath string
	// KnowledgeRoot is the directory the reader tools are confined to.
	KnowledgeRoot string
	// LogPath receives diagnostic JSONL; empty disables the sink.
	LogPath string
	// Model overrides the provider default when non-empty.
	Model string
	// TokenBudget caps the estimated context window per request; <= 0 disables trimming.
	TokenBudget int
}

// Load resolves configuration from defaults, the optional config file, and
// ADMIT_* environment variables, strongest last.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ADMIT")
	v.AutomaticEnv()

	state := stateDir()
	v.SetDefault("storage_path", filepath.Join(state, "chat-messages.json"))
	v.SetDefault("knowledge_root", "knowledge")
	v.SetDefault("log_path", filepath.Join(state, "diag.log"))
	v.SetDefault("model", "")
	v.SetDefault("token_budget", 16000)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(state)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read %s: %w", state, err)
		}
	}

	return Config{
		StoragePath:   v.GetString("storage_path"),
		KnowledgeRoot: v.GetString("knowledge_root"),
		LogPath:       v.GetString("log_path"),
		Model:         v.GetString("model"),
		TokenBudget:   v.GetInt("token_budget"),
	}, nil
}

// stateDir returns the per-user state directory, falling back to a relative
// directory when no home is resolvable.
func stateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".admitchat"
	}
	return filepath.Join(home, ".admitchat")
}
