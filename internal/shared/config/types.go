package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// StoreConfig selects the record store backend once at startup.
// "file" persists the snapshot to a local path, "github" keeps it as a
// version-controlled blob in a repository reachable over HTTPS.
type StoreConfig struct {
	Backend string            `mapstructure:"backend"`
	File    FileStoreConfig   `mapstructure:"file"`
	GitHub  GitHubStoreConfig `mapstructure:"github"`
}

type FileStoreConfig struct {
	Path string `mapstructure:"path"`
}

type GitHubStoreConfig struct {
	Owner  string `mapstructure:"owner"`
	Repo   string `mapstructure:"repo"`
	Path   string `mapstructure:"path"`
	Branch string `mapstructure:"branch"`
	Token  string `mapstructure:"token"`
}

type StripeConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	Enabled       bool   `mapstructure:"enabled"`
}

type AdminConfig struct {
	Token string `mapstructure:"token"`
}

type ClosuresConfig struct {
	Path string `mapstructure:"path"`
}
