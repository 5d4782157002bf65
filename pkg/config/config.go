package config

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/baobao/config"
	ConfigFileName    = "baobao.yml"
)

// Config holds all bot, monitor and admin server settings.
type Config struct {
	// BotToken is the Telegram bot API token.
	BotToken string `yaml:"bot_token"`

	// AdminChatID receives operational notifications (0 disables them).
	AdminChatID int64 `yaml:"admin_chat_id"`

	// DepositWallet is the TRC20 address users transfer deposits to.
	DepositWallet string `yaml:"deposit_wallet"`

	// USDTContract is the TRC20 contract address of the token.
	USDTContract string `yaml:"usdt_contract"`

	// TronAPIURL is the TronGrid base URL.
	TronAPIURL string `yaml:"tron_api_url"`

	// TronAPIKey is an optional TronGrid API key.
	TronAPIKey string `yaml:"tron_api_key"`

	// AdminUser and AdminPassword guard the admin login endpoint.
	AdminUser     string `yaml:"admin_user"`
	AdminPassword string `yaml:"admin_password"`

	// JWTSecret signs admin session tokens.
	JWTSecret string `yaml:"jwt_secret"`

	// TokenTTLMinutes is the admin session token lifetime.
	TokenTTLMinutes int `yaml:"token_ttl_minutes"`

	// TrialBonus is the micro-unit sign-up bonus for new users.
	TrialBonus int64 `yaml:"trial_bonus"`

	// MonitorIntervalSeconds is the sweep interval of the monitor.
	MonitorIntervalSeconds int `yaml:"monitor_interval_seconds"`

	// DepositExpiryMinutes is how long a deposit order stays payable.
	DepositExpiryMinutes int `yaml:"deposit_expiry_minutes"`

	// PacketRefundHours is how long a packet stays grabbable.
	PacketRefundHours int `yaml:"packet_refund_hours"`

	// configFilePath is the path to the config file
	configFilePath string
}

// Global singleton config
var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *Config {
	return &Config{
		USDTContract:           "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t",
		TronAPIURL:             "https://api.trongrid.io",
		AdminUser:              "admin",
		TokenTTLMinutes:        480,
		TrialBonus:             500_000, // 0.5 USDT
		MonitorIntervalSeconds: 10,
		DepositExpiryMinutes:   15,
		PacketRefundHours:      12,
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	configPath := os.Getenv("BAOBAO_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, err
		}
	}

	applyEnv(config)
	return config, nil
}

func applyEnv(c *Config) {
	if v := os.Getenv("BOT_TOKEN"); v != "" {
		c.BotToken = v
	}
	if v := os.Getenv("ADMIN_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.AdminChatID = id
		}
	}
	if v := os.Getenv("DEPOSIT_WALLET_ADDRESS"); v != "" {
		c.DepositWallet = v
	}
	if v := os.Getenv("USDT_CONTRACT_ADDRESS"); v != "" {
		c.USDTContract = v
	}
	if v := os.Getenv("TRON_API_URL"); v != "" {
		c.TronAPIURL = v
	}
	if v := os.Getenv("TRON_API_KEY"); v != "" {
		c.TronAPIKey = v
	}
	if v := os.Getenv("ADMIN_USER"); v != "" {
		c.AdminUser = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		c.AdminPassword = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
}

// ConfigFilePath returns the path the config was (or would be) read from.
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// TokenTTL returns the admin session token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// MonitorInterval returns the monitor sweep interval.
func (c *Config) MonitorInterval() time.Duration {
	return time.Duration(c.MonitorIntervalSeconds) * time.Second
}

// DepositExpiry returns how long deposit orders stay payable.
func (c *Config) DepositExpiry() time.Duration {
	return time.Duration(c.DepositExpiryMinutes) * time.Minute
}

// PacketRefundAfter returns how long packets stay grabbable.
func (c *Config) PacketRefundAfter() time.Duration {
	return time.Duration(c.PacketRefundHours) * time.Hour
}

// WatchEnabled reports whether deposit watching is configured. A wallet
// address shorter than a TRC20 base58 address means watching is off.
func (c *Config) WatchEnabled() bool {
	return len(c.DepositWallet) >= 30
}
