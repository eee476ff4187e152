package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flagBindings maps config keys to the command-line flags that override them.
var flagBindings = map[string]string{
	KeyBaseURL:   "base-url",
	KeyLogLevel:  "log-level",
	KeyTimeout:   "timeout",
	KeyTransport: "transport",
	KeyHost:      "host",
	KeyPort:      "port",
}

func Init(root *cobra.Command) {
	viper.AutomaticEnv()
	_ = godotenv.Load()
	if root != nil {
		for key, flag := range flagBindings {
			if f := root.PersistentFlags().Lookup(flag); f != nil {
				_ = viper.BindPFlag(key, f)
			}
		}
	}
	setDefaults()
}

func setDefaults() {
	viper.SetDefault(KeyBaseURL, "https://app.visual-layer.com")
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyTimeout, 30*time.Second)
	viper.SetDefault(KeyRateLimit, 100)
	viper.SetDefault(KeyTransport, "stdio")
	viper.SetDefault(KeyHost, "0.0.0.0")
	viper.SetDefault(KeyPort, 8000)
}

// Validate checks that the credentials required for every outbound call are
// present. It is called once at startup so a misconfigured process fails
// before serving instead of on the first tool call.
func Validate() error {
	if APIKey() == "" {
		return fmt.Errorf("VISUAL_LAYER_API_KEY is not set")
	}
	if APISecret() == "" {
		return fmt.Errorf("VISUAL_LAYER_API_SECRET is not set")
	}
	return nil
}

func APIKey() string                 { return viper.GetString(KeyAPIKey) }
func APISecret() string              { return viper.GetString(KeyAPISecret) }
func BaseURL() string                { return viper.GetString(KeyBaseURL) }
func LogLevel() string               { return viper.GetString(KeyLogLevel) }
func RequestTimeout() time.Duration  { return viper.GetDuration(KeyTimeout) }
func APIRateLimit() float64          { return viper.GetFloat64(KeyRateLimit) }
func Transport() string              { return viper.GetString(KeyTransport) }
func Host() string                   { return viper.GetString(KeyHost) }
func Port() int                      { return viper.GetInt(KeyPort) }
