package config

const (
	KeyAPIKey    = "visual_layer_api_key"
	KeyAPISecret = "visual_layer_api_secret"
	KeyBaseURL   = "visual_layer_base_url"
	KeyLogLevel  = "log_level"
	KeyTimeout   = "request_timeout"
	KeyRateLimit = "api_rate_limit"
	KeyTransport = "transport"
	KeyHost      = "host"
	KeyPort      = "port"
)
