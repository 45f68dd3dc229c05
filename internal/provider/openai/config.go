package openai

// Config contains OpenAI provider configuration. Timeouts are in seconds:
// ConnectTimeout bounds dialing and the TLS handshake, RequestTimeout bounds
// the whole exchange for non-streaming calls and the wait for response
// headers when streaming.
type Config struct {
	APIKey         string `env:"OPENAI_API_KEY"`
	BaseURL        string `env:"OPENAI_BASE_URL"         envDefault:"https://api.openai.com/v1"`
	ConnectTimeout int    `env:"OPENAI_CONNECT_TIMEOUT"  envDefault:"10"`
	RequestTimeout int    `env:"OPENAI_REQUEST_TIMEOUT"  envDefault:"30"`
}
