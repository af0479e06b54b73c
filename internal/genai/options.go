package genai

import "net/http"

type options struct {
	token      string
	baseURL    string
	textModel  string
	imageModel string
	imageSize  string
	httpClient *http.Client
}

// Option configures the OpenAI-compatible client.
type Option func(*options)

// WithToken sets the API key.
func WithToken(token string) Option {
	return func(opts *options) {
		opts.token = token
	}
}

// WithBaseURL points the client at any OpenAI-compatible endpoint, for
// example https://generativelanguage.googleapis.com/v1beta/openai.
func WithBaseURL(baseURL string) Option {
	return func(opts *options) {
		opts.baseURL = baseURL
	}
}

// WithTextModel sets the model used for itinerary, company and budget calls.
func WithTextModel(model string) Option {
	return func(opts *options) {
		opts.textModel = model
	}
}

// WithImageModel sets the model used for image generation.
func WithImageModel(model string) Option {
	return func(opts *options) {
		opts.imageModel = model
	}
}

// WithImageSize overrides the generated image size, e.g. "1024x1024".
func WithImageSize(size string) Option {
	return func(opts *options) {
		opts.imageSize = size
	}
}

// WithHTTPClient replaces the HTTP client, mainly to set timeouts.
func WithHTTPClient(c *http.Client) Option {
	return func(opts *options) {
		opts.httpClient = c
	}
}
