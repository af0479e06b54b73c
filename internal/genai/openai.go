package genai

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Omkar290703/Ai-IV-Planner/internal/domain"
	"github.com/pkg/errors"
	goopenai "github.com/sashabaranov/go-openai"
)

const providerName = "openai"

var (
	_ Provider = (*OpenAI)(nil)

	_defaultTextModel  = "gpt-4o-mini"
	_defaultImageModel = "dall-e-3"
	_defaultImageSize  = goopenai.CreateImageSize1024x1024
)

// OpenAI implements Provider over any OpenAI-compatible API.
type OpenAI struct {
	client     *goopenai.Client
	textModel  string
	imageModel string
	imageSize  string
}

// NewOpenAI returns a provider. The token is required.
func NewOpenAI(opts ...Option) (*OpenAI, error) {
	option := &options{
		httpClient: http.DefaultClient,
		textModel:  _defaultTextModel,
		imageModel: _defaultImageModel,
		imageSize:  _defaultImageSize,
	}
	for _, opt := range opts {
		opt(option)
	}

	if strings.TrimSpace(option.token) == "" {
		return nil, stderrors.New("missing the AI API key, set it in the AI_API_KEY environment variable")
	}

	config := goopenai.DefaultConfig(option.token)
	if option.baseURL != "" {
		config.BaseURL = option.baseURL
	}
	if option.httpClient != nil {
		config.HTTPClient = option.httpClient
	}

	return &OpenAI{
		client:     goopenai.NewClientWithConfig(config),
		textModel:  option.textModel,
		imageModel: option.imageModel,
		imageSize:  option.imageSize,
	}, nil
}

func (o *OpenAI) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	chatReq := goopenai.ChatCompletionRequest{
		Model: o.textModel,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: req.Prompt},
		},
	}
	if req.Schema != nil {
		name := req.SchemaName
		if name == "" {
			name = "response"
		}
		chatReq.ResponseFormat = &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &goopenai.ChatCompletionResponseFormatJSONSchema{
				Name:   name,
				Schema: req.Schema,
			},
		}
	}

	resp, err := o.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", errors.WithMessage(translateError(err), "create chat completion")
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", domain.EmptyResponseError{What: "text"}
	}
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAI) GenerateImage(ctx context.Context, prompt string) (string, error) {
	imgReq := goopenai.ImageRequest{
		Prompt: prompt,
		Model:  o.imageModel,
		N:      1,
		Size:   o.imageSize,
	}
	// gpt-image models always answer in base64 and reject the field.
	if strings.HasPrefix(o.imageModel, "dall-e") {
		imgReq.ResponseFormat = goopenai.CreateImageResponseFormatB64JSON
	}

	resp, err := o.client.CreateImage(ctx, imgReq)
	if err != nil {
		return "", errors.WithMessage(translateError(err), "create image")
	}
	for _, d := range resp.Data {
		if d.B64JSON != "" {
			return "data:image/png;base64," + d.B64JSON, nil
		}
		if d.URL != "" {
			return d.URL, nil
		}
	}
	return "", nil
}

// translateError maps SDK errors onto the domain generation errors.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *goopenai.APIError
	if stderrors.As(err, &apiErr) {
		code := codeString(apiErr.Code)
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests ||
			code == "insufficient_quota" || apiErr.Type == "insufficient_quota" ||
			strings.EqualFold(code, domain.StatusResourceExhausted) ||
			strings.EqualFold(apiErr.HTTPStatus, domain.StatusResourceExhausted) {
			return domain.QuotaExceededError{Provider: providerName, Msg: apiErr.Message, Err: err}
		}
		return domain.ProviderError{
			StatusCode: apiErr.HTTPStatusCode,
			Status:     apiErr.HTTPStatus,
			Code:       code,
			Msg:        apiErr.Message,
			Err:        err,
		}
	}

	var reqErr *goopenai.RequestError
	if stderrors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode == http.StatusTooManyRequests {
			return domain.QuotaExceededError{Provider: providerName, Err: err}
		}
		return domain.ProviderError{StatusCode: reqErr.HTTPStatusCode, Status: reqErr.HTTPStatus, Err: err}
	}

	if domain.IsQuotaExceeded(err) {
		return domain.QuotaExceededError{Provider: providerName, Msg: err.Error(), Err: err}
	}
	return domain.ProviderError{Err: err}
}

func codeString(code any) string {
	switch v := code.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprint(v)
	}
}
