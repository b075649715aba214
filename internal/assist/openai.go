package assist

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/tidwall/gjson"

	"readquest/internal/model"
)

const shardPrompt = `Generate a single short, profound, and RPG-flavored inspirational quote or "Memory Shard" based on the themes of the book %q. It should sound like ancient wisdom. Max 20 words. Reply with the quote only.`

const coverPrompt = `This is a photo of a book cover or title page. Reply with a JSON object only, no prose: {"title": string, "author": string, "totalPages": number}. Use "" or 0 for anything you cannot read.`

// OpenAIConfig configures the chat completion client.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenAI implements Recognizer and ShardGenerator over chat completions.
type OpenAI struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAI returns nil when no key is configured, so callers fall back.
func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	return &OpenAI{
		client:  openai.NewClient(opts...),
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}
}

func (o *OpenAI) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.timeout)
}

func (o *OpenAI) complete(ctx context.Context, msg openai.ChatCompletionMessageParamUnion) (string, error) {
	ctx, cancel := o.withTimeout(ctx)
	defer cancel()

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{msg},
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", model.ErrCollaboratorUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", model.ErrCollaboratorUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAI) Generate(ctx context.Context, title string) (string, error) {
	return o.complete(ctx, openai.UserMessage(fmt.Sprintf(shardPrompt, title)))
}

func (o *OpenAI) Recognize(ctx context.Context, image []byte, mime string) (Recognition, error) {
	dataURL := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(image)
	text, err := o.complete(ctx, openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(coverPrompt),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: dataURL}),
	}))
	if err != nil {
		return Recognition{}, err
	}
	return ParseRecognition(text)
}

// ParseRecognition reads the JSON object out of a model answer, tolerating
// surrounding prose or code fences.
func ParseRecognition(answer string) (Recognition, error) {
	start := strings.Index(answer, "{")
	end := strings.LastIndex(answer, "}")
	if start < 0 || end < start {
		return Recognition{}, fmt.Errorf("%w: no JSON object in answer", model.ErrCollaboratorUnavailable)
	}
	doc := answer[start : end+1]
	if !gjson.Valid(doc) {
		return Recognition{}, fmt.Errorf("%w: malformed JSON in answer", model.ErrCollaboratorUnavailable)
	}

	res := gjson.GetMany(doc, "title", "author", "totalPages")
	r := Recognition{
		Title:  strings.TrimSpace(res[0].String()),
		Author: strings.TrimSpace(res[1].String()),
	}
	if pages := res[2].Int(); pages > 0 {
		r.TotalPages = int(pages)
	}
	return r, nil
}
