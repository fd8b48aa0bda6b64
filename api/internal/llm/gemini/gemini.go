package gemini

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"telegram-nutrition-analyzer/api/internal/llm"
	"telegram-nutrition-analyzer/api/internal/util"
)

// maxImageBytes: верхняя граница фото из Telegram (bot API отдаёт файлы до 20 МБ).
const maxImageBytes = 20 << 20

type Engine struct {
	APIKey string
	Model  string
	httpc  *http.Client
}

func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
		httpc:  &http.Client{Timeout: 60 * time.Second},
	}
}

// WithHTTPClient overrides the client used to download images.
func (e *Engine) WithHTTPClient(c *http.Client) *Engine {
	if c != nil {
		e.httpc = c
	}
	return e
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

// Complete: Gemini не принимает произвольные URL, поэтому картинка скачивается
// и уходит inline-блобом вместе с текстом.
func (e *Engine) Complete(ctx context.Context, in llm.Request) (string, error) {
	if e.APIKey == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}

	parts, err := e.parts(ctx, in)
	if err != nil {
		return "", err
	}

	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	if m == nil {
		return "", fmt.Errorf("gemini: model is nil")
	}
	configure(m, in)

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return "", err
	}
	out := firstText(resp)
	if out == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return out, nil
}

// parts: текст запроса, затем (если есть ссылка) картинка inline-блобом.
func (e *Engine) parts(ctx context.Context, in llm.Request) ([]genai.Part, error) {
	parts := []genai.Part{genai.Text(in.Text)}
	if in.ImageURL == "" {
		return parts, nil
	}
	img, mime, err := e.download(ctx, in.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("gemini: image: %w", err)
	}
	return append(parts, &genai.Blob{MIMEType: mime, Data: img}), nil
}

func configure(m *genai.GenerativeModel, in llm.Request) {
	if in.MaxTokens > 0 {
		m.GenerationConfig = genai.GenerationConfig{MaxOutputTokens: ptrInt32(int32(in.MaxTokens))}
	}
}

func (e *Engine) download(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := e.httpc.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, "", fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, "", err
	}
	if len(b) > maxImageBytes {
		return nil, "", fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}
	return b, util.PickMIME(resp.Header.Get("Content-Type"), b), nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrInt32(v int32) *int32 { return &v }
