package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"wtPoster/internal/editor"
)

// ErrNoImage 表示生成服务正常应答，但响应里没有任何图片分片。
// 调用方应把它报告为"无结果"，而不是系统错误。
var ErrNoImage = errors.New("no image in generation response")

// 固定的指令后缀，保持与前端约定一致的编辑语气。
const editPromptFormat = "Please edit this image based on the following instruction: %s. " +
	"Maintain the high-quality professional photography look of this COS (Cosplay) shot. " +
	"Return the edited image."

// Client 封装 Gemini 图片编辑调用。
// 限流器约束整个进程对生成服务的请求速率。
type Client struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
}

// NewClient 初始化 Gemini 客户端。ratePerMin 为每分钟允许的请求数。
func NewClient(ctx context.Context, apiKey, model string, ratePerMin float64) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}

	if ratePerMin <= 0 {
		ratePerMin = 6
	}

	return &Client{
		client:  client,
		model:   model,
		limiter: rate.NewLimiter(rate.Limit(ratePerMin/60), 2),
	}, nil
}

// EditImage 把一张图片和自然语言指令发给生成服务，返回编辑结果的 data URI。
// 发送前剥离 data URI 前缀；响应按分片逐个扫描，不假设首个分片就是图片。
// 任何失败都不触碰文档：无图片分片返回 ErrNoImage，传输错误原样包装上抛。
func (c *Client) EditImage(ctx context.Context, imageDataURI, instruction string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(editor.StripDataURI(imageDataURI))
	if err != nil {
		return "", fmt.Errorf("decode source image: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("wait for rate limiter: %w", err)
	}

	parts := []*genai.Part{
		genai.NewPartFromBytes(raw, "image/png"),
		genai.NewPartFromText(fmt.Sprintf(editPromptFormat, instruction)),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return "data:image/png;base64," + base64.StdEncoding.EncodeToString(part.InlineData.Data), nil
			}
		}
	}

	return "", ErrNoImage
}
