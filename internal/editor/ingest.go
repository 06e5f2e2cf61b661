package editor

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"

	"wtPoster/internal/poster"
)

// EncodeImage 把上传的原始字节转换为可直接渲染的图片条目：
// 校验确实是图片、按宽高比分类、编码为 data URI 并分配新 ID。
func EncodeImage(data []byte) (poster.Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return poster.Image{}, fmt.Errorf("decode image: %w", err)
	}

	return poster.Image{
		ID:   uuid.NewString(),
		URL:  EncodeDataURI(data, "image/"+format),
		Type: classify(cfg.Width, cfg.Height),
	}, nil
}

// EncodeDataURI 把字节编码为 base64 data URI。
func EncodeDataURI(data []byte, mimeType string) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// StripDataURI 去掉 data URI 前缀，返回纯 base64 正文。
// 传入的若已是纯 base64 则原样返回。
func StripDataURI(s string) string {
	if idx := strings.Index(s, ","); idx >= 0 && strings.HasPrefix(s, "data:") {
		return s[idx+1:]
	}
	return s
}

// 宽高比阈值：明显横向算 wide，明显纵向算 vertical，其余算 square。
func classify(width, height int) poster.ImageType {
	if height <= 0 {
		return poster.ImageSquare
	}
	ratio := float64(width) / float64(height)
	switch {
	case ratio >= 1.25:
		return poster.ImageWide
	case ratio <= 0.8:
		return poster.ImageVertical
	default:
		return poster.ImageSquare
	}
}
