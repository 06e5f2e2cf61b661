package editor

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"wtPoster/internal/poster"
)

// ClearConfirmWindow 是清空图片二次确认的有效时长。
// 首次调用进入待确认状态，窗口内再次调用才真正清空；
// 窗口过期后的下一次调用会重新进入待确认状态，而不是执行清空。
const ClearConfirmWindow = 3 * time.Second

// Controller 独占持有一份海报文档，所有变更都经由它串行执行。
// 浏览器端的单线程事件模型在这里对应互斥锁下的顺序化：
// 互不相关的字段变更只读写各自的切片，按到达顺序提交即可安全交换。
type Controller struct {
	mu  sync.Mutex
	doc *poster.Document

	now          func() time.Time
	clearArmed   bool
	clearArmedAt time.Time
}

// NewController 以种子文档构造控制器。
func NewController() *Controller {
	return &Controller{
		doc: poster.DefaultDocument(),
		now: time.Now,
	}
}

// Snapshot 返回文档的深拷贝，供渲染与导出只读使用。
func (c *Controller) Snapshot() *poster.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Clone()
}

// Set 替换单个顶层字段，其余字段保持原样。
// 值以 JSON 原文传入，按字段类型解码；未知或受保护字段返回错误。
func (c *Controller) Set(field string, value json.RawMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch field {
	case "title":
		return decodeInto(value, &c.doc.Title)
	case "intro":
		return decodeInto(value, &c.doc.Intro)
	case "watermark":
		return decodeInto(value, &c.doc.Watermark)
	case "footerLocation":
		return decodeInto(value, &c.doc.FooterLocation)
	case "footerYear":
		return decodeInto(value, &c.doc.FooterYear)
	case "footerSuffix":
		return decodeInto(value, &c.doc.FooterSuffix)
	case "footerSlogan":
		return decodeInto(value, &c.doc.FooterSlogan)
	case "showFooter":
		return decodeInto(value, &c.doc.ShowFooter)
	case "bgImageUrl":
		return decodeInto(value, &c.doc.BgImageURL)
	case "qrCodeUrl":
		return decodeInto(value, &c.doc.QrCodeURL)
	case "bgBlur":
		var blur int
		if err := decodeInto(value, &blur); err != nil {
			return err
		}
		c.doc.BgBlur = clampBlur(blur)
		return nil
	case "watermarkPos":
		return decodeInto(value, &c.doc.WatermarkPos)
	default:
		return fmt.Errorf("field %q is not settable", field)
	}
}

func decodeInto(raw json.RawMessage, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode value: %w", err)
	}
	return nil
}

func clampBlur(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ChangeLayout 切换排版模板，并按目标模板的默认字号表重置字号。
// 只有 size 被覆盖，颜色/粗细/斜体/下划线/字体全部保留；
// 目标与当前模板相同也会重新套用默认值（按值幂等，不做跳过）。
func (c *Controller) ChangeLayout(layout poster.Layout) error {
	if !layout.Valid() {
		return fmt.Errorf("unknown layout %q", layout)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.doc.Layout = layout
	for role, size := range poster.LayoutDefaults[layout] {
		style, ok := c.doc.Styles[role]
		if !ok {
			continue
		}
		style.Size = size
		c.doc.Styles[role] = style
	}
	return nil
}

// UpdateStyle 替换某个角色样式中的单个字段。
// 角色集合封闭，未知角色属于调用方编程错误，直接报错。
func (c *Controller) UpdateStyle(role poster.Role, field string, value json.RawMessage) error {
	if !poster.ValidRole(role) {
		return fmt.Errorf("unknown style role %q", role)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	style := c.doc.Styles[role]
	switch field {
	case "size":
		var size int
		if err := decodeInto(value, &size); err != nil {
			return err
		}
		if size <= 0 {
			return fmt.Errorf("style size must be positive, got %d", size)
		}
		style.Size = size
	case "color":
		if err := decodeInto(value, &style.Color); err != nil {
			return err
		}
	case "opacity":
		var op float64
		if err := decodeInto(value, &op); err != nil {
			return err
		}
		style.Opacity = &op
	case "bold":
		if err := decodeInto(value, &style.Bold); err != nil {
			return err
		}
	case "italic":
		if err := decodeInto(value, &style.Italic); err != nil {
			return err
		}
	case "underline":
		if err := decodeInto(value, &style.Underline); err != nil {
			return err
		}
	case "fontFamily":
		if err := decodeInto(value, &style.FontFamily); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown style field %q", field)
	}

	c.doc.Styles[role] = style
	return nil
}

// ApplyGlobalColor 把全部六个角色的颜色同时设为同一个值。
func (c *Controller) ApplyGlobalColor(color string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for role, style := range c.doc.Styles {
		style.Color = color
		c.doc.Styles[role] = style
	}
}

// AddSection 在末尾追加一个带占位文案的新版块，返回生成的版块。
func (c *Controller) AddSection() poster.ContentSection {
	c.mu.Lock()
	defer c.mu.Unlock()

	section := poster.ContentSection{
		ID:      uuid.NewString(),
		Title:   poster.PlaceholderSectionTitle,
		Content: poster.PlaceholderSectionContent,
	}
	c.doc.Sections = append(c.doc.Sections, section)
	return section
}

// RemoveSection 删除指定 ID 的版块，未命中静默忽略。
func (c *Controller) RemoveSection(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, s := range c.doc.Sections {
		if s.ID == id {
			c.doc.Sections = append(c.doc.Sections[:i], c.doc.Sections[i+1:]...)
			return
		}
	}
}

// UpdateSection 替换指定版块的标题或正文，未命中静默忽略。
func (c *Controller) UpdateSection(id, field, value string) error {
	if field != "title" && field != "content" {
		return fmt.Errorf("unknown section field %q", field)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, s := range c.doc.Sections {
		if s.ID != id {
			continue
		}
		if field == "title" {
			s.Title = value
		} else {
			s.Content = value
		}
		c.doc.Sections[i] = s
		return nil
	}
	return nil
}

// AppendImage 追加一张已经完成编码的图片。
func (c *Controller) AppendImage(img poster.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc.Images = append(c.doc.Images, img)
}

// RemoveImage 删除指定 ID 的图片，未命中静默忽略。
func (c *Controller) RemoveImage(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, img := range c.doc.Images {
		if img.ID == id {
			c.doc.Images = append(c.doc.Images[:i], c.doc.Images[i+1:]...)
			return
		}
	}
}

// ReorderImages 把 draggedID 移动到 targetID 当前所在的位置。
// 语义与拖拽一致：先移除被拖拽元素，再插入到目标元素此刻的下标，
// 即被拖拽图片最终落在原先位于该位置的图片之前。
// 任一 ID 缺失或两者相同时不做任何变更。
func (c *Controller) ReorderImages(draggedID, targetID string) {
	if draggedID == targetID {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	draggedIdx := -1
	targetFound := false
	for i, img := range c.doc.Images {
		if img.ID == draggedID {
			draggedIdx = i
		}
		if img.ID == targetID {
			targetFound = true
		}
	}
	if draggedIdx < 0 || !targetFound {
		return
	}

	dragged := c.doc.Images[draggedIdx]
	rest := append(c.doc.Images[:draggedIdx:draggedIdx], c.doc.Images[draggedIdx+1:]...)

	insertAt := len(rest)
	for i, img := range rest {
		if img.ID == targetID {
			insertAt = i
			break
		}
	}

	images := make([]poster.Image, 0, len(rest)+1)
	images = append(images, rest[:insertAt]...)
	images = append(images, dragged)
	images = append(images, rest[insertAt:]...)
	c.doc.Images = images
}

// ClearImages 实现两段式清空：首次调用进入待确认状态并返回 false，
// 窗口内第二次调用清空图片并返回 true。待确认状态只存在于控制器内部，
// 不属于文档本身。
func (c *Controller) ClearImages() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.clearArmed && now.Sub(c.clearArmedAt) <= ClearConfirmWindow {
		c.doc.Images = []poster.Image{}
		c.clearArmed = false
		return true
	}

	c.clearArmed = true
	c.clearArmedAt = now
	return false
}

// SetBackgroundImage 把背景图替换为给定的 data URI。
func (c *Controller) SetBackgroundImage(dataURI string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc.BgImageURL = dataURI
}

// SetQrImage 把二维码图片替换为给定的 data URI。
func (c *Controller) SetQrImage(dataURI string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc.QrCodeURL = dataURI
}

// ReplaceImageURL 保持 ID 不变，替换指定图片的 URL（AI 编辑回写路径）。
// 返回是否找到了目标图片。
func (c *Controller) ReplaceImageURL(id, url string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, img := range c.doc.Images {
		if img.ID == id {
			img.URL = url
			c.doc.Images[i] = img
			return true
		}
	}
	return false
}

// ImageByID 返回指定图片的拷贝。
func (c *Controller) ImageByID(id string) (poster.Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, img := range c.doc.Images {
		if img.ID == id {
			return img, true
		}
	}
	return poster.Image{}, false
}
