package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"wtPoster/internal/poster"
)

// PosterRootID 是渲染结果中海报根节点的元素 ID，
// 导出流水线按它定位截图目标。
const PosterRootID = "poster-root"

// 复古相册模板的名牌卡对标题强制使用的覆盖色（刻意设计，非样式缺陷）。
const magazineTitleColor = "#ffffff"

// PageData 是页面模板的视图模型，只读地派生自文档快照。
type PageData struct {
	Doc       *poster.Document
	SessionID string

	// BgZoom 是背景模糊的补偿缩放，保证模糊边缘不露出画布边界。
	BgZoom string

	RoleCSS          map[string]template.CSS
	MagazineTitleCSS template.CSS
	TitleColor       string

	ClassicColumns []([]poster.Image)
	MagazineItems  []MagazineItem
	MinimalBlocks  []MinimalBlock

	HasImages  bool
	ImageCount int
}

var pageTemplate = template.Must(
	template.New("poster").Funcs(template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"safeCSS": func(s string) template.CSS {
			return template.CSS(s)
		},
		"safeURL": func(s string) template.URL {
			return template.URL(s)
		},
		"transformCSS": func(t PhotoTransform) template.CSS {
			return template.CSS(fmt.Sprintf(
				"transform: rotate(%.2fdeg) translate(%.1fpx, %.1fpx);",
				t.Rotate, t.TranslateX, t.TranslateY,
			))
		},
	}).Parse(PageTemplateString),
)

// RenderHTML 把文档快照渲染成完整的预览/打印页面。
// sessionID 非空时页面携带编辑脚本（失焦提交）；为空则输出纯静态页，
// 供导出流水线在无头浏览器里加载。
func RenderHTML(doc *poster.Document, sessionID string) (string, error) {
	data := PageData{
		Doc:        doc,
		SessionID:  sessionID,
		BgZoom:     strconv.FormatFloat(1+float64(doc.BgBlur)/400, 'f', 4, 64),
		RoleCSS:    map[string]template.CSS{},
		HasImages:  len(doc.Images) > 0,
		ImageCount: len(doc.Images),
	}

	for _, role := range poster.Roles {
		data.RoleCSS[string(role)] = styleCSS(doc.Styles[role], "")
	}
	data.MagazineTitleCSS = styleCSS(doc.Styles[poster.RoleTitle], magazineTitleColor)
	data.TitleColor = doc.Styles[poster.RoleTitle].Color

	switch doc.Layout {
	case poster.LayoutClassic:
		data.ClassicColumns = ClassicColumns(doc.Images)
	case poster.LayoutMagazine:
		data.MagazineItems = MagazineItems(doc.Images)
	case poster.LayoutMinimal:
		data.MinimalBlocks = MinimalBlocks(doc.Images, doc.Sections)
	default:
		return "", fmt.Errorf("unknown layout %q", doc.Layout)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute poster template: %w", err)
	}
	return buf.String(), nil
}

// styleCSS 把一个角色样式展开为内联 CSS。
// opacity 缺省按 1 处理；粗细/斜体/下划线均为二值开关。
func styleCSS(s poster.TextStyle, forceColor string) template.CSS {
	color := s.Color
	if forceColor != "" {
		color = forceColor
	}

	op := 1.0
	if s.Opacity != nil {
		op = *s.Opacity
	}

	weight := "normal"
	if s.Bold {
		weight = "900"
	}
	fontStyle := "normal"
	if s.Italic {
		fontStyle = "italic"
	}
	decoration := "none"
	if s.Underline {
		decoration = "underline"
	}
	family := s.FontFamily
	if family == "" {
		family = "inherit"
	}

	return template.CSS(fmt.Sprintf(
		"font-size: %dpx; color: %s; opacity: %s; font-weight: %s; font-style: %s; text-decoration: %s; font-family: %s; line-height: 1.2;",
		s.Size, color, strconv.FormatFloat(op, 'g', -1, 64), weight, fontStyle, decoration, family,
	))
}
