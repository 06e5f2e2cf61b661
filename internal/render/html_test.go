package render

import (
	"strings"
	"testing"

	"wtPoster/internal/poster"
)

func TestRenderHTMLClassic(t *testing.T) {
	doc := poster.DefaultDocument()
	doc.Images = testImages(2)

	html, err := RenderHTML(doc, "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.Contains(html, `id="`+PosterRootID+`"`) {
		t.Error("poster root id missing")
	}
	if !strings.Contains(html, doc.Title) {
		t.Error("title missing")
	}
	for _, s := range doc.Sections {
		if !strings.Contains(html, s.Title) {
			t.Errorf("section %q missing", s.Title)
		}
	}
	if strings.Contains(html, "<script>") {
		t.Error("static render must not carry edit script")
	}
}

func TestRenderHTMLPreviewCarriesEditScript(t *testing.T) {
	doc := poster.DefaultDocument()

	html, err := RenderHTML(doc, "session-1")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "<script>") {
		t.Error("preview render missing edit script")
	}
	if !strings.Contains(html, "contenteditable") {
		t.Error("preview render missing editable regions")
	}
}

func TestRenderHTMLMagazineForcesWhiteTitle(t *testing.T) {
	doc := poster.DefaultDocument()
	doc.Layout = poster.LayoutMagazine
	doc.Images = testImages(3)

	style := doc.Styles[poster.RoleTitle]
	style.Color = "#123456"
	doc.Styles[poster.RoleTitle] = style

	html, err := RenderHTML(doc, "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	// 名牌卡标题的内联样式以字号+强制覆盖色开头，配置色不得出现在页面任何位置。
	if !strings.Contains(html, "font-size: 65px; color: "+magazineTitleColor) {
		t.Error("magazine title style missing forced color")
	}
	if strings.Contains(html, "#123456") {
		t.Error("configured title color leaked into magazine render")
	}
}

func TestRenderHTMLBgZoom(t *testing.T) {
	doc := poster.DefaultDocument()
	doc.BgImageURL = "https://example.invalid/bg.jpg"
	doc.BgBlur = 10

	html, err := RenderHTML(doc, "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	// 1 + 10/400 = 1.0250
	if !strings.Contains(html, "1.0250") {
		t.Error("bg zoom compensation missing")
	}
}

func TestRenderHTMLAllLayouts(t *testing.T) {
	for _, layout := range []poster.Layout{poster.LayoutClassic, poster.LayoutMagazine, poster.LayoutMinimal} {
		doc := poster.DefaultDocument()
		doc.Layout = layout
		doc.Images = testImages(4)

		html, err := RenderHTML(doc, "")
		if err != nil {
			t.Fatalf("render %q: %v", layout, err)
		}
		if !strings.Contains(html, `id="`+PosterRootID+`"`) {
			t.Errorf("layout %q missing poster root", layout)
		}
	}
}

func TestRenderHTMLUnknownLayout(t *testing.T) {
	doc := poster.DefaultDocument()
	doc.Layout = poster.Layout("grid")

	if _, err := RenderHTML(doc, ""); err == nil {
		t.Fatal("expected error for unknown layout")
	}
}

func TestStyleCSS(t *testing.T) {
	op := 0.5
	css := string(styleCSS(poster.TextStyle{
		Size:       18,
		Color:      "#18181b",
		Opacity:    &op,
		Bold:       true,
		Underline:  true,
		FontFamily: "'Noto Sans SC', sans-serif",
	}, ""))

	for _, want := range []string{
		"font-size: 18px",
		"color: #18181b",
		"opacity: 0.5",
		"font-weight: 900",
		"text-decoration: underline",
		"font-family: 'Noto Sans SC', sans-serif",
	} {
		if !strings.Contains(css, want) {
			t.Errorf("css missing %q: %s", want, css)
		}
	}

	forced := string(styleCSS(poster.TextStyle{Size: 10, Color: "#000000"}, "#ffffff"))
	if !strings.Contains(forced, "color: #ffffff") {
		t.Errorf("forced color not applied: %s", forced)
	}
}
