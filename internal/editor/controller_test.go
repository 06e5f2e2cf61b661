package editor

import (
	"encoding/json"
	"testing"
	"time"

	"wtPoster/internal/poster"
)

func newTestController() *Controller {
	return NewController()
}

func imageIDs(doc *poster.Document) []string {
	ids := make([]string, 0, len(doc.Images))
	for _, img := range doc.Images {
		ids = append(ids, img.ID)
	}
	return ids
}

// stylesEqual 按值比较样式：Opacity 是指针，快照深拷贝每次都会
// 重新分配，直接比较结构体会退化成指针同一性比较。
func stylesEqual(a, b poster.TextStyle) bool {
	if a.Opacity != nil || b.Opacity != nil {
		if a.Opacity == nil || b.Opacity == nil || *a.Opacity != *b.Opacity {
			return false
		}
	}
	a.Opacity = nil
	b.Opacity = nil
	return a == b
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSetFieldPreservesOthers(t *testing.T) {
	c := newTestController()
	before := c.Snapshot()

	if err := c.Set("title", json.RawMessage(`"新标题"`)); err != nil {
		t.Fatalf("set title: %v", err)
	}

	after := c.Snapshot()
	if after.Title != "新标题" {
		t.Fatalf("title not updated: %q", after.Title)
	}
	if after.Intro != before.Intro {
		t.Errorf("intro changed: %q -> %q", before.Intro, after.Intro)
	}
	if after.Watermark != before.Watermark {
		t.Errorf("watermark changed")
	}
	if len(after.Sections) != len(before.Sections) {
		t.Errorf("sections changed")
	}
	if after.BgBlur != before.BgBlur {
		t.Errorf("bgBlur changed")
	}
}

func TestSetRejectsUnknownField(t *testing.T) {
	c := newTestController()
	if err := c.Set("layout", json.RawMessage(`"magazine"`)); err == nil {
		t.Fatal("expected error for protected field")
	}
	if err := c.Set("nonsense", json.RawMessage(`1`)); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestSetClampsBgBlur(t *testing.T) {
	c := newTestController()

	if err := c.Set("bgBlur", json.RawMessage(`250`)); err != nil {
		t.Fatalf("set bgBlur: %v", err)
	}
	if got := c.Snapshot().BgBlur; got != 100 {
		t.Errorf("bgBlur = %d, want 100", got)
	}

	if err := c.Set("bgBlur", json.RawMessage(`-5`)); err != nil {
		t.Fatalf("set bgBlur: %v", err)
	}
	if got := c.Snapshot().BgBlur; got != 0 {
		t.Errorf("bgBlur = %d, want 0", got)
	}
}

func TestChangeLayoutResetsOnlySizes(t *testing.T) {
	c := newTestController()

	if err := c.UpdateStyle(poster.RoleTitle, "color", json.RawMessage(`"#ff0000"`)); err != nil {
		t.Fatalf("update color: %v", err)
	}
	if err := c.UpdateStyle(poster.RoleTitle, "italic", json.RawMessage(`true`)); err != nil {
		t.Fatalf("update italic: %v", err)
	}

	if err := c.ChangeLayout(poster.LayoutMinimal); err != nil {
		t.Fatalf("change layout: %v", err)
	}

	doc := c.Snapshot()
	if doc.Layout != poster.LayoutMinimal {
		t.Fatalf("layout = %q", doc.Layout)
	}
	title := doc.Styles[poster.RoleTitle]
	if title.Size != poster.LayoutDefaults[poster.LayoutMinimal][poster.RoleTitle] {
		t.Errorf("title size = %d, want minimal default", title.Size)
	}
	if title.Color != "#ff0000" {
		t.Errorf("title color reset: %q", title.Color)
	}
	if !title.Italic {
		t.Errorf("title italic reset")
	}
	if !title.Bold {
		t.Errorf("title bold reset")
	}
}

func TestChangeLayoutIdempotentByValue(t *testing.T) {
	c := newTestController()

	// 先手动改大字号，再切回当前模板：默认字号必须重新生效。
	if err := c.UpdateStyle(poster.RoleTitle, "size", json.RawMessage(`120`)); err != nil {
		t.Fatalf("update size: %v", err)
	}
	if err := c.ChangeLayout(poster.LayoutClassic); err != nil {
		t.Fatalf("change layout: %v", err)
	}

	first := c.Snapshot()
	if err := c.ChangeLayout(poster.LayoutClassic); err != nil {
		t.Fatalf("change layout again: %v", err)
	}
	second := c.Snapshot()

	for _, role := range poster.Roles {
		if !stylesEqual(first.Styles[role], second.Styles[role]) {
			t.Errorf("style %q differs after repeated change", role)
		}
	}
	if first.Styles[poster.RoleTitle].Size != poster.LayoutDefaults[poster.LayoutClassic][poster.RoleTitle] {
		t.Errorf("title size = %d, want classic default", first.Styles[poster.RoleTitle].Size)
	}
}

func TestChangeLayoutRejectsUnknown(t *testing.T) {
	c := newTestController()
	if err := c.ChangeLayout(poster.Layout("grid")); err == nil {
		t.Fatal("expected error for unknown layout")
	}
}

func TestUpdateStyleValidation(t *testing.T) {
	c := newTestController()

	if err := c.UpdateStyle(poster.Role("headline"), "size", json.RawMessage(`20`)); err == nil {
		t.Error("expected error for unknown role")
	}
	if err := c.UpdateStyle(poster.RoleTitle, "size", json.RawMessage(`0`)); err == nil {
		t.Error("expected error for non-positive size")
	}
	if err := c.UpdateStyle(poster.RoleTitle, "shadow", json.RawMessage(`true`)); err == nil {
		t.Error("expected error for unknown style field")
	}
}

func TestApplyGlobalColor(t *testing.T) {
	c := newTestController()
	c.ApplyGlobalColor("#123456")

	doc := c.Snapshot()
	for _, role := range poster.Roles {
		if doc.Styles[role].Color != "#123456" {
			t.Errorf("role %q color = %q", role, doc.Styles[role].Color)
		}
	}
	// 颜色之外的属性不受影响。
	if !doc.Styles[poster.RoleTitle].Bold {
		t.Errorf("title bold lost")
	}
}

func TestSectionRoundTrip(t *testing.T) {
	c := newTestController()
	before := len(c.Snapshot().Sections)

	section := c.AddSection()
	if section.ID == "" {
		t.Fatal("section id empty")
	}
	if section.Title != poster.PlaceholderSectionTitle || section.Content != poster.PlaceholderSectionContent {
		t.Errorf("placeholder not applied: %+v", section)
	}
	if got := len(c.Snapshot().Sections); got != before+1 {
		t.Fatalf("sections = %d, want %d", got, before+1)
	}

	if err := c.UpdateSection(section.ID, "title", "新标题"); err != nil {
		t.Fatalf("update section: %v", err)
	}
	doc := c.Snapshot()
	if doc.Sections[len(doc.Sections)-1].Title != "新标题" {
		t.Errorf("section title not updated")
	}

	c.RemoveSection(section.ID)
	if got := len(c.Snapshot().Sections); got != before {
		t.Fatalf("sections = %d after remove, want %d", got, before)
	}

	// 未命中删除/更新静默忽略。
	c.RemoveSection("missing")
	if err := c.UpdateSection("missing", "title", "x"); err != nil {
		t.Fatalf("update missing section: %v", err)
	}
	if got := len(c.Snapshot().Sections); got != before {
		t.Fatalf("sections changed by missing-id ops")
	}
}

func seedImages(c *Controller, ids ...string) {
	for _, id := range ids {
		c.AppendImage(poster.Image{ID: id, URL: "data:image/png;base64,xx", Type: poster.ImageSquare})
	}
}

func TestReorderImagesMovesBeforeTarget(t *testing.T) {
	c := newTestController()
	seedImages(c, "a", "b", "c", "d")

	c.ReorderImages("d", "b")
	if got := imageIDs(c.Snapshot()); !sameIDs(got, []string{"a", "d", "b", "c"}) {
		t.Fatalf("order = %v", got)
	}

	// 逆操作恢复原序。
	c.ReorderImages("d", "c")
	if got := imageIDs(c.Snapshot()); !sameIDs(got, []string{"a", "b", "d", "c"}) {
		t.Fatalf("order after inverse = %v", got)
	}
}

func TestReorderImagesNoOps(t *testing.T) {
	c := newTestController()
	seedImages(c, "a", "b", "c")
	want := []string{"a", "b", "c"}

	c.ReorderImages("a", "a")
	if got := imageIDs(c.Snapshot()); !sameIDs(got, want) {
		t.Fatalf("same-id reorder mutated order: %v", got)
	}

	c.ReorderImages("a", "missing")
	c.ReorderImages("missing", "b")
	if got := imageIDs(c.Snapshot()); !sameIDs(got, want) {
		t.Fatalf("missing-id reorder mutated order: %v", got)
	}
}

func TestClearImagesTwoStep(t *testing.T) {
	c := newTestController()
	seedImages(c, "a", "b")

	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if cleared := c.ClearImages(); cleared {
		t.Fatal("first call must only arm")
	}
	if got := len(c.Snapshot().Images); got != 2 {
		t.Fatalf("images cleared on arm: %d", got)
	}

	now = now.Add(2 * time.Second)
	if cleared := c.ClearImages(); !cleared {
		t.Fatal("second call within window must clear")
	}
	if got := len(c.Snapshot().Images); got != 0 {
		t.Fatalf("images = %d after clear", got)
	}
}

func TestClearImagesRearmsAfterExpiry(t *testing.T) {
	c := newTestController()
	seedImages(c, "a")

	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if cleared := c.ClearImages(); cleared {
		t.Fatal("first call must only arm")
	}

	// 窗口过期后的调用重新进入待确认，而不是清空。
	now = now.Add(ClearConfirmWindow + time.Second)
	if cleared := c.ClearImages(); cleared {
		t.Fatal("expired confirm must re-arm, not clear")
	}
	if got := len(c.Snapshot().Images); got != 1 {
		t.Fatalf("images = %d, want 1", got)
	}

	now = now.Add(time.Second)
	if cleared := c.ClearImages(); !cleared {
		t.Fatal("confirm after re-arm must clear")
	}
}

func TestReplaceImageURLKeepsID(t *testing.T) {
	c := newTestController()
	seedImages(c, "a", "b", "c")

	if ok := c.ReplaceImageURL("b", "data:image/png;base64,new"); !ok {
		t.Fatal("replace reported miss")
	}

	doc := c.Snapshot()
	if got := imageIDs(doc); !sameIDs(got, []string{"a", "b", "c"}) {
		t.Fatalf("order changed: %v", got)
	}
	if doc.Images[1].URL != "data:image/png;base64,new" {
		t.Errorf("url not replaced: %q", doc.Images[1].URL)
	}

	if ok := c.ReplaceImageURL("missing", "x"); ok {
		t.Error("replace of missing id reported success")
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	c := newTestController()
	seedImages(c, "a")

	snap := c.Snapshot()
	snap.Title = "mutated"
	snap.Images[0].URL = "mutated"
	snap.Sections[0].Title = "mutated"
	style := snap.Styles[poster.RoleTitle]
	style.Color = "mutated"
	snap.Styles[poster.RoleTitle] = style

	doc := c.Snapshot()
	if doc.Title == "mutated" || doc.Images[0].URL == "mutated" ||
		doc.Sections[0].Title == "mutated" || doc.Styles[poster.RoleTitle].Color == "mutated" {
		t.Fatal("snapshot shares state with controller document")
	}
}
