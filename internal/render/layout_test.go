package render

import (
	"strconv"
	"testing"

	"wtPoster/internal/poster"
)

func testImages(n int) []poster.Image {
	images := make([]poster.Image, n)
	for i := range images {
		images[i] = poster.Image{ID: "img-" + strconv.Itoa(i), URL: "data:image/png;base64,xx", Type: poster.ImageSquare}
	}
	return images
}

func TestClassicColumnsDistribution(t *testing.T) {
	columns := ClassicColumns(testImages(7))

	want := [][]string{
		{"img-0", "img-3", "img-6"},
		{"img-1", "img-4"},
		{"img-2", "img-5"},
	}
	if len(columns) != 3 {
		t.Fatalf("columns = %d, want 3", len(columns))
	}
	for col := range want {
		if len(columns[col]) != len(want[col]) {
			t.Fatalf("column %d has %d images, want %d", col, len(columns[col]), len(want[col]))
		}
		for i, id := range want[col] {
			if columns[col][i].ID != id {
				t.Errorf("column %d[%d] = %q, want %q", col, i, columns[col][i].ID, id)
			}
		}
	}
}

func TestClassicColumnsEmpty(t *testing.T) {
	columns := ClassicColumns(nil)
	if len(columns) != 3 {
		t.Fatalf("columns = %d, want 3", len(columns))
	}
	for col := range columns {
		if len(columns[col]) != 0 {
			t.Errorf("column %d not empty", col)
		}
	}
}

func TestMinimalBlocksInterleaving(t *testing.T) {
	sections := []poster.ContentSection{
		{ID: "s0", Title: "first"},
		{ID: "s1", Title: "second"},
	}
	blocks := MinimalBlocks(testImages(8), sections)

	if len(blocks) != 8 {
		t.Fatalf("blocks = %d", len(blocks))
	}
	for i, block := range blocks {
		switch i {
		case 0:
			if block.Section == nil || block.Section.ID != "s0" {
				t.Errorf("block 0 section = %+v, want s0", block.Section)
			}
		case 3:
			if block.Section == nil || block.Section.ID != "s1" {
				t.Errorf("block 3 section = %+v, want s1", block.Section)
			}
		default:
			// 下标 6 也是插叙槽位，但只有两个版块，留空。
			if block.Section != nil {
				t.Errorf("block %d has unexpected section %q", i, block.Section.ID)
			}
		}
	}
}

func TestMagazineItemsStableJitter(t *testing.T) {
	first := MagazineItems(testImages(5))
	second := MagazineItems(testImages(5))

	if len(first) != 5 || len(second) != 5 {
		t.Fatalf("items = %d/%d", len(first), len(second))
	}
	for i := range first {
		if first[i].Transform != second[i].Transform {
			t.Errorf("transform %d differs between renders", i)
		}
	}
}

func TestMagazineJitterBounds(t *testing.T) {
	items := MagazineItems(testImages(12))
	for i, item := range items {
		tr := item.Transform
		if tr.Rotate < -3 || tr.Rotate >= 3 {
			t.Errorf("item %d rotate %v out of range", i, tr.Rotate)
		}
		if tr.TranslateX < -10 || tr.TranslateX >= 10 {
			t.Errorf("item %d translateX %v out of range", i, tr.TranslateX)
		}
		if tr.TranslateY < -10 || tr.TranslateY >= 10 {
			t.Errorf("item %d translateY %v out of range", i, tr.TranslateY)
		}
	}
}

func TestMagazineItemsKeepOrder(t *testing.T) {
	items := MagazineItems(testImages(4))
	for i, item := range items {
		if item.Index != i {
			t.Errorf("item %d index = %d", i, item.Index)
		}
		if item.Image.ID != "img-"+strconv.Itoa(i) {
			t.Errorf("item %d image = %q", i, item.Image.ID)
		}
	}
}
