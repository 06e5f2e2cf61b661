package render

import (
	"math/rand"
	"sync"

	"wtPoster/internal/poster"
)

// classicColumnCount 是经典模板的固定列数。
const classicColumnCount = 3

// PhotoTransform 是复古相册模板里单张照片的随机姿态。
type PhotoTransform struct {
	Rotate     float64 // 度，[-3, 3)
	TranslateX float64 // px，[-10, 10)
	TranslateY float64 // px，[-10, 10)
}

// MagazineItem 是复古相册网格中的一格：原序图片加稳定的随机姿态。
type MagazineItem struct {
	Image     poster.Image
	Index     int
	Transform PhotoTransform
}

// MinimalBlock 是极简模板竖排中的一格：一张图片，
// 以及按插叙规则附带的版块（可能为 nil）。
type MinimalBlock struct {
	Image   poster.Image
	Index   int
	Section *poster.ContentSection
}

// ClassicColumns 把图片按 index mod 3 轮转分进三列，列内保持原有顺序。
// 7 张图时：第 0 列得到 0/3/6，第 1 列得到 1/4，第 2 列得到 2/5。
func ClassicColumns(images []poster.Image) [][]poster.Image {
	columns := make([][]poster.Image, classicColumnCount)
	for i := range columns {
		columns[i] = []poster.Image{}
	}
	for i, img := range images {
		col := i % classicColumnCount
		columns[col] = append(columns[col], img)
	}
	return columns
}

// MagazineItems 按原始顺序铺开图片，并给每张附上随机姿态。
func MagazineItems(images []poster.Image) []MagazineItem {
	transforms := jitterTable(len(images))
	items := make([]MagazineItem, len(images))
	for i, img := range images {
		items[i] = MagazineItem{Image: img, Index: i, Transform: transforms[i]}
	}
	return items
}

// MinimalBlocks 构造极简模板的竖排：每逢下标 index mod 3 == 0 的图片，
// 其后插叙第 floor(index/3) 个版块；版块不够时后续插叙槽位留空。
func MinimalBlocks(images []poster.Image, sections []poster.ContentSection) []MinimalBlock {
	blocks := make([]MinimalBlock, len(images))
	for i, img := range images {
		block := MinimalBlock{Image: img, Index: i}
		if i%3 == 0 {
			if sectionIdx := i / 3; sectionIdx < len(sections) {
				s := sections[sectionIdx]
				block.Section = &s
			}
		}
		blocks[i] = block
	}
	return blocks
}

var (
	jitterMu   sync.Mutex
	jitterMemo = map[int][]PhotoTransform{}
)

// jitterTable 返回给定图片数量下的姿态表。
// 表只在数量变化时重新生成：同一数量始终复用同一张表，
// 避免无关编辑触发重渲染时照片"抖动"。
func jitterTable(count int) []PhotoTransform {
	jitterMu.Lock()
	defer jitterMu.Unlock()

	if table, ok := jitterMemo[count]; ok {
		return table
	}

	rng := rand.New(rand.NewSource(int64(count)))
	table := make([]PhotoTransform, count)
	for i := range table {
		table[i] = PhotoTransform{
			Rotate:     rng.Float64()*6 - 3,
			TranslateX: rng.Float64()*20 - 10,
			TranslateY: rng.Float64()*20 - 10,
		}
	}
	jitterMemo[count] = table
	return table
}
