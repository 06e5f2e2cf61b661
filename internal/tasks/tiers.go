package tasks

// ExportTier 表示导出档位，决定光栅化的放大倍数。
type ExportTier string

const (
	TierDraft ExportTier = "draft"
	TierHD    ExportTier = "hd"
	TierUltra ExportTier = "ultra"
)

// Valid 判断档位是否受支持。
func (t ExportTier) Valid() bool {
	switch t {
	case TierDraft, TierHD, TierUltra:
		return true
	}
	return false
}

// Scale 返回档位对应的缩放倍数：渲染节点的 CSS 像素尺寸乘以它即为输出分辨率。
func (t ExportTier) Scale() int {
	switch t {
	case TierHD:
		return 4
	case TierUltra:
		return 8
	default:
		return 2
	}
}

// Label 返回文件名中使用的档位标签。
func (t ExportTier) Label() string {
	switch t {
	case TierHD:
		return "HD"
	case TierUltra:
		return "8K"
	default:
		return "2K"
	}
}
