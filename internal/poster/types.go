package poster

// Layout 表示海报使用的排版模板。
type Layout string

const (
	LayoutClassic  Layout = "classic"
	LayoutMagazine Layout = "magazine"
	LayoutMinimal  Layout = "minimal"
)

// Valid 判断排版标识是否为三种受支持的模板之一。
func (l Layout) Valid() bool {
	switch l {
	case LayoutClassic, LayoutMagazine, LayoutMinimal:
		return true
	}
	return false
}

// Role 表示六种固定文字角色之一，每种角色拥有独立样式。
type Role string

const (
	RoleTitle          Role = "title"
	RoleIntro          Role = "intro"
	RoleWatermark      Role = "watermark"
	RoleSectionTitle   Role = "sectionTitle"
	RoleSectionContent Role = "sectionContent"
	RoleFooter         Role = "footer"
)

// Roles 按固定顺序列出全部文字角色。
var Roles = []Role{RoleTitle, RoleIntro, RoleWatermark, RoleSectionTitle, RoleSectionContent, RoleFooter}

// ValidRole 判断给定角色是否属于封闭角色集合。
func ValidRole(r Role) bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// ImageType 按宽高比对图片做粗分类，排版时用于占位提示。
type ImageType string

const (
	ImageSquare   ImageType = "square"
	ImageVertical ImageType = "vertical"
	ImageWide     ImageType = "wide"
)

// TextStyle 描述单个文字角色的完整样式。
type TextStyle struct {
	Size       int      `json:"size"`
	Color      string   `json:"color"`
	Opacity    *float64 `json:"opacity,omitempty"`
	Bold       bool     `json:"bold,omitempty"`
	Italic     bool     `json:"italic,omitempty"`
	Underline  bool     `json:"underline,omitempty"`
	FontFamily string   `json:"fontFamily,omitempty"`
}

// ContentSection 表示正文中的一个版块。
// ID 为生成的不透明标识，仅用于定位更新/删除，绝不展示。
type ContentSection struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Image 表示海报中的一张作品图。
// URL 可能是本地上传生成的 data URI，也可能是预设的外链。
type Image struct {
	ID    string    `json:"id"`
	URL   string    `json:"url"`
	Type  ImageType `json:"type"`
	Label string    `json:"label,omitempty"`
}

// Position 表示一个二维偏移量。
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Document 是整张海报的聚合根，一次编辑会话持有唯一实例。
// 所有字段只允许通过 editor.Controller 变更。
type Document struct {
	Layout         Layout             `json:"layout"`
	Title          string             `json:"title"`
	Intro          string             `json:"intro"`
	Sections       []ContentSection   `json:"sections"`
	Watermark      string             `json:"watermark"`
	FooterLocation string             `json:"footerLocation"`
	FooterYear     string             `json:"footerYear"`
	FooterSuffix   string             `json:"footerSuffix"`
	FooterSlogan   string             `json:"footerSlogan"`
	ShowFooter     bool               `json:"showFooter"`
	BgImageURL     string             `json:"bgImageUrl,omitempty"`
	BgBlur         int                `json:"bgBlur"`
	Images         []Image            `json:"images"`
	QrCodeURL      string             `json:"qrCodeUrl,omitempty"`
	WatermarkPos   Position           `json:"watermarkPos"`
	Styles         map[Role]TextStyle `json:"styles"`
}

// Clone 返回文档的深拷贝，渲染与导出只读取拷贝。
func (d *Document) Clone() *Document {
	out := *d

	out.Sections = make([]ContentSection, len(d.Sections))
	copy(out.Sections, d.Sections)

	out.Images = make([]Image, len(d.Images))
	copy(out.Images, d.Images)

	out.Styles = make(map[Role]TextStyle, len(d.Styles))
	for role, style := range d.Styles {
		if style.Opacity != nil {
			v := *style.Opacity
			style.Opacity = &v
		}
		out.Styles[role] = style
	}

	return &out
}

func opacity(v float64) *float64 { return &v }
