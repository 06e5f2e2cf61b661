package poster

// LayoutDefaults 给出每种模板下各角色的默认字号。
// 切换模板时只覆盖 size，颜色/粗细/字体等字段保持不变。
var LayoutDefaults = map[Layout]map[Role]int{
	LayoutClassic: {
		RoleTitle:          65,
		RoleSectionTitle:   18,
		RoleSectionContent: 14,
		RoleIntro:          18,
	},
	LayoutMagazine: {
		RoleTitle:          65,
		RoleSectionTitle:   24,
		RoleSectionContent: 23,
		RoleIntro:          18,
	},
	LayoutMinimal: {
		RoleTitle:          40,
		RoleSectionTitle:   14,
		RoleSectionContent: 12,
		RoleIntro:          14,
	},
}

// BgPreset 表示一个可选的背景预设。
type BgPreset struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// BgPresets 是侧边栏展示的背景目录，空 URL 表示纯色背景。
var BgPresets = []BgPreset{
	{Name: "纯白空间", URL: ""},
	{Name: "微光噪点", URL: "https://images.unsplash.com/photo-1550684848-fac1c5b4e853?auto=format&fit=crop&q=80&w=1200"},
	{Name: "极简灰度", URL: "https://images.unsplash.com/photo-1557683316-973673baf926?auto=format&fit=crop&q=80&w=1200"},
	{Name: "抽象线条", URL: "https://images.unsplash.com/photo-1614850523296-d8c1af93d400?auto=format&fit=crop&q=80&w=1200"},
	{Name: "哑光织物", URL: "https://images.unsplash.com/photo-1528459801416-a9e53bbf4e17?auto=format&fit=crop&q=80&w=1200"},
	{Name: "深夜炭黑", URL: "https://images.unsplash.com/photo-1504333638930-c8787321eee0?auto=format&fit=crop&q=80&w=1200"},
}

// FontFamily 表示一个可选字体。
type FontFamily struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FontFamilies 是面板中可选的字体目录。
var FontFamilies = []FontFamily{
	{Name: "黑体 (Sans)", Value: "'Noto Sans SC', sans-serif"},
	{Name: "宋体 (Serif)", Value: "'Noto Serif SC', serif"},
	{Name: "马善政 (Calligraphy)", Value: "'Ma Shan Zheng', cursive"},
	{Name: "小薇 (Decorative)", Value: "'ZCOOL XiaoWei', serif"},
	{Name: "黄油 (Modern)", Value: "'ZCOOL QingKe HuangYou', sans-serif"},
}

// 新增版块时使用的占位文案。
const (
	PlaceholderSectionTitle   = "NEW SECTION / 新版块"
	PlaceholderSectionContent = "点击此处编辑内容"
)

// DefaultDocument 构造会话开始时的种子文档。
func DefaultDocument() *Document {
	return &Document{
		Layout: LayoutClassic,
		Title:  "CN.",
		Intro:  "这里是简介 \n今日的风甚是喧嚣",
		Sections: []ContentSection{
			{ID: "1", Title: "ciallo(∠・ω)/这里是标题", Content: "这里可以写定价哦"},
			{ID: "2", Title: "ciallo(∠・ω)/这里是标题2", Content: "这里可以写联系方式哦"},
			{ID: "3", Title: "ciallo(∠・ω)/这里是标题3", Content: "这里可以写行程哦"},
		},
		Watermark:      "这里我也不知道写什么",
		FooterLocation: "这里可以写所在城市",
		FooterYear:     "这里可以写日期",
		FooterSuffix:   "ciallo(∠・ω)",
		FooterSlogan:   `"ciallo(∠・ω)ciallo(∠・ω)ciallo(∠・ω)"`,
		ShowFooter:     true,
		BgBlur:         10,
		Images:         []Image{},
		WatermarkPos:   Position{X: 0, Y: 0},
		Styles: map[Role]TextStyle{
			RoleTitle:          {Size: 65, Color: "#18181b", FontFamily: "'Noto Serif SC', serif", Bold: true},
			RoleIntro:          {Size: 18, Color: "#27272a", FontFamily: "'Noto Sans SC', sans-serif"},
			RoleWatermark:      {Size: 160, Color: "#f4f4f5", Opacity: opacity(0.3), FontFamily: "'Noto Serif SC', serif", Bold: true},
			RoleSectionTitle:   {Size: 18, Color: "#18181b", FontFamily: "'Noto Serif SC', serif", Bold: true},
			RoleSectionContent: {Size: 14, Color: "#52525b", FontFamily: "'Noto Sans SC', sans-serif"},
			RoleFooter:         {Size: 10, Color: "#a1a1aa", FontFamily: "'Noto Sans SC', sans-serif", Bold: true},
		},
	}
}
