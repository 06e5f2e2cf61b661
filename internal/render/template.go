package render

// PageTemplateString 是海报预览/打印页的 Go HTML 模板。
// 三种排版共用同一页面骨架：最底层是带补偿缩放的模糊背景，
// 其上是全幅居中的水印层，再上才是可交互的排版内容。
// 导出截图以 #poster-root 为目标节点，尺寸即它的 CSS 像素尺寸。
const PageTemplateString = `
<!DOCTYPE html>
<html lang="zh-CN">
<head>
    <meta charset="UTF-8">
    <title>{{.Doc.Title}}</title>
    <link rel="preconnect" href="https://fonts.googleapis.com">
    <link href="https://fonts.googleapis.com/css2?family=Noto+Sans+SC:wght@400;700;900&family=Noto+Serif+SC:wght@400;700;900&family=Ma+Shan+Zheng&family=ZCOOL+XiaoWei&family=ZCOOL+QingKe+HuangYou&display=swap" rel="stylesheet">
    <style>
        * { box-sizing: border-box; }
        body {
            margin: 0;
            padding: 0;
            background: #0a0a0a;
            font-family: 'Noto Sans SC', sans-serif;
        }
        #poster-root {
            position: relative;
            width: 1400px;
            min-height: 1980px;
            margin: 0 auto;
            padding: 24px;
            background: #ffffff;
            color: #18181b;
            overflow: hidden;
            display: flex;
            flex-direction: column;
        }
        .bg-layer {
            position: absolute;
            inset: 0;
            z-index: 0;
            pointer-events: none;
            background-size: cover;
            background-position: center;
        }
        .watermark-layer {
            position: absolute;
            inset: 0;
            z-index: 1;
            pointer-events: none;
            user-select: none;
            display: flex;
            align-items: center;
            justify-content: center;
            overflow: hidden;
        }
        .watermark-layer span {
            white-space: nowrap;
            width: 100%;
            text-align: center;
            letter-spacing: -0.05em;
        }
        .content { position: relative; z-index: 10; flex: 1; display: flex; flex-direction: column; }
        [contenteditable] { outline: none; cursor: text; white-space: pre-wrap; }

        /* 空状态占位：三种排版都渲染同一个可点击的上传入口 */
        .empty-placeholder {
            border: 2px dashed #d4d4d8;
            border-radius: 8px;
            padding: 128px 0;
            text-align: center;
            color: #a1a1aa;
            letter-spacing: 0.5em;
            cursor: pointer;
        }

        /* ---- 经典海报 ---- */
        .classic-header { border-bottom: 1px solid rgba(24,24,27,.1); padding: 0 16px 24px; }
        .classic-head-grid { display: grid; grid-template-columns: 1fr 1fr; gap: 24px; align-items: center; min-height: 120px; }
        .classic-title-bar { height: 8px; width: 128px; margin-top: 16px; opacity: .9; }
        .classic-sections { display: grid; grid-template-columns: repeat(3, 1fr); gap: 16px 48px; padding-top: 16px; }
        .classic-section { border-left: 4px solid rgba(24,24,27,.1); padding-left: 20px; }
        .classic-section-title { letter-spacing: .4em; text-transform: uppercase; padding-bottom: 4px; border-bottom: 1px solid rgba(24,24,27,.04); }
        .classic-grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 24px; padding: 24px 16px; align-items: start; flex: 1; }
        .classic-col { display: flex; flex-direction: column; }
        .classic-col .photo { margin-bottom: 24px; border-radius: 2px; box-shadow: 0 10px 30px rgba(0,0,0,.5); }
        .photo img { width: 100%; height: auto; display: block; }

        /* ---- 复古相册 ---- */
        .magazine { background: rgb(255,247,219); border: 15px solid #ffffff; box-shadow: 0 25px 50px rgba(0,0,0,.25); padding: 24px; flex: 1; display: flex; flex-direction: column; }
        .mag-header { display: flex; flex-wrap: wrap; gap: 20px; margin-bottom: 48px; align-items: flex-start; }
        .mag-name-card { background: #000000; color: #ffffff; min-width: 150px; padding: 12px 32px; transform: rotate(-3deg); box-shadow: 25px 25px 60px rgba(0,0,0,.5); text-align: center; }
        .mag-name-card .film-label { font-family: monospace; font-size: 10px; color: #FFB000; letter-spacing: .4em; text-transform: uppercase; font-weight: 900; }
        .mag-name-card .film-counter { font-family: monospace; font-size: 9px; opacity: .5; font-style: italic; font-weight: 900; letter-spacing: .2em; margin-top: 4px; }
        .mag-qr-card { width: 150px; height: 150px; background: #ffffff; padding: 8px; transform: rotate(6deg); box-shadow: 0 20px 40px rgba(0,0,0,.3); cursor: pointer; }
        .mag-qr-card img { width: 100%; height: 100%; object-fit: cover; }
        .mag-qr-empty { width: 100%; height: 100%; display: flex; align-items: center; justify-content: center; background: #fafafa; font-family: monospace; font-size: 14px; color: #a1a1aa; text-align: center; font-weight: 900; }
        .mag-intro-card { background: #ffffff; padding: 12px 16px; transform: rotate(1deg); box-shadow: 30px 30px 70px rgba(0,0,0,.05); border-left: 4px solid rgba(0,0,0,.1); }
        .mag-sections { display: flex; flex-wrap: wrap; gap: 28px 20px; }
        .mag-section { min-width: 120px; }
        .mag-section-mod { font-family: monospace; font-size: 7px; opacity: .3; letter-spacing: .5em; text-transform: uppercase; font-style: italic; margin-bottom: 4px; }
        .mag-section-title { border-bottom: 2px solid rgba(0,0,0,.05); padding-bottom: 6px; margin-bottom: 8px; text-transform: uppercase; white-space: nowrap; }
        .mag-grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 20px; flex: 1; align-content: start; }
        .mag-photo { background: #ffffff; border: 1px solid rgba(0,0,0,.1); padding: 6px; box-shadow: 5px 5px 15px rgba(0,0,0,.1); }
        .mag-photo-caption { display: flex; justify-content: space-between; font-family: monospace; font-size: 5px; color: rgba(0,0,0,.3); text-transform: uppercase; margin-top: 6px; }
        .mag-footer { margin-top: 32px; padding: 12px 40px; background: #fdfaf0; border: 1px solid #eeeadd; display: flex; justify-content: space-between; align-items: center; gap: 24px; }

        /* ---- 极简单列 ---- */
        .minimal { max-width: 1000px; margin: 0 auto; text-align: center; padding: 0 16px; flex: 1; display: flex; flex-direction: column; gap: 32px; }
        .minimal-divider { width: 40px; height: 1px; background: #000000; margin: 12px auto; }
        .minimal-stack { display: flex; flex-direction: column; gap: 48px; flex: 1; }
        .minimal-caption { border-top: 1px solid #f4f4f5; border-bottom: 1px solid #f4f4f5; padding: 24px 0; max-width: 384px; margin: 32px auto 16px; }

        .footer-bar { border-top: 1px solid rgba(24,24,27,.1); padding: 16px; margin-top: auto; display: flex; justify-content: space-between; align-items: flex-end; gap: 32px; }
        .footer-left { display: flex; align-items: center; gap: 24px; }
        .footer-rule { width: 32px; height: 1px; background: #d4d4d8; }
        .footer-slogan { font-style: italic; opacity: .4; font-size: 12px; white-space: nowrap; }
    </style>
</head>
<body>
<div id="poster-root">
    {{if .Doc.BgImageURL}}
    <div class="bg-layer" style="background-image: url('{{.Doc.BgImageURL | safeURL}}'); filter: blur({{.Doc.BgBlur}}px); transform: scale({{.BgZoom}});"></div>
    {{end}}

    <div class="watermark-layer">
        <span style="{{index .RoleCSS "watermark"}}">{{.Doc.Watermark}}</span>
    </div>

    <div class="content">
    {{if eq .Doc.Layout "classic"}}
        <header class="classic-header">
            <div class="classic-head-grid">
                <div>
                    <h1 contenteditable="true" data-field="title" style="{{index .RoleCSS "title"}} margin: 0;">{{.Doc.Title}}</h1>
                    <div class="classic-title-bar" style="background-color: {{.TitleColor | safeCSS}};"></div>
                </div>
                <div contenteditable="true" data-field="intro" style="{{index .RoleCSS "intro"}}">{{.Doc.Intro}}</div>
            </div>
            <div class="classic-sections">
                {{range .Doc.Sections}}
                <div class="classic-section">
                    <div class="classic-section-title" contenteditable="true" data-section-id="{{.ID}}" data-section-field="title" style="{{index $.RoleCSS "sectionTitle"}}">{{.Title}}</div>
                    <div contenteditable="true" data-section-id="{{.ID}}" data-section-field="content" style="{{index $.RoleCSS "sectionContent"}}">{{.Content}}</div>
                </div>
                {{end}}
            </div>
        </header>
        {{if .HasImages}}
        <div class="classic-grid">
            {{range $col, $images := .ClassicColumns}}
            <div class="classic-col">
                {{range $images}}
                <div class="photo" data-image-id="{{.ID}}"><img src="{{.URL | safeURL}}" alt=""></div>
                {{end}}
            </div>
            {{end}}
        </div>
        {{else}}
        <div class="empty-placeholder" data-upload-trigger>点击此处上传作品</div>
        {{end}}
        {{if .Doc.ShowFooter}}{{template "footerBar" .}}{{end}}

    {{else if eq .Doc.Layout "magazine"}}
        <div class="magazine">
            <header class="mag-header">
                <div>
                    <div class="mag-name-card">
                        <div class="film-label">PANCHROMATIC SAFETY</div>
                        <!-- 名牌卡固定使用覆盖色渲染标题，忽略配置的标题颜色 -->
                        <h1 contenteditable="true" data-field="title" style="{{.MagazineTitleCSS}} margin: 4px 0;">{{.Doc.Title}}</h1>
                        <div class="film-counter">FILM.A0{{.ImageCount}} · K-PRO ISO 400</div>
                    </div>
                    <div class="mag-qr-card" data-qr-trigger>
                        {{if .Doc.QrCodeURL}}
                        <img src="{{.Doc.QrCodeURL | safeURL}}" alt="QR Code">
                        {{else}}
                        <div class="mag-qr-empty">点击上传二维码</div>
                        {{end}}
                    </div>
                </div>
                <div class="mag-intro-card">
                    <div contenteditable="true" data-field="intro" style="{{index .RoleCSS "intro"}}">{{.Doc.Intro}}</div>
                </div>
                <div class="mag-sections">
                    {{range $idx, $s := .Doc.Sections}}
                    <div class="mag-section">
                        <div class="mag-section-mod">MOD.0{{add $idx 1}}</div>
                        <div class="mag-section-title" contenteditable="true" data-section-id="{{$s.ID}}" data-section-field="title" style="{{index $.RoleCSS "sectionTitle"}}">{{$s.Title}}</div>
                        <div contenteditable="true" data-section-id="{{$s.ID}}" data-section-field="content" style="{{index $.RoleCSS "sectionContent"}}">{{$s.Content}}</div>
                    </div>
                    {{end}}
                </div>
            </header>
            {{if .HasImages}}
            <main class="mag-grid">
                {{range .MagazineItems}}
                <div class="mag-photo" data-image-id="{{.Image.ID}}" style="{{transformCSS .Transform}}">
                    <div class="photo"><img src="{{.Image.URL | safeURL}}" alt=""></div>
                    <div class="mag-photo-caption">
                        <span>FILM_P.ST_0{{add .Index 1}}</span>
                        <span>SAFETY_CHECK</span>
                    </div>
                </div>
                {{end}}
            </main>
            {{else}}
            <div class="empty-placeholder" data-upload-trigger>CLICK TO IMPORT PORTFOLIO...</div>
            {{end}}
            {{if .Doc.ShowFooter}}
            <footer class="mag-footer">
                <div class="footer-left" style="{{index .RoleCSS "footer"}}">
                    <span>{{.Doc.Title}}</span>
                    <span>{{.Doc.FooterSuffix}}</span>
                    <span>{{.Doc.FooterLocation}}</span>
                    <span>{{.Doc.FooterYear}}</span>
                </div>
                <div class="footer-slogan">{{.Doc.FooterSlogan}}</div>
            </footer>
            {{end}}
        </div>

    {{else}}
        <div class="minimal">
            <header>
                <h1 contenteditable="true" data-field="title" style="{{index .RoleCSS "title"}} margin: 0; letter-spacing: .1em; text-transform: uppercase;">{{.Doc.Title}}</h1>
                <div class="minimal-divider"></div>
                <div contenteditable="true" data-field="intro" style="{{index .RoleCSS "intro"}}">{{.Doc.Intro}}</div>
            </header>
            {{if .HasImages}}
            <div class="minimal-stack">
                {{range .MinimalBlocks}}
                <div>
                    <div class="photo" data-image-id="{{.Image.ID}}"><img src="{{.Image.URL | safeURL}}" alt=""></div>
                    {{if .Section}}
                    <div class="minimal-caption">
                        <div contenteditable="true" data-section-id="{{.Section.ID}}" data-section-field="title" style="{{index $.RoleCSS "sectionTitle"}}">{{.Section.Title}}</div>
                        <div contenteditable="true" data-section-id="{{.Section.ID}}" data-section-field="content" style="{{index $.RoleCSS "sectionContent"}}">{{.Section.Content}}</div>
                    </div>
                    {{end}}
                </div>
                {{end}}
            </div>
            {{else}}
            <div class="empty-placeholder" data-upload-trigger>点击此处上传作品</div>
            {{end}}
            {{if .Doc.ShowFooter}}{{template "footerBar" .}}{{end}}
        </div>
    {{end}}
    </div>
</div>

{{if .SessionID}}
<input type="file" id="upload-input" multiple accept="image/*" style="display:none">
<input type="file" id="qr-input" accept="image/*" style="display:none">
<script>
(function () {
    // 编辑脚本只在预览模式注入；导出走纯静态页。
    // 令牌从 location.hash 读取（#token=...），不落进 HTML。
    var token = (location.hash.match(/token=([^&]+)/) || [])[1] || '';
    var headers = { 'Authorization': 'Bearer ' + token };

    function commit(method, path, body) {
        return fetch('/v1' + path, {
            method: method,
            headers: Object.assign({ 'Content-Type': 'application/json' }, headers),
            body: body === undefined ? undefined : JSON.stringify(body)
        });
    }

    // 失焦提交：把最终文本原样（含换行）写回文档，不做逐键广播。
    document.querySelectorAll('[contenteditable][data-field]').forEach(function (el) {
        el.addEventListener('blur', function () {
            commit('PATCH', '/posters', { field: el.dataset.field, value: el.innerText });
        });
    });
    document.querySelectorAll('[contenteditable][data-section-id]').forEach(function (el) {
        el.addEventListener('blur', function () {
            commit('PATCH', '/posters/sections/' + el.dataset.sectionId, {
                field: el.dataset.sectionField, value: el.innerText
            });
        });
    });

    function uploadTo(path, files) {
        var form = new FormData();
        for (var i = 0; i < files.length; i++) form.append('files', files[i]);
        return fetch('/v1' + path, { method: 'POST', headers: headers, body: form })
            .then(function () { location.reload(); });
    }

    var uploadInput = document.getElementById('upload-input');
    document.querySelectorAll('[data-upload-trigger]').forEach(function (el) {
        el.addEventListener('click', function () { uploadInput.click(); });
    });
    uploadInput.addEventListener('change', function () { uploadTo('/posters/images', uploadInput.files); });

    var qrInput = document.getElementById('qr-input');
    document.querySelectorAll('[data-qr-trigger]').forEach(function (el) {
        el.addEventListener('click', function () { qrInput.click(); });
    });
    qrInput.addEventListener('change', function () { uploadTo('/posters/qrcode', qrInput.files); });
})();
</script>
{{end}}
</body>
</html>

{{define "footerBar"}}
<footer class="footer-bar">
    <div class="footer-left" style="{{index .RoleCSS "footer"}}">
        <span>{{.Doc.FooterYear}}</span>
        <span class="footer-rule"></span>
        <span>{{.Doc.Title}}</span>
        <span>{{.Doc.FooterSuffix}}</span>
    </div>
    <div style="display:flex; align-items:center; gap:16px;">
        <div style="{{index .RoleCSS "footer"}} opacity:.6; letter-spacing:.2em; text-transform:uppercase;">{{.Doc.FooterLocation}}</div>
        <div class="footer-slogan">{{.Doc.FooterSlogan}}</div>
    </div>
</footer>
{{end}}
`
