package worker

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"wtPoster/internal/render"
)

// 渲染视口尺寸。宽度与模板画布一致，高度只是初值，截图按元素裁切。
const (
	viewportWidth  = 1440
	viewportHeight = 2200
)

// renderPosterImage 在无头浏览器里装载渲染好的 HTML，
// 按 scale 倍率光栅化海报根节点并返回 PNG 字节。
// settleDelay 是装载完成后的静置时长，等 Web 字体与背景图就位。
func renderPosterImage(logger *slog.Logger, html string, scale int, settleDelay time.Duration) (_ []byte, err error) {
	logger.Info("Worker: Launching headless browser...", slog.Int("scale", scale))

	launch := launcher.New().
		Headless(true).
		NoSandbox(true)
	defer func() {
		if err != nil {
			launch.Cleanup()
		}
	}()

	if path, ok := launcher.LookPath(); ok {
		launch = launch.Bin(path)
	}

	browserURL, err := launch.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	browser := rod.New().ControlURL(browserURL).Timeout(90 * time.Second)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		_ = browser.Close()
		launch.Cleanup()
	}()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	defer func() {
		_ = page.Close()
	}()

	// 放大倍数通过 DeviceScaleFactor 实现：CSS 像素不变，输出位图按倍率放大。
	metrics := &proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidth,
		Height:            viewportHeight,
		DeviceScaleFactor: float64(scale),
		Mobile:            false,
	}
	if err := metrics.Call(page); err != nil {
		return nil, fmt.Errorf("set device metrics: %w", err)
	}

	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("set document content: %w", err)
	}

	logger.Info("Worker: Waiting for poster root element...")
	rootSelector := "#" + render.PosterRootID
	element, err := page.Timeout(30 * time.Second).Element(rootSelector)
	if err != nil {
		return nil, fmt.Errorf("locate %s: %w", rootSelector, err)
	}

	// 额外等待 WebFont/系统字体就绪，避免回退字体度量导致排版差异
	logger.Info("Worker: Waiting for document.fonts.ready...")
	if _, evalErr := page.Timeout(5 * time.Second).Eval(`() => {
	  if (document && document.fonts && document.fonts.ready) {
	    return Promise.race([
	      document.fonts.ready.then(() => true),
	      new Promise((resolve) => setTimeout(() => resolve(true), 3000))
	    ]);
	  }
	  return true;
	}`); evalErr != nil {
		logger.Warn("Worker: document.fonts.ready wait failed, continue", slog.Any("error", evalErr))
	}

	if err := page.WaitIdle(30 * time.Second); err != nil {
		logger.Warn("Worker: wait idle failed, continue", slog.Any("error", err))
	}

	// 静置窗口：背景图解码与模糊合成在 load 之后仍需要一点时间。
	time.Sleep(settleDelay)

	if err := element.ScrollIntoView(); err != nil {
		return nil, fmt.Errorf("scroll poster into view: %w", err)
	}

	data, err := element.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return nil, fmt.Errorf("capture poster screenshot: %w", err)
	}

	logger.Info("Worker: Poster rasterized.", slog.Int("bytes", len(data)))
	return data, nil
}
