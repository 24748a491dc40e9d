package office

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Paper sizes in inches for PrintToPDF.
var paperSizes = map[string][2]float64{
	"A4":     {8.27, 11.69},
	"Letter": {8.5, 11},
	"Legal":  {8.5, 14},
}

// ChromiumConfig configures the headless renderer.
type ChromiumConfig struct {
	// ControlURL is the DevTools websocket of an external Chromium.
	// Empty means launch a local headless instance on first use.
	ControlURL string

	// PageFormat is the paper size every rendered document gets.
	// Default: A4.
	PageFormat string

	// MarginMM is the uniform page margin in millimetres. Default: 18.
	MarginMM float64

	// Timeout bounds a single render. Default: 45s.
	Timeout time.Duration

	Logger *slog.Logger
}

func (c *ChromiumConfig) defaults() {
	if c.PageFormat == "" {
		c.PageFormat = "A4"
	}
	if _, ok := paperSizes[c.PageFormat]; !ok {
		c.PageFormat = "A4"
	}
	if c.MarginMM <= 0 {
		c.MarginMM = 18
	}
	if c.Timeout <= 0 {
		c.Timeout = 45 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Chromium renders HTML to paginated output through a headless browser.
// The browser is launched lazily on first render and reused; Close tears
// it down. Safe for concurrent use; each render gets its own tab.
type Chromium struct {
	cfg ChromiumConfig

	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
	closed  bool
}

// NewChromium creates a renderer. No browser is started yet.
func NewChromium(cfg ChromiumConfig) *Chromium {
	cfg.defaults()
	return &Chromium{cfg: cfg}
}

// RenderPDF loads the HTML into a fresh tab and prints it to the
// configured paper size. The resulting bytes are a complete container
// ready for page introspection.
func (c *Chromium) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	b, err := c.ensureBrowser()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	page, err := b.Page(proto.TargetCreateTarget{URL: ""})
	if err != nil {
		return nil, fmt.Errorf("chromium: create tab: %w", err)
	}
	defer page.Close()
	page = page.Context(ctx)

	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("chromium: set content: %w", err)
	}
	// Force a layout pass so pagination is settled before printing.
	if _, err := page.Eval(`() => document.documentElement.offsetHeight`); err != nil {
		return nil, fmt.Errorf("chromium: layout: %w", err)
	}

	size := paperSizes[c.cfg.PageFormat]
	marginIn := c.cfg.MarginMM / 25.4
	req := &proto.PagePrintToPDF{
		PaperWidth:      f64(size[0]),
		PaperHeight:     f64(size[1]),
		MarginTop:       f64(marginIn),
		MarginBottom:    f64(marginIn),
		MarginLeft:      f64(marginIn),
		MarginRight:     f64(marginIn),
		PrintBackground: true,
	}
	stream, err := page.PDF(req)
	if err != nil {
		return nil, fmt.Errorf("chromium: print: %w", err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("chromium: read print stream: %w", err)
	}

	c.cfg.Logger.Debug("html rendered", "bytes", len(data), "format", c.cfg.PageFormat)
	return data, nil
}

// ensureBrowser connects to the configured Chromium or launches one.
func (c *Chromium) ensureBrowser() (*rod.Browser, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, fmt.Errorf("chromium: renderer is closed")
	}
	if c.browser != nil {
		return c.browser, nil
	}

	wsURL := c.cfg.ControlURL
	if wsURL == "" {
		l := launcher.New().Headless(true)
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("chromium: launch: %w", err)
		}
		c.lnch = l
		wsURL = u
		c.cfg.Logger.Info("chromium launched", "url", wsURL)
	} else {
		c.cfg.Logger.Info("chromium connecting to remote", "url", wsURL)
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		c.cleanupLocked()
		return nil, fmt.Errorf("chromium: connect: %w", err)
	}
	c.browser = b
	return b, nil
}

// Close shuts the browser down. Subsequent renders fail.
func (c *Chromium) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.cleanupLocked()
	return nil
}

func (c *Chromium) cleanupLocked() {
	if c.browser != nil {
		c.browser.Close()
		c.browser = nil
	}
	if c.lnch != nil {
		c.lnch.Cleanup()
		c.lnch = nil
	}
}

func f64(v float64) *float64 { return &v }
