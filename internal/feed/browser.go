package feed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/IshaanNene/FeedStalk/internal/config"
	"github.com/IshaanNene/FeedStalk/internal/observability"
	"github.com/IshaanNene/FeedStalk/internal/types"
)

// BrowserSession renders a feed in a headless browser via Rod and
// exposes it as a Session. One session owns one page; concurrent runs
// need separate sessions.
type BrowserSession struct {
	browser *rod.Browser
	page    *rod.Page
	cfg     *config.Config
	nav     *RetryNavigator
	logger  *slog.Logger
}

// NewBrowserSession launches a browser and prepares a page.
func NewBrowserSession(cfg *config.Config, logger *slog.Logger) (*BrowserSession, error) {
	bs := &BrowserSession{
		cfg:    cfg,
		logger: logger.With("component", "browser_session"),
	}

	launchURL, err := bs.launchBrowser()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(launchURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	bs.browser = browser

	if cfg.Browser.Stealth {
		bs.page, err = stealth.Page(browser)
	} else {
		bs.page, err = browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	}
	if err != nil {
		_ = browser.Close()
		return nil, fmt.Errorf("open page: %w", err)
	}

	if ua := cfg.Browser.UserAgent; ua != "" {
		if err := bs.page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: ua}); err != nil {
			bs.logger.Warn("failed to set user agent", "error", err)
		}
	}

	bs.nav = NewRetryNavigator(bs.navigateOnce, cfg.Browser.NavRetries, cfg.Browser.NavRetryDelay, logger)

	bs.logger.Info("browser session ready", "stealth", cfg.Browser.Stealth, "headless", cfg.Browser.Headless)
	return bs, nil
}

// launchBrowser starts a Chromium instance with appropriate flags.
func (bs *BrowserSession) launchBrowser() (string, error) {
	l := launcher.New().
		Headless(bs.cfg.Browser.Headless).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-setuid-sandbox").
		Set("disable-blink-features", "AutomationControlled")

	if bs.cfg.Browser.UserDataDir != "" {
		l = l.UserDataDir(bs.cfg.Browser.UserDataDir)
	}
	if bs.cfg.Browser.WindowSize != "" {
		l = l.Set("window-size", bs.cfg.Browser.WindowSize)
	}

	return l.Launch()
}

// navigateOnce is a single navigation attempt with the settle wait.
func (bs *BrowserSession) navigateOnce(ctx context.Context, url string) error {
	page := bs.page.Context(ctx).Timeout(bs.cfg.Browser.NavTimeout)

	if err := page.Navigate(url); err != nil {
		return err
	}
	if err := page.WaitStable(bs.cfg.Browser.SettleWindow); err != nil {
		// The page kept mutating past the timeout; proceed with
		// whatever has rendered.
		bs.logger.Warn("page stability timeout, continuing", "url", url, "error", err)
	}
	return nil
}

// SetMetrics attaches run metrics to the session, counting navigation
// retries as they happen.
func (bs *BrowserSession) SetMetrics(m *observability.Metrics) {
	bs.nav.OnRetry = func() { m.NavigationRetries.Add(1) }
}

// Navigate implements Navigator with bounded retry.
func (bs *BrowserSession) Navigate(ctx context.Context, url string) error {
	return bs.nav.Navigate(ctx, url)
}

// RevealMore scrolls to the bottom of the page, which is what makes a
// virtually-scrolled feed render its next slice. It may be a no-op
// when nothing new can load.
func (bs *BrowserSession) RevealMore(ctx context.Context) error {
	_, err := bs.page.Context(ctx).Eval(`() => window.scrollTo(0, document.body.scrollHeight)`)
	if err != nil {
		return &types.SourceError{Op: "reveal", Err: err}
	}
	return nil
}

// Items returns the currently rendered feed items from a DOM snapshot.
func (bs *BrowserSession) Items(ctx context.Context) ([]types.ContentItem, error) {
	document, err := bs.page.Context(ctx).HTML()
	if err != nil {
		return nil, &types.SourceError{Op: "snapshot", Err: err}
	}
	return SelectItems(document, bs.cfg.Feed.ItemSelector, bs.cfg.Feed.SelectorType)
}

// ItemCount counts rendered items from the same snapshot path as
// Items, so the two stay consistent.
func (bs *BrowserSession) ItemCount(ctx context.Context) (int, error) {
	items, err := bs.Items(ctx)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// Close shuts down the page and browser.
func (bs *BrowserSession) Close() error {
	if bs.page != nil {
		_ = bs.page.Close()
	}
	if bs.browser != nil {
		return bs.browser.Close()
	}
	return nil
}
