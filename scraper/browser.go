package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/use-agent/jobscout/models"
)

// rodSession is a Session backed by a dedicated Chrome process.
type rodSession struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	router   *rod.HijackRouter

	closeOnce sync.Once
	closeErr  error
}

// launchRod starts Chrome with the configured flags, connects to it and
// opens the single page a search works on. Once Chrome is running, any
// later failure kills it before returning.
func (s *Scraper) launchRod(ctx context.Context) (Session, error) {
	cfg := s.browserCfg

	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox)

	if cfg.BrowserBin != "" {
		l = l.Bin(cfg.BrowserBin)
	}
	if cfg.Proxy != "" {
		l = l.Proxy(cfg.Proxy)
	}
	if cfg.DisableGPU {
		l.Set(flags.Flag("disable-gpu"))
	}
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("window-size"), fmt.Sprintf("%d,%d", cfg.WindowWidth, cfg.WindowHeight))
	if cfg.IgnoreCertErrors {
		l.Set(flags.Flag("ignore-certificate-errors"))
		l.Set(flags.Flag("ignore-ssl-errors"), "yes")
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeBrowserCrash, "failed to launch browser", err)
	}
	slog.Debug("browser launched", "controlURL", controlURL, "pid", l.PID())

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, models.NewScrapeError(models.ErrCodeBrowserCrash, "failed to connect to browser", err)
	}

	sess := &rodSession{launcher: l, browser: browser}

	if cfg.IgnoreCertErrors {
		if err := browser.IgnoreCertErrors(true); err != nil {
			slog.Warn("could not disable certificate checks", "error", err)
		}
	}

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = sess.Close()
		return nil, models.NewScrapeError(models.ErrCodeBrowserCrash, "failed to open page", err)
	}
	sess.page = page

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             cfg.WindowWidth,
		Height:            cfg.WindowHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		slog.Warn("could not set viewport", "error", err)
	}

	if cfg.CaptureConsole {
		sess.captureConsole()
	}

	// Resource blocking must be mounted before the first navigation.
	sess.router = setupHijack(page, cfg.BlockedResourceTypes)

	return sess, nil
}

// captureConsole forwards console.* calls made by the page to the debug log.
func (r *rodSession) captureConsole() {
	_ = proto.RuntimeEnable{}.Call(r.page)
	wait := r.page.EachEvent(func(e *proto.RuntimeConsoleAPICalled) {
		slog.Debug("browser console",
			"level", string(e.Type),
			"text", consoleText(e.Args),
		)
	})
	go wait()
}

// consoleText joins console arguments the way DevTools prints them:
// primitive values verbatim, objects by their description.
func consoleText(args []*proto.RuntimeRemoteObject) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		if a == nil {
			continue
		}
		if !a.Value.Nil() {
			parts = append(parts, a.Value.Str())
			continue
		}
		parts = append(parts, a.Description)
	}
	return strings.Join(parts, " ")
}

func (r *rodSession) Navigate(ctx context.Context, url string) error {
	p := r.page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		return err
	}
	return p.WaitLoad()
}

func (r *rodSession) WaitClickable(ctx context.Context, selector string) (Element, error) {
	p := r.page.Context(ctx)
	el, err := p.Element(selector)
	if err != nil {
		return nil, err
	}
	if err := el.WaitVisible(); err != nil {
		return nil, err
	}
	if err := el.WaitEnabled(); err != nil {
		return nil, err
	}
	return &rodElement{el: el}, nil
}

func (r *rodSession) WaitForAny(ctx context.Context, selector string) error {
	return r.page.Context(ctx).WaitElementsMoreThan(selector, 0)
}

func (r *rodSession) HTML(ctx context.Context) (string, error) {
	return r.page.Context(ctx).HTML()
}

// Close stops request interception, closes the browser over CDP, then kills
// the process and removes its profile directory in case it did not exit.
func (r *rodSession) Close() error {
	r.closeOnce.Do(func() {
		if r.router != nil {
			_ = r.router.Stop()
		}
		r.closeErr = r.browser.Close()
		r.launcher.Kill()
		r.launcher.Cleanup()
	})
	return r.closeErr
}

// rodElement adapts *rod.Element to Element. The element is re-bound to
// the caller's context on every call.
type rodElement struct {
	el *rod.Element
}

func (e *rodElement) Probe(ctx context.Context) (ClickMode, error) {
	_, err := e.el.Context(ctx).Interactable()
	return classifyInteractable(err)
}

func (e *rodElement) Click(ctx context.Context) error {
	return e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1)
}

func (e *rodElement) ForceClick(ctx context.Context) error {
	_, err := e.el.Context(ctx).Eval(`() => this.click()`)
	return err
}

func (e *rodElement) Input(ctx context.Context, text string) error {
	return e.el.Context(ctx).Input(text)
}

func (e *rodElement) PressEnter(ctx context.Context) error {
	return e.el.Context(ctx).Type(input.Enter)
}

// classifyInteractable maps the result of rod's hit test to a ClickMode.
// A native click on a covered element would hang until the deadline, so
// interception is detected here instead of after a failed click.
func classifyInteractable(err error) (ClickMode, error) {
	var (
		covered   *rod.CoveredError
		noPointer *rod.NoPointerEventsError
		invisible *rod.InvisibleShapeError
	)
	switch {
	case err == nil:
		return ClickDirect, nil
	case errors.As(err, &covered), errors.As(err, &noPointer), errors.As(err, &invisible):
		return ClickForced, nil
	default:
		return ClickBlocked, err
	}
}
