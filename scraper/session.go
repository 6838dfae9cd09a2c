package scraper

import "context"

// Session is one browser instance with a single open page. A Session is
// owned by exactly one search and must be closed by it.
type Session interface {
	// Navigate loads url and waits for the page load event.
	Navigate(ctx context.Context, url string) error

	// WaitClickable waits until an element matching selector exists, is
	// visible and is enabled. The wait is bounded by ctx.
	WaitClickable(ctx context.Context, selector string) (Element, error)

	// WaitForAny waits until at least one element matches selector.
	WaitForAny(ctx context.Context, selector string) error

	// HTML returns the serialized DOM of the page as currently rendered.
	HTML(ctx context.Context) (string, error)

	// Close terminates the browser. It is safe to call more than once;
	// only the first call has an effect.
	Close() error
}

// Element is an interactive element located on a Session's page.
type Element interface {
	// Probe reports how the element can be clicked right now.
	Probe(ctx context.Context) (ClickMode, error)

	// Click performs a native mouse click.
	Click(ctx context.Context) error

	// ForceClick dispatches a click from script, bypassing hit testing.
	ForceClick(ctx context.Context) error

	// Input types text into the element.
	Input(ctx context.Context, text string) error

	// PressEnter sends the Enter key to the element.
	PressEnter(ctx context.Context) error
}

// Launcher starts a new Session.
type Launcher func(ctx context.Context) (Session, error)

// ClickMode is the outcome of probing an element before clicking it.
type ClickMode int

const (
	// ClickDirect means the element receives pointer events at its center.
	ClickDirect ClickMode = iota

	// ClickForced means something intercepts the pointer (an overlay, a
	// pointer-events:none rule or a zero-size box) so a script click is used.
	ClickForced

	// ClickBlocked means the element cannot be clicked at all.
	ClickBlocked
)

func (m ClickMode) String() string {
	switch m {
	case ClickDirect:
		return "direct"
	case ClickForced:
		return "forced"
	default:
		return "blocked"
	}
}
