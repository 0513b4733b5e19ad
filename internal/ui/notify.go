package ui

import "time"

type toastKind int

const (
	toastInfo toastKind = iota
	toastSuccess
	toastError
)

const toastTTL = 4 * time.Second

// toast is a transient status line notification.
type toast struct {
	kind  toastKind
	text  string
	until time.Time
}

func (t *toast) expire(now time.Time) {
	if t.text != "" && now.After(t.until) {
		*t = toast{}
	}
}

func (m *Model) notify(kind toastKind, text string) {
	ttl := toastTTL
	if kind == toastError {
		ttl *= 2
	}
	m.toast = toast{kind: kind, text: text, until: m.now().Add(ttl)}
}

func (m Model) renderToast() string {
	if m.toast.text == "" {
		return ""
	}
	styles := m.theme.Styles()
	text := truncate(m.toast.text, max(m.width-2, 10))
	switch m.toast.kind {
	case toastSuccess:
		return styles.SuccessText.Render("✓ " + text)
	case toastError:
		return styles.DangerText.Render("✗ " + text)
	default:
		return styles.InfoText.Render(text)
	}
}
