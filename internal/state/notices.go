package state

import (
	"fmt"
	"time"
)

// NoticeLifetime is how long a notice stays visible unless replaced.
const NoticeLifetime = 5 * time.Second

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

type Notice struct {
	Kind      NoticeKind
	Message   string
	ExpiresAt time.Time
}

// Notices holds at most one ephemeral message. A new message replaces the
// current one and restarts the lifetime.
type Notices struct {
	now     func() time.Time
	current *Notice
}

// NewNotices uses now as its clock; nil means time.Now.
func NewNotices(now func() time.Time) *Notices {
	if now == nil {
		now = time.Now
	}
	return &Notices{now: now}
}

func (n *Notices) Success(message string) {
	n.push(NoticeSuccess, message)
}

func (n *Notices) Error(message string) {
	n.push(NoticeError, message)
}

// TagFailed records a bulk tagging failure.
func (n *Notices) TagFailed(err error) {
	n.Error(fmt.Sprintf("Error saving tags: %s", err.Error()))
}

// Current returns the visible notice, dropping it once expired.
func (n *Notices) Current() (Notice, bool) {
	if n.current == nil {
		return Notice{}, false
	}
	if !n.now().Before(n.current.ExpiresAt) {
		n.current = nil
		return Notice{}, false
	}
	return *n.current, true
}

func (n *Notices) Clear() {
	n.current = nil
}

func (n *Notices) push(kind NoticeKind, message string) {
	n.current = &Notice{Kind: kind, Message: message, ExpiresAt: n.now().Add(NoticeLifetime)}
}
