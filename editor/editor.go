// Package editor keeps list and paragraph attributes consistent while
// text is edited.
//
// A Context holds the configuration shared by every editable view: the
// content processors, the delegate and the paragraph observers. When a
// view gains focus the Context starts a Session for it; the Session
// intercepts each edit before and after the host applies it. Only one
// Session is active at a time.
package editor

import (
	"log/slog"
	"sort"

	"github.com/rjkroege/proton/attributed"
	"github.com/rjkroege/proton/style"
	"github.com/rjkroege/proton/typeface"
)

// Editor is the view being edited, as seen by the editing session and
// by content processors.
type Editor interface {
	// Text is the storage of the view. Sessions mutate it in place.
	Text() *attributed.String
	SelectedRange() attributed.Range
	SetSelectedRange(r attributed.Range)

	// TypingAttributes are the attributes given to the next typed text.
	TypingAttributes() attributed.Attributes
	SetTypingAttributes(a attributed.Attributes)

	// DefaultTypingAttributes apply at the end of the content.
	DefaultTypingAttributes() attributed.Attributes
	DefaultFont() typeface.Face

	// ListIndentation is the indent of one nesting level.
	ListIndentation() float64

	ReplaceCharacters(r attributed.Range, text string, attrs attributed.Attributes)
}

// Processor inspects edits. ShouldProcess may veto an edit before it is
// applied; DidProcess runs after every applied edit.
type Processor interface {
	Name() string
	Priority() int
	ShouldProcess(ed Editor, r attributed.Range, text string) bool
	DidProcess(ed Editor)
}

// Key is a key with editing behaviour the delegate can take over.
type Key int

const (
	Backspace Key = iota
	Enter
	Tab
)

func (k Key) String() string {
	switch k {
	case Backspace:
		return "backspace"
	case Enter:
		return "enter"
	case Tab:
		return "tab"
	}
	return "unknown"
}

// Delegate observes the session. ShouldHandleKey returning true means
// the delegate dealt with the key and the edit is not applied.
type Delegate interface {
	DidReceiveFocus(r attributed.Range)
	DidLoseFocus(r attributed.Range)
	DidChangeSelection(r attributed.Range, attrs attributed.Attributes, contentType string)
	ShouldHandleKey(k Key, r attributed.Range) bool
	DidReceiveKey(k Key, r attributed.Range)
	DidChangeText(r attributed.Range)
}

// ParagraphObserver is told about paragraphs created by a line break.
type ParagraphObserver interface {
	DidChangeParagraph(ed Editor, r attributed.Range)
}

// UnknownContent is the content type reported for text without a block
// content type.
const UnknownContent = "unknown"

// Option configures a Context.
type Option func(*Context)

// WithProcessors registers content processors.
func WithProcessors(p ...Processor) Option {
	return func(c *Context) { c.processors = append(c.processors, p...) }
}

// WithDelegate sets the delegate.
func WithDelegate(d Delegate) Option {
	return func(c *Context) { c.delegate = d }
}

// WithParagraphObservers registers paragraph observers.
func WithParagraphObservers(o ...ParagraphObserver) Option {
	return func(c *Context) { c.observers = append(c.observers, o...) }
}

// WithLogger sets the logger for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Context) { c.logger = l }
}

// Context is the editing configuration shared across views.
type Context struct {
	processors []Processor
	delegate   Delegate
	observers  []ParagraphObserver
	logger     *slog.Logger

	active *Session
}

// New returns a Context. Processors run highest priority first; equal
// priorities keep their registration order.
func New(opts ...Option) *Context {
	c := &Context{}
	for _, o := range opts {
		o(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	sort.SliceStable(c.processors, func(i, j int) bool {
		return c.processors[i].Priority() > c.processors[j].Priority()
	})
	return c
}

// Processors returns the processors in the order they run.
func (c *Context) Processors() []Processor {
	return append([]Processor(nil), c.processors...)
}

// Active returns the focused session or nil.
func (c *Context) Active() *Session {
	return c.active
}

// DidBeginEditing starts a session for ed, ending any other one. It
// reports the focus and the attributes at the selection to the
// delegate.
func (c *Context) DidBeginEditing(ed Editor) *Session {
	if c.active != nil {
		c.active.DidEndEditing()
	}
	s := &Session{ctx: c, ed: ed}
	c.active = s

	if c.delegate != nil {
		c.delegate.DidReceiveFocus(ed.SelectedRange())
	}
	c.reportSelection(ed)
	return s
}

// reportSelection tells the delegate the selection and the attributes at
// its end, with the block content type split out.
func (c *Context) reportSelection(ed Editor) {
	if c.delegate == nil {
		return
	}
	sel := ed.SelectedRange()
	var attrs attributed.Attributes
	if t := ed.Text(); t != nil && sel.End() < t.Len() {
		attrs, _ = t.Attributes(sel.End())
	} else {
		attrs = ed.DefaultTypingAttributes()
	}
	attrs = attrs.Copy()
	contentType := UnknownContent
	if v, ok := attrs[style.KeyBlockContentType].(string); ok {
		contentType = v
	}
	delete(attrs, style.KeyBlockContentType)
	c.delegate.DidChangeSelection(sel, attrs, contentType)
}
