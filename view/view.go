// Package view is a reference host for the list layout engine, the
// background compositor and the editing session.
//
// An EditorView owns an attributed string, lays it out with a
// Typesetter and draws it on a paint.Canvas: backgrounds first, then
// text, then list markers. Keystrokes go through the editing session the
// way a platform text view routes them through its delegate.
package view

import (
	"image/color"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rjkroege/proton/attributed"
	"github.com/rjkroege/proton/background"
	"github.com/rjkroege/proton/editor"
	"github.com/rjkroege/proton/geom"
	"github.com/rjkroege/proton/layout"
	"github.com/rjkroege/proton/listlayout"
	"github.com/rjkroege/proton/marker"
	"github.com/rjkroege/proton/paint"
	"github.com/rjkroege/proton/style"
	"github.com/rjkroege/proton/typeface"
)

// MarkerGap separates a marker from the text of its item.
const MarkerGap = 4

// Option configures an EditorView.
type Option func(*EditorView)

// WithWidth sets the text container width.
func WithWidth(w float64) Option {
	return func(v *EditorView) { v.width = w }
}

// WithFont sets the default font.
func WithFont(f typeface.Face) Option {
	return func(v *EditorView) { v.font = f }
}

// WithParagraph sets the default paragraph style.
func WithParagraph(p style.Paragraph) Option {
	return func(v *EditorView) { v.para = p }
}

// WithIndentation sets the indent of one list level.
func WithIndentation(unit float64) Option {
	return func(v *EditorView) { v.indentation = unit }
}

// WithInset sets the text container inset.
func WithInset(in geom.Insets) Option {
	return func(v *EditorView) { v.inset = in }
}

// WithTextColor sets the default text colour.
func WithTextColor(c color.Color) Option {
	return func(v *EditorView) { v.textColor = c }
}

// WithResolver sets the list marker resolver.
func WithResolver(r marker.Resolver) Option {
	return func(v *EditorView) { v.resolver = r }
}

// WithContext sets the editing context shared with other views.
func WithContext(c *editor.Context) Option {
	return func(v *EditorView) { v.editing = c }
}

// WithHorizontalLines registers a hook run before list markers are laid
// out.
func WithHorizontalLines(h listlayout.HorizontalLineDrawer) Option {
	return func(v *EditorView) { v.rules = h }
}

// WithLogger sets the logger handed to every component.
func WithLogger(l *slog.Logger) Option {
	return func(v *EditorView) { v.logger = l }
}

// EditorView is an editable rich text view.
type EditorView struct {
	text    *attributed.String
	lines   *layout.Typesetter
	lists   *listlayout.Engine
	bg      *background.Compositor
	editing *editor.Context
	session *editor.Session
	rules   listlayout.HorizontalLineDrawer

	sel    attributed.Range
	typing attributed.Attributes

	width       float64
	font        typeface.Face
	para        style.Paragraph
	indentation float64
	inset       geom.Insets
	textColor   color.Color
	resolver    marker.Resolver
	logger      *slog.Logger

	markers map[int]listlayout.Model
}

var (
	_ editor.Editor         = (*EditorView)(nil)
	_ listlayout.MarkerHost = (*EditorView)(nil)
	_ listlayout.Delegate   = (*EditorView)(nil)
	_ background.Delegate   = (*EditorView)(nil)
)

// New returns a view of text. A nil text starts empty.
func New(text *attributed.String, opts ...Option) *EditorView {
	v := &EditorView{
		width:       320,
		font:        typeface.NewFixed("Body", 16),
		indentation: listlayout.DefaultIndentation,
		textColor:   listlayout.DefaultColor,
		markers:     make(map[int]listlayout.Model),
	}
	for _, o := range opts {
		o(v)
	}
	if v.logger == nil {
		v.logger = slog.Default()
	}
	if v.resolver == nil {
		v.resolver = marker.NewStandard()
	}
	if v.editing == nil {
		v.editing = editor.New(editor.WithLogger(v.logger))
	}
	if text == nil {
		text = attributed.New("", nil)
	}
	v.text = text
	v.typing = v.DefaultTypingAttributes()
	v.lines = layout.NewTypesetter(text,
		layout.WithWidth(v.width),
		layout.WithDefaultFont(v.font),
		layout.WithDefaultParagraph(v.para))

	lopts := []listlayout.Option{listlayout.WithDelegate(v), listlayout.WithLogger(v.logger)}
	if v.rules != nil {
		lopts = append(lopts, listlayout.WithHorizontalLines(v.rules))
	}
	v.lists = listlayout.New(v, lopts...)
	v.bg = background.New(background.WithDelegate(v), background.WithLogger(v.logger))
	return v
}

// Text returns the storage. Edits made to it directly bypass the
// editing session.
func (v *EditorView) Text() *attributed.String { return v.text }

// Lines returns the typesetter laying out the view.
func (v *EditorView) Lines() *layout.Typesetter { return v.lines }

// SetText replaces the document and forgets all markers.
func (v *EditorView) SetText(s *attributed.String) {
	if s == nil {
		s = attributed.New("", nil)
	}
	v.text = s
	v.lines.SetText(s)
	v.lists.Clear()
	v.RemoveAllMarkers()
	v.sel = attributed.Range{}
	v.typing = v.DefaultTypingAttributes()
}

// Size is the size of the laid out content including the insets.
func (v *EditorView) Size() geom.Size {
	sz := v.lines.Size()
	sz.H += v.inset.Top + v.inset.Bottom
	sz.W += v.inset.Left + v.inset.Right
	return sz
}

// Focus starts an editing session for the view.
func (v *EditorView) Focus() {
	v.session = v.editing.DidBeginEditing(v)
}

// Blur ends the editing session.
func (v *EditorView) Blur() {
	if v.session != nil {
		v.session.DidEndEditing()
		v.session = nil
	}
}

// Session returns the current editing session, or nil when the view
// does not have focus.
func (v *EditorView) Session() *editor.Session {
	if v.session != nil && v.editing.Active() != v.session {
		v.session = nil
	}
	return v.session
}

// Select moves the selection. The typing attributes become those of
// the character before it.
func (v *EditorView) Select(r attributed.Range) {
	v.sel = r.Clamp(v.text.Len())
	if v.sel.Loc > 0 {
		v.typing, _ = v.text.Attributes(v.sel.Loc - 1)
		delete(v.typing, style.KeyAttachment)
	} else {
		v.typing = v.DefaultTypingAttributes()
	}
	if v.session != nil {
		v.session.DidChangeSelection()
	}
}

// Type enters s one character at a time at the selection. It returns
// the number of characters that were not vetoed.
func (v *EditorView) Type(s string) int {
	n := 0
	for _, r := range s {
		if v.Insert(string(r)) {
			n++
		}
	}
	return n
}

// Insert replaces the selection with text as one edit.
func (v *EditorView) Insert(text string) bool {
	return v.edit(v.sel.Clamp(v.text.Len()), text)
}

// Backspace deletes the selection, or the character before the caret.
func (v *EditorView) Backspace() bool {
	r := v.sel.Clamp(v.text.Len())
	if r.IsEmpty() {
		if r.Loc == 0 {
			return false
		}
		r = attributed.Rg(r.Loc-1, 1)
	}
	return v.edit(r, "")
}

func (v *EditorView) edit(r attributed.Range, text string) bool {
	if v.session != nil && !v.session.ShouldChangeText(r, text) {
		return false
	}
	v.text.Replace(r, text, v.typing.Copy())
	v.sel = attributed.Rg(r.Loc+utf8.RuneCountInString(text), 0)
	if v.session != nil {
		v.session.DidChangeText()
	}
	return true
}

// ToggleChecklist flips the checklist item holding offset i between
// checked and unchecked.
func (v *EditorView) ToggleChecklist(i int) bool {
	tag, ok := style.ListItem(v.text, i)
	if !ok || !tag.IsChecklist() {
		return false
	}
	_, r, _ := v.text.AttributeRange(style.KeyListItem, i)
	v.text.AddAttribute(style.KeyListItem, tag.Toggled(), r.Intersect(v.text.ParagraphRange(i)))
	return true
}

// Layout runs a list marker pass.
func (v *EditorView) Layout() {
	v.lists.Draw(v.text, v.lines)
}

// Markers returns the markers on screen in document order.
func (v *EditorView) Markers() []listlayout.Model {
	out := make([]listlayout.Model, 0, len(v.markers))
	for _, m := range v.markers {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Draw lays the view out and draws it on cv.
func (v *EditorView) Draw(cv paint.Canvas) {
	v.bg.Draw(cv, v.text, v.lines, v.text.FullRange())
	v.drawText(cv)
	v.Layout()
	for _, m := range v.Markers() {
		drawMarker(cv, m)
	}
}

// invisible are characters laid out but never drawn.
var invisible = strings.NewReplacer("\n", "", string(style.BlankLineFiller), "", string(style.AttachmentCharacter), " ")

func (v *EditorView) drawText(cv paint.Canvas) {
	for _, f := range v.lines.Lines() {
		ascent := 0.0
		v.text.EnumerateAttribute(style.KeyFont, f.Range, false, func(_ any, r attributed.Range) bool {
			ascent = max(ascent, v.fontAt(r.Loc).Ascender())
			return true
		})
		baseline := f.UsedRect.Y + v.inset.Top + ascent
		v.text.EnumerateAttribute(style.KeyFont, f.Range, false, func(_ any, r attributed.Range) bool {
			s := invisible.Replace(v.text.Substring(r))
			if strings.TrimSpace(s) == "" {
				return true
			}
			c, ok := style.ForegroundColor(v.text, r.Loc)
			if !ok {
				c = v.textColor
			}
			x := v.lines.BoundingRect(r).X
			cv.DrawText(s, v.fontAt(r.Loc), c, geom.Pt(x, baseline))
			return true
		})
	}
}

func (v *EditorView) fontAt(i int) typeface.Face {
	return style.FontOr(v.text, i, v.font)
}

// drawMarker draws m right aligned in its area.
func drawMarker(cv paint.Canvas, m listlayout.Model) {
	if m.Marker.IsImage() {
		sz := m.Marker.Size
		r := geom.Rect{
			X: max(m.Rect.MaxX()-sz.W-MarkerGap, m.Rect.X),
			Y: m.Rect.Y + (m.Rect.H-sz.H)/2,
			W: sz.W,
			H: sz.H,
		}
		cv.DrawImage(m.Marker.Image, r)
		return
	}
	f := m.Marker.Font
	if f == nil {
		return
	}
	x := max(m.Rect.MaxX()-f.Advance(m.Marker.Text)-MarkerGap, m.Rect.X)
	cv.DrawText(m.Marker.Text, f, m.Marker.Color, geom.Pt(x, m.Rect.Y+f.Ascender()))
}

// Editor

func (v *EditorView) SelectedRange() attributed.Range { return v.sel }

func (v *EditorView) SetSelectedRange(r attributed.Range) { v.sel = r.Clamp(v.text.Len()) }

func (v *EditorView) TypingAttributes() attributed.Attributes { return v.typing }

func (v *EditorView) SetTypingAttributes(a attributed.Attributes) { v.typing = a }

func (v *EditorView) DefaultTypingAttributes() attributed.Attributes {
	a := attributed.Attributes{style.KeyFont: v.font}
	if v.para != (style.Paragraph{}) {
		a[style.KeyParagraphStyle] = v.para
	}
	return a
}

func (v *EditorView) ReplaceCharacters(r attributed.Range, text string, attrs attributed.Attributes) {
	v.text.Replace(r, text, attrs)
}

// List engine and compositor settings

func (v *EditorView) ListIndentation() float64          { return v.indentation }
func (v *EditorView) DefaultFont() typeface.Face        { return v.font }
func (v *EditorView) DefaultParagraph() style.Paragraph { return v.para }
func (v *EditorView) TextColor() color.Color            { return v.textColor }
func (v *EditorView) TextContainerInset() geom.Insets   { return v.inset }

func (v *EditorView) ListMarker(index, level, previousLevel int, tag style.ListTag) marker.Marker {
	return v.resolver.Resolve(index, level, previousLevel, tag)
}

// Marker host

func (v *EditorView) AddMarker(m listlayout.Model)    { v.markers[m.Key] = m }
func (v *EditorView) UpdateMarker(m listlayout.Model) { v.markers[m.Key] = m }
func (v *EditorView) RemoveMarker(m listlayout.Model) { delete(v.markers, m.Key) }

func (v *EditorView) RemoveAllMarkers() {
	clear(v.markers)
}
