package editor

import (
	"github.com/rjkroege/proton/attributed"
	"github.com/rjkroege/proton/style"
	"github.com/rjkroege/proton/typeface"
)

// Transaction is the state of an edit between ShouldChangeText and the
// DidChangeText that follows it.
type Transaction struct {
	Range attributed.Range
	Text  string

	// Background is the background style carried into the typing
	// attributes, reapplied to the inserted text.
	Background *style.Background

	Enter     bool
	Backspace bool

	length int
}

// Session is the editing state of one focused view. It is created by
// Context.DidBeginEditing and is inert once DidEndEditing has run.
type Session struct {
	ctx *Context
	ed  Editor

	editing bool
	tx      Transaction
	ended   bool
}

// Pending returns the edit in flight, if any.
func (s *Session) Pending() (Transaction, bool) {
	return s.tx, s.editing
}

// Editor returns the view the session edits.
func (s *Session) Editor() Editor {
	return s.ed
}

func (s *Session) reset() {
	s.editing = false
	s.tx = Transaction{}
}

// ShouldChangeText is called before the host replaces r with text. It
// returns false to veto the edit. Backspace arrives as an empty text.
func (s *Session) ShouldChangeText(r attributed.Range, text string) bool {
	if s.ended {
		return true
	}
	s.reset()
	t := s.ed.Text()
	if t == nil {
		return true
	}
	s.tx.length = t.Len()
	s.carryTypingAttributes(t, r)

	for _, p := range s.ctx.processors {
		if !p.ShouldProcess(s.ed, r, text) {
			s.ctx.logger.Debug("edit vetoed", "processor", p.Name(), "range", r)
			s.reset()
			return false
		}
	}

	switch text {
	case "":
		if s.handledKey(Backspace, r) || s.selectAttachment(t, r) {
			s.reset()
			return false
		}
		s.tx.Backspace = true
		s.begin(r, text)
		return true
	case "\n":
		if s.handledKey(Enter, r) {
			s.reset()
			return false
		}
		if d := s.ctx.delegate; d != nil {
			d.DidReceiveKey(Enter, r)
		}
		s.tx.Enter = true
	case "\t":
		if s.handledKey(Tab, r) {
			s.reset()
			return false
		}
	}
	s.fixEmojiFont(t, r)
	s.begin(r, text)
	return true
}

func (s *Session) begin(r attributed.Range, text string) {
	s.editing = true
	s.tx.Range = r
	s.tx.Text = text
}

func (s *Session) handledKey(k Key, r attributed.Range) bool {
	if d := s.ctx.delegate; d != nil {
		return d.ShouldHandleKey(k, r)
	}
	return false
}

// carryTypingAttributes gives the typing attributes the background of
// the character before r, then strips the keys that character locks. A
// blank line filler without a background defers to the character
// before it.
func (s *Session) carryTypingAttributes(t *attributed.String, r attributed.Range) {
	if r.Loc <= 0 || r.Loc > t.Len() {
		return
	}
	attrs, _ := t.Attributes(r.Loc - 1)
	typing := s.ed.TypingAttributes().Copy()

	if !typing.Has(style.KeyBackgroundStyle) {
		bg, ok := attrs[style.KeyBackgroundStyle].(style.Background)
		if ch, _ := t.RuneAt(r.Loc - 1); !ok && ch == style.BlankLineFiller {
			bg, ok = style.BackgroundAt(t, r.Loc-2)
		}
		if ok {
			typing[style.KeyBackgroundStyle] = bg
			s.tx.Background = &bg
		}
	}
	for _, k := range style.LockedAttributes(attrs) {
		delete(typing, k)
	}
	s.ed.SetTypingAttributes(typing)
}

// selectAttachment selects an unselected attachment that wants to be
// selected before it is deleted. It reports whether it did.
func (s *Session) selectAttachment(t *attributed.String, r attributed.Range) bool {
	if r.Len != 1 || r.Loc >= t.Len() {
		return false
	}
	a, ok := style.AttachmentAt(t, r.Loc)
	if !ok || a == nil || !a.SelectBeforeDelete || a.Selected {
		return false
	}
	a.Selected = true
	s.ctx.logger.Debug("attachment selected instead of deleted", "name", a.Name, "at", r.Loc)
	return true
}

// fixEmojiFont replaces an emoji typing font with the nearest non-emoji
// font before r, or the default font.
func (s *Session) fixEmojiFont(t *attributed.String, r attributed.Range) {
	typing := s.ed.TypingAttributes()
	f, ok := typing[style.KeyFont].(typeface.Face)
	if !ok || f == nil || !f.IsEmoji() {
		return
	}
	var font typeface.Face
	t.EnumerateAttribute(style.KeyFont, attributed.Rg(0, r.Loc), true, func(v any, _ attributed.Range) bool {
		if f, ok := v.(typeface.Face); ok && f != nil && !f.IsEmoji() {
			font = f
			return false
		}
		return true
	})
	if font == nil {
		font = s.ed.DefaultFont()
	}
	typing = typing.Copy()
	typing[style.KeyFont] = font
	s.ed.SetTypingAttributes(typing)
	s.ctx.logger.Debug("emoji typing font replaced", "from", f.Name(), "to", faceName(font))
}

func faceName(f typeface.Face) string {
	if f == nil {
		return ""
	}
	return f.Name()
}

// DidChangeText is called after the host applied an edit. The pending
// transaction is always cleared.
func (s *Session) DidChangeText() {
	if s.ended {
		return
	}
	defer s.reset()
	t := s.ed.Text()
	if t == nil {
		return
	}

	s.fixEmojiFont(t, s.ed.SelectedRange())
	s.reapplyBackground(t)
	if !s.editing || t.Len() >= s.tx.length {
		s.propagateList(t)
	}
	for _, p := range s.ctx.processors {
		p.DidProcess(s.ed)
	}
	if s.editing && s.tx.Enter {
		s.repairNewLine(t)
	}
	if d := s.ctx.delegate; d != nil {
		d.DidChangeText(s.ed.SelectedRange())
	}
}

// DidChangeSelection reports a selection change to the delegate.
func (s *Session) DidChangeSelection() {
	if s.ended {
		return
	}
	s.ctx.reportSelection(s.ed)
}

// DidEndEditing ends the session and reports the focus loss.
func (s *Session) DidEndEditing() {
	if s.ended {
		return
	}
	s.ended = true
	s.reset()
	if s.ctx.active == s {
		s.ctx.active = nil
	}
	if d := s.ctx.delegate; d != nil {
		d.DidLoseFocus(s.ed.SelectedRange())
	}
}

// reapplyBackground gives the inserted text the background carried into
// the typing attributes where it has none.
func (s *Session) reapplyBackground(t *attributed.String) {
	if !s.editing || s.tx.Background == nil || s.tx.Text == "" {
		return
	}
	in := attributed.Rg(s.tx.Range.Loc, len([]rune(s.tx.Text))).Clamp(t.Len())
	t.EnumerateAttribute(style.KeyBackgroundStyle, in, false, func(v any, r attributed.Range) bool {
		if v == nil {
			t.AddAttribute(style.KeyBackgroundStyle, *s.tx.Background, r)
		}
		return true
	})
}

// propagateList extends the list item two characters before the
// selection end over the text typed after it, and makes it the typing
// list item.
func (s *Session) propagateList(t *attributed.String) {
	n := t.Len()
	if n == 0 {
		return
	}
	pos := max(0, min(s.ed.SelectedRange().End(), n)-2)
	tag, ok := style.ListItem(t, pos)
	if !ok {
		return
	}
	if p, ok := style.ParagraphStyle(t, pos); !ok || p.FirstLineHeadIndent <= 0 {
		return
	}
	group, grouped := style.ListItemValue(t, pos)

	typing := s.ed.TypingAttributes().Copy()
	typing[style.KeyListItem] = tag
	if !tag.IsChecklist() {
		if grouped {
			typing[style.KeyListItemValue] = group
		} else {
			delete(typing, style.KeyListItemValue)
		}
	}
	s.ed.SetTypingAttributes(typing)

	r := attributed.Rg(pos, 2).Clamp(n)
	t.AddAttribute(style.KeyListItem, tag, r)
	if grouped {
		t.AddAttribute(style.KeyListItemValue, group, r)
	} else {
		t.RemoveAttribute(style.KeyListItemValue, r)
	}
}

// repairNewLine puts a blank line filler at the start of the line
// after a line break when that line is an indented list line with
// content, and tells the paragraph observers. Empty lines are left
// alone.
func (s *Session) repairNewLine(t *attributed.String) {
	start := s.tx.Range.Loc + 1
	if start > t.Len() {
		return
	}
	if ch, _ := t.RuneAt(start); start < t.Len() && ch != '\n' && ch != style.BlankLineFiller {
		attrs, _ := t.Attributes(start)
		_, listed := attrs[style.KeyListItem].(style.ListTag)
		para, ok := attrs[style.KeyParagraphStyle].(style.Paragraph)
		if listed && ok && para.FirstLineHeadIndent > 0 {
			delete(attrs, style.KeySkipNextListMarker)
			sel := s.ed.SelectedRange()
			s.ed.ReplaceCharacters(attributed.Rg(start, 0), string(style.BlankLineFiller), attrs)
			if sel.Loc >= start {
				s.ed.SetSelectedRange(attributed.Rg(sel.Loc+1, sel.Len))
			}
			s.ctx.logger.Debug("blank line filler inserted", "at", start)
		}
	}
	for _, o := range s.ctx.observers {
		o.DidChangeParagraph(s.ed, t.ParagraphRange(start))
	}
}
