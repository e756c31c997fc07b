// Package listlayout draws list markers.
//
// Each pass walks the runs of text tagged as list items, numbers their
// paragraphs, places a marker in the first line indent of every line
// that starts a paragraph, and reconciles the markers with those of the
// previous pass through a MarkerHost.
package listlayout

import (
	"image/color"
	"log/slog"

	"github.com/rjkroege/proton/attributed"
	"github.com/rjkroege/proton/geom"
	"github.com/rjkroege/proton/layout"
	"github.com/rjkroege/proton/marker"
	"github.com/rjkroege/proton/style"
	"github.com/rjkroege/proton/typeface"
)

// Option configures an Engine.
type Option func(*Engine)

// WithDelegate sets where the engine reads editor settings from.
func WithDelegate(d Delegate) Option {
	return func(e *Engine) { e.delegate = d }
}

// WithLogger sets the logger for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithHorizontalLines registers a hook run at the start of every pass.
func WithHorizontalLines(h HorizontalLineDrawer) Option {
	return func(e *Engine) { e.rules = h }
}

// Engine is the list marker layout engine. It is not safe for
// concurrent use; a pass must finish before the text is edited again.
type Engine struct {
	host     MarkerHost
	delegate Delegate
	rules    HorizontalLineDrawer
	logger   *slog.Logger

	// Per pass state.
	groups   map[groupKey]int
	counters map[int]int
	models   []Model
	seen     map[int]bool

	last []Model
}

// groupKey identifies a numbering sequence.
type groupKey struct {
	group string
	level int
}

// listRun is a maximal range with one list tag.
type listRun struct {
	r   attributed.Range
	tag style.ListTag
}

// line remembers the last line laid out in a run.
type line struct {
	rect geom.Rect
	para style.Paragraph
	font typeface.Face
}

// New returns an engine reporting markers to host. A nil host is
// allowed; passes then only compute models.
func New(host MarkerHost, opts ...Option) *Engine {
	e := &Engine{host: host}
	for _, o := range opts {
		o(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Models returns the markers of the last pass in document order.
func (e *Engine) Models() []Model {
	return append([]Model(nil), e.last...)
}

// Clear forgets the markers of the last pass without touching the host.
func (e *Engine) Clear() {
	e.last = nil
	e.models = nil
}

// Draw runs one pass over s laid out by lines.
func (e *Engine) Draw(s *attributed.String, lines layout.Enumerator) {
	if s == nil || lines == nil {
		return
	}
	if e.rules != nil {
		e.rules.DrawHorizontalLines()
	}

	var runs []listRun
	s.EnumerateAttribute(style.KeyListItem, s.FullRange(), false, func(v any, r attributed.Range) bool {
		if tag, ok := v.(style.ListTag); ok {
			runs = append(runs, listRun{r: r, tag: tag})
		}
		return true
	})

	if len(runs) == 0 {
		if e.host != nil {
			e.host.RemoveAllMarkers()
		}
		if len(e.last) > 0 {
			e.logger.Debug("list markers cleared", "count", len(e.last))
		}
		e.last = nil
		return
	}

	// Runs with different tags that touch share a boundary character;
	// the earlier run gives it up.
	for i := 1; i < len(runs); i++ {
		if prev := &runs[i-1]; prev.r.End() == runs[i].r.Loc && prev.r.Len > 0 {
			prev.r.Len--
		}
	}

	e.groups = make(map[groupKey]int)
	e.seen = make(map[int]bool)
	e.models = nil
	for _, run := range runs {
		e.drawRun(s, lines, run)
	}

	e.reconcile(e.models)
	e.last = e.models
	e.models = nil
	e.groups = nil
	e.seen = nil
}

func (e *Engine) drawRun(s *attributed.String, lines layout.Enumerator, run listRun) {
	unit := e.indentation()
	defFont := e.defaultFont()
	defPara := e.defaultParagraph()

	continued := run.r.Loc > 0
	if continued {
		_, continued = style.ListItem(s, run.r.Loc-1)
	}
	if !continued || e.counters == nil {
		e.counters = make(map[int]int)
	}
	e.clampLevels(s, run, unit)

	previousLevel := 0
	var last *line
	lines.EnumerateLineFragments(run.r, func(f layout.Fragment) bool {
		loc := f.Range.Loc
		startsParagraph, skip := true, false
		if loc > 0 {
			r, _ := s.RuneAt(loc - 1)
			startsParagraph = r == '\n'
			skip = style.SkipsNextListMarker(s, loc-1)
		}

		fontAt := loc
		if r, _ := s.RuneAt(loc); r == style.BlankLineFiller && f.Range.Len > 1 {
			fontAt = loc + 1
		}
		font := style.FontOr(s, fontAt, orFace(defFont, f.Font))
		para := style.ParagraphOr(s, loc, defPara)

		rect := f.Rect
		rect.H = f.UsedRect.H
		if startsParagraph && !skip {
			level := para.Level(unit)
			index := 0
			if run.tag.IsNumbered() && level > 0 {
				group, ok := style.ListItemValue(s, loc)
				index = e.nextIndex(group, ok, level, previousLevel)
			}
			e.addMarker(loc, level, previousLevel, index, rect, para, font, run.tag)
			previousLevel = level
		}
		last = &line{rect: f.Rect, para: para, font: font}
		return true
	})

	// The caret line below a list that ends in a newline shows the next
	// marker before anything is typed on it.
	n := s.Len()
	if r, _ := s.RuneAt(n - 1); r == '\n' && style.SkipsNextListMarker(s, n-1) {
		return
	}
	if last == nil || n <= 1 {
		return
	}
	if r, _ := s.RuneAt(run.r.End() - 1); r != '\n' {
		return
	}
	level := last.para.Level(unit)
	if n > run.r.End() {
		// A list of another kind starting there draws its own marker.
		if _, ok := style.ListItem(s, run.r.End()); ok {
			return
		}
		if style.ParagraphOr(s, run.r.End(), defPara).Level(unit) != level {
			return
		}
	}
	index := 0
	if run.tag.IsNumbered() && level > 0 {
		group, ok := style.ListItemValue(s, run.r.End()-1)
		index = e.nextIndex(group, ok, level, previousLevel)
	}
	rect := geom.Rect{X: last.rect.MinX(), Y: last.rect.MaxY(), W: last.rect.W, H: last.rect.H}
	e.addMarker(run.r.End(), level, previousLevel, index, rect, last.para, last.font, run.tag)
}

// clampLevels rewrites the indentation of paragraphs nested more than
// one level deeper than the paragraph before them.
func (e *Engine) clampLevels(s *attributed.String, run listRun, unit float64) {
	prevLevel := 0
	if run.r.Loc > 0 {
		if _, ok := style.ListItem(s, run.r.Loc-1); ok {
			if p, ok := style.ParagraphStyle(s, run.r.Loc-1); ok {
				prevLevel = p.Level(unit)
			}
		}
	}
	s.EnumerateAttribute(style.KeyParagraphStyle, run.r, false, func(v any, r attributed.Range) bool {
		p, ok := v.(style.Paragraph)
		if !ok {
			return true
		}
		if level := p.Level(unit); level-prevLevel > 1 {
			p = p.Indented(prevLevel+1, unit)
			s.AddAttribute(style.KeyParagraphStyle, p, r)
			e.logger.Debug("list level clamped", "range", r, "from", level, "to", prevLevel+1)
		}
		prevLevel = p.Level(unit)
		return true
	})
}

// nextIndex returns the index of the next numbered item at level. Items
// with a group number through the whole document; others number within
// their run. Moving deeper than level 1 starts again from 0.
func (e *Engine) nextIndex(group string, grouped bool, level, previousLevel int) int {
	reset := level > previousLevel && level > 1
	if !grouped {
		if reset {
			e.counters[level] = 0
		}
		i := e.counters[level]
		e.counters[level] = i + 1
		return i
	}
	k := groupKey{group: group, level: level}
	if reset {
		e.groups[k] = 0
	}
	i := e.groups[k]
	e.groups[k] = i + 1
	return i
}

func (e *Engine) addMarker(key, level, previousLevel, index int, rect geom.Rect, para style.Paragraph, font typeface.Face, tag style.ListTag) {
	if level <= 0 || e.seen[key] {
		return
	}
	m := e.resolve(index, level, previousLevel, tag)
	if m.IsEmpty() {
		return
	}
	if rect.H > para.LineSpacing+font.PointSize() {
		rect.H -= para.LineSpacing
	}
	model := Model{
		Key:   key,
		Rect:  geom.Rect{X: rect.MinX(), Y: rect.MinY() + e.inset().Top, W: para.FirstLineHeadIndent, H: rect.H},
		Tag:   tag,
		Level: level,
		Index: index,
	}
	if m.IsImage() {
		size := m.DisplaySize(font.PointSize())
		model.Marker = marker.Marker{Image: marker.Resize(m.Image, size), Size: size}
		model.Checked = m.IsChecklist() && tag == style.ListChecklistChecked
	} else {
		f := font
		if m.Font != nil {
			f = m.Font.WithSize(font.PointSize())
		}
		c := m.Color
		if c == nil {
			c = e.textColor()
		}
		model.Marker = marker.Marker{Text: m.Text, Font: f, Color: c}
	}
	e.seen[key] = true
	e.models = append(e.models, model)
}

// reconcile reports the difference between the last pass and next to
// the host.
func (e *Engine) reconcile(next []Model) {
	if e.host == nil {
		return
	}
	old := make(map[int]bool, len(e.last))
	for _, m := range e.last {
		old[m.Key] = true
	}
	keep := make(map[int]bool, len(next))
	for _, m := range next {
		keep[m.Key] = true
	}

	var added, updated, removed int
	for _, m := range e.last {
		if !keep[m.Key] {
			e.host.RemoveMarker(m)
			removed++
		}
	}
	for _, m := range next {
		if old[m.Key] {
			e.host.UpdateMarker(m)
			updated++
			continue
		}
		e.host.AddMarker(m)
		added++
	}
	e.logger.Debug("list markers reconciled", "added", added, "updated", updated, "removed", removed)
}

func (e *Engine) resolve(index, level, previousLevel int, tag style.ListTag) marker.Marker {
	if e.delegate == nil {
		return marker.Default().Resolve(index, level, previousLevel, tag)
	}
	return e.delegate.ListMarker(index, level, previousLevel, tag)
}

func (e *Engine) indentation() float64 {
	if e.delegate != nil {
		if v := e.delegate.ListIndentation(); v > 0 {
			return v
		}
	}
	return DefaultIndentation
}

func (e *Engine) defaultFont() typeface.Face {
	if e.delegate != nil {
		return e.delegate.DefaultFont()
	}
	return nil
}

func (e *Engine) defaultParagraph() style.Paragraph {
	if e.delegate != nil {
		return e.delegate.DefaultParagraph()
	}
	return style.Paragraph{}
}

func (e *Engine) textColor() color.Color {
	if e.delegate != nil {
		if c := e.delegate.TextColor(); c != nil {
			return c
		}
	}
	return DefaultColor
}

func (e *Engine) inset() geom.Insets {
	if e.delegate != nil {
		return e.delegate.TextContainerInset()
	}
	return geom.Insets{}
}

// orFace returns the first non-nil face, or the body font.
func orFace(faces ...typeface.Face) typeface.Face {
	for _, f := range faces {
		if f != nil {
			return f
		}
	}
	return typeface.NewFixed("Body", 16)
}
