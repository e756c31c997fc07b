// Package style defines the attribute vocabulary understood by the list
// layout engine, the background compositor and the editing context, and
// typed accessors for reading it out of an attributed string.
package style

import (
	"image/color"

	"github.com/rjkroege/proton/attributed"
	"github.com/rjkroege/proton/typeface"
)

// Attribute keys.
const (
	KeyListItem           attributed.Key = "listItem"
	KeyListItemValue      attributed.Key = "listItemValue"
	KeyParagraphStyle     attributed.Key = "paragraphStyle"
	KeyBackgroundStyle    attributed.Key = "backgroundStyle"
	KeySkipNextListMarker attributed.Key = "skipNextListMarker"
	KeyLockedAttributes   attributed.Key = "lockedAttributes"
	KeyAttachment         attributed.Key = "attachment"
	KeyFont               attributed.Key = "font"
	KeyForegroundColor    attributed.Key = "foregroundColor"
	KeyBlockContentType   attributed.Key = "blockContentType"
)

// BlankLineFiller is the invisible placeholder the list processor puts
// at the start of an otherwise empty list line so the line can carry
// attributes.
const BlankLineFiller = '\u200B'

// ListTag says what kind of list item a range belongs to.
type ListTag string

const (
	ListNumbered         ListTag = "listItemNumber"
	ListBulleted         ListTag = "listItemBullet"
	ListChecklist        ListTag = "listItemChecklist"
	ListChecklistChecked ListTag = "listItemSelectedChecklist"
)

// IsNumbered reports whether t is a numbered item.
func (t ListTag) IsNumbered() bool { return t == ListNumbered }

// IsChecklist reports whether t is a checklist item in either state.
func (t ListTag) IsChecklist() bool {
	return t == ListChecklist || t == ListChecklistChecked
}

// Toggled returns the other checklist state. Other tags are unchanged.
func (t ListTag) Toggled() ListTag {
	switch t {
	case ListChecklist:
		return ListChecklistChecked
	case ListChecklistChecked:
		return ListChecklist
	}
	return t
}

// Paragraph is the subset of a paragraph style the engines read.
// FirstLineHeadIndent divided by the list indentation unit is the
// nesting level.
type Paragraph struct {
	FirstLineHeadIndent float64
	HeadIndent          float64
	LineSpacing         float64
	LineHeightMultiple  float64
	ParagraphSpacing    float64
}

// Level returns the nesting level for an indentation unit. A unit of
// zero or less yields level 0.
func (p Paragraph) Level(unit float64) int {
	if unit <= 0 {
		return 0
	}
	return int(p.FirstLineHeadIndent / unit)
}

// Indented returns p with both head indents set to level*unit.
func (p Paragraph) Indented(level int, unit float64) Paragraph {
	p.FirstLineHeadIndent = float64(level) * unit
	p.HeadIndent = p.FirstLineHeadIndent
	return p
}

// ListItem returns the list tag at offset i.
func ListItem(s *attributed.String, i int) (ListTag, bool) {
	return attributed.ValueAt[ListTag](s, KeyListItem, i)
}

// ListItemValue returns the numbering group at offset i.
func ListItemValue(s *attributed.String, i int) (string, bool) {
	return attributed.ValueAt[string](s, KeyListItemValue, i)
}

// ParagraphStyle returns the paragraph style at offset i.
func ParagraphStyle(s *attributed.String, i int) (Paragraph, bool) {
	return attributed.ValueAt[Paragraph](s, KeyParagraphStyle, i)
}

// ParagraphOr returns the paragraph style at offset i or def.
func ParagraphOr(s *attributed.String, i int, def Paragraph) Paragraph {
	if p, ok := ParagraphStyle(s, i); ok {
		return p
	}
	return def
}

// Font returns the font at offset i.
func Font(s *attributed.String, i int) (typeface.Face, bool) {
	return attributed.ValueAt[typeface.Face](s, KeyFont, i)
}

// FontOr returns the font at offset i or def.
func FontOr(s *attributed.String, i int, def typeface.Face) typeface.Face {
	if f, ok := Font(s, i); ok {
		return f
	}
	return def
}

// ForegroundColor returns the text colour at offset i.
func ForegroundColor(s *attributed.String, i int) (color.Color, bool) {
	return attributed.ValueAt[color.Color](s, KeyForegroundColor, i)
}

// SkipsNextListMarker reports whether the character at i suppresses the
// marker of the line that follows it.
func SkipsNextListMarker(s *attributed.String, i int) bool {
	_, ok := s.Attribute(KeySkipNextListMarker, i)
	return ok
}

// LockedAttributes returns the keys locked at offset i.
func LockedAttributes(a attributed.Attributes) []attributed.Key {
	keys, _ := attributed.Value[[]attributed.Key](a, KeyLockedAttributes)
	return keys
}

// BackgroundAt returns the background style at offset i.
func BackgroundAt(s *attributed.String, i int) (Background, bool) {
	return attributed.ValueAt[Background](s, KeyBackgroundStyle, i)
}

// AttachmentAt returns the attachment at offset i.
func AttachmentAt(s *attributed.String, i int) (*Attachment, bool) {
	return attributed.ValueAt[*Attachment](s, KeyAttachment, i)
}
