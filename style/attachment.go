package style

import "github.com/rjkroege/proton/geom"

// Attachment is an inline object occupying one character. Only the
// parts the editing context needs are modelled.
type Attachment struct {
	Name string
	Size geom.Size

	// SelectBeforeDelete makes the first backspace in front of the
	// attachment select it and only the second delete it.
	SelectBeforeDelete bool
	Selected           bool
}

// AttachmentCharacter is the object replacement character attachments
// occupy in the text.
const AttachmentCharacter = '\uFFFC'
