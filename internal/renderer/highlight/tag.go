// Package highlight classifies display cells for syntax coloring.
//
// A line is scanned once, left to right, over its rendered display bytes.
// The only state carried between lines is whether the previous line ended
// inside an unterminated block comment.
package highlight

// Tag is the highlight class of one display cell.
type Tag uint8

// Highlight classes.
const (
	TagNormal Tag = iota
	TagComment
	TagString
	TagNumber
	TagMatch
	TagKeyword
	TagKeywordSecondary
)

// String returns a string representation of the tag.
func (t Tag) String() string {
	switch t {
	case TagNormal:
		return "normal"
	case TagComment:
		return "comment"
	case TagString:
		return "string"
	case TagNumber:
		return "number"
	case TagMatch:
		return "match"
	case TagKeyword:
		return "keyword"
	case TagKeywordSecondary:
		return "keyword.secondary"
	default:
		return "unknown"
	}
}

// Fill sets tags[start:end] to tag, clipped to the slice.
func Fill(tags []Tag, start, end int, tag Tag) {
	if start < 0 {
		start = 0
	}
	if end > len(tags) {
		end = len(tags)
	}
	for i := start; i < end; i++ {
		tags[i] = tag
	}
}
