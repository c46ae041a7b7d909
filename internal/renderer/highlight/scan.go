package highlight

import "strings"

const separators = ",.()+-/*=~%<>[]{};"

// IsSeparator reports whether c ends a word for number and keyword matching.
func IsSeparator(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r', 0:
		return true
	}
	return strings.IndexByte(separators, c) >= 0
}

// Highlight classifies display into tags using profile p. openIn reports
// whether the previous line ended inside a block comment; the return value
// is the same flag for this line. tags must be as long as display.
// A nil profile tags everything normal and never opens a comment.
func Highlight(p *Profile, display []byte, tags []Tag, openIn bool) bool {
	Fill(tags, 0, len(tags), TagNormal)
	if p == nil {
		return false
	}

	var (
		prevSep   = true
		inString  byte
		inComment = openIn && p.hasBlockComments()
		n         = len(display)
	)

	i := 0
scan:
	for i < n {
		c := display[i]
		prevTag := TagNormal
		if i > 0 {
			prevTag = tags[i-1]
		}

		if p.LineComment != "" && inString == 0 && !inComment && hasPrefixAt(display, i, p.LineComment) {
			Fill(tags, i, n, TagComment)
			break
		}

		if p.Has(HighlightStrings) {
			if inString != 0 {
				tags[i] = TagString
				if c == inString && display[i-1] != '\\' {
					inString = 0
				}
				prevSep = true
				i++
				continue
			}
			if c == '"' || c == '\'' {
				inString = c
				tags[i] = TagString
				i++
				continue
			}
		}

		if p.hasBlockComments() {
			if inComment {
				if hasPrefixAt(display, i, p.BlockEnd) {
					Fill(tags, i, i+len(p.BlockEnd), TagComment)
					i += len(p.BlockEnd)
					inComment = false
					prevSep = true
					continue
				}
				tags[i] = TagComment
				i++
				continue
			}
			if hasPrefixAt(display, i, p.BlockStart) {
				Fill(tags, i, i+len(p.BlockStart), TagComment)
				i += len(p.BlockStart)
				inComment = true
				continue
			}
		}

		if p.Has(HighlightNumbers) {
			if (isDigit(c) && (prevSep || prevTag == TagNumber)) || (c == '.' && prevTag == TagNumber) {
				tags[i] = TagNumber
				prevSep = false
				i++
				continue
			}
		}

		if prevSep {
			for _, kw := range p.Keywords {
				if kw.Text == "" || !hasPrefixAt(display, i, kw.Text) {
					continue
				}
				end := i + len(kw.Text)
				if !IsSeparator(byteAt(display, end)) {
					continue
				}
				tag := TagKeyword
				if kw.Secondary {
					tag = TagKeywordSecondary
				}
				Fill(tags, i, end, tag)
				i = end
				prevSep = false
				continue scan
			}
		}

		prevSep = IsSeparator(c)
		i++
	}

	return inComment
}

func hasPrefixAt(s []byte, i int, prefix string) bool {
	return len(s)-i >= len(prefix) && string(s[i:i+len(prefix)]) == prefix
}

// byteAt returns s[i], or NUL past the end of s.
func byteAt(s []byte, i int) byte {
	if i >= len(s) {
		return 0
	}
	return s[i]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
