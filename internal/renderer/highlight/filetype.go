package highlight

import "github.com/alecthomas/chroma/v2/lexers"

// NoFileType is shown when nothing is known about a file.
const NoFileType = "No filetype"

// FileType returns a status-bar label for filename. The profile name wins;
// otherwise chroma's lexer registry is consulted for a name only.
func FileType(filename string, p *Profile) string {
	if p != nil {
		return p.Name
	}
	if filename == "" {
		return NoFileType
	}
	if l := lexers.Match(filename); l != nil {
		if cfg := l.Config(); cfg != nil && cfg.Name != "" {
			return cfg.Name
		}
	}
	return NoFileType
}
