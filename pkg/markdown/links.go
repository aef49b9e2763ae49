package markdown

import "strings"

//nolint:gochecknoglobals // Read-only scheme lists.
var (
	badProtocols  = []string{"javascript:", "vbscript:", "file:", "data:"}
	goodDataTypes = []string{"data:image/gif;", "data:image/png;", "data:image/jpeg;", "data:image/webp;"}
)

// ValidateLink reports whether url is safe to emit as a link target.
// Script schemes, file: and data: URLs other than common image types are
// rejected.
func (m *Markdown) ValidateLink(url string) bool {
	lower := strings.ToLower(strings.TrimSpace(url))

	for _, proto := range badProtocols {
		if !strings.HasPrefix(lower, proto) {
			continue
		}
		if proto != "data:" {
			return false
		}
		for _, good := range goodDataTypes {
			if strings.HasPrefix(lower, good) {
				return true
			}
		}
		return false
	}

	return true
}

// NormalizeLink prepares a link target for output. It is the identity for now.
func (m *Markdown) NormalizeLink(url string) string {
	return url
}

// NormalizeLinkText prepares a link for display. It is the identity for now.
func (m *Markdown) NormalizeLinkText(url string) string {
	return url
}
