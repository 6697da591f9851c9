// Package markup renders the lightweight inline markup allowed in field
// display names into a safe, inert label. Raw HTML never survives and no
// script can reach the caller; links are extracted as data and flagged
// to open in a new browsing context.
package markup

import "strings"

// Link is a hyperlink extracted from a label.
type Link struct {
	Text string
	URL  string
	// NewTab is always true: field names come from user input and from
	// external services, and navigation must not replace the editor.
	NewTab bool
}

// Label is the rendered form of a field display name.
type Label struct {
	// Text is the plain-text rendering with markup stripped.
	Text  string
	Links []Link
}

// Render converts an inline-markup string into a Label. Supported
// markup: [text](url) links and *emphasis* / _emphasis_ markers, which
// are dropped. Raw HTML tags are stripped wholesale. Only http and
// https link targets are kept.
func Render(name string) Label {
	var out strings.Builder
	var links []Link

	s := stripTags(name)
	for i := 0; i < len(s); {
		if s[i] == '[' {
			if text, url, rest, ok := parseLink(s[i:]); ok {
				out.WriteString(text)
				if safeURL(url) {
					links = append(links, Link{Text: text, URL: url, NewTab: true})
				}
				i = len(s) - len(rest)
				continue
			}
		}
		if s[i] == '*' || s[i] == '_' {
			i++
			continue
		}
		out.WriteByte(s[i])
		i++
	}

	return Label{Text: out.String(), Links: links}
}

// parseLink consumes a leading "[text](url)" and returns the remainder.
func parseLink(s string) (text, url, rest string, ok bool) {
	close := strings.IndexByte(s, ']')
	if close < 0 || close+1 >= len(s) || s[close+1] != '(' {
		return "", "", "", false
	}
	end := strings.IndexByte(s[close+2:], ')')
	if end < 0 {
		return "", "", "", false
	}
	text = s[1:close]
	url = s[close+2 : close+2+end]
	rest = s[close+2+end+1:]
	return text, url, rest, true
}

// stripTags removes anything that looks like an HTML tag. Unterminated
// tags swallow the remainder rather than letting it leak through.
func stripTags(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	var out strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case inTag:
			if r == '>' {
				inTag = false
			}
		case r == '<':
			inTag = true
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}

func safeURL(url string) bool {
	lower := strings.ToLower(strings.TrimSpace(url))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
