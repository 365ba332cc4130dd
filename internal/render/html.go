package render

import (
	"strings"

	xhtml "golang.org/x/net/html"
)

// blockTags start a new line in the extracted text.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"pre": true, "hr": true, "section": true, "article": true,
}

// skipTags hold content that is never shown to the user.
var skipTags = map[string]bool{
	"head": true, "title": true, "script": true, "style": true, "noscript": true,
}

// LooksLikeHTML reports whether a response body is an HTML document rather
// than JSON or plain text. Web servers and proxies in front of the backend
// answer errors with small HTML pages.
func LooksLikeHTML(body string) bool {
	s := strings.ToLower(strings.TrimSpace(body))
	return strings.HasPrefix(s, "<!doctype html") ||
		strings.HasPrefix(s, "<html") ||
		(strings.HasPrefix(s, "<") && strings.Contains(s, "</"))
}

// HTMLToText converts an HTML page to plain text, one line per block element,
// wrapped to width (no wrapping when width <= 0).
func HTMLToText(raw string, width int) string {
	if raw == "" {
		return ""
	}

	tokenizer := xhtml.NewTokenizer(strings.NewReader(raw))
	var lines []string
	var line strings.Builder
	skipDepth := 0

	flush := func() {
		text := strings.Join(strings.Fields(line.String()), " ")
		if text != "" {
			lines = append(lines, text)
		}
		line.Reset()
	}

	for {
		tt := tokenizer.Next()
		switch tt {
		case xhtml.ErrorToken:
			flush()
			return Wrap(strings.Join(lines, "\n"), width)

		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			tag := string(name)
			if skipTags[tag] && tt == xhtml.StartTagToken {
				skipDepth++
				continue
			}
			if blockTags[tag] {
				flush()
			}

		case xhtml.EndTagToken:
			name, _ := tokenizer.TagName()
			tag := string(name)
			if skipTags[tag] {
				if skipDepth > 0 {
					skipDepth--
				}
				continue
			}
			if blockTags[tag] {
				flush()
			}

		case xhtml.TextToken:
			if skipDepth > 0 {
				continue
			}
			// Token() unescapes entities.
			line.WriteString(tokenizer.Token().Data)
			line.WriteString(" ")
		}
	}
}

// Wrap performs simple word wrapping to the given width.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	var result strings.Builder
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}
		lineLen := 0
		for i, word := range words {
			wlen := len(word)
			if i > 0 && lineLen+1+wlen > width {
				result.WriteString("\n")
				lineLen = 0
			} else if i > 0 {
				result.WriteString(" ")
				lineLen++
			}
			result.WriteString(word)
			lineLen += wlen
		}
		result.WriteString("\n")
	}
	return strings.TrimRight(result.String(), "\n")
}
