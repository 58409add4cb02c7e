// Package highlight produces HTML fragments with syntax highlighting for the
// record document and span-tagged substitutions for the prompt text.
package highlight

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-promptgen/pkg/generator"
)

// jsonToken matches, in order of preference: a string literal with an
// optional trailing colon (object key), a boolean, null, or a number.
var jsonToken = regexp.MustCompile(`("(?:\\u[a-zA-Z0-9]{4}|\\[^u]|[^\\"])*")(\s*:)?|\b(true|false)\b|\bnull\b|-?\d+(?:\.\d*)?(?:[eE][+\-]?\d+)?`)

// TokenKind classifies a piece of a JSON document.
type TokenKind int

const (
	TokenPlain TokenKind = iota
	TokenKey
	TokenString
	TokenNumber
	TokenBoolean
	TokenNull
)

// Class returns the CSS class for the kind, empty for plain text.
func (k TokenKind) Class() string {
	switch k {
	case TokenKey:
		return "json-key"
	case TokenString:
		return "json-string"
	case TokenNumber:
		return "json-number"
	case TokenBoolean:
		return "json-boolean"
	case TokenNull:
		return "json-null"
	default:
		return ""
	}
}

// Walk splits doc into classified pieces and hands them to emit in order.
// Concatenating the pieces yields doc, except that whitespace between a key
// and its colon is dropped. Tokens are located on the raw document.
func Walk(doc string, emit func(kind TokenKind, text string)) {
	last := 0
	for _, loc := range jsonToken.FindAllStringSubmatchIndex(doc, -1) {
		if loc[0] > last {
			emit(TokenPlain, doc[last:loc[0]])
		}
		match := doc[loc[0]:loc[1]]

		switch {
		case loc[2] >= 0:
			if loc[4] >= 0 {
				emit(TokenKey, doc[loc[2]:loc[3]])
				emit(TokenPlain, ":")
			} else {
				emit(TokenString, match)
			}
		case loc[6] >= 0:
			emit(TokenBoolean, match)
		case match == "null":
			emit(TokenNull, match)
		default:
			emit(TokenNumber, match)
		}
		last = loc[1]
	}
	if last < len(doc) {
		emit(TokenPlain, doc[last:])
	}
}

// JSON wraps tokens of a JSON document in json-key, json-string,
// json-number, json-boolean and json-null spans. Every piece is escaped
// before emission, so escaping never alters what is matched.
func JSON(doc string) string {
	var b strings.Builder
	b.Grow(len(doc) * 2)

	Walk(doc, func(kind TokenKind, text string) {
		escaped := EscapeHTML(text)
		if kind == TokenPlain {
			b.WriteString(escaped)
			return
		}
		b.WriteString(`<span class="` + kind.Class() + `">` + escaped + `</span>`)
	})
	return b.String()
}

// Text renders segments as escaped HTML, wrapping each substituted region in
// a var-<field> span. Newlines become <br>.
func Text(segments []generator.Segment) string {
	var b strings.Builder
	for _, segment := range segments {
		escaped := EscapeHTML(segment.Text)
		if segment.Field == "" {
			b.WriteString(escaped)
			continue
		}
		b.WriteString(`<span class="var-` + ClassName(segment.Field) + `">` + escaped + `</span>`)
	}
	return strings.ReplaceAll(b.String(), "\n", "<br>")
}
