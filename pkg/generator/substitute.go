package generator

import (
	"regexp"
	"strings"
)

// Segment is a slice of rendered text. Field is empty for literal template
// text and names the source field for substituted regions.
type Segment struct {
	Text  string
	Field string
}

// Pattern matches `<name>` placeholders for a fixed set of field names.
type Pattern struct {
	re *regexp.Regexp
}

// Compile builds a placeholder pattern for names. Names are matched
// literally, regexp metacharacters included.
func Compile(names []string) Pattern {
	quoted := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(name))
	}
	if len(quoted) == 0 {
		return Pattern{}
	}
	return Pattern{re: regexp.MustCompile("<(" + strings.Join(quoted, "|") + ")>")}
}

// Segments splits template into literal and substituted segments in a single
// left to right pass. Substituted values are never re-scanned, and
// placeholders naming unknown fields stay literal.
func (p Pattern) Segments(template string, values map[string]string) []Segment {
	if template == "" {
		return nil
	}
	if p.re == nil {
		return []Segment{{Text: template}}
	}

	var out []Segment
	last := 0
	for _, loc := range p.re.FindAllStringSubmatchIndex(template, -1) {
		if loc[0] > last {
			out = append(out, Segment{Text: template[last:loc[0]]})
		}
		name := template[loc[2]:loc[3]]
		out = append(out, Segment{Text: values[name], Field: name})
		last = loc[1]
	}
	if last < len(template) {
		out = append(out, Segment{Text: template[last:]})
	}
	return out
}

// Substitute replaces every known placeholder in template with its value.
func (p Pattern) Substitute(template string, values map[string]string) string {
	return Join(p.Segments(template, values))
}

// Substitute is a convenience wrapper compiling a pattern for the keys of
// values.
func Substitute(template string, values map[string]string) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	return Compile(names).Substitute(template, values)
}

// Join concatenates segment text.
func Join(segments []Segment) string {
	var b strings.Builder
	for _, segment := range segments {
		b.WriteString(segment.Text)
	}
	return b.String()
}
