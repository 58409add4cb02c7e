package model

// Field is a named string-valued unit of the form model. Domain lists the
// allowed values of select-style fields; it is advisory and does not restrict
// programmatic assignment.
type Field struct {
	Name      string   `json:"name"`
	Label     string   `json:"label,omitempty"`
	Value     string   `json:"value"`
	Domain    []string `json:"domain,omitempty"`
	Multiline bool     `json:"multiline,omitempty"`
}

// Enumerated reports whether the field is a select-style field.
func (f Field) Enumerated() bool {
	return len(f.Domain) > 0
}

// InDomain reports whether value is one of the field's allowed options. Free
// text fields accept everything.
func (f Field) InDomain(value string) bool {
	if !f.Enumerated() {
		return true
	}
	for _, option := range f.Domain {
		if option == value {
			return true
		}
	}
	return false
}

// DisplayLabel returns the label, falling back to the field name.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

func (f Field) clone() Field {
	if f.Domain != nil {
		f.Domain = append([]string(nil), f.Domain...)
	}
	return f
}
