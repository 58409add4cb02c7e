package config

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/promptgen.yaml
var defaultsFS embed.FS

const defaultsPath = "defaults/promptgen.yaml"

// FieldSpec declares a single form field: its canonical name, the value it
// starts with, and the option list for select-style fields.
type FieldSpec struct {
	Name      string   `json:"name" yaml:"name"`
	Label     string   `json:"label,omitempty" yaml:"label,omitempty"`
	Default   string   `json:"default" yaml:"default"`
	Options   []string `json:"options,omitempty" yaml:"options,omitempty"`
	Multiline bool     `json:"multiline,omitempty" yaml:"multiline,omitempty"`
}

// Config is the immutable generator configuration. Construct it with Parse,
// Load or Default; accessors hand out copies so callers cannot mutate the
// shared value.
type Config struct {
	draftKey string
	themeKey string

	nameField        string
	nameFallback     string
	categoryField    string
	categoryFallback string
	templateField    string
	aiType           string
	class            string

	filenameField    string
	filenameLimit    int
	filenameFallback string

	fields []FieldSpec
	index  map[string]int
}

type documentFile struct {
	Storage struct {
		DraftKey string `json:"draftKey" yaml:"draftKey"`
		ThemeKey string `json:"themeKey" yaml:"themeKey"`
	} `json:"storage" yaml:"storage"`
	Record struct {
		NameField        string `json:"nameField" yaml:"nameField"`
		NameFallback     string `json:"nameFallback" yaml:"nameFallback"`
		CategoryField    string `json:"categoryField" yaml:"categoryField"`
		CategoryFallback string `json:"categoryFallback" yaml:"categoryFallback"`
		TemplateField    string `json:"templateField" yaml:"templateField"`
		AIType           string `json:"aiType" yaml:"aiType"`
		Class            string `json:"class" yaml:"class"`
	} `json:"record" yaml:"record"`
	Export struct {
		FilenameField    string `json:"filenameField" yaml:"filenameField"`
		FilenameLimit    int    `json:"filenameLimit" yaml:"filenameLimit"`
		FilenameFallback string `json:"filenameFallback" yaml:"filenameFallback"`
	} `json:"export" yaml:"export"`
	Fields []FieldSpec `json:"fields" yaml:"fields"`
}

// Default returns the built-in configuration embedded in the binary.
func Default() Config {
	data, err := defaultsFS.ReadFile(defaultsPath)
	if err != nil {
		panic(fmt.Sprintf("config: read embedded defaults: %v", err))
	}
	cfg, err := Parse(data, defaultsPath)
	if err != nil {
		panic(err)
	}
	return cfg
}

// DefaultDocument returns the raw embedded defaults, useful as a starting
// point for a custom fields file.
func DefaultDocument() []byte {
	data, _ := defaultsFS.ReadFile(defaultsPath)
	return data
}

// Load reads and parses a JSON or YAML configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a configuration document. Values omitted from the document
// inherit the embedded defaults, except for the field list which is taken as
// a whole when present.
func Parse(data []byte, source string) (Config, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Config{}, fmt.Errorf("config: %s is empty", source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = documentFile{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", source, err)
		}
	}

	if source != defaultsPath {
		applyDocumentDefaults(&doc)
	}

	cfg := Config{
		draftKey:         strings.TrimSpace(doc.Storage.DraftKey),
		themeKey:         strings.TrimSpace(doc.Storage.ThemeKey),
		nameField:        strings.TrimSpace(doc.Record.NameField),
		nameFallback:     doc.Record.NameFallback,
		categoryField:    strings.TrimSpace(doc.Record.CategoryField),
		categoryFallback: doc.Record.CategoryFallback,
		templateField:    strings.TrimSpace(doc.Record.TemplateField),
		aiType:           doc.Record.AIType,
		class:            doc.Record.Class,
		filenameField:    strings.TrimSpace(doc.Export.FilenameField),
		filenameLimit:    doc.Export.FilenameLimit,
		filenameFallback: doc.Export.FilenameFallback,
		fields:           cloneSpecs(doc.Fields),
	}
	cfg.index = make(map[string]int, len(cfg.fields))
	for i := range cfg.fields {
		cfg.fields[i].Name = strings.TrimSpace(cfg.fields[i].Name)
		if _, exists := cfg.index[cfg.fields[i].Name]; !exists {
			cfg.index[cfg.fields[i].Name] = i
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", source, err)
	}
	return cfg, nil
}

func applyDocumentDefaults(doc *documentFile) {
	var base documentFile
	data, err := defaultsFS.ReadFile(defaultsPath)
	if err != nil {
		return
	}
	if err := yaml.Unmarshal(data, &base); err != nil {
		return
	}

	fill := func(dst *string, src string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = src
		}
	}
	fill(&doc.Storage.DraftKey, base.Storage.DraftKey)
	fill(&doc.Storage.ThemeKey, base.Storage.ThemeKey)
	fill(&doc.Record.NameField, base.Record.NameField)
	fill(&doc.Record.NameFallback, base.Record.NameFallback)
	fill(&doc.Record.CategoryField, base.Record.CategoryField)
	fill(&doc.Record.CategoryFallback, base.Record.CategoryFallback)
	fill(&doc.Record.TemplateField, base.Record.TemplateField)
	fill(&doc.Record.AIType, base.Record.AIType)
	fill(&doc.Record.Class, base.Record.Class)
	fill(&doc.Export.FilenameField, base.Export.FilenameField)
	fill(&doc.Export.FilenameFallback, base.Export.FilenameFallback)
	if doc.Export.FilenameLimit == 0 {
		doc.Export.FilenameLimit = base.Export.FilenameLimit
	}
	if len(doc.Fields) == 0 {
		doc.Fields = base.Fields
	}
}

// DraftKey is the storage key holding the persisted draft.
func (c Config) DraftKey() string { return c.draftKey }

// ThemeKey is the storage key holding the theme preference.
func (c Config) ThemeKey() string { return c.themeKey }

// NameField names the field that provides the record display name.
func (c Config) NameField() string { return c.nameField }

// NameFallback is used when the name field is empty.
func (c Config) NameFallback() string { return c.nameFallback }

// CategoryField names the field that provides the record category.
func (c Config) CategoryField() string { return c.categoryField }

// CategoryFallback is used when the category field is empty.
func (c Config) CategoryFallback() string { return c.categoryFallback }

// TemplateField names the field holding the prompt template.
func (c Config) TemplateField() string { return c.templateField }

// AIType is stamped on every generated record.
func (c Config) AIType() string { return c.aiType }

// Class is the `_class` discriminator stamped on every generated record.
func (c Config) Class() string { return c.class }

// FilenameField names the field export filenames derive from.
func (c Config) FilenameField() string { return c.filenameField }

// FilenameLimit bounds the length of the derived filename stem.
func (c Config) FilenameLimit() int { return c.filenameLimit }

// FilenameFallback is the stem used when the filename field is empty.
func (c Config) FilenameFallback() string { return c.filenameFallback }

// Fields returns the field specifications in canonical order.
func (c Config) Fields() []FieldSpec {
	return cloneSpecs(c.fields)
}

// Field looks up a single field specification by name.
func (c Config) Field(name string) (FieldSpec, bool) {
	idx, ok := c.index[name]
	if !ok {
		return FieldSpec{}, false
	}
	return cloneSpec(c.fields[idx]), true
}

// Names returns the field names in canonical order.
func (c Config) Names() []string {
	names := make([]string, len(c.fields))
	for i, spec := range c.fields {
		names[i] = spec.Name
	}
	return names
}

// Options returns the allowed values for a select-style field, or nil when
// the field is free text.
func (c Config) Options(name string) []string {
	spec, ok := c.Field(name)
	if !ok {
		return nil
	}
	return spec.Options
}

// Defaults returns the default value for every field keyed by name.
func (c Config) Defaults() map[string]string {
	out := make(map[string]string, len(c.fields))
	for _, spec := range c.fields {
		out[spec.Name] = spec.Default
	}
	return out
}

func cloneSpecs(specs []FieldSpec) []FieldSpec {
	if specs == nil {
		return nil
	}
	out := make([]FieldSpec, len(specs))
	for i, spec := range specs {
		out[i] = cloneSpec(spec)
	}
	return out
}

func cloneSpec(spec FieldSpec) FieldSpec {
	if spec.Options != nil {
		spec.Options = append([]string(nil), spec.Options...)
	}
	return spec
}
