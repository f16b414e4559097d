// FILE: lixenwraith/logprops/loader.go
package logprops

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/BurntSushi/toml"
	"github.com/magiconair/properties"
	"gopkg.in/yaml.v3"
)

// Supported property file formats.
const (
	FormatAuto       = "auto"
	FormatProperties = "properties"
	FormatTOML       = "toml"
	FormatYAML       = "yaml"
	FormatJSON       = "json"
)

// FileOptions configures how a property file is loaded.
type FileOptions struct {
	// Format forces a format. Empty or FormatAuto detects it from the
	// extension, then from the content.
	Format string

	// Priority of the resulting source. Zero means FilePriority for
	// key/value formats and JSONPriority for JSON documents.
	Priority int

	// MaxFileSize rejects larger files when positive.
	MaxFileSize int64

	// ContextAware partitions key/value files by context, see
	// ContextAwareSource. Strict drops keys without context structure.
	ContextAware bool
	Strict       bool
}

// FileSource serves the properties of a file. Nested TOML and YAML tables
// flatten to dotted keys; JSON documents are served as a JSONSource.
// Reload re-reads the file and keeps the previous content when that fails.
type FileSource struct {
	path    string
	options FileOptions
	content atomic.Pointer[fileContent]
}

type fileContent struct {
	source PropertySource
	format string
}

var (
	_ EnumerableSource = (*FileSource)(nil)
	_ ReloadableSource = (*FileSource)(nil)
	_ ContextualSource = (*FileSource)(nil)
	_ ValueSource      = (*FileSource)(nil)
)

// NewFileSource loads path. A missing file yields ErrConfigNotFound.
func NewFileSource(path string, opts FileOptions) (*FileSource, error) {
	s := &FileSource{path: path, options: opts}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the file path.
func (s *FileSource) Path() string { return s.path }

// Format returns the format the file was parsed as.
func (s *FileSource) Format() string { return s.content.Load().format }

func (s *FileSource) inner() PropertySource {
	return s.content.Load().source
}

func (s *FileSource) Priority() int { return s.inner().Priority() }

func (s *FileSource) Property(key string) (string, bool) { return s.inner().Property(key) }

func (s *FileSource) Contains(key string) bool { return s.inner().Contains(key) }

func (s *FileSource) NormalForm(tokens []string) string { return s.inner().NormalForm(tokens) }

func (s *FileSource) PropertyNames() []string {
	if es, ok := s.inner().(EnumerableSource); ok {
		return es.PropertyNames()
	}
	return nil
}

func (s *FileSource) ContextProperty(context, key string) (string, bool) {
	return ContextProperty(s.inner(), context, key)
}

func (s *FileSource) Value(key string) (any, bool) {
	if vs, ok := s.inner().(ValueSource); ok {
		return vs.Value(key)
	}
	return nil, false
}

// Reload re-reads the file.
func (s *FileSource) Reload() error {
	return s.load()
}

func (s *FileSource) load() error {
	data, err := readFile(s.path, s.options.MaxFileSize)
	if err != nil {
		return err
	}

	format := s.options.Format
	if format == "" || format == FormatAuto {
		// Try extension first
		format = detectFileFormat(s.path)
		if format == "" {
			// Fall back to content detection
			format = detectFormatFromContent(data)
		}
	}

	src, err := parseSource(data, format, s.options)
	if err != nil {
		return fmt.Errorf("failed to load property file '%s': %w", s.path, err)
	}
	s.content.Store(&fileContent{source: src, format: format})
	return nil
}

func readFile(path string, maxSize int64) ([]byte, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat property file '%s': %w", path, err)
	}
	if maxSize > 0 && fileInfo.Size() > maxSize {
		return nil, fmt.Errorf("%w: '%s' exceeds %d bytes", ErrFileTooLarge, path, maxSize)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open property file '%s': %w", path, err)
	}
	defer file.Close()

	var reader io.Reader = file
	if maxSize > 0 {
		reader = io.LimitReader(file, maxSize)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read property file '%s': %w", path, err)
	}
	return data, nil
}

// parseSource turns file content into a PropertySource.
func parseSource(data []byte, format string, opts FileOptions) (PropertySource, error) {
	priority := opts.Priority
	if format == FormatJSON {
		if priority == 0 {
			priority = JSONPriority
		}
		return NewJSONSource(data, priority)
	}

	if priority == 0 {
		priority = FilePriority
	}
	flat, err := parseFlat(data, format)
	if err != nil {
		return nil, err
	}
	if opts.ContextAware {
		return NewContextAwareSource(flat, priority, opts.Strict, nil), nil
	}
	return NewMapSource(flat, priority), nil
}

func parseFlat(data []byte, format string) (map[string]string, error) {
	switch format {
	case FormatProperties:
		loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
		p, err := loader.LoadBytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse properties: %w", err)
		}
		return p.Map(), nil

	case FormatTOML:
		document := make(map[string]any)
		if err := toml.Unmarshal(data, &document); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
		return stringifyFlat(flattenMap(document, "")), nil

	case FormatYAML:
		document := make(map[string]any)
		if err := yaml.Unmarshal(data, &document); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		return stringifyFlat(flattenMap(document, "")), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func stringifyFlat(flat map[string]any) map[string]string {
	result := make(map[string]string, len(flat))
	for key, value := range flat {
		result[key] = stringifyValue(value)
	}
	return result
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".properties", ".props":
		return FormatProperties
	case ".toml", ".tml":
		return FormatTOML
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing. Java-style
// properties accept almost anything, so they are the last resort.
func detectFormatFromContent(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return FormatProperties
	}

	var jsonTest map[string]any
	if err := json.Unmarshal(trimmed, &jsonTest); err == nil {
		return FormatJSON
	}

	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return FormatTOML
	}

	var yamlTest map[string]any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil && len(yamlTest) > 0 {
		return FormatYAML
	}

	return FormatProperties
}
