package vars

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/aescanero/dago-hbs-render/internal/value"
)

// Format is a variables document encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the format for a file name by its extension
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Load reads and decodes a variables file
func Load(path string) (value.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return value.Value{}, fmt.Errorf("failed to read variables file: %w", err)
	}

	v, err := Parse(data, FormatOf(path))
	if err != nil {
		return value.Value{}, fmt.Errorf("%s: %w", path, err)
	}

	return v, nil
}

// Parse decodes a variables document in the given format
func Parse(data []byte, format Format) (value.Value, error) {
	switch format {
	case FormatYAML:
		var raw interface{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return value.Value{}, fmt.Errorf("failed to decode yaml: %w", err)
		}
		return value.FromNative(raw), nil

	case FormatTOML:
		var raw map[string]interface{}
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return value.Value{}, fmt.Errorf("failed to decode toml: %w", err)
		}
		return value.FromNative(raw), nil

	case FormatJSON:
		return value.ParseJSON(data)

	default:
		return value.Value{}, fmt.Errorf("unsupported variables format %q", format)
	}
}
