package manifest

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/arthur-debert/resman/pkg/errors"
	"github.com/arthur-debert/resman/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format names a manifest encoding
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFor returns configured unless it is empty or auto, in which case
// the format is derived from the file extension. Unknown extensions are JSON.
func FormatFor(path string, configured Format) Format {
	if configured != "" && configured != FormatAuto {
		return configured
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// document is the on-disk layout. Resources hold a string for a single
// path reference and a list otherwise.
type document struct {
	Name          string                 `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
	Resources     map[string]interface{} `json:"resources,omitempty" toml:"resources,omitempty" yaml:"resources,omitempty"`
	Override      []string               `json:"override,omitempty" toml:"override,omitempty" yaml:"override,omitempty"`
	OverrideOrder []string               `json:"override-order,omitempty" toml:"override-order,omitempty" yaml:"override-order,omitempty"`
	Packages      map[string]installDoc  `json:"packages,omitempty" toml:"packages,omitempty" yaml:"packages,omitempty"`
}

type installDoc struct {
	InstallPath string `json:"install-path" toml:"install-path" yaml:"install-path"`
}

// Decode parses data in the given format
func Decode(data []byte, format Format) (*Manifest, error) {
	raw := map[string]interface{}{}
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &raw)
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	case FormatJSON:
		if len(bytes.TrimSpace(data)) > 0 {
			err = json.Unmarshal(data, &raw)
		}
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown manifest format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "invalid %s manifest", format)
	}

	var m Manifest
	var meta mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &m,
		TagName:    "manifest",
		Metadata:   &meta,
		DecodeHook: singleValueToSliceHook,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot create manifest decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "invalid %s manifest", format)
	}
	if len(meta.Unused) > 0 {
		slices.Sort(meta.Unused)
		logger := logging.GetLogger(component)
		logger.Debug().Strs("keys", meta.Unused).Msg("Ignoring unknown manifest keys")
	}
	return &m, nil
}

// Encode renders m in the given format
func Encode(m *Manifest, format Format) ([]byte, error) {
	doc := document{
		Name:          m.Name,
		Override:      m.Override,
		OverrideOrder: m.OverrideOrder,
	}
	if len(m.Resources) > 0 {
		doc.Resources = make(map[string]interface{}, len(m.Resources))
		for path, refs := range m.Resources {
			if len(refs) == 1 {
				doc.Resources[path] = refs[0]
			} else {
				doc.Resources[path] = refs
			}
		}
	}
	if len(m.Packages) > 0 {
		doc.Packages = make(map[string]installDoc, len(m.Packages))
		for name, entry := range m.Packages {
			doc.Packages[name] = installDoc{InstallPath: entry.InstallPath}
		}
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatTOML:
		data, err = toml.Marshal(doc)
	case FormatYAML:
		data, err = yaml.Marshal(doc)
	case FormatJSON:
		data, err = json.MarshalIndent(doc, "", "    ")
		data = append(data, '\n')
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown manifest format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestWrite, "cannot encode %s manifest", format)
	}
	return data, nil
}

// singleValueToSliceHook accepts "res" where ["res"] is expected
func singleValueToSliceHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() == reflect.String && to.Kind() == reflect.Slice {
		return []string{data.(string)}, nil
	}
	return data, nil
}
