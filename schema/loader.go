package schema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// File is an output schema stored on disk.
//
//	name: Book
//	multiple: true
//	fields:
//	  - name: title
//	    type: str
//	    description: The book title
//
// A bare list of fields is accepted too.
type File struct {
	Name     string      `json:"name" yaml:"name"`
	Multiple bool        `json:"multiple" yaml:"multiple"`
	Fields   []FieldSpec `json:"fields" yaml:"fields"`
}

// LoadFile reads a schema from path. The format follows the extension:
// .yaml/.yml or .json.
func LoadFile(path string) (*File, error) {
	return LoadFS(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

// LoadFS reads a schema file from fsys.
func LoadFS(fsys fs.FS, name string) (*File, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	return Parse(data, filepath.Ext(name))
}

// Parse decodes schema data in the format named by ext.
func Parse(data []byte, ext string) (*File, error) {
	var unmarshal func([]byte, any) error
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		unmarshal = yaml.Unmarshal
	case ".json":
		unmarshal = json.Unmarshal
	default:
		return nil, fmt.Errorf("format not supported: %q", ext)
	}

	var f File
	if err := unmarshal(data, &f); err != nil {
		var rows []FieldSpec
		if listErr := unmarshal(data, &rows); listErr != nil {
			return nil, fmt.Errorf("failed to parse schema: %w", err)
		}
		f.Fields = rows
	}

	if len(f.Fields) == 0 {
		return nil, ErrNoFields
	}
	return &f, nil
}
