package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileSource reads a dataset document from a filesystem. The format follows the
// extension: .yaml/.yml is YAML, anything else is a JSON array of objects.
type FileSource struct {
	fsys fs.FS
	path string
}

// NewFileSource reads name from fsys (for example the embedded sample data).
func NewFileSource(fsys fs.FS, name string) *FileSource {
	return &FileSource{fsys: fsys, path: name}
}

// OpenFile reads a dataset from a path on disk.
func OpenFile(p string) *FileSource {
	return &FileSource{fsys: os.DirFS(filepath.Dir(p)), path: filepath.Base(p)}
}

func (s *FileSource) Name() string { return "file:" + s.path }

func (s *FileSource) ComponentRows(ctx context.Context) ([]ComponentRow, error) {
	var rows []ComponentRow
	if err := s.decode(&rows); err != nil {
		return nil, err
	}
	if rows == nil {
		return nil, errors.New("document is not a list of records")
	}
	return rows, nil
}

func (s *FileSource) MatchRows(ctx context.Context) ([]MatchRow, error) {
	var rows []MatchRow
	if err := s.decode(&rows); err != nil {
		return nil, err
	}
	if rows == nil {
		return nil, errors.New("document is not a list of records")
	}
	return rows, nil
}

func (s *FileSource) decode(out any) error {
	data, err := fs.ReadFile(s.fsys, s.path)
	if err != nil {
		return fmt.Errorf("read %s: %w", s.path, err)
	}

	switch strings.ToLower(path.Ext(s.path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("parse yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("parse json: %w", err)
		}
		if err := checkJSONKeys(data, out); err != nil {
			return fmt.Errorf("parse json: %w", err)
		}
	}
	return nil
}

// checkJSONKeys rejects keys that match a stored field name only when case is
// ignored. encoding/json would accept them silently; yaml.v3 already does not.
// out is a pointer to a slice of row structs.
func checkJSONKeys(data []byte, out any) error {
	var records []map[string]json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}

	known := jsonFieldNames(reflect.TypeOf(out).Elem().Elem())
	for i, rec := range records {
		keys := make([]string, 0, len(rec))
		for key := range rec {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		for _, key := range keys {
			if slices.Contains(known, key) {
				continue
			}
			for _, name := range known {
				if strings.EqualFold(key, name) {
					return fmt.Errorf("record %d: key %q must be spelled %q", i, key, name)
				}
			}
		}
	}
	return nil
}

func jsonFieldNames(t reflect.Type) []string {
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if name := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]; name != "" && name != "-" {
			names = append(names, name)
		}
	}
	return names
}
