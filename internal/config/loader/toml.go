package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// TOMLLoader decodes TOML files into typed configuration structs.
// Unknown keys are rejected so typos surface as errors.
type TOMLLoader struct {
	fs   FileSystem
	path string
}

// NewTOMLLoader creates a TOML loader for path on the OS file system.
func NewTOMLLoader(path string) *TOMLLoader {
	return NewTOMLLoaderWithFS(DefaultFS(), path)
}

// NewTOMLLoaderWithFS creates a TOML loader with a custom file system.
func NewTOMLLoaderWithFS(fsys FileSystem, path string) *TOMLLoader {
	return &TOMLLoader{
		fs:   fsys,
		path: path,
	}
}

// Path returns the configured file path.
func (l *TOMLLoader) Path() string {
	return l.path
}

// Decode reads the configured file into v. Fields absent from the file
// keep their current values. It reports false, nil when the file does not
// exist.
func (l *TOMLLoader) Decode(v any) (bool, error) {
	data, err := l.fs.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading config file %s: %w", l.path, err)
	}
	if err := l.decode(l.path, data, v); err != nil {
		return false, err
	}
	return true, nil
}

// DecodeReader reads TOML from r into v.
func (l *TOMLLoader) DecodeReader(r io.Reader, v any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	return l.decode("<reader>", data, v)
}

func (l *TOMLLoader) decode(source string, data []byte, v any) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return newParseError(source, err)
	}
	return nil
}

func newParseError(source string, err error) *ParseError {
	perr := &ParseError{
		Path:    source,
		Message: err.Error(),
		Err:     err,
	}

	var derr *toml.DecodeError
	var serr *toml.StrictMissingError
	switch {
	case errors.As(err, &derr):
		perr.Line, perr.Column = derr.Position()
		perr.Message = derr.Error()
	case errors.As(err, &serr):
		keys := make([]string, 0, len(serr.Errors))
		for i := range serr.Errors {
			keys = append(keys, strings.Join(serr.Errors[i].Key(), "."))
			if i == 0 {
				perr.Line, perr.Column = serr.Errors[i].Position()
			}
		}
		perr.Message = "unknown keys: " + strings.Join(keys, ", ")
	}
	return perr
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
