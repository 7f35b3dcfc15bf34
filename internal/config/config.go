// Package config loads querygrid settings from an optional YAML file.
//
// The file is validated against an embedded CUE schema before it is decoded,
// so a misspelled key or a non-positive line length is reported with its
// position instead of being silently ignored.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"

	"github.com/roach88/querygrid/internal/equation"
)

//go:embed schema.cue
var schemaCUE string

// DefaultPath is read when no --config flag is given and the file exists.
const DefaultPath = ".querygrid.yaml"

// DefaultOutputDir is where converted files are written.
const DefaultOutputDir = "outputs"

// Config holds every setting a conversion needs.
type Config struct {
	GroupOperator string `yaml:"group_operator"`
	TermOperator  string `yaml:"term_operator"`
	MaxLineLength int    `yaml:"max_line_length"`
	Pretty        bool   `yaml:"pretty"`
	OutputDir     string `yaml:"output_dir"`
	BareTerms     bool   `yaml:"bare_terms"`
	HistoryDB     string `yaml:"history_db"`
	SheetName     string `yaml:"sheet_name"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		GroupOperator: equation.DefaultGroupOperator,
		TermOperator:  equation.DefaultTermOperator,
		MaxLineLength: equation.DefaultMaxLineLength,
		OutputDir:     DefaultOutputDir,
	}
}

// Operators returns the serializer operators of c.
func (c *Config) Operators() equation.Operators {
	return equation.Operators{Group: c.GroupOperator, Term: c.TermOperator}
}

// ValidationError reports a config file that does not match the schema.
type ValidationError struct {
	Path    string
	Message string
	Pos     token.Pos
}

func (e *ValidationError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: invalid config: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return fmt.Sprintf("%s: invalid config: %s", e.Path, e.Message)
}

// Load reads settings from path on top of Default.
//
// An empty path reads DefaultPath if it exists and returns Default otherwise.
// An explicit path that does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	if err := Validate(path, data); err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks YAML config data against the embedded schema.
func Validate(filename string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return &ValidationError{Path: filename, Message: err.Error()}
	}

	value := ctx.BuildFile(file)
	if err := value.Err(); err != nil {
		return toValidationError(filename, err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return toValidationError(filename, err)
	}

	return nil
}

func toValidationError(filename string, err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &ValidationError{Path: filename, Message: err.Error()}
	}

	first := errs[0]
	verr := &ValidationError{Path: filename, Message: first.Error()}
	for _, pos := range cueerrors.Positions(first) {
		if pos.Filename() == filename {
			verr.Pos = pos
			break
		}
	}
	return verr
}
