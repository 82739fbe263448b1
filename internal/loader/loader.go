// Package loader parses declarative YAML sequence documents into validated
// MDASequence values.
//
// Loading happens in three stages:
//  1. YAML is decoded into an untyped document.
//  2. The document (and every nested position sequence, recursively) is
//     validated against the embedded CUE schema.
//  3. The document is decoded into typed plan structs and assembled into an
//     immutable MDASequence.
//
// Validation and parsing live here, outside the engine: the engine consumes
// only already-validated sequences.
package loader

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/mdakit/mdaseq/internal/mda"
)

//go:embed schema.cue
var schemaSrc string

// LoadError represents a failure to load a sequence document.
type LoadError struct {
	Code    string
	Path    string // document path within the file, e.g. "stage_positions[1].sequence"
	Message string
}

// Load error codes.
const (
	ErrCodeNotFound = "E_NOT_FOUND"
	ErrCodeParse    = "E_PARSE"
	ErrCodeSchema   = "E_SCHEMA"
	ErrCodeBuild    = "E_BUILD"
)

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadFile reads and parses a YAML sequence document from disk.
func LoadFile(path string) (*mda.MDASequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("sequence file not found: %s", path)}
		}
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading %s: %v", path, err)}
	}
	return Parse(data)
}

// Parse validates and decodes a YAML sequence document.
func Parse(data []byte) (*mda.MDASequence, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("invalid YAML: %v", err)}
	}
	if doc == nil {
		return nil, &LoadError{Code: ErrCodeParse, Message: "empty sequence document"}
	}

	if err := validateDoc(doc, ""); err != nil {
		return nil, err
	}

	var raw rawSequence
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("decoding sequence: %v", err)}
	}
	return raw.build("")
}

// validateDoc checks one document level against the CUE schema, then
// recurses into nested position sequences. The schema leaves the nested
// sequence field open, so recursion happens here where the depth is data
// driven rather than in CUE, which forbids structural cycles.
func validateDoc(doc any, path string) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSrc)
	if err := schema.Err(); err != nil {
		return &LoadError{Code: ErrCodeSchema, Message: fmt.Sprintf("compiling schema: %v", err)}
	}

	seqDef := schema.LookupPath(cue.ParsePath("#Sequence"))
	if !seqDef.Exists() {
		return &LoadError{Code: ErrCodeSchema, Message: "schema has no #Sequence definition"}
	}

	unified := seqDef.Unify(ctx.Encode(doc))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return &LoadError{Code: ErrCodeSchema, Path: path, Message: err.Error()}
	}

	m, ok := doc.(map[string]any)
	if !ok {
		return &LoadError{Code: ErrCodeSchema, Path: path, Message: "sequence document must be a mapping"}
	}
	positions, ok := m["stage_positions"].([]any)
	if !ok {
		return nil
	}
	for i, p := range positions {
		pm, ok := p.(map[string]any)
		if !ok {
			continue
		}
		if nested, ok := pm["sequence"]; ok && nested != nil {
			nestedPath := fmt.Sprintf("stage_positions[%d].sequence", i)
			if path != "" {
				nestedPath = path + "." + nestedPath
			}
			if err := validateDoc(nested, nestedPath); err != nil {
				return err
			}
		}
	}
	return nil
}
