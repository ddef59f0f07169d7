package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"

	"github.com/roach88/occfilter/internal/tagged"
)

// LoadError represents an error that occurred while reading an input
// document, before any predicate decoding happens.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeParseFailed = "E002" // Document is not valid JSON or YAML
	ErrCodeEmptyInput  = "E003" // Document is empty
	ErrCodeLoadFailed  = "E004" // CUE compile or path lookup failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE value is not concrete
	ErrCodeStoreFailed = "E007" // Request store error
	ErrCodeBadFormat   = "E008" // Unrecognised document extension
)

// stdin is swapped in tests.
var stdin io.Reader = os.Stdin

// LoadDocument reads a JSON, YAML or CUE document and returns it as a
// tagged value. The extension selects the parser; "-" reads JSON or YAML
// from stdin. cuePath selects a field inside a CUE document and is
// ignored for other formats.
func LoadDocument(path, cuePath string) (tagged.Value, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, &LoadError{Code: ErrCodeEmptyInput, Message: fmt.Sprintf("%s is empty", displayName(path))}
	}

	switch ext := strings.ToLower(filepath.Ext(path)); {
	case path == "-" || ext == ".yaml" || ext == ".yml":
		// YAML is a superset of JSON, so stdin goes through here too.
		return loadYAML(path, data)
	case ext == ".json":
		v, err := tagged.Unmarshal(data)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("%s: %v", path, err)}
		}
		return v, nil
	case ext == ".cue":
		return loadCUE(path, cuePath, data)
	default:
		return nil, &LoadError{Code: ErrCodeBadFormat, Message: fmt.Sprintf("unsupported file type %q (want .json, .yaml, .yml or .cue)", ext)}
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("reading stdin: %v", err)}
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("file not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("reading %s: %v", path, err)}
	}
	return data, nil
}

func loadYAML(path string, data []byte) (tagged.Value, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("%s: %v", displayName(path), err)}
	}
	v, err := tagged.FromGo(raw)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("%s: %v", displayName(path), err)}
	}
	return v, nil
}

func loadCUE(path, cuePath string, data []byte) (tagged.Value, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, cueLoadError(ErrCodeLoadFailed, "compiling CUE", err)
	}

	if cuePath != "" {
		value = value.LookupPath(cue.ParsePath(cuePath))
		if !value.Exists() {
			return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("path %q not found in %s", cuePath, path)}
		}
	}

	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, cueLoadError(ErrCodeBuildFailed, "CUE value is not concrete", err)
	}

	out, err := value.MarshalJSON()
	if err != nil {
		return nil, cueLoadError(ErrCodeBuildFailed, "exporting CUE value", err)
	}
	v, err := tagged.Unmarshal(out)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("re-reading exported CUE: %v", err)}
	}
	return v, nil
}

// cueLoadError keeps the position of the first CUE error, if it has one.
func cueLoadError(code, context string, err error) *LoadError {
	le := &LoadError{Code: code, Message: fmt.Sprintf("%s: %v", context, err)}
	if errs := cueerrors.Errors(err); len(errs) > 0 {
		le.Pos = errs[0].Position()
	}
	return le
}

func displayName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}
