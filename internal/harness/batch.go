package harness

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// SuiteNotFoundError is returned when a named suite path doesn't exist.
type SuiteNotFoundError struct {
	Path string
}

// Error implements the error interface.
func (e *SuiteNotFoundError) Error() string {
	return fmt.Sprintf("suite file %q does not exist", e.Path)
}

// FindSuites expands paths into suite files. Directories are walked for
// .yaml and .yml files; results are sorted within each directory walk and
// otherwise kept in argument order.
func FindSuites(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if os.IsNotExist(err) {
			return nil, &SuiteNotFoundError{Path: p}
		}
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}

		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			ext := strings.ToLower(filepath.Ext(path))
			if !d.IsDir() && (ext == ".yaml" || ext == ".yml") {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
		slices.Sort(found)
		out = append(out, found...)
	}
	return out, nil
}

// Summary aggregates results across suite files.
type Summary struct {
	TotalSuites int            `json:"total_suites"`
	TotalCases  int            `json:"total_cases"`
	Passed      int            `json:"passed"`
	Failed      int            `json:"failed"`
	Failures    []SuiteFailure `json:"failures,omitempty"`
}

// SuiteFailure is a failed case, or a suite that could not be loaded
// (Case is empty).
type SuiteFailure struct {
	SuitePath string `json:"suite_path"`
	Case      string `json:"case,omitempty"`
	Error     string `json:"error"`
}

// OK reports whether every suite loaded and every case passed.
func (s *Summary) OK() bool { return len(s.Failures) == 0 }

// RunAll loads and runs each suite path.
func RunAll(paths []string) (*Summary, error) {
	files, err := FindSuites(paths)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	for _, path := range files {
		summary.TotalSuites++

		suite, err := LoadSuite(path)
		if err != nil {
			summary.Failures = append(summary.Failures, SuiteFailure{
				SuitePath: path,
				Error:     fmt.Sprintf("failed to load suite: %v", err),
			})
			continue
		}

		result := Run(suite)
		for _, c := range result.Cases {
			summary.TotalCases++
			if c.Pass {
				summary.Passed++
				continue
			}
			summary.Failed++
			summary.Failures = append(summary.Failures, SuiteFailure{
				SuitePath: path,
				Case:      c.Name,
				Error:     strings.Join(c.Errors, "; "),
			})
		}
	}
	return summary, nil
}
