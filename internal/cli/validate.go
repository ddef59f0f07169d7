package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/occfilter/internal/download"
	"github.com/roach88/occfilter/internal/predicate"
	"github.com/roach88/occfilter/internal/tagged"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Request bool   // input is a download request, not a bare predicate
	CUEPath string // field to extract from a CUE document
}

// PredicateReport describes a decoded predicate.
type PredicateReport struct {
	Kind       string          `json:"kind"`
	Depth      int             `json:"depth"`
	Hash       string          `json:"hash"`
	Parameters []string        `json:"parameters"`
	Canonical  json.RawMessage `json:"canonical"`
	Warnings   []string        `json:"warnings,omitempty"`
}

// RequestReport describes a decoded download request.
type RequestReport struct {
	Key                   string           `json:"key"`
	Creator               string           `json:"creator"`
	Format                string           `json:"format"`
	NotificationAddresses []string         `json:"notificationAddresses,omitempty"`
	SendNotification      bool             `json:"sendNotification"`
	Predicate             *PredicateReport `json:"predicate,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a predicate or download request",
		Long: `Decode and validate a predicate document.

The file may be JSON, YAML or CUE; "-" reads JSON or YAML from stdin.
On success the canonical encoding, content hash, nesting depth and
referenced parameters are printed.

Exit codes:
  0 - Document is valid
  1 - Document was rejected (error code is printed)
  2 - Command error (missing file, unparsable document, etc.)

Examples:
  occfilter validate predicate.json
  occfilter validate request.yaml --request
  occfilter validate filters.cue --cue-path filters.costaRica
  occfilter validate predicate.json --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Request, "request", false, "decode the document as a download request")
	cmd.Flags().StringVar(&opts.CUEPath, "cue-path", "", "path of the value to validate inside a CUE document")

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	if err := opts.checkFormat(); err != nil {
		return err
	}
	f := opts.formatter(cmd)

	doc, err := LoadDocument(path, opts.CUEPath)
	if err != nil {
		return loadFailure(f, err)
	}
	f.VerboseLog("Loaded %s", displayName(path))

	if opts.Request {
		req, err := decodeRequest(opts.RootOptions, doc)
		if err != nil {
			return f.ValidationFailure(err)
		}
		report, err := reportRequest(req)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to describe request", err)
		}
		return f.SuccessWithText(report, requestText(report))
	}

	p, err := predicate.Decode(doc, opts.decodeOptions()...)
	if err != nil {
		return f.ValidationFailure(err)
	}
	report, err := reportPredicate(p)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to describe predicate", err)
	}
	return f.SuccessWithText(report, predicateText(report))
}

// decodeRequest applies the configured default download format before
// decoding.
func decodeRequest(opts *RootOptions, doc tagged.Value) (*download.Request, error) {
	if obj, ok := doc.(tagged.Object); ok && opts.DownloadFormat != "" {
		if _, set := obj.Get("format"); !set {
			withFormat := make(tagged.Object, len(obj)+1)
			for k, v := range obj {
				withFormat[k] = v
			}
			withFormat["format"] = tagged.String(opts.DownloadFormat)
			doc = withFormat
		}
	}
	return download.Decode(doc, opts.decodeOptions()...)
}

func reportPredicate(p predicate.Predicate) (*PredicateReport, error) {
	canonical, err := predicate.Marshal(p)
	if err != nil {
		return nil, err
	}
	hash, err := predicate.Hash(p)
	if err != nil {
		return nil, err
	}

	report := &PredicateReport{
		Kind:       string(p.Kind()),
		Depth:      predicate.Depth(p),
		Hash:       hash,
		Parameters: []string{},
		Canonical:  canonical,
	}
	for _, k := range predicate.Parameters(p) {
		report.Parameters = append(report.Parameters, k.Name())
	}
	predicate.Walk(p, func(n predicate.Predicate) bool {
		if w, ok := n.(*predicate.Within); ok && w.GeometryError() != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("within: %v", w.GeometryError()))
		}
		return true
	})
	return report, nil
}

func reportRequest(req *download.Request) (*RequestReport, error) {
	key, err := req.Key()
	if err != nil {
		return nil, err
	}
	report := &RequestReport{
		Key:                   key,
		Creator:               req.Creator(),
		Format:                req.Format().String(),
		NotificationAddresses: req.NotificationAddresses(),
		SendNotification:      req.SendNotification(),
	}
	if p := req.Predicate(); p != nil {
		report.Predicate, err = reportPredicate(p)
		if err != nil {
			return nil, err
		}
	}
	return report, nil
}

func predicateFields(r *PredicateReport) Fields {
	params := "-"
	if len(r.Parameters) > 0 {
		params = strings.Join(r.Parameters, ", ")
	}
	fs := Fields{
		{"Kind", r.Kind},
		{"Depth", r.Depth},
		{"Parameters", params},
		{"Hash", r.Hash},
		{"Canonical", string(r.Canonical)},
	}
	for _, w := range r.Warnings {
		fs = append(fs, Field{"Warning", w})
	}
	return fs
}

func predicateText(r *PredicateReport) fmt.Stringer {
	return textBlock{"✓ Predicate valid", predicateFields(r)}
}

func requestText(r *RequestReport) fmt.Stringer {
	addresses := "-"
	if len(r.NotificationAddresses) > 0 {
		addresses = strings.Join(r.NotificationAddresses, ", ")
	}
	fs := Fields{
		{"Key", r.Key},
		{"Creator", r.Creator},
		{"Format", r.Format},
		{"Notify", addresses},
		{"Send notification", r.SendNotification},
	}
	if r.Predicate == nil {
		fs = append(fs, Field{"Predicate", "(all records)"})
	} else {
		fs = append(fs, predicateFields(r.Predicate)...)
	}
	return textBlock{"✓ Request valid", fs}
}

// textBlock is a heading followed by indented fields.
type textBlock struct {
	heading string
	fields  Fields
}

func (b textBlock) String() string {
	body := b.fields.String()
	return b.heading + "\n  " + strings.ReplaceAll(body, "\n", "\n  ")
}

// loadFailure reports an input that could not be read or parsed.
func loadFailure(f *OutputFormatter, err error) error {
	var le *LoadError
	if errors.As(err, &le) {
		_ = f.Error(le.Code, le.Message, nil)
		return NewExitError(ExitCommandError, le.Error())
	}
	_ = f.Error(ErrCodeGeneric, err.Error(), nil)
	return WrapExitError(ExitCommandError, ErrCodeGeneric, err)
}
