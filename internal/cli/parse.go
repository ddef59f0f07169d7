package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/occfilter/internal/param"
	"github.com/roach88/occfilter/internal/validate"
)

// NewParseCommand creates the parse command and its value parsers.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a single parameter value",
		Long: `Parse a raw parameter value with one of the value parsers and show
how it was understood.

Exit codes:
  0 - Value parsed
  1 - Value rejected (error code is printed)

Examples:
  occfilter parse int-range "1990,*"
  occfilter parse date 2020-02
  occfilter parse interval 2000/2010-06
  occfilter parse geometry "POLYGON ((30 10, 40 40, 20 40, 10 20, 30 10))"
  occfilter parse geodistance 10,20,5km
  occfilter parse value MONTH 13`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		parseSubcommand(rootOpts, "int-range <raw>", "Parse an integer value or range", parseIntRange),
		parseSubcommand(rootOpts, "double-range <raw>", "Parse a decimal value or range", parseDoubleRange),
		parseSubcommand(rootOpts, "date <raw>", "Parse an ISO 8601 date", parseDate),
		parseSubcommand(rootOpts, "date-range <raw>", "Parse a comma date range", parseDateRange),
		parseSubcommand(rootOpts, "interval <raw>", "Parse an ISO 8601 date interval", parseInterval),
		parseSubcommand(rootOpts, "geometry <wkt>", "Parse a WKT geometry", parseGeometry),
		parseSubcommand(rootOpts, "distance <raw>", "Parse a distance such as 5km", parseDistance),
		parseSubcommand(rootOpts, "geodistance <raw>", "Parse latitude,longitude,distance", parseGeoDistance),
		newParseValueCommand(rootOpts),
	)
	return cmd
}

type parseFunc func(raw string) (Fields, error)

func parseSubcommand(opts *RootOptions, use, short string, parse parseFunc) *cobra.Command {
	return &cobra.Command{
		Use:           use,
		Short:         short,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(opts, cmd, func() (Fields, error) { return parse(args[0]) })
		},
	}
}

func newParseValueCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "value <param> <raw>",
		Short:         "Validate a raw value for a parameter",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(opts, cmd, func() (Fields, error) { return parseValue(args[0], args[1]) })
		},
	}
}

func runParse(opts *RootOptions, cmd *cobra.Command, parse func() (Fields, error)) error {
	if err := opts.checkFormat(); err != nil {
		return err
	}
	f := opts.formatter(cmd)

	fs, err := parse()
	if err != nil {
		return f.ValidationFailure(err)
	}
	return f.SuccessWithText(fieldMap(fs), fs)
}

// fieldMap keys each field by its snake-cased label for JSON output.
func fieldMap(fs Fields) map[string]any {
	m := make(map[string]any, len(fs))
	for _, f := range fs {
		m[strings.ToLower(strings.ReplaceAll(f.Label, " ", "_"))] = f.Value
	}
	return m
}

func bound[T any](v T, ok bool) string {
	if !ok {
		return validate.Wildcard
	}
	return fmt.Sprint(v)
}

func parseIntRange(raw string) (Fields, error) {
	r, err := validate.ParseIntRange(raw)
	if err != nil {
		return nil, err
	}
	lo, hasLo := r.Lower()
	hi, hasHi := r.Upper()
	return Fields{
		{"Value", r.String()},
		{"Lower", bound(lo, hasLo)},
		{"Upper", bound(hi, hasHi)},
		{"Single", r.IsSingleValue()},
	}, nil
}

func parseDoubleRange(raw string) (Fields, error) {
	r, err := validate.ParseDoubleRange(raw)
	if err != nil {
		return nil, err
	}
	lo, hasLo := r.Lower()
	hi, hasHi := r.Upper()
	return Fields{
		{"Value", r.String()},
		{"Lower", bound(strconv.FormatFloat(lo, 'f', -1, 64), hasLo)},
		{"Upper", bound(strconv.FormatFloat(hi, 'f', -1, 64), hasHi)},
		{"Single", r.IsSingleValue()},
	}, nil
}

func parseDate(raw string) (Fields, error) {
	d, err := validate.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return Fields{
		{"Value", d.String()},
		{"Granularity", d.Granularity().String()},
		{"Start", d.Start().Format(time.RFC3339)},
		{"End", d.End().Format(time.RFC3339)},
	}, nil
}

func parseDateRange(raw string) (Fields, error) {
	r, err := validate.ParseDateRange(raw)
	if err != nil {
		return nil, err
	}
	lo, hasLo := r.Lower()
	hi, hasHi := r.Upper()
	return Fields{
		{"Value", r.String()},
		{"Lower", bound(lo, hasLo)},
		{"Upper", bound(hi, hasHi)},
	}, nil
}

func parseInterval(raw string) (Fields, error) {
	d, err := validate.ParseDateInterval(raw)
	if err != nil {
		return nil, err
	}
	return Fields{
		{"Value", d.String()},
		{"From", d.From().String()},
		{"To", d.To().String()},
		{"Single", d.IsSingle()},
	}, nil
}

func parseGeometry(raw string) (Fields, error) {
	g, err := validate.ParseGeometry(raw)
	if err != nil {
		return nil, err
	}
	b := g.Bounds()
	return Fields{
		{"Kind", string(g.Kind)},
		{"Points", g.Points()},
		{"Bounds", fmt.Sprintf("%g %g, %g %g", b.Min.X(), b.Min.Y(), b.Max.X(), b.Max.Y())},
	}, nil
}

func parseDistance(raw string) (Fields, error) {
	d, err := validate.ParseDistance(raw)
	if err != nil {
		return nil, err
	}
	return Fields{
		{"Value", d.String()},
		{"Unit", d.Unit().Name()},
		{"Meters", d.Meters()},
	}, nil
}

func parseGeoDistance(raw string) (Fields, error) {
	g, err := validate.ParseGeoDistanceValue(raw)
	if err != nil {
		return nil, err
	}
	return Fields{
		{"Value", g.String()},
		{"Latitude", g.Latitude()},
		{"Longitude", g.Longitude()},
		{"Meters", g.Distance().Meters()},
	}, nil
}

func parseValue(name, raw string) (Fields, error) {
	p, ok := param.Occurrence.Lookup(name)
	if !ok {
		return nil, validate.Errorf(validate.ErrCodeUnknownParameter, name, raw, "unknown parameter")
	}
	if err := validate.Value(p, raw); err != nil {
		return nil, err
	}
	return Fields{
		{"Parameter", p.Name()},
		{"Type", p.Type().String()},
		{"Value", raw},
	}, nil
}
