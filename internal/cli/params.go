package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/roach88/occfilter/internal/param"
	"github.com/roach88/occfilter/internal/validate"
)

// ParamInfo describes one search parameter.
type ParamInfo struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Vocabulary string   `json:"vocabulary,omitempty"`
	Values     []string `json:"values,omitempty"`
}

// NewParamsCommand creates the params command.
func NewParamsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params [name]",
		Short: "List search parameters",
		Long: `List the occurrence search parameters and their value types.

With a name, show a single parameter and its vocabulary. Names are
matched ignoring case and separators, so "decimal latitude" finds
DECIMAL_LATITUDE.

Examples:
  occfilter params
  occfilter params basis_of_record
  occfilter params --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParams(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runParams(opts *RootOptions, args []string, cmd *cobra.Command) error {
	if err := opts.checkFormat(); err != nil {
		return err
	}
	f := opts.formatter(cmd)

	if len(args) == 0 {
		infos := make([]ParamInfo, 0, param.Occurrence.Len())
		for _, p := range param.Occurrence.All() {
			infos = append(infos, describeParam(p, false))
		}
		return f.SuccessWithText(infos, paramTable(infos))
	}

	p, ok := param.Occurrence.Lookup(args[0])
	if !ok {
		return f.ValidationFailure(validate.Errorf(validate.ErrCodeUnknownParameter, args[0], "", "unknown parameter"))
	}
	info := describeParam(p, true)
	fs := Fields{{"Name", info.Name}, {"Type", info.Type}}
	if info.Vocabulary != "" {
		fs = append(fs, Field{"Vocabulary", info.Vocabulary})
	}
	if len(info.Values) > 0 {
		fs = append(fs, Field{"Values", strings.Join(info.Values, ", ")})
	}
	return f.SuccessWithText(info, fs)
}

func describeParam(p param.Parameter, withValues bool) ParamInfo {
	info := ParamInfo{Name: p.Name(), Type: p.Type().String()}
	if v := p.Vocabulary(); v != nil {
		info.Vocabulary = v.Name()
		if withValues {
			info.Values = v.Values()
		}
	}
	return info
}

type paramTable []ParamInfo

func (pt paramTable) String() string {
	rows := make([][]string, 0, len(pt))
	for _, p := range pt {
		rows = append(rows, []string{p.Name, p.Type, p.Vocabulary})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "TYPE", "VOCABULARY").
		Rows(rows...)
	return t.String() + fmt.Sprintf("\n%d parameters", len(pt))
}
