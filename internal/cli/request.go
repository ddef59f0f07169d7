package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/occfilter/internal/paging"
	"github.com/roach88/occfilter/internal/predicate"
	"github.com/roach88/occfilter/internal/store"
)

// RequestOptions holds flags shared by the request subcommands.
type RequestOptions struct {
	*RootOptions
	DB      string // database path, overrides the configured one
	CUEPath string
	Offset  int64
	Limit   int
	All     bool
}

// StoredRequest is one stored request in command output.
type StoredRequest struct {
	Seq     int64          `json:"seq"`
	Key     string         `json:"key"`
	Request *RequestReport `json:"request"`
}

// ListResult is one page of stored requests.
type ListResult struct {
	Requests []StoredRequest `json:"requests"`
	Offset   int64           `json:"offset"`
	Limit    int             `json:"limit,omitempty"`
	Last     bool            `json:"last"`
}

// NewRequestCommand creates the request command group.
func NewRequestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RequestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "request",
		Short: "Store and query download requests",
		Long: `Manage download requests in a SQLite store.

Requests are keyed by the hash of their canonical encoding, so putting
the same request twice stores it once.

Examples:
  occfilter request put request.json --db requests.db
  occfilter request get 3f2a... --db requests.db
  occfilter request list --limit 10 --offset 20
  occfilter request find predicate.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "path to SQLite database (defaults to the configured database)")

	put := &cobra.Command{
		Use:           "put <file>",
		Short:         "Validate and store a download request",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequestPut(opts, args[0], cmd)
		},
	}
	put.Flags().StringVar(&opts.CUEPath, "cue-path", "", "path of the request inside a CUE document")

	get := &cobra.Command{
		Use:           "get <key>",
		Short:         "Show a stored request",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequestGet(opts, args[0], cmd)
		},
	}

	list := &cobra.Command{
		Use:           "list",
		Short:         "List stored requests in insertion order",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequestList(opts, cmd)
		},
	}
	list.Flags().Int64Var(&opts.Offset, "offset", 0, "number of requests to skip")
	list.Flags().IntVar(&opts.Limit, "limit", paging.DefaultLimit, "page size")
	list.Flags().BoolVar(&opts.All, "all", false, "page through every stored request")

	find := &cobra.Command{
		Use:           "find <predicate-file>",
		Short:         "Find stored requests with an equal predicate",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequestFind(opts, args[0], cmd)
		},
	}
	find.Flags().StringVar(&opts.CUEPath, "cue-path", "", "path of the predicate inside a CUE document")

	del := &cobra.Command{
		Use:           "delete <key>",
		Short:         "Delete a stored request",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequestDelete(opts, args[0], cmd)
		},
	}

	cmd.AddCommand(put, get, list, find, del)
	return cmd
}

// openStore opens the request store named by --db or the configuration.
func (opts *RequestOptions) openStore(f *OutputFormatter) (*store.Store, error) {
	path := opts.DB
	if path == "" {
		path = opts.Database
	}
	if path == "" {
		_ = f.Error(ErrCodeStoreFailed, "no database: pass --db or set database in the config", nil)
		return nil, NewExitError(ExitCommandError, "no database configured")
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, storeFailure(f, "failed to open store", err)
	}
	f.VerboseLog("Opened store %s", path)
	return st, nil
}

func storeFailure(f *OutputFormatter, message string, err error) error {
	_ = f.Error(ErrCodeStoreFailed, fmt.Sprintf("%s: %v", message, err), nil)
	return WrapExitError(ExitCommandError, message, err)
}

func runRequestPut(opts *RequestOptions, path string, cmd *cobra.Command) error {
	if err := opts.checkFormat(); err != nil {
		return err
	}
	f := opts.formatter(cmd)

	doc, err := LoadDocument(path, opts.CUEPath)
	if err != nil {
		return loadFailure(f, err)
	}
	req, err := decodeRequest(opts.RootOptions, doc)
	if err != nil {
		return f.ValidationFailure(err)
	}

	st, err := opts.openStore(f)
	if err != nil {
		return err
	}
	defer st.Close()

	key, inserted, err := st.Put(cmd.Context(), req)
	if err != nil {
		return storeFailure(f, "failed to store request", err)
	}

	data := map[string]any{"key": key, "inserted": inserted}
	text := "✓ Stored " + key
	if !inserted {
		text = "✓ Already stored " + key
	}
	return f.SuccessWithText(data, plainText(text))
}

func runRequestGet(opts *RequestOptions, key string, cmd *cobra.Command) error {
	if err := opts.checkFormat(); err != nil {
		return err
	}
	f := opts.formatter(cmd)

	st, err := opts.openStore(f)
	if err != nil {
		return err
	}
	defer st.Close()

	req, err := st.Get(cmd.Context(), key)
	if errors.Is(err, sql.ErrNoRows) {
		_ = f.Error(ErrCodeNotFound, fmt.Sprintf("no request with key %s", key), nil)
		return NewExitError(ExitFailure, "request not found")
	}
	if err != nil {
		return storeFailure(f, "failed to read request", err)
	}

	report, err := reportRequest(req)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to describe request", err)
	}
	return f.SuccessWithText(report, requestText(report))
}

func runRequestList(opts *RequestOptions, cmd *cobra.Command) error {
	if err := opts.checkFormat(); err != nil {
		return err
	}
	f := opts.formatter(cmd)

	page, err := paging.NewPage(opts.Offset, opts.Limit)
	if err != nil {
		_ = f.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid page", err)
	}

	st, err := opts.openStore(f)
	if err != nil {
		return err
	}
	defer st.Close()

	result := ListResult{Offset: page.Offset}
	var entries []store.Entry
	if opts.All {
		entries, err = paging.Collect(cmd.Context(), st.Fetcher(), page.Limit)
		result.Offset = 0
		result.Last = true
	} else {
		entries, result.Last, err = st.List(cmd.Context(), page)
		result.Limit = page.Limit
	}
	if err != nil {
		return storeFailure(f, "failed to list requests", err)
	}

	result.Requests, err = storedRequests(entries)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to describe requests", err)
	}
	return f.SuccessWithText(result, listText(result))
}

func runRequestFind(opts *RequestOptions, path string, cmd *cobra.Command) error {
	if err := opts.checkFormat(); err != nil {
		return err
	}
	f := opts.formatter(cmd)

	doc, err := LoadDocument(path, opts.CUEPath)
	if err != nil {
		return loadFailure(f, err)
	}
	p, err := predicate.Decode(doc, opts.decodeOptions()...)
	if err != nil {
		return f.ValidationFailure(err)
	}

	st, err := opts.openStore(f)
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.FindByPredicate(cmd.Context(), p)
	if err != nil {
		return storeFailure(f, "failed to search requests", err)
	}
	result := ListResult{Last: true}
	result.Requests, err = storedRequests(entries)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to describe requests", err)
	}
	return f.SuccessWithText(result, listText(result))
}

func runRequestDelete(opts *RequestOptions, key string, cmd *cobra.Command) error {
	if err := opts.checkFormat(); err != nil {
		return err
	}
	f := opts.formatter(cmd)

	st, err := opts.openStore(f)
	if err != nil {
		return err
	}
	defer st.Close()

	deleted, err := st.Delete(cmd.Context(), key)
	if err != nil {
		return storeFailure(f, "failed to delete request", err)
	}
	if !deleted {
		_ = f.Error(ErrCodeNotFound, fmt.Sprintf("no request with key %s", key), nil)
		return NewExitError(ExitFailure, "request not found")
	}
	return f.SuccessWithText(map[string]any{"key": key, "deleted": true}, plainText("✓ Deleted "+key))
}

func storedRequests(entries []store.Entry) ([]StoredRequest, error) {
	out := make([]StoredRequest, 0, len(entries))
	for _, e := range entries {
		report, err := reportRequest(e.Request)
		if err != nil {
			return nil, fmt.Errorf("request %s: %w", e.Key, err)
		}
		out = append(out, StoredRequest{Seq: e.Seq, Key: e.Key, Request: report})
	}
	return out, nil
}

func listText(r ListResult) fmt.Stringer {
	if len(r.Requests) == 0 {
		return plainText("No requests found.")
	}
	var b strings.Builder
	for i, sr := range r.Requests {
		if i > 0 {
			b.WriteByte('\n')
		}
		kind := "(all records)"
		if sr.Request.Predicate != nil {
			kind = sr.Request.Predicate.Kind
		}
		fmt.Fprintf(&b, "%d  %s  %s  %s  %s", sr.Seq, sr.Key, sr.Request.Creator, sr.Request.Format, kind)
	}
	if !r.Last {
		fmt.Fprintf(&b, "\n(more after offset %d)", r.Offset+int64(len(r.Requests)))
	}
	return plainText(b.String())
}

type plainText string

func (s plainText) String() string { return string(s) }
