package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	jmespath "github.com/jmespath-community/go-jmespath"
	apperrors "github.com/target/frontdesk-console/internal/errors"
)

// outputOptions selects between the default table and JSON output.
type outputOptions struct {
	JSON  bool
	Query string
}

func addOutputFlags(fs *flag.FlagSet, opts *outputOptions) {
	fs.BoolVar(&opts.JSON, "json", false, "Print JSON instead of a table")
	fs.StringVar(&opts.Query, "query", "", "JMESPath expression applied to the JSON output (implies --json)")
}

// render prints v as JSON when requested and through table otherwise.
func render(w io.Writer, opts outputOptions, v any, table func(tw *tabwriter.Writer) error) error {
	if opts.JSON || opts.Query != "" || table == nil {
		return renderJSON(w, v, opts.Query)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if err := table(tw); err != nil {
		return err
	}
	return tw.Flush()
}

func renderJSON(w io.Writer, v any, query string) error {
	out := v
	if q := strings.TrimSpace(query); q != "" {
		// Round-trip through JSON so the expression sees the wire field names.
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("decode output: %w", err)
		}
		out, err = jmespath.Search(q, doc)
		if err != nil {
			return usagef("invalid --query: %v", err)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func row(tw *tabwriter.Writer, cols ...any) error {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprint(c)
	}
	_, err := fmt.Fprintln(tw, strings.Join(parts, "\t"))
	return err
}

// describeError turns a command failure into the line shown to the operator.
func describeError(err error) string {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return err.Error()
	}
	msg := apperrors.UserMessage(err, "request failed")
	if appErr.Field != "" && !strings.Contains(msg, appErr.Field) {
		msg = appErr.Field + ": " + msg
	}
	return msg
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
