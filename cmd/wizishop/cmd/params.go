package cmd

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JWebCreation/wizishop-sdk/pkg/wizishop"
)

// listFlags holds the pagination and filter flags shared by list commands.
type listFlags struct {
	page   int
	limit  int
	params []string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.page, "page", 0, "fetch only this page")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "page size (fetches a single page)")
	cmd.Flags().StringArrayVar(&f.params, "param", nil, "extra query parameter (key=value)")
}

// values returns the query parameters. Without --page or --limit every page
// is fetched.
func (f *listFlags) values() (url.Values, error) {
	q := url.Values{}
	for _, kv := range f.params {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --param %q: expected key=value", kv)
		}
		q.Add(k, v)
	}
	if f.page > 0 {
		q.Set("page", strconv.Itoa(f.page))
	}
	if f.limit > 0 {
		q.Set("limit", strconv.Itoa(f.limit))
	}
	return q, nil
}

// parseID parses a numeric resource id argument.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: expected a positive integer", s)
	}
	return id, nil
}

// readFields builds a request body from a JSON file and key=value pairs;
// pairs override keys of the file. Values that parse as JSON (numbers,
// booleans, arrays, objects) are sent typed, anything else as a string.
func readFields(file string, pairs []string) (wizishop.Fields, error) {
	fields := wizishop.Fields{}

	if file != "" {
		data, err := os.ReadFile(file) //nolint:gosec // payload path from CLI flag
		if err != nil {
			return nil, fmt.Errorf("reading payload file: %w", err)
		}
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, fmt.Errorf("parsing payload file: %w", err)
		}
	}

	for _, kv := range pairs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --field %q: expected key=value", kv)
		}
		var typed any
		if err := json.Unmarshal([]byte(v), &typed); err == nil {
			fields[k] = typed
		} else {
			fields[k] = v
		}
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("empty payload: use --file or --field")
	}
	return fields, nil
}

// payloadFlags registers --file and --field on cmd.
func payloadFlags(cmd *cobra.Command, file *string, pairs *[]string) {
	cmd.Flags().StringVar(file, "file", "", "JSON payload file")
	cmd.Flags().StringArrayVar(pairs, "field", nil, "payload field (key=value), repeatable")
}
