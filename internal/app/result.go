package app

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/rangescan/internal/config"
	"github.com/dshills/rangescan/pkg/scan"
)

// Result is the outcome of one run. Which fields are set depends on Mode:
// ranges fills Ranges, strings fills Ranges and Strings, transform and
// reassemble fill Output.
type Result struct {
	RunID    string
	Mode     string
	Query    string
	Inverted bool

	Ranges  []scan.Range
	Strings []string
	Output  string

	Elapsed time.Duration
}

type jsonField struct {
	key   string
	value any
}

// MarshalJSON encodes only the fields that belong to the result's mode,
// in a fixed key order. Empty lists encode as [] rather than null.
func (r *Result) MarshalJSON() ([]byte, error) {
	fields := []jsonField{
		{"run_id", r.RunID},
		{"mode", r.Mode},
		{"query", r.Query},
	}
	switch r.Mode {
	case config.ModeRanges:
		fields = append(fields,
			jsonField{"inverted", r.Inverted},
			jsonField{"ranges", nonNil(r.Ranges)},
		)
	case config.ModeStrings:
		fields = append(fields,
			jsonField{"inverted", r.Inverted},
			jsonField{"ranges", nonNil(r.Ranges)},
			jsonField{"strings", nonNil(r.Strings)},
		)
	default:
		fields = append(fields, jsonField{"output", r.Output})
	}

	doc := []byte(`{}`)
	for _, f := range fields {
		var err error
		if doc, err = sjson.SetBytes(doc, f.key, f.value); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", f.key, err)
		}
	}
	return doc, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Render writes res to w in the given format. Text output is one range or
// string per line for the scanning modes and the rebuilt content, unchanged,
// for transform and reassemble. Pretty only affects json.
func Render(w io.Writer, res *Result, format string, indent bool) error {
	switch format {
	case config.FormatJSON:
		return renderJSON(w, res, indent)
	case config.FormatText, "":
		return renderText(w, res)
	default:
		return fmt.Errorf("%w: format %q", config.ErrValidationFailed, format)
	}
}

func renderJSON(w io.Writer, res *Result, indent bool) error {
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}
	if indent {
		data = pretty.Pretty(data)
	} else {
		data = append(data, '\n')
	}
	_, err = w.Write(data)
	return err
}

func renderText(w io.Writer, res *Result) error {
	switch res.Mode {
	case config.ModeRanges:
		for _, r := range res.Ranges {
			if _, err := fmt.Fprintln(w, r); err != nil {
				return err
			}
		}
	case config.ModeStrings:
		for _, s := range res.Strings {
			if _, err := fmt.Fprintln(w, s); err != nil {
				return err
			}
		}
	default:
		_, err := io.WriteString(w, res.Output)
		return err
	}
	return nil
}
