package app

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/birdayz/rle/pkg/codec"
	"github.com/birdayz/rle/pkg/rle"
)

// Format selects how run sequences are printed and read back.
type Format string

const (
	FormatText        Format = "text"
	FormatJSON        Format = "json"
	FormatJSONEachRow Format = "json-each-row"
	FormatMsgpack     Format = "msgpack"
	FormatAvro        Format = "avro"
)

var formatNames = []string{"text", "json", "json-each-row", "msgpack", "avro"}

func (f *Format) String() string {
	return string(*f)
}

func (f *Format) Set(v string) error {
	for _, n := range formatNames {
		if v == n {
			*f = Format(v)
			return nil
		}
	}
	return fmt.Errorf("must be one of: %s", strings.Join(formatNames, ", "))
}

func (f *Format) Type() string {
	return "Format"
}

// CompleteFormat provides shell completion for --output and --input.
func CompleteFormat(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return formatNames, cobra.ShellCompDirectiveNoFileComp
}

// InputMode controls how input is split into records.
type InputMode string

const (
	InputModeLine InputMode = "line"
	InputModeFull InputMode = "full"
)

func (m *InputMode) String() string {
	return string(*m)
}

func (m *InputMode) Set(v string) error {
	switch v {
	case "line", "full":
		*m = InputMode(v)
		return nil
	default:
		return fmt.Errorf("must be one of: line, full")
	}
}

func (m *InputMode) Type() string {
	return "InputMode"
}

// CompleteInputMode provides shell completion for --input-mode.
func CompleteInputMode(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"line", "full"}, cobra.ShellCompDirectiveNoFileComp
}

// Record is the json-each-row form of one encoded input.
type Record struct {
	Encoded string `json:"encoded"`
	Runs    int    `json:"runs"`
	Length  int    `json:"length"`
}

// RenderRuns formats runs for output. Binary formats are hex encoded so every
// record stays on one line.
func (a *App) RenderRuns(runs []rle.Run, f Format) ([]byte, error) {
	switch f {
	case FormatText, "":
		return []byte(rle.Format(runs)), nil
	case FormatJSON:
		data, err := codec.JSONCodec{}.Marshal(runs)
		if err != nil {
			return nil, err
		}
		return a.FormatValue(data), nil
	case FormatJSONEachRow:
		length := 0
		for _, r := range runs {
			length += r.Count
		}
		return json.Marshal(Record{Encoded: rle.Format(runs), Runs: len(runs), Length: length})
	case FormatMsgpack, FormatAvro:
		c, err := codec.ForName(string(f))
		if err != nil {
			return nil, err
		}
		data, err := c.Marshal(runs)
		if err != nil {
			return nil, err
		}
		return []byte(hex.EncodeToString(data)), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", f)
	}
}

// ParseRuns is the inverse of RenderRuns.
func ParseRuns(data []byte, f Format) ([]rle.Run, error) {
	switch f {
	case FormatText, "":
		// A trailing newline can never be part of a valid encoding.
		data = bytes.TrimSuffix(data, []byte("\n"))
		data = bytes.TrimSuffix(data, []byte("\r"))
		return rle.Parse(string(data))
	case FormatJSON:
		return codec.JSONCodec{}.Unmarshal(data)
	case FormatJSONEachRow:
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("%w: %v", rle.ErrInvalidEncoding, err)
		}
		return rle.Parse(rec.Encoded)
	case FormatMsgpack, FormatAvro:
		c, err := codec.ForName(string(f))
		if err != nil {
			return nil, err
		}
		raw, err := hex.DecodeString(strings.TrimSpace(string(data)))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", rle.ErrInvalidEncoding, err)
		}
		return c.Unmarshal(raw)
	default:
		return nil, fmt.Errorf("unsupported format %q", f)
	}
}

// FormatValue pretty-prints JSON data. Colors are only used on terminals.
func (a *App) FormatValue(data []byte) []byte {
	if b, err := a.JSONFmt.Format(data); err == nil {
		return b
	}
	return data
}

// DisplayRune renders spaces and non-printable characters quoted so they are
// visible in tables.
func DisplayRune(c rune) string {
	if c == ' ' || !unicode.IsPrint(c) {
		return strconv.QuoteRune(c)
	}
	return string(c)
}
