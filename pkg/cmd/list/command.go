package list

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/birdayz/rle/pkg/app"
	"github.com/birdayz/rle/pkg/sliceutil"
)

// NewCommand returns the "rle list" command. Its subcommands fold a list of
// items given as arguments, or as stdin lines when there are none.
func NewCommand(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Fold lists of numbers, lines or JSON values",
		Example: `  rle list sum 1 2 3 4 5
  printf 'a\nb\na\n' | rle list dedup
  printf '[1,2]\n[3,4]\n[5]\n' | rle list flatten
  printf '{"type":"fruit","name":"apple"}\n{"type":"vegetable","name":"carrot"}\n' | rle list group --by type`,
	}

	cmd.AddCommand(
		newNumbersCommand(a, "sum", "Add all numbers", func(xs []float64) (float64, error) {
			return sliceutil.Sum(xs), nil
		}),
		newNumbersCommand(a, "product", "Multiply all numbers", func(xs []float64) (float64, error) {
			return sliceutil.Product(xs), nil
		}),
		newNumbersCommand(a, "max", "Print the largest number", func(xs []float64) (float64, error) {
			m, ok := sliceutil.Max(xs)
			if !ok {
				return 0, fmt.Errorf("no numbers given")
			}
			return m, nil
		}),
		newDedupCommand(a),
		newFlattenCommand(a),
		newGroupCommand(a),
	)
	return cmd
}

// items returns args, or every line of stdin when args is empty.
func items(a *app.App, args []string, lineLimit int) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	records, err := app.Collect(a.InReader, app.InputModeLine, lineLimit)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(records))
	for _, rec := range records {
		out = append(out, string(rec))
	}
	return out, nil
}

func addLineLimitFlag(cmd *cobra.Command, lineLimit *int) {
	cmd.Flags().IntVar(lineLimit, "line-length-limit", 0, "line length limit")
}

func newNumbersCommand(a *app.App, name, short string, fold func([]float64) (float64, error)) *cobra.Command {
	var lineLimitFlag int

	cmd := &cobra.Command{
		Use:   name + " [NUMBER...]",
		Short: short + ". Reads one number per line from stdin without arguments.",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := items(a, args, lineLimitFlag)
			if err != nil {
				return err
			}
			var xs []float64
			for i, s := range in {
				s = strings.TrimSpace(s)
				if s == "" {
					continue
				}
				x, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return fmt.Errorf("item %d: %q is not a number", i+1, s)
				}
				xs = append(xs, x)
			}
			res, err := fold(xs)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.OutWriter, strconv.FormatFloat(res, 'f', -1, 64))
			return nil
		},
	}
	addLineLimitFlag(cmd, &lineLimitFlag)
	return cmd
}

func newDedupCommand(a *app.App) *cobra.Command {
	var lineLimitFlag int

	cmd := &cobra.Command{
		Use:   "dedup [ITEM...]",
		Short: "Print the first occurrence of every item. Reads lines from stdin without arguments.",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := items(a, args, lineLimitFlag)
			if err != nil {
				return err
			}
			for _, s := range sliceutil.Dedup(in) {
				fmt.Fprintln(a.OutWriter, s)
			}
			return nil
		},
	}
	addLineLimitFlag(cmd, &lineLimitFlag)
	return cmd
}

func newFlattenCommand(a *app.App) *cobra.Command {
	var lineLimitFlag int

	cmd := &cobra.Command{
		Use:   "flatten [JSON-ARRAY...]",
		Short: "Concatenate JSON arrays into one. Reads one array per line from stdin without arguments.",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := items(a, args, lineLimitFlag)
			if err != nil {
				return err
			}
			var arrays [][]json.RawMessage
			for i, s := range in {
				if strings.TrimSpace(s) == "" {
					continue
				}
				var arr []json.RawMessage
				if err := json.Unmarshal([]byte(s), &arr); err != nil {
					return fmt.Errorf("item %d: expected a JSON array: %w", i+1, err)
				}
				arrays = append(arrays, arr)
			}
			return writeJSON(a, sliceutil.Flatten(arrays))
		},
	}
	addLineLimitFlag(cmd, &lineLimitFlag)
	return cmd
}

func newGroupCommand(a *app.App) *cobra.Command {
	var (
		byFlag        string
		lineLimitFlag int
	)

	cmd := &cobra.Command{
		Use:   "group --by KEY [JSON-OBJECT...]",
		Short: "Group JSON objects by the value of a key. Reads one object per line from stdin without arguments.",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := items(a, args, lineLimitFlag)
			if err != nil {
				return err
			}
			var objects []map[string]json.RawMessage
			for i, s := range in {
				if strings.TrimSpace(s) == "" {
					continue
				}
				var obj map[string]json.RawMessage
				if err := json.Unmarshal([]byte(s), &obj); err != nil {
					return fmt.Errorf("item %d: expected a JSON object: %w", i+1, err)
				}
				if _, ok := obj[byFlag]; !ok {
					return fmt.Errorf("item %d: key %q not found", i+1, byFlag)
				}
				objects = append(objects, obj)
			}
			return writeJSON(a, sliceutil.GroupBy(objects, func(obj map[string]json.RawMessage) string {
				return groupKey(obj[byFlag])
			}))
		},
	}
	cmd.Flags().StringVar(&byFlag, "by", "", "Key to group by")
	_ = cmd.MarkFlagRequired("by")
	addLineLimitFlag(cmd, &lineLimitFlag)
	return cmd
}

// groupKey uses strings as they are and the JSON text of any other value.
func groupKey(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	var b bytes.Buffer
	if err := json.Compact(&b, v); err != nil {
		return string(v)
	}
	return b.String()
}

func writeJSON(a *app.App, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.OutWriter, string(a.FormatValue(data)))
	return nil
}
