package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hokaccha/go-prettyjson"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/birdayz/rle/pkg/rle"
)

func newTestApp(in string) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	f := prettyjson.NewFormatter()
	f.DisabledColor = true
	return &App{
		OutWriter:    out,
		ErrWriter:    out,
		InReader:     strings.NewReader(in),
		ColorableOut: out,
		Log:          zap.NewNop(),
		JSONFmt:      f,
	}, out
}

func upper(_ int, rec []byte) ([]byte, error) {
	return bytes.ToUpper(rec), nil
}

func TestProcess_StdinLines(t *testing.T) {
	a, out := newTestApp("ab\ncd\n")
	err := a.Process(context.Background(), nil, InputModeLine, 0, 1, upper)
	require.NoError(t, err)
	require.Equal(t, "AB\nCD\n", out.String())
}

func TestProcess_StdinFull(t *testing.T) {
	a, out := newTestApp("ab\ncd")
	err := a.Process(context.Background(), nil, InputModeFull, 0, 1, upper)
	require.NoError(t, err)
	require.Equal(t, "AB\nCD\n", out.String())
}

func TestProcess_FilesKeepArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"c", "a", "b"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(name+"1\n"+name+"2\n"), 0644))
		paths = append(paths, p)
	}

	a, out := newTestApp("")
	err := a.Process(context.Background(), paths, InputModeLine, 0, 3, upper)
	require.NoError(t, err)
	require.Equal(t, "C1\nC2\nA1\nA2\nB1\nB2\n", out.String())
}

func TestProcess_Error(t *testing.T) {
	boom := errors.New("boom")
	a, out := newTestApp("ok\nbad\n")
	err := a.Process(context.Background(), nil, InputModeLine, 0, 1, func(_ int, rec []byte) ([]byte, error) {
		if string(rec) == "bad" {
			return nil, boom
		}
		return rec, nil
	})
	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, "record 2")
	require.Equal(t, "ok\n", out.String())

	_, err = Collect(strings.NewReader(""), InputModeLine, 0)
	require.NoError(t, err)

	a, _ = newTestApp("")
	err = a.Process(context.Background(), []string{filepath.Join(t.TempDir(), "missing")}, InputModeLine, 0, 1, upper)
	require.Error(t, err)
}

func TestProcess_ErrorStopsReader(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	boom := errors.New("boom")
	for _, mode := range []InputMode{InputModeLine, InputModeFull} {
		a, _ := newTestApp(strings.Repeat("line\n", 100))
		err := a.Process(context.Background(), nil, mode, 0, 1, func(int, []byte) ([]byte, error) {
			return nil, boom
		})
		require.ErrorIs(t, err, boom)
	}
}

func TestProcess_Cancelled(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	a, out := newTestApp(strings.Repeat("line\n", 100))
	err := a.Process(ctx, nil, InputModeLine, 0, 1, func(i int, rec []byte) ([]byte, error) {
		if i == 1 {
			cancel()
		}
		return rec, nil
	})
	require.ErrorIs(t, err, context.Canceled)
	require.LessOrEqual(t, strings.Count(out.String(), "\n"), 3)
}

func TestCollect_LineLimit(t *testing.T) {
	_, err := Collect(strings.NewReader(strings.Repeat("a", 64)+"\n"), InputModeLine, 16)
	require.ErrorContains(t, err, "scanning input failed")
}

func TestRenderParseRuns(t *testing.T) {
	a, _ := newTestApp("")
	runs := rle.Runs("aabbbcccc")

	for _, f := range []Format{FormatText, FormatJSON, FormatJSONEachRow, FormatMsgpack, FormatAvro} {
		t.Run(string(f), func(t *testing.T) {
			data, err := a.RenderRuns(runs, f)
			require.NoError(t, err)

			got, err := ParseRuns(data, f)
			require.NoError(t, err)
			if diff := cmp.Diff(runs, got); diff != "" {
				t.Fatalf("runs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderRuns_JSONEachRow(t *testing.T) {
	a, _ := newTestApp("")
	data, err := a.RenderRuns(rle.Runs("aabbbcccc"), FormatJSONEachRow)
	require.NoError(t, err)
	require.JSONEq(t, `{"encoded":"a2b3c4","runs":3,"length":9}`, string(data))
}

func TestParseRuns_TrailingNewline(t *testing.T) {
	runs, err := ParseRuns([]byte("a2b1\n"), FormatText)
	require.NoError(t, err)
	require.Equal(t, "aab", rle.Expand(runs))
}

func TestParseRuns_Invalid(t *testing.T) {
	_, err := ParseRuns([]byte("zz"), FormatMsgpack)
	require.ErrorIs(t, err, rle.ErrInvalidEncoding)

	_, err = ParseRuns([]byte("{"), FormatJSONEachRow)
	require.ErrorIs(t, err, rle.ErrInvalidEncoding)
}

func TestFormatFlag(t *testing.T) {
	var f Format
	require.NoError(t, f.Set("avro"))
	require.Equal(t, FormatAvro, f)
	require.Error(t, f.Set("xml"))

	var m InputMode
	require.NoError(t, m.Set("full"))
	require.Error(t, m.Set("words"))
}

func TestRenderTemplate(t *testing.T) {
	out, err := RenderTemplate([]byte(`{{ repeat 3 "x" }}{{ .i }}`), map[string]any{"i": 7})
	require.NoError(t, err)
	require.Equal(t, "xxx7", string(out))

	_, err = RenderTemplate([]byte(`{{ nope }}`), nil)
	require.Error(t, err)
}

func TestDisplayRune(t *testing.T) {
	require.Equal(t, "a", DisplayRune('a'))
	require.Equal(t, "' '", DisplayRune(' '))
	require.Equal(t, `'\t'`, DisplayRune('\t'))
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(`current-profile: p
profiles:
  - name: p
    output: avro
`), 0644))

	a, _ := newTestApp("")
	a.CfgFile = path
	require.NoError(t, a.InitConfig())
	require.Equal(t, "avro", a.Profile.Output)
	require.Equal(t, "line", a.Profile.InputMode)

	a.ProfileOverride = "missing"
	require.Error(t, a.InitConfig())
}
