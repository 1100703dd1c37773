package app

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RecordFunc transforms the i-th record of an input source.
type RecordFunc func(i int, record []byte) ([]byte, error)

// Process applies fn to every record read from stdin, or from each file in
// paths when any are given, and writes one output line per record. Files are
// processed concurrently, at most parallel at a time, and their output is
// written in argument order. The first error stops processing.
func (a *App) Process(ctx context.Context, paths []string, mode InputMode, lineLimit, parallel int, fn RecordFunc) error {
	if len(paths) == 0 {
		return a.processStream(ctx, mode, lineLimit, fn)
	}

	results := make([][][]byte, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}
	for i, path := range paths {
		g.Go(func() error {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("unable to open input: %w", err)
			}
			defer f.Close()

			records, err := Collect(f, mode, lineLimit)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			out := make([][]byte, 0, len(records))
			for j, rec := range records {
				if err := gctx.Err(); err != nil {
					return err
				}
				res, err := fn(j, rec)
				if err != nil {
					return fmt.Errorf("%s: record %d: %w", path, j+1, err)
				}
				out = append(out, res)
			}
			results[i] = out
			a.Log.Debug("processed file", zap.String("path", path), zap.Int("records", len(records)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, out := range results {
		for _, res := range out {
			a.writeRecord(res)
		}
	}
	return nil
}

func (a *App) processStream(ctx context.Context, mode InputMode, lineLimit int, fn RecordFunc) error {
	// Cancelling stops the reader when a record fails.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := make(chan []byte, 1)
	errCh := make(chan error, 1)
	switch mode {
	case InputModeFull:
		go ReadFull(ctx, a.InReader, out, errCh)
	default:
		go ReadLines(ctx, a.InReader, out, errCh, lineLimit)
	}

	i := 0
	for data := range out {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := fn(i, data)
		if err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
		a.writeRecord(res)
		i++
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	a.Log.Debug("processed stdin", zap.Int("records", i))

	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}

func (a *App) writeRecord(res []byte) {
	_, _ = a.ColorableOut.Write(res)
	fmt.Fprintln(a.ColorableOut)
}

// Collect reads all records of r.
func Collect(r io.Reader, mode InputMode, lineLimit int) ([][]byte, error) {
	out := make(chan []byte, 1)
	errCh := make(chan error, 1)
	ctx := context.Background()
	if mode == InputModeFull {
		go ReadFull(ctx, r, out, errCh)
	} else {
		go ReadLines(ctx, r, out, errCh, lineLimit)
	}

	var records [][]byte
	for data := range out {
		records = append(records, data)
	}
	select {
	case err := <-errCh:
		return nil, err
	default:
		return records, nil
	}
}

// ReadLines sends every line of reader to out until ctx is done. A read error
// is delivered on errCh before out is closed.
func ReadLines(ctx context.Context, reader io.Reader, out chan<- []byte, errCh chan<- error, bufferSize int) {
	defer close(out)
	scanner := bufio.NewScanner(reader)
	if bufferSize > 0 {
		scanner.Buffer(make([]byte, bufferSize), bufferSize)
	}
	for scanner.Scan() {
		select {
		case out <- bytes.Clone(scanner.Bytes()):
		case <-ctx.Done():
			return
		}
	}
	if err := scanner.Err(); err != nil {
		errCh <- fmt.Errorf("scanning input failed: %w", err)
	}
}

// ReadFull sends the whole content of reader to out as a single record.
func ReadFull(ctx context.Context, reader io.Reader, out chan<- []byte, errCh chan<- error) {
	defer close(out)
	data, err := io.ReadAll(reader)
	if err != nil {
		errCh <- fmt.Errorf("unable to read data: %w", err)
		return
	}
	select {
	case out <- data:
	case <-ctx.Done():
	}
}
