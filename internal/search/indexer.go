// Package search computes the line numbers of a file that match a pattern
// within a bounded window, for jump-to-next-match navigation.
package search

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	cgerrors "github.com/TimelordUK/colgrep/internal/errors"
	cgio "github.com/TimelordUK/colgrep/internal/io"
)

// WindowSize is the maximum number of lines scanned per request
const WindowSize = 5000

// Request describes one search
type Request struct {
	Path    string
	Pattern string
	// StartLine is the 1-based first line of the window; 0 means 1.
	StartLine int
	Options
}

// Result carries the outcome of an asynchronous search
type Result struct {
	Request Request
	Matches []int
	Err     error
}

// Indexer scans files for matching lines
type Indexer struct {
	logger *zap.Logger
	window int
}

// NewIndexer creates an indexer; a nil logger discards output
func NewIndexer(logger *zap.Logger) *Indexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Indexer{
		logger: logger.Named("search"),
		window: WindowSize,
	}
}

// Search returns the 1-based, window-relative numbers of the lines that
// match req.Pattern. Number 1 is req.StartLine. The result is empty, not
// nil, when nothing matches, and nil whenever an error is returned.
func (x *Indexer) Search(ctx context.Context, req Request) ([]int, error) {
	m, err := Compile(req.Pattern, req.Options)
	if err != nil {
		return nil, err
	}

	file, err := cgio.OpenMapped(req.Path)
	if err != nil {
		return nil, cgerrors.NewNotFoundError(fmt.Sprintf("cannot open %s", req.Path), err)
	}
	defer file.Close()

	return x.scan(ctx, file.NewLineReader(0), m, req)
}

// SearchReader is Search over an already open stream. Only the pattern,
// options and start line of req are used.
func (x *Indexer) SearchReader(ctx context.Context, r io.Reader, req Request) ([]int, error) {
	m, err := Compile(req.Pattern, req.Options)
	if err != nil {
		return nil, err
	}
	return x.scan(ctx, bufio.NewReader(r), m, req)
}

// SearchAsync runs Search on its own goroutine. The channel yields exactly
// one Result and is then closed. Cancel ctx to abandon the scan.
func (x *Indexer) SearchAsync(ctx context.Context, req Request) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		matches, err := x.Search(ctx, req)
		out <- Result{Request: req, Matches: matches, Err: err}
	}()
	return out
}

func (x *Indexer) scan(ctx context.Context, r *bufio.Reader, m Matcher, req Request) ([]int, error) {
	started := time.Now()
	start := req.StartLine
	if start < 1 {
		start = 1
	}

	// Skip to the window start.
	for skipped := 1; skipped < start; skipped++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("search cancelled: %w", err)
		}
		if _, err := readLine(r); err != nil {
			if err == io.EOF {
				return []int{}, nil
			}
			return nil, cgerrors.NewReadError(fmt.Sprintf("reading line %d", skipped), err)
		}
	}

	matches := []int{}
	for n := 1; n <= x.window; n++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("search cancelled: %w", err)
		}
		line, err := readLine(r)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, cgerrors.NewReadError(fmt.Sprintf("reading line %d", start+n-1), err)
		}
		ok, err := m.Match(line)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, n)
		}
	}

	x.logger.Debug("search complete",
		zap.String("path", req.Path),
		zap.String("pattern", req.Pattern),
		zap.Int("start_line", start),
		zap.Int("matches", len(matches)),
		zap.Duration("elapsed", time.Since(started)))

	return matches, nil
}

// readLine returns the next line without its line ending. A final line
// without a newline is returned with a nil error; io.EOF is only returned
// once nothing is left.
func readLine(r *bufio.Reader) ([]byte, error) {
	line, err := r.ReadBytes('\n')
	if err == io.EOF {
		if len(line) == 0 {
			return nil, io.EOF
		}
		err = nil
	}
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(line, "\r\n"), nil
}

// Absolute converts window-relative match numbers into 0-based absolute
// file lines for a window that began at startLine.
func Absolute(matches []int, startLine int) []int {
	if startLine < 1 {
		startLine = 1
	}
	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = startLine + m - 2
	}
	return out
}
