package source

import (
	"github.com/TimelordUK/colgrep/internal/index"
	cgio "github.com/TimelordUK/colgrep/internal/io"
)

// FileSource provides lines from a single file
type FileSource struct {
	file      *cgio.MappedFile
	lineIndex *index.LineIndex
	path      string
}

// NewFileSource maps path and indexes its lines
func NewFileSource(path string) (*FileSource, error) {
	file, err := cgio.OpenMapped(path)
	if err != nil {
		return nil, err
	}

	lineIndex, err := index.BuildLineIndex(file)
	if err != nil {
		file.Close()
		return nil, err
	}

	return &FileSource{
		file:      file,
		lineIndex: lineIndex,
		path:      path,
	}, nil
}

// LineCount returns total number of lines
func (s *FileSource) LineCount() int {
	return s.lineIndex.LineCount()
}

// GetLine returns line at index, or nil past the end
func (s *FileSource) GetLine(idx int) (*Line, error) {
	content, err := s.lineIndex.GetLine(idx)
	if err != nil {
		return nil, err
	}
	if content == nil && (idx < 0 || idx >= s.LineCount()) {
		return nil, nil
	}

	return &Line{Content: content, OriginalIndex: idx}, nil
}

// GetLines returns a range of lines
func (s *FileSource) GetLines(start, count int) ([]*Line, error) {
	rawLines, err := s.lineIndex.GetLines(start, count)
	if err != nil {
		return nil, err
	}
	if start < 0 {
		start = 0
	}

	lines := make([]*Line, len(rawLines))
	for i, content := range rawLines {
		lines[i] = &Line{Content: content, OriginalIndex: start + i}
	}
	return lines, nil
}

// Close unmaps the file
func (s *FileSource) Close() error {
	return s.file.Close()
}

// Path returns the file path
func (s *FileSource) Path() string {
	return s.path
}

// Refresh re-maps the file if it has grown and returns the number of new
// lines indexed
func (s *FileSource) Refresh() (int, error) {
	oldSize := s.file.Size()
	oldLineCount := s.lineIndex.LineCount()

	changed, err := s.file.Refresh()
	if err != nil || !changed {
		return 0, err
	}

	if err := s.lineIndex.AppendNewLines(oldSize); err != nil {
		return 0, err
	}
	return s.lineIndex.LineCount() - oldLineCount, nil
}
