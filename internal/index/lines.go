package index

import (
	"bytes"

	cgio "github.com/TimelordUK/colgrep/internal/io"
)

const chunkSize = 64 * 1024

// LineIndex stores the byte offset at which each line of a mapped file
// starts.
type LineIndex struct {
	offsets []int64
	file    *cgio.MappedFile
}

// BuildLineIndex scans the whole file and records line starts. An empty
// file has a single empty line.
func BuildLineIndex(file *cgio.MappedFile) (*LineIndex, error) {
	idx := &LineIndex{
		offsets: make([]int64, 1, int(file.Size()/100)+1),
		file:    file,
	}
	if err := idx.scanFrom(0); err != nil {
		return nil, err
	}
	return idx, nil
}

// AppendNewLines indexes content appended after oldSize, the mapped size
// before the file was refreshed.
func (idx *LineIndex) AppendNewLines(oldSize int64) error {
	// The line starting exactly at oldSize was not recorded because it did
	// not exist yet. A final line without a newline was, and just grows.
	if oldSize > 0 && oldSize < idx.file.Size() {
		var last [1]byte
		if _, err := idx.file.ReadAt(last[:], oldSize-1); err != nil {
			return err
		}
		if last[0] == '\n' {
			idx.offsets = append(idx.offsets, oldSize)
		}
	}
	return idx.scanFrom(oldSize)
}

func (idx *LineIndex) scanFrom(pos int64) error {
	size := idx.file.Size()
	buf := make([]byte, chunkSize)

	for pos < size {
		n := chunkSize
		if pos+int64(n) > size {
			n = int(size - pos)
		}
		read, err := idx.file.ReadAt(buf[:n], pos)
		if err != nil && read < n {
			return err
		}

		chunk := buf[:read]
		for off := 0; ; {
			i := bytes.IndexByte(chunk[off:], '\n')
			if i < 0 {
				break
			}
			if start := pos + int64(off+i+1); start < size {
				idx.offsets = append(idx.offsets, start)
			}
			off += i + 1
		}
		pos += int64(read)
	}
	return nil
}

// LineCount returns the total number of lines
func (idx *LineIndex) LineCount() int {
	return len(idx.offsets)
}

// GetLine returns the content of a 0-based line without its line ending.
// Out of range lines return nil.
func (idx *LineIndex) GetLine(lineNum int) ([]byte, error) {
	if lineNum < 0 || lineNum >= len(idx.offsets) {
		return nil, nil
	}

	end := idx.file.Size()
	if lineNum+1 < len(idx.offsets) {
		end = idx.offsets[lineNum+1]
	}

	content, err := idx.file.ReadRange(idx.offsets[lineNum], end)
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(content, "\r\n"), nil
}

// GetLines returns up to count lines starting at start
func (idx *LineIndex) GetLines(start, count int) ([][]byte, error) {
	if start < 0 {
		start = 0
	}
	if start >= len(idx.offsets) {
		return nil, nil
	}
	if start+count > len(idx.offsets) {
		count = len(idx.offsets) - start
	}

	lines := make([][]byte, count)
	for i := range lines {
		line, err := idx.GetLine(start + i)
		if err != nil {
			return nil, err
		}
		lines[i] = line
	}
	return lines, nil
}

// ByteOffset returns the byte offset of a line, or -1 if out of range
func (idx *LineIndex) ByteOffset(lineNum int) int64 {
	if lineNum < 0 || lineNum >= len(idx.offsets) {
		return -1
	}
	return idx.offsets[lineNum]
}
