package source

import "sort"

// FilteredProvider narrows a LineProvider to a sorted set of original line
// numbers, such as the matches of the last search. With no set installed
// it passes the source through.
type FilteredProvider struct {
	source  LineProvider
	indices []int
	active  bool
}

// NewFilteredProvider creates a pass-through filtered provider
func NewFilteredProvider(source LineProvider) *FilteredProvider {
	return &FilteredProvider{source: source}
}

// SetIndices shows only the given original lines. indices must be sorted
// ascending.
func (f *FilteredProvider) SetIndices(indices []int) {
	f.indices = indices
	f.active = true
}

// ClearFilter shows every line again
func (f *FilteredProvider) ClearFilter() {
	f.indices = nil
	f.active = false
}

// IsFiltered returns true if a line set is installed
func (f *FilteredProvider) IsFiltered() bool {
	return f.active
}

// LineCount returns total number of visible lines
func (f *FilteredProvider) LineCount() int {
	if !f.active {
		return f.source.LineCount()
	}
	return len(f.indices)
}

// GetLine returns line at filtered index
func (f *FilteredProvider) GetLine(index int) (*Line, error) {
	if !f.active {
		return f.source.GetLine(index)
	}
	if index < 0 || index >= len(f.indices) {
		return nil, nil
	}
	return f.source.GetLine(f.indices[index])
}

// GetLines returns a range of filtered lines
func (f *FilteredProvider) GetLines(start, count int) ([]*Line, error) {
	if !f.active {
		return f.source.GetLines(start, count)
	}

	var lines []*Line
	for i := start; i < start+count && i < len(f.indices); i++ {
		line, err := f.GetLine(i)
		if err != nil {
			return lines, err
		}
		if line != nil {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// OriginalLineNumber returns the original line number for a filtered index
func (f *FilteredProvider) OriginalLineNumber(filteredIndex int) int {
	if !f.active {
		return filteredIndex
	}
	if filteredIndex < 0 || filteredIndex >= len(f.indices) {
		return -1
	}
	return f.indices[filteredIndex]
}

// FilteredIndexFor returns the filtered index showing originalLine, or the
// nearest following one. It returns -1 when no visible line follows.
func (f *FilteredProvider) FilteredIndexFor(originalLine int) int {
	if !f.active {
		return originalLine
	}
	i := sort.SearchInts(f.indices, originalLine)
	if i >= len(f.indices) {
		return -1
	}
	return i
}
