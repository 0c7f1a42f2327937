package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectByExclusion(t *testing.T) {
	t.Parallel()

	const line = "a b c d e"

	tests := []struct {
		name string
		line string
		spec string
		want string
	}{
		{"excludes second field, drops last", line, "2", "a c d"},
		{"empty spec still drops last", line, "", "a b c d"},
		{"minus one is the last field", line, "-1", "a b c d"},
		{"minus two", line, "-2", "a b c"},
		{"duplicates are idempotent", line, "1 1 3", "b d"},
		{"out of range indices have no effect", line, "0 9 -9", "a b c d"},
		{"non-numeric tokens are ignored", line, "x 2 y", "a c d"},
		{"everything excluded", line, "1 2 3 4", ""},
		{"single field line", "a", "", ""},
		{"empty line", "", "1", ""},
		{"collapses separators", "a   b \t c", "", "a b"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SelectByExclusion(tt.line, tt.spec))
		})
	}
}

func TestSelectByExclusionMinusOneMatchesEmptySpec(t *testing.T) {
	t.Parallel()

	for _, line := range []string{"a b c d e", "x y", "one", ""} {
		assert.Equal(t, SelectByExclusion(line, ""), SelectByExclusion(line, "-1"), line)
	}
}

func TestSelectByExclusionKeepLast(t *testing.T) {
	t.Parallel()

	const line = "a b c d e"

	tests := []struct {
		spec string
		want string
	}{
		{"", "a b c d e"},
		{"2", "a c d e"},
		{"-1", "a b c d"},
		{"1 -1", "b c d"},
		{"9", "a b c d e"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.spec, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SelectByExclusionKeepLast(line, tt.spec))
		})
	}

	assert.Equal(t, "a", SelectByExclusionKeepLast("a", ""))
}

func TestParseIndexes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []int{2, -1, 4}, ParseIndexes("2 x -1 4 1.5"))
	assert.Nil(t, ParseIndexes(""))
}

func TestResolveIndex(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, ResolveIndex(-1, 5))
	assert.Equal(t, 1, ResolveIndex(-5, 5))
	assert.Equal(t, 0, ResolveIndex(-6, 5))
	assert.Equal(t, 3, ResolveIndex(3, 5))
}
