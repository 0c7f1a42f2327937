package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cgerrors "github.com/TimelordUK/colgrep/internal/errors"
)

func TestApply(t *testing.T) {
	t.Parallel()

	const line = "2024-01-15 10:30:45 host app[42] INFO request served"

	tests := []struct {
		name string
		spec Spec
		want string
	}{
		{"zero spec", Spec{}, line},
		{"include ranges", Spec{Columns: "0:2 4:"}, "2024-01-15 10:30:45 INFO request served"},
		{"exclude indexes", Spec{Columns: "3 4", Mode: ModeExclude}, "2024-01-15 10:30:45 INFO request"},
		{"exclude keep last", Spec{Columns: "3 4", Mode: ModeExclude, KeepLast: true}, "2024-01-15 10:30:45 INFO request served"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Apply(line, tt.spec))
		})
	}
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeInclude, false},
		{"include", ModeInclude, false},
		{"Exclude", ModeExclude, false},
		{" exclude ", ModeExclude, false},
		{"cut", ModeInclude, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, cgerrors.IsInvalidArgument(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "include", ModeInclude.String())
	assert.Equal(t, "exclude", ModeExclude.String())
	assert.Equal(t, "unknown", Mode(7).String())
}

func TestCheck(t *testing.T) {
	t.Parallel()

	require.NoError(t, Check(Spec{Columns: "0:2 3: :-1 4"}))
	require.NoError(t, Check(Spec{Columns: "1 -2", Mode: ModeExclude}))

	err := Check(Spec{Columns: "0:2 x:1 1:y"})
	require.Error(t, err)
	assert.True(t, cgerrors.IsParse(err))
	assert.Contains(t, err.Error(), `"x:1"`)
	assert.Contains(t, err.Error(), `"1:y"`)

	err = Check(Spec{Columns: "1 two", Mode: ModeExclude})
	require.Error(t, err)
	assert.True(t, cgerrors.IsParse(err))
}

func TestSpecIsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, Spec{}.IsZero())
	assert.True(t, Spec{Columns: "  "}.IsZero())
	assert.False(t, Spec{Mode: ModeExclude}.IsZero())
	assert.False(t, Spec{Columns: "0:1"}.IsZero())
}

func BenchmarkApplyInclude(b *testing.B) {
	line := "2024-01-15 10:30:45.123 [worker-7] INFO http.server request served in 12ms status=200"
	spec := Spec{Columns: "0:2 3:5 -1:"}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Apply(line, spec)
	}
}
