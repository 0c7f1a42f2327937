package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "error with cause",
			err:  NewReadError("scan aborted", errors.New("disk gone")),
			want: "read: scan aborted: disk gone",
		},
		{
			name: "error without cause",
			err:  NewPatternError("empty group", nil),
			want: "pattern: empty group",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("underlying error")
	err := NewNotFoundError("open app.log", cause)
	assert.Same(t, cause, err.Unwrap())
	assert.ErrorIs(t, err, cause)

	assert.Nil(t, NewParseError("bad token", nil).Unwrap())
}

func TestPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"invalid argument", NewInvalidArgumentError("x", nil), IsInvalidArgument, true},
		{"parse", NewParseError("x", nil), IsParse, true},
		{"not found", NewNotFoundError("x", nil), IsNotFound, true},
		{"read", NewReadError("x", nil), IsRead, true},
		{"pattern", NewPatternError("x", nil), IsPattern, true},
		{"wrong type", NewReadError("x", nil), IsPattern, false},
		{"plain error", errors.New("x"), IsNotFound, false},
		{"nil", nil, IsRead, false},
		{"wrapped", fmt.Errorf("search: %w", NewPatternError("x", nil)), IsPattern, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.check(tt.err))
		})
	}
}
