package directive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopDirective struct{}

func (noopDirective) Initialize(context.Context, Arguments) error { return nil }
func (noopDirective) Execute(_ context.Context, rows []*Row) ([]*Row, error) {
	return rows, nil
}
func (noopDirective) Destroy() {}

func TestRegistry(t *testing.T) {
	t.Run("creates registered directive", func(t *testing.T) {
		r := NewRegistry()
		r.Register("noop", func() Directive { return noopDirective{} })

		d, err := r.Create("noop")
		require.NoError(t, err)
		assert.NotNil(t, d)
	})

	t.Run("unknown directive", func(t *testing.T) {
		r := NewRegistry()

		_, err := r.Create("nope")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownDirective)
	})

	t.Run("names are sorted", func(t *testing.T) {
		r := NewRegistry()
		r.Register("mask", func() Directive { return noopDirective{} })
		r.Register("redact", func() Directive { return noopDirective{} })

		assert.Equal(t, []string{"mask", "redact"}, r.Names())
	})
}

func TestParseErrorUnwrap(t *testing.T) {
	err := NewParseError("redact", ErrMissingArgument)

	assert.ErrorIs(t, err, ErrMissingArgument)
	assert.Contains(t, err.Error(), "redact")
}

func TestExecutionErrorUnwrap(t *testing.T) {
	err := NewExecutionError("mask", "body", ErrInvalidArgument)

	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "body")
}
