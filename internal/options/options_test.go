package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Rate  int
	Name  string
	Calls []string
}

var errNegative = errors.New("rate cannot be negative")

func withRate(r int) Option[*testConfig] {
	return New(func(c *testConfig) error {
		if r < 0 {
			return errNegative
		}
		c.Rate = r
		c.Calls = append(c.Calls, "rate")

		return nil
	})
}

func withName(name string) Option[*testConfig] {
	return NoError(func(c *testConfig) {
		c.Name = name
		c.Calls = append(c.Calls, "name")
	})
}

func TestApply(t *testing.T) {
	t.Run("In order", func(t *testing.T) {
		c := &testConfig{}
		require.NoError(t, Apply(c, withName("walk"), withRate(30)))
		require.Equal(t, 30, c.Rate)
		require.Equal(t, "walk", c.Name)
		require.Equal(t, []string{"name", "rate"}, c.Calls)
	})

	t.Run("Stops at first error", func(t *testing.T) {
		c := &testConfig{}
		err := Apply(c, withRate(-1), withName("never"))
		require.ErrorIs(t, err, errNegative)
		require.Contains(t, err.Error(), "option 0")
		require.Empty(t, c.Name)
	})

	t.Run("Nil options are skipped", func(t *testing.T) {
		c := &testConfig{}
		require.NoError(t, Apply(c, nil, withRate(5)))
		require.Equal(t, 5, c.Rate)
	})

	t.Run("No options", func(t *testing.T) {
		require.NoError(t, Apply(&testConfig{}))
	})
}
