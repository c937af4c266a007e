package attr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammarCursor(t *testing.T) {
	cases := []struct {
		raw string
		ok  bool
	}{
		{"pointer", true},
		{"not-allowed", true},
		{"grab", true},
		{"url(#c) pointer", true},
		{"banana", false},
		{"", false},
	}
	for _, c := range cases {
		g := &Grammar{term: cursorGrammar}
		err := g.Parse(c.raw)
		if c.ok {
			assert.NoErrorf(t, err, "raw=%q", c.raw)
		} else {
			assert.Errorf(t, err, "raw=%q", c.raw)
		}
	}
}

func TestParseCursorThroughRegistry(t *testing.T) {
	v, ok, err := Parse("cursor", "zoom-in")
	require.True(t, ok)
	require.NoError(t, err)
	assert.Equal(t, "zoom-in", WriteAtom(v))

	_, ok, err = Parse("cursor", "not-a-cursor")
	require.True(t, ok)
	assert.Error(t, err)
}
