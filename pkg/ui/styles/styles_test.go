package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedStylesLoad(t *testing.T) {
	for _, name := range []string{"Title", "Section", "Label", "Success", "Changed", "Warning", "Error", "Muted"} {
		_, ok := StyleRegistry[name]
		assert.True(t, ok, "style %s should be registered", name)
	}
	assert.True(t, GetStyle("Title").GetBold())
	assert.Equal(t, 14, GetStyle("Label").GetWidth())
}

func TestGetStyle_Unknown(t *testing.T) {
	s := GetStyle("NoSuchStyle")
	assert.False(t, s.GetBold())
	assert.Equal(t, "plain", s.Render("plain"))
}

func TestLoadStylesFromData(t *testing.T) {
	defer func() {
		require.NoError(t, LoadStylesFromData(embeddedStyles))
	}()

	err := LoadStylesFromData([]byte("styles:\n  Only:\n    italic: true\n"))
	require.NoError(t, err)
	assert.True(t, GetStyle("Only").GetItalic())
	_, ok := StyleRegistry["Title"]
	assert.False(t, ok)

	assert.Error(t, LoadStylesFromData([]byte("styles: [")))
	assert.Error(t, LoadStylesFromData([]byte("colors: {}\n")))
}

func TestMergeStyles(t *testing.T) {
	merged := MergeStyles("Changed", "Muted")
	assert.True(t, merged.GetBold())
	assert.True(t, merged.GetItalic())
}
