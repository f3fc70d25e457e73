package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func TestContextAttrs(t *testing.T) {
	attrs := contextAttrs(Config{})
	got := make(map[sdl.GLattr]int, len(attrs))
	for _, a := range attrs {
		got[a.attr] = a.value
	}

	assert.Equal(t, 4, got[sdl.GL_CONTEXT_MAJOR_VERSION])
	assert.Equal(t, 1, got[sdl.GL_CONTEXT_MINOR_VERSION])
	assert.Equal(t, int(sdl.GL_CONTEXT_PROFILE_CORE), got[sdl.GL_CONTEXT_PROFILE_MASK])
	assert.Equal(t, 24, got[sdl.GL_DEPTH_SIZE])
	assert.NotContains(t, got, sdl.GLattr(sdl.GL_MULTISAMPLESAMPLES))
}

func TestContextAttrsMultisample(t *testing.T) {
	attrs := contextAttrs(Config{Samples: 4})
	last := attrs[len(attrs)-2:]
	assert.Equal(t, []glAttr{
		{sdl.GL_MULTISAMPLEBUFFERS, 1},
		{sdl.GL_MULTISAMPLESAMPLES, 4},
	}, last)
}
