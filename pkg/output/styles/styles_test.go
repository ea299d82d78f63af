package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorDisabledByNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorEnabled())
}

func TestRenderPlainWhenDisabled(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, "done", Render(Success, "done"))
}
