package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatStepLine(t *testing.T) {
	line := FormatStepLine(3, 8, "git", StatusFailed)

	assert.Contains(t, line, "[3/8]")
	assert.Contains(t, line, "git")
	assert.Contains(t, line, "failed")
}

func TestStatusStyle_UnknownIsUnstyled(t *testing.T) {
	assert.Equal(t, "pending", StatusStyle("pending").Render("pending"))
}

func TestFormatCheckmark(t *testing.T) {
	out := FormatCheckmark("App blog created")
	assert.Contains(t, out, "✔")
	assert.Contains(t, out, "App blog created")
}
