package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, Markdown, Normalize("md"))
	assert.Equal(t, Markdown, Normalize(".MD"))
	assert.Equal(t, XHTML, Normalize("html"))
	assert.Equal(t, XHTML, Normalize(XHTML))
	assert.Equal(t, XML, Normalize("xml"))
	assert.Equal(t, Plain, Normalize("txt"))
	assert.Equal(t, "rtf", Normalize("rtf"))
}
