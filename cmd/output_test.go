package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapText(t *testing.T) {
	assert.Equal(t, []string{"one two", "three"}, wrapText("one two three", 10))
	assert.Equal(t, []string{"first", "", "second"}, wrapText("first\n\nsecond", 40))
	assert.Equal(t, []string{"你好 世界", "再见"}, wrapText("你好 世界 再见", 10), "Han characters take two columns")
	assert.Equal(t, []string{"cat 猫 dog", "狗"}, wrapText("cat 猫 dog 狗", 10))
}

func TestDisplayWidth(t *testing.T) {
	assert.Equal(t, 5, displayWidth("hello"))
	assert.Equal(t, 4, displayWidth("你好"))
	assert.Equal(t, 6, displayWidth("ni你好"))
	assert.Equal(t, 2, displayWidth("，"), "fullwidth punctuation")
	assert.Equal(t, 0, displayWidth(""))
}
