package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCopiesCategories(t *testing.T) {
	cats := []string{"Food"}
	c := New("米", cats, "mi3")
	cats[0] = "Changed"

	assert.Equal(t, []string{"Food"}, c.Categories)
	assert.NotNil(t, New("米", nil, "").Categories)
}

func TestPrimaryAndHasCategory(t *testing.T) {
	c := New("茶", []string{"Drinks", "HSK2"}, "cha2")
	assert.Equal(t, "Drinks", c.PrimaryCategory())
	assert.True(t, c.HasCategory("hsk2"))
	assert.False(t, c.HasCategory("Food"))
	assert.Empty(t, New("茶", nil, "").PrimaryCategory())
}
