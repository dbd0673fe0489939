package category

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/hanzicards/internal/card"
	"github.com/arcanaland/hanzicards/internal/store"
)

func TestBuildFoldsCaseIntoOneBucket(t *testing.T) {
	s := store.New()
	s.Put(card.New("A1", []string{"Food"}, ""))
	s.Put(card.New("A2", []string{"food"}, ""))

	idx := Build(s)

	require.Equal(t, []string{"food"}, idx.Names())
	cards := idx["food"]
	require.Len(t, cards, 2)
	assert.Equal(t, "A1", cards[0].Character)
	assert.Equal(t, []string{"Food"}, cards[0].Categories, "stored card keeps its original case")
	assert.Equal(t, "A2", cards[1].Character)
}

func TestBuildListsCardUnderEveryCategory(t *testing.T) {
	s := store.New()
	s.Put(card.New("茶", []string{"Food", "HSK2"}, "chá"))
	s.Put(card.New("我", []string{"HSK1"}, "wǒ"))
	s.Put(card.New("空", nil, ""))

	idx := Build(s)

	assert.Equal(t, []string{"food", "hsk1", "hsk2"}, idx.Names())
	assert.Len(t, idx["food"], 1)
	assert.Len(t, idx["hsk2"], 1)
	assert.Equal(t, "茶", idx["hsk2"][0].Character)
}

func TestBuildEmptyStore(t *testing.T) {
	idx := Build(store.New())
	assert.Empty(t, idx)
	assert.Empty(t, idx.Names())
}

func TestLookupIgnoresCase(t *testing.T) {
	s := store.New()
	s.Put(card.New("你好", []string{"Greeting"}, ""))

	cards, ok := Build(s).Lookup("GREETING")
	require.True(t, ok)
	assert.Len(t, cards, 1)

	_, ok = Build(s).Lookup("food")
	assert.False(t, ok)
}

func TestBuildIsSafeForConcurrentReads(t *testing.T) {
	s := store.New()
	s.Put(card.New("一", []string{"Numbers"}, "yī"))
	s.Put(card.New("二", []string{"numbers"}, "èr"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, Build(s)["numbers"], 2)
		}()
	}
	wg.Wait()
}
