package clip

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestClosest(t *testing.T) {
	got := Suggest("inptu", []string{"input", "output", "count"}, 3)
	assert.Equal(t, []string{"input"}, got)
}

func TestSuggestNothingWithinThreshold(t *testing.T) {
	got := Suggest("zzz", []string{"input", "output"}, 3)
	assert.Empty(t, got)
}

func TestSuggestRankingAndTies(t *testing.T) {
	// same distance sorts lexically
	got := Suggest("bat", []string{"cat", "bar", "bad"}, 3)
	assert.Equal(t, []string{"bad", "bar", "cat"}, got)

	// max caps the list after ranking
	got = Suggest("bat", []string{"cat", "bar", "bad"}, 2)
	assert.Equal(t, []string{"bad", "bar"}, got)
}

func TestSuggestThresholdScalesWithLength(t *testing.T) {
	// a 12-rune name allows up to 4 edits
	got := Suggest("configuraton", []string{"configuration"}, 3)
	assert.Equal(t, []string{"configuration"}, got)

	// short names stay at the minimum threshold of 2
	got = Suggest("ab", []string{"xyzzy"}, 3)
	assert.Empty(t, got)
}

func TestEditDistance(t *testing.T) {
	var row []int
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"inptu", "input", 2},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, editDistance(c.a, c.b, &row), "%q vs %q", c.a, c.b)
		assert.Equal(t, c.want, editDistance(c.b, c.a, &row), "%q vs %q", c.b, c.a)
	}
}
