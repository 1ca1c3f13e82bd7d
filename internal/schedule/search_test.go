package schedule

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	records := []Record{
		{Course: "CSE251 Data Structures", Code: "CSE251", Title: "Data Structures", Section: "A"},
		{Course: "CSE251 Data Structures", Code: "CSE251", Title: "Data Structures", Section: "B"},
		{Course: "CSE110 Programming", Code: "CSE110", Title: "Programming"},
		{Course: "MAT101 Calculus", Code: "MAT101", Title: "Calculus"},
	}

	t.Run("one suggestion per course", func(t *testing.T) {
		res := Search(records, "cse", 0)
		assert.Equal(t, 2, res.Total)
		assert.Equal(t, []string{"CSE251 Data Structures", "CSE110 Programming"}, courses(res.Suggestions))
		assert.Nil(t, res.Exact)
	})

	t.Run("matches title", func(t *testing.T) {
		res := Search(records, "calc", 0)
		require.Len(t, res.Suggestions, 1)
		assert.Equal(t, "MAT101", res.Suggestions[0].Code)
	})

	t.Run("exact code match", func(t *testing.T) {
		res := Search(records, "cse251", 0)
		require.NotNil(t, res.Exact)
		assert.Equal(t, "CSE251 Data Structures", res.Exact.Course)
	})

	t.Run("blank query", func(t *testing.T) {
		res := Search(records, "  ", 0)
		assert.Empty(t, res.Suggestions)
		assert.Zero(t, res.Total)
	})

	t.Run("no match", func(t *testing.T) {
		res := Search(records, "physics", 0)
		assert.Empty(t, res.Suggestions)
	})
}

func TestSearch_Limit(t *testing.T) {
	var records []Record
	for i := range 8 {
		code := fmt.Sprintf("CSE%d", 100+i)
		records = append(records, Record{Course: code, Code: code})
	}

	res := Search(records, "cse", 0)
	assert.Equal(t, 8, res.Total)
	assert.Len(t, res.Suggestions, DefaultSearchLimit)

	res = Search(records, "cse", 3)
	assert.Len(t, res.Suggestions, 3)
	assert.Equal(t, "CSE100", res.Suggestions[0].Course)

	// An exact match past the cap is still reported.
	records = append(records, Record{Course: "CSE10", Code: "CSE10"})
	res = Search(records, "cse10", 2)
	assert.Len(t, res.Suggestions, 2)
	require.NotNil(t, res.Exact)
	assert.Equal(t, "CSE10", res.Exact.Course)
}
