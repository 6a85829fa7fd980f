package service

import (
	"fmt"
	"testing"

	"github.com/ChaandiniV/PeriCareAIBot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberedRecords(n int) []models.Record {
	records := make([]models.Record, n)
	for i := range records {
		records[i] = models.Record{Question: fmt.Sprintf("Question %d?", i+1)}
	}
	return records
}

func TestParseSelectedIndices(t *testing.T) {
	records := numberedRecords(12)

	t.Run("comma separated numbers", func(t *testing.T) {
		got := parseSelectedIndices("5, 12, 8", records, 3)
		require.Len(t, got, 3)
		assert.Equal(t, "Question 5?", got[0].Record.Question)
		assert.Equal(t, "Question 12?", got[1].Record.Question)
		assert.Equal(t, "Question 8?", got[2].Record.Question)
		for _, c := range got {
			assert.Equal(t, remoteMatchScore, c.Score)
		}
	})

	t.Run("numbers embedded in prose", func(t *testing.T) {
		got := parseSelectedIndices("I think questions 2 and 4 fit best.", records, 3)
		require.Len(t, got, 2)
		assert.Equal(t, "Question 2?", got[0].Record.Question)
		assert.Equal(t, "Question 4?", got[1].Record.Question)
	})

	t.Run("out of range numbers are dropped", func(t *testing.T) {
		got := parseSelectedIndices("0, 99, 3", records, 3)
		require.Len(t, got, 1)
		assert.Equal(t, "Question 3?", got[0].Record.Question)
	})

	t.Run("no numbers yields empty", func(t *testing.T) {
		assert.Empty(t, parseSelectedIndices("I cannot help with that.", records, 3))
		assert.Empty(t, parseSelectedIndices("", records, 3))
	})

	t.Run("capped at topK", func(t *testing.T) {
		got := parseSelectedIndices("1, 2, 3, 4, 5", records, 2)
		assert.Len(t, got, 2)
	})
}
