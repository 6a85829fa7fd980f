package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ChaandiniV/PeriCareAIBot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleJSON = `[
	{
		"Question": "How long will postpartum bleeding last?",
		"Category": "Physical Recovery",
		"Keywords": "lochia, bleeding",
		"Short Answer": "Typically 4-6 weeks.",
		"Long Answer": "Lochia starts heavy and tapers off.",
		"When to Seek Help": "Soaking a pad in under an hour.",
		"Source": "Mayo Clinic – https://mayoclinic.org/x",
		"Related Questions": "When does lochia stop?; Is clotting normal?"
	},
	{
		"Question": "How do I know my baby is getting enough milk?",
		"Category": "Breastfeeding Basics",
		"Keywords": "milk supply, weight gain"
	},
	{
		"Question": "What is diastasis recti?",
		"Category": "Physical Recovery"
	}
]`

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	logger := zap.NewNop()

	t.Run("valid source", func(t *testing.T) {
		store, err := LoadFile(writeSource(t, sampleJSON), logger)
		require.NoError(t, err)
		assert.Equal(t, 3, store.Len())
		assert.Equal(t, "How long will postpartum bleeding last?", store.Records()[0].Question)
		// Optional fields absent in the document default to empty strings.
		assert.Empty(t, store.Records()[1].Source)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"), logger)
		assert.ErrorIs(t, err, ErrSourceNotFound)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := LoadFile(writeSource(t, `{"not": "an array"`), logger)
		assert.ErrorIs(t, err, ErrSourceMalformed)
	})

	t.Run("wrong shape", func(t *testing.T) {
		_, err := LoadFile(writeSource(t, `{"not": "an array"}`), logger)
		assert.ErrorIs(t, err, ErrSourceMalformed)
	})
}

func TestNewStoreSkipsEmptyQuestions(t *testing.T) {
	store := NewStore([]models.Record{
		{Question: "Valid?"},
		{Question: "   "},
		{Question: ""},
		{Question: "Also valid?"},
	}, zap.NewNop())

	require.Equal(t, 2, store.Len())
	assert.Equal(t, "Valid?", store.Records()[0].Question)
	assert.Equal(t, "Also valid?", store.Records()[1].Question)
}

func TestCategories(t *testing.T) {
	store, err := LoadFile(writeSource(t, sampleJSON), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, []string{"Breastfeeding Basics", "Physical Recovery"}, store.Categories())
}

func TestQuestionsByCategory(t *testing.T) {
	store, err := LoadFile(writeSource(t, sampleJSON), zap.NewNop())
	require.NoError(t, err)

	records := store.QuestionsByCategory("physical recovery")
	require.Len(t, records, 2)
	assert.Equal(t, "How long will postpartum bleeding last?", records[0].Question)
	assert.Equal(t, "What is diastasis recti?", records[1].Question)

	assert.Empty(t, store.QuestionsByCategory("Sleep"))
}
