package models

// Record is one Q&A unit from the postpartum knowledge base. JSON field
// names match the source document, including the spaced ones. Optional
// fields default to the empty string.
type Record struct {
	Question         string `json:"Question"`
	Category         string `json:"Category"`
	Keywords         string `json:"Keywords"`
	ShortAnswer      string `json:"Short Answer"`
	LongAnswer       string `json:"Long Answer"`
	WhenToSeekHelp   string `json:"When to Seek Help"`
	Source           string `json:"Source"`
	RelatedQuestions string `json:"Related Questions"`
	Tone             string `json:"Tone"`
}
