package dto

import "github.com/ChaandiniV/PeriCareAIBot/internal/service"

type AskRequest struct {
	Question string `json:"question"`
}

type AskResponse struct {
	Response string                 `json:"response"`
	Metadata service.AnswerMetadata `json:"metadata"`
}

type SuggestionsResponse struct {
	Questions []string `json:"questions"`
}

type EmergencyResponse struct {
	Info string `json:"info"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

type CategoryQuestionsResponse struct {
	Category  string   `json:"category"`
	Questions []string `json:"questions"`
}
