package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ChaandiniV/PeriCareAIBot/internal/models"
)

const maxRelatedQuestions = 5

var sourceURLPattern = regexp.MustCompile(`https?://\S+`)

// Compose formats a record into the structured Markdown answer. Sections are
// emitted in a fixed order, only when the underlying field is non-empty, and
// joined by blank lines.
func Compose(rec models.Record) string {
	var parts []string

	if rec.ShortAnswer != "" {
		parts = append(parts, "**Quick Answer:** "+rec.ShortAnswer)
	}
	if rec.LongAnswer != "" {
		parts = append(parts, "**Detailed Information:** "+rec.LongAnswer)
	}
	if rec.WhenToSeekHelp != "" {
		parts = append(parts, "**⚠️ When to Seek Medical Help:** "+rec.WhenToSeekHelp)
	}
	if rec.Source != "" {
		parts = append(parts, "**📚 Source:** "+formatSource(rec.Source))
	}
	if rec.Category != "" {
		parts = append(parts, "**📂 Category:** "+rec.Category)
	}

	return strings.Join(parts, "\n\n")
}

// formatSource renders a citation as a Markdown link when it embeds a URL.
// The URL and the en-dash separator artifact are stripped from the label.
func formatSource(source string) string {
	url := sourceURLPattern.FindString(source)
	if url == "" {
		return source
	}
	label := strings.ReplaceAll(source, url, "")
	label = strings.ReplaceAll(label, "–", "")
	label = strings.TrimSpace(label)
	return fmt.Sprintf("[%s](%s)", label, url)
}

// RelatedQuestions parses the semicolon-separated related-questions field,
// preserving order, dropping empties, capped at five entries.
func RelatedQuestions(rec models.Record) []string {
	if rec.RelatedQuestions == "" {
		return nil
	}
	var questions []string
	for _, q := range strings.Split(rec.RelatedQuestions, ";") {
		if len(questions) == maxRelatedQuestions {
			break
		}
		if q = strings.TrimSpace(q); q != "" {
			questions = append(questions, q)
		}
	}
	return questions
}

// FallbackResponse is shown when nothing matched well enough and the
// provider could not produce a conversational reply either.
func FallbackResponse() string {
	return "I'm not certain about that specific question. For the most accurate and " +
		"personalized guidance regarding your postpartum health, it's best to consult " +
		"with your healthcare provider.\n\n" +
		"**In the meantime, here are some general resources:**\n" +
		"• Contact your OB/GYN or midwife\n" +
		"• Call your hospital's postpartum support line\n" +
		"• Reach out to Postpartum Support International: 1-944-4-WARMLINE\n\n" +
		"**For emergencies:** If you're experiencing severe symptoms, please contact " +
		"emergency services immediately (911 in the US, 999 in the UK)."
}

// errorResponse is the user-visible text for an unexpected internal fault.
// The user never sees the underlying error.
const errorResponse = "I'm sorry, I encountered an error while searching for information. " +
	"Please try rephrasing your question or consult with a healthcare provider."

// emptyReplyDefault covers a provider that answered with nothing.
const emptyReplyDefault = "I'm here to help with any postpartum questions you have. " +
	"Could you tell me more about what you're experiencing?"

// SuggestedQuestions returns starter questions to help users get going.
func SuggestedQuestions() []string {
	return []string{
		"How long will postpartum bleeding last?",
		"When can I start exercising again after birth?",
		"How do I care for a C-section incision?",
		"Is it normal to still look pregnant weeks after birth?",
		"How can I manage postpartum hair loss?",
		"What is diastasis recti and how do I treat it?",
		"How do I manage postpartum constipation?",
		"Which painkillers are safe while breastfeeding?",
		"How much postpartum swelling is normal?",
		"When will my period return after childbirth?",
	}
}

// EmergencyInfo returns the always-available emergency guidance block.
func EmergencyInfo() string {
	return "**🚨 Seek immediate medical attention if you experience:**\n\n" +
		"• Heavy bleeding (soaking a pad in under an hour)\n" +
		"• Large blood clots\n" +
		"• Signs of infection (fever, chills, foul-smelling discharge)\n" +
		"• Severe headaches or vision changes\n" +
		"• Chest pain or difficulty breathing\n" +
		"• Thoughts of harming yourself or your baby\n" +
		"• Severe abdominal pain\n" +
		"• Leg swelling with redness or warmth\n\n" +
		"**Emergency contacts:**\n" +
		"• Emergency services: 911 (US) / 999 (UK)\n" +
		"• Postpartum Support International: 1-944-4-WARMLINE"
}
