package service

import (
	"fmt"

	"github.com/ChaandiniV/PeriCareAIBot/internal/models"
)

func groundedPrompt(query string, rec models.Record) string {
	tone := rec.Tone
	if tone == "" {
		tone = "supportive, empathetic"
	}
	return fmt.Sprintf(`A new mother asked: %q

Based on this information from our medical knowledge base:
- Question: %s
- Short Answer: %s
- Detailed Answer: %s
- When to Seek Help: %s
- Source: %s

Please provide a warm, conversational response that:
1. Is concise but supportive (2-3 sentences max)
2. Incorporates the most important medical information from the short and detailed answers
3. Uses the tone: %s
4. Keeps essential medical accuracy but stays brief and conversational

Keep it short and helpful - don't repeat all the information, just the key points.`,
		query, rec.Question, rec.ShortAnswer, rec.LongAnswer, rec.WhenToSeekHelp, rec.Source, tone)
}

func generalPrompt(query string) string {
	return fmt.Sprintf(`A new mother asked: %q

This question isn't directly covered in our knowledge base, but you should:
1. Acknowledge her concern warmly
2. Provide general supportive guidance if it's related to postpartum health
3. Always emphasize consulting with healthcare providers for specific medical advice
4. Be encouraging and supportive
5. If it's completely unrelated to postpartum health, gently redirect to postpartum topics

Keep the response conversational and caring, like talking to a supportive friend.`, query)
}
