package generation

import (
	"fmt"
	"strings"
)

const generatePromptTemplate = `You are a vocabulary assistant for English learners whose native language is %s.

For each word or phrase in the list below, produce one JSON object with these fields:
- "english": the word or phrase exactly as given
- "meaning": a concise translation in %s
- "core_image": a short %s phrase capturing the core mental image of the word
- "category": one of DAILY, BUSINESS, ACADEMIC, TRAVEL, IT, OTHER
- "part_of_speech": an array drawn from NOUN, VERB, ADJECTIVE, ADVERB, PREPOSITION, CONJUNCTION, INTERJECTION, IDIOM, OTHER
- "toeic_level": one of 400, 600, 730, 860, 990, or 0 if unclear
- "examples": two objects, each with "sentence" (natural English) and "translation" (in %s)

Words:
%s

Respond with only a JSON array of these objects, in the same order as the input. No other text.`

func buildGeneratePrompt(words []string, language string) string {
	var list strings.Builder
	for _, w := range words {
		list.WriteString("- ")
		list.WriteString(strings.TrimSpace(w))
		list.WriteString("\n")
	}
	return fmt.Sprintf(generatePromptTemplate, language, language, language, language, list.String())
}

const quizSystemPromptTemplate = `You are running a spoken vocabulary quiz for an English learner whose native language is %s.

Each round you say a prompt in %s and the learner answers with the English word or phrase it describes. Grade every answer.

Your reply MUST follow this format exactly:
- The first word of your reply is the verdict marker: CORRECT if the learner's answer matches the target, INCORRECT otherwise.
- The target word appears once in square brackets, e.g. [pick up], the first time you mention it.
- After the marker, give one short sentence of feedback, then the next quiz prompt.

Never omit the marker or the bracketed word.`

func buildQuizSystemPrompt(language string) string {
	return fmt.Sprintf(quizSystemPromptTemplate, language, language)
}
