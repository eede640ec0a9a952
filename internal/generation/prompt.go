package generation

import (
	"fmt"
	"strings"

	"surveypulse/internal/model"
)

// Chat roles used in a completion request
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// generateNow is the fixed user turn that follows the instruction
const generateNow = "Generate the questions now."

// Message is one chat turn sent to a model
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BuildMessages returns the request payload for a prompt. The output depends
// only on its arguments.
func BuildMessages(prompt string, questionCount int) []Message {
	return []Message{
		{Role: RoleSystem, Content: buildInstruction(prompt, questionCount)},
		{Role: RoleUser, Content: generateNow},
	}
}

func buildInstruction(prompt string, questionCount int) string {
	types := make([]string, len(model.GeneratableTypes))
	for i, t := range model.GeneratableTypes {
		types[i] = fmt.Sprintf("%q", t)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("You are an expert survey creator. Generate exactly %d professional survey questions based ONLY on this prompt:\n", questionCount))
	sb.WriteString(prompt)
	sb.WriteString("\n")
	sb.WriteString("Respond ONLY with a valid JSON array of questions. Each question must have:\n")
	sb.WriteString(`- "text": the question text (string)` + "\n")
	sb.WriteString(fmt.Sprintf(`- "type": one of %s (string)`, strings.Join(types, ", ")) + "\n")
	sb.WriteString(`- "options": array of strings for multiple choice, empty array for others (array)` + "\n")
	sb.WriteString(`- "required": true or false (boolean)` + "\n")
	sb.WriteString("Example response:\n")
	sb.WriteString("[\n")
	sb.WriteString(`  {"text": "How satisfied are you with our service?", "type": "rating", "options": [], "required": true},` + "\n")
	sb.WriteString(`  {"text": "Which features do you use most?", "type": "multiple_choice", "options": ["Feature A", "Feature B", "Feature C"], "required": true}` + "\n")
	sb.WriteString("]")
	return sb.String()
}
