package prompt

import (
	"strings"

	"agentic-sales-be/internal/constant"
	"agentic-sales-be/internal/entity"
)

// ContextWindow is how many trailing messages the stage prompts see.
const ContextWindow = 10

// FormatContext renders the tail of the conversation as labelled lines for
// the stage prompts.
func FormatContext(messages []*entity.Message) string {
	start := 0
	if len(messages) > ContextWindow {
		start = len(messages) - ContextWindow
	}

	var b strings.Builder
	for _, msg := range messages[start:] {
		label := "Agente"
		if msg.Role == constant.MessageRoleUser {
			label = "Cliente"
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
