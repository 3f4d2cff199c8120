package prompt

import (
	"fmt"
	"strings"
	"testing"

	"agentic-sales-be/internal/constant"
	"agentic-sales-be/internal/entity"
)

func TestFormatContext(t *testing.T) {
	messages := []*entity.Message{
		{Role: constant.MessageRoleUser, Content: "Oi, quero saber mais"},
		{Role: constant.MessageRoleAgent, Content: "Claro! Me conta seu nome?"},
		{Role: constant.MessageRoleUser, Content: "Ana"},
	}

	got := FormatContext(messages)
	want := "Cliente: Oi, quero saber mais\nAgente: Claro! Me conta seu nome?\nCliente: Ana"

	if got != want {
		t.Errorf("FormatContext() = %q, want %q", got, want)
	}
}

func TestFormatContextEmpty(t *testing.T) {
	if got := FormatContext(nil); got != "" {
		t.Errorf("FormatContext(nil) = %q, want empty", got)
	}
}

func TestFormatContextWindow(t *testing.T) {
	var messages []*entity.Message
	for i := 0; i < ContextWindow+5; i++ {
		messages = append(messages, &entity.Message{
			Role:    constant.MessageRoleUser,
			Content: fmt.Sprintf("mensagem %d", i),
		})
	}

	got := FormatContext(messages)

	if lines := strings.Count(got, "\n") + 1; lines != ContextWindow {
		t.Errorf("lines = %d, want %d", lines, ContextWindow)
	}
	if !strings.HasPrefix(got, "Cliente: mensagem 5") {
		t.Errorf("window should start at message 5, got %q", got[:30])
	}
}
