package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"agentic-sales-be/internal/constant"
	"agentic-sales-be/internal/entity"
	"agentic-sales-be/internal/pkg/logger"
	"agentic-sales-be/pkg/llm"
)

const (
	maxAttempts  = 3
	neutralScore = 50
)

// Result is the outcome of a lead scoring run. The engine never fails: when
// the model or parsing misbehaves it degrades to a neutral score with a
// justification explaining why.
type Result struct {
	Score         int            `json:"score"`
	Breakdown     map[string]int `json:"breakdown"`
	Justificativa string         `json:"justificativa"`
}

type Engine struct {
	provider llm.LLMProvider
	logger   logger.ILogger
	sleep    func(time.Duration)
}

func NewEngine(provider llm.LLMProvider, log logger.ILogger) *Engine {
	return &Engine{
		provider: provider,
		logger:   log,
		sleep:    time.Sleep,
	}
}

// ScoreConversation rates the lead from the conversation history and the
// lead record itself.
func (e *Engine) ScoreConversation(ctx context.Context, messages []*entity.Message, lead *entity.Lead) Result {
	if len(messages) == 0 {
		return Result{Score: neutralScore, Breakdown: map[string]int{}, Justificativa: "Sem historico de conversa"}
	}

	prompt := buildScoringContext(messages, lead)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		response, err := e.provider.Chat(ctx, []llm.Message{
			{Role: "system", Content: constant.LeadScoringPrompt},
			{Role: "user", Content: prompt},
		})
		if err != nil {
			lastErr = err
			e.logger.Warn("ScoringEngine", "Scoring attempt failed", map[string]interface{}{
				"attempt": attempt,
				"error":   err.Error(),
			})
			if attempt < maxAttempts {
				e.sleep(time.Duration(1<<(attempt-1)) * time.Second)
			}
			continue
		}

		if result, ok := parseResult(response); ok {
			return result
		}

		e.logger.Warn("ScoringEngine", "Could not parse scoring response", map[string]interface{}{
			"attempt":  attempt,
			"response": response,
		})
		return Result{Score: neutralScore, Breakdown: map[string]int{}, Justificativa: "Nao foi possivel analisar"}
	}

	return Result{
		Score:         neutralScore,
		Breakdown:     map[string]int{},
		Justificativa: fmt.Sprintf("Fallback: erro no calculo (%v)", lastErr),
	}
}

func buildScoringContext(messages []*entity.Message, lead *entity.Lead) string {
	var b strings.Builder

	b.WriteString("## Historico da Conversa\n")
	for _, msg := range messages {
		label := "Agente"
		if msg.Role == constant.MessageRoleUser {
			label = "Cliente"
		}
		fmt.Fprintf(&b, "**%s:** %s\n", label, msg.Content)
	}

	b.WriteString("\n## Dados do Lead\n")
	if lead != nil {
		fmt.Fprintf(&b, "- Nome: %s\n", lead.NomeCliente)
		fmt.Fprintf(&b, "- Empresa: %s\n", lead.NomeEmpresa)
		fmt.Fprintf(&b, "- Cargo: %s\n", lead.Cargo)
		fmt.Fprintf(&b, "- Tags: %s\n", strings.Join(lead.Tags, ", "))
		fmt.Fprintf(&b, "- Observacoes: %s\n", lead.Notes)
	}

	return b.String()
}

// parseResult pulls the first balanced JSON object out of the response and
// decodes it. Models often wrap the object in prose or code fences.
func parseResult(response string) (Result, bool) {
	raw, ok := extractJSONObject(response)
	if !ok {
		return Result{}, false
	}

	var parsed struct {
		Score         interface{}    `json:"score"`
		Breakdown     map[string]int `json:"breakdown"`
		Justificativa string         `json:"justificativa"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return Result{}, false
	}

	score := neutralScore
	if num, isNum := parsed.Score.(float64); isNum {
		score = int(num)
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	breakdown := parsed.Breakdown
	if breakdown == nil {
		breakdown = map[string]int{}
	}

	return Result{Score: score, Breakdown: breakdown, Justificativa: parsed.Justificativa}, true
}

func extractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
