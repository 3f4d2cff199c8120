package scoring

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"agentic-sales-be/internal/constant"
	"agentic-sales-be/internal/entity"
	"agentic-sales-be/pkg/llm"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type stubProvider struct {
	responses []string
	errs      []error
	calls     int
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	i := s.calls
	s.calls++
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	var resp string
	if i < len(s.responses) {
		resp = s.responses[i]
	}
	return resp, err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}})
}

func newTestEngine(provider llm.LLMProvider) (*Engine, *[]time.Duration) {
	var slept []time.Duration
	e := NewEngine(provider, nopLogger{})
	e.sleep = func(d time.Duration) { slept = append(slept, d) }
	return e, &slept
}

func history(contents ...string) []*entity.Message {
	var out []*entity.Message
	for i, c := range contents {
		role := constant.MessageRoleUser
		if i%2 == 1 {
			role = constant.MessageRoleAgent
		}
		out = append(out, &entity.Message{Role: role, Content: c})
	}
	return out
}

func TestScoreConversationEmptyHistory(t *testing.T) {
	engine, _ := newTestEngine(&stubProvider{})

	result := engine.ScoreConversation(context.Background(), nil, nil)

	if result.Score != 50 {
		t.Errorf("Score = %d, want 50", result.Score)
	}
	if result.Justificativa != "Sem historico de conversa" {
		t.Errorf("Justificativa = %q", result.Justificativa)
	}
}

func TestScoreConversationParsesResponse(t *testing.T) {
	provider := &stubProvider{
		responses: []string{`Claro! Segue a analise:
{"score": 82, "breakdown": {"interesse": 30, "fit": 25}, "justificativa": "Lead engajado"}`},
	}
	engine, _ := newTestEngine(provider)

	result := engine.ScoreConversation(context.Background(), history("quero comprar"), nil)

	if result.Score != 82 {
		t.Errorf("Score = %d, want 82", result.Score)
	}
	if result.Breakdown["interesse"] != 30 {
		t.Errorf("Breakdown = %v", result.Breakdown)
	}
	if result.Justificativa != "Lead engajado" {
		t.Errorf("Justificativa = %q", result.Justificativa)
	}
}

func TestScoreConversationClampsScore(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     int
	}{
		{"above range", `{"score": 140, "justificativa": "x"}`, 100},
		{"below range", `{"score": -5, "justificativa": "x"}`, 0},
		{"non numeric score", `{"score": "alto", "justificativa": "x"}`, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, _ := newTestEngine(&stubProvider{responses: []string{tt.response}})

			result := engine.ScoreConversation(context.Background(), history("oi"), nil)
			if result.Score != tt.want {
				t.Errorf("Score = %d, want %d", result.Score, tt.want)
			}
		})
	}
}

func TestScoreConversationUnparseableResponse(t *testing.T) {
	engine, _ := newTestEngine(&stubProvider{responses: []string{"nao tenho como avaliar"}})

	result := engine.ScoreConversation(context.Background(), history("oi"), nil)

	if result.Score != 50 {
		t.Errorf("Score = %d, want 50", result.Score)
	}
	if result.Justificativa != "Nao foi possivel analisar" {
		t.Errorf("Justificativa = %q", result.Justificativa)
	}
}

func TestScoreConversationRetriesWithBackoff(t *testing.T) {
	provider := &stubProvider{
		errs:      []error{errors.New("timeout"), errors.New("timeout")},
		responses: []string{"", "", `{"score": 61, "justificativa": "ok"}`},
	}
	engine, slept := newTestEngine(provider)

	result := engine.ScoreConversation(context.Background(), history("oi"), nil)

	if provider.calls != 3 {
		t.Errorf("calls = %d, want 3", provider.calls)
	}
	if result.Score != 61 {
		t.Errorf("Score = %d, want 61", result.Score)
	}
	if len(*slept) != 2 || (*slept)[0] != 1*time.Second || (*slept)[1] != 2*time.Second {
		t.Errorf("backoff = %v, want [1s 2s]", *slept)
	}
}

func TestScoreConversationExhaustsRetries(t *testing.T) {
	provider := &stubProvider{
		errs: []error{errors.New("down"), errors.New("down"), errors.New("down")},
	}
	engine, slept := newTestEngine(provider)

	result := engine.ScoreConversation(context.Background(), history("oi"), nil)

	if provider.calls != 3 {
		t.Errorf("calls = %d, want 3", provider.calls)
	}
	if result.Score != 50 {
		t.Errorf("Score = %d, want 50", result.Score)
	}
	if !strings.HasPrefix(result.Justificativa, "Fallback: erro no calculo") {
		t.Errorf("Justificativa = %q", result.Justificativa)
	}
	if len(*slept) != 2 {
		t.Errorf("sleeps = %d, want 2", len(*slept))
	}
}

func TestBuildScoringContextIncludesLead(t *testing.T) {
	lead := &entity.Lead{
		NomeCliente: "Ana Souza",
		NomeEmpresa: "Acme",
		Cargo:       "CTO",
		Tags:        []string{"saas", "urgente"},
		Notes:       "quer demo",
	}

	got := buildScoringContext(history("oi", "ola"), lead)

	for _, want := range []string{
		"## Historico da Conversa",
		"**Cliente:** oi",
		"**Agente:** ola",
		"## Dados do Lead",
		"- Empresa: Acme",
		"- Tags: saas, urgente",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("context missing %q:\n%s", want, got)
		}
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOk bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"fenced object", "```json\n{\"a\":1}\n```", `{"a":1}`, true},
		{"nested braces", `{"a":{"b":2}}`, `{"a":{"b":2}}`, true},
		{"brace inside string", `{"a":"}"}`, `{"a":"}"}`, true},
		{"escaped quote", `{"a":"\"}"}`, `{"a":"\"}"}`, true},
		{"no object", "sem json aqui", "", false},
		{"unbalanced", `{"a":1`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSONObject(tt.text)
			if ok != tt.wantOk || got != tt.want {
				t.Errorf("extractJSONObject() = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOk)
			}
		})
	}
}
