package service

import (
	"testing"
	"time"

	"agentic-sales-be/internal/config"
	"agentic-sales-be/internal/constant"
	"agentic-sales-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAppendTags(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		add      []string
		limit    int
		want     []string
	}{
		{
			name:     "appends up to limit",
			existing: []string{"a", "b"},
			add:      []string{"c", "d", "e", "f"},
			limit:    5,
			want:     []string{"a", "b", "c", "d", "e"},
		},
		{
			name:     "skips duplicates",
			existing: []string{"a", "b"},
			add:      []string{"b", "c"},
			limit:    5,
			want:     []string{"a", "b", "c"},
		},
		{
			name:     "already at limit",
			existing: []string{"a", "b", "c"},
			add:      []string{"d"},
			limit:    3,
			want:     []string{"a", "b", "c"},
		},
		{
			name:     "empty existing",
			existing: nil,
			add:      []string{"a"},
			limit:    3,
			want:     []string{"a"},
		},
		{
			name:     "normalizes case and spaces",
			existing: []string{"interessado"},
			add:      []string{"Interessado", "Muito Quente"},
			limit:    5,
			want:     []string{"interessado", "muito_quente"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, appendTags(tt.existing, tt.add, tt.limit))
		})
	}
}

func TestFirstWord(t *testing.T) {
	assert.Equal(t, "Ana", firstWord("Ana Souza Lima"))
	assert.Equal(t, "Ana", firstWord("  Ana  "))
	assert.Equal(t, "", firstWord("   "))
	assert.Equal(t, "", firstWord(""))
}

func TestLeadSnapshot(t *testing.T) {
	id := uuid.New()
	lead := &entity.Lead{
		Id:          id,
		NomeCliente: "Ana Souza",
		NomeEmpresa: "Acme",
		Cargo:       "CTO",
		Stage:       constant.StageNegotiation,
		Tags:        []string{"saas"},
	}

	snap := leadSnapshot(lead)

	assert.NotNil(t, snap)
	assert.Equal(t, id, *snap.Id)
	assert.Equal(t, "Ana", snap.FirstName)
	assert.Equal(t, "Acme", snap.NomeEmpresa)
	assert.Equal(t, constant.StageNegotiation, snap.Stage)
	assert.Equal(t, []string{"saas"}, snap.Tags)
}

func TestLeadSnapshotDefaultsStage(t *testing.T) {
	lead := &entity.Lead{Id: uuid.New(), NomeCliente: "Ana", Stage: "algo_invalido"}

	snap := leadSnapshot(lead)

	assert.Equal(t, constant.StageFirstContact, snap.Stage)
}

func TestLeadSnapshotNil(t *testing.T) {
	assert.Nil(t, leadSnapshot(nil))
}

func TestCountUserMessages(t *testing.T) {
	history := []*entity.Message{
		{Role: constant.MessageRoleUser},
		{Role: constant.MessageRoleAgent},
		{Role: constant.MessageRoleUser},
		{Role: constant.MessageRoleAdmin},
	}

	assert.Equal(t, 2, countUserMessages(history))
	assert.Equal(t, 0, countUserMessages(nil))
}

func TestHumanizedDelayStaysInWindow(t *testing.T) {
	var slept []time.Duration
	s := &webhookService{
		cfg: config.AgentConfig{
			MinResponseDelay:     3,
			MaxResponseDelay:     10,
			ConsolidationTimeout: 60,
		},
		sleep: func(d time.Duration) { slept = append(slept, d) },
	}

	for i := 0; i < 50; i++ {
		s.humanizedDelay()
	}

	assert.Len(t, slept, 50)
	for _, d := range slept {
		assert.GreaterOrEqual(t, d, 3*time.Second)
		assert.LessOrEqual(t, d, 10*time.Second)
	}
}

func TestHumanizedDelayCeilingBelowConsolidationWindow(t *testing.T) {
	var slept []time.Duration
	s := &webhookService{
		cfg: config.AgentConfig{
			MinResponseDelay:     3,
			MaxResponseDelay:     30,
			ConsolidationTimeout: 10,
		},
		sleep: func(d time.Duration) { slept = append(slept, d) },
	}

	for i := 0; i < 50; i++ {
		s.humanizedDelay()
	}

	for _, d := range slept {
		assert.LessOrEqual(t, d, 5*time.Second)
	}
}

func TestHumanizedDelayZeroConfigSkipsSleep(t *testing.T) {
	called := false
	s := &webhookService{
		cfg:   config.AgentConfig{},
		sleep: func(time.Duration) { called = true },
	}

	s.humanizedDelay()

	assert.False(t, called)
}

func TestHistoryLimitDefault(t *testing.T) {
	s := &webhookService{cfg: config.AgentConfig{}}
	assert.Equal(t, 20, s.historyLimit())

	s = &webhookService{cfg: config.AgentConfig{HistoryLimit: 50}}
	assert.Equal(t, 50, s.historyLimit())
}
