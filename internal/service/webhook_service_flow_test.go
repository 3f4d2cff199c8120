package service

import (
	"context"
	"testing"
	"time"

	"agentic-sales-be/internal/config"
	"agentic-sales-be/internal/constant"
	"agentic-sales-be/internal/dto"
	"agentic-sales-be/internal/entity"
	"agentic-sales-be/internal/repository/contract"
	"agentic-sales-be/internal/repository/specification"
	"agentic-sales-be/internal/repository/unitofwork"
	"agentic-sales-be/pkg/agent/directive"
	"agentic-sales-be/pkg/agent/pipeline"
	"agentic-sales-be/pkg/agent/scoring"
	"agentic-sales-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// memStore backs the in-memory repository fakes: one profile, one
// conversation, one lead, matching the single-contact scenarios.
type memStore struct {
	profile      *entity.Profile
	conversation *entity.Conversation
	lead         *entity.Lead
	agentConfig  *entity.AgentConfig
	messages     []*entity.Message
	leadCreates  int
}

type memProfileRepo struct{ s *memStore }

func (r *memProfileRepo) Create(ctx context.Context, p *entity.Profile) error {
	r.s.profile = p
	return nil
}
func (r *memProfileRepo) Update(ctx context.Context, p *entity.Profile) error {
	r.s.profile = p
	return nil
}
func (r *memProfileRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Profile, error) {
	return r.s.profile, nil
}
func (r *memProfileRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Profile, error) {
	if r.s.profile == nil {
		return nil, nil
	}
	return []*entity.Profile{r.s.profile}, nil
}
func (r *memProfileRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type memConversationRepo struct{ s *memStore }

func (r *memConversationRepo) Create(ctx context.Context, c *entity.Conversation) error {
	r.s.conversation = c
	return nil
}
func (r *memConversationRepo) Update(ctx context.Context, c *entity.Conversation) error {
	r.s.conversation = c
	return nil
}
func (r *memConversationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	return r.s.conversation, nil
}
func (r *memConversationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error) {
	if r.s.conversation == nil {
		return nil, nil
	}
	return []*entity.Conversation{r.s.conversation}, nil
}
func (r *memConversationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type memMessageRepo struct{ s *memStore }

func (r *memMessageRepo) Create(ctx context.Context, m *entity.Message) error {
	r.s.messages = append(r.s.messages, m)
	return nil
}
func (r *memMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	return r.s.messages, nil
}
func (r *memMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.s.messages)), nil
}
func (r *memMessageRepo) FindLastByConversation(ctx context.Context, conversationId uuid.UUID, limit int) ([]*entity.Message, error) {
	msgs := r.s.messages
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil
}

type memLeadRepo struct{ s *memStore }

func (r *memLeadRepo) Create(ctx context.Context, l *entity.Lead) error {
	r.s.leadCreates++
	r.s.lead = l
	return nil
}
func (r *memLeadRepo) Update(ctx context.Context, l *entity.Lead) error {
	r.s.lead = l
	return nil
}
func (r *memLeadRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.lead = nil
	return nil
}
func (r *memLeadRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lead, error) {
	return r.s.lead, nil
}
func (r *memLeadRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lead, error) {
	if r.s.lead == nil {
		return nil, nil
	}
	return []*entity.Lead{r.s.lead}, nil
}
func (r *memLeadRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type memAgentConfigRepo struct{ s *memStore }

func (r *memAgentConfigRepo) GetOrCreate(ctx context.Context) (*entity.AgentConfig, error) {
	if r.s.agentConfig == nil {
		r.s.agentConfig = &entity.AgentConfig{
			Id:               uuid.New(),
			Tone:             "profissional",
			UseEmojis:        "moderado",
			ResponseStyle:    "conversacional",
			GreetingStyle:    "caloroso",
			MaxMessageLength: 4000,
		}
	}
	return r.s.agentConfig, nil
}
func (r *memAgentConfigRepo) Update(ctx context.Context, cfg *entity.AgentConfig) error {
	r.s.agentConfig = cfg
	return nil
}

type memUserRepo struct{}

func (r *memUserRepo) Create(ctx context.Context, u *entity.User) error { return nil }
func (r *memUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	return nil, nil
}

type memUow struct{ s *memStore }

func (u *memUow) Begin(ctx context.Context) error { return nil }
func (u *memUow) Commit() error                   { return nil }
func (u *memUow) Rollback() error                 { return nil }

func (u *memUow) ProfileRepository() contract.ProfileRepository { return &memProfileRepo{u.s} }
func (u *memUow) ConversationRepository() contract.ConversationRepository {
	return &memConversationRepo{u.s}
}
func (u *memUow) MessageRepository() contract.MessageRepository { return &memMessageRepo{u.s} }
func (u *memUow) LeadRepository() contract.LeadRepository       { return &memLeadRepo{u.s} }
func (u *memUow) AgentConfigRepository() contract.AgentConfigRepository {
	return &memAgentConfigRepo{u.s}
}
func (u *memUow) UserRepository() contract.UserRepository { return &memUserRepo{} }

type memFactory struct{ s *memStore }

func (f *memFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memUow{f.s}
}

type memConversations struct{ s *memStore }

func (c *memConversations) GetOrCreateActive(ctx context.Context, profileId uuid.UUID) (*entity.Conversation, error) {
	if c.s.conversation == nil {
		c.s.conversation = &entity.Conversation{
			Id:        uuid.New(),
			ProfileId: profileId,
			Status:    constant.ConversationStatusOpen,
			Tags:      []string{},
		}
	}
	return c.s.conversation, nil
}
func (c *memConversations) ListClients(ctx context.Context) ([]*ClientSummary, error) {
	return nil, nil
}
func (c *memConversations) GetMessages(ctx context.Context, conversationId uuid.UUID, limit, offset int) ([]*entity.Message, error) {
	return c.s.messages, nil
}
func (c *memConversations) Takeover(ctx context.Context, conversationId uuid.UUID) (*entity.Conversation, error) {
	return c.s.conversation, nil
}
func (c *memConversations) Close(ctx context.Context, conversationId uuid.UUID, closedBy, reason string) (*entity.Conversation, error) {
	return c.s.conversation, nil
}

type sentText struct{ to, text string }

type memSender struct {
	sent     []sentText
	markRead []string
}

func (m *memSender) SendText(ctx context.Context, to, text string) error {
	m.sent = append(m.sent, sentText{to, text})
	return nil
}
func (m *memSender) MarkAsRead(ctx context.Context, messageId string) error {
	m.markRead = append(m.markRead, messageId)
	return nil
}

type emittedEvent struct {
	name    string
	payload map[string]interface{}
}

type memEvents struct{ emitted []emittedEvent }

func (e *memEvents) Emit(eventType string, payload map[string]interface{}) {
	e.emitted = append(e.emitted, emittedEvent{eventType, payload})
}

func (e *memEvents) names() []string {
	var out []string
	for _, ev := range e.emitted {
		out = append(out, ev.name)
	}
	return out
}

type memJobs struct{ enqueued []ScoringJob }

func (j *memJobs) Enqueue(job ScoringJob)          { j.enqueued = append(j.enqueued, job) }
func (j *memJobs) Start(ctx context.Context) error { return nil }

type stubLLM struct {
	responses []string
	calls     int
}

func (p *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	i := p.calls
	p.calls++
	if i < len(p.responses) {
		return p.responses[i], nil
	}
	return "Ok!", nil
}
func (p *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}})
}

type webhookFixture struct {
	svc      *webhookService
	store    *memStore
	sender   *memSender
	events   *memEvents
	jobs     *memJobs
	provider *stubLLM
}

func newWebhookFixture(t *testing.T, responses ...string) *webhookFixture {
	t.Helper()

	store := &memStore{}
	sender := &memSender{}
	events := &memEvents{}
	jobs := &memJobs{}
	provider := &stubLLM{responses: responses}

	svc := NewWebhookService(
		&memFactory{store},
		&memConversations{store},
		pipeline.NewPipeline(provider, nopLogger{}),
		scoring.NewEngine(provider, nopLogger{}),
		provider,
		sender,
		events,
		jobs,
		config.AgentConfig{ConsolidationTimeout: 60, HistoryLimit: 20},
		nopLogger{},
	).(*webhookService)
	svc.sleep = func(time.Duration) {}

	return &webhookFixture{svc: svc, store: store, sender: sender, events: events, jobs: jobs, provider: provider}
}

func (f *webhookFixture) seedContact(status string) {
	profileId := uuid.New()
	f.store.profile = &entity.Profile{
		Id:             profileId,
		WhatsappNumber: "5511999998888",
		DisplayName:    "Ana Souza",
		Tags:           []string{},
	}
	f.store.conversation = &entity.Conversation{
		Id:        uuid.New(),
		ProfileId: profileId,
		Status:    status,
		Tags:      []string{},
	}
}

func TestHandleTextMessageHumanStatusBypassesAgent(t *testing.T) {
	f := newWebhookFixture(t)
	f.seedContact(constant.ConversationStatusHuman)

	err := f.svc.HandleTextMessage(context.Background(), dto.InboundMessage{
		WaId:      "5511999998888",
		MessageId: "wamid.1",
		Type:      "text",
		Text:      "preciso falar com alguem",
	})
	require.NoError(t, err)

	// The message lands on the consultant's timeline, nothing else runs.
	require.Len(t, f.store.messages, 1)
	assert.Equal(t, constant.MessageRoleUser, f.store.messages[0].Role)
	assert.Equal(t, "preciso falar com alguem", f.store.messages[0].Content)
	assert.Equal(t, []string{"wamid.1"}, f.sender.markRead)
	assert.Empty(t, f.sender.sent)
	assert.Equal(t, 0, f.provider.calls)

	// Nothing was buffered either: forcing the window closed is a no-op.
	f.svc.consolidator.Flush("5511999998888")
	assert.Equal(t, 0, f.provider.calls)
	assert.Len(t, f.store.messages, 1)
}

func TestHandleTextMessageDedupsRedeliveredWebhook(t *testing.T) {
	f := newWebhookFixture(t, "Oi! Como posso ajudar?")
	f.seedContact(constant.ConversationStatusOpen)

	in := dto.InboundMessage{
		WaId:      "5511999998888",
		MessageId: "wamid.1",
		Type:      "text",
		Text:      "oi",
	}
	require.NoError(t, f.svc.HandleTextMessage(context.Background(), in))
	require.NoError(t, f.svc.HandleTextMessage(context.Background(), in))

	f.svc.consolidator.Flush("5511999998888")

	// The redelivery did not double-buffer: one user message, not "oi oi".
	require.NotEmpty(t, f.store.messages)
	assert.Equal(t, "oi", f.store.messages[0].Content)
	assert.Equal(t, 1, f.provider.calls)
}

func TestProcessConsolidatedDropsWhenConversationNotOpen(t *testing.T) {
	for _, status := range []string{constant.ConversationStatusHuman, constant.ConversationStatusClosed} {
		t.Run(status, func(t *testing.T) {
			f := newWebhookFixture(t)
			f.seedContact(status)

			f.svc.processConsolidated("5511999998888", "oi")

			assert.Empty(t, f.store.messages)
			assert.Empty(t, f.sender.sent)
			assert.Equal(t, 0, f.provider.calls)
		})
	}
}

func TestProcessConsolidatedPersistsAndReplies(t *testing.T) {
	f := newWebhookFixture(t, "Oi! Qual seu nome?")
	f.seedContact(constant.ConversationStatusOpen)

	f.svc.processConsolidated("5511999998888", "oi quero saber sobre o produto")

	require.Len(t, f.store.messages, 2)
	assert.Equal(t, constant.MessageRoleUser, f.store.messages[0].Role)
	assert.Equal(t, "oi quero saber sobre o produto", f.store.messages[0].Content)
	assert.Equal(t, constant.MessageRoleAgent, f.store.messages[1].Role)
	assert.Equal(t, "Oi! Qual seu nome?", f.store.messages[1].Content)

	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, "5511999998888", f.sender.sent[0].to)
	assert.Equal(t, "Oi! Qual seu nome?", f.sender.sent[0].text)

	assert.Equal(t, []string{constant.EventNewMessage, constant.EventNewMessage}, f.events.names())
}

func TestProcessConsolidatedCreatesLeadFromOnboarding(t *testing.T) {
	f := newWebhookFixture(t,
		`Prazer, Ana! [LEAD_DATA]{"first_name":"Ana","last_name":"Souza","nome_empresa":"Acme","cargo":"CTO"}[/LEAD_DATA]`,
		"Me conta mais sobre o desafio da Acme?",
	)
	f.seedContact(constant.ConversationStatusOpen)

	f.svc.processConsolidated("5511999998888", "sou a Ana, CTO da Acme")

	lead := f.store.lead
	require.NotNil(t, lead)
	assert.Equal(t, 1, f.store.leadCreates)
	assert.Equal(t, "Ana Souza", lead.NomeCliente)
	assert.Equal(t, "Acme", lead.NomeEmpresa)
	assert.Equal(t, "CTO", lead.Cargo)
	assert.Equal(t, constant.StageFirstContact, lead.Stage)
	assert.Nil(t, lead.Score, "pipeline-driven creation defers scoring")
	assert.Equal(t, constant.LeadTemperatureWarm, lead.Status)

	// The marker never reaches the customer.
	require.Len(t, f.sender.sent, 1)
	assert.NotContains(t, f.sender.sent[0].text, "[LEAD_DATA]")
	assert.Contains(t, f.events.names(), constant.EventLeadCreated)
}

func TestCreateLeadIsIdempotent(t *testing.T) {
	f := newWebhookFixture(t)
	f.seedContact(constant.ConversationStatusOpen)

	existing := &entity.Lead{
		Id:             uuid.New(),
		ConversationId: f.store.conversation.Id,
		ProfileId:      f.store.profile.Id,
		NomeCliente:    "Ana",
	}
	f.store.lead = existing

	ctx := context.Background()
	uow := f.svc.uowFactory.NewUnitOfWork(ctx)
	got := f.svc.createLead(ctx, uow, f.store.profile, f.store.conversation,
		&directive.LeadData{FirstName: "Outra", NomeEmpresa: "Beta"}, nil, nil, "")

	assert.Equal(t, existing.Id, got.Id)
	assert.Equal(t, 0, f.store.leadCreates)
	assert.Equal(t, "Ana", f.store.lead.NomeCliente)
}

func TestExecuteCommandsAddTagsRespectsCaps(t *testing.T) {
	f := newWebhookFixture(t)
	f.seedContact(constant.ConversationStatusOpen)
	f.store.conversation.Tags = []string{"a", "b", "c", "d"}
	f.store.profile.Tags = []string{"x", "y"}

	_, directives := directive.Parse(`Ok! [BGX_COMMAND:ADD_TAGS]{"tags":["nova","outra"]}[/BGX_COMMAND]`)
	require.Len(t, directives, 1)

	ctx := context.Background()
	uow := f.svc.uowFactory.NewUnitOfWork(ctx)
	f.svc.executeCommands(ctx, uow, f.store.profile, f.store.conversation, nil, directives, nil)

	// Conversation had room for one more (cap 5), profile for one (cap 3).
	assert.Equal(t, []string{"a", "b", "c", "d", "nova"}, f.store.conversation.Tags)
	assert.Equal(t, []string{"x", "y", "nova"}, f.store.profile.Tags)
}

func TestExecuteCommandsCreateLeadClosesAndScores(t *testing.T) {
	f := newWebhookFixture(t, `{"score": 80, "justificativa": "interesse claro"}`)
	f.seedContact(constant.ConversationStatusOpen)

	history := []*entity.Message{
		{Role: constant.MessageRoleUser, Content: "quero fechar negocio"},
	}
	_, directives := directive.Parse(
		`Perfeito! [BGX_COMMAND:CREATE_LEAD]{"first_name":"Ana","last_name":"Souza","nome_empresa":"Acme","cargo":"CTO"}[/BGX_COMMAND]`,
	)
	require.Len(t, directives, 1)

	ctx := context.Background()
	uow := f.svc.uowFactory.NewUnitOfWork(ctx)
	f.svc.executeCommands(ctx, uow, f.store.profile, f.store.conversation, nil, directives, history)

	conversation := f.store.conversation
	assert.Equal(t, constant.ConversationStatusClosed, conversation.Status)
	assert.Equal(t, constant.ClosedByAgent, conversation.ClosedBy)
	assert.Equal(t, constant.DefaultCloseReason, conversation.ClosedReason)
	require.NotNil(t, conversation.ClosedAt)

	lead := f.store.lead
	require.NotNil(t, lead)
	require.NotNil(t, lead.Score)
	assert.Equal(t, 80, *lead.Score)
	assert.Equal(t, constant.LeadTemperatureHot, lead.Status)
	assert.Equal(t, "Ana Souza", lead.NomeCliente)
	assert.Contains(t, lead.Notes, "interesse claro")
	assert.Contains(t, f.events.names(), constant.EventLeadCreated)
}

func TestExecuteCommandsCreateLeadSkippedWhenLeadExists(t *testing.T) {
	f := newWebhookFixture(t)
	f.seedContact(constant.ConversationStatusOpen)
	f.store.lead = &entity.Lead{Id: uuid.New(), ConversationId: f.store.conversation.Id}

	_, directives := directive.Parse(
		`Ok! [BGX_COMMAND:CREATE_LEAD]{"first_name":"Ana"}[/BGX_COMMAND]`,
	)

	ctx := context.Background()
	uow := f.svc.uowFactory.NewUnitOfWork(ctx)
	f.svc.executeCommands(ctx, uow, f.store.profile, f.store.conversation, f.store.lead, directives, nil)

	assert.Equal(t, 0, f.store.leadCreates)
	assert.Equal(t, constant.ConversationStatusOpen, f.store.conversation.Status)
	assert.Equal(t, 0, f.provider.calls, "no scoring call for a skipped create")
}

func TestMarkColdTagsAllRecords(t *testing.T) {
	f := newWebhookFixture(t)
	f.seedContact(constant.ConversationStatusOpen)
	f.store.lead = &entity.Lead{
		Id:             uuid.New(),
		ConversationId: f.store.conversation.Id,
		Status:         constant.LeadTemperatureWarm,
		Tags:           []string{},
	}

	ctx := context.Background()
	uow := f.svc.uowFactory.NewUnitOfWork(ctx)
	f.svc.markCold(ctx, uow, f.store.profile, f.store.conversation, f.store.lead)

	assert.Contains(t, f.store.conversation.Tags, constant.LeadTemperatureCold)
	assert.Contains(t, f.store.profile.Tags, constant.LeadTemperatureCold)
	assert.Contains(t, f.store.lead.Tags, constant.LeadTemperatureCold)
	assert.Equal(t, constant.LeadTemperatureCold, f.store.lead.Status)
}
