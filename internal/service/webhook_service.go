package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"agentic-sales-be/internal/config"
	"agentic-sales-be/internal/constant"
	"agentic-sales-be/internal/dto"
	"agentic-sales-be/internal/entity"
	"agentic-sales-be/internal/pkg/logger"
	"agentic-sales-be/internal/repository/specification"
	"agentic-sales-be/internal/repository/unitofwork"
	"agentic-sales-be/pkg/agent/consolidator"
	"agentic-sales-be/pkg/agent/directive"
	"agentic-sales-be/pkg/agent/pipeline"
	"agentic-sales-be/pkg/agent/scoring"
	"agentic-sales-be/pkg/llm"
	"agentic-sales-be/pkg/utils"
	"agentic-sales-be/pkg/whatsapp"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// IWebhookService is the WhatsApp intake surface: it absorbs raw webhook
// notifications, debounces fragmented typing, and drives the sales pipeline
// once a consolidated message is ready.
type IWebhookService interface {
	HandleTextMessage(ctx context.Context, in dto.InboundMessage) error
	HandleUnsupportedMessage(ctx context.Context, in dto.InboundMessage) error
}

type webhookService struct {
	uowFactory    unitofwork.RepositoryFactory
	conversations IConversationService
	pipeline      *pipeline.Pipeline
	engine        *scoring.Engine
	provider      llm.LLMProvider
	sender        whatsapp.ISender
	events        IEventService
	scoringJobs   IScoringJobService
	consolidator  *consolidator.Consolidator
	dedupe        *gocache.Cache
	cfg           config.AgentConfig
	logger        logger.ILogger
	sleep         func(time.Duration)
}

func NewWebhookService(
	uowFactory unitofwork.RepositoryFactory,
	conversations IConversationService,
	pipe *pipeline.Pipeline,
	engine *scoring.Engine,
	provider llm.LLMProvider,
	sender whatsapp.ISender,
	events IEventService,
	scoringJobs IScoringJobService,
	cfg config.AgentConfig,
	log logger.ILogger,
) IWebhookService {
	s := &webhookService{
		uowFactory:    uowFactory,
		conversations: conversations,
		pipeline:      pipe,
		engine:        engine,
		provider:      provider,
		sender:        sender,
		events:        events,
		scoringJobs:   scoringJobs,
		dedupe:        gocache.New(10*time.Minute, 15*time.Minute),
		cfg:           cfg,
		logger:        log,
		sleep:         time.Sleep,
	}
	s.consolidator = consolidator.New(
		time.Duration(cfg.ConsolidationTimeout)*time.Second,
		s.processConsolidated,
		log,
	)
	return s
}

func (s *webhookService) HandleTextMessage(ctx context.Context, in dto.InboundMessage) error {
	// Meta redelivers webhooks on slow responses; the message id dedup
	// keeps redeliveries from double-buffering the same fragment.
	if in.MessageId != "" {
		if _, seen := s.dedupe.Get(in.MessageId); seen {
			s.logger.Debug("WebhookService", "Duplicate webhook delivery skipped", map[string]interface{}{
				"message_id": in.MessageId,
			})
			return nil
		}
		s.dedupe.Set(in.MessageId, true, gocache.DefaultExpiration)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := s.getOrCreateProfile(ctx, uow, in.WaId, in.DisplayName)
	if err != nil {
		return err
	}

	conversation, err := s.conversations.GetOrCreateActive(ctx, profile.Id)
	if err != nil {
		return err
	}

	if in.MessageId != "" {
		s.sender.MarkAsRead(ctx, in.MessageId)
	}

	// Under human control the agent stays quiet; the message is persisted
	// for the consultant's timeline and nothing else happens.
	if conversation.Status == constant.ConversationStatusHuman {
		return s.persistUserMessage(ctx, uow, profile, conversation, in.Text, in.MessageId)
	}

	s.consolidator.Add(in.WaId, in.Text)
	return nil
}

func (s *webhookService) HandleUnsupportedMessage(ctx context.Context, in dto.InboundMessage) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := s.getOrCreateProfile(ctx, uow, in.WaId, in.DisplayName)
	if err != nil {
		return err
	}
	if _, err := s.conversations.GetOrCreateActive(ctx, profile.Id); err != nil {
		return err
	}

	if in.MessageId != "" {
		s.sender.MarkAsRead(ctx, in.MessageId)
	}

	notice := constant.UnsupportedTypeMessage
	if in.Type == "audio" {
		notice = constant.AudioNotSupportedMessage
	}
	return s.sender.SendText(ctx, in.WaId, notice)
}

// processConsolidated runs on the consolidation timer goroutine once a
// contact's debounce window closes.
func (s *webhookService) processConsolidated(waID, text string) {
	ctx := context.Background()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByWhatsappNumber{Number: waID})
	if err != nil || profile == nil {
		s.logger.Error("WebhookService", "Profile vanished before consolidation", map[string]interface{}{
			"wa_id": waID,
		})
		return
	}

	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByProfileId{ProfileId: profile.Id},
		specification.ActiveConversation{},
	)
	if err != nil || conversation == nil {
		return
	}
	// A takeover may have landed while the window was open.
	if conversation.Status != constant.ConversationStatusOpen {
		s.logger.Info("WebhookService", "Conversation no longer open, dropping consolidated message", map[string]interface{}{
			"conversation_id": conversation.Id.String(),
			"status":          conversation.Status,
		})
		return
	}

	if err := s.persistUserMessage(ctx, uow, profile, conversation, text, ""); err != nil {
		s.logger.Error("WebhookService", "Failed to persist consolidated message", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	history, err := uow.MessageRepository().FindLastByConversation(ctx, conversation.Id, s.historyLimit())
	if err != nil {
		s.logger.Error("WebhookService", "Failed to load history", map[string]interface{}{"error": err.Error()})
		return
	}

	lead := s.findLead(ctx, uow, conversation.Id, profile.Id)

	instructions, maxLength := s.loadInstructions(ctx, uow)

	state := pipeline.NewState(history, countUserMessages(history), leadSnapshot(lead), instructions)

	response := ""
	if err := s.pipeline.Run(ctx, state); err != nil {
		s.logger.Error("WebhookService", "Pipeline failed, using direct fallback", map[string]interface{}{
			"conversation_id": conversation.Id.String(),
			"error":           err.Error(),
		})
		response = s.fallbackResponse(ctx, uow, profile, conversation, lead, history)
	} else {
		response = state.Response
		s.applyPipelineActions(ctx, uow, profile, conversation, lead, state)
	}

	s.humanizedDelay()

	for i, chunk := range utils.SplitResponse(response, maxLength) {
		if i > 0 {
			s.sleep(time.Duration(1000+rand.Intn(2000)) * time.Millisecond)
		}
		if err := s.sender.SendText(ctx, profile.WhatsappNumber, chunk); err != nil {
			s.logger.Error("WebhookService", "Failed to send response chunk", map[string]interface{}{
				"wa_id": waID,
				"error": err.Error(),
			})
		}
	}

	agentMessage := &entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		ProfileId:      profile.Id,
		Role:           constant.MessageRoleAgent,
		MessageType:    "text",
		Content:        response,
	}
	if err := uow.MessageRepository().Create(ctx, agentMessage); err != nil {
		s.logger.Error("WebhookService", "Failed to persist agent message", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	s.events.Emit(constant.EventNewMessage, map[string]interface{}{
		"conversation_id": conversation.Id.String(),
		"profile_id":      profile.Id.String(),
		"role":            constant.MessageRoleAgent,
		"content":         response,
	})
}

// fallbackResponse degrades to a single direct model call when the staged
// pipeline errors. The reply still goes through command extraction so a
// capable model can qualify the lead from this path too.
func (s *webhookService) fallbackResponse(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	profile *entity.Profile,
	conversation *entity.Conversation,
	lead *entity.Lead,
	history []*entity.Message,
) string {
	messages := []llm.Message{{Role: "system", Content: constant.FallbackPromptTemplate}}
	for _, msg := range history {
		role := "assistant"
		if msg.Role == constant.MessageRoleUser {
			role = "user"
		}
		messages = append(messages, llm.Message{Role: role, Content: msg.Content})
	}

	raw, err := s.provider.Chat(ctx, messages)
	if err != nil {
		s.logger.Error("WebhookService", "Fallback chat failed", map[string]interface{}{
			"error": err.Error(),
		})
		return constant.ApologyMessage
	}

	clean, directives := directive.Parse(raw)
	s.executeCommands(ctx, uow, profile, conversation, lead, directives, history)
	return clean
}

func (s *webhookService) applyPipelineActions(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	profile *entity.Profile,
	conversation *entity.Conversation,
	lead *entity.Lead,
	state *pipeline.State,
) {
	if lead != nil && len(state.AddedTags) > 0 {
		lead.Tags = appendTags(lead.Tags, state.AddedTags, constant.LeadTagLimit)
		if err := uow.LeadRepository().Update(ctx, lead); err != nil {
			s.logger.Error("WebhookService", "Failed to update lead tags", map[string]interface{}{
				"lead_id": lead.Id.String(),
				"error":   err.Error(),
			})
		} else {
			s.events.Emit(constant.EventLeadUpdated, map[string]interface{}{
				"lead_id": lead.Id.String(),
				"tags":    lead.Tags,
			})
		}
	}

	if state.ShouldCreateLead && state.LeadData != nil && lead == nil {
		lead = s.createLead(ctx, uow, profile, conversation, state.LeadData, state.AddedTags, nil, "")
	}

	if !state.ShouldHumanTakeover {
		return
	}

	if conversation.Status == constant.ConversationStatusOpen {
		conversation.Status = constant.ConversationStatusHuman
		if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
			s.logger.Error("WebhookService", "Failed to set human takeover", map[string]interface{}{
				"conversation_id": conversation.Id.String(),
				"error":           err.Error(),
			})
			return
		}
		s.events.Emit(constant.EventHumanTakeover, map[string]interface{}{
			"conversation_id": conversation.Id.String(),
			"profile_id":      profile.Id.String(),
			"source":          "pipeline",
			"stage":           state.Stage,
		})
	}

	if state.Stage == constant.StageNegotiation && lead != nil {
		lead.Stage = constant.StageNegotiation
		lead.StepNegociacao = true
		if err := uow.LeadRepository().Update(ctx, lead); err != nil {
			s.logger.Error("WebhookService", "Failed to move lead to negotiation", map[string]interface{}{
				"lead_id": lead.Id.String(),
				"error":   err.Error(),
			})
			return
		}
		s.scoringJobs.Enqueue(ScoringJob{LeadId: lead.Id, ConversationId: conversation.Id})
		return
	}

	if state.CurrentScore < constant.ScoreTakeoverThreshold {
		s.markCold(ctx, uow, profile, conversation, lead)
	}
}

// markCold tags a disengaged contact across conversation, profile, and lead.
func (s *webhookService) markCold(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	profile *entity.Profile,
	conversation *entity.Conversation,
	lead *entity.Lead,
) {
	cold := []string{constant.LeadTemperatureCold}

	conversation.Tags = appendTags(conversation.Tags, cold, constant.ConversationTagLimit)
	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		s.logger.Error("WebhookService", "Failed to tag conversation cold", map[string]interface{}{"error": err.Error()})
	}

	profile.Tags = appendTags(profile.Tags, cold, constant.ProfileTagLimit)
	if err := uow.ProfileRepository().Update(ctx, profile); err != nil {
		s.logger.Error("WebhookService", "Failed to tag profile cold", map[string]interface{}{"error": err.Error()})
	}

	if lead != nil {
		lead.Tags = appendTags(lead.Tags, cold, constant.LeadTagLimit)
		lead.Status = constant.LeadTemperatureCold
		if err := uow.LeadRepository().Update(ctx, lead); err != nil {
			s.logger.Error("WebhookService", "Failed to tag lead cold", map[string]interface{}{"error": err.Error()})
		}
	}
}

// executeCommands interprets the inline command grammar some models emit on
// the fallback path.
func (s *webhookService) executeCommands(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	profile *entity.Profile,
	conversation *entity.Conversation,
	lead *entity.Lead,
	directives []directive.Directive,
	history []*entity.Message,
) {
	for _, d := range directives {
		if d.Kind != directive.KindCommand {
			continue
		}

		switch d.Command {
		case "ADD_TAG":
			var payload struct {
				Tag string `json:"tag"`
			}
			if err := json.Unmarshal(d.Payload, &payload); err != nil || payload.Tag == "" {
				s.logger.Warn("WebhookService", "Invalid ADD_TAG payload", map[string]interface{}{"payload": string(d.Payload)})
				continue
			}
			s.addTags(ctx, uow, profile, conversation, []string{payload.Tag})

		case "ADD_TAGS":
			var payload struct {
				Tags []string `json:"tags"`
			}
			if err := json.Unmarshal(d.Payload, &payload); err != nil || len(payload.Tags) == 0 {
				s.logger.Warn("WebhookService", "Invalid ADD_TAGS payload", map[string]interface{}{"payload": string(d.Payload)})
				continue
			}
			s.addTags(ctx, uow, profile, conversation, payload.Tags)

		case "CREATE_LEAD":
			var payload struct {
				directive.LeadData
				CloseReason string `json:"close_reason"`
			}
			if err := json.Unmarshal(d.Payload, &payload); err != nil {
				s.logger.Warn("WebhookService", "Invalid CREATE_LEAD payload", map[string]interface{}{"payload": string(d.Payload)})
				continue
			}
			if lead != nil {
				s.logger.Info("WebhookService", "CREATE_LEAD skipped, lead already exists", map[string]interface{}{
					"lead_id": lead.Id.String(),
				})
				continue
			}

			reason := payload.CloseReason
			if reason == "" {
				reason = constant.DefaultCloseReason
			}
			now := timeNow()
			conversation.Status = constant.ConversationStatusClosed
			conversation.ClosedAt = &now
			conversation.ClosedBy = constant.ClosedByAgent
			conversation.ClosedReason = reason
			if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
				s.logger.Error("WebhookService", "Failed to close conversation", map[string]interface{}{"error": err.Error()})
				continue
			}

			result := s.engine.ScoreConversation(ctx, history, nil)
			score := result.Score
			lead = s.createLead(ctx, uow, profile, conversation, &payload.LeadData, nil, &score,
				fmt.Sprintf("[Scoring IA]: %s", result.Justificativa))

		default:
			s.logger.Warn("WebhookService", "Unknown command", map[string]interface{}{"command": d.Command})
		}
	}
}

func (s *webhookService) addTags(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	profile *entity.Profile,
	conversation *entity.Conversation,
	tags []string,
) {
	conversation.Tags = appendTags(conversation.Tags, tags, constant.ConversationTagLimit)
	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		s.logger.Error("WebhookService", "Failed to add conversation tags", map[string]interface{}{"error": err.Error()})
	}

	profile.Tags = appendTags(profile.Tags, tags, constant.ProfileTagLimit)
	if err := uow.ProfileRepository().Update(ctx, profile); err != nil {
		s.logger.Error("WebhookService", "Failed to add profile tags", map[string]interface{}{"error": err.Error()})
	}
}

// createLead materializes the CRM record. Score nil means scoring is
// deferred to the negotiation pass.
func (s *webhookService) createLead(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	profile *entity.Profile,
	conversation *entity.Conversation,
	data *directive.LeadData,
	extraTags []string,
	score *int,
	scoringNote string,
) *entity.Lead {
	existing, err := uow.LeadRepository().FindOne(ctx, specification.ByConversationId{ConversationId: conversation.Id})
	if err != nil {
		s.logger.Error("WebhookService", "Lead idempotency check failed", map[string]interface{}{"error": err.Error()})
		return nil
	}
	if existing != nil {
		return existing
	}

	firstName := firstWord(data.FirstName)

	if profile.FirstName == "" && firstName != "" {
		profile.FirstName = firstName
		profile.LastName = data.LastName
		if err := uow.ProfileRepository().Update(ctx, profile); err != nil {
			s.logger.Error("WebhookService", "Failed to backfill profile name", map[string]interface{}{"error": err.Error()})
		}
	}

	nome := strings.TrimSpace(firstName + " " + data.LastName)
	if nome == "" {
		nome = strings.TrimSpace(profile.FirstName + " " + profile.LastName)
	}
	if nome == "" {
		nome = profile.DisplayName
	}

	status := constant.LeadTemperatureWarm
	if score != nil {
		status = entity.Temperature(*score)
	}

	notes := data.Notes
	if scoringNote != "" {
		notes = appendNote(notes, scoringNote)
	}

	lead := &entity.Lead{
		Id:                  uuid.New(),
		ConversationId:      conversation.Id,
		ProfileId:           profile.Id,
		NomeCliente:         nome,
		NomeEmpresa:         data.NomeEmpresa,
		Cargo:               data.Cargo,
		Telefone:            profile.WhatsappNumber,
		Tags:                appendTags(data.Tags, extraTags, constant.LeadTagLimit),
		Score:               score,
		Notes:               notes,
		Status:              status,
		Stage:               constant.StageFirstContact,
		StepNovoLead:        true,
		StepPrimeiroContato: true,
	}
	if err := uow.LeadRepository().Create(ctx, lead); err != nil {
		s.logger.Error("WebhookService", "Failed to create lead", map[string]interface{}{"error": err.Error()})
		return nil
	}

	// Lead tags propagate outward so the client list reflects them.
	if len(lead.Tags) > 0 {
		s.addTags(ctx, uow, profile, conversation, lead.Tags)
	}

	s.events.Emit(constant.EventLeadCreated, map[string]interface{}{
		"lead_id":         lead.Id.String(),
		"conversation_id": conversation.Id.String(),
		"profile_id":      profile.Id.String(),
		"nome_cliente":    lead.NomeCliente,
		"status":          lead.Status,
	})

	return lead
}

func (s *webhookService) getOrCreateProfile(ctx context.Context, uow unitofwork.UnitOfWork, waID, displayName string) (*entity.Profile, error) {
	profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByWhatsappNumber{Number: waID})
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	profile = &entity.Profile{
		Id:             uuid.New(),
		WhatsappNumber: waID,
		DisplayName:    displayName,
		Tags:           []string{},
	}
	if err := uow.ProfileRepository().Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *webhookService) persistUserMessage(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	profile *entity.Profile,
	conversation *entity.Conversation,
	text, messageId string,
) error {
	message := &entity.Message{
		Id:                uuid.New(),
		ConversationId:    conversation.Id,
		ProfileId:         profile.Id,
		Role:              constant.MessageRoleUser,
		MessageType:       "text",
		Content:           text,
		ProviderMessageId: messageId,
	}
	if err := uow.MessageRepository().Create(ctx, message); err != nil {
		return err
	}

	s.events.Emit(constant.EventNewMessage, map[string]interface{}{
		"conversation_id": conversation.Id.String(),
		"profile_id":      profile.Id.String(),
		"role":            constant.MessageRoleUser,
		"content":         text,
	})
	return nil
}

func (s *webhookService) findLead(ctx context.Context, uow unitofwork.UnitOfWork, conversationId, profileId uuid.UUID) *entity.Lead {
	lead, err := uow.LeadRepository().FindOne(ctx, specification.ByConversationId{ConversationId: conversationId})
	if err != nil {
		s.logger.Error("WebhookService", "Lead lookup failed", map[string]interface{}{"error": err.Error()})
		return nil
	}
	if lead != nil {
		return lead
	}

	lead, err = uow.LeadRepository().FindOne(ctx,
		specification.ByProfileId{ProfileId: profileId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil
	}
	return lead
}

func (s *webhookService) loadInstructions(ctx context.Context, uow unitofwork.UnitOfWork) (pipeline.Instructions, int) {
	cfg, err := uow.AgentConfigRepository().GetOrCreate(ctx)
	if err != nil {
		s.logger.Warn("WebhookService", "Agent config unavailable, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		return pipeline.Instructions{}, 300
	}
	return pipeline.Instructions{
		Tone:     cfg.Tone,
		Emoji:    cfg.UseEmojis,
		Greeting: cfg.GreetingStyle,
		Style:    cfg.ResponseStyle,
	}, cfg.MaxMessageLength
}

func (s *webhookService) historyLimit() int {
	if s.cfg.HistoryLimit > 0 {
		return s.cfg.HistoryLimit
	}
	return 20
}

// humanizedDelay waits a random interval so replies do not land the instant
// the window closes. The ceiling stays below the consolidation timeout to
// avoid racing the next window.
func (s *webhookService) humanizedDelay() {
	minDelay := s.cfg.MinResponseDelay
	if minDelay < 0 {
		minDelay = 0
	}
	maxDelay := s.cfg.MaxResponseDelay
	if ceiling := s.cfg.ConsolidationTimeout - 5; maxDelay > ceiling {
		maxDelay = ceiling
	}
	if maxDelay < minDelay {
		maxDelay = minDelay
	}

	delay := minDelay
	if maxDelay > minDelay {
		delay += rand.Intn(maxDelay - minDelay + 1)
	}
	if delay > 0 {
		s.sleep(time.Duration(delay) * time.Second)
	}
}

func leadSnapshot(lead *entity.Lead) *pipeline.LeadSnapshot {
	if lead == nil {
		return nil
	}
	stage := constant.StageFirstContact
	if lead.Stage == constant.StageNegotiation {
		stage = constant.StageNegotiation
	}
	id := lead.Id
	return &pipeline.LeadSnapshot{
		Id:          &id,
		FirstName:   firstWord(lead.NomeCliente),
		NomeEmpresa: lead.NomeEmpresa,
		Cargo:       lead.Cargo,
		Stage:       stage,
		Tags:        lead.Tags,
	}
}

func countUserMessages(history []*entity.Message) int {
	count := 0
	for _, msg := range history {
		if msg.Role == constant.MessageRoleUser {
			count++
		}
	}
	return count
}

func appendTags(existing, add []string, limit int) []string {
	out := existing
	for _, tag := range add {
		if len(out) >= limit {
			break
		}
		tag = normalizeTag(tag)
		if tag == "" {
			continue
		}
		found := false
		for _, t := range out {
			if t == tag {
				found = true
				break
			}
		}
		if !found {
			out = append(out, tag)
		}
	}
	return out
}

// Tags are stored lowercase with underscores so dedup works regardless of how
// the model spells them.
func normalizeTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return strings.ReplaceAll(tag, " ", "_")
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
