package pipeline

import (
	"context"
	"fmt"

	"agentic-sales-be/internal/constant"
	"agentic-sales-be/internal/pkg/logger"
	"agentic-sales-be/pkg/agent/directive"
	"agentic-sales-be/pkg/agent/prompt"
	"agentic-sales-be/pkg/llm"
)

// Pipeline drives a consolidated user message through the staged sales
// conversation: onboarding collects lead data, first contact qualifies, and
// negotiation hands off to a human.
type Pipeline struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewPipeline(provider llm.LLMProvider, log logger.ILogger) *Pipeline {
	return &Pipeline{provider: provider, logger: log}
}

// Run executes the stage machine for one consolidated message. On success
// the state carries the reply text plus the flags the caller must act on.
func (p *Pipeline) Run(ctx context.Context, state *State) error {
	switch p.routeEntry(state) {
	case constant.StageOnboarding:
		if err := p.runOnboarding(ctx, state); err != nil {
			return err
		}
		if state.ShouldHumanTakeover {
			return nil
		}
		if state.ShouldCreateLead {
			if state.Lead == nil && state.LeadData != nil {
				// Seed the snapshot so the next stage can interpolate
				// the freshly collected facts.
				state.Lead = &LeadSnapshot{
					FirstName:   state.LeadData.FirstName,
					NomeEmpresa: state.LeadData.NomeEmpresa,
					Cargo:       state.LeadData.Cargo,
					Tags:        state.LeadData.Tags,
				}
			}
			return p.runFirstContact(ctx, state)
		}
		return nil

	case constant.StageFirstContact:
		if err := p.runFirstContact(ctx, state); err != nil {
			return err
		}
		return nil

	default:
		return p.runNegotiation(ctx, state)
	}
}

func (p *Pipeline) routeEntry(state *State) string {
	if state.ShouldHumanTakeover {
		return constant.StageNegotiation
	}
	if state.Lead == nil || state.Lead.Id == nil {
		return constant.StageOnboarding
	}
	if state.Lead.Stage == constant.StageNegotiation {
		return constant.StageNegotiation
	}
	return constant.StageFirstContact
}

func (p *Pipeline) runOnboarding(ctx context.Context, state *State) error {
	state.Stage = constant.StageOnboarding

	response, err := p.invoke(ctx, constant.OnboardingPromptTemplate, state, map[string]string{
		"greeting_instructions": prompt.BuildGreetingInstructions(state.Instructions.Greeting),
	})
	if err != nil {
		return fmt.Errorf("onboarding stage failed: %w", err)
	}

	clean, directives := directive.Parse(response)
	state.Response = clean

	for _, d := range directives {
		switch d.Kind {
		case directive.KindLeadData:
			state.ShouldCreateLead = true
			state.LeadData = d.Lead
		case directive.KindNegativeSignal:
			p.applyNegativeSignal(state)
		}
	}

	return nil
}

func (p *Pipeline) runFirstContact(ctx context.Context, state *State) error {
	state.Stage = constant.StageFirstContact

	response, err := p.invoke(ctx, constant.FirstContactPromptTemplate, state, nil)
	if err != nil {
		return fmt.Errorf("first contact stage failed: %w", err)
	}

	clean, directives := directive.Parse(response)
	state.Response = clean

	for _, d := range directives {
		switch d.Kind {
		case directive.KindNegotiationDetected:
			state.negotiationDetected = true
		case directive.KindAddTag:
			if !state.hasTag(d.Tag) && state.tagCount() < constant.LeadTagLimit {
				state.AddedTags = append(state.AddedTags, d.Tag)
			}
		case directive.KindNegativeSignal:
			p.applyNegativeSignal(state)
		}
	}

	if state.negotiationDetected {
		return p.runNegotiation(ctx, state)
	}
	return nil
}

func (p *Pipeline) runNegotiation(ctx context.Context, state *State) error {
	state.Stage = constant.StageNegotiation
	state.ShouldHumanTakeover = true

	response, err := p.invoke(ctx, constant.NegotiationPromptTemplate, state, nil)
	if err != nil {
		return fmt.Errorf("negotiation stage failed: %w", err)
	}

	clean, _ := directive.Parse(response)
	state.Response = clean
	return nil
}

// applyNegativeSignal penalizes the engagement score. Two signals with a
// real back-and-forth going drops the conversation to a human with the lead
// marked cold.
func (p *Pipeline) applyNegativeSignal(state *State) {
	state.NegativeSignalCount++
	state.CurrentScore -= constant.NegativeSignalPenalty
	if state.CurrentScore < 0 {
		state.CurrentScore = 0
	}

	if state.CurrentScore < constant.ScoreTakeoverThreshold && state.UserMessageCount >= 2 {
		state.ShouldHumanTakeover = true
		if !state.hasTag(constant.LeadTemperatureCold) {
			state.AddedTags = append(state.AddedTags, constant.LeadTemperatureCold)
		}
	}
}

func (p *Pipeline) invoke(ctx context.Context, template string, state *State, extra map[string]string) (string, error) {
	values := map[string]string{
		"context":                     prompt.FormatContext(state.History),
		"tone_instructions":           prompt.BuildToneInstructions(state.Instructions.Tone),
		"emoji_instructions":          prompt.BuildEmojiInstructions(state.Instructions.Emoji),
		"response_style_instructions": prompt.BuildStyleInstructions(state.Instructions.Style),
	}
	if state.Lead != nil {
		values["first_name"] = state.Lead.FirstName
		values["nome_empresa"] = state.Lead.NomeEmpresa
		values["cargo"] = state.Lead.Cargo
	} else {
		values["first_name"] = ""
		values["nome_empresa"] = ""
		values["cargo"] = ""
	}
	for k, v := range extra {
		values[k] = v
	}

	systemPrompt := prompt.SafeFormat(template, values)

	messages := []llm.Message{{Role: "system", Content: systemPrompt}}
	for _, msg := range state.History {
		role := "assistant"
		if msg.Role == constant.MessageRoleUser {
			role = "user"
		}
		messages = append(messages, llm.Message{Role: role, Content: msg.Content})
	}

	return p.provider.Chat(ctx, messages)
}
