package pipeline

import (
	"agentic-sales-be/internal/constant"
	"agentic-sales-be/internal/entity"
	"agentic-sales-be/pkg/agent/directive"

	"github.com/google/uuid"
)

// LeadSnapshot carries the lead facts the stages interpolate into prompts.
// Nil Id means no lead record exists yet.
type LeadSnapshot struct {
	Id          *uuid.UUID
	FirstName   string
	NomeEmpresa string
	Cargo       string
	Stage       string
	Tags        []string
}

// Instructions is the rendered agent config for the current run.
type Instructions struct {
	Tone     string
	Emoji    string
	Greeting string
	Style    string
}

// State is the working memory of a single pipeline run. The caller seeds the
// inputs, Run fills the outputs, and the webhook service applies the side
// effects afterwards.
type State struct {
	// Inputs
	History          []*entity.Message
	UserMessageCount int
	Lead             *LeadSnapshot
	Instructions     Instructions

	// Outputs
	Response            string
	Stage               string
	CurrentScore        int
	NegativeSignalCount int
	ShouldCreateLead    bool
	ShouldHumanTakeover bool
	LeadData            *directive.LeadData
	AddedTags           []string

	negotiationDetected bool
}

func NewState(history []*entity.Message, userMessageCount int, lead *LeadSnapshot, instructions Instructions) *State {
	return &State{
		History:          history,
		UserMessageCount: userMessageCount,
		Lead:             lead,
		Instructions:     instructions,
		CurrentScore:     constant.ScoreNeutral,
	}
}

// hasTag reports whether the tag is already on the lead snapshot or was
// collected earlier in this run.
func (s *State) hasTag(tag string) bool {
	if s.Lead != nil {
		for _, t := range s.Lead.Tags {
			if t == tag {
				return true
			}
		}
	}
	for _, t := range s.AddedTags {
		if t == tag {
			return true
		}
	}
	return false
}

func (s *State) tagCount() int {
	count := len(s.AddedTags)
	if s.Lead != nil {
		count += len(s.Lead.Tags)
	}
	return count
}
