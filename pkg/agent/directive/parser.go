package directive

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
)

var (
	leadDataPattern    = regexp.MustCompile(`(?s)\[LEAD_DATA\]\s*(\{.*?\})\s*\[/LEAD_DATA\]`)
	negativePattern    = regexp.MustCompile(`\[NEGATIVE_SIGNAL\]\s*true\s*\[/NEGATIVE_SIGNAL\]`)
	negotiationPattern = regexp.MustCompile(`\[NEGOTIATION_DETECTED\]\s*true\s*\[/NEGOTIATION_DETECTED\]`)
	addTagPattern      = regexp.MustCompile(`(?s)\[ADD_TAG\]\s*(\{.*?\})\s*\[/ADD_TAG\]`)
	commandPattern     = regexp.MustCompile(`(?s)\[BGX_COMMAND:(\w+)\]\s*(\{.*?\})\s*\[/BGX_COMMAND\]`)
)

type span struct {
	start, end int
	directive  *Directive
}

// Parse extracts every marker from a model response in one pass. It returns
// the response with all markers stripped, plus the directives in the order
// they appeared. Markers with unparseable payloads are stripped and dropped.
func Parse(text string) (string, []Directive) {
	var spans []span

	for _, loc := range leadDataPattern.FindAllStringSubmatchIndex(text, -1) {
		var payload LeadData
		d := &Directive{Kind: KindLeadData}
		if err := json.Unmarshal([]byte(text[loc[2]:loc[3]]), &payload); err == nil {
			d.Lead = &payload
		} else {
			d = nil
		}
		spans = append(spans, span{loc[0], loc[1], d})
	}

	for _, loc := range negativePattern.FindAllStringIndex(text, -1) {
		spans = append(spans, span{loc[0], loc[1], &Directive{Kind: KindNegativeSignal}})
	}

	for _, loc := range negotiationPattern.FindAllStringIndex(text, -1) {
		spans = append(spans, span{loc[0], loc[1], &Directive{Kind: KindNegotiationDetected}})
	}

	for _, loc := range addTagPattern.FindAllStringSubmatchIndex(text, -1) {
		var payload struct {
			Tag string `json:"tag"`
		}
		d := (*Directive)(nil)
		if err := json.Unmarshal([]byte(text[loc[2]:loc[3]]), &payload); err == nil && payload.Tag != "" {
			d = &Directive{Kind: KindAddTag, Tag: payload.Tag}
		}
		spans = append(spans, span{loc[0], loc[1], d})
	}

	for _, loc := range commandPattern.FindAllStringSubmatchIndex(text, -1) {
		name := text[loc[2]:loc[3]]
		raw := json.RawMessage(text[loc[4]:loc[5]])
		if !json.Valid(raw) {
			spans = append(spans, span{loc[0], loc[1], nil})
			continue
		}
		spans = append(spans, span{loc[0], loc[1], &Directive{Kind: KindCommand, Command: name, Payload: raw}})
	}

	if len(spans) == 0 {
		return strings.TrimSpace(text), nil
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var clean strings.Builder
	var directives []Directive
	cursor := 0
	for _, s := range spans {
		if s.start < cursor {
			// Overlapping match (nested markers), already consumed.
			continue
		}
		clean.WriteString(text[cursor:s.start])
		cursor = s.end
		if s.directive != nil {
			directives = append(directives, *s.directive)
		}
	}
	clean.WriteString(text[cursor:])

	return tidy(clean.String()), directives
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

func tidy(text string) string {
	return strings.TrimSpace(blankRuns.ReplaceAllString(text, "\n\n"))
}
