package directive

import "encoding/json"

// Kind discriminates the inline markers the model can emit.
type Kind int

const (
	KindLeadData Kind = iota
	KindNegativeSignal
	KindNegotiationDetected
	KindAddTag
	KindCommand
)

// LeadData is the payload of a [LEAD_DATA] marker.
type LeadData struct {
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	NomeEmpresa string   `json:"nome_empresa"`
	Cargo       string   `json:"cargo"`
	Tags        []string `json:"tags"`
	Notes       string   `json:"notes"`
}

// Directive is a tagged union: Kind decides which fields are set.
type Directive struct {
	Kind    Kind
	Lead    *LeadData       // KindLeadData
	Tag     string          // KindAddTag
	Command string          // KindCommand: command name
	Payload json.RawMessage // KindCommand: raw JSON payload
}
