package directive

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantClean string
		wantKinds []Kind
	}{
		{
			name:      "no markers",
			text:      "Ola! Como posso ajudar?",
			wantClean: "Ola! Como posso ajudar?",
			wantKinds: nil,
		},
		{
			name:      "lead data marker",
			text:      `Perfeito, anotado! [LEAD_DATA]{"first_name":"Ana","nome_empresa":"Acme"}[/LEAD_DATA]`,
			wantClean: "Perfeito, anotado!",
			wantKinds: []Kind{KindLeadData},
		},
		{
			name:      "negative signal",
			text:      "Entendo, sem problemas. [NEGATIVE_SIGNAL]true[/NEGATIVE_SIGNAL]",
			wantClean: "Entendo, sem problemas.",
			wantKinds: []Kind{KindNegativeSignal},
		},
		{
			name:      "negotiation detected",
			text:      "Vamos falar de valores. [NEGOTIATION_DETECTED]true[/NEGOTIATION_DETECTED]",
			wantClean: "Vamos falar de valores.",
			wantKinds: []Kind{KindNegotiationDetected},
		},
		{
			name:      "add tag",
			text:      `Legal! [ADD_TAG]{"tag":"interessado"}[/ADD_TAG]`,
			wantClean: "Legal!",
			wantKinds: []Kind{KindAddTag},
		},
		{
			name:      "bgx command",
			text:      `Obrigado! [BGX_COMMAND:CREATE_LEAD]{"first_name":"Ana"}[/BGX_COMMAND]`,
			wantClean: "Obrigado!",
			wantKinds: []Kind{KindCommand},
		},
		{
			name:      "multiple markers keep order",
			text:      `Oi [ADD_TAG]{"tag":"a"}[/ADD_TAG] tchau [NEGATIVE_SIGNAL]true[/NEGATIVE_SIGNAL]`,
			wantClean: "Oi  tchau",
			wantKinds: []Kind{KindAddTag, KindNegativeSignal},
		},
		{
			name:      "malformed lead data is stripped and dropped",
			text:      `Certo. [LEAD_DATA]{"first_name": }[/LEAD_DATA]`,
			wantClean: "Certo.",
			wantKinds: nil,
		},
		{
			name:      "empty tag payload is dropped",
			text:      `Ok. [ADD_TAG]{"tag":""}[/ADD_TAG]`,
			wantClean: "Ok.",
			wantKinds: nil,
		},
		{
			name:      "multiline payload",
			text:      "Feito.\n[LEAD_DATA]\n{\"first_name\":\"Ana\",\n\"cargo\":\"CTO\"}\n[/LEAD_DATA]",
			wantClean: "Feito.",
			wantKinds: []Kind{KindLeadData},
		},
		{
			name:      "collapses blank runs left by stripping",
			text:      "Linha um.\n\n[NEGATIVE_SIGNAL]true[/NEGATIVE_SIGNAL]\n\nLinha dois.",
			wantClean: "Linha um.\n\nLinha dois.",
			wantKinds: []Kind{KindNegativeSignal},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clean, directives := Parse(tt.text)

			if clean != tt.wantClean {
				t.Errorf("clean = %q, want %q", clean, tt.wantClean)
			}
			if len(directives) != len(tt.wantKinds) {
				t.Fatalf("directives = %d, want %d", len(directives), len(tt.wantKinds))
			}
			for i, d := range directives {
				if d.Kind != tt.wantKinds[i] {
					t.Errorf("directive[%d].Kind = %v, want %v", i, d.Kind, tt.wantKinds[i])
				}
			}
		})
	}
}

func TestParseLeadDataPayload(t *testing.T) {
	text := `[LEAD_DATA]{"first_name":"Ana","last_name":"Souza","nome_empresa":"Acme","cargo":"CTO","tags":["saas"],"notes":"quer demo"}[/LEAD_DATA]`

	_, directives := Parse(text)
	if len(directives) != 1 {
		t.Fatalf("directives = %d, want 1", len(directives))
	}

	lead := directives[0].Lead
	if lead == nil {
		t.Fatal("Lead payload is nil")
	}
	if lead.FirstName != "Ana" || lead.LastName != "Souza" {
		t.Errorf("name = %q %q", lead.FirstName, lead.LastName)
	}
	if lead.NomeEmpresa != "Acme" || lead.Cargo != "CTO" {
		t.Errorf("company = %q, cargo = %q", lead.NomeEmpresa, lead.Cargo)
	}
	if len(lead.Tags) != 1 || lead.Tags[0] != "saas" {
		t.Errorf("tags = %v", lead.Tags)
	}
	if lead.Notes != "quer demo" {
		t.Errorf("notes = %q", lead.Notes)
	}
}

func TestParseCommandPayload(t *testing.T) {
	text := `[BGX_COMMAND:ADD_TAGS]{"tags":["a","b"]}[/BGX_COMMAND]`

	_, directives := Parse(text)
	if len(directives) != 1 {
		t.Fatalf("directives = %d, want 1", len(directives))
	}
	if directives[0].Command != "ADD_TAGS" {
		t.Errorf("Command = %q, want ADD_TAGS", directives[0].Command)
	}
	if string(directives[0].Payload) != `{"tags":["a","b"]}` {
		t.Errorf("Payload = %s", directives[0].Payload)
	}
}
