package dto

import (
	"encoding/json"
	"testing"
)

const sampleWebhook = `{
	"object": "whatsapp_business_account",
	"entry": [{
		"id": "123",
		"changes": [{
			"field": "messages",
			"value": {
				"messaging_product": "whatsapp",
				"contacts": [{"wa_id": "5511999998888", "profile": {"name": "Ana Souza"}}],
				"messages": [{
					"id": "wamid.abc",
					"from": "5511999998888",
					"type": "text",
					"text": {"body": "Oi, quero saber mais"}
				}]
			}
		}]
	}]
}`

func TestFirstMessage(t *testing.T) {
	var payload WebhookPayload
	if err := json.Unmarshal([]byte(sampleWebhook), &payload); err != nil {
		t.Fatal(err)
	}

	msg, ok := payload.FirstMessage()
	if !ok {
		t.Fatal("FirstMessage() = false, want true")
	}

	if msg.WaId != "5511999998888" {
		t.Errorf("WaId = %q", msg.WaId)
	}
	if msg.DisplayName != "Ana Souza" {
		t.Errorf("DisplayName = %q", msg.DisplayName)
	}
	if msg.MessageId != "wamid.abc" {
		t.Errorf("MessageId = %q", msg.MessageId)
	}
	if msg.Type != "text" {
		t.Errorf("Type = %q", msg.Type)
	}
	if msg.Text != "Oi, quero saber mais" {
		t.Errorf("Text = %q", msg.Text)
	}
}

func TestFirstMessageStatusOnlyNotification(t *testing.T) {
	statusOnly := `{
		"object": "whatsapp_business_account",
		"entry": [{"id": "123", "changes": [{"field": "messages", "value": {"messaging_product": "whatsapp"}}]}]
	}`

	var payload WebhookPayload
	if err := json.Unmarshal([]byte(statusOnly), &payload); err != nil {
		t.Fatal(err)
	}

	if _, ok := payload.FirstMessage(); ok {
		t.Error("FirstMessage() = true for a status-only notification")
	}
}

func TestFirstMessageNonTextType(t *testing.T) {
	audio := `{
		"object": "whatsapp_business_account",
		"entry": [{"id": "1", "changes": [{"field": "messages", "value": {
			"messages": [{"id": "wamid.x", "from": "5511", "type": "audio"}]
		}}]}]
	}`

	var payload WebhookPayload
	if err := json.Unmarshal([]byte(audio), &payload); err != nil {
		t.Fatal(err)
	}

	msg, ok := payload.FirstMessage()
	if !ok {
		t.Fatal("FirstMessage() = false")
	}
	if msg.Type != "audio" || msg.Text != "" {
		t.Errorf("msg = %+v", msg)
	}
}
