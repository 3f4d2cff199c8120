package dto

// Meta webhook payload, trimmed to the fields the intake path reads.
// Reference: WhatsApp Cloud API webhooks, messages object.

type WebhookPayload struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

type WebhookEntry struct {
	Id      string          `json:"id"`
	Changes []WebhookChange `json:"changes"`
}

type WebhookChange struct {
	Field string       `json:"field"`
	Value WebhookValue `json:"value"`
}

type WebhookValue struct {
	MessagingProduct string           `json:"messaging_product"`
	Contacts         []WebhookContact `json:"contacts"`
	Messages         []WebhookMessage `json:"messages"`
}

type WebhookContact struct {
	WaId    string `json:"wa_id"`
	Profile struct {
		Name string `json:"name"`
	} `json:"profile"`
}

type WebhookMessage struct {
	Id   string `json:"id"`
	From string `json:"from"`
	Type string `json:"type"`
	Text *struct {
		Body string `json:"body"`
	} `json:"text"`
}

// InboundMessage is the flattened view the webhook controller hands to the
// service layer.
type InboundMessage struct {
	WaId        string
	DisplayName string
	MessageId   string
	Type        string
	Text        string
}

// FirstMessage flattens the first message of the payload, or returns false
// when the notification carries none (status updates, etc).
func (p *WebhookPayload) FirstMessage() (InboundMessage, bool) {
	for _, entry := range p.Entry {
		for _, change := range entry.Changes {
			if len(change.Value.Messages) == 0 {
				continue
			}
			msg := change.Value.Messages[0]

			inbound := InboundMessage{
				WaId:      msg.From,
				MessageId: msg.Id,
				Type:      msg.Type,
			}
			if len(change.Value.Contacts) > 0 {
				contact := change.Value.Contacts[0]
				if contact.WaId != "" {
					inbound.WaId = contact.WaId
				}
				inbound.DisplayName = contact.Profile.Name
			}
			if msg.Text != nil {
				inbound.Text = msg.Text.Body
			}
			return inbound, true
		}
	}
	return InboundMessage{}, false
}
