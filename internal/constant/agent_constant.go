package constant

// Conversation lifecycle status
const (
	ConversationStatusOpen   = "open"
	ConversationStatusHuman  = "human"
	ConversationStatusClosed = "closed"
)

// Message roles
const (
	MessageRoleUser  = "user"
	MessageRoleAgent = "agent"
	MessageRoleAdmin = "admin"
)

// Pipeline stages
const (
	StageOnboarding   = "onboarding"
	StageFirstContact = "first_contact"
	StageNegotiation  = "negotiation"
)

// Lead temperature (stored in lead status column)
const (
	LeadTemperatureHot  = "quente"
	LeadTemperatureWarm = "morno"
	LeadTemperatureCold = "frio"
)

// Tag set caps
const (
	ConversationTagLimit = 5
	ProfileTagLimit      = 3
	LeadTagLimit         = 5
)

// Score thresholds for temperature classification
const (
	ScoreHotThreshold  = 70
	ScoreWarmThreshold = 40
)

// Engagement scoring inside a pipeline run
const (
	ScoreNeutral           = 50
	NegativeSignalPenalty  = 20
	ScoreTakeoverThreshold = 30
)

// Actors recorded on conversation closure
const (
	ClosedByAgent = "agent"
	ClosedByAdmin = "admin"
)

// Websocket / NATS event names
const (
	EventNewMessage    = "new_message"
	EventLeadCreated   = "lead_created"
	EventLeadUpdated   = "lead_updated"
	EventHumanTakeover = "human_takeover"
)

// Fixed user-facing fallback strings (pt-BR, the language the agent speaks)
const (
	ApologyMessage = "Desculpe, ocorreu um erro ao processar sua mensagem. Tente novamente."

	AudioNotSupportedMessage = "Desculpe, ainda nao suportamos mensagens de audio. " +
		"Por favor, envie sua mensagem em texto."

	UnsupportedTypeMessage = "Desculpe, ainda nao suportamos esse tipo de mensagem. " +
		"Por favor, envie sua mensagem em texto."
)

// Default reason recorded when the agent closes a qualified conversation
const DefaultCloseReason = "Lead qualificado"
