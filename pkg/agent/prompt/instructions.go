package prompt

// Instruction builders translate the stored agent config into prompt
// fragments. Unknown values fall back to the defaults the dashboard seeds.

var toneInstructions = map[string]string{
	"profissional": "Mantenha um tom profissional e cordial.",
	"descontraido": "Use um tom leve e descontraido, como uma conversa entre conhecidos.",
	"tecnico":      "Use um tom tecnico e preciso, sem jargoes desnecessarios.",
	"amigavel":     "Seja caloroso e amigavel, demonstre proximidade.",
}

var emojiInstructions = map[string]string{
	"sempre":   "Use emojis com frequencia para deixar a conversa leve.",
	"moderado": "Use emojis com moderacao, no maximo um por mensagem.",
	"nunca":    "Nao use emojis.",
}

var greetingInstructions = map[string]string{
	"caloroso": "Cumprimente de forma calorosa e acolhedora.",
	"neutro":   "Cumprimente de forma neutra e educada.",
	"objetivo": "Va direto ao ponto, sem cumprimentos longos.",
}

var styleInstructions = map[string]string{
	"formal":         "Escreva de forma formal, sem girias.",
	"conversacional": "Escreva de forma natural e conversacional, frases curtas.",
	"consultivo":     "Adote postura consultiva, faca perguntas que ajudem o cliente a refletir.",
	"direto":         "Seja direto e objetivo nas respostas.",
}

func BuildToneInstructions(tone string) string {
	if v, ok := toneInstructions[tone]; ok {
		return v
	}
	return toneInstructions["profissional"]
}

func BuildEmojiInstructions(useEmojis string) string {
	if v, ok := emojiInstructions[useEmojis]; ok {
		return v
	}
	return emojiInstructions["moderado"]
}

func BuildGreetingInstructions(style string) string {
	if v, ok := greetingInstructions[style]; ok {
		return v
	}
	return greetingInstructions["caloroso"]
}

func BuildStyleInstructions(style string) string {
	if v, ok := styleInstructions[style]; ok {
		return v
	}
	return styleInstructions["conversacional"]
}
