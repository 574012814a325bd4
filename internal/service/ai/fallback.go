package ai

import (
	"github.com/zhouzirui/moodmate/backend/internal/analysis/emotion"
	"github.com/zhouzirui/moodmate/backend/internal/model/mood"
)

var fallbackByLanguage = map[mood.Language]mood.Suggestion{
	mood.English: {
		Message:    "An error occurred while processing your request.",
		Suggestion: "Take a slow breath and try again in a moment.",
	},
	mood.Italian: {
		Message:    "Si è verificato un errore durante l'elaborazione della richiesta.",
		Suggestion: "Fai un respiro profondo e riprova tra qualche istante.",
	},
}

// Fallback 返回请求失败时展示给用户的本地化建议。
func Fallback(lang mood.Language) mood.Suggestion {
	if s, ok := fallbackByLanguage[lang]; ok {
		return s
	}
	return fallbackByLanguage[mood.English]
}

var offlineEnglish = map[emotion.Label]mood.Suggestion{
	emotion.Neutral: {
		Message:    "Thanks for checking in with yourself today.",
		Suggestion: "Take a short walk and notice three things around you.",
	},
	emotion.Happy: {
		Message:    "It's great to see you in such good spirits!",
		Suggestion: "Share the moment with a friend or write down what made you smile.",
	},
	emotion.Sad: {
		Message:    "I'm sorry you're feeling down. It's okay to take things slowly.",
		Suggestion: "Reach out to someone you trust, or listen to a song that comforts you.",
	},
	emotion.Angry: {
		Message:    "It sounds like something really got to you. Your feelings are valid.",
		Suggestion: "Step away for ten minutes and try some slow, deep breathing.",
	},
	emotion.Anxious: {
		Message:    "Feeling on edge is hard. You're doing better than you think.",
		Suggestion: "Try the 4-7-8 breathing exercise and focus on one small task.",
	},
	emotion.Tired: {
		Message:    "You seem worn out. Rest is productive too.",
		Suggestion: "Have a glass of water and take a short nap or an early night.",
	},
	emotion.Loving: {
		Message:    "So much warmth in your selection today!",
		Suggestion: "Send a kind message to someone you care about.",
	},
	emotion.Unwell: {
		Message:    "Sorry you're not feeling well. Be gentle with yourself.",
		Suggestion: "Rest, stay hydrated, and check in with a doctor if it persists.",
	},
}

var offlineItalian = map[emotion.Label]mood.Suggestion{
	emotion.Neutral: {
		Message:    "Grazie per esserti fermato un attimo ad ascoltarti oggi.",
		Suggestion: "Fai una breve passeggiata e nota tre cose intorno a te.",
	},
	emotion.Happy: {
		Message:    "Che bello vederti così di buon umore!",
		Suggestion: "Condividi il momento con un amico o scrivi cosa ti ha fatto sorridere.",
	},
	emotion.Sad: {
		Message:    "Mi dispiace che tu ti senta giù. Va bene prendersela con calma.",
		Suggestion: "Contatta una persona di fiducia o ascolta una canzone che ti conforta.",
	},
	emotion.Angry: {
		Message:    "Sembra che qualcosa ti abbia davvero infastidito. Quello che provi è legittimo.",
		Suggestion: "Allontanati per dieci minuti e prova a respirare lentamente.",
	},
	emotion.Anxious: {
		Message:    "Sentirsi in ansia è difficile. Stai andando meglio di quanto pensi.",
		Suggestion: "Prova la respirazione 4-7-8 e concentrati su un piccolo compito.",
	},
	emotion.Tired: {
		Message:    "Sembri esausto. Anche riposare è importante.",
		Suggestion: "Bevi un bicchiere d'acqua e concediti un pisolino o una notte di riposo.",
	},
	emotion.Loving: {
		Message:    "Quanto affetto nella tua selezione di oggi!",
		Suggestion: "Manda un messaggio gentile a una persona a cui tieni.",
	},
	emotion.Unwell: {
		Message:    "Mi dispiace che tu non stia bene. Abbi cura di te.",
		Suggestion: "Riposa, bevi molta acqua e senti un medico se non passa.",
	},
}

// OfflineSuggestion answers without a model by classifying the emoji locally.
func OfflineSuggestion(tokens []string, lang mood.Language) mood.Suggestion {
	table := offlineEnglish
	if lang == mood.Italian {
		table = offlineItalian
	}

	decision := emotion.Classify(tokens)
	if s, ok := table[decision.Emotion]; ok {
		return s
	}
	return table[emotion.Neutral]
}
