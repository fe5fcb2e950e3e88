package responder

import "strings"

// Canned replies for conversational pleasantries. Matching is whole-token:
// the message must equal the phrase or carry it as a leading/trailing word,
// so "Liquidity" never trips the "ty" thanks phrase.
var (
	greetingPhrases = []string{
		"hi", "hello", "hey", "hii", "hiii", "helo", "hola", "greetings", "good morning",
		"good afternoon", "good evening", "howdy", "sup", "whats up", "what's up",
	}
	farewellPhrases = []string{
		"bye", "goodbye", "see you", "see ya", "later", "farewell", "take care",
		"catch you later", "gotta go", "gtg", "cya",
	}
	thanksPhrases = []string{
		"thanks", "thank you", "thx", "ty", "thanks a lot",
		"thank you so much", "much appreciated", "appreciate it",
	}
)

const (
	greetingReply  = "Hello! 👋 I'm your learning assistant. I can help you understand any concept - from technology and science to language and history. What would you like to learn about today?"
	farewellReply  = "Goodbye! 👋 Have a great day! Feel free to come back anytime you have questions. Happy learning! 🚀"
	thanksReply    = "You're welcome! 😊 I'm always here to help you learn. Feel free to ask me anything else!"
	howAreYouReply = "I'm doing great, thank you for asking! 😊 I'm ready to help you learn about any topic. What interests you today?"
)

// matchShortcut returns the canned reply for a conversational message, or ""
// when the message should go through the pipeline.
func matchShortcut(text string) string {
	lower := strings.ToLower(strings.TrimSpace(text))

	if matchesAnyWord(lower, greetingPhrases) {
		return greetingReply
	}
	if matchesAnyWord(lower, farewellPhrases) {
		return farewellReply
	}
	// Thanks must be the entire message (a trailing "!" or "." is allowed):
	// partial matches here are the classic false-positive source.
	for _, phrase := range thanksPhrases {
		if lower == phrase || lower == phrase+"!" || lower == phrase+"." {
			return thanksReply
		}
	}
	switch lower {
	case "how are you", "how are you?", "how r u", "how r u?":
		return howAreYouReply
	}
	return ""
}

// matchesAnyWord reports whether the message equals a phrase or starts/ends
// with it as a whole word.
func matchesAnyWord(lower string, phrases []string) bool {
	for _, phrase := range phrases {
		if lower == phrase ||
			strings.HasPrefix(lower, phrase+" ") ||
			strings.HasSuffix(lower, " "+phrase) {
			return true
		}
	}
	return false
}
