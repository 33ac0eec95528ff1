package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"

	// Seeded into every new session; must mention the document code so the
	// user can tell which processed document the session is bound to.
	WelcomeMessageTemplate = "Your document %q is ready (document code %d). Ask me anything about it and I'll reply with an explanation and a video."

	// Appended verbatim when a generate call fails. The failure becomes part
	// of the conversation instead of a blocking error.
	FallbackApologyMessage = "Sorry, I couldn't come up with an explanation for that. Please try asking again."

	// Used when the backend sends a video without explanatory text.
	DefaultExplanationMessage = "Here's a video that walks through it."
)
