package domain

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatRequest is sent to the AI advisor.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatReply is the advisor's answer.
type ChatReply struct {
	Response string `json:"response"`
}

// ChatMessage is one line of an advisor conversation.
type ChatMessage struct {
	Role    string
	Content string
}

// SuggestedQuestions are offered when the conversation is empty.
var SuggestedQuestions = []string{
	"How am I doing financially this month?",
	"Where am I spending the most?",
	"How can I save more money?",
	"Am I on track with my budgets?",
}
