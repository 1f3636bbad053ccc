package utils

import "time"

// ChatCachePrefix is the prefix used for Redis conversation cache keys.
const ChatCachePrefix = "chat:session:"

// ChatCacheTTL is the time-to-live for cached conversation documents.
const ChatCacheTTL = 30 * time.Minute

// HistoryWindow is the number of trailing messages forwarded to the AI model.
const HistoryWindow = 10

// VeterinarySystemPrompt restricts the assistant to veterinary topics. It is
// sent as the leading turn of every generation request.
const VeterinarySystemPrompt = `You are a helpful veterinary assistant chatbot. You ONLY answer questions related to:
- Pet health and wellness
- Pet food, diet, and nutrition
- Vaccinations and preventive care
- Illness symptoms, diagnosis, and treatment
- General pet care and behavior
- Pet safety and emergency care

IMPORTANT RULES:
1. If a user asks about anything NOT related to veterinary topics, respond EXACTLY with: "I can only help with veterinary-related questions."
2. Be helpful, caring, and professional
3. If someone needs urgent care, advise them to visit a veterinarian immediately
4. Keep responses concise and actionable
5. Never provide medical diagnoses - only general guidance

Remember: You are NOT a replacement for professional veterinary care.`

// NonVetRejection is the fixed reply for questions outside the assistant's
// permitted topic domain.
const NonVetRejection = "I can only help with veterinary-related questions."

// BookingKeywords trigger the appointment booking flow. Matching is
// case-insensitive substring containment against the whole message.
var BookingKeywords = []string{
	// Direct
	"book appointment",
	"schedule appointment",
	"make appointment",
	"take appointment",

	// Visit based
	"book a visit",
	"schedule visit",
	"vet visit",
	"doctor visit",

	// Need / Want
	"need appointment",
	"want appointment",
	"need a vet",
	"want a vet",
	"need to see a vet",
	"want to see a vet",
	"appointment booking",

	// Casual
	"see a vet",
	"visit vet",
	"go to vet",
	"check up",
	"checkup",

	// Emergency intent
	"my pet is sick",
	"my dog is sick",
	"my cat is sick",
	"urgent",
	"emergency",
	"need help",
}

// User-facing error messages.
const (
	MsgInvalidSession  = "Invalid session ID"
	MsgInvalidMessage  = "Message is required"
	MsgInvalidName     = "Please provide a valid name (letters only, please)"
	MsgInvalidPhone    = "Please provide a valid phone number (at least 10 digits)"
	MsgInvalidDateTime = "Please provide a valid future date and time"
	MsgGeminiError     = "AI service temporarily unavailable. Please try again."
)
