package intelligence

import (
	"context"
	"fmt"
	"strings"

	"vetchat/models"
	"vetchat/utils"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const emptyReplyFallback = "I'm sorry, I couldn't generate a response."

// GeminiClient implements Service on top of the Gemini API.
type GeminiClient struct {
	model *genai.GenerativeModel
}

// NewGeminiClient creates a Gemini-backed Service.
func NewGeminiClient(apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key missing")
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{model: client.GenerativeModel(modelName)}, nil
}

// GenerateReply sends the persona prompt, the trailing history and the new
// message as one chat request and returns the generated text. The rejection
// sentinel, when present in the output, is returned verbatim.
func (g *GeminiClient) GenerateReply(ctx context.Context, message string, history []models.Message) (string, error) {
	cs := g.model.StartChat()
	cs.History = buildHistory(history)

	resp, err := cs.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return emptyReplyFallback, nil
	}
	if strings.Contains(text, utils.NonVetRejection) {
		return utils.NonVetRejection, nil
	}
	return text, nil
}

// IsVeterinaryTopic asks the model for a YES/NO classification of message.
func (g *GeminiClient) IsVeterinaryTopic(ctx context.Context, message string) bool {
	prompt := fmt.Sprintf("Reply ONLY YES or NO.\nIs this veterinary related? %q", message)
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		utils.GetLogger().Warn("topic classifier call failed, failing open", zap.Error(err))
		return true
	}
	return strings.ToUpper(strings.TrimSpace(extractText(resp))) == "YES"
}

// buildHistory maps stored messages onto Gemini chat turns, with the
// veterinary persona prompt embedded as the leading turn.
func buildHistory(history []models.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	contents = append(contents, &genai.Content{
		Role:  "user",
		Parts: []genai.Part{genai.Text(utils.VeterinarySystemPrompt)},
	})
	for _, m := range history {
		role := "user"
		if m.Sender == models.SenderBot {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Text)},
		})
	}
	return contents
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return strings.TrimSpace(sb.String())
}
