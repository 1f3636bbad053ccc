package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"vetchat/models"
)

type fakeSessionRepo struct {
	sessions map[string]*models.Conversation
	cleared  int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.Conversation)}
}

func (r *fakeSessionRepo) GetOrCreate(_ context.Context, sessionID string, userCtx map[string]string) (*models.Conversation, error) {
	if conv, ok := r.sessions[sessionID]; ok {
		for k, v := range userCtx {
			if conv.Context == nil {
				conv.Context = map[string]string{}
			}
			conv.Context[k] = v
		}
		copied := *conv
		return &copied, nil
	}
	conv := &models.Conversation{
		SessionID:        sessionID,
		Messages:         []models.Message{},
		Context:          userCtx,
		AppointmentState: models.StateIdle,
		CreatedAt:        time.Now(),
	}
	r.sessions[sessionID] = conv
	copied := *conv
	return &copied, nil
}

func (r *fakeSessionRepo) Get(_ context.Context, sessionID string) (*models.Conversation, error) {
	conv, ok := r.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	copied := *conv
	return &copied, nil
}

func (r *fakeSessionRepo) AppendMessage(_ context.Context, sessionID string, sender models.Sender, text string) error {
	conv, ok := r.sessions[sessionID]
	if !ok {
		return errors.New("session not found")
	}
	conv.Messages = append(conv.Messages, models.Message{Sender: sender, Text: text, Timestamp: time.Now()})
	return nil
}

func (r *fakeSessionRepo) SetBookingState(_ context.Context, sessionID string, state models.AppointmentState, data models.AppointmentData) error {
	conv, ok := r.sessions[sessionID]
	if !ok {
		return errors.New("session not found")
	}
	conv.AppointmentState = state
	conv.AppointmentData = data
	return nil
}

func (r *fakeSessionRepo) ClearBooking(_ context.Context, sessionID string) error {
	r.cleared++
	if conv, ok := r.sessions[sessionID]; ok {
		conv.AppointmentState = models.StateIdle
		conv.AppointmentData = models.AppointmentData{}
	}
	return nil
}

type fakeAI struct {
	reply   string
	err     error
	calls   int
	history []models.Message
}

func (a *fakeAI) GenerateReply(_ context.Context, _ string, history []models.Message) (string, error) {
	a.calls++
	a.history = history
	if a.err != nil {
		return "", a.err
	}
	return a.reply, nil
}

func (a *fakeAI) IsVeterinaryTopic(context.Context, string) bool { return true }

type fakeFlow struct {
	result *models.FlowResult
	err    error
	calls  int
}

func (f *fakeFlow) ProcessFlow(context.Context, string, string) (*models.FlowResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newTestChat(sessions *fakeSessionRepo, ai *fakeAI, flow *fakeFlow) *DefaultChatService {
	return &DefaultChatService{
		Sessions: sessions,
		Booking:  flow,
		AI:       ai,
		Intent:   NewKeywordIntentPolicy(),
	}
}

func TestProcessMessageRoutesToAI(t *testing.T) {
	sessions := newFakeSessionRepo()
	ai := &fakeAI{reply: "Puppies do best on a balanced puppy food."}
	flow := &fakeFlow{}
	svc := newTestChat(sessions, ai, flow)

	res, err := svc.ProcessMessage(context.Background(), "s1", "What should I feed a puppy?", nil)
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if ai.calls != 1 || flow.calls != 0 {
		t.Errorf("expected AI branch, got ai=%d flow=%d calls", ai.calls, flow.calls)
	}
	if res.Reply != ai.reply || res.AppointmentInProgress {
		t.Errorf("unexpected result: %+v", res)
	}

	msgs := sessions.sessions["s1"].Messages
	if len(msgs) != 2 {
		t.Fatalf("expected user+bot pair, got %d messages", len(msgs))
	}
	if msgs[0].Sender != models.SenderUser || msgs[1].Sender != models.SenderBot {
		t.Errorf("unexpected senders: %v %v", msgs[0].Sender, msgs[1].Sender)
	}
}

func TestProcessMessageKeywordRoutesToBooking(t *testing.T) {
	sessions := newFakeSessionRepo()
	ai := &fakeAI{reply: "unused"}
	flow := &fakeFlow{result: &models.FlowResult{
		Reply:                 "May I have the owner's name?",
		AppointmentInProgress: true,
		CurrentField:          "ownerName",
	}}
	svc := newTestChat(sessions, ai, flow)

	res, err := svc.ProcessMessage(context.Background(), "s1", "My cat is sick", nil)
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if flow.calls != 1 || ai.calls != 0 {
		t.Errorf("expected booking branch, got ai=%d flow=%d calls", ai.calls, flow.calls)
	}
	if !res.AppointmentInProgress || res.CurrentField != "ownerName" {
		t.Errorf("unexpected result: %+v", res)
	}
	if len(sessions.sessions["s1"].Messages) != 2 {
		t.Errorf("booking branch must still record the turn pair")
	}
}

func TestProcessMessageActiveBookingBypassesIntent(t *testing.T) {
	sessions := newFakeSessionRepo()
	sessions.sessions["s1"] = &models.Conversation{
		SessionID:        "s1",
		AppointmentState: models.StateCollectOwnerName,
	}
	ai := &fakeAI{reply: "unused"}
	flow := &fakeFlow{result: &models.FlowResult{Reply: "ok", AppointmentInProgress: true, CurrentField: "petName"}}
	svc := newTestChat(sessions, ai, flow)

	// "Jane Doe" carries no booking keyword; the active flow must win anyway.
	if _, err := svc.ProcessMessage(context.Background(), "s1", "Jane Doe", nil); err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if flow.calls != 1 || ai.calls != 0 {
		t.Errorf("active booking must route to the state machine, got ai=%d flow=%d", ai.calls, flow.calls)
	}
}

func TestProcessMessageAIFailureFallsBack(t *testing.T) {
	sessions := newFakeSessionRepo()
	ai := &fakeAI{err: errors.New("gemini unreachable")}
	svc := newTestChat(sessions, ai, &fakeFlow{})

	res, err := svc.ProcessMessage(context.Background(), "s1", "What should I feed a puppy?", nil)
	if err != nil {
		t.Fatalf("AI failure must not fail the turn: %v", err)
	}
	if res.Error == "" {
		t.Error("expected error marker in result")
	}
	if res.Reply != aiFallbackReply {
		t.Errorf("reply = %q, want fallback", res.Reply)
	}

	msgs := sessions.sessions["s1"].Messages
	if len(msgs) != 2 || msgs[1].Text != aiFallbackReply {
		t.Errorf("fallback turn not recorded: %v", msgs)
	}
}

func TestProcessMessageBookingFailureClearsState(t *testing.T) {
	sessions := newFakeSessionRepo()
	sessions.sessions["s1"] = &models.Conversation{
		SessionID:        "s1",
		AppointmentState: models.StateCollectPhone,
		AppointmentData:  models.AppointmentData{OwnerName: "Jane", PetName: "Rex"},
	}
	flow := &fakeFlow{err: errors.New("mongo down")}
	svc := newTestChat(sessions, &fakeAI{}, flow)

	res, err := svc.ProcessMessage(context.Background(), "s1", "555-123-4567", nil)
	if err != nil {
		t.Fatalf("booking failure must not fail the turn: %v", err)
	}
	if res.Reply != bookingFallbackReply || res.Error == "" {
		t.Errorf("unexpected result: %+v", res)
	}
	if sessions.cleared != 1 {
		t.Errorf("expected booking state cleared once, got %d", sessions.cleared)
	}
	conv := sessions.sessions["s1"]
	if conv.AppointmentState != models.StateIdle || conv.AppointmentData != (models.AppointmentData{}) {
		t.Errorf("session left stuck mid-flow: %q %+v", conv.AppointmentState, conv.AppointmentData)
	}
}

func TestProcessMessageRejectsEmptyInput(t *testing.T) {
	svc := newTestChat(newFakeSessionRepo(), &fakeAI{}, &fakeFlow{})

	for _, tc := range []struct{ sessionID, message string }{
		{"", "hello"},
		{"   ", "hello"},
		{"s1", ""},
		{"s1", "   "},
	} {
		if _, err := svc.ProcessMessage(context.Background(), tc.sessionID, tc.message, nil); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ProcessMessage(%q, %q): expected ErrInvalidInput, got %v", tc.sessionID, tc.message, err)
		}
	}
}

func TestProcessMessageTurnPairing(t *testing.T) {
	sessions := newFakeSessionRepo()
	ai := &fakeAI{reply: "ok"}
	svc := newTestChat(sessions, ai, &fakeFlow{})

	const turns = 7
	for i := 0; i < turns; i++ {
		if _, err := svc.ProcessMessage(context.Background(), "s1", fmt.Sprintf("question %d about dog food", i), nil); err != nil {
			t.Fatalf("turn %d: %v", i, err)
		}
	}

	msgs := sessions.sessions["s1"].Messages
	if len(msgs) != 2*turns {
		t.Fatalf("expected %d messages after %d turns, got %d", 2*turns, turns, len(msgs))
	}
	for i, m := range msgs {
		want := models.SenderUser
		if i%2 == 1 {
			want = models.SenderBot
		}
		if m.Sender != want {
			t.Errorf("message %d: sender = %q, want %q", i, m.Sender, want)
		}
	}
}

func TestHistoryWindowForwardedToAI(t *testing.T) {
	sessions := newFakeSessionRepo()
	ai := &fakeAI{reply: "ok"}
	svc := newTestChat(sessions, ai, &fakeFlow{})

	for i := 0; i < 8; i++ {
		if _, err := svc.ProcessMessage(context.Background(), "s1", fmt.Sprintf("question %d about cats", i), nil); err != nil {
			t.Fatalf("turn %d: %v", i, err)
		}
	}

	// 7 turns of history exist before the 8th message; only the last 10
	// entries of the 14 stored may be forwarded.
	if len(ai.history) != 10 {
		t.Errorf("history window = %d, want 10", len(ai.history))
	}
}

func TestGetHistoryUnknownSession(t *testing.T) {
	svc := newTestChat(newFakeSessionRepo(), &fakeAI{}, &fakeFlow{})

	history, err := svc.GetHistory(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if history.SessionID != "never-seen" {
		t.Errorf("sessionId = %q", history.SessionID)
	}
	if history.Messages == nil || len(history.Messages) != 0 {
		t.Errorf("expected empty non-nil messages, got %v", history.Messages)
	}
}

func TestGetHistoryReturnsMessagesInOrder(t *testing.T) {
	sessions := newFakeSessionRepo()
	ai := &fakeAI{reply: "ok"}
	svc := newTestChat(sessions, ai, &fakeFlow{})

	if _, err := svc.ProcessMessage(context.Background(), "s1", "is grain free food safe", map[string]string{"petName": "Rex"}); err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}

	history, err := svc.GetHistory(context.Background(), "s1")
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(history.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(history.Messages))
	}
	if history.Messages[0].Text != "is grain free food safe" {
		t.Errorf("first message = %q", history.Messages[0].Text)
	}
	if history.Context["petName"] != "Rex" {
		t.Errorf("context not preserved: %v", history.Context)
	}
}
