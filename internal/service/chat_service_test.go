package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf-explainer-be/internal/constant"
	"pdf-explainer-be/internal/dto"
	"pdf-explainer-be/internal/entity"
	"pdf-explainer-be/pkg/explainer"
)

func seedSession(f *exchangeFixture, code int) uuid.UUID {
	session := &entity.ChatSession{
		Id:           uuid.New(),
		SourceName:   "notes.pdf",
		DocumentCode: code,
		Messages: []entity.ChatMessage{
			{Id: uuid.New(), Role: constant.ChatMessageRoleAssistant, Content: "welcome"},
		},
	}
	f.store.Create(session)
	return session.Id
}

func waitForMessages(t *testing.T, f *exchangeFixture, id uuid.UUID, count int) *entity.ChatSession {
	t.Helper()
	var session *entity.ChatSession
	require.Eventually(t, func() bool {
		s, found := f.store.Get(id)
		if !found {
			return false
		}
		session = s
		return len(s.Messages) == count && !s.Pending
	}, 2*time.Second, 5*time.Millisecond)
	return session
}

func TestSendSuccessAppendsContiguousPair(t *testing.T) {
	provider := &stubProvider{
		generateResult: &explainer.GenerateResult{VideoID: "abc123", Explanation: "Vectors, visually."},
	}
	f := newExchangeFixture(provider)
	defer f.cancel()
	id := seedSession(f, 42)

	ack, err := f.chat.Send(context.Background(), &dto.SendChatRequest{SessionId: id, Prompt: "explain vectors"})
	require.NoError(t, err)
	assert.True(t, ack.Accepted)

	session := waitForMessages(t, f, id, 3)

	userMsg := session.Messages[1]
	assert.Equal(t, constant.ChatMessageRoleUser, userMsg.Role)
	assert.Equal(t, "explain vectors", userMsg.Content)
	assert.False(t, userMsg.HasVideo)

	reply := session.Messages[2]
	assert.Equal(t, constant.ChatMessageRoleAssistant, reply.Role)
	assert.Equal(t, "Vectors, visually.", reply.Content)
	assert.True(t, reply.HasVideo)
	assert.Equal(t, "abc123", reply.VideoRef)
}

func TestSendRejectsSessionWithoutDocumentCode(t *testing.T) {
	provider := &stubProvider{generateResult: &explainer.GenerateResult{VideoID: "x"}}
	f := newExchangeFixture(provider)
	defer f.cancel()
	id := seedSession(f, 0)

	_, err := f.chat.Send(context.Background(), &dto.SendChatRequest{SessionId: id, Prompt: "explain vectors"})

	var validationErr *dto.ValidationError
	require.ErrorAs(t, err, &validationErr)

	session, found := f.store.Get(id)
	require.True(t, found)
	assert.Len(t, session.Messages, 1, "rejected send must not append")
	assert.False(t, session.Pending)
	_, generates := provider.calls()
	assert.Equal(t, 0, generates)
}

func TestSendTrimsPromptAndRejectsEmpty(t *testing.T) {
	f := newExchangeFixture(&stubProvider{generateResult: &explainer.GenerateResult{VideoID: "x"}})
	defer f.cancel()
	id := seedSession(f, 42)

	_, err := f.chat.Send(context.Background(), &dto.SendChatRequest{SessionId: id, Prompt: "   \n\t "})

	var validationErr *dto.ValidationError
	require.ErrorAs(t, err, &validationErr)

	session, _ := f.store.Get(id)
	assert.Len(t, session.Messages, 1, "nothing may be appended for a rejected prompt")
}

func TestSendUnknownSession(t *testing.T) {
	f := newExchangeFixture(&stubProvider{})
	defer f.cancel()

	_, err := f.chat.Send(context.Background(), &dto.SendChatRequest{SessionId: uuid.New(), Prompt: "hi"})

	var validationErr *dto.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestSendFailureAppendsFallbackPair(t *testing.T) {
	provider := &stubProvider{
		generateErr: &explainer.BackendError{Status: 500, Message: "model exploded"},
	}
	f := newExchangeFixture(provider)
	defer f.cancel()
	id := seedSession(f, 42)

	ack, err := f.chat.Send(context.Background(), &dto.SendChatRequest{SessionId: id, Prompt: "explain vectors"})
	require.NoError(t, err)
	assert.True(t, ack.Accepted)

	session := waitForMessages(t, f, id, 3)

	assert.Equal(t, "explain vectors", session.Messages[1].Content)
	fallback := session.Messages[2]
	assert.Equal(t, constant.ChatMessageRoleAssistant, fallback.Role)
	assert.Equal(t, constant.FallbackApologyMessage, fallback.Content)
	assert.False(t, fallback.HasVideo, "fallback carries no video reference")
	assert.False(t, session.Pending, "a failed exchange must not leave the session pending")
}

func TestSecondSendWhilePendingIsRejected(t *testing.T) {
	provider := &stubProvider{
		generateResult: &explainer.GenerateResult{VideoID: "abc123"},
		generateDelay:  100 * time.Millisecond,
	}
	f := newExchangeFixture(provider)
	defer f.cancel()
	id := seedSession(f, 42)

	first, err := f.chat.Send(context.Background(), &dto.SendChatRequest{SessionId: id, Prompt: "first"})
	require.NoError(t, err)
	require.True(t, first.Accepted)

	second, err := f.chat.Send(context.Background(), &dto.SendChatRequest{SessionId: id, Prompt: "second"})
	require.NoError(t, err)
	assert.False(t, second.Accepted, "second send on a pending session must lose")

	session := waitForMessages(t, f, id, 3)

	// Only the first exchange happened: welcome, "first", reply. The
	// rejected send duplicated nothing.
	assert.Equal(t, "first", session.Messages[1].Content)
	for _, msg := range session.Messages {
		assert.NotEqual(t, "second", msg.Content)
	}

	_, generates := provider.calls()
	assert.Equal(t, 1, generates)
}

func TestDistinctSessionsExchangeConcurrently(t *testing.T) {
	provider := &stubProvider{
		generateResult: &explainer.GenerateResult{VideoID: "abc123"},
		generateDelay:  50 * time.Millisecond,
	}
	f := newExchangeFixture(provider)
	defer f.cancel()
	a := seedSession(f, 1)
	b := seedSession(f, 2)

	ackA, err := f.chat.Send(context.Background(), &dto.SendChatRequest{SessionId: a, Prompt: "from a"})
	require.NoError(t, err)
	ackB, err := f.chat.Send(context.Background(), &dto.SendChatRequest{SessionId: b, Prompt: "from b"})
	require.NoError(t, err)

	assert.True(t, ackA.Accepted)
	assert.True(t, ackB.Accepted, "a pending exchange elsewhere must not block this session")

	waitForMessages(t, f, a, 3)
	waitForMessages(t, f, b, 3)
}

func TestResponseLandsInOriginatingSessionAfterSwitch(t *testing.T) {
	provider := &stubProvider{
		generateResult: &explainer.GenerateResult{VideoID: "abc123"},
		generateDelay:  50 * time.Millisecond,
	}
	f := newExchangeFixture(provider)
	defer f.cancel()
	origin := seedSession(f, 1)
	other := seedSession(f, 2)

	_, err := f.chat.Send(context.Background(), &dto.SendChatRequest{SessionId: origin, Prompt: "explain vectors"})
	require.NoError(t, err)

	// User navigates away while the exchange is in flight.
	require.True(t, f.store.Select(other))

	session := waitForMessages(t, f, origin, 3)
	assert.Equal(t, "explain vectors", session.Messages[1].Content)

	otherSession, _ := f.store.Get(other)
	assert.Len(t, otherSession.Messages, 1, "the active session must not receive the reply")
}

func TestProgressReportsPendingLifecycle(t *testing.T) {
	provider := &stubProvider{
		generateResult: &explainer.GenerateResult{VideoID: "abc123"},
		generateDelay:  100 * time.Millisecond,
	}
	f := newExchangeFixture(provider)
	defer f.cancel()
	id := seedSession(f, 42)

	_, err := f.chat.Send(context.Background(), &dto.SendChatRequest{SessionId: id, Prompt: "explain"})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		res, found := f.chat.Progress(id)
		return found && res.Pending && res.Percent > 0
	}, 2*time.Second, 5*time.Millisecond)

	waitForMessages(t, f, id, 3)

	res, found := f.chat.Progress(id)
	require.True(t, found)
	assert.False(t, res.Pending)
	assert.Zero(t, res.Percent, "progress resets once the exchange finishes")
}

func TestMissingExplanationFallsBackToDefaultText(t *testing.T) {
	provider := &stubProvider{
		generateResult: &explainer.GenerateResult{VideoID: "abc123"},
	}
	f := newExchangeFixture(provider)
	defer f.cancel()
	id := seedSession(f, 42)

	_, err := f.chat.Send(context.Background(), &dto.SendChatRequest{SessionId: id, Prompt: "explain"})
	require.NoError(t, err)

	session := waitForMessages(t, f, id, 3)
	assert.Equal(t, constant.DefaultExplanationMessage, session.Messages[2].Content)
	assert.True(t, session.Messages[2].HasVideo)
}
