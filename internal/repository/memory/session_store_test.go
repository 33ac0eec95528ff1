package memory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf-explainer-be/internal/entity"
)

func newSession(name string) *entity.ChatSession {
	return &entity.ChatSession{
		Id:           uuid.New(),
		SourceName:   name,
		DocumentCode: 1,
	}
}

func TestCreateInsertsAtFrontAndActivates(t *testing.T) {
	store := NewSessionStore()

	first := newSession("a.pdf")
	second := newSession("b.pdf")
	store.Create(first)
	store.Create(second)

	list := store.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.Id, list[0].Id, "newest session must come first")
	assert.Equal(t, first.Id, list[1].Id)

	active, ok := store.ActiveID()
	require.True(t, ok)
	assert.Equal(t, second.Id, active)
}

func TestSelectUnknownIdIsNoOp(t *testing.T) {
	store := NewSessionStore()
	session := newSession("a.pdf")
	store.Create(session)

	ok := store.Select(uuid.New())

	assert.False(t, ok)
	active, has := store.ActiveID()
	require.True(t, has)
	assert.Equal(t, session.Id, active, "failed select must not move the active pointer")
}

func TestDeleteActivePromotesNextInOrder(t *testing.T) {
	store := NewSessionStore()
	oldest := newSession("a.pdf")
	middle := newSession("b.pdf")
	newest := newSession("c.pdf")
	store.Create(oldest)
	store.Create(middle)
	store.Create(newest)

	require.True(t, store.Delete(newest.Id))

	active, ok := store.ActiveID()
	require.True(t, ok)
	assert.Equal(t, middle.Id, active, "the next session in order becomes active")
	assert.Len(t, store.List(), 2)
}

func TestDeleteNonActiveKeepsActive(t *testing.T) {
	store := NewSessionStore()
	oldest := newSession("a.pdf")
	newest := newSession("b.pdf")
	store.Create(oldest)
	store.Create(newest)

	require.True(t, store.Delete(oldest.Id))

	active, ok := store.ActiveID()
	require.True(t, ok)
	assert.Equal(t, newest.Id, active)
}

func TestDeleteLastSessionClearsActive(t *testing.T) {
	store := NewSessionStore()
	only := newSession("a.pdf")
	store.Create(only)

	require.True(t, store.Delete(only.Id))

	_, ok := store.ActiveID()
	assert.False(t, ok, "no active session means the upload flow should show")
	assert.Empty(t, store.List())
}

func TestAppendMessageIgnoresActiveSelection(t *testing.T) {
	store := NewSessionStore()
	original := newSession("a.pdf")
	other := newSession("b.pdf")
	store.Create(original)
	store.Create(other) // other is now active

	ok := store.AppendMessage(original.Id, entity.ChatMessage{
		Id:      uuid.New(),
		Role:    "user",
		Content: "explain vectors",
	})
	require.True(t, ok)

	got, found := store.Get(original.Id)
	require.True(t, found)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "explain vectors", got.Messages[0].Content)

	active, _ := store.ActiveID()
	assert.Equal(t, other.Id, active, "append must not touch the active pointer")
}

func TestAppendMessageUnknownSession(t *testing.T) {
	store := NewSessionStore()
	assert.False(t, store.AppendMessage(uuid.New(), entity.ChatMessage{}))
}

func TestBeginExchangeIsExclusivePerSession(t *testing.T) {
	store := NewSessionStore()
	a := newSession("a.pdf")
	b := newSession("b.pdf")
	store.Create(a)
	store.Create(b)

	require.True(t, store.BeginExchange(a.Id))
	assert.False(t, store.BeginExchange(a.Id), "second begin on a pending session must lose")
	assert.True(t, store.BeginExchange(b.Id), "other sessions stay fully interactive")

	store.EndExchange(a.Id)
	assert.True(t, store.BeginExchange(a.Id), "slot reopens after the exchange ends")
}

func TestSnapshotsDoNotAliasStoreState(t *testing.T) {
	store := NewSessionStore()
	session := newSession("a.pdf")
	store.Create(session)
	store.AppendMessage(session.Id, entity.ChatMessage{Content: "one"})

	snap, _ := store.Get(session.Id)
	snap.Messages[0].Content = "tampered"
	snap.Messages = append(snap.Messages, entity.ChatMessage{Content: "extra"})

	fresh, _ := store.Get(session.Id)
	require.Len(t, fresh.Messages, 1)
	assert.Equal(t, "one", fresh.Messages[0].Content)
}
