package chat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patter/pkg/chat"
)

func TestConversationAppendIsImmutable(t *testing.T) {
	conv := chat.NewConversation()
	grown := chat.AddMessage(conv, chat.NewUserMessage("hello"))

	assert.Zero(t, chat.GetMessageCount(conv), "original conversation untouched")
	assert.Equal(t, 1, chat.GetMessageCount(grown))
}

func TestConversationGetMessagesReturnsCopy(t *testing.T) {
	conv := chat.AddMessage(chat.NewConversation(), chat.NewUserMessage("hello"))

	messages := chat.GetMessages(conv)
	messages[0].Content = "mutated"

	fresh := chat.GetMessages(conv)
	assert.Equal(t, "hello", fresh[0].Content)
}

func TestConversationLastMessage(t *testing.T) {
	conv := chat.NewConversation()

	_, ok := chat.GetLastMessage(conv)
	assert.False(t, ok)

	conv = chat.AddMessage(conv, chat.NewUserMessage("question"))
	conv = chat.AddMessage(conv, chat.NewAssistantMessage("answer"))

	last, ok := chat.GetLastMessage(conv)
	require.True(t, ok)
	assert.Equal(t, "answer", last.Content)
}

func TestConversationLastAssistantMessage(t *testing.T) {
	conv := chat.AddMessage(chat.NewConversation(), chat.NewUserMessage("only user"))

	_, ok := chat.GetLastAssistantMessage(conv)
	assert.False(t, ok)

	conv = chat.AddMessage(conv, chat.NewAssistantMessage("first answer"))
	conv = chat.AddMessage(conv, chat.NewUserMessage("followup"))

	last, ok := chat.GetLastAssistantMessage(conv)
	require.True(t, ok)
	assert.True(t, last.IsAssistant())
	assert.Equal(t, "first answer", last.Content)
}

func TestNewUserMessageTrimsInput(t *testing.T) {
	msg := chat.NewUserMessage("  spaced out  \n")
	assert.Equal(t, "spaced out", msg.Content)
	assert.True(t, msg.IsUser())
}
