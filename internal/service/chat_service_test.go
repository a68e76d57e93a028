package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/intelligentspm/syndicate-studio/internal/domain"
	"github.com/intelligentspm/syndicate-studio/internal/service"
	"github.com/intelligentspm/syndicate-studio/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostMessage_FreeTierLimit(t *testing.T) {
	services, _, _, db := testutil.NewMemoryServices(t)
	ctx := context.Background()

	user := testutil.NewUserBuilder().Build(t, db)

	for i := 0; i < 3; i++ {
		_, err := services.Chat.PostMessage(ctx, user, fmt.Sprintf("question %d", i+1), nil)
		require.NoError(t, err, "message %d should be within the free allowance", i+1)
	}

	_, err := services.Chat.PostMessage(ctx, user, "question 4", nil)
	var limitErr *domain.TierLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, domain.FeatureChatMessages, limitErr.Feature)
	require.NotNil(t, limitErr.Limit)
	assert.Equal(t, 3, *limitErr.Limit)
}

func TestPostMessage_AssistantTurnsDoNotCount(t *testing.T) {
	services, repos, _, db := testutil.NewMemoryServices(t)
	ctx := context.Background()

	user := testutil.NewUserBuilder().Build(t, db)

	for i := 0; i < 2; i++ {
		_, err := services.Chat.PostMessage(ctx, user, "question", nil)
		require.NoError(t, err)

		// The advisor worker writes its reply directly.
		reply := &domain.ChatMessage{
			ID:        uuid.New(),
			UserID:    user.ID,
			Role:      domain.ChatRoleAssistant,
			Content:   "answer",
			CreatedAt: time.Now(),
		}
		require.NoError(t, repos.ChatMessage.Create(ctx, reply))
	}

	// Two user turns plus two replies: one user turn still remains.
	_, err := services.Chat.PostMessage(ctx, user, "last question", nil)
	assert.NoError(t, err)
}

func TestPostMessage_SparccUnlimited(t *testing.T) {
	services, _, _, db := testutil.NewMemoryServices(t)
	ctx := context.Background()

	user := testutil.NewUserBuilder().WithTier(domain.TierSparcc).Build(t, db)

	for i := 0; i < 10; i++ {
		_, err := services.Chat.PostMessage(ctx, user, "another question", nil)
		require.NoError(t, err)
	}

	remaining, err := services.Chat.Remaining(ctx, user)
	require.NoError(t, err)
	assert.Nil(t, remaining, "unlimited tiers have no remaining count")
}

func TestPostMessage_EmptyContent(t *testing.T) {
	services, _, _, db := testutil.NewMemoryServices(t)
	ctx := context.Background()

	user := testutil.NewUserBuilder().Build(t, db)

	_, err := services.Chat.PostMessage(ctx, user, "   ", nil)
	assert.ErrorIs(t, err, service.ErrMissingContent)
}

func TestChatRemaining_CountsDown(t *testing.T) {
	services, _, _, db := testutil.NewMemoryServices(t)
	ctx := context.Background()

	user := testutil.NewUserBuilder().Build(t, db)

	remaining, err := services.Chat.Remaining(ctx, user)
	require.NoError(t, err)
	require.NotNil(t, remaining)
	assert.Equal(t, 3, *remaining)

	_, err = services.Chat.PostMessage(ctx, user, "first", nil)
	require.NoError(t, err)

	remaining, err = services.Chat.Remaining(ctx, user)
	require.NoError(t, err)
	require.NotNil(t, remaining)
	assert.Equal(t, 2, *remaining)
}

func TestChatHistory_ScopedToUser(t *testing.T) {
	services, _, _, db := testutil.NewMemoryServices(t)
	ctx := context.Background()

	alice := testutil.NewUserBuilder().Build(t, db)
	bob := testutil.NewUserBuilder().Build(t, db)

	_, err := services.Chat.PostMessage(ctx, alice, "alice asks", nil)
	require.NoError(t, err)
	_, err = services.Chat.PostMessage(ctx, bob, "bob asks", nil)
	require.NoError(t, err)

	history, err := services.Chat.History(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "alice asks", history[0].Content)
}
