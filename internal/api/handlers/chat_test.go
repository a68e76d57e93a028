package handlers_test

import (
	"net/http"
	"testing"

	"github.com/intelligentspm/syndicate-studio/internal/domain"
	"github.com/intelligentspm/syndicate-studio/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat_FreeTierLimitOverHTTP(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	cookie := ts.SignIn(t, user)

	var lastRemaining *int
	for i := 0; i < 3; i++ {
		resp := postJSON(t, ts.APIURL("/chat"), map[string]string{"content": "How do I fix my payout curve?"}, cookie)
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var body struct {
			Message struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"message"`
			Remaining *int `json:"remaining"`
		}
		testutil.AssertJSONResponse(t, resp, &body)
		resp.Body.Close()

		assert.Equal(t, domain.ChatRoleUser, body.Message.Role)
		lastRemaining = body.Remaining
	}

	require.NotNil(t, lastRemaining)
	assert.Equal(t, 0, *lastRemaining, "third message exhausts the free allowance")

	denied := postJSON(t, ts.APIURL("/chat"), map[string]string{"content": "One more?"}, cookie)
	defer denied.Body.Close()
	testutil.AssertUpgradeRequired(t, denied, "MESSAGE_LIMIT_REACHED")
}

func TestChat_SparccHasNoRemainingCount(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user := testutil.NewUserBuilder().WithTier(domain.TierSparcc).Build(t, ts.DB.DB)
	cookie := ts.SignIn(t, user)

	resp := postJSON(t, ts.APIURL("/chat"), map[string]string{"content": "Walk me through accelerators."}, cookie)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var body struct {
		Remaining *int `json:"remaining"`
	}
	testutil.AssertJSONResponse(t, resp, &body)
	assert.Nil(t, body.Remaining, "unlimited tiers report remaining null")
}

func TestChat_History(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	cookie := ts.SignIn(t, user)

	resp := postJSON(t, ts.APIURL("/chat"), map[string]string{"content": "First question"}, cookie)
	resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	histResp := getWithCookies(t, ts.APIURL("/chat/history"), cookie)
	defer histResp.Body.Close()
	testutil.AssertStatusCode(t, histResp, http.StatusOK)

	var body struct {
		Messages []struct {
			Content string `json:"content"`
		} `json:"messages"`
	}
	testutil.AssertJSONResponse(t, histResp, &body)
	require.Len(t, body.Messages, 1)
	assert.Equal(t, "First question", body.Messages[0].Content)
}

func TestChat_EmptyContent(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	cookie := ts.SignIn(t, user)

	resp := postJSON(t, ts.APIURL("/chat"), map[string]string{"content": ""}, cookie)
	defer resp.Body.Close()
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Message content is required")
}
