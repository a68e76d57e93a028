package handlers_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/intelligentspm/syndicate-studio/internal/domain"
	"github.com/intelligentspm/syndicate-studio/internal/service"
	"github.com/intelligentspm/syndicate-studio/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postBillingEvent(t *testing.T, ts *testutil.TestServer, secret string, claims jwt.MapClaims) *http.Response {
	t.Helper()

	claims["iat"] = time.Now().Unix()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	resp, err := http.Post(ts.APIURL("/webhooks/billing"), "application/jwt", strings.NewReader(signed))
	require.NoError(t, err)
	return resp
}

func TestBillingWebhook_UpgradeUnlocksFeatures(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	cookie := ts.SignIn(t, user)

	// FREE tier cannot export.
	id := createCollection(t, ts, cookie, "Pre-Upgrade Notes")
	denied := getWithCookies(t, ts.APIURL("/vault/collections/"+id+"/export"), cookie)
	denied.Body.Close()
	testutil.AssertStatusCode(t, denied, http.StatusForbidden)

	resp := postBillingEvent(t, ts, ts.Config.BillingWebhookSecret, jwt.MapClaims{
		"sub":   user.ID.String(),
		"event": service.BillingEventUpdated,
		"tier":  "SPARCC",
	})
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var body struct {
		Success bool   `json:"success"`
		Tier    string `json:"tier"`
	}
	testutil.AssertJSONResponse(t, resp, &body)
	assert.True(t, body.Success)
	assert.Equal(t, "SPARCC", body.Tier)

	// The same session now passes the export gate.
	allowed := getWithCookies(t, ts.APIURL("/vault/collections/"+id+"/export"), cookie)
	defer allowed.Body.Close()
	testutil.AssertStatusCode(t, allowed, http.StatusOK)
}

func TestBillingWebhook_CancellationDowngrades(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user := testutil.NewUserBuilder().WithTier(domain.TierEnterprise).Build(t, ts.DB.DB)

	resp := postBillingEvent(t, ts, ts.Config.BillingWebhookSecret, jwt.MapClaims{
		"sub":   user.ID.String(),
		"event": service.BillingEventCanceled,
	})
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var body struct {
		Tier string `json:"tier"`
	}
	testutil.AssertJSONResponse(t, resp, &body)
	assert.Equal(t, "FREE", body.Tier)
}

func TestBillingWebhook_RejectsBadSignature(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user := testutil.NewUserBuilder().Build(t, ts.DB.DB)

	resp := postBillingEvent(t, ts, "forged-secret", jwt.MapClaims{
		"sub":   user.ID.String(),
		"event": service.BillingEventUpdated,
		"tier":  "ENTERPRISE",
	})
	defer resp.Body.Close()
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Invalid billing event")
}

func TestBillingWebhook_UnknownUser(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := postBillingEvent(t, ts, ts.Config.BillingWebhookSecret, jwt.MapClaims{
		"sub":   "3f7a2c91-8d54-4a0b-9c6e-1b2d3e4f5a6b",
		"event": service.BillingEventUpdated,
		"tier":  "SPARCC",
	})
	defer resp.Body.Close()
	testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "User not found")
}
