package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/intelligentspm/syndicate-studio/internal/domain"
	"github.com/intelligentspm/syndicate-studio/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCollection(t *testing.T, ts *testutil.TestServer, cookie *http.Cookie, title string) string {
	t.Helper()

	resp := postJSON(t, ts.APIURL("/vault/collections"), map[string]string{"title": title}, cookie)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var body struct {
		Collection struct {
			ID string `json:"id"`
		} `json:"collection"`
	}
	testutil.AssertJSONResponse(t, resp, &body)
	require.NotEmpty(t, body.Collection.ID)
	return body.Collection.ID
}

func TestVault_FreeTierCapOverHTTP(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	cookie := ts.SignIn(t, user)

	for i := 0; i < 3; i++ {
		createCollection(t, ts, cookie, fmt.Sprintf("Collection %d", i+1))
	}

	denied := postJSON(t, ts.APIURL("/vault/collections"), map[string]string{"title": "Fourth"}, cookie)
	defer denied.Body.Close()
	testutil.AssertUpgradeRequired(t, denied, "COLLECTION_LIMIT_REACHED")
}

func TestVault_ListAndDelete(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	cookie := ts.SignIn(t, user)

	id := createCollection(t, ts, cookie, "Comp Plan Ideas")

	listResp := getWithCookies(t, ts.APIURL("/vault/collections"), cookie)
	testutil.AssertStatusCode(t, listResp, http.StatusOK)

	var list struct {
		Collections []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"collections"`
	}
	testutil.AssertJSONResponse(t, listResp, &list)
	listResp.Body.Close()
	require.Len(t, list.Collections, 1)
	assert.Equal(t, "Comp Plan Ideas", list.Collections[0].Title)

	req, err := http.NewRequest(http.MethodDelete, ts.APIURL("/vault/collections/"+id), nil)
	require.NoError(t, err)
	req.AddCookie(cookie)
	delResp, err := noRedirectClient.Do(req)
	require.NoError(t, err)
	defer delResp.Body.Close()
	testutil.AssertStatusCode(t, delResp, http.StatusOK)

	emptyResp := getWithCookies(t, ts.APIURL("/vault/collections"), cookie)
	defer emptyResp.Body.Close()
	var empty struct {
		Collections []struct{} `json:"collections"`
	}
	testutil.AssertJSONResponse(t, emptyResp, &empty)
	assert.Empty(t, empty.Collections)
}

func TestVault_DeleteSomeoneElsesCollection(t *testing.T) {
	ts := testutil.NewTestServer(t)

	owner := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	ownerCookie := ts.SignIn(t, owner)
	id := createCollection(t, ts, ownerCookie, "Owner Only")

	intruder := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	intruderCookie := ts.SignIn(t, intruder)

	req, err := http.NewRequest(http.MethodDelete, ts.APIURL("/vault/collections/"+id), nil)
	require.NoError(t, err)
	req.AddCookie(intruderCookie)
	resp, err := noRedirectClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// Not 403: another user's collection looks like a missing one.
	testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Collection not found")
}

func TestVault_SaveCounselOverHTTP(t *testing.T) {
	ts := testutil.NewTestServer(t)

	counsel := &domain.Counsel{
		ID:        uuid.New(),
		Slug:      "pay-mix-by-role",
		Title:     "Pay Mix by Role",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, ts.Repos.Counsel.Create(context.Background(), counsel))

	user := testutil.NewUserBuilder().WithTier(domain.TierSparcc).Build(t, ts.DB.DB)
	cookie := ts.SignIn(t, user)
	id := createCollection(t, ts, cookie, "Role Design")

	// Anonymous save is rejected.
	anon := postJSON(t, ts.APIURL("/counsel/pay-mix-by-role/save"), map[string]string{"collectionId": id})
	anon.Body.Close()
	testutil.AssertStatusCode(t, anon, http.StatusUnauthorized)

	resp := postJSON(t, ts.APIURL("/counsel/pay-mix-by-role/save"), map[string]string{"collectionId": id}, cookie)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var saved struct {
		Item struct {
			CollectionID string `json:"collectionId"`
			Counsel      *struct {
				Slug string `json:"slug"`
			} `json:"counsel"`
		} `json:"item"`
	}
	testutil.AssertJSONResponse(t, resp, &saved)
	resp.Body.Close()
	assert.Equal(t, id, saved.Item.CollectionID)
	require.NotNil(t, saved.Item.Counsel)
	assert.Equal(t, "pay-mix-by-role", saved.Item.Counsel.Slug)

	// The collection now lists its content.
	listResp := getWithCookies(t, ts.APIURL("/vault/collections"), cookie)
	var list struct {
		Collections []struct {
			Items []struct {
				Counsel struct {
					Slug string `json:"slug"`
				} `json:"counsel"`
			} `json:"items"`
		} `json:"collections"`
	}
	testutil.AssertJSONResponse(t, listResp, &list)
	listResp.Body.Close()
	require.Len(t, list.Collections, 1)
	require.Len(t, list.Collections[0].Items, 1)
	assert.Equal(t, "pay-mix-by-role", list.Collections[0].Items[0].Counsel.Slug)

	// And the export carries it too.
	exportResp := getWithCookies(t, ts.APIURL("/vault/collections/"+id+"/export"), cookie)
	defer exportResp.Body.Close()
	testutil.AssertStatusCode(t, exportResp, http.StatusOK)

	var export struct {
		Collection struct {
			Items []struct {
				Counsel struct {
					Slug string `json:"slug"`
				} `json:"counsel"`
			} `json:"items"`
		} `json:"collection"`
	}
	testutil.AssertJSONResponse(t, exportResp, &export)
	require.Len(t, export.Collection.Items, 1)
	assert.Equal(t, "pay-mix-by-role", export.Collection.Items[0].Counsel.Slug)

	unknown := postJSON(t, ts.APIURL("/counsel/no-such-slug/save"), map[string]string{"collectionId": id}, cookie)
	defer unknown.Body.Close()
	testutil.AssertErrorResponse(t, unknown, http.StatusNotFound, "Counsel not found")
}

func TestVault_ExportGatedByTier(t *testing.T) {
	ts := testutil.NewTestServer(t)

	free := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	freeCookie := ts.SignIn(t, free)
	freeID := createCollection(t, ts, freeCookie, "Free Tier Notes")

	denied := getWithCookies(t, ts.APIURL("/vault/collections/"+freeID+"/export"), freeCookie)
	defer denied.Body.Close()
	testutil.AssertUpgradeRequired(t, denied, "UPGRADE_REQUIRED")

	sparcc := testutil.NewUserBuilder().WithTier(domain.TierSparcc).Build(t, ts.DB.DB)
	sparccCookie := ts.SignIn(t, sparcc)
	sparccID := createCollection(t, ts, sparccCookie, "Member Notes")

	resp := getWithCookies(t, ts.APIURL("/vault/collections/"+sparccID+"/export"), sparccCookie)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var export struct {
		Collection struct {
			Title string `json:"title"`
		} `json:"collection"`
		ExportedAt string `json:"exportedAt"`
	}
	testutil.AssertJSONResponse(t, resp, &export)
	assert.Equal(t, "Member Notes", export.Collection.Title)
	assert.NotEmpty(t, export.ExportedAt)
}
