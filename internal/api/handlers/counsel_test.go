package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/intelligentspm/syndicate-studio/internal/domain"
	"github.com/intelligentspm/syndicate-studio/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestCounsel_PublicLibrary(t *testing.T) {
	ts := testutil.NewTestServer(t)

	counsel := &domain.Counsel{
		ID:         uuid.New(),
		Slug:       "spiff-fatigue",
		Title:      "SPIFF Fatigue",
		OneLiner:   "Why always-on incentives stop working.",
		Channel:    "INCENTIVES",
		Difficulty: "BEGINNER",
		Tags:       datatypes.JSON(`["spiffs"]`),
		BodyMD:     "Run SPIFFs in bursts, not as a baseline.",
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	require.NoError(t, ts.Repos.Counsel.Create(context.Background(), counsel))

	// No session needed.
	listResp := getWithCookies(t, ts.APIURL("/counsel"))
	testutil.AssertStatusCode(t, listResp, http.StatusOK)

	var list struct {
		Counsel []struct {
			Slug string `json:"slug"`
		} `json:"counsel"`
	}
	testutil.AssertJSONResponse(t, listResp, &list)
	listResp.Body.Close()
	require.Len(t, list.Counsel, 1)
	assert.Equal(t, "spiff-fatigue", list.Counsel[0].Slug)

	getResp := getWithCookies(t, ts.APIURL("/counsel/spiff-fatigue"))
	defer getResp.Body.Close()
	testutil.AssertStatusCode(t, getResp, http.StatusOK)

	missing := getWithCookies(t, ts.APIURL("/counsel/no-such-slug"))
	defer missing.Body.Close()
	testutil.AssertErrorResponse(t, missing, http.StatusNotFound, "Counsel not found")
}
