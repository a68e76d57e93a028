package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/intelligentspm/syndicate-studio/internal/domain"
	"github.com/intelligentspm/syndicate-studio/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestCounselLibrary(t *testing.T) {
	services, repos, _, _ := testutil.NewMemoryServices(t)
	ctx := context.Background()

	counsel := &domain.Counsel{
		ID:         uuid.New(),
		Slug:       "accelerators-that-backfire",
		Title:      "Accelerators That Backfire",
		OneLiner:   "When steeper curves buy less effort, not more.",
		Channel:    "COMP_DESIGN",
		Difficulty: "INTERMEDIATE",
		Tags:       datatypes.JSON(`["payout-curves","accelerators"]`),
		BodyMD:     "## The trap\n\nSteep accelerators reward sandbagging.",
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	require.NoError(t, repos.Counsel.Create(ctx, counsel))

	all, err := services.Counsel.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	found, err := services.Counsel.GetBySlug(ctx, "accelerators-that-backfire")
	require.NoError(t, err)
	assert.Equal(t, counsel.ID, found.ID)
	assert.Equal(t, "Accelerators That Backfire", found.Title)

	_, err = services.Counsel.GetBySlug(ctx, "no-such-counsel")
	assert.ErrorIs(t, err, domain.ErrCounselNotFound)
}
