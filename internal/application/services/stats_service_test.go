package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kafelab/coffee-lab-backend/internal/domain/entities"
	apperrors "github.com/kafelab/coffee-lab-backend/pkg/errors"
)

func newStatsFixture(records []*entities.UserRecord, catalog []*entities.CoffeeBean, unlocks []*entities.UserAchievement) *StatsService {
	return NewStatsService(
		&fakeRecordRepo{records: records},
		&fakeCoffeeRepo{coffees: catalog},
		&fakeUnlockRepo{unlocks: unlocks},
	)
}

func TestUserStats_EmptyActivity(t *testing.T) {
	svc := newStatsFixture(nil, nil, nil)

	stats, err := svc.UserStats(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Zero(t, stats.TotalRecords)
	assert.Zero(t, stats.UniqueCoffees)
	assert.Empty(t, stats.FavoriteOrigin)
	assert.Empty(t, stats.TopFlavors)
	assert.Empty(t, stats.ProcessBreakdown)
}

func TestUserStats_Aggregates(t *testing.T) {
	ethiopia := testCoffee("Yirgacheffe", "Ethiopia", func(c *entities.CoffeeBean) {
		c.Variety = "Heirloom"
		c.FlavorNotes = []string{"floral", "citrus"}
	})
	kenya := testCoffee("Nyeri AA", "Kenya", func(c *entities.CoffeeBean) {
		c.Variety = "SL28"
		c.Process = entities.ProcessNatural
		c.FlavorNotes = []string{"blackcurrant", "citrus"}
	})

	records := []*entities.UserRecord{
		testRecord("user-1", ethiopia, func(r *entities.UserRecord) { r.Rating = intPtr(5) }),
		testRecord("user-1", ethiopia, func(r *entities.UserRecord) { r.Rating = intPtr(4) }),
		testRecord("user-1", kenya, func(r *entities.UserRecord) { r.Rating = intPtr(5) }),
		testRecord("user-2", kenya), // other user, excluded
	}
	unlocks := []*entities.UserAchievement{
		{ID: "ua-1", UserID: "user-1", AchievementID: "a-1", UnlockedAt: time.Now()},
	}

	svc := newStatsFixture(records, []*entities.CoffeeBean{ethiopia, kenya}, unlocks)
	stats, err := svc.UserStats(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalRecords)
	assert.Equal(t, 2, stats.UniqueCoffees)
	assert.Equal(t, 2, stats.UniqueOrigins)
	assert.Equal(t, 2, stats.UniqueVarieties)
	assert.Equal(t, 1, stats.AchievementsUnlocked)
	assert.Equal(t, "Ethiopia", stats.FavoriteOrigin)

	// citrus appears in both liked coffees, so it ranks first
	require.NotEmpty(t, stats.TopFlavors)
	assert.Equal(t, "citrus", stats.TopFlavors[0].Flavor)
	assert.Equal(t, 3, stats.TopFlavors[0].Count)

	require.Len(t, stats.ProcessBreakdown, 2)
	assert.Equal(t, entities.ProcessWashed, stats.ProcessBreakdown[0].Process)
	assert.Equal(t, 2, stats.ProcessBreakdown[0].Count)
}

func TestUserStats_FavoriteOriginTieKeepsFirstEncountered(t *testing.T) {
	ethiopia := testCoffee("Yirgacheffe", "Ethiopia")
	kenya := testCoffee("Nyeri AA", "Kenya")

	svc := newStatsFixture([]*entities.UserRecord{
		testRecord("user-1", ethiopia),
		testRecord("user-1", kenya),
	}, nil, nil)

	stats, err := svc.UserStats(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Ethiopia", stats.FavoriteOrigin)
}

func TestUserStats_LowRatedFlavorsExcluded(t *testing.T) {
	coffee := testCoffee("Santos", "Brazil", func(c *entities.CoffeeBean) {
		c.FlavorNotes = []string{"chocolate"}
	})
	svc := newStatsFixture([]*entities.UserRecord{
		testRecord("user-1", coffee, func(r *entities.UserRecord) { r.Rating = intPtr(2) }),
	}, nil, nil)

	stats, err := svc.UserStats(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, stats.TopFlavors)
}

func TestRecommendations_FlavorMatched(t *testing.T) {
	liked := testCoffee("Gedeb", "Ethiopia", func(c *entities.CoffeeBean) {
		c.FlavorNotes = []string{"floral", "peach"}
	})
	floralCandidate := testCoffee("Guji", "Ethiopia", func(c *entities.CoffeeBean) {
		c.FlavorNotes = []string{"floral"}
	})
	chocolateCandidate := testCoffee("Santos", "Brazil", func(c *entities.CoffeeBean) {
		c.FlavorNotes = []string{"chocolate"}
	})

	svc := newStatsFixture(
		[]*entities.UserRecord{
			testRecord("user-1", liked, func(r *entities.UserRecord) { r.Rating = intPtr(5) }),
		},
		[]*entities.CoffeeBean{liked, floralCandidate, chocolateCandidate},
		nil,
	)

	recs, err := svc.Recommendations(context.Background(), "user-1", 5)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, floralCandidate.ID, recs[0].ID)
}

func TestRecommendations_ExcludesRecordedCoffees(t *testing.T) {
	recorded := testCoffee("Gedeb", "Ethiopia", func(c *entities.CoffeeBean) {
		c.FlavorNotes = []string{"floral"}
	})
	svc := newStatsFixture(
		[]*entities.UserRecord{
			testRecord("user-1", recorded, func(r *entities.UserRecord) { r.Rating = intPtr(5) }),
		},
		[]*entities.CoffeeBean{recorded},
		nil,
	)

	recs, err := svc.Recommendations(context.Background(), "user-1", 5)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRecommendations_NoPreferencesFallsBackToRandom(t *testing.T) {
	catalog := []*entities.CoffeeBean{
		testCoffee("Gedeb", "Ethiopia"),
		testCoffee("Guji", "Ethiopia"),
		testCoffee("Santos", "Brazil"),
	}
	svc := newStatsFixture(nil, catalog, nil)

	recs, err := svc.Recommendations(context.Background(), "user-1", 2)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestRecommendations_LimitDefaultsWhenNonPositive(t *testing.T) {
	var catalog []*entities.CoffeeBean
	for i := 0; i < 10; i++ {
		catalog = append(catalog, testCoffee("Lot", "Kenya"))
	}
	svc := newStatsFixture(nil, catalog, nil)

	recs, err := svc.Recommendations(context.Background(), "user-1", 0)
	require.NoError(t, err)
	assert.Len(t, recs, defaultRecommendationLimit)
}

func TestYearlySummary_NoRecordsIsNotFound(t *testing.T) {
	svc := newStatsFixture(nil, nil, nil)

	_, err := svc.YearlySummary(context.Background(), "user-1", 2025)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestYearlySummary_ScopesToYear(t *testing.T) {
	ethiopia := testCoffee("Yirgacheffe", "Ethiopia")
	kenya := testCoffee("Nyeri AA", "Kenya")

	thisYear := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	lastYear := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	records := []*entities.UserRecord{
		testRecord("user-1", ethiopia, func(r *entities.UserRecord) { r.CreatedAt = thisYear }),
		testRecord("user-1", ethiopia, func(r *entities.UserRecord) { r.CreatedAt = thisYear }),
		testRecord("user-1", kenya, func(r *entities.UserRecord) { r.CreatedAt = lastYear }),
	}
	unlocks := []*entities.UserAchievement{
		{ID: "ua-1", UserID: "user-1", AchievementID: "a-1", UnlockedAt: thisYear},
		{ID: "ua-2", UserID: "user-1", AchievementID: "a-2", UnlockedAt: lastYear},
	}

	svc := newStatsFixture(records, []*entities.CoffeeBean{ethiopia, kenya}, unlocks)
	summary, err := svc.YearlySummary(context.Background(), "user-1", 2025)
	require.NoError(t, err)

	assert.Equal(t, 2025, summary.Year)
	assert.Equal(t, 2, summary.TotalRecords)
	assert.Equal(t, 1, summary.UniqueCoffees)
	assert.Equal(t, 1, summary.UniqueOrigins)
	assert.Equal(t, 1, summary.AchievementsUnlocked)
	assert.Equal(t, "Ethiopia", summary.FavoriteOrigin)
	assert.LessOrEqual(t, len(summary.RecommendedCoffees), 3)
}
