package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kafelab/coffee-lab-backend/internal/domain/entities"
)

var testAchievementSeq int

func testAchievement(condition entities.Condition) *entities.Achievement {
	testAchievementSeq++
	return &entities.Achievement{
		ID:        fmt.Sprintf("achievement-%d", testAchievementSeq),
		Name:      fmt.Sprintf("Achievement %d", testAchievementSeq),
		Category:  entities.CategoryCount,
		Rarity:    entities.RarityCommon,
		Condition: condition,
		IsActive:  true,
	}
}

func newAchievementFixture(achievements []*entities.Achievement, records []*entities.UserRecord) (*AchievementService, *fakeUnlockRepo) {
	unlockRepo := &fakeUnlockRepo{}
	svc := NewAchievementService(
		&fakeAchievementRepo{achievements: achievements},
		unlockRepo,
		&fakeRecordRepo{records: records},
		nil,
	)
	return svc, unlockRepo
}

func TestCheckAchievements_UnlockIsIdempotent(t *testing.T) {
	coffee := testCoffee("Yirgacheffe", "Ethiopia")
	achievement := testAchievement(entities.Condition{Kind: entities.ConditionRecordCount, Count: 1})
	svc, unlockRepo := newAchievementFixture(
		[]*entities.Achievement{achievement},
		[]*entities.UserRecord{testRecord("user-1", coffee)},
	)

	first, err := svc.CheckAchievements(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, achievement.ID, first[0].ID)

	second, err := svc.CheckAchievements(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.Len(t, unlockRepo.unlocks, 1)
}

func TestCheckAchievements_OriginCountThreshold(t *testing.T) {
	ethiopia := testCoffee("Yirgacheffe", "Ethiopia")
	kenya := testCoffee("Nyeri AA", "Kenya")
	brazil := testCoffee("Santos", "Brazil")
	achievement := testAchievement(entities.Condition{Kind: entities.ConditionOriginCount, Count: 3})

	svc, _ := newAchievementFixture(
		[]*entities.Achievement{achievement},
		[]*entities.UserRecord{
			testRecord("user-1", ethiopia),
			testRecord("user-1", kenya),
			testRecord("user-1", ethiopia), // repeat origin does not add
		},
	)

	unlocked, err := svc.CheckAchievements(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, unlocked)

	svc2, _ := newAchievementFixture(
		[]*entities.Achievement{achievement},
		[]*entities.UserRecord{
			testRecord("user-1", ethiopia),
			testRecord("user-1", kenya),
			testRecord("user-1", brazil),
		},
	)
	unlocked, err = svc2.CheckAchievements(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, unlocked, 1)
}

func TestCheckAchievements_RatingCountDefaultFloor(t *testing.T) {
	coffee := testCoffee("Yirgacheffe", "Ethiopia")
	achievement := testAchievement(entities.Condition{
		Kind:      entities.ConditionRatingCount,
		Count:     2,
		MinRating: entities.DefaultMinRating,
	})

	svc, _ := newAchievementFixture(
		[]*entities.Achievement{achievement},
		[]*entities.UserRecord{
			testRecord("user-1", coffee, func(r *entities.UserRecord) { r.Rating = intPtr(5) }),
			testRecord("user-1", coffee, func(r *entities.UserRecord) { r.Rating = intPtr(3) }),
			testRecord("user-1", coffee, func(r *entities.UserRecord) { r.Rating = intPtr(4) }),
			testRecord("user-1", coffee), // unrated
		},
	)

	unlocked, err := svc.CheckAchievements(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, unlocked, 1)
}

func TestCheckAchievements_FlavorExplorerRequiresAllFlavors(t *testing.T) {
	floral := testCoffee("Gedeb", "Ethiopia", func(c *entities.CoffeeBean) {
		c.FlavorNotes = []string{"floral", "lemon"}
	})
	chocolate := testCoffee("Santos", "Brazil", func(c *entities.CoffeeBean) {
		c.FlavorNotes = []string{"chocolate"}
	})
	achievement := testAchievement(entities.Condition{
		Kind:   entities.ConditionFlavorExplorer,
		Values: []string{"floral", "chocolate", "berry"},
	})

	svc, _ := newAchievementFixture(
		[]*entities.Achievement{achievement},
		[]*entities.UserRecord{
			testRecord("user-1", floral),
			testRecord("user-1", chocolate),
		},
	)
	unlocked, err := svc.CheckAchievements(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, unlocked, "missing berry")

	berry := testCoffee("Guji Natural", "Ethiopia", func(c *entities.CoffeeBean) {
		c.FlavorNotes = []string{"berry"}
	})
	svc2, _ := newAchievementFixture(
		[]*entities.Achievement{achievement},
		[]*entities.UserRecord{
			testRecord("user-1", floral),
			testRecord("user-1", chocolate),
			testRecord("user-1", berry),
		},
	)
	unlocked, err = svc2.CheckAchievements(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, unlocked, 1)
}

func TestCheckAchievements_FlavorExplorerEmptyTargetStaysLocked(t *testing.T) {
	coffee := testCoffee("Gedeb", "Ethiopia", func(c *entities.CoffeeBean) {
		c.FlavorNotes = []string{"floral", "lemon"}
	})
	achievement := testAchievement(entities.Condition{
		Kind: entities.ConditionFlavorExplorer,
	})

	svc, _ := newAchievementFixture(
		[]*entities.Achievement{achievement},
		[]*entities.UserRecord{testRecord("user-1", coffee)},
	)

	unlocked, err := svc.CheckAchievements(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, unlocked)
}

func TestCheckAchievements_SpecificVarietyIsCaseInsensitiveContains(t *testing.T) {
	geisha := testCoffee("Esmeralda", "Panama", func(c *entities.CoffeeBean) {
		c.Variety = "Green-Tip Geisha"
	})
	achievement := testAchievement(entities.Condition{
		Kind:   entities.ConditionSpecificVariety,
		Values: []string{"geisha"},
	})

	svc, _ := newAchievementFixture(
		[]*entities.Achievement{achievement},
		[]*entities.UserRecord{testRecord("user-1", geisha)},
	)
	unlocked, err := svc.CheckAchievements(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, unlocked, 1)
}

func TestCheckAchievements_HighAltitude(t *testing.T) {
	high := testCoffee("Sky Lot", "Colombia", func(c *entities.CoffeeBean) {
		c.AltitudeMin = intPtr(2000)
	})
	achievement := testAchievement(entities.Condition{Kind: entities.ConditionHighAltitude, Count: 1800})

	svc, _ := newAchievementFixture(
		[]*entities.Achievement{achievement},
		[]*entities.UserRecord{testRecord("user-1", high)},
	)
	unlocked, err := svc.CheckAchievements(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, unlocked, 1)
}

func TestCheckAchievements_OCRMasterCountsRecognizedRecords(t *testing.T) {
	coffee := testCoffee("Yirgacheffe", "Ethiopia")
	achievement := testAchievement(entities.Condition{Kind: entities.ConditionOCRMaster, Count: 2})

	svc, _ := newAchievementFixture(
		[]*entities.Achievement{achievement},
		[]*entities.UserRecord{
			testRecord("user-1", coffee, func(r *entities.UserRecord) { r.RecognizedByOCR = true }),
			testRecord("user-1", coffee),
			testRecord("user-1", coffee, func(r *entities.UserRecord) { r.RecognizedByOCR = true }),
		},
	)
	unlocked, err := svc.CheckAchievements(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, unlocked, 1)
}

func TestCheckAchievements_UnknownKindNeverUnlocks(t *testing.T) {
	coffee := testCoffee("Yirgacheffe", "Ethiopia")
	unknown := testAchievement(entities.Condition{Kind: "moon_phase", Count: 1})
	known := testAchievement(entities.Condition{Kind: entities.ConditionRecordCount, Count: 1})

	svc, _ := newAchievementFixture(
		[]*entities.Achievement{unknown, known},
		[]*entities.UserRecord{testRecord("user-1", coffee)},
	)

	// the unknown kind neither unlocks nor blocks the rest of the batch
	unlocked, err := svc.CheckAchievements(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, unlocked, 1)
	assert.Equal(t, known.ID, unlocked[0].ID)
}

func TestCheckAchievements_InactiveAchievementsSkipped(t *testing.T) {
	coffee := testCoffee("Yirgacheffe", "Ethiopia")
	retired := testAchievement(entities.Condition{Kind: entities.ConditionRecordCount, Count: 1})
	retired.IsActive = false

	svc, _ := newAchievementFixture(
		[]*entities.Achievement{retired},
		[]*entities.UserRecord{testRecord("user-1", coffee)},
	)
	unlocked, err := svc.CheckAchievements(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, unlocked)
}

func TestCheckAchievements_SpecificOriginExactName(t *testing.T) {
	coffee := testCoffee("Nyeri AA", "Kenya")
	achievement := testAchievement(entities.Condition{
		Kind:   entities.ConditionSpecificOrigin,
		Values: []string{"Ethiopia", "Kenya"},
	})

	svc, _ := newAchievementFixture(
		[]*entities.Achievement{achievement},
		[]*entities.UserRecord{testRecord("user-1", coffee)},
	)
	unlocked, err := svc.CheckAchievements(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, unlocked, 1)
}
