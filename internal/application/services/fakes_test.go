package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kafelab/coffee-lab-backend/internal/domain/entities"
	"github.com/kafelab/coffee-lab-backend/internal/domain/providers"
	"github.com/kafelab/coffee-lab-backend/internal/domain/repositories"
	apperrors "github.com/kafelab/coffee-lab-backend/pkg/errors"
)

// fakeOCRProvider returns a canned result or error and counts calls
type fakeOCRProvider struct {
	text       string
	confidence float64
	err        error
	calls      int
}

func (f *fakeOCRProvider) Recognize(ctx context.Context, image []byte) (*providers.OCRResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &providers.OCRResult{Text: f.text, Confidence: f.confidence}, nil
}

// fakeCoffeeRepo serves a fixed catalog from memory
type fakeCoffeeRepo struct {
	coffees []*entities.CoffeeBean
	listErr error
}

func (f *fakeCoffeeRepo) Create(ctx context.Context, coffee *entities.CoffeeBean) error {
	f.coffees = append(f.coffees, coffee)
	return nil
}

func (f *fakeCoffeeRepo) Update(ctx context.Context, coffee *entities.CoffeeBean) error {
	for i, c := range f.coffees {
		if c.ID == coffee.ID {
			f.coffees[i] = coffee
			return nil
		}
	}
	return apperrors.NewNotFoundError("coffee not found")
}

func (f *fakeCoffeeRepo) GetByID(ctx context.Context, id string) (*entities.CoffeeBean, error) {
	for _, c := range f.coffees {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, apperrors.NewNotFoundError("coffee not found")
}

func (f *fakeCoffeeRepo) GetByIDs(ctx context.Context, ids []string) ([]*entities.CoffeeBean, error) {
	var result []*entities.CoffeeBean
	for _, id := range ids {
		if c, err := f.GetByID(ctx, id); err == nil {
			result = append(result, c)
		}
	}
	return result, nil
}

func (f *fakeCoffeeRepo) ListActive(ctx context.Context) ([]*entities.CoffeeBean, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var active []*entities.CoffeeBean
	for _, c := range f.coffees {
		if c.IsActive {
			active = append(active, c)
		}
	}
	return active, nil
}

func (f *fakeCoffeeRepo) List(ctx context.Context, filter repositories.CoffeeFilter) ([]*entities.CoffeeBean, error) {
	return f.coffees, nil
}

// fakeOCRCacheRepo keys entries by image hash
type fakeOCRCacheRepo struct {
	entries   map[string]*entities.OCRCacheEntry
	upserts   int
	getErr    error
	upsertErr error
}

func newFakeOCRCacheRepo() *fakeOCRCacheRepo {
	return &fakeOCRCacheRepo{entries: make(map[string]*entities.OCRCacheEntry)}
}

func (f *fakeOCRCacheRepo) GetByHash(ctx context.Context, imageHash string) (*entities.OCRCacheEntry, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if entry, ok := f.entries[imageHash]; ok {
		return entry, nil
	}
	return nil, apperrors.NewNotFoundError("cache entry not found")
}

func (f *fakeOCRCacheRepo) Upsert(ctx context.Context, entry *entities.OCRCacheEntry) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts++
	f.entries[entry.ImageHash] = entry
	return nil
}

// fakeAchievementRepo serves a fixed achievement catalog
type fakeAchievementRepo struct {
	achievements []*entities.Achievement
}

func (f *fakeAchievementRepo) Create(ctx context.Context, a *entities.Achievement) error {
	f.achievements = append(f.achievements, a)
	return nil
}

func (f *fakeAchievementRepo) GetByID(ctx context.Context, id string) (*entities.Achievement, error) {
	for _, a := range f.achievements {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, apperrors.NewNotFoundError("achievement not found")
}

func (f *fakeAchievementRepo) ListActive(ctx context.Context) ([]*entities.Achievement, error) {
	var active []*entities.Achievement
	for _, a := range f.achievements {
		if a.IsActive {
			active = append(active, a)
		}
	}
	return active, nil
}

// fakeUnlockRepo stores unlocks in memory with unique (user, achievement)
type fakeUnlockRepo struct {
	unlocks []*entities.UserAchievement
}

func (f *fakeUnlockRepo) Insert(ctx context.Context, ua *entities.UserAchievement) (bool, error) {
	for _, existing := range f.unlocks {
		if existing.UserID == ua.UserID && existing.AchievementID == ua.AchievementID {
			return false, nil
		}
	}
	f.unlocks = append(f.unlocks, ua)
	return true, nil
}

func (f *fakeUnlockRepo) ListAchievementIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	for _, ua := range f.unlocks {
		if ua.UserID == userID {
			ids = append(ids, ua.AchievementID)
		}
	}
	return ids, nil
}

func (f *fakeUnlockRepo) ListByUser(ctx context.Context, userID string) ([]*entities.UserAchievement, error) {
	var result []*entities.UserAchievement
	for _, ua := range f.unlocks {
		if ua.UserID == userID {
			result = append(result, ua)
		}
	}
	return result, nil
}

func (f *fakeUnlockRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	ids, _ := f.ListAchievementIDs(ctx, userID)
	return len(ids), nil
}

func (f *fakeUnlockRepo) CountByUserAndYear(ctx context.Context, userID string, year int) (int, error) {
	count := 0
	for _, ua := range f.unlocks {
		if ua.UserID == userID && ua.UnlockedAt.Year() == year {
			count++
		}
	}
	return count, nil
}

// fakeRecordRepo serves a fixed activity log
type fakeRecordRepo struct {
	records []*entities.UserRecord
}

func (f *fakeRecordRepo) Create(ctx context.Context, record *entities.UserRecord) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fakeRecordRepo) GetByID(ctx context.Context, id string) (*entities.UserRecord, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, apperrors.NewNotFoundError("record not found")
}

func (f *fakeRecordRepo) ListByUser(ctx context.Context, userID string) ([]*entities.UserRecord, error) {
	var result []*entities.UserRecord
	for _, r := range f.records {
		if r.UserID == userID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeRecordRepo) ListByUserAndYear(ctx context.Context, userID string, year int) ([]*entities.UserRecord, error) {
	var result []*entities.UserRecord
	for _, r := range f.records {
		if r.UserID == userID && r.CreatedAt.Year() == year {
			result = append(result, r)
		}
	}
	return result, nil
}

var testCoffeeSeq int

// testCoffee builds an active catalog entry with sensible defaults
func testCoffee(name, originName string, mutate ...func(*entities.CoffeeBean)) *entities.CoffeeBean {
	testCoffeeSeq++
	coffee := &entities.CoffeeBean{
		ID:         fmt.Sprintf("coffee-%d", testCoffeeSeq),
		Name:       name,
		OriginID:   "origin-" + originName,
		OriginName: originName,
		Process:    entities.ProcessWashed,
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	}
	for _, m := range mutate {
		m(coffee)
	}
	return coffee
}

var testRecordSeq int

// testRecord builds an activity record pointing at a catalog entry
func testRecord(userID string, coffee *entities.CoffeeBean, mutate ...func(*entities.UserRecord)) *entities.UserRecord {
	testRecordSeq++
	record := &entities.UserRecord{
		ID:           fmt.Sprintf("record-%d", testRecordSeq),
		UserID:       userID,
		CoffeeBeanID: coffee.ID,
		CoffeeBean:   coffee,
		CheckinType:  entities.CheckinTaste,
		CreatedAt:    time.Now().UTC(),
	}
	for _, m := range mutate {
		m(record)
	}
	return record
}

func intPtr(v int) *int { return &v }
