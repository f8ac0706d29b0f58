package services_test

import (
	"context"
	"testing"

	"backend/models"
	"backend/services"
)

const legacyLogs = `{
	"2024-05-01": {
		"goals": {"protein": 4},
		"meals": [{"id":"1","name":"Comida","timestamp":1,"selection":{"protein":{"meat":{"count":1,"ingredients":["Pollo"]}}}}]
	},
	"2024-05-02": {
		"goals": {"protein": 4, "carbs": 3},
		"meals": [{"id":"2","name":"Cena","timestamp":2,"selection":{"carbs":{"grains":2}}}]
	}
}`

const legacyMenus = `[
	{"id":"1715000000000","name":"Semana 1","goals":{"protein":4},"createdAt":1715000000000,
	 "meals":[{"id":"3","name":"Comida","timestamp":3,"selection":{"fats":{"nuts":{"count":1,"ingredients":["Nueces"]}}}}]}
]`

func TestMigrate_MovesEverythingAndClearsLocal(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := services.NewMemoryStore()
	svc := services.NewMigrationService(db, store, services.NewRealtimeHub())

	_ = store.Set(ctx, services.KeyDailyLogs, legacyLogs)
	_ = store.Set(ctx, services.KeySavedMenus, legacyMenus)

	pending, err := svc.HasLocalData(ctx)
	if err != nil || !pending {
		t.Fatalf("HasLocalData = %v, %v", pending, err)
	}

	count, err := svc.Migrate(ctx, 42)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if count != 3 {
		t.Errorf("migrated %d records, want 3", count)
	}

	var logCount, menuCount int64
	db.Model(&models.DailyLog{}).Where("user_id = ?", 42).Count(&logCount)
	db.Model(&models.SavedMenu{}).Where("user_id = ?", 42).Count(&menuCount)
	if logCount != 2 || menuCount != 1 {
		t.Errorf("cloud rows = %d logs, %d menus", logCount, menuCount)
	}

	var log models.DailyLog
	if err := db.Where("user_id = ? AND date = ?", 42, "2024-05-02").First(&log).Error; err != nil {
		t.Fatalf("migrated log missing: %v", err)
	}
	if log.MigratedAt == 0 {
		t.Error("migration stamp missing")
	}
	// legacy bare-count entries survive the round trip
	if got := services.CountForCategory(log.Meals, "carbs"); got != 2 {
		t.Errorf("carbs count = %d, want 2", got)
	}

	pending, _ = svc.HasLocalData(ctx)
	if pending {
		t.Error("local keys not cleared after successful migration")
	}
}

// A clear that fails after commit leaves the legacy keys populated; the
// retry must re-upload those records, not wedge on rows already written.
func TestMigrate_RetryAfterUnclearedKeysUpserts(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := services.NewMemoryStore()
	svc := services.NewMigrationService(db, store, services.NewRealtimeHub())

	_ = store.Set(ctx, services.KeyDailyLogs, legacyLogs)
	_ = store.Set(ctx, services.KeySavedMenus, legacyMenus)

	if _, err := svc.Migrate(ctx, 42); err != nil {
		t.Fatalf("first migrate: %v", err)
	}

	// keys come back as if the post-commit clear had failed
	_ = store.Set(ctx, services.KeyDailyLogs, legacyLogs)
	_ = store.Set(ctx, services.KeySavedMenus, legacyMenus)

	count, err := svc.Migrate(ctx, 42)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if count != 3 {
		t.Errorf("retry migrated %d records, want 3", count)
	}

	var logCount, menuCount int64
	db.Model(&models.DailyLog{}).Where("user_id = ?", 42).Count(&logCount)
	db.Model(&models.SavedMenu{}).Where("user_id = ?", 42).Count(&menuCount)
	if logCount != 2 || menuCount != 1 {
		t.Errorf("after retry: %d logs, %d menus, want 2 and 1", logCount, menuCount)
	}
}

// A write failure inside the batch must roll back every row, including
// logs already written earlier in the same transaction.
func TestMigrate_MidBatchFailureRollsBackEverything(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := services.NewMemoryStore()
	svc := services.NewMigrationService(db, store, services.NewRealtimeHub())

	_ = store.Set(ctx, services.KeyDailyLogs, legacyLogs)
	_ = store.Set(ctx, services.KeySavedMenus, legacyMenus)

	// logs are written before menus; losing the menus table fails the
	// batch after log rows have already gone in
	if err := db.Migrator().DropTable(&models.SavedMenu{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	if _, err := svc.Migrate(ctx, 42); err == nil {
		t.Fatal("expected migration to fail")
	}

	var logCount int64
	db.Model(&models.DailyLog{}).Count(&logCount)
	if logCount != 0 {
		t.Errorf("rollback left %d log rows behind", logCount)
	}
	pending, _ := svc.HasLocalData(ctx)
	if !pending {
		t.Error("local data cleared despite failure")
	}
}

func TestMigrate_FailureLeavesLocalDataIntact(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := services.NewMemoryStore()
	svc := services.NewMigrationService(db, store, services.NewRealtimeHub())

	_ = store.Set(ctx, services.KeyDailyLogs, legacyLogs)
	_ = store.Set(ctx, services.KeySavedMenus, `{not valid json`)

	if _, err := svc.Migrate(ctx, 42); err == nil {
		t.Fatal("expected migration to fail on unreadable menus")
	}

	// nothing committed, nothing cleared
	var logCount int64
	db.Model(&models.DailyLog{}).Count(&logCount)
	if logCount != 0 {
		t.Errorf("partial cloud writes: %d logs", logCount)
	}
	pending, _ := svc.HasLocalData(ctx)
	if !pending {
		t.Error("local data cleared despite failure")
	}
}

func TestMigrate_NoLocalDataIsNoop(t *testing.T) {
	ctx := context.Background()
	svc := services.NewMigrationService(newTestDB(t), services.NewMemoryStore(), services.NewRealtimeHub())

	count, err := svc.Migrate(ctx, 42)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}

func TestMigrate_FoldsProfileKeysIntoUser(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := services.NewMemoryStore()
	svc := services.NewMigrationService(db, store, services.NewRealtimeHub())

	user := models.User{Email: "ana@example.com", Password: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	_ = store.Set(ctx, services.KeyDailyLogs, legacyLogs)
	_ = store.Set(ctx, services.KeyUserTargets, `{"protein":5,"color":3}`)
	_ = store.Set(ctx, services.KeyUserGoals, `{"protein":5}`)
	_ = store.Set(ctx, services.KeyOnboardingKey, "true")

	if _, err := svc.Migrate(ctx, user.ID); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	var got models.User
	if err := db.First(&got, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if got.Targets["protein"] != 5 || got.Targets["color"] != 3 {
		t.Errorf("targets = %v", got.Targets)
	}
	if !got.Onboarded {
		t.Error("onboarding flag not folded into the profile")
	}

	for _, key := range []string{services.KeyUserTargets, services.KeyUserGoals, services.KeyOnboardingKey} {
		if ok, _ := store.Exists(ctx, key); ok {
			t.Errorf("key %q not cleared", key)
		}
	}
}

func TestMigrate_UnauthenticatedIsNoop(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := services.NewMemoryStore()
	svc := services.NewMigrationService(db, store, services.NewRealtimeHub())

	_ = store.Set(ctx, services.KeyDailyLogs, legacyLogs)

	count, err := svc.Migrate(ctx, 0)
	if err != nil || count != 0 {
		t.Fatalf("Migrate(0) = %d, %v", count, err)
	}
	pending, _ := svc.HasLocalData(ctx)
	if !pending {
		t.Error("local data should remain for unauthenticated users")
	}
}
