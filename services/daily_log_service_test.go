package services_test

import (
	"encoding/json"
	"testing"

	"backend/models"
	"backend/services"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// a second connection to :memory: would see its own empty database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.User{}, &models.DailyLog{}, &models.SavedMenu{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testMeal(name string) models.Meal {
	return models.Meal{
		ID: models.NewMealID(), Name: name, Timestamp: 1700000000000,
		Selection: models.Selection{
			"protein": {"meat": {Count: 1, Ingredients: []string{"Pollo"}}},
		},
	}
}

func drain(t *testing.T, sub *services.Subscriber) services.LogSnapshot {
	t.Helper()
	select {
	case msg, ok := <-sub.C:
		if !ok {
			t.Fatal("subscription closed unexpectedly")
		}
		var snap services.LogSnapshot
		if err := json.Unmarshal(msg, &snap); err != nil {
			t.Fatalf("bad snapshot payload: %v", err)
		}
		return snap
	default:
		t.Fatal("no snapshot emitted")
		return services.LogSnapshot{}
	}
}

func TestDailyLog_AddSubscribeDelete(t *testing.T) {
	db := newTestDB(t)
	hub := services.NewRealtimeHub()
	svc := services.NewDailyLogService(db, hub)

	const date = "2024-05-20"

	snap, sub, err := svc.Subscribe(42, date)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer svc.Unsubscribe(sub)

	if snap.State != services.SnapshotAbsent {
		t.Fatalf("initial state = %s, want absent", snap.State)
	}

	meal := testMeal("Comida 1")
	goals := models.TargetMap{"protein": 4}
	if err := svc.AddMeal(42, date, meal, goals); err != nil {
		t.Fatalf("add meal: %v", err)
	}

	got := drain(t, sub)
	if got.State != services.SnapshotPresent {
		t.Fatalf("state after add = %s", got.State)
	}
	if len(got.Log.Meals) != 1 {
		t.Fatalf("meals = %d, want 1", len(got.Log.Meals))
	}
	if got.Log.Goals["protein"] != 4 {
		t.Errorf("goals.protein = %d, want 4", got.Log.Goals["protein"])
	}

	// removal empties the list but keeps the record
	if err := svc.DeleteMeal(42, date, meal.ID); err != nil {
		t.Fatalf("delete meal: %v", err)
	}
	got = drain(t, sub)
	if got.State != services.SnapshotPresent {
		t.Fatalf("record vanished after emptying: state = %s", got.State)
	}
	if len(got.Log.Meals) != 0 {
		t.Errorf("meals = %d, want 0", len(got.Log.Meals))
	}
	if got.Log.Goals["protein"] != 4 {
		t.Error("goals lost when meal list emptied")
	}
}

// A write racing Subscribe must be visible in the initial snapshot or
// arrive as an emission; it may show up in both, but never in neither.
func TestDailyLog_SubscribeDoesNotMissConcurrentWrite(t *testing.T) {
	const date = "2024-06-01"

	for i := 0; i < 25; i++ {
		db := newTestDB(t)
		hub := services.NewRealtimeHub()
		svc := services.NewDailyLogService(db, hub)

		done := make(chan error, 1)
		go func() {
			done <- svc.AddMeal(3, date, testMeal("Comida"), nil)
		}()

		snap, sub, err := svc.Subscribe(3, date)
		if err != nil {
			t.Fatalf("subscribe: %v", err)
		}
		if err := <-done; err != nil {
			t.Fatalf("add: %v", err)
		}

		seen := snap.State == services.SnapshotPresent && len(snap.Log.Meals) == 1
		for !seen {
			select {
			case msg := <-sub.C:
				var emitted services.LogSnapshot
				if err := json.Unmarshal(msg, &emitted); err != nil {
					t.Fatalf("bad emission: %v", err)
				}
				seen = emitted.State == services.SnapshotPresent && len(emitted.Log.Meals) == 1
			default:
				t.Fatalf("iteration %d: write visible in neither snapshot nor channel", i)
			}
		}
		svc.Unsubscribe(sub)
	}
}

func TestDailyLog_DeleteUnknownIDIsNoop(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewDailyLogService(db, services.NewRealtimeHub())

	meal := testMeal("Cena")
	if err := svc.AddMeal(1, "2024-05-21", meal, nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.DeleteMeal(1, "2024-05-21", "missing-id"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	log, err := svc.Get(1, "2024-05-21")
	if err != nil || log == nil {
		t.Fatalf("get: %v %v", log, err)
	}
	if len(log.Meals) != 1 {
		t.Errorf("meals = %d, want 1", len(log.Meals))
	}
}

func TestDailyLog_UpdateMealReplacesByID(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewDailyLogService(db, services.NewRealtimeHub())

	meal := testMeal("Comida")
	other := testMeal("Cena")
	_ = svc.AddMeal(1, "2024-05-22", meal, nil)
	_ = svc.AddMeal(1, "2024-05-22", other, nil)

	meal.Name = "Comida editada"
	meal.Selection["carbs"] = map[string]models.SelectionDetail{
		"grains": {Count: 1, Ingredients: []string{"Arroz"}},
	}
	if err := svc.UpdateMeal(1, "2024-05-22", meal); err != nil {
		t.Fatalf("update: %v", err)
	}

	log, _ := svc.Get(1, "2024-05-22")
	if log.Meals[0].Name != "Comida editada" {
		t.Errorf("first meal = %q", log.Meals[0].Name)
	}
	if log.Meals[1].Name != "Cena" {
		t.Errorf("second meal touched: %q", log.Meals[1].Name)
	}
}

func TestDailyLog_UpdateGoalsPreservesMeals(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewDailyLogService(db, services.NewRealtimeHub())

	_ = svc.AddMeal(1, "2024-05-23", testMeal("Comida"), models.TargetMap{"protein": 4})
	if err := svc.UpdateGoals(1, "2024-05-23", models.TargetMap{"protein": 5, "carbs": 3}); err != nil {
		t.Fatalf("update goals: %v", err)
	}

	log, _ := svc.Get(1, "2024-05-23")
	if len(log.Meals) != 1 {
		t.Errorf("meals = %d, want 1", len(log.Meals))
	}
	if log.Goals["protein"] != 5 || log.Goals["carbs"] != 3 {
		t.Errorf("goals = %v", log.Goals)
	}

	// goals-first writes lazily create the record too
	if err := svc.UpdateGoals(1, "2024-05-24", models.TargetMap{"fats": 2}); err != nil {
		t.Fatalf("update goals on fresh date: %v", err)
	}
	fresh, _ := svc.Get(1, "2024-05-24")
	if fresh == nil || len(fresh.Meals) != 0 {
		t.Fatalf("fresh log = %+v", fresh)
	}
}

func TestDailyLog_UnauthenticatedWritesAreNoops(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewDailyLogService(db, services.NewRealtimeHub())

	if err := svc.AddMeal(0, "2024-05-25", testMeal("Comida"), nil); err != nil {
		t.Fatalf("add: %v", err)
	}

	var count int64
	db.Model(&models.DailyLog{}).Count(&count)
	if count != 0 {
		t.Errorf("rows = %d, want 0", count)
	}
}

func TestDailyLog_HistoryNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewDailyLogService(db, services.NewRealtimeHub())

	for _, date := range []string{"2024-05-01", "2024-05-03", "2024-05-02"} {
		if err := svc.AddMeal(9, date, testMeal("Comida"), nil); err != nil {
			t.Fatalf("add %s: %v", date, err)
		}
	}

	logs, err := svc.History(9)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	want := []string{"2024-05-03", "2024-05-02", "2024-05-01"}
	if len(logs) != len(want) {
		t.Fatalf("got %d logs", len(logs))
	}
	for i, date := range want {
		if logs[i].Date != date {
			t.Errorf("logs[%d].Date = %s, want %s", i, logs[i].Date, date)
		}
	}
}
