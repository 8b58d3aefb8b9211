package slot

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ManuelV2/Ing-software-grupo-13/cmd/models"
	"github.com/ManuelV2/Ing-software-grupo-13/cmd/utils"
	"github.com/gorilla/mux"
	"github.com/lib/pq"
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
		t.Fatalf("opening test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.AvailableSlot{}, &models.Appointment{}); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

type browseResponse struct {
	WeekNumber int          `json:"week_number"`
	Year       int          `json:"year"`
	Slots      []SlotStatus `json:"slots"`
}

func browseSlots(t *testing.T, db *gorm.DB) browseResponse {
	t.Helper()
	router := mux.NewRouter()
	NewSlotHandler(db).RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodGet, "/slots", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("browse: got %d: %s", rec.Code, rec.Body.String())
	}

	var resp browseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding browse response: %v", err)
	}
	return resp
}

func seedBrowseFixture(t *testing.T, db *gorm.DB, status string) models.AvailableSlot {
	t.Helper()
	professor := models.User{Username: "prof-garcia", Email: "garcia@uni.edu", PasswordHash: "x", Role: models.RoleProfessor}
	student := models.User{Username: "alice", Email: "alice@uni.edu", PasswordHash: "x", Role: models.RoleStudent}
	for _, u := range []*models.User{&professor, &student} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("seeding user: %v", err)
		}
	}

	slot := models.AvailableSlot{
		ProfessorID:     professor.ID,
		Day:             "Tuesday",
		StartTime:       "11:00",
		DurationMinutes: 30,
		Modalities:      pq.StringArray{models.ModalityOnline},
	}
	if err := db.Create(&slot).Error; err != nil {
		t.Fatalf("seeding slot: %v", err)
	}

	now := time.Now()
	appointment := models.Appointment{
		SlotID:          slot.ID,
		StudentID:       student.ID,
		ProfessorID:     professor.ID,
		Day:             slot.Day,
		StartTime:       slot.StartTime,
		DurationMinutes: slot.DurationMinutes,
		Modality:        models.ModalityOnline,
		Status:          status,
		WeekNumber:      utils.WeekNumber(now),
		Year:            utils.WeekYear(now),
	}
	if err := db.Create(&appointment).Error; err != nil {
		t.Fatalf("seeding appointment: %v", err)
	}
	return slot
}

// A cancelled appointment releases its slot: browsing must show it as
// available again, reading state straight from the database.
func TestBrowseSlotsCancelledBookingFreesSlot(t *testing.T) {
	db := newTestDB(t)
	slot := seedBrowseFixture(t, db, models.StatusCancelled)

	resp := browseSlots(t, db)
	if len(resp.Slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(resp.Slots))
	}
	got := resp.Slots[0]
	if got.ID != slot.ID {
		t.Fatalf("unexpected slot %d in response", got.ID)
	}
	if got.IsUnavailable || got.BookedByOthers || got.IsBooked {
		t.Errorf("cancelled booking must not block the slot, got flags %+v", got)
	}
}

func TestBrowseSlotsConfirmedBookingBlocksSlot(t *testing.T) {
	db := newTestDB(t)
	seedBrowseFixture(t, db, models.StatusConfirmed)

	resp := browseSlots(t, db)
	if len(resp.Slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(resp.Slots))
	}
	got := resp.Slots[0]
	if !got.IsUnavailable || !got.BookedByOthers {
		t.Errorf("confirmed booking must block the slot for an anonymous viewer, got flags %+v", got)
	}
	if got.IsBooked {
		t.Error("anonymous viewer can never own a booking")
	}
}
