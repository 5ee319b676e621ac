package reminders

import (
	"testing"
	"time"

	"github.com/alertdeck-dev/alertdeck/internal/models"
	"github.com/alertdeck-dev/alertdeck/internal/testdb"
	"github.com/alertdeck-dev/alertdeck/internal/types"
	"gorm.io/gorm"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func seedUser(t *testing.T, db *gorm.DB, email string, teamID *uint) models.User {
	t.Helper()

	user := models.User{Email: email, PasswordHash: "x", TeamID: teamID}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}
	return user
}

func seedAlert(t *testing.T, db *gorm.DB, alert models.Alert) models.Alert {
	t.Helper()

	if alert.Severity == "" {
		alert.Severity = types.SeverityInfo
	}
	if alert.Title == "" {
		alert.Title = "Quarterly audit"
		alert.MessageBody = "Submit your reports"
	}
	if alert.StartTime.IsZero() {
		alert.StartTime = testNow.Add(-time.Hour)
	}
	alert.ReminderEnabled = true
	if err := db.Create(&alert).Error; err != nil {
		t.Fatalf("failed to seed alert: %v", err)
	}
	return alert
}

func setStatus(t *testing.T, db *gorm.DB, userID, alertID uint, state string, snoozedUntil *time.Time) {
	t.Helper()

	record := models.UserAlertStatus{
		UserID:       userID,
		AlertID:      alertID,
		Status:       state,
		SnoozedUntil: snoozedUntil,
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("failed to seed status row: %v", err)
	}
}

func pairIDs(candidates []Candidate) [][2]uint {
	pairs := make([][2]uint, 0, len(candidates))
	for _, c := range candidates {
		pairs = append(pairs, [2]uint{c.User.ID, c.Alert.ID})
	}
	return pairs
}

func TestCandidatesOrgWideNoStatusRecords(t *testing.T) {
	db := testdb.Open(t)

	u1 := seedUser(t, db, "u1@example.com", nil)
	u2 := seedUser(t, db, "u2@example.com", nil)
	alert := seedAlert(t, db, models.Alert{IsOrgWide: true})

	candidates, err := FindReminderCandidates(db, testNow)
	if err != nil {
		t.Fatalf("FindReminderCandidates error: %v", err)
	}

	got := pairIDs(candidates)
	want := [][2]uint{{u1.ID, alert.ID}, {u2.ID, alert.ID}}

	if len(got) != len(want) {
		t.Fatalf("candidates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("candidates = %v, want %v", got, want)
		}
	}
}

func TestCandidatesReadSuppressesPermanently(t *testing.T) {
	db := testdb.Open(t)

	u1 := seedUser(t, db, "u1@example.com", nil)
	u2 := seedUser(t, db, "u2@example.com", nil)
	alert := seedAlert(t, db, models.Alert{IsOrgWide: true})

	// READ wins even with a lapsed snooze on the row
	lapsed := testNow.Add(-time.Minute)
	setStatus(t, db, u1.ID, alert.ID, types.StatusRead, &lapsed)

	candidates, err := FindReminderCandidates(db, testNow)
	if err != nil {
		t.Fatalf("FindReminderCandidates error: %v", err)
	}

	if len(candidates) != 1 || candidates[0].User.ID != u2.ID {
		t.Fatalf("candidates = %v, want only user %d", pairIDs(candidates), u2.ID)
	}
}

func TestCandidatesExpiryBoundaryIsExclusive(t *testing.T) {
	db := testdb.Open(t)

	seedUser(t, db, "u1@example.com", nil)

	expiresNow := testNow
	seedAlert(t, db, models.Alert{IsOrgWide: true, ExpiryTime: &expiresNow})

	candidates, err := FindReminderCandidates(db, testNow)
	if err != nil {
		t.Fatalf("FindReminderCandidates error: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("alert expiring exactly at now produced candidates: %v", pairIDs(candidates))
	}

	expiresLater := testNow.Add(time.Millisecond)
	seedAlert(t, db, models.Alert{IsOrgWide: true, ExpiryTime: &expiresLater})

	candidates, err = FindReminderCandidates(db, testNow)
	if err != nil {
		t.Fatalf("FindReminderCandidates error: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("alert expiring 1ms after now produced %d candidates, want 1", len(candidates))
	}
}

func TestCandidatesSnoozeWindow(t *testing.T) {
	db := testdb.Open(t)

	u1 := seedUser(t, db, "u1@example.com", nil)
	u2 := seedUser(t, db, "u2@example.com", nil)
	alert := seedAlert(t, db, models.Alert{IsOrgWide: true})

	lapsed := testNow.Add(-time.Second)
	active := testNow.Add(time.Hour)
	setStatus(t, db, u1.ID, alert.ID, types.StatusUnread, &lapsed)
	setStatus(t, db, u2.ID, alert.ID, types.StatusUnread, &active)

	candidates, err := FindReminderCandidates(db, testNow)
	if err != nil {
		t.Fatalf("FindReminderCandidates error: %v", err)
	}

	if len(candidates) != 1 || candidates[0].User.ID != u1.ID {
		t.Fatalf("candidates = %v, want only lapsed-snooze user %d", pairIDs(candidates), u1.ID)
	}
}

func TestCandidatesSkipInactiveAlerts(t *testing.T) {
	db := testdb.Open(t)

	seedUser(t, db, "u1@example.com", nil)

	tests := []struct {
		name  string
		alert models.Alert
	}{
		{name: "archived", alert: models.Alert{IsOrgWide: true, IsArchived: true}},
		{name: "not started", alert: models.Alert{IsOrgWide: true, StartTime: testNow.Add(time.Hour)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seedAlert(t, db, tt.alert)

			candidates, err := FindReminderCandidates(db, testNow)
			if err != nil {
				t.Fatalf("FindReminderCandidates error: %v", err)
			}
			if len(candidates) != 0 {
				t.Fatalf("candidates = %v, want none", pairIDs(candidates))
			}
		})
	}
}

func TestCandidatesSkipReminderDisabled(t *testing.T) {
	db := testdb.Open(t)

	seedUser(t, db, "u1@example.com", nil)

	alert := seedAlert(t, db, models.Alert{IsOrgWide: true})
	if err := db.Model(&alert).Update("reminder_enabled", false).Error; err != nil {
		t.Fatalf("failed to disable reminders: %v", err)
	}

	candidates, err := FindReminderCandidates(db, testNow)
	if err != nil {
		t.Fatalf("FindReminderCandidates error: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("candidates = %v, want none", pairIDs(candidates))
	}
}

func TestCandidatesExplicitDefaultRecordEquivalent(t *testing.T) {
	db := testdb.Open(t)

	u1 := seedUser(t, db, "u1@example.com", nil)
	alert := seedAlert(t, db, models.Alert{IsOrgWide: true})

	before, err := FindReminderCandidates(db, testNow)
	if err != nil {
		t.Fatalf("FindReminderCandidates error: %v", err)
	}

	// Materializing the implicit {UNREAD, nil} default must not change candidacy
	setStatus(t, db, u1.ID, alert.ID, types.StatusUnread, nil)

	after, err := FindReminderCandidates(db, testNow)
	if err != nil {
		t.Fatalf("FindReminderCandidates error: %v", err)
	}

	if len(before) != 1 || len(after) != 1 {
		t.Fatalf("candidacy changed: before=%v after=%v", pairIDs(before), pairIDs(after))
	}
	if before[0].User.ID != after[0].User.ID || before[0].Alert.ID != after[0].Alert.ID {
		t.Fatalf("candidacy changed: before=%v after=%v", pairIDs(before), pairIDs(after))
	}
}

func TestCandidatesTeamTargeting(t *testing.T) {
	db := testdb.Open(t)

	team := models.Team{Name: "sre"}
	if err := db.Create(&team).Error; err != nil {
		t.Fatalf("failed to seed team: %v", err)
	}

	u3 := seedUser(t, db, "u3@example.com", &team.ID)
	seedUser(t, db, "u4@example.com", nil)

	seedAlert(t, db, models.Alert{TargetTeams: []models.Team{team}})

	candidates, err := FindReminderCandidates(db, testNow)
	if err != nil {
		t.Fatalf("FindReminderCandidates error: %v", err)
	}

	if len(candidates) != 1 || candidates[0].User.ID != u3.ID {
		t.Fatalf("candidates = %v, want only team member %d", pairIDs(candidates), u3.ID)
	}
}
