package visibility

import (
	"testing"
	"time"

	"github.com/alertdeck-dev/alertdeck/internal/models"
	"github.com/alertdeck-dev/alertdeck/internal/testdb"
	"github.com/alertdeck-dev/alertdeck/internal/types"
	"gorm.io/gorm"
)

func seedTeam(t *testing.T, db *gorm.DB, name string) models.Team {
	t.Helper()

	team := models.Team{Name: name}
	if err := db.Create(&team).Error; err != nil {
		t.Fatalf("failed to seed team %s: %v", name, err)
	}
	return team
}

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
	if alert.StartTime.IsZero() {
		alert.StartTime = time.Now().UTC().Add(-time.Hour)
	}
	if alert.Title == "" {
		alert.Title = "Scheduled maintenance"
		alert.MessageBody = "Details inside"
	}
	if err := db.Create(&alert).Error; err != nil {
		t.Fatalf("failed to seed alert: %v", err)
	}
	return alert
}

func userIDs(users []models.User) []uint {
	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

func TestResolveOrgWide(t *testing.T) {
	db := testdb.Open(t)

	team := seedTeam(t, db, "platform")
	u1 := seedUser(t, db, "u1@example.com", &team.ID)
	u2 := seedUser(t, db, "u2@example.com", nil)
	u3 := seedUser(t, db, "u3@example.com", nil)

	// Target lists must be ignored when the alert is org-wide
	alert := seedAlert(t, db, models.Alert{
		IsOrgWide:   true,
		TargetUsers: []models.User{u2},
	})

	users, err := Resolve(db, alert)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	got := userIDs(users)
	want := []uint{u1.ID, u2.ID, u3.ID}

	if len(got) != len(want) {
		t.Fatalf("resolved %d users, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("resolved ids = %v, want %v", got, want)
		}
	}
}

func TestResolveTeamTargets(t *testing.T) {
	db := testdb.Open(t)

	team := seedTeam(t, db, "infra")
	u3 := seedUser(t, db, "u3@example.com", &team.ID)
	seedUser(t, db, "u4@example.com", nil)

	alert := seedAlert(t, db, models.Alert{
		TargetTeams: []models.Team{team},
	})

	users, err := Resolve(db, alert)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	if len(users) != 1 || users[0].ID != u3.ID {
		t.Fatalf("resolved ids = %v, want [%d]", userIDs(users), u3.ID)
	}
}

func TestResolveUserTargets(t *testing.T) {
	db := testdb.Open(t)

	seedUser(t, db, "u1@example.com", nil)
	u2 := seedUser(t, db, "u2@example.com", nil)

	alert := seedAlert(t, db, models.Alert{
		TargetUsers: []models.User{u2},
	})

	users, err := Resolve(db, alert)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	if len(users) != 1 || users[0].ID != u2.ID {
		t.Fatalf("resolved ids = %v, want [%d]", userIDs(users), u2.ID)
	}
}

func TestResolveMatchingTwiceAppearsOnce(t *testing.T) {
	db := testdb.Open(t)

	team := seedTeam(t, db, "oncall")
	u1 := seedUser(t, db, "u1@example.com", &team.ID)

	alert := seedAlert(t, db, models.Alert{
		TargetTeams: []models.Team{team},
		TargetUsers: []models.User{u1},
	})

	users, err := Resolve(db, alert)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	if len(users) != 1 || users[0].ID != u1.ID {
		t.Fatalf("resolved ids = %v, want exactly [%d]", userIDs(users), u1.ID)
	}
}

func TestResolveNoTargets(t *testing.T) {
	db := testdb.Open(t)

	seedUser(t, db, "u1@example.com", nil)

	alert := seedAlert(t, db, models.Alert{})

	users, err := Resolve(db, alert)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	if len(users) != 0 {
		t.Fatalf("resolved ids = %v, want none", userIDs(users))
	}
}
