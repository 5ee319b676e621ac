package visibility

import (
	"github.com/alertdeck-dev/alertdeck/internal/models"
	"gorm.io/gorm"
)

// Resolve computes the set of users an alert targets: every user when the
// alert is org-wide, otherwise users whose team is in the alert's team
// targets or who are targeted individually. The three modes combine as OR.
// Pure read; results are ordered by user id so repeated calls over the same
// snapshot are deterministic.
func Resolve(tx *gorm.DB, alert models.Alert) ([]models.User, error) {
	var users []models.User

	query := tx.Model(&models.User{}).Order("users.id")

	if !alert.IsOrgWide {
		teamTargets := tx.Table("alert_target_teams").
			Select("team_id").
			Where("alert_id = ?", alert.ID)
		userTargets := tx.Table("alert_target_users").
			Select("user_id").
			Where("alert_id = ?", alert.ID)

		query = query.Where("users.team_id IN (?) OR users.id IN (?)", teamTargets, userTargets)
	}

	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

// ResolveAlertsForUser is the inverse view: all alerts whose targeting
// matches the given user, without any active-window filtering. Used by the
// end-user feed, which applies its own window conditions on top.
func ResolveAlertsForUser(tx *gorm.DB, user models.User) *gorm.DB {
	teamID := uint(0)
	if user.TeamID != nil {
		teamID = *user.TeamID
	}

	return tx.Model(&models.Alert{}).Where(
		"is_org_wide = ? OR alerts.id IN (?) OR alerts.id IN (?)",
		true,
		tx.Table("alert_target_users").Select("alert_id").Where("user_id = ?", user.ID),
		tx.Table("alert_target_teams").Select("alert_id").Where("team_id = ?", teamID),
	)
}
