package activity

import (
	"os"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/gracechurch/server/internal/models"
)

var logger = zerolog.New(os.Stderr).With().Timestamp().Str("component", "activity").Logger()

// Record appends one audit row for a state-changing action. Write failures
// are logged and swallowed so the parent request never fails on auditing.
func Record(db *gorm.DB, userID *uint, action models.ActionKind, details string) {
	entry := models.Activity{
		UserID:  userID,
		Action:  action,
		Details: details,
	}
	if err := db.Create(&entry).Error; err != nil {
		logger.Error().Err(err).Str("action", string(action)).Msg("failed to record activity")
	}
}
