package report

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var now = time.Now

// File enregistre un signalement après avoir vérifié la cible et l'unicité
func File(db *gorm.DB, reporterID string, in CreateInput) (Report, error) {
	table := in.TargetType.table()
	if table == "" {
		return Report{}, ErrInvalidTarget
	}
	if !in.Reason.IsValid() {
		return Report{}, ErrInvalidReason
	}

	var r Report
	err := db.Transaction(func(tx *gorm.DB) error {
		var found int64
		if err := tx.Table(table).Where("id = ?", in.TargetID).Count(&found).Error; err != nil {
			return err
		}
		if found == 0 {
			return ErrTargetNotFound
		}

		var existing int64
		if err := tx.Model(&Report{}).
			Where("reporter_id = ? AND target_type = ? AND target_id = ?", reporterID, in.TargetType, in.TargetID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyFiled
		}

		at := now()
		r = Report{
			ID:          uuid.New().String(),
			CreatedAt:   at,
			UpdatedAt:   at,
			ReporterID:  reporterID,
			TargetType:  in.TargetType,
			TargetID:    in.TargetID,
			Reason:      in.Reason,
			Description: in.Description,
			Status:      StatusPending,
		}
		return tx.Create(&r).Error
	})
	return r, err
}

// Review applique la décision d'un admin ; resolved_at n'est posé qu'à la clôture
func Review(db *gorm.DB, reportID, adminID string, in UpdateInput) (Report, error) {
	if !in.Status.IsValid() {
		return Report{}, ErrInvalidStatus
	}

	var r Report
	if err := db.Where("id = ?", reportID).First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Report{}, ErrNotFound
		}
		return Report{}, err
	}

	at := now()
	updates := map[string]interface{}{
		"status":     in.Status,
		"admin_note": in.AdminNote,
		"admin_id":   adminID,
		"updated_at": at,
	}
	if in.Status.Closed() {
		updates["resolved_at"] = at
	}
	if err := db.Model(&r).Updates(updates).Error; err != nil {
		return Report{}, err
	}

	r.Status = in.Status
	r.AdminNote = in.AdminNote
	r.AdminID = &adminID
	r.UpdatedAt = at
	if in.Status.Closed() {
		r.ResolvedAt = &at
	}
	return r, nil
}
