package betaappstore

import (
	dbmodels "beta-program-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Save(rec dbmodels.BetaApplication) (id string, err error)
	GetByID(id string) (rec *dbmodels.BetaApplication, err error)
	List(classification string, qualified *bool, page, limit int) (list []dbmodels.BetaApplication, rowCount int64, err error)
	GetForNotify() (list []dbmodels.BetaApplication, err error)
	GetForAIReview() (list []dbmodels.BetaApplication, err error)
	SetNotified(id string) error
	SetAIReview(id, review string) error
	SetDecision(id string, decision, comment string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Save(rec dbmodels.BetaApplication) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.BetaApplication, error) {
	rec := dbmodels.BetaApplication{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) List(classification string, qualified *bool, page, limit int) (list []dbmodels.BetaApplication, rowCount int64, err error) {
	list = []dbmodels.BetaApplication{}
	tx := i.db.
		Model(dbmodels.BetaApplication{})
	if classification != "" {
		tx = tx.Where("classification = ?", classification)
	}
	if qualified != nil {
		tx = tx.Where("is_qualified = ?", *qualified)
	}
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	err = tx.
		Order("submitted_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) GetForNotify() (list []dbmodels.BetaApplication, err error) {
	list = []dbmodels.BetaApplication{}
	err = i.db.
		Model(dbmodels.BetaApplication{}).
		Where("is_notified = false").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) GetForAIReview() (list []dbmodels.BetaApplication, err error) {
	list = []dbmodels.BetaApplication{}
	err = i.db.
		Model(dbmodels.BetaApplication{}).
		Where("is_reviewed = false").
		Where("is_qualified = true").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) SetNotified(id string) error {
	return i.update(id, map[string]interface{}{"is_notified": true})
}

func (i impl) SetAIReview(id, review string) error {
	return i.update(id, map[string]interface{}{
		"is_reviewed": true,
		"ai_review":   review,
	})
}

func (i impl) SetDecision(id string, decision, comment string) error {
	return i.update(id, map[string]interface{}{
		"decision":         decision,
		"decision_comment": comment,
	})
}

func (i impl) update(id string, updMap map[string]interface{}) error {
	err := i.db.
		Model(&dbmodels.BetaApplication{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}
