package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/cppla/dailysign/models"
)

// LedgerAccessor exposes the external experience/point balances. Both methods
// take the transaction handle so ledger writes commit atomically with the
// sign-in that granted them.
type LedgerAccessor interface {
	Balances(tx *gorm.DB, uid string) (exp int64, point int64, err error)
	AddBalances(tx *gorm.DB, uid string, deltaExp, deltaPoint int) error
}

// GormLedger is the default LedgerAccessor backed by the user_ledger table.
type GormLedger struct{}

func NewGormLedger() GormLedger {
	return GormLedger{}
}

func (GormLedger) Balances(tx *gorm.DB, uid string) (int64, int64, error) {
	var row models.UserLedger
	if err := tx.Where("uid = ?", uid).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, nil
		}
		return 0, 0, err
	}
	return row.Exp, row.Point, nil
}

func (GormLedger) AddBalances(tx *gorm.DB, uid string, deltaExp, deltaPoint int) error {
	res := tx.Model(&models.UserLedger{}).
		Where("uid = ?", uid).
		Updates(map[string]interface{}{
			"exp":   gorm.Expr("exp + ?", deltaExp),
			"point": gorm.Expr("point + ?", deltaPoint),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	// First credit for this user.
	return tx.Create(&models.UserLedger{
		UID:   uid,
		Exp:   int64(deltaExp),
		Point: int64(deltaPoint),
	}).Error
}
