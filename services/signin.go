package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cppla/dailysign/models"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// Service implements the sign-in subsystem: streak-aware reward computation
// plus the atomic log/summary/ledger write.
type Service struct {
	db     *gorm.DB
	ledger LedgerAccessor

	rndMu sync.Mutex
	rnd   *rand.Rand

	now func() time.Time
}

// Option customizes a Service; used by tests to pin randomness and the clock.
type Option func(*Service)

// WithRand replaces the reward random source.
func WithRand(src rand.Source) Option {
	return func(s *Service) { s.rnd = rand.New(src) }
}

// WithNow replaces the wall clock used to decide what "today" is.
func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service over the given database and ledger accessor.
func New(db *gorm.DB, ledger LedgerAccessor, opts ...Option) *Service {
	s := &Service{
		db:     db,
		ledger: ledger,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignResult carries the outcome of a successful sign-in.
type SignResult struct {
	Date       string `json:"date"`
	Supplement bool   `json:"supplement"`
	Streak     int    `json:"streak"`
	Exp        int    `json:"exp"`
	Point      int    `json:"point"`
}

// Sign records one sign-in for uid on date (today when empty). A date before
// today is a supplement: halved reward, no streak bonus. Returns
// ErrAlreadySigned when the (uid, date) pair is already recorded and
// ErrInvalidDate for malformed or future dates; any other error means the
// transaction rolled back and nothing was written.
func (s *Service) Sign(ctx context.Context, uid, date string) (*SignResult, error) {
	today := s.now().Format(dateLayout)
	if date == "" {
		date = today
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}
	if date > today {
		return nil, ErrInvalidDate
	}
	supplement := date != today

	// Fast path; re-checked under the summary lock below.
	signed, err := s.HasSigned(ctx, uid, date)
	if err != nil {
		return nil, err
	}
	if signed {
		return nil, ErrAlreadySigned
	}

	var result SignResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var summary models.SignSummary
		err := lockForUpdate(tx).Where("uid = ?", uid).First(&summary).Error
		hasSummary := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// A concurrent call for the same date may have committed between the
		// fast path and acquiring the lock.
		var dup int64
		if err := tx.Model(&models.SignLog{}).
			Where("uid = ? AND sign_date = ?", uid, date).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return ErrAlreadySigned
		}

		// Streak after this event. Supplements never extend a streak; the
		// streak continues only when the last processed sign-in was for the
		// immediately preceding calendar day.
		streak := 1
		if hasSummary && !supplement && summary.LastSignDate == previousDay(date) {
			streak = summary.ContinuousDays + 1
		}

		s.rndMu.Lock()
		exp, point := RollReward(s.rnd, streak, supplement)
		s.rndMu.Unlock()

		entry := models.SignLog{
			UID:          uid,
			SignDate:     date,
			IsSupplement: supplement,
			Exp:          exp,
			Point:        point,
		}
		if err := tx.Create(&entry).Error; err != nil {
			// First-ever sign-in has no summary row to lock, so a racing
			// call is only caught by the primary key.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadySigned
			}
			return err
		}

		month := date[:7]
		if hasSummary {
			summary.TotalSignDays++
			if summary.CurrentMonth == month {
				summary.MonthSignDays++
			} else {
				summary.CurrentMonth = month
				summary.MonthSignDays = 1
			}
			summary.LastSignDate = date
			if supplement {
				summary.SupplementCount++
			} else {
				summary.ContinuousDays = streak
			}
			if err := tx.Save(&summary).Error; err != nil {
				return err
			}
		} else {
			summary = models.SignSummary{
				UID:            uid,
				TotalSignDays:  1,
				CurrentMonth:   month,
				MonthSignDays:  1,
				LastSignDate:   date,
				ContinuousDays: 1,
			}
			if supplement {
				summary.SupplementCount = 1
			}
			if err := tx.Create(&summary).Error; err != nil {
				return err
			}
		}

		if err := s.ledger.AddBalances(tx, uid, exp, point); err != nil {
			return fmt.Errorf("credit ledger: %w", err)
		}

		result = SignResult{
			Date:       date,
			Supplement: supplement,
			Streak:     streak,
			Exp:        exp,
			Point:      point,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// HasSigned reports whether a sign-in is recorded for (uid, date).
func (s *Service) HasSigned(ctx context.Context, uid, date string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.SignLog{}).
		Where("uid = ? AND sign_date = ?", uid, date).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RewardByDate returns the reward recorded for (uid, date), or zeros when no
// sign-in exists. This is a lookup of what was granted, never a recomputation.
func (s *Service) RewardByDate(ctx context.Context, uid, date string) (int, int, error) {
	var entry models.SignLog
	err := s.db.WithContext(ctx).
		Where("uid = ? AND sign_date = ?", uid, date).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, nil
		}
		return 0, 0, err
	}
	return entry.Exp, entry.Point, nil
}

// MonthSignCount counts sign-ins for uid within the month given as YYYY-MM.
func (s *Service) MonthSignCount(ctx context.Context, uid, month string) (int, error) {
	if _, err := time.Parse(monthLayout, month); err != nil {
		return 0, ErrInvalidDate
	}
	var n int64
	err := s.db.WithContext(ctx).Model(&models.SignLog{}).
		Where("uid = ? AND sign_date LIKE ?", uid, month+"-%").
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// SignedDaysOfMonth returns the set of days-of-month uid signed in on.
func (s *Service) SignedDaysOfMonth(ctx context.Context, uid string, year int, month time.Month) (map[int]bool, error) {
	prefix := fmt.Sprintf("%04d-%02d", year, month)
	var dates []string
	err := s.db.WithContext(ctx).Model(&models.SignLog{}).
		Where("uid = ? AND sign_date LIKE ?", uid, prefix+"-%").
		Pluck("sign_date", &dates).Error
	if err != nil {
		return nil, err
	}
	days := make(map[int]bool, len(dates))
	for _, d := range dates {
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			continue
		}
		days[t.Day()] = true
	}
	return days, nil
}

// Status returns the user's summary together with current ledger balances.
// A user who never signed in gets a zero-value summary.
func (s *Service) Status(ctx context.Context, uid string) (*models.SignSummary, int64, int64, error) {
	var summary models.SignSummary
	err := s.db.WithContext(ctx).Where("uid = ?", uid).First(&summary).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, 0, err
	}
	summary.UID = uid

	exp, point, err := s.ledger.Balances(s.db.WithContext(ctx), uid)
	if err != nil {
		return nil, 0, 0, err
	}
	return &summary, exp, point, nil
}

// lockForUpdate adds a row lock on engines that support it. SQLite rejects
// FOR UPDATE and serializes writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func previousDay(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(dateLayout)
}
