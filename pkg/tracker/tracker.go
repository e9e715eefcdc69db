package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"liyu1981.xyz/consumable-wear-service/pkg/common"
	"liyu1981.xyz/consumable-wear-service/pkg/db"
	"liyu1981.xyz/consumable-wear-service/pkg/models"
	"liyu1981.xyz/consumable-wear-service/pkg/wear"
)

//go:generate mockgen -source=tracker.go -destination=mocks/mock_tracker.go -package=mocks

var (
	ErrDataUnavailable   = errors.New("data unavailable")
	ErrCompanyNotFound   = errors.New("company not found")
	ErrEquipmentExists   = errors.New("equipment already registered")
	ErrInvalidEquipment  = errors.New("company and code are required")
	ErrInvalidShift      = errors.New("invalid shift window")
	ErrInvalidHoursOfUse = errors.New("hours of use must be a non-negative number")
)

type IEquipment interface {
	ListCompanies(ctx context.Context) ([]string, error)
	RegisterCompany(ctx context.Context, name string) error
	ListEquipment(ctx context.Context, company string) ([]wear.Equipment, error)
	RegisterEquipment(ctx context.Context, input *models.Equipment) error
	UpdatePartDescription(ctx context.Context, company, code, part, description string) error
}

type IUsage interface {
	RecordUsage(ctx context.Context, input *models.UsageRecord) error
	RecordShift(ctx context.Context, company string, shift *models.Shift) ([]models.UsageRecord, error)
	ListUsage(ctx context.Context, company, code string) ([]models.UsageRecord, error)
}

type IAlert interface {
	EquipmentStatus(ctx context.Context, company string) ([]wear.EquipmentState, error)
	PartStatus(ctx context.Context, session, company, code string) (*wear.Report, error)
	Notifications(ctx context.Context, company string) ([]models.Notification, error)
}

// RetryPolicy bounds attempts at reading the catalog and the usage log.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

var DefaultRetryPolicy = RetryPolicy{Attempts: 3, Delay: 2 * time.Second}

type Tracker struct {
	Db        db.DB
	Equipment IEquipment
	Usage     IUsage
	Alert     IAlert

	Notifier         wear.Notifier
	Sessions         *SessionStores
	Thresholds       wear.Thresholds
	DefaultLifeLimit float64
	Retry            RetryPolicy
}

type ServiceOpts struct {
	Equipment IEquipment
	Usage     IUsage
	Alert     IAlert
}

func (t *Tracker) WithServices(opts ServiceOpts) *Tracker {
	if opts.Equipment != nil {
		t.Equipment = opts.Equipment
	}
	if opts.Usage != nil {
		t.Usage = opts.Usage
	}
	if opts.Alert != nil {
		t.Alert = opts.Alert
	}
	return t
}

// NewTracker wires the default services with production settings.
func NewTracker(database db.DB, notifier wear.Notifier) *Tracker {
	t := &Tracker{
		Db:               database,
		Notifier:         notifier,
		Sessions:         NewSessionStores(),
		Thresholds:       wear.DefaultThresholds,
		DefaultLifeLimit: wear.DefaultLifeLimit,
		Retry:            DefaultRetryPolicy,
	}
	return t.WithServices(ServiceOpts{
		Equipment: t.GetIEquipment(),
		Usage:     t.GetIUsage(),
		Alert:     t.GetIAlert(),
	})
}

// withRetry runs fn until it succeeds or the policy is exhausted, in which
// case the last error is wrapped in ErrDataUnavailable.
func (t *Tracker) withRetry(ctx context.Context, op string, fn func() error) error {
	logger := common.GetCategoryLogger(common.LoggerNameWearCore, common.LoggerCategoryWearCatalog)

	attempts := t.Retry.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}

		logger.Warn("Data access failed",
			zap.String("op", op),
			zap.Int("attempt", i+1),
			zap.Int("attempts", attempts),
			zap.Error(err),
		)

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %s: %v", ErrDataUnavailable, op, ctx.Err())
		case <-time.After(t.Retry.Delay):
		}
	}

	return fmt.Errorf("%w: %s: %v", ErrDataUnavailable, op, err)
}
