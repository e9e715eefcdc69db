package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"liyu1981.xyz/consumable-wear-service/pkg/common"
	"liyu1981.xyz/consumable-wear-service/pkg/models"
	"liyu1981.xyz/consumable-wear-service/pkg/wear"
)

const clockLayout = "15:04"

// ShiftHours returns the worked hours between two clock times rounded to
// two decimals. An end before the start crosses midnight.
func ShiftHours(start, end string) (decimal.Decimal, error) {
	s, err := time.Parse(clockLayout, strings.TrimSpace(start))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: start %q", ErrInvalidShift, start)
	}
	e, err := time.Parse(clockLayout, strings.TrimSpace(end))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: end %q", ErrInvalidShift, end)
	}

	worked := e.Sub(s)
	if worked < 0 {
		worked += 24 * time.Hour
	}

	minutes := decimal.NewFromInt(int64(worked / time.Minute))
	return minutes.Div(decimal.NewFromInt(60)).Round(2), nil
}

func normalizeHours(raw string) (string, error) {
	h, err := wear.ParseHours(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidHoursOfUse, strings.TrimSpace(raw))
	}
	return h.String(), nil
}

func normalizeReplaced(raw string) []string {
	var parts []string
	seen := map[string]bool{}
	for _, p := range strings.Split(raw, ";") {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		parts = append(parts, p)
	}
	return parts
}

func (t *Tracker) findEquipment(ctx context.Context, company, code string) (*models.Equipment, error) {
	var equipment models.Equipment
	err := t.Db.Conn.WithContext(ctx).
		Where("company = ? AND code = ?", company, code).
		First(&equipment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, wear.ErrEquipmentNotFound
	}
	return &equipment, err
}

func (t *Tracker) recordUsage(ctx context.Context, input *models.UsageRecord) error {
	logger := common.GetCategoryLogger(common.LoggerNameWearCore, common.LoggerCategoryWearUsage)

	hours, err := normalizeHours(input.HoursOfUse)
	if err != nil {
		return err
	}

	record := models.UsageRecord{
		Company:        strings.TrimSpace(input.Company),
		Code:           strings.TrimSpace(input.Code),
		WorkDate:       input.WorkDate,
		OrderNumber:    strings.TrimSpace(input.OrderNumber),
		HoursOfUse:     hours,
		Notes:          strings.TrimSpace(input.Notes),
		TechnicalNotes: strings.TrimSpace(input.TechnicalNotes),
	}
	if record.WorkDate.IsZero() {
		record.WorkDate = time.Now()
	}

	equipment, err := t.findEquipment(ctx, record.Company, record.Code)
	if err != nil {
		return err
	}

	replaced := normalizeReplaced(input.ReplacedParts)
	tracked := map[string]bool{}
	for _, name := range splitCell(equipment.Consumables, ",") {
		tracked[name] = true
	}
	for _, name := range replaced {
		if !tracked[name] {
			logger.Warn("Replaced part is not tracked by equipment",
				zap.String("company", record.Company),
				zap.String("code", record.Code),
				zap.String("part", name),
			)
		}
	}
	record.ReplacedParts = strings.Join(replaced, ";")

	logger.Info("Received usage for equipment", zap.Reflect("usage", record))

	if err := t.Db.Conn.WithContext(ctx).Create(&record).Error; err != nil {
		return err
	}

	*input = record
	logger.Info("Recorded usage for equipment", zap.Reflect("usage", record))
	return nil
}

func (t *Tracker) recordShift(ctx context.Context, company string, shift *models.Shift) ([]models.UsageRecord, error) {
	logger := common.GetCategoryLogger(common.LoggerNameWearCore, common.LoggerCategoryWearUsage)

	company = strings.TrimSpace(company)
	hours, err := ShiftHours(shift.Start, shift.End)
	if err != nil {
		return nil, err
	}

	workDate := shift.Date
	if workDate.IsZero() {
		workDate = time.Now()
	}

	var records []models.UsageRecord
	err = t.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Company
		if err := tx.First(&c, "name = ?", company).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCompanyNotFound
			}
			return err
		}

		var equipment []models.Equipment
		if err := tx.Where("company = ?", company).Order("id").Find(&equipment).Error; err != nil {
			return err
		}

		records = make([]models.UsageRecord, 0, len(equipment))
		for _, e := range equipment {
			records = append(records, models.UsageRecord{
				Company:    company,
				Code:       e.Code,
				WorkDate:   workDate,
				HoursOfUse: hours.String(),
				Notes:      strings.TrimSpace(shift.Notes),
			})
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Recorded shift for company",
		zap.String("company", company),
		zap.String("start", shift.Start),
		zap.String("end", shift.End),
		zap.String("hours", hours.String()),
		zap.Int("equipment", len(records)),
	)
	return records, nil
}

func (t *Tracker) listUsage(ctx context.Context, company, code string) ([]models.UsageRecord, error) {
	var records []models.UsageRecord
	err := t.Db.Conn.WithContext(ctx).
		Where("company = ? AND code = ?", company, code).
		Order("id").
		Find(&records).Error
	return records, err
}

// loadEvents reads the usage log of one equipment in insertion order.
func (t *Tracker) loadEvents(ctx context.Context, company, code string) ([]wear.UsageEvent, error) {
	var records []models.UsageRecord
	err := t.withRetry(ctx, "load usage", func() error {
		var err error
		records, err = t.listUsage(ctx, company, code)
		return err
	})
	if err != nil {
		return nil, err
	}

	rows := common.Mapper(records, func(r models.UsageRecord) wear.UsageRow { return r.Row() })
	return wear.ParseUsageRows(rows), nil
}

// loadCompanyEvents reads the usage log of every equipment of a company.
func (t *Tracker) loadCompanyEvents(ctx context.Context, company string) ([]wear.UsageEvent, error) {
	var records []models.UsageRecord
	err := t.withRetry(ctx, "load usage", func() error {
		records = nil
		return t.Db.Conn.WithContext(ctx).
			Where("company = ?", company).
			Order("id").
			Find(&records).Error
	})
	if err != nil {
		return nil, err
	}

	rows := common.Mapper(records, func(r models.UsageRecord) wear.UsageRow { return r.Row() })
	return wear.ParseUsageRows(rows), nil
}

type IUsageImpl struct {
	tracker *Tracker
}

func (iu *IUsageImpl) RecordUsage(ctx context.Context, input *models.UsageRecord) error {
	return iu.tracker.recordUsage(ctx, input)
}

func (iu *IUsageImpl) RecordShift(ctx context.Context, company string, shift *models.Shift) ([]models.UsageRecord, error) {
	return iu.tracker.recordShift(ctx, company, shift)
}

func (iu *IUsageImpl) ListUsage(ctx context.Context, company, code string) ([]models.UsageRecord, error) {
	return iu.tracker.listUsage(ctx, company, code)
}

func (t *Tracker) GetIUsage() IUsage {
	return &IUsageImpl{tracker: t}
}
