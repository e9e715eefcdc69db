package tracker

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"liyu1981.xyz/consumable-wear-service/pkg/common"
	"liyu1981.xyz/consumable-wear-service/pkg/models"
	"liyu1981.xyz/consumable-wear-service/pkg/wear"
)

var ErrInvalidCompany = errors.New("company is required")

func (t *Tracker) loadCatalog(ctx context.Context) (*wear.Catalog, error) {
	logger := common.GetCategoryLogger(common.LoggerNameWearCore, common.LoggerCategoryWearCatalog)

	var (
		companies []models.Company
		equipment []models.Equipment
	)
	err := t.withRetry(ctx, "load catalog", func() error {
		companies, equipment = nil, nil
		if err := t.Db.Conn.WithContext(ctx).Order("created_at, name").Find(&companies).Error; err != nil {
			return err
		}
		return t.Db.Conn.WithContext(ctx).Order("id").Find(&equipment).Error
	})
	if err != nil {
		return nil, err
	}

	rows := make([]wear.DefinitionRow, 0, len(companies)+len(equipment))
	for _, c := range companies {
		rows = append(rows, wear.DefinitionRow{Company: c.Name})
	}
	for _, e := range equipment {
		rows = append(rows, e.Row())
	}

	catalog := wear.CatalogLoader{DefaultLifeLimit: t.DefaultLifeLimit}.Load(rows)
	for _, issue := range catalog.Issues() {
		logger.Warn("Malformed equipment definition", zap.Stringer("issue", issue))
	}

	return catalog, nil
}

func (t *Tracker) listCompanies(ctx context.Context) ([]string, error) {
	catalog, err := t.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Companies(), nil
}

func (t *Tracker) registerCompany(ctx context.Context, name string) error {
	logger := common.GetCategoryLogger(common.LoggerNameWearCore, common.LoggerCategoryWearCatalog)

	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidCompany
	}

	company := models.Company{Name: name}
	if err := t.Db.Conn.WithContext(ctx).FirstOrCreate(&company, models.Company{Name: name}).Error; err != nil {
		return err
	}

	logger.Info("Registered company", zap.String("company", name))
	return nil
}

func (t *Tracker) listEquipment(ctx context.Context, company string) ([]wear.Equipment, error) {
	catalog, err := t.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if !catalog.HasCompany(company) {
		return nil, ErrCompanyNotFound
	}
	return catalog.EquipmentOf(company), nil
}

func (t *Tracker) registerEquipment(ctx context.Context, input *models.Equipment) error {
	logger := common.GetCategoryLogger(common.LoggerNameWearCore, common.LoggerCategoryWearCatalog)

	equipment := models.Equipment{
		Company:          strings.TrimSpace(input.Company),
		Code:             strings.TrimSpace(input.Code),
		Description:      strings.TrimSpace(input.Description),
		Consumables:      strings.TrimSpace(input.Consumables),
		LifeLimits:       strings.TrimSpace(input.LifeLimits),
		PartDescriptions: strings.TrimSpace(input.PartDescriptions),
	}
	if equipment.Company == "" || equipment.Code == "" {
		return ErrInvalidEquipment
	}

	logger.Info("Received equipment definition", zap.Reflect("equipment", equipment))

	err := t.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		company := models.Company{Name: equipment.Company}
		if err := tx.FirstOrCreate(&company, models.Company{Name: equipment.Company}).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Equipment{}).
			Where("company = ? AND code = ?", equipment.Company, equipment.Code).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEquipmentExists
		}

		return tx.Create(&equipment).Error
	})
	if err != nil {
		return err
	}

	*input = equipment
	logger.Info("Registered equipment", zap.Reflect("equipment", equipment))
	return nil
}

func (t *Tracker) updatePartDescription(ctx context.Context, company, code, part, description string) error {
	logger := common.GetCategoryLogger(common.LoggerNameWearCore, common.LoggerCategoryWearCatalog)

	var equipment models.Equipment
	err := t.Db.Conn.WithContext(ctx).
		Where("company = ? AND code = ?", company, code).
		First(&equipment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return wear.ErrEquipmentNotFound
	}
	if err != nil {
		return err
	}

	names := splitCell(equipment.Consumables, ",")
	idx := -1
	for i, name := range names {
		if name == part {
			idx = i
			break
		}
	}
	if idx < 0 || part == "" {
		return wear.ErrPartNotFound
	}

	descriptions := splitCell(equipment.PartDescriptions, "|")
	for len(descriptions) < len(names) {
		descriptions = append(descriptions, "")
	}
	descriptions[idx] = strings.ReplaceAll(strings.TrimSpace(description), "|", "/")
	cell := strings.Join(descriptions, "|")

	if err := t.Db.Conn.WithContext(ctx).
		Model(&equipment).
		Update("part_descriptions", cell).Error; err != nil {
		return err
	}

	logger.Info("Updated part description",
		zap.String("company", company),
		zap.String("code", code),
		zap.String("part", part),
		zap.String("description", descriptions[idx]),
	)
	return nil
}

// splitCell splits a delimited cell by position, the way the catalog reads it.
func splitCell(cell, sep string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	tokens := strings.Split(cell, sep)
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}
	return tokens
}

type IEquipmentImpl struct {
	tracker *Tracker
}

func (ie *IEquipmentImpl) ListCompanies(ctx context.Context) ([]string, error) {
	return ie.tracker.listCompanies(ctx)
}

func (ie *IEquipmentImpl) RegisterCompany(ctx context.Context, name string) error {
	return ie.tracker.registerCompany(ctx, name)
}

func (ie *IEquipmentImpl) ListEquipment(ctx context.Context, company string) ([]wear.Equipment, error) {
	return ie.tracker.listEquipment(ctx, company)
}

func (ie *IEquipmentImpl) RegisterEquipment(ctx context.Context, input *models.Equipment) error {
	return ie.tracker.registerEquipment(ctx, input)
}

func (ie *IEquipmentImpl) UpdatePartDescription(ctx context.Context, company, code, part, description string) error {
	return ie.tracker.updatePartDescription(ctx, company, code, part, description)
}

func (t *Tracker) GetIEquipment() IEquipment {
	return &IEquipmentImpl{tracker: t}
}
