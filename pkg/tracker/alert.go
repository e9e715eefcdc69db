package tracker

import (
	"context"

	"go.uber.org/zap"

	"liyu1981.xyz/consumable-wear-service/pkg/common"
	"liyu1981.xyz/consumable-wear-service/pkg/models"
	"liyu1981.xyz/consumable-wear-service/pkg/wear"
)

func (t *Tracker) evaluator(catalog *wear.Catalog) *wear.Evaluator {
	return wear.NewEvaluator(catalog, t.Thresholds)
}

func logIssues(logger *zap.Logger, issues []wear.Issue) {
	for _, issue := range issues {
		logger.Warn("Recovered input issue", zap.Reflect("issue", issue))
	}
}

// equipmentStatus rolls up every equipment of a company. It never notifies.
func (t *Tracker) equipmentStatus(ctx context.Context, company string) ([]wear.EquipmentState, error) {
	logger := common.GetCategoryLogger(common.LoggerNameWearCore, common.LoggerCategoryWearAlert)

	catalog, err := t.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if !catalog.HasCompany(company) {
		return nil, ErrCompanyNotFound
	}

	events, err := t.loadCompanyEvents(ctx, company)
	if err != nil {
		return nil, err
	}

	states, issues := t.evaluator(catalog).CompanyStates(company, events)
	logIssues(logger, issues)

	if states == nil {
		states = []wear.EquipmentState{}
	}
	return states, nil
}

// partStatus runs one evaluation cycle for one equipment: derive part
// states, decide alerts against the session's alert store, deliver them and
// log every delivery.
func (t *Tracker) partStatus(ctx context.Context, session, company, code string) (*wear.Report, error) {
	logger := common.GetCategoryLogger(common.LoggerNameWearCore, common.LoggerCategoryWearAlert)

	catalog, err := t.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if !catalog.HasCompany(company) {
		return nil, ErrCompanyNotFound
	}
	if _, ok := catalog.Equipment(company, code); !ok {
		return nil, wear.ErrEquipmentNotFound
	}

	events, err := t.loadEvents(ctx, company, code)
	if err != nil {
		return nil, err
	}

	dedup := wear.NewDeduplicator(t.Sessions.Get(session))
	report := t.evaluator(catalog).Evaluate(dedup, company, code, events)
	logIssues(logger, report.Issues)

	for _, alert := range report.Alerts {
		logger.Info("Alert found", zap.String("session", session), zap.Reflect("alert", alert))
	}

	for _, d := range report.Deliver(ctx, t.Notifier) {
		if d.Err != nil {
			logger.Warn("Alert delivery failed", zap.Reflect("alert", d.Alert), zap.Error(d.Err))
		} else {
			logger.Info("Alert delivered", zap.Reflect("alert", d.Alert))
		}

		notification := models.NewNotification(d)
		if err := t.Db.Conn.WithContext(ctx).Create(&notification).Error; err != nil {
			logger.Error("Failed to save notification", zap.Reflect("notification", notification), zap.Error(err))
		}
	}

	return report, nil
}

func (t *Tracker) notifications(ctx context.Context, company string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := t.Db.Conn.WithContext(ctx).
		Where("company = ?", company).
		Order("timestamp desc, id desc").
		Find(&notifications).Error
	return notifications, err
}

type IAlertImpl struct {
	tracker *Tracker
}

func (ia *IAlertImpl) EquipmentStatus(ctx context.Context, company string) ([]wear.EquipmentState, error) {
	return ia.tracker.equipmentStatus(ctx, company)
}

func (ia *IAlertImpl) PartStatus(ctx context.Context, session, company, code string) (*wear.Report, error) {
	return ia.tracker.partStatus(ctx, session, company, code)
}

func (ia *IAlertImpl) Notifications(ctx context.Context, company string) ([]models.Notification, error) {
	return ia.tracker.notifications(ctx, company)
}

func (t *Tracker) GetIAlert() IAlert {
	return &IAlertImpl{tracker: t}
}
