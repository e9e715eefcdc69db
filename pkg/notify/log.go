package notify

import (
	"context"

	"go.uber.org/zap"

	"liyu1981.xyz/consumable-wear-service/pkg/common"
	"liyu1981.xyz/consumable-wear-service/pkg/wear"
)

// LogNotifier writes every alert to the notifier log. It never fails.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(ctx context.Context, alert wear.Alert) error {
	logger := common.GetCategoryLogger(common.LoggerNameNotifier, common.LoggerCategoryWearNotify)
	logger.Warn(alert.Subject(),
		zap.String("channel", "log"),
		zap.Reflect("alert", alert),
	)
	return nil
}
