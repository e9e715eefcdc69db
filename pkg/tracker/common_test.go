package tracker

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"liyu1981.xyz/consumable-wear-service/pkg/db"
	"liyu1981.xyz/consumable-wear-service/pkg/models"
	"liyu1981.xyz/consumable-wear-service/pkg/tracker/mocks"
	"liyu1981.xyz/consumable-wear-service/pkg/wear"
)

func GetMockTrackerWithMemorySqliteDialector(t *testing.T, useMockIEquipment, useMockIUsage, useMockIAlert bool) (
	*gomock.Controller,
	*Tracker,
	*mocks.MockIEquipment,
	*mocks.MockIUsage,
	*mocks.MockIAlert,
) {
	ctrl := gomock.NewController(t)

	mockIEquipment := mocks.NewMockIEquipment(ctrl)
	mockIUsage := mocks.NewMockIUsage(ctrl)
	mockIAlert := mocks.NewMockIAlert(ctrl)
	dialector := db.UseMemorySqliteDialector()
	dbInstance := db.GetInstance(dialector) // ensure migrations
	trackerInstance := &Tracker{
		Db:               *dbInstance,
		Sessions:         NewSessionStores(),
		Thresholds:       wear.DefaultThresholds,
		DefaultLifeLimit: wear.DefaultLifeLimit,
		Retry:            RetryPolicy{Attempts: 3, Delay: time.Millisecond},
	}

	equipmentService := trackerInstance.GetIEquipment()
	if useMockIEquipment {
		equipmentService = mockIEquipment
	}

	usageService := trackerInstance.GetIUsage()
	if useMockIUsage {
		usageService = mockIUsage
	}

	alertService := trackerInstance.GetIAlert()
	if useMockIAlert {
		alertService = mockIAlert
	}

	trackerInstance.WithServices(ServiceOpts{
		Equipment: equipmentService,
		Usage:     usageService,
		Alert:     alertService,
	})

	return ctrl, trackerInstance, mockIEquipment, mockIUsage, mockIAlert
}

// seedEquipment registers one equipment under a fresh company and returns the company.
func seedEquipment(t *testing.T, tr *Tracker, code, consumables, lifeLimits, descriptions string) string {
	t.Helper()
	company := uuid.NewString()
	err := tr.Equipment.RegisterEquipment(context.Background(), &models.Equipment{
		Company:          company,
		Code:             code,
		Description:      "equipment " + code,
		Consumables:      consumables,
		LifeLimits:       lifeLimits,
		PartDescriptions: descriptions,
	})
	require.NoError(t, err)
	return company
}

func recordHours(t *testing.T, tr *Tracker, company, code, hours, replaced string) {
	t.Helper()
	err := tr.Usage.RecordUsage(context.Background(), &models.UsageRecord{
		Company:       company,
		Code:          code,
		HoursOfUse:    hours,
		ReplacedParts: replaced,
	})
	require.NoError(t, err)
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
