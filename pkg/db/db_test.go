package db

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"liyu1981.xyz/consumable-wear-service/pkg/common"
	"liyu1981.xyz/consumable-wear-service/pkg/models"
	_ "liyu1981.xyz/consumable-wear-service/pkg/testing"

	"gorm.io/gorm"
)

func tableExists(db *gorm.DB, tableName string) bool {
	var count int64
	err := db.Raw(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name=?`, tableName,
	).Scan(&count).Error
	return err == nil && count > 0
}

func TestWithMemorySqlite(t *testing.T) {
	common.SetTestLoggerNop()

	dialector := UseMemorySqliteDialector()

	instance := GetInstance(dialector)
	if instance == nil {
		t.Fatal("Expected non-nil DB instance")
	}

	var tables = []string{"companies", "equipment", "usage_records", "notifications"}
	for _, table := range tables {
		if !tableExists(instance.Conn, table) {
			t.Errorf("Expected table %q to exist after migration", table)
		}
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	common.SetTestLoggerNop()

	instance := GetInstance(UseMemorySqliteDialector())

	err := instance.Conn.Create(&models.UsageRecord{Company: uuid.NewString(), Code: "EQ-1", HoursOfUse: "8"}).Error
	require.Error(t, err)

	company := uuid.NewString()
	require.NoError(t, instance.Conn.Create(&models.Company{Name: company}).Error)

	rec := models.UsageRecord{Company: company, Code: "EQ-1", HoursOfUse: "8"}
	require.NoError(t, instance.Conn.Create(&rec).Error)
	assert.NotEmpty(t, rec.EventID)
	assert.NotZero(t, rec.ID)
}

func TestUniqueEquipmentPerCompany(t *testing.T) {
	common.SetTestLoggerNop()

	instance := GetInstance(UseMemorySqliteDialector())
	company := uuid.NewString()
	require.NoError(t, instance.Conn.Create(&models.Company{Name: company}).Error)

	require.NoError(t, instance.Conn.Create(&models.Equipment{Company: company, Code: "EQ-1"}).Error)
	assert.Error(t, instance.Conn.Create(&models.Equipment{Company: company, Code: "EQ-1"}).Error)
}

func TestSingletonConcurrency(t *testing.T) {
	common.SetTestLoggerNop()

	const goroutineCount = 20

	var wg sync.WaitGroup
	instances := make(chan *DB, goroutineCount)

	for range goroutineCount {
		wg.Add(1)
		go func() {
			defer wg.Done()
			instance := GetInstance(UseMemorySqliteDialector())
			instances <- instance
		}()
	}

	wg.Wait()
	close(instances)

	var first *DB
	for inst := range instances {
		if first == nil {
			first = inst
			continue
		}
		if inst != first {
			t.Error("Expected all instances to be the same (singleton), but found different ones")
		}
	}
}
