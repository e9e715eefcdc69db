package db

import (
	"os"
	"path/filepath"
	"testing"

	"liyu1981.xyz/consumable-wear-service/pkg/common"
	constant "liyu1981.xyz/consumable-wear-service/pkg/common"
)

func TestWithEnvPath(t *testing.T) {
	common.SetTestLoggerNop()

	if os.Getenv(constant.EnvKeyRunIntegrationTests) != "true" {
		t.Skip("Skipping integration test: RUN_INTEGRATION_TESTS environment variable not set")
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}

	testPath := filepath.Join(wd, "test.db")

	originalDBPath, hadOriginal := os.LookupEnv(constant.EnvKeyWearDbPath)

	if err := os.Setenv(constant.EnvKeyWearDbPath, testPath); err != nil {
		t.Fatalf("Failed to set WEAR_DB_PATH: %v", err)
	}

	defer func() {
		if hadOriginal {
			_ = os.Setenv(constant.EnvKeyWearDbPath, originalDBPath)
		} else {
			_ = os.Unsetenv(constant.EnvKeyWearDbPath)
		}
		_ = os.Remove(testPath)
	}()

	instance := GetInstance(UseDialector(DBTypeFile))
	if instance == nil || instance.Conn == nil {
		t.Fatal("Expected non-nil DB connection")
	}

	if _, err := os.Stat(testPath); os.IsNotExist(err) {
		t.Errorf("Expected database file to be created at %s", testPath)
	}
}
