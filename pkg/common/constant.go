package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyWearDBType string = "WEAR_DB_TYPE"
	EnvKeyWearDbPath string = "WEAR_DB_PATH"

	EnvKeyWearHttpHostPort string = "WEAR_HTTP_HOST_PORT"
	EnvKeyWearGrpcHostPort string = "WEAR_GRPC_HOST_PORT"

	EnvKeyWearDefaultRate  string = "WEAR_DEFAULT_RATE"
	EnvKeyWearDefaultBurst string = "WEAR_DEFAULT_BURST"

	EnvKeyWearLogDir    string = "WEAR_LOG_DIR"
	EnvKeyWearConfigDir string = "WEAR_CONFIG_DIR"

	LoggerNameWearCore        string = "wear_core"
	LoggerNameRestfulServer   string = "restful_server"
	LoggerNameGrpcServer      string = "grpc_server"
	LoggerNameNotifier        string = "notifier"
	LoggerFieldWearCategory   string = "category"
	LoggerCategoryWearCatalog string = "catalog"
	LoggerCategoryWearUsage   string = "usage"
	LoggerCategoryWearAlert   string = "alert"
	LoggerCategoryWearNotify  string = "notify"

	DefaultSessionID string = "default"
)
