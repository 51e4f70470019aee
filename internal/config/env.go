package config

import (
	"github.com/JaimeStill/paperless"
	"github.com/JaimeStill/paperless/pkg/logging"
	"github.com/JaimeStill/paperless/pkg/pagination"
	"github.com/JaimeStill/paperless/pkg/storage"
	"github.com/JaimeStill/paperless/pkg/transport"
)

// PaperlessEnv names the environment variables overriding server and client settings.
var PaperlessEnv = &paperless.Env{
	Transport: transport.Env{
		BaseURL:   "PAPERLESS_BASE_URL",
		Token:     "PAPERLESS_TOKEN",
		Timeout:   "PAPERLESS_TIMEOUT",
		RateLimit: "PAPERLESS_RATE_LIMIT",
		RateBurst: "PAPERLESS_RATE_BURST",
		UserAgent: "PAPERLESS_USER_AGENT",
	},
	Pagination: pagination.Env{
		DefaultPageSize: "PAPERLESS_PAGE_SIZE",
		MaxPageSize:     "PAPERLESS_MAX_PAGE_SIZE",
	},
	TaskPollDelay: "PAPERLESS_TASK_POLL_DELAY",
}

// LoggingEnv names the environment variables overriding logging settings.
var LoggingEnv = &logging.Env{
	Level:  "PAPERLESS_LOG_LEVEL",
	Format: "PAPERLESS_LOG_FORMAT",
}

// ExportEnv names the environment variables overriding export settings.
var ExportEnv = &Env{
	Concurrency: "PAPERLESS_EXPORT_CONCURRENCY",
	Original:    "PAPERLESS_EXPORT_ORIGINAL",
	Prefix:      "PAPERLESS_EXPORT_PREFIX",
	Storage: storage.Env{
		Backend:       "PAPERLESS_EXPORT_BACKEND",
		BasePath:      "PAPERLESS_EXPORT_PATH",
		MaxObjectSize: "PAPERLESS_EXPORT_MAX_OBJECT_SIZE",
		Endpoint:      "PAPERLESS_EXPORT_ENDPOINT",
		AccessKey:     "PAPERLESS_EXPORT_ACCESS_KEY",
		SecretKey:     "PAPERLESS_EXPORT_SECRET_KEY",
		Bucket:        "PAPERLESS_EXPORT_BUCKET",
		Region:        "PAPERLESS_EXPORT_REGION",
		UseSSL:        "PAPERLESS_EXPORT_USE_SSL",
	},
}
