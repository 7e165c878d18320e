package config

const (
	EnvPrefix = "tyrestore"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv    = "TYRESTORE_APP_ENV"
	EnvAppPort   = "TYRESTORE_APP_PORT"
	EnvMongoURI  = "TYRESTORE_MONGODB_URI"
	EnvJWTSecret = "TYRESTORE_JWT_SECRET"
	EnvRedisURL  = "TYRESTORE_REDIS_URL"
	EnvSMTPHost  = "TYRESTORE_SMTP_HOST"
)
