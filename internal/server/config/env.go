package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvHTTPAddr    = "TODO_HTTP_ADDR"
	EnvGRPCAddr    = "TODO_GRPC_ADDR"
	EnvMetricsAddr = "TODO_METRICS_ADDR"
	EnvDatabaseDSN = "TODO_DATABASE_DSN"
	// #nosec G101 -- variable name, not a credential.
	EnvSecretKey   = "TODO_SECRET_KEY"
	EnvLogLevel    = "TODO_LOG_LEVEL"
	EnvCORSOrigins = "TODO_CORS_ORIGINS"
	EnvBcryptCost  = "TODO_BCRYPT_COST"
)

// parseEnv overlays values from TODO_* variables. Unset or blank variables
// are ignored; an unparsable TODO_BCRYPT_COST panics.
func parseEnv(config *Config) {
	envString(&config.EndpointAddrHTTP, EnvHTTPAddr)
	envString(&config.EndpointAddrGRPC, EnvGRPCAddr)
	envString(&config.MetricsAddr, EnvMetricsAddr)
	envString(&config.DatabaseDSN, EnvDatabaseDSN)
	envString(&config.SecretKey, EnvSecretKey)
	envString(&config.LogLevel, EnvLogLevel)

	if v := strings.TrimSpace(os.Getenv(EnvCORSOrigins)); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		config.CORSAllowedOrigins = origins
	}

	if v := strings.TrimSpace(os.Getenv(EnvBcryptCost)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		config.BcryptCost = n
	}
}

func envString(dst *string, name string) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*dst = v
	}
}
