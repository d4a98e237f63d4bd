package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/todokeeper/internal/flagx"
)

// JsonConfig mirrors Config for JSON unmarshalling. Absent keys leave the
// current value untouched, so every field is a pointer or a nil-able slice.
type JsonConfig struct {
	EndpointAddrHTTP   *string  `json:"endpoint_addr_http"`
	EndpointAddrGRPC   *string  `json:"endpoint_addr_grpc"`
	MetricsAddr        *string  `json:"metrics_addr"`
	DatabaseDSN        *string  `json:"database_dsn"`
	SecretKey          *string  `json:"secret_key"`
	LogLevel           *string  `json:"log_level"`
	CORSAllowedOrigins []string `json:"cors_allowed_origins"`
	BcryptCost         *int     `json:"bcrypt_cost"`
}

// parseJson loads values from the file named by -c / -config, if any.
// An unreadable file or invalid JSON panics: a broken config file must stop
// the process before it serves anything.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.MetricsAddr, c.MetricsAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)
	if c.CORSAllowedOrigins != nil {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
