// Package config loads runtime configuration for the to-do CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the REST API
//	-f string   path of the local sqlite file holding the session token
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "db_file": "todo-cli.db",
//	  "request_timeout": "10s"
//	}
package config
