// Package config provides the configuration of a panel run.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority), a .env file included
//  2. A YAML configuration file
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern SAVINGS_* for namespacing:
//
//	SAVINGS_YEARS_TO_INCLUDE=1999,2001,2003
//	SAVINGS_TO_YEAR=2019
//	SAVINGS_EXCLUDE_RETIREMENT_SAVINGS=true
//	SAVINGS_PATHS_EXTRACT_DIR=/data/psid
//	SAVINGS_LOGGING_LEVEL=debug
//
// # Validation
//
// The configuration is validated once, at load time: missing paths, unknown
// logging levels and years that are not ascending survey years are rejected
// before any stage runs.
package config
