// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config provides the defaults shared by the commands, read
// from the environment and from .env files.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvDBDriver = "BENCH_DB_DRIVER"
	EnvDBDSN    = "BENCH_DB_DSN"
	EnvSuite    = "BENCH_SUITE"
)

// Default values
const (
	DefaultDBDriver = "sqlite3"
	DefaultDBDSN    = "benchmarks.db"
	DefaultSuite    = "Benchmark"
)

// Config holds the command configuration.
type Config struct {
	DBDriver string // database/sql driver name for the history store
	DBDSN    string // data source name passed to the driver
	Suite    string // benchmark suite in data.js
}

// Load returns the configuration given by the environment, then by
// the .env files at paths, then by the defaults. A variable set to the
// empty string counts as unset. With no paths, Load reads ".env" in
// the current directory if it exists. Load doesn't modify the
// environment.
func Load(paths ...string) (*Config, error) {
	if len(paths) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			paths = []string{".env"}
		}
	}
	fileEnv := make(map[string]string)
	for _, path := range paths {
		m, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		// Earlier files take precedence, as with godotenv.Load.
		for k, v := range m {
			if _, ok := fileEnv[k]; !ok && v != "" {
				fileEnv[k] = v
			}
		}
	}

	get := func(key, defaultValue string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		if v := fileEnv[key]; v != "" {
			return v
		}
		return defaultValue
	}
	return &Config{
		DBDriver: get(EnvDBDriver, DefaultDBDriver),
		DBDSN:    get(EnvDBDSN, DefaultDBDSN),
		Suite:    get(EnvSuite, DefaultSuite),
	}, nil
}
