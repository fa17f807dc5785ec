// Copyright 2025 Dataiter Authors
// SPDX-License-Identifier: Apache-2.0

// Package env classifies the deployment environment, read from the ENV
// configuration key. Unset means local.
package env

import (
	"github.com/spf13/viper"
)

const (
	Local      = "local"
	Production = "production"
	Testing    = "testing"
)

var Env string

func init() {
	Env = viper.GetString("ENV")
	if Env == "" {
		Env = Local
	}
}

func IsLocal() bool {
	return Env == Local
}

func IsProduction() bool {
	return Env == Production
}

func IsTesting() bool {
	return Env == Testing
}
