// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Azat Karimullin

package server

import "errors"

var (
	errNoHTTPAddress = errors.New("no HTTP address is configured")
)
