// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger   *zap.Logger
	loggerMu sync.RWMutex
)

// Logger returns the package logger.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerMu.RLock()
	lg := logger
	loggerMu.RUnlock()
	if lg == nil {
		return zap.NewNop()
	}
	return lg
}

// SetLogger sets the package logger used by subsequently built Networks.
// nil restores the no-op logger.
func SetLogger(lg *zap.Logger) {
	loggerMu.Lock()
	logger = lg
	loggerMu.Unlock()
}
