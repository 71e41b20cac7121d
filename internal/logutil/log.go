// Copyright 2016 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logutil wraps zap the same way sourcegraph-zoekt's own log
// package does, minus the OpenTelemetry Resource/InstanceID stamping that
// apparatus exists for: a batch CLI has no service identity to attach to
// every line.
package logutil

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

var (
	globalLogger     *zap.Logger
	globalLoggerInit sync.Once
)

// Options configures Init.
type Options struct {
	// Development enables human-readable console output instead of JSON
	// and lowers the level from info to debug.
	Development bool
	// LogFile, if set, additionally writes logs to a size-rotated file
	// via lumberjack instead of stderr only.
	LogFile string
}

// Init initializes the package-global logger. Subsequent calls are no-ops,
// matching a "call once at program startup" contract.
func Init(opts Options) *zap.Logger {
	globalLoggerInit.Do(func() {
		globalLogger = build(opts)
	})
	return globalLogger
}

// Get returns the global logger, initializing a development-mode default
// if Init was never called (tests, library callers that skip CLI setup).
func Get() *zap.Logger {
	if globalLogger == nil {
		return Init(Options{Development: true})
	}
	return globalLogger
}

func build(opts Options) *zap.Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if opts.Development {
		level.SetLevel(zapcore.DebugLevel)
	}

	var encoder zapcore.Encoder
	if opts.Development {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	sink := zapcore.AddSync(os.Stderr)
	if opts.LogFile != "" {
		rotated := &lumberjack.Logger{
			Filename:   opts.LogFile,
			MaxSize:    64, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		sink = zapcore.NewMultiWriteSyncer(sink, zapcore.AddSync(rotated))
	}

	core := zapcore.NewCore(encoder, sink, level)
	opts2 := []zap.Option{zap.ErrorOutput(zapcore.AddSync(os.Stderr))}
	if opts.Development {
		opts2 = append(opts2, zap.Development())
	}
	return zap.New(core, opts2...)
}
