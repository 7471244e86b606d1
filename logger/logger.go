/*
 * Copyright 2025 Comcast Cable Communications Management, LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package logger

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// FILE writes logs to a rotated file in addition to stdout
	FILE = "file"
	// VECTOR ships logs to a vector http source in addition to stdout
	VECTOR = "vector"
)

var (
	logger      *zap.Logger
	atomicLevel = zap.NewAtomicLevel()
)

// LoggerConfig selects the level and the optional second log destination
type LoggerConfig struct {
	LogLevel       string
	LogMethod      string
	LogFile        LogFile
	VectorEndpoint string
}

// LogFile configures the lumberjack rotation
type LogFile struct {
	Path       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
}

// Initialize builds the json logger and replaces the zap globals with it
func Initialize(svc, hostname string, c LoggerConfig) error {
	atomicLevel.SetLevel(parseLevel(c.LogLevel))

	stdoutCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(ProdEncoderConf()),
		zapcore.Lock(os.Stdout),
		atomicLevel,
	)

	cores := []zapcore.Core{stdoutCore}

	switch c.LogMethod {
	case FILE:
		ljWriteSyncer := zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(c.LogFile.Path, svc+".log"),
			MaxSize:    c.LogFile.MaxSize, // megabytes
			MaxBackups: c.LogFile.MaxBackups,
			MaxAge:     c.LogFile.MaxAge, // days
		})
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(ProdEncoderConf()),
			ljWriteSyncer,
			atomicLevel))
	case VECTOR:
		u, err := url.Parse(c.VectorEndpoint)
		if err != nil {
			return fmt.Errorf("error parsing vector endpoint %s - %w", c.VectorEndpoint, err)
		}
		sink, err := initVectorSink(u)
		if err != nil {
			return err
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(ProdEncoderConf()),
			sink,
			atomicLevel))
	case "":
	default:
		return fmt.Errorf("unknown log method %q", c.LogMethod)
	}

	logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller(),
		zap.Fields(
			zap.String("app", svc),
			zap.String("host", hostname),
		))

	zap.ReplaceGlobals(logger)
	return nil
}

func Flush() {
	if logger != nil {
		logger.Sync()
	}
}

func SetLevel(l string) {
	atomicLevel.SetLevel(parseLevel(l))
}

func GetLevel() string {
	return atomicLevel.Level().String()
}

func parseLevel(l string) zapcore.Level {
	switch l {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

func ProdEncoderConf() zapcore.EncoderConfig {
	encConf := zap.NewProductionEncoderConfig()
	encConf.EncodeTime = zapcore.RFC3339TimeEncoder

	return encConf
}

func Verbosity(w http.ResponseWriter, r *http.Request) {
	log := zap.L()
	level := GetLevel()
	log.Info("current logging level", zap.String("level", level))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "{\"verbosity\": \"%s\"}", level)
}

func SetVerbosity(w http.ResponseWriter, r *http.Request) {
	log := zap.L()
	query := r.URL.Query()

	level := query.Get("v")
	if level == "" {
		http.Error(w, "'v' parameter is not set", http.StatusBadRequest)
		return
	}

	SetLevel(level)

	log.Info("updating logging level", zap.String("level", level))

	w.WriteHeader(http.StatusNoContent)
}
