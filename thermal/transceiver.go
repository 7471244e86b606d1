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

package thermal

import (
	"context"
	"strconv"

	"github.com/comcast/thermalmon/statedb"
	"go.uber.org/zap"
)

const (
	// TRANSCEIVER_INFO is the state db table populated for inserted modules
	TRANSCEIVER_INFO = "TRANSCEIVER_INFO"
	// TRANSCEIVER_DOM_SENSOR is the state db table holding module DOM readings
	TRANSCEIVER_DOM_SENSOR = "TRANSCEIVER_DOM_SENSOR"
)

// Transceiver is a pluggable module that reports its own temperature
type Transceiver interface {
	Presence() bool
	Temperature() (float64, bool)
}

// StateDBTransceiver reads presence and DOM temperature of a port from the
// tables the transceiver daemon maintains.
type StateDBTransceiver struct {
	ctx  context.Context
	db   statedb.Client
	port string
}

// NewStateDBTransceivers returns a factory for Sources.Transceivers
func NewStateDBTransceivers(ctx context.Context, db statedb.Client) func(port string) Transceiver {
	return func(port string) Transceiver {
		return &StateDBTransceiver{ctx: ctx, db: db, port: port}
	}
}

func (x *StateDBTransceiver) Presence() bool {
	ok, err := x.db.Exists(x.ctx, statedb.Key(TRANSCEIVER_INFO, x.port))
	if err != nil {
		zap.L().Warn("error checking transceiver presence", zap.String("port", x.port), zap.Error(err))
		return false
	}
	return ok
}

func (x *StateDBTransceiver) Temperature() (float64, bool) {
	raw, err := x.db.HGet(x.ctx, statedb.Key(TRANSCEIVER_DOM_SENSOR, x.port), "temperature")
	if err != nil {
		zap.L().Debug("error getting transceiver temperature", zap.String("port", x.port), zap.Error(err))
		return 0, false
	}
	// modules without DOM support report N/A
	t, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return t, true
}
