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

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/comcast/thermalmon/middleware/logging"
	"github.com/comcast/thermalmon/thermalinfo"
	"go.uber.org/zap"
)

// Poller exposes the result of the last chassis poll
type Poller interface {
	Snapshot() (thermalinfo.Snapshot, bool)
}

// StatusHandler handles GET /status requests. It answers with the last
// snapshot and 503 until the first poll has run.
func StatusHandler(p Poller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := zap.L()

		snap, ok := p.Snapshot()
		if !ok {
			log.Warn("status requested before the first poll", zap.String("trace_id", logging.TraceID(r.Context())))
			http.Error(w, "no poll has completed yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snap); err != nil {
			log.Error("failed encoding status", zap.Error(err), zap.String("trace_id", logging.TraceID(r.Context())))
		}
	}
}
