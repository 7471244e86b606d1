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

package thermalinfo

import (
	"github.com/comcast/thermalmon/platform"
	"go.uber.org/zap"
)

// THERMAL_INFO is the name the thermal information is registered under
const THERMAL_INFO = "thermal_info"

// Band is the classification of a sensor temperature against its thresholds
type Band string

const (
	BAND_NA       Band = "n/a"
	BAND_NORMAL   Band = "normal"
	BAND_HIGH     Band = "high"
	BAND_CRITICAL Band = "critical"
)

// Bands lists every band in ascending order
var Bands = []Band{BAND_NA, BAND_NORMAL, BAND_HIGH, BAND_CRITICAL}

// Classify places temp into a band using closed-open intervals:
// [normal, high) is normal, [high, critical) is high, >= critical is
// critical and anything below normal is n/a.
func Classify(temp, normal, high, critical float64) Band {
	switch {
	case temp < normal:
		return BAND_NA
	case temp < high:
		return BAND_NORMAL
	case temp < critical:
		return BAND_HIGH
	default:
		return BAND_CRITICAL
	}
}

// SensorState is the last evaluation of a single sensor
type SensorState struct {
	Index       int     `json:"index"`
	Name        string  `json:"name"`
	Present     bool    `json:"present"`
	Temperature float64 `json:"temperature"`
	High        float64 `json:"high_threshold"`
	Caution2    float64 `json:"caution2_threshold"`
	Critical    float64 `json:"high_critical_threshold"`
	MinRecorded float64 `json:"minimum_recorded"`
	MaxRecorded float64 `json:"maximum_recorded"`
	Band        Band    `json:"band"`
	WarmUp      bool    `json:"warm_up"`
	Evaluated   bool    `json:"evaluated"`
}

// ThermalInfo classifies every present sensor once per poll and aggregates
// the band membership of the whole chassis.
type ThermalInfo struct {
	sensors []SensorState
	temps   map[string]float64

	normalThres       bool
	highThres         bool
	criticalHighThres bool
	warmUpThres       bool
}

func NewThermalInfo() *ThermalInfo {
	return &ThermalInfo{
		temps: make(map[string]float64),
	}
}

func (ti *ThermalInfo) Name() string {
	return THERMAL_INFO
}

func (ti *ThermalInfo) state(index int) *SensorState {
	for len(ti.sensors) <= index {
		ti.sensors = append(ti.sensors, SensorState{Index: len(ti.sensors), Band: BAND_NA})
	}
	return &ti.sensors[index]
}

// Collect evaluates every sensor of chassis. Absent sensors, and sensors
// whose reading or thresholds are unavailable, are skipped and keep their
// last band.
func (ti *ThermalInfo) Collect(chassis platform.Chassis) {
	log := zap.L()

	ti.normalThres = false
	ti.highThres = false
	ti.criticalHighThres = false
	ti.warmUpThres = false

	for index := 0; index < chassis.NumThermals(); index++ {
		t := chassis.Thermal(index)
		if t == nil {
			continue
		}
		st := ti.state(index)
		st.Name = t.Name()
		st.Present = t.Presence()
		if !st.Present {
			continue
		}

		temp, ok := t.Temperature()
		if !ok {
			log.Debug("temperature unavailable, skipping sensor", zap.String("sensor", st.Name), zap.Int("index", index))
			continue
		}
		ti.temps[st.Name] = temp

		normal, ok1 := t.HighThreshold()
		high, ok2 := t.Caution2Threshold()
		critical, ok3 := t.HighCriticalThreshold()
		if !ok1 || !ok2 || !ok3 {
			log.Debug("thresholds unavailable, skipping sensor", zap.String("sensor", st.Name), zap.Int("index", index))
			continue
		}

		band := Classify(temp, normal, high, critical)
		st.WarmUp = band == BAND_HIGH && st.Band == BAND_HIGH
		st.Band = band
		st.Temperature = temp
		st.High = normal
		st.Caution2 = high
		st.Critical = critical
		st.MinRecorded = t.MinimumRecorded()
		st.MaxRecorded = t.MaximumRecorded()
		st.Evaluated = true

		switch band {
		case BAND_CRITICAL:
			ti.criticalHighThres = true
		case BAND_HIGH:
			ti.highThres = true
		case BAND_NORMAL:
			ti.normalThres = true
		}

		if st.WarmUp {
			ti.warmUpThres = true
		}
	}
}

// TempMap returns the last temperature of every sensor keyed by name
func (ti *ThermalInfo) TempMap() map[string]float64 {
	out := make(map[string]float64, len(ti.temps))
	for k, v := range ti.temps {
		out[k] = v
	}
	return out
}

// Sensors returns a copy of the per sensor state
func (ti *ThermalInfo) Sensors() []SensorState {
	out := make([]SensorState, len(ti.sensors))
	copy(out, ti.sensors)
	return out
}

// Band returns the last band of the sensor at index
func (ti *ThermalInfo) Band(index int) Band {
	if index < 0 || index >= len(ti.sensors) {
		return BAND_NA
	}
	return ti.sensors[index].Band
}

// IsOverHighThreshold is true when a sensor is high and none is critical
func (ti *ThermalInfo) IsOverHighThreshold() bool {
	return ti.highThres && !ti.criticalHighThres
}

// IsWarmUpAndOverHighThreshold is true when a sensor stayed high across two
// consecutive polls.
func (ti *ThermalInfo) IsWarmUpAndOverHighThreshold() bool {
	return ti.warmUpThres
}

func (ti *ThermalInfo) IsOverHighCriticalThreshold() bool {
	return ti.criticalHighThres
}

// IsOverNormalThreshold is true when a sensor is normal and none is high or
// critical.
func (ti *ThermalInfo) IsOverNormalThreshold() bool {
	return ti.normalThres && !ti.highThres && !ti.criticalHighThres
}
