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
	"path/filepath"
	"strconv"

	"github.com/comcast/thermalmon/platform"
	"github.com/comcast/thermalmon/statedb"
	"github.com/comcast/thermalmon/sysfs"
	"go.uber.org/zap"
)

const (
	// LOW_THRESHOLD is the low warning temperature of every sensor
	LOW_THRESHOLD = 2.0
	// LOW_CRITICAL_THRESHOLD is the low critical temperature of every sensor
	LOW_CRITICAL_THRESHOLD = 0.0
	// NA is reported for model and serial number
	NA = "N/A"

	initialMinimum = 150.0
	initialMaximum = 0.0
)

// Sources holds the collaborators a sensor reads from
type Sources struct {
	Reader       *sysfs.Reader
	StateDB      statedb.Client
	Transceivers func(port string) Transceiver
}

// Sensor is a table driven platform.Thermal
type Sensor struct {
	ctx     context.Context
	entry   platform.SensorEntry
	name    string
	reader  *sysfs.Reader
	db      statedb.Client
	xcvr    Transceiver
	minimum float64
	maximum float64
}

// NewSensor returns the sensor described by entry. The airflow direction is
// used to resolve the sensor name.
func NewSensor(ctx context.Context, entry platform.SensorEntry, dir platform.Direction, src Sources) *Sensor {
	s := &Sensor{
		ctx:     ctx,
		entry:   entry,
		name:    entry.NameFor(dir),
		reader:  src.Reader,
		db:      src.StateDB,
		minimum: initialMinimum,
		maximum: initialMaximum,
	}
	if s.reader == nil {
		s.reader = sysfs.NewReader(nil, "")
	}
	if entry.Source.Kind == platform.TRANSCEIVER && src.Transceivers != nil {
		s.xcvr = src.Transceivers(entry.Source.Port)
	}
	return s
}

// sysfsPath resolves file relative to the sensor source directory
func (s *Sensor) sysfsPath(file string) string {
	if s.entry.Source.Kind == platform.HWMON {
		return s.reader.HwmonPath(s.entry.Source.Dir, file)
	}
	return filepath.Join(s.entry.Source.Dir, file)
}

func (s *Sensor) Name() string {
	return s.name
}

func (s *Sensor) Index() int {
	return s.entry.Index
}

// Presence reports whether the sensor source can currently be read
func (s *Sensor) Presence() bool {
	if s.entry.AlwaysPresent {
		return true
	}

	switch s.entry.Source.Kind {
	case platform.HWMON, platform.THERMALZONE:
		return s.reader.Exists(s.sysfsPath(s.entry.Source.File))
	case platform.TRANSCEIVER:
		if s.xcvr == nil {
			return false
		}
		return s.xcvr.Presence()
	case platform.STATEDB:
		if s.db == nil {
			return false
		}
		ok, err := s.db.Exists(s.ctx, s.entry.Source.Table)
		if err != nil {
			zap.L().Warn("error checking state db for sensor "+s.name, zap.String("table", s.entry.Source.Table), zap.Error(err))
			return false
		}
		return ok
	}
	return false
}

// Status is true when the sensor is operating properly
func (s *Sensor) Status() bool {
	if s.entry.AlwaysHealthy {
		return true
	}
	return s.Presence()
}

// Temperature returns the current reading in Celsius rounded to the
// nearest thousandth of a degree.
func (s *Sensor) Temperature() (float64, bool) {
	switch s.entry.Source.Kind {
	case platform.HWMON:
		if !s.Presence() {
			return 0, false
		}
		return s.reader.ReadMilliCelsius(s.sysfsPath(s.entry.Source.File))
	case platform.THERMALZONE:
		return s.reader.ReadMilliCelsius(s.sysfsPath(s.entry.Source.File))
	case platform.STATEDB:
		return s.stateDBTemperature()
	case platform.TRANSCEIVER:
		if !s.Presence() {
			return 0, false
		}
		t, ok := s.xcvr.Temperature()
		if !ok {
			return 0, false
		}
		return sysfs.Round3(t), true
	}
	return 0, false
}

func (s *Sensor) stateDBTemperature() (float64, bool) {
	log := zap.L()
	if s.db == nil {
		return 0, false
	}

	raw, err := s.db.HGet(s.ctx, s.entry.Source.Table, s.entry.Source.Field)
	if err != nil {
		log.Warn("error getting temperature of "+s.name+" from state db", zap.String("table", s.entry.Source.Table),
			zap.String("field", s.entry.Source.Field), zap.Error(err))
		return 0, false
	}

	t, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Warn("error parsing temperature of "+s.name+" from state db", zap.String("value", raw), zap.Error(err))
		return 0, false
	}
	return sysfs.Round3(t), true
}

func (s *Sensor) threshold(th platform.Threshold) (float64, bool) {
	if th.Value != nil {
		return sysfs.Round3(*th.Value), true
	}
	v, ok := s.reader.ReadMilliCelsius(s.sysfsPath(th.File))
	if !ok {
		return 0, false
	}
	return sysfs.Round3(v + th.Offset), true
}

func (s *Sensor) HighThreshold() (float64, bool) {
	return s.threshold(s.entry.High)
}

func (s *Sensor) Caution2Threshold() (float64, bool) {
	return s.threshold(s.entry.Caution2)
}

func (s *Sensor) HighCriticalThreshold() (float64, bool) {
	return s.threshold(s.entry.Critical)
}

func (s *Sensor) LowThreshold() float64 {
	return LOW_THRESHOLD
}

func (s *Sensor) LowCriticalThreshold() float64 {
	return LOW_CRITICAL_THRESHOLD
}

// MinimumRecorded takes a reading and returns the lowest one seen so far
func (s *Sensor) MinimumRecorded() float64 {
	if t, ok := s.Temperature(); ok && t < s.minimum {
		s.minimum = t
	}
	return s.minimum
}

// MaximumRecorded takes a reading and returns the highest one seen so far
func (s *Sensor) MaximumRecorded() float64 {
	if t, ok := s.Temperature(); ok && t > s.maximum {
		s.maximum = t
	}
	return s.maximum
}

// PositionInParent is the 1-based position of the sensor
func (s *Sensor) PositionInParent() int {
	return s.entry.Index + 1
}

func (s *Sensor) Model() string {
	return NA
}

func (s *Sensor) Serial() string {
	return NA
}

func (s *Sensor) Replaceable() bool {
	return false
}
