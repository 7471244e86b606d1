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

package exporter

import (
	"strconv"
	"sync"
	"time"

	"github.com/comcast/thermalmon/platform"
	"github.com/comcast/thermalmon/thermalinfo"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	// OK is a string representation of the float 1.0 for device status
	OK = 1.0
	// BAD is a string representation of the float 0.0 for device status
	BAD = 0.0
)

// Exporter polls the chassis on every scrape and exports the thermal
// policy information using the prometheus metrics package.
type Exporter struct {
	mutex         sync.RWMutex
	chassis       platform.Chassis
	collector     *thermalinfo.Collector
	last          *thermalinfo.Snapshot
	DeviceMetrics *map[string]*metrics
}

// NewExporter returns an initialized Exporter for the given chassis
func NewExporter(chassis platform.Chassis, platformName string) *Exporter {
	return &Exporter{
		chassis:       chassis,
		collector:     thermalinfo.NewCollector(),
		DeviceMetrics: NewDeviceMetrics(platformName),
	}
}

// Describe describes all the metrics ever exported by the thermalmon exporter. It
// implements prometheus.Collector.
func (e *Exporter) Describe(ch chan<- *prometheus.Desc) {
	for _, m := range *e.DeviceMetrics {
		for _, n := range *m {
			n.Describe(ch)
		}
	}
}

// Collect performs a poll of the chassis and delivers the result as
// Prometheus metrics. It implements prometheus.Collector.
func (e *Exporter) Collect(ch chan<- prometheus.Metric) {
	e.mutex.Lock() // To protect metrics from concurrent collects.
	defer e.mutex.Unlock()

	e.resetMetrics()
	e.scrape()
	e.collectMetrics(ch)
}

// Poll runs a single poll outside of a prometheus scrape
func (e *Exporter) Poll() thermalinfo.Snapshot {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.resetMetrics()
	e.scrape()
	return *e.last
}

// Snapshot returns the result of the last poll, false before the first one
func (e *Exporter) Snapshot() (thermalinfo.Snapshot, bool) {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	if e.last == nil {
		return thermalinfo.Snapshot{}, false
	}
	return *e.last, true
}

func (e *Exporter) resetMetrics() {
	for _, m := range *e.DeviceMetrics {
		for _, n := range *m {
			n.Reset()
		}
	}
}

func (e *Exporter) collectMetrics(metrics chan<- prometheus.Metric) {
	for _, m := range *e.DeviceMetrics {
		for _, n := range *m {
			n.Collect(metrics)
		}
	}
}

func (e *Exporter) scrape() {
	log := zap.L()
	start := time.Now()

	snap := e.collector.Collect(e.chassis)
	e.last = &snap

	e.exportSensorMetrics(snap)
	e.exportFanMetrics(snap)

	// a poll never fails, unavailable readings are only missing series
	var upMetric = (*e.DeviceMetrics)["up"]
	(*upMetric)["up"].WithLabelValues().Set(OK)

	log.Debug("finished poll",
		zap.Int("sensors", len(snap.Sensors)),
		zap.Int("fans", len(snap.Fans)),
		zap.Bool("fan_status_changed", snap.FanStatusChanged),
		zap.Float64("elapsed_time_sec", time.Since(start).Seconds()))
}

func boolToFloat(b bool) float64 {
	if b {
		return OK
	}
	return BAD
}

// exportSensorMetrics sets the per sensor and chassis wide thermal gauges
func (e *Exporter) exportSensorMetrics(snap thermalinfo.Snapshot) {
	var sm = (*e.DeviceMetrics)["sensorMetrics"]

	for _, s := range snap.Sensors {
		idx := strconv.Itoa(s.Index)
		(*sm)["present"].WithLabelValues(s.Name, idx).Set(boolToFloat(s.Present))

		// sensors never evaluated have no reading or thresholds to export
		if !s.Evaluated {
			continue
		}

		if s.Present {
			(*sm)["temperature"].WithLabelValues(s.Name, idx).Set(s.Temperature)
		}
		(*sm)["threshold"].WithLabelValues(s.Name, idx, "high").Set(s.High)
		(*sm)["threshold"].WithLabelValues(s.Name, idx, "caution2").Set(s.Caution2)
		(*sm)["threshold"].WithLabelValues(s.Name, idx, "critical").Set(s.Critical)
		for _, b := range thermalinfo.Bands {
			(*sm)["band"].WithLabelValues(s.Name, idx, string(b)).Set(boolToFloat(s.Band == b))
		}
		(*sm)["warmUp"].WithLabelValues(s.Name, idx).Set(boolToFloat(s.WarmUp))
		(*sm)["minRecorded"].WithLabelValues(s.Name, idx).Set(s.MinRecorded)
		(*sm)["maxRecorded"].WithLabelValues(s.Name, idx).Set(s.MaxRecorded)
	}

	(*sm)["sensorStatus"].WithLabelValues("normal").Set(boolToFloat(snap.Status.OverNormal))
	(*sm)["sensorStatus"].WithLabelValues("high").Set(boolToFloat(snap.Status.OverHigh))
	(*sm)["sensorStatus"].WithLabelValues("critical").Set(boolToFloat(snap.Status.OverHighCritical))
	(*sm)["sensorStatus"].WithLabelValues("warm_up").Set(boolToFloat(snap.Status.WarmUp))
}

// exportFanMetrics sets the fan presence and fault gauges
func (e *Exporter) exportFanMetrics(snap thermalinfo.Snapshot) {
	var fm = (*e.DeviceMetrics)["fanMetrics"]

	for _, f := range snap.Fans {
		(*fm)["present"].WithLabelValues(f.Name).Set(boolToFloat(f.Present))
		(*fm)["fault"].WithLabelValues(f.Name).Set(boolToFloat(f.Faulty))
	}
	(*fm)["statusChanged"].WithLabelValues().Set(boolToFloat(snap.FanStatusChanged))
}
