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
	"github.com/prometheus/client_golang/prometheus"
)

type metrics map[string]*prometheus.GaugeVec

func newServerMetric(metricName string, docString string, constLabels prometheus.Labels, labelNames []string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name:        metricName,
			Help:        docString,
			ConstLabels: constLabels,
		},
		labelNames,
	)
}

func NewDeviceMetrics(platform string) *map[string]*metrics {
	constLabels := prometheus.Labels{"platform": platform}
	var (
		UpMetric = &metrics{
			"up": newServerMetric("up", "was the last poll of thermalmon successful.", constLabels, []string{}),
		}

		SensorMetrics = &metrics{
			"temperature":  newServerMetric("thermal_sensor_temperature_celsius", "Current sensor temperature reading in Celsius", constLabels, []string{"name", "index"}),
			"threshold":    newServerMetric("thermal_sensor_threshold_celsius", "Sensor threshold in Celsius by type, high = lower bound of the normal band, caution2 = lower bound of the high band, critical = lower bound of the critical band", constLabels, []string{"name", "index", "type"}),
			"band":         newServerMetric("thermal_sensor_band", "Current sensor band, 1 for the band the reading falls in", constLabels, []string{"name", "index", "band"}),
			"warmUp":       newServerMetric("thermal_sensor_warm_up", "Sensor stayed in the high band across two consecutive polls 1 = YES, 0 = NO", constLabels, []string{"name", "index"}),
			"present":      newServerMetric("thermal_sensor_present", "Current sensor presence 1 = PRESENT, 0 = ABSENT", constLabels, []string{"name", "index"}),
			"minRecorded":  newServerMetric("thermal_sensor_min_recorded_celsius", "Lowest temperature recorded since start in Celsius", constLabels, []string{"name", "index"}),
			"maxRecorded":  newServerMetric("thermal_sensor_max_recorded_celsius", "Highest temperature recorded since start in Celsius", constLabels, []string{"name", "index"}),
			"sensorStatus": newServerMetric("thermal_status", "Chassis wide band membership of the last poll 1 = YES, 0 = NO", constLabels, []string{"state"}),
		}

		FanMetrics = &metrics{
			"present":       newServerMetric("thermal_fan_present", "Current fan presence 1 = PRESENT, 0 = ABSENT", constLabels, []string{"name"}),
			"fault":         newServerMetric("thermal_fan_fault", "Current fan fault 1 = FAULT, 0 = OK", constLabels, []string{"name"}),
			"statusChanged": newServerMetric("thermal_fan_status_changed", "Fan presence or fault changed during the last poll 1 = YES, 0 = NO", constLabels, []string{}),
		}

		Metrics = &map[string]*metrics{
			"up":            UpMetric,
			"sensorMetrics": SensorMetrics,
			"fanMetrics":    FanMetrics,
		}
	)

	return Metrics
}
