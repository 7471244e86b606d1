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
	"time"

	"github.com/comcast/thermalmon/platform"
)

// Info is a piece of information the thermal policy consumes. Collect is
// called once per poll.
type Info interface {
	Name() string
	Collect(chassis platform.Chassis)
}

// Collector runs the fan, thermal and chassis information in order
type Collector struct {
	Fan     *FanInfo
	Thermal *ThermalInfo
	Chassis *ChassisInfo

	infos []Info
}

// FanState is the exported view of a single fan
type FanState struct {
	Name    string `json:"name"`
	Present bool   `json:"present"`
	Faulty  bool   `json:"faulty"`
}

// Status holds the chassis wide band membership of a poll
type Status struct {
	OverNormal       bool `json:"over_normal_threshold"`
	OverHigh         bool `json:"over_high_threshold"`
	OverHighCritical bool `json:"over_high_critical_threshold"`
	WarmUp           bool `json:"warm_up_and_over_high_threshold"`
}

// Snapshot is the result of a single poll
type Snapshot struct {
	Time             time.Time          `json:"time"`
	Fans             []FanState         `json:"fans"`
	FanStatusChanged bool               `json:"fan_status_changed"`
	Sensors          []SensorState      `json:"sensors"`
	Temperatures     map[string]float64 `json:"temperatures"`
	Status           Status             `json:"status"`
}

func NewCollector() *Collector {
	c := &Collector{
		Fan:     NewFanInfo(),
		Thermal: NewThermalInfo(),
		Chassis: NewChassisInfo(),
	}
	c.infos = []Info{c.Fan, c.Thermal, c.Chassis}
	return c
}

// Infos returns the registered information keyed by name
func (c *Collector) Infos() map[string]Info {
	out := make(map[string]Info, len(c.infos))
	for _, i := range c.infos {
		out[i.Name()] = i
	}
	return out
}

// Collect runs a single poll against chassis and returns its snapshot
func (c *Collector) Collect(chassis platform.Chassis) Snapshot {
	for _, i := range c.infos {
		i.Collect(chassis)
	}

	snap := Snapshot{
		Time:             time.Now(),
		FanStatusChanged: c.Fan.StatusChanged(),
		Sensors:          c.Thermal.Sensors(),
		Temperatures:     c.Thermal.TempMap(),
		Status: Status{
			OverNormal:       c.Thermal.IsOverNormalThreshold(),
			OverHigh:         c.Thermal.IsOverHighThreshold(),
			OverHighCritical: c.Thermal.IsOverHighCriticalThreshold(),
			WarmUp:           c.Thermal.IsWarmUpAndOverHighThreshold(),
		},
	}

	for _, f := range chassis.Fans() {
		snap.Fans = append(snap.Fans, FanState{
			Name:    f.Name(),
			Present: c.Fan.IsPresent(f),
			Faulty:  c.Fan.IsFaulty(f),
		})
	}

	return snap
}
