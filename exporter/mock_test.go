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

import "github.com/comcast/thermalmon/platform"

type mockFan struct {
	name    string
	present bool
	healthy bool
}

func (f *mockFan) Name() string                  { return f.name }
func (f *mockFan) Presence() bool                { return f.present }
func (f *mockFan) Status() bool                  { return f.healthy }
func (f *mockFan) Direction() platform.Direction { return platform.INTAKE }

type mockThermal struct {
	index   int
	name    string
	present bool
	temp    float64
}

func (t *mockThermal) Name() string                           { return t.name }
func (t *mockThermal) Index() int                             { return t.index }
func (t *mockThermal) Presence() bool                         { return t.present }
func (t *mockThermal) Status() bool                           { return t.present }
func (t *mockThermal) Temperature() (float64, bool)           { return t.temp, t.present }
func (t *mockThermal) HighThreshold() (float64, bool)         { return 90, true }
func (t *mockThermal) Caution2Threshold() (float64, bool)     { return 92, true }
func (t *mockThermal) HighCriticalThreshold() (float64, bool) { return 95, true }
func (t *mockThermal) LowThreshold() float64                  { return 2 }
func (t *mockThermal) LowCriticalThreshold() float64          { return 0 }
func (t *mockThermal) MinimumRecorded() float64               { return t.temp }
func (t *mockThermal) MaximumRecorded() float64               { return t.temp }
func (t *mockThermal) PositionInParent() int                  { return t.index + 1 }
func (t *mockThermal) Model() string                          { return "N/A" }
func (t *mockThermal) Serial() string                         { return "N/A" }
func (t *mockThermal) Replaceable() bool                      { return false }

type mockChassis struct {
	fans     []platform.Fan
	thermals []platform.Thermal
}

func (c *mockChassis) Fans() []platform.Fan { return c.fans }
func (c *mockChassis) NumThermals() int     { return len(c.thermals) }
func (c *mockChassis) Thermal(index int) platform.Thermal {
	return c.thermals[index]
}

func newMockChassis(temp float64, fanHealthy bool) (*mockChassis, *mockThermal) {
	cpu := &mockThermal{index: 0, name: "CPU Temp", present: true, temp: temp}
	return &mockChassis{
		fans:     []platform.Fan{&mockFan{name: "FAN-1", present: true, healthy: fanHealthy}},
		thermals: []platform.Thermal{cpu},
	}, cpu
}
