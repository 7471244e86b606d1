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

import "github.com/comcast/thermalmon/platform"

type mockFan struct {
	name     string
	presence bool
	status   bool
}

func (f *mockFan) Name() string                  { return f.name }
func (f *mockFan) Presence() bool                { return f.presence }
func (f *mockFan) Status() bool                  { return f.status }
func (f *mockFan) Direction() platform.Direction { return platform.INTAKE }

type mockThermal struct {
	index    int
	name     string
	presence bool
	temp     float64
	tempOK   bool
	normal   float64
	high     float64
	critical float64
}

func newMockThermal(index int, name string, normal, high, critical float64) *mockThermal {
	return &mockThermal{
		index:    index,
		name:     name,
		presence: true,
		tempOK:   true,
		normal:   normal,
		high:     high,
		critical: critical,
	}
}

func (t *mockThermal) Name() string                           { return t.name }
func (t *mockThermal) Index() int                             { return t.index }
func (t *mockThermal) Presence() bool                         { return t.presence }
func (t *mockThermal) Status() bool                           { return t.presence }
func (t *mockThermal) Temperature() (float64, bool)           { return t.temp, t.tempOK }
func (t *mockThermal) HighThreshold() (float64, bool)         { return t.normal, true }
func (t *mockThermal) Caution2Threshold() (float64, bool)     { return t.high, true }
func (t *mockThermal) HighCriticalThreshold() (float64, bool) { return t.critical, true }
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
	thermals []*mockThermal
}

func (c *mockChassis) Fans() []platform.Fan { return c.fans }
func (c *mockChassis) NumThermals() int     { return len(c.thermals) }
func (c *mockChassis) Thermal(index int) platform.Thermal {
	return c.thermals[index]
}
