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
	"encoding/json"
	"testing"

	"github.com/comcast/thermalmon/platform"
	"github.com/stretchr/testify/assert"
)

func Test_Collector(t *testing.T) {
	assert := assert.New(t)
	fan1 := &mockFan{name: "FAN-1", presence: true, status: true}
	fan2 := &mockFan{name: "FAN-2", presence: true, status: false}
	mac := newMockThermal(0, "MAC Temp", 100, 105, 108)
	mac.temp = 106
	chassis := &mockChassis{fans: []platform.Fan{fan1, fan2}, thermals: []*mockThermal{mac}}

	c := NewCollector()
	infos := c.Infos()
	assert.Len(infos, 3)
	assert.Equal(c.Fan, infos[FAN_INFO])
	assert.Equal(c.Thermal, infos[THERMAL_INFO])
	assert.Equal(c.Chassis, infos[CHASSIS_INFO])

	snap := c.Collect(chassis)
	assert.Equal(chassis, c.Chassis.Chassis())
	assert.True(snap.FanStatusChanged)
	assert.Equal([]FanState{
		{Name: "FAN-1", Present: true, Faulty: false},
		{Name: "FAN-2", Present: true, Faulty: true},
	}, snap.Fans)
	assert.Equal(Status{OverHigh: true}, snap.Status)
	assert.Equal(map[string]float64{"MAC Temp": 106}, snap.Temperatures)
	if assert.Len(snap.Sensors, 1) {
		assert.Equal(BAND_HIGH, snap.Sensors[0].Band)
		assert.Equal(108.0, snap.Sensors[0].Critical)
		assert.True(snap.Sensors[0].Evaluated)
	}

	snap = c.Collect(chassis)
	assert.False(snap.FanStatusChanged)
	assert.Equal(Status{OverHigh: true, WarmUp: true}, snap.Status)

	b, err := json.Marshal(snap)
	assert.Nil(err)
	assert.Contains(string(b), `"warm_up_and_over_high_threshold":true`)
	assert.Contains(string(b), `"band":"high"`)
}
