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

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_DefaultTable(t *testing.T) {
	assert := assert.New(t)

	table, err := DefaultTable()
	assert.Nil(err)
	assert.Equal("es2227-54ts", table.Platform)
	assert.Len(table.Sensors, 14)
	assert.Len(table.Fans, 4)

	sensors := table.Sorted()
	for i, s := range sensors {
		assert.Equal(i, s.Index)
	}

	assert.Equal("XFMR Ambient", sensors[0].NameFor(EXHAUST))
	assert.Equal("System Ambient", sensors[0].NameFor(INTAKE))
	assert.Equal("System Ambient", sensors[0].NameFor(UNKNOWN))
	assert.Equal("PSU 1 Temp", sensors[3].NameFor(EXHAUST))

	assert.Equal(HWMON, sensors[3].Source.Kind)
	assert.Equal("temp1_max", sensors[3].Caution2.File)
	assert.Equal(2.0, sensors[3].Caution2.Offset)

	assert.Equal(THERMALZONE, sensors[5].Source.Kind)
	assert.Equal(95.0, *sensors[5].Critical.Value)

	assert.Equal(STATEDB, sensors[7].Source.Kind)
	assert.True(sensors[7].AlwaysPresent)
	assert.True(sensors[7].AlwaysHealthy)

	assert.Equal(TRANSCEIVER, sensors[13].Source.Kind)
	assert.Equal("Ethernet53", sensors[13].Source.Port)
	assert.Equal(70.0, *sensors[13].Critical.Value)
}

func Test_TableValidation(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		name  string
		table string
		err   string
	}{
		{
			name: "duplicate index",
			table: `
sensors:
  - {index: 0, name: a, source: {kind: statedb, table: T, field: f}, high: {value: 1}, caution2: {value: 2}, critical: {value: 3}}
  - {index: 0, name: b, source: {kind: statedb, table: T, field: f}, high: {value: 1}, caution2: {value: 2}, critical: {value: 3}}
`,
			err: "duplicate sensor index 0",
		},
		{
			name: "index out of range",
			table: `
sensors:
  - {index: 4, name: a, source: {kind: statedb, table: T, field: f}, high: {value: 1}, caution2: {value: 2}, critical: {value: 3}}
`,
			err: "out of range",
		},
		{
			name: "unknown kind",
			table: `
sensors:
  - {index: 0, name: a, source: {kind: ipmi}, high: {value: 1}, caution2: {value: 2}, critical: {value: 3}}
`,
			err: "unknown source kind",
		},
		{
			name: "missing threshold",
			table: `
sensors:
  - {index: 0, name: a, source: {kind: hwmon, dir: /x, file: temp1_input}, high: {value: 1}, caution2: {value: 2}}
`,
			err: "critical threshold needs a value or a file",
		},
		{
			name: "threshold file on statedb",
			table: `
sensors:
  - {index: 0, name: a, source: {kind: statedb, table: T, field: f}, high: {file: temp1_max}, caution2: {value: 2}, critical: {value: 3}}
`,
			err: "needs a sysfs source",
		},
		{
			name: "fan without dir",
			table: `
fans:
  - {name: FAN-1}
`,
			err: "fan 0 requires name and dir",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.table))
			if assert.Error(err) {
				assert.Contains(err.Error(), test.err)
			}
		})
	}
}

func Test_LoadTable(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "table.yaml")
	err := os.WriteFile(path, []byte(`
platform: test
sensors:
  - index: 0
    name: MAC Temp
    source: {kind: statedb, table: ASIC_TEMPERATURE_INFO, field: temperature_0}
    high: {value: 100}
    caution2: {value: 105}
    critical: {value: 108}
`), 0644)
	assert.Nil(err)

	table, err := Load(path)
	assert.Nil(err)
	assert.Equal("test", table.Platform)
	assert.Len(table.Sensors, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(err)
}
