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
	"errors"
	"testing"

	"github.com/comcast/thermalmon/platform"
	"github.com/comcast/thermalmon/statedb"
	"github.com/comcast/thermalmon/sysfs"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

type mockDB struct {
	hashes map[string]map[string]string
	err    error
}

func (m *mockDB) HGet(ctx context.Context, key, field string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if h, ok := m.hashes[key]; ok {
		if v, ok := h[field]; ok {
			return v, nil
		}
	}
	return "", statedb.ErrNotFound
}

func (m *mockDB) Exists(ctx context.Context, key string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.hashes[key]
	return ok, nil
}

func newReader(t *testing.T, files map[string]string) *sysfs.Reader {
	fs := afero.NewMemMapFs()
	for path, data := range files {
		if err := afero.WriteFile(fs, path, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return sysfs.NewReader(fs, "")
}

func defaultSensors(t *testing.T) []platform.SensorEntry {
	table, err := platform.DefaultTable()
	if err != nil {
		t.Fatal(err)
	}
	return table.Sorted()
}

func Test_HwmonSensor(t *testing.T) {
	assert := assert.New(t)
	entries := defaultSensors(t)
	reader := newReader(t, map[string]string{
		"/sys/bus/i2c/devices/2-004a/hwmon/hwmon2/temp1_input": "41500\n",
		"/sys/bus/i2c/devices/2-004a/hwmon/hwmon2/temp1_max":   "84000\n",
		"/sys/bus/i2c/devices/3-0059/hwmon/hwmon5/temp1_input": "35125\n",
		"/sys/bus/i2c/devices/3-0059/hwmon/hwmon5/temp1_max":   "70000\n",
		"/sys/bus/i2c/devices/3-0059/hwmon/hwmon5/temp1_crit":  "75000\n",
	})
	src := Sources{Reader: reader}
	ctx := context.Background()

	ambient := NewSensor(ctx, entries[0], platform.INTAKE, src)
	assert.Equal("System Ambient", ambient.Name())
	assert.True(ambient.Presence())
	assert.True(ambient.Status())
	temp, ok := ambient.Temperature()
	assert.True(ok)
	assert.Equal(41.5, temp)
	high, _ := ambient.HighThreshold()
	caution2, _ := ambient.Caution2Threshold()
	critical, ok := ambient.HighCriticalThreshold()
	assert.True(ok)
	assert.Equal([]float64{80, 82, 84}, []float64{high, caution2, critical})
	assert.Equal(1, ambient.PositionInParent())

	exhaust := NewSensor(ctx, entries[0], platform.EXHAUST, src)
	assert.Equal("XFMR Ambient", exhaust.Name())

	psu := NewSensor(ctx, entries[3], platform.EXHAUST, src)
	assert.Equal("PSU 1 Temp", psu.Name())
	high, _ = psu.HighThreshold()
	caution2, _ = psu.Caution2Threshold()
	critical, _ = psu.HighCriticalThreshold()
	assert.Equal([]float64{70, 72, 75}, []float64{high, caution2, critical})

	// no hwmon tree for the second PSU
	missing := NewSensor(ctx, entries[4], platform.INTAKE, src)
	assert.False(missing.Presence())
	assert.False(missing.Status())
	_, ok = missing.Temperature()
	assert.False(ok)
	_, ok = missing.HighThreshold()
	assert.False(ok)
	_, ok = missing.HighCriticalThreshold()
	assert.False(ok)
}

func Test_ThermalZoneSensor(t *testing.T) {
	assert := assert.New(t)
	entries := defaultSensors(t)
	ctx := context.Background()

	cpu := NewSensor(ctx, entries[5], platform.INTAKE, Sources{Reader: newReader(t, map[string]string{
		"/sys/devices/virtual/thermal/thermal_zone1/temp": "47333\n",
	})})
	assert.Equal("CPU Temp", cpu.Name())
	assert.True(cpu.Presence())
	temp, ok := cpu.Temperature()
	assert.True(ok)
	assert.Equal(47.333, temp)
	critical, _ := cpu.HighCriticalThreshold()
	assert.Equal(95.0, critical)

	gone := NewSensor(ctx, entries[5], platform.INTAKE, Sources{Reader: newReader(t, nil)})
	assert.False(gone.Presence())
	_, ok = gone.Temperature()
	assert.False(ok)
}

func Test_StateDBSensor(t *testing.T) {
	assert := assert.New(t)
	entries := defaultSensors(t)
	ctx := context.Background()

	db := &mockDB{hashes: map[string]map[string]string{
		"ASIC_TEMPERATURE_INFO": {"temperature_0": "57", "maximum_temperature": "63"},
	}}
	mac := NewSensor(ctx, entries[7], platform.INTAKE, Sources{StateDB: db})
	assert.Equal("MAC Temp", mac.Name())
	assert.True(mac.Presence())
	assert.True(mac.Status())
	temp, ok := mac.Temperature()
	assert.True(ok)
	assert.Equal(57.0, temp)
	high, _ := mac.HighThreshold()
	caution2, _ := mac.Caution2Threshold()
	critical, _ := mac.HighCriticalThreshold()
	assert.Equal([]float64{100, 105, 108}, []float64{high, caution2, critical})

	// query failures are unavailable readings, the sensor stays healthy
	broken := NewSensor(ctx, entries[7], platform.INTAKE, Sources{StateDB: &mockDB{err: errors.New("connection refused")}})
	assert.True(broken.Presence())
	assert.True(broken.Status())
	_, ok = broken.Temperature()
	assert.False(ok)

	garbage := NewSensor(ctx, entries[7], platform.INTAKE, Sources{StateDB: &mockDB{hashes: map[string]map[string]string{
		"ASIC_TEMPERATURE_INFO": {"temperature_0": "N/A"},
	}}})
	_, ok = garbage.Temperature()
	assert.False(ok)
}

func Test_TransceiverSensor(t *testing.T) {
	assert := assert.New(t)
	entries := defaultSensors(t)
	ctx := context.Background()

	db := &mockDB{hashes: map[string]map[string]string{
		"TRANSCEIVER_INFO|Ethernet48":       {"type": "QSFP28"},
		"TRANSCEIVER_DOM_SENSOR|Ethernet48": {"temperature": "33.2578125"},
		"TRANSCEIVER_INFO|Ethernet49":       {"type": "QSFP28"},
		"TRANSCEIVER_DOM_SENSOR|Ethernet49": {"temperature": "N/A"},
	}}
	src := Sources{StateDB: db, Transceivers: NewStateDBTransceivers(ctx, db)}

	xcvr1 := NewSensor(ctx, entries[8], platform.INTAKE, src)
	assert.Equal("XCVR 1 Temp", xcvr1.Name())
	assert.True(xcvr1.Presence())
	temp, ok := xcvr1.Temperature()
	assert.True(ok)
	assert.Equal(33.258, temp)

	xcvr2 := NewSensor(ctx, entries[9], platform.INTAKE, src)
	assert.True(xcvr2.Presence())
	_, ok = xcvr2.Temperature()
	assert.False(ok)

	xcvr3 := NewSensor(ctx, entries[10], platform.INTAKE, src)
	assert.False(xcvr3.Presence())
	assert.False(xcvr3.Status())
	_, ok = xcvr3.Temperature()
	assert.False(ok)

	noFactory := NewSensor(ctx, entries[8], platform.INTAKE, Sources{})
	assert.False(noFactory.Presence())
}

func Test_RecordedExtrema(t *testing.T) {
	assert := assert.New(t)
	entries := defaultSensors(t)
	ctx := context.Background()

	db := &mockDB{hashes: map[string]map[string]string{
		"ASIC_TEMPERATURE_INFO": {"temperature_0": "60"},
	}}
	mac := NewSensor(ctx, entries[7], platform.INTAKE, Sources{StateDB: db})

	assert.Equal(60.0, mac.MinimumRecorded())
	assert.Equal(60.0, mac.MaximumRecorded())

	db.hashes["ASIC_TEMPERATURE_INFO"]["temperature_0"] = "72"
	assert.Equal(60.0, mac.MinimumRecorded())
	assert.Equal(72.0, mac.MaximumRecorded())

	db.hashes["ASIC_TEMPERATURE_INFO"]["temperature_0"] = "55.5"
	assert.Equal(55.5, mac.MinimumRecorded())
	assert.Equal(72.0, mac.MaximumRecorded())

	// unavailable readings keep the held values
	db.err = errors.New("timeout")
	assert.Equal(55.5, mac.MinimumRecorded())
	assert.Equal(72.0, mac.MaximumRecorded())

	fresh := NewSensor(ctx, entries[7], platform.INTAKE, Sources{StateDB: db})
	assert.Equal(150.0, fresh.MinimumRecorded())
	assert.Equal(0.0, fresh.MaximumRecorded())
}

func Test_StaticAttributes(t *testing.T) {
	assert := assert.New(t)
	entries := defaultSensors(t)
	s := NewSensor(context.Background(), entries[13], platform.INTAKE, Sources{})

	assert.Equal(13, s.Index())
	assert.Equal(14, s.PositionInParent())
	assert.Equal(2.0, s.LowThreshold())
	assert.Equal(0.0, s.LowCriticalThreshold())
	assert.Equal("N/A", s.Model())
	assert.Equal("N/A", s.Serial())
	assert.False(s.Replaceable())
}
