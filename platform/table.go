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
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SourceKind is the hardware source a sensor is read from
type SourceKind string

const (
	// HWMON reads <dir>/hwmon*/<file>
	HWMON SourceKind = "hwmon"
	// THERMALZONE reads <dir>/<file>
	THERMALZONE SourceKind = "thermalzone"
	// STATEDB reads a hash field from the state database
	STATEDB SourceKind = "statedb"
	// TRANSCEIVER delegates to the transceiver in the given port
	TRANSCEIVER SourceKind = "transceiver"
)

//go:embed es2227_54ts.yaml
var es2227Table []byte

// Table is the per chassis configuration of every fan and thermal sensor
type Table struct {
	Platform string        `yaml:"platform"`
	Fans     []FanEntry    `yaml:"fans"`
	Sensors  []SensorEntry `yaml:"sensors"`
}

// FanEntry describes where the sysfs attributes of a fan module live
type FanEntry struct {
	Name          string `yaml:"name"`
	Dir           string `yaml:"dir"`
	PresentFile   string `yaml:"presentFile"`
	FaultFile     string `yaml:"faultFile"`
	DirectionFile string `yaml:"directionFile"`
	ExhaustValue  string `yaml:"exhaustValue"`
}

// SensorEntry maps a logical sensor index to its source and thresholds
type SensorEntry struct {
	Index         int       `yaml:"index"`
	Name          string    `yaml:"name"`
	ExhaustName   string    `yaml:"exhaustName,omitempty"`
	Source        Source    `yaml:"source"`
	High          Threshold `yaml:"high"`
	Caution2      Threshold `yaml:"caution2"`
	Critical      Threshold `yaml:"critical"`
	AlwaysPresent bool      `yaml:"alwaysPresent,omitempty"`
	AlwaysHealthy bool      `yaml:"alwaysHealthy,omitempty"`
}

// Source is the hardware source of a sensor reading
type Source struct {
	Kind  SourceKind `yaml:"kind"`
	Dir   string     `yaml:"dir,omitempty"`
	File  string     `yaml:"file,omitempty"`
	Table string     `yaml:"table,omitempty"`
	Field string     `yaml:"field,omitempty"`
	Port  string     `yaml:"port,omitempty"`
}

// Threshold is either a fixed value or a file read through the sensor
// source directory, in millidegrees, with an optional offset added
// after scaling.
type Threshold struct {
	Value  *float64 `yaml:"value,omitempty"`
	File   string   `yaml:"file,omitempty"`
	Offset float64  `yaml:"offset,omitempty"`
}

// NameFor returns the sensor name for the given airflow direction
func (s SensorEntry) NameFor(dir Direction) string {
	if dir == EXHAUST && s.ExhaustName != "" {
		return s.ExhaustName
	}
	return s.Name
}

// DefaultTable returns the built in es2227-54ts table
func DefaultTable() (*Table, error) {
	return Parse(es2227Table)
}

// Load reads and validates a table from the given path
func Load(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading platform table %s - %w", path, err)
	}
	return Parse(b)
}

// Parse decodes and validates a yaml table
func Parse(b []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("error unmarshalling platform table - %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks that sensor indexes are dense and unique and that every
// source and threshold can be resolved.
func (t *Table) Validate() error {
	seen := make(map[int]bool, len(t.Sensors))
	for _, s := range t.Sensors {
		if s.Index < 0 || s.Index >= len(t.Sensors) {
			return fmt.Errorf("sensor %q has index %d out of range [0,%d)", s.Name, s.Index, len(t.Sensors))
		}
		if seen[s.Index] {
			return fmt.Errorf("duplicate sensor index %d", s.Index)
		}
		seen[s.Index] = true

		if s.Name == "" {
			return fmt.Errorf("sensor %d has no name", s.Index)
		}

		switch s.Source.Kind {
		case HWMON, THERMALZONE:
			if s.Source.Dir == "" || s.Source.File == "" {
				return fmt.Errorf("sensor %d: %s source requires dir and file", s.Index, s.Source.Kind)
			}
		case STATEDB:
			if s.Source.Table == "" || s.Source.Field == "" {
				return fmt.Errorf("sensor %d: statedb source requires table and field", s.Index)
			}
		case TRANSCEIVER:
			if s.Source.Port == "" {
				return fmt.Errorf("sensor %d: transceiver source requires port", s.Index)
			}
		default:
			return fmt.Errorf("sensor %d: unknown source kind %q", s.Index, s.Source.Kind)
		}

		for name, th := range map[string]Threshold{"high": s.High, "caution2": s.Caution2, "critical": s.Critical} {
			if th.Value == nil && th.File == "" {
				return fmt.Errorf("sensor %d: %s threshold needs a value or a file", s.Index, name)
			}
			if th.File != "" && s.Source.Kind != HWMON && s.Source.Kind != THERMALZONE {
				return fmt.Errorf("sensor %d: %s threshold file needs a sysfs source", s.Index, name)
			}
		}
	}

	for i, f := range t.Fans {
		if f.Name == "" || f.Dir == "" {
			return fmt.Errorf("fan %d requires name and dir", i)
		}
	}

	return nil
}

// Sorted returns the sensor entries ordered by index
func (t *Table) Sorted() []SensorEntry {
	out := make([]SensorEntry, len(t.Sensors))
	for _, s := range t.Sensors {
		out[s.Index] = s
	}
	return out
}
