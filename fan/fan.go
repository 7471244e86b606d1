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

package fan

import (
	"path/filepath"

	"github.com/comcast/thermalmon/platform"
	"github.com/comcast/thermalmon/sysfs"
)

// Fan is a fan module whose attributes are exposed by a sysfs driver
type Fan struct {
	entry  platform.FanEntry
	reader *sysfs.Reader
}

// NewFan returns the fan described by entry
func NewFan(entry platform.FanEntry, reader *sysfs.Reader) *Fan {
	if reader == nil {
		reader = sysfs.NewReader(nil, "")
	}
	return &Fan{entry: entry, reader: reader}
}

func (f *Fan) read(file string) (string, bool) {
	if file == "" {
		return "", false
	}
	return f.reader.ReadText(filepath.Join(f.entry.Dir, file))
}

func (f *Fan) Name() string {
	return f.entry.Name
}

// Presence is true when the present attribute reads 1
func (f *Fan) Presence() bool {
	v, ok := f.read(f.entry.PresentFile)
	return ok && v == "1"
}

// Status is true when the fan is present and not reporting a fault. A
// driver without a fault attribute only reports presence.
func (f *Fan) Status() bool {
	if !f.Presence() {
		return false
	}
	v, ok := f.read(f.entry.FaultFile)
	if !ok {
		return true
	}
	return v != "1"
}

// Direction compares the direction attribute with the exhaust value of the
// table entry.
func (f *Fan) Direction() platform.Direction {
	v, ok := f.read(f.entry.DirectionFile)
	if !ok {
		return platform.UNKNOWN
	}
	if v == f.entry.ExhaustValue {
		return platform.EXHAUST
	}
	return platform.INTAKE
}
