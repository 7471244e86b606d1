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
	"sort"

	"github.com/comcast/thermalmon/platform"
)

// FAN_INFO is the name the fan information is registered under
const FAN_INFO = "fan_info"

type fanSet map[platform.Fan]struct{}

func (s fanSet) has(f platform.Fan) bool {
	_, ok := s[f]
	return ok
}

func (s fanSet) list() []platform.Fan {
	out := make([]platform.Fan, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// FanInfo tracks which fans are absent, present and faulty across polls.
// A fan is always in exactly one of the absence and presence sets once it
// has been seen; fault membership is tracked independently.
type FanInfo struct {
	absence       fanSet
	presence      fanSet
	fault         fanSet
	statusChanged bool
}

func NewFanInfo() *FanInfo {
	return &FanInfo{
		absence:  fanSet{},
		presence: fanSet{},
		fault:    fanSet{},
	}
}

func (fi *FanInfo) Name() string {
	return FAN_INFO
}

// Collect updates the fan sets from the current state of every chassis fan
func (fi *FanInfo) Collect(chassis platform.Chassis) {
	fi.statusChanged = false

	for _, f := range chassis.Fans() {
		status := f.Status()
		present := f.Presence()

		if present && !fi.presence.has(f) {
			fi.presence[f] = struct{}{}
			delete(fi.absence, f)
			fi.statusChanged = true
		} else if !present && !fi.absence.has(f) {
			fi.absence[f] = struct{}{}
			delete(fi.presence, f)
			fi.statusChanged = true
		}

		if !status && !fi.fault.has(f) {
			fi.fault[f] = struct{}{}
			fi.statusChanged = true
		} else if status && fi.fault.has(f) {
			delete(fi.fault, f)
			fi.statusChanged = true
		}
	}
}

// AbsenceFans returns the absent fans ordered by name
func (fi *FanInfo) AbsenceFans() []platform.Fan {
	return fi.absence.list()
}

// PresenceFans returns the present fans ordered by name
func (fi *FanInfo) PresenceFans() []platform.Fan {
	return fi.presence.list()
}

// FaultFans returns the faulty fans ordered by name
func (fi *FanInfo) FaultFans() []platform.Fan {
	return fi.fault.list()
}

func (fi *FanInfo) IsAbsent(f platform.Fan) bool {
	return fi.absence.has(f)
}

func (fi *FanInfo) IsPresent(f platform.Fan) bool {
	return fi.presence.has(f)
}

func (fi *FanInfo) IsFaulty(f platform.Fan) bool {
	return fi.fault.has(f)
}

// StatusChanged is true when any set membership changed during the last
// Collect.
func (fi *FanInfo) StatusChanged() bool {
	return fi.statusChanged
}
