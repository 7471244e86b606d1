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

// Direction is the airflow direction reported by a fan module
type Direction string

const (
	// INTAKE represents front to back airflow
	INTAKE Direction = "intake"
	// EXHAUST represents back to front airflow
	EXHAUST Direction = "exhaust"
	// UNKNOWN is used when the direction cannot be read
	UNKNOWN Direction = "unknown"
)

// Thermal is a single temperature sensor of the chassis. Readings that
// return false as their second value are unavailable for this poll.
type Thermal interface {
	Name() string
	Index() int
	Presence() bool
	Status() bool
	Temperature() (float64, bool)

	// HighThreshold is the lower bound of the normal band
	HighThreshold() (float64, bool)
	// Caution2Threshold is the lower bound of the high band
	Caution2Threshold() (float64, bool)
	// HighCriticalThreshold is the lower bound of the critical band
	HighCriticalThreshold() (float64, bool)

	LowThreshold() float64
	LowCriticalThreshold() float64
	MinimumRecorded() float64
	MaximumRecorded() float64
	PositionInParent() int
	Model() string
	Serial() string
	Replaceable() bool
}

// Fan is a single fan module of the chassis
type Fan interface {
	Name() string
	Presence() bool
	Status() bool
	Direction() Direction
}

// Chassis exposes the enumerable devices of the platform
type Chassis interface {
	Fans() []Fan
	NumThermals() int
	Thermal(index int) Thermal
}
