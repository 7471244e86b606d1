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

// CHASSIS_INFO is the name the chassis information is registered under
const CHASSIS_INFO = "chassis_info"

// ChassisInfo keeps a reference to the platform chassis of the last poll
type ChassisInfo struct {
	chassis platform.Chassis
}

func NewChassisInfo() *ChassisInfo {
	return &ChassisInfo{}
}

func (ci *ChassisInfo) Name() string {
	return CHASSIS_INFO
}

func (ci *ChassisInfo) Collect(chassis platform.Chassis) {
	ci.chassis = chassis
}

func (ci *ChassisInfo) Chassis() platform.Chassis {
	return ci.chassis
}
