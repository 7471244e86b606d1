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

package chassis

import (
	"context"

	"github.com/comcast/thermalmon/fan"
	"github.com/comcast/thermalmon/platform"
	"github.com/comcast/thermalmon/statedb"
	"github.com/comcast/thermalmon/sysfs"
	"github.com/comcast/thermalmon/thermal"
	"go.uber.org/zap"
)

// Chassis is the platform.Chassis built from a platform table
type Chassis struct {
	name      string
	direction platform.Direction
	fans      []platform.Fan
	thermals  []platform.Thermal
}

// NewChassis builds every fan and sensor of table. The airflow direction of
// the first fan is read once here and selects the sensor names.
func NewChassis(ctx context.Context, table *platform.Table, reader *sysfs.Reader, db statedb.Client) *Chassis {
	log := zap.L()
	c := &Chassis{
		name:      table.Platform,
		direction: platform.UNKNOWN,
	}

	for _, entry := range table.Fans {
		c.fans = append(c.fans, fan.NewFan(entry, reader))
	}

	if len(c.fans) > 0 {
		c.direction = c.fans[0].Direction()
	}

	src := thermal.Sources{
		Reader:  reader,
		StateDB: db,
	}
	if db != nil {
		src.Transceivers = thermal.NewStateDBTransceivers(ctx, db)
	}

	for _, entry := range table.Sorted() {
		c.thermals = append(c.thermals, thermal.NewSensor(ctx, entry, c.direction, src))
	}

	log.Info("initialized chassis", zap.String("platform", c.name),
		zap.String("airflow", string(c.direction)),
		zap.Int("fans", len(c.fans)),
		zap.Int("thermals", len(c.thermals)))

	return c
}

func (c *Chassis) Name() string {
	return c.name
}

// Direction is the airflow direction resolved at construction
func (c *Chassis) Direction() platform.Direction {
	return c.direction
}

func (c *Chassis) Fans() []platform.Fan {
	return c.fans
}

func (c *Chassis) NumThermals() int {
	return len(c.thermals)
}

func (c *Chassis) Thermal(index int) platform.Thermal {
	if index < 0 || index >= len(c.thermals) {
		return nil
	}
	return c.thermals[index]
}
