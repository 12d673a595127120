/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package sensor

import (
	"context"

	"premonitor/common/dto"
)

// Source reads every enabled sensor of one equipment instance and returns the
// cycle's snapshot. A partial read is not an error: a capability whose driver
// failed is simply absent from the snapshot, and the caller treats it as
// missing. Implementations sit on real hardware buses (i2c, gpio, alsa) or on
// a simulator.
type Source interface {
	Read(ctx context.Context, eq dto.EquipmentInstance) (dto.SensorSnapshot, error)
}
