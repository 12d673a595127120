/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package sensor

import (
	"context"

	"github.com/stretchr/testify/mock"

	"premonitor/common/dto"
)

type MockSource struct {
	mock.Mock
}

func (m *MockSource) Read(ctx context.Context, eq dto.EquipmentInstance) (dto.SensorSnapshot, error) {
	args := m.Called(ctx, eq)
	return args.Get(0).(dto.SensorSnapshot), args.Error(1)
}
