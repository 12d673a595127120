/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package inference

import (
	"context"

	"github.com/stretchr/testify/mock"

	"premonitor/common/dto"
	"premonitor/internal/inference"
)

type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Infer(ctx context.Context, req inference.Request) ([]dto.InferenceResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.InferenceResult), args.Error(1)
}
