/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package registry

import (
	"fmt"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/hashicorp/go-multierror"

	"premonitor/common/dto"
	premonitorErrors "premonitor/common/errors"
	"premonitor/common/utils"
)

// wiringKeyByCapability maps a capability name to the key its driver wiring
// uses in the instance's sensor map. Capabilities not listed here use their
// own name as the key.
var wiringKeyByCapability = map[string]string{
	dto.CapabilityThermal:  "thermal_camera",
	dto.CapabilityAcoustic: "microphone",
	dto.CapabilityGas:      "gas_sensor",
	dto.CapabilityMotion:   "pir_sensor",
}

// WiringKey returns the sensor-map key for a capability.
func WiringKey(capability string) string {
	if key, ok := wiringKeyByCapability[capability]; ok {
		return key
	}
	return capability
}

// EquipmentRegistry is the immutable catalog of equipment types, their
// threshold profiles and the instances bound to this controller. It is built
// once at startup and only read afterwards, so no locking is required.
type EquipmentRegistry struct {
	lc         logger.LoggingClient
	types      map[string]dto.EquipmentType
	thresholds map[string]dto.ThresholdProfile
	instances  map[string]dto.EquipmentInstance
	order      []string
}

// NewEquipmentRegistry builds the catalog. An instance referencing an unknown
// equipment type is fatal; an instance failing capability validation is
// excluded from monitoring and logged, per the caller's isolation policy.
func NewEquipmentRegistry(
	lc logger.LoggingClient,
	types []dto.EquipmentType,
	thresholds map[string]dto.ThresholdProfile,
	instances []dto.EquipmentInstance,
) (*EquipmentRegistry, premonitorErrors.PremonitorError) {
	r := &EquipmentRegistry{
		lc:         lc,
		types:      make(map[string]dto.EquipmentType, len(types)),
		thresholds: make(map[string]dto.ThresholdProfile, len(thresholds)),
		instances:  make(map[string]dto.EquipmentInstance, len(instances)),
	}

	for _, et := range types {
		r.types[et.Id] = et
	}
	for typeId, profile := range thresholds {
		r.thresholds[typeId] = profile
	}
	if _, ok := r.thresholds[dto.DefaultThresholdProfileType]; !ok {
		return nil, premonitorErrors.NewCommonPremonitorError(premonitorErrors.ErrorTypeConfig,
			fmt.Sprintf("fallback threshold profile '%s' not configured", dto.DefaultThresholdProfileType))
	}

	for _, eq := range instances {
		if _, ok := r.types[eq.Type]; !ok {
			return nil, premonitorErrors.NewCommonPremonitorError(premonitorErrors.ErrorTypeConfig,
				fmt.Sprintf("equipment '%s' references unknown type '%s'", eq.Id, eq.Type))
		}
		if err := r.Validate(eq); err != nil {
			lc.Errorf("equipment %s failed validation, excluded from monitoring: %s", eq.Id, err.Message())
			continue
		}
		if _, dup := r.instances[eq.Id]; dup {
			return nil, premonitorErrors.NewCommonPremonitorError(premonitorErrors.ErrorTypeConfig,
				fmt.Sprintf("duplicate equipment id '%s'", eq.Id))
		}
		r.instances[eq.Id] = eq
		r.order = append(r.order, eq.Id)
	}

	lc.Infof("equipment registry loaded: %d types, %d instances", len(r.types), len(r.order))
	return r, nil
}

// EquipmentForController returns the instances bound to the given controller,
// in configuration order.
func (r *EquipmentRegistry) EquipmentForController(controllerId string) []dto.EquipmentInstance {
	result := make([]dto.EquipmentInstance, 0, len(r.order))
	for _, id := range r.order {
		eq := r.instances[id]
		if eq.ControllerId == controllerId {
			result = append(result, eq)
		}
	}
	return result
}

// InstanceById looks up a single equipment instance.
func (r *EquipmentRegistry) InstanceById(id string) (dto.EquipmentInstance, premonitorErrors.PremonitorError) {
	eq, ok := r.instances[id]
	if !ok {
		return dto.EquipmentInstance{}, premonitorErrors.NewCommonPremonitorError(
			premonitorErrors.ErrorTypeNotFound, fmt.Sprintf("equipment '%s' not found", id))
	}
	return eq, nil
}

// TypeOf returns the catalog entry for an instance's type.
func (r *EquipmentRegistry) TypeOf(eq dto.EquipmentInstance) (dto.EquipmentType, bool) {
	et, ok := r.types[eq.Type]
	return et, ok
}

// Thresholds resolves the threshold profile for an equipment type. Unknown
// types get the fallback profile rather than an error, by explicit policy.
func (r *EquipmentRegistry) Thresholds(typeId string) dto.ThresholdProfile {
	if profile, ok := r.thresholds[typeId]; ok {
		return profile
	}
	r.lc.Warnf("no threshold profile for type '%s', using '%s' fallback", typeId, dto.DefaultThresholdProfileType)
	return r.thresholds[dto.DefaultThresholdProfileType]
}

// CriticalEquipment returns the instances flagged critical, for escalation.
func (r *EquipmentRegistry) CriticalEquipment() []dto.EquipmentInstance {
	result := make([]dto.EquipmentInstance, 0)
	for _, id := range r.order {
		if eq := r.instances[id]; eq.Critical {
			result = append(result, eq)
		}
	}
	return result
}

// Validate checks that every required capability of the instance's type has
// enabled wiring under the capability's wiring key, and that no wired sensor
// is outside the type's required+optional capability set. Errors are
// collected, not thrown; the caller decides whether to exclude the instance.
func (r *EquipmentRegistry) Validate(eq dto.EquipmentInstance) premonitorErrors.PremonitorError {
	et, ok := r.types[eq.Type]
	if !ok {
		return premonitorErrors.NewCommonPremonitorError(premonitorErrors.ErrorTypeConfig,
			fmt.Sprintf("unknown equipment type '%s'", eq.Type))
	}

	var errs error
	for _, capability := range et.RequiredCapabilities {
		key := WiringKey(capability)
		wiring, wired := eq.Sensors[key]
		if !wired || !wiring.Enabled {
			errs = multierror.Append(errs,
				fmt.Errorf("required sensor missing: %s (config key: %s)", capability, key))
		}
	}

	allowed := append(append([]string{}, et.RequiredCapabilities...), et.OptionalCapabilities...)
	for key := range eq.Sensors {
		capability := CapabilityForWiringKey(key)
		if capability == dto.CapabilityMotion {
			// motion sensing serves the security monitor and is allowed anywhere
			continue
		}
		if !utils.Contains(allowed, capability) {
			errs = multierror.Append(errs,
				fmt.Errorf("sensor '%s' not permitted for type '%s'", key, eq.Type))
		}
	}

	if errs != nil {
		return premonitorErrors.NewCommonPremonitorError(premonitorErrors.ErrorTypeBadRequest, errs.Error())
	}
	return nil
}

// CapabilityForWiringKey inverts WiringKey.
func CapabilityForWiringKey(key string) string {
	for capability, wiringKey := range wiringKeyByCapability {
		if wiringKey == key {
			return capability
		}
	}
	return key
}
