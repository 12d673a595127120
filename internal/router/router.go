/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package router

import (
	"context"
	"fmt"
	"net/http"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	premonitorErrors "premonitor/common/errors"
	"premonitor/internal/monitor"
	"premonitor/internal/registry"
	"premonitor/internal/security"
)

// Router exposes the agent's read-only operational API: orchestrator status,
// the security activity log, and the equipment catalog.
type Router struct {
	lc       logger.LoggingClient
	echo     *echo.Echo
	orch     *monitor.Orchestrator
	secMon   *security.Monitor
	activity *security.ActivityLog
	registry *registry.EquipmentRegistry
}

func NewRouter(
	lc logger.LoggingClient,
	orch *monitor.Orchestrator,
	secMon *security.Monitor,
	activity *security.ActivityLog,
	reg *registry.EquipmentRegistry,
) *Router {
	r := &Router{
		lc:       lc,
		echo:     echo.New(),
		orch:     orch,
		secMon:   secMon,
		activity: activity,
		registry: reg,
	}
	r.echo.HideBanner = true
	r.registerRoutes()
	return r
}

func (r *Router) registerRoutes() {
	r.echo.GET("/api/v3/status", r.getStatus)
	r.echo.GET("/api/v3/activity", r.getActivity)
	r.echo.GET("/api/v3/equipment", r.getEquipment)
	r.echo.GET("/api/v3/equipment/:id", r.getEquipmentById)
	r.echo.GET("/api/v3/equipment/:id/snapshot", r.getEquipmentSnapshot)
	r.echo.GET("/api/v3/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})
}

// Start serves until the listener fails or Shutdown is called.
func (r *Router) Start(port int) error {
	return r.echo.Start(fmt.Sprintf(":%d", port))
}

func (r *Router) Shutdown(ctx context.Context) error {
	return r.echo.Shutdown(ctx)
}

func (r *Router) getStatus(c echo.Context) error {
	status := map[string]interface{}{
		"monitoring": r.orch.Status(),
	}
	if r.secMon != nil {
		status["security"] = r.secMon.Status()
	}
	return c.JSON(http.StatusOK, status)
}

func (r *Router) getActivity(c echo.Context) error {
	hours := cast.ToInt(c.QueryParam("hours"))
	if hours <= 0 {
		hours = 24
	}
	entries, err := r.activity.RecentActivity(hours)
	if err != nil {
		r.lc.Errorf("failed to read activity log: %v", err)
		return premonitorErrors.NewCommonPremonitorError(
			premonitorErrors.ErrorTypeServerError, "failed to read activity log").ConvertToHTTPError()
	}
	return c.JSON(http.StatusOK, entries)
}

func (r *Router) getEquipment(c echo.Context) error {
	controllerId := c.QueryParam("controller")
	if controllerId == "" {
		controllerId = r.orch.Status().ControllerId
	}
	return c.JSON(http.StatusOK, r.registry.EquipmentForController(controllerId))
}

func (r *Router) getEquipmentById(c echo.Context) error {
	eq, err := r.registry.InstanceById(c.Param("id"))
	if err != nil {
		return err.ConvertToHTTPError()
	}
	return c.JSON(http.StatusOK, eq)
}

func (r *Router) getEquipmentSnapshot(c echo.Context) error {
	id := c.Param("id")
	if _, err := r.registry.InstanceById(id); err != nil {
		return err.ConvertToHTTPError()
	}
	snap, ok := r.orch.LastSnapshot(id)
	if !ok {
		return premonitorErrors.NewCommonPremonitorError(
			premonitorErrors.ErrorTypeNotFound,
			fmt.Sprintf("no snapshot recorded yet for '%s'", id)).ConvertToHTTPError()
	}
	return c.JSON(http.StatusOK, snap)
}
