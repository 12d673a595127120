package telemetry

const (
	MonitoringCyclesCount  = "pm_monitoring_cycles_count"
	CycleErrorsCount       = "pm_cycle_errors_count"
	SensorReadsCount       = "pm_sensor_reads_count"
	SensorFailuresCount    = "pm_sensor_failures_count"
	RawAnomaliesCount      = "pm_raw_anomalies_count"
	ModelAnomaliesCount    = "pm_model_anomalies_count"
	InferenceCallsCount    = "pm_inference_calls_count"
	InferenceFailuresCount = "pm_inference_failures_count"
	AlertsEnqueuedCount    = "pm_alerts_enqueued_count"
	AlertsDeliveredCount   = "pm_alerts_delivered_count"
	AlertsDroppedCount     = "pm_alerts_dropped_count"
	AlertsFailedCount      = "pm_alerts_failed_count"
	SecurityEventsCount    = "pm_security_events_count"
)
