package domain

import "time"

// ServiceHealth is the reported health of a campus service.
type ServiceHealth string

const (
	HealthOperational ServiceHealth = "operational"
	HealthDegraded    ServiceHealth = "degraded"
	HealthDown        ServiceHealth = "down"
)

// ServiceName identifies one of the five monitored campus services.
type ServiceName string

const (
	ServiceCampusWifi     ServiceName = "wifi_campus"
	ServiceVirtualLibrary ServiceName = "biblioteca_virtual"
	ServiceLMS            ServiceName = "plataforma_lms"
	ServiceStudentPortal  ServiceName = "portal_estudiantes"
	ServiceEmail          ServiceName = "correo_institucional"
)

// MonitoredServices lists every service the dashboard reports on.
var MonitoredServices = []ServiceName{
	ServiceCampusWifi,
	ServiceVirtualLibrary,
	ServiceLMS,
	ServiceStudentPortal,
	ServiceEmail,
}

// StatusSnapshot maps each monitored service to its health.
type StatusSnapshot map[ServiceName]ServiceHealth

// FallbackSnapshot is the fixed substitute returned when the status
// source is unreachable or unprovisioned.
func FallbackSnapshot() StatusSnapshot {
	return StatusSnapshot{
		ServiceCampusWifi:     HealthOperational,
		ServiceVirtualLibrary: HealthOperational,
		ServiceLMS:            HealthDegraded,
		ServiceStudentPortal:  HealthOperational,
		ServiceEmail:          HealthOperational,
	}
}

// Announcement is one entry of the read-only IT announcement feed.
type Announcement struct {
	ID          string
	Title       string
	Description string
	CreatedAt   time.Time
}
