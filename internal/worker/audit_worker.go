package worker

import (
	"github.com/spec-kit/booking-gateway/internal/service"
)

// StartAuditWorker registers audit persistence handlers.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
