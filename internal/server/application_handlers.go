package server

import (
	"context"
	"encoding/json"
	"log/slog"

	"pawhaven/internal/cache"
	"pawhaven/internal/models"
	"pawhaven/internal/observability"
	"pawhaven/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmitApplication handles POST /api/applications
// @Summary Submit an adoption application
// @Description Create a pending application for a pet. One pending application per pet per user.
// @Tags applications
// @Accept json
// @Produce json
// @Param request body service.SubmitApplicationInput true "Application"
// @Success 201 {object} models.AdoptionApplication
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /applications [post]
func (s *Server) SubmitApplication(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req service.SubmitApplicationInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	app, err := s.applicationService.Submit(c.Context(), actor, req)
	if err != nil {
		return respondServiceError(c, err)
	}

	observability.ApplicationsSubmitted.Inc()
	cache.InvalidateStats(c.UserContext())
	s.publishAdminEvent(c.UserContext(), "application_submitted", app)

	return c.Status(fiber.StatusCreated).JSON(app)
}

// ListApplications handles GET /api/applications
// @Summary List applications
// @Description Returns the caller's own applications, or every application for admins. Optional status filter.
// @Tags applications
// @Produce json
// @Param status query string false "pending|approved|rejected"
// @Success 200 {array} service.ApplicationSummary
// @Security BearerAuth
// @Router /applications [get]
func (s *Server) ListApplications(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var status *models.ApplicationStatus
	if raw := c.Query("status"); raw != "" {
		v := models.ApplicationStatus(raw)
		status = &v
	}

	apps, err := s.applicationService.ListApplications(c.Context(), actor, status)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(apps)
}

// PendingQueue handles GET /api/applications/queue
// @Summary Pending review queue
// @Description Pending applications ranked by descending wait time. Admin only.
// @Tags applications
// @Produce json
// @Param limit query int false "Maximum entries (default 20, max 100)"
// @Success 200 {array} service.ApplicationSummary
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /applications/queue [get]
func (s *Server) PendingQueue(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	limit := c.QueryInt("limit", 20)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	queue, err := s.applicationService.PendingQueue(c.Context(), actor, limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(queue)
}

// ApplicationStats handles GET /api/applications/stats
// @Summary Application counts by status
// @Tags applications
// @Produce json
// @Success 200 {object} service.ApplicationStats
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /applications/stats [get]
func (s *Server) ApplicationStats(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	// Stats are admin only, so authorize before consulting the cache.
	var cached service.ApplicationStats
	if actor.IsAdmin() && cache.GetJSON(c.UserContext(), "stats", cache.StatsKey, &cached) {
		return c.JSON(cached)
	}

	stats, err := s.applicationService.Stats(c.Context(), actor)
	if err != nil {
		return respondServiceError(c, err)
	}
	cache.SetJSON(c.UserContext(), cache.StatsKey, stats, cache.StatsTTL)
	return c.JSON(stats)
}

// GetApplication handles GET /api/applications/:id
// @Summary Application detail
// @Description Visible to the applicant and to admins.
// @Tags applications
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} service.ApplicationSummary
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /applications/{id} [get]
func (s *Server) GetApplication(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	app, err := s.applicationService.GetApplication(c.Context(), actor, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(app)
}

// ReviewApplication handles PATCH /api/applications/:id
// @Summary Review an application
// @Description Move a pending application to approved or rejected. Rejections require admin notes. Admin only.
// @Tags applications
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Param request body object{status=string,admin_notes=string} true "Review decision"
// @Success 200 {object} models.AdoptionApplication
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /applications/{id} [patch]
func (s *Server) ReviewApplication(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status     models.ApplicationStatus `json:"status"`
		AdminNotes *string                  `json:"admin_notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	app, err := s.applicationService.Review(c.Context(), actor, id, req.Status, req.AdminNotes)
	if err != nil {
		return respondServiceError(c, err)
	}

	observability.ApplicationsReviewed.WithLabelValues(string(app.Status)).Inc()
	cache.InvalidateStats(c.UserContext())
	s.publishAdminEvent(c.UserContext(), "application_reviewed", app)

	return c.JSON(app)
}

// DeleteApplication handles DELETE /api/applications/:id
// @Summary Delete an application
// @Description Admin override; removes an application in any status.
// @Tags applications
// @Param id path int true "Application ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /applications/{id} [delete]
func (s *Server) DeleteApplication(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.applicationService.DeleteApplication(c.Context(), actor, id); err != nil {
		return respondServiceError(c, err)
	}
	cache.InvalidateStats(c.UserContext())
	return c.SendStatus(fiber.StatusNoContent)
}

// publishAdminEvent pushes an application lifecycle event to connected admin
// dashboards. Failures are logged and never affect the HTTP response.
func (s *Server) publishAdminEvent(ctx context.Context, eventType string, app *models.AdoptionApplication) {
	if s.notifier == nil {
		return
	}

	payload, err := json.Marshal(fiber.Map{
		"type":    eventType,
		"payload": app,
	})
	if err != nil {
		return
	}
	if err := s.notifier.PublishAdminEvent(ctx, string(payload)); err != nil {
		slog.WarnContext(ctx, "failed to publish admin event",
			slog.String("event", eventType), slog.Any("error", err))
	}
}
