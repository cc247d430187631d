package server

import (
	"pawhaven/internal/models"
	"pawhaven/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListLocations handles GET /api/locations
// @Summary List adoption locations
// @Tags locations
// @Produce json
// @Success 200 {array} models.Location
// @Router /locations [get]
func (s *Server) ListLocations(c *fiber.Ctx) error {
	locs, err := s.locationService.ListLocations(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(locs)
}

// GetLocation handles GET /api/locations/:id
// @Summary Location detail
// @Tags locations
// @Produce json
// @Param id path int true "Location ID"
// @Success 200 {object} models.Location
// @Failure 404 {object} models.ErrorResponse
// @Router /locations/{id} [get]
func (s *Server) GetLocation(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	loc, err := s.locationService.GetLocation(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(loc)
}

// CreateLocation handles POST /api/locations
// @Summary Create a location
// @Tags locations
// @Accept json
// @Produce json
// @Param request body service.LocationInput true "Location"
// @Success 201 {object} models.Location
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /locations [post]
func (s *Server) CreateLocation(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req service.LocationInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	loc, err := s.locationService.CreateLocation(c.Context(), actor, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(loc)
}

// UpdateLocation handles PUT /api/locations/:id
// @Summary Update a location
// @Tags locations
// @Accept json
// @Produce json
// @Param id path int true "Location ID"
// @Param request body service.LocationInput true "Location"
// @Success 200 {object} models.Location
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /locations/{id} [put]
func (s *Server) UpdateLocation(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.LocationInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	loc, err := s.locationService.UpdateLocation(c.Context(), actor, id, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(loc)
}

// DeleteLocation handles DELETE /api/locations/:id
// @Summary Delete a location
// @Tags locations
// @Param id path int true "Location ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /locations/{id} [delete]
func (s *Server) DeleteLocation(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.locationService.DeleteLocation(c.Context(), actor, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
