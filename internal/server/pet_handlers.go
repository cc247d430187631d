package server

import (
	"pawhaven/internal/cache"
	"pawhaven/internal/models"
	"pawhaven/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListPets handles GET /api/pets
// @Summary Browse pets
// @Description Approved listings for everyone; admins see all statuses and may filter.
// @Tags pets
// @Produce json
// @Param status query string false "pending|approved (admin only)"
// @Success 200 {array} models.Pet
// @Router /pets [get]
func (s *Server) ListPets(c *fiber.Ctx) error {
	actor := s.optionalActor(c)

	var status *models.PetStatus
	if raw := c.Query("status"); raw != "" {
		v := models.PetStatus(raw)
		status = &v
	}

	pets, err := s.petService.ListPets(c.Context(), actor, status)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(pets)
}

// GetPet handles GET /api/pets/:id
// @Summary Pet detail
// @Tags pets
// @Produce json
// @Param id path int true "Pet ID"
// @Success 200 {object} models.Pet
// @Failure 404 {object} models.ErrorResponse
// @Router /pets/{id} [get]
func (s *Server) GetPet(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var cached models.Pet
	if cache.GetJSON(c.UserContext(), "pet", cache.PetKey(id), &cached) {
		return c.JSON(cached)
	}

	pet, err := s.petService.GetPet(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	cache.SetJSON(c.UserContext(), cache.PetKey(id), pet, cache.PetTTL)
	return c.JSON(pet)
}

// CreatePet handles POST /api/pets
// @Summary Create a pet listing
// @Description User-created listings start pending; admin-created listings are approved immediately.
// @Tags pets
// @Accept json
// @Produce json
// @Param request body service.PetInput true "Listing"
// @Success 201 {object} models.Pet
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /pets [post]
func (s *Server) CreatePet(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req service.PetInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	pet, err := s.petService.CreatePet(c.Context(), actor, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	cache.InvalidatePetLists(c.UserContext())
	return c.Status(fiber.StatusCreated).JSON(pet)
}

// UpdatePet handles PUT /api/pets/:id
// @Summary Update a pet listing
// @Tags pets
// @Accept json
// @Produce json
// @Param id path int true "Pet ID"
// @Param request body service.PetInput true "Listing"
// @Success 200 {object} models.Pet
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /pets/{id} [put]
func (s *Server) UpdatePet(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.PetInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	pet, err := s.petService.UpdatePet(c.Context(), actor, id, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	cache.InvalidatePet(c.UserContext(), id)
	return c.JSON(pet)
}

// ApprovePet handles PATCH /api/pets/:id/approve
// @Summary Approve a pending listing
// @Tags pets
// @Produce json
// @Param id path int true "Pet ID"
// @Success 200 {object} models.Pet
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /pets/{id}/approve [patch]
func (s *Server) ApprovePet(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	pet, err := s.petService.ApprovePet(c.Context(), actor, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	cache.InvalidatePet(c.UserContext(), id)
	return c.JSON(pet)
}

// DeletePet handles DELETE /api/pets/:id
// @Summary Delete a pet listing
// @Tags pets
// @Param id path int true "Pet ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /pets/{id} [delete]
func (s *Server) DeletePet(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.petService.DeletePet(c.Context(), actor, id); err != nil {
		return respondServiceError(c, err)
	}
	cache.InvalidatePet(c.UserContext(), id)
	return c.SendStatus(fiber.StatusNoContent)
}
