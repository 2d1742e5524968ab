package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/triplog/triplog-backend/domain"
	"github.com/triplog/triplog-backend/internal/rest/request"
	"github.com/triplog/triplog-backend/internal/rest/response"
)

type tripHandler struct {
	Service domain.TripUsecase
}

func NewTripHandler(svc domain.TripUsecase) *tripHandler {
	return &tripHandler{
		Service: svc,
	}
}

// Fetch lists the trips the caller may see
func (h *tripHandler) Fetch(c *gin.Context) {
	page, size := pageParams(c)

	trips, total, err := h.Service.Fetch(c.Request.Context(), callerIdentity(c), page, size)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]response.Trip, len(trips))
	for i := range trips {
		items[i] = response.NewTripFromDomain(&trips[i])
	}
	c.JSON(http.StatusOK, response.NewPage(page, size, total, items))
}

// GetByID returns a single trip with its participant roster
func (h *tripHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	trip, err := h.Service.GetByID(c.Request.Context(), id, callerIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewTripFromDomain(&trip))
}

// Store creates a new trip owned by the caller
func (h *tripHandler) Store(c *gin.Context) {
	var req request.Trip
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	caller := callerIdentity(c)
	if caller.Anonymous() {
		c.JSON(http.StatusUnauthorized, ResponseError{Message: "user not authenticated"})
		return
	}

	trip := req.ToDomain()
	trip.OwnerID = caller.UserID

	if err := h.Service.Store(c.Request.Context(), &trip); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.NewTripFromDomain(&trip))
}

// Update modifies the trip's own fields
func (h *tripHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request.Trip
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	trip := req.ToDomain()
	trip.ID = id

	if err := h.Service.Update(c.Request.Context(), &trip, callerIdentity(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "trip updated"})
}

// Delete removes the trip with its roster, itinerary and reservations
func (h *tripHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.Service.Delete(c.Request.Context(), id, callerIdentity(c)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddParticipant puts a user on the trip roster
func (h *tripHandler) AddParticipant(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request.TripParticipant
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	err := h.Service.AddParticipant(c.Request.Context(), id, req.UserID, req.Role, callerIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "participant added"})
}

// RemoveParticipant takes a user off the trip roster
func (h *tripHandler) RemoveParticipant(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	err := h.Service.RemoveParticipant(c.Request.Context(), id, userID, callerIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Like adds the caller's like on the trip
func (h *tripHandler) Like(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.Service.Like(c.Request.Context(), id, callerIdentity(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "liked"})
}

// Unlike removes the caller's like from the trip
func (h *tripHandler) Unlike(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.Service.Unlike(c.Request.Context(), id, callerIdentity(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "unliked"})
}

// AddItineraryItem appends one stop to the trip's day plan
func (h *tripHandler) AddItineraryItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request.ItineraryItem
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	item := req.ToDomain(id)
	if err := h.Service.AddItineraryItem(c.Request.Context(), &item, callerIdentity(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.NewItineraryItemFromDomain(&item))
}

// Itinerary lists the trip's stops ordered by day then sequence
func (h *tripHandler) Itinerary(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	items, err := h.Service.Itinerary(c.Request.Context(), id, callerIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}

	res := make([]response.ItineraryItem, len(items))
	for i := range items {
		res[i] = response.NewItineraryItemFromDomain(&items[i])
	}
	c.JSON(http.StatusOK, gin.H{"items": res})
}

// AddReservation attaches a booking to the trip
func (h *tripHandler) AddReservation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request.Reservation
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	r := req.ToDomain(id)
	if err := h.Service.AddReservation(c.Request.Context(), &r, callerIdentity(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.NewReservationFromDomain(&r))
}

// Reservations lists the trip's bookings
func (h *tripHandler) Reservations(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.Service.Reservations(c.Request.Context(), id, callerIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}

	res := make([]response.Reservation, len(list))
	for i := range list {
		res[i] = response.NewReservationFromDomain(&list[i])
	}
	c.JSON(http.StatusOK, gin.H{"items": res})
}
