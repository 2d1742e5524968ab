package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/triplog/triplog-backend/domain"
	"github.com/triplog/triplog-backend/internal/rest/request"
	"github.com/triplog/triplog-backend/internal/rest/response"
)

// PostHandler represent the httphandler for post
type PostHandler struct {
	Service domain.PostUsecase
}

func NewPostHandler(svc domain.PostUsecase) *PostHandler {
	return &PostHandler{
		Service: svc,
	}
}

// Fetch will fetch one page of posts
func (h *PostHandler) Fetch(c *gin.Context) {
	page, size := pageParams(c)
	caller := callerIdentity(c)

	posts, total, err := h.Service.Fetch(c.Request.Context(), caller, page, size)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]response.Post, len(posts))
	for i := range posts {
		items[i] = response.NewPostFromDomain(&posts[i])
	}
	c.JSON(http.StatusOK, response.NewPage(page, size, total, items))
}

// GetByID will get post by given id
func (h *PostHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	post, err := h.Service.GetByID(c.Request.Context(), id, callerIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewPostFromDomain(&post))
}

// Store will store the post by given request body
func (h *PostHandler) Store(c *gin.Context) {
	var req request.Post
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	caller := callerIdentity(c)
	if caller.Anonymous() {
		c.JSON(http.StatusUnauthorized, ResponseError{Message: "user not authenticated"})
		return
	}

	post := req.ToDomain()
	post.User.ID = caller.UserID

	if err := h.Service.Store(c.Request.Context(), &post); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.NewPostFromDomain(&post))
}

// Update will update title, content and hashtags of an existing post
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request.Post
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	post := req.ToDomain()
	post.ID = id

	if err := h.Service.Update(c.Request.Context(), &post, callerIdentity(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post updated"})
}

// Delete will delete the post with everything hanging off it
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	removed, err := h.Service.Delete(c.Request.Context(), id, callerIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}

	msg := "post deleted"
	if removed > 0 {
		msg = fmt.Sprintf("post and %d comments deleted", removed)
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// Like adds the caller's like on the post
func (h *PostHandler) Like(c *gin.Context) {
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

// Unlike removes the caller's like from the post
func (h *PostHandler) Unlike(c *gin.Context) {
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
