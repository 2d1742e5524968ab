package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/triplog/triplog-backend/domain"
	"github.com/triplog/triplog-backend/internal/rest/request"
	"github.com/triplog/triplog-backend/internal/rest/response"
)

type commentHandler struct {
	Service domain.CommentUsecase
}

func NewCommentHandler(svc domain.CommentUsecase) *commentHandler {
	return &commentHandler{
		Service: svc,
	}
}

// ListTopLevel returns one page of a post's top-level comments
func (h *commentHandler) ListTopLevel(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, size := pageParams(c)

	comments, total, err := h.Service.ListTopLevel(c.Request.Context(), postID, page, size, callerIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]response.Comment, len(comments))
	for i := range comments {
		items[i] = response.NewCommentFromDomain(&comments[i])
	}
	c.JSON(http.StatusOK, response.NewPage(page, size, total, items))
}

// ListReplies returns one page of replies under a top-level comment
func (h *commentHandler) ListReplies(c *gin.Context) {
	parentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, size := pageParams(c)

	comments, total, err := h.Service.ListReplies(c.Request.Context(), parentID, page, size, callerIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]response.Comment, len(comments))
	for i := range comments {
		items[i] = response.NewCommentFromDomain(&comments[i])
	}
	c.JSON(http.StatusOK, response.NewPage(page, size, total, items))
}

// Create inserts a comment or a reply under the given post
func (h *commentHandler) Create(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request.Comment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	caller := callerIdentity(c)
	if caller.Anonymous() {
		c.JSON(http.StatusUnauthorized, ResponseError{Message: "user not authenticated"})
		return
	}

	comment := req.ToDomain()
	comment.PostID = postID
	comment.UserID = caller.UserID

	if err := h.Service.Create(c.Request.Context(), &comment); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.NewCommentFromDomain(&comment))
}

// Update replaces the comment body
func (h *commentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request.CommentUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	if err := h.Service.Update(c.Request.Context(), id, req.Body, callerIdentity(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment updated"})
}

// Delete removes the comment and, for a top-level comment, its replies
func (h *commentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	removed, err := h.Service.Delete(c.Request.Context(), id, callerIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}

	msg := "comment deleted"
	if removed > 0 {
		msg = fmt.Sprintf("comment and %d replies deleted", removed)
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// Like adds the caller's like on the comment
func (h *commentHandler) Like(c *gin.Context) {
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

// Unlike removes the caller's like from the comment
func (h *commentHandler) Unlike(c *gin.Context) {
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
