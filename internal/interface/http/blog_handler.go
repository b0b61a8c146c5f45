package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/wellnest/wellnest-api/internal/application"
	"github.com/wellnest/wellnest-api/internal/domain/entity"
	"github.com/wellnest/wellnest-api/pkg/response"
	"github.com/wellnest/wellnest-api/pkg/validation"
)

// BlogHandler serves practitioner-authored articles.
type BlogHandler struct {
	Svc    *app.PostService
	Logger *logrus.Logger
}

func NewBlogHandler(svc *app.PostService, logger *logrus.Logger) *BlogHandler {
	return &BlogHandler{Svc: svc, Logger: logger}
}

type postRequest struct {
	Title   string   `json:"title" binding:"required,max=200"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags"`
}

func postJSON(p *entity.Post) gin.H {
	return gin.H{
		"id":         p.ID,
		"authorId":   p.AuthorID,
		"authorName": p.AuthorName,
		"title":      p.Title,
		"content":    p.Content,
		"tags":       p.Tags,
		"created_at": p.CreatedAt,
		"updated_at": p.UpdatedAt,
	}
}

// List GET /api/blog?limit=&offset=
func (h *BlogHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	posts, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(posts))
	for i := range posts {
		out = append(out, postJSON(&posts[i]))
	}
	response.Success(c, http.StatusOK, out, "posts", gin.H{"count": len(out)})
}

// Get GET /api/blog/:id
func (h *BlogHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, postJSON(p), "post", nil)
}

// Related GET /api/blog/:id/related
func (h *BlogHandler) Related(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "5"))
	related, err := h.Svc.Related(c.Request.Context(), c.Param("id"), size)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, related, "related posts", nil)
}

// Create POST /api/blog (practitioner only)
func (h *BlogHandler) Create(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), c.GetString("userID"), app.PostInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, postJSON(p), "post created", nil)
}

// Update PUT /api/blog/:id (author only)
func (h *BlogHandler) Update(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), c.GetString("userID"), c.Param("id"), app.PostInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, postJSON(p), "post updated", nil)
}
