package stub

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	storage *Storage
}

func NewHandler(storage *Storage) *Handler {
	return &Handler{storage: storage}
}

// Register mounts the stubbed menu and post APIs plus the control routes.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/api/2/menus", h.HandleGetMenu)
	r.POST("/2/tweets", h.HandleCreatePost)

	ctl := r.Group("/stub")
	{
		ctl.POST("/reset", h.HandleReset)
		ctl.PUT("/menus/:cafe", h.HandleSeedMenu)
		ctl.POST("/fail", h.HandleFail)
		ctl.GET("/posts", h.HandleListPosts)
	}
}

func (h *Handler) HandleReset(c *gin.Context) {
	h.storage.Reset()

	slog.Info("reset stub data")

	c.JSON(http.StatusOK, gin.H{"status": "reset complete"})
}

// PUT /stub/menus/:cafe with a raw menu payload as the body.
func (h *Handler) HandleSeedMenu(c *gin.Context) {
	cafeID := c.Param("cafe")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "menu payload is required"})
		return
	}

	h.storage.SetMenu(cafeID, body)

	slog.Info("seeded menu",
		slog.String("cafe_id", cafeID),
		slog.Int("bytes", len(body)),
	)

	c.JSON(http.StatusOK, gin.H{
		"status":  "seeded",
		"cafe_id": cafeID,
	})
}

// GET /api/2/menus?cafe=...
func (h *Handler) HandleGetMenu(c *gin.Context) {
	cafeID := c.Query("cafe")
	if cafeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cafe query parameter is required"})
		return
	}

	payload, ok := h.storage.Menu(cafeID)
	if !ok {
		slog.Debug("menu not seeded", slog.String("cafe_id", cafeID))
		c.JSON(http.StatusOK, gin.H{"days": []any{}, "items": gin.H{}})
		return
	}

	c.Data(http.StatusOK, "application/json", payload)
}

// POST /2/tweets
func (h *Handler) HandleCreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"title": "Invalid Request", "detail": err.Error()})
		return
	}

	replyTo := ""
	if req.Reply != nil {
		replyTo = req.Reply.InReplyToTweetID
	}

	post, ok := h.storage.AddPost(req.Text, replyTo, c.GetHeader("x-request-id"))
	if !ok {
		slog.Info("rejecting post on request", slog.String("reply_to", replyTo))
		c.JSON(http.StatusServiceUnavailable, gin.H{"title": "Service Unavailable"})
		return
	}

	slog.Debug("accepted post",
		slog.String("post_id", post.ID),
		slog.String("reply_to", replyTo),
	)

	var resp CreatePostResponse
	resp.Data.ID = post.ID
	resp.Data.Text = post.Text
	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) HandleFail(c *gin.Context) {
	var req FailRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Count < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "count must be a non-negative integer"})
		return
	}

	h.storage.FailNext(req.Count)

	c.JSON(http.StatusOK, gin.H{"status": "armed", "count": req.Count})
}

func (h *Handler) HandleListPosts(c *gin.Context) {
	posts := h.storage.Posts()
	c.JSON(http.StatusOK, PostsResponse{Posts: posts, Count: len(posts)})
}
