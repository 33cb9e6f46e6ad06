package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"snake-scores/internal/domain"
	"snake-scores/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users service.UserService
	games service.GameService
}

func NewHandler(users service.UserService, games service.GameService) *Handler {
	return &Handler{
		users: users,
		games: games,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	router.POST("/login", h.login)
	router.POST("/users", h.createUser)
	router.GET("/leaderboard", h.leaderboard)
	router.GET("/players", h.activePlayers)
	router.POST("/games", h.startGame)
	router.GET("/games/:id", h.getGame)
	router.PUT("/games/:id/score", h.updateScore)
	router.PUT("/games/:id/status", h.updateStatus)
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
}

type loginResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.users.Login(c.Request.Context(), req.Username)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		ID:       session.User.ID,
		Username: session.User.Username,
		Token:    session.Token,
	})
}

type createUserRequest struct {
	Username string `json:"username" binding:"required"`
}

type userResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), req.Username)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userToResponse(*user))
}

type leaderboardEntryResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

func (h *Handler) leaderboard(c *gin.Context) {
	entries, err := h.games.Leaderboard(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	resp := make([]leaderboardEntryResponse, len(entries))
	for i := range entries {
		resp[i] = leaderboardEntryResponse{
			ID:       entries[i].UserID,
			Username: entries[i].Username,
			Score:    entries[i].Score,
		}
	}
	c.JSON(http.StatusOK, resp)
}

type playerResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
	Status   string `json:"status"`
	GameMode string `json:"game_mode"`
}

func (h *Handler) activePlayers(c *gin.Context) {
	players, err := h.games.ActivePlayers(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	resp := make([]playerResponse, len(players))
	for i := range players {
		resp[i] = playerResponse{
			ID:       players[i].UserID,
			Username: players[i].Username,
			Score:    players[i].Score,
			Status:   string(players[i].Status),
			GameMode: string(players[i].GameMode),
		}
	}
	c.JSON(http.StatusOK, resp)
}

type startGameRequest struct {
	UserID   int64  `json:"user_id" binding:"required"`
	GameMode string `json:"game_mode" binding:"required"`
}

type gameResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Score     int    `json:"score"`
	GameMode  string `json:"game_mode"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

func (h *Handler) startGame(c *gin.Context) {
	var req startGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.games.StartGame(c.Request.Context(), req.UserID, domain.GameMode(req.GameMode))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gameToResponse(*game))
}

func (h *Handler) getGame(c *gin.Context) {
	id, ok := gameID(c)
	if !ok {
		return
	}

	game, err := h.games.GetGame(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gameToResponse(*game))
}

type scoreUpdateRequest struct {
	Score *int `json:"score" binding:"required"`
}

func (h *Handler) updateScore(c *gin.Context) {
	id, ok := gameID(c)
	if !ok {
		return
	}

	var req scoreUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.games.UpdateScore(c.Request.Context(), id, *req.Score)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gameToResponse(*game))
}

type statusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) updateStatus(c *gin.Context) {
	id, ok := gameID(c)
	if !ok {
		return
	}

	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.games.UpdateStatus(c.Request.Context(), id, domain.GameStatus(req.Status))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gameToResponse(*game))
}

func gameID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return 0, false
	}
	return id, true
}

// renderError maps service errors onto response status codes. Anything
// outside the known set is treated as a store failure.
func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrGameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrUsernameRequired),
		errors.Is(err, service.ErrInvalidGameMode),
		errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func userToResponse(user domain.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

func gameToResponse(game domain.Game) gameResponse {
	return gameResponse{
		ID:        game.ID,
		UserID:    game.UserID,
		Score:     game.Score,
		GameMode:  string(game.GameMode),
		Status:    string(game.Status),
		CreatedAt: game.CreatedAt.Format(time.RFC3339),
	}
}
