package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rjrato/Write-it-V2-Backend/internal/common"
	"github.com/rjrato/Write-it-V2-Backend/internal/server/models"
	"github.com/rjrato/Write-it-V2-Backend/internal/server/services"
)

type handler struct {
	users *services.UserService
	notes *services.NoteService
}

func newHandler(users *services.UserService, notes *services.NoteService) *handler {
	return &handler{users: users, notes: notes}
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type addNoteRequest struct {
	UserID  string `json:"userId"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type userResponse struct {
	UserID    string `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type noteResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	UserID  string `json:"userId"`
}

func (h *handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Registration failed"})
		return
	}

	profile, err := h.users.Register(c.Request.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		status, msg := errorStatus(err)
		c.JSON(status, gin.H{"success": false, "message": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    userResponse{UserID: profile.ID, FirstName: profile.FirstName, LastName: profile.LastName},
		"message": "User registered",
	})
}

func (h *handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Login failed"})
		return
	}

	profile, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		status, msg := errorStatus(err)
		c.JSON(status, gin.H{"success": false, "message": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    userResponse{UserID: profile.ID, FirstName: profile.FirstName, LastName: profile.LastName},
	})
}

func (h *handler) AddNote(c *gin.Context) {
	var req addNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}
	if !validID(req.UserID) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid user id"})
		return
	}

	note, err := h.notes.AddNote(c.Request.Context(), req.UserID, req.Title, req.Content)
	if err != nil {
		status, msg := errorStatus(err)
		c.JSON(status, gin.H{"success": false, "message": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"note":    toNoteResponse(note),
		"message": "Note successfully added!",
	})
}

func (h *handler) DeleteNote(c *gin.Context) {
	userID := c.Param("userId")
	noteID := c.Param("noteId")
	if !validID(userID) || !validID(noteID) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
		return
	}

	if err := h.notes.DeleteNote(c.Request.Context(), userID, noteID); err != nil {
		status, msg := errorStatus(err)
		c.JSON(status, gin.H{"success": false, "message": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Note successfully deleted!"})
}

func (h *handler) GetUserNotes(c *gin.Context) {
	userID := c.Param("userId")
	if !validID(userID) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid user id"})
		return
	}

	notes, err := h.notes.ListNotes(c.Request.Context(), userID)
	if err != nil {
		status, msg := errorStatus(err)
		c.JSON(status, gin.H{"success": false, "message": msg})
		return
	}

	out := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteResponse(n))
	}
	c.JSON(http.StatusOK, out)
}

func toNoteResponse(n *models.Note) noteResponse {
	return noteResponse{ID: n.ID, Title: n.Title, Content: n.Content, UserID: n.UserID}
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// errorStatus maps a core error kind to an HTTP status and a safe message.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, common.ErrorInvalidCredentials):
		return http.StatusUnauthorized, "Incorrect password"
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusForbidden, "Note belongs to another user"
	case errors.Is(err, common.ErrorDuplicateEmail):
		return http.StatusConflict, "Email already registered"
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, common.ErrorStorageTimeout):
		return http.StatusGatewayTimeout, "Storage timeout"
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}
