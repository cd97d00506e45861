package web

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/trustnet/trustnet/db"
	"golang.org/x/crypto/bcrypt"
)

// Stub auth backend. The real TrustNet backend is an external service; this
// one exists so the client can be developed and tested without it. Response
// shapes follow the production contract: 2xx with {message, token, user},
// non-2xx with {message}.

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func userJSON(user *db.StubUser) gin.H {
	return gin.H{
		"id":    user.Id.String(),
		"name":  user.Name,
		"email": user.Email,
	}
}

func HandleSignup(c *gin.Context, database *db.DB) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, email and password are required"})
		return
	}

	if err, existing := database.ReadUserByEmail(req.Email); err == nil && existing != nil {
		c.JSON(http.StatusConflict, gin.H{"message": "Email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Could not hash password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Signup failed"})
		return
	}

	err, user := database.CreateUser(req.Name, req.Email, string(hash))
	if err != nil {
		log.Printf("Could not create user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Signup failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Signup successful",
		"token":   uuid.NewString(),
		"user":    userJSON(user),
	})
}

func HandleLogin(c *gin.Context, database *db.DB) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	err, user := database.ReadUserByEmail(req.Email)
	if err != nil || user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   uuid.NewString(),
		"user":    userJSON(user),
	})
}
