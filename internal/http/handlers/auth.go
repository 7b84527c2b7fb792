package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	intconfig "transport/internal/config"
	intdb "transport/internal/db"
	"transport/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthUser is the user payload returned by register and login.
type AuthUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	if req.Username == "" || req.Email == "" || req.FullName == "" {
		RespondError(c, http.StatusBadRequest, "username, email and full_name are required", nil)
		return
	}
	if len(req.Password) < 6 {
		RespondError(c, http.StatusBadRequest, "password must be at least 6 characters", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO users (username, email, password, full_name, phone, user_type)
		VALUES (?, ?, ?, ?, ?, 'customer')
	`, req.Username, req.Email, string(hash), req.FullName, req.Phone)
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			RespondError(c, http.StatusConflict, "username or email already registered", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to create user", err)
		return
	}

	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{
		"user": AuthUser{
			ID:       id,
			Username: req.Username,
			Email:    req.Email,
			FullName: req.FullName,
			Phone:    req.Phone,
			Role:     "customer",
		},
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/login
// Accepts username or email in the username field, like the old login form.
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	var (
		user         AuthUser
		passwordHash string
		phone        sql.NullString
	)
	err := intconfig.DB.QueryRow(`
		SELECT id, username, email, password, full_name, phone, user_type
		FROM users
		WHERE username = ? OR email = ?
	`, req.Username, req.Username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&passwordHash,
		&user.FullName,
		&phone,
		&user.Role,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			RespondError(c, http.StatusUnauthorized, "wrong username or password", nil)
		} else {
			RespondError(c, http.StatusInternalServerError, "failed to query user", err)
		}
		return
	}
	user.Phone = phone.String

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "wrong username or password", nil)
		return
	}

	token, err := middleware.IssueToken(user.ID, user.Role)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to sign token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
