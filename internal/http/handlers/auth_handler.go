// README: Auth and profile handlers: signup, signin, signout, profile edits.
package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"omaga/internal/http/middleware"
	"omaga/internal/modules/identity"
	"omaga/internal/modules/media"
)

type AuthHandler struct {
	identity *identity.Service
	media    *media.Service
}

func NewAuthHandler(identitySvc *identity.Service, mediaSvc *media.Service) *AuthHandler {
	return &AuthHandler{identity: identitySvc, media: mediaSvc}
}

type userView struct {
	ID                string  `json:"id"`
	Email             string  `json:"email"`
	Name              string  `json:"name"`
	WaNumber          string  `json:"wa_number"`
	Role              string  `json:"role"`
	ProfilePictureURL *string `json:"profile_picture_url"`
}

func viewUser(u *identity.User) userView {
	return userView{
		ID:                string(u.ID),
		Email:             u.Email,
		Name:              u.Name,
		WaNumber:          u.WaNumber,
		Role:              string(u.Role),
		ProfilePictureURL: u.ProfilePictureURL,
	}
}

type signUpReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	WaNumber string `json:"wa_number"`
	Password string `json:"password"`
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	user, token, err := h.identity.SignUp(c.Request.Context(), identity.SignUpCommand{
		Name:     req.Name,
		Email:    req.Email,
		WaNumber: req.WaNumber,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"user": viewUser(user), "token": token})
}

type signInReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	user, token, err := h.identity.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"user": viewUser(user), "token": token})
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	token := middleware.BearerToken(c.Request)
	if err := h.identity.SignOut(c.Request.Context(), token); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": "signed_out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"user": viewUser(middleware.Caller(c))})
}

type updateProfileReq struct {
	Name     *string `json:"name"`
	WaNumber *string `json:"wa_number"`
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	caller := middleware.Caller(c)
	user, err := h.identity.UpdateProfile(c.Request.Context(), caller.ID, identity.ProfileUpdate{
		Name:     req.Name,
		WaNumber: req.WaNumber,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"user": viewUser(user)})
}

type updatePasswordReq struct {
	Password string `json:"password"`
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req updatePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	caller := middleware.Caller(c)
	if err := h.identity.UpdatePassword(c.Request.Context(), caller.ID, req.Password); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": "updated"})
}

// UploadProfilePicture accepts a multipart "file" part and stores it as the
// caller's single picture slot.
func (h *AuthHandler) UploadProfilePicture(c *gin.Context) {
	caller := middleware.Caller(c)
	data, contentType, err := readImagePart(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid upload")
		return
	}
	url, err := h.media.UploadProfilePicture(c.Request.Context(), caller.ID, contentType, data)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"profile_picture_url": url})
}

func readImagePart(c *gin.Context) ([]byte, string, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, "", err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, media.MaxImageBytes+1))
	if err != nil {
		return nil, "", err
	}
	return data, fh.Header.Get("Content-Type"), nil
}
