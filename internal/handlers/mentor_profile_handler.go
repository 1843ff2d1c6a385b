package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/coachhub/coachhub-api/internal/middleware"
	"github.com/coachhub/coachhub-api/internal/models"
	"github.com/coachhub/coachhub-api/internal/services"
	"github.com/coachhub/coachhub-api/pkg/storage"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// resumeFormField is the multipart field carrying the resume file
const resumeFormField = "resume"

var errResumeTooLarge = errors.New("resume exceeds the upload limit")

// MentorProfileHandler serves mentor profile reads and writes
type MentorProfileHandler struct {
	profiles services.MentorProfileServiceInterface
}

// NewMentorProfileHandler creates a new MentorProfileHandler
func NewMentorProfileHandler(profiles services.MentorProfileServiceInterface) *MentorProfileHandler {
	return &MentorProfileHandler{profiles: profiles}
}

// SaveProfile handles POST /api/v1/mentor/profile.
// Accepts JSON, or multipart form fields with an optional "resume" file.
func (h *MentorProfileHandler) SaveProfile(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Please login first", err)
		return
	}

	var (
		req    *models.MentorProfileRequest
		resume *models.ResumeFile
	)
	if strings.HasPrefix(c.ContentType(), binding.MIMEMultipartPOSTForm) {
		req, resume, err = profileFromForm(c)
	} else {
		req = &models.MentorProfileRequest{}
		err = c.ShouldBindJSON(req)
	}
	if err != nil {
		if errors.Is(err, errResumeTooLarge) {
			respondError(c, http.StatusRequestEntityTooLarge, "Resume file is too large", err)
			return
		}
		respondBindError(c, err)
		return
	}

	if req.UserID != 0 && req.UserID != session.UserID {
		respondError(c, http.StatusForbidden, "You can only edit your own profile", nil)
		return
	}

	resp, created, err := h.profiles.CreateOrUpdateMentorProfile(c.Request.Context(), req, resume)
	if err != nil {
		respondServiceError(c, err, "Database error")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}

// GetProfile handles GET /api/v1/mentor/profile/:user_id
func (h *MentorProfileHandler) GetProfile(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		respondError(c, http.StatusBadRequest, "user_id is required", err)
		return
	}

	profile, err := h.profiles.GetMentorProfile(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Database error")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// profileFromForm reads a multipart profile write
func profileFromForm(c *gin.Context) (*models.MentorProfileRequest, *models.ResumeFile, error) {
	req := &models.MentorProfileRequest{
		Username: formValue(c, "username"),
		Category: formValue(c, "category"),
		Bio:      formValue(c, "bio"),
	}

	if v := c.PostForm("user_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, nil, err
		}
		req.UserID = id
	}
	if v := formValue(c, "skills"); v != nil {
		s := models.SerializedText(*v)
		req.Skills = &s
	}
	if v := formValue(c, "other_skills"); v != nil {
		s := models.SerializedText(*v)
		req.OtherSkills = &s
	}
	if v := formValue(c, "hourly_rate"); v != nil && *v != "" {
		rate, err := strconv.ParseFloat(*v, 64)
		if err != nil {
			return nil, nil, err
		}
		req.HourlyRate = &rate
	}

	if err := binding.Validator.ValidateStruct(req); err != nil {
		return nil, nil, err
	}

	fh, err := c.FormFile(resumeFormField)
	if errors.Is(err, http.ErrMissingFile) {
		return req, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	if fh.Size > storage.MaxResumeSize {
		return nil, nil, errResumeTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, storage.MaxResumeSize+1))
	if err != nil {
		return nil, nil, err
	}

	return req, &models.ResumeFile{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func formValue(c *gin.Context, key string) *string {
	if v, ok := c.GetPostForm(key); ok {
		return &v
	}
	return nil
}
