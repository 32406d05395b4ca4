package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/labscan/internal/apperr"
	"github.com/agenthands/labscan/internal/capture"
	"github.com/agenthands/labscan/internal/catalog"
	"github.com/agenthands/labscan/internal/media"
	"github.com/agenthands/labscan/internal/voice"
)

// SessionHeader carries the hand-off session between scan and detail.
const SessionHeader = "X-Session-ID"

func (s *Server) ListCatalog(c *gin.Context) {
	listings := s.Assistant.Catalog(c.Query("category"))
	c.JSON(http.StatusOK, gin.H{"entries": listings})
}

func (s *Server) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": catalog.Categories()})
}

type IdentifyRequest struct {
	PhotoDataURI string `json:"photoDataUri" binding:"required"`
}

func (s *Server) Identify(c *gin.Context) {
	var req IdentifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := s.Assistant.Identify(c.Request.Context(), req.PhotoDataURI)
	if err != nil {
		respondError(c, apperr.OpIdentify, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type ScanResponse struct {
	capture.Result
	// Redirect is the detail link with the session attached.
	Redirect string         `json:"redirect,omitempty"`
	Notice   *apperr.Notice `json:"notice,omitempty"`
}

// ScanError is the body of a failed scan. Hint is the inline message for
// the capture control.
type ScanError struct {
	Error apperr.Notice `json:"error"`
	Hint  string        `json:"hint"`
}

// Scan accepts one frame, either as multipart field "image" or as a JSON
// data URI, and runs capture, identify and hand-off.
func (s *Server) Scan(c *gin.Context) {
	frame, err := s.readFrame(c)
	if err != nil {
		respondScanError(c, err, apperr.ScanHint(err))
		return
	}

	res, hint, err := s.Assistant.ScanUpload(c.Request.Context(), frame)
	if err != nil {
		respondScanError(c, err, hint)
		return
	}

	resp := ScanResponse{Result: res}
	if res.Accepted {
		resp.Redirect = withSession(res.Link, res.Session)
		resp.Notice = &apperr.Notice{
			Title:   "Equipment Identified!",
			Message: "Identified as: " + res.Identification.EquipmentName,
		}
	} else {
		resp.Notice = &apperr.Notice{
			Title:   "Not Laboratory Equipment",
			Message: res.Identification.Reason(),
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) readFrame(c *gin.Context) ([]byte, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("image")
		if err == http.ErrMissingFile {
			return nil, apperr.Validation("an image upload is required")
		}
		if err != nil {
			return nil, apperr.WrapValidation(err, "read upload")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, apperr.WrapValidation(err, "open upload")
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, apperr.WrapValidation(err, "read upload")
		}
		return data, nil
	}

	var req IdentifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, apperr.WrapValidation(err, "invalid request")
	}
	img, err := media.ParseDataURI(req.PhotoDataURI, s.Assistant.Identifier.MaxImageBytes)
	if err != nil {
		return nil, err
	}
	return img.Data, nil
}

func withSession(link, session string) string {
	sep := "?"
	if strings.Contains(link, "?") {
		sep = "&"
	}
	return link + sep + "session=" + session
}

func sessionOf(c *gin.Context) string {
	if v := c.GetHeader(SessionHeader); v != "" {
		return v
	}
	return c.Query("session")
}

func (s *Server) GetEquipment(c *gin.Context) {
	view, err := s.Assistant.Detail(c.Request.Context(), sessionOf(c), c.Param("name"), c.Request.URL.Query())
	if err != nil {
		respondError(c, apperr.OpCatalog, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type QuestionRequest struct {
	Query string `json:"query"`
}

type QuestionResponse struct {
	EquipmentName string `json:"equipmentName"`
	Query         string `json:"query"`
	Explanation   string `json:"explanation"`
}

func (s *Server) AskQuestion(c *gin.Context) {
	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	name := c.Param("name")
	explanation, err := s.Assistant.Explain(c.Request.Context(), name, req.Query)
	if err != nil {
		respondError(c, apperr.OpExplain, err)
		return
	}

	c.JSON(http.StatusOK, QuestionResponse{
		EquipmentName: name,
		Query:         strings.TrimSpace(req.Query),
		Explanation:   explanation,
	})
}

type VoiceCommandRequest struct {
	Transcript string `json:"transcript"`
}

func (s *Server) VoiceCommand(c *gin.Context) {
	var req VoiceCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	cmd := voice.ParseCommand(req.Transcript)
	c.JSON(http.StatusOK, gin.H{
		"command":  cmd,
		"navigate": cmd.Navigation(),
	})
}
