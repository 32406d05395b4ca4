package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/agenthands/labscan/internal/catalog"
	"github.com/agenthands/labscan/internal/config"
	"github.com/agenthands/labscan/internal/core"
	"github.com/agenthands/labscan/internal/detail"
	"github.com/agenthands/labscan/internal/handoff"
	"github.com/agenthands/labscan/internal/llm"
	"github.com/agenthands/labscan/internal/media"
)

var jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00\xff\xd9")

const beakerJSON = `{"equipmentName":"Beaker","description":"A cylindrical container.","category":"Glassware","isLaboratoryEquipment":true}`

func setup(t *testing.T, mock *llm.MockClient) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	log := zaptest.NewLogger(t)
	a := core.NewAssistant(mock, handoff.NewMemoryStore(cfg.Handoff.TTL.Duration), cfg, log)
	return NewServer(a, cfg, log).SetupRouter()
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

type errorBody struct {
	Error struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestHealth(t *testing.T) {
	w := do(setup(t, &llm.MockClient{}), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	r := setup(t, &llm.MockClient{})

	w := do(r, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Entries []catalog.Listing `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Entries, len(catalog.All()))
	for _, e := range body.Entries {
		ref, err := catalog.ParseLink(e.Link)
		require.NoError(t, err)
		assert.Equal(t, e.Name, ref.Name)
	}

	w = do(r, httptest.NewRequest(http.MethodGet, "/api/catalog?category=Biology", nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Entries, 5)

	w = do(r, httptest.NewRequest(http.MethodGet, "/api/catalog/categories", nil))
	assert.Contains(t, w.Body.String(), "Measurement")
}

func TestIdentify(t *testing.T) {
	mock := &llm.MockClient{Response: `{"equipmentName":"Not Laboratory Equipment","description":"x","category":"y","isLaboratoryEquipment":false,"rejectionReason":"That is a phone."}`}
	r := setup(t, mock)

	img := media.Image{MIMEType: "image/jpeg", Data: jpegBytes}
	w := do(r, jsonRequest(t, http.MethodPost, "/api/identify", map[string]string{"photoDataUri": img.DataURI()}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, false, got["isLaboratoryEquipment"])
	assert.Equal(t, "That is a phone.", got["rejectionReason"])
}

func TestIdentifyLabResultOmitsRejectionReason(t *testing.T) {
	r := setup(t, &llm.MockClient{Response: beakerJSON})

	img := media.Image{MIMEType: "image/jpeg", Data: jpegBytes}
	w := do(r, jsonRequest(t, http.MethodPost, "/api/identify", map[string]string{"photoDataUri": img.DataURI()}))
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, true, got["isLaboratoryEquipment"])
	assert.NotContains(t, got, "rejectionReason")
}

func TestIdentifyModelFailure(t *testing.T) {
	r := setup(t, &llm.MockClient{Err: assert.AnError})

	img := media.Image{MIMEType: "image/jpeg", Data: jpegBytes}
	w := do(r, jsonRequest(t, http.MethodPost, "/api/identify", map[string]string{"photoDataUri": img.DataURI()}))
	assert.Equal(t, http.StatusBadGateway, w.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Identification Failed", body.Error.Title)
}

func TestIdentifyUnreadableReply(t *testing.T) {
	img := media.Image{MIMEType: "image/jpeg", Data: jpegBytes}
	for _, reply := range []string{
		"I am not sure what this is.",
		`{"equipmentName": oops}`,
		`{"equipmentName":"Cup","description":"x","category":"y","isLaboratoryEquipment":false}`,
	} {
		w := do(setup(t, &llm.MockClient{Response: reply}), jsonRequest(t, http.MethodPost, "/api/identify", map[string]string{"photoDataUri": img.DataURI()}))
		require.Equal(t, http.StatusBadGateway, w.Code, reply)

		var body errorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Identification Failed", body.Error.Title)
		assert.Equal(t, "We couldn't identify the equipment. Please try again.", body.Error.Message)
	}
}

func TestIdentifyMissingPhoto(t *testing.T) {
	mock := &llm.MockClient{}
	w := do(setup(t, mock), jsonRequest(t, http.MethodPost, "/api/identify", map[string]string{}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, mock.Calls())
}

func multipartFrame(t *testing.T, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if data != nil {
		fw, err := mw.CreateFormFile("image", "frame.jpg")
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/scan", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestScanThenDetailConsumesHandoff(t *testing.T) {
	r := setup(t, &llm.MockClient{Response: beakerJSON})

	w := do(r, multipartFrame(t, jpegBytes))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var scan ScanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scan))
	require.True(t, scan.Accepted)
	require.NotNil(t, scan.Notice)
	assert.Equal(t, "Identified as: Beaker", scan.Notice.Message)
	assert.True(t, strings.HasPrefix(scan.Redirect, "/equipment/Beaker?"))

	u, err := url.Parse(scan.Redirect)
	require.NoError(t, err)
	detailURL := "/api" + u.Path + "?" + u.RawQuery

	w = do(r, httptest.NewRequest(http.MethodGet, detailURL, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var view detail.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "Beaker", view.EquipmentName)
	assert.Equal(t, "Glassware", view.Category)
	assert.True(t, view.AutoPlay)
	assert.Equal(t, media.Image{MIMEType: "image/jpeg", Data: jpegBytes}.DataURI(), view.CapturedImage)

	w = do(r, httptest.NewRequest(http.MethodGet, detailURL, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var again detail.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &again))
	assert.Equal(t, "Beaker", again.EquipmentName)
	assert.False(t, again.AutoPlay)
	assert.Empty(t, again.CapturedImage)
}

func TestScanWithDataURIAndSessionHeader(t *testing.T) {
	r := setup(t, &llm.MockClient{Response: beakerJSON})

	img := media.Image{MIMEType: "image/jpeg", Data: jpegBytes}
	w := do(r, jsonRequest(t, http.MethodPost, "/api/scan", map[string]string{"photoDataUri": img.DataURI()}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var scan ScanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scan))

	req := httptest.NewRequest(http.MethodGet, "/api"+scan.Link, nil)
	req.Header.Set(SessionHeader, scan.Session)
	w = do(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"autoPlay":true`)
}

func TestScanRejectedItem(t *testing.T) {
	r := setup(t, &llm.MockClient{Response: `{"equipmentName":"Cup","description":"x","category":"y","isLaboratoryEquipment":false,"rejectionReason":"A cup is kitchenware."}`})

	w := do(r, multipartFrame(t, jpegBytes))
	require.Equal(t, http.StatusOK, w.Code)

	var scan ScanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scan))
	assert.False(t, scan.Accepted)
	assert.Empty(t, scan.Redirect)
	assert.Empty(t, scan.Session)
	require.NotNil(t, scan.Notice)
	assert.Equal(t, "A cup is kitchenware.", scan.Notice.Message)
}

func TestScanWithoutImageField(t *testing.T) {
	mock := &llm.MockClient{}
	w := do(setup(t, mock), multipartFrame(t, nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, mock.Calls())

	var body ScanError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "an image upload is required", body.Error.Message)
	assert.Equal(t, "an image upload is required", body.Hint)
	assert.NotContains(t, w.Body.String(), "browser")
}

func TestScanUnreadableReply(t *testing.T) {
	w := do(setup(t, &llm.MockClient{Response: "I am not sure what this is."}), multipartFrame(t, jpegBytes))
	require.Equal(t, http.StatusBadGateway, w.Code)

	var body ScanError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Identification Failed", body.Error.Title)
	assert.Equal(t, "Could not identify the equipment. Please try again with a clearer image.", body.Hint)
}

func TestScanRejectsNonImage(t *testing.T) {
	mock := &llm.MockClient{}
	w := do(setup(t, mock), multipartFrame(t, []byte("hello, this is not an image")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, mock.Calls())
}

func TestDetailWithEscapedName(t *testing.T) {
	r := setup(t, &llm.MockClient{})
	ref := catalog.Ref{Name: "50% NaOH / Flask", Description: "Careful.", Category: "Chemistry"}

	w := do(r, httptest.NewRequest(http.MethodGet, "/api"+catalog.Link(ref), nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var view detail.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, ref.Name, view.EquipmentName)
	assert.Equal(t, ref.Description, view.Description)
}

func TestDetailBadSession(t *testing.T) {
	r := setup(t, &llm.MockClient{})
	w := do(r, httptest.NewRequest(http.MethodGet, "/api/equipment/Beaker?session=nope", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAskQuestion(t *testing.T) {
	mock := &llm.MockClient{Response: `{"explanation":"Keep the flame away from your hair."}`}
	r := setup(t, mock)

	w := do(r, jsonRequest(t, http.MethodPost, "/api/equipment/Bunsen%20Burner/questions", map[string]string{"query": "Is it safe to use?"}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp QuestionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Bunsen Burner", resp.EquipmentName)
	assert.Equal(t, "Keep the flame away from your hair.", resp.Explanation)
	assert.Contains(t, mock.Prompts[0], "Equipment Name: Bunsen Burner")
}

func TestAskQuestionTooShort(t *testing.T) {
	mock := &llm.MockClient{Response: `{"explanation":"x"}`}
	w := do(setup(t, mock), jsonRequest(t, http.MethodPost, "/api/equipment/Beaker/questions", map[string]string{"query": "why"}))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Your question must be at least 10 characters long.", body.Error.Message)
	assert.Equal(t, 0, mock.Calls())
}

func TestAskQuestionModelFailure(t *testing.T) {
	w := do(setup(t, &llm.MockClient{Err: assert.AnError}),
		jsonRequest(t, http.MethodPost, "/api/equipment/Beaker/questions", map[string]string{"query": "What is it made of?"}))
	require.Equal(t, http.StatusBadGateway, w.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Could not fetch details. Please try again later.", body.Error.Message)
}

func TestAskQuestionUnreadableReply(t *testing.T) {
	w := do(setup(t, &llm.MockClient{Response: `{"explanation": ""}`}),
		jsonRequest(t, http.MethodPost, "/api/equipment/Beaker/questions", map[string]string{"query": "What is it made of?"}))
	require.Equal(t, http.StatusBadGateway, w.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "An error occurred", body.Error.Title)
	assert.Equal(t, "Could not fetch details. Please try again later.", body.Error.Message)
}

func TestVoiceCommand(t *testing.T) {
	r := setup(t, &llm.MockClient{})

	w := do(r, jsonRequest(t, http.MethodPost, "/api/voice/commands", map[string]string{"transcript": "Show me another equipment"}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"command":"scan_another","navigate":"/"}`, w.Body.String())

	w = do(r, jsonRequest(t, http.MethodPost, "/api/voice/commands", map[string]string{"transcript": "okay"}))
	assert.JSONEq(t, `{"command":"stop_speaking","navigate":""}`, w.Body.String())
}

func TestBodyLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.Server.MaxImageBytes = 16
	a := core.NewAssistant(&llm.MockClient{}, handoff.NewMemoryStore(0), cfg, nil)
	r := NewServer(a, cfg, nil).SetupRouter()

	big := strings.Repeat("A", 128<<10)
	w := do(r, jsonRequest(t, http.MethodPost, "/api/identify", map[string]string{"photoDataUri": "data:image/jpeg;base64," + big}))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
