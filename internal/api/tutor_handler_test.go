package api_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/studyai-api/internal/api"
	"github.com/phrazzld/studyai-api/internal/api/shared"
	"github.com/phrazzld/studyai-api/internal/generation"
	"github.com/phrazzld/studyai-api/internal/mocks"
	"github.com/phrazzld/studyai-api/internal/service/tutor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(shared.WithTraceID(req.Context(), "trace-test-0001"))
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func newHandler(svc tutor.Service) *api.TutorHandler {
	return api.NewTutorHandler(svc, 1<<20, nil)
}

func TestTutorHandler_Ask(t *testing.T) {
	t.Parallel()

	allFailed := fmt.Errorf("ask: %w", fmt.Errorf("%w: %w", generation.ErrAllAttemptsFailed, errors.New("429 quota")))

	tests := []struct {
		name          string
		body          interface{}
		serviceErr    error
		wantStatus    int
		wantAnswer    string
		wantError     string
		wantServiceIn *tutor.AskInput
	}{
		{
			name: "success",
			body: map[string]any{
				"question":    "Explain photosynthesis",
				"subject":     "Biology",
				"board":       "FBISE",
				"language":    "English",
				"userProfile": map[string]any{"name": "Ayesha", "grade": "Grade 9"},
			},
			wantStatus: http.StatusOK,
			wantAnswer: "Plants make food from sunlight.",
			wantServiceIn: &tutor.AskInput{
				Question: "Explain photosynthesis",
				Subject:  "Biology",
				Board:    "FBISE",
				Language: "English",
				Profile:  &tutor.Profile{Name: "Ayesha", Grade: "Grade 9"},
			},
		},
		{
			name:       "missing question",
			body:       map[string]any{"subject": "Biology"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid question: required field",
		},
		{
			name:       "malformed json",
			body:       `{"question":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request format",
		},
		{
			name:       "empty body",
			body:       nil,
			wantStatus: http.StatusBadRequest,
			wantError:  "Request body is required",
		},
		{
			name:       "blank question rejected by service",
			body:       map[string]any{"question": "   "},
			serviceErr: fmt.Errorf("%w: question is required", tutor.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
			wantError:  "Question is required",
		},
		{
			name:       "all providers failed",
			body:       map[string]any{"question": "Explain gravity"},
			serviceErr: allFailed,
			wantStatus: http.StatusServiceUnavailable,
			wantError:  "Failed to generate answer. Please try again.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var got *tutor.AskInput
			svc := &mocks.MockTutorService{
				AskFn: func(ctx context.Context, in tutor.AskInput) (string, error) {
					got = &in
					if tc.serviceErr != nil {
						return "", tc.serviceErr
					}
					return tc.wantAnswer, nil
				},
			}

			rr := httptest.NewRecorder()
			newHandler(svc).Ask(rr, jsonRequest(t, http.MethodPost, "/api/ask", tc.body))

			assert.Equal(t, tc.wantStatus, rr.Code)
			if tc.wantStatus == http.StatusOK {
				var resp api.AnswerResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tc.wantAnswer, resp.Answer)
				assert.Equal(t, tc.wantServiceIn, got)
				return
			}

			resp := decodeError(t, rr)
			assert.Equal(t, tc.wantError, resp.Error)
			assert.Equal(t, "trace-test-0001", resp.TraceID)
			assert.NotContains(t, rr.Body.String(), "429 quota")
		})
	}
}

func TestTutorHandler_Snap(t *testing.T) {
	t.Parallel()

	png := []byte{0x89, 'P', 'N', 'G'}

	var gotImage []byte
	var gotMIME string
	svc := &mocks.MockTutorService{
		SnapFn: func(ctx context.Context, image []byte, mimeType string) (string, error) {
			gotImage, gotMIME = image, mimeType
			return "x = 4", nil
		},
	}
	h := newHandler(svc)

	rr := httptest.NewRecorder()
	h.Snap(rr, jsonRequest(t, http.MethodPost, "/api/snap",
		map[string]string{"image": "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)}))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, png, gotImage)
	assert.Equal(t, "image/png", gotMIME)

	t.Run("invalid image", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.Snap(rr, jsonRequest(t, http.MethodPost, "/api/snap", map[string]string{"image": "%%%"}))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Image is not valid base64", decodeError(t, rr).Error)
	})

	t.Run("missing image", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.Snap(rr, jsonRequest(t, http.MethodPost, "/api/snap", map[string]string{}))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid image: required field", decodeError(t, rr).Error)
	})
}

func TestTutorHandler_TutorDocument(t *testing.T) {
	t.Parallel()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "chapter.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 chapter"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("prompt", "Make notes"))
	require.NoError(t, mw.Close())

	var gotDoc tutor.Document
	var gotPrompt string
	svc := &mocks.MockTutorService{
		TutorDocumentFn: func(ctx context.Context, doc tutor.Document, instruction string) (string, error) {
			gotDoc, gotPrompt = doc, instruction
			return "Notes...", nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/pdf-tutor", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	newHandler(svc).TutorDocument(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp api.DocumentResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Notes...", resp.Response)
	assert.Equal(t, "Make notes", gotPrompt)
	assert.Equal(t, "chapter.pdf", gotDoc.FileName)
	assert.Equal(t, generation.MIMETypePDF, gotDoc.MIMEType)
}

func TestTutorHandler_JSONTools(t *testing.T) {
	t.Parallel()

	svc := &mocks.MockTutorService{
		SummarizeFn: func(ctx context.Context, text string) (string, error) {
			return "### 📝 Overview", nil
		},
		MindMapFn: func(ctx context.Context, topic string) (string, error) {
			return "graph TD\n  A[" + topic + "]", nil
		},
		PlanFn: func(ctx context.Context, in tutor.PlanInput) (*tutor.StudyPlan, error) {
			return &tutor.StudyPlan{Summary: in.Subject + " plan", Schedule: []tutor.PlanItem{{Day: "Day 1", Task: "Acids", Time: "2h"}}}, nil
		},
		QuizFn: func(ctx context.Context, topic string, profile *tutor.Profile) ([]tutor.QuizQuestion, error) {
			return []tutor.QuizQuestion{{Question: "Q1", Options: []string{"a", "b", "c", "d"}, Answer: 1}}, nil
		},
		GradeFn: func(ctx context.Context, question, answer, subject string) (*tutor.GradeReport, error) {
			return &tutor.GradeReport{Score: "8/10", Strengths: []string{"clear"}, Weaknesses: []string{}}, nil
		},
		FlashcardsFn: func(ctx context.Context, content string, count int) (*tutor.FlashcardSet, error) {
			return &tutor.FlashcardSet{Flashcards: []tutor.Flashcard{{Front: "Cell", Back: fmt.Sprint(count)}}}, nil
		},
		QuoteFn: func(ctx context.Context) string { return "Keep going." },
	}
	h := newHandler(svc)

	tests := []struct {
		name     string
		handler  http.HandlerFunc
		method   string
		path     string
		body     interface{}
		wantJSON string
	}{
		{"summarize", h.Summarize, http.MethodPost, "/api/summarize", map[string]any{"text": "Cells..."}, `{"summary":"### 📝 Overview"}`},
		{"mindmap", h.MindMap, http.MethodPost, "/api/mindmap", map[string]any{"topic": "Water Cycle"}, `{"code":"graph TD\n  A[Water Cycle]"}`},
		{
			"planner", h.Plan, http.MethodPost, "/api/planner",
			map[string]any{"examDate": "2025-06-01", "subject": "Chemistry"},
			`{"summary":"Chemistry plan","schedule":[{"day":"Day 1","task":"Acids","time":"2h"}]}`,
		},
		{
			"quiz", h.Quiz, http.MethodPost, "/api/quiz", map[string]any{"topic": "Cells"},
			`{"questions":[{"question":"Q1","options":["a","b","c","d"],"answer":1,"explanation":""}]}`,
		},
		{
			"grader", h.Grade, http.MethodPost, "/api/grader", map[string]any{"question": "Q", "answer": "A"},
			`{"score":"8/10","strengths":["clear"],"weaknesses":[],"improvement_tips":"","model_answer_snippet":""}`,
		},
		{
			"flashcards", h.Flashcards, http.MethodPost, "/api/flashcards", map[string]any{"content": "Cells", "count": 12},
			`{"flashcards":[{"front":"Cell","back":"12"}]}`,
		},
		{"quote", h.Quote, http.MethodGet, "/api/quote", nil, `{"quote":"Keep going."}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			tc.handler(rr, jsonRequest(t, tc.method, tc.path, tc.body))
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.JSONEq(t, tc.wantJSON, rr.Body.String())
		})
	}
}

func TestTutorHandler_ValidationAndErrors(t *testing.T) {
	t.Parallel()

	svc := &mocks.MockTutorService{Err: fmt.Errorf("quiz: %w", tutor.ErrMalformedOutput)}
	h := newHandler(svc)

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		path       string
		body       interface{}
		wantStatus int
		wantError  string
	}{
		{"flashcards count over max", h.Flashcards, "/api/flashcards", map[string]any{"content": "x", "count": 51}, http.StatusBadRequest, "Invalid count: too long"},
		{"planner missing date", h.Plan, "/api/planner", map[string]any{"subject": "Physics"}, http.StatusBadRequest, "Invalid examDate: required field"},
		{"grader missing answer", h.Grade, "/api/grader", map[string]any{"question": "Q"}, http.StatusBadRequest, "Invalid answer: required field"},
		{"mindmap missing topic", h.MindMap, "/api/mindmap", map[string]any{}, http.StatusBadRequest, "Invalid topic: required field"},
		{"summarize missing text", h.Summarize, "/api/summarize", map[string]any{"text": ""}, http.StatusBadRequest, "Invalid text: required field"},
		{"quiz malformed output", h.Quiz, "/api/quiz", map[string]any{"topic": "Cells"}, http.StatusBadGateway, "The AI returned an unexpected format. Please try again."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			tc.handler(rr, jsonRequest(t, http.MethodPost, tc.path, tc.body))
			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Equal(t, tc.wantError, decodeError(t, rr).Error)
		})
	}
}

func TestNewTutorHandler_NilService(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { api.NewTutorHandler(nil, 0, nil) })
}

func TestTutorHandler_UploadTooLarge(t *testing.T) {
	t.Parallel()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "big.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte(strings.Repeat("a", 8192)))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/pdf-tutor", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()

	api.NewTutorHandler(&mocks.MockTutorService{}, 1024, nil).TutorDocument(rr, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Equal(t, "File is too large", decodeError(t, rr).Error)
}
