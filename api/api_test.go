package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.Nil(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func newTestRouter() http.Handler {
	return NewRouter(Config{Logger: zerolog.Nop()})
}

func TestRun(t *testing.T) {
	rec := post(t, newTestRouter(), "/v1/run", RunRequest{
		Source: "++++++++[>++++++++<-]>+.",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, RunResponse{Output: "A"}, decode[RunResponse](t, rec))
}

func TestRunPhraseWithInput(t *testing.T) {
	rec := post(t, newTestRouter(), "/v1/run", RunRequest{
		Source:   "Ook. Ook! Ook! Ook. Ook. Ook! Ook! Ook.",
		Notation: "ook",
		Input:    "hi",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "hi", decode[RunResponse](t, rec).Output)
}

func TestRunUnbalanced(t *testing.T) {
	rec := post(t, newTestRouter(), "/v1/run", RunRequest{Source: "+.]"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, RunResponse{
		Output: "\x01",
		Error: &Error{
			Kind:     "unbalanced loop",
			Message:  "loop end has no matching loop start",
			Position: 2,
		},
	}, decode[RunResponse](t, rec))
}

func TestRunStepLimit(t *testing.T) {
	handler := NewRouter(Config{Logger: zerolog.Nop(), MaxSteps: 100})

	rec := post(t, handler, "/v1/run", RunRequest{Source: "+[]"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decode[RunResponse](t, rec)
	require.Equal(t, "halted", resp.Error.Kind)
	require.Equal(t, "execution halted by observer after 100 steps", resp.Error.Message)

	// A request may lower the limit but not raise it.
	rec = post(t, handler, "/v1/run", RunRequest{Source: "+[]", MaxSteps: 10})
	require.Equal(t, "execution halted by observer after 10 steps", decode[RunResponse](t, rec).Error.Message)

	rec = post(t, handler, "/v1/run", RunRequest{Source: "+[]", MaxSteps: 1000})
	require.Equal(t, "execution halted by observer after 100 steps", decode[RunResponse](t, rec).Error.Message)
}

func TestRunTimeout(t *testing.T) {
	handler := NewRouter(Config{
		Logger:   zerolog.Nop(),
		MaxSteps: 1 << 62,
		Timeout:  10 * time.Millisecond,
	})
	rec := post(t, handler, "/v1/run", RunRequest{Source: "+[]"})
	require.Equal(t, http.StatusGatewayTimeout, rec.Code)
	require.Equal(t, "timeout", decode[RunResponse](t, rec).Error.Kind)
}

func TestTranslate(t *testing.T) {
	rec := post(t, newTestRouter(), "/v1/translate", SourceRequest{Source: "+++."})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, TranslateResponse{
		Source:   "Ook. Ook. Ook. Ook. Ook. Ook. Ook! Ook. ",
		Notation: "phrase",
	}, decode[TranslateResponse](t, rec))

	rec = post(t, newTestRouter(), "/v1/translate", SourceRequest{
		Source:   "Ook. Ook. Ook! Ook.",
		Notation: "phrase",
	})
	require.Equal(t, TranslateResponse{Source: "+.", Notation: "punctuation"}, decode[TranslateResponse](t, rec))
}

func TestCheck(t *testing.T) {
	rec := post(t, newTestRouter(), "/v1/check", SourceRequest{Source: "+[-]"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode[CheckResponse](t, rec).Problems)

	rec = post(t, newTestRouter(), "/v1/check", SourceRequest{Source: "][+"})
	require.Equal(t, []Error{
		{Kind: "unbalanced loop", Message: "loop end has no matching loop start", Position: 0},
		{Kind: "unbalanced loop", Message: "loop start has no matching loop end", Position: 1},
	}, decode[CheckResponse](t, rec).Problems)
}

func TestDis(t *testing.T) {
	rec := post(t, newTestRouter(), "/v1/dis", SourceRequest{Source: "+[-]"})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[DisResponse](t, rec)
	require.Equal(t, 4, resp.Stats.InstructionCount)
	require.Len(t, resp.Instructions, 4)
	require.Equal(t, "LOOP_END", resp.Instructions[3].Name)
	require.Equal(t, 1, resp.Instructions[3].Match)
}

func TestBadRequests(t *testing.T) {
	handler := NewRouter(Config{Logger: zerolog.Nop(), MaxBodySize: 64})

	rec := post(t, handler, "/v1/run", RunRequest{Source: "+", Notation: "klingon"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, `unknown notation: "klingon"`, decode[errorResponse](t, rec).Error.Message)

	rec = post(t, handler, "/v1/run", map[string]string{"program": "+"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "request", decode[errorResponse](t, rec).Error.Kind)

	rec = post(t, handler, "/v1/run", RunRequest{Source: strings.Repeat("+", 100)})
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/v1/run", strings.NewReader(`{"source":"+"}`))
	req.Header.Set("Content-Type", "text/plain")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	handler := NewRouter(Config{Logger: zerolog.New(&buf)})
	post(t, handler, "/v1/translate", SourceRequest{Source: "+"})

	var entry map[string]any
	require.Nil(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
	require.Equal(t, "request", entry["message"])
	require.Equal(t, "POST", entry["method"])
	require.Equal(t, float64(200), entry["status"])
	require.NotEmpty(t, entry["req_id"])
}
