package ui

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetboard/adapters/llm/heuristic"
	"sheetboard/adapters/memory"
	"sheetboard/app"
	"sheetboard/domain/board"
	"sheetboard/domain/briefing"
	"sheetboard/internal/config"
	"sheetboard/internal/materialize"
)

const tasksCSV = "Tarefa,Status,Prazo\nEscrever,feito,2024-01-05\nRevisar,pendente,2024-01-09\nPublicar,pendente,\n"

func newTestServer(t *testing.T, maxBytes int64) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := memory.NewBoardRepository()
	svc := app.NewImportService(heuristic.NewGenerator(), nil, repo, materialize.NewMaterializer(repo, nil))
	return NewServer(svc, config.ImportConfig{MaxUploadBytes: maxBytes})
}

func uploadRequest(t *testing.T, path, filename, content, description string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	if description != "" {
		require.NoError(t, w.WriteField("description", description))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := serve(newTestServer(t, 1<<20), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAnalyzeReturnsBriefingAndStructure(t *testing.T) {
	s := newTestServer(t, 1<<20)
	rec := serve(s, uploadRequest(t, "/api/import/analyze", "tarefas.csv", tasksCSV, "Tarefas do time"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result struct {
		Briefing       briefing.Briefing `json:"briefing"`
		ExcelStructure struct {
			Headers    []string        `json:"headers"`
			RowCount   int             `json:"rowCount"`
			SampleRows json.RawMessage `json:"sampleRows"`
		} `json:"excelStructure"`
		Source string `json:"source"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	assert.Equal(t, []string{"Tarefa", "Status", "Prazo"}, result.ExcelStructure.Headers)
	assert.Equal(t, 3, result.ExcelStructure.RowCount)
	assert.Nil(t, result.ExcelStructure.SampleRows)
	assert.Equal(t, "heuristic", result.Source)
	assert.Equal(t, "tasks", result.Briefing.DataType)
	assert.Equal(t, "Status", result.Briefing.Grouping.ByColumn)
	assert.Equal(t, briefing.TypeDate, result.Briefing.ColumnTypes()["Prazo"])
}

func TestAnalyzeRejectsBadUploads(t *testing.T) {
	s := newTestServer(t, 64)

	tests := []struct {
		name     string
		req      *http.Request
		expected int
	}{
		{"no file", uploadRequest(t, "/api/import/analyze", "", "", "x"), http.StatusBadRequest},
		{"legacy xls", uploadRequest(t, "/api/import/analyze", "old.xls", "a,b\n1,2\n", ""), http.StatusBadRequest},
		{"too large", uploadRequest(t, "/api/import/analyze", "big.csv", strings.Repeat("a,b\n", 100), ""), http.StatusBadRequest},
		{"empty sheet", uploadRequest(t, "/api/import/analyze", "empty.csv", "", ""), http.StatusBadRequest},
		{"classifier without description", uploadRequest(t, "/api/import/analyze-ai", "t.csv", "a,b\n1,2\n", ""), http.StatusBadRequest},
		{"classifier not configured", uploadRequest(t, "/api/import/analyze-ai", "t.csv", "a,b\n1,2\n", "dados"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(s, tt.req)
			assert.Equal(t, tt.expected, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestPreviewRendersHTML(t *testing.T) {
	s := newTestServer(t, 1<<20)
	body := `{"summary":"Tarefas","dataType":"tasks","grouping":{"strategy":"single_group"},
		"suggestedColumns":[{"name":"Tarefa","type":"text"}],"visualizations":[],"recommendations":[]}`

	rec := serve(s, httptest.NewRequest(http.MethodPost, "/api/import/preview", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Tarefa")

	hostile := `{"summary":"Planilha <script>alert(1)</script>","dataType":"<img src=x onerror=alert(2)>",
		"grouping":{"strategy":"single_group"},"suggestedColumns":[{"name":"Tarefa","type":"text"}]}`
	rec = serve(s, httptest.NewRequest(http.MethodPost, "/api/import/preview", strings.NewReader(hostile)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<script")
	assert.NotContains(t, rec.Body.String(), "<img")

	rec = serve(s, httptest.NewRequest(http.MethodPost, "/api/import/preview", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMaterializeThenReadBoard(t *testing.T) {
	s := newTestServer(t, 1<<20)
	payload := `{
		"workspaceId": "workspace-1",
		"boardName": "Sprint",
		"briefing": {
			"summary": "Tarefas",
			"dataType": "tasks",
			"grouping": {"strategy": "by_column", "byColumn": "Status"},
			"suggestedColumns": [
				{"name": "Tarefa", "type": "text"},
				{"name": "Status", "type": "status"},
				{"name": "Horas", "type": "number"}
			],
			"visualizations": [],
			"recommendations": []
		},
		"excelData": {
			"headers": ["Tarefa", "Status", "Horas"],
			"rows": [["Escrever", "feito", 3], ["Revisar", "pendente", "2,5"], ["Publicar", "pendente", null]]
		}
	}`

	rec := serve(s, httptest.NewRequest(http.MethodPost, "/api/import/materialize", strings.NewReader(payload)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp app.MaterializeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Sprint", resp.BoardName)
	require.NotNil(t, resp.Report)
	assert.Len(t, resp.Report.GroupIDs, 2)
	assert.Len(t, resp.Report.ItemIDs, 3)
	assert.Equal(t, 5, resp.Report.ValueCount)

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/boards/"+resp.BoardID.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var snapshot board.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.Equal(t, "Sprint", snapshot.Board.Name)
	require.Len(t, snapshot.Columns, 2)
	assert.Equal(t, "Tarefa", snapshot.Columns[0].Name)
	assert.Equal(t, "Horas", snapshot.Columns[1].Name)
	assert.Equal(t, 1, snapshot.Columns[1].Position)
}

func TestMaterializeAndBoardErrors(t *testing.T) {
	s := newTestServer(t, 1<<20)

	rec := serve(s, httptest.NewRequest(http.MethodPost, "/api/import/materialize", strings.NewReader(`not json`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	mismatched := `{"workspaceId":"w","briefing":{"grouping":{"strategy":"single_group"},
		"suggestedColumns":[{"name":"A","type":"text"}]},"excelData":{"headers":["B"],"rows":[]}}`
	rec = serve(s, httptest.NewRequest(http.MethodPost, "/api/import/materialize", strings.NewReader(mismatched)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/boards/0190f1d2-0000-7000-8000-000000000000", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/boards/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
