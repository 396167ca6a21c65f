//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"testing"
	"time"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type jobResponse struct {
	ID                string `json:"id"`
	CompanyName       string `json:"company_name"`
	RoleTitle         string `json:"role_title"`
	ApplicationStatus string `json:"application_status"`
	Source            string `json:"source"`
}

type fileResponse struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	FileType string `json:"file_type"`
}

// TestE2ESmoke exercises the full API against a running server:
// register, authenticate, manage a job, attach a file and tear the
// account down again.
func TestE2ESmoke(t *testing.T) {
	baseURL := envOrDefault("JOBPAL_BASE_URL", "http://localhost:8080")

	email := fmt.Sprintf("e2e-%d@example.com", time.Now().UnixNano())
	password := "e2e-test-password"

	token := register(t, baseURL, email, password)
	loginToken := login(t, baseURL, email, password)
	if loginToken == "" {
		t.Fatal("login returned empty token")
	}

	job := createJob(t, baseURL, token)
	assertJobVisible(t, baseURL, token, job.ID)

	updateJob(t, baseURL, token, job.ID)

	uploadRejected(t, baseURL, token, job.ID)

	file := uploadFile(t, baseURL, token, job.ID)
	if file.Filename != "resume.pdf" {
		t.Errorf("uploaded filename = %q, want resume.pdf", file.Filename)
	}
	assertFileListed(t, baseURL, token, job.ID, file.ID)

	deleteJob(t, baseURL, token, job.ID)
	deleteAccount(t, baseURL, token)

	// Deleted accounts must not authenticate.
	resp := do(t, http.MethodGet, baseURL+"/api/auth/me", token, nil, "")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 after account deletion, got %d", resp.StatusCode)
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func register(t *testing.T, baseURL, email, password string) string {
	t.Helper()

	body := map[string]string{
		"email":      email,
		"password":   password,
		"first_name": "E2E",
		"last_name":  "Test",
	}
	resp := doJSON(t, http.MethodPost, baseURL+"/api/auth/register", "", body)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", resp.StatusCode, readBody(t, resp))
	}

	var tok tokenResponse
	decode(t, resp, &tok)
	if tok.AccessToken == "" {
		t.Fatal("register returned empty token")
	}
	return tok.AccessToken
}

func login(t *testing.T, baseURL, email, password string) string {
	t.Helper()

	resp := doJSON(t, http.MethodPost, baseURL+"/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", resp.StatusCode, readBody(t, resp))
	}

	var tok tokenResponse
	decode(t, resp, &tok)
	return tok.AccessToken
}

func createJob(t *testing.T, baseURL, token string) jobResponse {
	t.Helper()

	resp := doJSON(t, http.MethodPost, baseURL+"/api/jobs", token, map[string]any{
		"company_name":       "Acme Corp",
		"role_title":         "Backend Engineer",
		"application_status": "applied",
		"source":             "linkedin",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create job: expected 201, got %d: %s", resp.StatusCode, readBody(t, resp))
	}

	var job jobResponse
	decode(t, resp, &job)
	if job.ID == "" {
		t.Fatal("created job has empty id")
	}
	return job
}

func assertJobVisible(t *testing.T, baseURL, token, jobID string) {
	t.Helper()

	resp := do(t, http.MethodGet, baseURL+"/api/jobs", token, nil, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list jobs: expected 200, got %d", resp.StatusCode)
	}

	var jobs []jobResponse
	decode(t, resp, &jobs)

	for _, job := range jobs {
		if job.ID == jobID {
			return
		}
	}
	t.Fatalf("job %s not in listing", jobID)
}

func updateJob(t *testing.T, baseURL, token, jobID string) {
	t.Helper()

	resp := doJSON(t, http.MethodPatch, baseURL+"/api/jobs/"+jobID, token, map[string]any{
		"application_status": "interview",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update job: expected 200, got %d: %s", resp.StatusCode, readBody(t, resp))
	}

	var job jobResponse
	decode(t, resp, &job)
	if job.ApplicationStatus != "interview" {
		t.Errorf("status after update = %q, want interview", job.ApplicationStatus)
	}

	// Patching one field must not touch the rest.
	if job.CompanyName != "Acme Corp" {
		t.Errorf("company after partial update = %q, want Acme Corp", job.CompanyName)
	}
	if job.RoleTitle != "Backend Engineer" {
		t.Errorf("role after partial update = %q, want Backend Engineer", job.RoleTitle)
	}
}

func uploadRejected(t *testing.T, baseURL, token, jobID string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "payload.exe")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("MZ")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	resp := do(t, http.MethodPost, baseURL+"/api/jobs/"+jobID+"/files", token, &buf, writer.FormDataContentType())
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("upload .exe: expected 400, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
}

func uploadFile(t *testing.T, baseURL, token, jobID string) fileResponse {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "resume.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("%PDF-1.4 test")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.WriteField("file_type", "resume"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	resp := do(t, http.MethodPost, baseURL+"/api/jobs/"+jobID+"/files", token, &buf, writer.FormDataContentType())
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("upload file: expected 201, got %d: %s", resp.StatusCode, readBody(t, resp))
	}

	var file fileResponse
	decode(t, resp, &file)
	return file
}

func assertFileListed(t *testing.T, baseURL, token, jobID, fileID string) {
	t.Helper()

	resp := do(t, http.MethodGet, baseURL+"/api/jobs/"+jobID+"/files", token, nil, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list files: expected 200, got %d", resp.StatusCode)
	}

	var files []fileResponse
	decode(t, resp, &files)

	for _, file := range files {
		if file.ID == fileID {
			return
		}
	}
	t.Fatalf("file %s not in listing", fileID)
}

func deleteJob(t *testing.T, baseURL, token, jobID string) {
	t.Helper()

	resp := do(t, http.MethodDelete, baseURL+"/api/jobs/"+jobID, token, nil, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete job: expected 204, got %d", resp.StatusCode)
	}
}

func deleteAccount(t *testing.T, baseURL, token string) {
	t.Helper()

	resp := do(t, http.MethodDelete, baseURL+"/api/auth/me", token, nil, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete account: expected 204, got %d", resp.StatusCode)
	}
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return do(t, method, url, token, bytes.NewReader(raw), "application/json")
}

func do(t *testing.T, method, url, token string, body io.Reader, contentType string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	raw, _ := io.ReadAll(resp.Body)
	return string(raw)
}
