package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

var (
	baseURL   = "http://localhost:8080/api/v1"
	authToken string
	ownerID   string
)

// APIResponse is the wire envelope every endpoint uses.
type APIResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// TestResponse wraps the API response for assertions.
type TestResponse struct {
	StatusCode int
	Status     string
	Message    string
	Data       map[string]interface{}
	RawData    string
}

func (r TestResponse) IsSuccess() bool {
	return r.Status == "success"
}

func (r TestResponse) GetString(key string) string {
	if r.Data == nil {
		return ""
	}
	if v, ok := r.Data[key].(string); ok {
		return v
	}
	return ""
}

func makeRequest(method, path string, body interface{}, token string) TestResponse {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return TestResponse{Message: err.Error()}
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		return TestResponse{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return TestResponse{Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return TestResponse{StatusCode: resp.StatusCode, Message: err.Error()}
	}

	var apiResp APIResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return TestResponse{StatusCode: resp.StatusCode, Message: string(raw)}
	}

	result := TestResponse{
		StatusCode: resp.StatusCode,
		Status:     apiResp.Status,
		Message:    apiResp.Message,
		RawData:    string(apiResp.Data),
	}
	var data map[string]interface{}
	if json.Unmarshal(apiResp.Data, &data) == nil {
		result.Data = data
	}
	return result
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@example.com", prefix, time.Now().UnixNano())
}

func checkAPIServer() error {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(baseURL + "/health/live")
	if err != nil {
		return fmt.Errorf("API server not reachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

func TestMain(m *testing.M) {
	if url := os.Getenv("API_URL"); url != "" {
		baseURL = url
	}

	if err := checkAPIServer(); err != nil {
		fmt.Printf("Skipping API tests: %v\n", err)
		os.Exit(0)
	}

	setupAuth()
	os.Exit(m.Run())
}

func setupAuth() {
	resp := makeRequest("POST", "/auth/signup", map[string]string{
		"email":    uniqueEmail("owner"),
		"password": "senha-muito-secreta",
	}, "")
	if !resp.IsSuccess() {
		fmt.Printf("Failed to create test account: %s\n", resp.Message)
		os.Exit(1)
	}

	account, _ := resp.Data["account"].(map[string]interface{})
	tokens, _ := resp.Data["tokens"].(map[string]interface{})
	if account != nil {
		ownerID, _ = account["id"].(string)
	}
	if tokens != nil {
		authToken, _ = tokens["access_token"].(string)
	}
	if authToken == "" || ownerID == "" {
		fmt.Println("Failed to get auth token")
		os.Exit(1)
	}
}
