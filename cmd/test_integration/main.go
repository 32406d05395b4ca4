package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

func main() {
	baseURL := os.Getenv("LABSCAN_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting Integration Test...")

	fmt.Println("1. Health...")
	if _, ok := sendRequest(baseURL, "GET", "/health", nil); !ok {
		fail("Health")
	}
	fmt.Println("PASSED: Health")

	fmt.Println("2. Listing Catalog...")
	body, ok := sendRequest(baseURL, "GET", "/api/catalog?category=Chemistry", nil)
	if !ok {
		fail("Catalog")
	}
	var listing struct {
		Entries []map[string]any `json:"entries"`
	}
	if err := json.Unmarshal(body, &listing); err != nil || len(listing.Entries) == 0 {
		fail("Catalog returned no entries")
	}
	fmt.Println("PASSED: Catalog")

	fmt.Println("3. Opening Detail View...")
	if _, ok := sendRequest(baseURL, "GET", "/api/equipment/Bunsen%20Burner?category=Chemistry", nil); !ok {
		fail("Detail")
	}
	fmt.Println("PASSED: Detail")

	fmt.Println("4. Asking a Question...")
	question := map[string]string{"query": "How do I light it safely?"}
	if _, ok := sendRequest(baseURL, "POST", "/api/equipment/Bunsen%20Burner/questions", question); !ok {
		fail("Question")
	}
	fmt.Println("PASSED: Question")

	if path := os.Getenv("LABSCAN_IMAGE"); path != "" {
		fmt.Println("5. Identifying Photo...")
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("Error reading image: %v\n", err)
			os.Exit(1)
		}
		uri := "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
		if _, ok := sendRequest(baseURL, "POST", "/api/identify", map[string]string{"photoDataUri": uri}); !ok {
			fail("Identify")
		}
		fmt.Println("PASSED: Identify")
	}

	fmt.Println("6. Voice Command...")
	body, ok = sendRequest(baseURL, "POST", "/api/voice/commands", map[string]string{"transcript": "show me another equipment"})
	if !ok {
		fail("Voice command")
	}
	var cmd struct {
		Command string `json:"command"`
	}
	if err := json.Unmarshal(body, &cmd); err != nil || cmd.Command != "scan_another" {
		fail("Voice command was not recognised")
	}
	fmt.Println("PASSED: Voice command")
}

func fail(step string) {
	fmt.Printf("FAILED: %s\n", step)
	os.Exit(1)
}

func sendRequest(baseURL, method, endpoint string, payload interface{}) ([]byte, bool) {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, baseURL+endpoint, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return nil, false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 90 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return nil, false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return nil, false
	}

	fmt.Printf("Response: %s\n", string(respBody))
	return respBody, true
}
