// Command smoke posts the example submissions to a running server and fails
// on any non-200 response.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/codelens/api/internal/analysis"
	"github.com/codelens/api/internal/handlers"
	"github.com/codelens/api/internal/middleware"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Server base URL")
	retries := flag.Int("retries", 10, "Attempts while waiting for the server to start")
	flag.Parse()

	url := *baseURL + "/api/v1/analyze"
	client := &http.Client{Timeout: 2 * time.Minute}

	for i, ex := range analysis.Examples {
		payload, err := json.Marshal(handlers.AnalyzeRequest{
			Code:        ex.Code,
			Language:    string(ex.Language),
			DetailLevel: string(ex.DetailLevel),
			RequestType: string(ex.RequestType),
		})
		if err != nil {
			log.Fatalf("Failed to encode example %d: %v", i, err)
		}

		requestID := uuid.NewString()
		log.Printf("Posting example %d (%s), request %s", i, ex.RequestType, requestID)

		resp, err := postWithRetry(client, url, payload, requestID, *retries, time.Second)
		if err != nil {
			log.Fatalf("Request failed after retries: %v", err)
		}

		var body handlers.AnalyzeResponse
		decodeErr := json.NewDecoder(resp.Body).Decode(&body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			log.Fatalf("Expected 200 OK for example %d, got %d", i, resp.StatusCode)
		}
		if decodeErr != nil {
			log.Fatalf("Failed to decode response for example %d: %v", i, decodeErr)
		}
		if body.RequestID != requestID {
			log.Fatalf("Request ID not echoed: sent %s, got %s", requestID, body.RequestID)
		}

		fmt.Printf("--- example %d: %s (%s)\n%s\n", i, ex.RequestType, body.Result.Kind, body.Result.Display())
	}

	log.Println("SUCCESS: all examples answered")
}

// postWithRetry posts payload until the server answers. At least one attempt
// is always made.
func postWithRetry(client *http.Client, url string, payload []byte, requestID string, attempts int, wait time.Duration) (*http.Response, error) {
	attempts = max(attempts, 1)

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			time.Sleep(wait)
		}
		req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.RequestIDHeader, requestID)

		resp, err := client.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		log.Printf("Waiting for server... %v", err)
	}
	return nil, fmt.Errorf("%d attempts: %w", attempts, lastErr)
}
