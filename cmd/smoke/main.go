package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

type SmokeClient struct {
	baseURL string
	client  *http.Client
}

func NewSmokeClient(baseURL string) *SmokeClient {
	// The jar keeps the session cookie so every call hits the same workspace.
	jar, _ := cookiejar.New(nil)
	return &SmokeClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 60 * time.Second,
			Jar:     jar,
		},
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the server")
	testType := flag.String("test", "all", "Test type: all, health, agent-card, state, search, ask, custom")
	question := flag.String("question", "", "Question for the assistant (for custom test)")
	flag.Parse()

	client := NewSmokeClient(*baseURL)

	printHeader("Strategy Mapper - Smoke Tests")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, client.baseURL, colorReset)

	var ok bool
	switch *testType {
	case "all":
		ok = client.runAllTests()
	case "health":
		ok = client.testHealthCheck()
	case "agent-card":
		ok = client.testAgentCard()
	case "state":
		ok = client.testState()
	case "search":
		ok = client.testSearch()
	case "ask":
		ok = client.testAsk("Which of these entries are charter schools?")
	case "custom":
		if *question == "" {
			printError("Question is required for custom test. Use -question flag")
			os.Exit(1)
		}
		ok = client.testAsk(*question)
	default:
		printError(fmt.Sprintf("Unknown test type: %s", *testType))
		fmt.Println("\nAvailable tests: all, health, agent-card, state, search, ask, custom")
		os.Exit(1)
	}
	if !ok {
		os.Exit(1)
	}
}

func (sc *SmokeClient) runAllTests() bool {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", sc.testHealthCheck},
		{"Agent Card", sc.testAgentCard},
		{"Workspace State", sc.testState},
		{"Search Filter", sc.testSearch},
		{"Assistant Query", func() bool { return sc.testAsk("Summarize the entries on the map.") }},
	}

	passed := 0
	failed := 0

	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	fmt.Printf("%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Printf("%sFailed: %d%s\n", colorRed, failed, colorReset)
	fmt.Printf("Total: %d\n", passed+failed)

	return failed == 0
}

func (sc *SmokeClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	body, ok := sc.call(http.MethodGet, "/health", nil)
	if !ok {
		return false
	}
	if string(body) != "OK" {
		printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (sc *SmokeClient) testAgentCard() bool {
	printTestHeader("Testing Agent Card Endpoint")

	body, ok := sc.call(http.MethodGet, "/.well-known/agent.json", nil)
	if !ok {
		return false
	}

	var agentCard map[string]interface{}
	if err := json.Unmarshal(body, &agentCard); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	requiredFields := []string{"name", "description", "url", "version", "capabilities", "skills"}
	for _, field := range requiredFields {
		if _, ok := agentCard[field]; !ok {
			printError(fmt.Sprintf("Missing required field: %s", field))
			return false
		}
	}

	printSuccess("Agent card is valid")
	printJSON(body)
	return true
}

func (sc *SmokeClient) testState() bool {
	printTestHeader("Testing Workspace State")

	if _, ok := sc.call(http.MethodPost, "/api/clients/restore", nil); !ok {
		return false
	}
	body, ok := sc.call(http.MethodGet, "/api/state", nil)
	if !ok {
		return false
	}

	var state struct {
		ID    string `json:"id"`
		Total int    `json:"total"`
	}
	if err := json.Unmarshal(body, &state); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if state.Total != 3 {
		printError(fmt.Sprintf("Expected 3 demo entries, got %d", state.Total))
		return false
	}

	printSuccess(fmt.Sprintf("Workspace %s holds the demo data", state.ID))
	return true
}

func (sc *SmokeClient) testSearch() bool {
	printTestHeader("Testing Search Filter")

	body, ok := sc.call(http.MethodPut, "/api/search", map[string]string{"term": "charter"})
	if !ok {
		return false
	}

	var state struct {
		VisibleCount int `json:"visibleCount"`
	}
	if err := json.Unmarshal(body, &state); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if state.VisibleCount != 1 {
		printError(fmt.Sprintf("Expected 1 charter entry, got %d", state.VisibleCount))
		return false
	}

	// Leave the workspace unfiltered for the next test.
	sc.call(http.MethodPut, "/api/search", map[string]string{"term": ""})
	printSuccess("Search filter passed")
	return true
}

func (sc *SmokeClient) testAsk(question string) bool {
	printTestHeader("Testing Assistant over A2A")
	fmt.Printf("%sQuestion:%s %s\n\n", colorCyan, colorReset, question)

	request := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      fmt.Sprintf("smoke-%d", time.Now().Unix()),
		"method":  "message/send",
		"params": map[string]interface{}{
			"message": map[string]interface{}{
				"kind": "message",
				"role": "user",
				"parts": []map[string]interface{}{
					{"kind": "text", "text": question},
				},
			},
			"configuration": map[string]interface{}{
				"blocking":            true,
				"acceptedOutputModes": []string{"text"},
			},
		},
	}

	body, ok := sc.call(http.MethodPost, "/a2a/assistant", request)
	if !ok {
		return false
	}

	var response struct {
		Error  json.RawMessage `json:"error"`
		Result struct {
			Status struct {
				State   string `json:"state"`
				Message struct {
					Parts []struct {
						Text string `json:"text"`
					} `json:"parts"`
				} `json:"message"`
			} `json:"status"`
		} `json:"result"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if len(response.Error) > 0 {
		printError("Request returned an error")
		printJSON(response.Error)
		return false
	}
	if response.Result.Status.State != "completed" {
		printError(fmt.Sprintf("Expected state 'completed', got '%s'", response.Result.Status.State))
		return false
	}

	printSuccess("Assistant answered")
	fmt.Printf("\n%sAnswer:%s\n", colorGreen, colorReset)
	fmt.Println(strings.Repeat("=", 80))
	for _, part := range response.Result.Status.Message.Parts {
		fmt.Println(part.Text)
	}
	fmt.Println(strings.Repeat("=", 80))
	return true
}

// call sends an optional JSON body and returns the response body when the
// status is 2xx.
func (sc *SmokeClient) call(method, path string, payload interface{}) ([]byte, bool) {
	url := sc.baseURL + path
	fmt.Printf("%s %s\n", method, url)

	var rd io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			printError(fmt.Sprintf("Failed to encode request: %v", err))
			return nil, false
		}
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		printError(fmt.Sprintf("Failed to build request: %v", err))
		return nil, false
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := sc.client.Do(req)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return nil, false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		printError(fmt.Sprintf("Expected 2xx status, got %d", resp.StatusCode))
		fmt.Printf("Response: %s\n", string(body))
		return nil, false
	}
	return body, true
}

func printHeader(text string) {
	fmt.Printf("\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Printf("%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Printf("%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printTestHeader(text string) {
	fmt.Printf("%s[TEST] %s%s\n", colorCyan, text, colorReset)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printError(text string) {
	fmt.Printf("%s✗ %s%s\n", colorRed, text, colorReset)
}

func printJSON(data []byte) {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, data, "", "  "); err == nil {
		fmt.Printf("\n%sResponse:%s\n%s\n", colorYellow, colorReset, prettyJSON.String())
	}
}
