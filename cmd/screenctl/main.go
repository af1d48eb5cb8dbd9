// Package main implements the screenctl CLI for manual operations against
// the screend HTTP server.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	// serverURL is the base URL for the screend HTTP server
	serverURL string
	// structured flags for the screen command
	temporaryFlag  bool
	identicalFlag  bool
	safetyClass    string
	physicalChange bool
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "screenctl",
	Short: "CLI for screend change-request screening operations",
	Long: `screenctl is a command-line interface for the screend HTTP server.
It submits change descriptions for screening classification, scores
document quality, and checks server health.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8170", "screend server URL")
	screenCmd.Flags().BoolVar(&temporaryFlag, "temporary", false, "mark the change as temporary")
	screenCmd.Flags().BoolVar(&identicalFlag, "identical", false, "mark the change as an identical replacement")
	screenCmd.Flags().StringVar(&safetyClass, "safety-classification", "", "declared safety classification (e.g. safety-related)")
	screenCmd.Flags().BoolVar(&physicalChange, "physical-change", false, "the change alters the physical plant configuration")
	rootCmd.AddCommand(screenCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(healthCmd)
}

// screenCmd submits a change description for screening
var screenCmd = &cobra.Command{
	Use:   "screen [file]",
	Short: "Screen a change description from a file or stdin",
	Long: `Submit a change description to screend for classification.

Examples:
  # Screen a file
  screenctl screen change-request.txt

  # Screen from stdin
  echo "Identical replacement of pump 2B" | screenctl screen -

  # Declare structured flags
  screenctl screen --identical change-request.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScreen,
}

// scoreCmd scores a document's writing quality
var scoreCmd = &cobra.Command{
	Use:   "score [file]",
	Short: "Score a document's writing quality",
	Long: `Submit a document to screend for quality scoring.

Examples:
  # Score a file
  screenctl score evaluation.txt

  # Score from stdin
  cat evaluation.txt | screenctl score -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScore,
}

// healthCmd checks server health
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check screend server health",
	Long: `Check the health status of the screend HTTP server.

Examples:
  # Check health
  screenctl health

  # Check health on a different server
  screenctl health --server http://localhost:8080`,
	RunE: runHealth,
}

// StructuredFields matches internal/screening StructuredFields.
type StructuredFields struct {
	SafetyClassification string `json:"safety_classification,omitempty"`
	PhysicalChange       bool   `json:"physical_change,omitempty"`
	Temporary            bool   `json:"temporary,omitempty"`
	IdenticalReplacement bool   `json:"identical_replacement,omitempty"`
}

// ScreenRequest matches internal/http/server.go ScreenRequest.
type ScreenRequest struct {
	Text       string            `json:"text"`
	Structured *StructuredFields `json:"structured_fields,omitempty"`
}

// ScoreRequest matches internal/http/server.go ScoreRequest.
type ScoreRequest struct {
	Text string `json:"text"`
}

// HealthResponse matches internal/http/server.go HealthResponse.
type HealthResponse struct {
	Status string `json:"status"`
}

// readInput reads the payload from a file argument or stdin.
func readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read from stdin: %w", err)
		}
		return content, nil
	}
	content, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", args[0], err)
	}
	return content, nil
}

// postJSON sends a JSON request and returns the raw response body.
func postJSON(path string, payload any) ([]byte, error) {
	reqJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := serverURL + path
	httpReq, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(reqJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	client := &http.Client{
		Timeout: 60 * time.Second,
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// printIndented pretty-prints a JSON response body to stdout.
func printIndented(body []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	fmt.Println(buf.String())
	return nil
}

// runScreen handles the screen command
func runScreen(cmd *cobra.Command, args []string) error {
	content, err := readInput(args)
	if err != nil {
		return err
	}
	if len(content) == 0 {
		return fmt.Errorf("no change description to screen")
	}

	req := ScreenRequest{Text: string(content)}
	if temporaryFlag || identicalFlag || safetyClass != "" || physicalChange {
		req.Structured = &StructuredFields{
			SafetyClassification: safetyClass,
			PhysicalChange:       physicalChange,
			Temporary:            temporaryFlag,
			IdenticalReplacement: identicalFlag,
		}
	}

	body, err := postJSON("/api/v1/screen", req)
	if err != nil {
		return err
	}
	return printIndented(body)
}

// runScore handles the score command
func runScore(cmd *cobra.Command, args []string) error {
	content, err := readInput(args)
	if err != nil {
		return err
	}
	if len(content) == 0 {
		return fmt.Errorf("no document to score")
	}

	body, err := postJSON("/api/v1/score", ScoreRequest{Text: string(content)})
	if err != nil {
		return err
	}
	return printIndented(body)
}

// runHealth handles the health command
func runHealth(cmd *cobra.Command, args []string) error {
	url := serverURL + "/health"

	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to connect to %s: %v\n", url, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("server returned status %d (failed to read response body: %w)", resp.StatusCode, readErr)
		}
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body))
	}

	var healthResp HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&healthResp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	fmt.Printf("Server Status: %s\n", healthResp.Status)
	fmt.Printf("Server URL: %s\n", serverURL)

	return nil
}
