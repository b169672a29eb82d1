package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	userID  string
	actorID string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gull-cli",
		Short: "Gull ledger CLI tool",
		Long:  `A command line interface for the Gull wagering ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the API")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "User whose book the command operates on")
	rootCmd.PersistentFlags().StringVar(&actorID, "actor", "", "Acting user, when different from --user")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		submitCmd(),
		balanceCmd(),
		summariesCmd(),
		historyCmd(),
		ledgerCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func submitCmd() *cobra.Command {
	var category, notes string

	cmd := &cobra.Command{
		Use:   "submit [text]",
		Short: "Submit a free-text batch of entries",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			body := map[string]any{"text": strings.Join(args, " ")}
			if category != "" {
				body["category"] = category
			}
			if notes != "" {
				body["notes"] = notes
			}

			request(http.MethodPost, "/api/v1/entries/", body)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Default category for bare numbers")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes attached to every entry")

	return cmd
}

func balanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Balance operations",
		Run: func(cmd *cobra.Command, args []string) {
			request(http.MethodGet, "/api/v1/balance/", nil)
		},
	}

	var amount string
	topup := &cobra.Command{
		Use:   "topup",
		Short: "Add funds to the balance",
		Run: func(cmd *cobra.Command, args []string) {
			request(http.MethodPost, "/api/v1/balance/topup", map[string]any{"amount": amount})
		},
	}
	topup.Flags().StringVar(&amount, "amount", "0", "Amount to add")
	cmd.AddCommand(topup)

	return cmd
}

func summariesCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "summaries",
		Short: "Show per-number aggregation",
		Run: func(cmd *cobra.Command, args []string) {
			if category == "" {
				request(http.MethodGet, "/api/v1/summaries/all", nil)
				return
			}

			request(http.MethodGet, "/api/v1/summaries/?category="+category, nil)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category to summarize, empty for all")

	return cmd
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Undo/redo operations",
		Run: func(cmd *cobra.Command, args []string) {
			request(http.MethodGet, "/api/v1/history/", nil)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "undo",
			Short: "Reverse the most recent action",
			Run: func(cmd *cobra.Command, args []string) {
				request(http.MethodPost, "/api/v1/history/undo", map[string]any{})
			},
		},
		&cobra.Command{
			Use:   "redo",
			Short: "Reapply the most recently undone action",
			Run: func(cmd *cobra.Command, args []string) {
				request(http.MethodPost, "/api/v1/history/redo", map[string]any{})
			},
		},
	)

	return cmd
}

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "consistency",
		Short: "Check that live entries back the spent total",
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency()
		},
	})

	return cmd
}

func checkConsistency() {
	status, body := send(http.MethodGet, "/api/v1/ledger/consistency", nil)

	if status != http.StatusOK {
		fmt.Printf("Consistency check FAILED (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Consistency check PASSED\n")
	printJSON(result)
}

// request sends and pretty-prints, exiting non-zero on API errors.
func request(method, path string, body any) {
	status, respBody := send(method, path, body)

	var parsed any
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		fmt.Printf("Unexpected response (Status %d): %s\n", status, string(respBody))
		os.Exit(1)
	}

	printJSON(parsed)

	if status >= 400 {
		os.Exit(1)
	}
}

func send(method, path string, body any) (int, []byte) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			fmt.Printf("Error encoding request: %v\n", err)
			os.Exit(1)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}

	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	if actorID != "" {
		req.Header.Set("X-Actor-ID", actorID)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	return resp.StatusCode, respBody
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to format response: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(out))
}
