package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	ownerID string
	timeout time.Duration
)

const ownerIDHeader = "X-Owner-ID"

func main() {
	rootCmd := &cobra.Command{
		Use:   "finledger-cli",
		Short: "FinLedger CLI tool",
		Long:  `A command line interface for interacting with the FinLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the FinLedger API")
	rootCmd.PersistentFlags().StringVar(&ownerID, "owner", "", "Owner ID sent with every request")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}
	ledgerCmd.AddCommand(summariesCmd(), agingCmd(), overdueCmd())

	rootCmd.AddCommand(ledgerCmd, optionsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func summariesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summaries",
		Short: "Show per-counterparty balances",
		Run: func(cmd *cobra.Command, args []string) {
			var balances []struct {
				Counterparty string `json:"counterparty"`
				Settlement   string `json:"settlement"`
				NetBalance   string `json:"net_balance"`
			}
			get("/api/v1/ledger/counterparties", &balances)

			for _, b := range balances {
				fmt.Printf("%-20s %-10s %s\n", truncate(b.Counterparty, 20), b.Settlement, b.NetBalance)
			}
		},
	}
}

func agingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "aging <counterparty>",
		Short: "Show the aging report for a counterparty",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var report map[string]any
			get("/api/v1/ledger/counterparties/"+args[0]+"/aging", &report)
			printJSON(report)
		},
	}
}

func overdueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "List overdue pending transactions",
		Run: func(cmd *cobra.Command, args []string) {
			var page struct {
				Transactions []struct {
					ID           string `json:"id"`
					Counterparty string `json:"counterparty"`
					Type         string `json:"type"`
					Amount       string `json:"amount"`
					DueDate      string `json:"due_date"`
				} `json:"transactions"`
			}
			get("/api/v1/ledger/transactions?overdue=true", &page)

			for _, t := range page.Transactions {
				fmt.Printf("%-26s %-20s %-10s %10s  due %s\n",
					t.ID, truncate(t.Counterparty, 20), t.Type, t.Amount, t.DueDate)
			}
		},
	}
}

func optionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Show the shared option lists",
		Run: func(cmd *cobra.Command, args []string) {
			var options map[string]any
			get("/api/v1/options", &options)
			printJSON(options)
		},
	}
}

func get(path string, out any) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	if ownerID != "" {
		req.Header.Set(ownerIDHeader, ownerID)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	if err := json.Unmarshal(body, out); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render response: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
