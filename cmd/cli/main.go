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

	"github.com/hmendez/stockledger/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stockledger-cli",
		Short: "StockLedger CLI tool",
		Long:  `A command line interface for interacting with the StockLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the StockLedger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(accountsCmd())
	rootCmd.AddCommand(entriesCmd())
	rootCmd.AddCommand(seriesCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account operations",
	}

	var (
		name           string
		initialBalance string
		creatorID      string
	)

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/accounts", map[string]any{
				"name":            name,
				"initial_balance": initialBalance,
				"creator_id":      creatorID,
			})
		},
	}
	createCmd.Flags().StringVar(&name, "name", "", "Account name")
	createCmd.Flags().StringVar(&initialBalance, "initial-balance", "0", "Opening balance")
	createCmd.Flags().StringVar(&creatorID, "creator-id", "", "ID of the creating user")
	createCmd.MarkFlagRequired("name")

	var (
		limit  int
		offset int
	)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts, newest first",
		Run: func(cmd *cobra.Command, args []string) {
			doGet(fmt.Sprintf("/api/v1/accounts?limit=%d&offset=%d", limit, offset))
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	listCmd.Flags().IntVar(&offset, "offset", 0, "Page offset")

	getCmd := &cobra.Command{
		Use:   "get <account-id>",
		Short: "Get an account by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/accounts/" + args[0])
		},
	}

	cmd.AddCommand(createCmd, listCmd, getCmd)

	return cmd
}

func entriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Entry operations",
	}

	var (
		direction string
		amount    string
		actorID   string
	)

	recordCmd := &cobra.Command{
		Use:   "record <account-id>",
		Short: "Record a movement against an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/accounts/"+args[0]+"/entries", map[string]any{
				"direction": direction,
				"amount":    amount,
				"actor_id":  actorID,
			})
		},
	}
	recordCmd.Flags().StringVar(&direction, "direction", "", "Inbound or Outbound")
	recordCmd.Flags().StringVar(&amount, "amount", "", "Movement amount")
	recordCmd.Flags().StringVar(&actorID, "actor-id", "", "ID of the acting user")
	recordCmd.MarkFlagRequired("direction")
	recordCmd.MarkFlagRequired("amount")

	var (
		accountID string
		limit     int
		offset    int
	)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List entries, newest first",
		Run: func(cmd *cobra.Command, args []string) {
			path := fmt.Sprintf("/api/v1/entries?limit=%d&offset=%d", limit, offset)
			if accountID != "" {
				path = fmt.Sprintf("/api/v1/accounts/%s/entries?limit=%d&offset=%d", accountID, limit, offset)
			}
			doGet(path)
		},
	}
	listCmd.Flags().StringVar(&accountID, "account-id", "", "Restrict to one account")
	listCmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	listCmd.Flags().IntVar(&offset, "offset", 0, "Page offset")

	cmd.AddCommand(recordCmd, listCmd)

	return cmd
}

func seriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "series <account-id>",
		Short: "Show an account's running-balance series",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/accounts/" + args[0] + "/balance/series")
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	var (
		databaseURL    string
		migrationsPath string
	)

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Run: func(cmd *cobra.Command, args []string) {
			if err := postgres.RunMigrations(databaseURL, migrationsPath); err != nil {
				fmt.Printf("Migration failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Migrations applied")
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		Run: func(cmd *cobra.Command, args []string) {
			if err := postgres.RunMigrationsDown(databaseURL, migrationsPath); err != nil {
				fmt.Printf("Rollback failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Migration rolled back")
		},
	}

	for _, c := range []*cobra.Command{upCmd, downCmd} {
		c.Flags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL URL")
		c.Flags().StringVar(&migrationsPath, "path", "migrations", "Migrations directory")
	}

	cmd.AddCommand(upCmd, downCmd)

	return cmd
}

func doGet(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func doPost(path string, body map[string]any) {
	payload, err := json.Marshal(body)
	if err != nil {
		fmt.Printf("Error encoding request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}

	fmt.Println(pretty.String())
}
