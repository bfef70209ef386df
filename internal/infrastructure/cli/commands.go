package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iotguard/iotguard/internal/app"
	"github.com/iotguard/iotguard/internal/domain"
)

func newCatalogCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the risk-pattern catalog",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := container.Catalog.Entries()
			if len(entries) == 0 {
				fmt.Println("Catalog is empty.")
				return nil
			}
			for _, entry := range entries {
				fmt.Printf("%3d  [%s] %s\n", entry.ID, entry.RiskLevel, entry.RiskText())
				fmt.Printf("     %s\n", entry.Explanation)
			}
			return nil
		},
	}

	var fields domain.RiskEntryFields
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a catalog entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := container.Catalog.Add(fields)
			if err != nil {
				return err
			}
			if err := container.Catalog.Save(container.Config.Matcher.CatalogFile); err != nil {
				return err
			}
			fmt.Printf("Added entry %d: %s\n", entry.ID, entry.RiskText())
			return nil
		},
	}
	add.Flags().StringVar(&fields.Trigger, "trigger", "", "risky command pattern")
	add.Flags().StringVar(&fields.Condition, "condition", "", "optional condition")
	add.Flags().StringVar(&fields.Device, "device", "", "device the pattern applies to")
	add.Flags().StringVar(&fields.RiskLevel, "level", "", "risk level (Low/Medium/High/Critical)")
	add.Flags().StringVar(&fields.Explanation, "explanation", "", "why the pattern is risky")
	add.Flags().StringVar(&fields.Suggestion, "suggestion", "", "how to mitigate the risk")

	cmd.AddCommand(list, add)
	return cmd
}

func newHistoryCommand(container *app.Container) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the recent command history",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := container.History.Search(search)
			if err != nil {
				return err
			}
			if len(lines) == 0 {
				fmt.Println("No history entries.")
				return nil
			}
			for _, line := range lines {
				fmt.Println(line)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "filter history entries")

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Delete the command history",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.History.Clear(); err != nil {
				return err
			}
			fmt.Println("History cleared.")
			return nil
		},
	}
	cmd.AddCommand(clear)
	return cmd
}

func newUsersCommand(container *app.Container) *cobra.Command {
	var (
		masterID  string
		masterPIN string
	)

	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts and device permissions",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if masterID != "master_user" {
				return fmt.Errorf("only master_user can manage users")
			}
			ok, err := container.Users.Validate(masterID, masterPIN)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("invalid User ID or PIN")
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&masterID, "user", "", "master user ID")
	cmd.PersistentFlags().StringVar(&masterPIN, "pin", "", "master user PIN")

	list := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := container.Users.All()
			if err != nil {
				return err
			}
			for _, account := range accounts {
				fmt.Printf("%s  devices: %s\n", account.UserID, strings.Join(account.Permissions, ", "))
			}
			return nil
		},
	}

	var (
		newPIN  string
		devices []string
	)
	add := &cobra.Command{
		Use:   "add [user-id]",
		Short: "Add an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.Users.Add(args[0], newPIN, devices); err != nil {
				return err
			}
			fmt.Printf("User %s added.\n", args[0])
			return nil
		},
	}
	add.Flags().StringVar(&newPIN, "new-pin", "", "PIN for the account")
	add.Flags().StringSliceVar(&devices, "devices", nil, "permitted devices")

	update := &cobra.Command{
		Use:   "update [user-id]",
		Short: "Update an account's PIN and permissions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.Users.Update(args[0], newPIN, devices); err != nil {
				return err
			}
			fmt.Printf("User %s updated.\n", args[0])
			return nil
		},
	}
	update.Flags().StringVar(&newPIN, "new-pin", "", "PIN for the account")
	update.Flags().StringSliceVar(&devices, "devices", nil, "permitted devices")

	del := &cobra.Command{
		Use:   "delete [user-id]",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.Users.Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("User %s deleted.\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, add, update, del)
	return cmd
}

func newDevicesCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "Show the simulated device fleet",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Devices: %s\n", strings.Join(container.Devices.Devices(), ", "))
			fmt.Printf("Status: %s\n", container.Devices.Status())
			return nil
		},
	}
}

func newRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the selectable security rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, rule := range domain.AllRules() {
				fmt.Println(rule)
			}
			return nil
		},
	}
}

func newCacheCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the session analysis cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Cached replies: %d\n", container.Cache.Len())
			return nil
		},
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Drop all cached analysis replies",
		RunE: func(cmd *cobra.Command, args []string) error {
			container.Cache.Clear()
			fmt.Println("Cache cleared.")
			return nil
		},
	}
	cmd.AddCommand(clear)
	return cmd
}
