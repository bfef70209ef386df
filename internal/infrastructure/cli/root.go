// Package cli wires the cobra command tree over the application container.
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iotguard/iotguard/internal/app"
	"github.com/iotguard/iotguard/internal/domain"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	root := &cobra.Command{
		Use:   "iotguard",
		Short: "IoTGuard - smart-home command risk advisor",
		Long:  "IoTGuard assesses IoT commands for security risks before they reach your devices.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newCheckCommand(container))
	root.AddCommand(newCatalogCommand(container))
	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newUsersCommand(container))
	root.AddCommand(newDevicesCommand(container))
	root.AddCommand(newRulesCommand())
	root.AddCommand(newCacheCommand(container))
	return root, nil
}

func newCheckCommand(container *app.Container) *cobra.Command {
	var (
		userID string
		pin    string
		device string
		rule   string
	)

	cmd := &cobra.Command{
		Use:   "check [command text]",
		Short: "Risk-check a command and execute it when safe",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.AnalyzerErr != nil {
				return container.AnalyzerErr
			}
			command := strings.Join(args, " ")
			if userID == "" || pin == "" {
				return fmt.Errorf("please provide --user and --pin")
			}

			ok, err := container.Users.Validate(userID, pin)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("invalid User ID or PIN")
			}

			selectedRule, err := parseRule(rule)
			if err != nil {
				return err
			}

			resp, err := container.Advisor.Check(domain.AdviceRequest{
				Context: cmd.Context(),
				Command: command,
				UserID:  userID,
				Device:  device,
				Rule:    selectedRule,
			})
			if err != nil {
				return err
			}

			result := "Command not executed"
			if resp.ExecutionAllowed() {
				result, err = container.Devices.Execute(command, userID, pin, device)
				if err != nil {
					return err
				}
			}

			RenderAdvice(resp, result)
			fmt.Printf("Device Status: %s\n", container.Devices.Status())

			return container.History.Append(domain.HistoryRecord{
				Timestamp: time.Now(),
				UserID:    userID,
				Command:   command,
				Device:    device,
				RiskLevel: resp.Verdict.RiskLevel,
				Result:    result,
			})
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "user ID")
	cmd.Flags().StringVarP(&pin, "pin", "p", "", "user PIN")
	cmd.Flags().StringVarP(&device, "device", "d", "", "target device")
	cmd.Flags().StringVarP(&rule, "rule", "r", "", "security rule to enforce")
	return cmd
}

func parseRule(value string) (domain.SecurityRule, error) {
	if value == "" {
		return "", nil
	}
	for _, rule := range domain.AllRules() {
		if strings.EqualFold(value, string(rule)) {
			return rule, nil
		}
	}
	return "", fmt.Errorf("unknown rule %q; run 'iotguard rules' to list them", value)
}
