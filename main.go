package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/facebookgo/inject"
	"github.com/spf13/cobra"
	"github.com/ummahdev/core/board/events"
	"github.com/ummahdev/core/board/flags"
	"github.com/ummahdev/core/deps"
	"github.com/ummahdev/core/internal/dal"
	"github.com/ummahdev/core/modules/api"
)

func main() {
	// Graph main object (used to inject dependencies)
	var g inject.Graph

	container, err := deps.Bootstrap()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer container.Close()

	// Provide graph with service instances
	var module api.Module
	err = g.Provide(
		&inject.Object{Value: container, Complete: true},
		&inject.Object{Value: &module},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var cmdAPI = &cobra.Command{
		Use:   "api [addr]",
		Short: "Starts API web server",
		Long: `Starts API web server listening
        in the given address (default :3200)
        `,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := ":3200"
			if len(args) == 1 {
				addr = args[0]
			}

			// Populate dependencies using the already instantiated DI
			module.Populate(g)
			events.Boot(container)

			// Run API module
			return module.Run(addr)
		},
	}

	var cmdCreateAdmin = &cobra.Command{
		Use:   "create-admin <id> <email> [name]",
		Short: "Creates or promotes the administrator account",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 3 {
				name = args[2]
			}
			usr, err := dal.SeedAdmin(container, args[0], args[1], name)
			if err != nil {
				return err
			}
			container.Log().Infof("admin %s (%s) is ready", usr.ID, usr.Email)
			return nil
		},
	}

	var (
		cursor string
		limit  int
	)
	var cmdFlagsList = &cobra.Command{
		Use:   "list [status]",
		Short: "Prints a page of flags, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := flags.ALL
			if len(args) == 1 {
				status = args[0]
			}
			page, err := flags.List(container, status, cursor, limit)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(page)
		},
	}
	cmdFlagsList.Flags().StringVar(&cursor, "cursor", "", "resume after this cursor")
	cmdFlagsList.Flags().IntVar(&limit, "limit", flags.DefaultPageSize, "page size")

	var cmdFlags = &cobra.Command{
		Use:   "flags",
		Short: "Moderation queue tasks",
	}
	cmdFlags.AddCommand(cmdFlagsList)

	var rootCmd = &cobra.Command{Use: "ummahdev", SilenceUsage: true}
	rootCmd.AddCommand(cmdAPI, cmdCreateAdmin, cmdFlags)
	if err := rootCmd.Execute(); err != nil {
		container.Log().Error(err)
		container.Close()
		os.Exit(1)
	}
}
