package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"fluffymud/internal/config"
	"fluffymud/internal/game"
	"fluffymud/internal/store"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config to --config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
			}
			if err := config.Default().Save(configPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective config after environment overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			out, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

func newProfilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Manage stored player profiles",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List accounts with a stored profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(func(s *store.Store) error {
				accounts, err := s.Accounts()
				if err != nil {
					return err
				}
				for _, account := range accounts {
					fmt.Fprintln(cmd.OutOrStdout(), account)
				}
				return nil
			})
		},
	}, &cobra.Command{
		Use:   "show <account>",
		Short: "Print an account's room and attributes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(s *store.Store) error {
				profile, err := s.Profile(args[0])
				if err != nil {
					return err
				}
				printProfile(cmd, args[0], profile)
				return nil
			})
		},
	}, &cobra.Command{
		Use:   "delete <account>",
		Short: "Forget an account's stored profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(s *store.Store) error {
				if err := s.DeleteProfile(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	})
	return cmd
}

func withStore(fn func(*store.Store) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	s, err := store.Open(cfg.Storage.ProfilesPath)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func printProfile(cmd *cobra.Command, account string, profile game.PlayerProfile) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "account: %s\n", account)
	fmt.Fprintf(out, "room: %s\n", profile.Room)
	fmt.Fprintf(out, "home: %s\n", profile.Home)
	fmt.Fprintf(out, "gender: %s\n", game.GenderOf(game.NewAttributes(profile.Attributes)))
	names := make([]string, 0, len(profile.Attributes))
	for name := range profile.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %s = %v\n", name, profile.Attributes[name])
	}
}
