package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justchokingaround/vidstream/internal/credential"
)

// settingsCmd manages the stored API key
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage the stored API key",
}

var setKeyCmd = &cobra.Command{
	Use:   "set-key <key>",
	Short: "Store the catalog API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := credential.NewSettingsStore(db)
		if err := store.Set(cmd.Context(), args[0]); err != nil {
			if errors.Is(err, credential.ErrInvalidCredential) {
				return errors.New("please enter a valid API key")
			}
			return err
		}
		fmt.Println("API Key saved!")
		return nil
	},
}

var showKeyCmd = &cobra.Command{
	Use:   "show-key",
	Short: "Show the stored API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := credential.NewSettingsStore(db).Get(cmd.Context())
		if err != nil {
			return err
		}
		if reveal, _ := cmd.Flags().GetBool("reveal"); reveal && key != "" {
			fmt.Println(key)
			return nil
		}
		fmt.Println(credential.Mask(key))
		return nil
	},
}

var clearKeyCmd = &cobra.Command{
	Use:   "clear-key",
	Short: "Remove the stored API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := credential.NewSettingsStore(db).Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("API Key removed")
		return nil
	},
}

func init() {
	showKeyCmd.Flags().Bool("reveal", false, "print the key in full")

	settingsCmd.AddCommand(setKeyCmd)
	settingsCmd.AddCommand(showKeyCmd)
	settingsCmd.AddCommand(clearKeyCmd)
}
