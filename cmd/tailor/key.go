package main

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/credentials"
	"github.com/jonathan/resume-tailor/internal/llm"
)

var keyCommand = &cobra.Command{
	Use:   "key",
	Short: "Manage stored API keys",
}

var keySetCommand = &cobra.Command{
	Use:   "set [provider]",
	Short: "Store an API key in the OS keychain (or a local file when no keychain is available)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		provider := providerArg(args)

		// The key is read interactively and masked so it never lands in
		// shell history or process listings.
		prompt := promptui.Prompt{
			Label: fmt.Sprintf("API key for %s", provider),
			Mask:  '*',
		}
		key, err := prompt.Run()
		if err != nil {
			return err
		}

		store, err := credentials.NewStore()
		if err != nil {
			return err
		}
		if err := store.Set(provider, key); err != nil {
			return err
		}

		fmt.Printf("Stored API key for %s\n", provider)
		return nil
	},
}

var keyClearCommand = &cobra.Command{
	Use:   "clear [provider]",
	Short: "Remove the stored API key",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		provider := providerArg(args)

		store, err := credentials.NewStore()
		if err != nil {
			return err
		}
		if err := store.Clear(provider); err != nil {
			return err
		}

		fmt.Printf("Cleared API key for %s\n", provider)
		return nil
	},
}

var keyStatusCommand = &cobra.Command{
	Use:   "status [provider]",
	Short: "Report whether an API key is stored, without printing it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		provider := providerArg(args)

		store, err := credentials.NewStore()
		if err != nil {
			return err
		}
		if _, err := store.Get(provider); err != nil {
			fmt.Printf("No API key stored for %s\n", provider)
			return nil
		}

		fmt.Printf("An API key is stored for %s\n", provider)
		return nil
	},
}

func providerArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return string(llm.ProviderGemini)
}

func init() {
	keyCommand.AddCommand(keySetCommand)
	keyCommand.AddCommand(keyClearCommand)
	keyCommand.AddCommand(keyStatusCommand)
	rootCmd.AddCommand(keyCommand)
}
