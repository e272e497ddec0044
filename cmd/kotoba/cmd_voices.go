package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kotoba-dev/kotoba/internal/voices"
)

func newVoicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voices",
		Short: "Manage Open JTalk voice assets",
	}
	cmd.AddCommand(
		newVoicesDownloadCmd(),
		newVoicesPathCmd(),
	)
	return cmd
}

func newVoicesDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download the Open JTalk dictionary and HTS voice",
		RunE: func(cmd *cobra.Command, args []string) error {
			only, _ := cmd.Flags().GetString("only")
			switch only {
			case "":
				return voices.DownloadAll()
			case "dictionary":
				return voices.DownloadDictionary()
			case "voice":
				return voices.DownloadVoice()
			default:
				return fmt.Errorf("unknown asset %q (supported: dictionary, voice)", only)
			}
		},
	}
	cmd.Flags().String("only", "", "Download a single asset: dictionary or voice")
	return cmd
}

func newVoicesPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the installed asset paths for use in the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("dictionary: %s\n", voices.DictionaryPath())
			fmt.Printf("voice:      %s\n", voices.VoicePath())
			return nil
		},
	}
}
