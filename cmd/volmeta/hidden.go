package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sigreer/volmeta/internal/hidden"
	"github.com/spf13/cobra"
)

var hiddenCmd = &cobra.Command{
	Use:   "hidden",
	Short: "Get or set the hidden state of a path",
}

var hiddenGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Show whether a path is hidden",
	Args:  cobra.ExactArgs(1),
	Run:   runHiddenGet,
}

var hiddenSetCmd = &cobra.Command{
	Use:   "set <path>",
	Short: "Hide or unhide a path",
	Long: `Hide or unhide a path by renaming it with a dot prefix.

The path changes when the state changes, so the final path is printed.
Setting the already-present state is a no-op.`,
	Args: cobra.ExactArgs(1),
	Run:  runHiddenSet,
}

func init() {
	hiddenCmd.AddCommand(hiddenGetCmd)
	hiddenCmd.AddCommand(hiddenSetCmd)

	hiddenGetCmd.Flags().Bool("recursive", false, "Also check ancestors below the root")
	hiddenGetCmd.Flags().Bool("json", false, "Output as JSON")

	hiddenSetCmd.Flags().Bool("clear", false, "Unhide instead of hide")
}

func runHiddenGet(cmd *cobra.Command, args []string) {
	recursive, _ := cmd.Flags().GetBool("recursive")
	jsonOut, _ := cmd.Flags().GetBool("json")

	var isHidden bool
	var err error
	if recursive {
		isHidden, err = hidden.IsHiddenRecursive(args[0])
	} else {
		isHidden, err = hidden.IsHidden(args[0])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if jsonOut {
		json.NewEncoder(os.Stdout).Encode(map[string]bool{"hidden": isHidden})
		return
	}
	fmt.Println(isHidden)
}

func runHiddenSet(cmd *cobra.Command, args []string) {
	clear, _ := cmd.Flags().GetBool("clear")

	final, err := hidden.SetHidden(args[0], !clear)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(final)
}
