package cmd

import (
	"tunevault/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the TuneVault HTTP server",
	Long:  `Start the TuneVault HTTP server, serving the API, uploaded media and the web client`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
