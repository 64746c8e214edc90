// switchboard is a TCP text-message relay: clients log in with a name, dial
// a correspondent and exchange line-delimited messages routed by the server.
// Messages to offline users wait in a mailbox until their next login.
//
// Usage:
//
//	switchboard serve                 - Start the relay server
//	switchboard dial [host] [port]    - Connect as a terminal client
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "switchboard",
	Short: "Text-message relay with offline mailboxes",
	Long: `switchboard routes line-delimited text messages between logged-in
clients. A message to someone offline is parked in their mailbox and
delivered, oldest first, on their next login.

Examples:
  switchboard serve
  switchboard serve --addr :5000 --metrics-addr :9100
  switchboard dial
  switchboard dial chat.example.com 12345 --name alice`,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(dialCmd)
}
