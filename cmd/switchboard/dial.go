package main

import (
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"

	"github.com/andy6609/switchboard/internal/client"
)

var flagName string

var dialCmd = &cobra.Command{
	Use:   "dial [host] [port]",
	Short: "Connect to a relay as a terminal client",
	Long: `Connect to a relay server and chat from the terminal. Server output
streams to stdout while stdin lines are sent as commands or messages.

Examples:
  switchboard dial
  switchboard dial 192.168.0.10 12345
  switchboard dial --name alice`,
	Args: cobra.MaximumNArgs(2),
	Run:  runDial,
}

func init() {
	dialCmd.Flags().StringVar(&flagName, "name", "", "log in automatically with this name")
}

func runDial(_ *cobra.Command, args []string) {
	host := "127.0.0.1"
	port := "12345"
	if len(args) > 0 {
		host = args[0]
	}
	if len(args) > 1 {
		port = args[1]
	}

	opts := client.Options{
		Name: flagName,
		In:   os.Stdin,
		Out:  os.Stdout,
	}
	if err := client.Dial(net.JoinHostPort(host, port), opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("Encerrado.")
}
