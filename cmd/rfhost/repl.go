package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/cobra"

	"rfhost/protocol"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactively send commands to nodes",
	RunE:  runRepl,
}

func runRepl(cmd *cobra.Command, args []string) error {
	c, closeFn, err := openController()
	if err != nil {
		return err
	}
	defer closeFn()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "rfhost repl — type 'help' for commands, 'quit' to exit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields, err := shlex.Split(line)
		if err != nil {
			fmt.Fprintf(out, "parse error: %v\n", err)
			continue
		}
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit", "q":
			return nil

		case "help", "?":
			printReplHelp(out)

		case "send-value":
			if len(fields) != 3 {
				fmt.Fprintln(out, "usage: send-value <node-id> <value>")
				continue
			}
			nodeID, value, err := parseNodeAndValue(fields[1], fields[2])
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			if err := c.SendData(nodeID, protocol.NewSetValue(value)); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "node %d acknowledged value %d\n", nodeID.Value(), value)

		case "get-value":
			if len(fields) != 2 {
				fmt.Fprintln(out, "usage: get-value <node-id>")
				continue
			}
			nodeID, _, err := parseNodeAndValue(fields[1], "0")
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			if err := c.SendData(nodeID, protocol.GetValue{}); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "node %d acknowledged the request\n", nodeID.Value())

		default:
			fmt.Fprintf(out, "unknown command: %s (type 'help' for available commands)\n", fields[0])
		}
	}

	return scanner.Err()
}

func printReplHelp(out io.Writer) {
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Available commands:")
	fmt.Fprintln(out, "  send-value <node-id> <value>   Write a value to a node")
	fmt.Fprintln(out, "  get-value <node-id>            Request a node's current value")
	fmt.Fprintln(out, "  help                           Show this help message")
	fmt.Fprintln(out, "  quit                           Exit the REPL")
	fmt.Fprintln(out, "")
}
