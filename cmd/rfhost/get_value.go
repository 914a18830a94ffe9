package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"rfhost/core"
	"rfhost/protocol"
)

var getValueCmd = &cobra.Command{
	Use:   "get-value <node-id>",
	Short: "Request a node's current value",
	Args:  cobra.ExactArgs(1),
	RunE:  runGetValue,
}

func runGetValue(cmd *cobra.Command, args []string) error {
	node, err := strconv.ParseUint(args[0], 10, 8)
	if err != nil {
		return fmt.Errorf("invalid node id %q: %w", args[0], err)
	}
	nodeID := core.NodeId(node)

	c, closeFn, err := openController()
	if err != nil {
		return err
	}
	defer closeFn()

	if err := c.SendData(nodeID, protocol.GetValue{}); err != nil {
		return fmt.Errorf("get value: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "node %d acknowledged the request; its reply arrives asynchronously\n", nodeID.Value())
	return nil
}
