package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"rfhost/core"
	"rfhost/protocol"
)

var sendValueCmd = &cobra.Command{
	Use:   "send-value <node-id> <value>",
	Short: "Write a value to a node",
	Args:  cobra.ExactArgs(2),
	RunE:  runSendValue,
}

func runSendValue(cmd *cobra.Command, args []string) error {
	nodeID, value, err := parseNodeAndValue(args[0], args[1])
	if err != nil {
		return err
	}

	c, closeFn, err := openController()
	if err != nil {
		return err
	}
	defer closeFn()

	if err := c.SendData(nodeID, protocol.NewSetValue(value)); err != nil {
		return fmt.Errorf("set value: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "node %d acknowledged value %d\n", nodeID.Value(), value)
	return nil
}

func parseNodeAndValue(nodeArg, valueArg string) (core.NodeId, uint8, error) {
	node, err := strconv.ParseUint(nodeArg, 10, 8)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid node id %q: %w", nodeArg, err)
	}

	value, err := strconv.ParseUint(valueArg, 10, 8)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid value %q: %w", valueArg, err)
	}

	return core.NodeId(node), uint8(value), nil
}
