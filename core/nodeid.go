package core

import "fmt"

// NodeId is the opaque 8-bit identifier of a remote RF node. It carries
// no ordering semantics beyond equality.
type NodeId uint8

func (n NodeId) String() string {
	return fmt.Sprintf("node(%d)", uint8(n))
}

// Value returns the raw byte identifying the node on the wire.
func (n NodeId) Value() uint8 {
	return uint8(n)
}
