package protocol

import "rfhost/core"

// FrameKind tags the concrete Go type behind a framed Message, the
// frame-layer counterpart of CommandKind.
type FrameKind int

const (
	FrameKindSendData FrameKind = iota
	FrameKindMessageTransmitted
	FrameKindMessageReceived
)

// Frame is a message whose preamble is PreambleFrame: it additionally
// carries a Direction and a FunctionId identifying its body layout.
type Frame interface {
	Message
	Direction() Direction
	FunctionId() FunctionId
	FrameKind() FrameKind
}

// SendData is the request-direction frame dispatching a Command to a
// destination node.
type SendData struct {
	Destination   core.NodeId
	Command       Command
	PacketOptions uint8
	CallbackId    uint8
}

// NewSendData builds a SendData with the spec's default packet options
// (0x05).
func NewSendData(destination core.NodeId, command Command, callbackId uint8) SendData {
	return SendData{
		Destination:   destination,
		Command:       command,
		PacketOptions: 0x05,
		CallbackId:    callbackId,
	}
}

func (SendData) Preamble() Preamble       { return PreambleFrame }
func (SendData) Direction() Direction     { return DirectionRequest }
func (SendData) FunctionId() FunctionId   { return FunctionSendData }
func (SendData) FrameKind() FrameKind     { return FrameKindSendData }

// MessageTransmitted is the controller's response-direction completion
// notice for a SendData request.
type MessageTransmitted struct {
	Flags uint8
}

func (MessageTransmitted) Preamble() Preamble     { return PreambleFrame }
func (MessageTransmitted) Direction() Direction   { return DirectionResponse }
func (MessageTransmitted) FunctionId() FunctionId { return FunctionSendData }
func (MessageTransmitted) FrameKind() FrameKind   { return FrameKindMessageTransmitted }

// MessageReceived is the asynchronous notice that a node answered a
// SendData identified by CallbackId. It travels on the response byte
// stream but its header carries Direction=Request (see spec §3 note);
// the response FrameCodec registers it under DirectionRequest for that
// reason.
type MessageReceived struct {
	CallbackId uint8
	Flags      uint8
}

func (MessageReceived) Preamble() Preamble     { return PreambleFrame }
func (MessageReceived) Direction() Direction   { return DirectionRequest }
func (MessageReceived) FunctionId() FunctionId { return FunctionSendData }
func (MessageReceived) FrameKind() FrameKind   { return FrameKindMessageReceived }
