package protocol

import "rfhost/core"

type frameKey struct {
	direction  Direction
	functionId FunctionId
}

// FrameCodec serializes and deserializes the frame layer: the
// length-prefixed, XOR-parity-trailing envelope wrapping a Direction,
// FunctionId and body. Two instances exist, built by ForRequest and
// ForResponse, registering disjoint (mostly) sets of concrete frame
// kinds.
type FrameCodec struct {
	kinds   map[frameKey]FrameKind
	command *CommandCodec
}

// ForRequestFrameCodec builds the frame codec the driver uses to
// serialize outgoing requests: it registers SendData.
func ForRequestFrameCodec() *FrameCodec {
	return &FrameCodec{
		kinds: map[frameKey]FrameKind{
			{DirectionRequest, FunctionSendData}: FrameKindSendData,
		},
		command: NewCommandCodec(),
	}
}

// ForResponseFrameCodec builds the frame codec the driver uses to
// decode incoming responses: it registers MessageTransmitted and
// MessageReceived, both under FunctionSendData but distinguished by
// Direction (Response and Request respectively — see spec §3 note on
// MessageReceived's header).
func ForResponseFrameCodec() *FrameCodec {
	return &FrameCodec{
		kinds: map[frameKey]FrameKind{
			{DirectionResponse, FunctionSendData}: FrameKindMessageTransmitted,
			{DirectionRequest, FunctionSendData}:  FrameKindMessageReceived,
		},
		command: NewCommandCodec(),
	}
}

// Serialize writes [length][direction][function_id][body...][parity]
// into out, where out already holds the preamble byte 0x01 at
// lengthIndex-1. lengthIndex is the offset of the length placeholder
// byte (which this call both reserves and patches).
func (fc *FrameCodec) Serialize(frame Frame, out OutputBuffer) error {
	lengthIndex := out.CurPosition()

	out.Output([]byte{0x00, byte(frame.Direction()), byte(frame.FunctionId())})

	if err := fc.serializeBody(frame, out); err != nil {
		return err
	}

	out.Update(lengthIndex, byte(out.CurPosition()-lengthIndex))

	parity := byte(0xFF)
	for _, b := range out.DataSince(lengthIndex) {
		parity ^= b
	}
	out.Output([]byte{parity})

	return nil
}

func (fc *FrameCodec) serializeBody(frame Frame, out OutputBuffer) error {
	switch f := frame.(type) {
	case SendData:
		return fc.serializeSendData(f, out)
	case MessageTransmitted:
		out.Output([]byte{f.Flags})
		return nil
	case MessageReceived:
		out.Output([]byte{f.CallbackId, f.Flags})
		return nil
	default:
		return core.New(core.Protocol)
	}
}

func (fc *FrameCodec) serializeSendData(f SendData, out OutputBuffer) error {
	out.Output([]byte{f.Destination.Value()})

	payloadLenIndex := out.CurPosition()
	out.Output([]byte{0x00})

	payloadStart := out.CurPosition()
	if err := fc.command.Serialize(f.Command, out); err != nil {
		return err
	}
	out.Update(payloadLenIndex, byte(out.CurPosition()-payloadStart))

	out.Output([]byte{f.PacketOptions, f.CallbackId})

	return nil
}

// Deserialize reads a complete frame (length byte through parity) from
// r, verifies parity, and dispatches the body to the registered frame
// kind for the decoded (direction, function_id). r must be positioned
// just after the 0x01 preamble byte.
func (fc *FrameCodec) Deserialize(r *ByteReader) (Message, error) {
	length, err := r.ReadU8()
	if err != nil {
		return nil, err
	}

	body, err := r.ReadSlice(int(length))
	if err != nil {
		return nil, err
	}

	parity := byte(0xFF) ^ length
	for _, b := range body {
		parity ^= b
	}
	if parity != 0 {
		return nil, core.New(core.Corrupt)
	}

	if len(body) < 2 {
		return nil, core.New(core.Protocol)
	}

	direction, ok := DirectionFromByte(body[0])
	if !ok {
		return nil, core.New(core.Protocol)
	}
	functionId := FunctionId(body[1])

	kind, ok := fc.kinds[frameKey{direction, functionId}]
	if !ok {
		return nil, core.New(core.Protocol)
	}

	// body[2 : len(body)-1] excludes the direction/function header and
	// the trailing parity byte already verified above.
	return fc.deserializeBody(kind, body[2:len(body)-1])
}

func (fc *FrameCodec) deserializeBody(kind FrameKind, body []byte) (Message, error) {
	switch kind {
	case FrameKindSendData:
		return fc.deserializeSendData(body)

	case FrameKindMessageTransmitted:
		if len(body) < 1 {
			return nil, core.New(core.ShortRead)
		}
		return MessageTransmitted{Flags: body[0]}, nil

	case FrameKindMessageReceived:
		// Matches the original source's check (len < 1 while reading
		// two bytes) being tightened to len < 2, per spec §9's open
		// question: the original would read out of bounds on a
		// single-byte body.
		if len(body) < 2 {
			return nil, core.New(core.ShortRead)
		}
		return MessageReceived{CallbackId: body[0], Flags: body[1]}, nil

	default:
		return nil, core.New(core.Protocol)
	}
}

func (fc *FrameCodec) deserializeSendData(body []byte) (Message, error) {
	if len(body) < 4 {
		return nil, core.New(core.ShortRead)
	}

	destination := core.NodeId(body[0])
	payloadLen := int(body[1])

	if len(body) < 2+payloadLen+2 {
		return nil, core.New(core.ShortRead)
	}

	command, err := fc.command.Deserialize(body[2 : 2+payloadLen])
	if err != nil {
		return nil, err
	}

	packetOptions := body[2+payloadLen]
	callbackId := body[3+payloadLen]

	return SendData{
		Destination:   destination,
		Command:       command,
		PacketOptions: packetOptions,
		CallbackId:    callbackId,
	}, nil
}
