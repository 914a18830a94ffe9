package protocol

import "rfhost/core"

// MessageCodec is the top-level codec: it dispatches on the one-byte
// preamble, producing the Ack/Nack/Cancel singletons directly or
// delegating PreambleFrame to an embedded FrameCodec. Two factory
// functions build the request- and response-direction variants,
// differing only in which FrameCodec they embed.
type MessageCodec struct {
	frame *FrameCodec
}

// ForRequest builds the codec the driver uses to serialize outgoing
// messages (SendData requests plus the three control bytes).
func ForRequest() *MessageCodec {
	return &MessageCodec{frame: ForRequestFrameCodec()}
}

// ForResponse builds the codec the driver uses to decode incoming
// messages (MessageTransmitted/MessageReceived plus the three control
// bytes).
func ForResponse() *MessageCodec {
	return &MessageCodec{frame: ForResponseFrameCodec()}
}

// Serialize writes message's preamble byte, then — for a Frame — the
// framed envelope, into out.
func (mc *MessageCodec) Serialize(message Message, out OutputBuffer) error {
	out.Output([]byte{byte(message.Preamble())})

	switch message.Preamble() {
	case PreambleAck, PreambleNack, PreambleCancel:
		return nil
	case PreambleFrame:
		frame, ok := message.(Frame)
		if !ok {
			return core.New(core.Protocol)
		}
		return mc.frame.Serialize(frame, out)
	default:
		return core.New(core.Protocol)
	}
}

// Deserialize reads one preamble byte from r and classifies it,
// delegating framed messages to the embedded FrameCodec. Fails with
// core.ErrProtocol if the byte is not a known preamble.
func (mc *MessageCodec) Deserialize(r *ByteReader) (Message, error) {
	b, err := r.ReadU8()
	if err != nil {
		return nil, err
	}

	preamble, ok := PreambleFromByte(b)
	if !ok {
		return nil, core.New(core.Protocol)
	}

	switch preamble {
	case PreambleAck:
		return Ack{}, nil
	case PreambleNack:
		return Nack{}, nil
	case PreambleCancel:
		return Cancel{}, nil
	case PreambleFrame:
		return mc.frame.Deserialize(r)
	default:
		return nil, core.New(core.Protocol)
	}
}
