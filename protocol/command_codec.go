package protocol

import "rfhost/core"

// CommandCodec serializes and deserializes the leaf application Command
// embedded in a SendData frame body. One instance is owned by each
// FrameCodec that transports commands.
//
// The original source kept a (class, id) -> TypeId -> Serialize map
// built at registration time; this is replaced by an exhaustive switch
// per the redesign note in spec §9, since Go has no stable per-type
// runtime identity to key a map on in the first place.
type CommandCodec struct{}

// NewCommandCodec creates a command codec for the commands this core
// knows about (basic SetValue/GetValue).
func NewCommandCodec() *CommandCodec {
	return &CommandCodec{}
}

// Serialize emits [class, id, body...] into out. body length is left
// implicit; the enclosing frame records it. Fails with core.ErrProtocol
// if command has no wire encoding (e.g. Report).
func (c *CommandCodec) Serialize(command Command, out OutputBuffer) error {
	out.Output([]byte{command.ClassId(), command.CommandId()})

	switch cmd := command.(type) {
	case SetValue:
		out.Output([]byte{cmd.Value()})
		return nil
	case GetValue:
		return nil
	default:
		return core.New(core.Protocol)
	}
}

// Deserialize reads (class, id) from the front of buffer and delegates
// the remaining bytes to the matching command's body parser. Fails with
// core.ErrShortRead if buffer holds fewer than two bytes, or
// core.ErrProtocol if (class, id) is unregistered.
func (c *CommandCodec) Deserialize(buffer []byte) (Command, error) {
	if len(buffer) < 2 {
		return nil, core.New(core.ShortRead)
	}

	classId, cmdId := buffer[0], buffer[1]
	body := buffer[2:]

	switch {
	case classId == CommandClassBasic && cmdId == CommandBasicSetValue:
		if len(body) < 1 {
			return nil, core.New(core.ShortRead)
		}
		return NewSetValue(body[0]), nil

	case classId == CommandClassBasic && cmdId == CommandBasicGetValue:
		// Residual bytes are ignored; body length is governed by the
		// enclosing frame, per spec §4.2.
		return GetValue{}, nil

	default:
		return nil, core.New(core.Protocol)
	}
}
