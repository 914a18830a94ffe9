package protocol

// CommandKind tags the concrete Go type behind a Command, replacing the
// original source's runtime TypeId lookup (see design note in
// DESIGN.md: "dynamic dispatch and type identity") with an exhaustive
// switch in CommandCodec.
type CommandKind int

const (
	CommandKindSetValue CommandKind = iota
	CommandKindGetValue
	CommandKindReport
)

// Command is the application-layer operation embedded in a SendData
// frame, keyed jointly by (CommandClassId, CommandId).
type Command interface {
	ClassId() CommandClassId
	CommandId() CommandId
	Kind() CommandKind
}

// SetValue writes a single byte to the node's basic value.
type SetValue struct {
	value uint8
}

// NewSetValue builds a SetValue command for the given byte value.
func NewSetValue(value uint8) SetValue { return SetValue{value: value} }

func (SetValue) ClassId() CommandClassId  { return CommandClassBasic }
func (SetValue) CommandId() CommandId     { return CommandBasicSetValue }
func (SetValue) Kind() CommandKind        { return CommandKindSetValue }
func (s SetValue) Value() uint8           { return s.value }

// GetValue requests the node's current basic value; it carries no body.
type GetValue struct{}

func (GetValue) ClassId() CommandClassId { return CommandClassBasic }
func (GetValue) CommandId() CommandId    { return CommandBasicGetValue }
func (GetValue) Kind() CommandKind       { return CommandKindGetValue }

// Report is the node's asynchronous answer to GetValue. It has no wire
// serializer yet (see spec §9 open question): nothing in this core
// sends a Report over the wire, it exists so higher layers extending
// MessageReceived dispatch have a typed place to put a decoded value.
type Report struct {
	value uint8
}

// NewReport builds a Report carrying the node's reported value.
func NewReport(value uint8) Report { return Report{value: value} }

func (Report) ClassId() CommandClassId { return CommandClassBasic }
func (Report) CommandId() CommandId    { return 0x03 }
func (Report) Kind() CommandKind       { return CommandKindReport }
func (r Report) Value() uint8          { return r.value }
