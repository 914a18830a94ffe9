// Package driver turns a byte-stream serial port into a Message-level
// transport: it owns the request and response codecs and the scratch
// buffer a send uses, so the controller only ever deals in
// protocol.Message values.
package driver

import (
	"fmt"

	"rfhost/core"
	"rfhost/protocol"
	"rfhost/serialport"

	log "github.com/sirupsen/logrus"
)

// Driver is the transport the controller drives: send one message,
// receive the next one available (or time out). Implementations must
// be safe to call from one goroutine at a time — the controller never
// calls Send and Receive concurrently against the same Driver, but does
// call Receive from a background goroutine while send_data blocks a
// caller, so both methods must be safe to invoke from different
// goroutines serially.
type Driver interface {
	Send(message protocol.Message) error
	Receive() (protocol.Message, error)
}

// SerialDriver is the Driver backed by a real or fake serialport.Port.
// It owns one MessageCodec per direction, since request framing
// (SendData) and response framing (MessageTransmitted/MessageReceived)
// register different frame kinds under the same FunctionId.
type SerialDriver struct {
	port     serialport.Port
	request  *protocol.MessageCodec
	response *protocol.MessageCodec
	reader   *protocol.ByteReader
}

// NewSerialDriver wraps an already-open port. Callers needing the
// spec's fixed line settings should open the port via
// serialport.Open(serialport.DefaultConfig(device)) first.
func NewSerialDriver(port serialport.Port) *SerialDriver {
	return &SerialDriver{
		port:     port,
		request:  protocol.ForRequest(),
		response: protocol.ForResponse(),
		reader:   protocol.NewByteReader(port),
	}
}

// Send serializes message with the request codec and writes it whole.
func (d *SerialDriver) Send(message protocol.Message) error {
	buf := protocol.NewScratchBuffer(16)
	if err := d.request.Serialize(message, buf); err != nil {
		return err
	}

	wire := buf.Bytes()
	n, err := d.port.Write(wire)
	if err != nil {
		return core.Wrap(core.Io, err)
	}
	if n != len(wire) {
		return core.Wrap(core.Io, fmt.Errorf("short write: %d/%d bytes", n, len(wire)))
	}

	log.WithFields(log.Fields{"bytes": len(wire)}).Trace("driver: sent frame")

	return nil
}

// Receive decodes the next message from the port with the response
// codec, blocking until the port's read timeout elapses (surfaced as
// core.ErrTimeout, not an error the caller should log) or a full
// message is assembled.
func (d *SerialDriver) Receive() (protocol.Message, error) {
	return d.response.Deserialize(d.reader)
}
