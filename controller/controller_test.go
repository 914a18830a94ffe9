package controller

import (
	"sync"
	"testing"
	"time"

	"rfhost/core"
	"rfhost/protocol"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sendExpectation is one queued expected call to fakeDriver.Send: check
// runs against the sent message, and if it passes and response is set,
// response is queued for a later Receive.
type sendExpectation struct {
	check    func(protocol.Message) error
	response protocol.Message
	hasReply bool
}

// fakeDriver is the driver.Driver test double, ported from the
// original source's controller test suite: a queue of expected sends
// (each optionally producing a queued response) plus a queue of
// standalone responses pushed directly onto the receive side.
type fakeDriver struct {
	mu           sync.Mutex
	cond         *sync.Cond
	sends        []sendExpectation
	receiveQueue []protocol.Message
}

func newFakeDriver() *fakeDriver {
	d := &fakeDriver{}
	d.cond = sync.NewCond(&d.mu)
	return d
}

func (d *fakeDriver) expectSend(check func(protocol.Message) error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sends = append(d.sends, sendExpectation{check: check})
}

func (d *fakeDriver) expectSendWithResponse(check func(protocol.Message) error, response protocol.Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sends = append(d.sends, sendExpectation{check: check, response: response, hasReply: true})
}

func (d *fakeDriver) pushResponse(response protocol.Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.receiveQueue = append(d.receiveQueue, response)
	d.cond.Broadcast()
}

// waitForReceive blocks until the receive queue has drained, i.e. the
// reader goroutine has picked up every pushed response.
func (d *fakeDriver) waitForReceive() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for len(d.receiveQueue) != 0 {
		d.cond.Wait()
	}
}

func (d *fakeDriver) verify(t *testing.T) {
	t.Helper()
	d.mu.Lock()
	defer d.mu.Unlock()
	assert.Empty(t, d.sends, "missing expected call(s) to Send")
}

func (d *fakeDriver) Send(message protocol.Message) error {
	d.mu.Lock()
	if len(d.sends) == 0 {
		d.mu.Unlock()
		return core.New(core.Protocol)
	}
	exp := d.sends[0]
	d.sends = d.sends[1:]
	d.mu.Unlock()

	err := exp.check(message)
	if err == nil && exp.hasReply {
		d.mu.Lock()
		d.receiveQueue = append(d.receiveQueue, exp.response)
		d.cond.Broadcast()
		d.mu.Unlock()
	}

	return err
}

func (d *fakeDriver) Receive() (protocol.Message, error) {
	d.mu.Lock()
	if len(d.receiveQueue) > 0 {
		msg := d.receiveQueue[0]
		d.receiveQueue = d.receiveQueue[1:]
		d.cond.Broadcast()
		d.mu.Unlock()
		return msg, nil
	}
	d.mu.Unlock()

	time.Sleep(time.Millisecond)
	return nil, core.New(core.Timeout)
}

func withFakeDriver(t *testing.T, f func(d *fakeDriver, c *Controller)) {
	t.Helper()
	d := newFakeDriver()
	c := New(d)

	f(d, c)

	c.Stop()
	d.verify(t)
}

func TestSendDataSendsSendDataMessage(t *testing.T) {
	withFakeDriver(t, func(d *fakeDriver, c *Controller) {
		d.expectSendWithResponse(func(message protocol.Message) error {
			_, ok := message.(protocol.SendData)
			assert.True(t, ok)
			return nil
		}, protocol.Ack{})

		_ = c.SendData(core.NodeId(42), protocol.NewSetValue(42))
	})
}

func TestSendDataSendsCorrectNodeId(t *testing.T) {
	withFakeDriver(t, func(d *fakeDriver, c *Controller) {
		d.expectSendWithResponse(func(message protocol.Message) error {
			sendData := message.(protocol.SendData)
			assert.Equal(t, core.NodeId(42), sendData.Destination)
			return nil
		}, protocol.Ack{})
		_ = c.SendData(core.NodeId(42), protocol.NewSetValue(42))

		d.expectSendWithResponse(func(message protocol.Message) error {
			sendData := message.(protocol.SendData)
			assert.Equal(t, core.NodeId(7), sendData.Destination)
			return nil
		}, protocol.Ack{})
		_ = c.SendData(core.NodeId(7), protocol.NewSetValue(42))
	})
}

func TestSendDataSendsCommandAsPayload(t *testing.T) {
	withFakeDriver(t, func(d *fakeDriver, c *Controller) {
		d.expectSendWithResponse(func(message protocol.Message) error {
			sendData := message.(protocol.SendData)
			setValue, ok := sendData.Command.(protocol.SetValue)
			require.True(t, ok)
			assert.Equal(t, uint8(42), setValue.Value())
			return nil
		}, protocol.Ack{})
		_ = c.SendData(core.NodeId(42), protocol.NewSetValue(42))

		d.expectSendWithResponse(func(message protocol.Message) error {
			sendData := message.(protocol.SendData)
			setValue, ok := sendData.Command.(protocol.SetValue)
			require.True(t, ok)
			assert.Equal(t, uint8(7), setValue.Value())
			return nil
		}, protocol.Ack{})
		_ = c.SendData(core.NodeId(42), protocol.NewSetValue(7))
	})
}

func TestSendDataReturnsOkIfReplyIsAck(t *testing.T) {
	withFakeDriver(t, func(d *fakeDriver, c *Controller) {
		d.expectSendWithResponse(func(protocol.Message) error { return nil }, protocol.Ack{})
		assert.NoError(t, c.SendData(core.NodeId(42), protocol.NewSetValue(42)))
	})
}

func TestSendDataReturnsNackErrorIfReplyIsNack(t *testing.T) {
	withFakeDriver(t, func(d *fakeDriver, c *Controller) {
		d.expectSendWithResponse(func(protocol.Message) error { return nil }, protocol.Nack{})
		err := c.SendData(core.NodeId(42), protocol.NewSetValue(42))
		assert.ErrorIs(t, err, core.ErrNack)
	})
}

func TestSendDataReturnsCancelErrorIfReplyIsCancel(t *testing.T) {
	withFakeDriver(t, func(d *fakeDriver, c *Controller) {
		d.expectSendWithResponse(func(protocol.Message) error { return nil }, protocol.Cancel{})
		err := c.SendData(core.NodeId(42), protocol.NewSetValue(42))
		assert.ErrorIs(t, err, core.ErrCancel)
	})
}

func TestSendDataReturnsTimeoutErrorIfNoResponseIsReceived(t *testing.T) {
	withFakeDriver(t, func(d *fakeDriver, c *Controller) {
		d.expectSend(func(protocol.Message) error { return nil })
		err := c.SendData(core.NodeId(42), protocol.NewSetValue(42))
		assert.ErrorIs(t, err, core.ErrTimeout)
	})
}

func TestSendDataIgnoresRepliesFromPreviousTimedOutRequests(t *testing.T) {
	withFakeDriver(t, func(d *fakeDriver, c *Controller) {
		d.expectSend(func(protocol.Message) error { return nil })
		err := c.SendData(core.NodeId(42), protocol.NewSetValue(42))
		assert.ErrorIs(t, err, core.ErrTimeout)

		d.pushResponse(protocol.Cancel{})
		d.waitForReceive()

		d.expectSendWithResponse(func(protocol.Message) error { return nil }, protocol.Ack{})
		assert.NoError(t, c.SendData(core.NodeId(42), protocol.NewSetValue(42)))
	})
}
