// Package controller implements the concurrent coordination core: one
// background goroutine owns receiving from the driver, while callers
// synchronously send a command and block for its reply. See DESIGN.md
// ("shared state between reader and requester") for why this uses a
// plain buffered channel rather than a mutex/condition-variable pair.
package controller

import (
	"errors"
	"sync"
	"time"

	"rfhost/core"
	"rfhost/driver"
	"rfhost/protocol"

	log "github.com/sirupsen/logrus"
)

// replyDeadline bounds how long send_data waits for a reply after a
// successful write.
const replyDeadline = 100 * time.Millisecond

// callbackId is hard-coded for every request; reply correlation is by
// ordering alone (see DESIGN.md open question on callback allocation).
const callbackId = 0x11

// reply is what the background reader posts for the requester to
// observe: the transport-level outcome of the single outstanding
// request.
type reply int

const (
	replyAck reply = iota
	replyNack
	replyCancel
)

// Controller multiplexes one background reader goroutine against
// synchronous SendData calls from any number of caller goroutines.
// Callers must not call SendData concurrently with each other — replies
// are matched to requests by arrival order alone, so only one request
// may be in flight at a time.
type Controller struct {
	driverMu sync.Mutex
	driver   driver.Driver

	replies chan reply

	stop chan struct{}
	done chan struct{}
}

// New starts the background reader over driver and returns a ready
// Controller. Callers must eventually call Stop.
func New(d driver.Driver) *Controller {
	c := &Controller{
		driver:  d,
		replies: make(chan reply, 4),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	go c.readLoop()

	return c
}

// Stop signals the background reader to exit and waits for it.
func (c *Controller) Stop() {
	close(c.stop)
	<-c.done
}

// SendData sends command to destination and waits up to the reply
// deadline for the controller's Ack/Nack/Cancel. It drains any reply
// left over from a previous, timed-out request before sending, so a
// stray late reply never gets attributed to the wrong call.
func (c *Controller) SendData(destination core.NodeId, command protocol.Command) error {
	message := protocol.NewSendData(destination, command, callbackId)

	c.driverMu.Lock()
	drain(c.replies)
	err := c.driver.Send(message)
	c.driverMu.Unlock()

	if err != nil {
		return err
	}

	timer := time.NewTimer(replyDeadline)
	defer timer.Stop()

	select {
	case r, ok := <-c.replies:
		if !ok {
			return core.New(core.Timeout)
		}
		return replyToError(r)
	case <-timer.C:
		return core.New(core.Timeout)
	}
}

func drain(replies chan reply) {
	for {
		select {
		case _, ok := <-replies:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func replyToError(r reply) error {
	switch r {
	case replyAck:
		return nil
	case replyNack:
		return core.New(core.Nack)
	case replyCancel:
		return core.New(core.Cancel)
	default:
		return core.New(core.Protocol)
	}
}

// readLoop owns all calls to c.driver.Receive, serialised against
// SendData's writes by driverMu. A Timeout from Receive is the normal
// idle case and is not logged; any other error is treated as
// unrecoverable per the spec's reader-error-handling note — it is
// logged once and the reply channel is closed, so the next SendData
// observes Timeout instead of blocking forever.
func (c *Controller) readLoop() {
	defer close(c.done)

	for {
		select {
		case <-c.stop:
			return
		default:
		}

		c.driverMu.Lock()
		message, err := c.driver.Receive()
		c.driverMu.Unlock()

		if err != nil {
			if errors.Is(err, core.ErrTimeout) {
				continue
			}

			log.WithError(err).Error("controller: reader stopped on unrecoverable error")
			close(c.replies)
			return
		}

		c.dispatch(message)
	}
}

func (c *Controller) dispatch(message protocol.Message) {
	switch message.(type) {
	case protocol.Ack:
		c.post(replyAck)
	case protocol.Nack:
		c.post(replyNack)
	case protocol.Cancel:
		c.post(replyCancel)
	default:
		// An unsolicited framed message (MessageTransmitted or
		// MessageReceived). The only response required at this layer
		// is to acknowledge receipt; decoding the payload further is
		// left to a higher layer that isn't part of this core.
		c.driverMu.Lock()
		if err := c.driver.Send(protocol.Ack{}); err != nil {
			log.WithError(err).Warn("controller: failed to ack unsolicited frame")
		}
		c.driverMu.Unlock()
	}
}

func (c *Controller) post(r reply) {
	select {
	case c.replies <- r:
	default:
		log.Warn("controller: reply dropped, channel full")
	}
}
