package protocol

import (
	"errors"
	"io"
	"net"

	"rfhost/core"
)

// ByteReader wraps a stream that yields bytes on demand with a timeout
// configured externally (by the caller that opened the underlying
// connection, e.g. serialport.NativePort). It is single-owner: callers
// must not interleave ReadU8/ReadSlice calls across goroutines.
type ByteReader struct {
	r      io.Reader
	buffer []byte
}

// NewByteReader wraps r for exact-count reads.
func NewByteReader(r io.Reader) *ByteReader {
	return &ByteReader{r: r}
}

// ReadU8 reads exactly one byte, or fails with core.ErrShortRead (the
// stream ended), core.ErrTimeout (the read deadline elapsed) or
// core.ErrIo (any other failure).
//
// tarm/serial's Linux implementation reports a VTIME read timeout as a
// (0, nil) return rather than a *net.OpError with Timeout()==true, so a
// zero-byte, error-free read is treated as Timeout, not EOF.
func (br *ByteReader) ReadU8() (byte, error) {
	var b [1]byte

	n, err := br.r.Read(b[:])
	if n == 1 {
		return b[0], nil
	}
	if err == nil {
		return 0, core.New(core.Timeout)
	}
	if errors.Is(err, io.EOF) {
		return 0, core.New(core.ShortRead)
	}
	return 0, classifyReadErr(err)
}

// ReadSlice reads exactly n bytes, returned as a slice borrowed from the
// reader's internal buffer — valid until the next ReadSlice call. It
// fails with core.ErrShortRead if the stream reached EOF before n bytes
// were available, core.ErrTimeout if the read deadline elapsed before
// any further bytes arrived, or core.ErrIo otherwise.
func (br *ByteReader) ReadSlice(n int) ([]byte, error) {
	if cap(br.buffer) < n {
		br.buffer = make([]byte, n)
	}
	buf := br.buffer[:n]

	read := 0
	for read < n {
		m, err := br.r.Read(buf[read:])
		read += m
		if err != nil {
			if read == n {
				break
			}
			if errors.Is(err, io.EOF) {
				return nil, core.New(core.ShortRead)
			}
			return nil, classifyReadErr(err)
		}
		if m == 0 {
			if read == n {
				break
			}
			return nil, core.New(core.Timeout)
		}
	}

	return buf, nil
}

func classifyReadErr(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return core.New(core.Timeout)
	}
	return core.Wrap(core.Io, err)
}
