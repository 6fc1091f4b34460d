package protocol

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"
)

// Frame layout: [1 byte compression][4 bytes payload length][4 bytes
// decoded length][payload], lengths big-endian.
const frameHeaderLength = 9

// MaxPayload bounds both the encoded and decoded payload of a frame.
const MaxPayload = 16 * 1024 * 1024

// CompressThreshold is the smallest payload worth compressing.
const CompressThreshold = 512

// ErrFrameTooLarge is returned for frames whose payload exceeds MaxPayload.
var ErrFrameTooLarge = errors.New("frame exceeds maximum payload")

// WriteFrame writes payload to w, compressing it with c when it is at
// least CompressThreshold bytes and compression makes it smaller.
func WriteFrame(w io.Writer, payload []byte, c Compression) error {
	if len(payload) > MaxPayload {
		return fmt.Errorf("write frame: %d bytes: %w", len(payload), ErrFrameTooLarge)
	}
	tag, body := CompressionNone, payload
	if c != CompressionNone && len(payload) >= CompressThreshold {
		compressed, err := compress(payload, c)
		switch {
		case err == nil:
			tag, body = c, compressed
		case !errors.Is(err, errIncompressible):
			return fmt.Errorf("write frame: %w", err)
		}
	}
	var header [frameHeaderLength]byte
	header[0] = byte(tag)
	binary.BigEndian.PutUint32(header[1:5], uint32(len(body)))
	binary.BigEndian.PutUint32(header[5:9], uint32(len(payload)))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("write frame header: %w", err)
	}
	if len(body) > 0 {
		if _, err := w.Write(body); err != nil {
			return fmt.Errorf("write frame payload: %w", err)
		}
	}
	return nil
}

// ReadFrame reads one frame from r and returns its decoded payload. A
// clean end of stream before the header is reported as io.EOF.
func ReadFrame(r io.Reader) ([]byte, error) {
	var header [frameHeaderLength]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read frame header: %w", err)
	}
	tag := Compression(header[0])
	length := binary.BigEndian.Uint32(header[1:5])
	decoded := binary.BigEndian.Uint32(header[5:9])
	if length > MaxPayload || decoded > MaxPayload {
		return nil, fmt.Errorf("read frame: %d/%d bytes: %w", length, decoded, ErrFrameTooLarge)
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("read frame payload: %w", err)
	}
	payload, err := decompress(body, tag, int(decoded))
	if err != nil {
		return nil, fmt.Errorf("read frame: %w", err)
	}
	return payload, nil
}

// Writer encodes messages onto a stream. It is safe for concurrent use.
type Writer struct {
	mu          sync.Mutex
	w           io.Writer
	compression Compression
}

func NewWriter(w io.Writer, c Compression) *Writer {
	return &Writer{w: w, compression: c}
}

// Write encodes msg and writes it as one frame.
func (w *Writer) Write(msg Message) error {
	payload, err := Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode %s: %w", msg.Kind, err)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return WriteFrame(w.w, payload, w.compression)
}

// Reader decodes messages from a stream.
type Reader struct {
	r *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Read returns the next message.
func (r *Reader) Read() (Message, error) {
	payload, err := ReadFrame(r.r)
	if err != nil {
		return Message{}, err
	}
	var msg Message
	if err := Unmarshal(payload, &msg); err != nil {
		return Message{}, fmt.Errorf("decode message: %w", err)
	}
	return msg, nil
}
