package serial

import (
	"errors"
	"testing"
)

// scriptedPort hands out one queued chunk per Read and reports a
// zero-byte nil-error read once the queue is empty, the way tarm/serial
// reports an expired ReadTimeout.
type scriptedPort struct {
	reads  [][]byte
	closed bool
}

func (s *scriptedPort) Read(b []byte) (int, error) {
	if len(s.reads) == 0 {
		return 0, nil
	}
	chunk := s.reads[0]
	s.reads = s.reads[1:]
	return copy(b, chunk), nil
}

func (s *scriptedPort) Write(b []byte) (int, error) { return len(b), nil }

func (s *scriptedPort) Close() error {
	s.closed = true
	return nil
}

func TestReadMapsExpiredTimeout(t *testing.T) {
	p := &NativePort{port: &scriptedPort{}}

	n, err := p.Read(make([]byte, 4))
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Read = %d, %v; want ErrTimeout", n, err)
	}
	if n != 0 {
		t.Errorf("Read returned %d bytes with a timeout", n)
	}
}

func TestReadPassesDataThrough(t *testing.T) {
	p := &NativePort{port: &scriptedPort{reads: [][]byte{{'O', 'K'}}}}

	buf := make([]byte, 2)
	n, err := p.Read(buf)
	if err != nil || n != 2 {
		t.Fatalf("Read = %d, %v; want 2, nil", n, err)
	}
	if buf[0] != 'O' || buf[1] != 'K' {
		t.Errorf("Read delivered %q, want OK", buf[:n])
	}

	if _, err := p.Read(buf); !errors.Is(err, ErrTimeout) {
		t.Errorf("drained port read = %v, want ErrTimeout", err)
	}
}

func TestDrainDiscardsStaleBytes(t *testing.T) {
	inner := &scriptedPort{reads: [][]byte{{0x4f, 0x4b}, {0x01, 0x02, 0x03}}}
	p := &NativePort{port: inner}

	if err := p.Drain(); err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if len(inner.reads) != 0 {
		t.Errorf("%d chunks left buffered after Drain", len(inner.reads))
	}
	if _, err := p.Read(make([]byte, 1)); !errors.Is(err, ErrTimeout) {
		t.Errorf("read after Drain = %v, want ErrTimeout", err)
	}
}

func TestOpenValidatesConfig(t *testing.T) {
	if _, err := Open(nil); err == nil {
		t.Error("Open(nil) succeeded")
	}

	cfg := DefaultConfig("/dev/null")
	cfg.ReadTimeout = 0
	if _, err := Open(cfg); err == nil {
		t.Error("Open with zero read timeout succeeded")
	}
}
