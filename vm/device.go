package vm

import (
	"fmt"
	"math/rand"
	"os"
	"time"
)

// DeviceCount is the number of addressable device slots.
const DeviceCount = 256

// Reserved device slot ids, pre-bound at machine construction.
const (
	DeviceStdin  = 0
	DeviceStdout = 1
	DeviceStderr = 2
	DeviceRandom = 3
	DeviceTimer  = 4
)

// Device is the common contract every device slot implements, grounded
// on original_source/device.py's base Device class and per-subclass
// overrides.
type Device interface {
	Test() bool
	Read() (byte, error)
	ReadN(n int) ([]byte, error)
	Write(data []byte) error
	Flush() error
	Initialised() bool
}

// baseDevice supplies the default behaviour described in spec.md §4.5:
// test succeeds, reads yield a single zero byte, writes are no-ops, and
// the device reports itself initialised. Concrete devices embed this and
// override only the methods they need.
type baseDevice struct{}

func (baseDevice) Test() bool                 { return true }
func (baseDevice) Read() (byte, error)         { return 0, nil }
func (baseDevice) ReadN(n int) ([]byte, error) { return make([]byte, n), nil }
func (baseDevice) Write(data []byte) error     { return nil }
func (baseDevice) Flush() error                { return nil }
func (baseDevice) Initialised() bool           { return true }

// streamDevice wraps a host stream (stdin/stdout/stderr) opened in raw
// binary mode.
type streamDevice struct {
	baseDevice
	in  *os.File
	out *os.File
}

func (d *streamDevice) Read() (byte, error) {
	if d.in == nil {
		return 0, nil
	}
	var b [1]byte
	if _, err := d.in.Read(b[:]); err != nil {
		return 0, nil
	}
	return b[0], nil
}

func (d *streamDevice) ReadN(n int) ([]byte, error) {
	buf := make([]byte, n)
	if d.in == nil {
		return buf, nil
	}
	_, _ = d.in.Read(buf)
	return buf, nil
}

func (d *streamDevice) Write(data []byte) error {
	if d.out == nil {
		return nil
	}
	_, err := d.out.Write(data)
	return err
}

// Flush is a no-op: stdin/stdout/stderr are unbuffered *os.File writes
// already, and os.File.Sync on a tty or pipe returns EINVAL on Linux,
// which would otherwise surface as a spurious diagnostic on every WD to
// stdout. The original OutputDevice.flush flushes a buffered stream and
// never errors here; matching that, writes are considered flushed as
// soon as Write returns.
func (d *streamDevice) Flush() error { return nil }

// randomDevice draws a fresh uniform byte on every read, grounded on
// original_source/device.py's Stdrng.
type randomDevice struct{ baseDevice }

func (randomDevice) Read() (byte, error) { return byte(rand.Intn(256)), nil }

func (d randomDevice) ReadN(n int) ([]byte, error) {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(rand.Intn(256))
	}
	return out, nil
}

// timerDevice is a command port: writing 0x01 captures the start time,
// writing 0x02 queues the elapsed milliseconds (truncated to 24 bits) as
// three MSB-first bytes, and each read dequeues one pending byte.
// Grounded on original_source/device.py's Stdtimer.
type timerDevice struct {
	baseDevice
	start time.Time
	queue []byte
}

func (d *timerDevice) Write(data []byte) error {
	for _, b := range data {
		switch b {
		case 0x01:
			d.start = time.Now()
		case 0x02:
			elapsed := uint32(time.Since(d.start).Milliseconds()) & 0xFFFFFF
			d.queue = append(d.queue, byte(elapsed>>16), byte(elapsed>>8), byte(elapsed))
		}
	}
	return nil
}

func (d *timerDevice) Read() (byte, error) {
	if len(d.queue) == 0 {
		return 0, nil
	}
	b := d.queue[0]
	d.queue = d.queue[1:]
	return b, nil
}

func (d *timerDevice) ReadN(n int) ([]byte, error) {
	out := make([]byte, n)
	for i := range out {
		out[i], _ = d.Read()
	}
	return out, nil
}

// fileDevice backs a lazily-created <HEX>.dev file, opened read/write
// without truncation. Grounded on original_source/device.py's
// FileDevice, which leaves the device uninitialised (rather than erroring)
// when the backing file cannot be opened.
type fileDevice struct {
	baseDevice
	file        *os.File
	initialised bool
}

func newFileDevice(path string) *fileDevice {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return &fileDevice{initialised: false}
	}
	return &fileDevice{file: f, initialised: true}
}

func (d *fileDevice) Initialised() bool { return d.initialised }

func (d *fileDevice) Read() (byte, error) {
	if !d.initialised {
		return 0, fmt.Errorf("device: read from uninitialised file device")
	}
	var b [1]byte
	if _, err := d.file.Read(b[:]); err != nil {
		return 0, nil
	}
	return b[0], nil
}

func (d *fileDevice) ReadN(n int) ([]byte, error) {
	if !d.initialised {
		return nil, fmt.Errorf("device: read from uninitialised file device")
	}
	buf := make([]byte, n)
	_, _ = d.file.Read(buf)
	return buf, nil
}

func (d *fileDevice) Write(data []byte) error {
	if !d.initialised {
		return fmt.Errorf("device: write to uninitialised file device")
	}
	_, err := d.file.Write(data)
	return err
}

func (d *fileDevice) Flush() error {
	if !d.initialised {
		return nil
	}
	return d.file.Sync()
}

// DeviceBank is the 256-slot device table. Slots 0-4 are pre-bound at
// construction; other slots are created lazily on first reference by
// execRD/execTD/execWD.
type DeviceBank struct {
	devices [DeviceCount]Device
	// Dir is the directory lazily-created file devices are opened in.
	// Empty means the current working directory.
	Dir string
}

// NewDeviceBank builds a device bank with the reserved slots pre-bound.
func NewDeviceBank() *DeviceBank {
	db := &DeviceBank{}
	db.devices[DeviceStdin] = &streamDevice{in: os.Stdin}
	db.devices[DeviceStdout] = &streamDevice{out: os.Stdout}
	db.devices[DeviceStderr] = &streamDevice{out: os.Stderr}
	db.devices[DeviceRandom] = randomDevice{}
	db.devices[DeviceTimer] = &timerDevice{}
	return db
}

// Get returns the device bound to id, lazily instantiating a file-backed
// device on first reference to any slot beyond the reserved five.
func (db *DeviceBank) Get(id int) (Device, error) {
	if id < 0 || id >= DeviceCount {
		return nil, fmt.Errorf("device: id %d out of range", id)
	}
	if db.devices[id] == nil {
		path := fmt.Sprintf("%02X.dev", id)
		if db.Dir != "" {
			path = db.Dir + string(os.PathSeparator) + path
		}
		db.devices[id] = newFileDevice(path)
	}
	return db.devices[id], nil
}

// Reset releases every device beyond the five reserved slots, so the
// next reference re-opens backing files from scratch.
func (db *DeviceBank) Reset() {
	reserved := [DeviceCount]Device{}
	reserved[DeviceStdin] = db.devices[DeviceStdin]
	reserved[DeviceStdout] = db.devices[DeviceStdout]
	reserved[DeviceStderr] = db.devices[DeviceStderr]
	reserved[DeviceRandom] = randomDevice{}
	reserved[DeviceTimer] = &timerDevice{}
	db.devices = reserved
}
