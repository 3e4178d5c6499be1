// Package loader parses a SIC/XE object program (H/T/M/E records) and
// writes its image directly into a vm.Machine.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/lookbusy1344/sicxe-emulator/vm"
)

// reader is a thin wrapper over bufio.Reader giving fixed-width reads of
// the kind original_source/loader.py performs with sequential
// objFile.read(N) calls, rather than line-oriented scanning — the T
// record's byte-pair count dictates exactly how many fields follow
// before the next record tag, independent of any newline.
type reader struct {
	r *bufio.Reader
}

func (rd *reader) readN(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rd.r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func (rd *reader) readByte() (byte, error) {
	return rd.r.ReadByte()
}

func (rd *reader) readHex(digits int) (uint32, error) {
	s, err := rd.readN(digits)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("loader: invalid hex field %q: %w", s, err)
	}
	return uint32(v), nil
}

// Load parses an object program from r and writes it into m. Any
// malformed record is a fatal error per spec.md §7; callers are expected
// to terminate the process on a non-nil return, mirroring
// original_source/loader.py's readRecords calling exit(1) on an
// unrecognised record tag.
func Load(m *vm.Machine, r io.Reader) error {
	rd := &reader{r: bufio.NewReader(r)}

	if err := readHeader(rd, m); err != nil {
		return err
	}
	return readRecords(rd, m)
}

func readHeader(rd *reader, m *vm.Machine) error {
	tag, err := rd.readByte()
	if err != nil {
		return fmt.Errorf("loader: reading header tag: %w", err)
	}
	if tag != 'H' {
		return fmt.Errorf("loader: expected H record, got %q", tag)
	}
	name, err := rd.readN(6)
	if err != nil {
		return fmt.Errorf("loader: reading program name: %w", err)
	}
	loadAddr, err := rd.readHex(6)
	if err != nil {
		return fmt.Errorf("loader: reading load address: %w", err)
	}
	length, err := rd.readHex(6)
	if err != nil {
		return fmt.Errorf("loader: reading program length: %w", err)
	}
	m.Program.Name = name
	m.Program.LoadAddr = loadAddr
	m.Program.Length = length
	return nil
}

func readRecords(rd *reader, m *vm.Machine) error {
	for {
		tag, err := rd.readByte()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("loader: reading record tag: %w", err)
		}

		switch tag {
		case '\n', '\r':
			continue
		case 'T':
			if err := readText(rd, m); err != nil {
				return err
			}
		case 'M':
			if err := readModification(rd); err != nil {
				return err
			}
		case 'E':
			entry, err := rd.readHex(6)
			if err != nil {
				return fmt.Errorf("loader: reading entry point: %w", err)
			}
			m.Program.EntryPoint = entry
			m.Regs.SetPC(entry)
			return nil
		default:
			return fmt.Errorf("loader: unrecognised record tag %q", tag)
		}
	}
}

func readText(rd *reader, m *vm.Machine) error {
	start, err := rd.readHex(6)
	if err != nil {
		return fmt.Errorf("loader: reading T record start address: %w", err)
	}
	count, err := rd.readHex(2)
	if err != nil {
		return fmt.Errorf("loader: reading T record byte count: %w", err)
	}
	data := make([]byte, count)
	for i := uint32(0); i < count; i++ {
		b, err := rd.readHex(2)
		if err != nil {
			return fmt.Errorf("loader: reading T record byte %d: %w", i, err)
		}
		data[i] = byte(b)
	}
	if err := m.Memory.LoadBytes(start, data); err != nil {
		return fmt.Errorf("loader: %w", err)
	}
	return nil
}

// readModification consumes an M record without applying it: the
// producing assembler is assumed to have pre-relocated addresses, per
// spec.md §1's Non-goals and original_source/loader.py's
// modificationRecord comment.
func readModification(rd *reader) error {
	if _, err := rd.readHex(6); err != nil {
		return fmt.Errorf("loader: reading M record address: %w", err)
	}
	if _, err := rd.readHex(2); err != nil {
		return fmt.Errorf("loader: reading M record length: %w", err)
	}
	return nil
}
