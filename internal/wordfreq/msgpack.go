package wordfreq

import (
	"bufio"
	"fmt"
	"io"
	"math"
)

// unpack decodes a single msgpack value. Only the subset of the format
// the wordfreq data files use is supported; anything else is an error.
func unpack(r io.Reader) (any, error) {
	u := &unpacker{br: bufio.NewReader(r)}
	return u.next()
}

type unpacker struct {
	br *bufio.Reader
}

func (u *unpacker) next() (any, error) {
	tag, err := u.br.ReadByte()
	if err != nil {
		return nil, err
	}

	switch {
	case tag <= 0x7f: // positive fixint
		return int64(tag), nil
	case tag >= 0xe0: // negative fixint
		return int64(int8(tag)), nil
	case tag >= 0xa0 && tag <= 0xbf: // fixstr
		return u.str(uint64(tag & 0x1f))
	case tag >= 0x90 && tag <= 0x9f: // fixarray
		return u.array(uint64(tag & 0x0f))
	case tag >= 0x80 && tag <= 0x8f: // fixmap
		return u.mapping(uint64(tag & 0x0f))
	}

	switch tag {
	case 0xc0:
		return nil, nil
	case 0xc2:
		return false, nil
	case 0xc3:
		return true, nil
	case 0xc4, 0xc5, 0xc6: // bin 8/16/32
		n, err := u.uint(1 << (tag - 0xc4))
		if err != nil {
			return nil, err
		}
		return u.bytes(n)
	case 0xca: // float32
		bits, err := u.uint(4)
		if err != nil {
			return nil, err
		}
		return float64(math.Float32frombits(uint32(bits))), nil
	case 0xcb: // float64
		bits, err := u.uint(8)
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(bits), nil
	case 0xcc, 0xcd, 0xce, 0xcf: // uint 8/16/32/64
		v, err := u.uint(1 << (tag - 0xcc))
		if err != nil {
			return nil, err
		}
		return int64(v), nil
	case 0xd0, 0xd1, 0xd2, 0xd3: // int 8/16/32/64
		width := 1 << (tag - 0xd0)
		v, err := u.uint(width)
		if err != nil {
			return nil, err
		}
		shift := 64 - 8*width
		return int64(v<<shift) >> shift, nil
	case 0xd9, 0xda, 0xdb: // str 8/16/32
		n, err := u.uint(1 << (tag - 0xd9))
		if err != nil {
			return nil, err
		}
		return u.str(n)
	case 0xdc, 0xdd: // array 16/32
		n, err := u.uint(2 << (tag - 0xdc))
		if err != nil {
			return nil, err
		}
		return u.array(n)
	case 0xde, 0xdf: // map 16/32
		n, err := u.uint(2 << (tag - 0xde))
		if err != nil {
			return nil, err
		}
		return u.mapping(n)
	default:
		return nil, fmt.Errorf("unsupported msgpack tag 0x%02x", tag)
	}
}

func (u *unpacker) uint(width int) (uint64, error) {
	buf := make([]byte, width)
	if _, err := io.ReadFull(u.br, buf); err != nil {
		return 0, err
	}
	var v uint64
	for _, b := range buf {
		v = v<<8 | uint64(b)
	}
	return v, nil
}

func (u *unpacker) bytes(n uint64) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(u.br, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (u *unpacker) str(n uint64) (string, error) {
	buf, err := u.bytes(n)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

func (u *unpacker) array(n uint64) ([]any, error) {
	out := make([]any, 0, n)
	for i := uint64(0); i < n; i++ {
		v, err := u.next()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (u *unpacker) mapping(n uint64) (map[any]any, error) {
	out := make(map[any]any, n)
	for i := uint64(0); i < n; i++ {
		key, err := u.next()
		if err != nil {
			return nil, err
		}
		val, err := u.next()
		if err != nil {
			return nil, err
		}
		out[key] = val
	}
	return out, nil
}
