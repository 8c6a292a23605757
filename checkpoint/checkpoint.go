// Package checkpoint encodes resumable producer positions.
//
// A checkpoint is a compact binary snapshot of where a producer stands in its
// sequence, meant to be stored and handed back to a constructor later, maybe
// by a different process or a different build of the program. The encoding
// uses the protobuf wire format so that snapshots stay decodable when fields
// are added, and are inspectable with standard protobuf tooling. Each cursor
// is framed as a single length-delimited record, so cursors can be
// concatenated into one buffer and decoded back one at a time.
package checkpoint

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Version is the current checkpoint format version. It is attached to every
// encoded cursor and checked at decode time.
const Version = 1

// ErrVersionMismatch is returned when decoding a checkpoint written by a
// newer format version than this package understands.
var ErrVersionMismatch = errors.New("checkpoint: version mismatch")

// Field numbers of the cursor record. Numbers must never be reused.
const (
	fieldVersion = 1
	fieldToken   = 2
	fieldOffset  = 3
)

// A Cursor is the resumable position of a producer: an opaque token in terms
// of which the producer describes its coarse position (a page cursor, a key,
// a file offset), plus the number of items already consumed past that token.
type Cursor struct {
	Token  []byte
	Offset uint64
}

// MarshalAppend appends the encoding of c to b and returns the extended
// buffer.
func (c Cursor) MarshalAppend(b []byte) ([]byte, error) {
	rec := protowire.AppendTag(nil, fieldVersion, protowire.VarintType)
	rec = protowire.AppendVarint(rec, Version)
	if len(c.Token) != 0 {
		rec = protowire.AppendTag(rec, fieldToken, protowire.BytesType)
		rec = protowire.AppendBytes(rec, c.Token)
	}
	if c.Offset != 0 {
		rec = protowire.AppendTag(rec, fieldOffset, protowire.VarintType)
		rec = protowire.AppendVarint(rec, c.Offset)
	}
	return protowire.AppendBytes(b, rec), nil
}

// Unmarshal decodes one cursor record from the front of b, returning the
// number of bytes consumed. Unknown fields are skipped.
func (c *Cursor) Unmarshal(b []byte) (int, error) {
	*c = Cursor{}

	rec, reclen := protowire.ConsumeBytes(b)
	if reclen < 0 {
		return 0, fmt.Errorf("checkpoint: invalid record: %w", protowire.ParseError(reclen))
	}

	var version uint64
	for n := 0; n < len(rec); {
		num, typ, m := protowire.ConsumeTag(rec[n:])
		if m < 0 {
			return 0, fmt.Errorf("checkpoint: invalid tag: %w", protowire.ParseError(m))
		}
		n += m

		switch {
		case num == fieldVersion && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(rec[n:])
			if m < 0 {
				return 0, fmt.Errorf("checkpoint: invalid version: %w", protowire.ParseError(m))
			}
			version = v
			n += m
		case num == fieldToken && typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(rec[n:])
			if m < 0 {
				return 0, fmt.Errorf("checkpoint: invalid token: %w", protowire.ParseError(m))
			}
			c.Token = append([]byte(nil), v...)
			n += m
		case num == fieldOffset && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(rec[n:])
			if m < 0 {
				return 0, fmt.Errorf("checkpoint: invalid offset: %w", protowire.ParseError(m))
			}
			c.Offset = v
			n += m
		default:
			m := protowire.ConsumeFieldValue(num, typ, rec[n:])
			if m < 0 {
				return 0, fmt.Errorf("checkpoint: invalid field %d: %w", num, protowire.ParseError(m))
			}
			n += m
		}
	}

	if version == 0 {
		return 0, errors.New("checkpoint: missing version")
	}
	if version > Version {
		return 0, fmt.Errorf("%w: got %d, expect at most %d", ErrVersionMismatch, version, Version)
	}
	return reclen, nil
}

// Marshal encodes c as a single record.
func Marshal(c Cursor) ([]byte, error) {
	return c.MarshalAppend(nil)
}

// Unmarshal decodes a cursor from b, requiring that b holds exactly one
// record.
func Unmarshal(b []byte) (Cursor, error) {
	var c Cursor
	n, err := c.Unmarshal(b)
	if err != nil {
		return Cursor{}, err
	}
	if n != len(b) {
		return Cursor{}, fmt.Errorf("checkpoint: %d trailing bytes", len(b)-n)
	}
	return c, nil
}
