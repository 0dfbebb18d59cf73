package file

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/chris/account-ledger/pkg/storage"
	"google.golang.org/protobuf/encoding/protowire"
)

// Layout: magic, protowire-encoded snapshot message, big-endian CRC-32 (IEEE) of everything before it.
var magic = []byte("CTA\x00")

const checksumLen = 4

// snapshot message
const (
	fieldVersion   protowire.Number = 1
	fieldAccountID protowire.Number = 2
	fieldOwner     protowire.Number = 3
	fieldMovement  protowire.Number = 4
)

// owner message
const (
	fieldOwnerName       protowire.Number = 1
	fieldOwnerNationalID protowire.Number = 2
	fieldOwnerAge        protowire.Number = 3
)

// movement message
const (
	fieldMovementID        protowire.Number = 1
	fieldMovementKind      protowire.Number = 2
	fieldMovementAmount    protowire.Number = 3
	fieldMovementTimestamp protowire.Number = 4
)

var errMissingAmount = errors.New("movement has no amount")

// Encode serializes snap into the state-file format.
func Encode(snap storage.Snapshot) []byte {
	b := append([]byte(nil), magic...)
	b = protowire.AppendTag(b, fieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(snap.Version))
	b = protowire.AppendTag(b, fieldAccountID, protowire.BytesType)
	b = protowire.AppendString(b, snap.AccountID)
	b = protowire.AppendTag(b, fieldOwner, protowire.BytesType)
	b = protowire.AppendBytes(b, encodeOwner(snap.Owner))
	for _, m := range snap.Movements {
		b = protowire.AppendTag(b, fieldMovement, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeMovement(m))
	}
	return appendChecksum(b)
}

func appendChecksum(b []byte) []byte {
	return binary.BigEndian.AppendUint32(b, crc32.ChecksumIEEE(b))
}

func encodeOwner(o storage.OwnerRecord) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldOwnerName, protowire.BytesType)
	b = protowire.AppendString(b, o.Name)
	b = protowire.AppendTag(b, fieldOwnerNationalID, protowire.BytesType)
	b = protowire.AppendString(b, o.NationalID)
	b = protowire.AppendTag(b, fieldOwnerAge, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(o.Age)))
	return b
}

func encodeMovement(m storage.MovementRecord) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldMovementID, protowire.BytesType)
	b = protowire.AppendString(b, m.ID)
	b = protowire.AppendTag(b, fieldMovementKind, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Kind))
	b = protowire.AppendTag(b, fieldMovementAmount, protowire.BytesType)
	b = protowire.AppendString(b, m.Amount)
	b = protowire.AppendTag(b, fieldMovementTimestamp, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(m.Timestamp))
	return b
}

// Decode parses data produced by Encode. Every failure wraps storage.ErrCorrupt.
func Decode(data []byte) (storage.Snapshot, error) {
	snap, err := decode(data)
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("%w: %v", storage.ErrCorrupt, err)
	}
	return snap, nil
}

func decode(data []byte) (storage.Snapshot, error) {
	var snap storage.Snapshot
	if len(data) < len(magic)+checksumLen || !bytes.HasPrefix(data, magic) {
		return snap, errors.New("not an account state file")
	}
	body, sum := data[:len(data)-checksumLen], data[len(data)-checksumLen:]
	if crc32.ChecksumIEEE(body) != binary.BigEndian.Uint32(sum) {
		return snap, errors.New("checksum mismatch")
	}

	b := body[len(magic):]
	seenVersion := false
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return snap, protowire.ParseError(n)
		}
		b = b[n:]

		switch {
		case num == fieldVersion && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return snap, protowire.ParseError(n)
			}
			if v != storage.SnapshotVersion {
				return snap, fmt.Errorf("unsupported format version %d", v)
			}
			snap.Version = int(v)
			seenVersion = true
			b = b[n:]
		case num == fieldAccountID && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return snap, protowire.ParseError(n)
			}
			snap.AccountID = v
			b = b[n:]
		case num == fieldOwner && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return snap, protowire.ParseError(n)
			}
			owner, err := decodeOwner(v)
			if err != nil {
				return snap, fmt.Errorf("owner: %w", err)
			}
			snap.Owner = owner
			b = b[n:]
		case num == fieldMovement && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return snap, protowire.ParseError(n)
			}
			m, err := decodeMovement(v)
			if err != nil {
				return snap, fmt.Errorf("movement %d: %w", len(snap.Movements), err)
			}
			snap.Movements = append(snap.Movements, m)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return snap, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	if !seenVersion {
		return snap, errors.New("missing format version")
	}
	return snap, nil
}

func decodeOwner(b []byte) (storage.OwnerRecord, error) {
	var o storage.OwnerRecord
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return o, protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case num == fieldOwnerName && typ == protowire.BytesType:
			o.Name, n = protowire.ConsumeString(b)
		case num == fieldOwnerNationalID && typ == protowire.BytesType:
			o.NationalID, n = protowire.ConsumeString(b)
		case num == fieldOwnerAge && typ == protowire.VarintType:
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			o.Age = int(protowire.DecodeZigZag(v))
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return o, protowire.ParseError(n)
		}
		b = b[n:]
	}
	return o, nil
}

func decodeMovement(b []byte) (storage.MovementRecord, error) {
	var m storage.MovementRecord
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return m, protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case num == fieldMovementID && typ == protowire.BytesType:
			m.ID, n = protowire.ConsumeString(b)
		case num == fieldMovementKind && typ == protowire.VarintType:
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			m.Kind = int(v)
		case num == fieldMovementAmount && typ == protowire.BytesType:
			m.Amount, n = protowire.ConsumeString(b)
		case num == fieldMovementTimestamp && typ == protowire.VarintType:
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			m.Timestamp = protowire.DecodeZigZag(v)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return m, protowire.ParseError(n)
		}
		b = b[n:]
	}
	if m.Amount == "" {
		return m, errMissingAmount
	}
	return m, nil
}
