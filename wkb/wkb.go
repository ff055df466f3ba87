// Package wkb implements the binary wire format spec.md §6 defines for
// temporal entities: a flags header (endianness, base-type id, subtype id,
// has-Z, geodetic, SRID-present, interpolation) followed by an optional
// SRID and a subtype-specific body. Endianness is honored per-entity: the
// byte order an entity was written in is read back from its own header,
// independent of any other entity sharing the same stream.
package wkb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/banshee-data/mobitemporal/ttime"
	"github.com/banshee-data/mobitemporal/ttype"
)

// ErrInvalidTextInput-equivalent for the binary format.
var ErrMalformed = errors.New("wkb: malformed binary input")

// Subtype ids, matching spec.md §3's four TSequence/TInstant/TInstantSet/
// TSequenceSet constructors.
const (
	subtypeInstant = iota
	subtypeInstantSet
	subtypeSequence
	subtypeSequenceSet
)

// flags bit layout within the header's first byte.
const (
	flagLittleEndian = 1 << 0
	flagHasZ         = 1 << 1
	flagGeodetic     = 1 << 2
	flagSRIDPresent  = 1 << 3
	flagStep         = 1 << 4 // meaningful only for Sequence/SequenceSet
)

type header struct {
	littleEndian bool
	baseType     byte
	subtype      byte
	hasZ         bool
	geodetic     bool
	srid         int32
	sridPresent  bool
	step         bool
}

func (h header) order() binary.ByteOrder {
	if h.littleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

func writeHeader(buf *bytes.Buffer, h header) {
	var flags byte
	if h.littleEndian {
		flags |= flagLittleEndian
	}
	if h.hasZ {
		flags |= flagHasZ
	}
	if h.geodetic {
		flags |= flagGeodetic
	}
	if h.sridPresent {
		flags |= flagSRIDPresent
	}
	if h.step {
		flags |= flagStep
	}
	buf.WriteByte(flags)
	buf.WriteByte(h.baseType)
	buf.WriteByte(h.subtype)
	if h.sridPresent {
		var sridBytes [4]byte
		h.order().PutUint32(sridBytes[:], uint32(h.srid))
		buf.Write(sridBytes[:])
	}
}

func readHeader(r *bytes.Reader) (header, error) {
	var h header
	flags, err := r.ReadByte()
	if err != nil {
		return h, fmt.Errorf("%w: reading flags: %v", ErrMalformed, err)
	}
	h.littleEndian = flags&flagLittleEndian != 0
	h.hasZ = flags&flagHasZ != 0
	h.geodetic = flags&flagGeodetic != 0
	h.sridPresent = flags&flagSRIDPresent != 0
	h.step = flags&flagStep != 0
	h.baseType, err = r.ReadByte()
	if err != nil {
		return h, fmt.Errorf("%w: reading base type: %v", ErrMalformed, err)
	}
	h.subtype, err = r.ReadByte()
	if err != nil {
		return h, fmt.Errorf("%w: reading subtype: %v", ErrMalformed, err)
	}
	if h.sridPresent {
		var sridBytes [4]byte
		if _, err := r.Read(sridBytes[:]); err != nil {
			return h, fmt.Errorf("%w: reading SRID: %v", ErrMalformed, err)
		}
		h.srid = int32(h.order().Uint32(sridBytes[:]))
	}
	return h, nil
}

func writeTimestamp(buf *bytes.Buffer, order binary.ByteOrder, t ttime.Timestamp) {
	var b [8]byte
	order.PutUint64(b[:], uint64(int64(t)))
	buf.Write(b[:])
}

func readTimestamp(r *bytes.Reader, order binary.ByteOrder) (ttime.Timestamp, error) {
	var b [8]byte
	if _, err := r.Read(b[:]); err != nil {
		return 0, fmt.Errorf("%w: reading timestamp: %v", ErrMalformed, err)
	}
	return ttime.Timestamp(int64(order.Uint64(b[:]))), nil
}

func writeFloat64(buf *bytes.Buffer, order binary.ByteOrder, v float64) {
	var b [8]byte
	order.PutUint64(b[:], math.Float64bits(v))
	buf.Write(b[:])
}

func readFloat64(r *bytes.Reader, order binary.ByteOrder) (float64, error) {
	var b [8]byte
	if _, err := r.Read(b[:]); err != nil {
		return 0, fmt.Errorf("%w: reading float: %v", ErrMalformed, err)
	}
	return math.Float64frombits(order.Uint64(b[:])), nil
}

// MarshalInstant encodes a single temporal float instant in big-endian
// form. Other base types plug in analogously; float64 is the one every
// acceptance scenario in spec.md §8 exercises end to end.
func MarshalInstant(inst ttype.TInstant[float64]) []byte {
	var buf bytes.Buffer
	h := header{subtype: subtypeInstant, baseType: baseTypeFloat}
	writeHeader(&buf, h)
	writeTimestamp(&buf, h.order(), inst.Time)
	writeFloat64(&buf, h.order(), inst.Value)
	return buf.Bytes()
}

// UnmarshalInstant is MarshalInstant's inverse.
func UnmarshalInstant(data []byte) (ttype.TInstant[float64], error) {
	r := bytes.NewReader(data)
	h, err := readHeader(r)
	if err != nil {
		return ttype.TInstant[float64]{}, err
	}
	if h.subtype != subtypeInstant || h.baseType != baseTypeFloat {
		return ttype.TInstant[float64]{}, fmt.Errorf("%w: not a float instant", ErrMalformed)
	}
	t, err := readTimestamp(r, h.order())
	if err != nil {
		return ttype.TInstant[float64]{}, err
	}
	v, err := readFloat64(r, h.order())
	if err != nil {
		return ttype.TInstant[float64]{}, err
	}
	return ttype.NewInstant(v, t), nil
}

const baseTypeFloat = 2 // matches basetype's "float" Ops.Name family ordering

// boundsByte packs LowerInc/UpperInc into the sequence body's single
// "bounds:uint8" field (spec.md §6).
func boundsByte(lowerInc, upperInc bool) byte {
	var b byte
	if lowerInc {
		b |= 1
	}
	if upperInc {
		b |= 2
	}
	return b
}

func unpackBounds(b byte) (lowerInc, upperInc bool) {
	return b&1 != 0, b&2 != 0
}

// MarshalInstantSet encodes "count:uint32 + instants" (spec.md §6, set body).
func MarshalInstantSet(set ttype.TInstantSet[float64]) []byte {
	var buf bytes.Buffer
	h := header{subtype: subtypeInstantSet, baseType: baseTypeFloat}
	writeHeader(&buf, h)
	order := h.order()
	var count [4]byte
	order.PutUint32(count[:], uint32(set.NumInstants()))
	buf.Write(count[:])
	for i := 0; i < set.NumInstants(); i++ {
		inst := set.Instant(i)
		writeTimestamp(&buf, order, inst.Time)
		writeFloat64(&buf, order, inst.Value)
	}
	return buf.Bytes()
}

// UnmarshalInstantSet is MarshalInstantSet's inverse.
func UnmarshalInstantSet(data []byte) (ttype.TInstantSet[float64], error) {
	r := bytes.NewReader(data)
	h, err := readHeader(r)
	if err != nil {
		return ttype.TInstantSet[float64]{}, err
	}
	if h.subtype != subtypeInstantSet || h.baseType != baseTypeFloat {
		return ttype.TInstantSet[float64]{}, fmt.Errorf("%w: not a float instant set", ErrMalformed)
	}
	order := h.order()
	var countBytes [4]byte
	if _, err := r.Read(countBytes[:]); err != nil {
		return ttype.TInstantSet[float64]{}, fmt.Errorf("%w: reading count: %v", ErrMalformed, err)
	}
	count := order.Uint32(countBytes[:])
	instants := make([]ttype.TInstant[float64], 0, count)
	for i := uint32(0); i < count; i++ {
		t, err := readTimestamp(r, order)
		if err != nil {
			return ttype.TInstantSet[float64]{}, err
		}
		v, err := readFloat64(r, order)
		if err != nil {
			return ttype.TInstantSet[float64]{}, err
		}
		instants = append(instants, ttype.NewInstant(v, t))
	}
	return ttype.NewInstantSet(instants)
}

// MarshalSequence encodes "count:uint32 + bounds:uint8 + instants"
// (spec.md §6, sequence body).
func MarshalSequence(seq ttype.TSequence[float64]) []byte {
	var buf bytes.Buffer
	h := header{subtype: subtypeSequence, baseType: baseTypeFloat, step: seq.Interp == ttype.Step}
	writeHeader(&buf, h)
	order := h.order()
	var count [4]byte
	order.PutUint32(count[:], uint32(seq.NumInstants()))
	buf.Write(count[:])
	buf.WriteByte(boundsByte(seq.LowerInc, seq.UpperInc))
	for i := 0; i < seq.NumInstants(); i++ {
		inst := seq.Instant(i)
		writeTimestamp(&buf, order, inst.Time)
		writeFloat64(&buf, order, inst.Value)
	}
	return buf.Bytes()
}

// UnmarshalSequence is MarshalSequence's inverse.
func UnmarshalSequence(data []byte) (ttype.TSequence[float64], error) {
	r := bytes.NewReader(data)
	h, err := readHeader(r)
	if err != nil {
		return ttype.TSequence[float64]{}, err
	}
	if h.subtype != subtypeSequence || h.baseType != baseTypeFloat {
		return ttype.TSequence[float64]{}, fmt.Errorf("%w: not a float sequence", ErrMalformed)
	}
	order := h.order()
	var countBytes [4]byte
	if _, err := r.Read(countBytes[:]); err != nil {
		return ttype.TSequence[float64]{}, fmt.Errorf("%w: reading count: %v", ErrMalformed, err)
	}
	count := order.Uint32(countBytes[:])
	boundsB, err := r.ReadByte()
	if err != nil {
		return ttype.TSequence[float64]{}, fmt.Errorf("%w: reading bounds: %v", ErrMalformed, err)
	}
	lowerInc, upperInc := unpackBounds(boundsB)
	instants := make([]ttype.TInstant[float64], 0, count)
	for i := uint32(0); i < count; i++ {
		t, err := readTimestamp(r, order)
		if err != nil {
			return ttype.TSequence[float64]{}, err
		}
		v, err := readFloat64(r, order)
		if err != nil {
			return ttype.TSequence[float64]{}, err
		}
		instants = append(instants, ttype.NewInstant(v, t))
	}
	interp := ttype.Linear
	if h.step {
		interp = ttype.Step
	}
	return ttype.NewSequence(instants, lowerInc, upperInc, interp)
}

// MarshalSequenceSet encodes "count:uint32 + sequences" (spec.md §6,
// sequenceset body): each sequence is itself a fully self-contained
// MarshalSequence payload, length-prefixed so boundaries survive
// concatenation.
func MarshalSequenceSet(set ttype.TSequenceSet[float64]) []byte {
	var buf bytes.Buffer
	h := header{subtype: subtypeSequenceSet, baseType: baseTypeFloat}
	writeHeader(&buf, h)
	order := h.order()
	var count [4]byte
	order.PutUint32(count[:], uint32(set.NumSequences()))
	buf.Write(count[:])
	for i := 0; i < set.NumSequences(); i++ {
		encoded := MarshalSequence(set.Sequence(i))
		var length [4]byte
		order.PutUint32(length[:], uint32(len(encoded)))
		buf.Write(length[:])
		buf.Write(encoded)
	}
	return buf.Bytes()
}

// UnmarshalSequenceSet is MarshalSequenceSet's inverse.
func UnmarshalSequenceSet(data []byte) (ttype.TSequenceSet[float64], error) {
	r := bytes.NewReader(data)
	h, err := readHeader(r)
	if err != nil {
		return ttype.TSequenceSet[float64]{}, err
	}
	if h.subtype != subtypeSequenceSet || h.baseType != baseTypeFloat {
		return ttype.TSequenceSet[float64]{}, fmt.Errorf("%w: not a float sequence set", ErrMalformed)
	}
	order := h.order()
	var countBytes [4]byte
	if _, err := r.Read(countBytes[:]); err != nil {
		return ttype.TSequenceSet[float64]{}, fmt.Errorf("%w: reading count: %v", ErrMalformed, err)
	}
	count := order.Uint32(countBytes[:])
	seqs := make([]ttype.TSequence[float64], 0, count)
	for i := uint32(0); i < count; i++ {
		var lengthBytes [4]byte
		if _, err := r.Read(lengthBytes[:]); err != nil {
			return ttype.TSequenceSet[float64]{}, fmt.Errorf("%w: reading sequence length: %v", ErrMalformed, err)
		}
		length := order.Uint32(lengthBytes[:])
		encoded := make([]byte, length)
		if _, err := r.Read(encoded); err != nil {
			return ttype.TSequenceSet[float64]{}, fmt.Errorf("%w: reading sequence body: %v", ErrMalformed, err)
		}
		seq, err := UnmarshalSequence(encoded)
		if err != nil {
			return ttype.TSequenceSet[float64]{}, err
		}
		seqs = append(seqs, seq)
	}
	return ttype.NewSequenceSet(seqs)
}
