// Package ilp implements the subset of the ILPv4 packet format this
// connector needs: Prepare/Fulfill/Reject envelopes with OER var-octet
// encoding, plus the reserved peer.settle channel constants.
package ilp

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"
)

// PacketType is the first byte of an ILP packet envelope.
type PacketType byte

const (
	TypePrepare PacketType = 12
	TypeFulfill PacketType = 13
	TypeReject  PacketType = 14
)

// PeerSettleAddress is the reserved destination for settlement-protocol
// messages exchanged between peer settlement engines.
const PeerSettleAddress = "peer.settle"

// ZeroCondition is the all-zero execution condition used on the
// peer.settle channel, where no cryptographic fulfillment is required.
var ZeroCondition [32]byte

// ZeroFulfillment trivially fulfills ZeroCondition-free packets on the
// peer.settle channel.
var ZeroFulfillment [32]byte

// timestampFormat is the fixed 17-character ILP timestamp encoding.
const timestampFormat = "20060102150405.000"

// Packet is any of Prepare, Fulfill or Reject.
type Packet interface {
	Type() PacketType
	Marshal() []byte
}

// Prepare opens a conditional transfer.
type Prepare struct {
	Amount             uint64
	ExpiresAt          time.Time
	ExecutionCondition [32]byte
	Destination        string
	Data               []byte
}

func (p *Prepare) Type() PacketType { return TypePrepare }

// Marshal encodes the packet as a type byte followed by a var-length
// contents block.
func (p *Prepare) Marshal() []byte {
	var body bytes.Buffer
	var amount [8]byte
	binary.BigEndian.PutUint64(amount[:], p.Amount)
	body.Write(amount[:])
	ts := p.ExpiresAt.UTC().Format(timestampFormat)
	// Strip the fractional-second dot: the wire format is YYYYMMDDHHMMSSmmm.
	body.WriteString(ts[:14])
	body.WriteString(ts[15:])
	body.Write(p.ExecutionCondition[:])
	writeVarOctet(&body, []byte(p.Destination))
	writeVarOctet(&body, p.Data)
	return envelope(TypePrepare, body.Bytes())
}

// Fulfill completes a transfer.
type Fulfill struct {
	Fulfillment [32]byte
	Data        []byte
}

func (f *Fulfill) Type() PacketType { return TypeFulfill }

func (f *Fulfill) Marshal() []byte {
	var body bytes.Buffer
	body.Write(f.Fulfillment[:])
	writeVarOctet(&body, f.Data)
	return envelope(TypeFulfill, body.Bytes())
}

// Reject aborts a transfer.
type Reject struct {
	Code        string // three-character ILP error code, e.g. "F02"
	TriggeredBy string
	Message     string
	Data        []byte
}

func (r *Reject) Type() PacketType { return TypeReject }

func (r *Reject) Marshal() []byte {
	var body bytes.Buffer
	code := r.Code
	for len(code) < 3 {
		code += " "
	}
	body.WriteString(code[:3])
	writeVarOctet(&body, []byte(r.TriggeredBy))
	writeVarOctet(&body, []byte(r.Message))
	writeVarOctet(&body, r.Data)
	return envelope(TypeReject, body.Bytes())
}

// Error implements error so a Reject can propagate through call chains.
func (r *Reject) Error() string {
	return fmt.Sprintf("ilp reject %s: %s", r.Code, r.Message)
}

// Unmarshal decodes a single ILP packet.
func Unmarshal(data []byte) (Packet, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("ilp packet too short (%d bytes)", len(data))
	}
	typ := PacketType(data[0])
	body, rest, err := readVarOctet(data[1:])
	if err != nil {
		return nil, fmt.Errorf("ilp envelope: %w", err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("ilp envelope: %d trailing bytes", len(rest))
	}
	switch typ {
	case TypePrepare:
		return unmarshalPrepare(body)
	case TypeFulfill:
		return unmarshalFulfill(body)
	case TypeReject:
		return unmarshalReject(body)
	default:
		return nil, fmt.Errorf("unknown ilp packet type %d", typ)
	}
}

func unmarshalPrepare(body []byte) (*Prepare, error) {
	if len(body) < 8+17+32 {
		return nil, fmt.Errorf("prepare body too short (%d bytes)", len(body))
	}
	p := &Prepare{}
	p.Amount = binary.BigEndian.Uint64(body[:8])
	raw := string(body[8 : 8+17])
	expires, err := time.Parse(timestampFormat, raw[:14]+"."+raw[14:])
	if err != nil {
		return nil, fmt.Errorf("prepare expiry %q: %w", raw, err)
	}
	p.ExpiresAt = expires
	copy(p.ExecutionCondition[:], body[25:57])
	dest, rest, err := readVarOctet(body[57:])
	if err != nil {
		return nil, fmt.Errorf("prepare destination: %w", err)
	}
	p.Destination = string(dest)
	data, rest, err := readVarOctet(rest)
	if err != nil {
		return nil, fmt.Errorf("prepare data: %w", err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("prepare: %d trailing bytes", len(rest))
	}
	p.Data = data
	return p, nil
}

func unmarshalFulfill(body []byte) (*Fulfill, error) {
	if len(body) < 32 {
		return nil, fmt.Errorf("fulfill body too short (%d bytes)", len(body))
	}
	f := &Fulfill{}
	copy(f.Fulfillment[:], body[:32])
	data, rest, err := readVarOctet(body[32:])
	if err != nil {
		return nil, fmt.Errorf("fulfill data: %w", err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("fulfill: %d trailing bytes", len(rest))
	}
	f.Data = data
	return f, nil
}

func unmarshalReject(body []byte) (*Reject, error) {
	if len(body) < 3 {
		return nil, fmt.Errorf("reject body too short (%d bytes)", len(body))
	}
	r := &Reject{Code: string(body[:3])}
	triggeredBy, rest, err := readVarOctet(body[3:])
	if err != nil {
		return nil, fmt.Errorf("reject triggered-by: %w", err)
	}
	r.TriggeredBy = string(triggeredBy)
	message, rest, err := readVarOctet(rest)
	if err != nil {
		return nil, fmt.Errorf("reject message: %w", err)
	}
	r.Message = string(message)
	data, rest, err := readVarOctet(rest)
	if err != nil {
		return nil, fmt.Errorf("reject data: %w", err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("reject: %d trailing bytes", len(rest))
	}
	r.Data = data
	return r, nil
}

func envelope(typ PacketType, body []byte) []byte {
	var out bytes.Buffer
	out.WriteByte(byte(typ))
	writeVarOctet(&out, body)
	return out.Bytes()
}

// writeVarOctet writes an OER variable-length octet string: a one-byte
// length for payloads under 128 bytes, otherwise 0x80|n followed by an
// n-byte big-endian length.
func writeVarOctet(buf *bytes.Buffer, data []byte) {
	n := len(data)
	if n < 0x80 {
		buf.WriteByte(byte(n))
	} else {
		var lenBytes []byte
		for v := n; v > 0; v >>= 8 {
			lenBytes = append([]byte{byte(v)}, lenBytes...)
		}
		buf.WriteByte(0x80 | byte(len(lenBytes)))
		buf.Write(lenBytes)
	}
	buf.Write(data)
}

func readVarOctet(data []byte) (value, rest []byte, err error) {
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("missing length prefix")
	}
	first := data[0]
	data = data[1:]
	n := uint64(first)
	if first&0x80 != 0 {
		// Cap the length prefix at 4 bytes so n cannot overflow; no honest
		// packet within the request body limit needs more.
		numBytes := int(first & 0x7f)
		if numBytes == 0 || numBytes > 4 || len(data) < numBytes {
			return nil, nil, fmt.Errorf("invalid long-form length")
		}
		n = 0
		for _, b := range data[:numBytes] {
			n = n<<8 | uint64(b)
		}
		data = data[numBytes:]
	}
	if uint64(len(data)) < n {
		return nil, nil, fmt.Errorf("truncated octet string: want %d bytes, have %d", n, len(data))
	}
	return data[:n], data[n:], nil
}
