// Package netmsg defines the gossip wire protocol: a JSON-framed stream
// of typed messages exchanged over a plain TCP connection (spec.md
// §4.6). Grounded on original_source/src/server.rs's Package/OpType
// enum, rendered as Go's idiomatic stand-in for a tagged union: a
// discriminant field plus a json.RawMessage payload, decoded with
// encoding/json.Decoder streaming (the Go analogue of serde_json's
// Deserializer::into_iter).
package netmsg

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// NodeVersion is the hardcoded protocol version sent in a Version
// message.
const NodeVersion = 1

// CentralNode is the bootstrap node every other node dials first.
const CentralNode = "127.0.0.1:2001"

// TransactionThreshold is the pooled-transaction count that triggers a
// miner to mine a new block.
const TransactionThreshold = 2

// OpType distinguishes what kind of data an Inv/GetData message carries.
type OpType string

const (
	OpBlock OpType = "block"
	OpTx    OpType = "tx"
)

// Type discriminates an Envelope's Payload.
type Type string

const (
	TypeVersion   Type = "version"
	TypeGetBlocks Type = "getblocks"
	TypeGetData   Type = "getdata"
	TypeInv       Type = "inv"
	TypeBlock     Type = "block"
	TypeTx        Type = "tx"
)

// Envelope is one message on the wire: a type discriminant plus its
// raw, not-yet-decoded JSON payload.
type Envelope struct {
	Type    Type            `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// VersionPayload announces the sender's protocol version and chain
// height, used for the initial handshake and to detect a peer with a
// longer chain.
type VersionPayload struct {
	AddrFrom   string `json:"addr_from"`
	Version    int    `json:"version"`
	BestHeight uint64 `json:"best_height"`
}

// GetBlocksPayload requests the full list of block hashes from a peer.
type GetBlocksPayload struct {
	AddrFrom string `json:"addr_from"`
}

// GetDataPayload requests a single block or transaction by id.
type GetDataPayload struct {
	AddrFrom string `json:"addr_from"`
	OpType   OpType `json:"op_type"`
	ID       []byte `json:"id"`
}

// InvPayload advertises a batch of block or transaction ids the sender
// has available.
type InvPayload struct {
	AddrFrom string   `json:"addr_from"`
	OpType   OpType   `json:"op_type"`
	Items    [][]byte `json:"items"`
}

// BlockPayload carries one serialized block.
type BlockPayload struct {
	AddrFrom string `json:"addr_from"`
	Block    []byte `json:"block"`
}

// TxPayload carries one serialized transaction.
type TxPayload struct {
	AddrFrom    string `json:"addr_from"`
	Transaction []byte `json:"transaction"`
}

// encode wraps a payload in an Envelope of the given type.
func encode(t Type, payload interface{}) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, errors.Wrapf(err, "netmsg: encode %s payload", t)
	}
	return Envelope{Type: t, Payload: data}, nil
}

// NewVersion builds a version Envelope.
func NewVersion(addrFrom string, bestHeight uint64) (Envelope, error) {
	return encode(TypeVersion, VersionPayload{AddrFrom: addrFrom, Version: NodeVersion, BestHeight: bestHeight})
}

// NewGetBlocks builds a getblocks Envelope.
func NewGetBlocks(addrFrom string) (Envelope, error) {
	return encode(TypeGetBlocks, GetBlocksPayload{AddrFrom: addrFrom})
}

// NewGetData builds a getdata Envelope.
func NewGetData(addrFrom string, opType OpType, id []byte) (Envelope, error) {
	return encode(TypeGetData, GetDataPayload{AddrFrom: addrFrom, OpType: opType, ID: id})
}

// NewInv builds an inv Envelope.
func NewInv(addrFrom string, opType OpType, items [][]byte) (Envelope, error) {
	return encode(TypeInv, InvPayload{AddrFrom: addrFrom, OpType: opType, Items: items})
}

// NewBlock builds a block Envelope.
func NewBlock(addrFrom string, blockBytes []byte) (Envelope, error) {
	return encode(TypeBlock, BlockPayload{AddrFrom: addrFrom, Block: blockBytes})
}

// NewTx builds a tx Envelope.
func NewTx(addrFrom string, txBytes []byte) (Envelope, error) {
	return encode(TypeTx, TxPayload{AddrFrom: addrFrom, Transaction: txBytes})
}

// DecodeVersion parses e's payload as a VersionPayload.
func DecodeVersion(e Envelope) (VersionPayload, error) {
	var p VersionPayload
	err := json.Unmarshal(e.Payload, &p)
	return p, errors.Wrap(err, "netmsg: decode version payload")
}

// DecodeGetBlocks parses e's payload as a GetBlocksPayload.
func DecodeGetBlocks(e Envelope) (GetBlocksPayload, error) {
	var p GetBlocksPayload
	err := json.Unmarshal(e.Payload, &p)
	return p, errors.Wrap(err, "netmsg: decode getblocks payload")
}

// DecodeGetData parses e's payload as a GetDataPayload.
func DecodeGetData(e Envelope) (GetDataPayload, error) {
	var p GetDataPayload
	err := json.Unmarshal(e.Payload, &p)
	return p, errors.Wrap(err, "netmsg: decode getdata payload")
}

// DecodeInv parses e's payload as an InvPayload.
func DecodeInv(e Envelope) (InvPayload, error) {
	var p InvPayload
	err := json.Unmarshal(e.Payload, &p)
	return p, errors.Wrap(err, "netmsg: decode inv payload")
}

// DecodeBlock parses e's payload as a BlockPayload.
func DecodeBlock(e Envelope) (BlockPayload, error) {
	var p BlockPayload
	err := json.Unmarshal(e.Payload, &p)
	return p, errors.Wrap(err, "netmsg: decode block payload")
}

// DecodeTx parses e's payload as a TxPayload.
func DecodeTx(e Envelope) (TxPayload, error) {
	var p TxPayload
	err := json.Unmarshal(e.Payload, &p)
	return p, errors.Wrap(err, "netmsg: decode tx payload")
}
