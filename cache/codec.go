package cache

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	CodecMsgpack = "msgpack"
	CodecJSON    = "json"
)

// Codec serializes cached values.
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

var (
	// MsgpackCodec is the default codec, compact and fast for struct payloads.
	MsgpackCodec Codec = msgpackCodec{}
	// JSONCodec keeps payloads human readable, useful with a shared redis store.
	JSONCodec Codec = jsonCodec{}
)

// CodecByName resolves a codec from its configuration name.
func CodecByName(name string) (Codec, error) {
	switch name {
	case "", CodecMsgpack:
		return MsgpackCodec, nil
	case CodecJSON:
		return JSONCodec, nil
	default:
		return nil, fmt.Errorf("cache: unknown codec %q", name)
	}
}

type msgpackCodec struct{}

func (msgpackCodec) Name() string { return CodecMsgpack }

func (msgpackCodec) Marshal(v any) ([]byte, error) { return msgpack.Marshal(v) }

func (msgpackCodec) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }

type jsonCodec struct{}

func (jsonCodec) Name() string { return CodecJSON }

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
