package avro

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/hamba/avro/v2"
)

var ErrUnsupportedPrototype = errors.New("no avro schema for prototype")

const vitalsRecordedSchema = `{
	"type": "record",
	"name": "VitalsRecorded",
	"namespace": "patient_panel",
	"fields": [
		{"name": "patient_id", "type": "string"},
		{"name": "temperature", "type": ["null", "double"], "default": null},
		{"name": "pulse", "type": ["null", "double"], "default": null},
		{"name": "recorded_at", "type": {"type": "long", "logicalType": "timestamp-millis"}},
		{"name": "trace_id", "type": "string", "default": ""},
		{"name": "span_id", "type": "string", "default": ""}
	]
}`

var schemas = map[string]avro.Schema{
	"VitalsRecorded": avro.MustParse(vitalsRecordedSchema),
}

// AvroCodec encodes the messages of one prototype with its static schema.
type AvroCodec struct {
	prototype reflect.Type
	schema    avro.Schema
}

func NewAvroCodec(prototype any) (*AvroCodec, error) {
	prototypeType := reflect.TypeOf(prototype)
	if prototypeType == nil {
		return nil, ErrUnsupportedPrototype
	}
	if prototypeType.Kind() == reflect.Pointer {
		prototypeType = prototypeType.Elem()
	}

	schema, err := schemaFor(prototypeType)
	if err != nil {
		return nil, err
	}

	return &AvroCodec{
		prototype: prototypeType,
		schema:    schema,
	}, nil
}

func schemaFor(t reflect.Type) (avro.Schema, error) {
	name := t.Name()
	switch name {
	case "VitalsRecorded", "AvroVitalsRecorded":
		name = "VitalsRecorded"
	default:
		return nil, fmt.Errorf("%s: %w", name, ErrUnsupportedPrototype)
	}

	return schemas[name], nil
}

func (c *AvroCodec) Encode(value any) ([]byte, error) {
	avroValue, err := toAvroStruct(value)
	if err != nil {
		return nil, fmt.Errorf("converting to Avro struct: %w", err)
	}

	data, err := avro.Marshal(c.schema, avroValue)
	if err != nil {
		return nil, fmt.Errorf("marshaling to Avro: %w", err)
	}

	return data, nil
}

// Decode always returns the Avro struct of the prototype, as a pointer.
func (c *AvroCodec) Decode(data []byte) (any, error) {
	instance := reflect.New(avroType(c.prototype)).Interface()

	if err := avro.Unmarshal(c.schema, data, instance); err != nil {
		return nil, fmt.Errorf("unmarshaling from Avro: %w", err)
	}

	return instance, nil
}
