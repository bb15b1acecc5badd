package core

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord is returned for payloads that are not a valid record document.
var ErrMalformedRecord = errors.New("malformed record")

type docTypeProbe struct {
	DocType string `json:"docType"`
}

// Decode decodes a stored payload into a Commodity or a Trader.
// An empty payload is absent (present == false) and is not parsed.
// A document without docType is read as a Commodity.
func Decode(payload []byte) (record Record, present bool, err error) {
	if len(payload) == 0 {
		return nil, false, nil
	}

	docType, err := DocTypeOf(payload)
	if err != nil {
		return nil, false, err
	}

	switch docType {
	case DocTypeCommodity, "":
		commodity, err := DecodeCommodity(payload)
		if err != nil {
			return nil, false, err
		}

		return commodity, true, nil

	case DocTypeTrader:
		trader, err := DecodeTrader(payload)
		if err != nil {
			return nil, false, err
		}

		return trader, true, nil

	default:
		return nil, false, errors.Join(ErrMalformedRecord, fmt.Errorf("unknown docType %q", docType))
	}
}

// DecodeCommodity decodes a commodity document. A missing docType is accepted, any other kind is not.
func DecodeCommodity(payload []byte) (Commodity, error) {
	var doc commodityDocument
	if err := unmarshalObject(payload, &doc); err != nil {
		return Commodity{}, err
	}

	if doc.DocType != "" && doc.DocType != DocTypeCommodity {
		return Commodity{}, wrongKind(DocTypeCommodity, doc.DocType)
	}

	return Commodity{
		Description:  doc.Description,
		MainExchange: doc.MainExchange,
		Quantity:     doc.Quantity,
		Owner:        doc.Owner,
	}, nil
}

// DecodeTrader decodes a trader document. A missing docType is accepted, any other kind is not.
func DecodeTrader(payload []byte) (Trader, error) {
	var doc traderDocument
	if err := unmarshalObject(payload, &doc); err != nil {
		return Trader{}, err
	}

	if doc.DocType != "" && doc.DocType != DocTypeTrader {
		return Trader{}, wrongKind(DocTypeTrader, doc.DocType)
	}

	return Trader{FirstName: doc.FirstName, LastName: doc.LastName}, nil
}

// DocTypeOf returns the discriminant of a payload, "" if it has none.
func DocTypeOf(payload []byte) (string, error) {
	var probe docTypeProbe
	if err := unmarshalObject(payload, &probe); err != nil {
		return "", err
	}

	return probe.DocType, nil
}

// Encode returns the canonical document of a record, discriminant included.
func Encode(record Record) ([]byte, error) {
	if record == nil {
		return nil, errors.Join(ErrMalformedRecord, errors.New("nil record"))
	}

	return json.Marshal(record)
}

// unmarshalObject only accepts a JSON object.
func unmarshalObject(payload []byte, v any) error {
	if !isObject(payload) {
		return errors.Join(ErrMalformedRecord, errors.New("payload is not a JSON object"))
	}

	if err := json.Unmarshal(payload, v); err != nil {
		return errors.Join(ErrMalformedRecord, err)
	}

	return nil
}

func isObject(payload []byte) bool {
	for _, b := range payload {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		default:
			return b == '{'
		}
	}

	return false
}

func wrongKind(want, got string) error {
	return errors.Join(ErrMalformedRecord, fmt.Errorf("docType %q is not %q", got, want))
}
