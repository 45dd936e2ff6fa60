package spiderfoot

import (
	"bytes"
	"encoding/json"
	"osintscan/pkg/domain"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// DecodeResults parses the scanresults payload. The engine mixes record shapes
// freely, so each element is inspected on its own: objects are kept with their
// original bytes and anything else is skipped.
func DecodeResults(b []byte) ([]domain.RawResult, error) {
	d := jx.DecodeBytes(b)
	if d.Next() != jx.Array {
		return nil, errors.Errorf("expected results array, got %s", d.Next())
	}

	out := []domain.RawResult{}
	if err := d.Arr(func(d *jx.Decoder) error {
		if d.Next() != jx.Object {
			return d.Skip()
		}

		raw, err := d.Raw()
		if err != nil {
			return errors.Wrap(err, "read record")
		}
		r, err := decodeRecord(raw)
		if err != nil {
			return err
		}
		out = append(out, r)

		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "decode results")
	}

	return out, nil
}

func decodeRecord(raw jx.Raw) (domain.RawResult, error) {
	r := domain.RawResult{Raw: json.RawMessage(bytes.Clone(raw))}

	err := jx.DecodeBytes(raw).ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "type":
			return decodeString(d, &r.Type)
		case "module":
			return decodeString(d, &r.Module)
		case "data":
			v, err := d.Raw()
			if err != nil {
				return errors.Wrap(err, "read data")
			}
			r.Data = domain.DataString(json.RawMessage(v))

			return nil
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return domain.RawResult{}, errors.Wrap(err, "decode record")
	}

	return r, nil
}

func decodeString(d *jx.Decoder, dst *string) error {
	if d.Next() != jx.String {
		return d.Skip()
	}

	s, err := d.Str()
	if err != nil {
		return errors.Wrap(err, "read string")
	}
	*dst = s

	return nil
}
