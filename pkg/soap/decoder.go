package soap

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrEmptyDocument = errors.New("soap: empty document")

// Decoder turns a SOAP reply into a Map. Element names registered as list
// elements always decode to a sequence, even when the reply holds one of them.
type Decoder struct {
	lists map[string]struct{}
}

func NewDecoder(listElements ...string) *Decoder {
	lists := make(map[string]struct{}, len(listElements))
	for _, name := range listElements {
		lists[name] = struct{}{}
	}

	return &Decoder{lists: lists}
}

// Decode returns the children of soap:Body. A document without an envelope
// decodes to a Map holding its root element.
func (d *Decoder) Decode(r io.Reader) (Map, error) {
	dec := xml.NewDecoder(r)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		if err != nil {
			return nil, fmt.Errorf("soap: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "Envelope":
			continue
		case "Header":
			if err := dec.Skip(); err != nil {
				return nil, fmt.Errorf("soap: %w", err)
			}
		case "Body":
			v, err := d.element(dec)
			if err != nil {
				return nil, fmt.Errorf("soap: %w", err)
			}
			if m := asMap(v); m != nil {
				return m, nil
			}
			return Map{}, nil
		default:
			v, err := d.element(dec)
			if err != nil {
				return nil, fmt.Errorf("soap: %w", err)
			}
			return Map{start.Name.Local: v}, nil
		}
	}
}

func (d *Decoder) element(dec *xml.Decoder) (any, error) {
	children := Map{}
	nested := false

	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			nested = true
			v, err := d.element(dec)
			if err != nil {
				return nil, err
			}
			d.add(children, t.Name.Local, v)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if nested {
				return children, nil
			}
			return strings.TrimSpace(text.String()), nil
		}
	}
}

func (d *Decoder) add(m Map, name string, v any) {
	existing, seen := m[name]

	if _, list := d.lists[name]; list {
		seq, _ := existing.([]any)
		m[name] = append(seq, v)
		return
	}

	if !seen {
		m[name] = v
		return
	}

	if seq, ok := existing.([]any); ok {
		m[name] = append(seq, v)
		return
	}

	m[name] = []any{existing, v}
}
