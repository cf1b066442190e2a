package soap

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

const (
	EnvelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"
	xsiNamespace      = "http://www.w3.org/2001/XMLSchema-instance"
	xsdNamespace      = "http://www.w3.org/2001/XMLSchema"
)

// Field is one call parameter. Fields are written in the order given.
type Field struct {
	Name  string
	Value string
}

// Envelope renders a SOAP 1.1 request calling action in namespace.
func Envelope(namespace, action string, fields []Field) ([]byte, error) {
	if action == "" {
		return nil, fmt.Errorf("soap: empty action")
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	envelope := xml.StartElement{
		Name: xml.Name{Local: "soap:Envelope"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmlns:xsi"}, Value: xsiNamespace},
			{Name: xml.Name{Local: "xmlns:xsd"}, Value: xsdNamespace},
			{Name: xml.Name{Local: "xmlns:soap"}, Value: EnvelopeNamespace},
		},
	}
	body := xml.StartElement{Name: xml.Name{Local: "soap:Body"}}
	call := xml.StartElement{
		Name: xml.Name{Local: action},
		Attr: []xml.Attr{{Name: xml.Name{Local: "xmlns"}, Value: namespace}},
	}

	enc := xml.NewEncoder(&buf)

	tokens := []xml.Token{envelope, body, call}
	for _, f := range fields {
		el := xml.StartElement{Name: xml.Name{Local: f.Name}}
		tokens = append(tokens, el, xml.CharData(f.Value), el.End())
	}
	tokens = append(tokens, call.End(), body.End(), envelope.End())

	for _, tok := range tokens {
		if err := enc.EncodeToken(tok); err != nil {
			return nil, fmt.Errorf("soap: encoding %s: %w", action, err)
		}
	}

	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("soap: encoding %s: %w", action, err)
	}

	return buf.Bytes(), nil
}
