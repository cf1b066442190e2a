package epay

import (
	"maps"
	"strings"

	"github.com/Behyna/epay/pkg/soap"
)

// SuccessPolicy decides whether a decoded reply is a success. Actions differ:
// SOAP actions report <action>Result, the redirect flow reports an accept flag.
type SuccessPolicy func(raw soap.Map) bool

func ResultFlag(action string) SuccessPolicy {
	return func(raw soap.Map) bool {
		return raw.Map(action+"Response").Bool(action + "Result")
	}
}

func AcceptFlag(raw soap.Map) bool {
	return raw.Bool("accept")
}

func NoErrorField(raw soap.Map) bool {
	return !raw.Has("error")
}

var errorCodeFields = []string{"pbsresponse", "pbsResponse", "epayresponse", "error"}

var errorMessageFields = []string{"errortext", "epayresponsestring", "pbsresponsestring"}

// Response wraps one decoded gateway reply and is not modified after construction.
type Response struct {
	action  string
	success bool
	raw     soap.Map
	data    soap.Map
	code    string
	message string
}

func NewResponse(action string, raw soap.Map, policy SuccessPolicy) Response {
	if raw == nil {
		raw = soap.Map{}
	}

	data := raw.Map(action + "Response")
	if data == nil {
		data = raw
	}

	r := Response{action: action, raw: raw, data: data}
	r.success = policy != nil && policy(raw)
	if r.success {
		return r
	}

	r.code = firstErrorValue(data, errorCodeFields)
	r.message = firstErrorValue(data, errorMessageFields)

	return r
}

// "-1" is how SOAP replies say "no error" in a code field.
func firstErrorValue(m soap.Map, fields []string) string {
	for _, f := range fields {
		v := strings.TrimSpace(m.String(f))
		if v != "" && v != "-1" {
			return v
		}
	}

	return ""
}

func (r Response) Action() string {
	return r.action
}

func (r Response) Success() bool {
	return r.success
}

// Data and Raw return shallow copies; nested maps are shared with the
// Response and must not be modified.
func (r Response) Data() soap.Map {
	return maps.Clone(r.data)
}

func (r Response) Raw() soap.Map {
	return maps.Clone(r.raw)
}

func (r Response) ErrorCode() string {
	return r.code
}

func (r Response) ErrorMessage() string {
	return r.message
}
