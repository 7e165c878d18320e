package errors

import (
	"errors"
	"fmt"
	"net/textproto"
)

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	SMTPCode     int    `json:"smtp_code,omitempty"`
	SMTPResponse string `json:"smtp_response,omitempty"`
}

// Dump flattens an error chain for structured logging. SMTP protocol errors
// surface their reply code and text for operational triage.
func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		d.SMTPCode = protoErr.Code
		d.SMTPResponse = protoErr.Msg
	}

	return d
}
