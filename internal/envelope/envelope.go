// Package envelope holds the uniform response shape returned by every core
// operation together with the error kinds that map onto it.
package envelope

// TypeSync marks envelopes pushed to live sessions after a fan-out.
const TypeSync = "Sync"

// Envelope is the body of every core response and of every live delivery.
type Envelope struct {
	Status     int                 `json:"status"`
	Message    string              `json:"message"`
	Errors     map[string][]string `json:"errors"`
	Data       any                 `json:"data"`
	RequestID  string              `json:"request_id"`
	PagingData any                 `json:"paging_data,omitempty"`
	Type       string              `json:"type,omitempty"`
}

// Success builds a status 1 envelope.
func Success(message string, data any, requestID string) Envelope {
	if data == nil {
		data = map[string]any{}
	}
	return Envelope{
		Status:    1,
		Message:   message,
		Errors:    map[string][]string{},
		Data:      data,
		RequestID: requestID,
	}
}

// WithPaging attaches top-level paging metadata.
func (e Envelope) WithPaging(paging any) Envelope {
	e.PagingData = paging
	return e
}

// Sync builds the envelope pushed to a recipient's live session.
func Sync(message string, data map[string]any) Envelope {
	env := Success(message, data, "")
	env.Type = TypeSync
	return env
}

// Failure builds a status 0 envelope from err. Without field errors, errors
// carries the message followed by the raw cause when there is one.
func Failure(err error, requestID string) Envelope {
	e := asError(err)
	message := "error"
	if e.Kind == Validation {
		message = "Errors"
	}
	fields := e.Fields
	if len(fields) == 0 {
		msgs := []string{e.Message}
		if e.Err != nil {
			msgs = append(msgs, e.Err.Error())
		}
		fields = map[string][]string{"error": msgs}
	}
	return Envelope{
		Status:    0,
		Message:   message,
		Errors:    fields,
		Data:      map[string]any{},
		RequestID: requestID,
	}
}

// From returns Failure(err) when err is not nil, otherwise Success.
func From(message string, data any, requestID string, err error) Envelope {
	if err != nil {
		return Failure(err, requestID)
	}
	return Success(message, data, requestID)
}
