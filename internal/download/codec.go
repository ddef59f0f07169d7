package download

import (
	"fmt"

	"github.com/roach88/occfilter/internal/predicate"
	"github.com/roach88/occfilter/internal/tagged"
	"github.com/roach88/occfilter/internal/validate"
)

const (
	fieldPredicate             = "predicate"
	fieldCreator               = "creator"
	fieldNotificationAddresses = "notificationAddresses"
	fieldSendNotification      = "sendNotification"
	fieldFormat                = "format"
)

// Snake case spellings written by older clients.
var legacyFields = map[string]string{
	fieldNotificationAddresses: "notification_address",
	fieldSendNotification:      "send_notification",
}

// Encode maps r to its tagged representation.
func Encode(r *Request) (tagged.Object, error) {
	if r == nil {
		return nil, fmt.Errorf("encode: nil request")
	}
	obj := tagged.Object{
		fieldCreator:          tagged.String(r.creator),
		fieldSendNotification: tagged.Bool(r.sendNotification),
		fieldFormat:           tagged.String(r.format),
	}
	if r.predicate != nil {
		p, err := predicate.Encode(r.predicate)
		if err != nil {
			return nil, err
		}
		obj[fieldPredicate] = p
	}
	if len(r.notificationAddresses) > 0 {
		addrs := make(tagged.Array, len(r.notificationAddresses))
		for i, a := range r.notificationAddresses {
			addrs[i] = tagged.String(a)
		}
		obj[fieldNotificationAddresses] = addrs
	}
	return obj, nil
}

// Marshal encodes r as canonical JSON.
func Marshal(r *Request) ([]byte, error) {
	obj, err := Encode(r)
	if err != nil {
		return nil, err
	}
	return tagged.MarshalCanonical(obj)
}

// Unmarshal parses JSON and decodes it.
func Unmarshal(data []byte, opts ...predicate.DecodeOption) (*Request, error) {
	v, err := tagged.Unmarshal(data)
	if err != nil {
		return nil, &validate.Error{Code: validate.ErrCodeMalformedPredicate, Message: "invalid JSON", Err: err}
	}
	return Decode(v, opts...)
}

// Decode rebuilds a request. The predicate is decoded with opts.
func Decode(v tagged.Value, opts ...predicate.DecodeOption) (*Request, error) {
	obj, ok := v.(tagged.Object)
	if !ok {
		return nil, malformed("download request must be an object, got %s", tagged.TypeName(v))
	}

	var p predicate.Predicate
	if raw, ok := obj.Get(fieldPredicate); ok {
		var err error
		if p, err = predicate.Decode(raw, opts...); err != nil {
			return nil, err
		}
	}

	creator, err := stringField(obj, fieldCreator)
	if err != nil {
		return nil, err
	}
	format, err := stringField(obj, fieldFormat)
	if err != nil {
		return nil, err
	}
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}

	var addresses []string
	if raw, ok := field(obj, fieldNotificationAddresses); ok {
		arr, ok := raw.(tagged.Array)
		if !ok {
			return nil, malformed("%q must be an array, got %s", fieldNotificationAddresses, tagged.TypeName(raw))
		}
		for i, item := range arr {
			s, ok := item.(tagged.String)
			if !ok {
				return nil, malformed("%s[%d] must be a string", fieldNotificationAddresses, i)
			}
			addresses = append(addresses, string(s))
		}
	}

	send := false
	if raw, ok := field(obj, fieldSendNotification); ok {
		b, ok := raw.(tagged.Bool)
		if !ok {
			return nil, malformed("%q must be a boolean, got %s", fieldSendNotification, tagged.TypeName(raw))
		}
		send = bool(b)
	}

	return NewRequest(p, creator, addresses, send, f)
}

func field(obj tagged.Object, name string) (tagged.Value, bool) {
	if v, ok := obj.Get(name); ok {
		return v, true
	}
	if legacy, ok := legacyFields[name]; ok {
		return obj.Get(legacy)
	}
	return nil, false
}

func stringField(obj tagged.Object, name string) (string, error) {
	raw, ok := field(obj, name)
	if !ok {
		return "", nil
	}
	s, ok := raw.(tagged.String)
	if !ok {
		return "", malformed("%q must be a string, got %s", name, tagged.TypeName(raw))
	}
	return string(s), nil
}

func malformed(format string, args ...any) *validate.Error {
	return &validate.Error{Code: validate.ErrCodeMalformedPredicate, Message: fmt.Sprintf(format, args...)}
}
