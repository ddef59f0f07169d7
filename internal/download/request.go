// Package download models a predicate download request: a filter plus who
// asked for it, who to notify and the output format.
package download

import (
	"net/mail"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/roach88/occfilter/internal/predicate"
	"github.com/roach88/occfilter/internal/tagged"
	"github.com/roach88/occfilter/internal/validate"
)

// HashDomain separates request keys from predicate hashes.
const HashDomain = "occfilter/download/v1"

// Request is an immutable download request.
type Request struct {
	predicate             predicate.Predicate
	creator               string
	notificationAddresses []string
	sendNotification      bool
	format                Format
}

// NewRequest validates and normalises a request. A nil predicate selects
// every record. Notification addresses are trimmed, deduplicated and sorted;
// each must be a valid email address.
func NewRequest(p predicate.Predicate, creator string, addresses []string, sendNotification bool, format Format) (*Request, error) {
	creator = strings.TrimSpace(creator)
	if creator == "" {
		return nil, validate.Errorf(validate.ErrCodeMalformedValue, "creator", "", "download request needs a creator")
	}
	if !utf8.ValidString(creator) {
		return nil, validate.Errorf(validate.ErrCodeMalformedValue, "creator", creator, "creator is not valid UTF-8")
	}
	if p != nil {
		if _, err := predicate.Encode(p); err != nil {
			return nil, err
		}
	}
	if format == "" {
		format = DefaultFormat
	}
	if _, ok := extensions[format]; !ok {
		return nil, validate.Errorf(validate.ErrCodeMalformedValue, "format", string(format), "unknown download format")
	}

	var addrs []string
	for _, a := range addresses {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if !utf8.ValidString(a) {
			return nil, validate.Errorf(validate.ErrCodeMalformedValue, "notificationAddresses", a, "address is not valid UTF-8")
		}
		if _, err := mail.ParseAddress(a); err != nil {
			return nil, &validate.Error{
				Code:    validate.ErrCodeMalformedValue,
				Param:   "notificationAddresses",
				Value:   a,
				Message: "not an email address",
				Err:     err,
			}
		}
		addrs = append(addrs, a)
	}
	slices.Sort(addrs)
	addrs = slices.Compact(addrs)

	return &Request{
		predicate:             p,
		creator:               creator,
		notificationAddresses: addrs,
		sendNotification:      sendNotification,
		format:                format,
	}, nil
}

func (r *Request) Predicate() predicate.Predicate  { return r.predicate }
func (r *Request) Creator() string                 { return r.creator }
func (r *Request) NotificationAddresses() []string { return slices.Clone(r.notificationAddresses) }
func (r *Request) SendNotification() bool          { return r.sendNotification }
func (r *Request) Format() Format                  { return r.format }

// NotificationAddressesString joins the addresses with commas.
func (r *Request) NotificationAddressesString() string {
	return strings.Join(r.notificationAddresses, ",")
}

// Key returns the content hash of the request's canonical encoding.
// Equal requests have equal keys.
func (r *Request) Key() (string, error) {
	obj, err := Encode(r)
	if err != nil {
		return "", err
	}
	return tagged.Hash(HashDomain, obj)
}
