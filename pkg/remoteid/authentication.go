package remoteid

import (
	"encoding/binary"
	"fmt"
)

// AuthenticationType is the scheme used to produce the authentication data.
// Codes 6-9 are reserved and 10-15 are for private use.
type AuthenticationType uint8

const (
	AuthNone                AuthenticationType = 0
	AuthUASIDSignature      AuthenticationType = 1
	AuthOperatorIDSignature AuthenticationType = 2
	AuthMessageSetSignature AuthenticationType = 3
	AuthNetworkRemoteID     AuthenticationType = 4 // Provided by network remote id
	AuthSpecificMethod      AuthenticationType = 5 // Specific authentication method
	AuthReserved            AuthenticationType = 6
	AuthAvailablePrivateUse AuthenticationType = 0x0A
)

const (
	AuthenticationTypeMax = 0x10
	authTypeShift         = 4
)

// DecodeAuthenticationType maps a raw code to its band
func DecodeAuthenticationType(raw uint8) (AuthenticationType, error) {
	switch {
	case raw > AuthenticationTypeMax:
		return 0, invalidInteger("authentication type", int(raw))
	case raw >= uint8(AuthAvailablePrivateUse):
		return AuthAvailablePrivateUse, nil
	case raw >= uint8(AuthReserved):
		return AuthReserved, nil
	default:
		return AuthenticationType(raw), nil
	}
}

// Encode returns the lower bound of the type's band
func (a AuthenticationType) Encode() uint8 {
	switch {
	case a >= AuthAvailablePrivateUse:
		return uint8(AuthAvailablePrivateUse)
	case a >= AuthReserved:
		return uint8(AuthReserved)
	default:
		return uint8(a)
	}
}

func (a AuthenticationType) String() string {
	switch AuthenticationType(a.Encode()) {
	case AuthNone:
		return "None"
	case AuthUASIDSignature:
		return "UASIDSignature"
	case AuthOperatorIDSignature:
		return "OperatorIDSignature"
	case AuthMessageSetSignature:
		return "MessageSetSignature"
	case AuthNetworkRemoteID:
		return "NetworkRemoteIDAuthentication"
	case AuthSpecificMethod:
		return "SpecificAuthenticationMessage"
	case AuthReserved:
		return "ReservedForSpec"
	default:
		return "AvailableForPrivateUse"
	}
}

// Authentication is one page of authentication data, either an AuthInitial
// or an AuthSubsequent. The low nibble of the first payload byte is the page
// number and page 0 is always the initial page.
//
// Pages are only typed here. Callers reassemble the data by ordering pages
// and concatenating the initial 17 bytes with 23 bytes per subsequent page.
type Authentication interface {
	Payload
	AuthenticationType() AuthenticationType
	Page() uint8
}

// AuthInitial is page 0. It declares how many pages follow and how many data
// bytes the whole transfer carries.
type AuthInitial struct {
	authType      AuthenticationType
	lastPageIndex uint8
	totalLength   uint8
	timestamp     SystemTimestamp
	data          [AuthInitialData]byte
}

// NewAuthInitial returns ErrInvalidInteger when lastPageIndex is above 15 or
// totalLength above 255.
func NewAuthInitial(t AuthenticationType, lastPageIndex, totalLength int, timestamp SystemTimestamp, data [AuthInitialData]byte) (AuthInitial, error) {
	if lastPageIndex < 0 || lastPageIndex > AuthMaxPage {
		return AuthInitial{}, invalidInteger("last page index", lastPageIndex)
	}
	if totalLength < 0 || totalLength > AuthMaxLength {
		return AuthInitial{}, invalidInteger("total length", totalLength)
	}

	return AuthInitial{
		authType:      t,
		lastPageIndex: uint8(lastPageIndex),
		totalLength:   uint8(totalLength),
		timestamp:     timestamp,
		data:          data,
	}, nil
}

// DecodeAuthInitial decodes a 24 byte page whose page nibble is 0
func DecodeAuthInitial(b []byte) (AuthInitial, error) {
	if err := checkLength(b, PayloadSize); err != nil {
		return AuthInitial{}, err
	}
	if page := b[0] & nibbleMask; page != 0 {
		return AuthInitial{}, invalidInteger("initial page number", int(page))
	}

	t, err := DecodeAuthenticationType(b[0] >> authTypeShift)
	if err != nil {
		return AuthInitial{}, err
	}

	a := AuthInitial{
		authType:      t,
		lastPageIndex: b[1] & nibbleMask,
		totalLength:   b[2],
		timestamp:     SystemTimestamp(binary.LittleEndian.Uint32(b[3:7])),
	}
	copy(a.data[:], b[7:])
	return a, nil
}

func (AuthInitial) Kind() MessageKind                        { return KindAuthentication }
func (a AuthInitial) AuthenticationType() AuthenticationType { return a.authType }
func (AuthInitial) Page() uint8                              { return 0 }

// LastPageIndex is the page number of the final page in the transfer
func (a AuthInitial) LastPageIndex() uint8 { return a.lastPageIndex }

// TotalLength is the number of data bytes across all pages
func (a AuthInitial) TotalLength() uint8 { return a.totalLength }

func (a AuthInitial) Timestamp() SystemTimestamp { return a.timestamp }

func (a AuthInitial) Data() [AuthInitialData]byte { return a.data }

func (a AuthInitial) Encode(b []byte) error {
	if err := checkLength(b, PayloadSize); err != nil {
		return err
	}

	b[0] = a.authType.Encode() << authTypeShift
	b[1] = a.lastPageIndex & nibbleMask
	b[2] = a.totalLength
	binary.LittleEndian.PutUint32(b[3:7], uint32(a.timestamp))
	copy(b[7:], a.data[:])
	return nil
}

// AuthSubsequent is one of pages 1 to 15
type AuthSubsequent struct {
	authType AuthenticationType
	page     uint8
	data     [AuthPageData]byte
}

// NewAuthSubsequent returns ErrInvalidInteger for pages outside 1-15
func NewAuthSubsequent(t AuthenticationType, page int, data [AuthPageData]byte) (AuthSubsequent, error) {
	if page < 1 || page > AuthMaxPage {
		return AuthSubsequent{}, invalidInteger("page number", page)
	}
	return AuthSubsequent{authType: t, page: uint8(page), data: data}, nil
}

// DecodeAuthSubsequent decodes a 24 byte page whose page nibble is 1-15
func DecodeAuthSubsequent(b []byte) (AuthSubsequent, error) {
	if err := checkLength(b, PayloadSize); err != nil {
		return AuthSubsequent{}, err
	}

	page := b[0] & nibbleMask
	if page == 0 {
		return AuthSubsequent{}, invalidInteger("subsequent page number", 0)
	}

	t, err := DecodeAuthenticationType(b[0] >> authTypeShift)
	if err != nil {
		return AuthSubsequent{}, err
	}

	a := AuthSubsequent{authType: t, page: page}
	copy(a.data[:], b[1:])
	return a, nil
}

func (AuthSubsequent) Kind() MessageKind                        { return KindAuthentication }
func (a AuthSubsequent) AuthenticationType() AuthenticationType { return a.authType }
func (a AuthSubsequent) Page() uint8                            { return a.page }
func (a AuthSubsequent) Data() [AuthPageData]byte               { return a.data }

// Encode rejects page 0, which would go on the wire as an initial page
func (a AuthSubsequent) Encode(b []byte) error {
	if err := checkLength(b, PayloadSize); err != nil {
		return err
	}
	if a.page < 1 || a.page > AuthMaxPage {
		return invalidInteger("page number", int(a.page))
	}

	b[0] = a.authType.Encode()<<authTypeShift | a.page&nibbleMask
	copy(b[1:], a.data[:])
	return nil
}

// DecodeAuthentication selects the page layout from the page nibble
func DecodeAuthentication(b []byte) (Authentication, error) {
	if err := checkLength(b, PayloadSize); err != nil {
		return nil, err
	}

	if b[0]&nibbleMask == 0 {
		a, err := DecodeAuthInitial(b)
		if err != nil {
			return nil, err
		}
		return a, nil
	}

	a, err := DecodeAuthSubsequent(b)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (a AuthInitial) String() string {
	return fmt.Sprintf("%s initial (last page %d, %d bytes)", a.authType, a.lastPageIndex, a.totalLength)
}

func (a AuthSubsequent) String() string {
	return fmt.Sprintf("%s page %d", a.authType, a.page)
}
