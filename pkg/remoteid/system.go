package remoteid

import (
	"encoding/binary"
	"fmt"
)

// ClassificationType is the region whose UA classification scheme applies.
// Codes 2 to 7 are reserved.
type ClassificationType uint8

const (
	ClassificationUndeclared ClassificationType = iota
	ClassificationEU
	ClassificationReserved

	ClassificationTypeMax = 7
)

func DecodeClassificationType(raw uint8) (ClassificationType, error) {
	switch {
	case raw > ClassificationTypeMax:
		return 0, invalidInteger("classification type", int(raw))
	case raw >= uint8(ClassificationReserved):
		return ClassificationReserved, nil
	default:
		return ClassificationType(raw), nil
	}
}

func (c ClassificationType) Encode() uint8 {
	return uint8(min(c, ClassificationReserved))
}

func (c ClassificationType) String() string {
	switch min(c, ClassificationReserved) {
	case ClassificationUndeclared:
		return "Undeclared"
	case ClassificationEU:
		return "EuropeanUnion"
	default:
		return "Reserved"
	}
}

// OperatorLocationSourceType says where the operator position comes from
type OperatorLocationSourceType uint8

const (
	OperatorLocationTakeOff OperatorLocationSourceType = iota
	OperatorLocationDynamic                             // Live GNSS
	OperatorLocationFixed
)

func DecodeOperatorLocationSourceType(raw uint8) (OperatorLocationSourceType, error) {
	if raw > uint8(OperatorLocationFixed) {
		return 0, invalidInteger("operator location source", int(raw))
	}
	return OperatorLocationSourceType(raw), nil
}

func (o OperatorLocationSourceType) String() string {
	switch o {
	case OperatorLocationTakeOff:
		return "TakeOff"
	case OperatorLocationDynamic:
		return "Dynamic"
	case OperatorLocationFixed:
		return "Fixed"
	default:
		return fmt.Sprintf("OperatorLocationSourceType(%d)", uint8(o))
	}
}

// UACategory is the EU UA category, the high nibble of the classification byte
type UACategory uint8

const (
	CategoryUndefined UACategory = iota
	CategoryOpen
	CategorySpecific
	CategoryCertified
	CategoryReserved // Codes 4-15
)

func (c UACategory) String() string {
	switch min(c, CategoryReserved) {
	case CategoryUndefined:
		return "Undefined"
	case CategoryOpen:
		return "Open"
	case CategorySpecific:
		return "Specific"
	case CategoryCertified:
		return "Certified"
	default:
		return "Reserved"
	}
}

// OpenClassification is the class within the Open category, C0 to C6
type OpenClassification uint8

const (
	OpenUndefined OpenClassification = iota
	OpenClass0
	OpenClass1
	OpenClass2
	OpenClass3
	OpenClass4
	OpenClass5
	OpenClass6
	OpenReserved // Codes 8-15
)

func (o OpenClassification) String() string {
	switch {
	case o == OpenUndefined:
		return "Undefined"
	case o < OpenReserved:
		return fmt.Sprintf("C%d", uint8(o-OpenClass0))
	default:
		return "Reserved"
	}
}

// UAClassification is the EU category and, for the Open category only, the
// class. Class is zero for every other category.
type UAClassification struct {
	Category UACategory
	Class    OpenClassification
}

// OpenClass returns the classification for an Open category aircraft
func OpenClass(class OpenClassification) UAClassification {
	return UAClassification{Category: CategoryOpen, Class: class}
}

// DecodeUAClassification never fails; out of range nibbles decode as reserved.
func DecodeUAClassification(raw uint8) UAClassification {
	category := min(UACategory(raw>>4), CategoryReserved)
	if category != CategoryOpen {
		return UAClassification{Category: category}
	}
	return OpenClass(min(OpenClassification(raw&nibbleMask), OpenReserved))
}

func (u UAClassification) Encode() uint8 {
	category := min(u.Category, CategoryReserved)
	if category != CategoryOpen {
		return uint8(category) << 4
	}
	return uint8(category)<<4 | uint8(min(u.Class, OpenReserved))
}

func (u UAClassification) String() string {
	if u.Category == CategoryOpen {
		return fmt.Sprintf("%s/%s", u.Category, u.Class)
	}
	return u.Category.String()
}

// System describes the operator position, the operating area and the
// aircraft classification.
type System struct {
	ClassificationType     ClassificationType
	OperatorLocationSource OperatorLocationSourceType
	OperatorLatitude       Latitude
	OperatorLongitude      Longitude
	AreaCount              AreaCount
	AreaRadius             OperatingAreaRadius
	AreaCeiling            Altitude
	AreaFloor              Altitude
	UAClassification       UAClassification
	OperatorAltitude       Altitude
	Timestamp              SystemTimestamp
}

func (System) Kind() MessageKind { return KindSystem }

// DecodeSystem decodes a 24 byte System payload
func DecodeSystem(b []byte) (System, error) {
	if err := checkLength(b, PayloadSize); err != nil {
		return System{}, err
	}

	classification, err := DecodeClassificationType(b[0] >> systemClassificationShift & systemClassificationMask)
	if err != nil {
		return System{}, err
	}

	source, err := DecodeOperatorLocationSourceType(b[0] & systemLocationSourceMask)
	if err != nil {
		return System{}, err
	}

	count, err := NewAreaCount(binary.LittleEndian.Uint16(b[9:11]))
	if err != nil {
		return System{}, err
	}

	return System{
		ClassificationType:     classification,
		OperatorLocationSource: source,
		OperatorLatitude:       DecodeLatitude(int32(binary.LittleEndian.Uint32(b[1:5]))),
		OperatorLongitude:      DecodeLongitude(int32(binary.LittleEndian.Uint32(b[5:9]))),
		AreaCount:              count,
		AreaRadius:             DecodeOperatingAreaRadius(b[11]),
		AreaCeiling:            DecodeAltitude(binary.LittleEndian.Uint16(b[12:14])),
		AreaFloor:              DecodeAltitude(binary.LittleEndian.Uint16(b[14:16])),
		UAClassification:       DecodeUAClassification(b[16]),
		OperatorAltitude:       DecodeAltitude(binary.LittleEndian.Uint16(b[17:19])),
		Timestamp:              SystemTimestamp(binary.LittleEndian.Uint32(b[19:23])),
	}, nil
}

// Encode writes the payload into b, which must be 24 bytes
func (s System) Encode(b []byte) error {
	if err := checkLength(b, PayloadSize); err != nil {
		return err
	}
	if _, err := DecodeOperatorLocationSourceType(uint8(s.OperatorLocationSource)); err != nil {
		return err
	}
	if _, err := NewAreaCount(uint16(s.AreaCount)); err != nil {
		return err
	}

	b[0] = s.ClassificationType.Encode()<<systemClassificationShift | uint8(s.OperatorLocationSource)
	binary.LittleEndian.PutUint32(b[1:5], uint32(s.OperatorLatitude.Encode()))
	binary.LittleEndian.PutUint32(b[5:9], uint32(s.OperatorLongitude.Encode()))
	binary.LittleEndian.PutUint16(b[9:11], uint16(s.AreaCount))
	b[11] = s.AreaRadius.Encode()
	binary.LittleEndian.PutUint16(b[12:14], s.AreaCeiling.Encode())
	binary.LittleEndian.PutUint16(b[14:16], s.AreaFloor.Encode())
	b[16] = s.UAClassification.Encode()
	binary.LittleEndian.PutUint16(b[17:19], s.OperatorAltitude.Encode())
	binary.LittleEndian.PutUint32(b[19:23], uint32(s.Timestamp))
	b[23] = 0
	return nil
}
