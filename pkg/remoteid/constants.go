package remoteid

// Protocol framing constants
const (
	ProtocolVersion = 0x02 // Only supported protocol version

	MessageSize     = 25 // Header byte + payload
	PayloadSize     = 24 // Payload of every non-pack message
	HeaderSize      = 1  // Message type nibble | protocol version nibble
	UASIDSize       = 21 // Shared first byte + 20 identifier bytes
	IdentifierSize  = 20 // Serial number, registration id, UUID, operator id
	SelfIDTextSize  = 23 // Self ID description
	SessionIDSize   = 19 // Session identifier after its type byte
	AuthInitialData = 17 // Authentication data carried by the initial page
	AuthPageData    = 23 // Authentication data carried by subsequent pages
)

// Pack and pagination limits
const (
	MaxPackMessages = 9    // Messages per pack
	PackHeaderSize  = 2    // Length-unit marker + count
	PackMessageCode = 0x0F // Message type nibble of a pack
	AuthMaxPage     = 15   // Highest authentication page index
	AuthMaxLength   = 255  // Highest authentication total length

	PackMaxSize = PackHeaderSize + MaxPackMessages*MessageSize
)

// Header bit manipulation constants
const (
	nibbleMask   = 0x0F
	versionMask  = 0x0F
	messageShift = 4
)

// Location byte 0 flag bits
const (
	locationStatusShift     = 4
	locationHeightTypeShift = 2
	locationEastWestShift   = 1
)

// System byte 0 bit fields
const (
	systemClassificationShift = 2
	systemClassificationMask  = 0x03
	systemLocationSourceMask  = 0x03
)
