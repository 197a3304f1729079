package checker

// Defaults match the legacy checker this tool replaces.
const (
	// DefaultMaxPhysicalLines is the hard ceiling on physical source
	// lines, counted as a text editor would (embedded breaks included).
	DefaultMaxPhysicalLines = 50_000

	// DefaultMaxFileBytes is the input size ceiling, checked before
	// decoding. The hosting environment rejects larger uploads anyway.
	DefaultMaxFileBytes = 5 * 1024 * 1024

	// DefaultEncoding is the IANA label of the export file encoding.
	// cp932 files decode under the Shift_JIS label.
	DefaultEncoding = "Shift_JIS"

	// DefaultDatePattern is the lexical shape both date columns must
	// have before calendar validation. Zero-padded, single space.
	DefaultDatePattern = `^\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}$`

	// DefaultDateLayout is the time.Parse layout matching the pattern.
	DefaultDateLayout = "2006/01/02 15:04:05"
)

// Config holds every tunable of the validator. Column indices are
// 0-based positions in a logical CSV record. A Config is fixed once
// passed to New; there is no package-level mutable state.
type Config struct {
	MaxPhysicalLines int
	MaxFileBytes     int64
	Encoding         string
	DatePattern      string
	DateLayout       string

	// Descriptive columns copied into financial findings.
	StoreNameColumn  int
	SlipNumberColumn int

	// Date rule columns. IgnoredDateColumn is part of the audited
	// column set but never evaluated; it is listed so the exported
	// configuration documents all three date columns.
	MandatoryDateColumn int
	IgnoredDateColumn   int
	SecondaryDateColumn int

	// Amount rule columns and values.
	StoreCodeColumn  int
	AmountColumn     int
	FlaggedStoreCode string
	AllowedAmounts   []string
}

// DefaultConfig returns the production rule set: the 25th column must
// not carry an amount outside {3000, 5000} when the store code is
// Z00014, and the 9th/17th columns must hold consistent timestamps.
func DefaultConfig() Config {
	return Config{
		MaxPhysicalLines: DefaultMaxPhysicalLines,
		MaxFileBytes:     DefaultMaxFileBytes,
		Encoding:         DefaultEncoding,
		DatePattern:      DefaultDatePattern,
		DateLayout:       DefaultDateLayout,

		StoreNameColumn:  2,
		SlipNumberColumn: 10,

		MandatoryDateColumn: 8,
		IgnoredDateColumn:   15,
		SecondaryDateColumn: 16,

		StoreCodeColumn:  24,
		AmountColumn:     37,
		FlaggedStoreCode: "Z00014",
		AllowedAmounts:   []string{"3000", "5000"},
	}
}

// amountAllowed reports whether v is in the allowed amount set.
func (c Config) amountAllowed(v string) bool {
	for _, a := range c.AllowedAmounts {
		if v == a {
			return true
		}
	}
	return false
}
