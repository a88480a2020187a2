package cfmt

// Config describes the features compiled into the package.
type Config struct {
	FieldWidth     bool `json:"field_width" yaml:"field_width"`
	Precision      bool `json:"precision" yaml:"precision"`
	Float          bool `json:"float" yaml:"float"`
	SmallModifiers bool `json:"small_modifiers" yaml:"small_modifiers"`
	LargeModifiers bool `json:"large_modifiers" yaml:"large_modifiers"`
	Binary         bool `json:"binary" yaml:"binary"`
	Writeback      bool `json:"writeback" yaml:"writeback"`
	AltForm        bool `json:"alt_form" yaml:"alt_form"`
	SafeEmpty      bool `json:"safe_empty" yaml:"safe_empty"`

	ConversionBufferSize int `json:"conversion_buffer_size" yaml:"conversion_buffer_size"`
	LimbBits             int `json:"limb_bits" yaml:"limb_bits"`
}

// Features returns the build configuration.
func Features() Config {
	return Config{
		FieldWidth:           featWidth,
		Precision:            featPrecision,
		Float:                featFloat,
		SmallModifiers:       featSmall,
		LargeModifiers:       featLarge,
		Binary:               featBinary,
		Writeback:            featWriteback,
		AltForm:              featAltForm,
		SafeEmpty:            safeEmpty,
		ConversionBufferSize: ConversionBufferSize,
		LimbBits:             limbBits,
	}
}
