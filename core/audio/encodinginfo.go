package audio

const (
	DefaultSampleRate         = 16000
	DefaultPlaybackSampleRate = 24000
	DefaultFormat             = "linear16"
)

func GetDefaultEncodingInfo() EncodingInfo {
	return EncodingInfo{SampleRate: DefaultSampleRate, Format: encodingFormat(DefaultFormat)}
}

// GetDefaultPlaybackEncodingInfo describes the raw PCM produced by the
// speech synthesis clients.
func GetDefaultPlaybackEncodingInfo() EncodingInfo {
	return EncodingInfo{SampleRate: DefaultPlaybackSampleRate, Format: EncodingLinear16}
}

type EncodingInfo struct {
	SampleRate int
	Format     encodingFormat
}

func (e EncodingInfo) IsZero() bool {
	return e.SampleRate == 0 || e.Format.Name() == ""
}

func (e EncodingInfo) SilenceValue() byte {
	switch e.Format {
	case EncodingALaw:
		return 0x55
	case EncodingMulaw:
		return 0xFF
	case EncodingLinear16:
		return 0
	}

	return 0
}

// BytesPerSecond reports how many bytes one second of mono audio takes.
func (e EncodingInfo) BytesPerSecond() int {
	if e.IsZero() || e.Format.ByteSize() < 0 {
		return 0
	}

	return e.SampleRate * e.Format.ByteSize()
}

type encodingFormat string

func (e encodingFormat) Name() string {
	return string(e)
}

func (e encodingFormat) ByteSize() int {
	switch e {
	case EncodingMulaw, EncodingALaw:
		return 1
	case EncodingLinear16:
		return 2
	}
	return -1
}

const (
	EncodingMulaw    encodingFormat = "mulaw"
	EncodingALaw     encodingFormat = "alaw"
	EncodingLinear16 encodingFormat = "linear16"
)
