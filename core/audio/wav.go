package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	wavHeaderSize = 44

	wavFormatPCM   uint16 = 1
	wavFormatALaw  uint16 = 6
	wavFormatMulaw uint16 = 7
)

// EncodeWAV wraps raw mono samples into a RIFF/WAVE container so they can be
// uploaded to services that expect a file rather than a raw stream.
func EncodeWAV(samples []byte, encodingInfo EncodingInfo) ([]byte, error) {
	if encodingInfo.IsZero() {
		return nil, fmt.Errorf("missing encoding info")
	}

	var formatTag uint16
	switch encodingInfo.Format {
	case EncodingLinear16:
		formatTag = wavFormatPCM
	case EncodingALaw:
		formatTag = wavFormatALaw
	case EncodingMulaw:
		formatTag = wavFormatMulaw
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encodingInfo.Format.Name())
	}

	const channels = 1
	bytesPerSample := encodingInfo.Format.ByteSize()
	blockAlign := channels * bytesPerSample
	byteRate := encodingInfo.SampleRate * blockAlign

	buf := bytes.NewBuffer(make([]byte, 0, wavHeaderSize+len(samples)))
	buf.WriteString("RIFF")
	_ = binary.Write(buf, binary.LittleEndian, uint32(36+len(samples)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(buf, binary.LittleEndian, formatTag)
	_ = binary.Write(buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(buf, binary.LittleEndian, uint32(encodingInfo.SampleRate))
	_ = binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	_ = binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	_ = binary.Write(buf, binary.LittleEndian, uint16(bytesPerSample*8))

	buf.WriteString("data")
	_ = binary.Write(buf, binary.LittleEndian, uint32(len(samples)))
	buf.Write(samples)

	return buf.Bytes(), nil
}
