package audio

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestEncodeWAVWritesHeaderAndSamples(t *testing.T) {
	samples := []byte{0x01, 0x02, 0x03, 0x04}

	wav, err := EncodeWAV(samples, GetDefaultEncodingInfo())
	if err != nil {
		t.Fatalf("expected encoding to succeed, got %v", err)
	}

	if got, want := len(wav), wavHeaderSize+len(samples); got != want {
		t.Fatalf("expected %d bytes, got %d", want, got)
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" || string(wav[36:40]) != "data" {
		t.Fatalf("unexpected container markers in header %q", wav[:wavHeaderSize])
	}
	if got := binary.LittleEndian.Uint32(wav[24:28]); got != DefaultSampleRate {
		t.Fatalf("expected sample rate %d, got %d", DefaultSampleRate, got)
	}
	if got := binary.LittleEndian.Uint16(wav[34:36]); got != 16 {
		t.Fatalf("expected 16 bits per sample, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(wav[40:44]); got != uint32(len(samples)) {
		t.Fatalf("expected data size %d, got %d", len(samples), got)
	}
	if !bytes.Equal(wav[wavHeaderSize:], samples) {
		t.Fatalf("expected samples to follow the header")
	}
}

func TestEncodeWAVRejectsMissingEncoding(t *testing.T) {
	if _, err := EncodeWAV([]byte{0x01}, EncodingInfo{}); err == nil {
		t.Fatalf("expected missing encoding info to be rejected")
	}
}

func TestEncodingInfoBytesPerSecond(t *testing.T) {
	testCases := []struct {
		name     string
		info     EncodingInfo
		expected int
	}{
		{name: "linear16", info: GetDefaultEncodingInfo(), expected: 32000},
		{name: "mulaw", info: EncodingInfo{SampleRate: 8000, Format: EncodingMulaw}, expected: 8000},
		{name: "zero", info: EncodingInfo{}, expected: 0},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := testCase.info.BytesPerSecond(); got != testCase.expected {
				t.Fatalf("expected %d bytes per second, got %d", testCase.expected, got)
			}
		})
	}
}
