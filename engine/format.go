// SPDX-License-Identifier: EPL-2.0

package engine

// Wave format tags accepted at voice creation. Everything else is rejected
// with ErrUnsupportedFormat.
const (
	FormatPCM      uint16 = 0x0001
	FormatMSADPCM  uint16 = 0x0002
	FormatWMAudio2 uint16 = 0x0161
	FormatWMAudio3 uint16 = 0x0162
	FormatXMAudio2 uint16 = 0x0166
)

// WaveFormat describes the encoded input of a source voice, following the
// WAVEFORMATEX layout. Extra carries the cbSize bytes trailing the base
// header (codec setup data for WMAv3/XMA2, coefficient tables for MSADPCM).
type WaveFormat struct {
	FormatTag      uint16
	Channels       uint16
	SamplesPerSec  uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
	Extra          []byte
}

// selectDecoder picks the decode routine for a validated format. The codec
// set is closed, so a plain switch at the single dispatch site beats any
// open registration scheme; only packet codecs go through the registry.
func selectDecoder(format *WaveFormat) (decodeFunc, error) {
	switch format.FormatTag {
	case FormatPCM:
		switch {
		case format.BitsPerSample == 8 && format.Channels == 1:
			return decodeMonoPCM8, nil
		case format.BitsPerSample == 8 && format.Channels == 2:
			return decodeStereoPCM8, nil
		case format.BitsPerSample == 16 && format.Channels == 1:
			return decodeMonoPCM16, nil
		case format.BitsPerSample == 16 && format.Channels == 2:
			return decodeStereoPCM16, nil
		}
		return nil, ErrUnsupportedFormat
	case FormatMSADPCM:
		switch format.Channels {
		case 1:
			return decodeMonoMSADPCM, nil
		case 2:
			return decodeStereoMSADPCM, nil
		}
		return nil, ErrUnsupportedFormat
	case FormatWMAudio2, FormatWMAudio3, FormatXMAudio2:
		return decodeXWMA, nil
	}
	return nil, ErrUnsupportedFormat
}

// frameSamples converts a byte length to source samples for the format.
// Used when a submitted buffer leaves PlayLength at zero (play everything).
func frameSamples(format *WaveFormat, bytes uint32) uint32 {
	switch format.FormatTag {
	case FormatPCM:
		bytesPerFrame := uint32(format.Channels) * uint32(format.BitsPerSample) / 8
		if bytesPerFrame == 0 {
			return 0
		}
		return bytes / bytesPerFrame
	case FormatMSADPCM:
		align := uint32(format.BlockAlign)
		blockBytes := (align + 22) * uint32(format.Channels)
		if blockBytes == 0 {
			return 0
		}
		return (bytes / blockBytes) * ((align + 16) * 2)
	}
	return 0
}
