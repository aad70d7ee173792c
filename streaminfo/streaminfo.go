// Package streaminfo tracks the rolling decode state of one elementary
// stream (spec.md §3 StreamInfo) and derives DecoderInCfg sidecars when
// picture parameters change, from either the H.264 or H.265 parser.
package streaminfo

// ChromaMode mirrors chroma_format_idc at the granularity the decoder
// configuration cares about.
type ChromaMode uint8

const (
	Chroma420 ChromaMode = iota
	Chroma422
	Chroma444
	ChromaMono
)

func chromaModeFromIDC(idc uint32) ChromaMode {
	switch idc {
	case 1:
		return Chroma420
	case 2:
		return Chroma422
	case 3:
		return Chroma444
	default:
		return ChromaMono
	}
}

// ScanType records whether the stream's pictures are coded as whole frames
// or as separate fields.
type ScanType uint8

const (
	ScanProgressive ScanType = iota
	ScanInterlaced
)

// Info is the rolling decode of a stream: resolution, frame rate,
// bit depth, chroma mode and scan type, refreshed each time an active
// parameter set changes, per spec.md §3.
type Info struct {
	Width, Height   uint32
	FrameRateNum    uint32
	FrameRateDen    uint32
	BitDepthLuma    uint32
	Chroma          ChromaMode
	Scan            ScanType
	ProfileIDC      uint32
	LevelIDC        uint32
	valid           bool
}

// Valid reports whether Info was ever populated from a decoded SPS.
func (i Info) Valid() bool { return i.valid }

// Config is produced as a sidecar on a parsed access unit only when
// something in Info changed since the previous emission (spec.md §3
// DecoderInCfg).
type Config struct {
	Width, Height uint32
	ProfileIDC    uint32
	LevelIDC      uint32
	BitDepthLuma  uint32
	FrameRateNum  uint32
	FrameRateDen  uint32
	ClkRatio      uint32 // FrameRateDen relative to a fixed clock, carried for decoder configure()
}

// Tracker folds a sequence of Info snapshots into Config sidecars, emitting
// one only on a field change, per spec.md §4.7.
type Tracker struct {
	last Info
}

// Update compares cur against the previously observed Info and returns a
// non-nil *Config the first time cur is observed to differ in any of
// profile/level/bit-depth/width/height/frame-rate, or nil when nothing
// changed (including the very first call if cur itself is the zero Info).
func (t *Tracker) Update(cur Info) *Config {
	if !cur.valid {
		return nil
	}
	changed := !t.last.valid ||
		cur.ProfileIDC != t.last.ProfileIDC ||
		cur.LevelIDC != t.last.LevelIDC ||
		cur.BitDepthLuma != t.last.BitDepthLuma ||
		cur.Width != t.last.Width ||
		cur.Height != t.last.Height ||
		cur.FrameRateNum != t.last.FrameRateNum ||
		cur.FrameRateDen != t.last.FrameRateDen

	t.last = cur
	if !changed {
		return nil
	}
	return &Config{
		Width:        cur.Width,
		Height:       cur.Height,
		ProfileIDC:   cur.ProfileIDC,
		LevelIDC:     cur.LevelIDC,
		BitDepthLuma: cur.BitDepthLuma,
		FrameRateNum: cur.FrameRateNum,
		FrameRateDen: cur.FrameRateDen,
		ClkRatio:     cur.FrameRateDen,
	}
}
