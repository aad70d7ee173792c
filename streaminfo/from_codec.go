package streaminfo

import (
	"github.com/vvas-go/pipeline/h264"
	"github.com/vvas-go/pipeline/h265"
)

// FromH264 builds an Info snapshot from the SPS currently referenced by an
// h264.Parser's last accepted slice, or the zero Info if none has been
// decoded yet.
func FromH264(p *h264.Parser) Info {
	sps, ok := p.ActiveSPS()
	if !ok {
		return Info{}
	}
	width, height := sps.EffectiveDimensions()
	scan := ScanProgressive
	if sps.FrameMbsOnlyFlag == 0 {
		scan = ScanInterlaced
	}
	return Info{
		Width:        width,
		Height:       height,
		FrameRateNum: sps.FrameRateNum,
		FrameRateDen: sps.FrameRateDen,
		BitDepthLuma: sps.BitDepthLumaMinus8 + 8,
		Chroma:       chromaModeFromIDC(sps.ChromaFormatIDC),
		Scan:         scan,
		ProfileIDC:   sps.ProfileIDC,
		LevelIDC:     sps.LevelIDC,
		valid:        true,
	}
}

// FromH265 builds an Info snapshot from the SPS currently referenced by an
// h265.Parser's last accepted slice, or the zero Info if none has been
// decoded yet.
func FromH265(p *h265.Parser) Info {
	sps, ok := p.ActiveSPS()
	if !ok {
		return Info{}
	}
	return Info{
		Width:        sps.Width,
		Height:       sps.Height,
		FrameRateNum: sps.FrameRateNum,
		FrameRateDen: sps.FrameRateDen,
		BitDepthLuma: sps.BitDepthLumaMinus8 + 8,
		Chroma:       chromaModeFromIDC(sps.ChromaFormatIDC),
		Scan:         ScanProgressive,
		ProfileIDC:   sps.ProfileIDC,
		LevelIDC:     sps.LevelIDC,
		valid:        true,
	}
}
