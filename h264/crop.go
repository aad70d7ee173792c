package h264

// subsampling returns SubWidthC/SubHeightC for a chroma_format_idc value,
// per Table 6-1 of Rec. ITU-T H.264.
func subsampling(chromaFormatIDC uint32) (subW, subH uint32) {
	switch chromaFormatIDC {
	case 1: // 4:2:0
		return 2, 2
	case 2: // 4:2:2
		return 2, 1
	case 3: // 4:4:4
		return 1, 1
	default: // monochrome
		return 1, 1
	}
}

// EffectiveDimensions computes the cropped luma picture width/height for
// sps, following the crop-unit formula of H.264 §7.4.2.1.1. It is always
// computed, even when frame_cropping_flag is 0, since crop offsets default
// to zero and the formula degenerates to the uncropped size.
func (sps *SPS) EffectiveDimensions() (width, height uint32) {
	picWidthInSamplesL := (sps.PicWidthInMbsMinus1 + 1) * 16
	frameHeightInMbs := (2 - sps.FrameMbsOnlyFlag) * (sps.PicHeightInMapUnitsMinus1 + 1)
	picHeightInSamplesL := frameHeightInMbs * 16

	subW, subH := subsampling(sps.ChromaFormatIDC)
	cropUnitX := subW
	cropUnitY := subH * (2 - sps.FrameMbsOnlyFlag)
	if sps.ChromaFormatIDC == 0 {
		cropUnitX = 1
		cropUnitY = 2 - sps.FrameMbsOnlyFlag
	}

	width = picWidthInSamplesL - cropUnitX*(sps.CropLeft+sps.CropRight)
	height = picHeightInSamplesL - cropUnitY*(sps.CropTop+sps.CropBottom)
	return width, height
}
