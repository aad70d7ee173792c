package h264

import (
	"github.com/vvas-go/pipeline/bitio"
	"github.com/vvas-go/pipeline/nal"
)

// Parser tracks decoded SPS/PPS tables and the last accepted slice header
// across NAL units, implementing nal.Decoder so it can drive a
// nal.Assembler without that package knowing anything codec-specific.
type Parser struct {
	sps [32]SPS
	pps [256]PPS

	last    LastSliceHeader
	lastPPS uint32
}

// NewParser returns an empty Parser ready to process a fresh stream.
func NewParser() *Parser {
	return &Parser{}
}

// ProcessNAL implements nal.Decoder.
func (p *Parser) ProcessNAL(rawNAL []byte, hasSlice bool) nal.Decision {
	if len(rawNAL) < 1 {
		return nal.Decision{Discard: true}
	}
	nalRefIdc := uint32(rawNAL[0]>>5) & 0x3
	nalUnitType := uint32(rawNAL[0]) & 0x1f
	rbsp := rawNAL[1:]

	switch {
	case nalUnitType == NALTypeSPS:
		sps, ok := ParseSPS(rbsp)
		if !ok {
			return nal.Decision{Boundary: hasSlice}
		}
		p.sps[sps.ID%32] = sps
		return nal.Decision{IsSPS: true, Boundary: hasSlice}

	case nalUnitType == NALTypePPS:
		pps, ok := ParsePPS(rbsp)
		if !ok {
			return nal.Decision{Boundary: hasSlice}
		}
		p.pps[pps.ID%256] = pps
		return nal.Decision{Boundary: hasSlice}

	case IsVCL(nalUnitType):
		return p.processSlice(rbsp, nalRefIdc, nalUnitType)

	default:
		// SEI, AUD, filler and the rest close whatever access unit is
		// already under construction but never open one on their own.
		return nal.Decision{Boundary: hasSlice}
	}
}

func (p *Parser) processSlice(rbsp []byte, nalRefIdc, nalUnitType uint32) nal.Decision {
	ppsID := peekPPSID(rbsp)
	pps := &p.pps[ppsID%256]
	if !pps.Valid {
		return nal.Decision{IsVCL: true, Discard: true}
	}
	sps := &p.sps[pps.SeqParameterSetID%32]
	if !sps.Valid {
		return nal.Decision{IsVCL: true, Discard: true}
	}

	hdr, ok := ParseSliceHeader(rbsp, nalRefIdc, nalUnitType, sps, pps)
	if !ok {
		return nal.Decision{IsVCL: true, Discard: true}
	}

	boundary := isNewAccessUnit(p.last, hdr)
	p.last = hdr
	return nal.Decision{IsVCL: true, Boundary: boundary}
}

// peekPPSID reads just the first two ue(v) fields of a slice header to
// recover pic_parameter_set_id without committing to a full decode (used
// before the referenced PPS/SPS are known to be valid).
func peekPPSID(rbsp []byte) uint32 {
	r := bitio.NewReader(bitio.Unescape(rbsp))
	r.ReadUE() // first_mb_in_slice
	r.ReadUE() // slice_type
	return r.ReadUE()
}

// SPSByID returns the decoded SPS with the given id, if any.
func (p *Parser) SPSByID(id uint32) (*SPS, bool) {
	s := &p.sps[id%32]
	if !s.Valid || s.ID != id {
		return nil, false
	}
	return s, true
}

// PPSByID returns the decoded PPS with the given id, if any.
func (p *Parser) PPSByID(id uint32) (*PPS, bool) {
	s := &p.pps[id%256]
	if !s.Valid || s.ID != id {
		return nil, false
	}
	return s, true
}

// ActiveSPS returns the SPS referenced (via its PPS) by the most recently
// accepted slice header, for stream-info rolling state.
func (p *Parser) ActiveSPS() (*SPS, bool) {
	if !p.last.Set {
		return nil, false
	}
	pps, ok := p.PPSByID(p.last.PicParameterSetID)
	if !ok {
		return nil, false
	}
	return p.SPSByID(pps.SeqParameterSetID)
}
