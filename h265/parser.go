package h265

import "github.com/vvas-go/pipeline/nal"

// Parser tracks decoded VPS-independent SPS/PPS tables and the last
// accepted slice header across NAL units, implementing nal.Decoder.
type Parser struct {
	sps [32]SPS
	pps [64]PPS

	last LastSliceHeader
}

// NewParser returns an empty Parser ready to process a fresh stream.
func NewParser() *Parser {
	return &Parser{}
}

// ProcessNAL implements nal.Decoder.
func (p *Parser) ProcessNAL(rawNAL []byte, hasSlice bool) nal.Decision {
	if len(rawNAL) < 2 {
		return nal.Decision{Discard: true}
	}
	nalType := uint32(rawNAL[0]&0x7E) >> 1
	rbsp := rawNAL[2:]

	switch {
	case nalType == NALTypeSPS:
		sps, ok := ParseSPS(rbsp)
		if !ok {
			return nal.Decision{}
		}
		p.sps[sps.ID%32] = sps
		return nal.Decision{IsSPS: true}

	case nalType == NALTypePPS:
		pps, ok := ParsePPS(rbsp)
		if !ok {
			return nal.Decision{}
		}
		p.pps[pps.ID%64] = pps
		return nal.Decision{}

	case nalType == NALTypeVPS || nalType == NALTypeSEIPrefix:
		return nal.Decision{Boundary: hasSlice}

	case IsVCL(nalType):
		return p.processSlice(rbsp, nalType)

	default:
		// AUD, EOS_NUT, EOB_NUT, FD_NUT, SEI suffix, reserved/unspecified:
		// appended without ever closing the access unit under construction.
		return nal.Decision{}
	}
}

func (p *Parser) processSlice(rbsp []byte, nalType uint32) nal.Decision {
	hdr, ok := ParseSliceHeader(rbsp, nalType)
	if !ok {
		return nal.Decision{IsVCL: true, Discard: true}
	}

	boundary := p.last.Set && hdr.FirstSliceSegmentInPicFlag == 1
	p.last = hdr
	return nal.Decision{IsVCL: true, Boundary: boundary}
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
	s := &p.pps[id%64]
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
	pps, ok := p.PPSByID(p.last.PPSID)
	if !ok {
		return nil, false
	}
	return p.SPSByID(pps.SeqParameterSetID)
}
