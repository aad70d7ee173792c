// Package external declares the boundary interfaces to collaborators the
// pipeline does not implement itself — hardware decoder, scaler and DPU
// inference handles, and the frame allocator backing device memory
// (spec.md §6, out of scope per spec.md §1). Pipeline stages depend on
// these interfaces, never on a concrete vendor SDK, so they can be
// exercised against gomock doubles in tests.
package external

import (
	"github.com/vvas-go/pipeline/internal/errs"
	"github.com/vvas-go/pipeline/videobuf"
)

// MemBank identifies where the decoder/scaler/DPU place output frames.
type MemBank uint8

const (
	MemBankHost MemBank = iota
	MemBankDevice
)

// DecoderInCfg configures (or reconfigures) a decoder instance when the
// active parameter set changes (spec.md §3 DecoderInCfg, §4.7).
type DecoderInCfg struct {
	Width, Height uint32
	ProfileIDC    uint32
	LevelIDC      uint32
	BitDepthLuma  uint32
	FrameRateNum  uint32
	FrameRateDen  uint32
}

// DecoderOutCfg is returned by Configure: the minimum number of output
// buffers the decoder requires on loan at once, and the geometry of the
// frames it will emit.
type DecoderOutCfg struct {
	MinOutBuf int
	Width     uint32
	Height    uint32
	Format    videobuf.Format
	Alignment uint32
	MemBank   MemBank
}

// Decoder is an opaque hardware or software decode session for one
// elementary stream (spec.md §6 Decoder handle).
type Decoder interface {
	// Configure (re)configures the session for a new DecoderInCfg,
	// returning the frame geometry subsequent decoded output will use.
	Configure(cfg DecoderInCfg) (DecoderOutCfg, errs.Kind)

	// Submit feeds one access unit (nil at end of stream) together with a
	// supply of free frames the decoder may write into.
	Submit(au []byte, freeFrames []*videobuf.Buffer) errs.Kind

	// GetDecoded retrieves the next decoded frame if one is ready.
	GetDecoded() (*videobuf.Buffer, errs.Kind)

	Destroy()
}

// Rect is a pixel-space rectangle used by Scaler channel routing.
type Rect struct {
	X, Y, W, H uint32
}

// Scaler batches crop/scale/colorspace-convert operations added via
// ChannelAdd and executes them together on ProcessFrame (spec.md §6
// Scaler handle).
type Scaler interface {
	ChannelAdd(src, dst Rect, src_, dst_ *videobuf.Buffer) errs.Kind
	ProcessFrame() errs.Kind
	Destroy()
}

// DPUConfig selects and configures one inference model (spec.md §6 DPU
// inference handle, §211 per-model kernel.config).
type DPUConfig struct {
	ModelPath         string
	ModelName         string
	ModelFormat       videobuf.Format
	ModelClass        string
	BatchSize         int
	NeedPreprocess    bool
	ObjsDetectionMax  int
	FilterLabels      []string
	FloatFeature      bool
	SegOutFormat      string
	SegOutFactor      float64
}

// DPUOutCfg reports the model's expected input geometry and normalization.
type DPUOutCfg struct {
	ModelWidth, ModelHeight int
	BatchSize               int
	MeanRGB, ScaleRGB       [3]float32
}

// Prediction is one inference result for a single input frame slot,
// consumed by the detector and classifier stages to populate a
// videobuf.PredictionTree.
type Prediction struct {
	ClassID    int32
	ClassProb  float32
	ClassLabel string
	BBox       videobuf.BBox
}

// DPU is an inference session for a single model (spec.md §6 DPU
// inference handle).
type DPU interface {
	GetConfig() DPUOutCfg
	ProcessFrames(inputs []*videobuf.Buffer, predictions [][]Prediction) errs.Kind
	Destroy()
}

// AllocType distinguishes contiguous (CMA) from ordinary device memory.
type AllocType uint8

const (
	AllocCMA AllocType = iota
	AllocNonCMA
)

// SyncDirection names the direction of a cache-coherency sync operation
// on device-backed memory.
type SyncDirection uint8

const (
	SyncToDevice SyncDirection = iota
	SyncFromDevice
)

// MapMode selects the access mode of a FrameAllocator.Map call.
type MapMode uint8

const (
	MapRead MapMode = iota
	MapWrite
)

// FrameAllocator allocates and maps the raw memory backing a
// videobuf.Frame's planes (spec.md §6 VideoFrame alloc), letting
// videobuf.BufferPool stay agnostic to host vs. device memory.
type FrameAllocator interface {
	Alloc(allocType AllocType, memBank MemBank, width, height uint32, format videobuf.Format, alignment uint32) (videobuf.Frame, errs.Kind)
	Map(frame videobuf.Frame, mode MapMode) (videobuf.Frame, errs.Kind)
	Unmap(frame videobuf.Frame)
	Free(frame videobuf.Frame)
	Sync(frame videobuf.Frame, dir SyncDirection)
	SetSyncFlag(frame videobuf.Frame, enabled bool)
}
