// Package config decodes the master pipeline configuration and per-model
// DPU configuration JSON files (spec.md §6), using the same jsoniter
// decoder the teacher uses for its own SEI/protocol payloads.
package config

import (
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// SinkType selects where the overlay sink stage writes rendered frames.
type SinkType string

const (
	SinkFile   SinkType = "file"
	SinkScreen SinkType = "screen"
	SinkNull   SinkType = "null"
)

// InputStream describes one elementary stream the launcher will open a
// pipeline for.
type InputStream struct {
	Path     string `json:"path"`
	StreamID string `json:"stream-id"`
}

// Master is the top-level JSON configuration file (spec.md §6).
type Master struct {
	LogLevel                 string        `json:"log-level"`
	YOLOV3ConfigPath         string        `json:"yolov3-config-path"`
	ResNet18CarMakeConfig    string        `json:"resnet18-carmake-config-path"`
	ResNet18CarTypeConfig    string        `json:"resnet18-cartype-config-path"`
	ResNet18CarColorConfig   string        `json:"resnet18-carcolor-config-path"`
	MetaConvertConfigPath    string        `json:"metaconvert-config-path"`
	XclbinLocation           string        `json:"xclbin-location"`
	DevIdx                   int           `json:"dev-idx"`
	SinkType                 SinkType      `json:"sink-type"`
	AdditionalDecoderBuffers int           `json:"additional-decoder-buffers"`
	BatchTimeoutMs           int           `json:"batch-timeout"`
	FPSDisplayIntervalSec    int           `json:"fps-display-interval"`
	RepeatCount              int           `json:"repeat-count"`
	InputStreams             []InputStream `json:"input-streams"`
}

// DPUKernelConfig is the `kernel.config` object of a per-model DPU JSON
// file (spec.md §6).
type DPUKernelConfig struct {
	ModelPath          string   `json:"model-path"`
	ModelName          string   `json:"model-name"`
	ModelFormat        string   `json:"model-format"` // RGB, BGR, or GRAY8
	ModelClass         string   `json:"model-class"`
	BatchSize          int      `json:"batch-size"`
	VitisAIPreprocess  bool     `json:"vitis-ai-preprocess"`
	PerformanceTest    bool     `json:"performance-test"`
	MaxObjects         int      `json:"max-objects"`
	SegOutFormat       string   `json:"seg-out-format"`
	SegOutFactor       float64  `json:"segoutfactor"`
	FloatFeature       bool     `json:"float-feature"`
	FilterLabels       []string `json:"filter-labels"`
}

// DPUConfig wraps the `kernel.config` envelope used by every per-model
// JSON file.
type DPUConfig struct {
	Kernel struct {
		Config DPUKernelConfig `json:"config"`
	} `json:"kernel"`
}

// LoadMaster reads and decodes a master configuration file.
func LoadMaster(path string) (*Master, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read master config %q", path)
	}
	var m Master
	if err := jsoniter.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "decode master config %q", path)
	}
	return &m, nil
}

// LoadDPUConfig reads and decodes a per-model DPU configuration file.
func LoadDPUConfig(path string) (*DPUKernelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read dpu config %q", path)
	}
	var c DPUConfig
	if err := jsoniter.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrapf(err, "decode dpu config %q", path)
	}
	return &c.Kernel.Config, nil
}
