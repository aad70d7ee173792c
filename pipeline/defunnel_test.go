package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vvas-go/pipeline/queue"
)

func TestDeFunnelRoutesByStreamID(t *testing.T) {
	in := queue.New(-1)
	a := queue.New(-1)
	b := queue.New(-1)

	in.Enqueue(&PipelineBuffer{StreamID: "a"})
	in.Enqueue(&PipelineBuffer{StreamID: "b"})
	in.Enqueue(&PipelineBuffer{StreamID: "a", EOSType: EOSPipeline})

	d := NewDeFunnel(in, map[string]*queue.Queue{"a": a, "b": b})
	go d.Run()

	itemA, ok := a.Dequeue()
	require.True(t, ok)
	require.Equal(t, "a", itemA.(*PipelineBuffer).StreamID)

	itemB, ok := b.Dequeue()
	require.True(t, ok)
	require.Equal(t, "b", itemB.(*PipelineBuffer).StreamID)

	eosA, ok := a.Dequeue()
	require.True(t, ok)
	require.Equal(t, EOSPipeline, eosA.(*PipelineBuffer).EOSType)
}

func TestDeFunnelBroadcastsPipelineEOSToEveryOutput(t *testing.T) {
	in := queue.New(-1)
	a := queue.New(-1)
	b := queue.New(-1)

	in.Enqueue(&PipelineBuffer{EOSType: EOSPipeline})

	d := NewDeFunnel(in, map[string]*queue.Queue{"a": a, "b": b})
	d.Run()

	eosA, ok := a.Dequeue()
	require.True(t, ok)
	require.Equal(t, EOSPipeline, eosA.(*PipelineBuffer).EOSType)

	eosB, ok := b.Dequeue()
	require.True(t, ok)
	require.Equal(t, EOSPipeline, eosB.(*PipelineBuffer).EOSType)
}
