package speech

import (
	"context"
	"sync"
	"time"

	"github.com/gen2brain/malgo"

	"github.com/YardenLiberman/Su-Chef/internal/logger"
)

// Recorder captures microphone audio via miniaudio. Capture runs at
// 16 kHz 16-bit mono so the output can go straight to the recognizer.
type Recorder struct {
	mCtx *malgo.AllocatedContext
	log  *logger.Logger
}

// NewRecorder initializes the system audio context. Returns an error
// if no capture backend is available.
func NewRecorder(log *logger.Logger) (*Recorder, error) {
	mCtx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(_ string) {})
	if err != nil {
		return nil, err
	}
	log.Debug("mic: audio context initialized")
	return &Recorder{mCtx: mCtx, log: log}, nil
}

// Close releases the audio context.
func (r *Recorder) Close() {
	_ = r.mCtx.Uninit()
	r.mCtx.Free()
}

// Record captures a single utterance window and returns it as WAV
// bytes. It blocks for the full window unless the context is
// cancelled.
func (r *Recorder) Record(ctx context.Context, window time.Duration) ([]byte, error) {
	devCfg := malgo.DefaultDeviceConfig(malgo.Capture)
	devCfg.SampleRate = CaptureSampleRate
	devCfg.Capture.Format = malgo.FormatS16
	devCfg.Capture.Channels = ChannelCount
	devCfg.Alsa.NoMMap = 1

	var (
		mu  sync.Mutex
		pcm []byte
	)

	callbacks := malgo.DeviceCallbacks{
		Data: func(_ []byte, raw []byte, _ uint32) {
			if len(raw) == 0 {
				return
			}
			mu.Lock()
			pcm = append(pcm, raw...)
			mu.Unlock()
		},
	}

	device, err := malgo.InitDevice(r.mCtx.Context, devCfg, callbacks)
	if err != nil {
		return nil, err
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		r.log.Error("mic: audio device start failed: %v", err)
		return nil, err
	}

	select {
	case <-ctx.Done():
		_ = device.Stop()
		return nil, ctx.Err()
	case <-time.After(window):
	}
	_ = device.Stop()

	mu.Lock()
	captured := pcm
	mu.Unlock()

	r.log.Debug("mic: captured %d bytes of PCM over %s", len(captured), window)
	return wavFromPCM(captured, CaptureSampleRate), nil
}
