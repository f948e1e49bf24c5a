package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/gopxl/beep"

	"github.com/lixenwraith/solo-pong/constants"
)

// ErrRecorderClosed is returned by PlayTone after Close
var ErrRecorderClosed = errors.New("wav: recorder closed")

const wavBitDepth = 16

// WAVRecorder renders tones into a 16-bit mono WAV stream instead of a device
// Tones are written back to back without waiting in real time
type WAVRecorder struct {
	mu      sync.Mutex
	enc     *wav.Encoder
	closer  io.Closer
	rate    int
	samples int
	closed  bool
}

// NewWAVRecorder writes to ws; the caller keeps ownership of ws
func NewWAVRecorder(ws io.WriteSeeker, sampleRate int) *WAVRecorder {
	if sampleRate <= 0 {
		sampleRate = constants.SampleRate
	}
	return &WAVRecorder{
		enc:  wav.NewEncoder(ws, sampleRate, wavBitDepth, 1, 1),
		rate: sampleRate,
	}
}

// CreateWAVRecorder creates path and records into it, Close also closes the file
func CreateWAVRecorder(path string, sampleRate int) (*WAVRecorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}
	r := NewWAVRecorder(f, sampleRate)
	r.closer = f
	return r, nil
}

// PlayTone appends the tone's samples
func (r *WAVRecorder) PlayTone(t Tone) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRecorderClosed
	}
	if t.Duration <= 0 {
		return nil
	}

	osc := NewToneStreamer(t, beep.SampleRate(r.rate))
	peak := float64(math.MaxInt16) * constants.ToneAmplitude

	buf := make([][2]float64, 512)
	data := make([]int, 0, beep.SampleRate(r.rate).N(t.Duration))
	for {
		n, ok := osc.Stream(buf)
		for i := 0; i < n; i++ {
			data = append(data, int(buf[i][0]*peak))
		}
		if !ok || n < len(buf) {
			break
		}
	}

	err := r.enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: r.rate},
		Data:           data,
		SourceBitDepth: wavBitDepth,
	})
	if err != nil {
		return fmt.Errorf("wav: write: %w", err)
	}
	r.samples += len(data)
	return nil
}

// Samples returns the number of frames written so far
func (r *WAVRecorder) Samples() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.samples
}

// Close finalizes the WAV header, idempotent
func (r *WAVRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	err := r.enc.Close()
	if r.closer != nil {
		if cerr := r.closer.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("wav: close: %w", err)
	}
	return nil
}
