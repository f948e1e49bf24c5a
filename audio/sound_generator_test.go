package audio

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/solo-pong/constants"
	"github.com/lixenwraith/solo-pong/engine"
	"github.com/lixenwraith/solo-pong/status"
)

// recordingDriver stores every tone it receives
type recordingDriver struct {
	mu    sync.Mutex
	tones []Tone
	block chan struct{}
	err   error
	panic bool
}

func (d *recordingDriver) PlayTone(t Tone) error {
	if d.block != nil {
		<-d.block
	}
	if d.panic {
		panic("driver exploded")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tones = append(d.tones, t)
	return d.err
}

func (d *recordingDriver) Tones() []Tone {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Tone(nil), d.tones...)
}

type staticSwitch bool

func (s staticSwitch) State() bool { return bool(s) }

func newTestGenerator(d ToneDriver, in1, in2 Switch, opts ...GeneratorOption) (*SoundGenerator, *engine.MockTimeProvider) {
	clock := engine.NewMockTimeProvider(time.Unix(0, 0))
	opts = append([]GeneratorOption{WithClock(clock)}, opts...)
	return NewSoundGenerator(d, in1, in2, opts...), clock
}

// TestResolveVolume verifies the switch truth table
func TestResolveVolume(t *testing.T) {
	tests := []struct {
		in1, in2 bool
		want     VolumeMode
	}{
		{true, false, VolumeNormal},
		{true, true, VolumeNormal},
		{false, true, VolumeSilent},
		{false, false, VolumeSoft},
	}
	for _, tt := range tests {
		if got := ResolveVolume(staticSwitch(tt.in1), staticSwitch(tt.in2)); got != tt.want {
			t.Errorf("ResolveVolume(%v,%v) = %v, want %v", tt.in1, tt.in2, got, tt.want)
		}
	}
	if got := ResolveVolume(nil, nil); got != VolumeSoft {
		t.Errorf("nil switches: got %v, want soft", got)
	}
}

// TestVolumeApply verifies duty and duration scaling per mode
func TestVolumeApply(t *testing.T) {
	n := Note{Frequency: 1500, Duration: 10 * time.Millisecond}
	tests := []struct {
		mode     VolumeMode
		duty     int
		duration time.Duration
	}{
		{VolumeNormal, 20, 10 * time.Millisecond},
		{VolumeSoft, 1, time.Millisecond},
		{VolumeSilent, 0, 0},
	}
	for _, tt := range tests {
		got := tt.mode.Apply(n)
		if got.Duty != tt.duty || got.Duration != tt.duration || got.Frequency != 1500 {
			t.Errorf("%v: got %+v", tt.mode, got)
		}
	}
	if got := VolumeSoft.Apply(Note{Frequency: 1}); got.Duration != 0 {
		t.Errorf("soft zero duration should stay zero, got %v", got.Duration)
	}
}

// TestPlayNormal verifies the tone table reaches the driver unchanged in normal mode
func TestPlayNormal(t *testing.T) {
	d := &recordingDriver{}
	g, _ := newTestGenerator(d, staticSwitch(true), staticSwitch(false))

	if err := g.Play(EventPaddleHit); err != nil {
		t.Fatalf("Play: %v", err)
	}
	g.Wait()

	tones := d.Tones()
	if len(tones) != 1 {
		t.Fatalf("expected 1 tone, got %d", len(tones))
	}
	want := Tone{Frequency: 1300, Duration: 10 * time.Millisecond, Duty: 20}
	if tones[0] != want {
		t.Errorf("got %+v, want %+v", tones[0], want)
	}
}

// TestPlayStartSequence verifies the double beep and its gap
func TestPlayStartSequence(t *testing.T) {
	d := &recordingDriver{}
	g, clock := newTestGenerator(d, staticSwitch(true), nil)

	if err := g.Play(EventStart); err != nil {
		t.Fatalf("Play: %v", err)
	}
	g.Wait()

	tones := d.Tones()
	if len(tones) != 2 {
		t.Fatalf("expected 2 tones, got %d", len(tones))
	}
	for _, tone := range tones {
		if tone.Frequency != 2000 || tone.Duration != 2*time.Millisecond {
			t.Errorf("unexpected start tone %+v", tone)
		}
	}
	if clock.Slept() != constants.StartGap {
		t.Errorf("expected gap %v, slept %v", constants.StartGap, clock.Slept())
	}
}

// TestPlaySilent verifies silent mode still calls the driver with zero duration and duty
func TestPlaySilent(t *testing.T) {
	d := &recordingDriver{}
	g, _ := newTestGenerator(d, staticSwitch(false), staticSwitch(true))

	for _, ev := range []Event{EventBorderHit, EventGameOver, EventReady} {
		if err := g.Play(ev); err != nil {
			t.Fatalf("Play %v: %v", ev, err)
		}
		g.Wait()
	}

	tones := d.Tones()
	if len(tones) != 4 {
		t.Fatalf("expected 4 driver calls, got %d", len(tones))
	}
	for _, tone := range tones {
		if tone.Duration != 0 || tone.Duty != 0 || !tone.Silent() {
			t.Errorf("silent mode produced audible tone %+v", tone)
		}
	}
}

// TestVolumeSampledPerPlay verifies switch changes take effect on the next play
func TestVolumeSampledPerPlay(t *testing.T) {
	d := &recordingDriver{}
	var mu sync.Mutex
	normal := true
	in1 := SwitchFunc(func() bool {
		mu.Lock()
		defer mu.Unlock()
		return normal
	})
	g, _ := newTestGenerator(d, in1, nil)

	_ = g.Play(EventBorderHit)
	g.Wait()
	mu.Lock()
	normal = false
	mu.Unlock()
	_ = g.Play(EventBorderHit)
	g.Wait()

	tones := d.Tones()
	if tones[0].Duty != 20 || tones[1].Duty != 1 {
		t.Errorf("expected duties 20 then 1, got %d then %d", tones[0].Duty, tones[1].Duty)
	}
}

// TestVoicesBusy verifies saturation returns ErrVoicesBusy and counts the drop
func TestVoicesBusy(t *testing.T) {
	reg := status.NewRegistry()
	d := &recordingDriver{block: make(chan struct{})}
	g, _ := newTestGenerator(d, staticSwitch(true), nil, WithVoices(2), WithRegistry(reg))

	if err := g.Play(EventBorderHit); err != nil {
		t.Fatalf("first play: %v", err)
	}
	if err := g.Play(EventBorderHit); err != nil {
		t.Fatalf("second play: %v", err)
	}
	err := g.Play(EventBorderHit)
	if !errors.Is(err, ErrVoicesBusy) {
		t.Fatalf("expected ErrVoicesBusy, got %v", err)
	}
	if got := reg.Ints.Get("sound.dropped").Load(); got != 1 {
		t.Errorf("sound.dropped: expected 1, got %d", got)
	}

	close(d.block)
	g.Wait()
	if got := reg.Ints.Get("sound.played").Load(); got != 2 {
		t.Errorf("sound.played: expected 2, got %d", got)
	}

	// Slots are released after the workers finish
	if err := g.Play(EventBorderHit); err != nil {
		t.Errorf("play after drain: %v", err)
	}
	g.Wait()
}

// TestDriverFailureIsolated verifies errors and panics in the driver stay inside the worker
func TestDriverFailureIsolated(t *testing.T) {
	reg := status.NewRegistry()

	failing := &recordingDriver{err: errors.New("pwm busy")}
	g, _ := newTestGenerator(failing, staticSwitch(true), nil, WithRegistry(reg))
	if err := g.Play(EventStart); err != nil {
		t.Fatalf("Play: %v", err)
	}
	g.Wait()
	if got := reg.Ints.Get("sound.failed").Load(); got != 1 {
		t.Errorf("sound.failed: expected 1, got %d", got)
	}
	if n := len(failing.Tones()); n != 1 {
		t.Errorf("sequence should abort after failure, driver saw %d tones", n)
	}

	panicking := &recordingDriver{panic: true}
	g2, _ := newTestGenerator(panicking, staticSwitch(true), nil, WithVoices(1))
	if err := g2.Play(EventBorderHit); err != nil {
		t.Fatalf("Play: %v", err)
	}
	g2.Wait()
	if err := g2.Play(EventBorderHit); err != nil {
		t.Errorf("voice slot leaked after panic: %v", err)
	}
	g2.Wait()
}

// TestUnknownEvent verifies events outside the table are rejected
func TestUnknownEvent(t *testing.T) {
	g, _ := newTestGenerator(NullDriver{}, nil, nil)
	if err := g.Play(Event(200)); !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("expected ErrUnknownEvent, got %v", err)
	}
	if Event(200).String() != "unknown" || EventGameOver.String() != "game_over" {
		t.Error("event names mismatch")
	}
}

// TestPlayChainOrdered verifies chained events share one voice and keep their order
func TestPlayChainOrdered(t *testing.T) {
	d := &recordingDriver{}
	g, _ := newTestGenerator(d, staticSwitch(true), nil, WithVoices(1))

	g.Emit(EventBoot, EventReady)
	g.Wait()

	tones := d.Tones()
	if len(tones) != 3 {
		t.Fatalf("expected 3 tones, got %d", len(tones))
	}
	want := []float64{4000, 1200, 1200}
	for i, f := range want {
		if tones[i].Frequency != f {
			t.Errorf("tone %d: got %.0f Hz, want %.0f Hz", i, tones[i].Frequency, f)
		}
	}
	if err := g.PlayChain(); err != nil {
		t.Errorf("empty chain: %v", err)
	}
}

// TestVolumeSwitchesCycle verifies the emulated switches walk every mode
func TestVolumeSwitchesCycle(t *testing.T) {
	s := NewVolumeSwitches(VolumeNormal)
	want := []VolumeMode{VolumeSoft, VolumeSilent, VolumeNormal, VolumeSoft}
	for i, w := range want {
		if got := s.Cycle(); got != w {
			t.Errorf("cycle %d: got %v, want %v", i, got, w)
		}
		if got := ResolveVolume(s.Input1(), s.Input2()); got != w {
			t.Errorf("cycle %d: switches resolve to %v, want %v", i, got, w)
		}
	}
}
