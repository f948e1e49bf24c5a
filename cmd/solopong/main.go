// Command solopong runs the single-player paddle game on a terminal, a desktop window or the reference board
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/lixenwraith/solo-pong/audio"
	"github.com/lixenwraith/solo-pong/config"
	"github.com/lixenwraith/solo-pong/constants"
	"github.com/lixenwraith/solo-pong/core"
	"github.com/lixenwraith/solo-pong/engine"
	"github.com/lixenwraith/solo-pong/game"
	"github.com/lixenwraith/solo-pong/hardware"
	"github.com/lixenwraith/solo-pong/render"
	"github.com/lixenwraith/solo-pong/status"
	"github.com/lixenwraith/solo-pong/terminal"
	"github.com/lixenwraith/solo-pong/window"
)

var (
	frontendFlag  = flag.String("frontend", "auto", "Display: auto, terminal, window, headless")
	soundFlag     = flag.String("sound", "speaker", "Tone output: speaker, wav, gpio, none")
	wavFlag       = flag.String("wav", "solopong.wav", "Output file for -sound wav")
	gpioFlag      = flag.Bool("gpio", false, "Read the rotary encoder and volume switches from GPIO")
	oledFlag      = flag.Bool("oled", false, "Mirror frames to an SSD1306 panel on I2C")
	scaleFlag     = flag.Int("scale", 2, "Window scale factor")
	debugFlag     = flag.Bool("debug", false, "Log to logs/solopong.log and dump metrics at exit")
	statsviewFlag = flag.String("statsview", "", "Serve runtime stats at this address, e.g. localhost:12600")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		log.Printf("solopong: %v", err)
		fmt.Fprintf(os.Stderr, "solopong: %v\n", err)
		if logFile != nil {
			logFile.Close()
		}
		os.Exit(1)
	}
}

// frontend resolves "auto" to the terminal when stdout is a tty
func frontend(name string) string {
	if name != "auto" {
		return name
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return "terminal"
	}
	return "headless"
}

func run() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	reg := status.NewRegistry()
	clock := engine.NewTimeProvider()
	pins := hardware.DefaultPins

	if *gpioFlag || *oledFlag || *soundFlag == "gpio" {
		if err := hardware.Init(); err != nil {
			return err
		}
	}

	if *statsviewFlag != "" {
		mgr := startStatsView(*statsviewFlag)
		defer mgr.Stop()
	}

	// Display and the default volume source
	var (
		presenter render.Presenter
		keyboard  *terminal.Keyboard
		win       *window.Window
		in1, in2  audio.Switch
	)

	switch fe := frontend(*frontendFlag); fe {
	case "terminal":
		screen, err := terminal.Open()
		if err != nil {
			return err
		}
		display := terminal.NewDisplay(screen)
		defer display.Close()
		keyboard = terminal.NewKeyboard(screen, nil, display)
		presenter = display
		in1, in2 = keyboard.Input1(), keyboard.Input2()
	case "window":
		if !window.Available() {
			return window.ErrUnavailable
		}
		win = window.New(cfg.Width, cfg.Height, *scaleFlag, "Solo Pong")
		presenter = win
		in1, in2 = win.Input1(), win.Input2()
	case "headless":
		presenter = render.Discard
		switches := audio.NewVolumeSwitches(audio.VolumeNormal)
		in1, in2 = switches.Input1(), switches.Input2()
	default:
		return fmt.Errorf("unknown frontend %q", fe)
	}

	if *oledFlag {
		oled, err := hardware.OpenOLED(pins.OLEDBus)
		if err != nil {
			return err
		}
		defer oled.Close()
		presenter = render.Tee(presenter, oled)
	}

	if *gpioFlag {
		sw1, err := openVolumeSwitch(pins.Volume1)
		if err != nil {
			return err
		}
		sw2, err := openVolumeSwitch(pins.Volume2)
		if err != nil {
			return err
		}
		in1, in2 = sw1, sw2
	}

	driver, closeDriver, err := openDriver(*soundFlag, pins, clock)
	if err != nil {
		return err
	}
	defer closeDriver()

	surface := render.NewSurface(cfg.Width, cfg.Height, presenter,
		render.WithPeriod(cfg.PresentInterval),
		render.WithStroke(cfg.PaddleHeight),
		render.WithRegistry(reg),
	)
	surface.Open()
	defer surface.Close()

	sound := audio.NewSoundGenerator(driver, in1, in2,
		audio.WithVoices(cfg.MaxVoices),
		audio.WithClock(clock),
		audio.WithRegistry(reg),
	)

	ctrl := game.NewController(cfg, game.Deps{
		Surface:  surface,
		Sound:    sound,
		Clock:    clock,
		Registry: reg,
	})
	defer ctrl.Shutdown()

	if *debugFlag {
		defer func() {
			log.Printf("solopong: final metrics")
			_, _ = reg.WriteTo(log.Writer())
		}()
	}

	ctrl.Boot()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	if keyboard != nil {
		keyboard.SetEncoder(ctrl)
		g.Go(func() error {
			defer cancel()
			return ignoreCanceled(keyboard.Run(gctx))
		})
	}

	if *gpioFlag {
		enc, err := openEncoder(pins, ctrl)
		if err != nil {
			cancel()
			_ = g.Wait()
			return err
		}
		g.Go(func() error {
			defer cancel()
			return ignoreCanceled(enc.Run(gctx, hardware.DefaultPollInterval))
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		if win != nil {
			win.Close()
		}
		return nil
	})

	// ebiten owns the main goroutine
	if win != nil {
		win.SetEncoder(ctrl)
		runErr := win.Run()
		cancel()
		if err := g.Wait(); err != nil {
			return err
		}
		return runErr
	}

	return g.Wait()
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func openVolumeSwitch(name string) (*hardware.VolumeSwitch, error) {
	pin, err := hardware.PinByName(name)
	if err != nil {
		return nil, err
	}
	return hardware.NewVolumeSwitch(pin)
}

func openEncoder(pins hardware.Pins, sink *game.Controller) (*hardware.RotaryEncoder, error) {
	a, err := hardware.PinByName(pins.EncoderA)
	if err != nil {
		return nil, err
	}
	b, err := hardware.PinByName(pins.EncoderB)
	if err != nil {
		return nil, err
	}
	button, err := hardware.PinByName(pins.Button)
	if err != nil {
		return nil, err
	}
	return hardware.NewRotaryEncoder(a, b, button, sink)
}

// openDriver selects the tone output; a speaker that fails to open degrades to silence
func openDriver(kind string, pins hardware.Pins, clock engine.Clock) (audio.ToneDriver, func(), error) {
	noop := func() {}

	switch kind {
	case "speaker":
		d := audio.NewSpeakerDriver(constants.SampleRate)
		if err := d.Init(); err != nil {
			log.Printf("solopong: speaker unavailable, continuing without audio: %v", err)
			return audio.NullDriver{}, noop, nil
		}
		return d, d.Close, nil
	case "wav":
		rec, err := audio.CreateWAVRecorder(*wavFlag, constants.SampleRate)
		if err != nil {
			return nil, nil, err
		}
		return rec, func() {
			if err := rec.Close(); err != nil {
				log.Printf("solopong: closing %s: %v", *wavFlag, err)
			}
		}, nil
	case "gpio":
		pin, err := hardware.PinByName(pins.Piezo)
		if err != nil {
			return nil, nil, err
		}
		piezo, err := hardware.NewPiezo(pin, clock)
		if err != nil {
			return nil, nil, err
		}
		return piezo, func() { _ = piezo.Close() }, nil
	case "none":
		return audio.NullDriver{}, noop, nil
	}
	return nil, nil, fmt.Errorf("unknown sound output %q", kind)
}
