package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/runlevelzero/waybind/ffi"
	"github.com/runlevelzero/waybind/ffi/ffitest"
	"github.com/runlevelzero/waybind/internal/config"
	"github.com/runlevelzero/waybind/internal/logger"
	"github.com/runlevelzero/waybind/wlr"
)

var (
	runHeadless bool
	runSocket   string
)

const (
	dispatchTick = 50 * time.Millisecond
	idleWait     = 10 * time.Millisecond
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the demo compositor loop",
	Long: `Run brings up a display, backend, seat and the protocol globals, then
dispatches events until terminated. With --headless it runs against the
in-memory library instead of the real one, which is useful for exercising
the bindings on a machine without a compositor stack installed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		if runHeadless {
			cfg.Compositor.Headless = true
		}
		if runSocket != "" {
			cfg.Compositor.Socket = runSocket
		}
		return runCompositor(cfg)
	},
}

func init() {
	runCmd.Flags().BoolVar(&runHeadless, "headless", false, "run against the in-memory fake library")
	runCmd.Flags().StringVar(&runSocket, "socket", "", "explicit wayland socket name")
	rootCmd.AddCommand(runCmd)
}

func openLib(cfg *config.Config) (ffi.Lib, error) {
	if cfg.Compositor.Headless {
		return ffitest.New(), nil
	}
	if p := cfg.Library.CompositorPath; p != "" {
		os.Setenv("WAYBIND_LIBWLROOTS", p)
	}
	if p := cfg.Library.ShimPath; p != "" {
		os.Setenv("WAYBIND_SHIM", p)
	}
	return ffi.Open()
}

func runCompositor(cfg *config.Config) error {
	lib, err := openLib(cfg)
	if err != nil {
		return fmt.Errorf("loading native library: %w", err)
	}

	display, err := wlr.NewDisplay(lib)
	if err != nil {
		return err
	}
	defer display.Destroy()

	backend, err := wlr.AutocreateBackend(display)
	if err != nil {
		return err
	}

	renderer, err := backend.Renderer()
	if err != nil {
		return err
	}
	if err := renderer.InitDisplay(display); err != nil {
		return err
	}

	if _, err := wlr.NewCompositor(display, renderer); err != nil {
		return err
	}
	if _, err := wlr.NewDataDeviceManager(display); err != nil {
		return err
	}

	layout, err := wlr.NewOutputLayout(display)
	if err != nil {
		return err
	}

	seat, err := wlr.NewSeat(display, cfg.Seat.Name)
	if err != nil {
		return err
	}

	cursor, err := wlr.NewCursor(display)
	if err != nil {
		return err
	}
	if err := cursor.AttachOutputLayout(layout); err != nil {
		return err
	}

	if _, err := backend.OnNewOutput(func(o *wlr.Output) {
		handleNewOutput(o, layout)
	}); err != nil {
		return err
	}
	if _, err := backend.OnNewInput(func(dev *wlr.InputDevice) {
		handleNewInput(dev, seat, cursor, cfg)
	}); err != nil {
		return err
	}

	if cfg.Compositor.XDGShell {
		shell, err := wlr.NewXDGShell(display)
		if err != nil {
			return err
		}
		if _, err := shell.OnNewSurface(handleNewXDGSurface); err != nil {
			return err
		}
	}
	if cfg.Compositor.LayerShell {
		shell, err := wlr.NewLayerShell(display)
		if err != nil {
			return err
		}
		if _, err := shell.OnNewSurface(func(s *wlr.LayerSurface) {
			ns, _ := s.Namespace()
			layer, _ := s.Layer()
			logger.Info("new layer surface", "namespace", ns, "layer", layer.String())
		}); err != nil {
			return err
		}
	}

	if cfg.Compositor.Socket != "" {
		if err := display.AddSocket(cfg.Compositor.Socket); err != nil {
			return err
		}
	} else {
		if _, err := display.AddSocketAuto(); err != nil {
			return err
		}
	}
	logger.Info("listening", "socket", display.Socket())

	if err := backend.Start(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	os.Setenv("WAYLAND_DISPLAY", display.Socket())

	// every display call stays on this goroutine; shutdown signals are
	// polled between dispatch steps instead of from a second goroutine
	for {
		select {
		case s := <-sigCh:
			logger.Info("shutting down", "signal", s.String())
			return nil
		default:
		}
		if err := display.FlushClients(); err != nil {
			return err
		}
		n, err := display.Dispatch(dispatchTick)
		if err != nil {
			return err
		}
		if n == 0 {
			// the fake's dispatch returns immediately when idle
			time.Sleep(idleWait)
		}
	}
}

func handleNewOutput(o *wlr.Output, layout *wlr.OutputLayout) {
	name, _ := o.Name()
	if err := o.Enable(true); err != nil {
		logger.Error("enabling output", "output", name, "error", err)
		return
	}
	if mode, err := o.PreferredMode(); err == nil {
		if err := o.SetMode(mode); err != nil {
			logger.Error("setting mode", "output", name, "error", err)
		}
	}
	if err := o.Commit(); err != nil {
		logger.Error("committing output", "output", name, "error", err)
		return
	}
	if err := layout.AddAuto(o); err != nil {
		logger.Error("adding output to layout", "output", name, "error", err)
	}
	if err := o.CreateGlobal(); err != nil {
		logger.Error("advertising output", "output", name, "error", err)
	}
	w, h, refresh, _ := o.Resolution()
	logger.Info("output ready", "output", name, "width", w, "height", h, "refresh", refresh)

	o.OnDestroy(func(wlr.Resource) {
		logger.Info("output removed", "output", name)
	})
}

func handleNewInput(dev *wlr.InputDevice, seat *wlr.Seat, cursor *wlr.Cursor, cfg *config.Config) {
	name, _ := dev.Name()
	t, err := dev.DeviceType()
	if err != nil {
		logger.Error("reading device type", "device", name, "error", err)
		return
	}
	switch t {
	case wlr.DeviceKeyboard:
		kbd, err := dev.Keyboard()
		if err != nil {
			logger.Error("wrapping keyboard", "device", name, "error", err)
			return
		}
		if err := kbd.SetRepeatInfo(cfg.Seat.RepeatRate, cfg.Seat.RepeatDelay); err != nil {
			logger.Error("setting repeat info", "device", name, "error", err)
		}
		if err := seat.SetKeyboard(kbd); err != nil {
			logger.Error("assigning keyboard to seat", "device", name, "error", err)
		}
		kbd.OnKey(func(k *wlr.Keyboard, ev *wlr.KeyEvent) {
			logger.Debug("key", "keycode", ev.Keycode, "state", ev.State, "time", ev.TimeMsec)
			if err := seat.NotifyKey(ev.TimeMsec, ev.Keycode, uint32(ev.State)); err != nil {
				logger.Error("forwarding key", "device", name, "error", err)
			}
		})
		kbd.OnModifiers(func(k *wlr.Keyboard) {
			if err := seat.NotifyModifiers(); err != nil {
				logger.Error("forwarding modifiers", "device", name, "error", err)
			}
		})
	case wlr.DevicePointer:
		if err := cursor.AttachInputDevice(dev); err != nil {
			logger.Error("attaching pointer", "device", name, "error", err)
		}
	}

	caps, _ := seat.Capabilities()
	switch t {
	case wlr.DeviceKeyboard:
		caps |= wlr.CapabilityKeyboard
	case wlr.DevicePointer:
		caps |= wlr.CapabilityPointer
	}
	if err := seat.SetCapabilities(caps); err != nil {
		logger.Error("setting seat capabilities", "error", err)
	}
	logger.Info("input device ready", "device", name, "type", t.String())
}

func handleNewXDGSurface(s *wlr.XDGSurface) {
	s.OnMap(func(s *wlr.XDGSurface) {
		role, _ := s.Role()
		if role != wlr.RoleToplevel {
			return
		}
		top, err := s.Toplevel()
		if err != nil {
			logger.Error("wrapping toplevel", "error", err)
			return
		}
		title, _ := top.Title()
		appID, _ := top.AppID()
		logger.Info("toplevel mapped", "title", title, "app_id", appID)
		if _, err := s.SetActivated(true); err != nil {
			logger.Error("activating toplevel", "title", title, "error", err)
		}
	})
	s.OnUnmap(func(s *wlr.XDGSurface) {
		logger.Debug("surface unmapped")
	})
	s.OnDestroy(func(wlr.Resource) {
		logger.Debug("xdg surface destroyed")
	})
}
