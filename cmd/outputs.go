package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runlevelzero/waybind/internal/config"
	"github.com/runlevelzero/waybind/internal/ui"
	"github.com/runlevelzero/waybind/wlr"
)

var outputsHeadless bool

var outputsCmd = &cobra.Command{
	Use:   "outputs",
	Short: "List the outputs the backend advertises",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		if outputsHeadless {
			cfg.Compositor.Headless = true
		}
		return listOutputs(cfg)
	},
}

func init() {
	outputsCmd.Flags().BoolVar(&outputsHeadless, "headless", false, "run against the in-memory fake library")
	rootCmd.AddCommand(outputsCmd)
}

func listOutputs(cfg *config.Config) error {
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

	var outputs []*wlr.Output
	if _, err := backend.OnNewOutput(func(o *wlr.Output) {
		outputs = append(outputs, o)
	}); err != nil {
		return err
	}

	if err := backend.Start(); err != nil {
		return err
	}
	// Advertised hardware arrives through dispatch.
	if _, err := display.Dispatch(0); err != nil {
		return err
	}

	fmt.Println(ui.HeaderStyle.Render("Outputs"))
	if len(outputs) == 0 {
		fmt.Println(ui.SubtleStyle.Render("no outputs advertised"))
		return nil
	}

	headers := []string{"NAME", "MAKE", "MODEL", "MODE", "SCALE", "STATUS"}
	var rows [][]string
	for _, o := range outputs {
		name, _ := o.Name()
		mk, _ := o.Make()
		model, _ := o.Model()
		scale, _ := o.Scale()
		enabled, _ := o.Enabled()
		mode := "-"
		if m, err := o.PreferredMode(); err == nil {
			mode = fmt.Sprintf("%dx%d@%dmHz", m.Width, m.Height, m.Refresh)
		}
		label := "disabled"
		if enabled {
			label = "enabled"
		}
		status := ui.FormatStatus(enabled, label)
		rows = append(rows, []string{name, mk, model, mode, fmt.Sprintf("%.1f", scale), status})
	}
	fmt.Print(ui.RenderTable(headers, rows))
	return nil
}
