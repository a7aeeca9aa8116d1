// This file is part of cgbcolour.
//
// cgbcolour is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// cgbcolour is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with cgbcolour.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/bradleyjkemp/memviz"

	"github.com/jetsetilly/cgbcolour/calibration"
	"github.com/jetsetilly/cgbcolour/logger"
	"github.com/jetsetilly/cgbcolour/modalflag"
	"github.com/jetsetilly/cgbcolour/model"
	"github.com/jetsetilly/cgbcolour/packed"
	"github.com/jetsetilly/cgbcolour/paths"
	"github.com/jetsetilly/cgbcolour/plot"
	"github.com/jetsetilly/cgbcolour/plot/htmlchart"
	"github.com/jetsetilly/cgbcolour/plot/raster"
	"github.com/jetsetilly/cgbcolour/plot/sdlview"
	"github.com/jetsetilly/cgbcolour/plot/termview"
	"github.com/jetsetilly/cgbcolour/prefs"
	"github.com/jetsetilly/cgbcolour/statsview"
	"github.com/jetsetilly/cgbcolour/version"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// reset interrupt signal handling. used when an alternative handler is
	// more appropriate. for example, the html chart server shuts down cleanly
	// on ctrl-c.
	//
	// takes an optional chan struct{} argument, which is closed once the
	// signal handling has been reset.
	reqNoIntSig stateReq = "NOINTSIG"
)

type stateRequest struct {
	req  stateReq
	args interface{}
}

type GuiCreator interface {
	// cleanup resources used by the gui
	Destroy(io.Writer)

	// Service() should not pause or loop longer than necessary. It MUST ONLY
	// be called as part of a larger loop from the main thread. It should
	// service all gui events that are not safe to do in sub-threads.
	Service()
}

type mainSync struct {
	state   chan stateRequest
	creator chan func() (GuiCreator, error)

	// the result of creator will be returned on either of these two channels.
	creation      chan GuiCreator
	creationError chan error
}

func main() {
	sync := &mainSync{
		state:         make(chan stateRequest),
		creator:       make(chan func() (GuiCreator, error)),
		creation:      make(chan GuiCreator),
		creationError: make(chan error),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	// ctrl-c default handler. can be turned off with reqNoIntSig request
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	// launch program as a go routine. further communication is through the
	// mainSync instance
	go launch(sync)

	// loop until done is true. every iteration of the loop we listen for:
	//
	//  1. interrupt signals
	//  2. new gui creation functions
	//  3. state requests
	//  4. anything in the Service() function of the most recently created GUI
	//
	done := false
	var gui GuiCreator
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true
			if gui != nil {
				gui.Destroy(os.Stderr)
			}

		case creator := <-sync.creator:
			var err error

			// destroy existing gui
			if gui != nil {
				gui.Destroy(os.Stderr)
			}

			gui, err = creator()
			if err != nil {
				sync.creationError <- err

				// the creator function may return a nil pointer of a concrete
				// type, which is not a nil interface
				gui = nil
			} else {
				sync.creation <- gui
			}

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if gui != nil {
					gui.Destroy(os.Stderr)
				}

				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqNoIntSig:
				signal.Reset(os.Interrupt)
				if state.args != nil {
					if ack, ok := state.args.(chan struct{}); ok {
						close(ack)
					} else {
						panic(fmt.Sprintf("%s only accepts a chan struct{} argument", reqNoIntSig))
					}
				}
			}

		default:
			if gui != nil {
				gui.Service()
			}
		}
	}

	fmt.Print("\r")
	os.Exit(exitVal)
}

func launch(sync *mainSync) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("CALIBRATE", "ENCODE", "DECODE", "MODELS", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "CALIBRATE":
		err = calibrate(md, sync)

	case "ENCODE":
		err = encode(md, os.Stdout)

	case "DECODE":
		err = decode(md, os.Stdout)

	case "MODELS":
		err = models(md, os.Stdout)

	case "VERSION":
		fmt.Println(version.Banner())
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

func calibrate(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	dataset := md.AddString("dataset", "", "measurement file (tab separated values). built-in measurements if empty")
	column := md.AddString("column", "", "measurement column to fit")
	backend := md.AddChoice("plot", "", calibration.Backends, "plot backend")
	output := md.AddString("output", "", "file for the png or html plot")
	candidates := md.AddString("models", "", "comma separated list of models to fit")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	memvizFile := md.AddString("memviz", "", "write a graphviz description of the report to file")
	prefsOverride := md.AddString("prefs", "", "preferences override: \"key::value; ...\"")

	var stats *bool
	if statsview.Available() {
		stats = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}

	md.AdditionalHelp(fmt.Sprintf("candidate models: %s", strings.Join(modelNames(), ", ")))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(md.RemainingArgs(), " "))
	}

	// set debugging log echo
	if *log {
		logger.SetEcho(os.Stdout, false)
	} else {
		logger.SetEcho(nil, false)
	}

	if stats != nil && *stats {
		statsview.Launch(os.Stdout)
	}

	prefs.PushCommandLineStack(*prefsOverride)
	defer func() {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			logger.Logf(logger.Allow, "prefs", "unused command line preferences: %s", unused)
		}
	}()

	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return err
	}

	pref, err := calibration.NewPreferences(pth)
	if err != nil {
		return err
	}

	// flags on the command line take precedence over the preferences file
	cfg := pref.Config()
	md.Visit(func(flag string) {
		switch flag {
		case "dataset":
			cfg.Dataset = *dataset
		case "column":
			cfg.Column = *column
		case "models":
			cfg.Candidates = calibration.ParseCandidates(*candidates)
		}
	})

	plotBackend := strings.ToLower(pref.Backend.String())
	if *backend != "" {
		plotBackend = *backend
	}

	eng, err := calibration.NewEngine(cfg)
	if err != nil {
		return err
	}

	tab, err := eng.Load()
	if err != nil {
		return err
	}

	// a failed fit does not prevent the report or the plot. the error is
	// returned once the plot has been dismissed
	rep, fitErr := eng.Run(tab)
	if rep == nil {
		return fitErr
	}

	rep.Write(os.Stdout)

	if *memvizFile != "" {
		err = dumpReport(rep, *memvizFile)
		if err != nil {
			return err
		}
	}

	err = showPlot(sync, plotBackend, rep.Chart(), *output, pref.Width.Get().(int), pref.Height.Get().(int))
	if err != nil {
		return err
	}

	return fitErr
}

func dumpReport(rep *calibration.Report, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	memviz.Map(f, rep)
	fmt.Printf("report structure written to %s\n", filename)

	return nil
}

func showPlot(sync *mainSync, backend string, ch plot.Chart, output string, width int, height int) error {
	switch backend {
	case calibration.BackendNone:
		return nil

	case calibration.BackendPNG:
		if output == "" {
			output = paths.UniqueFilename(version.ApplicationName, "calibration", "png")
		}
		err := raster.SavePNG(ch, output, width, height)
		if err != nil {
			return err
		}
		fmt.Printf("chart saved to %s\n", output)

	case calibration.BackendHTML:
		if output != "" {
			err := htmlchart.Save(ch, output)
			if err != nil {
				return err
			}
			fmt.Printf("chart saved to %s\n", output)
			return nil
		}

		// the server is stopped with ctrl-c so the main thread must stop
		// listening for the interrupt signal
		ack := make(chan struct{})
		sync.state <- stateRequest{req: reqNoIntSig, args: ack}
		<-ack

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		return htmlchart.Serve(ctx, ch, htmlchart.DefaultAddress, os.Stdout)

	case calibration.BackendTerm:
		return termview.Show(ch)

	case calibration.BackendSDL:
		sync.creator <- func() (GuiCreator, error) {
			return sdlview.NewWindow(ch, int32(width), int32(height))
		}

		select {
		case g := <-sync.creation:
			<-g.(*sdlview.Window).Closed()
		case err := <-sync.creationError:
			return err
		}

	default:
		return fmt.Errorf("unknown plot backend: %s", backend)
	}

	return nil
}

func modelNames() []string {
	var names []string
	for _, m := range model.Candidates() {
		names = append(names, m.Name())
	}
	return names
}

func encode(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	verbose := md.AddBool("verbose", false, "show the decoded colour and the perceptual round trip error")
	md.AdditionalHelp("colours are 24-bit hex values, optionally prefixed by 0x, $ or #")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) == 0 {
		return fmt.Errorf("24-bit colour required for %s mode", md)
	}

	for _, a := range md.RemainingArgs() {
		c, err := packed.ParseRGB24(a)
		if err != nil {
			return err
		}

		pk := packed.Encode(c)
		if *verbose {
			fmt.Fprintf(output, "  %s\t; %s -> %s (error %.4f)\n", pk.Directive(), c, packed.Decode(pk), packed.RoundTripError(c))
		} else {
			fmt.Fprintf(output, "  %s\n", pk.Directive())
		}
	}

	return nil
}

func decode(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	md.AdditionalHelp("packed colours are a pair of hex bytes, low byte first. for example: '$1f,$00'")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) == 0 {
		return fmt.Errorf("packed colour required for %s mode", md)
	}

	for _, a := range md.RemainingArgs() {
		pk, err := packed.ParseBytePair(a)
		if err != nil {
			return err
		}
		fmt.Fprintln(output, packed.Decode(pk))
	}

	return nil
}

func models(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	ref := model.Reference{}
	fmt.Fprintf(output, "%s\n  %s\n", ref.Name(), ref.Description())

	for _, m := range model.Candidates() {
		lower, upper := m.ParameterBounds()
		fmt.Fprintf(output, "\n%s\n  %s\n", m.Name(), m.Description())
		for i, g := range m.InitialGuess() {
			fmt.Fprintf(output, "  p[%2d] = %-6g [%g, %g]\n", i, g, lower[i], upper[i])
		}
	}

	return nil
}
