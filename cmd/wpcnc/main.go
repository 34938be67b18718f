package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/mastercactapus/wpcnc/coord"
	"github.com/mastercactapus/wpcnc/gcode"
	"github.com/mastercactapus/wpcnc/machine"
	"github.com/mastercactapus/wpcnc/machine/serial"
	"github.com/mastercactapus/wpcnc/spjs"
	"github.com/mastercactapus/wpcnc/vm"
)

func main() {
	log.SetFlags(log.Lshortfile)

	port := flag.String("port", "", "Serial port path (or port name if using SPJS).")
	baud := flag.Int("baud", 9600, "Serial baud rate.")
	spjsURL := flag.String("spjs", "", "Websocket URL of the SPJS server to use, e.g. ws://cnc-bridge:8989/ws.")
	addr := flag.String("addr", "", "Address to bind the HTTP server to; programs on the command line are run when empty.")
	dir := flag.String("dir", "./data", "Data directory to use.")
	out := flag.String("o", "-", "Token output file when no port is configured.")
	offset := flag.String("offset", formatOffset(vm.DefaultOffset), "Machine origin offset as X,Y,Z.")
	keepGoing := flag.Bool("keep-going", false, "Log failing lines and continue.")
	flag.Parse()

	off, err := parseOffset(*offset)
	if err != nil {
		log.Fatal("ERROR: offset: ", err)
	}

	var adapter machine.Adapter
	switch {
	case *spjsURL != "":
		if *port == "" {
			log.Fatal("ERROR: -port is required with -spjs")
		}
		adapter = spjs.NewAdapter(spjs.NewClient(*spjsURL), *port, *baud)
	case *port != "":
		adapter, err = serial.Open(serial.Config{Device: *port, Baud: *baud})
		if err != nil {
			log.Fatal("ERROR: ", err)
		}
	case *out != "-":
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal("ERROR: ", err)
		}
		adapter = machine.NewWriterAdapter(f)
	default:
		adapter = machine.NewWriterAdapter(os.Stdout)
	}
	defer adapter.Close()

	opt := machine.Options{Offset: &off, KeepGoing: *keepGoing}

	if *addr != "" {
		api := newAPI(adapter, opt, *dir)
		err = http.ListenAndServe(*addr, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "*")
			log.Printf("%s %s - %s", req.Method, req.URL.Path, req.RemoteAddr)
			api.ServeHTTP(w, req)
		}))
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		cancel()
	}()

	m := machine.New(adapter, opt)
	files := flag.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, name := range files {
		err = runFile(ctx, m, name)
		if err != nil {
			adapter.Close()
			log.Fatalf("ERROR: run '%s': %v", name, err)
		}
	}
}

func runFile(ctx context.Context, m *machine.Machine, name string) error {
	var r io.Reader = os.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	res, err := m.RunProgram(ctx, gcode.NewParser(r))
	if err != nil {
		return err
	}
	log.Printf("%s: %d lines, %d tokens, %d errors", name, res.Lines, res.Tokens, len(res.Errors))
	return nil
}

func parseOffset(s string) (coord.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return coord.Point{}, fmt.Errorf("expected X,Y,Z but got '%s'", s)
	}

	var p coord.Point
	for i, a := range coord.Axes {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return coord.Point{}, fmt.Errorf("axis %c: %w", a.Letter(), err)
		}
		p = p.SetAxis(a, v)
	}
	return p, nil
}

func formatOffset(p coord.Point) string {
	return fmt.Sprintf("%g,%g,%g", p.X, p.Y, p.Z)
}
