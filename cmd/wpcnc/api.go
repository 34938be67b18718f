package main

import (
	"encoding/json"
	"io"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	sse "github.com/alexandrevicenzi/go-sse"
	"github.com/gorilla/mux"

	"github.com/mastercactapus/wpcnc/gcode"
	"github.com/mastercactapus/wpcnc/machine"
)

const progressChannel = "/events/progress"

type api struct {
	http.Handler
	m       *machine.Machine
	opt     machine.Options
	dataDir string
	sse     *sse.Server
}

func newAPI(adapter machine.Adapter, opt machine.Options, dir string) *api {
	r := mux.NewRouter()

	a := &api{
		Handler: r,
		opt:     opt,
		dataDir: dir,
		sse: sse.NewServer(&sse.Options{
			Logger: log.New(ioutil.Discard, "", 0),
		}),
	}
	opt.Progress = a.sendProgress
	a.m = machine.New(adapter, opt)

	r.HandleFunc("/api/convert", a.convert).Methods("POST")
	r.HandleFunc("/api/run", a.run).Methods("POST")

	fs := http.StripPrefix("/data", http.FileServer(http.Dir(dir)))
	r.HandleFunc("/data/{name:.+}", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case "GET", "HEAD":
			fs.ServeHTTP(w, req)
		case "PUT":
			a.putFile(w, req)
		case "DELETE":
			a.deleteFile(w, req)
		default:
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}
	})

	r.PathPrefix("/events/").Handler(a.sse)

	return a
}

func (a *api) sendProgress(p machine.Progress) {
	data, err := json.Marshal(progressMessage{Line: p.Line, Tokens: p.Tokens})
	if err != nil {
		log.Printf("ERROR: marshal json: %+v", err)
		return
	}
	a.sse.SendMessage(progressChannel, sse.SimpleMessage(string(data)))
}

func safePath(base, name string) (bool, string) {
	if filepath.Separator != '/' && strings.ContainsRune(name, filepath.Separator) {
		log.Println("invalid path '" + name + "'")
		return false, ""
	}
	dir := string(base)
	if dir == "" {
		dir = "."
	}
	fullName := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+name)))
	return true, fullName
}

type progressMessage struct {
	Line   int `json:"line"`
	Tokens int `json:"tokens"`
}

type lineError struct {
	Line  int    `json:"line"`
	Text  string `json:"text"`
	Error string `json:"error"`
}

type convertResponse struct {
	Tokens []string    `json:"tokens"`
	End    bool        `json:"end"`
	Errors []lineError `json:"errors"`
}

type runResponse struct {
	Lines  int         `json:"lines"`
	Tokens int         `json:"tokens"`
	End    bool        `json:"end"`
	Errors []lineError `json:"errors"`
}

func lineErrors(res machine.Result) []lineError {
	errs := make([]lineError, 0, len(res.Errors))
	for _, e := range res.Errors {
		errs = append(errs, lineError{Line: e.Line, Text: e.Text, Error: e.Err.Error()})
	}
	return errs
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		log.Println("ERROR: encode:", err)
	}
}

// convert interprets the request body without sending anything to the
// machine. Failing lines are reported, not fatal.
func (a *api) convert(w http.ResponseWriter, req *http.Request) {
	buf := &machine.BufferAdapter{}
	m := machine.New(buf, machine.Options{
		Offset:    a.opt.Offset,
		Position:  a.opt.Position,
		KeepGoing: true,
	})

	res, err := m.RunProgram(req.Context(), gcode.NewParser(req.Body))
	if err != nil {
		log.Printf("ERROR: convert: %+v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, convertResponse{
		Tokens: buf.Tokens(),
		End:    res.Ended,
		Errors: lineErrors(res),
	})
}

// run sends a program to the machine, either the request body or the
// stored file given by the name form value.
func (a *api) run(w http.ResponseWriter, req *http.Request) {
	var r io.Reader = req.Body
	if name := req.FormValue("name"); name != "" {
		ok, fullName := safePath(a.dataDir, name)
		if !ok {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		f, err := os.Open(fullName)
		if os.IsNotExist(err) {
			http.NotFound(w, req)
			return
		}
		if err != nil {
			log.Printf("ERROR: open '%s': %+v", fullName, err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer f.Close()
		r = f
	}

	res, err := a.m.RunProgram(req.Context(), gcode.NewParser(r))
	if err != nil {
		log.Printf("ERROR: run: %+v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, runResponse{
		Lines:  res.Lines,
		Tokens: res.Tokens,
		End:    res.Ended,
		Errors: lineErrors(res),
	})
}

func (a *api) putFile(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, mux.Vars(req)["name"])
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	os.MkdirAll(filepath.Dir(name), 0755)
	f, err := os.Create(name)
	if err != nil {
		log.Printf("ERROR: create '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
	defer f.Close()
	_, err = io.Copy(f, req.Body)
	if err != nil {
		log.Printf("ERROR: write '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
}

func (a *api) deleteFile(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, mux.Vars(req)["name"])
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	err := os.Remove(name)
	if os.IsNotExist(err) {
		http.NotFound(w, req)
		return
	}
	if err != nil {
		log.Printf("ERROR: delete '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
}
